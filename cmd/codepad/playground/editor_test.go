package playground

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestIsQualifyingEdit(t *testing.T) {
	cases := []struct {
		name string
		msg  tea.KeyMsg
		want bool
	}{
		{"rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}, true},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, true},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, true},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, true},
		{"alt chord", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}, Alt: true}, false},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, false},
		{"delete", tea.KeyMsg{Type: tea.KeyDelete}, false},
		{"arrow", tea.KeyMsg{Type: tea.KeyLeft}, false},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isQualifyingEdit(tc.msg))
		})
	}
}

func TestIsContentChange(t *testing.T) {
	// Deletions change the buffer without extending the streak.
	assert.True(t, isContentChange(tea.KeyMsg{Type: tea.KeyBackspace}))
	assert.True(t, isContentChange(tea.KeyMsg{Type: tea.KeyDelete}))
	assert.True(t, isContentChange(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}))

	assert.False(t, isContentChange(tea.KeyMsg{Type: tea.KeyUp}))
	assert.False(t, isContentChange(tea.KeyMsg{Type: tea.KeyEsc}))
}

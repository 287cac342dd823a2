package playground

import (
	tea "github.com/charmbracelet/bubbletea"
)

// isQualifyingEdit reports whether a key press counts toward the streak.
// Only keys that insert content qualify: printable runes, space, tab, and
// enter. Deletions, cursor movement, and control chords do not extend a
// streak even though they change or traverse the buffer.
func isQualifyingEdit(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace, tea.KeyTab, tea.KeyEnter:
		return !msg.Alt
	default:
		return false
	}
}

// isContentChange reports whether a key press can mutate the buffer at all.
// This is the superset of qualifying edits that should arm a save: deletions
// change content without extending the streak.
func isContentChange(msg tea.KeyMsg) bool {
	if isQualifyingEdit(msg) {
		return true
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete, tea.KeyCtrlH,
		tea.KeyCtrlK, tea.KeyCtrlU, tea.KeyCtrlW:
		return true
	default:
		return false
	}
}

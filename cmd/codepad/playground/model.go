package playground

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"codepad/cmd/codepad/ui"
	"codepad/internal/config"
	"codepad/internal/logging"
	"codepad/internal/ratelimit"
	"codepad/internal/reference"
	"codepad/internal/store"
	"codepad/internal/streak"
)

// New assembles the playground model. Collaborators are constructed by the
// caller so the command layer owns their lifecycles.
func New(cfg *config.Config, st *store.LocalStore, tracker *streak.Tracker, refs *reference.Watcher) Model {
	styles := ui.NewStyles(ui.ResolveTheme(cfg.UI.Theme))

	ed := textarea.New()
	ed.Placeholder = "Start typing to build a streak..."
	ed.ShowLineNumbers = true
	ed.CharLimit = 0
	ed.Focus()

	prompt := textinput.New()
	prompt.CharLimit = 64

	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithoutPercentage(),
	)

	m := Model{
		editor:     ed,
		preview:    viewport.New(0, 0),
		refPane:    viewport.New(0, 0),
		drain:      bar,
		prompt:     prompt,
		styles:     styles,
		cfg:        cfg,
		store:      st,
		tracker:    tracker,
		refs:       refs,
		saver:      ratelimit.NewDebouncer(cfg.GetSaveDebounce()),
		saveEvents: make(chan error, 4),
		inputMode:  InputModeEditing,
	}

	m.restore()
	return m
}

// restore loads the previous session's content and display name. A fresh
// store drops the model into name capture first.
func (m *Model) restore() {
	log := logging.Get(logging.CategoryPlayground)

	if content, ok, err := m.store.Get(store.KeyContent); err != nil {
		log.Warnw("Failed to restore content", "error", err)
	} else if ok {
		m.editor.SetValue(content)
		m.editor.CursorEnd()
	}

	if name, ok, err := m.store.Get(store.KeyName); err != nil {
		log.Warnw("Failed to restore name", "error", err)
	} else if ok && name != "" {
		m.name = name
	} else {
		m.inputMode = InputModeName
		m.prompt.Placeholder = "What should we call you?"
		m.prompt.Focus()
		m.editor.Blur()
	}
}

// Init starts the long-lived listeners.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.waitForReset(),
		m.waitForReference(),
		m.waitForSave(),
	)
}

// waitForReset blocks on the tracker's reset channel. The command re-arms
// itself after each delivery from Update.
func (m Model) waitForReset() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-m.tracker.Events(); !ok {
			return nil
		}
		return streakResetMsg{}
	}
}

// waitForReference blocks on the reference watcher's update channel.
func (m Model) waitForReference() tea.Cmd {
	if m.refs == nil {
		return nil
	}
	return func() tea.Msg {
		content, ok := <-m.refs.Updates()
		if !ok {
			return nil
		}
		return referenceReloadedMsg(content)
	}
}

// waitForSave blocks until a debounced save completes.
func (m Model) waitForSave() tea.Cmd {
	return func() tea.Msg {
		err, ok := <-m.saveEvents
		if !ok {
			return nil
		}
		return saveDoneMsg{err: err}
	}
}

// scheduleSave arms the debounced save with the current editor content.
// Rapid keystrokes collapse into a single write carrying the latest text.
func (m *Model) scheduleSave() {
	content := m.editor.Value()
	m.dirty = true
	m.saver.Debounce(func() {
		err := m.store.Set(store.KeyContent, content)
		select {
		case m.saveEvents <- err:
		default:
		}
	})
}

// flushSave writes the current content synchronously. Used on quit so an
// armed debounce timer cannot be lost.
func (m *Model) flushSave() {
	content := m.editor.Value()
	m.saver.Immediate(func() {
		if err := m.store.Set(store.KeyContent, content); err != nil {
			logging.Get(logging.CategoryPlayground).Errorw("Final save failed", "error", err)
		}
	})
	m.dirty = false
}

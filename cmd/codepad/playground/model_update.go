package playground

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"codepad/cmd/codepad/ui"
	"codepad/internal/logging"
	"codepad/internal/store"
)

// Update handles all messages for the playground.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case emphasisOnMsg:
		// Deferred re-add: the marker was dropped on the previous turn, so
		// this lands as a fresh retrigger even mid-streak.
		m.emphasis = true
		return m, tea.Tick(emphasisHold, func(time.Time) tea.Msg {
			return emphasisOffMsg{}
		})

	case emphasisOffMsg:
		m.emphasis = false
		return m, nil

	case drainTickMsg:
		return m.handleDrainTick(time.Time(msg))

	case streakResetMsg:
		return m.handleStreakReset()

	case referenceReloadedMsg:
		m.refPane.SetContent(string(msg))
		m.setFlash("Reference reloaded", m.styles.Info)
		return m, m.waitForReference()

	case saveDoneMsg:
		if msg.err != nil {
			logging.Get(logging.CategoryPlayground).Errorw("Save failed", "error", msg.err)
			m.setFlash("Save failed", m.styles.Error)
		} else {
			m.dirty = false
		}
		return m, m.waitForSave()
	}

	return m.updateComponents(msg)
}

// handleResize records the new terminal geometry and reflows everything,
// rebuilding the markdown renderer for the new wrap width.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = m.width >= ui.MinimumTerminalWidth && m.height >= ui.MinimumTerminalHeight
	m.layout()

	renderer, err := newMarkdownRenderer(ui.PaneWidth(m.width))
	if err != nil {
		logging.Get(logging.CategoryPlayground).Warnw("Markdown renderer unavailable", "error", err)
	} else {
		m.renderer = renderer
		if m.showPreview {
			m.preview.SetContent(m.renderMarkdown(m.editor.Value()))
		}
	}

	return m, nil
}

// layout sizes every component for the current geometry and pane split. The
// editor takes the full row by itself and half of it when a side pane is up.
func (m *Model) layout() {
	editorHeight := ui.EditorHeight(m.height)

	sideOpen := m.showPreview || m.showReference
	editorWidth := ui.ContentWidth(m.width)
	paneWidth := 0
	if sideOpen {
		editorWidth = ui.PaneWidth(m.width)
		paneWidth = ui.PaneWidth(m.width)
	}

	m.editor.SetWidth(editorWidth)
	m.editor.SetHeight(editorHeight)

	m.preview.Width = paneWidth
	m.preview.Height = editorHeight
	m.refPane.Width = paneWidth
	m.refPane.Height = editorHeight
	if m.refs != nil && m.showReference {
		m.refPane.SetContent(m.refs.Content())
	}

	m.drain.Width = editorWidth - ui.ExclamationColWidth
	if m.drain.Width < ui.ProgressBarMinWidth {
		m.drain.Width = ui.ProgressBarMinWidth
	}

	m.prompt.Width = editorWidth - 4
}

// handleKey routes keys by input mode, then applies the global chords.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.inputMode {
	case InputModeName:
		return m.handleNameKey(msg)
	case InputModeConfirmFinish:
		return m.handleConfirmKey(msg)
	}

	switch msg.Type {
	case tea.KeyCtrlC:
		return m.quit()
	case tea.KeyEsc:
		if m.showPreview || m.showReference {
			m.showPreview = false
			m.showReference = false
			m.layout()
		}
		return m, nil
	case tea.KeyCtrlP:
		return m.openFinishPrompt()
	case tea.KeyCtrlR:
		return m.toggleReference()
	case tea.KeyCtrlS:
		m.flushSave()
		m.setFlash("Saved", m.styles.Success)
		return m, nil
	}

	return m.handleEditorKey(msg)
}

// handleEditorKey forwards a key to the textarea and applies the streak and
// persistence side effects of the edit.
func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	cmds := []tea.Cmd{cmd}

	if isContentChange(msg) {
		m.scheduleSave()
	}

	if isQualifyingEdit(msg) {
		count, exclaim := m.tracker.RecordEdit()
		wasAnimating := m.animating()
		m.streakCount = count
		m.lastEditAt = time.Now()

		// Drop the marker now; the deferred message re-adds it next turn.
		m.emphasis = false
		cmds = append(cmds, func() tea.Msg { return emphasisOnMsg{} })

		if exclaim != "" {
			m.pushExclamation(exclaim)
		}
		if !wasAnimating {
			cmds = append(cmds, m.drainTick())
		}
	}

	return m, tea.Batch(cmds...)
}

// handleNameKey drives the first run name capture prompt.
func (m Model) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m.quit()
	case tea.KeyEnter:
		name := strings.TrimSpace(m.prompt.Value())
		if name == "" {
			return m, nil
		}
		m.name = name
		if err := m.store.Set(store.KeyName, name); err != nil {
			logging.Get(logging.CategoryPlayground).Errorw("Failed to persist name", "error", err)
		}
		m.prompt.Reset()
		m.prompt.Blur()
		m.inputMode = InputModeEditing
		m.editor.Focus()
		m.setFlash("Welcome, "+name, m.styles.Success)
		return m, textarea.Blink
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// handleConfirmKey drives the finish confirmation prompt. Only the exact
// confirmation word renders the preview; anything else silently returns to
// editing.
func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m.quit()
	case tea.KeyEsc:
		return m.closeFinishPrompt(), nil
	case tea.KeyEnter:
		typed := strings.TrimSpace(m.prompt.Value())
		next := m.closeFinishPrompt()
		if strings.EqualFold(typed, confirmWord) {
			next.showPreview = true
			next.showReference = false
			next.layout()
			content := next.editor.Value()
			next.preview.SetContent(next.renderMarkdown(content))
			next.preview.GotoTop()
			logging.Get(logging.CategoryEditor).Infow("preview rendered", "bytes", len(content))
		}
		return next, textarea.Blink
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m Model) openFinishPrompt() (tea.Model, tea.Cmd) {
	m.inputMode = InputModeConfirmFinish
	m.prompt.Reset()
	m.prompt.Placeholder = "Type \"" + confirmWord + "\" to render the preview"
	m.prompt.Focus()
	m.editor.Blur()
	return m, textinput.Blink
}

func (m Model) closeFinishPrompt() Model {
	m.inputMode = InputModeEditing
	m.prompt.Reset()
	m.prompt.Blur()
	m.editor.Focus()
	return m
}

func (m Model) toggleReference() (tea.Model, tea.Cmd) {
	m.showReference = !m.showReference
	if m.showReference {
		m.showPreview = false
	}
	m.layout()
	if m.showReference {
		m.refPane.GotoTop()
	}
	return m, nil
}

// handleDrainTick advances the HUD animations: the inactivity drain bar and
// exclamation expiry. Ticking stops once nothing is animating.
func (m Model) handleDrainTick(now time.Time) (tea.Model, tea.Cmd) {
	m.pruneExclamations(now)
	if !m.animating() {
		return m, nil
	}
	return m, m.drainTick()
}

// handleStreakReset zeroes the counter when the tracker's inactivity window
// expires. The emphasis marker retriggers on the zeroing too.
func (m Model) handleStreakReset() (tea.Model, tea.Cmd) {
	m.streakCount = 0
	m.emphasis = false
	m.setFlash("Streak reset", m.styles.Warning)
	return m, tea.Batch(
		func() tea.Msg { return emphasisOnMsg{} },
		m.waitForReset(),
	)
}

// quit flushes any pending save and tears the session down.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.flushSave()
	m.tracker.Stop()
	if m.refs != nil {
		m.refs.Stop()
	}
	return m, tea.Quit
}

// updateComponents forwards unrouted messages to the focused components.
func (m Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch m.inputMode {
	case InputModeEditing:
		m.editor, cmd = m.editor.Update(msg)
		cmds = append(cmds, cmd)
	default:
		m.prompt, cmd = m.prompt.Update(msg)
		cmds = append(cmds, cmd)
	}

	if m.showPreview {
		m.preview, cmd = m.preview.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.showReference {
		m.refPane, cmd = m.refPane.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// drainTick schedules the next animation frame.
func (m Model) drainTick() tea.Cmd {
	return tea.Tick(drainTickInterval, func(t time.Time) tea.Msg {
		return drainTickMsg(t)
	})
}

// animating reports whether the HUD needs tick frames: an active streak
// drains the bar, and visible exclamations await expiry.
func (m Model) animating() bool {
	return m.streakCount > 0 || len(m.exclaims) > 0
}

// pushExclamation stacks a milestone token, newest first.
func (m *Model) pushExclamation(token string) {
	ex := exclamation{
		token:     token,
		expiresAt: time.Now().Add(m.cfg.GetExclamationTTL()),
	}
	m.exclaims = append([]exclamation{ex}, m.exclaims...)
}

// pruneExclamations drops expired tokens, preserving order.
func (m *Model) pruneExclamations(now time.Time) {
	if len(m.exclaims) == 0 {
		return
	}
	kept := m.exclaims[:0]
	for _, ex := range m.exclaims {
		if now.Before(ex.expiresAt) {
			kept = append(kept, ex)
		}
	}
	m.exclaims = kept
}

func (m *Model) setFlash(text string, style lipgloss.Style) {
	m.flash = style.Render(text)
	m.flashUntil = time.Now().Add(2 * time.Second)
}

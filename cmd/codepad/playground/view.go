package playground

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"codepad/cmd/codepad/ui"
)

// View renders the full playground screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}
	if !m.ready {
		return m.styles.Warning.Render(
			fmt.Sprintf("Terminal too small; need at least %dx%d.",
				ui.MinimumTerminalWidth, ui.MinimumTerminalHeight))
	}

	sections := []string{
		m.renderHeader(),
		m.renderWorkspace(),
		m.renderHUD(),
		m.renderStatusBar(),
		m.renderFooter(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.styles.Title.Render("codepad")
	who := ""
	if m.name != "" {
		who = m.styles.Subtitle.Render("  " + m.name)
	}
	return m.styles.Header.Width(m.width).Render(title + who)
}

// renderWorkspace lays out the editor, optionally joined with the preview or
// reference pane.
func (m Model) renderWorkspace() string {
	if m.inputMode == InputModeName {
		return m.renderNamePrompt()
	}

	editor := m.styles.Pane.Render(m.editor.View())

	switch {
	case m.showPreview:
		pane := m.renderSidePane("Preview", m.preview.View())
		return lipgloss.JoinHorizontal(lipgloss.Top, editor, pane)
	case m.showReference:
		pane := m.renderSidePane("Reference", m.refPane.View())
		return lipgloss.JoinHorizontal(lipgloss.Top, editor, pane)
	default:
		return editor
	}
}

func (m Model) renderSidePane(title, body string) string {
	heading := m.styles.Subtitle.Render(title)
	return m.styles.Pane.Render(lipgloss.JoinVertical(lipgloss.Left, heading, body))
}

func (m Model) renderNamePrompt() string {
	lines := []string{
		m.styles.Title.Render("Welcome to codepad"),
		"",
		m.styles.Body.Render("Before you start, tell us your name."),
		"",
		m.styles.Prompt.Render(m.prompt.View()),
	}
	box := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return lipgloss.Place(m.width, ui.EditorHeight(m.height)+ui.PanelBorderWidth,
		lipgloss.Center, lipgloss.Center, box)
}

// renderHUD draws the streak counter, the inactivity drain bar, and the
// exclamation stack.
func (m Model) renderHUD() string {
	counter := m.renderCounter()
	bar := m.drain.ViewAs(m.drainFraction())
	exclaims := m.renderExclamations()

	row := lipgloss.JoinHorizontal(lipgloss.Center,
		counter, "  ", bar, "  ", exclaims)
	return lipgloss.NewStyle().Height(ui.HUDHeight).Width(m.width).Render(row)
}

func (m Model) renderCounter() string {
	label := fmt.Sprintf("Streak %d", m.streakCount)
	if m.emphasis {
		return m.styles.StreakEmphasis.Render(label)
	}
	return m.styles.StreakCounter.Render(label)
}

// drainFraction maps time since the last edit onto the inactivity window:
// a fresh edit snaps the bar to full and it drains linearly to empty.
func (m Model) drainFraction() float64 {
	if m.streakCount == 0 || m.lastEditAt.IsZero() {
		return 0
	}
	window := m.tracker.Window()
	if window <= 0 {
		return 0
	}
	elapsed := time.Since(m.lastEditAt)
	frac := 1 - float64(elapsed)/float64(window)
	if frac < 0 {
		return 0
	}
	if frac > 1 {
		return 1
	}
	return frac
}

// renderExclamations shows the live milestone tokens, newest on top.
func (m Model) renderExclamations() string {
	if len(m.exclaims) == 0 {
		return strings.Repeat(" ", ui.ExclamationColWidth)
	}
	lines := make([]string, 0, len(m.exclaims))
	for _, ex := range m.exclaims {
		lines = append(lines, m.styles.Exclamation.Render(ex.token))
	}
	return lipgloss.NewStyle().Width(ui.ExclamationColWidth).
		Render(strings.Join(lines, "\n"))
}

func (m Model) renderStatusBar() string {
	if m.inputMode == InputModeConfirmFinish {
		return m.styles.Prompt.Render("Finish? " + m.prompt.View())
	}

	parts := []string{}
	if m.dirty {
		parts = append(parts, m.styles.Warning.Render("● unsaved"))
	} else {
		parts = append(parts, m.styles.Muted.Render("saved"))
	}
	if m.flash != "" && time.Now().Before(m.flashUntil) {
		parts = append(parts, m.flash)
	}
	return lipgloss.NewStyle().Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) renderFooter() string {
	keys := "ctrl+p finish  ctrl+r reference  ctrl+s save  ctrl+c quit"
	return m.styles.Footer.Width(m.width).Render(keys)
}

// newMarkdownRenderer builds a glamour renderer wrapped to the given width.
func newMarkdownRenderer(width int) (*glamour.TermRenderer, error) {
	if width < 10 {
		width = 10
	}
	return glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
}

// renderMarkdown renders editor content for the preview pane, degrading to
// the raw text if the renderer is unavailable.
func (m Model) renderMarkdown(content string) string {
	if m.renderer == nil {
		return content
	}
	out, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return out
}

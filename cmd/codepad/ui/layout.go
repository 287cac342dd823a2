// Package ui layout constants for consistent spacing and dimensions
package ui

// Layout constants for editor and panel sizing
const (
	HeaderHeight    = 1
	HUDHeight       = 3
	FooterHeight    = 1
	StatusBarHeight = 1

	PanelBorderWidth = 2
	PanelPaddingH    = 1

	// Responsive breakpoints
	MinimumTerminalWidth  = 60
	MinimumTerminalHeight = 16
	WidePaneWidth         = 100

	// HUD widths
	ProgressBarMinWidth = 20
	ExclamationColWidth = 18
)

// EditorHeight returns the textarea height for a terminal of the given height.
func EditorHeight(terminalHeight int) int {
	h := terminalHeight - HeaderHeight - HUDHeight - FooterHeight - StatusBarHeight - PanelBorderWidth
	if h < 3 {
		h = 3
	}
	return h
}

// PaneWidth returns the width of a side pane (preview or reference) when the
// editor shares the row with it.
func PaneWidth(terminalWidth int) int {
	w := terminalWidth / 2
	if w < 20 {
		w = 20
	}
	return w - PanelBorderWidth - PanelPaddingH*2
}

// ContentWidth returns the usable width inside a bordered pane.
func ContentWidth(paneWidth int) int {
	return paneWidth - PanelBorderWidth - PanelPaddingH*2
}

package playground

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"

	"codepad/cmd/codepad/ui"
	"codepad/internal/config"
	"codepad/internal/ratelimit"
	"codepad/internal/reference"
	"codepad/internal/store"
	"codepad/internal/streak"
)

// InputMode represents the current input handling state. A single mode
// field keeps the prompt flows (name capture, finish confirmation) from
// leaking keys into the editor.
type InputMode int

const (
	InputModeEditing       InputMode = iota // Default: keys go to the editor
	InputModeName                           // First run: capturing the display name
	InputModeConfirmFinish                  // Finish prompt: awaiting typed confirmation
)

// confirmWord is what the finish prompt expects. Anything else silently
// skips the preview render.
const confirmWord = "finish"

// drainTickInterval drives the inactivity progress drain and exclamation
// expiry while the HUD is animating.
const drainTickInterval = 100 * time.Millisecond

// emphasisHold is how long the counter keeps its emphasis marker after the
// deferred re-add.
const emphasisHold = 300 * time.Millisecond

// exclamation is a transient milestone token shown in the HUD.
type exclamation struct {
	token     string
	expiresAt time.Time
}

// Model is the bubbletea model for the playground.
type Model struct {
	// UI components
	editor    textarea.Model
	preview   viewport.Model
	refPane   viewport.Model
	drain     progress.Model
	prompt    textinput.Model
	styles    ui.Styles
	renderer  *glamour.TermRenderer

	// Collaborators, wired once at startup
	cfg     *config.Config
	store   *store.LocalStore
	tracker *streak.Tracker
	refs    *reference.Watcher
	saver   *ratelimit.Debouncer

	// Debounced saves complete off the update loop; completions arrive
	// back through this channel.
	saveEvents chan error

	// Session state
	name      string
	inputMode InputMode

	// HUD state
	streakCount int
	emphasis    bool
	lastEditAt  time.Time
	exclaims    []exclamation
	dirty       bool

	// Panes
	showPreview    bool
	showReference  bool
	previewContent string

	// Status line
	flash      string
	flashUntil time.Time

	// Terminal
	width  int
	height int
	ready  bool

	quitting bool
	err      error
}

// Messages for tea updates
type (
	// emphasisOnMsg re-adds the counter emphasis marker. It is posted as a
	// zero-delay command so the re-add lands on a later update turn than
	// the removal; doing both in one turn would coalesce into no visible
	// retrigger.
	emphasisOnMsg struct{}

	// emphasisOffMsg ends the emphasis hold.
	emphasisOffMsg struct{}

	// drainTickMsg advances the inactivity drain and expires exclamations.
	drainTickMsg time.Time

	// streakResetMsg arrives when the tracker's inactivity window elapses.
	streakResetMsg struct{}

	// referenceReloadedMsg carries freshly loaded reference content.
	referenceReloadedMsg string

	// saveDoneMsg reports a completed debounced save.
	saveDoneMsg struct{ err error }
)

package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SpinnerFrames defines the animation frames (◐ ◓ ◑ ◒) for use in Bubble Tea programs.
var SpinnerFrames = spinner.Spinner{
	Frames: []string{"◐", "◓", "◑", "◒"},
	FPS:    time.Second / 10, // 100ms per frame
}

// Activity is a Bubble Tea component that animates while work is in flight
// and shows a static marker otherwise. It is meant to be embedded in a
// larger model.
type Activity struct {
	spinner spinner.Model
	Label   string
	busy    bool
	since   time.Time
}

// NewActivity creates an idle activity indicator with the given label.
func NewActivity(label string) Activity {
	sp := spinner.New()
	sp.Spinner = SpinnerFrames
	sp.Style = lipgloss.NewStyle().Foreground(ColorSecondary)

	return Activity{
		spinner: sp,
		Label:   label,
	}
}

// Start marks the indicator busy and returns the first animation tick.
// Starting an indicator that is already busy returns nil so only one tick
// chain runs.
func (a *Activity) Start() tea.Cmd {
	if a.busy {
		return nil
	}
	a.busy = true
	a.since = time.Now()
	return a.spinner.Tick
}

// Stop marks the indicator idle. Pending ticks are dropped by Update.
func (a *Activity) Stop() {
	a.busy = false
}

// Busy reports whether the indicator is animating.
func (a Activity) Busy() bool {
	return a.busy
}

// Elapsed returns how long the current activity has been running.
func (a Activity) Elapsed() time.Duration {
	if !a.busy || a.since.IsZero() {
		return 0
	}
	return time.Since(a.since)
}

// Update advances the animation. Ticks that arrive while idle end the chain.
func (a Activity) Update(msg tea.Msg) (Activity, tea.Cmd) {
	tick, ok := msg.(spinner.TickMsg)
	if !ok || !a.busy {
		return a, nil
	}
	var cmd tea.Cmd
	a.spinner, cmd = a.spinner.Update(tick)
	return a, cmd
}

// View renders the spinner and label while busy, or a muted dot when idle.
func (a Activity) View() string {
	if a.busy {
		return a.spinner.View() + " " + a.Label
	}
	return lipgloss.NewStyle().Foreground(ColorMuted).Render(SymbolComplete)
}

package monitor

import tea "github.com/charmbracelet/bubbletea"

// Key bindings as constants for consistency. Scrolling keys (up/down, k/j,
// pgup/pgdn) fall through to the viewport's own key map.
const (
	KeyQuit         = "q"
	KeyQuitAlt      = "ctrl+c"
	KeyRefresh      = "r"
	KeyClearHistory = "c"
	KeyToggleHelp   = "?"
	KeyClose        = "esc"
)

// HandleKeyMsg processes keyboard input and returns updated model state and command.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	// Help toggle takes priority
	if key == KeyToggleHelp {
		m.showHelp = !m.showHelp
		return true, nil
	}

	// If help is showing, Esc closes it
	if m.showHelp && key == KeyClose {
		m.showHelp = false
		return true, nil
	}

	switch key {
	case KeyQuit, KeyQuitAlt:
		m.quitting = true
		return true, tea.Quit

	case KeyRefresh:
		return true, m.refresh()

	case KeyClearHistory:
		m.ClearHistory()
		return true, nil
	}

	return false, nil
}

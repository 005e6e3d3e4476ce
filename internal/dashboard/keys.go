package dashboard

import tea "github.com/charmbracelet/bubbletea"

// isQuitKey reports whether msg is one of the quit bindings.
func isQuitKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return true
	}
	return false
}

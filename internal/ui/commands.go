package ui

import (
	"github.com/atomicstack/stockroom/internal/ui/notify"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) handleDismissMsg(msg tea.Msg) tea.Cmd {
	dismiss, ok := msg.(notify.DismissMsg)
	if !ok {
		return nil
	}
	m.notices.Dismiss(dismiss.ID)
	return nil
}

// statusLine picks what the line under the body shows: the newest toast, then
// a failing metrics poll, then the last verbose result.
func (m *Model) statusLine() (string, *lipgloss.Style) {
	if toast, ok := m.notices.Latest(); ok {
		switch toast.Level {
		case notify.Error:
			return toast.Message, styles.Error
		case notify.Success:
			return toast.Message, styles.Success
		default:
			return toast.Message, styles.Info
		}
	}
	if m.backendLastErr != "" {
		return "metrics refresh failed: " + m.backendLastErr, styles.Warning
	}
	if m.infoMsg != "" {
		return m.infoMsg, styles.Info
	}
	return "", nil
}

package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch keyMsg.String() {
	case "ctrl+c":
		return m.quit()
	case "f1":
		return m.enterPage(PageDashboard)
	case "f2":
		return m.enterPage(PageTasks)
	case "pgup":
		m.scrollBy(-m.pageStep())
		return nil
	case "pgdown":
		m.scrollBy(m.pageStep())
		return nil
	}
	if m.page == PageTasks {
		return m.handleTaskKey(keyMsg)
	}
	return m.handleDashboardKey(keyMsg)
}

func (m *Model) handleDashboardKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "esc":
		return m.quit()
	case "tab", "down", "j":
		m.moveDashboardFocus(1)
	case "shift+tab", "up", "k":
		m.moveDashboardFocus(-1)
	case "enter", "m", " ":
		return m.loadMore(m.dashFocus)
	case "r":
		return m.refreshDashboard()
	case "home":
		m.scroll = 0
	case "ctrl+t":
		return m.enterPage(PageTasks)
	}
	return nil
}

// handleTaskKey gives the focused field the first look at a key; form
// navigation only sees what the field leaves alone.
func (m *Model) handleTaskKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+t" {
		return m.switchTask(1)
	}
	if handled, cmd := m.handleFieldKey(msg); handled {
		return cmd
	}
	switch msg.String() {
	case "tab", "down":
		return m.moveTaskFocus(1)
	case "shift+tab", "up":
		return m.moveTaskFocus(-1)
	case "enter":
		return m.submitTask()
	}
	return nil
}

func (m *Model) pageStep() int {
	if h := m.bodyHeight(); h > 1 {
		return h - 1
	}
	return scrollStep
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.closeAllWidgets("quit")
	return tea.Quit
}

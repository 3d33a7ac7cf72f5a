package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/atomicstack/stockroom/internal/inventory"
	"github.com/atomicstack/stockroom/internal/logging"
	"github.com/atomicstack/stockroom/internal/logging/events"
	"github.com/atomicstack/stockroom/internal/ui/command"
	"github.com/atomicstack/stockroom/internal/ui/notify"
	"github.com/atomicstack/stockroom/internal/ui/pager"
	tea "github.com/charmbracelet/bubbletea"
)

type metricsLoadedMsg struct {
	metrics []inventory.Metric
	at      time.Time
	err     error
}

// enterPage switches to page and starts the loads that page shows on entry.
func (m *Model) enterPage(page Page) tea.Cmd {
	if page != m.page {
		m.closeAllWidgets("page")
	}
	m.page = page
	m.scroll = 0
	events.UI.Page(page.String())
	switch page {
	case PageTasks:
		if m.view == nil || m.view.def.Kind != m.taskKind {
			return m.startTask(m.taskKind)
		}
		return nil
	default:
		return m.refreshDashboard()
	}
}

func (m *Model) loadMetrics() tea.Cmd {
	if m.src == nil || m.metricsLoading {
		return nil
	}
	m.metricsLoading = true
	src := m.src
	return m.bus.Execute(command.Request{
		ID:    "basic-info",
		Label: "Load metrics",
		Run: func(ctx context.Context) tea.Msg {
			metrics, err := src.BasicInfo(ctx)
			return metricsLoadedMsg{metrics: metrics, at: time.Now(), err: err}
		},
	})
}

func (m *Model) handleMetricsLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(metricsLoadedMsg)
	if !ok {
		return nil
	}
	m.metricsLoading = false
	if loaded.err != nil {
		m.metrics.SetErr(loaded.err)
		logging.Error(fmt.Errorf("load metrics: %w", loaded.err))
		return m.notices.Notify(metricsFailed, notify.Error)
	}
	m.metrics.SetMetrics(loaded.metrics, loaded.at)
	return nil
}

func (m *Model) handlePageLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(pager.LoadedMsg)
	if !ok {
		return nil
	}
	for _, t := range m.tables {
		if t.Source() != loaded.Source {
			continue
		}
		applied, err := t.Apply(loaded)
		if !applied || err == nil {
			return nil
		}
		logging.Error(fmt.Errorf("load %q: %w", loaded.Source, err))
		return m.notices.Notify(pageFailed, notify.Error)
	}
	return nil
}

// loadMore continues the table at idx.
func (m *Model) loadMore(idx int) tea.Cmd {
	if idx < 0 || idx >= len(m.tables) {
		return nil
	}
	t := m.tables[idx]
	if !t.ContinuationVisible() {
		return nil
	}
	return t.LoadMore(m.src)
}

// refreshDashboard re-fetches the metrics and reloads every table from its
// first page.
func (m *Model) refreshDashboard() tea.Cmd {
	cmds := []tea.Cmd{m.loadMetrics()}
	for _, t := range m.tables {
		cmds = append(cmds, t.Refresh(m.src))
	}
	return tea.Batch(cmds...)
}

func (m *Model) moveDashboardFocus(delta int) {
	n := len(m.tables)
	if n == 0 {
		return
	}
	m.dashFocus = ((m.dashFocus+delta)%n + n) % n
	m.reveal = true
	events.UI.Focus("dashboard", m.dashFocus)
}

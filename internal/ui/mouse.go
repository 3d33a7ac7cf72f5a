package ui

import (
	"github.com/atomicstack/stockroom/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		m.scrollBy(-scrollStep)
		return nil
	case tea.MouseButtonWheelDown:
		m.scrollBy(scrollStep)
		return nil
	}
	if ev.Action != tea.MouseActionPress || ev.Button != tea.MouseButtonLeft {
		return nil
	}
	return m.pointerDown(ev.X, ev.Y)
}

// pointerDown handles a press at screen cell (x, y). Every open list the press
// falls outside of closes first; then whatever was hit is activated.
func (m *Model) pointerDown(x, y int) tea.Cmd {
	f := m.buildFrame()
	m.syncWidgetBounds(f)
	m.clampScroll(len(f.body))

	line := -1
	var hit zone
	var found bool
	if y < len(f.header) {
		hit, found = hitZone(f.headerZones, x, y)
	} else if body := y - len(f.header); body >= 0 && (m.bodyHeight() == 0 || body < m.bodyHeight()) {
		line = body + m.scroll
		hit, found = hitZone(f.bodyZones, x, line)
	}
	m.widgets.PointerDown(x, line)

	target := "none"
	if found {
		target = hit.kind.String()
	}
	events.UI.Pointer(x, y, target)
	if !found {
		return nil
	}
	return m.activate(hit)
}

func (m *Model) activate(z zone) tea.Cmd {
	switch z.kind {
	case zoneNav:
		return m.enterPage(Page(z.index))
	case zoneTaskTab:
		kinds := m.tasks.Kinds()
		if z.index < 0 || z.index >= len(kinds) {
			return nil
		}
		return m.startTask(kinds[z.index])
	case zoneField:
		return m.focusField(z.index)
	case zoneOption:
		v := m.view
		if v == nil || z.index < 0 || z.index >= len(v.fields) || !v.fields[z.index].isSelect() {
			return nil
		}
		return v.fields[z.index].widget.CommitVisible(z.option)
	case zoneSubmit:
		if v := m.view; v != nil {
			m.focusField(len(v.fields))
		}
		return m.submitTask()
	case zoneLoadMore:
		m.dashFocus = z.index
		return m.loadMore(z.index)
	}
	return nil
}

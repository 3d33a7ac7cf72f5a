package ui

import (
	"fmt"
	"strings"

	tablefmt "github.com/atomicstack/stockroom/internal/format/table"
	"github.com/atomicstack/stockroom/internal/inventory"
	"github.com/atomicstack/stockroom/internal/ui/pager"
	"github.com/atomicstack/stockroom/internal/ui/widget"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

const (
	maxCellWidth  = 32
	cardsPerRow   = 4
	indent        = "  "
	optionIndent  = "    "
	historyTitle  = "History"
	workingLabel  = "Working…"
	loadingText   = "Loading…"
	metricsFailed = "Error fetching basic information."
	pageFailed    = "Error fetching table data."
)

type zoneKind int

const (
	zoneNav zoneKind = iota
	zoneTaskTab
	zoneField
	zoneOption
	zoneSubmit
	zoneLoadMore
)

func (k zoneKind) String() string {
	switch k {
	case zoneNav:
		return "nav"
	case zoneTaskTab:
		return "task-tab"
	case zoneField:
		return "field"
	case zoneOption:
		return "option"
	case zoneSubmit:
		return "submit"
	case zoneLoadMore:
		return "load-more"
	default:
		return "unknown"
	}
}

// zone is a clickable span of one line. right < 0 spans to the end of the
// line.
type zone struct {
	kind   zoneKind
	line   int
	left   int
	right  int
	index  int
	option int
}

func (z zone) contains(x, line int) bool {
	if line != z.line || x < z.left {
		return false
	}
	return z.right < 0 || x <= z.right
}

// frame is one laid-out screen: a fixed header, a scrollable body and the
// clickable zones of each.
type frame struct {
	header      []styledLine
	headerZones []zone
	body        []styledLine
	bodyZones   []zone
	bounds      map[*widget.Widget]widget.Rect
	focusTop    int
	focusBottom int
}

func newFrame() *frame {
	return &frame{bounds: map[*widget.Widget]widget.Rect{}, focusTop: -1, focusBottom: -1}
}

func (f *frame) add(line styledLine) int {
	f.body = append(f.body, line)
	return len(f.body) - 1
}

func (f *frame) text(text string, style *lipgloss.Style) int {
	return f.add(styledLine{text: text, style: style})
}

func (f *frame) raw(text string) int {
	return f.add(styledLine{text: text, raw: true})
}

func (f *frame) blank() {
	f.add(styledLine{})
}

func (f *frame) focus(top, bottom int) {
	f.focusTop = top
	f.focusBottom = bottom
}

func hitZone(zones []zone, x, line int) (zone, bool) {
	for _, z := range zones {
		if z.contains(x, line) {
			return z, true
		}
	}
	return zone{}, false
}

func render(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}

// buildFrame lays out the current page.
func (m *Model) buildFrame() *frame {
	f := newFrame()
	m.headerLines(f)
	switch m.page {
	case PageTasks:
		m.taskBody(f)
	default:
		m.dashboardBody(f)
	}
	return f
}

func (m *Model) headerLines(f *frame) {
	var b strings.Builder
	b.WriteString(render(styles.Title, "Stockroom"))
	b.WriteString(indent)
	for _, page := range []Page{PageDashboard, PageTasks} {
		style := styles.Tab
		if page == m.page {
			style = styles.ActiveTab
		}
		tab := render(style, page.Title())
		left := lipgloss.Width(b.String())
		b.WriteString(tab)
		f.headerZones = append(f.headerZones, zone{
			kind:  zoneNav,
			line:  0,
			left:  left,
			right: left + lipgloss.Width(tab) - 1,
			index: int(page),
		})
	}
	f.header = append(f.header, styledLine{text: b.String(), raw: true})
}

func (m *Model) dashboardBody(f *frame) {
	m.metricLines(f)
	for i, t := range m.tables {
		f.blank()
		m.tableLines(f, i, t)
	}
}

func (m *Model) metricLines(f *frame) {
	metrics := m.metrics.Metrics()
	if len(metrics) == 0 {
		if m.metrics.Err() != nil {
			f.text(metricsFailed, styles.Error)
			return
		}
		f.text(loadingText, styles.Loading)
		return
	}
	cards := make([]string, 0, len(metrics))
	for _, metric := range metrics {
		body := render(styles.CardLabel, metric.Label) + "\n" + render(styles.CardValue, formatMetric(metric))
		cards = append(cards, render(styles.Card, body))
	}
	for _, row := range m.cardRows(cards) {
		joined := lipgloss.JoinHorizontal(lipgloss.Top, row...)
		for _, line := range strings.Split(joined, "\n") {
			f.raw(line)
		}
	}
}

// cardRows packs cards into rows that fit the terminal width.
func (m *Model) cardRows(cards []string) [][]string {
	var rows [][]string
	var row []string
	used := 0
	for _, card := range cards {
		w := lipgloss.Width(card)
		full := len(row) >= cardsPerRow
		if m.width > 0 {
			full = len(row) > 0 && used+w > m.width
		}
		if full {
			rows = append(rows, row)
			row, used = nil, 0
		}
		row = append(row, card)
		used += w
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

func formatMetric(metric inventory.Metric) string {
	if metric.Money {
		return "$" + humanize.FormatFloat("#,###.##", metric.Value)
	}
	return humanize.Comma(int64(metric.Value))
}

func (m *Model) tableLines(f *frame, idx int, t *pager.Table) {
	focused := m.page == PageDashboard && idx == m.dashFocus
	marker := indent
	if focused {
		marker = "▸ "
	}
	top := f.add(styledLine{text: marker + t.Source(), style: styles.SectionTitle, highlightFrom: len([]rune(marker))})
	switch {
	case t.ShowPlaceholder():
		f.text(indent+pager.Placeholder, styles.Placeholder)
	case t.Headers() == nil:
		if t.Loading() {
			f.text(indent+loadingText, styles.Loading)
		}
	default:
		for i, line := range formatRecords(t.Headers(), t.Rows()) {
			style := styles.TableRow
			if i == 0 {
				style = styles.TableHeader
			}
			f.text(indent+line, style)
		}
	}
	bottom := len(f.body) - 1
	if t.ContinuationVisible() {
		style := styles.Button
		switch {
		case t.Loading():
			style = styles.ButtonBusy
		case focused:
			style = styles.ButtonFocus
		}
		button := render(style, t.ContinuationLabel())
		line := f.raw(indent + button)
		f.bodyZones = append(f.bodyZones, zone{
			kind:  zoneLoadMore,
			line:  line,
			left:  len(indent),
			right: len(indent) + lipgloss.Width(button) - 1,
			index: idx,
		})
		bottom = line
	}
	if focused {
		f.focus(top, bottom)
	}
}

// formatRecords aligns headers and rows as one block; the first line is the
// header.
func formatRecords(headers []string, rows [][]string) []string {
	all := make([][]string, 0, len(rows)+1)
	all = append(all, headers)
	all = append(all, rows...)
	return tablefmt.FormatWithin(all, tablefmt.InferAlignments(rows), maxCellWidth)
}

func (m *Model) taskBody(f *frame) {
	m.taskTabs(f)
	f.blank()
	v := m.view
	if v == nil {
		f.text(loadingText, styles.Loading)
		return
	}
	f.text(v.def.Title, styles.Title)
	if v.loading {
		f.text(loadingText, styles.Loading)
		return
	}
	for i, field := range v.fields {
		f.blank()
		m.fieldLines(f, v, i, field)
	}
	if v.hasSubmit() {
		f.blank()
		style := styles.Button
		label := v.def.SubmitLabel
		switch {
		case v.submitting:
			style = styles.ButtonBusy
			label = workingLabel
		case v.submitFocused():
			style = styles.ButtonFocus
		}
		button := render(style, label)
		line := f.raw(indent + button)
		f.bodyZones = append(f.bodyZones, zone{
			kind:  zoneSubmit,
			line:  line,
			left:  len(indent),
			right: len(indent) + lipgloss.Width(button) - 1,
		})
		if v.submitFocused() {
			f.focus(line, line)
		}
	}
	if v.def.HistoryField != "" {
		f.blank()
		m.historyLines(f, v)
	}
}

func (m *Model) taskTabs(f *frame) {
	var b strings.Builder
	line := len(f.body)
	for i, kind := range m.tasks.Kinds() {
		def, _ := m.tasks.Find(kind)
		style := styles.Tab
		if kind == m.taskKind {
			style = styles.ActiveTab
		}
		tab := render(style, def.Title)
		left := lipgloss.Width(b.String())
		b.WriteString(tab)
		f.bodyZones = append(f.bodyZones, zone{
			kind:  zoneTaskTab,
			line:  line,
			left:  left,
			right: left + lipgloss.Width(tab) - 1,
			index: i,
		})
	}
	f.raw(b.String())
}

func (m *Model) fieldLines(f *frame, v *taskView, idx int, field *formField) {
	focused := v.focus == idx
	labelStyle := styles.FieldLabel
	if focused {
		labelStyle = styles.FieldLabelFocus
	}
	top := f.text(field.spec.Label, labelStyle)
	f.bodyZones = append(f.bodyZones, zone{kind: zoneField, line: top, right: -1, index: idx})

	var input int
	if field.isSelect() {
		input = f.raw(indent + m.selectInputLine(field.widget))
	} else {
		input = f.raw(indent + field.input.View())
	}
	f.bodyZones = append(f.bodyZones, zone{kind: zoneField, line: input, right: -1, index: idx})
	bottom := input

	if field.isSelect() && field.widget.IsOpen() {
		rows, more := field.widget.Rows(m.maxOptions)
		for _, row := range rows {
			style := styles.Item
			switch {
			case row.Index < 0:
				style = styles.NoResults
			case row.Highlighted:
				style = styles.SelectedItem
			}
			line := f.text(optionIndent+row.Label, style)
			if row.Index >= 0 {
				f.bodyZones = append(f.bodyZones, zone{kind: zoneOption, line: line, right: -1, index: idx, option: row.Index})
			}
			bottom = line
		}
		if more > 0 {
			bottom = f.text(fmt.Sprintf("%s… %d more", optionIndent, more), styles.More)
		}
	}
	if field.isSelect() {
		f.bounds[field.widget] = widget.Rect{Top: top, Bottom: bottom}
	}
	if v.message != "" && v.messageFor == field.spec.ID {
		bottom = f.text(optionIndent+v.message, styles.Error)
	}
	if focused {
		f.focus(top, bottom)
	}
}

func (m *Model) historyLines(f *frame, v *taskView) {
	f.text(historyTitle, styles.SectionTitle)
	h := v.history
	switch {
	case !h.selected:
		f.text(indent+historyPrompt, styles.Placeholder)
	case h.loading:
		f.text(indent+loadingText, styles.Loading)
	case !h.loaded:
	case len(h.records) == 0:
		f.text(indent+historyEmpty, styles.Placeholder)
	default:
		names := h.records[0].Names()
		headers := make([]string, len(names))
		for i, name := range names {
			headers[i] = pager.Heading(name)
		}
		rows := make([][]string, 0, len(h.records))
		for _, rec := range h.records {
			rows = append(rows, rec.Values())
		}
		for i, line := range formatRecords(headers, rows) {
			style := styles.TableRow
			if i == 0 {
				style = styles.TableHeader
			}
			f.text(indent+line, style)
		}
	}
}

// syncWidgetBounds records where each registered widget was drawn. Widgets
// missing from the frame lose their bounds, so any press counts as outside
// them.
func (m *Model) syncWidgetBounds(f *frame) {
	for _, w := range m.widgets.Widgets() {
		if r, ok := f.bounds[w]; ok {
			w.SetBounds(r)
			continue
		}
		w.ClearBounds()
	}
}

package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const scrollStep = 3

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	f := m.buildFrame()
	m.syncWidgetBounds(f)
	if m.reveal {
		m.reveal = false
		m.revealFocus(f)
	}
	m.clampScroll(len(f.body))

	lines := make([]styledLine, 0, len(f.header)+len(f.body)+2)
	lines = append(lines, f.header...)
	lines = append(lines, m.visibleBody(f.body)...)
	if status, style := m.statusLine(); status != "" {
		lines = append(lines, styledLine{text: status, style: style})
	} else if m.height > 0 {
		lines = append(lines, styledLine{})
	}
	if m.showFooter {
		lines = append(lines, styledLine{text: m.footerText(), style: styles.Footer})
	}
	lines = applyWidth(lines, m.width)
	return renderLines(lines)
}

// bodyHeight is the number of body lines that fit between the header and the
// status line, or zero when the terminal height is unknown.
func (m *Model) bodyHeight() int {
	if m.height <= 0 {
		return 0
	}
	used := 2
	if m.showFooter {
		used++
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) visibleBody(body []styledLine) []styledLine {
	height := m.bodyHeight()
	if height <= 0 {
		return body
	}
	start := m.scroll
	if start > len(body) {
		start = len(body)
	}
	end := start + height
	if end > len(body) {
		end = len(body)
	}
	return body[start:end]
}

func (m *Model) clampScroll(bodyLen int) {
	height := m.bodyHeight()
	maxScroll := 0
	if height > 0 && bodyLen > height {
		maxScroll = bodyLen - height
	}
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// revealFocus scrolls just enough to bring the focused control on screen.
func (m *Model) revealFocus(f *frame) {
	height := m.bodyHeight()
	if height <= 0 || f.focusTop < 0 {
		return
	}
	if f.focusTop < m.scroll {
		m.scroll = f.focusTop
		return
	}
	if f.focusBottom >= m.scroll+height {
		m.scroll = f.focusBottom - height + 1
		if m.scroll > f.focusTop {
			m.scroll = f.focusTop
		}
	}
}

func (m *Model) scrollBy(delta int) {
	m.scroll += delta
	if m.scroll < 0 {
		m.scroll = 0
	}
}

func (m *Model) footerText() string {
	if m.page == PageTasks {
		return "F1 dashboard · ctrl+t next task · tab move · enter submit · ctrl+c quit"
	}
	return "F2 tasks · tab move · enter load more · r refresh · q quit"
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.reveal = true
	return nil
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			w := lipgloss.Width(text)
			if w > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{
			text:          text,
			style:         line.style,
			prefixStyle:   line.prefixStyle,
			highlightFrom: line.highlightFrom,
			raw:           line.raw,
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil && text != "" {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}

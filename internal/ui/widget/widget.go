// Package widget implements the searchable selection widget: a filter input
// with a dropdown of candidate rows, bound to a value.Cell that remains the
// authoritative store of the chosen key.
package widget

import (
	"fmt"
	"unicode"

	"github.com/atomicstack/stockroom/internal/logging"
	"github.com/atomicstack/stockroom/internal/logging/events"
	uistate "github.com/atomicstack/stockroom/internal/ui/state"
	"github.com/atomicstack/stockroom/internal/value"
	tea "github.com/charmbracelet/bubbletea"
)

const defaultPlaceholder = "(type to search)"

// NoResultsText is rendered in place of rows when the filter matches nothing.
const NoResultsText = "No results found."

// CommitFunc runs after a candidate has been committed.
type CommitFunc func(value.Key) tea.Cmd

// CallbackFailedMsg reports a recovered panic from an observer of the cell or
// from the commit callback. The commit itself has already been applied.
type CallbackFailedMsg struct {
	WidgetID string
	Err      error
}

// Setting customises a widget at construction time.
type Setting func(*Widget)

// WithPlaceholder sets the text shown while the filter is empty.
func WithPlaceholder(text string) Setting {
	return func(w *Widget) {
		if text != "" {
			w.placeholder = text
		}
	}
}

// Widget is a single searchable selection control.
type Widget struct {
	id          string
	placeholder string
	cell        *value.Cell
	sel         *uistate.Selection
	onCommit    CommitFunc
	focused     bool
	bounds      Rect
	hasBounds   bool
}

// New builds a widget over candidates. The cell's option set is rebuilt from
// candidates and any previous options or value are discarded.
func New(id string, cell *value.Cell, candidates []value.Option, onCommit CommitFunc, settings ...Setting) *Widget {
	if cell == nil {
		cell = value.NewCell()
	}
	cell.Reset(candidates)
	w := &Widget{
		id:          id,
		placeholder: defaultPlaceholder,
		cell:        cell,
		sel:         uistate.NewSelection(id, candidates),
		onCommit:    onCommit,
	}
	for _, apply := range settings {
		apply(w)
	}
	return w
}

// ID returns the widget identifier.
func (w *Widget) ID() string { return w.id }

// Cell exposes the backing value cell.
func (w *Widget) Cell() *value.Cell { return w.cell }

// State exposes the selection state for rendering.
func (w *Widget) State() *uistate.Selection { return w.sel }

// Placeholder returns the text shown for an empty filter.
func (w *Widget) Placeholder() string { return w.placeholder }

// Focused reports whether the widget owns keyboard focus.
func (w *Widget) Focused() bool { return w.focused }

// IsOpen reports whether the dropdown is visible.
func (w *Widget) IsOpen() bool { return w.sel.Open }

// Focus takes keyboard focus, recomputes the visible rows and opens the list.
func (w *Widget) Focus() {
	w.focused = true
	w.sel.OpenList()
	events.Select.Open(w.id, w.sel.Filter, len(w.sel.Visible))
}

// Blur releases keyboard focus and closes the list.
func (w *Widget) Blur() {
	w.focused = false
	w.Close("blur")
}

// Close hides the dropdown, reporting whether it was open.
func (w *Widget) Close(reason string) bool {
	if !w.sel.Close() {
		return false
	}
	events.Select.Dismiss(w.id, reason)
	return true
}

// HandleKey applies filter editing and commit keys. It reports whether the key
// was consumed.
func (w *Widget) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if !w.sel.Open {
			return false, nil
		}
		opt, ok := w.sel.Highlighted()
		if !ok {
			return true, nil
		}
		return true, w.Commit(opt)
	case "esc":
		return w.Close("escape"), nil
	case "ctrl+u":
		return w.edited(w.sel.ClearFilter()), nil
	case "ctrl+w":
		return w.edited(w.sel.DeleteFilterWordBackward()), nil
	case "ctrl+a":
		return w.sel.MoveFilterCursorStart(), nil
	case "ctrl+e":
		return w.sel.MoveFilterCursorEnd(), nil
	case "alt+b":
		return w.sel.MoveFilterCursorWordBackward(), nil
	case "alt+f":
		return w.sel.MoveFilterCursorWordForward(), nil
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		return w.edited(w.sel.DeleteFilterRuneBackward()), nil
	case tea.KeySpace:
		return w.edited(w.sel.InsertFilterText(" ")), nil
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false, nil
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false, nil
			}
		}
		return w.edited(w.sel.InsertFilterText(string(msg.Runes))), nil
	case tea.KeyUp, tea.KeyDown:
		if !w.sel.Open {
			return false, nil
		}
		delta := 1
		if msg.Type == tea.KeyUp {
			delta = -1
		}
		w.sel.MoveCursor(delta)
		return true, nil
	case tea.KeyLeft:
		return w.sel.MoveFilterCursorRuneBackward(), nil
	case tea.KeyRight:
		return w.sel.MoveFilterCursorRuneForward(), nil
	}
	return false, nil
}

func (w *Widget) edited(changed bool) bool {
	if !changed {
		return false
	}
	w.sel.Open = true
	events.Select.Filter(w.id, w.sel.Filter, len(w.sel.Visible))
	return true
}

// CommitVisible commits the visible row at idx, as when that row is clicked.
func (w *Widget) CommitVisible(idx int) tea.Cmd {
	opt, ok := w.sel.VisibleAt(idx)
	if !ok {
		return nil
	}
	return w.Commit(opt)
}

// Commit finalises opt as the chosen value. The backing option is synthesized
// when the cell has none for the key, so a committed key always has a
// matching option. The visual state is applied before observers and the
// commit callback run, and a failure in either never rolls it back.
func (w *Widget) Commit(opt value.Option) tea.Cmd {
	synthesized := false
	if !w.cell.HasOption(opt.Key) {
		w.cell.AddOption(opt)
		synthesized = true
	}
	if err := w.cell.Select(opt.Key); err != nil {
		logging.Error(fmt.Errorf("widget %s: select %q: %w", w.id, opt.Key, err))
	}
	w.sel.Commit(opt)
	events.Select.Commit(w.id, string(opt.Key), opt.Label, synthesized)

	cmds := make([]tea.Cmd, 0, 3)
	notifyCmd, err := w.cell.Notify()
	if err != nil {
		cmds = append(cmds, w.failed(err))
	}
	cmds = append(cmds, notifyCmd)
	if w.onCommit != nil {
		cmd, err := w.runCallback(opt.Key)
		if err != nil {
			cmds = append(cmds, w.failed(err))
		}
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (w *Widget) runCallback(key value.Key) (cmd tea.Cmd, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &value.PanicError{Value: r}
		}
	}()
	return w.onCommit(key), nil
}

func (w *Widget) failed(err error) tea.Cmd {
	events.Select.CallbackFailed(w.id, err.Error())
	logging.Error(fmt.Errorf("widget %s: %w", w.id, err))
	id := w.id
	return func() tea.Msg {
		return CallbackFailedMsg{WidgetID: id, Err: err}
	}
}

// Row is one rendered dropdown line.
type Row struct {
	Label       string
	Index       int
	Highlighted bool
}

// Rows returns at most limit dropdown rows around the highlighted candidate,
// plus the number of matching candidates left out. An empty match produces a
// single non-interactive row with Index -1.
func (w *Widget) Rows(limit int) ([]Row, int) {
	visible := w.sel.Visible
	if len(visible) == 0 {
		return []Row{{Label: NoResultsText, Index: -1}}, 0
	}
	if limit <= 0 || limit > len(visible) {
		limit = len(visible)
	}
	start := 0
	if w.sel.Cursor >= limit {
		start = w.sel.Cursor - limit + 1
	}
	rows := make([]Row, 0, limit)
	for i := start; i < start+limit && i < len(visible); i++ {
		rows = append(rows, Row{Label: visible[i].Label, Index: i, Highlighted: i == w.sel.Cursor})
	}
	return rows, len(visible) - len(rows)
}

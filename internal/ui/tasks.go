package ui

import (
	"context"
	"errors"
	"fmt"
	"unicode"

	"github.com/atomicstack/stockroom/internal/inventory"
	"github.com/atomicstack/stockroom/internal/logging"
	"github.com/atomicstack/stockroom/internal/logging/events"
	"github.com/atomicstack/stockroom/internal/task"
	"github.com/atomicstack/stockroom/internal/ui/command"
	"github.com/atomicstack/stockroom/internal/ui/notify"
	"github.com/atomicstack/stockroom/internal/ui/widget"
	"github.com/atomicstack/stockroom/internal/value"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const historyPrompt = "Please select a product."

const historyEmpty = "No history found for this product."

type candidatesLoadedMsg struct {
	kind  task.Kind
	gen   uint64
	lists map[inventory.ListKind][]value.Option
	err   error
}

type historyLoadedMsg struct {
	gen     uint64
	key     value.Key
	records []inventory.Record
	err     error
}

type submitResultMsg struct {
	kind task.Kind
	gen  uint64
	info string
	err  error
}

// formField is one rendered field: a text input, or a selection widget over
// its own value cell.
type formField struct {
	spec   task.FieldSpec
	input  textinput.Model
	cell   *value.Cell
	widget *widget.Widget
}

func (f *formField) isSelect() bool {
	return f.widget != nil
}

type historyState struct {
	key      value.Key
	selected bool
	loading  bool
	loaded   bool
	records  []inventory.Record
}

// taskView is the complete view state of the task on screen. A new one is
// built whenever a task is opened or re-populated after a submission.
type taskView struct {
	def         task.Definition
	gen         uint64
	fields      []*formField
	focus       int
	loading     bool
	submitting  bool
	message     string
	messageFor  string
	history     historyState
	unsubscribe []func()
}

func (v *taskView) hasSubmit() bool {
	return v.def.SubmitLabel != "" && v.def.Submit != nil
}

// focusSlots counts the focusable controls: every field plus the submit
// button when there is one.
func (v *taskView) focusSlots() int {
	n := len(v.fields)
	if v.hasSubmit() {
		n++
	}
	return n
}

func (v *taskView) focusedField() *formField {
	if v.focus < 0 || v.focus >= len(v.fields) {
		return nil
	}
	return v.fields[v.focus]
}

func (v *taskView) submitFocused() bool {
	return v.hasSubmit() && v.focus == len(v.fields)
}

func (v *taskView) values() task.Values {
	values := task.Values{}
	for _, f := range v.fields {
		if f.isSelect() {
			if key, ok := f.cell.Value(); ok {
				values[f.spec.ID] = string(key)
			}
			continue
		}
		values[f.spec.ID] = f.input.Value()
	}
	return values
}

func (v *taskView) fieldIndex(id string) int {
	for i, f := range v.fields {
		if f.spec.ID == id {
			return i
		}
	}
	return -1
}

// startTask tears down the current view and opens kind with freshly fetched
// candidate lists.
func (m *Model) startTask(kind task.Kind) tea.Cmd {
	def, ok := m.tasks.Find(kind)
	if !ok {
		return nil
	}
	m.teardownTask()
	m.gen++
	m.taskKind = kind
	m.scroll = 0
	view := &taskView{def: def, gen: m.gen}
	m.view = view
	events.Task.Open(string(kind), view.gen)

	kinds := task.Lists(def.Fields)
	if len(kinds) == 0 || m.src == nil {
		m.buildFields(view, nil)
		return nil
	}
	view.loading = true
	src := m.src
	gen := view.gen
	return m.bus.Execute(command.Request{
		ID:    "lists:" + string(kind),
		Label: def.Title,
		Run: func(ctx context.Context) tea.Msg {
			lists, err := task.FetchLists(ctx, src, kinds)
			return candidatesLoadedMsg{kind: kind, gen: gen, lists: lists, err: err}
		},
	})
}

// teardownTask unregisters the view's widgets and drops its observers.
func (m *Model) teardownTask() {
	v := m.view
	if v == nil {
		return
	}
	removed := 0
	for _, f := range v.fields {
		if f.widget != nil && m.widgets.Remove(f.widget) {
			removed++
		}
	}
	for _, unsubscribe := range v.unsubscribe {
		unsubscribe()
	}
	v.unsubscribe = nil
	events.Task.Teardown(string(v.def.Kind), removed)
	m.view = nil
}

func (m *Model) handleCandidatesLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(candidatesLoadedMsg)
	if !ok {
		return nil
	}
	v := m.view
	if v == nil || loaded.gen != v.gen {
		events.Task.Stale(string(loaded.kind), loaded.gen, m.gen)
		return nil
	}
	v.loading = false
	var cmd tea.Cmd
	if loaded.err != nil {
		logging.Error(fmt.Errorf("%s: %w", loaded.kind, loaded.err))
		cmd = m.notices.Notify(v.def.LoadError, notify.Error)
	}
	m.buildFields(v, loaded.lists)
	return cmd
}

func (m *Model) buildFields(v *taskView, lists map[inventory.ListKind][]value.Option) {
	v.fields = make([]*formField, 0, len(v.def.Fields))
	for _, spec := range v.def.Fields {
		f := &formField{spec: spec}
		switch spec.Kind {
		case task.Select:
			f.cell = value.NewCell()
			fieldID := spec.ID
			f.widget = widget.New(spec.ID, f.cell, lists[spec.List], func(value.Key) tea.Cmd {
				if v.messageFor == fieldID {
					v.message = ""
					v.messageFor = ""
				}
				return nil
			}, widget.WithPlaceholder(spec.Placeholder))
			m.widgets.Add(f.widget)
			if spec.ID == v.def.HistoryField {
				v.unsubscribe = append(v.unsubscribe, f.cell.Subscribe(m.historyObserver(v)))
			}
		default:
			ti := textinput.New()
			ti.Prompt = ""
			ti.Placeholder = spec.Placeholder
			ti.CharLimit = 64
			if spec.Kind == task.Number {
				ti.CharLimit = 16
			}
			f.input = ti
		}
		v.fields = append(v.fields, f)
	}
	v.focus = -1
	m.focusField(0)
}

// historyObserver fetches the history of each product committed in v.
func (m *Model) historyObserver(v *taskView) value.Observer {
	return func(key value.Key) tea.Cmd {
		if m.view != v {
			return nil
		}
		v.history = historyState{key: key, selected: key != ""}
		if key == "" || m.src == nil {
			return nil
		}
		id, err := key.Int()
		if err != nil {
			return m.notices.Notify("Error fetching product history.", notify.Error)
		}
		v.history.loading = true
		src := m.src
		gen := v.gen
		return m.bus.Execute(command.Request{
			ID:    "history:" + string(key),
			Label: "Product history",
			Run: func(ctx context.Context) tea.Msg {
				records, err := src.ProductHistory(ctx, id)
				return historyLoadedMsg{gen: gen, key: key, records: records, err: err}
			},
		})
	}
}

func (m *Model) handleHistoryLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(historyLoadedMsg)
	if !ok {
		return nil
	}
	v := m.view
	if v == nil || loaded.gen != v.gen || loaded.key != v.history.key {
		events.Task.Stale(string(task.ProductHistory), loaded.gen, m.gen)
		return nil
	}
	v.history.loading = false
	if loaded.err != nil {
		logging.Error(fmt.Errorf("product history %s: %w", loaded.key, loaded.err))
		return m.notices.Notify("Error fetching product history.", notify.Error)
	}
	v.history.loaded = true
	v.history.records = loaded.records
	return nil
}

// focusField moves keyboard focus to slot idx. Leaving a selection widget
// closes its list, as a press elsewhere would.
func (m *Model) focusField(idx int) tea.Cmd {
	v := m.view
	if v == nil {
		return nil
	}
	slots := v.focusSlots()
	if slots == 0 {
		return nil
	}
	idx = ((idx % slots) + slots) % slots
	if prev := v.focusedField(); prev != nil && idx != v.focus {
		if prev.isSelect() {
			prev.widget.Blur()
		} else {
			prev.input.Blur()
		}
	}
	v.focus = idx
	m.reveal = true
	events.UI.Focus("task", idx)
	f := v.focusedField()
	if f == nil {
		return nil
	}
	m.filterCursorDirty = true
	if f.isSelect() {
		f.widget.Focus()
		return nil
	}
	return f.input.Focus()
}

func (m *Model) moveTaskFocus(delta int) tea.Cmd {
	if m.view == nil {
		return nil
	}
	return m.focusField(m.view.focus + delta)
}

func (m *Model) switchTask(delta int) tea.Cmd {
	return m.startTask(m.tasks.Next(m.taskKind, delta))
}

// handleFieldKey routes a key to the focused field, reporting whether the
// field consumed it.
func (m *Model) handleFieldKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	v := m.view
	if v == nil || v.loading {
		return false, nil
	}
	f := v.focusedField()
	if f == nil {
		return false, nil
	}
	if f.isSelect() {
		before := f.widget.State().FilterCursorPos()
		handled, cmd := f.widget.HandleKey(msg)
		if handled && before != f.widget.State().FilterCursorPos() {
			m.filterCursorDirty = true
		}
		return handled, cmd
	}
	switch msg.Type {
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyEnter, tea.KeyEsc, tea.KeyUp, tea.KeyDown:
		return false, nil
	case tea.KeyRunes:
		if f.spec.Kind == task.Number && !numericRunes(msg.Runes) {
			return true, nil
		}
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return true, cmd
}

func numericRunes(runes []rune) bool {
	for _, r := range runes {
		if !unicode.IsDigit(r) && r != '.' && r != '-' {
			return false
		}
	}
	return true
}

// submitTask validates the form and hands a valid submission to the store.
func (m *Model) submitTask() tea.Cmd {
	v := m.view
	if v == nil || v.loading || v.submitting || !v.hasSubmit() {
		return nil
	}
	kind := v.def.Kind
	sub, err := v.def.Validate(v.values())
	if err != nil {
		var verr *task.ValidationError
		if !errors.As(err, &verr) {
			return m.notices.Notify(err.Error(), notify.Error)
		}
		events.Task.Validation(string(kind), verr.Field, verr.Message)
		v.message = verr.Message
		v.messageFor = verr.Field
		level := notify.Error
		if verr.Informational {
			level = notify.Info
		}
		var focusCmd tea.Cmd
		if idx := v.fieldIndex(verr.Field); idx >= 0 && idx != v.focus {
			focusCmd = m.focusField(idx)
		}
		return tea.Batch(focusCmd, m.notices.Notify(verr.Message, level))
	}
	if m.src == nil {
		return nil
	}
	v.submitting = true
	v.message = ""
	v.messageFor = ""
	events.Task.Submit(string(kind))
	def := v.def
	src := m.src
	gen := v.gen
	return m.bus.Execute(command.Request{
		ID:    "submit:" + string(kind),
		Label: def.SubmitLabel,
		Run: func(ctx context.Context) tea.Msg {
			info, err := def.Submit(ctx, src, sub)
			return submitResultMsg{kind: kind, gen: gen, info: info, err: err}
		},
	})
}

func (m *Model) handleSubmitResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(submitResultMsg)
	if !ok {
		return nil
	}
	events.Task.Result(string(result.kind), result.info, result.err)
	current := m.view != nil && m.view.gen == result.gen
	if result.err != nil {
		logging.Error(fmt.Errorf("%s: %w", result.kind, result.err))
		prefix := "Error"
		if def, ok := m.tasks.Find(result.kind); ok && def.FailurePrefix != "" {
			prefix = def.FailurePrefix
		}
		if current {
			m.view.submitting = false
		}
		return m.notices.Notify(fmt.Sprintf("%s: %v", prefix, result.err), notify.Error)
	}
	if m.verbose {
		m.infoMsg = result.info
	}
	cmds := []tea.Cmd{m.notices.Notify(result.info, notify.Success)}
	if current {
		cmds = append(cmds, m.startTask(result.kind))
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleCallbackFailedMsg(msg tea.Msg) tea.Cmd {
	failed, ok := msg.(widget.CallbackFailedMsg)
	if !ok {
		return nil
	}
	return m.notices.Notify(fmt.Sprintf("Selection callback failed (%s): %v", failed.WidgetID, failed.Err), notify.Error)
}

func (m *Model) closeAllWidgets(reason string) {
	for _, w := range m.widgets.Widgets() {
		w.Close(reason)
	}
}

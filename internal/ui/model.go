package ui

import (
	"context"
	"reflect"

	"github.com/atomicstack/stockroom/internal/backend"
	"github.com/atomicstack/stockroom/internal/data/dispatcher"
	"github.com/atomicstack/stockroom/internal/inventory"
	"github.com/atomicstack/stockroom/internal/state"
	"github.com/atomicstack/stockroom/internal/task"
	"github.com/atomicstack/stockroom/internal/theme"
	"github.com/atomicstack/stockroom/internal/ui/command"
	"github.com/atomicstack/stockroom/internal/ui/notify"
	"github.com/atomicstack/stockroom/internal/ui/pager"
	"github.com/atomicstack/stockroom/internal/ui/widget"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

// Page is a top-level screen.
type Page int

const (
	PageDashboard Page = iota
	PageTasks
)

func (p Page) String() string {
	switch p {
	case PageTasks:
		return "tasks"
	default:
		return "dashboard"
	}
}

// Title is the label of the page's tab.
func (p Page) Title() string {
	switch p {
	case PageTasks:
		return "Tasks"
	default:
		return "Dashboard"
	}
}

// ParsePage maps a page name to a Page, defaulting to the dashboard.
func ParsePage(name string) Page {
	if name == PageTasks.String() {
		return PageTasks
	}
	return PageDashboard
}

const (
	defaultPageSize   = 10
	defaultMaxOptions = 8
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Backend is everything the UI reads from and writes to.
type Backend interface {
	pager.RecordSource
	task.CandidateSource
	task.HistorySource
	task.Submitter
	backend.MetricsSource
}

// Options configures a Model.
type Options struct {
	Backend    Backend
	Watcher    *backend.Watcher
	Context    context.Context
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	PageSize   int
	MaxOptions int
	StartPage  Page
}

// Model implements the Bubble Tea model for the inventory console.
type Model struct {
	page        Page
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool
	pageSize    int
	maxOptions  int
	scroll      int
	reveal      bool
	quitting    bool

	src            Backend
	bus            *command.Bus
	backend        *backend.Watcher
	backendLastErr string
	metrics        state.MetricsStore
	dispatcher     *dispatcher.Dispatcher
	metricsLoading bool

	tables    []*pager.Table
	dashFocus int

	tasks    *task.Registry
	taskKind task.Kind
	view     *taskView
	gen      uint64
	widgets  *widget.Registry

	notices *notify.Center
	infoMsg string

	filterCursor      cursor.Model
	filterCursorDirty bool

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI state.
func NewModel(opts Options) *Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	maxOptions := opts.MaxOptions
	if maxOptions <= 0 {
		maxOptions = defaultMaxOptions
	}
	metrics := state.NewMetricsStore()
	tasks := task.BuildRegistry()
	m := &Model{
		page:       opts.StartPage,
		showFooter: opts.ShowFooter,
		verbose:    opts.Verbose,
		pageSize:   pageSize,
		maxOptions: maxOptions,
		src:        opts.Backend,
		bus:        command.New(ctx),
		backend:    opts.Watcher,
		metrics:    metrics,
		dispatcher: dispatcher.New(metrics),
		tasks:      tasks,
		taskKind:   tasks.Kinds()[0],
		widgets:    widget.NewRegistry(),
		notices:    notify.NewCenter(),
	}
	for _, source := range inventory.Sources() {
		m.tables = append(m.tables, pager.New(source, pageSize))
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.enterPage(m.page)}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):               m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):             m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):        m.handleWindowSizeMsg,
		reflect.TypeOf(pager.LoadedMsg{}):          m.handlePageLoadedMsg,
		reflect.TypeOf(metricsLoadedMsg{}):         m.handleMetricsLoadedMsg,
		reflect.TypeOf(candidatesLoadedMsg{}):      m.handleCandidatesLoadedMsg,
		reflect.TypeOf(historyLoadedMsg{}):         m.handleHistoryLoadedMsg,
		reflect.TypeOf(submitResultMsg{}):          m.handleSubmitResultMsg,
		reflect.TypeOf(notify.DismissMsg{}):        m.handleDismissMsg,
		reflect.TypeOf(widget.CallbackFailedMsg{}): m.handleCallbackFailedMsg,
		reflect.TypeOf(backendEventMsg{}):          m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):           m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Page returns the visible page.
func (m *Model) Page() Page {
	return m.page
}

// TaskKind returns the task shown on the tasks page.
func (m *Model) TaskKind() task.Kind {
	return m.taskKind
}

// Tables exposes the dashboard tables in display order.
func (m *Model) Tables() []*pager.Table {
	return m.tables
}

// Notices exposes the notification centre.
func (m *Model) Notices() *notify.Center {
	return m.notices
}

// Widgets exposes the registry of live selection widgets.
func (m *Model) Widgets() *widget.Registry {
	return m.widgets
}

// Package pager loads named record sources into tables one page at a time.
// A table renders its header once from the first page, appends later pages,
// and hides its continuation control once a short page shows the source is
// exhausted.
package pager

import (
	"context"
	"strings"

	"github.com/atomicstack/stockroom/internal/inventory"
	"github.com/atomicstack/stockroom/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Placeholder is rendered in place of a header and body when the first page
// is empty.
const Placeholder = "No data available."

const (
	continueLabel = "Load More"
	loadingLabel  = "Loading…"
)

// RecordSource fetches pages of records by source name.
type RecordSource interface {
	FetchPage(ctx context.Context, source string, offset, limit int) ([]inventory.Record, error)
}

// PageState tracks how far a table has read into its source.
type PageState struct {
	Source    string
	Offset    int
	PageSize  int
	Exhausted bool
	RowCount  int
}

// LoadedMsg carries the outcome of one page request back to the event loop.
type LoadedMsg struct {
	Source    string
	RequestID uint64
	Offset    int
	Limit     int
	Records   []inventory.Record
	Err       error
}

var headerReplacer = strings.NewReplacer("_", " ", "-", " ")

// Heading turns a record field name into a column heading.
func Heading(name string) string {
	return headerReplacer.Replace(name)
}

// Table is the incrementally loaded view of one record source. It is owned by
// the UI event loop; only the fetch itself runs off it.
type Table struct {
	state       PageState
	headers     []string
	rows        [][]string
	placeholder bool
	showMore    bool
	inflight    bool
	requestID   uint64
	cancel      context.CancelFunc
}

// New returns an empty table for source. Non-positive page sizes fall back to
// ten rows.
func New(source string, pageSize int) *Table {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Table{state: PageState{Source: source, PageSize: pageSize}}
}

// Source returns the record source name.
func (t *Table) Source() string { return t.state.Source }

// State returns a copy of the page state.
func (t *Table) State() PageState { return t.state }

// Headers returns the column headings, or nil before the first non-empty page.
func (t *Table) Headers() []string { return t.headers }

// Rows returns the rows loaded so far.
func (t *Table) Rows() [][]string { return t.rows }

// ShowPlaceholder reports whether the first page came back empty.
func (t *Table) ShowPlaceholder() bool { return t.placeholder }

// Loading reports whether a request is in flight.
func (t *Table) Loading() bool { return t.inflight }

// ContinuationVisible reports whether the load-more control is shown.
func (t *Table) ContinuationVisible() bool { return t.showMore }

// ContinuationLabel returns the text of the load-more control.
func (t *Table) ContinuationLabel() string {
	if t.inflight {
		return loadingLabel
	}
	return continueLabel
}

// LoadPage requests up to limit records at the current offset. It returns nil
// while another request for this table is in flight, or once the source is
// exhausted.
func (t *Table) LoadPage(src RecordSource, limit int) tea.Cmd {
	if t.inflight {
		events.Table.Busy(t.state.Source)
		return nil
	}
	if t.state.Exhausted {
		events.Table.Exhausted(t.state.Source)
		return nil
	}
	if src == nil {
		return nil
	}
	if limit <= 0 {
		limit = t.state.PageSize
	}
	t.requestID++
	t.inflight = true
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel

	source := t.state.Source
	offset := t.state.Offset
	reqID := t.requestID
	events.Table.Request(source, reqID, offset, limit)
	return func() tea.Msg {
		defer cancel()
		records, err := src.FetchPage(ctx, source, offset, limit)
		return LoadedMsg{
			Source:    source,
			RequestID: reqID,
			Offset:    offset,
			Limit:     limit,
			Records:   records,
			Err:       err,
		}
	}
}

// LoadMore continues from the current offset with the table's page size.
func (t *Table) LoadMore(src RecordSource) tea.Cmd {
	return t.LoadPage(src, t.state.PageSize)
}

// Refresh supersedes any in-flight request, rewinds to the first page and
// reloads it. The rendered rows stay until the new first page arrives.
func (t *Table) Refresh(src RecordSource) tea.Cmd {
	superseded := t.inflight
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.inflight = false
	t.state.Offset = 0
	t.state.RowCount = 0
	t.state.Exhausted = false
	events.Table.Refresh(t.state.Source, superseded)
	return t.LoadPage(src, t.state.PageSize)
}

// Apply folds a completed request into the table. It reports whether the
// message belonged to the current request; stale completions are ignored. A
// failed request leaves the page state and control untouched and returns the
// fetch error.
func (t *Table) Apply(msg LoadedMsg) (bool, error) {
	if msg.Source != t.state.Source {
		return false, nil
	}
	if !t.inflight || msg.RequestID != t.requestID || msg.Offset != t.state.Offset {
		events.Table.Stale(msg.Source, msg.RequestID, t.requestID)
		return false, nil
	}
	t.inflight = false
	t.cancel = nil
	if msg.Err != nil {
		events.Table.Failed(msg.Source, msg.Err)
		return true, msg.Err
	}

	n := len(msg.Records)
	if msg.Offset == 0 {
		t.headers = nil
		t.rows = nil
		t.placeholder = n == 0
		if n > 0 {
			names := msg.Records[0].Names()
			t.headers = make([]string, len(names))
			for i, name := range names {
				t.headers[i] = Heading(name)
			}
		}
	}
	for _, rec := range msg.Records {
		t.rows = append(t.rows, rec.Values())
	}
	t.state.Offset += n
	t.state.RowCount += n
	t.state.Exhausted = n < msg.Limit
	t.showMore = !t.state.Exhausted && !(msg.Offset == 0 && n == 0)
	events.Table.Loaded(msg.Source, msg.Offset, n, t.state.Exhausted)
	return true, nil
}

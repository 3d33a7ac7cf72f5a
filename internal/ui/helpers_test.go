package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/atomicstack/stockroom/internal/inventory"
	"github.com/atomicstack/stockroom/internal/testutil"
	"github.com/atomicstack/stockroom/internal/value"
	tea "github.com/charmbracelet/bubbletea"
)

var errFake = errors.New("fake failure")

// fakeBackend serves canned data and records writes.
type fakeBackend struct {
	mu sync.Mutex

	pages   map[string][]inventory.Record
	lists   map[inventory.ListKind][]value.Option
	history map[int64][]inventory.Record
	metrics []inventory.Metric

	pageErr    error
	listErr    error
	historyErr error
	submitErr  error
	metricsErr error

	reorders [][2]int64
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		pages: map[string][]inventory.Record{},
		lists: map[inventory.ListKind][]value.Option{
			inventory.ListProducts: {
				{Key: "1", Label: "Capacitor Kit"},
				{Key: "2", Label: "Green Tea"},
			},
		},
		history: map[int64][]inventory.Record{},
	}
}

func (f *fakeBackend) FetchPage(_ context.Context, source string, offset, limit int) ([]inventory.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pageErr != nil {
		return nil, f.pageErr
	}
	rows := f.pages[source]
	if offset >= len(rows) {
		return nil, nil
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end], nil
}

func (f *fakeBackend) FetchList(_ context.Context, kind inventory.ListKind) ([]value.Option, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return value.CloneOptions(f.lists[kind]), nil
}

func (f *fakeBackend) ProductHistory(_ context.Context, productID int64) ([]inventory.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return f.history[productID], nil
}

func (f *fakeBackend) AddProduct(_ context.Context, _ inventory.NewProduct) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return 0, f.submitErr
	}
	return 1, nil
}

func (f *fakeBackend) PlaceReorder(_ context.Context, productID int64, quantity int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return 0, f.submitErr
	}
	f.reorders = append(f.reorders, [2]int64{productID, int64(quantity)})
	return int64(len(f.reorders)), nil
}

func (f *fakeBackend) ReceiveReorder(_ context.Context, _ int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitErr
}

func (f *fakeBackend) BasicInfo(_ context.Context) ([]inventory.Metric, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.metricsErr != nil {
		return nil, f.metricsErr
	}
	return f.metrics, nil
}

func newTestHarness(t *testing.T, b Backend, page Page) *Harness {
	t.Helper()
	m := NewModel(Options{Backend: b, Width: 160, StartPage: page})
	h := NewHarness(m)
	h.Init()
	return h
}

func seededHarness(t *testing.T, page Page) (*Harness, *inventory.Store) {
	t.Helper()
	store := testutil.NewStore(t, true)
	return newTestHarness(t, store, page), store
}

func keyMsg(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func typeText(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

func plainView(h *Harness) string {
	return testutil.Plain(h.View())
}

// click presses the left button on the first zone of kind with the given
// index.
func click(t *testing.T, h *Harness, kind zoneKind, index int) {
	t.Helper()
	clickWhere(t, h, func(z zone) bool { return z.kind == kind && z.index == index })
}

// clickOption presses the dropdown row showing candidate option of field.
func clickOption(t *testing.T, h *Harness, field, option int) {
	t.Helper()
	clickWhere(t, h, func(z zone) bool { return z.kind == zoneOption && z.index == field && z.option == option })
}

func clickWhere(t *testing.T, h *Harness, match func(zone) bool) {
	t.Helper()
	m := h.Model()
	f := m.buildFrame()
	m.clampScroll(len(f.body))
	for _, z := range f.headerZones {
		if match(z) {
			pressAt(h, z.left, z.line)
			return
		}
	}
	for _, z := range f.bodyZones {
		if match(z) {
			pressAt(h, z.left, len(f.header)+z.line-m.scroll)
			return
		}
	}
	t.Fatalf("no matching zone in frame")
}

func pressAt(h *Harness, x, y int) {
	h.Send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func openTask(t *testing.T, h *Harness, title string) {
	t.Helper()
	for i := 0; i <= len(h.Model().tasks.Kinds()); i++ {
		if v := h.Model().view; v != nil && v.def.Title == title && !v.loading {
			return
		}
		h.Send(keyMsg(tea.KeyCtrlT))
	}
	if v := h.Model().view; v == nil || v.def.Title != title {
		t.Fatalf("could not open task %q", title)
	}
}

func countLines(view, needle string) int {
	n := 0
	for _, line := range strings.Split(view, "\n") {
		if strings.Contains(line, needle) {
			n++
		}
	}
	return n
}

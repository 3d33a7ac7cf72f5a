package ui

import (
	"context"
	"strings"
	"testing"

	"github.com/atomicstack/stockroom/internal/inventory"
	"github.com/atomicstack/stockroom/internal/task"
	"github.com/atomicstack/stockroom/internal/ui/notify"
	"github.com/atomicstack/stockroom/internal/ui/widget"
	"github.com/atomicstack/stockroom/internal/value"
	tea "github.com/charmbracelet/bubbletea"
)

func TestProductHistoryFollowsCommittedProduct(t *testing.T) {
	h, _ := seededHarness(t, PageDashboard)
	openTask(t, h, "Product History")

	if !strings.Contains(plainView(h), historyPrompt) {
		t.Fatalf("expected prompt before a product is chosen\n%s", plainView(h))
	}
	w := h.Model().view.fields[0].widget
	if !w.IsOpen() {
		t.Fatal("expected the product list open on entry")
	}

	h.Send(typeText("capac"))
	if visible := w.State().Visible; len(visible) != 1 || visible[0].Label != "Capacitor Kit" {
		t.Fatalf("expected only Capacitor Kit visible, got %#v", visible)
	}
	h.Send(keyMsg(tea.KeyEnter))

	if key, ok := w.Cell().Value(); !ok || key != "2" {
		t.Fatalf("expected product 2 committed, got %q (%v)", key, ok)
	}
	hist := h.Model().view.history
	if !hist.loaded || len(hist.records) != 2 {
		t.Fatalf("expected two history records, got %#v", hist)
	}
	if got := hist.records[0].Values(); got[1] != "Reorder" || got[3] != "Ordered" {
		t.Fatalf("expected newest record to be the open reorder, got %v", got)
	}
	view := plainView(h)
	if !strings.Contains(view, "record date") || !strings.Contains(view, "-25") {
		t.Fatalf("expected history table rendered\n%s", view)
	}
}

func TestProductHistoryWithoutRecords(t *testing.T) {
	b := newFakeBackend()
	h := newTestHarness(t, b, PageTasks)
	openTask(t, h, "Product History")

	h.Send(typeText("green"))
	h.Send(keyMsg(tea.KeyEnter))

	if !strings.Contains(plainView(h), historyEmpty) {
		t.Fatalf("expected empty history notice\n%s", plainView(h))
	}
}

func TestStaleHistoryResponseIgnored(t *testing.T) {
	b := newFakeBackend()
	b.history[1] = []inventory.Record{{{Name: "record_date", Value: "2025-01-01"}}}
	h := newTestHarness(t, b, PageTasks)
	openTask(t, h, "Product History")
	h.Send(typeText("capac"))
	h.Send(keyMsg(tea.KeyEnter))

	v := h.Model().view
	h.Send(historyLoadedMsg{gen: v.gen, key: "2", records: nil})
	if len(v.history.records) != 1 {
		t.Fatalf("expected response for another product ignored, got %#v", v.history)
	}
	h.Send(historyLoadedMsg{gen: v.gen - 1, key: "1", records: nil})
	if len(v.history.records) != 1 {
		t.Fatalf("expected response for an old view ignored, got %#v", v.history)
	}
}

func TestPlaceReorderSubmitsAndRebuilds(t *testing.T) {
	h, store := seededHarness(t, PageTasks)
	openTask(t, h, "Place Reorder")
	before := h.Model().view

	h.Send(typeText("oat"))
	h.Send(keyMsg(tea.KeyEnter))
	h.Send(keyMsg(tea.KeyTab))
	h.Send(typeText("30"))
	h.Send(keyMsg(tea.KeyEnter))

	toast, ok := h.Model().Notices().Latest()
	if !ok || toast.Level != notify.Success || toast.Message != "Reorder placed successfully" {
		t.Fatalf("expected success notice, got %#v", toast)
	}
	after := h.Model().view
	if after == before || after.gen == before.gen {
		t.Fatal("expected the form rebuilt after success")
	}
	if _, ok := after.fields[0].cell.Value(); ok {
		t.Fatal("expected the rebuilt form to start empty")
	}
	if got := h.Model().Widgets().Len(); got != 1 {
		t.Fatalf("expected old widgets unregistered, got %d live", got)
	}
	pending, err := store.FetchList(context.Background(), inventory.ListPendingReorders)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if last := pending[len(pending)-1]; last.Label != "ID 6 - Oat Granola" {
		t.Fatalf("expected new reorder listed, got %#v", last)
	}
}

func TestPlaceReorderRequiresProduct(t *testing.T) {
	b := newFakeBackend()
	h := newTestHarness(t, b, PageTasks)
	openTask(t, h, "Place Reorder")

	h.Send(keyMsg(tea.KeyTab))
	h.Send(typeText("5"))
	h.Send(keyMsg(tea.KeyEnter))

	toast, ok := h.Model().Notices().Latest()
	if !ok || toast.Level != notify.Error || toast.Message != "Please select a product." {
		t.Fatalf("expected missing product notice, got %#v", toast)
	}
	if h.Model().view.focus != 0 {
		t.Fatalf("expected focus back on the product field, got %d", h.Model().view.focus)
	}
	if len(b.reorders) != 0 {
		t.Fatalf("expected nothing submitted, got %v", b.reorders)
	}
}

func TestNumberFieldRejectsLetters(t *testing.T) {
	b := newFakeBackend()
	h := newTestHarness(t, b, PageTasks)
	openTask(t, h, "Place Reorder")
	h.Send(keyMsg(tea.KeyTab))
	h.Send(typeText("1x"))
	h.Send(typeText("2"))
	if got := h.Model().view.fields[1].input.Value(); got != "2" {
		t.Fatalf("expected only digits accepted, got %q", got)
	}
}

func TestSubmitFailureKeepsForm(t *testing.T) {
	b := newFakeBackend()
	b.submitErr = errFake
	h := newTestHarness(t, b, PageTasks)
	openTask(t, h, "Place Reorder")
	before := h.Model().view

	h.Send(typeText("green"))
	h.Send(keyMsg(tea.KeyEnter))
	h.Send(keyMsg(tea.KeyTab))
	h.Send(typeText("3"))
	h.Send(keyMsg(tea.KeyEnter))

	toast, _ := h.Model().Notices().Latest()
	if toast.Level != notify.Error || toast.Message != "Error placing reorder: fake failure" {
		t.Fatalf("expected failure notice, got %#v", toast)
	}
	v := h.Model().view
	if v != before || v.submitting {
		t.Fatal("expected the same form back and ready")
	}
	if key, _ := v.fields[0].cell.Value(); key != "2" {
		t.Fatalf("expected the selection kept, got %q", key)
	}
}

func TestReceiveReorderMarksReceived(t *testing.T) {
	h, _ := seededHarness(t, PageTasks)
	openTask(t, h, "Receive Reorder")

	h.Send(typeText("wool"))
	h.Send(keyMsg(tea.KeyEnter))
	h.Send(keyMsg(tea.KeyEnter))

	toast, _ := h.Model().Notices().Latest()
	if toast.Message != "Reorder ID 4 marked as received" {
		t.Fatalf("expected received notice, got %#v", toast)
	}
	opts := h.Model().view.fields[0].cell.Options()
	if len(opts) != 3 {
		t.Fatalf("expected 3 pending reorders left, got %#v", opts)
	}
	for _, opt := range opts {
		if opt.Key == "4" {
			t.Fatalf("expected reorder 4 gone from the list, got %#v", opts)
		}
	}
}

func TestReceiveReorderWithNothingPending(t *testing.T) {
	b := newFakeBackend()
	h := newTestHarness(t, b, PageTasks)
	openTask(t, h, "Receive Reorder")

	h.Send(keyMsg(tea.KeyEsc))
	h.Send(keyMsg(tea.KeyEnter))

	toast, _ := h.Model().Notices().Latest()
	if toast.Level != notify.Info || toast.Message != "No pending reorders to receive." {
		t.Fatalf("expected informational notice, got %#v", toast)
	}
}

func TestAddProductFlow(t *testing.T) {
	h, store := seededHarness(t, PageTasks)
	openTask(t, h, "Add Product")

	steps := []tea.Msg{
		typeText("Maple Syrup"), keyMsg(tea.KeyTab),
		typeText("groc"), keyMsg(tea.KeyEnter), keyMsg(tea.KeyTab),
		typeText("7.5"), keyMsg(tea.KeyTab),
		typeText("20"), keyMsg(tea.KeyTab),
		typeText("5"), keyMsg(tea.KeyTab),
		typeText("brig"), keyMsg(tea.KeyEnter),
		keyMsg(tea.KeyEnter),
	}
	for _, msg := range steps {
		h.Send(msg)
	}

	toast, _ := h.Model().Notices().Latest()
	if toast.Level != notify.Success || toast.Message != "Product 'Maple Syrup' added successfully" {
		t.Fatalf("expected success notice, got %#v", toast)
	}
	products, err := store.FetchList(context.Background(), inventory.ListProducts)
	if err != nil {
		t.Fatalf("products: %v", err)
	}
	found := false
	for _, opt := range products {
		if opt.Label == "Maple Syrup" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected the new product in the product list")
	}
	if got := h.Model().view.fields[0].input.Value(); got != "" {
		t.Fatalf("expected a blank form after success, got %q", got)
	}
}

func TestListLoadFailureLeavesEmptySelect(t *testing.T) {
	b := newFakeBackend()
	b.listErr = errFake
	h := newTestHarness(t, b, PageTasks)
	openTask(t, h, "Product History")

	toast, _ := h.Model().Notices().Latest()
	if toast.Level != notify.Error || toast.Message != "Error loading products list." {
		t.Fatalf("expected list failure notice, got %#v", toast)
	}
	rows, _ := h.Model().view.fields[0].widget.Rows(5)
	if len(rows) != 1 || rows[0].Label != widget.NoResultsText {
		t.Fatalf("expected no-results row, got %#v", rows)
	}
}

func TestStaleCandidatesIgnored(t *testing.T) {
	b := newFakeBackend()
	m := NewModel(Options{Backend: b})
	first := m.startTask(task.AddProduct)
	second := m.startTask(task.ProductHistory)

	m.Update(first())
	if v := m.view; v.def.Kind != task.ProductHistory || !v.loading || len(v.fields) != 0 {
		t.Fatalf("expected the superseded load to be dropped, got %#v", v)
	}
	m.Update(second())
	if v := m.view; v.loading || len(v.fields) != 1 {
		t.Fatalf("expected the current load applied, got %#v", v)
	}
}

func TestTaskSwitchTearsDownWidgets(t *testing.T) {
	b := newFakeBackend()
	h := newTestHarness(t, b, PageTasks)
	openTask(t, h, "Product History")
	v := h.Model().view
	cell := v.fields[0].cell
	if cell.Observers() != 1 {
		t.Fatalf("expected history observer, got %d", cell.Observers())
	}

	h.Send(keyMsg(tea.KeyCtrlT))

	if cell.Observers() != 0 {
		t.Fatal("expected observer dropped with the old view")
	}
	if h.Model().TaskKind() != task.PlaceReorder {
		t.Fatalf("expected place reorder next, got %s", h.Model().TaskKind())
	}
	for _, w := range h.Model().Widgets().Widgets() {
		if w == v.fields[0].widget {
			t.Fatal("expected old widget unregistered")
		}
	}
}

func TestCallbackFailureNotifies(t *testing.T) {
	h := newTestHarness(t, newFakeBackend(), PageTasks)
	h.Send(widget.CallbackFailedMsg{WidgetID: "product", Err: &value.PanicError{Value: "boom"}})

	toast, _ := h.Model().Notices().Latest()
	if toast.Level != notify.Error || !strings.Contains(toast.Message, "boom") {
		t.Fatalf("expected callback failure notice, got %#v", toast)
	}
}

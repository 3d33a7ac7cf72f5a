package widget

import (
	"errors"
	"testing"

	"github.com/atomicstack/stockroom/internal/value"
	tea "github.com/charmbracelet/bubbletea"
)

func sampleCandidates() []value.Option {
	return []value.Option{
		{Key: "1", Label: "Widget"},
		{Key: "2", Label: "Gadget"},
		{Key: "3", Label: "Widget Pro"},
	}
}

func runes(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

func TestTypingFiltersAndOpens(t *testing.T) {
	w := New("product", nil, sampleCandidates(), nil)
	if w.IsOpen() {
		t.Fatal("expected widget closed before interaction")
	}
	handled, _ := w.HandleKey(runes("wid"))
	if !handled {
		t.Fatal("expected runes to be handled")
	}
	if !w.IsOpen() {
		t.Fatal("expected typing to open the list")
	}
	visible := w.State().Visible
	if len(visible) != 2 || visible[0].Key != "1" || visible[1].Key != "3" {
		t.Fatalf("expected Widget and Widget Pro, got %#v", visible)
	}
}

func TestFocusOnEmptyCandidatesShowsNoResults(t *testing.T) {
	w := New("empty", nil, nil, nil)
	w.Focus()
	rows, more := w.Rows(5)
	if len(rows) != 1 || rows[0].Label != NoResultsText || rows[0].Index != -1 {
		t.Fatalf("expected single no-results row, got %#v", rows)
	}
	if more != 0 {
		t.Fatalf("expected nothing hidden, got %d", more)
	}
	if cmd := w.CommitVisible(0); cmd != nil {
		t.Fatal("expected no-results row to be inert")
	}
	if _, ok := w.Cell().Value(); ok {
		t.Fatal("expected no value after clicking the no-results row")
	}
}

func TestConstructionRebuildsCellOptions(t *testing.T) {
	cell := value.NewCell()
	cell.Reset([]value.Option{{Key: "stale", Label: "Stale"}})
	_ = cell.Select("stale")

	New("product", cell, sampleCandidates(), nil)
	if cell.HasOption("stale") {
		t.Fatal("expected pre-existing option discarded")
	}
	if _, ok := cell.Value(); ok {
		t.Fatal("expected pre-existing value discarded")
	}
	if len(cell.Options()) != 3 {
		t.Fatalf("expected 3 options, got %d", len(cell.Options()))
	}
}

func TestCommitSynthesizesMissingOption(t *testing.T) {
	cell := value.NewCell()
	w := New("product", cell, []value.Option{{Key: "1", Label: "Widget"}}, nil)

	w.Commit(value.Option{Key: "2", Label: "Gadget"})

	opt, ok := cell.Option("2")
	if !ok || opt.Label != "Gadget" {
		t.Fatalf("expected synthesized option (2, Gadget), got %#v (%v)", opt, ok)
	}
	key, ok := cell.Value()
	if !ok || key != "2" {
		t.Fatalf("expected value 2, got %q (%v)", key, ok)
	}
}

func TestCommitInvariantHoldsForEveryCandidate(t *testing.T) {
	cell := value.NewCell()
	w := New("product", cell, sampleCandidates(), nil)
	extra := value.Option{Key: "99", Label: "External"}
	for _, opt := range append(sampleCandidates(), extra) {
		w.Commit(opt)
		key, ok := cell.Value()
		if !ok || key != opt.Key {
			t.Fatalf("expected value %q, got %q", opt.Key, key)
		}
		if !cell.HasOption(opt.Key) {
			t.Fatalf("expected option for %q", opt.Key)
		}
		if committed, _ := w.State().CommittedKey(); committed != opt.Key {
			t.Fatalf("expected committed key %q, got %q", opt.Key, committed)
		}
	}
}

func TestClickCommitUpdatesInputClosesAndNotifies(t *testing.T) {
	cell := value.NewCell()
	var observed []value.Key
	cell.Subscribe(func(k value.Key) tea.Cmd {
		observed = append(observed, k)
		return nil
	})
	var committed []value.Key
	w := New("product", cell, sampleCandidates(), func(k value.Key) tea.Cmd {
		committed = append(committed, k)
		return nil
	})
	w.Focus()
	w.HandleKey(runes("gad"))

	w.CommitVisible(0)

	if w.IsOpen() {
		t.Fatal("expected list closed after commit")
	}
	if w.State().Filter != "Gadget" {
		t.Fatalf("expected input text Gadget, got %q", w.State().Filter)
	}
	if len(observed) != 1 || observed[0] != "2" {
		t.Fatalf("expected observer notified with 2, got %v", observed)
	}
	if len(committed) != 1 || committed[0] != "2" {
		t.Fatalf("expected callback with 2, got %v", committed)
	}
}

func TestEnterCommitsHighlightedRow(t *testing.T) {
	w := New("product", nil, sampleCandidates(), nil)
	w.Focus()
	w.HandleKey(runes("pro"))
	handled, _ := w.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if !handled {
		t.Fatal("expected enter to be handled while open")
	}
	if key, _ := w.Cell().Value(); key != "3" {
		t.Fatalf("expected Widget Pro committed, got %q", key)
	}
	handled, _ = w.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if handled {
		t.Fatal("expected enter on a closed list to fall through")
	}
}

func TestPanickingCallbackDoesNotUndoCommit(t *testing.T) {
	w := New("product", nil, sampleCandidates(), func(value.Key) tea.Cmd {
		panic("callback exploded")
	})
	w.Focus()

	cmd := w.CommitVisible(2)

	if key, _ := w.Cell().Value(); key != "3" {
		t.Fatalf("expected value committed despite panic, got %q", key)
	}
	if w.IsOpen() || w.State().Filter != "Widget Pro" {
		t.Fatalf("expected visual commit applied, open=%v filter=%q", w.IsOpen(), w.State().Filter)
	}
	if cmd == nil {
		t.Fatal("expected failure command")
	}
	msg, ok := cmd().(CallbackFailedMsg)
	if !ok {
		t.Fatalf("expected CallbackFailedMsg, got %T", cmd())
	}
	var panicErr *value.PanicError
	if msg.WidgetID != "product" || !errors.As(msg.Err, &panicErr) {
		t.Fatalf("unexpected failure message %#v", msg)
	}
}

func TestEscapeClosesOpenList(t *testing.T) {
	w := New("product", nil, sampleCandidates(), nil)
	w.Focus()
	if handled, _ := w.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}); !handled {
		t.Fatal("expected escape to close")
	}
	if handled, _ := w.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}); handled {
		t.Fatal("expected escape on a closed list to fall through")
	}
}

func TestRowsKeepHighlightVisible(t *testing.T) {
	opts := make([]value.Option, 0, 10)
	for i := 1; i <= 10; i++ {
		opts = append(opts, value.Option{Key: value.IntKey(int64(i)), Label: "Item " + string(rune('A'+i-1))})
	}
	w := New("many", nil, opts, nil)
	w.Focus()
	w.HandleKey(runes("item h"))
	w.State().SetFilter("", 0)
	w.State().Cursor = 7

	rows, more := w.Rows(4)
	if len(rows) != 4 || more != 6 {
		t.Fatalf("expected 4 rows and 6 hidden, got %d/%d", len(rows), more)
	}
	if !rows[3].Highlighted || rows[3].Index != 7 {
		t.Fatalf("expected highlighted row last in window, got %#v", rows)
	}
}

func TestArrowKeysMoveHighlightOnlyWhileOpen(t *testing.T) {
	w := New("product", nil, sampleCandidates(), nil)
	if handled, _ := w.HandleKey(tea.KeyMsg{Type: tea.KeyDown}); handled {
		t.Fatal("expected arrows on a closed list to fall through")
	}
	w.Focus()
	w.HandleKey(tea.KeyMsg{Type: tea.KeyDown})
	w.HandleKey(tea.KeyMsg{Type: tea.KeyDown})
	if opt, _ := w.State().Highlighted(); opt.Key != "3" {
		t.Fatalf("expected third row highlighted, got %q", opt.Key)
	}
	w.HandleKey(tea.KeyMsg{Type: tea.KeyUp})
	w.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if key, _ := w.Cell().Value(); key != "2" {
		t.Fatalf("expected Gadget committed, got %q", key)
	}
}

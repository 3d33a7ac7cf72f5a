package state

import "github.com/atomicstack/stockroom/internal/value"

// Selection holds the mutable state of one searchable selection widget: the
// immutable candidate set, the filter being typed, the rows currently visible
// and whether the list is open.
type Selection struct {
	ID           string
	Candidates   []value.Option
	Visible      []value.Option
	Filter       string
	FilterCursor int
	Cursor       int
	Open         bool

	committed    value.Key
	hasCommitted bool
}

// NewSelection constructs a closed selection over the provided candidates.
func NewSelection(id string, candidates []value.Option) *Selection {
	s := &Selection{
		ID:         id,
		Candidates: value.CloneOptions(candidates),
		Cursor:     -1,
	}
	s.applyFilter()
	return s
}

// Refilter recomputes the visible rows for the current filter text.
func (s *Selection) Refilter() {
	s.applyFilter()
}

// OpenList recomputes the visible rows and marks the list open.
func (s *Selection) OpenList() {
	s.applyFilter()
	s.Open = true
}

// Close hides the list, reporting whether it was open.
func (s *Selection) Close() bool {
	if !s.Open {
		return false
	}
	s.Open = false
	return true
}

// Commit records opt as the chosen candidate, replaces the filter text with
// its label and closes the list.
func (s *Selection) Commit(opt value.Option) {
	s.committed = opt.Key
	s.hasCommitted = true
	s.SetFilter(opt.Label, len([]rune(opt.Label)))
	s.Open = false
}

// CommittedKey returns the chosen key, if any.
func (s *Selection) CommittedKey() (value.Key, bool) {
	return s.committed, s.hasCommitted
}

// Highlighted returns the visible row the cursor rests on.
func (s *Selection) Highlighted() (value.Option, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Visible) {
		return value.Option{}, false
	}
	return s.Visible[s.Cursor], true
}

// VisibleAt returns the visible row at idx.
func (s *Selection) VisibleAt(idx int) (value.Option, bool) {
	if idx < 0 || idx >= len(s.Visible) {
		return value.Option{}, false
	}
	return s.Visible[idx], true
}

// NoResults reports whether the filter matched nothing.
func (s *Selection) NoResults() bool {
	return len(s.Visible) == 0
}

// MoveCursor shifts the highlight by delta within the visible rows, clamping
// at both ends. It reports whether the highlight moved.
func (s *Selection) MoveCursor(delta int) bool {
	if len(s.Visible) == 0 || delta == 0 {
		return false
	}
	next := s.Cursor + delta
	if s.Cursor < 0 {
		next = 0
		if delta < 0 {
			next = len(s.Visible) - 1
		}
	}
	if next < 0 {
		next = 0
	}
	if next >= len(s.Visible) {
		next = len(s.Visible) - 1
	}
	if next == s.Cursor {
		return false
	}
	s.Cursor = next
	return true
}

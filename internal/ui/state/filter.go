package state

import (
	"strings"
	"unicode"

	"github.com/atomicstack/stockroom/internal/value"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SetFilter updates the filter query and cursor position, recomputing the
// visible rows.
func (s *Selection) SetFilter(query string, cursor int) {
	s.Filter = query
	runes := []rune(s.Filter)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	s.FilterCursor = cursor
	s.applyFilter()
}

func (s *Selection) applyFilter() {
	s.Visible = FilterCandidates(s.Candidates, s.Filter)
	if len(s.Visible) == 0 {
		s.Cursor = -1
		return
	}
	if strings.TrimSpace(s.Filter) == "" {
		s.Cursor = 0
		if s.hasCommitted {
			for i, opt := range s.Visible {
				if opt.Key == s.committed {
					s.Cursor = i
					break
				}
			}
		}
		return
	}
	s.Cursor = BestMatchIndex(s.Visible, s.Filter)
}

// FilterCursorPos returns the rune offset of the filter cursor.
func (s *Selection) FilterCursorPos() int {
	runes := []rune(s.Filter)
	if s.FilterCursor < 0 {
		return 0
	}
	if s.FilterCursor > len(runes) {
		return len(runes)
	}
	return s.FilterCursor
}

// InsertFilterText inserts text into the filter at the cursor position.
func (s *Selection) InsertFilterText(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(s.Filter)
	pos := s.FilterCursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	s.SetFilter(string(updated), pos+len(insert))
	return true
}

// DeleteFilterRuneBackward deletes a rune before the filter cursor.
func (s *Selection) DeleteFilterRuneBackward() bool {
	runes := []rune(s.Filter)
	pos := s.FilterCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	updated := append(runes[:pos-1], runes[pos:]...)
	s.SetFilter(string(updated), pos-1)
	return true
}

// DeleteFilterWordBackward deletes the word preceding the cursor.
func (s *Selection) DeleteFilterWordBackward() bool {
	runes := []rune(s.Filter)
	pos := s.FilterCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := wordStart(runes, pos)
	updated := append(runes[:i], runes[pos:]...)
	s.SetFilter(string(updated), i)
	return true
}

// ClearFilter empties the filter, reporting whether anything changed.
func (s *Selection) ClearFilter() bool {
	if s.Filter == "" {
		return false
	}
	s.SetFilter("", 0)
	return true
}

// MoveFilterCursorStart moves the filter cursor to the start.
func (s *Selection) MoveFilterCursorStart() bool {
	if s.FilterCursorPos() == 0 {
		return false
	}
	s.FilterCursor = 0
	return true
}

// MoveFilterCursorEnd moves the filter cursor to the end.
func (s *Selection) MoveFilterCursorEnd() bool {
	end := len([]rune(s.Filter))
	if s.FilterCursorPos() == end {
		return false
	}
	s.FilterCursor = end
	return true
}

// MoveFilterCursorWordBackward moves the filter cursor one word backward.
func (s *Selection) MoveFilterCursorWordBackward() bool {
	runes := []rune(s.Filter)
	pos := s.FilterCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := wordStart(runes, pos)
	if i == pos {
		return false
	}
	s.FilterCursor = i
	return true
}

// MoveFilterCursorWordForward moves the filter cursor one word forward.
func (s *Selection) MoveFilterCursorWordForward() bool {
	runes := []rune(s.Filter)
	pos := s.FilterCursorPos()
	if pos >= len(runes) {
		return false
	}
	i := pos
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	if i == pos {
		return false
	}
	s.FilterCursor = i
	return true
}

// MoveFilterCursorRuneBackward moves the filter cursor one rune backward.
func (s *Selection) MoveFilterCursorRuneBackward() bool {
	if s.FilterCursorPos() == 0 {
		return false
	}
	s.FilterCursor = s.FilterCursorPos() - 1
	return true
}

// MoveFilterCursorRuneForward moves the filter cursor one rune forward.
func (s *Selection) MoveFilterCursorRuneForward() bool {
	runes := []rune(s.Filter)
	pos := s.FilterCursorPos()
	if pos >= len(runes) {
		return false
	}
	s.FilterCursor = pos + 1
	return true
}

func wordStart(runes []rune, pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}

// FilterCandidates returns the candidates whose label contains query, ignoring
// case, in their original order. An empty query returns every candidate.
func FilterCandidates(candidates []value.Option, query string) []value.Option {
	if query == "" {
		return value.CloneOptions(candidates)
	}
	lower := strings.ToLower(query)
	filtered := make([]value.Option, 0, len(candidates))
	for _, opt := range candidates {
		if strings.Contains(strings.ToLower(opt.Label), lower) {
			filtered = append(filtered, opt)
		}
	}
	return filtered
}

// BestMatchIndex returns the row to highlight for query among the visible
// options. Rows are ranked by fuzzy distance, so the label closest to the
// query wins; ties keep candidate order.
func BestMatchIndex(options []value.Option, query string) int {
	if len(options) == 0 {
		return -1
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return 0
	}
	labels := make([]string, len(options))
	for i, opt := range options {
		labels[i] = opt.Label
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) == 0 {
		return 0
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance ||
			(rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	if best.OriginalIndex < 0 || best.OriginalIndex >= len(options) {
		return 0
	}
	return best.OriginalIndex
}

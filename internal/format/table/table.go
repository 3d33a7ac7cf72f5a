package table

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

const tail = "…"

// Format returns the rows padded according to the widest entry in each column.
// Rows may be ragged; missing cells are rendered blank.
func Format(rows [][]string, alignments []Alignment) []string {
	return FormatWithin(rows, alignments, 0)
}

// FormatWithin is Format with every cell truncated to maxCell columns. A
// non-positive maxCell disables truncation.
func FormatWithin(rows [][]string, alignments []Alignment, maxCell int) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	cells := make([][]string, len(rows))
	widths := make([]int, colCount)
	for i, row := range rows {
		cells[i] = make([]string, colCount)
		for c := 0; c < colCount; c++ {
			var cell string
			if c < len(row) {
				cell = row[c]
			}
			if maxCell > 0 && cellWidth(cell) > maxCell {
				cell = ansi.Truncate(cell, maxCell, tail)
			}
			cells[i][c] = cell
			if width := cellWidth(cell); width > widths[c] {
				widths[c] = width
			}
		}
	}
	out := make([]string, len(rows))
	for i, row := range cells {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString("  ")
			}
			width := widths[c] - cellWidth(cell)
			if width < 0 {
				width = 0
			}
			if c < len(alignments) && alignments[c] == AlignRight {
				writeSpaces(&b, width)
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				writeSpaces(&b, width)
			}
		}
		out[i] = strings.TrimRight(b.String(), " ")
	}
	return out
}

// InferAlignments right-aligns every column whose non-empty cells are all
// numeric.
func InferAlignments(rows [][]string) []Alignment {
	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	aligns := make([]Alignment, colCount)
	for c := 0; c < colCount; c++ {
		numeric, seen := true, false
		for _, row := range rows {
			if c >= len(row) || row[c] == "" {
				continue
			}
			seen = true
			if _, err := strconv.ParseFloat(row[c], 64); err != nil {
				numeric = false
				break
			}
		}
		if numeric && seen {
			aligns[c] = AlignRight
		}
	}
	return aligns
}

func cellWidth(text string) int {
	return ansi.StringWidth(text)
}

func writeSpaces(b *strings.Builder, count int) {
	if count <= 0 {
		return
	}
	b.WriteString(strings.Repeat(" ", count))
}

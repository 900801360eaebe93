package token

import "fmt"

// Location identifies a range of source text by line and column. Lines and
// columns are 1-based byte positions; ColEnd is inclusive, so a single-column
// token has ColStart == ColEnd.
type Location struct {
	LineStart uint32
	ColStart  uint32
	LineEnd   uint32
	ColEnd    uint32
}

// NewLocation builds a location from explicit start and end coordinates.
func NewLocation(lineStart, colStart, lineEnd, colEnd uint32) Location {
	return Location{LineStart: lineStart, ColStart: colStart, LineEnd: lineEnd, ColEnd: colEnd}
}

// Point builds a degenerate location covering a single column.
func Point(line, col uint32) Location {
	return Location{LineStart: line, ColStart: col, LineEnd: line, ColEnd: col}
}

// IsMultiLine reports whether the location spans more than one physical line.
func (l Location) IsMultiLine() bool {
	return l.LineEnd > l.LineStart
}

// String renders the location as "line:colStart-colEnd" for single-line
// locations and "lineStart:colStart-lineEnd:colEnd" otherwise.
func (l Location) String() string {
	if l.IsMultiLine() {
		return fmt.Sprintf("%d:%d-%d:%d", l.LineStart, l.ColStart, l.LineEnd, l.ColEnd)
	}
	return fmt.Sprintf("%d:%d-%d", l.LineStart, l.ColStart, l.ColEnd)
}

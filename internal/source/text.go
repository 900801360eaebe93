package source

import (
	"panther/internal/token"
)

// lineOffset returns the byte offset of the first byte of the 1-based line.
// Line breaks are \n, \r, or \r\n counted once, matching the tokenizer.
func (f *File) lineOffset(line uint32) int {
	off := 0
	for cur := uint32(1); cur < line && off < len(f.Text); off++ {
		switch f.Text[off] {
		case '\n':
			cur++
		case '\r':
			cur++
			if off+1 < len(f.Text) && f.Text[off+1] == '\n' {
				off++
			}
		}
	}
	return off
}

// SpanText returns the raw bytes covered by loc as a string. Columns are
// 1-based byte positions with an inclusive end; out-of-range spans are
// clamped to the file.
func (f *File) SpanText(loc token.Location) string {
	start := f.lineOffset(loc.LineStart) + int(loc.ColStart) - 1
	end := f.lineOffset(loc.LineEnd) + int(loc.ColEnd)
	if start > len(f.Text) {
		start = len(f.Text)
	}
	if end > len(f.Text) {
		end = len(f.Text)
	}
	if end < start {
		end = start
	}
	return string(f.Text[start:end])
}

// LineText returns the 1-based line's text without its trailing line break.
func (f *File) LineText(line uint32) string {
	start := f.lineOffset(line)
	end := start
	for end < len(f.Text) && f.Text[end] != '\n' && f.Text[end] != '\r' {
		end++
	}
	return string(f.Text[start:end])
}

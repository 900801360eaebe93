package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"panther/internal/source"
	"panther/internal/token"
)

// Cursor walks a file's bytes while maintaining 1-based line and byte-column
// counters. Bumping over '\n' starts a new line; so does '\r', and an
// immediately following '\n' is consumed as part of the same line break.
type Cursor struct {
	file  *source.File
	off   uint32
	limit uint32
	line  uint32
	col   uint32
}

// NewCursor creates a cursor at the start of the file.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Text))
	if err != nil {
		panic(fmt.Errorf("len file text overflow: %w", err))
	}
	return Cursor{
		file:  f,
		off:   0,
		limit: limit,
		line:  1,
		col:   1,
	}
}

// EOF reports whether the cursor has consumed the whole file.
func (c *Cursor) EOF() bool {
	return c.off >= c.limit
}

// Peek returns the current byte, or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.file.Text[c.off]
}

// Peek2 returns the current and next byte, or ok=false if fewer remain.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.off+1 >= c.limit {
		return 0, 0, false
	}
	return c.file.Text[c.off], c.file.Text[c.off+1], true
}

// Bump consumes one byte and returns it, updating the line/column counters.
// A consumed '\r' swallows an immediately following '\n' so that CRLF counts
// as a single line break.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.file.Text[c.off]
	c.off++
	switch b {
	case '\n':
		c.line++
		c.col = 1
	case '\r':
		c.line++
		c.col = 1
		if c.off < c.limit && c.file.Text[c.off] == '\n' {
			c.off++
		}
	default:
		c.col++
	}
	return b
}

// Eat consumes the next byte if it matches b.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.file.Text[c.off] == b {
		c.Bump()
		return true
	}
	return false
}

// Mark captures a cursor position so a scanner can later recover the lexeme
// text and location of what it consumed.
type Mark struct {
	off  uint32
	line uint32
	col  uint32
}

// Mark saves the current position.
func (c *Cursor) Mark() Mark {
	return Mark{off: c.off, line: c.line, col: c.col}
}

// TextFrom returns the raw bytes consumed since the mark.
func (c *Cursor) TextFrom(m Mark) []byte {
	return c.file.Text[m.off:c.off]
}

// LocationFrom builds the inclusive location covering everything consumed
// since the mark. The end column is the last consumed column, clamped to 1
// when the cursor sits at the start of a fresh line.
func (c *Cursor) LocationFrom(m Mark) token.Location {
	endCol := c.col
	if endCol > 1 {
		endCol--
	}
	return token.NewLocation(m.line, m.col, c.line, endCol)
}

// PointLocation builds a single-column location at the mark.
func (c *Cursor) PointLocation(m Mark) token.Location {
	return token.Point(m.line, m.col)
}

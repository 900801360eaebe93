// Package testkit holds invariant checkers shared by tests and fuzz
// harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"panther/internal/source"
	"panther/internal/token"
)

// CheckTokenInvariants validates a finished token buffer against the file it
// was lexed from:
//  1. the buffer is locked, non-empty, and ends with exactly one EOF
//  2. every location is 1-based, does not end before it starts, and stays
//     inside the file's line range
//  3. tokens appear in source order
//  4. every non-EOF single-line token covers at least one byte of text
func CheckTokenInvariants(sf *source.File, buf *token.Buffer) error {
	if sf == nil || buf == nil {
		return fmt.Errorf("nil file or buffer")
	}
	if !buf.IsLocked() {
		return fmt.Errorf("buffer is not locked")
	}
	n := buf.Len()
	if n == 0 {
		return fmt.Errorf("buffer is empty")
	}

	lines := countLines(sf.Text)

	var prev token.Location
	for i := range n {
		idx, err := safecast.Conv[uint32](i)
		if err != nil {
			return fmt.Errorf("token index overflow: %w", err)
		}
		tok := buf.Get(token.ID(idx))
		loc := tok.Loc

		if tok.Kind == token.EOF && i != n-1 {
			return fmt.Errorf("token %d: EOF before end of buffer", i)
		}
		if i == n-1 && tok.Kind != token.EOF {
			return fmt.Errorf("final token is %v, want EOF", tok.Kind)
		}

		if loc.LineStart < 1 || loc.ColStart < 1 {
			return fmt.Errorf("token %d (%v): location %s is not 1-based", i, tok.Kind, loc)
		}
		if loc.LineEnd < loc.LineStart {
			return fmt.Errorf("token %d (%v): end line before start line: %s", i, tok.Kind, loc)
		}
		if loc.LineEnd == loc.LineStart && loc.ColEnd < loc.ColStart {
			return fmt.Errorf("token %d (%v): end column before start column: %s", i, tok.Kind, loc)
		}
		if loc.LineEnd > lines {
			return fmt.Errorf("token %d (%v): line %d beyond last line %d", i, tok.Kind, loc.LineEnd, lines)
		}

		if i > 0 {
			if loc.LineStart < prev.LineStart ||
				(loc.LineStart == prev.LineStart && loc.ColStart < prev.ColStart) {
				return fmt.Errorf("token %d (%v): location %s before previous %s", i, tok.Kind, loc, prev)
			}
		}
		prev = loc

		if tok.Kind != token.EOF && !loc.IsMultiLine() && sf.SpanText(loc) == "" {
			return fmt.Errorf("token %d (%v): empty span at %s", i, tok.Kind, loc)
		}
	}
	return nil
}

// countLines counts physical lines the way the tokenizer does: '\n', '\r',
// and the pair "\r\n" each end one line. Empty input still has line 1.
func countLines(text []byte) uint32 {
	var lines uint32 = 1
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines++
		case '\r':
			lines++
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
		}
	}
	return lines
}

package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"
)

// ASCII fast path for identifiers; Unicode goes through the rune variants.
func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || (b >= '0' && b <= '9')
}

func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinueRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isBin(b byte) bool { return b == '0' || b == '1' }

func isOct(b byte) bool { return b >= '0' && b <= '7' }

func isHex(b byte) bool {
	return (b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'f') ||
		(b >= 'A' && b <= 'F')
}

// peekRune decodes the rune at the cursor without consuming it.
func (tz *Tokenizer) peekRune() (r rune, size int) {
	if tz.cursor.EOF() {
		return utf8.RuneError, 0
	}
	b := tz.cursor.Peek()
	if b < utf8.RuneSelf {
		return rune(b), 1
	}
	r, sz := utf8.DecodeRune(tz.file.Text[tz.cursor.off:])
	return r, sz
}

// bumpRune consumes the rune at the cursor. Multi-byte runes advance the
// column by one per byte; runes never start a line break.
func (tz *Tokenizer) bumpRune() {
	_, sz := tz.peekRune()
	if sz == 0 {
		return
	}
	usz, err := safecast.Conv[uint32](sz)
	if err != nil {
		panic(fmt.Errorf("bumpRune overflow: %w", err))
	}
	tz.cursor.off += usz
	tz.cursor.col += usz
}

// try2 consumes two bytes when they match exactly.
func (tz *Tokenizer) try2(a, b byte) bool {
	b0, b1, ok := tz.cursor.Peek2()
	if !ok || b0 != a || b1 != b {
		return false
	}
	tz.cursor.Bump()
	tz.cursor.Bump()
	return true
}

package lexer

import (
	"fmt"
	"strconv"
	"strings"

	"panther/internal/diag"
	"panther/internal/token"
)

// Supported forms: 0, 123, 0b1010, 0o755, 0xFF, 1.0, .5, 1e-3, 1.0e+10.
// Underscores may separate digits and are stripped before parsing; their
// placement is not validated. A '.' with no digit after it is not part of the
// number and stays for the operator scanner, so "1.x" lexes as 1, '.', x.
func (tz *Tokenizer) scanNumber(buf *token.Buffer) error {
	mark := tz.cursor.Mark()
	kind := token.IntLit

	// Leading dot: ".digits" (the dispatcher checked a digit follows).
	if tz.cursor.Peek() == '.' {
		kind = token.FloatLit
		tz.cursor.Bump()
		tz.bumpDigits(isDec)
		if err := tz.scanExponent(&kind, mark); err != nil {
			return err
		}
		return tz.emitNumber(buf, kind, mark, 10)
	}

	// A leading 0 may select a base.
	if tz.cursor.Peek() == '0' {
		if _, b1, ok := tz.cursor.Peek2(); ok {
			switch b1 {
			case 'x', 'X':
				return tz.scanBasedInt(buf, mark, 16, isHex)
			case 'b', 'B':
				return tz.scanBasedInt(buf, mark, 2, isBin)
			case 'o', 'O':
				return tz.scanBasedInt(buf, mark, 8, isOct)
			}
		}
	}

	// Decimal integer part.
	tz.bumpDigits(isDec)

	// Fraction, only when a digit actually follows the dot.
	if b0, b1, ok := tz.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		kind = token.FloatLit
		tz.cursor.Bump()
		tz.bumpDigits(isDec)
	}

	if err := tz.scanExponent(&kind, mark); err != nil {
		return err
	}
	return tz.emitNumber(buf, kind, mark, 10)
}

// bumpDigits consumes digits of the class plus '_' separators.
func (tz *Tokenizer) bumpDigits(class func(byte) bool) {
	for class(tz.cursor.Peek()) || tz.cursor.Peek() == '_' {
		tz.cursor.Bump()
	}
}

func (tz *Tokenizer) scanBasedInt(buf *token.Buffer, mark Mark, base int, class func(byte) bool) error {
	tz.cursor.Bump() // '0'
	prefix := tz.cursor.Bump()
	if !class(tz.cursor.Peek()) {
		return tz.fail(diag.LexMalformedNumber, tz.cursor.LocationFrom(mark),
			fmt.Sprintf("expected digits after '0%c'", prefix))
	}
	tz.bumpDigits(class)
	return tz.emitNumber(buf, token.IntLit, mark, base)
}

// scanExponent commits once it sees 'e' or 'E': a digit must follow the
// optional sign or the literal is malformed.
func (tz *Tokenizer) scanExponent(kind *token.Kind, mark Mark) error {
	if b := tz.cursor.Peek(); b != 'e' && b != 'E' {
		return nil
	}
	*kind = token.FloatLit
	tz.cursor.Bump()
	if b := tz.cursor.Peek(); b == '+' || b == '-' {
		tz.cursor.Bump()
	}
	if !isDec(tz.cursor.Peek()) {
		return tz.fail(diag.LexMalformedNumber, tz.cursor.LocationFrom(mark), "expected digit after exponent")
	}
	tz.bumpDigits(isDec)
	return nil
}

func (tz *Tokenizer) emitNumber(buf *token.Buffer, kind token.Kind, mark Mark, base int) error {
	loc := tz.cursor.LocationFrom(mark)
	text := string(tz.cursor.TextFrom(mark))
	digits := strings.ReplaceAll(text, "_", "")

	if kind == token.IntLit {
		if base != 10 {
			digits = digits[2:] // strip the "0x"/"0b"/"0o" prefix
		}
		value, err := strconv.ParseUint(digits, base, 64)
		if err != nil {
			return tz.fail(diag.LexMalformedNumber, loc, fmt.Sprintf("integer literal %q out of range", text))
		}
		buf.AppendUint(token.IntLit, loc, value)
		return nil
	}

	value, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return tz.fail(diag.LexMalformedNumber, loc, fmt.Sprintf("float literal %q out of range", text))
	}
	buf.AppendFloat(token.FloatLit, loc, value)
	return nil
}

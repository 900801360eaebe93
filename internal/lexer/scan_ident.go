package lexer

import (
	"unicode/utf8"

	"panther/internal/token"
)

// scanIdentOrKeyword scans an identifier and checks it against LookupKeyword.
// Keywords are case-sensitive (lowercase only). Identifiers carry no payload;
// their text is recovered from the span when a consumer needs it. The boolean
// literals come through here and get their payload from the lexeme.
func (tz *Tokenizer) scanIdentOrKeyword(buf *token.Buffer) {
	mark := tz.cursor.Mark()

	// The dispatcher guaranteed a valid start character. Consume it, then any
	// mix of ASCII and Unicode continuation characters.
	if tz.cursor.Peek() < utf8.RuneSelf {
		tz.cursor.Bump()
	} else {
		tz.bumpRune()
	}
	for {
		b := tz.cursor.Peek()
		if isIdentContinueByte(b) {
			tz.cursor.Bump()
			continue
		}
		if b >= utf8.RuneSelf {
			if r, _ := tz.peekRune(); isIdentContinueRune(r) {
				tz.bumpRune()
				continue
			}
		}
		break
	}

	loc := tz.cursor.LocationFrom(mark)
	text := string(tz.cursor.TextFrom(mark))

	if kind, ok := token.LookupKeyword(text); ok {
		if kind == token.BoolLit {
			buf.AppendBool(kind, loc, text == "true")
			return
		}
		buf.Append(kind, loc)
		return
	}
	buf.Append(token.Ident, loc)
}

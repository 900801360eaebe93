package lexer

import (
	"fmt"
	"strings"

	"panther/internal/diag"
	"panther/internal/token"
)

// scanString scans "..." into a StringLit whose payload is the unescaped
// text. Escapes: \n \t \r \\ \" \0. A raw line break or EOF inside the
// literal is a fault; so is an unknown escape, reported with the escape's
// own two-column span.
func (tz *Tokenizer) scanString(buf *token.Buffer) error {
	mark := tz.cursor.Mark()
	tz.cursor.Bump() // opening '"'

	var value strings.Builder
	for !tz.cursor.EOF() {
		switch b := tz.cursor.Peek(); b {
		case '"':
			tz.cursor.Bump()
			buf.AppendString(token.StringLit, tz.cursor.LocationFrom(mark), value.String())
			return nil
		case '\\':
			escMark := tz.cursor.Mark()
			tz.cursor.Bump()
			if tz.cursor.EOF() {
				return tz.fail(diag.LexUnterminatedString, tz.cursor.LocationFrom(mark), "unterminated string literal")
			}
			switch esc := tz.cursor.Bump(); esc {
			case 'n':
				value.WriteByte('\n')
			case 't':
				value.WriteByte('\t')
			case 'r':
				value.WriteByte('\r')
			case '\\':
				value.WriteByte('\\')
			case '"':
				value.WriteByte('"')
			case '0':
				value.WriteByte(0)
			case '\n', '\r':
				return tz.fail(diag.LexUnterminatedString, tz.cursor.LocationFrom(mark), "newline in string literal")
			default:
				return tz.fail(diag.LexInvalidEscape, tz.cursor.LocationFrom(escMark),
					fmt.Sprintf("invalid escape sequence '\\%c'", esc))
			}
		case '\n', '\r':
			return tz.fail(diag.LexUnterminatedString, tz.cursor.LocationFrom(mark), "newline in string literal")
		default:
			value.WriteByte(tz.cursor.Bump())
		}
	}
	return tz.fail(diag.LexUnterminatedString, tz.cursor.LocationFrom(mark), "unterminated string literal")
}

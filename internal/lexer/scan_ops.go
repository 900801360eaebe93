package lexer

import (
	"fmt"

	"panther/internal/diag"
	"panther/internal/token"
)

// Greedy operator matching: two-byte forms first, then one-byte.
func (tz *Tokenizer) scanOperator(buf *token.Buffer) error {
	mark := tz.cursor.Mark()
	emit := func(k token.Kind) error {
		buf.Append(k, tz.cursor.LocationFrom(mark))
		return nil
	}

	switch {
	case tz.try2(':', '='):
		return emit(token.ColonAssign)
	case tz.try2('=', '='):
		return emit(token.EqEq)
	case tz.try2('!', '='):
		return emit(token.BangEq)
	case tz.try2('<', '='):
		return emit(token.LtEq)
	case tz.try2('>', '='):
		return emit(token.GtEq)
	case tz.try2('&', '&'):
		return emit(token.AndAnd)
	case tz.try2('|', '|'):
		return emit(token.OrOr)
	case tz.try2('-', '>'):
		return emit(token.Arrow)
	}

	switch b := tz.cursor.Bump(); b {
	case '+':
		return emit(token.Plus)
	case '-':
		return emit(token.Minus)
	case '*':
		return emit(token.Star)
	case '/':
		return emit(token.Slash)
	case '%':
		return emit(token.Percent)
	case '=':
		return emit(token.Assign)
	case '!':
		return emit(token.Bang)
	case '<':
		return emit(token.Lt)
	case '>':
		return emit(token.Gt)
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	case '[':
		return emit(token.LBracket)
	case ']':
		return emit(token.RBracket)
	case ',':
		return emit(token.Comma)
	case ';':
		return emit(token.Semicolon)
	case ':':
		return emit(token.Colon)
	case '.':
		return emit(token.Dot)
	default:
		return tz.fail(diag.LexUnknownChar, tz.cursor.LocationFrom(mark),
			fmt.Sprintf("unknown character %q", b))
	}
}

// errUnknownChar consumes the offending rune and reports it.
func (tz *Tokenizer) errUnknownChar() error {
	mark := tz.cursor.Mark()
	r, _ := tz.peekRune()
	tz.bumpRune()
	return tz.fail(diag.LexUnknownChar, tz.cursor.LocationFrom(mark),
		fmt.Sprintf("unknown character %q", r))
}

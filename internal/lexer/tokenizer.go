package lexer

import (
	"errors"
	"unicode/utf8"

	"panther/internal/diag"
	"panther/internal/source"
	"panther/internal/token"
)

// ErrLexicalFault is returned by Tokenize when the source contains malformed
// input. Details travel through the Reporter, not the error.
var ErrLexicalFault = errors.New("lexical fault")

// Tokenizer scans one source file into a token buffer. It is single use:
// create a fresh one per tokenize run.
type Tokenizer struct {
	file   *source.File
	cursor Cursor
	opts   Options
}

// New creates a tokenizer bound to the file.
func New(file *source.File, opts Options) *Tokenizer {
	return &Tokenizer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Tokenize scans the whole file left to right. The first malformed input is
// reported with its span and aborts the scan; the partial buffer must be
// discarded by the caller. On success the returned buffer is locked and its
// final token is always EOF.
func (tz *Tokenizer) Tokenize() (*token.Buffer, error) {
	buf := token.NewBuffer()
	for {
		mark := tz.cursor.Mark()
		if err := tz.skipTrivia(); err != nil {
			return nil, err
		}
		if tz.cursor.EOF() {
			// EOF sits right after the last token, before any trailing
			// whitespace or comments.
			buf.Append(token.EOF, tz.cursor.PointLocation(mark))
			break
		}
		if err := tz.scanToken(buf); err != nil {
			return nil, err
		}
	}
	buf.Lock()
	return buf, nil
}

func (tz *Tokenizer) scanToken(buf *token.Buffer) error {
	switch b := tz.cursor.Peek(); {
	case isIdentStartByte(b):
		tz.scanIdentOrKeyword(buf)
		return nil
	case b >= utf8.RuneSelf:
		if r, _ := tz.peekRune(); isIdentStartRune(r) {
			tz.scanIdentOrKeyword(buf)
			return nil
		}
		return tz.errUnknownChar()
	case isDec(b):
		return tz.scanNumber(buf)
	case b == '.':
		// ".5" is a float literal; a lone dot is an operator.
		if _, b1, ok := tz.cursor.Peek2(); ok && isDec(b1) {
			return tz.scanNumber(buf)
		}
		return tz.scanOperator(buf)
	case b == '"':
		return tz.scanString(buf)
	default:
		return tz.scanOperator(buf)
	}
}

// fail reports the fault and returns the sentinel the scan loop propagates.
func (tz *Tokenizer) fail(code diag.Code, loc token.Location, msg string) error {
	tz.report(code, source.LocationOf(tz.file.ID, loc), msg)
	return ErrLexicalFault
}

// skipTrivia consumes whitespace and comments. Line breaks are '\n', '\r',
// or the pair "\r\n" counted once.
func (tz *Tokenizer) skipTrivia() error {
	for !tz.cursor.EOF() {
		switch tz.cursor.Peek() {
		case ' ', '\t', '\n', '\r':
			tz.cursor.Bump()
		case '/':
			_, b1, ok := tz.cursor.Peek2()
			if !ok || (b1 != '/' && b1 != '*') {
				return nil
			}
			if b1 == '/' {
				tz.skipLineComment()
			} else if err := tz.skipBlockComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

func (tz *Tokenizer) skipLineComment() {
	// up to, not including, the line break
	for !tz.cursor.EOF() && tz.cursor.Peek() != '\n' && tz.cursor.Peek() != '\r' {
		tz.cursor.Bump()
	}
}

func (tz *Tokenizer) skipBlockComment() error {
	mark := tz.cursor.Mark()
	tz.cursor.Bump() // '/'
	tz.cursor.Bump() // '*'

	depth := 1
	for !tz.cursor.EOF() && depth > 0 {
		if b0, b1, ok := tz.cursor.Peek2(); ok {
			if b0 == '/' && b1 == '*' {
				tz.cursor.Bump()
				tz.cursor.Bump()
				depth++
				continue
			}
			if b0 == '*' && b1 == '/' {
				tz.cursor.Bump()
				tz.cursor.Bump()
				depth--
				continue
			}
		}
		tz.cursor.Bump()
	}
	if depth > 0 {
		return tz.fail(diag.LexUnterminatedBlockComment, tz.cursor.LocationFrom(mark), "unterminated block comment")
	}
	return nil
}

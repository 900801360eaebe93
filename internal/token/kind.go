package token

import "fmt"

// Kind represents the category of a source token.
type Kind uint8

const (
	// None indicates an absent or erroneous token.
	None Kind = iota
	// EOF marks the end of the token stream.
	EOF

	// Ident represents an identifier token.
	Ident

	// KwVar represents the 'var' keyword.
	KwVar // var
	// KwConst represents the 'const' keyword.
	KwConst // const
	// KwFunc represents the 'func' keyword.
	KwFunc // func
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwReturn represents the 'return' keyword.
	KwReturn // return

	// BoolLit represents a boolean literal token; carries a bool payload.
	BoolLit // true | false
	// IntLit represents an integer literal token; carries a uint64 payload.
	IntLit
	// FloatLit represents a float literal token; carries a float64 payload.
	FloatLit
	// StringLit represents a string literal token; carries an out-of-line
	// string payload holding the unescaped text.
	StringLit

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// Slash represents the slash operator token.
	Slash // /
	// Percent represents the percent operator token.
	Percent // %
	// Assign represents the assign operator token.
	Assign // =
	// ColonAssign represents the declare-assign operator token.
	ColonAssign // :=
	// EqEq represents the equality operator token.
	EqEq // ==
	// Bang represents the logical-not operator token.
	Bang // !
	// BangEq represents the inequality operator token.
	BangEq // !=
	// Lt represents the less-than operator token.
	Lt // <
	// LtEq represents the less-or-equal operator token.
	LtEq // <=
	// Gt represents the greater-than operator token.
	Gt // >
	// GtEq represents the greater-or-equal operator token.
	GtEq // >=
	// AndAnd represents the logical-and operator token.
	AndAnd // &&
	// OrOr represents the logical-or operator token.
	OrOr // ||
	// Arrow represents the arrow operator token.
	Arrow // ->
	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
	// LBrace represents the left brace token.
	LBrace // {
	// RBrace represents the right brace token.
	RBrace // }
	// LBracket represents the left bracket token.
	LBracket // [
	// RBracket represents the right bracket token.
	RBracket // ]
	// Comma represents the comma token.
	Comma // ,
	// Semicolon represents the semicolon token.
	Semicolon // ;
	// Colon represents the colon token.
	Colon // :
	// Dot represents the dot token.
	Dot // .

	kindCount // keep last
)

var kindNames = [kindCount]string{
	None:        "None",
	EOF:         "EOF",
	Ident:       "Ident",
	KwVar:       "var",
	KwConst:     "const",
	KwFunc:      "func",
	KwIf:        "if",
	KwElse:      "else",
	KwWhile:     "while",
	KwReturn:    "return",
	BoolLit:     "BoolLit",
	IntLit:      "IntLit",
	FloatLit:    "FloatLit",
	StringLit:   "StringLit",
	Plus:        "+",
	Minus:       "-",
	Star:        "*",
	Slash:       "/",
	Percent:     "%",
	Assign:      "=",
	ColonAssign: ":=",
	EqEq:        "==",
	Bang:        "!",
	BangEq:      "!=",
	Lt:          "<",
	LtEq:        "<=",
	Gt:          ">",
	GtEq:        ">=",
	AndAnd:      "&&",
	OrOr:        "||",
	Arrow:       "->",
	LParen:      "(",
	RParen:      ")",
	LBrace:      "{",
	RBrace:      "}",
	LBracket:    "[",
	RBracket:    "]",
	Comma:       ",",
	Semicolon:   ";",
	Colon:       ":",
	Dot:         ".",
}

// String returns the display name of the kind: the lexeme for keywords and
// operators, the category name otherwise.
func (k Kind) String() string {
	if k < kindCount && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsKeyword reports whether the kind is a language keyword.
func (k Kind) IsKeyword() bool {
	return k >= KwVar && k <= KwReturn
}

// IsLiteral reports whether the kind is a payload-bearing literal.
func (k Kind) IsLiteral() bool {
	return k >= BoolLit && k <= StringLit
}

// IsPunctOrOp reports whether the kind is a punctuation or operator.
func (k Kind) IsPunctOrOp() bool {
	return k >= Plus && k <= Dot
}

package token_test

import (
	"testing"

	"panther/internal/token"
)

func TestKindString(t *testing.T) {
	cases := map[token.Kind]string{
		token.EOF:         "EOF",
		token.Ident:       "Ident",
		token.KwVar:       "var",
		token.KwReturn:    "return",
		token.IntLit:      "IntLit",
		token.StringLit:   "StringLit",
		token.ColonAssign: ":=",
		token.Arrow:       "->",
		token.AndAnd:      "&&",
		token.LParen:      "(",
		token.Dot:         ".",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Fatalf("Kind(%d).String() = %q, want %q", uint8(k), got, want)
		}
	}
}

func TestKindClassification(t *testing.T) {
	keywords := []token.Kind{
		token.KwVar, token.KwConst, token.KwFunc, token.KwIf,
		token.KwElse, token.KwWhile, token.KwReturn,
	}
	for _, k := range keywords {
		if !k.IsKeyword() {
			t.Fatalf("%v should be keyword", k)
		}
		if k.IsLiteral() || k.IsPunctOrOp() {
			t.Fatalf("%v must only be keyword", k)
		}
	}

	lits := []token.Kind{token.BoolLit, token.IntLit, token.FloatLit, token.StringLit}
	for _, k := range lits {
		if !k.IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}

	ops := []token.Kind{
		token.Plus, token.Minus, token.Star, token.Slash, token.Percent,
		token.Assign, token.ColonAssign, token.EqEq, token.Bang, token.BangEq,
		token.Lt, token.LtEq, token.Gt, token.GtEq, token.AndAnd, token.OrOr,
		token.Arrow, token.LParen, token.RParen, token.LBrace, token.RBrace,
		token.LBracket, token.RBracket, token.Comma, token.Semicolon,
		token.Colon, token.Dot,
	}
	for _, k := range ops {
		if !k.IsPunctOrOp() {
			t.Fatalf("%v should be punct/op", k)
		}
	}

	for _, k := range []token.Kind{token.None, token.EOF, token.Ident} {
		if k.IsKeyword() || k.IsLiteral() || k.IsPunctOrOp() {
			t.Fatalf("%v must not classify as keyword/literal/op", k)
		}
	}
}

func TestLocationString(t *testing.T) {
	single := token.NewLocation(1, 3, 1, 4)
	if got := single.String(); got != "1:3-4" {
		t.Fatalf("single-line location = %q, want %q", got, "1:3-4")
	}
	if single.IsMultiLine() {
		t.Fatalf("1:3-4 must not be multi-line")
	}

	multi := token.NewLocation(2, 5, 4, 1)
	if got := multi.String(); got != "2:5-4:1" {
		t.Fatalf("multi-line location = %q, want %q", got, "2:5-4:1")
	}
	if !multi.IsMultiLine() {
		t.Fatalf("2:5-4:1 should be multi-line")
	}

	pt := token.Point(3, 7)
	if pt.LineStart != 3 || pt.ColStart != 7 || pt.LineEnd != 3 || pt.ColEnd != 7 {
		t.Fatalf("Point(3,7) = %+v", pt)
	}
}

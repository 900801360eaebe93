package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
		"var":    KwVar,
		"const":  KwConst,
		"func":   KwFunc,
		"if":     KwIf,
		"else":   KwElse,
		"while":  KwWhile,
		"return": KwReturn,
		"true":   BoolLit,
		"false":  BoolLit,
	}

	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	// Case matters; type names and ordinary identifiers are not keywords.
	notKw := []string{
		"Var", "CONST", "True",
		"int", "float", "string",
		"identifier", "returns",
	}
	for _, s := range notKw {
		if _, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
	}
}

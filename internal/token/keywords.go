package token

var keywords = map[string]Kind{
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

// LookupKeyword returns the token kind for a keyword lexeme. Keywords are
// case-sensitive; only the lowercase spellings are recognized. The boolean
// literals map to BoolLit rather than to dedicated keyword kinds.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

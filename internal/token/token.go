package token

import (
	"fmt"
	"math"
)

// Token represents a single lexed token. The record is fixed-size: numeric and
// boolean payloads are packed into bits, string payloads are referenced by
// index into the owning Buffer's string store.
type Token struct {
	Kind Kind
	Loc  Location

	bits uint64
	str  uint32
}

// HasPayload reports whether the token's kind carries a payload.
func (t Token) HasPayload() bool {
	return t.Kind.IsLiteral()
}

// Bool returns the boolean payload. Panics unless the token is a BoolLit.
func (t Token) Bool() bool {
	if t.Kind != BoolLit {
		panic(fmt.Errorf("token: Bool() on %v token", t.Kind))
	}
	return t.bits != 0
}

// Uint returns the integer payload. Panics unless the token is an IntLit.
func (t Token) Uint() uint64 {
	if t.Kind != IntLit {
		panic(fmt.Errorf("token: Uint() on %v token", t.Kind))
	}
	return t.bits
}

// Float returns the float payload. Panics unless the token is a FloatLit.
func (t Token) Float() float64 {
	if t.Kind != FloatLit {
		panic(fmt.Errorf("token: Float() on %v token", t.Kind))
	}
	return math.Float64frombits(t.bits)
}

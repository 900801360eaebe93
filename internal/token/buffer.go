package token

import (
	"fmt"
	"math"

	"fortio.org/safecast"
)

// ID is the stable identity of a token inside its Buffer. IDs are dense and
// assigned in append order, so they double as iteration indices.
type ID uint32

// Buffer is the append-only token sequence produced for one source. String
// payloads are stored out-of-line so the token records stay fixed-size. Each
// Buffer has a single owner; after lexing finishes the owner calls Lock and
// the buffer refuses further appends.
type Buffer struct {
	tokens []Token
	strs   []string
	locked bool
}

// NewBuffer returns an empty, unlocked buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Append adds a payload-less token and returns its ID.
func (b *Buffer) Append(kind Kind, loc Location) ID {
	return b.append(Token{Kind: kind, Loc: loc})
}

// AppendBool adds a token with a boolean payload and returns its ID.
func (b *Buffer) AppendBool(kind Kind, loc Location, value bool) ID {
	var bits uint64
	if value {
		bits = 1
	}
	return b.append(Token{Kind: kind, Loc: loc, bits: bits})
}

// AppendUint adds a token with an unsigned integer payload and returns its ID.
func (b *Buffer) AppendUint(kind Kind, loc Location, value uint64) ID {
	return b.append(Token{Kind: kind, Loc: loc, bits: value})
}

// AppendFloat adds a token with a float payload and returns its ID.
func (b *Buffer) AppendFloat(kind Kind, loc Location, value float64) ID {
	return b.append(Token{Kind: kind, Loc: loc, bits: math.Float64bits(value)})
}

// AppendString adds a token owning a string payload and returns its ID. The
// string is moved into the buffer's out-of-line store; the token record keeps
// only an index, so later store growth cannot invalidate the record.
func (b *Buffer) AppendString(kind Kind, loc Location, value string) ID {
	idx, err := safecast.Conv[uint32](len(b.strs))
	if err != nil {
		panic(fmt.Errorf("len strings overflow: %w", err))
	}
	b.strs = append(b.strs, value)
	return b.append(Token{Kind: kind, Loc: loc, str: idx})
}

func (b *Buffer) append(tok Token) ID {
	if b.locked {
		panic(fmt.Errorf("token: append to locked buffer"))
	}
	id, err := safecast.Conv[uint32](len(b.tokens))
	if err != nil {
		panic(fmt.Errorf("len tokens overflow: %w", err))
	}
	b.tokens = append(b.tokens, tok)
	return ID(id)
}

// Get returns the token with the given ID. Panics if the ID is out of range.
func (b *Buffer) Get(id ID) Token {
	return b.tokens[id]
}

// StringValue returns the out-of-line string payload of the token with the
// given ID. Panics unless that token is a StringLit.
func (b *Buffer) StringValue(id ID) string {
	tok := b.tokens[id]
	if tok.Kind != StringLit {
		panic(fmt.Errorf("token: StringValue() on %v token", tok.Kind))
	}
	return b.strs[tok.str]
}

// Len returns the number of tokens in the buffer.
func (b *Buffer) Len() int {
	return len(b.tokens)
}

// Lock seals the buffer against further appends. Locking is not reversible.
func (b *Buffer) Lock() {
	b.locked = true
}

// IsLocked reports whether the buffer has been sealed.
func (b *Buffer) IsLocked() bool {
	return b.locked
}

package token

import (
	"fmt"
	"slices"
)

// Snapshot is the serializable form of a locked Buffer. Token records are
// flattened to exported fixed-width fields so the encoding stays stable
// across builds; the string store travels alongside.
type Snapshot struct {
	Tokens  []TokenRecord
	Strings []string
}

// TokenRecord mirrors one Token with its location inlined.
type TokenRecord struct {
	Kind      uint8
	LineStart uint32
	ColStart  uint32
	LineEnd   uint32
	ColEnd    uint32
	Bits      uint64
	Str       uint32
}

// Snapshot copies the buffer's contents into serializable form. Only locked
// buffers may be snapshotted: a cache must never capture a half-built
// sequence.
func (b *Buffer) Snapshot() *Snapshot {
	if !b.locked {
		panic(fmt.Errorf("token: Snapshot() on unlocked buffer"))
	}
	recs := make([]TokenRecord, len(b.tokens))
	for i, tok := range b.tokens {
		recs[i] = TokenRecord{
			Kind:      uint8(tok.Kind),
			LineStart: tok.Loc.LineStart,
			ColStart:  tok.Loc.ColStart,
			LineEnd:   tok.Loc.LineEnd,
			ColEnd:    tok.Loc.ColEnd,
			Bits:      tok.bits,
			Str:       tok.str,
		}
	}
	return &Snapshot{Tokens: recs, Strings: slices.Clone(b.strs)}
}

// FromSnapshot rebuilds a locked buffer from a snapshot. Returns nil if the
// snapshot is malformed (empty, not EOF-terminated, unknown kind, or a string
// index past the string store) — callers treat that as a cache miss.
func FromSnapshot(s *Snapshot) *Buffer {
	if s == nil || len(s.Tokens) == 0 {
		return nil
	}
	for _, rec := range s.Tokens {
		if Kind(rec.Kind) >= kindCount {
			return nil
		}
		if Kind(rec.Kind) == StringLit && int(rec.Str) >= len(s.Strings) {
			return nil
		}
	}
	if Kind(s.Tokens[len(s.Tokens)-1].Kind) != EOF {
		return nil
	}

	b := &Buffer{
		tokens: make([]Token, len(s.Tokens)),
		strs:   slices.Clone(s.Strings),
		locked: true,
	}
	for i, rec := range s.Tokens {
		b.tokens[i] = Token{
			Kind: Kind(rec.Kind),
			Loc: Location{
				LineStart: rec.LineStart,
				ColStart:  rec.ColStart,
				LineEnd:   rec.LineEnd,
				ColEnd:    rec.ColEnd,
			},
			bits: rec.Bits,
			str:  rec.Str,
		}
	}
	return b
}

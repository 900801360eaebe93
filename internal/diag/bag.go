package diag

import (
	"fmt"
	"sort"
)

// Bag collects diagnostics for batch paths (single-file CLI runs, tests).
// The session itself never accumulates: it hands every diagnostic straight
// to its callback.
type Bag struct {
	items []Diagnostic
	max   uint16
}

func NewBag(max int) *Bag {
	return &Bag{
		items: make([]Diagnostic, 0, max),
		max:   uint16(max),
	}
}

// Add appends a diagnostic, honoring the capacity limit.
// Returns false if the bag is full and the diagnostic was dropped.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() uint16 {
	return b.max
}

// HasErrors reports whether any collected diagnostic is Error or worse.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any collected diagnostic is Warning or worse.
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns a read-only view of the collected diagnostics.
// Callers must not modify the returned slice.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge appends all diagnostics from other, growing the limit if needed.
func (b *Bag) Merge(other *Bag) {
	newTotal := len(b.items) + len(other.items)
	if uint16(newTotal) > b.max {
		b.max = uint16(newTotal)
	}
	b.items = append(b.items, other.items...)
}

// Sort orders diagnostics by file, start position, end position, severity
// (descending) and code, for deterministic output. Diagnostics without a
// location sort before located ones.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		li, lj := di.Location, dj.Location
		if (li == nil) != (lj == nil) {
			return li == nil
		}
		if li != nil {
			if li.Source != lj.Source {
				return li.Source < lj.Source
			}
			if li.LineStart != lj.LineStart {
				return li.LineStart < lj.LineStart
			}
			if li.ColStart != lj.ColStart {
				return li.ColStart < lj.ColStart
			}
			if li.LineEnd != lj.LineEnd {
				return li.LineEnd < lj.LineEnd
			}
			if li.ColEnd != lj.ColEnd {
				return li.ColEnd < lj.ColEnd
			}
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// Dedup drops repeated diagnostics with the same code and location.
func (b *Bag) Dedup() {
	seen := make(map[string]bool)
	newitems := make([]Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		key := d.Code.ID()
		if d.Location != nil {
			key = fmt.Sprintf("%s:%d:%s", key, d.Location.Source, d.Location.String())
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		newitems = append(newitems, d)
	}
	b.items = newitems
}

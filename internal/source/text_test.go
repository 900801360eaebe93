package source

import (
	"testing"

	"panther/internal/token"
)

func TestSpanText(t *testing.T) {
	store := NewStore()
	id := store.AddVirtual("t.pthr", []byte("x := 42\nsecond line\r\nthird"))
	f := store.Get(id)

	tests := []struct {
		name string
		loc  token.Location
		want string
	}{
		{"single token", token.NewLocation(1, 3, 1, 4), ":="},
		{"first column", token.NewLocation(1, 1, 1, 1), "x"},
		{"second line", token.NewLocation(2, 8, 2, 11), "line"},
		{"after crlf", token.NewLocation(3, 1, 3, 5), "third"},
		{"multi line", token.NewLocation(1, 6, 2, 6), "42\nsecond"},
		{"past end clamps", token.NewLocation(3, 4, 3, 99), "rd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.SpanText(tt.loc); got != tt.want {
				t.Errorf("SpanText(%v) = %q, want %q", tt.loc, got, tt.want)
			}
		})
	}
}

func TestLineText(t *testing.T) {
	store := NewStore()
	id := store.AddVirtual("t.pthr", []byte("one\r\ntwo\rthree\nfour"))
	f := store.Get(id)

	tests := []struct {
		line uint32
		want string
	}{
		{1, "one"},
		{2, "two"},
		{3, "three"},
		{4, "four"},
		{9, ""},
	}

	for _, tt := range tests {
		if got := f.LineText(tt.line); got != tt.want {
			t.Errorf("LineText(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

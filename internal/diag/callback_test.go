package diag

import (
	"bytes"
	"testing"

	"panther/internal/source"
	"panther/internal/token"
)

func TestDefaultCallbackHeaderAndExcerpt(t *testing.T) {
	store := source.NewStore()
	id := store.AddVirtual("main.pthr", []byte("let x = $\n"))
	var buf bytes.Buffer
	cb := DefaultCallback(NewPrinter(&buf, false))

	loc := source.LocationOf(id, token.NewLocation(1, 9, 1, 9))
	cb(store, NewError(LexUnknownChar, &loc, "unknown character '$'"))

	want := "<Error|LEX2001> unknown character '$'\n" +
		"\tmain.pthr:1:9\n" +
		"\t1 | let x = $\n" +
		"\t  |         ^\n"
	if got := buf.String(); got != want {
		t.Fatalf("callback output mismatch:\ngot  %q\nwant %q", got, want)
	}
}

func TestDefaultCallbackWithoutLocation(t *testing.T) {
	store := source.NewStore()
	var buf bytes.Buffer
	cb := DefaultCallback(NewPrinter(&buf, false))

	cb(store, NewFatal(MiscMaxErrorsReached, nil, "maximum number of errors reached"))

	want := "<Fatal|MISC1003> maximum number of errors reached\n"
	if got := buf.String(); got != want {
		t.Fatalf("callback output mismatch:\ngot  %q\nwant %q", got, want)
	}
}

func TestDefaultCallbackInfos(t *testing.T) {
	store := source.NewStore()
	id := store.AddVirtual("main.pthr", []byte("a := 1\na := 2\n"))
	var buf bytes.Buffer
	cb := DefaultCallback(NewPrinter(&buf, false))

	primary := source.LocationOf(id, token.NewLocation(2, 1, 2, 1))
	first := source.LocationOf(id, token.NewLocation(1, 1, 1, 1))
	d := NewWarning(MiscUnknown, &primary, "redeclared variable 'a'").
		WithInfo("first declared here", &first).
		WithInfo("shadowing is not allowed", nil)
	cb(store, d)

	want := "<Warning|MISC1000> redeclared variable 'a'\n" +
		"\tmain.pthr:2:1\n" +
		"\t2 | a := 2\n" +
		"\t  | ^\n" +
		"\t<Info> first declared here\n" +
		"\tmain.pthr:1:1\n" +
		"\t1 | a := 1\n" +
		"\t  | ^\n" +
		"\t<Info> shadowing is not allowed\n"
	if got := buf.String(); got != want {
		t.Fatalf("callback output mismatch:\ngot  %q\nwant %q", got, want)
	}
}

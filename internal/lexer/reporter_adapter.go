package lexer

import (
	"panther/internal/diag"
	"panther/internal/source"
)

// BagReporter collects lexical faults into a diag.Bag as Error diagnostics.
// Batch paths (single-file CLI runs, tests) use it; the session wires a
// reporter of its own that forwards straight to the session callback.
type BagReporter struct {
	Bag *diag.Bag
}

func (r *BagReporter) Report(code diag.Code, loc source.Location, msg string) {
	r.Bag.Add(diag.NewError(code, &loc, msg))
}

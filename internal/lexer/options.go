package lexer

import (
	"panther/internal/diag"
	"panther/internal/source"
)

// Reporter receives lexical faults. The tokenizer only reports; the outer
// layer owns formatting and error accounting. A nil Reporter is tolerated:
// the fault still fails the tokenize, it just goes unreported.
type Reporter interface {
	Report(code diag.Code, loc source.Location, msg string)
}

// Options configures a Tokenizer.
type Options struct {
	Reporter Reporter
}

func (tz *Tokenizer) report(code diag.Code, loc source.Location, msg string) {
	if tz.opts.Reporter != nil {
		tz.opts.Reporter.Report(code, loc, msg)
	}
}

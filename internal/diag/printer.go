package diag

import (
	"io"

	"github.com/fatih/color"
)

// Printer writes styled diagnostic text to a single destination. It does no
// locking of its own: the session serializes callback invocations, and CLI
// paths print from one goroutine.
type Printer struct {
	w io.Writer

	fatal   *color.Color
	err     *color.Color
	warning *color.Color
	info    *color.Color
	gray    *color.Color
	cyan    *color.Color
}

// NewPrinter creates a printer writing to w. With colored false every style
// degrades to plain text, so output stays byte-stable for pipes and tests.
func NewPrinter(w io.Writer, colored bool) *Printer {
	p := &Printer{
		w:       w,
		fatal:   color.New(color.FgRed, color.Bold, color.ReverseVideo),
		err:     color.New(color.FgRed, color.Bold),
		warning: color.New(color.FgYellow, color.Bold),
		info:    color.New(color.FgCyan, color.Bold),
		gray:    color.New(color.FgHiBlack),
		cyan:    color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.fatal, p.err, p.warning, p.info, p.gray, p.cyan} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *Printer) Fatal(s string)   { p.print(p.fatal, s) }
func (p *Printer) Error(s string)   { p.print(p.err, s) }
func (p *Printer) Warning(s string) { p.print(p.warning, s) }
func (p *Printer) Info(s string)    { p.print(p.info, s) }
func (p *Printer) Gray(s string)    { p.print(p.gray, s) }
func (p *Printer) Cyan(s string)    { p.print(p.cyan, s) }

// Severity writes s in the style matching sev.
func (p *Printer) Severity(sev Severity, s string) {
	switch sev {
	case SevFatal:
		p.Fatal(s)
	case SevError:
		p.Error(s)
	case SevWarning:
		p.Warning(s)
	default:
		p.Info(s)
	}
}

func (p *Printer) print(c *color.Color, s string) {
	// Diagnostics must never take the process down over a write error.
	_, _ = c.Fprint(p.w, s)
}

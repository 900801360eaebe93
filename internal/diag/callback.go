package diag

import (
	"fmt"

	"panther/internal/source"
)

// Callback consumes one diagnostic. The session invokes its callback under a
// dedicated lock, so implementations never run concurrently with themselves.
// The store gives access to the files any carried location points into.
type Callback func(store *source.Store, d Diagnostic)

// DefaultCallback returns the standard terminal renderer: a severity-colored
// "<Level|CODE> message" header, the primary location excerpt, then each info
// entry in cyan with its own excerpt.
func DefaultCallback(p *Printer) Callback {
	return func(store *source.Store, d Diagnostic) {
		p.Severity(d.Severity, fmt.Sprintf("<%s|%s> %s\n", d.Severity, d.Code.ID(), d.Message))

		if d.Location != nil {
			RenderLocation(p, store.Get(d.Location.Source), *d.Location, d.Severity)
		}

		for _, info := range d.Infos {
			p.Cyan(fmt.Sprintf("\t<Info> %s\n", info.Message))
			if info.Location != nil {
				RenderLocation(p, store.Get(info.Location.Source), *info.Location, SevInfo)
			}
		}
	}
}

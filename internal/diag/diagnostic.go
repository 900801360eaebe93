package diag

import (
	"panther/internal/source"
)

// Info is a secondary message attached to a diagnostic, optionally pointing
// at a location of its own.
type Info struct {
	Message  string
	Location *source.Location
}

// Diagnostic is one reported finding. Location is nil for diagnostics with no
// source position (for example a nonexistent file path). A Diagnostic is
// immutable once handed to the session callback.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Location *source.Location
	Infos    []Info
}

// New builds a diagnostic with the given severity. loc may be nil.
func New(severity Severity, code Code, loc *source.Location, message string) Diagnostic {
	return Diagnostic{
		Severity: severity,
		Code:     code,
		Message:  message,
		Location: loc,
	}
}

// NewInfo builds an info-level diagnostic.
func NewInfo(code Code, loc *source.Location, message string) Diagnostic {
	return New(SevInfo, code, loc, message)
}

// NewWarning builds a warning-level diagnostic.
func NewWarning(code Code, loc *source.Location, message string) Diagnostic {
	return New(SevWarning, code, loc, message)
}

// NewError builds an error-level diagnostic.
func NewError(code Code, loc *source.Location, message string) Diagnostic {
	return New(SevError, code, loc, message)
}

// NewFatal builds a fatal diagnostic.
func NewFatal(code Code, loc *source.Location, message string) Diagnostic {
	return New(SevFatal, code, loc, message)
}

// WithInfo returns a copy of d with one more info entry appended.
func (d Diagnostic) WithInfo(message string, loc *source.Location) Diagnostic {
	d.Infos = append(d.Infos, Info{Message: message, Location: loc})
	return d
}

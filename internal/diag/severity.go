package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	// SevError is for recoverable faults. Each failed task counts toward the
	// session's error budget.
	SevError
	// SevFatal is for session-fatal conditions; after one is emitted the
	// session stops making progress.
	SevFatal
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "Info"
	case SevWarning:
		return "Warning"
	case SevError:
		return "Error"
	case SevFatal:
		return "Fatal"
	}
	return "Unknown"
}

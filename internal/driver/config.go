package driver

import (
	"runtime"

	"panther/internal/pipeline"
	"panther/internal/trace"
)

// Config controls how a Session schedules work.
type Config struct {
	// NumThreads is the worker pool size. Zero means single-threaded: task
	// groups drain inline on the goroutine that submits them.
	NumThreads int

	// MaxNumErrors is the error budget. When that many tasks have failed the
	// session sets the fail condition and unwinds. Must be positive.
	MaxNumErrors uint32

	// Tracer receives internal events. Nil means tracing is off.
	Tracer trace.Tracer

	// Progress, when non-nil, receives per-file task progress events.
	Progress pipeline.ProgressSink
}

// OptimalNumThreads returns the worker count that leaves one CPU for the
// submitting goroutine.
func OptimalNumThreads() int {
	n := runtime.NumCPU() - 1
	if n < 1 {
		n = 1
	}
	return n
}

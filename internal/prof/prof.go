// Package prof wraps the runtime profilers behind a single start/stop pair
// the CLI wires to its profiling flags.
package prof

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

// Profiles names the outputs one invocation records. An empty path leaves
// the corresponding profiler off.
type Profiles struct {
	// CPUPath receives pprof CPU samples for the whole run.
	CPUPath string
	// HeapPath receives a heap profile taken at stop time.
	HeapPath string
	// TracePath receives a runtime execution trace.
	TracePath string
}

func (p Profiles) enabled() bool {
	return p.CPUPath != "" || p.HeapPath != "" || p.TracePath != ""
}

// Start begins every requested profiler. The returned stop function ends
// them, writes the heap profile if one was requested, and is safe to call
// more than once. If any profiler fails to start, the ones already running
// are stopped before the error returns.
func Start(p Profiles) (stop func() error, err error) {
	if !p.enabled() {
		return func() error { return nil }, nil
	}

	var cpuFile, traceFile *os.File

	if p.CPUPath != "" {
		cpuFile, err = os.Create(p.CPUPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create cpu profile: %w", err)
		}
		if err = pprof.StartCPUProfile(cpuFile); err != nil {
			_ = cpuFile.Close()
			return nil, fmt.Errorf("failed to start cpu profile: %w", err)
		}
	}

	if p.TracePath != "" {
		traceFile, err = os.Create(p.TracePath)
		if err == nil {
			err = trace.Start(traceFile)
		}
		if err != nil {
			if cpuFile != nil {
				pprof.StopCPUProfile()
				_ = cpuFile.Close()
			}
			if traceFile != nil {
				_ = traceFile.Close()
			}
			return nil, fmt.Errorf("failed to start runtime trace: %w", err)
		}
	}

	stopped := false
	return func() error {
		if stopped {
			return nil
		}
		stopped = true

		if traceFile != nil {
			trace.Stop()
			_ = traceFile.Close()
		}
		if cpuFile != nil {
			pprof.StopCPUProfile()
			_ = cpuFile.Close()
		}
		if p.HeapPath != "" {
			return WriteHeap(p.HeapPath)
		}
		return nil
	}, nil
}

// WriteHeap forces a collection and captures a heap profile to path.
func WriteHeap(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create heap profile: %w", err)
	}
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write heap profile: %w", err)
	}
	return f.Close()
}

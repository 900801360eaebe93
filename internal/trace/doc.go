// Package trace provides a tracing subsystem for the Panther front end.
//
// The trace package enables tracking of session phases, worker activity, and
// per-file tokenization to help diagnose performance issues and hangs.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	panther check --trace=- --trace-level=basic ./src
//
// # Architecture
//
// The package provides several tracer implementations:
//
//   - Nop: Zero-overhead no-op tracer when disabled
//   - StreamTracer: Immediate write to output (file/stderr)
//   - RingTracer: Circular buffer, dumpable after the fact
//
// # Levels
//
// Tracing verbosity is controlled by levels:
//
//   - LevelOff: No tracing
//   - LevelBasic: Session and task-group boundaries
//   - LevelDetail: Per-task events on worker threads
//
// # Scopes
//
// Events are categorized by scope:
//
//   - ScopeSession: Session startup, task groups, shutdown
//   - ScopeTask: Individual tasks (load, tokenize) on workers
//
// # Context Propagation
//
// Tracers are propagated through the pipeline via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeSession, "tokenize", parentID)
//	defer span.End("")
package trace

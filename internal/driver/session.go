package driver

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"panther/internal/diag"
	"panther/internal/pipeline"
	"panther/internal/source"
	"panther/internal/trace"
)

// pollInterval is how long workers and waiters sleep between queue checks.
const pollInterval = 32 * time.Millisecond

// Session owns one compilation run: the source store, the diagnostic sink,
// and the task scheduler. Tasks enter the system only through Session
// methods; whether they run inline or on the worker pool is decided by
// Config.NumThreads. One task group (LoadFiles, TokenizeLoadedFiles) runs at
// a time — overlapping groups are a caller bug and panic.
type Session struct {
	config Config
	store  *source.Store
	tracer trace.Tracer

	// callbackMu serializes sink invocations; the callback itself may be
	// arbitrary user code and must never run concurrently with itself.
	callbackMu sync.Mutex
	callback   diag.Callback

	tasksMu sync.Mutex
	tasks   []task

	workersMu sync.Mutex
	workers   []*worker

	numErrors         atomic.Uint32
	numThreadsRunning atomic.Int32
	hitFailCondition  atomic.Bool
	taskGroupRunning  atomic.Bool
	shuttingDown      atomic.Bool
}

// NewSession creates a session with an empty store. The callback receives
// every diagnostic the session emits; nil is tolerated and drops them.
// Panics if cfg.MaxNumErrors is zero.
func NewSession(cfg Config, callback diag.Callback) *Session {
	if cfg.MaxNumErrors == 0 {
		panic(fmt.Errorf("driver: Config.MaxNumErrors must be positive"))
	}
	if cfg.Tracer == nil {
		cfg.Tracer = trace.Nop
	}
	return &Session{
		config:   cfg,
		store:    source.NewStore(),
		tracer:   cfg.Tracer,
		callback: callback,
	}
}

// Store returns the session's source store.
func (s *Session) Store() *source.Store {
	return s.store
}

// IsSingleThreaded reports whether task groups drain inline.
func (s *Session) IsSingleThreaded() bool {
	return s.config.NumThreads == 0
}

// IsMultiThreaded reports whether the session uses a worker pool.
func (s *Session) IsMultiThreaded() bool {
	return s.config.NumThreads > 0
}

// NumErrors returns the number of failed tasks so far.
func (s *Session) NumErrors() uint32 {
	return s.numErrors.Load()
}

// HasHitFailCondition reports whether the error budget was exhausted.
func (s *Session) HasHitFailCondition() bool {
	return s.hitFailCondition.Load()
}

// ThreadsRunning reports whether the worker pool is up. Panics on a
// single-threaded session, which has no pool to ask about.
func (s *Session) ThreadsRunning() bool {
	if !s.IsMultiThreaded() {
		panic(fmt.Errorf("driver: ThreadsRunning on a single-threaded session"))
	}
	s.workersMu.Lock()
	defer s.workersMu.Unlock()
	return len(s.workers) != 0 && !s.shuttingDown.Load()
}

// LoadFiles enqueues one load task per path and, when single-threaded,
// drains the group before returning. Panics if a task group is already
// running, or if the session is multi-threaded and the pool is down.
func (s *Session) LoadFiles(paths []string) {
	s.beginTaskGroup()

	s.store.Reserve(len(paths))

	s.tasksMu.Lock()
	for _, path := range paths {
		s.tasks = append(s.tasks, loadFileTask{path: path})
	}
	s.tasksMu.Unlock()

	pipeline.EmitQueued(s.config.Progress, paths)
	trace.Point(s.tracer, trace.ScopeSession, "load_files", fmt.Sprintf("%d file(s)", len(paths)))

	if s.IsSingleThreaded() {
		s.consumeTasksSingleThreaded()
	}
}

// TokenizeLoadedFiles enqueues one tokenize task per file currently in the
// store and, when single-threaded, drains the group before returning. Same
// contract as LoadFiles.
func (s *Session) TokenizeLoadedFiles() {
	s.beginTaskGroup()

	ids := s.store.SnapshotIDs()

	s.tasksMu.Lock()
	for _, id := range ids {
		s.tasks = append(s.tasks, tokenizeFileTask{source: id})
	}
	s.tasksMu.Unlock()

	trace.Point(s.tracer, trace.ScopeSession, "tokenize_loaded_files", fmt.Sprintf("%d file(s)", len(ids)))

	if s.IsSingleThreaded() {
		s.consumeTasksSingleThreaded()
	}
}

func (s *Session) beginTaskGroup() {
	if s.IsMultiThreaded() && !s.ThreadsRunning() {
		panic(fmt.Errorf("driver: session is multi-threaded but threads are not running"))
	}
	if !s.taskGroupRunning.CompareAndSwap(false, true) {
		panic(fmt.Errorf("driver: task group already running"))
	}
}

// StartupThreads brings up the worker pool. Panics on a single-threaded
// session or if the pool is already up.
func (s *Session) StartupThreads() {
	if !s.IsMultiThreaded() {
		panic(fmt.Errorf("driver: StartupThreads on a single-threaded session"))
	}

	s.workersMu.Lock()
	defer s.workersMu.Unlock()
	if len(s.workers) != 0 {
		panic(fmt.Errorf("driver: threads already running"))
	}

	s.workers = make([]*worker, 0, s.config.NumThreads)
	for range s.config.NumThreads {
		w := newWorker(s)
		s.workers = append(s.workers, w)
		s.numThreadsRunning.Add(1)
		go w.run()
	}

	trace.Point(s.tracer, trace.ScopeSession, "startup_threads", fmt.Sprintf("%d worker(s)", s.config.NumThreads))
}

// ShutdownThreads signals every worker to stop, waits for them to exit, and
// clears the pool. Safe to call from any goroutine; concurrent calls collapse
// into one (the losers return immediately, possibly before the pool is
// down).
func (s *Session) ShutdownThreads() {
	if !s.IsMultiThreaded() {
		panic(fmt.Errorf("driver: ShutdownThreads on a single-threaded session"))
	}
	if !s.shuttingDown.CompareAndSwap(false, true) {
		return
	}
	defer s.shuttingDown.Store(false)

	s.workersMu.Lock()
	workers := s.workers
	s.workers = nil
	s.workersMu.Unlock()
	if len(workers) == 0 {
		return
	}

	for _, w := range workers {
		w.stop.Store(true)
	}
	for s.numThreadsRunning.Load() != 0 {
		runtime.Gosched()
	}

	s.taskGroupRunning.Store(false)
	trace.Point(s.tracer, trace.ScopeSession, "shutdown_threads", "")
}

// WaitForAllTasks blocks until the queue is empty and every worker has gone
// idle, then marks the task group done. Multi-threaded only. Panics if the
// fail condition was already hit — the caller must shut down instead of
// waiting. Returns early if a shutdown begins while waiting.
func (s *Session) WaitForAllTasks() {
	if !s.IsMultiThreaded() {
		panic(fmt.Errorf("driver: WaitForAllTasks on a single-threaded session"))
	}
	if s.HasHitFailCondition() {
		panic(fmt.Errorf("driver: session hit the fail condition; shut down threads instead of waiting"))
	}
	s.workersMu.Lock()
	running := len(s.workers) != 0
	s.workersMu.Unlock()
	if !running {
		panic(fmt.Errorf("driver: threads are not running"))
	}
	if s.shuttingDown.Load() {
		return
	}

	for !s.queueEmpty() {
		if s.shuttingDown.Load() || s.HasHitFailCondition() {
			return
		}
		time.Sleep(pollInterval)
	}

	for {
		if s.shuttingDown.Load() || s.HasHitFailCondition() {
			return
		}
		s.workersMu.Lock()
		allDone := true
		for _, w := range s.workers {
			if w.isWorking.Load() {
				allDone = false
				break
			}
		}
		s.workersMu.Unlock()
		if allDone {
			break
		}
		time.Sleep(pollInterval)
	}

	s.taskGroupRunning.Store(false)
}

func (s *Session) queueEmpty() bool {
	s.tasksMu.Lock()
	defer s.tasksMu.Unlock()
	return len(s.tasks) == 0
}

// consumeTasksSingleThreaded drains the queue inline, stopping early if the
// fail condition is hit. Remaining tasks stay queued; nothing runs them.
func (s *Session) consumeTasksSingleThreaded() {
	w := newWorker(s)
	for !s.queueEmpty() && !s.HasHitFailCondition() {
		w.runNextInline()
	}
	s.taskGroupRunning.Store(false)
}

// Emit hands one diagnostic to the session callback under the sink lock.
func (s *Session) Emit(d diag.Diagnostic) {
	s.callbackMu.Lock()
	defer s.callbackMu.Unlock()
	if s.callback != nil {
		s.callback(s.store, d)
	}
}

// EmitFatal emits a fatal diagnostic. loc may be nil.
func (s *Session) EmitFatal(code diag.Code, loc *source.Location, message string) {
	s.Emit(diag.NewFatal(code, loc, message))
}

// EmitError emits an error diagnostic. loc may be nil.
func (s *Session) EmitError(code diag.Code, loc *source.Location, message string) {
	s.Emit(diag.NewError(code, loc, message))
}

// EmitWarning emits a warning diagnostic. loc may be nil.
func (s *Session) EmitWarning(code diag.Code, loc *source.Location, message string) {
	s.Emit(diag.NewWarning(code, loc, message))
}

// EmitInfo emits an info diagnostic. loc may be nil.
func (s *Session) EmitInfo(code diag.Code, loc *source.Location, message string) {
	s.Emit(diag.NewInfo(code, loc, message))
}

// notifyTaskErrored counts one failed task. Crossing the error budget sets
// the fail condition exactly once, announces it, and unwinds the pool.
func (s *Session) notifyTaskErrored() {
	if s.numErrors.Add(1) < s.config.MaxNumErrors {
		return
	}
	if !s.hitFailCondition.CompareAndSwap(false, true) {
		return
	}

	s.EmitFatal(diag.MiscMaxErrorsReached, nil, "Maximum number of errors reached, compilation stopped")

	if s.IsMultiThreaded() {
		// On a fresh goroutine: the worker reporting the failure is one of
		// the threads shutdown waits on, and waiting on yourself deadlocks.
		go s.ShutdownThreads()
	}
}

// observe forwards one progress event to the configured sink, if any.
func (s *Session) observe(file string, stage pipeline.Stage, status pipeline.Status, err error, elapsed time.Duration) {
	pipeline.Emit(s.config.Progress, file, stage, status, err, elapsed)
}

// sessionReporter adapts the session sink to the lexer's Reporter interface.
type sessionReporter struct {
	session *Session
}

func (r *sessionReporter) Report(code diag.Code, loc source.Location, msg string) {
	r.session.EmitError(code, &loc, msg)
}

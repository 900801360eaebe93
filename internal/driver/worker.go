package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync/atomic"
	"time"

	"panther/internal/diag"
	"panther/internal/lexer"
	"panther/internal/pipeline"
	"panther/internal/source"
	"panther/internal/trace"
)

// worker pulls tasks from the session queue and runs them. isWorking stays
// true after a task completes and is cleared only when the worker observes an
// empty queue; WaitForAllTasks relies on that to not declare the group done
// between two back-to-back tasks.
type worker struct {
	session   *Session
	stop      atomic.Bool
	isWorking atomic.Bool
}

func newWorker(s *Session) *worker {
	return &worker{session: s}
}

// run is the worker goroutine body. It exits when the stop flag is observed
// between tasks; a task already started runs to completion.
func (w *worker) run() {
	for !w.stop.Load() {
		w.getTask()
	}
	w.isWorking.Store(false)
	w.session.numThreadsRunning.Add(-1)
}

func (w *worker) getTask() {
	s := w.session

	var t task
	s.tasksMu.Lock()
	if len(s.tasks) != 0 {
		t = s.tasks[0]
		s.tasks = s.tasks[1:]
	} else {
		s.taskGroupRunning.Store(false)
	}
	s.tasksMu.Unlock()

	if t == nil {
		w.isWorking.Store(false)
		time.Sleep(pollInterval)
		return
	}
	w.isWorking.Store(true)
	w.runTask(t)
}

// runNextInline runs at most one queued task on the calling goroutine. The
// single-threaded drain loop uses it.
func (w *worker) runNextInline() {
	s := w.session

	w.isWorking.Store(true)
	var t task
	s.tasksMu.Lock()
	if len(s.tasks) != 0 {
		t = s.tasks[0]
		s.tasks = s.tasks[1:]
	}
	s.tasksMu.Unlock()

	if t != nil {
		w.runTask(t)
	}
	w.isWorking.Store(false)
}

func (w *worker) runTask(t task) {
	var ok bool
	switch t := t.(type) {
	case loadFileTask:
		ok = w.runLoadFile(t)
	case tokenizeFileTask:
		ok = w.runTokenizeFile(t)
	default:
		panic(fmt.Errorf("driver: unknown task %T", t))
	}
	if !ok {
		w.session.notifyTaskErrored()
	}
}

// runLoadFile reads the file into the store. A missing path and an
// open/read fault are distinct errors; neither adds a source.
func (w *worker) runLoadFile(t loadFileTask) bool {
	s := w.session
	sp := trace.Begin(s.tracer, trace.ScopeTask, "load_file", 0)
	started := time.Now()
	s.observe(t.path, pipeline.StageLoad, pipeline.StatusWorking, nil, 0)

	fail := func(code diag.Code, msg string) bool {
		s.EmitError(code, nil, msg)
		s.observe(t.path, pipeline.StageLoad, pipeline.StatusError, errors.New(msg), time.Since(started))
		sp.WithExtra("path", t.path).End("error")
		return false
	}

	if _, err := os.Stat(t.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fail(diag.MiscFileDoesNotExist, fmt.Sprintf("File %q does not exist", t.path))
		}
		return fail(diag.MiscLoadFileFailed, fmt.Sprintf("Failed to load file: %q", t.path))
	}

	text, flags, err := source.ReadFile(t.path)
	if err != nil {
		return fail(diag.MiscLoadFileFailed, fmt.Sprintf("Failed to load file: %q", t.path))
	}

	s.store.AddSource(t.path, text, flags)
	s.observe(t.path, pipeline.StageLoad, pipeline.StatusDone, nil, time.Since(started))
	sp.WithExtra("path", t.path).End("ok")
	return true
}

// runTokenizeFile lexes one loaded source. On success the locked buffer is
// installed; on a lexical fault nothing is installed and the source stays
// buffer-less, which is a valid terminal state.
func (w *worker) runTokenizeFile(t tokenizeFileTask) bool {
	s := w.session
	file := s.store.Get(t.source)
	sp := trace.Begin(s.tracer, trace.ScopeTask, "tokenize_file", 0)
	started := time.Now()
	s.observe(file.Path, pipeline.StageTokenize, pipeline.StatusWorking, nil, 0)

	tz := lexer.New(file, lexer.Options{Reporter: &sessionReporter{session: s}})
	buf, err := tz.Tokenize()
	if err != nil {
		s.observe(file.Path, pipeline.StageTokenize, pipeline.StatusError, err, time.Since(started))
		sp.WithExtra("path", file.Path).End("error")
		return false
	}

	s.store.InstallTokens(t.source, buf)
	s.observe(file.Path, pipeline.StageTokenize, pipeline.StatusDone, nil, time.Since(started))
	sp.WithExtra("path", file.Path).WithExtra("tokens", fmt.Sprintf("%d", buf.Len())).End("ok")
	return true
}

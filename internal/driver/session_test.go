package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"panther/internal/diag"
	"panther/internal/pipeline"
	"panther/internal/source"
	"panther/internal/token"
)

// collectingSink records every diagnostic the session emits. Its own mutex
// makes the final read from the test goroutine race-free in the
// multi-threaded tests.
type collectingSink struct {
	mu    sync.Mutex
	items []diag.Diagnostic
}

func (c *collectingSink) callback() diag.Callback {
	return func(_ *source.Store, d diag.Diagnostic) {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.items = append(c.items, d)
	}
}

func (c *collectingSink) all() []diag.Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]diag.Diagnostic, len(c.items))
	copy(out, c.items)
	return out
}

func (c *collectingSink) countSeverity(sev diag.Severity) int {
	n := 0
	for _, d := range c.all() {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

func (c *collectingSink) countCode(code diag.Code) int {
	n := 0
	for _, d := range c.all() {
		if d.Code == code {
			n++
		}
	}
	return n
}

func writeSources(t *testing.T, contents map[string]string) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, 0, len(contents))
	for name, text := range contents {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		paths = append(paths, path)
	}
	return paths
}

func buffersByPath(t *testing.T, s *Session) map[string]*token.Buffer {
	t.Helper()
	out := make(map[string]*token.Buffer)
	store := s.Store()
	for _, id := range store.SnapshotIDs() {
		f := store.Get(id)
		if f.Tokens() == nil {
			t.Fatalf("file %s has no token buffer", f.Path)
		}
		if !f.Tokens().IsLocked() {
			t.Fatalf("file %s has an unlocked token buffer", f.Path)
		}
		out[f.Path] = f.Tokens()
	}
	return out
}

func expectSameTokens(t *testing.T, path string, a, b *token.Buffer) {
	t.Helper()
	if a.Len() != b.Len() {
		t.Fatalf("%s: token count mismatch: %d vs %d", path, a.Len(), b.Len())
	}
	for i := range a.Len() {
		id := token.ID(i)
		ta, tb := a.Get(id), b.Get(id)
		if ta.Kind != tb.Kind || ta.Loc != tb.Loc {
			t.Fatalf("%s: token %d mismatch: %v %s vs %v %s", path, i, ta.Kind, ta.Loc, tb.Kind, tb.Loc)
		}
		if ta.Kind == token.StringLit && a.StringValue(id) != b.StringValue(id) {
			t.Fatalf("%s: token %d string payload mismatch: %q vs %q", path, i, a.StringValue(id), b.StringValue(id))
		}
	}
}

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s: expected panic", name)
		}
	}()
	fn()
}

var sessionTestSources = map[string]string{
	"one.pthr":   "x := 1 + 2\n",
	"two.pthr":   "func main() { return }\n",
	"three.pthr": "msg := \"hello\\n\"\nok := true\n",
}

func TestSessionSingleThreaded(t *testing.T) {
	paths := writeSources(t, sessionTestSources)

	sink := &collectingSink{}
	s := NewSession(Config{NumThreads: 0, MaxNumErrors: 8}, sink.callback())

	s.LoadFiles(paths)
	s.TokenizeLoadedFiles()

	if got := s.Store().NumSources(); got != len(paths) {
		t.Fatalf("NumSources = %d, want %d", got, len(paths))
	}
	if len(sink.all()) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", sink.all())
	}
	for path, buf := range buffersByPath(t, s) {
		last := buf.Get(token.ID(buf.Len() - 1))
		if last.Kind != token.EOF {
			t.Fatalf("%s: final token is %v, want EOF", path, last.Kind)
		}
	}
	if s.HasHitFailCondition() {
		t.Fatal("fail condition set on a clean run")
	}
}

func TestSessionMultiThreadedMatchesSingleThreaded(t *testing.T) {
	paths := writeSources(t, sessionTestSources)

	single := NewSession(Config{NumThreads: 0, MaxNumErrors: 8}, nil)
	single.LoadFiles(paths)
	single.TokenizeLoadedFiles()

	multi := NewSession(Config{NumThreads: 3, MaxNumErrors: 8}, nil)
	multi.StartupThreads()
	defer multi.ShutdownThreads()
	multi.LoadFiles(paths)
	multi.WaitForAllTasks()
	multi.TokenizeLoadedFiles()
	multi.WaitForAllTasks()

	want := buffersByPath(t, single)
	got := buffersByPath(t, multi)
	if len(got) != len(want) {
		t.Fatalf("file count mismatch: %d vs %d", len(got), len(want))
	}
	for path, wantBuf := range want {
		gotBuf, ok := got[path]
		if !ok {
			t.Fatalf("multi-threaded run is missing %s", path)
		}
		expectSameTokens(t, path, gotBuf, wantBuf)
	}
}

func TestSessionNonexistentPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.pthr")

	sink := &collectingSink{}
	s := NewSession(Config{NumThreads: 0, MaxNumErrors: 8}, sink.callback())
	s.LoadFiles([]string{missing})

	items := sink.all()
	if len(items) != 1 {
		t.Fatalf("diagnostic count = %d, want 1: %+v", len(items), items)
	}
	d := items[0]
	if d.Severity != diag.SevError || d.Code != diag.MiscFileDoesNotExist {
		t.Fatalf("got %v %s, want Error %s", d.Severity, d.Code.ID(), diag.MiscFileDoesNotExist.ID())
	}
	if d.Location != nil {
		t.Fatalf("missing-file diagnostic should have no location, got %v", d.Location)
	}
	wantMsg := fmt.Sprintf("File %q does not exist", missing)
	if d.Message != wantMsg {
		t.Fatalf("message = %q, want %q", d.Message, wantMsg)
	}
	if got := s.Store().NumSources(); got != 0 {
		t.Fatalf("store gained %d sources from a failed load", got)
	}
	if s.NumErrors() != 1 {
		t.Fatalf("NumErrors = %d, want 1", s.NumErrors())
	}
}

func TestSessionFailCondition(t *testing.T) {
	dir := t.TempDir()
	missing := func(n int) []string {
		paths := make([]string, n)
		for i := range n {
			paths[i] = filepath.Join(dir, fmt.Sprintf("missing-%d.pthr", i))
		}
		return paths
	}

	t.Run("below threshold", func(t *testing.T) {
		sink := &collectingSink{}
		s := NewSession(Config{NumThreads: 0, MaxNumErrors: 3}, sink.callback())
		s.LoadFiles(missing(2))

		if s.HasHitFailCondition() {
			t.Fatal("fail condition set one error early")
		}
		if s.NumErrors() != 2 {
			t.Fatalf("NumErrors = %d, want 2", s.NumErrors())
		}
		if n := sink.countCode(diag.MiscMaxErrorsReached); n != 0 {
			t.Fatalf("got %d fail-condition fatals below the threshold", n)
		}
	})

	t.Run("at threshold", func(t *testing.T) {
		sink := &collectingSink{}
		s := NewSession(Config{NumThreads: 0, MaxNumErrors: 2}, sink.callback())
		s.LoadFiles(missing(2))

		if !s.HasHitFailCondition() {
			t.Fatal("fail condition not set at the threshold")
		}
		if n := sink.countCode(diag.MiscMaxErrorsReached); n != 1 {
			t.Fatalf("fail-condition fatal emitted %d times, want 1", n)
		}
		if n := sink.countSeverity(diag.SevFatal); n != 1 {
			t.Fatalf("fatal count = %d, want 1", n)
		}
	})

	t.Run("stops draining after threshold", func(t *testing.T) {
		sink := &collectingSink{}
		s := NewSession(Config{NumThreads: 0, MaxNumErrors: 2}, sink.callback())
		s.LoadFiles(missing(5))

		if !s.HasHitFailCondition() {
			t.Fatal("fail condition not set")
		}
		// The third, fourth, and fifth tasks never ran.
		if n := sink.countSeverity(diag.SevError); n != 2 {
			t.Fatalf("error count = %d, want 2", n)
		}
		if s.NumErrors() != 2 {
			t.Fatalf("NumErrors = %d, want 2", s.NumErrors())
		}
	})
}

func TestSessionMultiThreadedFailConditionShutsDown(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.pthr")

	sink := &collectingSink{}
	s := NewSession(Config{NumThreads: 2, MaxNumErrors: 1}, sink.callback())
	s.StartupThreads()
	defer s.ShutdownThreads()

	s.LoadFiles([]string{missing})

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if s.HasHitFailCondition() && !s.ThreadsRunning() {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if !s.HasHitFailCondition() {
		t.Fatal("fail condition not set")
	}
	if s.ThreadsRunning() {
		t.Fatal("threads still running after the fail condition")
	}
	if n := sink.countCode(diag.MiscMaxErrorsReached); n != 1 {
		t.Fatalf("fail-condition fatal emitted %d times, want 1", n)
	}
}

func TestSessionContractViolations(t *testing.T) {
	expectPanic(t, "zero error budget", func() {
		NewSession(Config{NumThreads: 0, MaxNumErrors: 0}, nil)
	})

	expectPanic(t, "wait on single-threaded session", func() {
		s := NewSession(Config{NumThreads: 0, MaxNumErrors: 1}, nil)
		s.WaitForAllTasks()
	})

	expectPanic(t, "enqueue with threads down", func() {
		s := NewSession(Config{NumThreads: 2, MaxNumErrors: 1}, nil)
		s.LoadFiles([]string{"whatever.pthr"})
	})

	expectPanic(t, "overlapping task groups", func() {
		s := NewSession(Config{NumThreads: 0, MaxNumErrors: 1}, nil)
		s.taskGroupRunning.Store(true)
		s.LoadFiles([]string{"whatever.pthr"})
	})

	expectPanic(t, "wait after fail condition", func() {
		s := NewSession(Config{NumThreads: 2, MaxNumErrors: 1}, nil)
		s.hitFailCondition.Store(true)
		s.WaitForAllTasks()
	})

	expectPanic(t, "startup on single-threaded session", func() {
		s := NewSession(Config{NumThreads: 0, MaxNumErrors: 1}, nil)
		s.StartupThreads()
	})
}

// recordingSink is a single-goroutine progress recorder for the
// single-threaded progress test.
type recordingSink struct {
	events []pipeline.Event
}

func (r *recordingSink) OnEvent(evt pipeline.Event) {
	r.events = append(r.events, evt)
}

func TestSessionProgressEvents(t *testing.T) {
	paths := writeSources(t, map[string]string{"main.pthr": "x := 1\n"})

	progress := &recordingSink{}
	s := NewSession(Config{NumThreads: 0, MaxNumErrors: 4, Progress: progress}, nil)
	s.LoadFiles(paths)
	s.TokenizeLoadedFiles()

	want := []struct {
		stage  pipeline.Stage
		status pipeline.Status
	}{
		{"", pipeline.StatusQueued},
		{pipeline.StageLoad, pipeline.StatusWorking},
		{pipeline.StageLoad, pipeline.StatusDone},
		{pipeline.StageTokenize, pipeline.StatusWorking},
		{pipeline.StageTokenize, pipeline.StatusDone},
	}
	if len(progress.events) != len(want) {
		t.Fatalf("event count = %d, want %d: %+v", len(progress.events), len(want), progress.events)
	}
	for i, w := range want {
		evt := progress.events[i]
		if evt.Stage != w.stage || evt.Status != w.status {
			t.Fatalf("event %d = %s/%s, want %s/%s", i, evt.Stage, evt.Status, w.stage, w.status)
		}
		if evt.File == "" {
			t.Fatalf("event %d has no file name", i)
		}
	}
}

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"panther/internal/pipeline"
	"panther/internal/ui"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

// checkOutcome is what a session run reports back to the command once every
// task group has settled.
type checkOutcome struct {
	sources          int
	errors           uint32
	hitFailCondition bool
}

// runCheckWithUI drives run on its own goroutine while the progress program
// owns the terminal. The progress model quits when the event channel closes,
// which happens only after run has returned.
func runCheckWithUI(title string, files []string, run func(sink pipeline.ProgressSink) checkOutcome) (checkOutcome, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		outcomeCh <- run(pipeline.ChannelSink{Ch: events})
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	return outcome, uiErr
}

// lockedBuffer is an io.Writer safe for concurrent writers. A session that
// hit its error budget can tear down workers after the submitting goroutine
// has already moved on, so late diagnostics must not race the flush.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// FlushTo copies the buffered bytes to w and resets the buffer.
func (b *lockedBuffer) FlushTo(w io.Writer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.buf.Len() == 0 {
		return
	}
	_, _ = w.Write(b.buf.Bytes())
	b.buf.Reset()
}

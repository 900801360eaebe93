package driver

import "panther/internal/source"

// task is a closed set: loadFileTask and tokenizeFileTask. Worker dispatch
// switches over the concrete types and panics on anything else.
type task interface {
	isTask()
}

// loadFileTask reads one file from disk into the session store.
type loadFileTask struct {
	path string
}

// tokenizeFileTask lexes one already-loaded source into its token buffer.
type tokenizeFileTask struct {
	source source.FileID
}

func (loadFileTask) isTask()     {}
func (tokenizeFileTask) isTask() {}

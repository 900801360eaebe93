package prof_test

import (
	"os"
	"path/filepath"
	"testing"

	"panther/internal/prof"
)

func TestStartDisabled(t *testing.T) {
	stop, err := prof.Start(prof.Profiles{})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
}

func TestStartCPUAndHeap(t *testing.T) {
	dir := t.TempDir()
	cpuPath := filepath.Join(dir, "cpu.pprof")
	heapPath := filepath.Join(dir, "heap.pprof")

	stop, err := prof.Start(prof.Profiles{CPUPath: cpuPath, HeapPath: heapPath})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	// Some work so the profile has something to record.
	total := 0
	for i := range 1 << 16 {
		total += i
	}
	_ = total

	if err := stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
	// Double stop is a no-op.
	if err := stop(); err != nil {
		t.Fatalf("second stop: %v", err)
	}

	for _, path := range []string{cpuPath, heapPath} {
		st, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat %s: %v", path, err)
		}
		if st.Size() == 0 {
			t.Fatalf("%s is empty", path)
		}
	}
}

func TestWriteHeap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heap.pprof")
	if err := prof.WriteHeap(path); err != nil {
		t.Fatalf("WriteHeap: %v", err)
	}
	st, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if st.Size() == 0 {
		t.Fatalf("heap profile is empty")
	}
}

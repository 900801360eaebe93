package driver

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"panther/internal/diag"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, text := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestListSourceFiles(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"b.pthr":        "x := 1\n",
		"a.pthr":        "y := 2\n",
		"nested/c.pthr": "z := 3\n",
		"notes.txt":     "not a source file\n",
	})

	files, err := ListSourceFiles(dir)
	if err != nil {
		t.Fatalf("ListSourceFiles: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.pthr"),
		filepath.Join(dir, "b.pthr"),
		filepath.Join(dir, "nested", "c.pthr"),
	}
	if len(files) != len(want) {
		t.Fatalf("file count = %d, want %d: %v", len(files), len(want), files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestTokenizeDir(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"one.pthr":        "x := 1 + 2\n",
		"two.pthr":        "func main() { return }\n",
		"nested/tri.pthr": "ok := true\n",
		"ignored.txt":     "@@@\n",
	})

	for _, jobs := range []int{1, 4} {
		store, results, err := TokenizeDir(context.Background(), dir, 8, jobs)
		if err != nil {
			t.Fatalf("jobs=%d: TokenizeDir: %v", jobs, err)
		}
		if len(results) != 3 {
			t.Fatalf("jobs=%d: result count = %d, want 3", jobs, len(results))
		}
		if store.NumSources() != 3 {
			t.Fatalf("jobs=%d: NumSources = %d, want 3", jobs, store.NumSources())
		}
		for _, res := range results {
			if res.Bag.Len() != 0 {
				t.Fatalf("jobs=%d: %s: unexpected diagnostics: %+v", jobs, res.Path, res.Bag.Items())
			}
			file := store.Get(res.Source)
			if file.Tokens() == nil || !file.Tokens().IsLocked() {
				t.Fatalf("jobs=%d: %s: no locked token buffer", jobs, res.Path)
			}
		}
	}
}

func TestTokenizeDirEmpty(t *testing.T) {
	store, results, err := TokenizeDir(context.Background(), t.TempDir(), 8, 2)
	if err != nil {
		t.Fatalf("TokenizeDir: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("result count = %d, want 0", len(results))
	}
	if store.NumSources() != 0 {
		t.Fatalf("NumSources = %d, want 0", store.NumSources())
	}
}

func TestTokenizeDirCollectsFaults(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"good.pthr": "x := 1\n",
		"bad.pthr":  "s := \"open\n",
	})

	store, results, err := TokenizeDir(context.Background(), dir, 8, 2)
	if err != nil {
		t.Fatalf("TokenizeDir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("result count = %d, want 2", len(results))
	}

	// Results follow the sorted file list: bad.pthr first.
	bad, good := results[0], results[1]
	if filepath.Base(bad.Path) != "bad.pthr" || filepath.Base(good.Path) != "good.pthr" {
		t.Fatalf("unexpected result order: %q, %q", bad.Path, good.Path)
	}

	if bad.Bag.Len() != 1 {
		t.Fatalf("bad.pthr: diagnostic count = %d, want 1", bad.Bag.Len())
	}
	if got := bad.Bag.Items()[0].Code; got != diag.LexUnterminatedString {
		t.Fatalf("bad.pthr: code = %s, want %s", got.ID(), diag.LexUnterminatedString.ID())
	}
	if store.Get(bad.Source).Tokens() != nil {
		t.Fatal("bad.pthr: partial buffer installed")
	}

	if good.Bag.Len() != 0 {
		t.Fatalf("good.pthr: unexpected diagnostics: %+v", good.Bag.Items())
	}
	if store.Get(good.Source).Tokens() == nil {
		t.Fatal("good.pthr: buffer missing")
	}
}

func TestTokenizeDirMissingFileDiagnostic(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation needs privileges on windows")
	}

	dir := writeTree(t, map[string]string{"real.pthr": "x := 1\n"})
	// A dangling symlink survives the walk but fails to load.
	gone := filepath.Join(dir, "gone.pthr")
	if err := os.Symlink(filepath.Join(dir, "never-there"), gone); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	store, results, err := TokenizeDir(context.Background(), dir, 8, 1)
	if err != nil {
		t.Fatalf("TokenizeDir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("result count = %d, want 2: %+v", len(results), results)
	}

	var missing *TokenizeDirResult
	for i := range results {
		if filepath.Base(results[i].Path) == "gone.pthr" {
			missing = &results[i]
		}
	}
	if missing == nil {
		t.Fatal("no result for the dangling path")
	}
	if missing.Bag.Len() != 1 {
		t.Fatalf("gone.pthr: diagnostic count = %d, want 1", missing.Bag.Len())
	}
	if got := missing.Bag.Items()[0].Code; got != diag.MiscFileDoesNotExist {
		t.Fatalf("gone.pthr: code = %s, want %s", got.ID(), diag.MiscFileDoesNotExist.ID())
	}
	if store.NumSources() != 1 {
		t.Fatalf("NumSources = %d, want 1", store.NumSources())
	}
}

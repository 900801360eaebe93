package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"panther/internal/diag"
	"panther/internal/lexer"
	"panther/internal/source"
)

// TokenizeDirResult is the per-file outcome of TokenizeDir. Source is only
// meaningful when Bag carries no load error; a tokenized file's buffer sits
// in the store under that ID.
type TokenizeDirResult struct {
	Path   string
	Source source.FileID
	Bag    *diag.Bag
}

// ListSourceFiles returns every .pthr file under dir, sorted for a
// deterministic processing order.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".pthr") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// TokenizeDir tokenizes every .pthr file under dir, at most jobs files at a
// time (jobs <= 0 means GOMAXPROCS). This is the batch path for CLI runs
// over a tree; it bypasses the session scheduler. Results are indexed like
// the sorted file list; each goroutine owns its slot, so no lock is needed.
func TokenizeDir(ctx context.Context, dir string, maxDiagnostics, jobs int) (*source.Store, []TokenizeDirResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	store := source.NewStore()
	if len(files) == 0 {
		return store, nil, nil
	}

	// Load up front: AddSource assigns IDs in insertion order, so loading
	// sequentially keeps IDs aligned with the sorted file list.
	store.Reserve(len(files))
	ids := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		text, flags, err := source.ReadFile(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		ids[path] = store.AddSource(path, text, flags)
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]TokenizeDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bag := diag.NewBag(maxDiagnostics)

			if loadErr, failed := loadErrors[path]; failed {
				code := diag.MiscLoadFileFailed
				msg := fmt.Sprintf("Failed to load file: %q", path)
				if errors.Is(loadErr, fs.ErrNotExist) {
					code = diag.MiscFileDoesNotExist
					msg = fmt.Sprintf("File %q does not exist", path)
				}
				bag.Add(diag.NewError(code, nil, msg))
				results[i] = TokenizeDirResult{Path: path, Bag: bag}
				return nil
			}

			id := ids[path]
			file := store.Get(id)

			tz := lexer.New(file, lexer.Options{Reporter: &lexer.BagReporter{Bag: bag}})
			buf, err := tz.Tokenize()
			if err == nil {
				store.InstallTokens(id, buf)
			}

			results[i] = TokenizeDirResult{Path: path, Source: id, Bag: bag}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return store, results, err
	}
	return store, results, nil
}

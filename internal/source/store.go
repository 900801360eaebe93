package source

import (
	"crypto/sha256"
	"fmt"
	"path/filepath"
	"slices"
	"sync"

	"fortio.org/safecast"

	"panther/internal/token"
)

// Store owns every source file of a compilation session. Structural mutation
// (adding a file, installing a token buffer) is serialized by one lock;
// FileIDs are dense and assigned in insertion order. Files are held by
// pointer so a *File obtained from Get stays valid while the store grows.
type Store struct {
	mu    sync.RWMutex
	files []*File
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Reserve grows the store's capacity so the next n additions do not
// reallocate.
func (store *Store) Reserve(n int) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.files = slices.Grow(store.files, n)
}

// AddSource stores a file's decoded text under a fresh FileID and returns
// the ID. The store takes ownership of text; callers must not mutate it
// afterwards. Adding the same path twice creates two independent files.
func (store *Store) AddSource(path string, text []byte, flags FileFlags) FileID {
	store.mu.Lock()
	defer store.mu.Unlock()

	lenFiles, err := safecast.Conv[uint32](len(store.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	store.files = append(store.files, &File{
		ID:    id,
		Path:  normalizePath(path),
		Text:  text,
		Hash:  sha256.Sum256(text),
		Flags: flags,
	})
	return id
}

// AddVirtual adds an in-memory file (stdin, test, or generated) with the
// FileVirtual flag.
func (store *Store) AddVirtual(name string, text []byte) FileID {
	return store.AddSource(name, text, FileVirtual)
}

// Get returns the file with the given ID. Panics if the ID was never issued.
func (store *Store) Get(id FileID) *File {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.files[id]
}

// NumSources returns the number of files currently in the store.
func (store *Store) NumSources() int {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return len(store.files)
}

// SnapshotIDs returns the IDs of all files present at the moment of the
// call. Files added afterwards are not included.
func (store *Store) SnapshotIDs() []FileID {
	store.mu.RLock()
	defer store.mu.RUnlock()
	ids := make([]FileID, len(store.files))
	for i := range store.files {
		ids[i] = FileID(i)
	}
	return ids
}

// InstallTokens places a locked token buffer into the file's slot. The slot
// is written exactly once; a second install for the same file is a caller
// bug and panics.
func (store *Store) InstallTokens(id FileID, buf *token.Buffer) {
	store.mu.Lock()
	defer store.mu.Unlock()

	f := store.files[id]
	if f.tokens != nil {
		panic(fmt.Errorf("source: token buffer already installed for %q", f.Path))
	}
	f.tokens = buf
}

func normalizePath(p string) string {
	// one canonical spelling across platforms
	return filepath.ToSlash(filepath.Clean(p))
}

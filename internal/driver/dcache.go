package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"panther/internal/token"
)

// Bump when tokenCachePayload or token.Snapshot changes shape.
const tokenCacheSchemaVersion uint16 = 1

// TokenCache persists token buffers on disk, keyed by source content hash.
// A nil *TokenCache is a working no-op cache: Get always misses, Put drops.
// Safe for concurrent use.
type TokenCache struct {
	mu  sync.RWMutex
	dir string
}

type tokenCachePayload struct {
	Schema uint16
	Hash   [32]byte
	Tokens token.Snapshot
}

// OpenTokenCache initializes a cache under the user cache directory
// ($XDG_CACHE_HOME or ~/.cache), in a subdirectory named app.
func OpenTokenCache(app string) (*TokenCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &TokenCache{dir: dir}, nil
}

// OpenTokenCacheAt initializes a cache rooted at an explicit directory.
func OpenTokenCacheAt(dir string) (*TokenCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &TokenCache{dir: dir}, nil
}

func (c *TokenCache) pathFor(key [32]byte) string {
	// "tokens" subdirectory keeps the cache root listable by artifact kind.
	return filepath.Join(c.dir, "tokens", hex.EncodeToString(key[:])+".mp")
}

// Put writes a snapshot under the given content hash. The write goes
// through a temp file and a rename, so readers never see a torn entry.
func (c *TokenCache) Put(key [32]byte, snap *token.Snapshot) error {
	if c == nil || snap == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	payload := tokenCachePayload{
		Schema: tokenCacheSchemaVersion,
		Hash:   key,
		Tokens: *snap,
	}
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get looks up a snapshot by content hash. A missing entry, a schema
// mismatch, and a key mismatch are all plain misses, not errors.
func (c *TokenCache) Get(key [32]byte, out *token.Snapshot) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()

	var payload tokenCachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return false, err
	}
	if payload.Schema != tokenCacheSchemaVersion || payload.Hash != key {
		return false, nil
	}
	*out = payload.Tokens
	return true, nil
}

// DropAll invalidates the whole cache, useful after format changes. The
// directory is renamed aside first so concurrent readers fall back to
// misses instead of partial listings.
func (c *TokenCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

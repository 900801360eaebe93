package driver

import (
	"panther/internal/diag"
	"panther/internal/lexer"
	"panther/internal/source"
	"panther/internal/token"
)

// TokenizeResult is what a single-file batch tokenize produces. Tokens is
// nil when the file had a lexical fault; the fault itself is in Bag.
type TokenizeResult struct {
	Store  *source.Store
	File   *source.File
	Tokens *token.Buffer
	Bag    *diag.Bag
}

// Tokenize loads and lexes one file without going through a session. The
// returned error covers I/O only; lexical faults land in the result bag.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	res, _, err := TokenizeCached(path, maxDiagnostics, nil)
	return res, err
}

// TokenizeCached is Tokenize with a token cache consulted first. The cache
// key is the file's content hash, so a stale entry can only mean a hash
// collision; malformed entries fall through to a fresh lex. cache may be
// nil. The second return reports whether the cache supplied the buffer.
func TokenizeCached(path string, maxDiagnostics int, cache *TokenCache) (*TokenizeResult, bool, error) {
	store := source.NewStore()

	text, flags, err := source.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	id := store.AddSource(path, text, flags)
	file := store.Get(id)
	bag := diag.NewBag(maxDiagnostics)

	res := &TokenizeResult{Store: store, File: file, Bag: bag}

	var snap token.Snapshot
	if hit, err := cache.Get(file.Hash, &snap); err == nil && hit {
		if buf := token.FromSnapshot(&snap); buf != nil {
			store.InstallTokens(id, buf)
			res.Tokens = buf
			return res, true, nil
		}
	}

	tz := lexer.New(file, lexer.Options{Reporter: &lexer.BagReporter{Bag: bag}})
	buf, err := tz.Tokenize()
	if err != nil {
		// Lexical fault; already reported through the bag.
		return res, false, nil
	}

	store.InstallTokens(id, buf)
	res.Tokens = buf
	// Best effort: a failed write costs a re-lex next run, nothing else.
	_ = cache.Put(file.Hash, buf.Snapshot())
	return res, false, nil
}

package source

import (
	"panther/internal/token"
)

type (
	// FileID uniquely identifies a source file within a Store.
	FileID uint32
	// FileFlags encodes metadata about how a source file was obtained.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM indicates a byte order mark was stripped during decoding.
	FileHadBOM
	// FileTranscodedUTF16 indicates the content was transcoded from UTF-16.
	FileTranscodedUTF16
)

// File captures one loaded source: identity, raw text, and, once
// tokenization succeeds, its token buffer. Text is never mutated after load
// and the token buffer is installed exactly once, so holders of a *File may
// read both without taking the store lock again.
type File struct {
	ID    FileID
	Path  string
	Text  []byte
	Hash  [32]byte
	Flags FileFlags

	tokens *token.Buffer
}

// Tokens returns the installed token buffer, or nil while the file has not
// been tokenized. A failed tokenization leaves it nil for good.
func (f *File) Tokens() *token.Buffer {
	return f.tokens
}

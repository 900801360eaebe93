package source

import (
	"fmt"
	"os"

	"golang.org/x/text/encoding/unicode"
)

// ReadFile reads a source file from disk and decodes it to UTF-8. UTF-16
// content (detected by its byte order mark) is transcoded; a UTF-8 byte
// order mark is stripped. Line endings are left alone: the tokenizer and the
// diagnostic renderer understand CR, CRLF, and LF directly.
func ReadFile(path string) ([]byte, FileFlags, error) {
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}
	return decodeText(raw)
}

func decodeText(raw []byte) ([]byte, FileFlags, error) {
	if hasUTF16BOM(raw) {
		decoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		text, err := decoder.Bytes(raw)
		if err != nil {
			return nil, 0, fmt.Errorf("transcode UTF-16: %w", err)
		}
		return text, FileHadBOM | FileTranscodedUTF16, nil
	}
	if text, had := trimUTF8BOM(raw); had {
		return text, FileHadBOM, nil
	}
	return raw, 0, nil
}

func hasUTF16BOM(b []byte) bool {
	if len(b) < 2 {
		return false
	}
	return (b[0] == 0xFE && b[1] == 0xFF) || (b[0] == 0xFF && b[1] == 0xFE)
}

func trimUTF8BOM(b []byte) ([]byte, bool) {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		return b[3:], true
	}
	return b, false
}

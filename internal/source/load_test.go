package source

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestReadFilePlain(t *testing.T) {
	path := writeTemp(t, "plain.pthr", []byte("var x = 1\r\nvar y = 2\n"))

	text, flags, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if flags != 0 {
		t.Errorf("Expected no flags for plain file, got %b", flags)
	}
	// CRLF must survive untouched.
	if string(text) != "var x = 1\r\nvar y = 2\n" {
		t.Errorf("Expected line endings preserved, got %q", string(text))
	}
}

func TestReadFileStripsUTF8BOM(t *testing.T) {
	path := writeTemp(t, "bom.pthr", []byte{0xEF, 0xBB, 0xBF, 'h', 'i'})

	text, flags, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(text) != "hi" {
		t.Errorf("Expected BOM stripped, got %q", string(text))
	}
	if flags&FileHadBOM == 0 {
		t.Error("Expected FileHadBOM flag")
	}
	if flags&FileTranscodedUTF16 != 0 {
		t.Error("Did not expect FileTranscodedUTF16 for UTF-8 input")
	}
}

func TestReadFileTranscodesUTF16(t *testing.T) {
	cases := map[string][]byte{
		"le.pthr": {0xFF, 0xFE, 'o', 0x00, 'k', 0x00},
		"be.pthr": {0xFE, 0xFF, 0x00, 'o', 0x00, 'k'},
	}
	for name, content := range cases {
		path := writeTemp(t, name, content)

		text, flags, err := ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile(%s): %v", name, err)
		}
		if string(text) != "ok" {
			t.Errorf("ReadFile(%s) = %q, want %q", name, string(text), "ok")
		}
		if flags&FileTranscodedUTF16 == 0 {
			t.Errorf("ReadFile(%s): expected FileTranscodedUTF16 flag", name)
		}
		if flags&FileHadBOM == 0 {
			t.Errorf("ReadFile(%s): expected FileHadBOM flag", name)
		}
	}
}

func TestReadFileMissing(t *testing.T) {
	_, _, err := ReadFile(filepath.Join(t.TempDir(), "nope.pthr"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}

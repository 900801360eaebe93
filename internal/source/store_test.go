package source

import (
	"testing"

	"panther/internal/token"
)

func TestStoreAddSourceAssignsDenseIDs(t *testing.T) {
	store := NewStore()

	id1 := store.AddSource("a.pthr", []byte("var a = 1"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}
	id2 := store.AddSource("b.pthr", []byte("var b = 2"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	f1 := store.Get(id1)
	if string(f1.Text) != "var a = 1" {
		t.Errorf("Expected first file text 'var a = 1', got %q", string(f1.Text))
	}
	f2 := store.Get(id2)
	if string(f2.Text) != "var b = 2" {
		t.Errorf("Expected second file text 'var b = 2', got %q", string(f2.Text))
	}
	if f1.Hash == f2.Hash {
		t.Error("Expected different content hashes for different texts")
	}
	if store.NumSources() != 2 {
		t.Errorf("Expected NumSources 2, got %d", store.NumSources())
	}
}

func TestStoreSamePathTwiceKeepsBothFiles(t *testing.T) {
	store := NewStore()

	id1 := store.AddSource("main.pthr", []byte("old"), 0)
	id2 := store.AddSource("main.pthr", []byte("new"), 0)
	if id1 == id2 {
		t.Fatalf("Expected distinct IDs, both are %d", id1)
	}
	if string(store.Get(id1).Text) != "old" {
		t.Error("Expected first file to keep its text")
	}
	if string(store.Get(id2).Text) != "new" {
		t.Error("Expected second file to have the new text")
	}
	if store.Get(id1).Path != store.Get(id2).Path {
		t.Error("Expected both files to share the path")
	}
}

func TestStoreAddVirtualSetsFlag(t *testing.T) {
	store := NewStore()

	id := store.AddVirtual("test.pthr", []byte("x := 1"))
	file := store.Get(id)
	if file.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag to be set")
	}
}

func TestStoreReserveKeepsCount(t *testing.T) {
	store := NewStore()
	store.AddVirtual("one.pthr", []byte("1"))

	store.Reserve(16)
	if store.NumSources() != 1 {
		t.Errorf("Expected NumSources to stay 1 after Reserve, got %d", store.NumSources())
	}

	// A *File taken before more appends must stay valid.
	before := store.Get(0)
	for i := 0; i < 32; i++ {
		store.AddVirtual("more.pthr", []byte("x"))
	}
	if string(before.Text) != "1" {
		t.Errorf("Expected held *File to stay valid, text is %q", string(before.Text))
	}
}

func TestStoreSnapshotIDsExcludesLaterAdds(t *testing.T) {
	store := NewStore()
	store.AddVirtual("a.pthr", []byte("a"))
	store.AddVirtual("b.pthr", []byte("b"))

	snap := store.SnapshotIDs()
	store.AddVirtual("c.pthr", []byte("c"))

	if len(snap) != 2 {
		t.Fatalf("Expected snapshot of 2 IDs, got %d", len(snap))
	}
	for i, id := range snap {
		if id != FileID(i) {
			t.Errorf("Expected snapshot ID %d at index %d, got %d", i, i, id)
		}
	}
}

func TestInstallTokensOnce(t *testing.T) {
	store := NewStore()
	id := store.AddVirtual("t.pthr", []byte("x"))

	if store.Get(id).Tokens() != nil {
		t.Fatal("Expected no token buffer before install")
	}

	buf := token.NewBuffer()
	buf.Append(token.EOF, token.Point(1, 1))
	buf.Lock()
	store.InstallTokens(id, buf)

	got := store.Get(id).Tokens()
	if got == nil {
		t.Fatal("Expected token buffer after install")
	}
	if got.Len() != 1 {
		t.Errorf("Expected installed buffer with 1 token, got %d", got.Len())
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected second InstallTokens to panic")
		}
	}()
	store.InstallTokens(id, token.NewBuffer())
}

func TestNormalizePath(t *testing.T) {
	cases := map[string]string{
		"./a/b.pthr":  "a/b.pthr",
		"a//b.pthr":   "a/b.pthr",
		"a/../b.pthr": "b.pthr",
	}
	for in, want := range cases {
		if got := normalizePath(in); got != want {
			t.Errorf("normalizePath(%q) = %q, want %q", in, got, want)
		}
	}
}

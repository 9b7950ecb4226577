package table

import (
	"errors"
	"slices"
	"testing"

	"github.com/mwantia/embedvfs/compress"
)

func TestBuilder_Validation(t *testing.T) {
	b := NewBuilder()

	if err := b.Add("relative/path", 0, compress.CodecNone, nil); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("relative path: expected ErrInvalidPath, got %v", err)
	}
	if err := b.Add("/trailing/", 0, compress.CodecNone, nil); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("trailing separator: expected ErrInvalidPath, got %v", err)
	}

	if err := b.Add("/a.txt", 1, compress.CodecNone, []byte("x")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := b.Add("/a.txt", 1, compress.CodecNone, []byte("x")); !errors.Is(err, ErrDuplicatePath) {
		t.Errorf("duplicate: expected ErrDuplicatePath, got %v", err)
	}
}

func TestTable_LookupExactMatch(t *testing.T) {
	b := NewBuilder()
	if err := b.Add("/dir/file.txt", 4, compress.CodecNone, []byte("data")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	tbl := b.Build()

	entry, exists := tbl.Lookup("/dir/file.txt")
	if !exists {
		t.Fatal("exact path not found")
	}
	if entry.Size != 4 || entry.Compressed() {
		t.Errorf("unexpected entry: %+v", entry)
	}

	// Exact match only: no normalization, no prefix matching, case
	// sensitive.
	for _, miss := range []string{"/dir", "/dir/", "/dir/file.txt/", "/dir/./file.txt", "/DIR/FILE.TXT"} {
		if _, exists := tbl.Lookup(miss); exists {
			t.Errorf("Lookup(%q) unexpectedly matched", miss)
		}
	}
}

func TestTable_InsertionOrder(t *testing.T) {
	paths := []string{"/z.txt", "/a.txt", "/m/inner.txt", "/b.txt"}

	b := NewBuilder()
	for _, path := range paths {
		if err := b.Add(path, 0, compress.CodecNone, nil); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	tbl := b.Build()

	if tbl.Len() != len(paths) {
		t.Fatalf("Len = %d, want %d", tbl.Len(), len(paths))
	}

	var listed []string
	for entry := range tbl.All() {
		listed = append(listed, entry.Path)
	}
	if !slices.Equal(listed, paths) {
		t.Errorf("All = %v, want insertion order %v", listed, paths)
	}

	for i, path := range paths {
		if tbl.At(i).Path != path {
			t.Errorf("At(%d) = %s, want %s", i, tbl.At(i).Path, path)
		}
	}
}

func TestTable_Sizes(t *testing.T) {
	b := NewBuilder()
	b.MustAdd("/one", 10, compress.CodecZstd, make([]byte, 4))
	b.MustAdd("/two", 5, compress.CodecNone, make([]byte, 5))
	tbl := b.Build()

	if tbl.TotalSize() != 15 {
		t.Errorf("TotalSize = %d, want 15", tbl.TotalSize())
	}
	if tbl.EmbeddedSize() != 9 {
		t.Errorf("EmbeddedSize = %d, want 9", tbl.EmbeddedSize())
	}
}

func TestEntry_Logical(t *testing.T) {
	b := NewBuilder()
	b.MustAdd("/plain", 5, compress.CodecNone, []byte("plain"))
	tbl := b.Build()

	entry, _ := tbl.Lookup("/plain")
	data, err := entry.Logical()
	if err != nil {
		t.Fatalf("Logical failed: %v", err)
	}
	if string(data) != "plain" {
		t.Errorf("Logical = %q", data)
	}
}

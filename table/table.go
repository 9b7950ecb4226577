// Package table defines the compiled-in resource table consumed by the
// virtual filesystem: an insertion-ordered, immutable sequence of
// path→bytes entries. Tables are produced at build time (see
// cmd/embedgen) and never mutated after Build.
package table

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/tidwall/btree"

	"github.com/mwantia/embedvfs/compress"
)

// Table construction errors.
var (
	ErrDuplicatePath = errors.New("table: duplicate virtual path")
	ErrInvalidPath   = errors.New("table: invalid virtual path")
)

// Entry is one embedded file: its virtual path, its stored bytes and
// the facts needed to recover the logical bytes.
type Entry struct {
	// Path is the absolute virtual path and the unique lookup key.
	// Matching is exact and case-sensitive; no normalization of "." or
	// ".." is performed anywhere in the system.
	Path string

	// Size is the logical (decompressed) byte length, independent of
	// how the entry is stored.
	Size int64

	// Codec says how Data was encoded at build time.
	Codec compress.Codec

	// Data holds the bytes as embedded: the logical bytes for
	// CodecNone, a compressed encoding otherwise.
	Data []byte
}

// Compressed reports whether the entry's stored bytes require
// decompression before use.
func (e *Entry) Compressed() bool {
	return e.Codec != compress.CodecNone
}

// Logical returns the entry's logical bytes, decoding if necessary.
// For CodecNone this is Data itself (no copy).
func (e *Entry) Logical() ([]byte, error) {
	return compress.Decompress(e.Data, e.Codec, int(e.Size))
}

// Table is an immutable, insertion-ordered resource table. Lookup by
// path is served from a btree index; iteration always follows
// insertion order so that listings are deterministic.
type Table struct {
	entries []Entry
	index   *btree.Map[string, int]
}

// Builder assembles a Table row by row. The zero value is not usable;
// use NewBuilder.
type Builder struct {
	entries []Entry
	index   *btree.Map[string, int]
}

// NewBuilder returns an empty table builder.
func NewBuilder() *Builder {
	return &Builder{
		index: btree.NewMap[string, int](0), // degree 0 = auto-optimize
	}
}

// Add appends one row. The path must be absolute and must not have
// been added before; insertion order is preserved in the built table.
func (b *Builder) Add(path string, size int64, codec compress.Codec, data []byte) error {
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("%w: %q is not absolute", ErrInvalidPath, path)
	}
	if strings.HasSuffix(path, "/") {
		return fmt.Errorf("%w: %q has a trailing separator", ErrInvalidPath, path)
	}
	if _, exists := b.index.Get(path); exists {
		return fmt.Errorf("%w: %s", ErrDuplicatePath, path)
	}

	b.index.Set(path, len(b.entries))
	b.entries = append(b.entries, Entry{
		Path:  path,
		Size:  size,
		Codec: codec,
		Data:  data,
	})

	return nil
}

// MustAdd is Add for generated code, where the rows are known valid.
func (b *Builder) MustAdd(path string, size int64, codec compress.Codec, data []byte) {
	if err := b.Add(path, size, codec, data); err != nil {
		panic(err)
	}
}

// Build freezes the builder into an immutable Table. The builder must
// not be used afterwards.
func (b *Builder) Build() *Table {
	t := &Table{
		entries: b.entries,
		index:   b.index,
	}

	b.entries = nil
	b.index = nil

	return t
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Lookup returns the entry stored under the exact path, if any.
func (t *Table) Lookup(path string) (*Entry, bool) {
	i, exists := t.index.Get(path)
	if !exists {
		return nil, false
	}
	return &t.entries[i], true
}

// At returns the entry at position i in insertion order.
func (t *Table) At(i int) *Entry {
	return &t.entries[i]
}

// All returns an iterator over every entry in insertion order. The
// sequence is finite and restartable; ranging twice yields the same
// entries in the same order.
func (t *Table) All() iter.Seq[*Entry] {
	return func(yield func(*Entry) bool) {
		for i := range t.entries {
			if !yield(&t.entries[i]) {
				return
			}
		}
	}
}

// TotalSize returns the sum of all logical entry sizes.
func (t *Table) TotalSize() int64 {
	var total int64
	for i := range t.entries {
		total += t.entries[i].Size
	}
	return total
}

// EmbeddedSize returns the sum of all stored byte lengths. Equals
// TotalSize when nothing is compressed, smaller otherwise.
func (t *Table) EmbeddedSize() int64 {
	var total int64
	for i := range t.entries {
		total += int64(len(t.entries[i].Data))
	}
	return total
}

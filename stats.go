package embedvfs

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	pathpkg "path"
)

// EntryCount returns the number of embedded entries.
func (v *VFS) EntryCount() (int, error) {
	if err := v.alive(); err != nil {
		return 0, err
	}

	return v.table.Len(), nil
}

// TotalSize returns the summed logical (uncompressed) size of all
// embedded entries in bytes.
func (v *VFS) TotalSize() (int64, error) {
	if err := v.alive(); err != nil {
		return 0, err
	}

	return v.table.TotalSize(), nil
}

// EmbeddedSize returns the summed stored size of all embedded entries
// in bytes: equal to TotalSize when nothing is compressed, smaller
// otherwise.
func (v *VFS) EmbeddedSize() (int64, error) {
	if err := v.alive(); err != nil {
		return 0, err
	}

	return v.table.EmbeddedSize(), nil
}

// Entries returns a lazy, finite, restartable sequence of all embedded
// virtual paths in table order. Re-ranging yields the same sequence.
func (v *VFS) Entries() (iter.Seq[string], error) {
	if err := v.alive(); err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		for entry := range v.table.All() {
			if !yield(entry.Path) {
				return
			}
		}
	}, nil
}

// Stats is a read-only summary of the resource table.
type Stats struct {
	EntryCount   int
	TotalSize    int64
	EmbeddedSize int64
}

func (s Stats) String() string {
	return fmt.Sprintf("%d entries, %d bytes logical, %d bytes embedded",
		s.EntryCount, s.TotalSize, s.EmbeddedSize)
}

// Stats returns the table summary.
func (v *VFS) Stats() (Stats, error) {
	if err := v.alive(); err != nil {
		return Stats{}, err
	}

	return Stats{
		EntryCount:   v.table.Len(),
		TotalSize:    v.table.TotalSize(),
		EmbeddedSize: v.table.EmbeddedSize(),
	}, nil
}

// ListFiles writes a human-readable listing of every embedded entry to
// w, in table order.
func (v *VFS) ListFiles(w io.Writer) error {
	if err := v.alive(); err != nil {
		return err
	}

	for entry := range v.table.All() {
		if _, err := fmt.Fprintf(w, "%s\t%d\t%s\n", entry.Path, entry.Size, entry.Codec); err != nil {
			return err
		}
	}
	return nil
}

// FileInfo describes a file or directory in the namespace served by
// the VFS. Virtual entries have no permissions or timestamps; those
// fields only carry meaning for real-filesystem paths.
type FileInfo struct {
	Path       string
	Name       string
	Size       int64
	IsDir      bool
	Embedded   bool
	Compressed bool
}

// Stat returns metadata for a path. Virtual paths are answered from
// the resource table (files by exact match, directories by prefix);
// real paths forward to os.Stat with errors passed through unmodified.
func (v *VFS) Stat(path string) (*FileInfo, error) {
	if err := v.alive(); err != nil {
		return nil, err
	}

	entry, result := v.resolve(path)
	if result == resolveReal {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		return &FileInfo{
			Path:  path,
			Name:  info.Name(),
			Size:  info.Size(),
			IsDir: info.IsDir(),
		}, nil
	}

	if result == resolveMissing {
		if v.isVirtualDir(path) {
			return &FileInfo{
				Path:     path,
				Name:     pathpkg.Base(path),
				IsDir:    true,
				Embedded: true,
			}, nil
		}
		return nil, ErrNotExist
	}

	return &FileInfo{
		Path:       entry.Path,
		Name:       pathpkg.Base(entry.Path),
		Size:       entry.Size,
		Embedded:   true,
		Compressed: entry.Compressed(),
	}, nil
}

// Exists reports whether a path names an embedded file or directory,
// or an existing real path.
func (v *VFS) Exists(path string) (bool, error) {
	_, err := v.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrNotExist) || errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

package embedvfs

import (
	"io"
	"os"
	"strings"
	"syscall"
)

// Dir is an open directory cursor. ReadNext returns one child name per
// call and io.EOF when the listing is exhausted. Close is one-shot;
// cursors are not internally synchronized.
type Dir interface {
	// ReadNext returns the next child name, or io.EOF at the end of
	// the listing.
	ReadNext() (string, error)

	// Close releases the cursor.
	Close() error
}

// OpenDir opens a directory. Paths under VirtualRoot are answered from
// the resource table: the cursor yields the directory's immediate
// children (files and deduplicated subdirectory names) in
// first-occurrence table order. An under-root path with no matching
// entries yields a valid, immediately exhausted cursor — an embedded
// directory with no files is not an error. Paths outside the virtual
// root proxy the operating system's directory primitives.
func (v *VFS) OpenDir(path string) (Dir, error) {
	if err := v.alive(); err != nil {
		return nil, err
	}

	if !underRoot(path) {
		v.debugf("opendir %s: real filesystem", path)
		return openRealDir(path)
	}

	names := v.childNames(path)
	v.debugf("opendir %s: embedded, %d children", path, len(names))

	return &virtualDir{
		path:  path,
		names: names,
	}, nil
}

// childNames synthesizes the immediate children of a virtual directory
// from the flat table. For every entry under path, the first segment
// past the prefix is a child: a file if it is the last segment, a
// subdirectory otherwise. Subdirectories appearing under several
// entries are reported once, at their first occurrence.
func (v *VFS) childNames(path string) []string {
	prefix := path
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	var names []string
	seen := make(map[string]bool)

	for entry := range v.table.All() {
		rest, ok := strings.CutPrefix(entry.Path, prefix)
		if !ok || rest == "" {
			continue
		}

		name, _, _ := strings.Cut(rest, "/")
		if seen[name] {
			continue
		}

		seen[name] = true
		names = append(names, name)
	}

	return names
}

// virtualDir is an emulated directory cursor over the table. The child
// set is computed at open time and the cursor only moves forward.
type virtualDir struct {
	path   string
	names  []string
	pos    int
	closed bool
}

func (d *virtualDir) ReadNext() (string, error) {
	if d.closed {
		return "", ErrClosed
	}

	if d.pos >= len(d.names) {
		return "", io.EOF
	}

	name := d.names[d.pos]
	d.pos++

	return name, nil
}

func (d *virtualDir) Close() error {
	if d.closed {
		return ErrClosed
	}

	d.closed = true
	return nil
}

// realDir proxies the operating system's directory primitives for
// paths outside the virtual root.
type realDir struct {
	f *os.File
}

func openRealDir(path string) (Dir, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	// opendir fails at open time on a non-directory; match that shape
	// instead of deferring the error to the first read.
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if !info.IsDir() {
		f.Close()
		return nil, &os.PathError{Op: "open", Path: path, Err: syscall.ENOTDIR}
	}

	return &realDir{f: f}, nil
}

func (d *realDir) ReadNext() (string, error) {
	names, err := d.f.Readdirnames(1)
	if err != nil {
		// io.EOF at end of directory, anything else unmodified.
		return "", err
	}

	return names[0], nil
}

func (d *realDir) Close() error {
	return d.f.Close()
}

package embedvfs

import (
	"io"
	"os"
	"sync"
)

// File is the handle returned by Open for both virtual and real paths.
// Virtual handles are read-only, seekable views over in-memory bytes;
// real handles proxy an *os.File with the caller's requested mode.
type File interface {
	io.Reader
	io.Seeker
	io.Closer

	// Name returns the path the handle was opened with.
	Name() string

	// Size returns the logical length in bytes. For real handles this
	// is the size at open time.
	Size() int64
}

// Open opens a file. Paths under VirtualRoot resolve against the
// resource table: a hit yields a read-only memory-backed handle (any
// write-intent mode fails with ErrReadOnly), a miss fails with
// ErrNotExist and never falls back to the real filesystem. Paths
// outside the virtual root are forwarded to the operating system with
// the mode honored as-is, including write modes.
func (v *VFS) Open(path string, mode AccessMode) (File, error) {
	if err := v.alive(); err != nil {
		return nil, err
	}

	entry, result := v.resolve(path)
	if result == resolveReal {
		v.debugf("open %s: real filesystem", path)
		return openReal(path, mode)
	}
	if result == resolveMissing {
		if v.isVirtualDir(path) {
			return nil, ErrIsDirectory
		}
		v.debugf("open %s: not embedded", path)
		return nil, ErrNotExist
	}

	if mode.WriteIntent() {
		return nil, ErrReadOnly
	}

	buffer, err := v.cache.getOrDecompress(entry)
	if err != nil {
		return nil, err
	}

	v.debugf("open %s: embedded, %d bytes (%s)", path, entry.Size, entry.Codec)

	return &memFile{
		path:   path,
		buffer: buffer,
		size:   int64(len(buffer)),
	}, nil
}

// memFile is a read-only, seekable stream over an embedded entry's
// logical bytes. The buffer is borrowed from the decompression cache
// (or the table itself for uncompressed entries) and never written.
type memFile struct {
	mu     sync.Mutex
	path   string
	buffer []byte
	size   int64
	offset int64
	closed bool
}

func (f *memFile) Read(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return 0, ErrClosed
	}

	if f.offset >= int64(len(f.buffer)) {
		return 0, io.EOF
	}

	n := copy(p, f.buffer[f.offset:])
	f.offset += int64(n)

	return n, nil
}

// Seek implements io.Seeker. The resulting offset must stay within
// [0, Size]; Seek with io.SeekCurrent and zero offset reports the
// current position (tell).
func (f *memFile) Seek(offset int64, whence int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return 0, ErrClosed
	}

	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = f.offset + offset
	case io.SeekEnd:
		next = int64(len(f.buffer)) + offset
	default:
		return 0, ErrInvalid
	}

	if next < 0 || next > int64(len(f.buffer)) {
		return 0, ErrInvalid
	}

	f.offset = next
	return next, nil
}

func (f *memFile) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}

	f.closed = true
	f.buffer = nil

	return nil
}

func (f *memFile) Name() string {
	return f.path
}

// Size reports the logical length, including after Close.
func (f *memFile) Size() int64 {
	return f.size
}

// openReal forwards to os.OpenFile and wraps the handle so real and
// virtual files share the File interface. Errors come back from the
// operating system unmodified.
func openReal(path string, mode AccessMode) (File, error) {
	f, err := os.OpenFile(path, mode.OSFlags(), 0o644)
	if err != nil {
		return nil, err
	}

	var size int64
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}

	return &realFile{File: f, size: size}, nil
}

// realFile proxies an *os.File opened through the fallback path.
type realFile struct {
	*os.File
	size int64
}

func (f *realFile) Size() int64 {
	return f.size
}

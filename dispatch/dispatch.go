// Package dispatch defines the small capability interface a host
// runtime is given for its file and directory primitives, plus the two
// implementations: one backed by the embedded virtual filesystem (with
// real-filesystem fallback built in) and one that goes straight to the
// operating system.
//
// A runtime embedding this library injects one FileSystem at startup
// and routes every open/opendir/readdir/closedir through it. The layer
// performs no logic of its own beyond translation.
package dispatch

import (
	"io"
	"os"
	"syscall"

	"github.com/mwantia/embedvfs"
)

// File is a readable, seekable file handle as seen by the host
// runtime.
type File interface {
	io.Reader
	io.Seeker
	io.Closer
}

// Dir is a directory cursor as seen by the host runtime. ReadNext
// returns io.EOF at the end of the listing.
type Dir interface {
	ReadNext() (string, error)
	Close() error
}

// FileSystem is the capability interface injected into the host
// runtime. Mode strings follow the C fopen grammar the runtime already
// speaks ("r", "wb", "a+", ...).
type FileSystem interface {
	Open(path, mode string) (File, error)
	OpenDir(path string) (Dir, error)
}

// Embed returns a FileSystem that serves embedded resources from the
// given VFS and falls back to the real filesystem for everything
// outside the virtual root.
func Embed(v *embedvfs.VFS) FileSystem {
	return &embedFS{vfs: v}
}

type embedFS struct {
	vfs *embedvfs.VFS
}

func (fs *embedFS) Open(path, mode string) (File, error) {
	access, err := embedvfs.ParseAccessMode(mode)
	if err != nil {
		return nil, err
	}

	file, err := fs.vfs.Open(path, access)
	if err != nil {
		return nil, err
	}
	return file, nil
}

func (fs *embedFS) OpenDir(path string) (Dir, error) {
	dir, err := fs.vfs.OpenDir(path)
	if err != nil {
		return nil, err
	}
	return dir, nil
}

// OS is the direct real-filesystem implementation, usable as the
// non-virtual fallback or for runtimes built without embedded
// resources.
type OS struct{}

func (OS) Open(path, mode string) (File, error) {
	access, err := embedvfs.ParseAccessMode(mode)
	if err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, access.OSFlags(), 0o644)
	if err != nil {
		return nil, err
	}
	return file, nil
}

func (OS) OpenDir(path string) (Dir, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	// opendir fails at open time on a non-directory.
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if !info.IsDir() {
		f.Close()
		return nil, &os.PathError{Op: "open", Path: path, Err: syscall.ENOTDIR}
	}

	return &osDir{f: f}, nil
}

type osDir struct {
	f *os.File
}

func (d *osDir) ReadNext() (string, error) {
	names, err := d.f.Readdirnames(1)
	if err != nil {
		return "", err
	}

	return names[0], nil
}

func (d *osDir) Close() error {
	return d.f.Close()
}

// Package embedvfs serves a fixed set of resources that were compiled
// into the binary as if they were ordinary files on disk, while
// transparently falling back to the real filesystem for every path
// outside the virtual root.
//
// The filesystem is read-only for the process lifetime: virtual
// content is immutable, and any write-intent open against a virtual
// path fails with ErrReadOnly. Paths that do not start with
// VirtualRoot are forwarded verbatim to the operating system.
package embedvfs

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mwantia/embedvfs/table"
)

// VirtualRoot is the fixed absolute prefix identifying the synthetic
// namespace. All embedded files are accessible under this prefix; host
// applications use it to construct virtual paths (for example as a
// library search directory).
const VirtualRoot = "/embedvfs"

// VFS is the virtual filesystem context. It holds the resource table,
// the decompression cache and the lifecycle state. Create one with New
// and release it with Shutdown; every other method requires the VFS to
// be alive.
//
// The resource table is immutable and safe to share. Directory cursors
// returned by OpenDir are not internally synchronized; callers that
// share a single cursor across goroutines must serialize access
// themselves.
type VFS struct {
	mu     sync.RWMutex
	closed bool

	table *table.Table
	cache *decompressionCache

	logger  Logger
	verbose bool
}

// New creates a virtual filesystem over the given resource table.
// The table must not be mutated afterwards.
func New(t *table.Table, opts ...Option) (*VFS, error) {
	if t == nil {
		return nil, ErrInvalid
	}
	for entry := range t.All() {
		if !underRoot(entry.Path) {
			return nil, fmt.Errorf("%w: entry %q is outside the virtual root", ErrInvalid, entry.Path)
		}
	}

	v := &VFS{
		table: t,
		cache: newDecompressionCache(),
	}

	for _, opt := range opts {
		opt(v)
	}

	v.debugf("initialized with %d embedded entries (%d bytes logical, %d embedded)",
		t.Len(), t.TotalSize(), t.EmbeddedSize())

	return v, nil
}

// Shutdown releases the filesystem. All previously returned file and
// directory handles are invalidated; every later operation on the VFS
// returns ErrShutdown. Shutdown itself is idempotent.
func (v *VFS) Shutdown() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return nil
	}

	v.closed = true
	v.cache.clear()
	v.debugf("shut down")

	return nil
}

// alive returns ErrShutdown once Shutdown has been called.
func (v *VFS) alive() error {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.closed {
		return ErrShutdown
	}
	return nil
}

// resolution classifies an incoming path.
type resolution int

const (
	// resolveReal: the path is outside the virtual root and belongs to
	// the operating system.
	resolveReal resolution = iota

	// resolveEntry: the path names an embedded file.
	resolveEntry

	// resolveMissing: the path claims the virtual root but no entry is
	// stored under it. Deliberately never falls back to the real
	// filesystem: the virtual root is a synthetic namespace with no
	// real counterpart, and silently serving a real file from under it
	// would substitute different data.
	resolveMissing
)

// underRoot reports whether path lies inside the virtual namespace.
// The check is by path-segment boundary, so "/embedvfs-other" is a
// real path even though it shares a string prefix with the root.
func underRoot(path string) bool {
	return path == VirtualRoot || strings.HasPrefix(path, VirtualRoot+"/")
}

// resolve performs the virtual/real classification and, for virtual
// paths, the exact-match table lookup. The table key is the path
// exactly as given; no cleaning or normalization is applied.
func (v *VFS) resolve(path string) (*table.Entry, resolution) {
	if !underRoot(path) {
		return nil, resolveReal
	}

	if entry, exists := v.table.Lookup(path); exists {
		return entry, resolveEntry
	}

	return nil, resolveMissing
}

// isVirtualDir reports whether path names a directory in the virtual
// namespace: the root itself, or a segment-boundary prefix of at least
// one entry path.
func (v *VFS) isVirtualDir(path string) bool {
	if path == VirtualRoot {
		return true
	}

	prefix := path + "/"
	for entry := range v.table.All() {
		if strings.HasPrefix(entry.Path, prefix) {
			return true
		}
	}
	return false
}

// debugf logs through the configured logger when verbose diagnostics
// are enabled. Logging is purely additive; no control flow or return
// value ever depends on it.
func (v *VFS) debugf(msg string, args ...any) {
	if v.verbose && v.logger != nil {
		v.logger.Debug(msg, args...)
	}
}

package embedvfs

import (
	"fmt"
	"sync"

	"github.com/mwantia/embedvfs/table"
)

// decompressionCache memoizes decompressed buffers per virtual path so
// repeated opens of the same compressed entry pay the decompression
// cost once. The cache exclusively owns its buffers; file handles hold
// borrowed views that are only valid while the VFS is alive.
//
// The host runtime this layer was designed for is single-threaded, but
// the insert-or-fetch is still atomic per key: Go callers routinely
// share a VFS across goroutines and the mutex is cheap.
type decompressionCache struct {
	mu      sync.Mutex
	buffers map[string][]byte
}

func newDecompressionCache() *decompressionCache {
	return &decompressionCache{
		buffers: make(map[string][]byte),
	}
}

// getOrDecompress returns the entry's logical bytes. Uncompressed
// entries pass through without touching the cache. A failed
// decompression is never memoized; the next request decompresses
// again.
func (c *decompressionCache) getOrDecompress(entry *table.Entry) ([]byte, error) {
	if !entry.Compressed() {
		return entry.Data, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if buffer, exists := c.buffers[entry.Path]; exists {
		return buffer, nil
	}

	buffer, err := entry.Logical()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrCorrupt, entry.Path, err)
	}

	c.buffers[entry.Path] = buffer
	return buffer, nil
}

// clear drops every cached buffer. Subsequent requests re-decompress;
// clearing never loses correctness, only memoization.
func (c *decompressionCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.buffers = make(map[string][]byte)
}

// len reports the number of cached buffers.
func (c *decompressionCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.buffers)
}

// ClearCache drops all memoized decompressed buffers. Only meaningful
// for tables with compressed entries; correctness is unaffected either
// way.
func (v *VFS) ClearCache() error {
	if err := v.alive(); err != nil {
		return err
	}

	v.cache.clear()
	v.debugf("decompression cache cleared")

	return nil
}

package embedvfs

import "errors"

// Standard errors returned by the virtual filesystem. Real-filesystem
// fallback calls return their own errors (*os.PathError and friends)
// unmodified; nothing here ever reinterprets them.
var (
	// Lifecycle errors
	ErrShutdown = errors.New("embedvfs: filesystem has been shut down")

	// Path resolution errors
	ErrNotExist    = errors.New("embedvfs: file does not exist")
	ErrIsDirectory = errors.New("embedvfs: is a directory")
	ErrReadOnly    = errors.New("embedvfs: read-only filesystem")

	// Entry errors
	ErrCorrupt = errors.New("embedvfs: corrupt embedded entry")

	// Extraction errors
	ErrExtract = errors.New("embedvfs: extraction failed")

	// I/O errors
	ErrClosed  = errors.New("embedvfs: handle already closed")
	ErrInvalid = errors.New("embedvfs: invalid argument")
)

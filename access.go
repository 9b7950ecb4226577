package embedvfs

import (
	"fmt"
	"os"
	"strings"
)

// AccessMode represents file access modes for opening files.
// These modes control how files are opened (read, write, append, etc.).
type AccessMode int

// File access mode constants.
// These can be combined using bitwise OR.
const (
	AccessModeRead   AccessMode = 1 << iota // O_RDONLY: open for reading
	AccessModeWrite                         // O_WRONLY: open for writing
	AccessModeAppend                        // O_APPEND: append to file
	AccessModeCreate                        // O_CREATE: create if not exists
	AccessModeTrunc                         // O_TRUNC:  truncate on open
	AccessModeExcl                          // O_EXCL:   exclusive creation (with CREATE)
)

// IsReadOnly checks if the mode only allows reading.
func (m AccessMode) IsReadOnly() bool {
	return m&AccessModeRead != 0 && m&AccessModeWrite == 0
}

// IsWriteOnly checks if the mode only allows writing.
func (m AccessMode) IsWriteOnly() bool {
	return m&AccessModeWrite != 0 && m&AccessModeRead == 0
}

// IsReadWrite checks if the mode allows both reading and writing.
func (m AccessMode) IsReadWrite() bool {
	return m&AccessModeRead != 0 && m&AccessModeWrite != 0
}

// WriteIntent checks if the mode implies any mutation of the target:
// writing, appending, creating or truncating. Virtual paths reject
// every mode with write intent.
func (m AccessMode) WriteIntent() bool {
	return m&(AccessModeWrite|AccessModeAppend|AccessModeCreate|AccessModeTrunc) != 0
}

// OSFlags translates the mode into os.OpenFile flags for the
// real-filesystem fallback path.
func (m AccessMode) OSFlags() int {
	var flags int

	switch {
	case m.IsReadWrite():
		flags = os.O_RDWR
	case m.IsWriteOnly():
		flags = os.O_WRONLY
	default:
		flags = os.O_RDONLY
	}

	if m&AccessModeAppend != 0 {
		flags |= os.O_APPEND
	}
	if m&AccessModeCreate != 0 {
		flags |= os.O_CREATE
	}
	if m&AccessModeTrunc != 0 {
		flags |= os.O_TRUNC
	}
	if m&AccessModeExcl != 0 {
		flags |= os.O_EXCL
	}

	return flags
}

// ParseAccessMode converts a C fopen-style mode string ("r", "wb",
// "a+", ...) into an AccessMode. Host runtimes hand their mode strings
// through unchanged, so this accepts the full fopen grammar; the "b"
// suffix is ignored.
func ParseAccessMode(mode string) (AccessMode, error) {
	base := strings.ReplaceAll(mode, "b", "")
	plus := strings.HasSuffix(base, "+")
	base = strings.TrimSuffix(base, "+")

	switch base {
	case "r":
		if plus {
			return AccessModeRead | AccessModeWrite, nil
		}
		return AccessModeRead, nil
	case "w":
		m := AccessModeWrite | AccessModeCreate | AccessModeTrunc
		if plus {
			m |= AccessModeRead
		}
		return m, nil
	case "a":
		m := AccessModeWrite | AccessModeCreate | AccessModeAppend
		if plus {
			m |= AccessModeRead
		}
		return m, nil
	default:
		return 0, fmt.Errorf("%w: unknown access mode %q", ErrInvalid, mode)
	}
}

package embedvfs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ExtractToTemp materializes the whole virtual tree into a fresh,
// uniquely named real temporary directory: one real file per embedded
// entry, fully decompressed, with the directory structure of the
// virtual root preserved. Intended for tools that require genuine
// file paths, such as an external compiler invoked as a subprocess.
//
// On failure the partially written output is left on disk and the
// whole extraction must be treated as failed; the caller owns cleanup
// via CleanupTemp in either case. Nothing is removed automatically on
// process exit.
func (v *VFS) ExtractToTemp() (string, error) {
	if err := v.alive(); err != nil {
		return "", err
	}

	dir := filepath.Join(os.TempDir(), "embedvfs-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create %s: %s", ErrExtract, dir, err)
	}

	for entry := range v.table.All() {
		relative := strings.TrimPrefix(entry.Path, VirtualRoot+"/")
		destination := filepath.Join(dir, filepath.FromSlash(relative))

		if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
			return dir, fmt.Errorf("%w: create %s: %s", ErrExtract, filepath.Dir(destination), err)
		}

		buffer, err := v.cache.getOrDecompress(entry)
		if err != nil {
			return dir, fmt.Errorf("%w: %s: %s", ErrExtract, entry.Path, err)
		}

		if err := os.WriteFile(destination, buffer, 0o644); err != nil {
			return dir, fmt.Errorf("%w: write %s: %s", ErrExtract, destination, err)
		}
	}

	v.debugf("extracted %d entries to %s", v.table.Len(), dir)

	return dir, nil
}

// CleanupTemp recursively removes an extracted directory. Tolerates
// the directory having already been partially or fully removed.
func CleanupTemp(dir string) error {
	if dir == "" || dir == string(filepath.Separator) {
		return ErrInvalid
	}

	return os.RemoveAll(dir)
}

package embedvfs_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwantia/embedvfs"
	"github.com/mwantia/embedvfs/compress"
)

func TestExtractToTemp_Roundtrip(t *testing.T) {
	vfs := newTestVFS(t, compress.CodecZstd)

	dir, err := vfs.ExtractToTemp()
	if err != nil {
		t.Fatalf("ExtractToTemp failed: %v", err)
	}
	defer embedvfs.CleanupTemp(dir)

	// Every extracted real file reproduces the bytes of the
	// corresponding virtual path.
	for path, content := range testFiles {
		relative := strings.TrimPrefix(path, embedvfs.VirtualRoot+"/")
		real := filepath.Join(dir, filepath.FromSlash(relative))

		data, err := os.ReadFile(real)
		if err != nil {
			t.Fatalf("failed to read extracted %s: %v", real, err)
		}
		if !bytes.Equal(data, []byte(content)) {
			t.Errorf("%s: extracted content mismatch", relative)
		}
	}
}

func TestExtractToTemp_UniqueDirectories(t *testing.T) {
	vfs := newTestVFS(t, compress.CodecNone)

	first, err := vfs.ExtractToTemp()
	if err != nil {
		t.Fatalf("first extraction failed: %v", err)
	}
	defer embedvfs.CleanupTemp(first)

	second, err := vfs.ExtractToTemp()
	if err != nil {
		t.Fatalf("second extraction failed: %v", err)
	}
	defer embedvfs.CleanupTemp(second)

	if first == second {
		t.Errorf("extractions share a directory: %s", first)
	}
}

func TestCleanupTemp(t *testing.T) {
	vfs := newTestVFS(t, compress.CodecNone)

	dir, err := vfs.ExtractToTemp()
	if err != nil {
		t.Fatalf("ExtractToTemp failed: %v", err)
	}

	if err := embedvfs.CleanupTemp(dir); err != nil {
		t.Fatalf("CleanupTemp failed: %v", err)
	}

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("residual files after cleanup: %v", err)
	}

	// Tolerates the directory being already gone.
	if err := embedvfs.CleanupTemp(dir); err != nil {
		t.Errorf("CleanupTemp on missing directory failed: %v", err)
	}

	// Refuses obviously dangerous arguments.
	if err := embedvfs.CleanupTemp(""); err == nil {
		t.Error("CleanupTemp accepted an empty path")
	}
}

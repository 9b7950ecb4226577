package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwantia/embedvfs"
	"github.com/mwantia/embedvfs/compress"
	"github.com/mwantia/embedvfs/log"
)

func TestGenerator_Run(t *testing.T) {
	src := t.TempDir()

	big := strings.Repeat("module Prelude where\n", 100)
	files := map[string]string{
		"Prelude.hs":      big,
		"Data/List.hs":    strings.Repeat("module Data.List where\n", 100),
		"etc/version.txt": "0.1.0\n",
	}
	for name, content := range files {
		path := filepath.Join(src, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir failed: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}

	gen := &Generator{
		Source:  src,
		Package: "embedded",
		Var:     "Table",
		Codec:   compress.CodecZstd,
		MinSize: 64,
		Log:     log.NewLogger("test", log.Error, ""),
	}

	result, err := gen.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Files != len(files) {
		t.Errorf("Files = %d, want %d", result.Files, len(files))
	}
	if result.EmbeddedSize >= result.TotalSize {
		t.Errorf("EmbeddedSize = %d, expected smaller than %d", result.EmbeddedSize, result.TotalSize)
	}

	source := string(result.Source)
	if !strings.Contains(source, "package embedded") {
		t.Error("generated source misses the package clause")
	}
	if !strings.Contains(source, "var Table = func() *table.Table {") {
		t.Error("generated source misses the table declaration")
	}
	for _, virtual := range []string{
		embedvfs.VirtualRoot + "/Prelude.hs",
		embedvfs.VirtualRoot + "/Data/List.hs",
		embedvfs.VirtualRoot + "/etc/version.txt",
	} {
		if !strings.Contains(source, "\""+virtual+"\"") {
			t.Errorf("generated source misses entry %s", virtual)
		}
	}

	// Small files are stored uncompressed regardless of codec.
	if !strings.Contains(source, "compress.CodecNone") {
		t.Error("small file was not stored uncompressed")
	}
	if !strings.Contains(source, "compress.CodecZstd") {
		t.Error("large file was not compressed")
	}
}

func TestGenerator_EncodeFallback(t *testing.T) {
	gen := &Generator{
		Codec:   compress.CodecLZ4,
		MinSize: 4,
		Log:     log.NewLogger("test", log.Error, ""),
	}

	// Incompressible content falls back to CodecNone.
	stored, codec := gen.encode([]byte{0x01, 0xfe, 0x42, 0x99, 0x7a})
	if codec != compress.CodecNone {
		t.Errorf("codec = %v, want CodecNone", codec)
	}
	if len(stored) != 5 {
		t.Errorf("stored %d bytes, want 5", len(stored))
	}
}

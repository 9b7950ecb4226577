package main

import (
	"bytes"
	"fmt"
	"go/format"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mwantia/embedvfs"
	"github.com/mwantia/embedvfs/compress"
	"github.com/mwantia/embedvfs/log"
)

// Generator turns a source directory into generated Go source that
// declares a resource table. Files are visited in lexical walk order,
// which becomes the table's insertion order and therefore the listing
// order at runtime.
type Generator struct {
	Source  string
	Package string
	Var     string
	Codec   compress.Codec
	MinSize int64
	Log     *log.Logger
}

// Result reports what was generated.
type Result struct {
	Source       []byte
	Files        int
	TotalSize    int64
	EmbeddedSize int64
}

// Run walks the source directory and renders the generated file.
func (g *Generator) Run() (*Result, error) {
	var buffer bytes.Buffer

	fmt.Fprintf(&buffer, "// Code generated by embedgen; source %s. DO NOT EDIT.\n\n", g.Source)
	fmt.Fprintf(&buffer, "package %s\n\n", g.Package)
	fmt.Fprintf(&buffer, "import (\n")
	fmt.Fprintf(&buffer, "\t\"github.com/mwantia/embedvfs/compress\"\n")
	fmt.Fprintf(&buffer, "\t\"github.com/mwantia/embedvfs/table\"\n")
	fmt.Fprintf(&buffer, ")\n\n")
	fmt.Fprintf(&buffer, "var %s = func() *table.Table {\n", g.Var)
	fmt.Fprintf(&buffer, "\tb := table.NewBuilder()\n")

	result := &Result{}

	err := filepath.WalkDir(g.Source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		relative, err := filepath.Rel(g.Source, path)
		if err != nil {
			return err
		}
		virtual := embedvfs.VirtualRoot + "/" + filepath.ToSlash(relative)

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		stored, codec := g.encode(data)
		g.Log.Debug("embed %s: %d -> %d bytes (%s)", virtual, len(data), len(stored), codec)

		fmt.Fprintf(&buffer, "\tb.MustAdd(%q, %d, %s, []byte(%q))\n",
			virtual, len(data), codecExpr(codec), string(stored))

		result.Files++
		result.TotalSize += int64(len(data))
		result.EmbeddedSize += int64(len(stored))

		return nil
	})
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(&buffer, "\treturn b.Build()\n")
	fmt.Fprintf(&buffer, "}()\n")

	formatted, err := format.Source(buffer.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}

	result.Source = formatted
	return result, nil
}

// encode compresses data with the configured codec, falling back to
// CodecNone for small or incompressible content.
func (g *Generator) encode(data []byte) ([]byte, compress.Codec) {
	if g.Codec == compress.CodecNone || int64(len(data)) < g.MinSize {
		return data, compress.CodecNone
	}

	stored, err := compress.Compress(data, g.Codec)
	if err != nil {
		// Incompressible content is stored as-is; anything else would
		// have failed again at decode time anyway.
		return data, compress.CodecNone
	}

	return stored, g.Codec
}

func codecExpr(c compress.Codec) string {
	switch c {
	case compress.CodecZstd:
		return "compress.CodecZstd"
	case compress.CodecLZ4:
		return "compress.CodecLZ4"
	default:
		return "compress.CodecNone"
	}
}

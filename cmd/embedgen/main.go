// Command embedgen generates the compiled-in resource table for the
// embedded virtual filesystem. It walks a source directory, optionally
// compresses each file, and emits a Go source file declaring the table
// rows in walk order.
//
// Usage:
//
//	embedgen --src ./lib --out embedded/table.go --package embedded --codec zstd
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/mwantia/embedvfs/compress"
	"github.com/mwantia/embedvfs/log"
)

func main() {
	var (
		src      = pflag.String("src", "", "source directory to embed (required)")
		out      = pflag.String("out", "embedded_table.go", "output Go source file")
		pkg      = pflag.String("package", "main", "package name for the generated file")
		varName  = pflag.String("var", "EmbeddedTable", "variable name for the generated table")
		codec    = pflag.String("codec", "zstd", "codec for stored bytes: none, zstd or lz4")
		minSize  = pflag.Int64("min-size", 64, "files smaller than this are stored uncompressed")
		logLevel = pflag.String("log-level", "info", "log level: debug, info, warn or error")
	)
	pflag.Parse()

	logger := log.NewLogger("embedgen", log.Parse(*logLevel), "")

	if *src == "" {
		logger.Error("--src is required")
		pflag.Usage()
		os.Exit(2)
	}

	c, err := compress.ParseCodec(*codec)
	if err != nil {
		logger.Error("invalid --codec: %v", err)
		os.Exit(2)
	}

	gen := &Generator{
		Source:  *src,
		Package: *pkg,
		Var:     *varName,
		Codec:   c,
		MinSize: *minSize,
		Log:     logger,
	}

	result, err := gen.Run()
	if err != nil {
		logger.Error("generation failed: %v", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, result.Source, 0o644); err != nil {
		logger.Error("write %s: %v", *out, err)
		os.Exit(1)
	}

	logger.Info("wrote %s: %d files, %d bytes logical, %d bytes embedded",
		*out, result.Files, result.TotalSize, result.EmbeddedSize)
	fmt.Println(*out)
}

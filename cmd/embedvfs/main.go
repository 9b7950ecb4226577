// Command embedvfs is a demonstration and inspection binary for the
// embedded virtual filesystem. It builds a small sample table, mounts
// it, and exposes the introspection surface as subcommands:
//
//	embedvfs stats            table summary
//	embedvfs list             list every embedded entry
//	embedvfs ls <path>        emulated directory listing
//	embedvfs cat <path>       print an embedded file
//	embedvfs extract          materialize the tree to a temp directory
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/mwantia/embedvfs"
	"github.com/mwantia/embedvfs/compress"
	"github.com/mwantia/embedvfs/log"
	"github.com/mwantia/embedvfs/table"
)

// setupDemoTable builds a sample table with a mix of compressed and
// uncompressed entries.
func setupDemoTable() (*table.Table, error) {
	files := []struct {
		path    string
		content string
		codec   compress.Codec
	}{
		{"/lib/Prelude.hs", "module Prelude where\n\nid :: a -> a\nid x = x\n", compress.CodecZstd},
		{"/lib/Data/List.hs", "module Data.List where\n\nreverse :: [a] -> [a]\nreverse = foldl (flip (:)) []\n", compress.CodecZstd},
		{"/lib/Data/Maybe.hs", "module Data.Maybe where\n\nisJust :: Maybe a -> Bool\nisJust (Just _) = True\nisJust _ = False\n", compress.CodecLZ4},
		{"/etc/version", "0.1.0\n", compress.CodecNone},
	}

	b := table.NewBuilder()
	for _, f := range files {
		data := []byte(f.content)

		stored, codec := data, compress.CodecNone
		if f.codec != compress.CodecNone {
			encoded, err := compress.Compress(data, f.codec)
			if err == nil {
				stored, codec = encoded, f.codec
			}
		}

		if err := b.Add(embedvfs.VirtualRoot+f.path, int64(len(data)), codec, stored); err != nil {
			return nil, err
		}
	}

	return b.Build(), nil
}

func main() {
	var (
		verbose  = pflag.BoolP("verbose", "v", false, "enable verbose diagnostics")
		logFile  = pflag.String("log-file", "", "also log to this file (rotated)")
		logLevel = pflag.String("log-level", "info", "log level: debug, info, warn or error")
	)
	pflag.Parse()

	level := log.Parse(*logLevel)
	if *verbose {
		level = log.Debug
	}
	logger := log.NewLogger("embedvfs", level, *logFile)

	t, err := setupDemoTable()
	if err != nil {
		logger.Error("failed to build demo table: %v", err)
		os.Exit(1)
	}

	vfs, err := embedvfs.New(t,
		embedvfs.WithLogger(logger),
		embedvfs.WithVerbose(*verbose),
	)
	if err != nil {
		logger.Error("failed to initialize: %v", err)
		os.Exit(1)
	}
	defer vfs.Shutdown()

	args := pflag.Args()
	if len(args) == 0 {
		pflag.Usage()
		os.Exit(2)
	}

	if err := run(vfs, args); err != nil {
		logger.Error("%s: %v", args[0], err)
		os.Exit(1)
	}
}

func run(vfs *embedvfs.VFS, args []string) error {
	switch args[0] {
	case "stats":
		stats, err := vfs.Stats()
		if err != nil {
			return err
		}
		fmt.Println(stats)
		return nil

	case "list":
		return vfs.ListFiles(os.Stdout)

	case "ls":
		if len(args) < 2 {
			return fmt.Errorf("ls requires a path")
		}
		return runLs(vfs, args[1])

	case "cat":
		if len(args) < 2 {
			return fmt.Errorf("cat requires a path")
		}
		return runCat(vfs, args[1])

	case "extract":
		dir, err := vfs.ExtractToTemp()
		if err != nil {
			return err
		}
		fmt.Println(dir)
		return nil

	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func runLs(vfs *embedvfs.VFS, path string) error {
	dir, err := vfs.OpenDir(path)
	if err != nil {
		return err
	}
	defer dir.Close()

	for {
		name, err := dir.ReadNext()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Println(name)
	}
}

func runCat(vfs *embedvfs.VFS, path string) error {
	file, err := vfs.Open(path, embedvfs.AccessModeRead)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(os.Stdout, file)
	return err
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"umlsense/internal/source"
)

// loadDocument reads path ("-" for stdin) into a fresh FileSet.
func loadDocument(cmd *cobra.Command, path string) (*source.FileSet, *source.Document, error) {
	fs := source.NewFileSet()
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		id := fs.AddVirtual("<stdin>", string(data))
		return fs, fs.Get(id), nil
	}
	id, err := fs.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return fs, fs.Get(id), nil
}

func isDir(path string) (bool, error) {
	if path == "-" {
		return false, nil
	}
	st, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return st.IsDir(), nil
}

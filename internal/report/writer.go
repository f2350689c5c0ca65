package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xastools/beamcat/internal/model"
)

// Writer outputs a catalog to some destination.
//
// Design decision: We use an interface so the JSON catalog and the
// Markdown summary can be produced through the same API, and so tests
// can write to buffers instead of files.
type Writer interface {
	// Write outputs the catalog. Returns bytes written and any error.
	Write(catalog *model.Catalog) (int, error)
}

// baseWriter provides the shared output destination for writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// WriteFile atomically writes data to path: the bytes go to a temp file
// in the same directory which is then renamed into place. Either the
// complete catalog lands at path or the previous file is left untouched;
// a partially-written catalog is never observable.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to move catalog into place: %w", err)
	}
	return nil
}

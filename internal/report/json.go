package report

import (
	"encoding/json"
	"io"

	"github.com/xastools/beamcat/internal/model"
)

// Serialize renders the catalog in its canonical JSON form: keys sorted
// lexicographically at every level, two-space indentation, trailing
// newline, UTF-8.
//
// Design decision: We marshal the plain record map and let encoding/json
// sort the keys rather than walking the ordered facility list, because
// map-key sorting is what makes the output independent of extraction
// order and therefore byte-stable across runs.
func Serialize(catalog *model.Catalog) ([]byte, error) {
	data, err := json.MarshalIndent(catalog.Records, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// JSONWriter outputs the catalog in canonical JSON form.
type JSONWriter struct {
	baseWriter
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer) *JSONWriter {
	return &JSONWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the catalog as canonical JSON.
func (w *JSONWriter) Write(catalog *model.Catalog) (int, error) {
	data, err := Serialize(catalog)
	if err != nil {
		return 0, err
	}
	return w.output.Write(data)
}

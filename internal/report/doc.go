// Package report serializes a region's catalog and writes it out.
//
// The JSON form is the catalog of record: facility -> beamline -> record,
// canonical key order, stable two-space indentation, UTF-8. Byte-identical
// input HTML must produce byte-identical JSON, so serialization depends on
// nothing but the catalog contents (no timestamps, no random IDs).
//
// The Markdown form is a human-readable summary for review diffs, built
// with the nao1215/markdown table builder.
//
// File output is atomic: the catalog is written to a temp file and
// renamed into place, so a failed run never leaves a truncated catalog.
package report

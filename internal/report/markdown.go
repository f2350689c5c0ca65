package report

import (
	"io"
	"sort"

	"github.com/nao1215/markdown"

	"github.com/xastools/beamcat/internal/model"
)

// MarkdownWriter outputs a human-readable catalog summary.
// This format is for review and diffing, not for machine consumption;
// the JSON catalog remains the format of record.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the catalog summary in Markdown format. Facilities keep
// their master-table order; beamlines within a facility are sorted so
// the summary diffs as stably as the JSON does.
func (w *MarkdownWriter) Write(catalog *model.Catalog) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Beamline Catalog: " + catalog.Region.String())
	md.PlainText("")
	md.PlainTextf("Source: %s", catalog.Region.URL())
	md.PlainText("")

	for _, facility := range catalog.Facilities {
		beamlines := catalog.Records[facility]

		md.H2(facility)
		md.PlainText("")

		ids := make([]string, 0, len(beamlines))
		for id := range beamlines {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		rows := make([][]string, 0, len(ids))
		for _, id := range ids {
			bl := beamlines[id]
			rows = append(rows, []string{
				id, bl.Range, bl.Flux, bl.Size, bl.Purpose, bl.Status, bl.Website,
			})
		}

		md.Table(markdown.TableSet{
			Header: []string{"Beamline", "Range (keV)", "Flux", "Size (mm)", "Purpose", "Status", "Website"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	return len(md.String()), md.Build()
}

package sanitize

import (
	"regexp"
	"strings"
)

var (
	// dashRunRe matches a run of three or more dashes with optional
	// surrounding whitespace. The source tables use a dash run to mean
	// "or" between two alternative values.
	dashRunRe = regexp.MustCompile(`\s*-{3,}\s*`)

	// supTagRe matches superscript markup that leaked into cell text.
	supTagRe = regexp.MustCompile(`(?i)<sup>(\d+)</sup>`)

	// collapsedExpRe matches the residue of collapsed superscript markup:
	// "10<sup>11</sup>" stripped of its tags leaves "1011". Only applied
	// to value cells; identifiers like "10-ID-B" or facility names must
	// never be rewritten, so key sanitization skips this rule entirely.
	collapsedExpRe = regexp.MustCompile(`\b10(\d{1,2})\b`)

	// parenRe matches a parenthesized aside in a row-header cell.
	parenRe = regexp.MustCompile(`\([^)]*\)`)

	// multiSpaceRe matches runs of two or more interior spaces.
	multiSpaceRe = regexp.MustCompile(` {2,}`)
)

// Clean normalizes raw cell text extracted from a source table.
//
// When isKey is true the text is treated as an identifier (beamline or
// facility row header): parenthesized asides and carriage returns are
// stripped, and the exponent rewrite is suppressed so names are never
// mangled. When isKey is false the text is treated as a value cell and
// collapsed superscripts are rewritten to caret notation ("10^11").
//
// Clean is idempotent: Clean(Clean(s, k), k) == Clean(s, k).
func Clean(raw string, isKey bool) string {
	s := strings.ReplaceAll(raw, "\n", "")
	s = dashRunRe.ReplaceAllString(s, " or ")

	if !isKey {
		s = supTagRe.ReplaceAllString(s, "^$1")
		s = collapsedExpRe.ReplaceAllString(s, "10^$1")
	}

	// Encoding artifacts from the source page editor.
	s = strings.ReplaceAll(s, " ", " ") // non-breaking space
	s = strings.ReplaceAll(s, "µ", "u") // micro sign
	s = strings.ReplaceAll(s, "μ", "u") // Greek small mu
	s = strings.ReplaceAll(s, "×", " x ") // multiplication sign

	if isKey {
		s = parenRe.ReplaceAllString(s, "")
		s = strings.ReplaceAll(s, "\r", "")
	}

	s = strings.TrimLeft(s, " \t")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	return strings.TrimRight(s, " \t")
}

// Key is shorthand for Clean(raw, true).
func Key(raw string) string {
	return Clean(raw, true)
}

// Value is shorthand for Clean(raw, false).
func Value(raw string) string {
	return Clean(raw, false)
}

package extract

import (
	"regexp"
	"strings"
)

// ResolveWebsite searches the raw page text for an anchor whose visible
// text begins with the beamline identifier immediately after an href
// attribute, and returns the href value.
//
// This is a best-effort heuristic, not a DOM query: the beamline's
// anchor is nowhere near its table row, so we rely on the identifier
// appearing right after the href on the page. It fails silently for
// ambiguous anchor text (the word "XAFS" matches generically); those
// cases are corrected by the manual override table, never here. Do not
// try to generalize this.
func ResolveWebsite(raw, beamline string) string {
	re, err := regexp.Compile(`(?i)href\s*=\s*([^>]*)>\s*` + regexp.QuoteMeta(beamline))
	if err != nil {
		return ""
	}

	m := re.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}

	return trimCapturedHref(m[1])
}

// trimCapturedHref cleans the loosely-captured href value: surrounding
// quotes go, and anything from a stray quote, tag, or attribute boundary
// onward is markup that leaked into the capture, not part of the URL.
func trimCapturedHref(href string) string {
	href = strings.TrimLeft(href, `"' `)
	if i := strings.IndexAny(href, `"'< \t`); i >= 0 {
		href = href[:i]
	}
	return href
}

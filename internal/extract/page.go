package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Page is a fully-parsed source page. Extraction never operates on a
// partial document; the fetcher hands over the complete HTML before any
// table work begins.
type Page struct {
	// raw is the unparsed page text, kept for the website anchor search.
	raw string

	// doc is the parsed DOM wrapped for selection queries.
	doc *goquery.Document
}

// NewPage parses raw HTML into a Page.
func NewPage(rawHTML string) (*Page, error) {
	node, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, err
	}
	return &Page{
		raw: rawHTML,
		doc: goquery.NewDocumentFromNode(node),
	}, nil
}

// TableCount returns the number of tables on the page, counting nested
// tables in document order the same way slot lookup does.
func (p *Page) TableCount() int {
	return p.doc.Find("table").Length()
}

// table returns the table at the given 0-based slot, or nil if the page
// has no table there. Slot 0 is the master table.
func (p *Page) table(slot int) *goquery.Selection {
	sel := p.doc.Find("table").Eq(slot)
	if sel.Length() == 0 {
		return nil
	}
	return sel
}

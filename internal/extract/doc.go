// Package extract locates and parses the HTML tables on a region's
// source page.
//
// The page layout is positional: a master table summarizing the region's
// facilities comes first, followed by one table per facility in the same
// order the master table lists them. Facility i (0-based, after exclusion
// and reordering rules) therefore owns the table at slot i+1. The facility
// list extractor materializes that implicit contract as an explicit
// facility -> table-slot mapping so it can be inspected and tested.
//
// Design decision: We parse with golang.org/x/net/html and walk tables
// through goquery because the source HTML is malformed in places ("grrr"
// tables with nested and irregular rows) and a real parser handles that
// where regex cannot. The one deliberate exception is website resolution,
// which searches the raw page text: the anchor for a beamline is not
// inside its table row, so the heuristic relies on fortunate string
// proximity and is backstopped by the manual override table.
package extract

package extract

import (
	"errors"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/xastools/beamcat/internal/model"
	"github.com/xastools/beamcat/internal/rules"
	"github.com/xastools/beamcat/internal/sanitize"
)

// Extraction errors.
var (
	// ErrNoFacilityTable is returned when a facility's expected table
	// slot is past the end of the page. The page layout changed, or the
	// exclusion rules are out of date.
	ErrNoFacilityTable = errors.New("no table at facility's slot")

	// ErrRowShape is returned when a data row has fewer cells than the
	// fixed field order expects. Silently padding the missing fields
	// would shift energy and flux values into the wrong columns, so the
	// row is fatal instead.
	ErrRowShape = errors.New("row has fewer cells than the field order expects")
)

// beamlineFieldCount is the number of value cells consumed per row,
// in fixed order: range, flux, size, purpose, status.
const beamlineFieldCount = 5

// BeamlineTable parses the facility's table at the given slot into a
// beamline record map.
//
// Each row's first cell, sanitized as a key, is the beamline identifier.
// Header rows ("Beamline", "Experimental station") are skipped. For
// facilities flagged with the extra-leading-cell shape, one additional
// cell is discarded after the key before field extraction. The remaining
// cells fill range, flux, size, purpose, and status in order; trailing
// extra cells are ignored. The website is resolved by the anchor-text
// heuristic over the raw page and may legitimately come back empty.
func BeamlineTable(p *Page, region model.Region, facility string, slot int) (model.FacilityBeamlines, error) {
	tbl := p.table(slot)
	if tbl == nil {
		return nil, fmt.Errorf("region %s facility %s (slot %d): %w", region, facility, slot, ErrNoFacilityTable)
	}

	fieldStart := 1
	if rules.ExtraLeadingCell(facility) {
		fieldStart = 2
	}

	beamlines := make(model.FacilityBeamlines)
	var rowErr error

	tbl.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cells := row.Find("td, th")
		if cells.Length() == 0 {
			return true
		}

		key := sanitize.Key(cells.First().Text())
		if key == "" || rules.SkipBeamlineRow(key) {
			return true
		}

		if cells.Length()-fieldStart < beamlineFieldCount {
			rowErr = fmt.Errorf("region %s facility %s beamline %q: %d cells: %w",
				region, facility, key, cells.Length(), ErrRowShape)
			return false
		}

		values := make([]string, beamlineFieldCount)
		for i := range values {
			values[i] = sanitize.Value(cells.Eq(fieldStart + i).Text())
		}

		beamlines[key] = model.Beamline{
			Facility: facility,
			Range:    values[0],
			Flux:     values[1],
			Size:     values[2],
			Purpose:  values[3],
			Status:   values[4],
			Name:     "",
			Website:  ResolveWebsite(p.raw, key),
		}
		return true
	})

	if rowErr != nil {
		return nil, rowErr
	}
	return beamlines, nil
}

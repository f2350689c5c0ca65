package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/xastools/beamcat/internal/model"
	"github.com/xastools/beamcat/internal/rules"
	"github.com/xastools/beamcat/internal/sanitize"
)

// ErrNoMasterTable is returned when the page carries no table at all,
// which means the page layout changed and extraction cannot proceed.
var ErrNoMasterTable = errors.New("no master table found on page")

// FacilitySlot binds a facility identifier to the 0-based slot of its
// per-facility table on the page.
type FacilitySlot struct {
	// Facility is the facility identifier (e.g. "APS").
	Facility string

	// Slot is the table's position on the page. The master table
	// occupies slot 0, so the first facility's table is slot 1.
	Slot int
}

// Facilities reads the master table (the first table on the page) and
// returns the ordered facility list for the region.
//
// Each row's first cell is sanitized as a key and split on whitespace;
// the first token is the facility identifier (rows often carry trailing
// descriptive text, e.g. "APS Advanced Photon Source"). Rows matching
// the region's exclusion rules are dropped, then the region's reorder
// operations are applied. The resulting order is authoritative: it
// drives per-facility table slot lookup.
func Facilities(p *Page, region model.Region) ([]string, error) {
	master := p.table(0)
	if master == nil {
		return nil, fmt.Errorf("region %s: %w", region, ErrNoMasterTable)
	}

	facilities := make([]string, 0)
	master.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cell := row.Find("td, th").First()
		if cell.Length() == 0 {
			return
		}
		id := firstToken(sanitize.Key(cell.Text()))
		if id == "" || rules.SkipFacility(region, id) {
			return
		}
		facilities = append(facilities, id)
	})

	return rules.ReorderFacilities(region, facilities), nil
}

// FacilitySlots builds the explicit facility -> table-slot mapping from
// an ordered facility list. Facility i maps to slot i+1 because the
// master table itself occupies slot 0.
func FacilitySlots(facilities []string) []FacilitySlot {
	slots := make([]FacilitySlot, len(facilities))
	for i, f := range facilities {
		slots[i] = FacilitySlot{Facility: f, Slot: i + 1}
	}
	return slots
}

// firstToken returns the first whitespace-delimited token of s.
func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

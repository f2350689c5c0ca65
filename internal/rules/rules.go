package rules

import (
	"strings"

	"github.com/xastools/beamcat/internal/model"
)

// masterHeaderLabels are row headers in the master table that are not
// facilities at all and must never produce a catalog entry.
var masterHeaderLabels = map[string]bool{
	"Operating": true,
}

// excludedFacilities lists facilities that appear in a region's master
// table but have no usable per-facility table on the page. Including
// them would shift positional table lookup for every facility after them.
var excludedFacilities = map[model.Region]map[string]bool{
	model.RegionAmericas: {
		"SURF": true,
	},
	model.RegionAsia: {
		"Indus-2": true,
	},
	model.RegionEurope: {
		"ASTRID2": true,
		"SOLARIS": true,
	},
}

// SkipFacility reports whether a master-table row identifier must be
// excluded from the facility list for the given region.
func SkipFacility(region model.Region, id string) bool {
	if masterHeaderLabels[id] {
		return true
	}
	return excludedFacilities[region][id]
}

// ReorderOp exchanges two positions in the extracted facility list.
// Negative indices count from the end of the list (-1 is the last entry).
type ReorderOp struct {
	I, J int
}

// reorderOps lists the positional swaps needed per region. The Europe
// page renders its last two facilities out of order relative to their
// per-facility tables.
var reorderOps = map[model.Region][]ReorderOp{
	model.RegionEurope: {
		{I: -2, J: -1},
	},
}

// ReorderFacilities applies the region's reorder operations in place and
// returns the list. Operations whose indices fall outside the list are
// skipped, so a shrinking source page cannot panic the extractor.
func ReorderFacilities(region model.Region, facilities []string) []string {
	for _, op := range reorderOps[region] {
		i, j := op.I, op.J
		if i < 0 {
			i += len(facilities)
		}
		if j < 0 {
			j += len(facilities)
		}
		if i < 0 || j < 0 || i >= len(facilities) || j >= len(facilities) {
			continue
		}
		facilities[i], facilities[j] = facilities[j], facilities[i]
	}
	return facilities
}

// beamlineHeaderLabels are row headers inside per-facility tables that
// mark a header row rather than a beamline.
var beamlineHeaderLabels = map[string]bool{
	"Beamline":             true,
	"Experimental station": true,
}

// SkipBeamlineRow reports whether a per-facility table row key is a
// header label rather than a beamline identifier.
func SkipBeamlineRow(key string) bool {
	return beamlineHeaderLabels[key]
}

// extraLeadingCellFacilities holds substrings identifying facilities
// whose tables carry one extra leading cell per row (the "Experimental
// station" column shape used by exactly one facility today).
var extraLeadingCellFacilities = []string{
	"Aichi",
}

// ExtraLeadingCell reports whether rows of the facility's table carry an
// extra leading cell that must be discarded before field extraction.
func ExtraLeadingCell(facility string) bool {
	for _, sub := range extraLeadingCellFacilities {
		if strings.Contains(facility, sub) {
			return true
		}
	}
	return false
}

// Override is a hand-entered correction for one beamline record, applied
// unconditionally after automatic extraction. Website overwrites whatever
// the heuristic produced; Name fills the long-form name, which automatic
// extraction never populates.
type Override struct {
	Region   model.Region `yaml:"region"`
	Facility string       `yaml:"facility"`
	Beamline string       `yaml:"beamline"`
	Website  string       `yaml:"website"`
	Name     string       `yaml:"name"`
}

// builtinOverrides is the fixed correction table. The anchor-text
// heuristic fails silently for these entries, most notoriously for
// beamlines whose visible anchor text is the generic word "XAFS".
// Kept in sync by hand as the source pages change.
var builtinOverrides = []Override{
	{
		Region:   model.RegionAmericas,
		Facility: "APS",
		Beamline: "10-ID-B",
		Website:  "https://mrcat.iit.edu/",
	},
	{
		Region:   model.RegionAmericas,
		Facility: "CLS",
		Beamline: "HXMA",
		Website:  "https://hxma.lightsource.ca/",
		Name:     "Hard X-ray MicroAnalysis",
	},
	{
		Region:   model.RegionAsia,
		Facility: "AichiSR",
		Beamline: "BL5S1",
		Website:  "https://www.aichisr.jp/beamline/bl5s1/",
	},
	{
		Region:   model.RegionAsia,
		Facility: "SSRF",
		Beamline: "BL14W1",
		Website:  "https://ssrf.sari.ac.cn/beamline/bl14w1/",
	},
	{
		Region:   model.RegionEurope,
		Facility: "Elettra",
		Beamline: "XAFS",
		Website:  "https://www.elettra.eu/elettra-beamlines/xafs.html",
		Name:     "X-ray Absorption Fine Structure",
	},
	{
		Region:   model.RegionEurope,
		Facility: "Soleil",
		Beamline: "SAMBA",
		Website:  "https://www.synchrotron-soleil.fr/en/beamlines/samba",
		Name:     "Spectroscopy Applied to Material Based on Absorption",
	},
	{
		Region:   model.RegionEurope,
		Facility: "SLS",
		Beamline: "SuperXAS",
		Website:  "https://www.psi.ch/en/sls/superxas",
	},
}

// BuiltinOverrides returns a copy of the built-in correction table.
func BuiltinOverrides() []Override {
	out := make([]Override, len(builtinOverrides))
	copy(out, builtinOverrides)
	return out
}

// ApplyOverrides patches the catalog with the built-in corrections plus
// any extra user-supplied entries. Extra entries run after the built-in
// table so a config file can correct a stale built-in value. Entries for
// other regions or for records that do not exist are ignored.
func ApplyOverrides(c *model.Catalog, extra []Override) {
	for _, ov := range append(BuiltinOverrides(), extra...) {
		if ov.Region != c.Region {
			continue
		}
		if ov.Website != "" {
			c.SetWebsite(ov.Facility, ov.Beamline, ov.Website)
		}
		if ov.Name != "" {
			c.SetName(ov.Facility, ov.Beamline, ov.Name)
		}
	}
}

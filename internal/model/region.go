package model

import (
	"errors"
	"fmt"
	"strings"
)

// Region identifies one of the world-area groupings used to partition
// source pages and output catalogs. Each region maps to exactly one
// source page URL and one output catalog file.
type Region string

// The fixed set of supported regions.
const (
	// RegionAmericas covers North and South American light sources.
	RegionAmericas Region = "americas"

	// RegionAsia covers Asian and Oceanian light sources.
	RegionAsia Region = "asia"

	// RegionEurope covers European and Middle Eastern light sources.
	RegionEurope Region = "europe"
)

// ErrUnknownRegion is returned when a region name does not match any
// of the supported regions.
var ErrUnknownRegion = errors.New("unknown region (expected americas, asia, or europe)")

// sourceURLs maps each region to its source page.
// The pages group facilities by region; each carries a master table
// summarizing the region's facilities followed by one table per facility.
var sourceURLs = map[Region]string{
	RegionAmericas: "https://lightsources.org/lightsources-of-the-world/americas/",
	RegionAsia:     "https://lightsources.org/lightsources-of-the-world/asia-oceania/",
	RegionEurope:   "https://lightsources.org/lightsources-of-the-world/europe/",
}

// Regions returns all supported regions in canonical processing order.
func Regions() []Region {
	return []Region{RegionAmericas, RegionAsia, RegionEurope}
}

// ParseRegion converts a user-supplied region name into a Region.
// Matching is case-insensitive. Returns ErrUnknownRegion for anything
// outside the fixed set.
func ParseRegion(s string) (Region, error) {
	switch Region(strings.ToLower(strings.TrimSpace(s))) {
	case RegionAmericas:
		return RegionAmericas, nil
	case RegionAsia:
		return RegionAsia, nil
	case RegionEurope:
		return RegionEurope, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownRegion)
	}
}

// String returns the lowercase region name.
func (r Region) String() string {
	return string(r)
}

// URL returns the source page URL for the region.
func (r Region) URL() string {
	return sourceURLs[r]
}

// CatalogFile returns the output JSON file name for the region.
func (r Region) CatalogFile() string {
	return "beamlines_" + string(r) + ".json"
}

// SummaryFile returns the Markdown summary file name for the region.
func (r Region) SummaryFile() string {
	return "beamlines_" + string(r) + ".md"
}

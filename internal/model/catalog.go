package model

// Catalog is the complete beamline catalog for one region.
//
// Facilities holds the facility identifiers in the order the master table
// listed them (after exclusion and reordering rules). That order drives
// per-facility table lookup during extraction and the Markdown summary;
// JSON serialization sorts keys instead, so output is canonical either way.
//
// Design decision: We keep the ordered facility list alongside the record
// map rather than relying on map iteration, because the source page ties
// facility order to raw table position. Making the order an explicit field
// turns an order-dependent side effect into an inspectable data structure.
type Catalog struct {
	// Region is the region this catalog was built for.
	Region Region

	// Facilities lists facility identifiers in master-table order.
	Facilities []string

	// Records maps facility identifier -> beamline identifier -> record.
	Records map[string]FacilityBeamlines
}

// NewCatalog creates an empty catalog for the given region.
func NewCatalog(region Region) *Catalog {
	return &Catalog{
		Region:     region,
		Facilities: make([]string, 0),
		Records:    make(map[string]FacilityBeamlines),
	}
}

// Add merges one facility's beamline records into the catalog, preserving
// insertion order. Adding the same facility twice replaces its records
// without duplicating the order entry.
func (c *Catalog) Add(facility string, beamlines FacilityBeamlines) {
	if _, ok := c.Records[facility]; !ok {
		c.Facilities = append(c.Facilities, facility)
	}
	c.Records[facility] = beamlines
}

// Lookup returns the record for a facility/beamline pair.
func (c *Catalog) Lookup(facility, beamline string) (Beamline, bool) {
	bls, ok := c.Records[facility]
	if !ok {
		return Beamline{}, false
	}
	bl, ok := bls[beamline]
	return bl, ok
}

// SetWebsite overwrites the website of a specific beamline record.
// It is a no-op if the facility or beamline does not exist, so stale
// override entries never create phantom records.
func (c *Catalog) SetWebsite(facility, beamline, website string) {
	if bl, ok := c.Lookup(facility, beamline); ok {
		bl.Website = website
		c.Records[facility][beamline] = bl
	}
}

// SetName overwrites the long-form name of a specific beamline record.
// Like SetWebsite, it ignores keys that do not exist.
func (c *Catalog) SetName(facility, beamline, name string) {
	if bl, ok := c.Lookup(facility, beamline); ok {
		bl.Name = name
		c.Records[facility][beamline] = bl
	}
}

// BeamlineCount returns the total number of beamline records.
func (c *Catalog) BeamlineCount() int {
	n := 0
	for _, bls := range c.Records {
		n += len(bls)
	}
	return n
}

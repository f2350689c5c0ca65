package model

// Beamline is a single beamline record extracted from a facility table.
//
// All fields are strings and always present in serialized output; the empty
// string is the valid "unknown" value. Units are implicit in the source
// tables: Range is keV, Size is mm unless the text states otherwise, and
// Flux is photons/sec with exponents normalized to caret notation ("10^11").
type Beamline struct {
	// Facility is the owning facility identifier (e.g. "APS").
	Facility string `json:"facility"`

	// Range is the energy range, free text.
	Range string `json:"range"`

	// Flux is the photon flux, free text.
	Flux string `json:"flux"`

	// Size is the beam size, free text.
	Size string `json:"size"`

	// Purpose is a free-text description of the beamline's use.
	Purpose string `json:"purpose"`

	// Status is the operational status (e.g. "Operational").
	Status string `json:"status"`

	// Name is the long-form beamline name. Automatic extraction never
	// fills this in; it is populated only by manual overrides.
	Name string `json:"name"`

	// Website is the beamline's URL, resolved by the anchor-text
	// heuristic or a manual override. Empty when neither finds one.
	Website string `json:"website"`
}

// FacilityBeamlines maps beamline identifiers to their records for a
// single facility.
type FacilityBeamlines map[string]Beamline

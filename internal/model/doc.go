// Package model defines the core data structures used throughout beamcat.
//
// This package contains the following main types:
//   - Region: One of the three world-area groupings that partition source pages
//   - Beamline: A single beamline record extracted from a facility table
//   - Catalog: The per-region mapping of facility -> beamline -> record
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (extract, rules, pipeline, report) need to
// use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for catalog output and
// page-cache storage.
package model

// Package rules holds the hand-maintained exception tables for the
// source pages.
//
// The pages encode real-world irregularities with no general pattern:
// facilities listed in the master table without a usable per-facility
// table, two European facilities rendered out of order relative to their
// tables, one facility whose table carries an extra leading column, and
// beamlines whose website the anchor-text heuristic cannot resolve.
//
// Design decision: Each irregularity is a small named rule table rather
// than an inline conditional, so adding a newly-discovered irregularity
// is a data change, not a code change. There is deliberately no generic
// fallback: generic handling has historically produced silently wrong
// data for this source, so an unknown table shape must be answered with
// a new named rule here.
package rules

// Package pipeline executes the per-region catalog build as a sequence
// of named steps: fetch the page, extract the facility list, extract the
// per-facility beamline tables, and apply manual overrides.
//
// Design decision: We use a step pipeline instead of direct function
// calls because it gives consistent logging and error handling across
// stages, and a failed run reports exactly which stage broke. Unlike a
// crawler there is nothing to salvage from a half-built catalog, so the
// pipeline always stops at the first error; the caller then writes
// nothing, which is what keeps partial catalog files impossible.
//
// Each region is one independent, idempotent pipeline run. Steps are
// synchronous and single-threaded: a region's page holds tens of tables
// at most, so concurrency would buy nothing and cost determinism.
package pipeline

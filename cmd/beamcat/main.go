// Package main provides the entry point for the beamcat CLI.
//
// beamcat extracts a structured catalog of synchrotron beamlines from
// the published per-region facility tables and writes one normalized
// JSON catalog per region.
//
// Usage:
//
//	beamcat scrape
//	beamcat scrape --cached europe
//
// See --help for all available options.
package main

// main is the entry point for beamcat.
func main() {
	Execute()
}

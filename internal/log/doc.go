// Package log provides the logger constructor used across beamcat,
// built on the standard slog package.
//
// All pipeline stages log through a logger created here, so level
// gating and output format stay consistent: warnings and errors only by
// default, debug detail under --verbose.
package log

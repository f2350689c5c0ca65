// Package sanitize normalizes messy human-entered cell text from the
// source tables into clean single-line values.
//
// The source pages carry years of hand-edited HTML: non-breaking spaces,
// raw micro and multiplication signs, dash runs that mean "or", and
// superscript markup that collapses into bare digit runs ("10<sup>11</sup>"
// degrading to "1011"). Clean applies a fixed ordered sequence of rewrites
// so that every extracted value lands in one stable shape.
//
// Design decision: The rewrite order is part of the contract. Later rules
// depend on earlier normalization (space collapsing must run after the
// multiplication-sign rewrite inserts padded spaces), so the steps live in
// one function rather than composable passes.
package sanitize

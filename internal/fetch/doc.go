// Package fetch retrieves a region's source page over HTTP.
//
// The core pipeline treats the fetch as a single synchronous call that
// yields the complete page before any extraction begins. Fetch failures
// are fatal and propagate to the caller; there is no in-package retry
// policy. Pages declaring a non-UTF-8 charset are converted, so the
// extractor always sees UTF-8 text.
package fetch

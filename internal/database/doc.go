// Package database provides the SQLite-backed page cache for beamcat.
//
// The cache stores the last raw HTML fetched per region so a rerun can
// rebuild the catalog without hitting the network (--cached). A rerun
// against the same cached page must reproduce byte-identical output, so
// the cache stores the page exactly as fetched.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of
// plain files because:
//  1. No external dependencies - the cache is a single file
//  2. CGO-free implementation allows easy cross-compilation
//  3. The fetched_at column gives cache age for free
//  4. WAL mode keeps reads cheap if anything else has the file open
package database

// Package store persists the harness's run journal.
//
// Each completed harness run is recorded as one row: which plugin, which
// edition was selected, whether it passed, and the violation counts from the
// output comparison. The journal makes regressions visible across runs
// without any external reporting backend.
//
// Storage is a single SQLite database in WAL mode with a single-writer
// connection pool.
package store

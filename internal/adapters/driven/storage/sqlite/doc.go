// Package sqlite is the default driven.KVStore. It keeps the UI state blobs
// (invoices and contracts pages, dashboard cache, workflow batch, theme) in
// one kv_store table of ~/.docuflow/data/state.db, using the pure Go
// modernc.org/sqlite driver in WAL mode.
//
// Schema changes live in migrations/ as NNN_name.up.sql / .down.sql pairs.
package sqlite

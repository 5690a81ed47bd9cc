// Package vault persists proof-of-creation records.
//
// The vault is a single collection of records stored newest-first as one
// blob in a named slot. Every save is a read-modify-write of the whole
// collection, so the unit of update is always "the entire vault"; readers
// never observe a partially written collection.
//
// # Storage
//
// Persistence is injected through the Backend interface (ReadBlob /
// WriteBlob). Backends that can lock the slot across processes also
// implement Updater, which runs the read-modify-write of Save as one unit:
//
//   - FileBackend: JSON file written via temp file + rename, guarded by a
//     gofrs/flock lock file
//   - SQLiteBackend: one row per slot in a modernc.org/sqlite database,
//     updated inside a transaction
//   - RedisBackend: one string key, updated under WATCH/MULTI; a save that
//     races another writer fails with ErrConcurrentUpdate
//   - MemoryBackend: in-process, for tests and ephemeral use
//
// # Blob format
//
// The blob is a versioned JSON envelope:
//
//	{"schema": "originx.proofs", "version": 1, "records": [...]}
//
// A bare JSON array of records is accepted as the legacy (version 0) layout
// and rewritten as version 1 on the next save. An envelope with a newer
// version is reported as ErrUnsupportedSchema and is never overwritten by
// Save; only an explicit Reset replaces it.
//
// # Corruption
//
// Load is strict: a blob that does not parse, is not an ordered sequence,
// or contains a malformed record (missing id, non-hex fingerprint, zero
// timestamp, duplicate id) yields a *CorruptionError. Whether List, Find,
// and Save treat that as an empty vault or propagate it is decided by the
// CorruptionPolicy the caller passes to New.
package vault

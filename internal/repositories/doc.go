// Package repositories implements the key/value persistence tiers the playlist core writes through.
//
// Every component stores its whole collection as a single JSON document under a fixed key, mirroring browser storage.
// The key names are part of the stored data layout and must not change.
//
// Key Implementations:
//   - [SQLiteStorage] : Durable and transient tiers backed by a SQLite kv_entries table
//   - [MemoryStorage] : Process-lifetime tier used by the TUI and tests
//
// [GetJSON] and [SetJSON] handle (de)serialization so components deal only in typed values.
package repositories

// Package storage persists classroom snapshots and loads them back at
// startup.
//
// # Backends
//
// Every backend stores the whole snapshot; there are no partial writes.
//
//   - FileBackend: one JSON document, rased_data.json, in the private data
//     directory. Writes go to a temp file that is renamed over the old one.
//     Built on afero so tests run against an in-memory filesystem.
//   - LegacyBackend: the older per-field schema, one key per snapshot field
//     (studentData, classesData, teacherName, ...) holding JSON or plain
//     strings. It sits on a KV: MemoryKV in process, or RedisKV.
//   - Mirror: fans one save out to several backends and joins their errors.
//
// # Runtime selection
//
// Select maps the runtime to a Plan:
//
//	native: load [file, legacy?]  write file
//	web:    load [legacy]         write legacy (+ file when mirroring)
//
// # Initial load
//
// LoadInitial walks the plan's loaders in order. ErrNotFound moves on
// quietly. Any other failure is logged and remembered before moving on, so
// a corrupt file falls through to the legacy keys and finally to the
// defaults. The remembered errors come back in LoadResult.Err, which the
// state store records for the status indicator. Startup never fails because
// of saved data.
//
// # Document shape
//
//	{
//	  "version": "3.3.0",
//	  "timestamp": "2024-01-10T08:00:00Z",
//	  "students": [...],
//	  "classes": [...],
//	  ...
//	}
//
// Decode overlays the keys found on top of classroom.DefaultSnapshot; absent
// or null keys keep their defaults and the period table is padded to eight
// rows.
package storage

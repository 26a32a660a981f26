// Package state holds the in-memory classroom snapshot shared by the UI,
// the CLI helpers and the autosaver.
//
// # Overview
//
// Store is the single owner of the application state. Every feature reads a
// deep-copied classroom.Snapshot and writes through Update or one of the
// typed setters. Nothing outside the store holds a reference into its data.
//
//	UI / CLI                       Autosaver
//	┌──────────────────┐          ┌──────────────────────┐
//	│ store.SetStudents│          │ <-store.Changes()    │
//	│ store.Update     │───────→  │ debounce             │
//	│      ↓           │ (signal) │ store.Versioned()    │
//	│ store.Snapshot() │          │ backend.Save         │
//	└──────────────────┘          │ store.RecordSave     │
//	                              └──────────────────────┘
//
// # Setters
//
// Each top-level snapshot field has a setter taking an Updater, a function
// of the previous value. Value wraps a literal:
//
//	store.SetClasses(state.Value([]string{"4A", "4B"}))
//	store.SetStudents(func(prev []classroom.Student) []classroom.Student {
//		return classroom.MarkClass(prev, "4A", today, classroom.StatusPresent)
//	})
//
// The updater receives a private copy, so toggles computed from the previous
// record are atomic with respect to other writers. Setters return the new
// snapshot. The store performs no validation.
//
// # Versions and change signals
//
// Every update increments Status().Version and performs a non-blocking send
// on the Changes channel. The channel has capacity one, so bursts of edits
// collapse into a single pending signal; the autosaver reads the latest
// version when its timer fires.
//
// # Persistence status
//
// RecordLoad and RecordSave let the persistence layer report outcomes back
// into the store. Status exposes them for display:
//
//   - Source: backend the initial data came from, or "defaults"
//   - LoadError: a backend failed during startup (the app continued)
//   - Dirty(): in-memory version is ahead of the last saved version
//   - SaveError / ConsecutiveFailures: most recent write problems
//
// Errors are copied on read in the same way snapshots are.
package state

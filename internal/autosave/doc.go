// Package autosave persists the state store after edits settle.
//
// A Saver listens on store.Changes(). Each signal stops and re-arms one
// timer, so a burst of edits produces a single write once the delay (two
// seconds by default) passes with no further change. The write is always
// the full snapshot.
//
//	change ─┬─ reset ─┬─ reset ──────── fire → backend.Save → store.RecordSave
//	        │         │        <delay>
//
// Startup: Run waits out a short grace window before arming the timer so a
// freshly loaded snapshot is not written straight back. A save is skipped
// whenever the store version equals the last saved version.
//
// Shutdown: Flush writes pending edits immediately. The application calls
// it after cancelling Run, which closes the window where a pending save
// would be lost on exit.
//
// Outcomes are recorded in the store (state.Status), so failures show up in
// the UI header as well as the log.
package autosave

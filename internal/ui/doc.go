// Package ui provides the terminal user interface for Rased.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model holds a copy of the classroom
// snapshot and the persistence status, re-read from state.Store on every
// tick. Edits go straight to the store through Store.Update; the autosaver
// owned by the app package notices the change and writes it after the
// debounce delay, so the UI never touches storage itself.
//
// # Views
//
//   - Roster: students of the selected class with absences, points and level
//   - Attendance: the register for one date; marks toggle per student
//   - Behaviour: award or deduct points, coin balance and level
//   - Ministry: login form, ministry class list and attendance submission
//
// The class switcher ([ and ]) applies to every view and the last choice
// is remembered in prefs.
//
// # Header
//
// The header carries the persistence indicator: saved, unsaved, retrying
// after a failed write, or failing after repeated failures with the last
// error. Startup load problems, the current period from the bell schedule
// and the ministry reachability dot are shown beside it.
//
// # Ministry Calls
//
// Login, class loading and submission run as tea.Cmd functions so the UI
// stays responsive. Failures are shown with ministry.Message and never end
// the session; only an explicit logout does.
//
// # Key Bindings
//
//   - tab / shift+tab: Cycle views
//   - 1-4: Roster, Attendance, Behaviour, Ministry
//   - [ / ]: Previous/next class
//   - j/k, g/G: Move the cursor
//   - p/a/l/t: Present, absent, late, truant (repeat to clear)
//   - A: Mark the whole class present
//   - ←/→, n: Previous/next day, today
//   - + / -: Award or deduct a point
//   - s, r, o: Submit attendance, reload classes, log out (Ministry)
//   - R: Factory reset (asks for confirmation)
//   - T: Cycle theme
//   - h or ?: Help
//   - e or Ctrl+C: Exit
package ui

package state

import (
	"sync"
	"time"

	"github.com/alzaabi555/rased/internal/classroom"
)

// SourceDefaults is the load source recorded when no backend held data.
const SourceDefaults = "defaults"

// Status describes the persistence health shown in the UI header.
type Status struct {
	Loaded              bool
	Source              string // backend the initial snapshot came from
	LoadError           error
	Version             uint64 // version of the in-memory snapshot
	SavedVersion        uint64 // last version written successfully
	LastSaved           time.Time
	LastSaveAttempt     time.Time
	SaveError           error
	ConsecutiveFailures int // saves failed in a row
}

// Dirty reports whether the in-memory snapshot has changes not yet written.
func (s Status) Dirty() bool {
	return s.Version != s.SavedVersion
}

// IsFailing returns true when saving has failed repeatedly.
func (s Status) IsFailing() bool {
	return s.ConsecutiveFailures >= 2
}

// Updater computes a new field value from the previous one.
type Updater[T any] func(prev T) T

// Value adapts a literal to an Updater that ignores the previous value.
func Value[T any](v T) Updater[T] {
	return func(T) T { return v }
}

// Store owns the application snapshot. The zero value holds an empty
// snapshot; use New to start from defaults or loaded data.
type Store struct {
	mu       sync.RWMutex
	snapshot classroom.Snapshot
	status   Status
	changes  chan struct{}
}

// New returns a store holding initial.
func New(initial classroom.Snapshot) *Store {
	return &Store{snapshot: initial.Clone(), changes: make(chan struct{}, 1)}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() classroom.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Clone()
}

// Versioned returns a deep copy of the current state together with its
// version, read under one lock.
func (s *Store) Versioned() (classroom.Snapshot, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Clone(), s.status.Version
}

// Changes signals after every update. Signals coalesce: a reader that falls
// behind sees one pending signal, not one per change.
func (s *Store) Changes() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureChanges()
	return s.changes
}

// Update applies fn to a private copy of the snapshot and stores the
// result. fn may mutate its argument freely.
func (s *Store) Update(fn func(classroom.Snapshot) classroom.Snapshot) classroom.Snapshot {
	s.mu.Lock()
	next := fn(s.snapshot.Clone())
	s.snapshot = next.Clone()
	s.status.Version++
	s.ensureChanges()
	s.mu.Unlock()

	s.notify()
	return next
}

// Replace swaps in an entirely new snapshot, as when restoring a backup or
// resetting to defaults.
func (s *Store) Replace(snap classroom.Snapshot) classroom.Snapshot {
	return s.Update(func(classroom.Snapshot) classroom.Snapshot { return snap })
}

// RecordLoad notes where the initial snapshot came from. A non-nil err means
// some backend failed even though the application continued.
func (s *Store) RecordLoad(source string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Loaded = true
	s.status.Source = source
	s.status.LoadError = err
	s.status.SavedVersion = s.status.Version
}

// RecordSave stores the outcome of writing version. When err is non-nil the
// previous saved version is kept so the state stays dirty.
func (s *Store) RecordSave(version uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.status.LastSaveAttempt = now
	if err != nil {
		s.status.SaveError = err
		s.status.ConsecutiveFailures++
		return
	}
	if version > s.status.SavedVersion {
		s.status.SavedVersion = version
	}
	s.status.LastSaved = now
	s.status.SaveError = nil
	s.status.ConsecutiveFailures = 0
}

// Status returns a copy of the persistence status.
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Store) ensureChanges() {
	if s.changes == nil {
		s.changes = make(chan struct{}, 1)
	}
}

func (s *Store) notify() {
	s.mu.RLock()
	ch := s.changes
	s.mu.RUnlock()
	select {
	case ch <- struct{}{}:
	default:
	}
}

package autosave

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/alzaabi555/rased/internal/state"
	"github.com/alzaabi555/rased/internal/storage"
)

const (
	// DefaultDelay is the quiet period before a change is written.
	DefaultDelay = 2 * time.Second
	// DefaultGrace is how long after startup changes are ignored.
	DefaultGrace = time.Second
	// MaxRetryDelay caps the backoff between attempts after a failed save,
	// unless the debounce delay is longer.
	MaxRetryDelay = 30 * time.Second
)

// Options tune the debounce timings. Zero values use the defaults; a
// negative Grace disables the grace window.
type Options struct {
	Delay time.Duration
	Grace time.Duration
}

// Saver writes the store to a backend after edits settle.
type Saver struct {
	store   *state.Store
	backend storage.Backend
	delay   time.Duration
	grace   time.Duration
	log     zerolog.Logger

	mu sync.Mutex // one save at a time
}

// New returns a saver for store writing through backend.
func New(store *state.Store, backend storage.Backend, opts Options, log zerolog.Logger) *Saver {
	delay := opts.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}
	grace := opts.Grace
	switch {
	case grace == 0:
		grace = DefaultGrace
	case grace < 0:
		grace = 0
	}
	return &Saver{
		store:   store,
		backend: backend,
		delay:   delay,
		grace:   grace,
		log:     log.With().Str("component", "autosave").Str("backend", backend.Name()).Logger(),
	}
}

// Delay returns the effective debounce delay.
func (s *Saver) Delay() time.Duration { return s.delay }

// Start runs the saver in a background goroutine. It returns immediately.
func (s *Saver) Start(ctx context.Context) {
	go func() { _ = s.Run(ctx) }()
}

// Run blocks until ctx is cancelled. Every change signal restarts the
// delay timer; the snapshot is written once the timer fires without
// interruption. A failed save is retried with a doubling delay, capped at
// MaxRetryDelay, for as long as the state stays dirty.
func (s *Saver) Run(ctx context.Context) error {
	changes := s.store.Changes()

	if s.grace > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.grace):
		}
	}

	timer := time.NewTimer(s.delay)
	timer.Stop()
	defer timer.Stop()

	// Edits made during the grace window are still owed a save.
	drain(changes)
	if s.store.Status().Dirty() {
		timer.Reset(s.delay)
	}

	retry := s.delay
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-changes:
			timer.Stop()
			timer.Reset(s.delay)
		case <-timer.C:
			if err := s.save(ctx); err != nil {
				if ctx.Err() == nil && s.store.Status().Dirty() {
					timer.Reset(retry)
					retry = min(2*retry, max(MaxRetryDelay, s.delay))
				}
				continue
			}
			retry = s.delay
		}
	}
}

// Flush writes any unsaved change immediately. It is safe to call after
// Run has returned, as on shutdown.
func (s *Saver) Flush(ctx context.Context) error {
	return s.save(ctx)
}

// Exclusive runs fn with no save in progress. Saves started meanwhile wait
// for fn to return and then see whatever state it left behind.
func (s *Saver) Exclusive(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

func (s *Saver) save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, version := s.store.Versioned()
	if version == s.store.Status().SavedVersion {
		return nil
	}

	start := time.Now()
	err := s.backend.Save(ctx, snap)
	s.store.RecordSave(version, err)
	if err != nil {
		s.log.Error().Err(err).Uint64("version", version).Msg("save failed")
		return err
	}
	s.log.Debug().
		Uint64("version", version).
		Int("students", len(snap.Students)).
		Dur("took", time.Since(start)).
		Msg("state saved")
	return nil
}

func drain(ch <-chan struct{}) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

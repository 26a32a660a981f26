package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/alzaabi555/rased/internal/ministry"
)

const (
	defaultPollInterval = time.Minute
	maxBackoff          = 10 * time.Minute
	pingTimeout         = 10 * time.Second
)

// Pinger is the part of the ministry client the poller needs.
type Pinger interface {
	TestConnection(ctx context.Context) (ministry.Connection, error)
}

// Reachability is the last known state of the ministry service.
type Reachability struct {
	mu        sync.RWMutex
	checked   bool
	reachable bool
	err       error
}

// Get reports whether any ping has completed, whether the service answered
// the last one, and the error if it did not.
func (r *Reachability) Get() (checked, reachable bool, err error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.checked, r.reachable, r.err
}

func (r *Reachability) set(reachable bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checked, r.reachable, r.err = true, reachable, err
}

// StartPoller launches a background goroutine that pings the ministry
// service at a fixed cadence, backing off while it is unreachable. It
// returns immediately.
func StartPoller(ctx context.Context, reach *Reachability, pinger Pinger, interval time.Duration, log zerolog.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		failures := 0
		for {
			if ping(ctx, reach, pinger) {
				failures = 0
			} else {
				failures++
				log.Debug().Int("failures", failures).Msg("ministry unreachable")
			}
			timer := time.NewTimer(calculateBackoff(failures, interval))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}()
}

func ping(ctx context.Context, reach *Reachability, pinger Pinger) bool {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	conn, err := pinger.TestConnection(pingCtx)
	if ctx.Err() != nil {
		return false
	}
	reach.set(conn.Reachable, err)
	return conn.Reachable
}

// calculateBackoff doubles the base interval per consecutive failure, capped
// at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}

package storage

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/alzaabi555/rased/internal/classroom"
)

// SourceDefaults names the outcome where no backend supplied data.
const SourceDefaults = "defaults"

// LoadResult is the outcome of the startup load.
type LoadResult struct {
	Snapshot classroom.Snapshot
	Source   string // backend name, or SourceDefaults
	Err      error  // failures met along the way; nil on a clean load
}

// LoadInitial tries each backend in order and returns the first snapshot
// found. Missing data moves on silently; other failures are logged,
// remembered and also move on. When nothing loads the defaults are used.
// It never fails startup.
func LoadInitial(ctx context.Context, log zerolog.Logger, backends ...Backend) LoadResult {
	var errs []error
	for _, b := range backends {
		snap, err := b.Load(ctx)
		switch {
		case err == nil:
			log.Info().Str("backend", b.Name()).Int("students", len(snap.Students)).Msg("state loaded")
			return LoadResult{Snapshot: snap, Source: b.Name(), Err: errors.Join(errs...)}
		case errors.Is(err, ErrPartial):
			log.Warn().Err(err).Str("backend", b.Name()).Msg("state loaded with unreadable fields")
			errs = append(errs, err)
			return LoadResult{Snapshot: snap, Source: b.Name(), Err: errors.Join(errs...)}
		case errors.Is(err, ErrNotFound):
			log.Debug().Str("backend", b.Name()).Msg("no saved state")
		default:
			log.Error().Err(err).Str("backend", b.Name()).Msg("load state failed")
			errs = append(errs, err)
		}
	}
	log.Info().Msg("starting with default state")
	return LoadResult{Snapshot: classroom.DefaultSnapshot(), Source: SourceDefaults, Err: errors.Join(errs...)}
}

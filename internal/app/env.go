package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/alzaabi555/rased/internal/autosave"
	"github.com/alzaabi555/rased/internal/config"
	"github.com/alzaabi555/rased/internal/logging"
	"github.com/alzaabi555/rased/internal/ministry"
	"github.com/alzaabi555/rased/internal/state"
	"github.com/alzaabi555/rased/internal/storage"
)

// Options configure the Rased application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/rased/prefs.toml

	// Fs replaces the OS filesystem, for tests.
	Fs afero.Fs
	// KV replaces the configured key/value store, for tests.
	KV storage.KV
	// LogOut receives log lines when no log file is configured.
	LogOut io.Writer
	// Console forces human-readable logs on LogOut, as CLI subcommands use.
	Console bool
}

// Env is the assembled persistence stack shared by the TUI and the CLI
// subcommands.
type Env struct {
	Config config.Config
	Log    zerolog.Logger
	Store  *state.Store
	Plan   storage.Plan
	File   *storage.FileBackend
	Legacy *storage.LegacyBackend

	fs      afero.Fs
	closers []io.Closer
	saver   *autosave.Saver // set while the TUI autosaves
}

// Open loads configuration, builds the storage backends and performs the
// initial load. Backend failures during the load never fail Open; they are
// recorded on the store status.
func Open(ctx context.Context, opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logOpts := logging.Options{Level: cfg.Log.Level, File: cfg.Log.File, Pretty: cfg.Log.Pretty, Out: opts.LogOut}
	if opts.Console {
		logOpts.File, logOpts.Pretty = "", true
	}
	log, logCloser, err := logging.New(logOpts)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	env := &Env{Config: cfg, Log: log, closers: []io.Closer{logCloser}}
	for _, w := range cfg.Warnings {
		log.Warn().Str("config", cfg.Path).Msg(w)
	}

	if err := env.buildBackends(ctx, opts); err != nil {
		_ = env.Close()
		return nil, err
	}

	res := storage.LoadInitial(ctx, logging.Component(log, "loader"), env.Plan.Loaders...)
	env.Store = state.New(res.Snapshot)
	env.Store.RecordLoad(res.Source, res.Err)
	return env, nil
}

func (e *Env) buildBackends(ctx context.Context, opts Options) error {
	rt, err := storage.ParseRuntime(e.Config.Runtime)
	if err != nil {
		return err
	}

	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	e.fs = fs
	e.File = storage.NewFileBackend(fs, e.Config.DataDir)

	kv := opts.KV
	if kv == nil {
		kv, err = e.openKV(ctx, rt)
		if err != nil {
			return err
		}
	}
	if kv != nil {
		e.Legacy = storage.NewLegacyBackend(kv)
	}

	e.Plan, err = storage.Select(rt, e.File, e.Legacy, e.Config.Storage.MirrorFile)
	if err != nil {
		return fmt.Errorf("select storage: %w", err)
	}
	e.Log.Info().
		Str("runtime", string(rt)).
		Str("writer", e.Plan.Writer.Name()).
		Str("data_dir", e.Config.DataDir).
		Msg("storage ready")
	return nil
}

func (e *Env) openKV(ctx context.Context, rt storage.Runtime) (storage.KV, error) {
	switch e.Config.Storage.KV {
	case config.KVRedis:
		s := e.Config.Storage
		kv, err := storage.DialRedis(ctx, s.RedisAddr, s.RedisPassword, s.RedisDB, s.KeyPrefix)
		if err != nil {
			return nil, err
		}
		e.closers = append(e.closers, kv)
		return kv, nil
	case config.KVMemory:
		return storage.NewMemoryKV(), nil
	default:
		if rt == storage.RuntimeWeb {
			e.Log.Warn().Msg("web runtime without storage.kv; using volatile memory store")
			return storage.NewMemoryKV(), nil
		}
		return nil, nil
	}
}

// Close releases the log file and any key/value connection.
func (e *Env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	e.closers = nil
	return errors.Join(errs...)
}

// Save writes the current snapshot through the plan's writer immediately,
// waiting for any autosave in progress.
func (e *Env) Save(ctx context.Context) error {
	return e.exclusive(func() error { return e.save(ctx) })
}

// exclusive runs fn with the autosaver, if any, held off.
func (e *Env) exclusive(fn func() error) error {
	if e.saver == nil {
		return fn()
	}
	return e.saver.Exclusive(fn)
}

func (e *Env) save(ctx context.Context) error {
	snap, version := e.Store.Versioned()
	if version == e.Store.Status().SavedVersion {
		return nil
	}
	err := e.Plan.Writer.Save(ctx, snap)
	e.Store.RecordSave(version, err)
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// MinistryClient builds a client from the ministry config section.
func (e *Env) MinistryClient() (*ministry.Client, error) {
	m := e.Config.Ministry
	return ministry.NewClient(m.BaseURL,
		ministry.WithTimeout(m.Timeout),
		ministry.WithSubmitTimeout(m.SubmitTimeout),
		ministry.WithLogger(e.Log),
	)
}

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/alzaabi555/rased/internal/autosave"
	"github.com/alzaabi555/rased/internal/logging"
	"github.com/alzaabi555/rased/internal/ministry"
	"github.com/alzaabi555/rased/internal/ui"
)

const flushTimeout = 5 * time.Second

// Run boots the Rased TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Open(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	userPrefs, err := ensureDevice(opts.PrefsPath)
	if err != nil {
		env.Log.Warn().Err(err).Msg("save device id")
	}

	saver := autosave.New(env.Store, env.Plan.Writer, saverOptions(env), logging.Component(env.Log, "autosave"))
	env.saver = saver
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	saver.Start(runCtx)

	client, err := env.MinistryClient()
	if err != nil {
		return fmt.Errorf("init ministry client: %w", err)
	}
	adapter := ministry.NewAdapter(client, env.Log)

	reach := &Reachability{}
	StartPoller(runCtx, reach, client, defaultPollInterval, logging.Component(env.Log, "poller"))

	uiErr := ui.Run(ui.Options{
		Context:   runCtx,
		Store:     env.Store,
		Ministry:  adapter,
		Reach:     reach,
		Reset:     env.Reset,
		ThemeName: userPrefs.Theme,
		LastClass: userPrefs.LastClass,
		PrefsPath: opts.PrefsPath,
		Log:       logging.Component(env.Log, "ui"),
	})
	cancel()

	flushCtx, flushCancel := context.WithTimeout(context.Background(), flushTimeout)
	defer flushCancel()
	if err := saver.Flush(flushCtx); err != nil {
		env.Log.Error().Err(err).Msg("final save failed")
		if uiErr == nil {
			return fmt.Errorf("final save: %w", err)
		}
	}
	return uiErr
}

func saverOptions(env *Env) autosave.Options {
	grace := env.Config.Storage.Grace
	if grace <= 0 {
		grace = -1
	}
	return autosave.Options{Delay: env.Config.Storage.Debounce, Grace: grace}
}

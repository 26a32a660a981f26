// Package app provides the orchestration layer for the Rased application.
//
// # Overview
//
// This package wires together configuration, logging, persistence, the
// ministry client and the UI. It is the composition root where every
// dependency is built and connected, and it also exposes the helpers the
// command line subcommands call (backup, restore, roster import, exports,
// ping, log tail, activation and factory reset).
//
// # Architecture
//
// Open builds the shared persistence stack:
//
//  1. Load ~/.config/rased/config.toml (defaults when missing)
//  2. Build the zerolog logger (a file, since the TUI owns the terminal)
//  3. Pick the storage backends for the configured runtime
//  4. Run the initial load and seed the state.Store with its result
//
// Run then adds the long-lived pieces and blocks in the TUI:
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> Open()              config, logger, backends, initial load
//	       ├─────> ensureDevice()      first-launch device id in prefs
//	       ├─────> autosave.Start()    debounced writer
//	       ├─────> ministry.Adapter    session state machine
//	       ├─────> StartPoller()       ministry reachability
//	       ├─────> ui.Run()            TUI (blocks)
//	       └─────> saver.Flush()       write anything still pending
//
// # Reachability Polling
//
// The poller pings the ministry service once a minute with placeholder
// credentials. While the service is unreachable the interval doubles per
// failure, capped at ten minutes, and resets after the next success. The
// UI reads the last result from Reachability; the poller never touches
// the classroom state.
//
// # Error Handling
//
// Fatal errors (returned from Open or Run):
//   - Invalid configuration file
//   - Log file cannot be opened
//   - Redis unreachable when storage.kv = "redis"
//   - A final save that fails on exit
//
// Recoverable errors (recorded on the store status and logged):
//   - Corrupt or unreadable state at startup (the app starts from defaults)
//   - Failed debounced saves (retried on the next edit)
//   - Ministry calls (shown in the UI, the session is kept)
//
// # Usage Example
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//
//	if err := app.Run(ctx, app.Options{}); err != nil {
//		log.Fatalf("rased failed: %v", err)
//	}
package app

// Package logging builds the zerolog logger shared by every Rased component.
//
// The terminal belongs to the TUI, so logs go to a file by default. Pretty
// output switches to zerolog's console writer, which is handy when running
// CLI subcommands.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options select the sink and verbosity.
type Options struct {
	Level   string    // debug, info, warn or error
	File    string    // empty writes to Out
	Pretty  bool      // console writer instead of JSON lines
	NoColor bool      // only meaningful with Pretty
	Out     io.Writer // fallback sink, os.Stderr when nil
}

// New returns a configured logger and a closer for the underlying file.
// The closer is a no-op when no file was opened.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	var (
		out    = opts.Out
		closer io.Closer = nopCloser{}
	)
	if out == nil {
		out = os.Stderr
	}

	if path := strings.TrimSpace(opts.File); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("create log dir: %w", err)
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("open log file: %w", err)
		}
		out, closer = file, file
	}

	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: opts.NoColor}
	}

	log := zerolog.New(out).With().Timestamp().Logger().Level(ParseLevel(opts.Level))
	return log, closer, nil
}

// ParseLevel maps a config string to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Component tags log lines with the emitting subsystem.
func Component(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

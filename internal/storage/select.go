package storage

import (
	"fmt"
	"strings"
)

// Runtime identifies the execution environment.
type Runtime string

const (
	// RuntimeNative has a private data directory on a real filesystem.
	RuntimeNative Runtime = "native"
	// RuntimeWeb only has browser-style key/value storage.
	RuntimeWeb Runtime = "web"
)

// ParseRuntime accepts "native" or "web"; empty means native.
func ParseRuntime(s string) (Runtime, error) {
	switch Runtime(strings.ToLower(strings.TrimSpace(s))) {
	case "", RuntimeNative:
		return RuntimeNative, nil
	case RuntimeWeb:
		return RuntimeWeb, nil
	default:
		return "", fmt.Errorf("unknown runtime %q", s)
	}
}

// Plan is the backend selection for one runtime: where to look on startup
// and where to write afterwards.
type Plan struct {
	Loaders []Backend
	Writer  Backend
}

// Select builds the plan. legacy may be nil on the native runtime when no
// key/value store is configured. MirrorFile makes the web runtime also
// write the full document file.
func Select(rt Runtime, file *FileBackend, legacy *LegacyBackend, mirrorFile bool) (Plan, error) {
	switch rt {
	case RuntimeNative, "":
		if file == nil {
			return Plan{}, fmt.Errorf("native runtime requires a file backend")
		}
		plan := Plan{Loaders: []Backend{file}, Writer: file}
		if legacy != nil {
			plan.Loaders = append(plan.Loaders, legacy)
		}
		return plan, nil
	case RuntimeWeb:
		if legacy == nil {
			return Plan{}, fmt.Errorf("web runtime requires a key/value backend")
		}
		plan := Plan{Loaders: []Backend{legacy}, Writer: legacy}
		if mirrorFile && file != nil {
			plan.Writer = NewMirror(legacy, file)
		}
		return plan, nil
	default:
		return Plan{}, fmt.Errorf("unknown runtime %q", rt)
	}
}

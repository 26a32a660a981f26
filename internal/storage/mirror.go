package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alzaabi555/rased/internal/classroom"
)

// Mirror writes each snapshot to several backends. Loading reads from the
// first one only.
type Mirror struct {
	targets []Backend
}

var _ Backend = (*Mirror)(nil)

// NewMirror writes to every target in order.
func NewMirror(targets ...Backend) *Mirror {
	return &Mirror{targets: targets}
}

func (m *Mirror) Name() string {
	names := make([]string, len(m.targets))
	for i, t := range m.targets {
		names[i] = t.Name()
	}
	return strings.Join(names, "+")
}

func (m *Mirror) Load(ctx context.Context) (classroom.Snapshot, error) {
	if len(m.targets) == 0 {
		return classroom.Snapshot{}, ErrNotFound
	}
	return m.targets[0].Load(ctx)
}

// Save attempts every target even when an earlier one fails and joins the
// errors.
func (m *Mirror) Save(ctx context.Context, snap classroom.Snapshot) error {
	var errs []error
	for _, t := range m.targets {
		if err := t.Save(ctx, snap); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", t.Name(), err))
		}
	}
	return errors.Join(errs...)
}

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/alzaabi555/rased/internal/backup"
	"github.com/alzaabi555/rased/internal/classroom"
	"github.com/alzaabi555/rased/internal/logging"
	"github.com/alzaabi555/rased/internal/ministry"
	"github.com/alzaabi555/rased/internal/sheets"
)

// ResetConfirmation is the word a teacher must type to wipe all data.
const ResetConfirmation = "حذف"

// ErrNotConfirmed is returned by Reset when the confirmation word is wrong.
var ErrNotConfirmed = errors.New("reset not confirmed")

// Backup writes the current state as a backup document.
func (e *Env) Backup(w io.Writer, now time.Time) error {
	return backup.Export(w, e.Store.Snapshot(), now)
}

// Restore replaces all state with the backup read from r and saves it.
func (e *Env) Restore(ctx context.Context, r io.Reader) (classroom.Snapshot, error) {
	snap, err := backup.Import(r)
	if err != nil {
		return classroom.Snapshot{}, err
	}
	e.Store.Replace(snap)
	if err := e.Save(ctx); err != nil {
		return classroom.Snapshot{}, err
	}
	e.Log.Info().Int("students", len(snap.Students)).Msg("backup restored")
	return snap, nil
}

// ImportRoster adds the students of a workbook to class, creating the class
// when needed, and saves.
func (e *Env) ImportRoster(ctx context.Context, r io.Reader, class string) (sheets.RosterImport, error) {
	res, err := sheets.ImportRoster(r, class)
	if err != nil {
		return res, err
	}
	e.Store.Update(func(snap classroom.Snapshot) classroom.Snapshot {
		snap = classroom.AddClass(snap, class)
		snap.Students = classroom.AddStudents(snap.Students, res.Students...)
		return snap
	})
	if err := e.Save(ctx); err != nil {
		return res, err
	}
	e.Log.Info().Str("class", class).Int("students", len(res.Students)).Int("skipped", res.Skipped).Msg("roster imported")
	return res, nil
}

// ExportGrades writes the gradebook of class for the current semester.
func (e *Env) ExportGrades(w io.Writer, class string) error {
	snap := e.Store.Snapshot()
	if err := requireClass(snap, class); err != nil {
		return err
	}
	return sheets.ExportGrades(w, snap.Students, class, snap.AssessmentTools, snap.GradeSettings, snap.CurrentSemester)
}

// ExportAttendance writes the register of class. With no dates every date
// on which a member of the class has a mark is included.
func (e *Env) ExportAttendance(w io.Writer, class string, dates []string) error {
	snap := e.Store.Snapshot()
	if err := requireClass(snap, class); err != nil {
		return err
	}
	if len(dates) == 0 {
		dates = AttendanceDates(snap.Students, class)
	}
	return sheets.ExportAttendance(w, snap.Students, class, dates)
}

// AttendanceDates lists the distinct dates with marks in class, oldest
// first.
func AttendanceDates(students []classroom.Student, class string) []string {
	var dates []string
	for _, s := range students {
		if !s.InClass(class) {
			continue
		}
		for _, a := range s.Attendance {
			dates = append(dates, a.Date)
		}
	}
	slices.Sort(dates)
	return slices.Compact(dates)
}

// Ping checks that the configured ministry service is reachable.
func (e *Env) Ping(ctx context.Context) (ministry.Connection, error) {
	client, err := e.MinistryClient()
	if err != nil {
		return ministry.Connection{}, err
	}
	return client.TestConnection(ctx)
}

// Reset wipes every backend and writes the defaults in their place.
// confirmation must equal ResetConfirmation. No autosave runs meanwhile, so
// an older snapshot cannot be written back afterwards.
func (e *Env) Reset(ctx context.Context, confirmation string) error {
	if strings.TrimSpace(confirmation) != ResetConfirmation {
		return ErrNotConfirmed
	}
	err := e.exclusive(func() error {
		var errs []error
		if e.Legacy != nil {
			if err := e.Legacy.Clear(ctx); err != nil {
				errs = append(errs, fmt.Errorf("clear key/value store: %w", err))
			}
		}
		if err := e.File.Remove(); err != nil {
			errs = append(errs, err)
		}
		e.Store.Replace(classroom.DefaultSnapshot())
		if err := e.save(ctx); err != nil {
			errs = append(errs, err)
		}
		return errors.Join(errs...)
	})
	if err != nil {
		return fmt.Errorf("factory reset: %w", err)
	}
	e.Log.Warn().Msg("factory reset")
	return nil
}

// Logs returns the last n entries of the configured log file.
func (e *Env) Logs(n int) ([]logging.Entry, error) {
	return logging.Tail(e.fs, e.Config.Log.File, n)
}

func requireClass(snap classroom.Snapshot, class string) error {
	class = strings.TrimSpace(class)
	if class == "" {
		return errors.New("class is required")
	}
	if slices.Contains(snap.Classes, class) {
		return nil
	}
	for _, s := range snap.Students {
		if s.InClass(class) {
			return nil
		}
	}
	return fmt.Errorf("unknown class %q", class)
}

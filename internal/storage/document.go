package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alzaabi555/rased/internal/classroom"
)

// DocumentVersion stamps every persisted document and backup.
const DocumentVersion = "3.3.0"

var (
	// ErrNotFound means the backend holds no saved state.
	ErrNotFound = errors.New("storage: no saved state")
	// ErrCorrupt means saved state exists but could not be decoded.
	ErrCorrupt = errors.New("storage: saved state is corrupt")
	// ErrPartial means some fields were unreadable and kept their defaults.
	ErrPartial = errors.New("storage: some fields were unreadable")
)

// Backend persists whole snapshots.
type Backend interface {
	Name() string
	Load(ctx context.Context) (classroom.Snapshot, error)
	Save(ctx context.Context, snap classroom.Snapshot) error
}

// Document is the on-disk shape: the snapshot fields plus a version stamp.
type Document struct {
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
	classroom.Snapshot
}

// Encode serializes snap as a document stamped with now.
func Encode(snap classroom.Snapshot, now time.Time) ([]byte, error) {
	return json.Marshal(newDocument(snap, now))
}

// EncodeIndent is Encode with two-space indentation, used for backups.
func EncodeIndent(snap classroom.Snapshot, now time.Time) ([]byte, error) {
	return json.MarshalIndent(newDocument(snap, now), "", "  ")
}

func newDocument(snap classroom.Snapshot, now time.Time) Document {
	return Document{
		Version:   DocumentVersion,
		Timestamp: now.UTC().Format(time.RFC3339Nano),
		Snapshot:  snap,
	}
}

// Decode parses a document. Keys present in data replace the defaults;
// absent or null keys keep them.
func Decode(data []byte) (Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Document{}, fmt.Errorf("%w: not a JSON object", ErrCorrupt)
	}

	doc := Document{Snapshot: classroom.DefaultSnapshot()}
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	doc.Snapshot = Normalize(doc.Snapshot)
	return doc, nil
}

// Normalize fills nil collections and short tables from the defaults.
func Normalize(snap classroom.Snapshot) classroom.Snapshot {
	def := classroom.DefaultSnapshot()
	if snap.Students == nil {
		snap.Students = def.Students
	}
	if snap.Classes == nil {
		snap.Classes = def.Classes
	}
	if snap.HiddenClasses == nil {
		snap.HiddenClasses = def.HiddenClasses
	}
	if snap.Groups == nil {
		snap.Groups = def.Groups
	}
	if len(snap.Schedule) == 0 {
		snap.Schedule = def.Schedule
	}
	snap.PeriodTimes = classroom.PadPeriodTimes(snap.PeriodTimes)
	if snap.AssessmentTools == nil {
		snap.AssessmentTools = def.AssessmentTools
	}
	if snap.CurrentSemester == "" {
		snap.CurrentSemester = def.CurrentSemester
	}
	if snap.DefaultStudentGender == "" {
		snap.DefaultStudentGender = def.DefaultStudentGender
	}
	if snap.GradeSettings == (classroom.GradeSettings{}) {
		snap.GradeSettings = def.GradeSettings
	}
	if snap.CertificateSettings == (classroom.CertificateSettings{}) {
		snap.CertificateSettings = def.CertificateSettings
	}
	return snap
}

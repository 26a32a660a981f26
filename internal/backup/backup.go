// Package backup exports the classroom snapshot to a user-held JSON file and
// imports it back. The file has the same shape as the persisted document.
package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/alzaabi555/rased/internal/classroom"
	"github.com/alzaabi555/rased/internal/storage"
)

// ErrInvalid means the file is not a Rased backup.
var ErrInvalid = errors.New("backup: file is damaged or incompatible")

// maxSize bounds how much of a backup file is read.
const maxSize = 64 << 20

var validate = validator.New()

// FileName returns the suggested file name for a backup taken at now.
func FileName(now time.Time) string {
	return fmt.Sprintf("Rased_Backup_%s.json", now.Format("2006-01-02"))
}

// Export writes snap as an indented backup document.
func Export(w io.Writer, snap classroom.Snapshot, now time.Time) error {
	data, err := storage.EncodeIndent(snap, now)
	if err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}

type envelope struct {
	Students json.RawMessage `json:"students"`
}

type studentList struct {
	Students []classroom.Student `validate:"dive"`
}

// Import reads a backup. The document must carry a students array and every
// student needs an id and a name. Fields missing from the file take their
// defaults, so the result can replace local state wholesale.
func Import(r io.Reader) (classroom.Snapshot, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxSize))
	if err != nil {
		return classroom.Snapshot{}, fmt.Errorf("read backup: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return classroom.Snapshot{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if raw := bytes.TrimSpace(env.Students); len(raw) == 0 || raw[0] != '[' {
		return classroom.Snapshot{}, fmt.Errorf("%w: missing students list", ErrInvalid)
	}

	doc, err := storage.Decode(data)
	if err != nil {
		return classroom.Snapshot{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := validate.Struct(studentList{Students: doc.Students}); err != nil {
		return classroom.Snapshot{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return doc.Snapshot, nil
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/alzaabi555/rased/internal/classroom"
)

// DataFileName is the single state file kept in the data directory.
const DataFileName = "rased_data.json"

// FileBackend stores the snapshot as one JSON document.
type FileBackend struct {
	fs   afero.Fs
	path string
	now  func() time.Time
}

var _ Backend = (*FileBackend)(nil)

// NewFileBackend stores state in dir/rased_data.json on fs.
func NewFileBackend(fs afero.Fs, dir string) *FileBackend {
	return &FileBackend{fs: fs, path: filepath.Join(dir, DataFileName), now: time.Now}
}

func (b *FileBackend) Name() string { return "file" }

// Path returns the location of the state file.
func (b *FileBackend) Path() string { return b.path }

// Load reads and decodes the state file.
func (b *FileBackend) Load(ctx context.Context) (classroom.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return classroom.Snapshot{}, err
	}
	data, err := afero.ReadFile(b.fs, b.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return classroom.Snapshot{}, ErrNotFound
		}
		return classroom.Snapshot{}, fmt.Errorf("read %s: %w", b.path, err)
	}
	doc, err := Decode(data)
	if err != nil {
		return classroom.Snapshot{}, fmt.Errorf("decode %s: %w", b.path, err)
	}
	return doc.Snapshot, nil
}

// Save writes the full snapshot to a temp file in the same directory and
// renames it over the state file.
func (b *FileBackend) Save(ctx context.Context, snap classroom.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Encode(snap, b.now())
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(b.path)
	if err := b.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := afero.TempFile(b.fs, dir, DataFileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = b.fs.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = b.fs.Remove(tmpName)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = b.fs.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := b.fs.Rename(tmpName, b.path); err != nil {
		_ = b.fs.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", b.path, err)
	}
	return nil
}

// Remove deletes the state file. A missing file is not an error.
func (b *FileBackend) Remove() error {
	if err := b.fs.Remove(b.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", b.path, err)
	}
	return nil
}

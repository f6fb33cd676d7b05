package leads

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/harrison/screening/internal/models"
)

const lockRetryDelay = 50 * time.Millisecond

// FileSink appends summaries to a JSON array file. Each record is a locked
// read-modify-write followed by an atomic rename, so concurrent processes
// never lose entries and readers never see a partial file.
type FileSink struct {
	path string
	lock *flock.Flock
}

// NewFileSink creates a sink writing to path, locking via path + ".lock"
func NewFileSink(path string) *FileSink {
	return &FileSink{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path returns the export file location
func (f *FileSink) Path() string { return f.path }

// Record implements Sink
func (f *FileSink) Record(ctx context.Context, s models.Summary) error {
	if err := validate(s); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(f.path), err)
	}

	locked, err := f.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", f.path, err)
	}
	if !locked {
		return fmt.Errorf("failed to acquire lock on %s", f.path)
	}
	defer f.lock.Unlock()

	entries, err := f.read()
	if err != nil {
		return err
	}
	entries = append(entries, s)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal leads: %w", err)
	}
	return atomicWrite(f.path, data)
}

// ReadAll returns every summary in the export file. A file or directory that
// does not exist yet reads as empty.
func (f *FileSink) ReadAll() ([]models.Summary, error) {
	if _, err := os.Stat(filepath.Dir(f.path)); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err := f.lock.RLock(); err != nil {
		return nil, fmt.Errorf("failed to acquire read lock on %s: %w", f.path, err)
	}
	defer f.lock.Unlock()
	return f.read()
}

func (f *FileSink) read() ([]models.Summary, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var entries []models.Summary
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", f.path, err)
	}
	return entries, nil
}

// atomicWrite writes data to a temp file in the target directory and renames
// it over path.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tempFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	defer func() {
		if tempFile != nil {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}

	tempFile = nil
	return nil
}

// Package artifact manages the files produced by renders: temporary
// document paths, bounded retrieval of a just-written document, and the
// bucket directory where previews are kept.
package artifact

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// ErrRetrievalTimeout is returned when an artifact does not appear in time.
var ErrRetrievalTimeout = errors.New("timed out waiting for artifact")

// Retrieval bounds how long Extract waits for a file to appear
type Retrieval struct {
	Interval time.Duration // Delay between existence checks
	Timeout  time.Duration // Total time to wait
}

// DefaultRetrieval polls every 100ms for up to a minute
func DefaultRetrieval() Retrieval {
	return Retrieval{
		Interval: 100 * time.Millisecond,
		Timeout:  time.Minute,
	}
}

// Store holds the directories artifacts are written to
type Store struct {
	TempDir   string // Short-lived render output
	BucketDir string // Kept files, e.g. previews
	Retrieval Retrieval
}

// NewStore returns a store rooted at tempDir and bucketDir with the default
// retrieval bounds.
func NewStore(tempDir, bucketDir string) *Store {
	return &Store{
		TempDir:   tempDir,
		BucketDir: bucketDir,
		Retrieval: DefaultRetrieval(),
	}
}

// PrepareFilePath returns a fresh path for name in the temp directory,
// creating the directory if needed.
func (s *Store) PrepareFilePath(name, ext string) (string, error) {
	if err := os.MkdirAll(s.TempDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}
	if ext == "" {
		ext = "txt"
	}
	return filepath.Join(s.TempDir, fmt.Sprintf("%s-%s.%s", name, uuid.NewString(), ext)), nil
}

// Extract waits for path to exist, reads it and removes it. It gives up
// with ErrRetrievalTimeout after Retrieval.Timeout, or earlier if ctx ends.
func (s *Store) Extract(ctx context.Context, path string) ([]byte, error) {
	r := s.Retrieval
	if r.Interval <= 0 || r.Timeout <= 0 {
		r = DefaultRetrieval()
	}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	for {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := os.Remove(path); err != nil {
				return nil, fmt.Errorf("failed to remove %s: %w", path, err)
			}
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, fmt.Errorf("%w: %s after %s", ErrRetrievalTimeout, path, r.Timeout)
			}
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// SaveFile writes data to path.
func (s *Store) SaveFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// SaveToBucket stores data under a new random name with extension ext and
// returns its path.
func (s *Store) SaveToBucket(data []byte, ext string) (string, error) {
	if err := os.MkdirAll(s.BucketDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create bucket directory: %w", err)
	}
	path := filepath.Join(s.BucketDir, uuid.NewString()+"."+ext)
	if err := s.SaveFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// Destroy removes a stored file. A file that is already gone is not an error.
func (s *Store) Destroy(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}

package artifact

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s := NewStore(filepath.Join(dir, "temp"), filepath.Join(dir, "bucket"))
	s.Retrieval = Retrieval{Interval: 5 * time.Millisecond, Timeout: 200 * time.Millisecond}
	return s
}

func TestDefaultRetrieval(t *testing.T) {
	r := DefaultRetrieval()
	if r.Interval != 100*time.Millisecond || r.Timeout != 60*time.Second {
		t.Errorf("Unexpected defaults %+v", r)
	}
}

func TestPrepareFilePath(t *testing.T) {
	s := newTestStore(t)

	first, err := s.PrepareFilePath("alice-Sunflower", "pdf")
	if err != nil {
		t.Fatalf("PrepareFilePath() error: %v", err)
	}
	second, _ := s.PrepareFilePath("alice-Sunflower", "pdf")

	if first == second {
		t.Error("Expected unique paths")
	}
	if filepath.Dir(first) != s.TempDir {
		t.Errorf("Expected path in %s, got %s", s.TempDir, first)
	}
	base := filepath.Base(first)
	if !strings.HasPrefix(base, "alice-Sunflower-") || !strings.HasSuffix(base, ".pdf") {
		t.Errorf("Unexpected file name %s", base)
	}
	if _, err := os.Stat(s.TempDir); err != nil {
		t.Errorf("Expected temp directory to exist: %v", err)
	}

	txt, _ := s.PrepareFilePath("notes", "")
	if !strings.HasSuffix(txt, ".txt") {
		t.Errorf("Expected default .txt extension, got %s", txt)
	}
}

func TestExtract_ExistingFile(t *testing.T) {
	s := newTestStore(t)
	path, _ := s.PrepareFilePath("doc", "pdf")
	if err := s.SaveFile(path, []byte("%PDF-1.3")); err != nil {
		t.Fatalf("SaveFile() error: %v", err)
	}

	data, err := s.Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if string(data) != "%PDF-1.3" {
		t.Errorf("Unexpected content %q", data)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Expected file to be removed after extraction")
	}
}

func TestExtract_WaitsForFile(t *testing.T) {
	s := newTestStore(t)
	s.Retrieval.Timeout = 5 * time.Second
	path, _ := s.PrepareFilePath("late", "pdf")

	go func() {
		time.Sleep(30 * time.Millisecond)
		_ = os.WriteFile(path, []byte("done"), 0644)
	}()

	data, err := s.Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	// The writer may be caught mid-write; all that matters is that the
	// file was found.
	if !strings.HasPrefix("done", string(data)) {
		t.Errorf("Unexpected content %q", data)
	}
}

func TestExtract_Timeout(t *testing.T) {
	s := newTestStore(t)
	path := filepath.Join(s.TempDir, "never.pdf")

	start := time.Now()
	_, err := s.Extract(context.Background(), path)
	if !errors.Is(err, ErrRetrievalTimeout) {
		t.Fatalf("Expected ErrRetrievalTimeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed < s.Retrieval.Timeout {
		t.Errorf("Gave up after %s, before the %s timeout", elapsed, s.Retrieval.Timeout)
	}
}

func TestExtract_Cancelled(t *testing.T) {
	s := newTestStore(t)
	s.Retrieval.Timeout = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Extract(ctx, filepath.Join(s.TempDir, "never.pdf"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestBucket(t *testing.T) {
	s := newTestStore(t)

	path, err := s.SaveToBucket([]byte{0xFF, 0xD8}, "jpeg")
	if err != nil {
		t.Fatalf("SaveToBucket() error: %v", err)
	}
	if filepath.Dir(path) != s.BucketDir || filepath.Ext(path) != ".jpeg" {
		t.Errorf("Unexpected bucket path %s", path)
	}
	if data, err := os.ReadFile(path); err != nil || len(data) != 2 {
		t.Errorf("Bucket file not written: %v", err)
	}

	if err := s.Destroy(path); err != nil {
		t.Fatalf("Destroy() error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Expected bucket file to be removed")
	}
	if err := s.Destroy(path); err != nil {
		t.Errorf("Destroy() of missing file should succeed, got %v", err)
	}
}

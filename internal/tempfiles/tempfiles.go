// Package tempfiles allocates and releases the temporary files a job owns.
//
// Every job (and every banner upload) acquires its paths through a Set and
// must release them on every exit path. Release is best-effort: deletion
// failures are logged and never propagated.
package tempfiles

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"banner-bot/internal/logging"

	"github.com/google/uuid"
)

// Tracker hands out uniquely named files under a single temp directory.
type Tracker struct {
	dir string
}

// New creates a Tracker rooted at dir. The directory must already exist.
func New(dir string) *Tracker {
	return &Tracker{dir: dir}
}

// Dir returns the temp directory the tracker allocates under.
func (t *Tracker) Dir() string {
	return t.dir
}

// Create reserves a new uniquely named empty file with the given suffix.
// The caller owns the path and must hand it to Release when done.
func (t *Tracker) Create(suffix string) (string, error) {
	path := filepath.Join(t.dir, uuid.NewString()+suffix)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}
	return path, nil
}

// Release deletes each given path if it exists. Failures are logged and do
// not abort the remaining deletions.
func (t *Tracker) Release(paths ...string) {
	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		if err := os.Remove(path); err != nil {
			logging.Warn("failed to clean up %s: %v", path, err)
		}
	}
}

// NewSet returns an empty resource set owned by one job.
func (t *Tracker) NewSet() *Set {
	return &Set{tracker: t}
}

// Set records the temp paths created for a single job.
type Set struct {
	tracker *Tracker
	mu      sync.Mutex
	paths   []string
}

// Create reserves a new empty file with the given suffix and records it.
func (s *Set) Create(suffix string) (string, error) {
	path, err := s.tracker.Create(suffix)
	if err != nil {
		return "", err
	}
	s.Add(path)
	return path, nil
}

// Add records a path created elsewhere so Release will remove it.
func (s *Set) Add(path string) {
	s.mu.Lock()
	s.paths = append(s.paths, path)
	s.mu.Unlock()
}

// Paths returns a copy of the recorded paths.
func (s *Set) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.paths))
	copy(out, s.paths)
	return out
}

// Release deletes every recorded path and empties the set.
func (s *Set) Release() {
	s.mu.Lock()
	paths := s.paths
	s.paths = nil
	s.mu.Unlock()
	s.tracker.Release(paths...)
}

// Package output writes the rendered page to its destination.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	bberrors "github.com/mkarlsen/blogbuilder/internal/errors"
)

// Sink receives the rendered page. Writing the same destination again
// replaces the previous content.
type Sink interface {
	Write(page string) error
	// Location describes where the page lands, for logs and reports.
	Location() string
}

// FileSink writes the page to a single file, replacing it atomically.
type FileSink struct {
	path string
}

// NewFileSink returns a sink targeting path. Parent directories are
// created on first write.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

func (s *FileSink) Location() string {
	return s.path
}

// Write lands the page at the sink path. The content goes to a sibling
// temporary file first and is renamed into place, so readers never see a
// partially written page.
func (s *FileSink) Write(page string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return bberrors.OutputWriteFailed(fmt.Errorf("create output directory: %w", err), s.path)
	}

	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, []byte(page), 0o644); err != nil {
		return bberrors.OutputWriteFailed(fmt.Errorf("write temporary file: %w", err), s.path)
	}
	if err := os.Rename(tempPath, s.path); err != nil {
		return bberrors.OutputWriteFailed(fmt.Errorf("replace output file: %w", err), s.path)
	}
	return nil
}

// MemorySink keeps the last written page in memory. The preview server
// serves from it, and tests inspect it.
type MemorySink struct {
	mu     sync.RWMutex
	page   string
	writes int
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Location() string {
	return "memory"
}

func (s *MemorySink) Write(page string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = page
	s.writes++
	return nil
}

// Page returns the most recently written page.
func (s *MemorySink) Page() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}

// Writes returns how many times the sink has been written.
func (s *MemorySink) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

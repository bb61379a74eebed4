package index

import (
	"sort"
	"sync"
	"time"

	"github.com/csimoes1/tldr-code/summary"
)

// Store holds the current repository summary for serve mode. The watcher
// updates it file by file while tool handlers read it, so all access goes
// through the lock.
type Store struct {
	mu           sync.RWMutex
	current      *summary.RepoSummary
	artifactPath string
	updatedAt    time.Time
}

// NewStore creates an empty summary store.
func NewStore() *Store {
	return &Store{}
}

// Set replaces the whole summary, typically after a full scan.
func (s *Store) Set(repo *summary.RepoSummary, artifactPath string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = repo
	s.artifactPath = artifactPath
	s.updatedAt = time.Now()
}

// Snapshot returns a deep copy of the current summary so callers can
// serialize it without holding the lock. Returns nil before the first scan.
func (s *Store) Snapshot() *summary.RepoSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	clone := *s.current
	if s.current.Files != nil {
		clone.Files = make([]summary.FileSummary, len(s.current.Files))
		copy(clone.Files, s.current.Files)
	}
	if len(s.current.Skipped) > 0 {
		clone.Skipped = make([]summary.SkippedFile, len(s.current.Skipped))
		copy(clone.Skipped, s.current.Skipped)
	}
	return &clone
}

// ArtifactPath returns the path of the last written artifact.
func (s *Store) ArtifactPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.artifactPath
}

// UpdatedAt returns the time of the last summary change.
func (s *Store) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

// UpdateFile inserts or replaces one file's summary, keeping the file list
// sorted by path. A matching skip record for the path is dropped.
func (s *Store) UpdateFile(file summary.FileSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return
	}

	s.removeSkipLocked(file.Path)

	i := sort.Search(len(s.current.Files), func(i int) bool {
		return s.current.Files[i].Path >= file.Path
	})
	if i < len(s.current.Files) && s.current.Files[i].Path == file.Path {
		s.current.Files[i] = file
	} else {
		s.current.Files = append(s.current.Files, summary.FileSummary{})
		copy(s.current.Files[i+1:], s.current.Files[i:])
		s.current.Files[i] = file
	}
	s.updatedAt = time.Now()
}

// RemoveFile drops a file's summary and any skip record for it.
func (s *Store) RemoveFile(relativePath string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return
	}

	s.removeSkipLocked(relativePath)

	i := sort.Search(len(s.current.Files), func(i int) bool {
		return s.current.Files[i].Path >= relativePath
	})
	if i < len(s.current.Files) && s.current.Files[i].Path == relativePath {
		s.current.Files = append(s.current.Files[:i], s.current.Files[i+1:]...)
		s.updatedAt = time.Now()
	}
}

// MarkSkipped records a file as skipped, replacing any summary for it.
func (s *Store) MarkSkipped(relativePath string, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return
	}

	i := sort.Search(len(s.current.Files), func(i int) bool {
		return s.current.Files[i].Path >= relativePath
	})
	if i < len(s.current.Files) && s.current.Files[i].Path == relativePath {
		s.current.Files = append(s.current.Files[:i], s.current.Files[i+1:]...)
	}

	s.removeSkipLocked(relativePath)
	s.current.Skipped = append(s.current.Skipped, summary.SkippedFile{Path: relativePath, Reason: reason})
	sort.Slice(s.current.Skipped, func(a, b int) bool {
		return s.current.Skipped[a].Path < s.current.Skipped[b].Path
	})
	s.updatedAt = time.Now()
}

func (s *Store) removeSkipLocked(relativePath string) {
	for i, sk := range s.current.Skipped {
		if sk.Path == relativePath {
			s.current.Skipped = append(s.current.Skipped[:i], s.current.Skipped[i+1:]...)
			return
		}
	}
}

// Stats summarizes the store for the status tool.
type Stats struct {
	Root           string
	FileCount      int
	SignatureCount int
	SkippedCount   int
	Languages      map[string]int
	UpdatedAt      time.Time
}

// Stats returns current counts, or a zero value before the first scan.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Stats{}
	}
	return Stats{
		Root:           s.current.Root,
		FileCount:      len(s.current.Files),
		SignatureCount: s.current.SignatureCount(),
		SkippedCount:   len(s.current.Skipped),
		Languages:      s.current.LanguageCounts(),
		UpdatedAt:      s.updatedAt,
	}
}

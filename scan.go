package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/csimoes1/tldr-code/extract"
	"github.com/csimoes1/tldr-code/ignore"
	"github.com/csimoes1/tldr-code/language"
	"github.com/csimoes1/tldr-code/summary"
)

// Scanner walks a source tree and aggregates per-file extractions into a
// RepoSummary.
type Scanner struct {
	Extractor *extract.Extractor
	Detector  *language.Detector
	Ignore    *ignore.Matcher
	// Includes restricts the scan to paths matching at least one of these
	// doublestar globs. Empty means everything.
	Includes []string
	// Terse drops files with zero signatures from the result.
	Terse  bool
	Logger *slog.Logger
	// Now supplies the generation timestamp; nil means time.Now. Tests fix
	// it so two scans of the same tree serialize identically.
	Now func() time.Time
}

// Scan extracts signatures from every eligible file under root. Files that
// cannot be processed become skip records; only a bad root aborts the scan.
// The result is sorted by path.
func (s *Scanner) Scan(root string) (*summary.RepoSummary, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scanning %s: not a directory", root)
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	result := &summary.RepoSummary{
		Root:        root,
		GeneratedAt: now().UTC().Truncate(time.Second),
		ToolVersion: summary.Version,
	}

	var mu sync.Mutex

	// Bounded worker pool for parallel per-file extraction. Workers share
	// nothing but the aggregation lock.
	const workerCount = 8
	type scanJob struct {
		path    string
		relPath string
		lang    string
	}
	jobs := make(chan scanJob, 100)

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				file, skipReason := s.extractSingleFile(job.path, job.relPath, job.lang)
				mu.Lock()
				if skipReason != "" {
					result.Skipped = append(result.Skipped, summary.SkippedFile{Path: job.relPath, Reason: skipReason})
				} else if file != nil {
					result.Files = append(result.Files, *file)
				}
				mu.Unlock()
			}
		}()
	}

	filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && s.Ignore.ShouldIgnoreDir(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if s.Ignore.ShouldIgnore(path) {
			return nil
		}

		relPath, _ := filepath.Rel(root, path)
		relPath = filepath.ToSlash(relPath)
		if !s.matchesIncludes(relPath) {
			return nil
		}

		// Unsupported file types are not source files; they stay out of the
		// summary without a skip record.
		lang := s.Detector.Detect(path)
		if lang == "" || !s.Extractor.Supports(lang) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if s.Ignore.IsFileTooLarge(info.Size()) {
			mu.Lock()
			result.Skipped = append(result.Skipped, summary.SkippedFile{Path: relPath, Reason: "file exceeds size limit"})
			mu.Unlock()
			return nil
		}

		jobs <- scanJob{path: path, relPath: relPath, lang: lang}
		return nil
	})

	close(jobs)
	wg.Wait()

	if s.Terse {
		files := result.Files[:0]
		for _, f := range result.Files {
			if len(f.Signatures) > 0 {
				files = append(files, f)
			}
		}
		result.Files = files
	}

	result.Sort()
	return result, nil
}

// ExtractFile processes one file for incremental updates in serve mode.
// A non-empty skip reason means the file should be recorded as skipped.
func (s *Scanner) ExtractFile(absolutePath string, relativePath string) (*summary.FileSummary, string) {
	lang := s.Detector.Detect(absolutePath)
	if lang == "" || !s.Extractor.Supports(lang) {
		return nil, ""
	}
	return s.extractSingleFile(absolutePath, relativePath, lang)
}

// extractSingleFile reads and extracts one file. Failures come back as a
// skip reason rather than an error so the caller can fold them into the
// summary.
func (s *Scanner) extractSingleFile(absolutePath string, relativePath string, lang string) (*summary.FileSummary, string) {
	content, err := readFileWithRetry(absolutePath)
	if err != nil {
		s.Logger.Debug("unreadable file", "path", relativePath, "error", err)
		return nil, fmt.Sprintf("read error: %v", err)
	}

	if language.IsBinaryContent(content) {
		return nil, "binary file"
	}

	file, err := s.Extractor.Extract(lang, relativePath, content)
	if err != nil {
		if errors.Is(err, extract.ErrMalformedSource) {
			s.Logger.Debug("malformed file", "path", relativePath, "language", lang)
			return nil, extract.ErrMalformedSource.Error()
		}
		s.Logger.Debug("extraction failed", "path", relativePath, "error", err)
		return nil, fmt.Sprintf("extraction error: %v", err)
	}

	return file, ""
}

func (s *Scanner) matchesIncludes(relPath string) bool {
	if len(s.Includes) == 0 {
		return true
	}
	for _, pattern := range s.Includes {
		if matched, err := doublestar.Match(pattern, relPath); err == nil && matched {
			return true
		}
	}
	return false
}

// readFileWithRetry attempts to read a file, retrying once after a short
// delay if the file is locked (common on Windows when editors are saving).
func readFileWithRetry(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		time.Sleep(50 * time.Millisecond)
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	}
	return data, nil
}

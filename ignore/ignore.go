package ignore

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	gitignore "github.com/denormal/go-gitignore"
)

// Matcher decides which paths are excluded from a scan. Four rule sources
// apply, in order: built-in defaults, .gitignore, .tldrignore, and exclude
// patterns passed on the command line. Reload takes the write lock, the
// Should* methods take the read lock.
type Matcher struct {
	mu               sync.RWMutex
	rootDir          string
	defaults         ruleSet
	gitIgnore        gitignore.GitIgnore
	tldrIgnore       gitignore.GitIgnore
	excludePatterns  []string
	maxFileSizeBytes int64
}

// MatcherOptions configures a Matcher.
type MatcherOptions struct {
	RootDir          string
	CustomPatterns   []string
	MaxFileSizeBytes int64
}

// ruleSet is the default pattern list split into literal names and globs so
// the per-file check is a map lookup plus a short glob loop.
type ruleSet struct {
	names map[string]struct{}
	globs []string
}

func compileRules(patterns []string) ruleSet {
	rules := ruleSet{names: make(map[string]struct{}, len(patterns))}
	for _, pattern := range patterns {
		lowered := strings.ToLower(pattern)
		if strings.ContainsAny(lowered, "*?[") {
			rules.globs = append(rules.globs, lowered)
		} else {
			rules.names[lowered] = struct{}{}
		}
	}
	return rules
}

// matches reports whether any path component or the basename hits a rule.
// Matching is case-insensitive so that Thumbs.db style entries work on every
// filesystem.
func (r ruleSet) matches(relativePath string) bool {
	lowered := strings.ToLower(relativePath)
	for _, component := range strings.Split(lowered, "/") {
		if _, ok := r.names[component]; ok {
			return true
		}
	}

	base := lowered
	if i := strings.LastIndexByte(lowered, '/'); i >= 0 {
		base = lowered[i+1:]
	}
	for _, glob := range r.globs {
		if matched, err := filepath.Match(glob, base); err == nil && matched {
			return true
		}
		if matched, err := filepath.Match(glob, lowered); err == nil && matched {
			return true
		}
	}
	return false
}

// NewMatcher builds a matcher rooted at options.RootDir, loading .gitignore
// and .tldrignore from the root if they exist.
func NewMatcher(options MatcherOptions) *Matcher {
	maxSize := options.MaxFileSizeBytes
	if maxSize <= 0 {
		maxSize = 1024 * 1024 // 1MB default
	}

	return &Matcher{
		rootDir:          options.RootDir,
		defaults:         compileRules(defaultPatterns),
		gitIgnore:        readIgnoreFile(options.RootDir, ".gitignore"),
		tldrIgnore:       readIgnoreFile(options.RootDir, ".tldrignore"),
		excludePatterns:  options.CustomPatterns,
		maxFileSizeBytes: maxSize,
	}
}

// ShouldIgnore reports whether absolutePath is excluded from the scan.
func (m *Matcher) ShouldIgnore(absolutePath string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	relativePath, err := filepath.Rel(m.rootDir, absolutePath)
	if err != nil {
		relativePath = absolutePath
	}
	relativePath = filepath.ToSlash(relativePath)

	if m.defaults.matches(relativePath) {
		return true
	}

	// gitignore semantics distinguish directories, so stat once here. A path
	// that no longer exists (delete events) is treated as a file.
	isDir := false
	if info, err := os.Stat(absolutePath); err == nil {
		isDir = info.IsDir()
	}
	if ignoredBy(m.gitIgnore, relativePath, isDir) || ignoredBy(m.tldrIgnore, relativePath, isDir) {
		return true
	}

	return m.matchesExcludes(relativePath)
}

// ShouldIgnoreDir reports whether a directory subtree is pruned entirely.
func (m *Matcher) ShouldIgnoreDir(absolutePath string) bool {
	if _, ok := prunedDirNames[filepath.Base(absolutePath)]; ok {
		return true
	}
	return m.ShouldIgnore(absolutePath)
}

// IsFileTooLarge reports whether fileSize exceeds the configured limit.
func (m *Matcher) IsFileTooLarge(fileSize int64) bool {
	return fileSize > m.maxFileSizeBytes
}

// MaxFileSizeBytes returns the configured maximum file size.
func (m *Matcher) MaxFileSizeBytes() int64 {
	return m.maxFileSizeBytes
}

// Reload re-reads .gitignore and .tldrignore from disk. The watcher calls
// this when either file changes.
func (m *Matcher) Reload() {
	git := readIgnoreFile(m.rootDir, ".gitignore")
	tldr := readIgnoreFile(m.rootDir, ".tldrignore")

	m.mu.Lock()
	defer m.mu.Unlock()
	m.gitIgnore = git
	m.tldrIgnore = tldr
}

// matchesExcludes checks the CLI exclude patterns against the relative path
// and its basename, so both "src/gen/*" and "*_gen.go" forms work.
func (m *Matcher) matchesExcludes(relativePath string) bool {
	base := filepath.Base(relativePath)
	for _, pattern := range m.excludePatterns {
		if matched, err := filepath.Match(pattern, relativePath); err == nil && matched {
			return true
		}
		if matched, err := filepath.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}

// ignoredBy evaluates one ignore file. Relative() works on paths that are not
// on disk, which delete events rely on.
func ignoredBy(rules gitignore.GitIgnore, relativePath string, isDir bool) bool {
	if rules == nil {
		return false
	}
	match := rules.Relative(relativePath, isDir)
	return match != nil && match.Ignore()
}

// readIgnoreFile parses one ignore file, or returns nil if it is absent.
// Opening through a handle keeps the file closable on Windows.
func readIgnoreFile(rootDir string, name string) gitignore.GitIgnore {
	f, err := os.Open(filepath.Join(rootDir, name))
	if err != nil {
		return nil
	}
	defer f.Close()
	return gitignore.New(f, rootDir, nil)
}

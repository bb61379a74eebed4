package language

import (
	"path/filepath"
	"sort"
	"strings"
)

// defaultExtensions maps file extensions (without dot) to grammar tags.
// Tags match the grammar names registered by the extract package.
var defaultExtensions = map[string]string{
	// Python
	"py": "python", "pyi": "python", "pyw": "python",
	// JavaScript
	"js": "javascript", "jsx": "javascript", "mjs": "javascript", "cjs": "javascript",
	// TypeScript (tsx has its own grammar)
	"ts": "typescript", "mts": "typescript", "cts": "typescript",
	"tsx": "tsx",
	// Java
	"java": "java",
	// C (.h defaults to C; C++-only headers can be rerouted via overrides)
	"c": "c", "h": "c",
	// C++
	"cpp": "cpp", "cc": "cpp", "cxx": "cpp", "hpp": "cpp", "hxx": "cpp", "hh": "cpp",
	// C#
	"cs": "csharp", "csx": "csharp",
	// Go
	"go": "go",
	// Swift
	"swift": "swift",
	// Objective-C
	"m": "objc", "mm": "objc",
	// Starlark is Python syntax
	"bzl": "python", "bazel": "python",
}

// defaultFilenames routes extensionless files by exact name. Only names
// whose content a shipped grammar can parse belong here; Bazel and SCons
// build files are Python syntax.
var defaultFilenames = map[string]string{
	"BUILD":      "python",
	"WORKSPACE":  "python",
	"SConstruct": "python",
	"SConscript": "python",
	"wscript":    "python",
}

// Detector maps file paths to grammar tags. Create one with NewDetector.
type Detector struct {
	extensions map[string]string
	filenames  map[string]string
}

// NewDetector creates a detector with the default extension table.
// Overrides map language tags to additional extensions, so new file types
// can be routed to a grammar through configuration without a rebuild.
func NewDetector(overrides map[string][]string) *Detector {
	extensions := make(map[string]string, len(defaultExtensions))
	for ext, lang := range defaultExtensions {
		extensions[ext] = lang
	}
	for lang, exts := range overrides {
		for _, ext := range exts {
			ext = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
			if ext == "" {
				continue
			}
			extensions[ext] = lang
		}
	}
	return &Detector{extensions: extensions, filenames: defaultFilenames}
}

// Detect returns the grammar tag for a file path, or "" if the file type
// is not supported for extraction. Extensionless files are routed by exact
// filename.
func (d *Detector) Detect(filePath string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filePath), "."))
	if ext == "" {
		return d.filenames[filepath.Base(filePath)]
	}
	return d.extensions[ext]
}

// Supported returns the sorted set of grammar tags the detector can map to.
func (d *Detector) Supported() []string {
	seen := make(map[string]bool)
	for _, lang := range d.extensions {
		seen[lang] = true
	}
	langs := make([]string, 0, len(seen))
	for lang := range seen {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

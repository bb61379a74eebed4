package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/csimoes1/tldr-code/extract"
	"github.com/csimoes1/tldr-code/ignore"
	"github.com/csimoes1/tldr-code/language"
	"github.com/csimoes1/tldr-code/tldrfile"
)

var fixedClock = func() time.Time {
	return time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
}

func writeSourceFile(t *testing.T, root string, relPath string, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", relPath, err)
	}
}

func newTestScanner(t *testing.T, root string) *Scanner {
	t.Helper()
	return &Scanner{
		Extractor: extract.NewExtractor(),
		Detector:  language.NewDetector(nil),
		Ignore:    ignore.NewMatcher(ignore.MatcherOptions{RootDir: root}),
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:       fixedClock,
	}
}

func Test_Scanner_MultiLanguageTree(t *testing.T) {
	root := t.TempDir()
	writeSourceFile(t, root, "cmd/main.go", "package main\n\nfunc main() {}\n")
	writeSourceFile(t, root, "lib/util.py", "def helper(x):\n    return x\n")
	writeSourceFile(t, root, "web/app.js", "function render(el) {}\n")
	writeSourceFile(t, root, "README.md", "# readme\n")

	repo, err := newTestScanner(t, root).Scan(root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	if len(repo.Files) != 3 {
		t.Fatalf("expected 3 files, got %+v", repo.Files)
	}
	// Sorted by path
	paths := []string{repo.Files[0].Path, repo.Files[1].Path, repo.Files[2].Path}
	if paths[0] != "cmd/main.go" || paths[1] != "lib/util.py" || paths[2] != "web/app.js" {
		t.Errorf("files out of order: %v", paths)
	}
	// Unsupported files are neither summarized nor recorded as skipped
	if len(repo.Skipped) != 0 {
		t.Errorf("unexpected skip records: %+v", repo.Skipped)
	}
}

func Test_Scanner_Deterministic(t *testing.T) {
	root := t.TempDir()
	writeSourceFile(t, root, "b.go", "package x\n\nfunc B() {}\n")
	writeSourceFile(t, root, "a.go", "package x\n\nfunc A() {}\n")
	writeSourceFile(t, root, "sub/c.py", "def c():\n    pass\n")

	scanner := newTestScanner(t, root)

	first, err := scanner.Scan(root)
	if err != nil {
		t.Fatalf("first scan: %v", err)
	}
	second, err := scanner.Scan(root)
	if err != nil {
		t.Fatalf("second scan: %v", err)
	}

	firstData, err := tldrfile.Marshal(first, tldrfile.FormatJSON)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	secondData, err := tldrfile.Marshal(second, tldrfile.FormatJSON)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(firstData) != string(secondData) {
		t.Errorf("two scans of an unchanged tree differ:\n%s\n---\n%s", firstData, secondData)
	}
}

func Test_Scanner_MalformedFileDoesNotAbort(t *testing.T) {
	root := t.TempDir()
	writeSourceFile(t, root, "good.py", "def works(x):\n    return x\n")
	writeSourceFile(t, root, "bad.py", "%%%% not code {{{")

	repo, err := newTestScanner(t, root).Scan(root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	if len(repo.Files) != 1 || repo.Files[0].Path != "good.py" {
		t.Errorf("expected only good.py summarized, got %+v", repo.Files)
	}
	if len(repo.Skipped) != 1 || repo.Skipped[0].Path != "bad.py" {
		t.Fatalf("expected bad.py skip record, got %+v", repo.Skipped)
	}
	if repo.Skipped[0].Reason == "" {
		t.Error("skip record has no reason")
	}
}

func Test_Scanner_BinaryFileSkipped(t *testing.T) {
	root := t.TempDir()
	writeSourceFile(t, root, "blob.go", "package x\x00\x01\x02")

	repo, err := newTestScanner(t, root).Scan(root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(repo.Skipped) != 1 || repo.Skipped[0].Reason != "binary file" {
		t.Errorf("expected binary skip record, got %+v", repo.Skipped)
	}
}

func Test_Scanner_OversizedFileSkipped(t *testing.T) {
	root := t.TempDir()
	writeSourceFile(t, root, "big.go", "package x\n\nfunc Big() {}\n")

	scanner := newTestScanner(t, root)
	scanner.Ignore = ignore.NewMatcher(ignore.MatcherOptions{RootDir: root, MaxFileSizeBytes: 10})

	repo, err := scanner.Scan(root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(repo.Files) != 0 {
		t.Errorf("oversized file should not be summarized: %+v", repo.Files)
	}
	if len(repo.Skipped) != 1 || repo.Skipped[0].Reason != "file exceeds size limit" {
		t.Errorf("expected size skip record, got %+v", repo.Skipped)
	}
}

func Test_Scanner_TerseDropsEmptyFiles(t *testing.T) {
	root := t.TempDir()
	writeSourceFile(t, root, "full.go", "package x\n\nfunc F() {}\n")
	writeSourceFile(t, root, "empty.go", "package x\n")

	scanner := newTestScanner(t, root)
	scanner.Terse = true

	repo, err := scanner.Scan(root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(repo.Files) != 1 || repo.Files[0].Path != "full.go" {
		t.Errorf("terse scan should keep only files with signatures: %+v", repo.Files)
	}
}

func Test_Scanner_IncludeGlobs(t *testing.T) {
	root := t.TempDir()
	writeSourceFile(t, root, "src/app.py", "def app():\n    pass\n")
	writeSourceFile(t, root, "scripts/tool.py", "def tool():\n    pass\n")

	scanner := newTestScanner(t, root)
	scanner.Includes = []string{"src/**"}

	repo, err := scanner.Scan(root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(repo.Files) != 1 || repo.Files[0].Path != "src/app.py" {
		t.Errorf("include glob not honored: %+v", repo.Files)
	}
}

func Test_Scanner_CustomExcludePattern(t *testing.T) {
	root := t.TempDir()
	writeSourceFile(t, root, "keep.go", "package x\n\nfunc K() {}\n")
	writeSourceFile(t, root, "keep_gen.go", "package x\n\nfunc G() {}\n")

	scanner := newTestScanner(t, root)
	scanner.Ignore = ignore.NewMatcher(ignore.MatcherOptions{
		RootDir:        root,
		CustomPatterns: []string{"*_gen.go"},
	})

	repo, err := scanner.Scan(root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(repo.Files) != 1 || repo.Files[0].Path != "keep.go" {
		t.Errorf("exclude pattern not honored: %+v", repo.Files)
	}
}

func Test_Scanner_GitignoreHonored(t *testing.T) {
	root := t.TempDir()
	writeSourceFile(t, root, ".gitignore", "generated/\n")
	writeSourceFile(t, root, "generated/out.go", "package gen\n\nfunc Out() {}\n")
	writeSourceFile(t, root, "main.go", "package main\n\nfunc main() {}\n")

	repo, err := newTestScanner(t, root).Scan(root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(repo.Files) != 1 || repo.Files[0].Path != "main.go" {
		t.Errorf("gitignore not honored: %+v", repo.Files)
	}
}

func Test_Scanner_ArtifactNotRescanned(t *testing.T) {
	root := t.TempDir()
	writeSourceFile(t, root, "main.go", "package main\n\nfunc main() {}\n")

	scanner := newTestScanner(t, root)
	repo, err := scanner.Scan(root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if err := tldrfile.WriteFile(filepath.Join(root, "tldr.json"), repo); err != nil {
		t.Fatalf("write artifact: %v", err)
	}

	again, err := scanner.Scan(root)
	if err != nil {
		t.Fatalf("rescan: %v", err)
	}
	if len(again.Files) != 1 {
		t.Errorf("artifact leaked into its own scan: %+v", again.Files)
	}
}

func Test_Scanner_MissingRoot(t *testing.T) {
	if _, err := newTestScanner(t, t.TempDir()).Scan(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("expected error for missing root")
	}
}

func Test_Scanner_ExtractFile(t *testing.T) {
	root := t.TempDir()
	writeSourceFile(t, root, "api.py", "def handler(req):\n    return req\n")

	scanner := newTestScanner(t, root)

	file, skipReason := scanner.ExtractFile(filepath.Join(root, "api.py"), "api.py")
	if skipReason != "" {
		t.Fatalf("unexpected skip: %s", skipReason)
	}
	if file == nil || len(file.Signatures) != 1 || file.Signatures[0].Name != "handler" {
		t.Errorf("unexpected extraction: %+v", file)
	}

	if file, _ := scanner.ExtractFile(filepath.Join(root, "notes.txt"), "notes.txt"); file != nil {
		t.Errorf("unsupported file should yield nil, got %+v", file)
	}
}

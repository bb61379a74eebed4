package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/csimoes1/tldr-code/index"
)

func newSyncFixture(t *testing.T, root string) (*Scanner, *index.Store, *index.SignatureIndex) {
	t.Helper()
	scanner := newTestScanner(t, root)

	repo, err := scanner.Scan(root)
	if err != nil {
		t.Fatalf("initial scan: %v", err)
	}

	store := index.NewStore()
	store.Set(repo, filepath.Join(root, "tldr.json"))

	signatureIndex, err := index.NewSignatureIndex()
	if err != nil {
		t.Fatalf("creating index: %v", err)
	}
	t.Cleanup(func() { signatureIndex.Close() })
	if err := signatureIndex.Rebuild(repo); err != nil {
		t.Fatalf("building index: %v", err)
	}
	return scanner, store, signatureIndex
}

func Test_SyncVerification_NoDrift(t *testing.T) {
	root := t.TempDir()
	writeSourceFile(t, root, "main.go", "package main\n\nfunc main() {}\n")

	scanner, store, signatureIndex := newSyncFixture(t, root)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	before := store.UpdatedAt()
	changed, err := performSyncVerification(root, scanner, store, signatureIndex, logger)
	if err != nil {
		t.Fatalf("sync verification: %v", err)
	}
	if changed {
		t.Error("unchanged tree reported as drifted")
	}
	if store.UpdatedAt() != before {
		t.Error("store replaced despite no drift")
	}
}

func Test_SyncVerification_DetectsMissedChange(t *testing.T) {
	root := t.TempDir()
	writeSourceFile(t, root, "main.go", "package main\n\nfunc main() {}\n")

	scanner, store, signatureIndex := newSyncFixture(t, root)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// A file appearing without a watcher event is exactly the drift the
	// periodic verification exists to catch.
	writeSourceFile(t, root, "extra.py", "def added():\n    pass\n")

	changed, err := performSyncVerification(root, scanner, store, signatureIndex, logger)
	if err != nil {
		t.Fatalf("sync verification: %v", err)
	}
	if !changed {
		t.Fatal("new file not detected as drift")
	}

	snapshot := store.Snapshot()
	if len(snapshot.Files) != 2 {
		t.Errorf("expected 2 files after drift repair, got %+v", snapshot.Files)
	}

	results, _, err := signatureIndex.Search(index.SearchOptions{Query: "added"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("rebuilt index missing new signature: %+v", results)
	}

	if _, err := os.Stat(filepath.Join(root, "tldr.json")); err != nil {
		t.Errorf("artifact not refreshed after drift: %v", err)
	}
}

func Test_SyncVerification_NoSummaryYet(t *testing.T) {
	root := t.TempDir()
	scanner := newTestScanner(t, root)
	signatureIndex, err := index.NewSignatureIndex()
	if err != nil {
		t.Fatalf("creating index: %v", err)
	}
	t.Cleanup(func() { signatureIndex.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	changed, err := performSyncVerification(root, scanner, index.NewStore(), signatureIndex, logger)
	if err != nil {
		t.Fatalf("sync verification: %v", err)
	}
	if changed {
		t.Error("empty store should short-circuit without drift")
	}
}

package tools

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/csimoes1/tldr-code/tldrfile"
)

func Test_ReadHandler_EmptyPath(t *testing.T) {
	h := &ReadHandler{Logger: discardLogger()}

	result, _, err := h.Handle(context.Background(), nil, ReadArgs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError=true for empty file_path")
	}
}

func Test_ReadHandler_MissingFile(t *testing.T) {
	h := &ReadHandler{Logger: discardLogger()}

	result, _, err := h.Handle(context.Background(), nil, ReadArgs{
		FilePath: filepath.Join(t.TempDir(), "absent.json"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError=true for missing file")
	}
}

func Test_ReadHandler_ReturnsContentWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tldr.json")
	if err := tldrfile.WriteFile(path, testSummary()); err != nil {
		t.Fatalf("writing artifact: %v", err)
	}

	h := &ReadHandler{Logger: discardLogger()}
	result, _, err := h.Handle(context.Background(), nil, ReadArgs{FilePath: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatal("expected success, got error result")
	}

	text := result.Content[0].(*mcp.TextContent).Text
	if !strings.Contains(text, "Files analyzed: 1") {
		t.Errorf("missing counts header:\n%s", text)
	}
	if !strings.Contains(text, `"path": "main.go"`) {
		t.Errorf("missing artifact content:\n%s", text)
	}
}

func Test_ReadHandler_TextArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repo.tldr")
	if err := tldrfile.WriteFile(path, testSummary()); err != nil {
		t.Fatalf("writing artifact: %v", err)
	}

	h := &ReadHandler{Logger: discardLogger()}
	result, _, err := h.Handle(context.Background(), nil, ReadArgs{FilePath: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatal("expected success, got error result")
	}

	text := result.Content[0].(*mcp.TextContent).Text
	if !strings.Contains(text, "= main.go\tgo") {
		t.Errorf("missing text artifact record:\n%s", text)
	}
}

func Test_ReadHandler_NotAnArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("just some notes"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	h := &ReadHandler{Logger: discardLogger()}
	result, _, err := h.Handle(context.Background(), nil, ReadArgs{FilePath: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError=true for a file that is not a TLDR artifact")
	}
}

package tools

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/csimoes1/tldr-code/summary"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSummary() *summary.RepoSummary {
	return &summary.RepoSummary{
		Root:        "/work/repo",
		GeneratedAt: time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC),
		ToolVersion: summary.Version,
		Files: []summary.FileSummary{{
			Path:     "main.go",
			Language: "go",
			Signatures: []summary.Signature{
				{Name: "main", Kind: summary.KindFunction, Line: 5},
			},
		}},
	}
}

func Test_GenerateHandler_EmptyPath(t *testing.T) {
	h := &GenerateHandler{
		Generate: func(ctx context.Context, target, outputFilename string) (*GenerateResult, error) {
			t.Fatal("pipeline should not run for empty path")
			return nil, nil
		},
		Logger: discardLogger(),
	}

	result, _, err := h.Handle(context.Background(), nil, GenerateArgs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError=true for empty path")
	}
}

func Test_GenerateHandler_ReportsCountsAndContent(t *testing.T) {
	h := &GenerateHandler{
		Generate: func(ctx context.Context, target, outputFilename string) (*GenerateResult, error) {
			if target != "/work/repo" {
				t.Errorf("unexpected target %q", target)
			}
			return &GenerateResult{
				ArtifactPath: "/work/repo/tldr.json",
				Summary:      testSummary(),
				Serialized:   []byte(`{"root":"/work/repo"}`),
			}, nil
		},
		Logger: discardLogger(),
	}

	result, _, err := h.Handle(context.Background(), nil, GenerateArgs{Path: "/work/repo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatal("expected success, got error result")
	}

	text := result.Content[0].(*mcp.TextContent).Text
	for _, want := range []string{
		"TLDR file generated: /work/repo/tldr.json",
		"Files analyzed: 1",
		"Total functions: 1",
		"Total classes: 0",
		`{"root":"/work/repo"}`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("response missing %q:\n%s", want, text)
		}
	}
}

func Test_GenerateHandler_PipelineError(t *testing.T) {
	h := &GenerateHandler{
		Generate: func(ctx context.Context, target, outputFilename string) (*GenerateResult, error) {
			return nil, errors.New("no such directory")
		},
		Logger: discardLogger(),
	}

	result, _, err := h.Handle(context.Background(), nil, GenerateArgs{Path: "/missing"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError=true for pipeline failure")
	}
	text := result.Content[0].(*mcp.TextContent).Text
	if !strings.Contains(text, "no such directory") {
		t.Errorf("expected failure reason in response, got: %s", text)
	}
}

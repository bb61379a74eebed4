package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/csimoes1/tldr-code/summary"
)

// GenerateArgs defines the input parameters for the generate_tldr tool.
type GenerateArgs struct {
	Path           string `json:"path" jsonschema:"Local directory path or GitHub repository URL to summarize"`
	OutputFilename string `json:"output_filename,omitempty" jsonschema:"Artifact filename. Use a .tldr suffix for the compact text format; default is tldr.json"`
}

// GenerateResult is what the pipeline hands back for response formatting.
type GenerateResult struct {
	ArtifactPath string
	Summary      *summary.RepoSummary
	Serialized   []byte
}

// GenerateFunc runs the full scan-and-write pipeline. It is provided by
// main.go to avoid circular dependencies.
type GenerateFunc func(ctx context.Context, target string, outputFilename string) (*GenerateResult, error)

// GenerateHandler holds the dependencies for the generate tool.
type GenerateHandler struct {
	Generate GenerateFunc
	Logger   *slog.Logger
}

// Handle processes a generate_tldr request. The response leads with the
// artifact location and counts, then carries the full serialized artifact
// so the caller can use it without another round trip.
func (h *GenerateHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args GenerateArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if args.Path == "" {
		h.Logger.Warn("generate_tldr called with empty path")
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "Error: path parameter is required"}},
			IsError: true,
		}, nil, nil
	}

	result, err := h.Generate(ctx, args.Path, args.OutputFilename)
	if err != nil {
		h.Logger.Error("generate_tldr failed", "path", args.Path, "error", err)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Generate error: %v", err)}},
			IsError: true,
		}, nil, nil
	}

	h.Logger.Info("generate_tldr",
		"path", args.Path,
		"artifact", result.ArtifactPath,
		"files", len(result.Summary.Files),
		"skipped", len(result.Summary.Skipped),
		"elapsed", time.Since(start),
	)

	output := fmt.Sprintf("TLDR file generated: %s\n%s\n\n%s",
		result.ArtifactPath, result.Summary.Describe(), result.Serialized)

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: output}},
	}, nil, nil
}

package tools

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/csimoes1/tldr-code/tldrfile"
)

// ReadArgs defines the input parameters for the read_tldr tool.
type ReadArgs struct {
	FilePath string `json:"file_path" jsonschema:"Path to a previously generated TLDR artifact (JSON or .tldr text)"`
}

// ReadHandler holds the dependencies for the read tool.
type ReadHandler struct {
	Logger *slog.Logger
}

// Handle processes a read_tldr request. The artifact content is returned
// unchanged, prefixed with a counts header so the caller sees the shape of
// the summary before the payload.
func (h *ReadHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args ReadArgs) (*mcp.CallToolResult, any, error) {
	if args.FilePath == "" {
		h.Logger.Warn("read_tldr called with empty file_path")
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "Error: file_path parameter is required"}},
			IsError: true,
		}, nil, nil
	}

	data, err := os.ReadFile(args.FilePath)
	if err != nil {
		h.Logger.Error("read_tldr failed", "file", args.FilePath, "error", err)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Read error: %v", err)}},
			IsError: true,
		}, nil, nil
	}

	s, err := tldrfile.Unmarshal(data)
	if err != nil {
		h.Logger.Error("read_tldr parse failed", "file", args.FilePath, "error", err)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Not a TLDR artifact: %v", err)}},
			IsError: true,
		}, nil, nil
	}

	h.Logger.Info("read_tldr", "file", args.FilePath, "files", len(s.Files))

	output := fmt.Sprintf("%s\n\n%s", s.Describe(), data)

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: output}},
	}, nil, nil
}

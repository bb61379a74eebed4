package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/csimoes1/tldr-code/index"
)

// SearchArgs defines the input parameters for the search_signatures tool.
type SearchArgs struct {
	Query      string `json:"query,omitempty" jsonschema:"Signature name query. Plain text for word match, * and ? for wildcards, empty to match everything when a filter is set"`
	Language   string `json:"language,omitempty" jsonschema:"Restrict to one language tag (e.g. go, python, cpp)"`
	Kind       string `json:"kind,omitempty" jsonschema:"Restrict to one kind: function, method, class, struct, interface or protocol"`
	FileGlob   string `json:"fileGlob,omitempty" jsonschema:"Optional glob pattern to filter files (e.g. **/*.go)"`
	MaxResults int    `json:"maxResults,omitempty" jsonschema:"Maximum number of signatures to return (default 50)"`
}

// SearchHandler holds the dependencies for the search tool.
type SearchHandler struct {
	Index  *index.SignatureIndex
	Logger *slog.Logger
}

// Handle processes a search_signatures request.
func (h *SearchHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args SearchArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if args.Query == "" && args.Language == "" && args.Kind == "" {
		h.Logger.Warn("search_signatures called without query or filters")
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "Error: provide a query, or a language/kind filter"}},
			IsError: true,
		}, nil, nil
	}

	results, total, err := h.Index.Search(index.SearchOptions{
		Query:      args.Query,
		Language:   args.Language,
		Kind:       args.Kind,
		FileGlob:   args.FileGlob,
		MaxResults: args.MaxResults,
	})
	if err != nil {
		h.Logger.Error("search_signatures failed", "query", args.Query, "error", err)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Search error: %v", err)}},
			IsError: true,
		}, nil, nil
	}

	h.Logger.Info("search_signatures",
		"query", args.Query,
		"language", args.Language,
		"kind", args.Kind,
		"matches", total,
		"elapsed", time.Since(start),
	)

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: FormatSignatureResults(results, total)}},
	}, nil, nil
}

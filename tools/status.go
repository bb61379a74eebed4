package tools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/csimoes1/tldr-code/index"
)

// StatusArgs defines the input parameters for the tldr_status tool (none required).
type StatusArgs struct{}

// StatusHandler holds the dependencies for the status tool.
type StatusHandler struct {
	Store     *index.Store
	Index     *index.SignatureIndex
	StartTime time.Time
	RootDir   string
	Logger    *slog.Logger
}

// Handle processes a tldr_status request.
func (h *StatusHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args StatusArgs) (*mcp.CallToolResult, any, error) {
	var builder strings.Builder

	stats := h.Store.Stats()
	docCount := h.Index.DocumentCount()
	uptime := time.Since(h.StartTime)

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	h.Logger.Info("tldr_status",
		"files", stats.FileCount,
		"signatures", stats.SignatureCount,
		"memory", memStats.Alloc,
		"uptime", uptime,
	)

	builder.WriteString("=== tldr-code Status ===\n\n")
	builder.WriteString(fmt.Sprintf("Root directory: %s\n", h.RootDir))
	builder.WriteString(fmt.Sprintf("Uptime: %s\n", formatDuration(uptime)))
	builder.WriteString(fmt.Sprintf("Summarized files: %d\n", stats.FileCount))
	builder.WriteString(fmt.Sprintf("Extracted signatures: %d\n", stats.SignatureCount))
	builder.WriteString(fmt.Sprintf("Searchable signatures: %d\n", docCount))
	builder.WriteString(fmt.Sprintf("Skipped files: %d\n", stats.SkippedCount))
	if !stats.UpdatedAt.IsZero() {
		builder.WriteString(fmt.Sprintf("Last update: %s\n", stats.UpdatedAt.Format(time.RFC3339)))
	}
	builder.WriteString(fmt.Sprintf("Memory usage: %s (heap: %s)\n",
		formatFileSize(int64(memStats.Alloc)),
		formatFileSize(int64(memStats.HeapAlloc)),
	))

	if len(stats.Languages) > 0 {
		builder.WriteString("\nLanguages:\n")

		type langEntry struct {
			lang  string
			count int
		}
		entries := make([]langEntry, 0, len(stats.Languages))
		for lang, count := range stats.Languages {
			entries = append(entries, langEntry{lang, count})
		}
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].count != entries[j].count {
				return entries[i].count > entries[j].count
			}
			return entries[i].lang < entries[j].lang
		})

		for _, entry := range entries {
			builder.WriteString(fmt.Sprintf("  %-20s %d files\n", entry.lang, entry.count))
		}
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: builder.String()}},
	}, nil, nil
}

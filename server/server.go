package server

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/csimoes1/tldr-code/summary"
	"github.com/csimoes1/tldr-code/tools"
)

// Setup creates and configures the MCP server with all tool registrations.
func Setup(
	generateHandler *tools.GenerateHandler,
	readHandler *tools.ReadHandler,
	searchHandler *tools.SearchHandler,
	statusHandler *tools.StatusHandler,
) *mcp.Server {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "tldr",
			Version: summary.Version,
		},
		&mcp.ServerOptions{
			Instructions: `This server produces TLDR summaries of codebases: every function, method and class signature in a source tree, condensed into a single artifact sized for a context window.

Use these tools when you need an overview of unfamiliar code:
- Use generate_tldr to summarize a local directory or a GitHub repository instead of reading files one by one
- Use read_tldr to load a previously generated artifact
- Use search_signatures to locate a function or class by name across the whole tree
- The summary of the served directory updates automatically when files change (via filesystem watcher)`,
		},
	)

	// Register generate_tldr tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "generate_tldr",
		Description: `Generate a TLDR signature summary for a codebase and write it to disk.

Accepts:
  - path: local directory, or a GitHub repository ("https://github.com/user/repo" or "user/repo" — cloned shallowly and cleaned up afterwards)
  - output_filename: artifact name. ".tldr" suffix selects the compact text format; default is tldr.json in the scanned directory.

The response reports the artifact location and counts, followed by the full artifact content.`,
	}, generateHandler.Handle)

	// Register read_tldr tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "read_tldr",
		Description: `Read a previously generated TLDR artifact (JSON or .tldr text). Returns the content unchanged, prefixed with file/function/class counts.`,
	}, readHandler.Handle)

	// Register search_signatures tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "search_signatures",
		Description: `Search extracted signatures of the served directory by name.

Filtering:
  - language: one language tag (e.g. "go", "python", "cpp")
  - kind: "function", "method", "class", "struct", "interface" or "protocol"
  - fileGlob: glob pattern over relative paths (e.g. "**/*.go")`,
	}, searchHandler.Handle)

	// Register tldr_status tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "tldr_status",
		Description: "Show summary status: file and signature counts, languages, memory usage, and uptime.",
	}, statusHandler.Handle)

	return mcpServer
}

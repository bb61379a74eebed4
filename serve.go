package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/csimoes1/tldr-code/index"
	"github.com/csimoes1/tldr-code/server"
	"github.com/csimoes1/tldr-code/tldrfile"
	"github.com/csimoes1/tldr-code/tools"
	"github.com/csimoes1/tldr-code/watcher"
)

// runServe starts the MCP stdio server over one directory: initial scan,
// live re-extraction on file changes, and the four tldr tools.
func runServe(args []string) {
	flags := flag.NewFlagSet("tldr-code serve", flag.ExitOnError)

	var rootDir string
	var logLevel string
	var logFile string
	var terse bool
	var excludes, includes repeatableFlag
	var maxFileSizeBytes int64
	var configPath string
	var githubTempDir string
	var syncIntervalSeconds int

	flags.StringVar(&rootDir, "root", "", "Served root directory (default: current working directory)")
	flags.StringVar(&logLevel, "log-level", "info", "Log level: debug|info|warn|error")
	flags.StringVar(&logFile, "log-file", "", "Log file path (default: tldr-code.log in the root directory)")
	flags.BoolVar(&terse, "terse", false, "Exclude files with zero signatures from the artifact")
	flags.Var(&excludes, "exclude", "Extra ignore pattern (repeatable)")
	flags.Var(&includes, "include", "Only scan paths matching this glob (repeatable)")
	flags.Int64Var(&maxFileSizeBytes, "max-file-size", 0, "Maximum file size in bytes (default: 1MB)")
	flags.StringVar(&configPath, "config", "", "Config file path (default: .tldr.toml in the root directory)")
	flags.StringVar(&githubTempDir, "github-temp-dir", "", "Directory for temporary GitHub clones (default: system temp)")
	flags.IntVar(&syncIntervalSeconds, "sync-interval", 300, "Seconds between summary consistency checks (0 disables)")
	flags.Parse(args)

	if rootDir == "" {
		var err error
		rootDir, err = os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
			os.Exit(1)
		}
	}
	rootDir, _ = filepath.Abs(rootDir)

	// stdout is the MCP transport, so logs go to a file by default.
	if logFile == "" {
		logFile = filepath.Join(rootDir, "tldr-code.log")
	}
	logger := setupLogger(logLevel, logFile)

	logger.Info("starting tldr-code server",
		"root", rootDir,
		"maxFileSize", maxFileSizeBytes,
	)

	startTime := time.Now()

	g := &generator{
		opts: options{
			Excludes:         excludes,
			Includes:         includes,
			Terse:            terse,
			MaxFileSizeBytes: maxFileSizeBytes,
			ConfigPath:       configPath,
			GitHubTempDir:    githubTempDir,
		},
		logger: logger,
	}

	scanner, _, err := g.buildScanner(rootDir)
	if err != nil {
		logger.Error("failed to set up scanner", "error", err)
		os.Exit(1)
	}

	store := index.NewStore()
	signatureIndex, err := index.NewSignatureIndex()
	if err != nil {
		logger.Error("failed to create signature index", "error", err)
		os.Exit(1)
	}
	defer signatureIndex.Close()

	// Initial scan and artifact write
	repo, err := scanner.Scan(rootDir)
	if err != nil {
		logger.Error("initial scan failed", "error", err)
		os.Exit(1)
	}
	artifactPath := filepath.Join(rootDir, tldrfile.DefaultFilename)
	if err := tldrfile.WriteFile(artifactPath, repo); err != nil {
		logger.Warn("failed to write artifact", "path", artifactPath, "error", err)
	}
	store.Set(repo, artifactPath)
	if err := signatureIndex.Rebuild(repo); err != nil {
		logger.Error("failed to build signature index", "error", err)
		os.Exit(1)
	}
	logger.Info("initial scan complete",
		"files", len(repo.Files),
		"signatures", repo.SignatureCount(),
		"skipped", len(repo.Skipped),
		"duration", time.Since(startTime),
	)

	// Watch for source changes. Ignore-rule files stay relevant so edits to
	// them reload the matcher.
	relevant := func(path string) bool {
		base := filepath.Base(path)
		if base == ".gitignore" || base == ".tldrignore" {
			return true
		}
		return scanner.Detector.Detect(path) != ""
	}
	fileWatcher, err := watcher.New(rootDir, scanner.Ignore, relevant, logger)
	if err != nil {
		logger.Warn("failed to start file watcher, continuing without live updates", "error", err)
	} else {
		go fileWatcher.Start()
		go handleWatcherEvents(fileWatcher, rootDir, scanner, store, signatureIndex, logger)
		defer fileWatcher.Close()
	}

	// Periodic consistency check catches changes the watcher missed.
	if syncIntervalSeconds > 0 {
		stopSync := make(chan struct{})
		defer close(stopSync)
		go runPeriodicSync(syncIntervalSeconds, rootDir, scanner, store, signatureIndex, logger, stopSync)
	}

	generateHandler := &tools.GenerateHandler{Generate: g.run, Logger: logger}
	readHandler := &tools.ReadHandler{Logger: logger}
	searchHandler := &tools.SearchHandler{Index: signatureIndex, Logger: logger}
	statusHandler := &tools.StatusHandler{
		Store:     store,
		Index:     signatureIndex,
		StartTime: startTime,
		RootDir:   rootDir,
		Logger:    logger,
	}

	mcpServer := server.Setup(generateHandler, readHandler, searchHandler, statusHandler)

	logger.Info("MCP server starting on stdio")
	if err := mcpServer.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		logger.Error("MCP server error", "error", err)
		os.Exit(1)
	}
}

// handleWatcherEvents processes debounced change batches and keeps the
// store and signature index current.
func handleWatcherEvents(
	fileWatcher *watcher.Watcher,
	rootDir string,
	scanner *Scanner,
	store *index.Store,
	signatureIndex *index.SignatureIndex,
	logger *slog.Logger,
) {
	for events := range fileWatcher.Events() {
		for _, event := range events {
			relPath, _ := filepath.Rel(rootDir, event.Path)
			relPath = filepath.ToSlash(relPath)

			switch event.Op {
			case watcher.OpRemove, watcher.OpRename:
				store.RemoveFile(relPath)
				if err := signatureIndex.RemoveFile(relPath); err != nil {
					logger.Warn("failed to remove from index", "path", relPath, "error", err)
				}
				logger.Debug("removed from summary", "path", relPath)

			case watcher.OpCreate, watcher.OpWrite:
				baseName := filepath.Base(event.Path)
				if baseName == ".gitignore" || baseName == ".tldrignore" {
					scanner.Ignore.Reload()
					logger.Info("reloaded ignore rules", "trigger", baseName)
					continue
				}

				if scanner.Ignore.ShouldIgnore(event.Path) {
					continue
				}
				info, err := os.Stat(event.Path)
				if err != nil || info.IsDir() {
					continue
				}
				if scanner.Ignore.IsFileTooLarge(info.Size()) {
					store.MarkSkipped(relPath, "file exceeds size limit")
					continue
				}

				file, skipReason := scanner.ExtractFile(event.Path, relPath)
				if skipReason != "" {
					store.MarkSkipped(relPath, skipReason)
					if err := signatureIndex.RemoveFile(relPath); err != nil {
						logger.Warn("failed to remove from index", "path", relPath, "error", err)
					}
					logger.Debug("marked skipped", "path", relPath, "reason", skipReason)
					continue
				}
				if file == nil {
					continue
				}
				store.UpdateFile(*file)
				if err := signatureIndex.IndexFile(*file); err != nil {
					logger.Warn("failed to index file", "path", relPath, "error", err)
				}
				logger.Debug("updated summary", "path", relPath, "signatures", len(file.Signatures))
			}
		}

		writeCurrentArtifact(store, logger)
	}
}

// writeCurrentArtifact persists the in-memory summary after a change batch,
// so the artifact on disk tracks the live tree.
func writeCurrentArtifact(store *index.Store, logger *slog.Logger) {
	snapshot := store.Snapshot()
	if snapshot == nil {
		return
	}
	path := store.ArtifactPath()
	if path == "" {
		return
	}
	if err := tldrfile.WriteFile(path, snapshot); err != nil {
		logger.Warn("failed to refresh artifact", "path", path, "error", err)
	}
}

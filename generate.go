package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/csimoes1/tldr-code/config"
	"github.com/csimoes1/tldr-code/extract"
	"github.com/csimoes1/tldr-code/github"
	"github.com/csimoes1/tldr-code/ignore"
	"github.com/csimoes1/tldr-code/language"
	"github.com/csimoes1/tldr-code/tldrfile"
	"github.com/csimoes1/tldr-code/tools"
)

// options carries everything the pipeline needs beyond the target itself.
// Flags override config file values; zero values mean "not set".
type options struct {
	Excludes         []string
	Includes         []string
	Terse            bool
	MaxFileSizeBytes int64
	Output           string
	ConfigPath       string
	GitHubTempDir    string
}

const defaultMaxFileSizeBytes = 1024 * 1024

// generator runs the scan-and-write pipeline for local paths and GitHub
// URLs. It backs both the CLI and the generate_tldr MCP tool.
type generator struct {
	opts   options
	logger *slog.Logger
}

// run scans the target and writes the artifact. For GitHub targets the
// repository is cloned shallowly, summarized, and the clone removed; the
// artifact lands in the current directory named after the repository.
func (g *generator) run(ctx context.Context, target string, outputFilename string) (*tools.GenerateResult, error) {
	scanDir := target
	artifactDir := target
	defaultName := tldrfile.DefaultFilename

	if github.IsRepoURL(target) {
		cloneDir, cleanup, err := github.Clone(ctx, target, g.opts.GitHubTempDir, g.logger)
		if err != nil {
			return nil, err
		}
		defer cleanup()

		scanDir = cloneDir
		artifactDir = "."
		defaultName = github.RepoName(target) + ".tldr.json"
	}

	scanner, cfg, err := g.buildScanner(scanDir)
	if err != nil {
		return nil, err
	}

	repo, err := scanner.Scan(scanDir)
	if err != nil {
		return nil, err
	}

	name := outputFilename
	if name == "" {
		name = g.opts.Output
	}
	if name == "" {
		name = cfg.Output
	}
	if name == "" {
		name = defaultName
	}
	artifactPath := name
	if !filepath.IsAbs(artifactPath) {
		artifactPath = filepath.Join(artifactDir, name)
	}
	artifactPath, err = filepath.Abs(artifactPath)
	if err != nil {
		return nil, fmt.Errorf("resolving output path: %w", err)
	}

	data, err := tldrfile.Marshal(repo, tldrfile.FormatForFilename(artifactPath))
	if err != nil {
		return nil, err
	}
	if err := tldrfile.WriteRaw(artifactPath, data); err != nil {
		return nil, err
	}

	g.logger.Info("artifact written",
		"path", artifactPath,
		"files", len(repo.Files),
		"signatures", repo.SignatureCount(),
		"skipped", len(repo.Skipped),
	)

	return &tools.GenerateResult{
		ArtifactPath: artifactPath,
		Summary:      repo,
		Serialized:   data,
	}, nil
}

// buildScanner merges the config file with the flag options and assembles
// the scanner for one directory.
func (g *generator) buildScanner(scanDir string) (*Scanner, *config.Config, error) {
	var cfg *config.Config
	var err error
	if g.opts.ConfigPath != "" {
		cfg, err = config.Load(g.opts.ConfigPath, true)
	} else {
		cfg, err = config.LoadForRoot(scanDir)
	}
	if err != nil {
		return nil, nil, err
	}

	maxFileSize := g.opts.MaxFileSizeBytes
	if maxFileSize == 0 && cfg.MaxFileSizeKB > 0 {
		maxFileSize = cfg.MaxFileSizeKB * 1024
	}
	if maxFileSize == 0 {
		maxFileSize = defaultMaxFileSizeBytes
	}

	absDir, err := filepath.Abs(scanDir)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving %s: %w", scanDir, err)
	}
	if info, err := os.Stat(absDir); err != nil || !info.IsDir() {
		return nil, nil, fmt.Errorf("not a directory: %s", scanDir)
	}

	matcher := ignore.NewMatcher(ignore.MatcherOptions{
		RootDir:          absDir,
		CustomPatterns:   append(append([]string{}, cfg.Exclude...), g.opts.Excludes...),
		MaxFileSizeBytes: maxFileSize,
	})

	scanner := &Scanner{
		Extractor: extract.NewExtractor(),
		Detector:  language.NewDetector(cfg.Languages),
		Ignore:    matcher,
		Includes:  append(append([]string{}, cfg.Include...), g.opts.Includes...),
		Terse:     g.opts.Terse || cfg.Terse,
		Logger:    g.logger,
	}
	return scanner, cfg, nil
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/csimoes1/tldr-code/register"
)

// repeatableFlag is a repeatable CLI flag for patterns and globs.
type repeatableFlag []string

func (r *repeatableFlag) String() string { return strings.Join(*r, ", ") }
func (r *repeatableFlag) Set(value string) error {
	*r = append(*r, value)
	return nil
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "serve":
			runServe(os.Args[2:])
			return
		case "register":
			register.Run(register.DeriveServerName(os.Args[0]), os.Args[2:])
			return
		}
	}
	runGenerate(os.Args[1:])
}

// runGenerate is the default CLI mode: summarize a directory or GitHub
// repository and write the artifact.
func runGenerate(args []string) {
	flags := flag.NewFlagSet("tldr-code", flag.ExitOnError)

	var logLevel string
	var terse bool
	var excludes, includes repeatableFlag
	var maxFileSizeBytes int64
	var githubTempDir string
	var configPath string

	flags.StringVar(&logLevel, "log-level", "warn", "Log level: debug|info|warn|error")
	flags.BoolVar(&terse, "terse", false, "Exclude files with zero signatures from the artifact")
	flags.Var(&excludes, "exclude", "Extra ignore pattern (repeatable)")
	flags.Var(&includes, "include", "Only scan paths matching this glob (repeatable, e.g. 'src/**')")
	flags.Int64Var(&maxFileSizeBytes, "max-file-size", 0, "Maximum file size in bytes (default: 1MB)")
	flags.StringVar(&githubTempDir, "github-temp-dir", "", "Directory for temporary GitHub clones (default: system temp)")
	flags.StringVar(&configPath, "config", "", "Config file path (default: .tldr.toml in the scanned directory)")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tldr-code [flags] <path-or-github-url> [output-filename]\n")
		fmt.Fprintf(os.Stderr, "       tldr-code serve [flags]\n")
		fmt.Fprintf(os.Stderr, "       tldr-code register <project|user> [directory] [-- server-flags]\n\n")
		fmt.Fprintf(os.Stderr, "Output filename selects the format: .tldr for compact text, anything else JSON.\n\n")
		flags.PrintDefaults()
	}
	flags.Parse(args)

	if flags.NArg() < 1 || flags.NArg() > 2 {
		flags.Usage()
		os.Exit(2)
	}
	target := flags.Arg(0)
	outputFilename := flags.Arg(1)

	logger := setupLogger(logLevel, "")

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

	result, err := g.run(context.Background(), target, outputFilename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("TLDR file generated: %s\n%s\n", result.ArtifactPath, result.Summary.Describe())
}

// setupLogger creates an slog.Logger writing to stderr or a file.
func setupLogger(level string, logFile string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	var writer *os.File
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot open log file %s: %v, falling back to stderr\n", logFile, err)
			writer = os.Stderr
		} else {
			writer = f
		}
	} else {
		writer = os.Stderr
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{Level: logLevel})
	return slog.New(handler)
}

// Package register writes this binary into an MCP client configuration so
// the server can be launched without manual JSON editing. Project scope
// targets <dir>/.mcp.json, user scope targets ~/.claude.json.
package register

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

type serverEntry struct {
	Command string   `json:"command"`
	Args    []string `json:"args,omitempty"`
}

// Run executes the register subcommand. serverName is the MCP server name,
// args is everything after "register" on the command line.
func Run(serverName string, args []string) {
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	directory, serverArgs, err := splitArgs(args[0], args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		printUsage()
		os.Exit(1)
	}

	configPath, err := configPathFor(args[0], directory)
	if err == nil {
		err = registerSelf(configPath, serverName, serverArgs)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Registered %q in %s\n", serverName, configPath)
}

// registerSelf resolves the running binary and upserts its entry.
func registerSelf(configPath string, serverName string, serverArgs []string) error {
	binary, err := currentBinary()
	if err != nil {
		return err
	}
	return upsertServer(configPath, serverName, serveEntry(binary, serverArgs))
}

func printUsage() {
	binaryName := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage:\n")
	fmt.Fprintf(os.Stderr, "  %s register project [directory]  # → <directory>/.mcp.json (default: .)\n", binaryName)
	fmt.Fprintf(os.Stderr, "  %s register user                 # → ~/.claude.json\n", binaryName)
	fmt.Fprintf(os.Stderr, "  %s register project . -- --flag  # forward args to server\n", binaryName)
	fmt.Fprintf(os.Stderr, "  %s register user -- --flag       # forward args to server\n", binaryName)
}

// DeriveServerName turns a binary path into a server name by stripping the
// .exe and -code suffixes, so "tldr-code" registers as "tldr".
func DeriveServerName(binaryPath string) string {
	name := filepath.Base(binaryPath)
	name = strings.TrimSuffix(name, ".exe")
	return strings.TrimSuffix(name, "-code")
}

// splitArgs validates the scope and separates the optional project directory
// from args forwarded to the server. Everything after "--" is forwarded.
func splitArgs(scope string, rest []string) (directory string, serverArgs []string, err error) {
	if scope != "project" && scope != "user" {
		return "", nil, fmt.Errorf("unknown scope %q (must be \"project\" or \"user\")", scope)
	}

	directory = "."
	for i, arg := range rest {
		if arg == "--" {
			serverArgs = rest[i+1:]
			break
		}
		if scope == "project" && i == 0 {
			directory = arg
		}
	}
	return directory, serverArgs, nil
}

func currentBinary() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("getting executable path: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("resolving symlinks for %s: %w", exe, err)
	}
	return resolved, nil
}

func configPathFor(scope string, directory string) (string, error) {
	if scope == "project" {
		absDir, err := filepath.Abs(directory)
		if err != nil {
			return "", fmt.Errorf("resolving directory %s: %w", directory, err)
		}
		return filepath.Join(absDir, ".mcp.json"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(homeDir, ".claude.json"), nil
}

// serveEntry builds the launch entry. The binary is a CLI first, so the
// registered command always carries the serve subcommand. Windows clients
// need the cmd /C indirection.
func serveEntry(binaryPath string, serverArgs []string) serverEntry {
	args := append([]string{"serve"}, serverArgs...)
	if runtime.GOOS == "windows" {
		return serverEntry{
			Command: "cmd",
			Args:    append([]string{"/C", binaryPath}, args...),
		}
	}
	return serverEntry{Command: binaryPath, Args: args}
}

// upsertServer adds or replaces one entry under mcpServers, preserving every
// other key in the file.
func upsertServer(configPath string, serverName string, entry serverEntry) error {
	config, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	servers, ok := config["mcpServers"].(map[string]any)
	if !ok {
		if _, exists := config["mcpServers"]; exists {
			return fmt.Errorf("mcpServers in %s is not an object", configPath)
		}
		servers = map[string]any{}
		config["mcpServers"] = servers
	}
	servers[serverName] = entry

	output, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return writeFileAtomic(configPath, append(output, '\n'))
}

// loadConfig parses an existing config file, or returns an empty document if
// none exists yet.
func loadConfig(configPath string) (map[string]any, error) {
	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", configPath, err)
	}

	var config map[string]any
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing existing config %s: %w", configPath, err)
	}
	return config, nil
}

// writeFileAtomic writes through a temp file in the target directory so a
// crash never leaves a truncated config behind.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".mcp-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp file %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming %s to %s: %w", tmpPath, path, err)
	}
	return nil
}

// Package tldrfile reads and writes TLDR artifacts. Two formats are
// supported: indented JSON (the default, for tooling) and a compact
// line-oriented text format (for pasting into context windows). Both
// round-trip: reading a written artifact yields the summary that was
// written.
package tldrfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/csimoes1/tldr-code/summary"
)

// DefaultFilename is the artifact written when no output name is given.
const DefaultFilename = "tldr.json"

// Format identifies an artifact serialization.
type Format int

const (
	FormatJSON Format = iota
	FormatText
)

// FormatForFilename picks the serialization from the output filename:
// ".tldr" selects the compact text format, everything else JSON.
func FormatForFilename(name string) Format {
	if strings.HasSuffix(name, ".tldr") {
		return FormatText
	}
	return FormatJSON
}

// Marshal serializes a summary in the given format.
func Marshal(s *summary.RepoSummary, format Format) ([]byte, error) {
	if format == FormatText {
		return marshalText(s), nil
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding summary: %w", err)
	}
	return append(data, '\n'), nil
}

// Unmarshal parses an artifact in either format, sniffing the format from
// the content itself.
func Unmarshal(data []byte) (*summary.RepoSummary, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty artifact")
	}
	if trimmed[0] == '{' {
		var s summary.RepoSummary
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, fmt.Errorf("decoding summary: %w", err)
		}
		return &s, nil
	}
	return unmarshalText(data)
}

// WriteFile writes the summary to path, choosing the format from the
// filename. The file is written atomically via a temp file rename.
func WriteFile(path string, s *summary.RepoSummary) error {
	data, err := Marshal(s, FormatForFilename(path))
	if err != nil {
		return err
	}
	return WriteRaw(path, data)
}

// WriteRaw atomically writes already-serialized artifact bytes.
func WriteRaw(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tldr-*")
	if err != nil {
		return fmt.Errorf("creating artifact: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing artifact: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing artifact: %w", err)
	}
	return nil
}

// ReadFile reads an artifact from disk in either format.
func ReadFile(path string) (*summary.RepoSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading artifact: %w", err)
	}
	s, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return s, nil
}

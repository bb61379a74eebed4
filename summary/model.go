package summary

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Version is the tool version recorded in every generated artifact.
const Version = "0.2.0"

// SignatureKind classifies an extracted declaration.
type SignatureKind string

const (
	KindFunction  SignatureKind = "function"
	KindMethod    SignatureKind = "method"
	KindClass     SignatureKind = "class"
	KindStruct    SignatureKind = "struct"
	KindInterface SignatureKind = "interface"
	KindProtocol  SignatureKind = "protocol"
)

// Param is a single parameter of a declaration. Type is empty for
// languages (or positions) where no type is written.
type Param struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// Signature is one extracted declaration. Immutable once created.
type Signature struct {
	Name       string        `json:"name"`
	Kind       SignatureKind `json:"kind"`
	Params     []Param       `json:"params,omitempty"`
	ReturnType string        `json:"returnType,omitempty"`
	// Scope is the dot-joined enclosing scope path (class/struct nesting),
	// empty for top-level declarations.
	Scope string `json:"scope,omitempty"`
	Line  int    `json:"line"`
}

// String renders the signature in the compact "name(a T, b U) R" form used
// by the text artifact and log output.
func (s Signature) String() string {
	var b strings.Builder
	b.WriteString(s.Name)
	b.WriteString("(")
	for i, p := range s.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		if p.Type != "" {
			b.WriteString(" ")
			b.WriteString(p.Type)
		}
	}
	b.WriteString(")")
	if s.ReturnType != "" {
		b.WriteString(" ")
		b.WriteString(s.ReturnType)
	}
	return b.String()
}

// FileSummary holds the signatures found in one source file.
// Signatures appear in source order.
type FileSummary struct {
	Path       string      `json:"path"` // relative to root, forward slashes
	Language   string      `json:"language"`
	Signatures []Signature `json:"signatures"`
}

// SkippedFile records a file that could not be processed, with the reason.
// Skipped files are surfaced in the artifact rather than silently dropped.
type SkippedFile struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// RepoSummary is the root aggregate serialized as the TLDR artifact.
type RepoSummary struct {
	Root        string        `json:"root"`
	GeneratedAt time.Time     `json:"generatedAt"`
	ToolVersion string        `json:"toolVersion"`
	Files       []FileSummary `json:"files"`
	Skipped     []SkippedFile `json:"skipped,omitempty"`
}

// Sort orders files and skip records by path so output is deterministic
// and diffable across runs.
func (r *RepoSummary) Sort() {
	sort.Slice(r.Files, func(i, j int) bool {
		return r.Files[i].Path < r.Files[j].Path
	})
	sort.Slice(r.Skipped, func(i, j int) bool {
		return r.Skipped[i].Path < r.Skipped[j].Path
	})
}

// Counts returns the total number of function-like and class-like
// signatures across all files.
func (r *RepoSummary) Counts() (functions int, classes int) {
	for _, f := range r.Files {
		for _, s := range f.Signatures {
			switch s.Kind {
			case KindFunction, KindMethod:
				functions++
			default:
				classes++
			}
		}
	}
	return functions, classes
}

// LanguageCounts returns a map of language -> file count.
func (r *RepoSummary) LanguageCounts() map[string]int {
	counts := make(map[string]int)
	for _, f := range r.Files {
		counts[f.Language]++
	}
	return counts
}

// SignatureCount returns the total number of signatures across all files.
func (r *RepoSummary) SignatureCount() int {
	var n int
	for _, f := range r.Files {
		n += len(f.Signatures)
	}
	return n
}

// Describe returns the one-paragraph counts header used by the CLI and the
// MCP tool responses.
func (r *RepoSummary) Describe() string {
	functions, classes := r.Counts()
	return fmt.Sprintf("Files analyzed: %d\nTotal functions: %d\nTotal classes: %d\nSkipped files: %d",
		len(r.Files), functions, classes, len(r.Skipped))
}

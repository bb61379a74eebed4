package tldrfile

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/csimoes1/tldr-code/summary"
)

// The text artifact is line oriented. Header lines start with "#", file
// records with "=", skip records with "-". Signature lines belong to the
// preceding file record and carry tab-separated columns:
//
//	# tldr v0.2.0
//	# root /work/repo
//	# generated 2026-08-25T10:00:00Z
//	= cmd/main.go	go
//	function	12		run	args []string	error
//	- vendor/blob.bin	binary file
//
// Columns are kind, line, scope, name, params, return type. Params are
// "name type" pairs joined with ", ". Tabs, newlines and backslashes inside
// a field are backslash-escaped so every summary survives the line format.

func marshalText(s *summary.RepoSummary) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# tldr v%s\n", s.ToolVersion)
	fmt.Fprintf(&b, "# root %s\n", escapeField(s.Root))
	fmt.Fprintf(&b, "# generated %s\n", s.GeneratedAt.Format(time.RFC3339))

	for _, f := range s.Files {
		fmt.Fprintf(&b, "= %s\t%s\n", escapeField(f.Path), escapeField(f.Language))
		for _, sig := range f.Signatures {
			fmt.Fprintf(&b, "%s\t%d\t%s\t%s\t%s\t%s\n",
				sig.Kind, sig.Line, escapeField(sig.Scope), escapeField(sig.Name),
				escapeField(encodeParams(sig.Params)), escapeField(sig.ReturnType))
		}
	}
	for _, sk := range s.Skipped {
		fmt.Fprintf(&b, "- %s\t%s\n", escapeField(sk.Path), escapeField(sk.Reason))
	}
	return b.Bytes()
}

// escapeField protects the record separators. Extracted type text can carry
// literal tabs or newlines (multi-line parameter types in source).
func escapeField(s string) string {
	if !strings.ContainsAny(s, "\\\t\n") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			b.WriteString(`\\`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func unescapeField(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case '\\':
				b.WriteByte('\\')
			case 't':
				b.WriteByte('\t')
			case 'n':
				b.WriteByte('\n')
			default:
				b.WriteByte(s[i])
				b.WriteByte(s[i+1])
			}
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func unmarshalText(data []byte) (*summary.RepoSummary, error) {
	s := &summary.RepoSummary{}
	var current *summary.FileSummary

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "# "):
			if err := parseHeader(s, line[2:]); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}

		case strings.HasPrefix(line, "= "):
			path, language, _ := strings.Cut(line[2:], "\t")
			s.Files = append(s.Files, summary.FileSummary{
				Path:     unescapeField(path),
				Language: unescapeField(language),
			})
			current = &s.Files[len(s.Files)-1]

		case strings.HasPrefix(line, "- "):
			path, reason, _ := strings.Cut(line[2:], "\t")
			s.Skipped = append(s.Skipped, summary.SkippedFile{
				Path:   unescapeField(path),
				Reason: unescapeField(reason),
			})

		default:
			if current == nil {
				return nil, fmt.Errorf("line %d: signature before any file record", lineNo)
			}
			sig, err := parseSignatureLine(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			current.Signatures = append(current.Signatures, sig)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading artifact: %w", err)
	}
	return s, nil
}

func parseHeader(s *summary.RepoSummary, rest string) error {
	key, value, _ := strings.Cut(rest, " ")
	switch key {
	case "tldr":
		s.ToolVersion = strings.TrimPrefix(value, "v")
	case "root":
		s.Root = unescapeField(value)
	case "generated":
		t, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return fmt.Errorf("invalid generated timestamp %q", value)
		}
		s.GeneratedAt = t
	default:
		// Unknown headers are ignored so newer writers stay readable.
	}
	return nil
}

func parseSignatureLine(line string) (summary.Signature, error) {
	cols := strings.Split(line, "\t")
	if len(cols) != 6 {
		return summary.Signature{}, fmt.Errorf("expected 6 columns, got %d", len(cols))
	}
	lineNum, err := strconv.Atoi(cols[1])
	if err != nil {
		return summary.Signature{}, fmt.Errorf("invalid line number %q", cols[1])
	}
	return summary.Signature{
		Kind:       summary.SignatureKind(cols[0]),
		Line:       lineNum,
		Scope:      unescapeField(cols[2]),
		Name:       unescapeField(cols[3]),
		Params:     decodeParams(unescapeField(cols[4])),
		ReturnType: unescapeField(cols[5]),
	}, nil
}

func encodeParams(params []summary.Param) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		if p.Type != "" {
			b.WriteString(" ")
			b.WriteString(p.Type)
		}
	}
	return b.String()
}

// decodeParams reverses encodeParams. Commas nested inside brackets or
// generics belong to a type, not the separator.
func decodeParams(raw string) []summary.Param {
	if raw == "" {
		return nil
	}
	var params []summary.Param
	for _, part := range splitParams(raw) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, typ, found := strings.Cut(part, " ")
		if !found {
			params = append(params, summary.Param{Name: part})
			continue
		}
		params = append(params, summary.Param{Name: name, Type: typ})
	}
	return params
}

func splitParams(raw string) []string {
	var parts []string
	var depth int
	start := 0
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}', '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, raw[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, raw[start:])
	return parts
}

package extract

import (
	"strings"

	"github.com/csimoes1/tldr-code/summary"
)

// ParamStyle selects how a language writes its parameter lists. Parsing is
// text-based on the parameter list node, which keeps it identical across
// grammars with different internal node shapes.
type ParamStyle int

const (
	// ParamNameType: "a int", "xs ...int" (Go).
	ParamNameType ParamStyle = iota
	// ParamTypeName: "int argc", "char **argv", "final String s" (C, C++, Java, C#, Objective-C).
	ParamTypeName
	// ParamNameColonType: "x: int = 1", "self", "with label: Type" (Python, TypeScript, Swift).
	ParamNameColonType
	// ParamNameOnly: "a", "a = 1", "...rest" (JavaScript).
	ParamNameOnly
)

// parseParamList splits a raw parameter list ("(a, b int)") into params.
func parseParamList(raw string, style ParamStyle) []summary.Param {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "(") && strings.HasSuffix(raw, ")") {
		raw = raw[1 : len(raw)-1]
	}
	var params []summary.Param
	for _, part := range splitTopLevel(raw) {
		params = append(params, parseParam(part, style)...)
	}
	return params
}

// parseParam parses a single parameter fragment.
func parseParam(part string, style ParamStyle) []summary.Param {
	part = strings.TrimSpace(part)
	part = stripDefaultValue(part)
	if part == "" {
		return nil
	}

	switch style {
	case ParamNameType:
		fields := strings.Fields(part)
		if len(fields) == 1 {
			// Grouped declaration "a, b int" yields bare names for all but
			// the last entry; the type is attached where it is written.
			return []summary.Param{{Name: fields[0]}}
		}
		return []summary.Param{{Name: fields[0], Type: strings.Join(fields[1:], " ")}}

	case ParamTypeName:
		if part == "void" || part == "..." {
			return nil
		}
		name, typ := splitTrailingIdentifier(part)
		if name == "" {
			// Abstract declarator: a type with no parameter name.
			return []summary.Param{{Name: "_", Type: collapseWhitespace(part)}}
		}
		return []summary.Param{{Name: name, Type: collapseWhitespace(typ)}}

	case ParamNameColonType:
		before, after, found := cutTopLevel(part, ':')
		name := before
		if fields := strings.Fields(before); len(fields) > 0 {
			// Swift argument labels: "with value: Int" -> internal name.
			name = fields[len(fields)-1]
		}
		if !found {
			return []summary.Param{{Name: strings.TrimSpace(name)}}
		}
		return []summary.Param{{Name: strings.TrimSpace(name), Type: collapseWhitespace(after)}}

	default: // ParamNameOnly
		return []summary.Param{{Name: collapseWhitespace(part)}}
	}
}

// collapseWhitespace folds newlines, tabs and space runs into single spaces.
// Signatures are single-line records; a parameter whose type is a multi-line
// object literal must not carry the line breaks into the summary.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// stripDefaultValue removes a top-level "= default" suffix. "=>" in
// function types is not an assignment.
func stripDefaultValue(part string) string {
	var depth int
	for i := 0; i < len(part); i++ {
		switch part[i] {
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}', '>':
			if depth > 0 {
				depth--
			}
		case '=':
			if depth == 0 && (i+1 >= len(part) || part[i+1] != '>') && (i == 0 || part[i-1] != '=') {
				return strings.TrimSpace(part[:i])
			}
		}
	}
	return part
}

// splitTopLevel splits on commas that are not nested inside brackets,
// generics, or string literals.
func splitTopLevel(raw string) []string {
	var parts []string
	var depth int
	var quote byte
	start := 0

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if quote != 0 {
			if c == quote && (i == 0 || raw[i-1] != '\\') {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'', '`':
			quote = c
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
	if strings.TrimSpace(raw[start:]) != "" {
		parts = append(parts, raw[start:])
	}
	return parts
}

// cutTopLevel splits at the first occurrence of sep outside any nesting.
func cutTopLevel(raw string, sep byte) (before, after string, found bool) {
	var depth int
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}', '>':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				return raw[:i], raw[i+1:], true
			}
		}
	}
	return raw, "", false
}

// splitTrailingIdentifier separates "char **argv" into name "argv" and type
// "char **". Returns an empty name when the fragment ends without one.
func splitTrailingIdentifier(part string) (name, typ string) {
	end := len(part)
	i := end
	for i > 0 && isIdentByte(part[i-1]) {
		i--
	}
	if i == end {
		return "", part
	}
	candidate := part[i:end]
	if candidate[0] >= '0' && candidate[0] <= '9' {
		return "", part
	}
	typ = strings.TrimSpace(part[:i])
	if typ == "" {
		// Single bare word: an unnamed typed parameter like "int".
		return "", part
	}
	return candidate, typ
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

package extract

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/csimoes1/tldr-code/summary"
)

// Rule declares how one tree-sitter node kind yields a signature. Profiles
// are pure data; a single walker interprets every rule the same way, so
// adding a language means writing a table, not new traversal code.
type Rule struct {
	Kind summary.SignatureKind

	// NamePath is the sequence of field names leading to the declaration
	// name node. Pointer/reference/parenthesized declarators along the path
	// are unwrapped automatically (C-family grammars).
	NamePath []string

	// ParamsPath leads to the parameter list node; its text is parsed
	// according to the profile's ParamStyle.
	ParamsPath []string

	// ParamNodeKind collects descendant nodes of this kind as individual
	// parameters, for grammars that have no parameter-list field.
	ParamNodeKind string

	// ResultPath leads to the return type node, if the language writes one.
	ResultPath []string

	// ReceiverPath leads to a method receiver (Go); the receiver's type name
	// becomes the signature's scope.
	ReceiverPath []string

	// WhenField restricts the rule to nodes whose named field has the given
	// kind (e.g. a type_spec whose "type" field is a struct_type).
	WhenField map[string]string

	// RequireField restricts the rule to nodes that carry the named field at
	// all, e.g. a body — distinguishes definitions from forward references.
	RequireField string

	// PushScope adds this declaration's name to the scope path of nested
	// declarations.
	PushScope bool

	// ScopeOnly declarations (namespaces) contribute to the scope path but
	// emit no signature themselves.
	ScopeOnly bool
}

// Profile is the complete declarative extraction grammar for one language.
type Profile struct {
	Language   string
	ParamStyle ParamStyle
	Rules      map[string][]Rule
}

// Extract walks the syntax tree and returns all signatures in source order.
func (p *Profile) Extract(root *sitter.Node, source []byte) []summary.Signature {
	w := &walker{profile: p, source: source}
	w.walk(root, nil)
	return w.sigs
}

type scopeEntry struct {
	name string
	kind summary.SignatureKind
}

type walker struct {
	profile *Profile
	source  []byte
	sigs    []summary.Signature
}

func (w *walker) walk(node *sitter.Node, scope []scopeEntry) {
	if node == nil {
		return
	}

	childScope := scope
	if rules, ok := w.profile.Rules[node.Kind()]; ok {
		for _, rule := range rules {
			name, matched := w.match(rule, node)
			if !matched {
				continue
			}
			if rule.ScopeOnly {
				childScope = pushScope(scope, scopeEntry{name, rule.Kind})
				break
			}
			sig := w.build(rule, node, name, scope)
			w.sigs = append(w.sigs, sig)
			if rule.PushScope {
				childScope = pushScope(scope, scopeEntry{sig.Name, sig.Kind})
			}
			break
		}
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		w.walk(node.Child(i), childScope)
	}
}

// match checks a rule's guards and resolves the declaration name.
func (w *walker) match(rule Rule, node *sitter.Node) (string, bool) {
	for field, kind := range rule.WhenField {
		f := node.ChildByFieldName(field)
		if f == nil || f.Kind() != kind {
			return "", false
		}
	}
	if rule.RequireField != "" && node.ChildByFieldName(rule.RequireField) == nil {
		return "", false
	}

	name := collapseWhitespace(w.text(w.resolvePath(node, rule.NamePath)))
	if name == "" {
		return "", false
	}
	return name, true
}

func (w *walker) build(rule Rule, node *sitter.Node, name string, scope []scopeEntry) summary.Signature {
	sig := summary.Signature{
		Name: name,
		Kind: rule.Kind,
		Line: int(node.StartPosition().Row) + 1,
	}

	// A free-function rule firing inside a class-like scope is a method.
	if sig.Kind == summary.KindFunction && len(scope) > 0 && classLike(scope[len(scope)-1].kind) {
		sig.Kind = summary.KindMethod
	}

	if len(rule.ParamsPath) > 0 {
		sig.Params = parseParamList(w.text(w.resolvePath(node, rule.ParamsPath)), w.profile.ParamStyle)
	} else if rule.ParamNodeKind != "" {
		var parts []string
		w.collectParamNodes(node, rule.ParamNodeKind, &parts)
		for _, part := range parts {
			sig.Params = append(sig.Params, parseParam(part, w.profile.ParamStyle)...)
		}
	}

	if len(rule.ResultPath) > 0 {
		sig.ReturnType = cleanResultText(w.text(w.resolvePath(node, rule.ResultPath)))
	}

	if len(rule.ReceiverPath) > 0 {
		if recv := receiverTypeName(w.text(w.resolvePath(node, rule.ReceiverPath))); recv != "" {
			sig.Scope = recv
		}
	}
	if sig.Scope == "" {
		sig.Scope = joinScope(scope)
	}

	return sig
}

// resolvePath descends through field names, unwrapping declarator wrappers
// after each step so `int *foo(void)` resolves the same as `int foo(void)`.
func (w *walker) resolvePath(node *sitter.Node, path []string) *sitter.Node {
	current := node
	for _, field := range path {
		if current == nil {
			return nil
		}
		current = current.ChildByFieldName(field)
		current = unwrapDeclarator(current)
	}
	return current
}

func unwrapDeclarator(node *sitter.Node) *sitter.Node {
	for node != nil {
		switch node.Kind() {
		case "pointer_declarator", "reference_declarator", "parenthesized_declarator":
			inner := node.ChildByFieldName("declarator")
			if inner == nil {
				return node
			}
			node = inner
		default:
			return node
		}
	}
	return node
}

// collectParamNodes gathers descendant nodes of the given kind without
// crossing into nested declarations.
func (w *walker) collectParamNodes(node *sitter.Node, kind string, out *[]string) {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == kind {
			*out = append(*out, w.text(child))
			continue
		}
		if _, isDecl := w.profile.Rules[child.Kind()]; isDecl {
			continue
		}
		w.collectParamNodes(child, kind, out)
	}
}

func (w *walker) text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return string(w.source[node.StartByte():node.EndByte()])
}

func pushScope(scope []scopeEntry, entry scopeEntry) []scopeEntry {
	out := make([]scopeEntry, 0, len(scope)+1)
	out = append(out, scope...)
	return append(out, entry)
}

func joinScope(scope []scopeEntry) string {
	if len(scope) == 0 {
		return ""
	}
	names := make([]string, len(scope))
	for i, entry := range scope {
		names[i] = entry.name
	}
	return strings.Join(names, ".")
}

func classLike(kind summary.SignatureKind) bool {
	switch kind {
	case summary.KindClass, summary.KindStruct, summary.KindInterface, summary.KindProtocol:
		return true
	}
	return false
}

// cleanResultText strips the annotation punctuation some grammars include in
// the return type node (": number", "-> int") and flattens multi-line types.
func cleanResultText(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "->")
	text = strings.TrimPrefix(text, ":")
	return collapseWhitespace(text)
}

// receiverTypeName extracts the bare type name from a Go receiver list like
// "(s *Server)".
func receiverTypeName(text string) string {
	text = strings.Trim(strings.TrimSpace(text), "()")
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	name := fields[len(fields)-1]
	name = strings.TrimLeft(name, "*")
	// Drop generic type arguments on the receiver: "Set[T]" -> "Set"
	if idx := strings.IndexByte(name, '['); idx > 0 {
		name = name[:idx]
	}
	return name
}

package extract

import (
	forest_objc "github.com/alexaandru/go-sitter-forest/objc"
	forest_swift "github.com/alexaandru/go-sitter-forest/swift"
	sitter "github.com/tree-sitter/go-tree-sitter"
	ts_c "github.com/tree-sitter/tree-sitter-c/bindings/go"
	ts_csharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
	ts_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	ts_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	ts_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// loadGrammars returns the compiled-in tree-sitter grammars keyed by the
// grammar tags the language detector produces.
func loadGrammars() map[string]*sitter.Language {
	return map[string]*sitter.Language{
		"python":     sitter.NewLanguage(ts_python.Language()),
		"javascript": sitter.NewLanguage(ts_javascript.Language()),
		"typescript": sitter.NewLanguage(ts_typescript.LanguageTypescript()),
		"tsx":        sitter.NewLanguage(ts_typescript.LanguageTSX()),
		"java":       sitter.NewLanguage(ts_java.Language()),
		"c":          sitter.NewLanguage(ts_c.Language()),
		"cpp":        sitter.NewLanguage(ts_cpp.Language()),
		"csharp":     sitter.NewLanguage(ts_csharp.Language()),
		"go":         sitter.NewLanguage(ts_go.Language()),
		"swift":      sitter.NewLanguage(forest_swift.GetLanguage()),
		"objc":       sitter.NewLanguage(forest_objc.GetLanguage()),
	}
}

package extract

import (
	"errors"
	"fmt"
	"sort"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/csimoes1/tldr-code/summary"
)

// ErrUnsupportedLanguage is returned for files whose language has no
// registered grammar.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// ErrMalformedSource is returned when a file is so broken that no
// declarations could be recovered from it.
var ErrMalformedSource = errors.New("syntax errors, no declarations recovered")

// Extractor turns source files into signature summaries. It is safe for
// concurrent use: each Extract call creates its own tree-sitter parser.
type Extractor struct {
	grammars map[string]*sitter.Language
	profiles map[string]*Profile
}

// NewExtractor creates an extractor with all compiled-in grammars and their
// default profiles.
func NewExtractor() *Extractor {
	return &Extractor{
		grammars: loadGrammars(),
		profiles: defaultProfiles(),
	}
}

// Supports reports whether the extractor has a grammar for the language tag.
func (e *Extractor) Supports(lang string) bool {
	_, ok := e.grammars[lang]
	return ok
}

// Languages returns the sorted list of supported language tags.
func (e *Extractor) Languages() []string {
	langs := make([]string, 0, len(e.grammars))
	for lang := range e.grammars {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Extract parses one file and returns its signature summary. Signatures are
// in source order. Partial parses are tolerated: as long as some
// declarations survive the syntax errors they are returned. A file that
// yields nothing and has errors is reported as malformed.
func (e *Extractor) Extract(lang string, relativePath string, content []byte) (*summary.FileSummary, error) {
	grammar, ok := e.grammars[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, lang)
	}
	profile := e.profiles[lang]

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar)

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, fmt.Errorf("parsing %s: parser returned no tree", relativePath)
	}
	defer tree.Close()

	root := tree.RootNode()
	signatures := profile.Extract(root, content)

	if len(signatures) == 0 && root.HasError() {
		return nil, ErrMalformedSource
	}

	return &summary.FileSummary{
		Path:       relativePath,
		Language:   lang,
		Signatures: signatures,
	}, nil
}

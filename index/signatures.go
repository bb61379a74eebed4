package index

import (
	"fmt"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/csimoes1/tldr-code/summary"
)

// SignatureIndex provides search over extracted signatures using a Bleve
// in-memory index.
type SignatureIndex struct {
	mu    sync.RWMutex
	index bleve.Index
	// entries stores the full signature for result rendering; Bleve holds
	// only the searchable fields.
	entries map[string]SignatureEntry // key: document ID
	byPath  map[string][]string       // key: relative path, value: document IDs
}

// SignatureEntry is one searchable signature with its file location.
type SignatureEntry struct {
	Path      string
	Language  string
	Signature summary.Signature
}

// NewSignatureIndex creates a new in-memory Bleve signature index.
func NewSignatureIndex() (*SignatureIndex, error) {
	bleveIndex, err := bleve.NewMemOnly(buildSignatureMapping())
	if err != nil {
		return nil, fmt.Errorf("creating bleve index: %w", err)
	}
	return &SignatureIndex{
		index:   bleveIndex,
		entries: make(map[string]SignatureEntry),
		byPath:  make(map[string][]string),
	}, nil
}

// signatureDocument is the document structure stored in Bleve.
type signatureDocument struct {
	Name     string `json:"name"`
	Scope    string `json:"scope"`
	Kind     string `json:"kind"`
	Language string `json:"language"`
	Path     string `json:"path"`
}

func buildSignatureMapping() *mapping.IndexMappingImpl {
	indexMapping := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()

	nameFieldMapping := bleve.NewTextFieldMapping()
	nameFieldMapping.Store = false
	nameFieldMapping.IncludeInAll = true
	docMapping.AddFieldMappingsAt("name", nameFieldMapping)

	scopeFieldMapping := bleve.NewTextFieldMapping()
	scopeFieldMapping.Store = false
	scopeFieldMapping.IncludeInAll = true
	docMapping.AddFieldMappingsAt("scope", scopeFieldMapping)

	kindFieldMapping := bleve.NewKeywordFieldMapping()
	kindFieldMapping.Store = false
	kindFieldMapping.IncludeInAll = false
	docMapping.AddFieldMappingsAt("kind", kindFieldMapping)

	langFieldMapping := bleve.NewKeywordFieldMapping()
	langFieldMapping.Store = false
	langFieldMapping.IncludeInAll = false
	docMapping.AddFieldMappingsAt("language", langFieldMapping)

	pathFieldMapping := bleve.NewTextFieldMapping()
	pathFieldMapping.Store = false
	pathFieldMapping.IncludeInAll = false
	docMapping.AddFieldMappingsAt("path", pathFieldMapping)

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

func documentID(path string, sig summary.Signature) string {
	return fmt.Sprintf("%s:%d:%s", path, sig.Line, sig.Name)
}

// IndexFile replaces the indexed signatures for one file.
func (si *SignatureIndex) IndexFile(file summary.FileSummary) error {
	si.mu.Lock()
	defer si.mu.Unlock()

	if err := si.removeFileLocked(file.Path); err != nil {
		return err
	}

	batch := si.index.NewBatch()
	ids := make([]string, 0, len(file.Signatures))
	for _, sig := range file.Signatures {
		id := documentID(file.Path, sig)
		doc := signatureDocument{
			Name:     sig.Name,
			Scope:    sig.Scope,
			Kind:     string(sig.Kind),
			Language: file.Language,
			Path:     file.Path,
		}
		if err := batch.Index(id, doc); err != nil {
			return fmt.Errorf("indexing signature %s: %w", id, err)
		}
		si.entries[id] = SignatureEntry{Path: file.Path, Language: file.Language, Signature: sig}
		ids = append(ids, id)
	}
	if err := si.index.Batch(batch); err != nil {
		return fmt.Errorf("indexing file %s: %w", file.Path, err)
	}
	si.byPath[file.Path] = ids
	return nil
}

// RemoveFile removes a file's signatures from the index.
func (si *SignatureIndex) RemoveFile(relativePath string) error {
	si.mu.Lock()
	defer si.mu.Unlock()
	return si.removeFileLocked(relativePath)
}

func (si *SignatureIndex) removeFileLocked(relativePath string) error {
	for _, id := range si.byPath[relativePath] {
		delete(si.entries, id)
		if err := si.index.Delete(id); err != nil {
			return fmt.Errorf("removing signature %s: %w", id, err)
		}
	}
	delete(si.byPath, relativePath)
	return nil
}

// Rebuild replaces the whole index with the summary's signatures.
func (si *SignatureIndex) Rebuild(s *summary.RepoSummary) error {
	si.mu.Lock()
	if err := si.clearLocked(); err != nil {
		si.mu.Unlock()
		return err
	}
	si.mu.Unlock()

	for _, f := range s.Files {
		if err := si.IndexFile(f); err != nil {
			return err
		}
	}
	return nil
}

// SearchOptions configures a signature search.
type SearchOptions struct {
	Query      string
	Language   string // exact language tag filter
	Kind       string // exact signature kind filter
	FileGlob   string // doublestar pattern over relative paths
	MaxResults int
}

// Search finds signatures matching the query and filters. Results come back
// in Bleve relevance order.
func (si *SignatureIndex) Search(options SearchOptions) ([]SignatureEntry, int, error) {
	si.mu.RLock()
	defer si.mu.RUnlock()

	if options.MaxResults <= 0 {
		options.MaxResults = 50
	}

	searchRequest := bleve.NewSearchRequest(buildSignatureQuery(options))
	// Oversized because glob filtering happens after the Bleve query.
	searchRequest.Size = options.MaxResults * 5

	searchResults, err := si.index.Search(searchRequest)
	if err != nil {
		return nil, 0, fmt.Errorf("searching index: %w", err)
	}

	var results []SignatureEntry
	total := 0
	for _, hit := range searchResults.Hits {
		entry, ok := si.entries[hit.ID]
		if !ok {
			continue
		}
		if options.FileGlob != "" {
			matched, err := doublestar.Match(options.FileGlob, entry.Path)
			if err != nil {
				return nil, 0, fmt.Errorf("invalid file glob %q: %w", options.FileGlob, err)
			}
			if !matched {
				continue
			}
		}
		total++
		if len(results) < options.MaxResults {
			results = append(results, entry)
		}
	}

	return results, total, nil
}

// buildSignatureQuery combines the free-text query with the exact filters.
func buildSignatureQuery(options SearchOptions) query.Query {
	var parts []query.Query

	queryString := strings.TrimSpace(options.Query)
	switch {
	case queryString == "" || queryString == "*":
		parts = append(parts, bleve.NewMatchAllQuery())
	case strings.ContainsAny(queryString, "*?"):
		wildcard := bleve.NewWildcardQuery(strings.ToLower(queryString))
		parts = append(parts, wildcard)
	default:
		parts = append(parts, bleve.NewMatchQuery(queryString))
	}

	if options.Kind != "" {
		term := bleve.NewTermQuery(options.Kind)
		term.SetField("kind")
		parts = append(parts, term)
	}
	if options.Language != "" {
		term := bleve.NewTermQuery(options.Language)
		term.SetField("language")
		parts = append(parts, term)
	}

	if len(parts) == 1 {
		return parts[0]
	}
	return bleve.NewConjunctionQuery(parts...)
}

// DocumentCount returns the number of indexed signatures.
func (si *SignatureIndex) DocumentCount() uint64 {
	si.mu.RLock()
	defer si.mu.RUnlock()
	count, _ := si.index.DocCount()
	return count
}

// Close closes the Bleve index.
func (si *SignatureIndex) Close() error {
	si.mu.Lock()
	defer si.mu.Unlock()
	return si.index.Close()
}

// Clear removes all documents and recreates the index.
func (si *SignatureIndex) Clear() error {
	si.mu.Lock()
	defer si.mu.Unlock()
	return si.clearLocked()
}

func (si *SignatureIndex) clearLocked() error {
	if err := si.index.Close(); err != nil {
		return fmt.Errorf("closing old index: %w", err)
	}
	newIndex, err := bleve.NewMemOnly(buildSignatureMapping())
	if err != nil {
		return fmt.Errorf("creating new index: %w", err)
	}
	si.index = newIndex
	si.entries = make(map[string]SignatureEntry)
	si.byPath = make(map[string][]string)
	return nil
}

package request

import (
	"fmt"
	"strings"
)

// Generation parameters applied to every query. They are policy, not caller input.
const (
	MaxUsedSearchResults = 10
	PromptName           = "vectara-summary-ext-v1.3.0"
	ResponseLanguage     = "eng"
)

// Request is a validated query against a single corpus.
type Request struct {
	query          string
	corpusKey      string
	metadataFilter string
}

// New validates a query request. metadataFilter may be empty.
func New(query, corpusKey, metadataFilter string) (Request, error) {
	if strings.TrimSpace(query) == "" {
		return Request{}, fmt.Errorf("query is required")
	}
	if corpusKey == "" {
		return Request{}, fmt.Errorf("corpus key is required")
	}
	return Request{query: query, corpusKey: corpusKey, metadataFilter: metadataFilter}, nil
}

// Query returns the free-text question.
func (r Request) Query() string { return r.query }

// CorpusKey returns the target corpus.
func (r Request) CorpusKey() string { return r.corpusKey }

// MetadataFilter returns the canonical filter string, empty when unfiltered.
func (r Request) MetadataFilter() string { return r.metadataFilter }

// HasFilter reports whether a metadata filter is attached.
func (r Request) HasFilter() bool { return r.metadataFilter != "" }

// MaxUsedSearchResults returns the result cap fed into summarization.
func (r Request) MaxUsedSearchResults() int { return MaxUsedSearchResults }

// PromptName returns the summarization prompt identifier.
func (r Request) PromptName() string { return PromptName }

// ResponseLanguage returns the summary language code.
func (r Request) ResponseLanguage() string { return ResponseLanguage }

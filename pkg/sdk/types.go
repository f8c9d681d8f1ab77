package productindex

import (
	"github.com/kailas-cloud/productindex/internal/domain"
	"github.com/kailas-cloud/productindex/internal/domain/search/filter"
	queryuc "github.com/kailas-cloud/productindex/internal/usecase/query"
	syncuc "github.com/kailas-cloud/productindex/internal/usecase/sync"
)

// Mode selects how Open resolves the corpus.
type Mode = domain.Mode

// Corpus resolution modes.
const (
	// ModeRecreate deletes every corpus with the configured name and creates a fresh one.
	ModeRecreate = domain.ModeRecreate
	// ModeLookup reuses the single existing corpus with the configured name.
	ModeLookup = domain.ModeLookup
)

// Session identifies the corpus resolved by Open.
type Session struct {
	CorpusKey string
	Mode      Mode
}

// SyncReport summarizes an uploaded directory tree.
type SyncReport struct {
	Manufacturers int
	Products      int
	Files         int
}

// Result is one ranked search hit.
type Result struct {
	DocumentID string
	Metadata   map[string]any
	Text       string
	Score      float64
}

// Answer is the result of Query.
type Answer struct {
	// Filter is the metadata filter expression sent with the query, empty when unfiltered.
	Filter  string
	Results []Result
	Summary string
}

// QueryOption narrows a query to a manufacturer or product.
type QueryOption func(filter.Constraints)

// WithManufacturer restricts results to documents of one manufacturer.
func WithManufacturer(name string) QueryOption {
	return func(c filter.Constraints) {
		c[domain.AttrManufacturer] = name
	}
}

// WithProduct restricts results to documents of one product.
func WithProduct(name string) QueryOption {
	return func(c filter.Constraints) {
		c[domain.AttrProduct] = name
	}
}

func fromSession(s domain.Session) Session {
	return Session{CorpusKey: s.CorpusKey, Mode: s.Mode}
}

func fromSyncReport(r syncuc.Report) SyncReport {
	return SyncReport{Manufacturers: r.Manufacturers, Products: r.Products, Files: r.Files}
}

func fromAnswer(a queryuc.Answer) Answer {
	results := make([]Result, len(a.Results))
	for i, r := range a.Results {
		results[i] = Result{
			DocumentID: r.DocumentID,
			Metadata:   r.Metadata,
			Text:       r.Text,
			Score:      r.Score,
		}
	}
	return Answer{Filter: a.Filter, Results: results, Summary: a.Summary}
}

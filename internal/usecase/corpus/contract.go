package corpus

import (
	"context"

	domcorpus "github.com/kailas-cloud/productindex/internal/domain/corpus"
)

// Lister lists corpora page by page.
type Lister interface {
	ListCorpora(ctx context.Context, q domcorpus.ListQuery) (domcorpus.Page, error)
}

// Remote defines the corpus management contract of the search service.
type Remote interface {
	Lister
	CreateCorpus(ctx context.Context, def domcorpus.Definition) (domcorpus.Corpus, error)
	DeleteCorpus(ctx context.Context, key string) error
}

// Settler waits until a deleted corpus is gone from the remote service.
type Settler interface {
	Settle(ctx context.Context, name, key string) error
}

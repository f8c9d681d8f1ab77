package query

import (
	"context"

	"github.com/kailas-cloud/productindex/internal/domain/search/request"
	"github.com/kailas-cloud/productindex/internal/domain/search/result"
)

// Querier submits a search with summary generation.
type Querier interface {
	Query(ctx context.Context, req request.Request) (result.Response, error)
}

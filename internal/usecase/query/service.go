// Package query runs filtered questions against the session corpus.
package query

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/productindex/internal/domain"
	"github.com/kailas-cloud/productindex/internal/domain/search/filter"
	"github.com/kailas-cloud/productindex/internal/domain/search/request"
)

// displayKeys are the only metadata keys shown to callers.
var displayKeys = []string{domain.AttrManufacturer, domain.AttrProduct}

// DisplayResult is a ranked hit reduced to what callers render.
type DisplayResult struct {
	DocumentID string         `json:"document_id"`
	Metadata   map[string]any `json:"metadata"`
	Text       string         `json:"text"`
	Score      float64        `json:"score"`
}

// Answer is the outcome of a query: ranked results followed by the summary.
type Answer struct {
	Filter  string          `json:"filter,omitempty"`
	Results []DisplayResult `json:"results"`
	Summary string          `json:"summary"`
}

// Service builds filters and submits queries.
type Service struct {
	querier Querier
	logger  *zap.Logger
}

// New creates a query service.
func New(querier Querier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{querier: querier, logger: logger}
}

// Query asks text against the session corpus, narrowed by constraints.
func (s *Service) Query(ctx context.Context, session domain.Session, text string, constraints filter.Constraints) (Answer, error) {
	if !session.Valid() {
		return Answer{}, &domain.QueryError{Query: text, Err: domain.ErrNoSession}
	}

	if filter.HasUnsafeValue(constraints) {
		// Values are not escaped; a quote yields a filter the service will reject.
		s.logger.Warn("filter value contains a single quote", zap.Any("constraints", constraints))
	}
	expr := filter.Build(constraints)

	req, err := request.New(text, session.CorpusKey, expr)
	if err != nil {
		return Answer{}, &domain.QueryError{Query: text, Err: err}
	}

	s.logger.Info("submitting query",
		zap.String("corpus_key", session.CorpusKey),
		zap.String("filter", expr),
	)
	resp, err := s.querier.Query(ctx, req)
	if err != nil {
		return Answer{}, &domain.QueryError{Query: text, Err: err}
	}

	ans := Answer{
		Filter:  expr,
		Results: make([]DisplayResult, len(resp.Results)),
		Summary: resp.Summary,
	}
	for i, r := range resp.Results {
		ans.Results[i] = DisplayResult{
			DocumentID: r.DocumentID(),
			Metadata:   r.Pick(displayKeys...),
			Text:       r.Text(),
			Score:      r.Score(),
		}
	}
	return ans, nil
}

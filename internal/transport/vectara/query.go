package vectara

import (
	"context"
	"net/http"

	"github.com/kailas-cloud/productindex/internal/domain/search/request"
	"github.com/kailas-cloud/productindex/internal/domain/search/result"
)

// Query runs a search with summary generation against a single corpus.
func (c *Client) Query(ctx context.Context, req request.Request) (result.Response, error) {
	body := queryRequest{
		Query: req.Query(),
		Search: searchCorporaParameters{
			Corpora: []keyedSearchCorpus{{
				CorpusKey:      req.CorpusKey(),
				MetadataFilter: req.MetadataFilter(),
			}},
		},
		Generation: generationParameters{
			PromptName:           req.PromptName(),
			MaxUsedSearchResults: req.MaxUsedSearchResults(),
			ResponseLanguage:     req.ResponseLanguage(),
		},
	}

	var resp queryResponse
	if err := c.doJSON(ctx, "query", http.MethodPost, "/v2/query", body, &resp); err != nil {
		return result.Response{}, err
	}

	out := result.Response{
		Results: make([]result.Result, len(resp.SearchResults)),
		Summary: resp.Summary,
	}
	for i, r := range resp.SearchResults {
		out.Results[i] = result.New(r.DocumentID, r.Text, r.Score, r.DocumentMetadata)
	}
	return out, nil
}

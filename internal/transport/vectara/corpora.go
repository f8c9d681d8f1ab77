package vectara

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/kailas-cloud/productindex/internal/domain/corpus"
)

// ListCorpora lists one page of corpora.
func (c *Client) ListCorpora(ctx context.Context, p corpus.ListQuery) (corpus.Page, error) {
	q := url.Values{}
	if p.Limit > 0 {
		if err := addQueryParam(q, "limit", p.Limit); err != nil {
			return corpus.Page{}, err
		}
	}
	if p.NameFilter != "" {
		if err := addQueryParam(q, "filter", p.NameFilter); err != nil {
			return corpus.Page{}, err
		}
	}
	if p.PageKey != "" {
		if err := addQueryParam(q, "page_key", p.PageKey); err != nil {
			return corpus.Page{}, err
		}
	}

	var resp listCorporaResponse
	if err := c.do(ctx, call{op: "list_corpora", method: http.MethodGet, path: "/v2/corpora", query: q}, &resp); err != nil {
		return corpus.Page{}, err
	}

	page := corpus.Page{
		Corpora:     make([]corpus.Corpus, len(resp.Corpora)),
		NextPageKey: resp.Metadata.PageKey,
	}
	for i, dto := range resp.Corpora {
		page.Corpora[i] = corpusFromDTO(dto)
	}
	return page, nil
}

// CreateCorpus creates a corpus from a validated definition.
func (c *Client) CreateCorpus(ctx context.Context, def corpus.Definition) (corpus.Corpus, error) {
	req := corpusDTO{
		Key:              def.Key(),
		Name:             def.Name(),
		Description:      def.Description(),
		FilterAttributes: make([]filterAttributeDTO, len(def.Attributes())),
	}
	for i, a := range def.Attributes() {
		req.FilterAttributes[i] = filterAttributeDTO{
			Name:        a.Name(),
			Description: a.Description(),
			Level:       string(a.Level()),
			Type:        string(a.Type()),
			Indexed:     a.Indexed(),
		}
	}

	var resp corpusDTO
	if err := c.doJSON(ctx, "create_corpus", http.MethodPost, "/v2/corpora", req, &resp); err != nil {
		return corpus.Corpus{}, err
	}
	return corpusFromDTO(resp), nil
}

// DeleteCorpus deletes a corpus by key.
func (c *Client) DeleteCorpus(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("vectara delete_corpus: empty corpus key")
	}
	return c.do(ctx, call{
		op:     "delete_corpus",
		method: http.MethodDelete,
		path:   "/v2/corpora/" + url.PathEscape(key),
	}, nil)
}

// Ping checks API reachability and credentials with a minimal listing.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.ListCorpora(ctx, corpus.ListQuery{Limit: 1}); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

func corpusFromDTO(dto corpusDTO) corpus.Corpus {
	attrs := make([]corpus.FilterAttribute, len(dto.FilterAttributes))
	for i, a := range dto.FilterAttributes {
		attrs[i] = corpus.ReconstructAttribute(
			a.Name, a.Description, corpus.Level(a.Level), corpus.Type(a.Type), a.Indexed,
		)
	}
	return corpus.Corpus{
		Key:              dto.Key,
		Name:             dto.Name,
		Description:      dto.Description,
		FilterAttributes: attrs,
	}
}

package vectara

// Wire formats of the Vectara REST API v2.

type filterAttributeDTO struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Level       string `json:"level"`
	Type        string `json:"type"`
	Indexed     bool   `json:"indexed"`
}

type corpusDTO struct {
	ID               string               `json:"id,omitempty"`
	Key              string               `json:"key"`
	Name             string               `json:"name"`
	Description      string               `json:"description,omitempty"`
	FilterAttributes []filterAttributeDTO `json:"filter_attributes,omitempty"`
}

type listCorporaResponse struct {
	Corpora  []corpusDTO `json:"corpora"`
	Metadata struct {
		PageKey string `json:"page_key"`
	} `json:"metadata"`
}

type documentDTO struct {
	ID       string         `json:"id"`
	Metadata map[string]any `json:"metadata"`
}

type keyedSearchCorpus struct {
	CorpusKey      string `json:"corpus_key"`
	MetadataFilter string `json:"metadata_filter,omitempty"`
}

type searchCorporaParameters struct {
	Corpora []keyedSearchCorpus `json:"corpora"`
}

type generationParameters struct {
	PromptName           string `json:"prompt_name"`
	MaxUsedSearchResults int    `json:"max_used_search_results"`
	ResponseLanguage     string `json:"response_language"`
}

type queryRequest struct {
	Query      string                  `json:"query"`
	Search     searchCorporaParameters `json:"search"`
	Generation generationParameters    `json:"generation"`
}

type searchResultDTO struct {
	DocumentID       string         `json:"document_id"`
	Text             string         `json:"text"`
	Score            float64        `json:"score"`
	DocumentMetadata map[string]any `json:"document_metadata"`
	PartMetadata     map[string]any `json:"part_metadata"`
}

type queryResponse struct {
	Summary       string            `json:"summary"`
	SearchResults []searchResultDTO `json:"search_results"`
}

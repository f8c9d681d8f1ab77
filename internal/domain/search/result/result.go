package result

// Result is a single ranked search hit.
type Result struct {
	documentID string
	text       string
	score      float64
	metadata   map[string]any
}

// New creates a search result.
func New(documentID, text string, score float64, metadata map[string]any) Result {
	return Result{documentID: documentID, text: text, score: score, metadata: metadata}
}

// DocumentID returns the document identifier.
func (r Result) DocumentID() string { return r.documentID }

// Text returns the matched snippet.
func (r Result) Text() string { return r.text }

// Score returns the relevance score.
func (r Result) Score() float64 { return r.score }

// Metadata returns the full document metadata.
func (r Result) Metadata() map[string]any { return r.metadata }

// Pick returns a copy of the metadata restricted to keys. Missing keys are omitted.
func (r Result) Pick(keys ...string) map[string]any {
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		if v, ok := r.metadata[k]; ok {
			out[k] = v
		}
	}
	return out
}

// Response is the ranked results of a query plus the generated summary.
type Response struct {
	Results []Result
	Summary string
}

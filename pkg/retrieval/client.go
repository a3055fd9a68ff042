// Package retrieval defines the vector-search collaborator interface the
// pipeline consumes, plus an HTTP adapter for JSON search services. The
// engine only ever calls Search with an enriched query string; index
// management, embedding, and storage belong to the external service.
package retrieval

import "context"

// Passage is a single retrieved knowledge-base passage.
type Passage struct {
	// Metadata carries source attribution (path, title, url, ...).
	Metadata map[string]interface{} `json:"metadata"`

	// Content is the passage text.
	Content string `json:"content"`

	// Score is the retrieval relevance score, higher is more relevant.
	Score float64 `json:"score"`
}

// Client is the external vector-search service.
type Client interface {
	// Search returns up to topK passages relevant to query, most relevant
	// first.
	Search(ctx context.Context, query string, topK int) ([]Passage, error)
}

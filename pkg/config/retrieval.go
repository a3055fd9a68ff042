package config

import (
	"fmt"
	"sync"
)

const (
	// SectionIDRetrieval is the identifier for the retrieval settings section
	SectionIDRetrieval = "retrieval"

	// DefaultTopK is how many passages are requested per search.
	DefaultTopK = 5
)

// RetrievalSection manages vector-search service settings.
type RetrievalSection struct {
	Endpoint string
	APIKey   string
	TopK     int
	mu       sync.RWMutex
}

// NewRetrievalSection creates a retrieval section with default settings.
func NewRetrievalSection() *RetrievalSection {
	return &RetrievalSection{TopK: DefaultTopK}
}

// ID returns the section identifier.
func (s *RetrievalSection) ID() string {
	return SectionIDRetrieval
}

// Title returns the section title.
func (s *RetrievalSection) Title() string {
	return "Retrieval Settings"
}

// Description returns the section description.
func (s *RetrievalSection) Description() string {
	return "Configure the external vector-search service: endpoint URL, optional API key, and how many passages to request per query."
}

// Data returns the current configuration data.
func (s *RetrievalSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]interface{}{
		"endpoint": s.Endpoint,
		"api_key":  s.APIKey,
		"top_k":    s.TopK,
	}
}

// SetData updates the configuration from the provided data.
func (s *RetrievalSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if endpoint, ok := data["endpoint"].(string); ok {
		s.Endpoint = endpoint
	}
	if apiKey, ok := data["api_key"].(string); ok {
		s.APIKey = apiKey
	}
	if topK, ok := toInt(data["top_k"]); ok {
		s.TopK = topK
	}
	return nil
}

// Validate validates the current configuration.
func (s *RetrievalSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.TopK < 1 {
		return fmt.Errorf("top_k must be at least 1, got %d", s.TopK)
	}
	return nil
}

// Reset resets the section to default configuration.
func (s *RetrievalSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Endpoint = ""
	s.APIKey = ""
	s.TopK = DefaultTopK
}

// Package llm provides abstractions for LLM provider integration.
//
// Providers handle API communication with LLM services and return simple
// StreamChunk instances. This keeps providers focused on transport concerns:
// the engine layer owns prompt construction, memory handling, and response
// shaping, so providers stay reusable in non-pipeline contexts and testable
// in isolation.
package llm

import (
	"context"

	"github.com/entrhq/recall/pkg/types"
)

// ModelCloner is an optional interface that LLM providers can implement to
// support lightweight per-call model overrides without constructing a full
// second provider. The returned provider shares credentials and transport
// with the original but directs calls to the given model. The engine uses it
// to run summarization on a cheaper model than the answer path.
type ModelCloner interface {
	CloneWithModel(model string) Provider
}

// ModelInfo describes the model behind a provider.
type ModelInfo struct {
	// Metadata holds provider-specific details (e.g. a non-default base URL).
	Metadata map[string]interface{}

	// Provider names the backing service ("openai", ...).
	Provider string

	// Name is the model identifier.
	Name string

	// MaxTokens is the model's context window size, when known.
	MaxTokens int

	// SupportsStreaming reports whether StreamCompletion is implemented
	// natively rather than emulated.
	SupportsStreaming bool
}

// Provider defines the interface for LLM integrations.
type Provider interface {
	// StreamCompletion sends messages to the LLM and streams back response
	// chunks.
	//
	// The returned channel emits StreamChunk instances:
	// - First chunk typically has Role set (e.g., "assistant")
	// - Subsequent chunks contain Content deltas
	// - Final chunk has Finished=true
	// - Error chunks have Error set
	//
	// The channel is closed when streaming completes or an error occurs;
	// callers should continue reading until it is closed. An error return
	// means streaming could not be initiated at all.
	StreamCompletion(ctx context.Context, messages []*types.Message) (<-chan *StreamChunk, error)

	// Complete sends messages to the LLM and returns the full response.
	// It is the non-streaming convenience used for both the final answer
	// and summarization compression calls.
	Complete(ctx context.Context, messages []*types.Message) (*types.Message, error)

	// GetModelInfo returns information about the model being used.
	GetModelInfo() *ModelInfo

	// GetModel returns the model name being used.
	GetModel() string

	// GetBaseURL returns the base URL being used for API requests.
	GetBaseURL() string
}

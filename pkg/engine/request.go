package engine

import (
	"errors"
	"fmt"

	"github.com/entrhq/recall/pkg/retrieval"
	"github.com/entrhq/recall/pkg/types"
)

// ErrEmptyQuestion is returned when a request carries no question.
var ErrEmptyQuestion = errors.New("question must not be empty")

// Request is one conversation turn as received from the HTTP layer. The
// history and summary are the client's replayed state; the server holds
// nothing between calls.
type Request struct {
	// Question is the current user question.
	Question string `json:"question"`

	// History is the ordered conversation history, oldest first.
	History []*types.Message `json:"conversation_history"`

	// Summary is the summary produced by a prior response, if any.
	Summary *types.ConversationSummary `json:"summary,omitempty"`

	// MaxHistoryTokens overrides the configured history token budget when
	// positive.
	MaxHistoryTokens int `json:"max_history_tokens,omitempty"`

	// EnableSummarization gates the compression path. NewRequest defaults
	// it to true.
	EnableSummarization bool `json:"enable_summarization"`
}

// NewRequest creates a request with summarization enabled.
func NewRequest(question string, history []*types.Message) *Request {
	return &Request{
		Question:            question,
		History:             history,
		EnableSummarization: true,
	}
}

// validate rejects malformed input at the boundary. A malformed request
// indicates a caller bug and fails the request rather than degrading.
func (r *Request) validate() error {
	if r == nil {
		return fmt.Errorf("request is nil")
	}
	if r.Question == "" {
		return ErrEmptyQuestion
	}
	return types.ValidateHistory(r.History)
}

// Response is the pipeline's output for one turn. The caller stores Summary
// client-side and replays it on the next request.
type Response struct {
	// Answer is the LLM's answer to the question.
	Answer string `json:"answer"`

	// Sources are the retrieved passages the answer drew on, passed through
	// from the retrieval collaborator.
	Sources []retrieval.Passage `json:"sources"`

	// MemoryStats is the diagnostic snapshot of this turn's memory handling.
	MemoryStats types.MemoryStats `json:"memory_stats"`

	// Summary is the current conversation summary, nil until compression
	// first triggers.
	Summary *types.ConversationSummary `json:"summary,omitempty"`

	// BudgetExceeded flags the last-resort case where the prompt shipped
	// over budget because the system prompt and question alone exceeded it.
	BudgetExceeded bool `json:"budget_exceeded,omitempty"`
}

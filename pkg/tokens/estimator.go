// Package tokens provides token-count estimation for budget decisions.
//
// The default estimator is a character-ratio heuristic: it needs no network
// access and no tokenizer data files, and is accurate enough to gate the
// summarization trigger and the assembly shrink loop. Callers who need exact
// counts for a specific model can plug in the tiktoken-backed estimator.
package tokens

import (
	"github.com/entrhq/recall/pkg/types"
)

const (
	// defaultCharsPerToken is the approximate character-to-token ratio for
	// English prose under common BPE tokenizers.
	defaultCharsPerToken = 4

	// messageOverheadTokens accounts for the role tag and separators each
	// chat message costs on the wire.
	messageOverheadTokens = 4
)

// Estimator maps text to an approximate token count. Implementations must be
// deterministic, monotonic in input length, and O(length).
type Estimator interface {
	// Estimate returns the approximate token count of text.
	// An empty string estimates to zero.
	Estimate(text string) int
}

// HeuristicEstimator estimates tokens using a characters-per-token ratio.
type HeuristicEstimator struct {
	// CharsPerToken is the ratio used; defaults to 4 if zero or negative.
	CharsPerToken int
}

// NewHeuristicEstimator creates an estimator with the default ratio.
func NewHeuristicEstimator() *HeuristicEstimator {
	return &HeuristicEstimator{CharsPerToken: defaultCharsPerToken}
}

func (e *HeuristicEstimator) ratio() int {
	if e.CharsPerToken <= 0 {
		return defaultCharsPerToken
	}
	return e.CharsPerToken
}

// Estimate returns ceil(len(text) / CharsPerToken).
func (e *HeuristicEstimator) Estimate(text string) int {
	if text == "" {
		return 0
	}
	r := e.ratio()
	return (len(text) + r - 1) / r
}

// EstimateMessage returns the estimated cost of a single chat message,
// including per-message role and separator overhead.
func EstimateMessage(est Estimator, msg *types.Message) int {
	if msg == nil {
		return 0
	}
	return messageOverheadTokens + est.Estimate(msg.Content)
}

// EstimateMessages returns the estimated total cost of a message slice.
func EstimateMessages(est Estimator, messages []*types.Message) int {
	total := 0
	for _, msg := range messages {
		total += EstimateMessage(est, msg)
	}
	return total
}

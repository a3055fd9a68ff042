package tokens

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// TiktokenEstimator counts tokens exactly using the BPE encoding for a
// specific OpenAI model. It trades the heuristic's portability for accuracy:
// construction may fetch encoding data unless an offline loader is configured,
// so the pipeline only uses it when explicitly injected.
type TiktokenEstimator struct {
	encoding *tiktoken.Tiktoken
}

// NewTiktokenEstimator creates an estimator for the given model name
// (e.g. "gpt-4o"). Returns an error if the model's encoding is unknown
// or its data cannot be loaded.
func NewTiktokenEstimator(model string) (*TiktokenEstimator, error) {
	encoding, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("failed to load encoding for model %q: %w", model, err)
	}
	return &TiktokenEstimator{encoding: encoding}, nil
}

// Estimate returns the exact token count of text under the model's encoding.
func (e *TiktokenEstimator) Estimate(text string) int {
	if text == "" {
		return 0
	}
	return len(e.encoding.Encode(text, nil, nil))
}

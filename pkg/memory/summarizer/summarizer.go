// Package summarizer folds aged-out conversation history into a single
// ConversationSummary via an LLM compression call. Summarization is best
// effort by contract: any failure degrades to the prior summary (or none)
// and is never surfaced on the caller's answer path.
package summarizer

import (
	"context"
	"time"

	"github.com/entrhq/recall/pkg/llm"
	"github.com/entrhq/recall/pkg/logging"
	"github.com/entrhq/recall/pkg/memory"
	"github.com/entrhq/recall/pkg/tokens"
	"github.com/entrhq/recall/pkg/types"
)

var debugLog *logging.Logger

func init() {
	var err error
	debugLog, err = logging.NewLogger("summarizer")
	if err != nil {
		debugLog.Warnf("Failed to initialize summarizer logger, using stderr fallback: %v", err)
	}
}

// Compressor is the capability the summarizer needs from an LLM: turn a
// compression prompt into raw model text. Tests inject a deterministic fake.
type Compressor interface {
	Compress(ctx context.Context, prompt string) (string, error)
}

// ProviderCompressor adapts an llm.Provider into a Compressor.
type ProviderCompressor struct {
	provider llm.Provider
}

// NewProviderCompressor wraps the given provider.
func NewProviderCompressor(provider llm.Provider) *ProviderCompressor {
	return &ProviderCompressor{provider: provider}
}

// Compress sends the compression prompt as a system + user exchange and
// returns the model's raw text.
func (c *ProviderCompressor) Compress(ctx context.Context, prompt string) (string, error) {
	messages := []*types.Message{
		types.NewSystemMessage(compressionSystemPrompt),
		types.NewUserMessage(prompt),
	}
	response, err := c.provider.Complete(ctx, messages)
	if err != nil {
		return "", err
	}
	return response.Content, nil
}

// Summarizer compresses older history, merging each pass with the prior
// summary so exactly one current summary exists per conversation turn.
type Summarizer struct {
	compressor     Compressor
	estimator      tokens.Estimator
	maxListEntries int
}

// New creates a summarizer. maxListEntries caps each metadata list; values
// below 1 fall back to the default.
func New(compressor Compressor, estimator tokens.Estimator, maxListEntries int) *Summarizer {
	if maxListEntries < 1 {
		maxListEntries = memory.DefaultMaxListEntries
	}
	return &Summarizer{
		compressor:     compressor,
		estimator:      estimator,
		maxListEntries: maxListEntries,
	}
}

// Summarize folds older messages (and the prior summary, if any) into one
// replacement summary.
//
// Failure semantics: if the LLM call fails or times out, Summarize returns
// the prior summary unchanged (nil if none existed). It never returns an
// error; the degradation is logged and absorbed here so the caller's answer
// path cannot be poisoned by a compression hiccup.
func (s *Summarizer) Summarize(ctx context.Context, older []*types.Message, prior *types.ConversationSummary) *types.ConversationSummary {
	if len(older) == 0 {
		return prior
	}

	prompt := buildCompressionPrompt(older, prior)

	raw, err := s.compressor.Compress(ctx, prompt)
	if err != nil {
		debugLog.Warnf("Compression call failed, keeping prior summary: %v", err)
		return prior
	}

	parsed := parseStructuredOutput(raw)
	if !parsed.structured {
		debugLog.Warnf("Compression output not structured, falling back to raw text (%d chars)", len(raw))
	}

	summary := &types.ConversationSummary{
		Content:            parsed.content,
		TopicsCovered:      parsed.topics,
		KeyQuestions:       parsed.questions,
		ImportantDecisions: parsed.decisions,
		MessagesSummarized: len(older),
		Timestamp:          time.Now(),
	}

	if prior != nil {
		summary.MessagesSummarized += prior.MessagesSummarized
		summary.TopicsCovered = mergeOrdered(prior.TopicsCovered, summary.TopicsCovered, s.maxListEntries)
		summary.KeyQuestions = mergeOrdered(prior.KeyQuestions, summary.KeyQuestions, s.maxListEntries)
		summary.ImportantDecisions = mergeOrdered(prior.ImportantDecisions, summary.ImportantDecisions, s.maxListEntries)
	} else {
		summary.TopicsCovered = mergeOrdered(nil, summary.TopicsCovered, s.maxListEntries)
		summary.KeyQuestions = mergeOrdered(nil, summary.KeyQuestions, s.maxListEntries)
		summary.ImportantDecisions = mergeOrdered(nil, summary.ImportantDecisions, s.maxListEntries)
	}

	summary.TokenCount = s.estimator.Estimate(summary.Content)

	debugLog.Printf("Summarized %d messages (cumulative %d, summary ~%d tokens)",
		len(older), summary.MessagesSummarized, summary.TokenCount)

	return summary
}

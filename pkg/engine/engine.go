// Package engine wires the memory pipeline together: per request it
// evaluates the summarization trigger, compresses aged-out history, enriches
// the retrieval query, assembles a bounded prompt, and calls the LLM for the
// answer. The engine is stateless and request-scoped — all conversation
// memory (history and summary) round-trips through the client on every call,
// so concurrent requests are fully independent and nothing is ever persisted
// server-side.
package engine

import (
	"context"
	"fmt"

	"github.com/entrhq/recall/pkg/assemble"
	"github.com/entrhq/recall/pkg/llm"
	"github.com/entrhq/recall/pkg/logging"
	"github.com/entrhq/recall/pkg/memory"
	"github.com/entrhq/recall/pkg/memory/summarizer"
	"github.com/entrhq/recall/pkg/query"
	"github.com/entrhq/recall/pkg/retrieval"
	"github.com/entrhq/recall/pkg/tokens"
	"github.com/entrhq/recall/pkg/types"
	"github.com/google/uuid"
)

var debugLog *logging.Logger

func init() {
	var err error
	debugLog, err = logging.NewLogger("engine")
	if err != nil {
		debugLog.Warnf("Failed to initialize engine logger, using stderr fallback: %v", err)
	}
}

// DefaultSystemPrompt is used when no system prompt option is provided.
const DefaultSystemPrompt = "You are a helpful assistant. Answer the user's question using the " +
	"provided knowledge-base passages and conversation context. If the passages do not contain " +
	"the answer, say so rather than guessing."

// Engine runs the per-request memory pipeline.
type Engine struct {
	provider   llm.Provider
	retriever  retrieval.Client
	estimator  tokens.Estimator
	summarizer *summarizer.Summarizer
	enricher   *query.Enricher
	assembler  *assemble.Assembler

	cfg                memory.Config
	systemPrompt       string
	topK               int
	summarizationModel string
	compressor         summarizer.Compressor
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig sets the memory configuration. Values are normalized.
func WithConfig(cfg memory.Config) Option {
	return func(e *Engine) {
		e.cfg = cfg.Normalize()
	}
}

// WithEstimator sets the token estimator used for trigger and budget
// decisions.
func WithEstimator(estimator tokens.Estimator) Option {
	return func(e *Engine) {
		e.estimator = estimator
	}
}

// WithSystemPrompt overrides the default system prompt.
func WithSystemPrompt(prompt string) Option {
	return func(e *Engine) {
		e.systemPrompt = prompt
	}
}

// WithTopK sets how many passages are requested per retrieval call.
func WithTopK(topK int) Option {
	return func(e *Engine) {
		if topK > 0 {
			e.topK = topK
		}
	}
}

// WithSummarizationModel routes summarization compression calls to a
// different (typically cheaper) model. Takes effect only when the provider
// implements llm.ModelCloner.
func WithSummarizationModel(model string) Option {
	return func(e *Engine) {
		e.summarizationModel = model
	}
}

// WithCompressor injects a custom compression backend for summarization,
// bypassing the provider. Used by tests and by callers with a dedicated
// compression service.
func WithCompressor(compressor summarizer.Compressor) Option {
	return func(e *Engine) {
		e.compressor = compressor
	}
}

// New creates an engine over the given LLM provider and retrieval client.
// The retriever may be nil, in which case answers are generated without
// knowledge-base passages.
func New(provider llm.Provider, retriever retrieval.Client, opts ...Option) (*Engine, error) {
	if provider == nil {
		return nil, fmt.Errorf("LLM provider is required")
	}

	e := &Engine{
		provider:     provider,
		retriever:    retriever,
		estimator:    tokens.NewHeuristicEstimator(),
		cfg:          memory.DefaultConfig(),
		systemPrompt: DefaultSystemPrompt,
		topK:         5,
	}

	for _, opt := range opts {
		opt(e)
	}

	// Compression backend precedence: explicit compressor, then a model
	// override clone, then the answer provider itself.
	compressor := e.compressor
	if compressor == nil {
		compressionProvider := provider
		if e.summarizationModel != "" {
			if cloner, ok := provider.(llm.ModelCloner); ok {
				compressionProvider = cloner.CloneWithModel(e.summarizationModel)
			}
		}
		compressor = summarizer.NewProviderCompressor(compressionProvider)
	}
	e.summarizer = summarizer.New(compressor, e.estimator, e.cfg.MaxListEntries)
	e.enricher = query.NewEnricher()
	e.assembler = assemble.New(e.estimator)

	return e, nil
}

// Process runs the full pipeline for one request. The request's history and
// summary are treated as immutable input; the response carries the updated
// summary for the caller to replay on the next turn.
//
// Summarization and retrieval failures degrade gracefully and never fail the
// request; only malformed input and a failed answer call return errors.
func (e *Engine) Process(ctx context.Context, req *Request) (*Response, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	reqID := uuid.NewString()

	cfg := e.cfg
	if req.MaxHistoryTokens > 0 {
		cfg.MaxHistoryTokens = req.MaxHistoryTokens
	}

	totalTokens := tokens.EstimateMessages(e.estimator, req.History)
	older, recent := memory.Select(req.History, cfg.KeepRecent)

	stats := types.MemoryStats{
		TotalMessages: len(req.History),
		TotalTokens:   totalTokens,
	}

	summary := req.Summary
	promptHistory := req.History

	if req.EnableSummarization && len(older) > 0 && cfg.ShouldSummarize(totalTokens, len(older)) {
		debugLog.Printf("[%s] Summarization triggered: %d tokens, %d older messages", reqID, totalTokens, len(older))

		sumCtx, cancel := context.WithTimeout(ctx, cfg.SummarizeTimeout)
		updated := e.summarizer.Summarize(sumCtx, older, req.Summary)
		cancel()

		switch {
		case updated != nil && updated != req.Summary:
			summary = updated
			stats.SummaryCreated = req.Summary == nil
			stats.SummaryUpdated = req.Summary != nil
		default:
			// Compression failed: raw truncation. The older messages are
			// dropped from the prompt and the prior summary (if any) rides
			// along unchanged.
			debugLog.Warnf("[%s] Summarization degraded, truncating %d older messages", reqID, len(older))
		}

		// Either way the older messages leave the verbatim window.
		promptHistory = recent
		stats.KeptRecent = len(recent)
		stats.SummarizedCount = len(older)
	} else {
		// No compression this turn: the entire history rides verbatim.
		stats.KeptRecent = len(req.History)
		stats.SummarizedCount = 0
	}

	passages := e.retrieve(ctx, reqID, req.Question, summary, promptHistory)

	result := e.assembler.Assemble(assemble.Input{
		SystemPrompt:   e.systemPrompt,
		Passages:       passageContents(passages),
		Summary:        summary,
		Recent:         promptHistory,
		Question:       req.Question,
		MaxTotalTokens: cfg.MaxTotalTokens,
	})

	if result.DroppedRecent > 0 {
		// Turns squeezed out by the budget leave the verbatim window now and
		// age into the next request's summarization pass.
		debugLog.Warnf("[%s] Budget shrink dropped %d recent turns, %d passages", reqID, result.DroppedRecent, result.DroppedPassages)
		stats.KeptRecent -= result.DroppedRecent
		stats.SummarizedCount += result.DroppedRecent
	}
	if result.BudgetExceeded {
		debugLog.Warnf("[%s] Prompt shipped oversized: ~%d tokens", reqID, result.EstimatedTokens)
	}

	answer, err := e.provider.Complete(ctx, types.BlocksToMessages(result.Blocks))
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	debugLog.Printf("[%s] Answered: %d/%d messages verbatim, ~%d prompt tokens", reqID, stats.KeptRecent, stats.TotalMessages, result.EstimatedTokens)

	return &Response{
		Answer:         answer.Content,
		Sources:        passages,
		MemoryStats:    stats,
		Summary:        summary,
		BudgetExceeded: result.BudgetExceeded,
	}, nil
}

// retrieve runs the enriched search. Retrieval failures degrade to an empty
// passage list: an answer without knowledge-base context beats no answer.
func (e *Engine) retrieve(ctx context.Context, reqID, question string, summary *types.ConversationSummary, recent []*types.Message) []retrieval.Passage {
	if e.retriever == nil {
		return nil
	}

	enriched := e.enricher.Enrich(question, summary, recent)
	passages, err := e.retriever.Search(ctx, enriched, e.topK)
	if err != nil {
		debugLog.Warnf("[%s] Retrieval failed, answering without passages: %v", reqID, err)
		return nil
	}
	return passages
}

func passageContents(passages []retrieval.Passage) []string {
	if len(passages) == 0 {
		return nil
	}
	contents := make([]string, 0, len(passages))
	for _, p := range passages {
		contents = append(contents, p.Content)
	}
	return contents
}

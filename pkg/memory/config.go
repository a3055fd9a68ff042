// Package memory implements the pure decision core of conversation memory:
// the sliding window selector and the summarization trigger. Both are side
// effect free so the trigger logic stays independently testable; the
// LLM-backed compression lives in the summarizer subpackage.
package memory

import "time"

const (
	// DefaultKeepRecent is how many trailing messages are kept verbatim.
	// Six turns preserves enough immediate turn-taking for pronoun and
	// reference resolution without forcing compression on short chats.
	DefaultKeepRecent = 6

	// DefaultTriggerRatio is the fraction of the history token budget at
	// which summarization triggers. Below 1.0 so the heuristic estimator's
	// error margin never lets the real budget overflow.
	DefaultTriggerRatio = 0.75

	// DefaultMaxOlderMessages is the hard count ceiling on un-summarized
	// older messages. Token ratio alone under-triggers for many short
	// messages; the count ceiling is the backstop.
	DefaultMaxOlderMessages = 10

	// DefaultMaxHistoryTokens is the history token budget when the request
	// does not specify one.
	DefaultMaxHistoryTokens = 4000

	// DefaultMaxTotalTokens is the assembled-prompt budget.
	DefaultMaxTotalTokens = 8000

	// DefaultMaxListEntries caps each summary metadata list (topics, key
	// questions, decisions) to bound growth across merges.
	DefaultMaxListEntries = 15

	// DefaultSummarizeTimeout bounds the summarization LLM call. There are
	// no retries; on timeout the pipeline degrades to raw truncation.
	DefaultSummarizeTimeout = 10 * time.Second
)

// Config holds the tunable thresholds of the memory pipeline. All values are
// configuration defaults inferred from observed model context windows, not
// load-bearing constants; deployments should tune them against their target
// model.
type Config struct {
	// KeepRecent is the sliding window size in messages.
	KeepRecent int

	// TriggerRatio is the token-budget fraction that triggers summarization.
	TriggerRatio float64

	// MaxOlderMessages is the count ceiling on older messages.
	MaxOlderMessages int

	// MaxHistoryTokens is the history token budget.
	MaxHistoryTokens int

	// MaxTotalTokens is the assembled-prompt token budget.
	MaxTotalTokens int

	// MaxListEntries caps each summary metadata list.
	MaxListEntries int

	// SummarizeTimeout bounds the summarization LLM call.
	SummarizeTimeout time.Duration
}

// DefaultConfig returns the default memory configuration.
func DefaultConfig() Config {
	return Config{
		KeepRecent:       DefaultKeepRecent,
		TriggerRatio:     DefaultTriggerRatio,
		MaxOlderMessages: DefaultMaxOlderMessages,
		MaxHistoryTokens: DefaultMaxHistoryTokens,
		MaxTotalTokens:   DefaultMaxTotalTokens,
		MaxListEntries:   DefaultMaxListEntries,
		SummarizeTimeout: DefaultSummarizeTimeout,
	}
}

// Normalize clamps out-of-range values back to their defaults and returns the
// result. A zero-value Config normalizes to DefaultConfig.
func (c Config) Normalize() Config {
	if c.KeepRecent <= 0 {
		c.KeepRecent = DefaultKeepRecent
	}
	if c.TriggerRatio <= 0 || c.TriggerRatio > 1 {
		c.TriggerRatio = DefaultTriggerRatio
	}
	if c.MaxOlderMessages <= 0 {
		c.MaxOlderMessages = DefaultMaxOlderMessages
	}
	if c.MaxHistoryTokens <= 0 {
		c.MaxHistoryTokens = DefaultMaxHistoryTokens
	}
	if c.MaxTotalTokens <= 0 {
		c.MaxTotalTokens = DefaultMaxTotalTokens
	}
	if c.MaxListEntries <= 0 {
		c.MaxListEntries = DefaultMaxListEntries
	}
	if c.SummarizeTimeout <= 0 {
		c.SummarizeTimeout = DefaultSummarizeTimeout
	}
	return c
}

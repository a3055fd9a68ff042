package types

// MemoryStats is a diagnostic snapshot of how a request's history was handled.
// It is purely informational for the caller and for threshold tuning, never
// authoritative state.
//
// KeptRecent + SummarizedCount always equals TotalMessages: every message of
// the request's history is either carried verbatim into the prompt or folded
// out of the verbatim window (summarized, or truncated when summarization
// degraded). Nothing is dropped silently.
type MemoryStats struct {
	// TotalMessages is the number of history messages in the request.
	TotalMessages int `json:"total_messages"`

	// TotalTokens is the estimated token cost of the full history.
	TotalTokens int `json:"total_tokens"`

	// KeptRecent is the number of messages carried verbatim into the prompt.
	KeptRecent int `json:"kept_recent"`

	// SummarizedCount is the number of messages folded out of the verbatim
	// window on this request.
	SummarizedCount int `json:"summarized_count"`

	// SummaryCreated is true when this request produced the first summary.
	SummaryCreated bool `json:"summary_created"`

	// SummaryUpdated is true when this request replaced an existing summary.
	SummaryUpdated bool `json:"summary_updated"`
}

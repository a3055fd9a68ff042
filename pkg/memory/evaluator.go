package memory

// ShouldSummarize decides whether compression must run before this request
// proceeds. It fires when the estimated history cost exceeds the configured
// fraction of the token budget, or when the older-message count exceeds its
// hard ceiling, whichever comes first.
//
// This is a pure decision function: it never invokes the summarizer itself.
func (c Config) ShouldSummarize(totalTokens, olderCount int) bool {
	if c.MaxHistoryTokens <= 0 {
		return false
	}
	if float64(totalTokens) > float64(c.MaxHistoryTokens)*c.TriggerRatio {
		return true
	}
	return olderCount > c.MaxOlderMessages
}

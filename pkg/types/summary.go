package types

import "time"

// ConversationSummary is a lossy, LLM-produced compression of all messages
// older than the sliding window. At most one summary exists per conversation;
// each summarization pass merges the previous summary with newly-aged-out
// messages and replaces it wholesale. The caller stores the summary client-side
// and replays it on the next request.
type ConversationSummary struct {
	// Content is the narrative compression of the older conversation.
	Content string `json:"content" yaml:"content"`

	// MessagesSummarized is the cumulative number of messages folded into
	// this summary across all passes.
	MessagesSummarized int `json:"messages_summarized" yaml:"messages_summarized"`

	// TopicsCovered lists distinct discussion topics in first-seen order.
	TopicsCovered []string `json:"topics_covered" yaml:"topics_covered"`

	// KeyQuestions lists the user's key open questions in first-seen order.
	KeyQuestions []string `json:"key_questions" yaml:"key_questions"`

	// ImportantDecisions lists decisions and commitments in first-seen order.
	ImportantDecisions []string `json:"important_decisions" yaml:"important_decisions"`

	// TokenCount is the estimated token cost of Content.
	TokenCount int `json:"token_count" yaml:"token_count"`

	// Timestamp records when this summary revision was produced.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Clone returns a deep copy of the summary. The pipeline never mutates a
// caller-supplied summary in place; replacement revisions are built on copies.
func (s *ConversationSummary) Clone() *ConversationSummary {
	if s == nil {
		return nil
	}
	clone := *s
	clone.TopicsCovered = append([]string(nil), s.TopicsCovered...)
	clone.KeyQuestions = append([]string(nil), s.KeyQuestions...)
	clone.ImportantDecisions = append([]string(nil), s.ImportantDecisions...)
	return &clone
}

package summarizer

import (
	"fmt"
	"strings"

	"github.com/entrhq/recall/pkg/types"
)

// compressionSystemPrompt frames the compression call. The output replaces
// a span of conversation history inside another model's context window, so
// the instructions optimize for density and referential completeness over
// readability.
const compressionSystemPrompt = "You are a conversation memory encoder for a retrieval-augmented chat assistant. " +
	"Your summary replaces older turns of the conversation and is the assistant's only record of them. " +
	"The assistant must be able to resolve later references (\"it\", \"that approach\", \"the error from before\") " +
	"using your summary alone. Be dense, specific, and factual. " +
	"Preserve concrete details: names, versions, commands, error messages, numbers. " +
	"Omit greetings, filler, and hedging language."

// sectionHeadings are the four labelled sections the compression prompt
// requests, mirroring the four ConversationSummary fields.
const (
	headingSummary   = "## Summary"
	headingTopics    = "## Topics"
	headingQuestions = "## Key Questions"
	headingDecisions = "## Decisions"
)

// buildCompressionPrompt renders the older messages, and the prior summary's
// narrative when one exists, into a single structured compression request.
func buildCompressionPrompt(older []*types.Message, prior *types.ConversationSummary) string {
	var b strings.Builder

	b.WriteString("Compress the conversation below into exactly four sections.\n\n")

	b.WriteString(headingSummary + "\n")
	b.WriteString("A concise narrative of what has been discussed and decided so far. ")
	b.WriteString("When a previous summary is given, fold it in — produce one merged narrative, not two.\n\n")

	b.WriteString(headingTopics + "\n")
	b.WriteString("Bulleted list of distinct topics discussed, each a short noun phrase.\n\n")

	b.WriteString(headingQuestions + "\n")
	b.WriteString("Bulleted list of the user's key open questions.\n\n")

	b.WriteString(headingDecisions + "\n")
	b.WriteString("Bulleted list of decisions or commitments made. Write 'none' if there are none.\n\n")

	b.WriteString("---\n\n")

	if prior != nil && prior.Content != "" {
		b.WriteString("Previous summary (merge, do not repeat verbatim):\n")
		b.WriteString(prior.Content)
		b.WriteString("\n\n")
	}

	b.WriteString("Conversation to compress:\n\n")
	for i, msg := range older {
		b.WriteString(fmt.Sprintf("%d. %s: %s\n\n", i+1, msg.Role, msg.Content))
	}

	return b.String()
}

// Package query builds context-aware retrieval queries. Bare follow-up
// questions ("What about Python?") are semantically incomplete as standalone
// search queries; enrichment restores the missing referent from the summary
// and the most recent turns so the vector search returns relevant passages.
package query

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/entrhq/recall/pkg/types"
)

const (
	// DefaultMaxMessages is how many trailing messages contribute context.
	DefaultMaxMessages = 4

	// DefaultMaxCharsPerMessage truncates each contributing message so a
	// single verbose turn cannot drown out the question in embedding space.
	DefaultMaxCharsPerMessage = 200

	// maxDigestChars bounds the summary digest line for the same reason.
	maxDigestChars = 200
)

// Enricher builds retrieval query strings from the current question plus
// condensed recent context. The zero value uses the defaults.
type Enricher struct {
	// MaxMessages is the number of recent messages to include.
	MaxMessages int

	// MaxCharsPerMessage truncates each included message.
	MaxCharsPerMessage int
}

// NewEnricher creates an enricher with default bounds.
func NewEnricher() *Enricher {
	return &Enricher{
		MaxMessages:        DefaultMaxMessages,
		MaxCharsPerMessage: DefaultMaxCharsPerMessage,
	}
}

// Enrich builds the retrieval query: a one-line digest of the summary when
// one exists, then up to MaxMessages recent turns (role-prefixed, truncated),
// then the current question.
func (e *Enricher) Enrich(question string, summary *types.ConversationSummary, recent []*types.Message) string {
	maxMessages := e.MaxMessages
	if maxMessages <= 0 {
		maxMessages = DefaultMaxMessages
	}
	maxChars := e.MaxCharsPerMessage
	if maxChars <= 0 {
		maxChars = DefaultMaxCharsPerMessage
	}

	var b strings.Builder

	if summary != nil && summary.Content != "" {
		b.WriteString("Conversation so far: ")
		b.WriteString(truncate(digestLine(summary.Content), maxDigestChars))
		b.WriteString("\n")
	}

	start := 0
	if len(recent) > maxMessages {
		start = len(recent) - maxMessages
	}
	for _, msg := range recent[start:] {
		b.WriteString(fmt.Sprintf("%s: %s\n", msg.Role, truncate(msg.Content, maxChars)))
	}

	b.WriteString("Current question: ")
	b.WriteString(question)

	return b.String()
}

// digestLine collapses the summary narrative onto a single line.
func digestLine(content string) string {
	return strings.Join(strings.Fields(content), " ")
}

// truncate cuts s at max bytes without splitting a UTF-8 rune, appending an
// ellipsis when anything was cut.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := s[:max]
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return strings.TrimSpace(cut) + "..."
}

package query

import (
	"strings"
	"testing"

	"github.com/entrhq/recall/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestEnrich_FollowUpQuestion(t *testing.T) {
	e := NewEnricher()
	recent := []*types.Message{
		types.NewUserMessage("How do I deploy?"),
		types.NewAssistantMessage("Use Docker with a multi-stage build."),
	}

	enriched := e.Enrich("What about Python?", nil, recent)

	assert.Contains(t, enriched, "user: How do I deploy?")
	assert.Contains(t, enriched, "assistant: Use Docker with a multi-stage build.")
	assert.True(t, strings.HasSuffix(enriched, "Current question: What about Python?"))
}

func TestEnrich_BareQuestionWithoutContext(t *testing.T) {
	e := NewEnricher()
	enriched := e.Enrich("What is Go?", nil, nil)
	assert.Equal(t, "Current question: What is Go?", enriched)
}

func TestEnrich_SummaryDigestPrepended(t *testing.T) {
	e := NewEnricher()
	summary := &types.ConversationSummary{
		Content: "The user is building a REST API\nin Go and deploying it with Docker.",
	}

	enriched := e.Enrich("How do I add caching?", summary, nil)

	// Digest is collapsed onto one line before the question.
	assert.Contains(t, enriched, "Conversation so far: The user is building a REST API in Go and deploying it with Docker.")
	assert.True(t, strings.HasSuffix(enriched, "Current question: How do I add caching?"))
}

func TestEnrich_MessageCountBound(t *testing.T) {
	e := &Enricher{MaxMessages: 2, MaxCharsPerMessage: 200}
	recent := []*types.Message{
		types.NewUserMessage("first"),
		types.NewAssistantMessage("second"),
		types.NewUserMessage("third"),
		types.NewAssistantMessage("fourth"),
	}

	enriched := e.Enrich("q", nil, recent)

	assert.NotContains(t, enriched, "first")
	assert.NotContains(t, enriched, "second")
	assert.Contains(t, enriched, "third")
	assert.Contains(t, enriched, "fourth")
}

func TestEnrich_PerMessageTruncation(t *testing.T) {
	e := &Enricher{MaxMessages: 4, MaxCharsPerMessage: 10}
	recent := []*types.Message{
		types.NewAssistantMessage("this answer is much longer than ten characters"),
	}

	enriched := e.Enrich("q", nil, recent)

	assert.Contains(t, enriched, "this answe...")
	assert.NotContains(t, enriched, "ten characters")
}

func TestEnrich_ZeroValueUsesDefaults(t *testing.T) {
	e := &Enricher{}
	recent := []*types.Message{types.NewUserMessage("hello")}
	enriched := e.Enrich("q", nil, recent)
	assert.Contains(t, enriched, "user: hello")
}

func TestTruncate_RuneSafe(t *testing.T) {
	// 3-byte runes; cutting at 4 bytes must not emit invalid UTF-8.
	s := "日本語テスト"
	got := truncate(s, 4)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.True(t, strings.HasPrefix(got, "日"))
}

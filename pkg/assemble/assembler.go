// Package assemble produces the final ordered prompt under a token budget.
//
// Block order is fixed: system instructions, summary context, retrieved
// passages, recent turns, current question. When the estimated cost exceeds
// the budget the assembler shrinks in relevance order — retrieved passages
// from the tail first, then the oldest recent turns. The system prompt and
// the current question are load-bearing and never dropped; if they alone
// exceed the budget the prompt ships oversized with BudgetExceeded set.
package assemble

import (
	"fmt"
	"strings"

	"github.com/entrhq/recall/pkg/logging"
	"github.com/entrhq/recall/pkg/tokens"
	"github.com/entrhq/recall/pkg/types"
)

var debugLog *logging.Logger

func init() {
	var err error
	debugLog, err = logging.NewLogger("assemble")
	if err != nil {
		debugLog.Warnf("Failed to initialize assemble logger, using stderr fallback: %v", err)
	}
}

// Input is everything the assembler folds into a prompt.
type Input struct {
	// SystemPrompt is the always-included system instruction block.
	SystemPrompt string

	// Passages are retrieved knowledge-base passages, most relevant first.
	Passages []string

	// Summary is the current conversation summary, if one exists.
	Summary *types.ConversationSummary

	// Recent are the verbatim recent turns, oldest first.
	Recent []*types.Message

	// Question is the current user question.
	Question string

	// MaxTotalTokens is the assembled-prompt budget.
	MaxTotalTokens int
}

// Result is the assembled prompt plus shrink diagnostics.
type Result struct {
	// Blocks is the ordered prompt.
	Blocks []types.PromptBlock

	// EstimatedTokens is the estimated cost of Blocks.
	EstimatedTokens int

	// DroppedPassages counts passages removed to fit the budget.
	DroppedPassages int

	// DroppedRecent counts recent messages removed to fit the budget.
	// Dropped turns are expected to enter a forced summarization pass on
	// the caller's next request.
	DroppedRecent int

	// BudgetExceeded is true for the last-resort case: system prompt plus
	// question alone exceed the budget and the prompt shipped oversized.
	BudgetExceeded bool
}

// Assembler builds bounded prompts using an injected token estimator.
type Assembler struct {
	estimator tokens.Estimator
}

// New creates an assembler. A nil estimator falls back to the heuristic.
func New(estimator tokens.Estimator) *Assembler {
	if estimator == nil {
		estimator = tokens.NewHeuristicEstimator()
	}
	return &Assembler{estimator: estimator}
}

// Assemble builds the prompt, shrinking until it fits the budget or only the
// load-bearing blocks remain.
func (a *Assembler) Assemble(in Input) Result {
	passages := in.Passages
	recent := in.Recent
	result := Result{}

	for {
		blocks := a.buildBlocks(in.SystemPrompt, passages, in.Summary, recent, in.Question)
		cost := a.estimateBlocks(blocks)

		if in.MaxTotalTokens <= 0 || cost <= in.MaxTotalTokens {
			result.Blocks = blocks
			result.EstimatedTokens = cost
			return result
		}

		// Shrink step 1: drop the lowest-relevance passage from the tail.
		if len(passages) > 0 {
			passages = passages[:len(passages)-1]
			result.DroppedPassages++
			continue
		}

		// Shrink step 2: drop the oldest recent message. The summarizer is
		// deliberately not invoked here; the dropped turn ages into the
		// next request's summarization pass instead.
		if len(recent) > 0 {
			recent = recent[1:]
			result.DroppedRecent++
			continue
		}

		// Last resort: nothing left to drop. Ship oversized rather than
		// corrupt the prompt by removing system instructions or the question.
		result.Blocks = blocks
		result.EstimatedTokens = cost
		result.BudgetExceeded = true
		debugLog.Warnf("Prompt exceeds budget after shrink: ~%d tokens > %d budget", cost, in.MaxTotalTokens)
		return result
	}
}

// buildBlocks renders the five block kinds in fixed priority order.
func (a *Assembler) buildBlocks(systemPrompt string, passages []string, summary *types.ConversationSummary, recent []*types.Message, question string) []types.PromptBlock {
	blocks := make([]types.PromptBlock, 0, len(recent)+4)

	if systemPrompt != "" {
		blocks = append(blocks, types.PromptBlock{
			Role:    types.RoleSystem,
			Content: systemPrompt,
			Kind:    types.BlockKindSystem,
		})
	}

	if summary != nil && summary.Content != "" {
		blocks = append(blocks, types.PromptBlock{
			Role:    types.RoleSystem,
			Content: renderSummary(summary),
			Kind:    types.BlockKindSummary,
		})
	}

	if len(passages) > 0 {
		blocks = append(blocks, types.PromptBlock{
			Role:    types.RoleSystem,
			Content: renderPassages(passages),
			Kind:    types.BlockKindPassages,
		})
	}

	for _, msg := range recent {
		blocks = append(blocks, types.PromptBlock{
			Role:    msg.Role,
			Content: msg.Content,
			Kind:    types.BlockKindHistory,
		})
	}

	blocks = append(blocks, types.PromptBlock{
		Role:    types.RoleUser,
		Content: question,
		Kind:    types.BlockKindQuestion,
	})

	return blocks
}

// estimateBlocks sums the estimated cost of all blocks, charging each block
// the same per-message overhead a chat message costs.
func (a *Assembler) estimateBlocks(blocks []types.PromptBlock) int {
	total := 0
	for _, block := range blocks {
		total += tokens.EstimateMessage(a.estimator, &types.Message{Role: block.Role, Content: block.Content})
	}
	return total
}

// renderSummary renders the summary narrative with its metadata as bullet
// context so the model can resolve references into compressed history.
func renderSummary(summary *types.ConversationSummary) string {
	var b strings.Builder

	b.WriteString("Summary of the earlier conversation (")
	b.WriteString(fmt.Sprintf("%d messages compressed):\n", summary.MessagesSummarized))
	b.WriteString(summary.Content)

	writeBulletList(&b, "Topics covered", summary.TopicsCovered)
	writeBulletList(&b, "Open questions", summary.KeyQuestions)
	writeBulletList(&b, "Decisions made", summary.ImportantDecisions)

	return b.String()
}

func writeBulletList(b *strings.Builder, label string, entries []string) {
	if len(entries) == 0 {
		return
	}
	b.WriteString("\n\n" + label + ":\n")
	for _, entry := range entries {
		b.WriteString("- " + entry + "\n")
	}
}

// renderPassages renders retrieved passages as one numbered context block.
func renderPassages(passages []string) string {
	var b strings.Builder
	b.WriteString("Relevant knowledge-base passages:\n\n")
	for i, passage := range passages {
		b.WriteString(fmt.Sprintf("[%d] %s\n\n", i+1, passage))
	}
	return strings.TrimRight(b.String(), "\n")
}

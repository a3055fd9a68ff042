package types

// BlockKind identifies which stage of context assembly produced a prompt block.
// Kinds exist for diagnostics and shrink ordering; the LLM only sees roles.
type BlockKind string

const (
	BlockKindSystem   BlockKind = "system"   // system instructions
	BlockKindSummary  BlockKind = "summary"  // conversation summary context
	BlockKindPassages BlockKind = "passages" // retrieved knowledge-base passages
	BlockKindHistory  BlockKind = "history"  // verbatim recent turns
	BlockKindQuestion BlockKind = "question" // the current user question
)

// PromptBlock is a single role-tagged block of the assembled prompt.
type PromptBlock struct {
	// Role is the chat role the block is delivered under.
	Role MessageRole

	// Content is the rendered block text.
	Content string

	// Kind records which assembly stage produced the block.
	Kind BlockKind
}

// BlocksToMessages converts assembled prompt blocks into messages suitable
// for an LLM provider call.
func BlocksToMessages(blocks []PromptBlock) []*Message {
	messages := make([]*Message, 0, len(blocks))
	for _, block := range blocks {
		messages = append(messages, &Message{
			Role:    block.Role,
			Content: block.Content,
		})
	}
	return messages
}

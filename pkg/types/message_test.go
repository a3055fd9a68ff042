package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageConstructors(t *testing.T) {
	user := NewUserMessage("hello")
	assert.Equal(t, RoleUser, user.Role)
	assert.Equal(t, "hello", user.Content)

	assistant := NewAssistantMessage("hi there")
	assert.Equal(t, RoleAssistant, assistant.Role)

	system := NewSystemMessage("you are helpful")
	assert.Equal(t, RoleSystem, system.Role)
}

func TestMessage_WithMetadata(t *testing.T) {
	msg := NewUserMessage("hello").WithMetadata("source", "web")
	assert.Equal(t, "web", msg.Metadata["source"])

	// Chaining on a zero-value message initializes the map.
	raw := &Message{Role: RoleUser, Content: "x"}
	raw.WithMetadata("k", 1)
	assert.Equal(t, 1, raw.Metadata["k"])
}

func TestMessage_Validate(t *testing.T) {
	tests := []struct {
		name    string
		msg     *Message
		wantErr error
	}{
		{"valid user", NewUserMessage("hello"), nil},
		{"valid assistant", NewAssistantMessage("hi"), nil},
		{"system role rejected in history", NewSystemMessage("sys"), ErrInvalidRole},
		{"unknown role", &Message{Role: "tool", Content: "x"}, ErrInvalidRole},
		{"empty content", &Message{Role: RoleUser, Content: ""}, ErrEmptyContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateHistory(t *testing.T) {
	valid := []*Message{
		NewUserMessage("how do I deploy?"),
		NewAssistantMessage("Use Docker."),
	}
	assert.NoError(t, ValidateHistory(valid))

	assert.NoError(t, ValidateHistory(nil))

	broken := []*Message{
		NewUserMessage("fine"),
		{Role: RoleUser},
	}
	err := ValidateHistory(broken)
	assert.ErrorIs(t, err, ErrEmptyContent)
	assert.Contains(t, err.Error(), "history[1]")

	withNil := []*Message{NewUserMessage("ok"), nil}
	assert.Error(t, ValidateHistory(withNil))
}

func TestConversationSummary_Clone(t *testing.T) {
	var nilSummary *ConversationSummary
	assert.Nil(t, nilSummary.Clone())

	original := &ConversationSummary{
		Content:            "we discussed deployment",
		MessagesSummarized: 4,
		TopicsCovered:      []string{"deployment"},
	}
	clone := original.Clone()
	clone.TopicsCovered = append(clone.TopicsCovered, "docker")
	clone.TopicsCovered[0] = "changed"

	assert.Equal(t, []string{"deployment"}, original.TopicsCovered)
	assert.Equal(t, 4, clone.MessagesSummarized)
}

func TestBlocksToMessages(t *testing.T) {
	blocks := []PromptBlock{
		{Role: RoleSystem, Content: "sys", Kind: BlockKindSystem},
		{Role: RoleUser, Content: "question", Kind: BlockKindQuestion},
	}
	messages := BlocksToMessages(blocks)
	assert.Len(t, messages, 2)
	assert.Equal(t, RoleSystem, messages[0].Role)
	assert.Equal(t, "question", messages[1].Content)
}

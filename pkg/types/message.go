// Package types defines the core data model shared across the recall
// pipeline: conversation messages, summaries, prompt blocks, and the
// diagnostic memory stats returned to callers.
package types

import (
	"errors"
	"fmt"
)

// MessageRole identifies the author of a conversation message.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"    // RoleSystem is reserved for assembled prompt blocks, never client history.
	RoleUser      MessageRole = "user"      // RoleUser marks a message authored by the end user.
	RoleAssistant MessageRole = "assistant" // RoleAssistant marks a message authored by the model.
)

// Validation errors returned when client-supplied history is rejected at the
// boundary. These indicate a caller bug and fail the request outright, unlike
// summarization failures which degrade gracefully.
var (
	ErrEmptyContent = errors.New("message content must not be empty")
	ErrInvalidRole  = errors.New("message role must be user or assistant")
)

// Message is a single turn of conversation history. Messages are owned by the
// caller and passed by value on every request; the pipeline never stores them.
type Message struct {
	// Metadata holds optional additional information about the message.
	Metadata map[string]interface{}

	// Content is the text of the turn.
	Content string

	// Role identifies the author of the turn.
	Role MessageRole
}

// NewUserMessage creates a new user-authored message.
func NewUserMessage(content string) *Message {
	return &Message{
		Role:     RoleUser,
		Content:  content,
		Metadata: make(map[string]interface{}),
	}
}

// NewAssistantMessage creates a new assistant-authored message.
func NewAssistantMessage(content string) *Message {
	return &Message{
		Role:     RoleAssistant,
		Content:  content,
		Metadata: make(map[string]interface{}),
	}
}

// NewSystemMessage creates a new system message.
func NewSystemMessage(content string) *Message {
	return &Message{
		Role:     RoleSystem,
		Content:  content,
		Metadata: make(map[string]interface{}),
	}
}

// WithMetadata adds metadata to the message and returns the message for chaining.
func (m *Message) WithMetadata(key string, value interface{}) *Message {
	if m.Metadata == nil {
		m.Metadata = make(map[string]interface{})
	}
	m.Metadata[key] = value
	return m
}

// Validate rejects messages that are not valid conversation history entries.
// Only user and assistant roles may appear in client history; system blocks
// are constructed by the assembler, never accepted from the wire.
func (m *Message) Validate() error {
	if m.Role != RoleUser && m.Role != RoleAssistant {
		return fmt.Errorf("%w: got %q", ErrInvalidRole, m.Role)
	}
	if m.Content == "" {
		return ErrEmptyContent
	}
	return nil
}

// ValidateHistory validates every entry of a client-supplied history slice,
// reporting the index of the first malformed message.
func ValidateHistory(history []*Message) error {
	for i, msg := range history {
		if msg == nil {
			return fmt.Errorf("history[%d]: message is nil", i)
		}
		if err := msg.Validate(); err != nil {
			return fmt.Errorf("history[%d]: %w", i, err)
		}
	}
	return nil
}

package config

import (
	"fmt"
	"sync"

	"github.com/entrhq/recall/pkg/memory"
)

const (
	// SectionIDMemory is the identifier for the memory settings section
	SectionIDMemory = "memory"
)

// MemorySection manages the conversation-memory thresholds.
type MemorySection struct {
	KeepRecent       int
	TriggerRatio     float64
	MaxOlderMessages int
	MaxHistoryTokens int
	MaxTotalTokens   int
	MaxListEntries   int
	mu               sync.RWMutex
}

// NewMemorySection creates a memory section with default settings.
func NewMemorySection() *MemorySection {
	s := &MemorySection{}
	s.Reset()
	return s
}

// ID returns the section identifier.
func (s *MemorySection) ID() string {
	return SectionIDMemory
}

// Title returns the section title.
func (s *MemorySection) Title() string {
	return "Memory Settings"
}

// Description returns the section description.
func (s *MemorySection) Description() string {
	return "Configure conversation memory thresholds: sliding window size, summarization trigger, and token budgets. Defaults suit a 16K-context model; tune against your target model's context window."
}

// Data returns the current configuration data.
func (s *MemorySection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]interface{}{
		"keep_recent":        s.KeepRecent,
		"trigger_ratio":      s.TriggerRatio,
		"max_older_messages": s.MaxOlderMessages,
		"max_history_tokens": s.MaxHistoryTokens,
		"max_total_tokens":   s.MaxTotalTokens,
		"max_list_entries":   s.MaxListEntries,
	}
}

// SetData updates the configuration from the provided data.
func (s *MemorySection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := toInt(data["keep_recent"]); ok {
		s.KeepRecent = v
	}
	if v, ok := toFloat(data["trigger_ratio"]); ok {
		s.TriggerRatio = v
	}
	if v, ok := toInt(data["max_older_messages"]); ok {
		s.MaxOlderMessages = v
	}
	if v, ok := toInt(data["max_history_tokens"]); ok {
		s.MaxHistoryTokens = v
	}
	if v, ok := toInt(data["max_total_tokens"]); ok {
		s.MaxTotalTokens = v
	}
	if v, ok := toInt(data["max_list_entries"]); ok {
		s.MaxListEntries = v
	}
	return nil
}

// Validate validates the current configuration.
func (s *MemorySection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.KeepRecent < 1 {
		return fmt.Errorf("keep_recent must be at least 1, got %d", s.KeepRecent)
	}
	if s.TriggerRatio <= 0 || s.TriggerRatio > 1 {
		return fmt.Errorf("trigger_ratio must be in (0, 1], got %v", s.TriggerRatio)
	}
	if s.MaxHistoryTokens < 1 {
		return fmt.Errorf("max_history_tokens must be positive, got %d", s.MaxHistoryTokens)
	}
	if s.MaxTotalTokens < s.MaxHistoryTokens {
		return fmt.Errorf("max_total_tokens (%d) must not be below max_history_tokens (%d)", s.MaxTotalTokens, s.MaxHistoryTokens)
	}
	return nil
}

// Reset resets the section to default configuration.
func (s *MemorySection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.KeepRecent = memory.DefaultKeepRecent
	s.TriggerRatio = memory.DefaultTriggerRatio
	s.MaxOlderMessages = memory.DefaultMaxOlderMessages
	s.MaxHistoryTokens = memory.DefaultMaxHistoryTokens
	s.MaxTotalTokens = memory.DefaultMaxTotalTokens
	s.MaxListEntries = memory.DefaultMaxListEntries
}

// MemoryConfig converts the section into a memory.Config.
func (s *MemorySection) MemoryConfig() memory.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return memory.Config{
		KeepRecent:       s.KeepRecent,
		TriggerRatio:     s.TriggerRatio,
		MaxOlderMessages: s.MaxOlderMessages,
		MaxHistoryTokens: s.MaxHistoryTokens,
		MaxTotalTokens:   s.MaxTotalTokens,
		MaxListEntries:   s.MaxListEntries,
	}.Normalize()
}

// toInt coerces YAML-decoded numeric values to int.
func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

// toFloat coerces YAML-decoded numeric values to float64.
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

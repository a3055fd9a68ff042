package memory

import (
	"fmt"
	"testing"
	"time"

	"github.com/entrhq/recall/pkg/types"
	"github.com/stretchr/testify/assert"
)

func makeHistory(n int) []*types.Message {
	messages := make([]*types.Message, 0, n)
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			messages = append(messages, types.NewUserMessage(fmt.Sprintf("user turn %d", i)))
		} else {
			messages = append(messages, types.NewAssistantMessage(fmt.Sprintf("assistant turn %d", i)))
		}
	}
	return messages
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		keepN      int
		wantOlder  int
		wantRecent int
	}{
		{"fewer messages than window", 3, 6, 0, 3},
		{"exactly window size", 6, 6, 0, 6},
		{"one over window", 7, 6, 1, 6},
		{"sixteen messages keep six", 16, 6, 10, 6},
		{"zero window keeps nothing", 4, 0, 4, 0},
		{"negative window treated as zero", 4, -1, 4, 0},
		{"empty history", 0, 6, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messages := makeHistory(tt.total)
			older, recent := Select(messages, tt.keepN)
			assert.Len(t, older, tt.wantOlder)
			assert.Len(t, recent, tt.wantRecent)
			// Every message lands on exactly one side, in order.
			assert.Equal(t, messages, append(append([]*types.Message{}, older...), recent...))
		})
	}
}

func TestSelect_RecentIsSuffix(t *testing.T) {
	messages := makeHistory(10)
	older, recent := Select(messages, 4)
	assert.Equal(t, messages[6:], recent)
	assert.Equal(t, messages[:6], older)
}

func TestConfig_ShouldSummarize(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name        string
		totalTokens int
		olderCount  int
		want        bool
	}{
		{"well under both bounds", 300, 0, false},
		{"at token threshold", 3000, 5, false},
		{"just over token threshold", 3001, 0, true},
		{"scenario B tokens", 3500, 10, true},
		{"at older-count ceiling", 100, 10, false},
		{"over older-count ceiling", 100, 11, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.ShouldSummarize(tt.totalTokens, tt.olderCount))
		})
	}
}

func TestConfig_ShouldSummarize_NoBudget(t *testing.T) {
	cfg := Config{TriggerRatio: 0.75, MaxOlderMessages: 10}
	assert.False(t, cfg.ShouldSummarize(100000, 100), "zero budget disables the trigger")
}

func TestConfig_Normalize(t *testing.T) {
	cfg := Config{}.Normalize()
	assert.Equal(t, DefaultConfig(), cfg)

	custom := Config{
		KeepRecent:       4,
		TriggerRatio:     0.5,
		MaxOlderMessages: 20,
		MaxHistoryTokens: 2000,
		MaxTotalTokens:   4000,
		MaxListEntries:   5,
		SummarizeTimeout: time.Second,
	}
	assert.Equal(t, custom, custom.Normalize())

	// Out-of-range ratio snaps back to the default.
	bad := Config{TriggerRatio: 1.5}.Normalize()
	assert.Equal(t, DefaultTriggerRatio, bad.TriggerRatio)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/entrhq/recall/pkg/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	store, err := NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, store.SetSection("memory", map[string]interface{}{
		"keep_recent":   4,
		"trigger_ratio": 0.5,
	}))
	require.NoError(t, store.Save())

	reloaded, err := NewFileStore(path)
	require.NoError(t, err)

	data, err := reloaded.GetSection("memory")
	require.NoError(t, err)
	assert.Equal(t, 4, data["keep_recent"])
	assert.Equal(t, 0.5, data["trigger_ratio"])
}

func TestFileStore_MissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "config.yaml")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	data, err := store.GetSection("anything")
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestFileStore_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml: ["), 0600))

	_, err := NewFileStore(path)
	assert.Error(t, err)
}

func TestManager_RegisterAndOrder(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	manager := NewManager(store)
	assert.Same(t, Store(store), manager.Store())

	require.NoError(t, manager.RegisterSection(NewMemorySection()))
	require.NoError(t, manager.RegisterSection(NewLLMSection()))

	err = manager.RegisterSection(NewMemorySection())
	assert.Error(t, err, "duplicate section IDs are rejected")

	sections := manager.GetSections()
	require.Len(t, sections, 2)
	assert.Equal(t, SectionIDMemory, sections[0].ID())
	assert.Equal(t, SectionIDLLM, sections[1].ID())
}

func TestManager_LoadAllAppliesStoredValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`version: "1.0"
sections:
  memory:
    keep_recent: 8
    max_history_tokens: 12000
    max_total_tokens: 24000
  llm:
    model: gpt-4o-mini
    summarization_model: gpt-4o-mini
`), 0600))

	store, err := NewFileStore(path)
	require.NoError(t, err)

	manager := NewManager(store)
	memSection := NewMemorySection()
	llmSection := NewLLMSection()
	require.NoError(t, manager.RegisterSection(memSection))
	require.NoError(t, manager.RegisterSection(llmSection))

	require.NoError(t, manager.LoadAll())

	assert.Equal(t, 8, memSection.KeepRecent)
	assert.Equal(t, 12000, memSection.MaxHistoryTokens)
	// Unset keys keep their defaults.
	assert.Equal(t, memory.DefaultTriggerRatio, memSection.TriggerRatio)
	assert.Equal(t, "gpt-4o-mini", llmSection.Model)
}

func TestManager_LoadAllRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`sections:
  memory:
    trigger_ratio: 3.5
`), 0600))

	store, err := NewFileStore(path)
	require.NoError(t, err)

	manager := NewManager(store)
	require.NoError(t, manager.RegisterSection(NewMemorySection()))

	err = manager.LoadAll()
	assert.ErrorContains(t, err, "trigger_ratio")
}

func TestManager_SaveAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	manager := NewManager(store)
	section := NewRetrievalSection()
	section.Endpoint = "http://localhost:9200"
	require.NoError(t, manager.RegisterSection(section))

	require.NoError(t, manager.SaveAll())

	reloaded, err := NewFileStore(path)
	require.NoError(t, err)
	data, err := reloaded.GetSection(SectionIDRetrieval)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9200", data["endpoint"])
	assert.Equal(t, DefaultTopK, data["top_k"])
}

func TestMemorySection_MemoryConfig(t *testing.T) {
	section := NewMemorySection()
	section.KeepRecent = 4
	section.MaxHistoryTokens = 2000

	cfg := section.MemoryConfig()
	assert.Equal(t, 4, cfg.KeepRecent)
	assert.Equal(t, 2000, cfg.MaxHistoryTokens)
	assert.Equal(t, memory.DefaultSummarizeTimeout, cfg.SummarizeTimeout, "timeout is not file-configurable and normalizes to default")
}

func TestRetrievalSection_Validate(t *testing.T) {
	section := NewRetrievalSection()
	assert.NoError(t, section.Validate())

	section.TopK = 0
	assert.Error(t, section.Validate())
}

package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/entrhq/recall/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSSEServer returns a test server that replies to /chat/completions with
// the given content split into two SSE deltas.
func newSSEServer(t *testing.T, content string, capture *[]map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		if capture != nil {
			var body struct {
				Messages []map[string]string `json:"messages"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			*capture = body.Messages
		}

		w.Header().Set("Content-Type", "text/event-stream")
		half := len(content) / 2
		fmt.Fprintf(w, "data: {\"choices\":[{\"delta\":{\"role\":\"assistant\",\"content\":%q}}]}\n\n", content[:half])
		fmt.Fprintf(w, "data: {\"choices\":[{\"delta\":{\"content\":%q}}]}\n\n", content[half:])
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{},\"finish_reason\":\"stop\"}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
}

func TestNewProvider_RequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	_, err := NewProvider("")
	assert.Error(t, err)
}

func TestNewProvider_Options(t *testing.T) {
	p, err := NewProvider("test-key", WithModel("gpt-4o-mini"), WithBaseURL("http://localhost:1234/v1"))
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", p.GetModel())
	assert.Equal(t, "http://localhost:1234/v1", p.GetBaseURL())
	assert.Equal(t, "gpt-4o-mini", p.GetModelInfo().Name)
	assert.Equal(t, "http://localhost:1234/v1", p.GetModelInfo().Metadata["base_url"])
}

func TestProvider_Complete(t *testing.T) {
	var captured []map[string]string
	server := newSSEServer(t, "Hello from the model.", &captured)
	defer server.Close()

	p, err := NewProvider("test-key", WithBaseURL(server.URL))
	require.NoError(t, err)

	response, err := p.Complete(context.Background(), []*types.Message{
		types.NewSystemMessage("be brief"),
		types.NewUserMessage("hi"),
	})
	require.NoError(t, err)

	assert.Equal(t, types.RoleAssistant, response.Role)
	assert.Equal(t, "Hello from the model.", response.Content)

	require.Len(t, captured, 2)
	assert.Equal(t, "system", captured[0]["role"])
	assert.Equal(t, "user", captured[1]["role"])
	assert.Equal(t, "hi", captured[1]["content"])
}

func TestProvider_StreamCompletion(t *testing.T) {
	server := newSSEServer(t, "streamed", nil)
	defer server.Close()

	p, err := NewProvider("test-key", WithBaseURL(server.URL))
	require.NoError(t, err)

	stream, err := p.StreamCompletion(context.Background(), []*types.Message{types.NewUserMessage("hi")})
	require.NoError(t, err)

	var content string
	finished := false
	for chunk := range stream {
		require.NoError(t, chunk.Error)
		content += chunk.Content
		if chunk.Finished {
			finished = true
		}
	}
	assert.Equal(t, "streamed", content)
	assert.True(t, finished)
}

func TestProvider_CompleteAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	p, err := NewProvider("test-key", WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), []*types.Message{types.NewUserMessage("hi")})
	assert.ErrorContains(t, err, "status 429")
}

func TestProvider_CloneWithModel(t *testing.T) {
	p, err := NewProvider("test-key", WithModel("gpt-4o"))
	require.NoError(t, err)

	clone := p.CloneWithModel("gpt-4o-mini")
	assert.Equal(t, "gpt-4o-mini", clone.GetModel())
	assert.Equal(t, "gpt-4o", p.GetModel(), "original is unchanged")
	assert.Equal(t, "gpt-4o-mini", clone.GetModelInfo().Name)
	assert.Equal(t, "gpt-4o", p.GetModelInfo().Name)
}

package retrieval

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_RequiresBaseURL(t *testing.T) {
	_, err := NewHTTPClient("")
	assert.Error(t, err)
}

func TestHTTPClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "deploy go with docker", req.Query)
		assert.Equal(t, 3, req.TopK)

		json.NewEncoder(w).Encode(searchResponse{Results: []Passage{
			{Content: "Use multi-stage builds.", Score: 0.92, Metadata: map[string]interface{}{"path": "docs/deploy.md"}},
			{Content: "Pin base image digests.", Score: 0.81},
		}})
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, WithAPIKey("secret"))
	require.NoError(t, err)

	passages, err := client.Search(context.Background(), "deploy go with docker", 3)
	require.NoError(t, err)
	require.Len(t, passages, 2)
	assert.Equal(t, "Use multi-stage builds.", passages[0].Content)
	assert.Equal(t, "docs/deploy.md", passages[0].Metadata["path"])
	assert.Equal(t, 0.81, passages[1].Score)
}

func TestHTTPClient_SearchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "index rebuilding", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL)
	require.NoError(t, err)

	_, err = client.Search(context.Background(), "q", 5)
	assert.ErrorContains(t, err, "status 503")
}

package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/movie-search-api/pkg/schema/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenAIEmbedder(t *testing.T, handler http.HandlerFunc) *OpenAIEmbedder {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	e, err := NewOpenAIEmbedder(&config.Config{
		OpenAIAPIKey:        "test-key",
		OpenAIBaseURL:       srv.URL + "/v1",
		OpenAIModel:         "text-embedding-3-small",
		EmbeddingDimensions: 3,
	})
	require.NoError(t, err)
	return e
}

func TestOpenAIEmbedder_Embed(t *testing.T) {
	var got map[string]any
	e := newTestOpenAIEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","model":"text-embedding-3-small",
			"data":[{"object":"embedding","index":0,"embedding":[0.5,-0.25,1]}],
			"usage":{"prompt_tokens":2,"total_tokens":2}}`))
	})

	emb, err := e.Embed(context.Background(), "space epic", TaskTypeQuery)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, -0.25, 1}, emb)
	assert.Equal(t, "text-embedding-3-small", got["model"])
	assert.EqualValues(t, 3, got["dimensions"])
}

func TestOpenAIEmbedder_BatchOrderFollowsIndex(t *testing.T) {
	e := newTestOpenAIEmbedder(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[
			{"object":"embedding","index":1,"embedding":[2]},
			{"object":"embedding","index":0,"embedding":[1]}]}`))
	})

	embs, err := e.EmbedBatch(context.Background(), []string{"a", "b"}, TaskTypeDocument)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1}, {2}}, embs)
}

func TestOpenAIEmbedder_APIError(t *testing.T) {
	e := newTestOpenAIEmbedder(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error"}}`))
	})

	_, err := e.Embed(context.Background(), "avatar", TaskTypeQuery)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestNewOpenAIEmbedder_RequiresKey(t *testing.T) {
	_, err := NewOpenAIEmbedder(&config.Config{})
	assert.Error(t, err)
}

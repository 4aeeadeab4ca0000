package search

import (
	"context"
	"testing"

	"github.com/movie-search-api/internal/catalog"
	"github.com/movie-search-api/internal/models"
	"github.com/movie-search-api/pkg/schema/tfidf"
	"github.com/stretchr/testify/require"
)

var testMovies = []models.Movie{
	{Index: 0, Title: "Avatar", Embedding: []float32{1, 0, 0}},
	{Index: 1, Title: "Avatar: The Way of Water", Embedding: []float32{0.9, 0.1, 0}},
	{Index: 2, Title: "Inception", Embedding: []float32{0, 1, 0}},
	{Index: 3, Title: "Ex Machina", Embedding: []float32{0, 0.8, 0.6}},
	{Index: 4, Title: "Blade Runner 2049", Embedding: []float32{0, 0, 1}},
}

func newTestCatalog(t *testing.T, movies []models.Movie) *catalog.Catalog {
	t.Helper()
	c, err := catalog.FromMovies(movies, tfidf.DefaultOptions())
	require.NoError(t, err)
	return c
}

func titlesOf(results []models.SearchResult) []string {
	titles := make([]string, len(results))
	for i, r := range results {
		titles[i] = r.Title
	}
	return titles
}

// stubEncoder returns a fixed embedding per query, or def for unknown queries.
type stubEncoder struct {
	vectors map[string][]float64
	def     []float64
	err     error
	calls   int
}

func (e *stubEncoder) EmbedQuery(_ context.Context, query string) ([]float64, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	if v, ok := e.vectors[query]; ok {
		return v, nil
	}
	return e.def, nil
}

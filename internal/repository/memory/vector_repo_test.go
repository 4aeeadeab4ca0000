package memory

import (
	"context"
	"testing"

	"github.com/movie-search-api/internal/catalog"
	"github.com/movie-search-api/internal/models"
	"github.com/movie-search-api/pkg/schema/tfidf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *VectorSearchRepository {
	t.Helper()
	c, err := catalog.FromMovies([]models.Movie{
		{Index: 0, Title: "Avatar", Embedding: []float32{1, 0}},
		{Index: 1, Title: "Avatar Twin", Embedding: []float32{1, 0}},
		{Index: 2, Title: "Inception", Embedding: []float32{0, 1}},
		{Index: 3, Title: "Tenet", Embedding: []float32{-1, 0}},
	}, tfidf.DefaultOptions())
	require.NoError(t, err)
	return NewVectorSearchRepository(c)
}

func TestSearchMoviesByEmbedding(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.SearchMoviesByEmbedding(context.Background(), []float64{1, 0}, 10)
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, models.ScoredMovie{Index: 0, Title: "Avatar", Score: 1}, got[0])
	assert.Equal(t, models.ScoredMovie{Index: 1, Title: "Avatar Twin", Score: 1}, got[1])
	assert.Equal(t, "Inception", got[2].Title)
	assert.Equal(t, "Tenet", got[3].Title)
	assert.InDelta(t, -1, got[3].Score, 1e-9)
}

func TestSearchMoviesByEmbedding_TopK(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.SearchMoviesByEmbedding(context.Background(), []float64{0, 1}, 1)
	require.NoError(t, err)
	assert.Equal(t, []models.ScoredMovie{{Index: 2, Title: "Inception", Score: 1}}, got)
}

func TestSearchMoviesByEmbedding_DimensionMismatch(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.SearchMoviesByEmbedding(context.Background(), []float64{1, 0, 0}, 3)
	assert.Error(t, err)
}

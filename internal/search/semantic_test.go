package search

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/movie-search-api/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSemanticScorer(t *testing.T, enc *stubEncoder) *SemanticScorer {
	t.Helper()
	c := newTestCatalog(t, testMovies)
	return NewSemanticScorer(enc, memory.NewVectorSearchRepository(c))
}

func TestSemanticScorer_Ranking(t *testing.T) {
	enc := &stubEncoder{vectors: map[string][]float64{
		"blue aliens on pandora": {1, 0, 0},
	}}
	scorer := newTestSemanticScorer(t, enc)

	results, err := scorer.Search(context.Background(), "blue aliens on pandora", 3)
	require.NoError(t, err)

	// Inception, Ex Machina and Blade Runner all score 0; index order decides.
	assert.Equal(t, []string{"Avatar", "Avatar: The Way of Water", "Inception"}, titlesOf(results))
	assert.Equal(t, 1.0, results[0].Score)
	assert.Equal(t, 0.9939, results[1].Score)
	assert.Equal(t, 0.0, results[2].Score)
}

func TestSemanticScorer_ResultCountIsMinKN(t *testing.T) {
	scorer := newTestSemanticScorer(t, &stubEncoder{def: []float64{0, 1, 0}})

	for _, k := range []int{1, 4, 5, 10, 100} {
		results, err := scorer.Search(context.Background(), "dreams within dreams", k)
		require.NoError(t, err)
		assert.Len(t, results, min(k, len(testMovies)))
	}
}

func TestSemanticScorer_KeepsNegativeScores(t *testing.T) {
	scorer := newTestSemanticScorer(t, &stubEncoder{def: []float64{-1, 0, 0}})

	results, err := scorer.Search(context.Background(), "anything", 5)
	require.NoError(t, err)
	require.Len(t, results, 5)
	assert.Equal(t, "Avatar", results[4].Title)
	assert.Equal(t, -1.0, results[4].Score)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestSemanticScorer_PunctuationQueryIsEncoded(t *testing.T) {
	enc := &stubEncoder{def: []float64{0, 0, 1}}
	scorer := newTestSemanticScorer(t, enc)

	results, err := scorer.Search(context.Background(), "!!!", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, 1, enc.calls)
	assert.Equal(t, "Blade Runner 2049", results[0].Title)
}

func TestSemanticScorer_Deterministic(t *testing.T) {
	scorer := newTestSemanticScorer(t, &stubEncoder{def: []float64{0.3, 0.3, 0.4}})

	first, err := scorer.Search(context.Background(), "q", 5)
	require.NoError(t, err)
	second, err := scorer.Search(context.Background(), "q", 5)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSemanticScorer_Errors(t *testing.T) {
	tests := []struct {
		name string
		enc  *stubEncoder
	}{
		{"encoder failure", &stubEncoder{err: errors.New("connection refused")}},
		{"dimension mismatch", &stubEncoder{def: []float64{1, 0}}},
		{"empty embedding", &stubEncoder{def: []float64{}}},
		{"non-finite embedding", &stubEncoder{def: []float64{math.NaN(), 0, 0}}},
		{"all-zero embedding", &stubEncoder{def: []float64{0, 0, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := newTestSemanticScorer(t, tt.enc).Search(context.Background(), "q", 3)
			assert.ErrorIs(t, err, ErrInternal)
			assert.Nil(t, results)
		})
	}
}

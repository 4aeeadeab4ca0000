package search

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/movie-search-api/internal/catalog"
	"github.com/movie-search-api/internal/repository/file"
	"github.com/movie-search-api/pkg/schema/tfidf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexicalScorer_AvatarScenario(t *testing.T) {
	scorer := NewLexicalScorer(newTestCatalog(t, testMovies[:3]))

	results, err := scorer.Search(context.Background(), "avatar", 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"Avatar", "Avatar: The Way of Water"}, titlesOf(results))
	assert.Equal(t, 1.0, results[0].Score)
	assert.Greater(t, results[1].Score, 0.0)
	for _, r := range results {
		assert.False(t, r.Fallback)
	}
}

func TestLexicalScorer_DropsZeroSimilarity(t *testing.T) {
	scorer := NewLexicalScorer(newTestCatalog(t, testMovies))

	results, err := scorer.Search(context.Background(), "Avatar", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Avatar", "Avatar: The Way of Water"}, titlesOf(results))
}

func TestLexicalScorer_CapsToK(t *testing.T) {
	scorer := NewLexicalScorer(newTestCatalog(t, testMovies))

	results, err := scorer.Search(context.Background(), "the way of water", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Avatar: The Way of Water", results[0].Title)
}

func TestLexicalScorer_EmptyQuery(t *testing.T) {
	scorer := NewLexicalScorer(newTestCatalog(t, testMovies))

	for _, q := range []string{"!!!", "  ", "?!-"} {
		_, err := scorer.Search(context.Background(), q, 5)
		assert.ErrorIs(t, err, ErrEmptyQuery, "query %q", q)
	}
}

func TestLexicalScorer_Fallback(t *testing.T) {
	scorer := NewLexicalScorer(newTestCatalog(t, testMovies))

	t.Run("partial word matches title substring", func(t *testing.T) {
		results, err := scorer.Search(context.Background(), "ION", 5)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Inception", results[0].Title)
		assert.Equal(t, FallbackScore, results[0].Score)
		assert.True(t, results[0].Fallback)
	})

	t.Run("matches keep catalog order and stop at k", func(t *testing.T) {
		results, err := scorer.Search(context.Background(), "a", 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"Avatar", "Avatar: The Way of Water", "Ex Machina"}, titlesOf(results))
		for _, r := range results {
			assert.Equal(t, 0.5, r.Score)
		}
	})

	t.Run("raw query is matched, not the cleaned one", func(t *testing.T) {
		results, err := scorer.Search(context.Background(), "x m", 5)
		require.NoError(t, err)
		assert.Equal(t, []string{"Ex Machina"}, titlesOf(results))
	})

	t.Run("unknown digits yield an empty list", func(t *testing.T) {
		results, err := scorer.Search(context.Background(), "1999", 5)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestLexicalScorer_Properties(t *testing.T) {
	scorer := NewLexicalScorer(newTestCatalog(t, testMovies))
	queries := []string{"avatar", "the way of water", "blade runner 2049", "runner", "machina ex", "zzz"}

	for _, q := range queries {
		for _, k := range []int{1, 2, 5, 100} {
			first, err := scorer.Search(context.Background(), q, k)
			require.NoError(t, err)
			second, err := scorer.Search(context.Background(), q, k)
			require.NoError(t, err)

			assert.Equal(t, first, second, "deterministic for %q k=%d", q, k)
			assert.LessOrEqual(t, len(first), k)
			for i := 1; i < len(first); i++ {
				assert.GreaterOrEqual(t, first[i-1].Score, first[i].Score, "ordered for %q", q)
			}
		}
	}
}

func TestLexicalScorer_IdempotentLoad(t *testing.T) {
	dir := t.TempDir()
	titles := make([]string, len(testMovies))
	for i, m := range testMovies {
		titles[i] = m.Title
	}
	vectorizer, matrix, err := tfidf.Fit(titles, tfidf.DefaultOptions())
	require.NoError(t, err)

	writeArtifact(t, filepath.Join(dir, "movies.jsonl"), func(f *os.File) error {
		return file.WriteMovies(f, testMovies)
	})
	writeArtifact(t, filepath.Join(dir, "vectorizer.json"), func(f *os.File) error {
		return tfidf.WriteVectorizer(f, vectorizer)
	})
	writeArtifact(t, filepath.Join(dir, "matrix.json"), func(f *os.File) error {
		return tfidf.WriteMatrix(f, matrix)
	})

	load := func() *LexicalScorer {
		c, err := catalog.Load(context.Background(),
			file.NewCatalogRepository(filepath.Join(dir, "movies.jsonl")),
			filepath.Join(dir, "vectorizer.json"),
			filepath.Join(dir, "matrix.json"))
		require.NoError(t, err)
		return NewLexicalScorer(c)
	}
	a, b := load(), load()

	for _, q := range []string{"avatar", "water", "runner 2049", "ion"} {
		ra, err := a.Search(context.Background(), q, 5)
		require.NoError(t, err)
		rb, err := b.Search(context.Background(), q, 5)
		require.NoError(t, err)
		assert.Equal(t, ra, rb, "query %q", q)
	}
}

func writeArtifact(t *testing.T, path string, write func(*os.File) error) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, write(f))
	require.NoError(t, f.Close())
}

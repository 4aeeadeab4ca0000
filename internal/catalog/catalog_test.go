package catalog

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/movie-search-api/internal/models"
	"github.com/movie-search-api/pkg/schema/tfidf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceRepo struct {
	movies []models.Movie
	err    error
}

func (r sliceRepo) LoadMovies(context.Context) ([]models.Movie, error) {
	return r.movies, r.err
}

var movies = []models.Movie{
	{Index: 0, Title: "Avatar", Embedding: []float32{1, 0}},
	{Index: 1, Title: "Avatar: The Way of Water", Embedding: []float32{1, 1}},
	{Index: 2, Title: "Inception", Embedding: []float32{0, 1}},
}

func writeArtifacts(t *testing.T, titles []string) (string, string) {
	t.Helper()
	vectorizer, matrix, err := tfidf.Fit(titles, tfidf.DefaultOptions())
	require.NoError(t, err)

	dir := t.TempDir()
	vPath := filepath.Join(dir, "tfidf_vectorizer.json")
	mPath := filepath.Join(dir, "tfidf_matrix.json")

	vf, err := os.Create(vPath)
	require.NoError(t, err)
	require.NoError(t, tfidf.WriteVectorizer(vf, vectorizer))
	require.NoError(t, vf.Close())

	mf, err := os.Create(mPath)
	require.NoError(t, err)
	require.NoError(t, tfidf.WriteMatrix(mf, matrix))
	require.NoError(t, mf.Close())

	return vPath, mPath
}

func TestFromMovies(t *testing.T) {
	c, err := FromMovies(movies, tfidf.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, "Inception", c.Title(2))
	assert.Equal(t, 3, c.Sparse().Rows())
	assert.Equal(t, 2, c.Dense().Dim())
	assert.Equal(t, c.Vectorizer().VocabularySize(), c.Sparse().Cols())
}

func TestLoad(t *testing.T) {
	vPath, mPath := writeArtifacts(t, []string{"Avatar", "Avatar: The Way of Water", "Inception"})

	c, err := Load(context.Background(), sliceRepo{movies: movies}, vPath, mPath)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, "Avatar", c.Title(0))
}

func TestLoad_Errors(t *testing.T) {
	vPath, mPath := writeArtifacts(t, []string{"Avatar", "Avatar: The Way of Water", "Inception"})
	ctx := context.Background()

	t.Run("repository failure", func(t *testing.T) {
		_, err := Load(ctx, sliceRepo{err: errors.New("db down")}, vPath, mPath)
		assert.ErrorContains(t, err, "db down")
	})

	t.Run("index does not match position", func(t *testing.T) {
		shuffled := []models.Movie{movies[1], movies[0], movies[2]}
		_, err := Load(ctx, sliceRepo{movies: shuffled}, vPath, mPath)
		assert.ErrorContains(t, err, "catalog index")
	})

	t.Run("row count mismatch", func(t *testing.T) {
		_, err := Load(ctx, sliceRepo{movies: movies[:2]}, vPath, mPath)
		assert.ErrorContains(t, err, "rows")
	})

	t.Run("missing artifact", func(t *testing.T) {
		_, err := Load(ctx, sliceRepo{movies: movies}, filepath.Join(t.TempDir(), "nope.json"), mPath)
		assert.Error(t, err)
	})

	t.Run("ragged embeddings", func(t *testing.T) {
		ragged := []models.Movie{movies[0], {Index: 1, Title: "X", Embedding: []float32{1}}, movies[2]}
		_, err := Load(ctx, sliceRepo{movies: ragged}, vPath, mPath)
		assert.ErrorContains(t, err, "dimensions")
	})
}

func TestNew_VocabularyMismatch(t *testing.T) {
	vectorizer, _, err := tfidf.Fit([]string{"Avatar", "Inception"}, tfidf.DefaultOptions())
	require.NoError(t, err)
	_, matrix, err := tfidf.Fit([]string{"Avatar Water", "Inception"}, tfidf.DefaultOptions())
	require.NoError(t, err)
	dense, err := NewDense([][]float32{{1}, {1}})
	require.NoError(t, err)

	_, err = New([]string{"Avatar", "Inception"}, vectorizer, matrix, dense)
	assert.ErrorContains(t, err, "columns")
}

func TestNew_CopiesTitles(t *testing.T) {
	titles := []string{"Avatar", "Inception"}
	vectorizer, matrix, err := tfidf.Fit(titles, tfidf.DefaultOptions())
	require.NoError(t, err)
	dense, err := NewDense([][]float32{{1}, {1}})
	require.NoError(t, err)

	c, err := New(titles, vectorizer, matrix, dense)
	require.NoError(t, err)
	titles[0] = "Changed"
	assert.Equal(t, "Avatar", c.Title(0))
}

func TestDense_CosineSimilarities(t *testing.T) {
	d, err := NewDense([][]float32{{1, 0}, {1, 1}, {0, 1}, {0, 0}})
	require.NoError(t, err)

	scores, err := d.CosineSimilarities([]float64{0, 2})
	require.NoError(t, err)
	assert.InDelta(t, 0, scores[0], 1e-9)
	assert.InDelta(t, 1/math.Sqrt2, scores[1], 1e-9)
	assert.InDelta(t, 1, scores[2], 1e-9)
	assert.Zero(t, scores[3])

	scores, err = d.CosineSimilarities([]float64{0, 0})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 0}, scores)

	_, err = d.CosineSimilarities([]float64{1, 2, 3})
	assert.Error(t, err)
}

func TestDense_Empty(t *testing.T) {
	d, err := NewDense(nil)
	require.NoError(t, err)
	assert.Zero(t, d.Rows())

	_, err = NewDense([][]float32{{}})
	assert.Error(t, err)
}

// Package catalog holds the immutable movie catalog shared by both search
// pipelines. Row i of every representation belongs to title i.
package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/movie-search-api/internal/models"
	"github.com/movie-search-api/internal/repository"
	"github.com/movie-search-api/pkg/schema/tfidf"
)

// Catalog is the ordered title list with its sparse and dense representations.
// It is never mutated after construction, so concurrent reads need no locking.
type Catalog struct {
	titles     []string
	vectorizer *tfidf.Vectorizer
	sparse     *tfidf.Matrix
	dense      *Dense
}

// New assembles a catalog and checks that every representation has one row
// per title.
func New(titles []string, vectorizer *tfidf.Vectorizer, sparse *tfidf.Matrix, dense *Dense) (*Catalog, error) {
	if vectorizer == nil || sparse == nil || dense == nil {
		return nil, fmt.Errorf("catalog requires vectorizer, sparse matrix and dense matrix")
	}
	if sparse.Rows() != len(titles) {
		return nil, fmt.Errorf("sparse matrix has %d rows for %d titles", sparse.Rows(), len(titles))
	}
	if dense.Rows() != len(titles) {
		return nil, fmt.Errorf("dense matrix has %d rows for %d titles", dense.Rows(), len(titles))
	}
	if vectorizer.VocabularySize() != sparse.Cols() {
		return nil, fmt.Errorf("vectorizer has %d terms, sparse matrix has %d columns",
			vectorizer.VocabularySize(), sparse.Cols())
	}

	owned := make([]string, len(titles))
	copy(owned, titles)

	return &Catalog{
		titles:     owned,
		vectorizer: vectorizer,
		sparse:     sparse,
		dense:      dense,
	}, nil
}

// Len returns the number of titles.
func (c *Catalog) Len() int { return len(c.titles) }

// Title returns the title at catalog index i.
func (c *Catalog) Title(i int) string { return c.titles[i] }

// Vectorizer returns the frozen TF-IDF vectorizer.
func (c *Catalog) Vectorizer() *tfidf.Vectorizer { return c.vectorizer }

// Sparse returns the TF-IDF matrix.
func (c *Catalog) Sparse() *tfidf.Matrix { return c.sparse }

// Dense returns the embedding matrix.
func (c *Catalog) Dense() *Dense { return c.dense }

// Load builds a catalog from the movies supplied by repo and the TF-IDF
// artifacts at vectorizerPath and matrixPath.
func Load(ctx context.Context, repo repository.CatalogRepository, vectorizerPath, matrixPath string) (*Catalog, error) {
	movies, err := repo.LoadMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("load movies: %w", err)
	}

	titles := make([]string, len(movies))
	vectors := make([][]float32, len(movies))
	for i, m := range movies {
		if m.Index != i {
			return nil, fmt.Errorf("movie %q has catalog index %d at position %d", m.Title, m.Index, i)
		}
		titles[i] = m.Title
		vectors[i] = m.Embedding
	}

	dense, err := NewDense(vectors)
	if err != nil {
		return nil, fmt.Errorf("build dense matrix: %w", err)
	}

	vectorizer, err := readVectorizer(vectorizerPath)
	if err != nil {
		return nil, err
	}
	sparse, err := readMatrix(matrixPath)
	if err != nil {
		return nil, err
	}

	return New(titles, vectorizer, sparse, dense)
}

// FromMovies builds a catalog whose TF-IDF representation is fitted on the
// movie titles.
func FromMovies(movies []models.Movie, opts tfidf.Options) (*Catalog, error) {
	titles := make([]string, len(movies))
	vectors := make([][]float32, len(movies))
	for i, m := range movies {
		titles[i] = m.Title
		vectors[i] = m.Embedding
	}

	vectorizer, sparse, err := tfidf.Fit(titles, opts)
	if err != nil {
		return nil, fmt.Errorf("fit tfidf: %w", err)
	}
	dense, err := NewDense(vectors)
	if err != nil {
		return nil, fmt.Errorf("build dense matrix: %w", err)
	}
	return New(titles, vectorizer, sparse, dense)
}

func readVectorizer(path string) (*tfidf.Vectorizer, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open vectorizer: %w", err)
	}
	defer f.Close()

	v, err := tfidf.ReadVectorizer(f)
	if err != nil {
		return nil, fmt.Errorf("read vectorizer %s: %w", path, err)
	}
	return v, nil
}

func readMatrix(path string) (*tfidf.Matrix, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open tfidf matrix: %w", err)
	}
	defer f.Close()

	m, err := tfidf.ReadMatrix(f)
	if err != nil {
		return nil, fmt.Errorf("read tfidf matrix %s: %w", path, err)
	}
	return m, nil
}

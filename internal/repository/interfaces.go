package repository

import (
	"context"

	"github.com/movie-search-api/internal/models"
)

// CatalogRepository supplies the ordered movie catalog at startup
type CatalogRepository interface {
	// LoadMovies returns every movie ordered by catalog index
	LoadMovies(ctx context.Context) ([]models.Movie, error)
}

// VectorSearchRepository defines operations for vector similarity search
type VectorSearchRepository interface {
	// SearchMoviesByEmbedding ranks every movie by cosine similarity to embedding
	// and returns the topK best, ties broken by ascending catalog index
	SearchMoviesByEmbedding(ctx context.Context, embedding []float64, topK int) ([]models.ScoredMovie, error)
}

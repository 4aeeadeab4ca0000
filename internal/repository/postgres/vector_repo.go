package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/movie-search-api/internal/models"
	"github.com/movie-search-api/internal/repository"
	"github.com/pgvector/pgvector-go"
)

// Ensure VectorSearchRepository implements repository.VectorSearchRepository
var _ repository.VectorSearchRepository = (*VectorSearchRepository)(nil)

// VectorSearchRepository implements repository.VectorSearchRepository for PostgreSQL with pgvector.
// The scan is exact: no ANN index is consulted, so every movie is ranked.
type VectorSearchRepository struct {
	db *sqlx.DB
}

// NewVectorSearchRepository creates a new PostgreSQL vector search repository
func NewVectorSearchRepository(db *sqlx.DB) *VectorSearchRepository {
	return &VectorSearchRepository{db: db}
}

// SearchMoviesByEmbedding performs cosine similarity search on movies using pgvector
func (r *VectorSearchRepository) SearchMoviesByEmbedding(ctx context.Context, embedding []float64, topK int) ([]models.ScoredMovie, error) {
	vec := pgvector.NewVector(float32Slice(embedding))

	rows, err := r.db.QueryxContext(ctx, `
		SELECT catalog_index, title, score
		FROM (
			SELECT catalog_index, title,
			       CASE WHEN embedding <=> $1::vector = 'NaN'::float8 THEN 0
			            ELSE 1 - (embedding <=> $1::vector) END AS score
			FROM movies
		) ranked
		ORDER BY score DESC, catalog_index
		LIMIT $2
	`, vec, topK)
	if err != nil {
		return nil, fmt.Errorf("vector search movies: %w", err)
	}
	defer rows.Close()

	var results []models.ScoredMovie
	for rows.Next() {
		var m models.ScoredMovie
		if err := rows.StructScan(&m); err != nil {
			return nil, fmt.Errorf("scan movie result: %w", err)
		}
		results = append(results, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movie results: %w", err)
	}

	if results == nil {
		results = []models.ScoredMovie{}
	}
	return results, nil
}

// float32Slice converts []float64 to []float32 for pgvector
func float32Slice(f64 []float64) []float32 {
	f32 := make([]float32, len(f64))
	for i, v := range f64 {
		f32[i] = float32(v)
	}
	return f32
}

package memory

import (
	"context"
	"fmt"

	"github.com/movie-search-api/internal/catalog"
	"github.com/movie-search-api/internal/models"
	"github.com/movie-search-api/internal/ranking"
	"github.com/movie-search-api/internal/repository"
)

// Ensure VectorSearchRepository implements repository.VectorSearchRepository
var _ repository.VectorSearchRepository = (*VectorSearchRepository)(nil)

// VectorSearchRepository ranks the in-memory catalog embeddings exactly
type VectorSearchRepository struct {
	catalog *catalog.Catalog
}

// NewVectorSearchRepository creates an in-memory vector search repository
func NewVectorSearchRepository(c *catalog.Catalog) *VectorSearchRepository {
	return &VectorSearchRepository{catalog: c}
}

// SearchMoviesByEmbedding scores every catalog embedding and returns the topK
func (r *VectorSearchRepository) SearchMoviesByEmbedding(_ context.Context, embedding []float64, topK int) ([]models.ScoredMovie, error) {
	scores, err := r.catalog.Dense().CosineSimilarities(embedding)
	if err != nil {
		return nil, fmt.Errorf("cosine similarity: %w", err)
	}

	top := ranking.TopK(scores, topK)
	results := make([]models.ScoredMovie, len(top))
	for i, idx := range top {
		results[i] = models.ScoredMovie{
			Index: idx,
			Title: r.catalog.Title(idx),
			Score: scores[idx],
		}
	}
	return results, nil
}

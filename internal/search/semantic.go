package search

import (
	"context"
	"fmt"
	"math"

	"github.com/movie-search-api/internal/models"
	"github.com/movie-search-api/internal/ranking"
	"github.com/movie-search-api/internal/repository"
)

// QueryEncoder maps a raw query into the dense embedding space.
type QueryEncoder interface {
	EmbedQuery(ctx context.Context, query string) ([]float64, error)
}

// SemanticScorer ranks catalog titles by embedding cosine similarity.
type SemanticScorer struct {
	encoder QueryEncoder
	vectors repository.VectorSearchRepository
}

// NewSemanticScorer creates a semantic scorer that encodes queries with
// encoder and ranks them with vectors.
func NewSemanticScorer(encoder QueryEncoder, vectors repository.VectorSearchRepository) *SemanticScorer {
	return &SemanticScorer{encoder: encoder, vectors: vectors}
}

// Search returns the k titles most similar to query, highest first. The query
// is encoded as given; there is no positivity filter and no fallback.
func (s *SemanticScorer) Search(ctx context.Context, query string, k int) ([]models.SearchResult, error) {
	embedding, err := s.encoder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: encode query: %w", ErrInternal, err)
	}
	if err := checkEmbedding(embedding); err != nil {
		return nil, fmt.Errorf("%w: encode query: %w", ErrInternal, err)
	}

	scored, err := s.vectors.SearchMoviesByEmbedding(ctx, embedding, k)
	if err != nil {
		return nil, fmt.Errorf("%w: rank embeddings: %w", ErrInternal, err)
	}

	results := make([]models.SearchResult, len(scored))
	for i, m := range scored {
		results[i] = models.SearchResult{
			Title: m.Title,
			Score: ranking.Round4(m.Score),
		}
	}
	return results, nil
}

func checkEmbedding(embedding []float64) error {
	if len(embedding) == 0 {
		return fmt.Errorf("empty embedding")
	}
	var sum float64
	for i, x := range embedding {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("non-finite value at dimension %d", i)
		}
		sum += x * x
	}
	if sum == 0 {
		return fmt.Errorf("zero-norm embedding")
	}
	return nil
}

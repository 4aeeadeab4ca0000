package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/movie-search-api/internal/metrics"
	"github.com/movie-search-api/internal/models"
	"github.com/movie-search-api/internal/search"
	"go.uber.org/zap"
)

// Result count bounds accepted by both search methods
const (
	DefaultK = 10
	MinK     = 1
	MaxK     = 100
)

// Scorer ranks catalog titles for a query
type Scorer interface {
	Search(ctx context.Context, query string, k int) ([]models.SearchResult, error)
}

// MovieSearchService validates search requests, dispatches them to one
// scorer and assembles the response envelope
type MovieSearchService struct {
	lexical     Scorer
	semantic    Scorer
	catalogSize int
	logger      *zap.Logger
}

// NewMovieSearchService creates a new movie search service
func NewMovieSearchService(lexical, semantic Scorer, catalogSize int, logger *zap.Logger) *MovieSearchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MovieSearchService{
		lexical:     lexical,
		semantic:    semantic,
		catalogSize: catalogSize,
		logger:      logger,
	}
}

// SearchTFIDF runs lexical search
func (s *MovieSearchService) SearchTFIDF(ctx context.Context, query string, k int) (models.SearchResponse, error) {
	return s.search(ctx, models.MethodTFIDF, s.lexical, query, k)
}

// SearchDeepLearning runs semantic search
func (s *MovieSearchService) SearchDeepLearning(ctx context.Context, query string, k int) (models.SearchResponse, error) {
	return s.search(ctx, models.MethodDeepLearning, s.semantic, query, k)
}

// MovieCount returns the catalog size
func (s *MovieSearchService) MovieCount() models.MovieCountResponse {
	return models.MovieCountResponse{TotalMovies: s.catalogSize}
}

// ValidateParams rejects an empty query or k outside [MinK, MaxK]
func ValidateParams(query string, k int) error {
	if query == "" {
		return fmt.Errorf("%w: q must contain at least 1 character", search.ErrOutOfRange)
	}
	if k < MinK || k > MaxK {
		return fmt.Errorf("%w: k must be between %d and %d, got %d", search.ErrOutOfRange, MinK, MaxK, k)
	}
	return nil
}

func (s *MovieSearchService) search(ctx context.Context, method string, scorer Scorer, query string, k int) (models.SearchResponse, error) {
	if err := ValidateParams(query, k); err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(method, "invalid").Inc()
		return models.SearchResponse{}, err
	}

	start := time.Now()
	results, err := scorer.Search(ctx, query, k)
	metrics.SearchDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())

	if err != nil {
		outcome := "error"
		if errors.Is(err, search.ErrEmptyQuery) {
			outcome = "empty_query"
		} else {
			s.logger.Error("Search failed",
				zap.String("method", method),
				zap.String("query", query),
				zap.Int("k", k),
				zap.Error(err),
			)
		}
		metrics.SearchRequestsTotal.WithLabelValues(method, outcome).Inc()
		return models.SearchResponse{}, err
	}

	resp := models.SearchResponse{
		Query:   query,
		Method:  method,
		Count:   len(results),
		Results: results,
	}
	if resp.UsedFallback() {
		metrics.LexicalFallbackTotal.Inc()
	}
	metrics.SearchRequestsTotal.WithLabelValues(method, "ok").Inc()

	s.logger.Debug("Search completed",
		zap.String("method", method),
		zap.Int("k", k),
		zap.Int("count", resp.Count),
		zap.Bool("fallback", resp.UsedFallback()),
		zap.Duration("duration", time.Since(start)),
	)
	return resp, nil
}

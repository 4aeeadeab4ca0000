package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/movie-search-api/internal/catalog"
	"github.com/movie-search-api/internal/models"
	"github.com/movie-search-api/internal/ranking"
)

// FallbackScore is assigned to titles found by substring matching. It is a
// fixed marker for a weak heuristic match, not a similarity.
const FallbackScore = 0.5

// overFetch is how many candidates per requested result are ranked before
// dropping non-positive similarities.
const overFetch = 2

// LexicalScorer ranks catalog titles by TF-IDF cosine similarity.
type LexicalScorer struct {
	catalog *catalog.Catalog
}

// NewLexicalScorer creates a lexical scorer over c.
func NewLexicalScorer(c *catalog.Catalog) *LexicalScorer {
	return &LexicalScorer{catalog: c}
}

// Search returns at most k titles with positive similarity to query, highest
// first. If none qualify it returns up to k titles containing the raw query,
// in catalog order, each scored FallbackScore.
func (s *LexicalScorer) Search(_ context.Context, query string, k int) ([]models.SearchResult, error) {
	cleaned := NormalizeQuery(query)
	if cleaned == "" {
		return nil, ErrEmptyQuery
	}

	projected := s.catalog.Vectorizer().Transform(cleaned)
	scores, err := s.catalog.Sparse().CosineSimilarities(projected)
	if err != nil {
		return nil, fmt.Errorf("%w: tfidf similarity: %w", ErrInternal, err)
	}

	results := make([]models.SearchResult, 0, k)
	for _, idx := range ranking.TopK(scores, overFetch*k) {
		if len(results) == k {
			break
		}
		if scores[idx] <= 0 {
			continue
		}
		results = append(results, models.SearchResult{
			Title: s.catalog.Title(idx),
			Score: ranking.Round4(scores[idx]),
		})
	}

	if len(results) == 0 {
		results = s.titleMatches(query, k)
	}
	return results, nil
}

// titleMatches scans titles in catalog order for case-insensitive containment
// of the raw query.
func (s *LexicalScorer) titleMatches(query string, k int) []models.SearchResult {
	needle := strings.ToLower(query)
	results := make([]models.SearchResult, 0, k)
	for i := 0; i < s.catalog.Len() && len(results) < k; i++ {
		title := s.catalog.Title(i)
		if strings.Contains(strings.ToLower(title), needle) {
			results = append(results, models.SearchResult{
				Title:    title,
				Score:    FallbackScore,
				Fallback: true,
			})
		}
	}
	return results
}

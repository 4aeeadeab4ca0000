package services

import (
	"context"
	"fmt"
	"io"

	"github.com/movie-search-api/pkg/schema/config"
)

// EmbeddingsService handles text embedding operations using a pluggable backend
type EmbeddingsService struct {
	embedder Embedder
	provider string
}

// NewEmbeddingsService creates the embeddings service for cfg.EmbeddingProvider
func NewEmbeddingsService(ctx context.Context, cfg *config.Config) (*EmbeddingsService, error) {
	var embedder Embedder
	switch cfg.EmbeddingProvider {
	case "vertex":
		vertex, err := NewVertexEmbedder(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create Vertex AI embedder: %w", err)
		}
		embedder = vertex
	case "openai":
		openaiEmbedder, err := NewOpenAIEmbedder(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenAI embedder: %w", err)
		}
		embedder = openaiEmbedder
	case "custom", "":
		embedder = NewCustomEmbedder(cfg)
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.EmbeddingProvider)
	}

	return &EmbeddingsService{
		embedder: embedder,
		provider: cfg.EmbeddingProvider,
	}, nil
}

// NewEmbeddingsServiceWith wraps an existing embedder
func NewEmbeddingsServiceWith(embedder Embedder, provider string) *EmbeddingsService {
	return &EmbeddingsService{embedder: embedder, provider: provider}
}

// Provider returns the configured provider name
func (s *EmbeddingsService) Provider() string {
	return s.provider
}

// EmbedQuery embeds a search query for retrieval
func (s *EmbeddingsService) EmbedQuery(ctx context.Context, query string) ([]float64, error) {
	return s.embedder.Embed(ctx, query, TaskTypeQuery)
}

// Close releases the underlying embedder if it holds resources
func (s *EmbeddingsService) Close() error {
	if c, ok := s.embedder.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

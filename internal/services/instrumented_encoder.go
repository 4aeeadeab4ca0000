package services

import (
	"context"
	"fmt"
	"time"

	"github.com/movie-search-api/internal/metrics"
	"github.com/movie-search-api/internal/search"
	"go.uber.org/zap"
)

// InstrumentedEncoder wraps a query encoder with latency metrics and logging
type InstrumentedEncoder struct {
	inner    search.QueryEncoder
	provider string
	logger   *zap.Logger
}

// NewInstrumentedEncoder wraps inner for observability
func NewInstrumentedEncoder(inner search.QueryEncoder, provider string, logger *zap.Logger) *InstrumentedEncoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstrumentedEncoder{inner: inner, provider: provider, logger: logger}
}

// EmbedQuery delegates to the inner encoder and records the outcome
func (e *InstrumentedEncoder) EmbedQuery(ctx context.Context, query string) ([]float64, error) {
	start := time.Now()
	embedding, err := e.inner.EmbedQuery(ctx, query)
	duration := time.Since(start)

	if err != nil {
		metrics.QueryEncodeDuration.WithLabelValues(e.provider, "error").Observe(duration.Seconds())
		e.logger.Error("Query embedding failed",
			zap.String("provider", e.provider),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, fmt.Errorf("embed query: %w", err)
	}

	metrics.QueryEncodeDuration.WithLabelValues(e.provider, "ok").Observe(duration.Seconds())
	e.logger.Debug("Query embedding completed",
		zap.String("provider", e.provider),
		zap.Duration("duration", duration),
		zap.Int("dimensions", len(embedding)),
	)
	return embedding, nil
}

package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/movie-search-api/internal/metrics"
	"github.com/movie-search-api/internal/search"
	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

const embeddingCachePrefix = "movie-search:qemb:"

// CachedEncoder serves repeated queries from Redis. Cache failures degrade to
// calling the inner encoder.
type CachedEncoder struct {
	inner     search.QueryEncoder
	client    rueidis.Client
	namespace string
	ttl       time.Duration
	logger    *zap.Logger
}

// NewCachedEncoder wraps inner with a Redis cache. namespace must change
// whenever the embedding model or its settings change.
func NewCachedEncoder(inner search.QueryEncoder, client rueidis.Client, namespace string, ttl time.Duration, logger *zap.Logger) *CachedEncoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedEncoder{
		inner:     inner,
		client:    client,
		namespace: namespace,
		ttl:       ttl,
		logger:    logger,
	}
}

// NewRedisClient connects to the cache at addr
func NewRedisClient(addr, password string) (rueidis.Client, error) {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{addr},
		Password:     password,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}
	return client, nil
}

// EmbedQuery returns the cached embedding for query or computes and stores it
func (e *CachedEncoder) EmbedQuery(ctx context.Context, query string) ([]float64, error) {
	key := e.key(query)

	if embedding, ok := e.lookup(ctx, key); ok {
		return embedding, nil
	}

	embedding, err := e.inner.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	e.store(ctx, key, embedding)
	return embedding, nil
}

func (e *CachedEncoder) key(query string) string {
	sum := sha256.Sum256([]byte(query))
	return embeddingCachePrefix + e.namespace + ":" + hex.EncodeToString(sum[:])
}

func (e *CachedEncoder) lookup(ctx context.Context, key string) ([]float64, bool) {
	data, err := e.client.Do(ctx, e.client.B().Get().Key(key).Build()).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			metrics.EmbeddingCacheLookupsTotal.WithLabelValues("miss").Inc()
			return nil, false
		}
		metrics.EmbeddingCacheLookupsTotal.WithLabelValues("error").Inc()
		e.logger.Warn("Embedding cache lookup failed", zap.Error(err))
		return nil, false
	}

	var embedding []float64
	if err := json.Unmarshal(data, &embedding); err != nil || len(embedding) == 0 {
		metrics.EmbeddingCacheLookupsTotal.WithLabelValues("error").Inc()
		e.logger.Warn("Discarding malformed cached embedding", zap.String("key", key))
		return nil, false
	}

	metrics.EmbeddingCacheLookupsTotal.WithLabelValues("hit").Inc()
	return embedding, true
}

func (e *CachedEncoder) store(ctx context.Context, key string, embedding []float64) {
	data, err := json.Marshal(embedding)
	if err != nil {
		e.logger.Warn("Failed to encode embedding for cache", zap.Error(err))
		return
	}
	var cmd rueidis.Completed
	if e.ttl > 0 {
		cmd = e.client.B().Set().Key(key).Value(string(data)).Ex(e.ttl).Build()
	} else {
		cmd = e.client.B().Set().Key(key).Value(string(data)).Build()
	}
	if err := e.client.Do(ctx, cmd).Error(); err != nil {
		e.logger.Warn("Embedding cache store failed", zap.Error(err))
	}
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/movie-search-api/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentedEncoder_Success(t *testing.T) {
	inner := &countingEncoder{embedding: []float64{0.1, 0.2}}
	enc := NewInstrumentedEncoder(inner, "custom", nil)

	emb, err := enc.EmbedQuery(context.Background(), "avatar")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2}, emb)
	assert.Equal(t, 1, inner.calls)
	assert.NotZero(t, testutil.CollectAndCount(metrics.QueryEncodeDuration))
}

func TestInstrumentedEncoder_WrapsError(t *testing.T) {
	cause := errors.New("connection refused")
	enc := NewInstrumentedEncoder(&countingEncoder{err: cause}, "custom", nil)

	_, err := enc.EmbedQuery(context.Background(), "avatar")
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "embed query")
}

package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPing_NotConfigured(t *testing.T) {
	assert.Nil(t, GetPostgres())
	assert.ErrorIs(t, Ping(context.Background()), ErrNotConfigured)
	assert.NoError(t, ClosePostgres())
}

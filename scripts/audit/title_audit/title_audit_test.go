package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/movie-search-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpectationList_Set(t *testing.T) {
	var l expectationList
	require.NoError(t, l.Set("dark knight=The Dark Knight"))
	assert.Equal(t, expectationList{{Query: "dark knight", Title: "The Dark Knight"}}, l)

	assert.Error(t, l.Set("no separator"))
	assert.Error(t, l.Set("=Title"))
}

func TestLoadExpectations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expectations.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
expectations:
  - query: avatar
    title: Avatar
  - query: dream heist
    title: Inception
`), 0o600))

	got, err := loadExpectations(path)
	require.NoError(t, err)
	assert.Equal(t, []Expectation{
		{Query: "avatar", Title: "Avatar"},
		{Query: "dream heist", Title: "Inception"},
	}, got)

	require.NoError(t, os.WriteFile(path, []byte("expectations:\n  - query: avatar\n"), 0o600))
	_, err = loadExpectations(path)
	assert.Error(t, err)
}

func TestRankOf(t *testing.T) {
	results := []models.SearchResult{{Title: "Avatar"}, {Title: "Avatar: The Way of Water"}}
	assert.Equal(t, 1, rankOf(results, "avatar"))
	assert.Equal(t, 2, rankOf(results, "Avatar: The Way of Water"))
	assert.Equal(t, 0, rankOf(results, "Inception"))
}

package file

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/movie-search-api/internal/models"
	"github.com/movie-search-api/internal/repository"
)

// maxLineSize bounds a single JSONL record; a 3072-dim embedding fits well within it
const maxLineSize = 16 << 20

// Ensure CatalogRepository implements repository.CatalogRepository
var _ repository.CatalogRepository = (*CatalogRepository)(nil)

// CatalogRepository reads the movie catalog from a JSONL artifact.
//
// One JSON object per line, in catalog order:
//
//	{"index": 0, "title": "Avatar", "embedding": [0.1, 0.2, ...]}
type CatalogRepository struct {
	path string
}

// NewCatalogRepository creates a catalog repository backed by the file at path
func NewCatalogRepository(path string) *CatalogRepository {
	return &CatalogRepository{path: path}
}

// LoadMovies reads every movie from the JSONL file
func (r *CatalogRepository) LoadMovies(ctx context.Context) ([]models.Movie, error) {
	f, err := os.Open(filepath.Clean(r.path))
	if err != nil {
		return nil, fmt.Errorf("open movies file: %w", err)
	}
	defer f.Close()

	return ReadMovies(ctx, f)
}

// ReadMovies decodes JSONL movie records from rd
func ReadMovies(ctx context.Context, rd io.Reader) ([]models.Movie, error) {
	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var movies []models.Movie
	line := 0
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var m models.Movie
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("decode movie on line %d: %w", line, err)
		}
		movies = append(movies, m)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan movies: %w", err)
	}

	if movies == nil {
		movies = []models.Movie{}
	}
	return movies, nil
}

// WriteMovies encodes movies as JSONL records
func WriteMovies(w io.Writer, movies []models.Movie) error {
	encoder := json.NewEncoder(w)
	for _, m := range movies {
		if err := encoder.Encode(m); err != nil {
			return fmt.Errorf("encode movie %d: %w", m.Index, err)
		}
	}
	return nil
}

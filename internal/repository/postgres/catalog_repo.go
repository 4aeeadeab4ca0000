package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/movie-search-api/internal/models"
	"github.com/movie-search-api/internal/repository"
	"github.com/pgvector/pgvector-go"
)

// Ensure CatalogRepository implements repository.CatalogRepository
var _ repository.CatalogRepository = (*CatalogRepository)(nil)

// CatalogRepository reads and writes the movies table
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository creates a new PostgreSQL catalog repository
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// EnsureSchema creates the vector extension and the movies table
func (r *CatalogRepository) EnsureSchema(ctx context.Context, dimensions int) error {
	if _, err := r.db.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS vector`); err != nil {
		return fmt.Errorf("create vector extension: %w", err)
	}

	_, err := r.db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS movies (
			catalog_index INTEGER PRIMARY KEY,
			title         TEXT NOT NULL,
			embedding     vector(%d) NOT NULL
		)
	`, dimensions))
	if err != nil {
		return fmt.Errorf("create movies table: %w", err)
	}
	return nil
}

// LoadMovies returns every movie ordered by catalog index
func (r *CatalogRepository) LoadMovies(ctx context.Context) ([]models.Movie, error) {
	rows, err := r.db.QueryxContext(ctx, `
		SELECT catalog_index, title, embedding
		FROM movies
		ORDER BY catalog_index
	`)
	if err != nil {
		return nil, fmt.Errorf("query movies: %w", err)
	}
	defer rows.Close()

	var movies []models.Movie
	for rows.Next() {
		var m models.Movie
		var vec pgvector.Vector
		if err := rows.Scan(&m.Index, &m.Title, &vec); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		m.Embedding = vec.Slice()
		movies = append(movies, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}

	if movies == nil {
		movies = []models.Movie{}
	}
	return movies, nil
}

// UpsertMovies inserts or replaces movies in a single transaction
func (r *CatalogRepository) UpsertMovies(ctx context.Context, movies []models.Movie) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO movies (catalog_index, title, embedding)
		VALUES ($1, $2, $3)
		ON CONFLICT (catalog_index) DO UPDATE
		SET title = EXCLUDED.title, embedding = EXCLUDED.embedding
	`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, m := range movies {
		if _, err := stmt.ExecContext(ctx, m.Index, m.Title, pgvector.NewVector(m.Embedding)); err != nil {
			return fmt.Errorf("upsert movie %d: %w", m.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}
	return nil
}

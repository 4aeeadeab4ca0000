// setup
//
// This script prepares PostgreSQL for the movie catalog: it enables the
// pgvector extension and creates the movies table with a vector column sized
// for the configured embedding model.
//
// Environment variables:
//   POSTGRES_URI          - PostgreSQL connection string
//   EMBEDDING_DIMENSIONS  - Embedding width (default: 768)
//
// Usage:
//   go run ./scripts/setup
//   go run ./scripts/setup -dimensions 384
//
// Next step: load the catalog artifacts with ./scripts/upsert

package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"
	"github.com/movie-search-api/internal/repository/postgres"
	"github.com/movie-search-api/pkg/schema/config"
	"github.com/movie-search-api/pkg/schema/db"
)

func main() {
	godotenv.Load()

	cfg := config.GetConfig()
	dimensions := flag.Int("dimensions", cfg.EmbeddingDimensions, "Embedding dimensions for the vector column")
	flag.Parse()

	if *dimensions <= 0 {
		log.Fatalf("-dimensions must be positive, got %d", *dimensions)
	}

	ctx := context.Background()
	if err := db.InitPostgres(ctx); err != nil {
		log.Fatalf("Failed to initialize PostgreSQL: %v", err)
	}
	defer db.ClosePostgres()

	repo := postgres.NewCatalogRepository(db.GetPostgres())
	log.Printf("Creating movies table with vector(%d)...", *dimensions)
	if err := repo.EnsureSchema(ctx, *dimensions); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}

	log.Println("Schema ready")
	log.Println()
	log.Println("Next step: load the catalog:")
	log.Println("  go run ./scripts/upsert -input artifacts/movies.jsonl")
}

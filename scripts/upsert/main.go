// upsert
//
// This script loads catalog entries from a movies JSONL artifact into the
// PostgreSQL movies table. Rows are keyed by catalog index, so re-running the
// script replaces titles and embeddings in place.
//
// Prerequisites:
// 1. Create the schema using ./scripts/setup
//
// Environment variables:
//   POSTGRES_URI  - PostgreSQL connection string
//
// Usage:
//   go run ./scripts/upsert -input artifacts/movies.jsonl

package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"
	"github.com/movie-search-api/internal/repository/file"
	"github.com/movie-search-api/internal/repository/postgres"
	"github.com/movie-search-api/pkg/schema/db"
)

func main() {
	inputFile := flag.String("input", "artifacts/movies.jsonl", "Input movies JSONL path")
	batchSize := flag.Int("batch", 500, "Rows per transaction")
	flag.Parse()

	godotenv.Load()

	if *batchSize <= 0 {
		log.Fatalf("-batch must be positive, got %d", *batchSize)
	}

	ctx := context.Background()

	movies, err := file.NewCatalogRepository(*inputFile).LoadMovies(ctx)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *inputFile, err)
	}
	log.Printf("Read %d movies from %s", len(movies), *inputFile)

	if err := db.InitPostgres(ctx); err != nil {
		log.Fatalf("Failed to initialize PostgreSQL: %v", err)
	}
	defer db.ClosePostgres()

	repo := postgres.NewCatalogRepository(db.GetPostgres())

	totalCount := 0
	batchCount := 0
	for start := 0; start < len(movies); start += *batchSize {
		end := min(start+*batchSize, len(movies))
		if err := repo.UpsertMovies(ctx, movies[start:end]); err != nil {
			log.Fatalf("Failed to upsert batch %d: %v", batchCount+1, err)
		}
		batchCount++
		totalCount += end - start
		log.Printf("Upserted batch %d (%d movies, total: %d)", batchCount, end-start, totalCount)
	}

	log.Printf("Upsert complete! Total movies: %d in %d batches", totalCount, batchCount)
}

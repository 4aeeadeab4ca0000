// export
//
// This script builds the catalog artifacts the API loads at startup:
//
//   movies.jsonl           - one {"index", "title", "embedding"} object per line
//   tfidf_vectorizer.json  - vocabulary, idf weights and analyzer options
//   tfidf_matrix.json      - L2-normalized TF-IDF rows in CSR form
//
// Movies are read from PostgreSQL (default) or an existing JSONL file, and the
// TF-IDF model is fitted on their titles.
//
// Environment variables:
//   POSTGRES_URI  - PostgreSQL connection string (when -source postgres)
//
// Usage:
//   go run ./scripts/export -output-dir artifacts
//   go run ./scripts/export -source jsonl -input movies.jsonl -ngram-max 2 -sublinear

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/movie-search-api/internal/repository"
	"github.com/movie-search-api/internal/repository/file"
	"github.com/movie-search-api/internal/repository/postgres"
	"github.com/movie-search-api/pkg/schema/db"
	"github.com/movie-search-api/pkg/schema/tfidf"
)

func main() {
	source := flag.String("source", "postgres", "Catalog source: postgres or jsonl")
	inputFile := flag.String("input", "movies.jsonl", "Input movies JSONL path (when -source jsonl)")
	outputDir := flag.String("output-dir", "artifacts", "Output directory")
	ngramMax := flag.Int("ngram-max", 1, "Largest n-gram length")
	sublinear := flag.Bool("sublinear", false, "Use 1 + ln(tf) term frequencies")
	stopWords := flag.String("stop-words", "", "Comma-separated stop words to drop")
	flag.Parse()

	godotenv.Load()

	ctx := context.Background()

	var repo repository.CatalogRepository
	switch *source {
	case "postgres":
		if err := db.InitPostgres(ctx); err != nil {
			log.Fatalf("Failed to initialize PostgreSQL: %v", err)
		}
		defer db.ClosePostgres()
		repo = postgres.NewCatalogRepository(db.GetPostgres())
	case "jsonl":
		repo = file.NewCatalogRepository(*inputFile)
	default:
		log.Fatalf("Unknown -source %q", *source)
	}

	movies, err := repo.LoadMovies(ctx)
	if err != nil {
		log.Fatalf("Failed to load movies: %v", err)
	}
	log.Printf("Loaded %d movies from %s", len(movies), *source)
	if len(movies) > 0 {
		log.Printf("Embedding dimensions: %d", len(movies[0].Embedding))
	}

	opts := tfidf.DefaultOptions()
	opts.NgramRange = [2]int{1, *ngramMax}
	opts.SublinearTF = *sublinear
	opts.StopWords = splitList(*stopWords)

	titles := make([]string, len(movies))
	for i, m := range movies {
		titles[i] = m.Title
	}

	vectorizer, matrix, err := tfidf.Fit(titles, opts)
	if err != nil {
		log.Fatalf("Failed to fit TF-IDF: %v", err)
	}
	log.Printf("Fitted TF-IDF: vocabulary %d, matrix %dx%d", vectorizer.VocabularySize(), matrix.Rows(), matrix.Cols())

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		log.Fatalf("Failed to create %s: %v", *outputDir, err)
	}

	if err := writeFile(filepath.Join(*outputDir, "movies.jsonl"), func(f *os.File) error {
		return file.WriteMovies(f, movies)
	}); err != nil {
		log.Fatal(err)
	}
	if err := writeFile(filepath.Join(*outputDir, "tfidf_vectorizer.json"), func(f *os.File) error {
		return tfidf.WriteVectorizer(f, vectorizer)
	}); err != nil {
		log.Fatal(err)
	}
	if err := writeFile(filepath.Join(*outputDir, "tfidf_matrix.json"), func(f *os.File) error {
		return tfidf.WriteMatrix(f, matrix)
	}); err != nil {
		log.Fatal(err)
	}

	log.Printf("Export complete! Artifacts written to %s", *outputDir)
	log.Println()
	log.Println("Start the API with:")
	log.Printf("  ARTIFACTS_DIR=%s go run ./cmd/api", *outputDir)
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	log.Printf("Wrote %s", path)
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

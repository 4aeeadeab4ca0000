// inspect
//
// This script loads the catalog artifacts and prints diagnostics for one
// lexical query: catalog and vocabulary sizes, titles containing the query,
// the projected query's non-zero terms, the similarity distribution and the
// raw top 10 before any filtering.
//
// Environment variables:
//   ARTIFACTS_DIR, MOVIES_FILE, TFIDF_VECTORIZER_FILE, TFIDF_MATRIX_FILE
//
// Usage:
//   go run ./scripts/inspect -q avatar

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/movie-search-api/internal/catalog"
	"github.com/movie-search-api/internal/config"
	"github.com/movie-search-api/internal/ranking"
	"github.com/movie-search-api/internal/repository/file"
	"github.com/movie-search-api/internal/search"
)

func main() {
	query := flag.String("q", "avatar", "Query to inspect")
	top := flag.Int("top", 10, "Number of raw results to print")
	flag.Parse()

	godotenv.Load()
	cfg := config.GetConfig()

	ctx := context.Background()
	movies, err := catalog.Load(ctx,
		file.NewCatalogRepository(cfg.ArtifactPath(cfg.MoviesFile)),
		cfg.ArtifactPath(cfg.TFIDFVectorizerFile),
		cfg.ArtifactPath(cfg.TFIDFMatrixFile),
	)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("CATALOG")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("Total movies:         %d\n", movies.Len())
	fmt.Printf("TF-IDF matrix shape:  %d x %d\n", movies.Sparse().Rows(), movies.Sparse().Cols())
	fmt.Printf("Embedding dimensions: %d\n", movies.Dense().Dim())

	needle := strings.ToLower(*query)
	var containing []string
	for i := 0; i < movies.Len(); i++ {
		if strings.Contains(strings.ToLower(movies.Title(i)), needle) {
			containing = append(containing, movies.Title(i))
		}
	}
	fmt.Printf("\nTitles containing %q: %d\n", *query, len(containing))
	for _, title := range containing[:min(10, len(containing))] {
		fmt.Printf("  %s\n", title)
	}

	cleaned := search.NormalizeQuery(*query)
	fmt.Println()
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("QUERY %q (cleaned: %q)\n", *query, cleaned)
	fmt.Println(strings.Repeat("=", 80))

	projected := movies.Vectorizer().Transform(cleaned)
	fmt.Printf("Query vector nnz: %d\n", projected.NNZ())

	scores, err := movies.Sparse().CosineSimilarities(projected)
	if err != nil {
		log.Fatalf("Failed to score query: %v", err)
	}

	positive, aboveTenth := 0, 0
	for _, s := range scores {
		if s > 0 {
			positive++
		}
		if s > 0.1 {
			aboveTenth++
		}
	}
	maxScore := 0.0
	if len(scores) > 0 {
		maxScore = slices.Max(scores)
	}
	fmt.Printf("Max similarity:      %.4f\n", maxScore)
	fmt.Printf("Similarities > 0:    %d\n", positive)
	fmt.Printf("Similarities > 0.1:  %d\n", aboveTenth)

	fmt.Printf("\nTop %d results:\n", *top)
	for _, idx := range ranking.TopK(scores, *top) {
		fmt.Printf("  %.4f - %s\n", scores[idx], movies.Title(idx))
	}
}

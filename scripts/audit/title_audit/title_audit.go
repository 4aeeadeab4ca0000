// title_audit
//
// This script checks that known queries surface the titles they should. Each
// expectation names a query and a title; the audit runs the query through the
// search pipelines against the loaded artifacts and reports the rank of the
// expected title, or that it is missing from the top k.
//
// Usage:
//   go run ./scripts/audit/title_audit
//   go run ./scripts/audit/title_audit -expect "dark knight=The Dark Knight" -dl
//   go run ./scripts/audit/title_audit -file expectations.yaml
//
// Expectation files are YAML:
//
//   expectations:
//     - query: dark knight
//       title: The Dark Knight
//
// The process exits with status 1 when any expectation is missing.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/movie-search-api/internal/catalog"
	"github.com/movie-search-api/internal/config"
	"github.com/movie-search-api/internal/models"
	"github.com/movie-search-api/internal/repository/file"
	"github.com/movie-search-api/internal/repository/memory"
	"github.com/movie-search-api/internal/search"
	pkgconfig "github.com/movie-search-api/pkg/schema/config"
	pkgservices "github.com/movie-search-api/pkg/schema/services"
	"gopkg.in/yaml.v3"
)

// Expectation is a query that should rank Title within the top k
type Expectation struct {
	Query string `yaml:"query"`
	Title string `yaml:"title"`
}

type expectationFile struct {
	Expectations []Expectation `yaml:"expectations"`
}

// DefaultExpectations cover titles every catalog build is expected to carry
var DefaultExpectations = []Expectation{
	{Query: "avatar", Title: "Avatar"},
	{Query: "Avatar", Title: "Avatar"},
	{Query: "inception", Title: "Inception"},
}

type expectationList []Expectation

func (l *expectationList) String() string {
	parts := make([]string, len(*l))
	for i, e := range *l {
		parts[i] = e.Query + "=" + e.Title
	}
	return strings.Join(parts, ", ")
}

func (l *expectationList) Set(value string) error {
	query, title, ok := strings.Cut(value, "=")
	if !ok || query == "" || title == "" {
		return fmt.Errorf("expected query=title, got %q", value)
	}
	*l = append(*l, Expectation{Query: query, Title: title})
	return nil
}

type scorer interface {
	Search(ctx context.Context, query string, k int) ([]models.SearchResult, error)
}

func main() {
	var expectations expectationList
	flag.Var(&expectations, "expect", "query=title expectation (repeatable)")
	k := flag.Int("k", 10, "Rank cutoff")
	semantic := flag.Bool("dl", false, "Also audit semantic search (needs the embedding service)")
	expectationsFile := flag.String("file", "", "YAML file of expectations")
	flag.Parse()

	godotenv.Load()
	if *expectationsFile != "" {
		loaded, err := loadExpectations(*expectationsFile)
		if err != nil {
			fmt.Printf("Failed to load expectations: %v\n", err)
			os.Exit(1)
		}
		expectations = append(expectations, loaded...)
	}
	if len(expectations) == 0 {
		expectations = DefaultExpectations
	}

	cfg := config.GetConfig()
	ctx := context.Background()

	movies, err := catalog.Load(ctx,
		file.NewCatalogRepository(cfg.ArtifactPath(cfg.MoviesFile)),
		cfg.ArtifactPath(cfg.TFIDFVectorizerFile),
		cfg.ArtifactPath(cfg.TFIDFMatrixFile),
	)
	if err != nil {
		fmt.Printf("Failed to load catalog: %v\n", err)
		os.Exit(1)
	}

	scorers := map[string]scorer{models.MethodTFIDF: search.NewLexicalScorer(movies)}
	methods := []string{models.MethodTFIDF}
	if *semantic {
		embeddingsSvc, err := pkgservices.NewEmbeddingsService(ctx, pkgconfig.GetConfig())
		if err != nil {
			fmt.Printf("Failed to initialize embeddings service: %v\n", err)
			os.Exit(1)
		}
		defer embeddingsSvc.Close()
		scorers[models.MethodDeepLearning] = search.NewSemanticScorer(embeddingsSvc, memory.NewVectorSearchRepository(movies))
		methods = append(methods, models.MethodDeepLearning)
	}

	fmt.Println("=" + strings.Repeat("=", 79))
	fmt.Println("TITLE AUDIT")
	fmt.Println("=" + strings.Repeat("=", 79))
	fmt.Printf("\nMovies in catalog: %d\n", movies.Len())
	fmt.Printf("Expectations: %d, cutoff k=%d\n\n", len(expectations), *k)

	missing := 0
	for _, method := range methods {
		fmt.Printf("--- %s ---\n", method)
		for _, exp := range expectations {
			results, err := scorers[method].Search(ctx, exp.Query, *k)
			if err != nil {
				fmt.Printf("  ERROR    %-30q %v\n", exp.Query, err)
				missing++
				continue
			}
			rank := rankOf(results, exp.Title)
			if rank == 0 {
				fmt.Printf("  MISSING  %-30q -> %s\n", exp.Query, exp.Title)
				missing++
				continue
			}
			fmt.Printf("  #%-7d %-30q -> %s (%.4f)\n", rank, exp.Query, exp.Title, results[rank-1].Score)
		}
		fmt.Println()
	}

	if missing > 0 {
		fmt.Printf("%d expectation(s) failed\n", missing)
		os.Exit(1)
	}
	fmt.Println("All expectations met")
}

func loadExpectations(path string) ([]Expectation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f expectationFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for i, e := range f.Expectations {
		if e.Query == "" || e.Title == "" {
			return nil, fmt.Errorf("%s: expectation %d needs query and title", path, i+1)
		}
	}
	return f.Expectations, nil
}

// rankOf returns the 1-based rank of title in results, or 0 when absent
func rankOf(results []models.SearchResult, title string) int {
	for i, r := range results {
		if strings.EqualFold(r.Title, title) {
			return i + 1
		}
	}
	return 0
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Config holds all application configuration
type Config struct {
	// API Settings
	APITitle   string
	APIVersion string
	APIPrefix  string
	Port       string

	// Environment: "local", "dev" or "prod"; selects the log format
	Env      string
	LogLevel string

	// CORS
	CORSOrigins []string

	// Catalog source: "files" or "postgres"
	CatalogSource string

	// Catalog artifacts; relative names resolve against ArtifactsDir
	ArtifactsDir        string
	MoviesFile          string
	TFIDFVectorizerFile string
	TFIDFMatrixFile     string

	// Semantic ranking backend: "memory" or "pgvector"
	SemanticBackend string
}

var (
	config *Config
	once   sync.Once
)

// GetConfig returns the singleton configuration instance
func GetConfig() *Config {
	once.Do(func() {
		config = loadConfig()
	})
	return config
}

func loadConfig() *Config {
	return &Config{
		APITitle:    getEnv("API_TITLE", "Movie Search API"),
		APIVersion:  getEnv("API_VERSION", "1.0.0"),
		APIPrefix:   getEnv("API_PREFIX", ""),
		Port:        getEnv("PORT", "8000"),
		Env:         getEnv("ENV", "local"),
		LogLevel:    getEnv("LOG_LEVEL", ""),
		CORSOrigins: parseCORSOrigins(getEnv("CORS_ORIGINS", "*")),

		CatalogSource: getEnv("CATALOG_SOURCE", "files"),

		ArtifactsDir:        getEnv("ARTIFACTS_DIR", "./artifacts"),
		MoviesFile:          getEnv("MOVIES_FILE", "movies.jsonl"),
		TFIDFVectorizerFile: getEnv("TFIDF_VECTORIZER_FILE", "tfidf_vectorizer.json"),
		TFIDFMatrixFile:     getEnv("TFIDF_MATRIX_FILE", "tfidf_matrix.json"),

		SemanticBackend: getEnv("SEMANTIC_BACKEND", "memory"),
	}
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	switch c.CatalogSource {
	case "files", "postgres":
	default:
		return fmt.Errorf("CATALOG_SOURCE must be \"files\" or \"postgres\", got %q", c.CatalogSource)
	}
	switch c.SemanticBackend {
	case "memory", "pgvector":
	default:
		return fmt.Errorf("SEMANTIC_BACKEND must be \"memory\" or \"pgvector\", got %q", c.SemanticBackend)
	}
	// pgvector ranks rows by catalog_index; the titles must come from the same table.
	if c.SemanticBackend == "pgvector" && c.CatalogSource != "postgres" {
		return fmt.Errorf("SEMANTIC_BACKEND \"pgvector\" requires CATALOG_SOURCE \"postgres\", got %q", c.CatalogSource)
	}
	return nil
}

// UsesPostgres reports whether any component needs a database connection
func (c *Config) UsesPostgres() bool {
	return c.CatalogSource == "postgres" || c.SemanticBackend == "pgvector"
}

// ArtifactPath resolves an artifact file name against ArtifactsDir
func (c *Config) ArtifactPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.ArtifactsDir, name)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseCORSOrigins(value string) []string {
	var origins []string
	if err := json.Unmarshal([]byte(value), &origins); err == nil {
		return origins
	}
	parts := strings.Split(value, ",")
	origins = make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

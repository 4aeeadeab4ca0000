package config

import (
	"os"
	"strconv"
	"sync"
)

// Config holds configuration for database and embedding operations
type Config struct {
	// PostgreSQL
	PostgresURI      string
	PostgresMaxConns int

	// Embeddings
	EmbeddingProvider         string // "custom", "vertex" or "openai"
	EmbeddingServiceURL       string // For custom provider
	EmbeddingDimensions       int
	EmbeddingQueryInstruction string
	EmbeddingTimeoutSec       int

	// Vertex AI (when EmbeddingProvider = "vertex")
	GCPProjectID string
	GCPLocation  string
	VertexModel  string

	// OpenAI-compatible API (when EmbeddingProvider = "openai")
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	// Query embedding cache; disabled when EmbeddingCacheAddr is empty
	EmbeddingCacheAddr     string
	EmbeddingCachePassword string
	EmbeddingCacheTTLSec   int
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
		// PostgreSQL
		PostgresURI:      getEnv("POSTGRES_URI", ""),
		PostgresMaxConns: getEnvInt("POSTGRES_MAX_CONNS", 25),

		// Embeddings; the custom provider serves the sentence-transformers MPNet model
		EmbeddingProvider:         getEnv("EMBEDDING_PROVIDER", "custom"),
		EmbeddingServiceURL:       getEnv("EMBEDDING_SERVICE_URL", "http://localhost:8001"),
		EmbeddingDimensions:       getEnvInt("EMBEDDING_DIMENSIONS", 768),
		EmbeddingQueryInstruction: getEnv("EMBEDDING_QUERY_INSTRUCTION", ""),
		EmbeddingTimeoutSec:       getEnvInt("EMBEDDING_TIMEOUT_SEC", 30),

		// Vertex AI
		GCPProjectID: getEnv("GCP_PROJECT_ID", ""),
		GCPLocation:  getEnv("GCP_LOCATION", "us-central1"),
		VertexModel:  getEnv("VERTEX_MODEL", "text-embedding-005"),

		// OpenAI-compatible API
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
		OpenAIModel:   getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),

		// Redis query embedding cache
		EmbeddingCacheAddr:     getEnv("EMBEDDING_CACHE_ADDR", ""),
		EmbeddingCachePassword: getEnv("EMBEDDING_CACHE_PASSWORD", ""),
		EmbeddingCacheTTLSec:   getEnvInt("EMBEDDING_CACHE_TTL_SEC", 86400),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		i, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return i
	}
	return defaultValue
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/movie-search-api/internal/catalog"
	"github.com/movie-search-api/internal/config"
	"github.com/movie-search-api/internal/handlers"
	"github.com/movie-search-api/internal/logger"
	"github.com/movie-search-api/internal/metrics"
	"github.com/movie-search-api/internal/middleware"
	"github.com/movie-search-api/internal/repository"
	"github.com/movie-search-api/internal/repository/file"
	"github.com/movie-search-api/internal/repository/memory"
	"github.com/movie-search-api/internal/repository/postgres"
	"github.com/movie-search-api/internal/search"
	"github.com/movie-search-api/internal/services"
	"github.com/movie-search-api/pkg/schema/db"
	pkgconfig "github.com/movie-search-api/pkg/schema/config"
	pkgservices "github.com/movie-search-api/pkg/schema/services"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load .env file if present
	_ = godotenv.Load()

	cfg := config.GetConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	l, err := logger.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = l.Sync() }()

	if err := run(cfg, l); err != nil {
		l.Fatal("Server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, l *zap.Logger) error {
	ctx := context.Background()
	dataCfg := pkgconfig.GetConfig()

	// Initialize PostgreSQL only when a component needs it
	if cfg.UsesPostgres() {
		if err := db.InitPostgres(ctx); err != nil {
			return fmt.Errorf("initialize PostgreSQL: %w", err)
		}
		defer func() {
			if err := db.ClosePostgres(); err != nil {
				l.Warn("Error closing PostgreSQL", zap.Error(err))
			}
		}()
		l.Info("Database initialization complete")
	}

	// Build the catalog before serving; it is read-only afterwards
	var catalogRepo repository.CatalogRepository
	switch cfg.CatalogSource {
	case "postgres":
		catalogRepo = postgres.NewCatalogRepository(db.GetPostgres())
	default:
		catalogRepo = file.NewCatalogRepository(cfg.ArtifactPath(cfg.MoviesFile))
	}

	movies, err := catalog.Load(ctx, catalogRepo,
		cfg.ArtifactPath(cfg.TFIDFVectorizerFile),
		cfg.ArtifactPath(cfg.TFIDFMatrixFile),
	)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	metrics.CatalogSize.Set(float64(movies.Len()))
	l.Info("Catalog loaded",
		zap.String("source", cfg.CatalogSource),
		zap.Int("movies", movies.Len()),
		zap.Int("vocabulary", movies.Vectorizer().VocabularySize()),
		zap.Int("dimensions", movies.Dense().Dim()),
	)

	// Create semantic ranking backend
	var vectorRepo repository.VectorSearchRepository
	switch cfg.SemanticBackend {
	case "pgvector":
		l.Info("Using pgvector semantic backend")
		vectorRepo = postgres.NewVectorSearchRepository(db.GetPostgres())
	default:
		l.Info("Using in-memory semantic backend")
		vectorRepo = memory.NewVectorSearchRepository(movies)
	}

	// Create services
	embeddingsSvc, err := pkgservices.NewEmbeddingsService(ctx, dataCfg)
	if err != nil {
		return fmt.Errorf("initialize embeddings service: %w", err)
	}
	defer func() {
		if err := embeddingsSvc.Close(); err != nil {
			l.Warn("Error closing embeddings service", zap.Error(err))
		}
	}()
	var encoder search.QueryEncoder = services.NewInstrumentedEncoder(embeddingsSvc, embeddingsSvc.Provider(), l)

	if dataCfg.EmbeddingCacheAddr != "" {
		redisClient, err := services.NewRedisClient(dataCfg.EmbeddingCacheAddr, dataCfg.EmbeddingCachePassword)
		if err != nil {
			return fmt.Errorf("initialize embedding cache: %w", err)
		}
		defer redisClient.Close()

		namespace := fmt.Sprintf("%s:%d", embeddingsSvc.Provider(), dataCfg.EmbeddingDimensions)
		ttl := time.Duration(dataCfg.EmbeddingCacheTTLSec) * time.Second
		encoder = services.NewCachedEncoder(encoder, redisClient, namespace, ttl, l)
		l.Info("Query embedding cache enabled",
			zap.String("addr", dataCfg.EmbeddingCacheAddr),
			zap.Duration("ttl", ttl),
		)
	}

	movieSearchSvc := services.NewMovieSearchService(
		search.NewLexicalScorer(movies),
		search.NewSemanticScorer(encoder, vectorRepo),
		movies.Len(),
		l,
	)

	e := newServer(cfg, l, movieSearchSvc)

	// Start server
	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		l.Info("Starting server",
			zap.String("title", cfg.APITitle),
			zap.String("version", cfg.APIVersion),
			zap.String("addr", addr),
		)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	}

	l.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		l.Warn("Error shutting down server", zap.Error(err))
	}

	l.Info("Server stopped")
	return nil
}

func newServer(cfg *config.Config, l *zap.Logger, movieSearchSvc *services.MovieSearchService) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handlers.ErrorHandler(l)

	// Middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(l))
	e.Use(middleware.CORSMiddleware(cfg))
	e.Use(metrics.Middleware())

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	healthHandler := handlers.NewHealthHandler()
	e.GET("/", healthHandler.Root)
	healthHandler.RegisterRoutes(e.Group(cfg.APIPrefix))

	searchHandler := handlers.NewSearchHandler(movieSearchSvc)
	searchHandler.RegisterRoutes(e.Group(""))

	return e
}

package middleware

import (
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/movie-search-api/internal/config"
)

// CORSMiddleware returns a configured CORS middleware
func CORSMiddleware(cfg *config.Config) echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowHeaders: []string{"*"},
		// Browsers reject credentialed responses with a wildcard origin
		AllowCredentials: !slices.Contains(cfg.CORSOrigins, "*"),
		ExposeHeaders:    []string{"X-Search-Fallback"},
	})
}

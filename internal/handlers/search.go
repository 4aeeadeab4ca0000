package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/movie-search-api/internal/search"
	"github.com/movie-search-api/internal/services"
)

// FallbackHeader is set on lexical responses produced by title-substring matching
const FallbackHeader = "X-Search-Fallback"

// SearchHandler handles search endpoints
type SearchHandler struct {
	movieSearch *services.MovieSearchService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(movieSearch *services.MovieSearchService) *SearchHandler {
	return &SearchHandler{
		movieSearch: movieSearch,
	}
}

// SearchTFIDF handles GET /search/tfidf - lexical title search
func (h *SearchHandler) SearchTFIDF(c echo.Context) error {
	query, k, err := searchParams(c)
	if err != nil {
		return err
	}

	resp, err := h.movieSearch.SearchTFIDF(c.Request().Context(), query, k)
	if err != nil {
		return searchError(err)
	}
	if resp.UsedFallback() {
		c.Response().Header().Set(FallbackHeader, "true")
	}
	return c.JSON(http.StatusOK, resp)
}

// SearchDeepLearning handles GET /search/dl - semantic title search
func (h *SearchHandler) SearchDeepLearning(c echo.Context) error {
	query, k, err := searchParams(c)
	if err != nil {
		return err
	}

	resp, err := h.movieSearch.SearchDeepLearning(c.Request().Context(), query, k)
	if err != nil {
		return searchError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

// MovieCount handles GET /movies/count
func (h *SearchHandler) MovieCount(c echo.Context) error {
	return c.JSON(http.StatusOK, h.movieSearch.MovieCount())
}

// RegisterRoutes registers search and catalog routes
func (h *SearchHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/search/tfidf", h.SearchTFIDF)
	g.GET("/search/dl", h.SearchDeepLearning)
	g.GET("/movies/count", h.MovieCount)
}

// searchParams reads q and k; k defaults to services.DefaultK
func searchParams(c echo.Context) (string, int, error) {
	query := c.QueryParam("q")

	k := services.DefaultK
	if raw := c.QueryParam("k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return "", 0, echo.NewHTTPError(http.StatusUnprocessableEntity, "k must be an integer")
		}
		k = parsed
	}
	return query, k, nil
}

func searchError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, search.ErrEmptyQuery):
		return echo.NewHTTPError(http.StatusBadRequest, "Query is empty after preprocessing").SetInternal(err)
	case errors.Is(err, search.ErrOutOfRange):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, validationMessage(err)).SetInternal(err)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Search failed").SetInternal(err)
	}
}

// validationMessage strips the sentinel prefix from a wrapped ErrOutOfRange
func validationMessage(err error) string {
	msg, _ := strings.CutPrefix(err.Error(), search.ErrOutOfRange.Error()+": ")
	return msg
}

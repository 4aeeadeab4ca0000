package models

// Search method tags reported in the response envelope
const (
	MethodTFIDF        = "tfidf"
	MethodDeepLearning = "deep_learning"
)

// Movie is one catalog entry with its dense embedding
type Movie struct {
	Index     int       `json:"index" db:"catalog_index"`
	Title     string    `json:"title" db:"title"`
	Embedding []float32 `json:"embedding" db:"-"`
}

// ScoredMovie represents a catalog entry with similarity score
type ScoredMovie struct {
	Index int     `json:"index" db:"catalog_index"`
	Title string  `json:"title" db:"title"`
	Score float64 `json:"score" db:"score"`
}

// SearchResult is a single ranked title in a search response
type SearchResult struct {
	Title string  `json:"title"`
	Score float64 `json:"score"`

	// Fallback marks a title-substring match carrying the fixed heuristic score
	// rather than a cosine similarity.
	Fallback bool `json:"-"`
}

// SearchResponse is the envelope shared by both search methods
type SearchResponse struct {
	Query   string         `json:"query"`
	Method  string         `json:"method"`
	Count   int            `json:"count"`
	Results []SearchResult `json:"results"`
}

// UsedFallback reports whether any result came from title-substring matching
func (r SearchResponse) UsedFallback() bool {
	for _, res := range r.Results {
		if res.Fallback {
			return true
		}
	}
	return false
}

// MovieCountResponse is the response for the catalog size query
type MovieCountResponse struct {
	TotalMovies int `json:"total_movies"`
}

// ErrorResponse is the body returned for failed requests
type ErrorResponse struct {
	Detail string `json:"detail"`
}

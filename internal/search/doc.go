// Package search implements ranked retrieval over the movie catalog.
//
// Two independent scorers share one immutable catalog:
//
//   - LexicalScorer projects a normalized query into the TF-IDF space and
//     ranks titles by cosine similarity. When no title has positive
//     similarity it falls back to case-insensitive substring matching on the
//     raw query and scores each match with FallbackScore.
//   - SemanticScorer encodes the raw query with a sentence embedding model
//     and ranks titles by cosine similarity. It has no fallback and returns
//     exactly min(k, N) results.
//
// Neither scorer holds state between calls; both are safe for concurrent use.
package search

package search

import "errors"

var (
	// ErrEmptyQuery is returned by lexical search when the query has no
	// searchable characters after normalization.
	ErrEmptyQuery = errors.New("query is empty after cleaning")

	// ErrOutOfRange is returned when q or k fail boundary validation.
	ErrOutOfRange = errors.New("parameter out of range")

	// ErrInternal wraps failures while vectorizing, encoding or scoring.
	ErrInternal = errors.New("internal computation error")
)

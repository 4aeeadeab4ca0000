package tfidf

import (
	"fmt"
	"math"
	"sort"
)

// Fit learns a vocabulary and smoothed IDF weights from docs and returns the
// vectorizer together with the projected document matrix. Columns are
// assigned in lexical term order.
func Fit(docs []string, opts Options) (*Vectorizer, *Matrix, error) {
	analyzer, err := NewVectorizer(map[string]int{"": 0}, []float64{1}, opts)
	if err != nil {
		return nil, nil, err
	}

	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, term := range analyzer.analyze(doc) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}
	if len(df) == 0 {
		return nil, nil, fmt.Errorf("empty vocabulary; documents contain no terms")
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	n := float64(len(docs))
	vocabulary := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	for col, term := range terms {
		vocabulary[term] = col
		idf[col] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	v, err := NewVectorizer(vocabulary, idf, opts)
	if err != nil {
		return nil, nil, err
	}

	rows := make([]Vector, len(docs))
	for i, doc := range docs {
		rows[i] = v.Transform(doc)
	}
	m, err := NewMatrixFromRows(rows, len(terms))
	if err != nil {
		return nil, nil, err
	}
	return v, m, nil
}

// Package ranking orders similarity scores for top-k retrieval.
package ranking

import (
	"math"
	"slices"
)

// TopK returns the indices of the k highest scores, highest first. Equal
// scores keep ascending index order. k larger than len(scores) returns every
// index.
func TopK(scores []float64, k int) []int {
	if k <= 0 {
		return []int{}
	}
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case scores[a] > scores[b]:
			return -1
		case scores[a] < scores[b]:
			return 1
		default:
			return 0
		}
	})
	if k < len(order) {
		order = order[:k]
	}
	return order
}

// Round4 rounds a score to four decimal places.
func Round4(score float64) float64 {
	return math.Round(score*1e4) / 1e4
}

package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopK(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		k      int
		want   []int
	}{
		{"descending order", []float64{0.1, 0.9, 0.5}, 3, []int{1, 2, 0}},
		{"truncates to k", []float64{0.1, 0.9, 0.5}, 2, []int{1, 2}},
		{"k beyond length", []float64{0.3, 0.2}, 10, []int{0, 1}},
		{"ties keep index order", []float64{0.5, 0.7, 0.5, 0.5}, 4, []int{1, 0, 2, 3}},
		{"negative scores", []float64{-0.2, -0.9, 0.0}, 3, []int{2, 0, 1}},
		{"empty", nil, 5, []int{}},
		{"zero k", []float64{1}, 0, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TopK(tt.scores, tt.k))
		})
	}
}

func TestTopK_DoesNotModifyScores(t *testing.T) {
	scores := []float64{0.2, 0.8, 0.4}
	TopK(scores, 2)
	assert.Equal(t, []float64{0.2, 0.8, 0.4}, scores)
}

func TestRound4(t *testing.T) {
	assert.Equal(t, 0.1235, Round4(0.123456))
	assert.Equal(t, 1.0, Round4(0.99999))
	assert.Equal(t, -0.5, Round4(-0.50004))
	assert.Equal(t, 0.5, Round4(0.5))
}

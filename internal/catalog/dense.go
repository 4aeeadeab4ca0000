package catalog

import (
	"fmt"
	"math"
)

// Dense is a read-only row-major embedding matrix with cached row norms.
type Dense struct {
	rows  int
	dim   int
	data  []float32
	norms []float64
}

// NewDense copies vectors into a dense matrix. Every vector must have the
// same length.
func NewDense(vectors [][]float32) (*Dense, error) {
	d := &Dense{rows: len(vectors)}
	if d.rows == 0 {
		return d, nil
	}

	d.dim = len(vectors[0])
	if d.dim == 0 {
		return nil, fmt.Errorf("embedding 0 is empty")
	}
	d.data = make([]float32, 0, d.rows*d.dim)
	d.norms = make([]float64, d.rows)

	for i, vec := range vectors {
		if len(vec) != d.dim {
			return nil, fmt.Errorf("embedding %d has %d dimensions, want %d", i, len(vec), d.dim)
		}
		var sum float64
		for _, x := range vec {
			sum += float64(x) * float64(x)
		}
		d.norms[i] = math.Sqrt(sum)
		d.data = append(d.data, vec...)
	}
	return d, nil
}

// Rows returns the number of embeddings.
func (d *Dense) Rows() int { return d.rows }

// Dim returns the embedding length.
func (d *Dense) Dim() int { return d.dim }

// Row returns a view of embedding i. Callers must not modify it.
func (d *Dense) Row(i int) []float32 {
	return d.data[i*d.dim : (i+1)*d.dim]
}

// CosineSimilarities scores q against every embedding. Zero-length vectors on
// either side score 0.
func (d *Dense) CosineSimilarities(q []float64) ([]float64, error) {
	if d.rows > 0 && len(q) != d.dim {
		return nil, fmt.Errorf("query has %d dimensions, catalog has %d", len(q), d.dim)
	}

	scores := make([]float64, d.rows)

	var qSum float64
	for _, x := range q {
		qSum += x * x
	}
	qNorm := math.Sqrt(qSum)
	if qNorm == 0 {
		return scores, nil
	}

	for i := 0; i < d.rows; i++ {
		if d.norms[i] == 0 {
			continue
		}
		row := d.Row(i)
		var dot float64
		for j, x := range row {
			dot += float64(x) * q[j]
		}
		scores[i] = dot / (qNorm * d.norms[i])
	}
	return scores, nil
}

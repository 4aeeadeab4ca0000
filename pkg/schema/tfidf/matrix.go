package tfidf

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
)

// Vector is a sparse vector with ascending column indices.
type Vector struct {
	Indices []int
	Values  []float64
}

// NNZ returns the number of stored entries.
func (v Vector) NNZ() int {
	return len(v.Indices)
}

// Norm returns the euclidean length of v.
func (v Vector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Matrix is a read-only CSR matrix of TF-IDF rows, one per catalog entry.
type Matrix struct {
	rows    int
	cols    int
	indptr  []int
	indices []int
	data    []float64
	norms   []float64
}

// matrixArtifact is the on-disk JSON form of a CSR matrix.
type matrixArtifact struct {
	Shape   [2]int    `json:"shape"`
	Indptr  []int     `json:"indptr"`
	Indices []int     `json:"indices"`
	Data    []float64 `json:"data"`
}

// NewMatrix validates CSR components and caches row norms.
func NewMatrix(rows, cols int, indptr, indices []int, data []float64) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("invalid shape (%d, %d)", rows, cols)
	}
	if len(indptr) != rows+1 {
		return nil, fmt.Errorf("indptr has %d entries, want %d", len(indptr), rows+1)
	}
	if len(indices) != len(data) {
		return nil, fmt.Errorf("indices (%d) and data (%d) differ in length", len(indices), len(data))
	}
	if indptr[0] != 0 || indptr[rows] != len(data) {
		return nil, fmt.Errorf("indptr must span [0,%d]", len(data))
	}
	for i := 0; i < rows; i++ {
		if indptr[i+1] < indptr[i] || indptr[i+1] > len(data) {
			return nil, fmt.Errorf("indptr out of order or past data at row %d", i)
		}
	}

	m := &Matrix{
		rows:    rows,
		cols:    cols,
		indptr:  indptr,
		indices: indices,
		data:    data,
		norms:   make([]float64, rows),
	}
	for i := 0; i < rows; i++ {
		start, end := indptr[i], indptr[i+1]
		var sum float64
		for j := start; j < end; j++ {
			if indices[j] < 0 || indices[j] >= cols {
				return nil, fmt.Errorf("row %d references column %d outside [0,%d)", i, indices[j], cols)
			}
			sum += data[j] * data[j]
		}
		m.norms[i] = math.Sqrt(sum)
	}
	return m, nil
}

// NewMatrixFromRows assembles a CSR matrix from sparse rows.
func NewMatrixFromRows(rows []Vector, cols int) (*Matrix, error) {
	indptr := make([]int, 1, len(rows)+1)
	var indices []int
	var data []float64
	for _, r := range rows {
		indices = append(indices, r.Indices...)
		data = append(data, r.Values...)
		indptr = append(indptr, len(data))
	}
	return NewMatrix(len(rows), cols, indptr, indices, data)
}

// ReadMatrix decodes a CSR matrix artifact.
func ReadMatrix(r io.Reader) (*Matrix, error) {
	var a matrixArtifact
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("decode matrix: %w", err)
	}
	return NewMatrix(a.Shape[0], a.Shape[1], a.Indptr, a.Indices, a.Data)
}

// WriteMatrix encodes m as a JSON artifact.
func WriteMatrix(w io.Writer, m *Matrix) error {
	a := matrixArtifact{
		Shape:   [2]int{m.rows, m.cols},
		Indptr:  m.indptr,
		Indices: m.indices,
		Data:    m.data,
	}
	if err := json.NewEncoder(w).Encode(a); err != nil {
		return fmt.Errorf("encode matrix: %w", err)
	}
	return nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// Row returns a view of row i. Callers must not modify it.
func (m *Matrix) Row(i int) Vector {
	start, end := m.indptr[i], m.indptr[i+1]
	return Vector{Indices: m.indices[start:end], Values: m.data[start:end]}
}

// CosineSimilarities scores q against every row. Zero-length vectors on
// either side score 0.
func (m *Matrix) CosineSimilarities(q Vector) ([]float64, error) {
	scores := make([]float64, m.rows)

	qNorm := q.Norm()
	if qNorm == 0 {
		return scores, nil
	}

	dense := make([]float64, m.cols)
	for i, col := range q.Indices {
		if col < 0 || col >= m.cols {
			return nil, fmt.Errorf("query column %d outside [0,%d)", col, m.cols)
		}
		dense[col] = q.Values[i]
	}

	for i := 0; i < m.rows; i++ {
		if m.norms[i] == 0 {
			continue
		}
		var dot float64
		for j := m.indptr[i]; j < m.indptr[i+1]; j++ {
			dot += m.data[j] * dense[m.indices[j]]
		}
		scores[i] = dot / (qNorm * m.norms[i])
	}
	return scores, nil
}

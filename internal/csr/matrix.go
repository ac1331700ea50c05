// Package csr holds a compressed sparse row matrix loaded from an AnnData
// container and turns it back into dense lines, row-wise or column-wise.
package csr

import (
	"errors"
	"fmt"
)

var ErrMalformedMatrix = errors.New("malformed csr matrix")

// Matrix is read once and not modified afterwards, except that an inferred
// column count may be widened before any line is produced.
type Matrix struct {
	Rows, Cols int
	Data       []float64
	Indices    []int
	Indptr     []int

	// BitSize is the stored float width, 32 or 64.
	BitSize int
	// ShapeInferred is set when the container declared no shape and Cols
	// came from the largest column index.
	ShapeInferred bool
}

// New validates the arrays and returns the matrix they describe.
func New(rows, cols int, data []float64, indices, indptr []int) (*Matrix, error) {
	m := &Matrix{Rows: rows, Cols: cols, Data: data, Indices: indices, Indptr: indptr, BitSize: 64}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Matrix) NNZ() int { return len(m.Data) }

// Validate checks the structural invariants of the three arrays.
func (m *Matrix) Validate() error {
	if m.Rows < 0 || m.Cols < 0 {
		return fmt.Errorf("%w: negative shape (%d, %d)", ErrMalformedMatrix, m.Rows, m.Cols)
	}
	if len(m.Indptr) != m.Rows+1 {
		return fmt.Errorf("%w: indptr has %d entries, want rows+1 = %d", ErrMalformedMatrix, len(m.Indptr), m.Rows+1)
	}
	if m.Indptr[0] != 0 {
		return fmt.Errorf("%w: indptr[0] = %d, want 0", ErrMalformedMatrix, m.Indptr[0])
	}
	for r := 0; r < m.Rows; r++ {
		if m.Indptr[r+1] < m.Indptr[r] {
			return fmt.Errorf("%w: indptr decreases at row %d (%d > %d)", ErrMalformedMatrix, r, m.Indptr[r], m.Indptr[r+1])
		}
	}
	if len(m.Indices) != len(m.Data) {
		return fmt.Errorf("%w: %d indices for %d values", ErrMalformedMatrix, len(m.Indices), len(m.Data))
	}
	if last := m.Indptr[m.Rows]; last != len(m.Data) {
		return fmt.Errorf("%w: indptr[%d] = %d, want nnz = %d", ErrMalformedMatrix, m.Rows, last, len(m.Data))
	}
	for k, c := range m.Indices {
		if c < 0 || c >= m.Cols {
			return fmt.Errorf("%w: indices[%d] = %d outside [0, %d)", ErrMalformedMatrix, k, c, m.Cols)
		}
	}
	return nil
}

// Row returns row r as a fresh dense slice of length Cols. A column listed
// twice in the row keeps the value stored last. Row panics if r is out of range.
func (m *Matrix) Row(r int) []float64 {
	if r < 0 || r >= m.Rows {
		panic(fmt.Sprintf("csr: row %d out of range [0, %d)", r, m.Rows))
	}
	dense := make([]float64, m.Cols)
	for k := m.Indptr[r]; k < m.Indptr[r+1]; k++ {
		dense[m.Indices[k]] = m.Data[k]
	}
	return dense
}

// Widen raises Cols to n when the shape was inferred. Trailing columns
// without stored values are all zero.
func (m *Matrix) Widen(n int) bool {
	if !m.ShapeInferred || n <= m.Cols {
		return false
	}
	m.Cols = n
	return true
}

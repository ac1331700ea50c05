package csr

import "fmt"

// ColumnIndex is the CSC view of a Matrix, built in one counting pass. Within
// a column, entries keep CSR order so duplicates resolve the same way Row does.
type ColumnIndex struct {
	rows   int
	colptr []int
	row    []int
	val    []float64
}

func NewColumnIndex(m *Matrix) *ColumnIndex {
	colptr := make([]int, m.Cols+1)
	for _, c := range m.Indices {
		colptr[c+1]++
	}
	for c := 0; c < m.Cols; c++ {
		colptr[c+1] += colptr[c]
	}

	next := make([]int, m.Cols)
	copy(next, colptr[:m.Cols])
	row := make([]int, len(m.Data))
	val := make([]float64, len(m.Data))
	for r := 0; r < m.Rows; r++ {
		for k := m.Indptr[r]; k < m.Indptr[r+1]; k++ {
			c := m.Indices[k]
			row[next[c]] = r
			val[next[c]] = m.Data[k]
			next[c]++
		}
	}
	return &ColumnIndex{rows: m.Rows, colptr: colptr, row: row, val: val}
}

// Columns is the number of columns indexed.
func (ci *ColumnIndex) Columns() int { return len(ci.colptr) - 1 }

// Column returns column c as a fresh dense slice of length Rows.
func (ci *ColumnIndex) Column(c int) []float64 {
	if c < 0 || c >= ci.Columns() {
		panic(fmt.Sprintf("csr: column %d out of range [0, %d)", c, ci.Columns()))
	}
	dense := make([]float64, ci.rows)
	for k := ci.colptr[c]; k < ci.colptr[c+1]; k++ {
		dense[ci.row[k]] = ci.val[k]
	}
	return dense
}

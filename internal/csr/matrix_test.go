package csr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func small(t *testing.T) *Matrix {
	t.Helper()
	m, err := New(2, 3, []float64{1, 2, 5}, []int{0, 2, 1}, []int{0, 2, 3})
	require.NoError(t, err)
	return m
}

func TestRow(t *testing.T) {
	m := small(t)
	assert.Equal(t, []float64{1, 0, 2}, m.Row(0))
	assert.Equal(t, []float64{0, 5, 0}, m.Row(1))
}

func TestRowIsFresh(t *testing.T) {
	m := small(t)
	r := m.Row(0)
	r[1] = 99
	assert.Equal(t, []float64{1, 0, 2}, m.Row(0))
}

func TestRowEmpty(t *testing.T) {
	m, err := New(3, 2, []float64{7}, []int{1}, []int{0, 0, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, m.Row(0))
	assert.Equal(t, []float64{0, 7}, m.Row(1))
	assert.Equal(t, []float64{0, 0}, m.Row(2))
}

func TestRowDuplicateLastWins(t *testing.T) {
	m, err := New(1, 3, []float64{4, 9}, []int{1, 1}, []int{0, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 9, 0}, m.Row(0))
}

func TestRowUnsorted(t *testing.T) {
	m, err := New(1, 4, []float64{3, 1, 2}, []int{3, 0, 2}, []int{0, 3})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 2, 3}, m.Row(0))
}

func TestRowOutOfRangePanics(t *testing.T) {
	m := small(t)
	assert.Panics(t, func() { m.Row(2) })
	assert.Panics(t, func() { m.Row(-1) })
}

func TestRowsReassembleGrid(t *testing.T) {
	grid := [][]float64{
		{0, 1.5, 0, 0},
		{0, 0, 0, 0},
		{2, 0, 0, -3},
	}
	var data []float64
	var indices []int
	indptr := []int{0}
	for _, row := range grid {
		for c, v := range row {
			if v != 0 {
				data = append(data, v)
				indices = append(indices, c)
			}
		}
		indptr = append(indptr, len(data))
	}
	m, err := New(3, 4, data, indices, indptr)
	require.NoError(t, err)
	for r := range grid {
		assert.Equal(t, grid[r], m.Row(r), "row %d", r)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		rows    int
		cols    int
		data    []float64
		indices []int
		indptr  []int
	}{
		{"indptr too short", 2, 3, []float64{1}, []int{0}, []int{0, 1}},
		{"indptr too long", 1, 3, []float64{1}, []int{0}, []int{0, 1, 1}},
		{"indptr starts nonzero", 1, 3, []float64{1}, []int{0}, []int{1, 1}},
		{"indptr decreases", 2, 3, []float64{1}, []int{0}, []int{0, 1, 0}},
		{"indptr end past nnz", 1, 3, []float64{1}, []int{0}, []int{0, 2}},
		{"indices data length", 1, 3, []float64{1, 2}, []int{0}, []int{0, 2}},
		{"index equals cols", 1, 3, []float64{1}, []int{3}, []int{0, 1}},
		{"negative index", 1, 3, []float64{1}, []int{-1}, []int{0, 1}},
		{"negative rows", -1, 3, nil, nil, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.rows, tc.cols, tc.data, tc.indices, tc.indptr)
			assert.ErrorIs(t, err, ErrMalformedMatrix)
		})
	}
}

func TestEmptyMatrix(t *testing.T) {
	m, err := New(0, 0, nil, nil, []int{0})
	require.NoError(t, err)
	assert.Equal(t, 0, m.NNZ())
}

func TestWiden(t *testing.T) {
	m := small(t)
	assert.False(t, m.Widen(5), "declared shape is fixed")

	m.ShapeInferred = true
	assert.False(t, m.Widen(2))
	assert.True(t, m.Widen(5))
	assert.Equal(t, []float64{1, 0, 2, 0, 0}, m.Row(0))
}

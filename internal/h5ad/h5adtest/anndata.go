// Package h5adtest builds small AnnData trees in memory for tests.
package h5adtest

import "github.com/swemeshy/counts-to-csv/internal/h5ad"

// AnnData describes a CSR matrix X with its obs and var names. The shape
// attribute is written unless NoShape is set.
type AnnData struct {
	Obs, Var []string
	Data     []float64
	Indices  []int64
	Indptr   []int64
	NoShape  bool
	// Legacy tags X the way h5sparse did before anndata 0.7.
	Legacy bool
}

// Memory lays the matrix out the way anndata writes it.
func (a AnnData) Memory() *h5ad.Memory {
	m := h5ad.NewMemory().
		FloatDataset("X/data", a.Data).
		IntDataset("X/indices", a.Indices).
		IntDataset("X/indptr", a.Indptr).
		StringDataset("obs/_index", a.Obs).
		SetAttr("obs", h5ad.AttrIndex, "_index").
		StringDataset("var/_index", a.Var).
		SetAttr("var", h5ad.AttrIndex, "_index")

	encAttr, shapeAttr, enc := h5ad.AttrEncodingType, h5ad.AttrShape, h5ad.EncodingCSR
	if a.Legacy {
		encAttr, shapeAttr, enc = h5ad.AttrLegacyFormat, h5ad.AttrLegacyShape, h5ad.LegacyEncodingCSR
	}
	m.SetAttr("X", encAttr, enc)
	if !a.NoShape {
		m.SetAttr("X", shapeAttr, []int64{int64(len(a.Obs)), int64(len(a.Var))})
	}
	return m
}

// Small is the 2x3 matrix {(0,0)=1, (0,2)=2, (1,1)=5}.
func Small() AnnData {
	return AnnData{
		Obs:     []string{"cellA", "cellB"},
		Var:     []string{"g1", "g2", "g3"},
		Data:    []float64{1, 2, 5},
		Indices: []int64{0, 2, 1},
		Indptr:  []int64{0, 2, 3},
	}
}

// Dense returns the AnnData holding grid, skipping zero cells.
func Dense(obs, vars []string, grid [][]float64) AnnData {
	a := AnnData{Obs: obs, Var: vars, Indptr: []int64{0}}
	for _, row := range grid {
		for c, v := range row {
			if v != 0 {
				a.Data = append(a.Data, v)
				a.Indices = append(a.Indices, int64(c))
			}
		}
		a.Indptr = append(a.Indptr, int64(len(a.Data)))
	}
	return a
}

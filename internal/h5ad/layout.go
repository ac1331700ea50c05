package h5ad

import (
	"path"
	"strings"
)

// Attribute names and tag values written by anndata.
const (
	AttrEncodingType = "encoding-type"
	AttrShape        = "shape"
	AttrIndex        = "_index"

	// anndata < 0.7 tagged sparse groups through h5sparse.
	AttrLegacyFormat = "h5sparse_format"
	AttrLegacyShape  = "h5sparse_shape"

	EncodingCSR       = "csr_matrix"
	LegacyEncodingCSR = "csr"
)

// Layout names the groups holding the matrix and its labels.
type Layout struct {
	Matrix string
	Obs    string
	Var    string
}

// DefaultLayout is the anndata layout for the main matrix X.
func DefaultLayout() Layout {
	return Layout{Matrix: "X", Obs: "obs", Var: "var"}
}

// ForMatrix returns the default layout for another matrix group. Matrices
// under raw/ are labelled by raw/var; obs is shared with the main matrix.
func ForMatrix(matrix string) Layout {
	l := DefaultLayout()
	l.Matrix = Clean(matrix)
	if strings.HasPrefix(l.Matrix, "raw/") {
		l.Var = "raw/var"
	}
	return l
}

func (l Layout) Data() string    { return path.Join(l.Matrix, "data") }
func (l Layout) Indices() string { return path.Join(l.Matrix, "indices") }
func (l Layout) Indptr() string  { return path.Join(l.Matrix, "indptr") }

// Clean strips leading and trailing slashes and collapses the rest.
func Clean(p string) string {
	p = strings.Trim(path.Clean("/"+p), "/")
	return p
}

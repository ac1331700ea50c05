package csr

import (
	"fmt"

	"github.com/swemeshy/counts-to-csv/internal/h5ad"
)

// Load reads the matrix group named by l.Matrix and validates it. Nothing is
// written back to the container.
func Load(acc h5ad.Accessor, l h5ad.Layout) (*Matrix, error) {
	node, err := acc.Stat(l.Matrix)
	if err != nil {
		return nil, err
	}
	if node.Kind == h5ad.KindDataset {
		return nil, fmt.Errorf("%w: %s is a dense dataset, want a %s group", h5ad.ErrUnsupportedEncoding, l.Matrix, h5ad.EncodingCSR)
	}
	if err := checkEncoding(acc, l.Matrix); err != nil {
		return nil, err
	}

	data, err := acc.Floats(l.Data())
	if err != nil {
		return nil, err
	}
	rawIndices, err := acc.Ints(l.Indices())
	if err != nil {
		return nil, err
	}
	rawIndptr, err := acc.Ints(l.Indptr())
	if err != nil {
		return nil, err
	}
	indices, err := toInts(l.Indices(), rawIndices)
	if err != nil {
		return nil, err
	}
	indptr, err := toInts(l.Indptr(), rawIndptr)
	if err != nil {
		return nil, err
	}

	m := &Matrix{
		Data:    data.Values,
		Indices: indices,
		Indptr:  indptr,
		BitSize: data.BitSize,
	}
	if err := readShape(acc, l.Matrix, m); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", l.Matrix, err)
	}
	return m, nil
}

// checkEncoding accepts csr_matrix, the legacy h5sparse csr tag, or no tag
// at all.
func checkEncoding(acc h5ad.Accessor, group string) error {
	enc, ok, err := acc.StringAttr(group, h5ad.AttrEncodingType)
	if err != nil {
		return err
	}
	if ok {
		if enc != h5ad.EncodingCSR {
			return fmt.Errorf("%w: %s has encoding-type %q, want %q", h5ad.ErrUnsupportedEncoding, group, enc, h5ad.EncodingCSR)
		}
		return nil
	}
	legacy, ok, err := acc.StringAttr(group, h5ad.AttrLegacyFormat)
	if err != nil {
		return err
	}
	if ok && legacy != h5ad.LegacyEncodingCSR {
		return fmt.Errorf("%w: %s has h5sparse_format %q, want %q", h5ad.ErrUnsupportedEncoding, group, legacy, h5ad.LegacyEncodingCSR)
	}
	return nil
}

func readShape(acc h5ad.Accessor, group string, m *Matrix) error {
	for _, name := range []string{h5ad.AttrShape, h5ad.AttrLegacyShape} {
		shape, ok, err := acc.IntsAttr(group, name)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if len(shape) != 2 || shape[0] < 0 || shape[1] < 0 {
			return fmt.Errorf("%w: %s@%s = %v, want two non-negative integers", ErrMalformedMatrix, group, name, shape)
		}
		m.Rows, m.Cols = int(shape[0]), int(shape[1])
		return nil
	}

	m.ShapeInferred = true
	m.Rows = max(len(m.Indptr)-1, 0)
	for _, c := range m.Indices {
		m.Cols = max(m.Cols, c+1)
	}
	return nil
}

func toInts(name string, v []int64) ([]int, error) {
	out := make([]int, len(v))
	for i, x := range v {
		if x < 0 {
			return nil, fmt.Errorf("%w: %s[%d] = %d is negative", ErrMalformedMatrix, name, i, x)
		}
		out[i] = int(x)
	}
	return out, nil
}

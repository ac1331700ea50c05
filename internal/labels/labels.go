// Package labels loads obs and var names and decides which set heads the
// output and which leads each line.
package labels

import (
	"errors"
	"fmt"
	"path"

	"github.com/swemeshy/counts-to-csv/internal/csr"
	"github.com/swemeshy/counts-to-csv/internal/h5ad"
)

var ErrLabelCountMismatch = errors.New("label count mismatch")

// Orientation selects which label set becomes the header row.
type Orientation int

const (
	// VarNames writes var names as the header and one line per CSR row.
	VarNames Orientation = iota
	// ObsNames writes obs names as the header and one line per CSR column.
	ObsNames
)

var orientationNames = map[string]Orientation{
	"var-names": VarNames,
	"obs-names": ObsNames,
}

func ParseOrientation(s string) (Orientation, error) {
	o, ok := orientationNames[s]
	if !ok {
		return 0, fmt.Errorf("invalid column orientation %q (want var-names or obs-names)", s)
	}
	return o, nil
}

func (o Orientation) String() string {
	if o == ObsNames {
		return "obs-names"
	}
	return "var-names"
}

// Set is an ordered list of names.
type Set []string

// Resolved pairs the header labels with the leading label of each line.
type Resolved struct {
	Orientation Orientation
	Header      Set
	Leading     Set
}

// Transposed reports whether lines are matrix columns.
func (r Resolved) Transposed() bool { return r.Orientation == ObsNames }

// Load reads the names of a dataframe group. The dataset holding them is
// named by the group's _index attribute, "_index" when absent.
func Load(acc h5ad.Accessor, group string) (Set, error) {
	n, err := acc.Stat(group)
	if err != nil {
		return nil, err
	}
	if n.Kind != h5ad.KindGroup {
		return nil, fmt.Errorf("%w: %s is a compound dataset, want a dataframe group", h5ad.ErrUnsupportedEncoding, group)
	}
	index, ok, err := acc.StringAttr(group, h5ad.AttrIndex)
	if err != nil {
		return nil, err
	}
	if !ok || index == "" {
		index = h5ad.AttrIndex
	}
	names, err := acc.Strings(path.Join(h5ad.Clean(group), index))
	if err != nil {
		return nil, err
	}
	return Set(names), nil
}

// loadUnlessEmpty returns no names for a zero-length dimension without
// looking at group.
func loadUnlessEmpty(acc h5ad.Accessor, group string, empty bool) (Set, error) {
	if empty {
		return Set{}, nil
	}
	return Load(acc, group)
}

// Resolve loads both label sets for m and checks them against its shape. A
// matrix with an inferred shape is widened to the var name count first.
func Resolve(acc h5ad.Accessor, l h5ad.Layout, o Orientation, m *csr.Matrix) (Resolved, error) {
	obs, err := loadUnlessEmpty(acc, l.Obs, m.Rows == 0)
	if err != nil {
		return Resolved{}, err
	}
	vars, err := loadUnlessEmpty(acc, l.Var, m.Cols == 0 && !m.ShapeInferred)
	if err != nil {
		return Resolved{}, err
	}
	m.Widen(len(vars))

	if len(obs) != m.Rows {
		return Resolved{}, fmt.Errorf("%w: %s has %d names for %d rows", ErrLabelCountMismatch, l.Obs, len(obs), m.Rows)
	}
	if len(vars) != m.Cols {
		return Resolved{}, fmt.Errorf("%w: %s has %d names for %d columns", ErrLabelCountMismatch, l.Var, len(vars), m.Cols)
	}

	if o == ObsNames {
		return Resolved{Orientation: o, Header: obs, Leading: vars}, nil
	}
	return Resolved{Orientation: o, Header: vars, Leading: obs}, nil
}

// Package h5ad exposes the slice of an AnnData (H5AD) container that the
// converter reads: typed 1-D datasets, node kinds and a few attributes.
//
// Two implementations exist. File reads a real HDF5 file through go-hdf5;
// Memory holds a tree of nodes built in code and is what tests use.
package h5ad

// Kind tells groups and datasets apart.
type Kind int

const (
	KindGroup Kind = iota + 1
	KindDataset
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindDataset:
		return "dataset"
	default:
		return "unknown"
	}
}

// Node describes an object found at a path. Shape is only set for datasets.
type Node struct {
	Path  string
	Kind  Kind
	Shape []uint64
}

// Floats is a numeric dataset widened to float64. BitSize is 32 when the
// stored element type was float32 and 64 for everything else, so callers can
// format values at the precision they were written with.
type Floats struct {
	Values  []float64
	BitSize int
}

// Accessor reads datasets and attributes by path. A path that does not exist
// yields an error wrapping ErrMissingDataset; any other failure wraps ErrIO.
type Accessor interface {
	Stat(path string) (Node, error)
	Floats(path string) (Floats, error)
	Ints(path string) ([]int64, error)
	Strings(path string) ([]string, error)

	// StringAttr and IntsAttr report ok=false when the object exists but
	// carries no attribute of that name.
	StringAttr(path, name string) (value string, ok bool, err error)
	IntsAttr(path, name string) (values []int64, ok bool, err error)
}

// Source is an Accessor holding an open resource.
type Source interface {
	Accessor
	Close() error
}

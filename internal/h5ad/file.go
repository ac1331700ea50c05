package h5ad

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/robert-malhotra/go-hdf5/hdf5"
)

// File is an Accessor over an HDF5 file on disk.
type File struct {
	path string
	f    *hdf5.File
	heap *heapReader
}

var _ Source = (*File)(nil)

// Open opens path read-only.
func Open(path string) (*File, error) {
	f, err := hdf5.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrIO, path, err)
	}
	return &File{path: path, f: f}, nil
}

// OpenSource is Open with the Source return type the app layer injects.
func OpenSource(path string) (Source, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (h *File) Close() error {
	err := h.f.Close()
	if h.heap != nil {
		err = errors.Join(err, h.heap.Close())
	}
	if err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrIO, h.path, err)
	}
	return nil
}

func (h *File) Stat(p string) (Node, error) {
	p = Clean(p)
	if _, err := h.f.OpenGroup(p); err == nil {
		return Node{Path: p, Kind: KindGroup}, nil
	} else if !errors.Is(err, hdf5.ErrNotGroup) {
		return Node{}, lookupErr(p, err)
	}
	ds, err := h.f.OpenDataset(p)
	if err != nil {
		return Node{}, lookupErr(p, err)
	}
	return Node{Path: p, Kind: KindDataset, Shape: ds.Shape()}, nil
}

func (h *File) Floats(p string) (Floats, error) {
	ds, err := h.dataset(p)
	if err != nil {
		return Floats{}, err
	}
	t, err := ds.GoType()
	if err != nil {
		return Floats{}, fmt.Errorf("%w: %s: %w", ErrIO, p, err)
	}
	if t.Kind() == reflect.Float32 {
		narrow, err := ds.ReadFloat32()
		if err != nil {
			return Floats{}, fmt.Errorf("%w: read %s: %w", ErrIO, p, err)
		}
		wide := make([]float64, len(narrow))
		for i, v := range narrow {
			wide[i] = float64(v)
		}
		return Floats{Values: wide, BitSize: 32}, nil
	}
	if !numeric(t) {
		return Floats{}, fmt.Errorf("%w: %s holds %s, want a numeric type", ErrUnsupportedEncoding, p, t)
	}
	var v []float64
	if err := ds.Read(&v); err != nil {
		return Floats{}, fmt.Errorf("%w: read %s: %w", ErrIO, p, err)
	}
	return Floats{Values: v, BitSize: 64}, nil
}

func (h *File) Ints(p string) ([]int64, error) {
	ds, err := h.dataset(p)
	if err != nil {
		return nil, err
	}
	t, err := ds.GoType()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrIO, p, err)
	}
	if !numeric(t) {
		return nil, fmt.Errorf("%w: %s holds %s, want an integer type", ErrUnsupportedEncoding, p, t)
	}
	v, err := ds.ReadInt64()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrIO, p, err)
	}
	return v, nil
}

func (h *File) Strings(p string) ([]string, error) {
	ds, err := h.dataset(p)
	if err != nil {
		return nil, err
	}
	if ds.DtypeClass() == classVarLen {
		return h.varLenStrings(p, ds)
	}
	v, err := ds.ReadString()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrIO, p, err)
	}
	return v, nil
}

func (h *File) varLenStrings(p string, ds *hdf5.Dataset) ([]string, error) {
	if t, err := ds.GoType(); err != nil || t.Kind() != reflect.String {
		return nil, fmt.Errorf("%w: %s holds variable-length data that is not a string", ErrUnsupportedEncoding, p)
	}
	raw, err := ds.ReadRaw()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrIO, p, err)
	}
	if h.heap == nil {
		if h.heap, err = openHeapReader(h.path); err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", ErrIO, p, err)
		}
	}
	v, err := h.heap.strings(raw, ds.DtypeSize())
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrIO, p, err)
	}
	return v, nil
}

func (h *File) StringAttr(p, name string) (string, bool, error) {
	a, err := h.attr(p, name)
	if err != nil || a == nil {
		return "", false, err
	}
	s, err := a.ReadScalarString()
	if err != nil {
		return "", false, fmt.Errorf("%w: attribute %s@%s: %w", ErrIO, p, name, err)
	}
	return s, true, nil
}

func (h *File) IntsAttr(p, name string) ([]int64, bool, error) {
	a, err := h.attr(p, name)
	if err != nil || a == nil {
		return nil, false, err
	}
	v, err := a.ReadInt64()
	if err != nil {
		return nil, false, fmt.Errorf("%w: attribute %s@%s: %w", ErrIO, p, name, err)
	}
	return v, true, nil
}

func (h *File) dataset(p string) (*hdf5.Dataset, error) {
	p = Clean(p)
	ds, err := h.f.OpenDataset(p)
	if errors.Is(err, hdf5.ErrNotDataset) {
		return nil, fmt.Errorf("%w: %s is a group, want a dataset", ErrMissingDataset, p)
	}
	if err != nil {
		return nil, lookupErr(p, err)
	}
	return ds, nil
}

// attr returns nil without error when the object exists but lacks the attribute.
func (h *File) attr(p, name string) (*hdf5.Attribute, error) {
	p = Clean(p)
	g, err := h.f.OpenGroup(p)
	if err == nil {
		return g.Attr(name), nil
	}
	if !errors.Is(err, hdf5.ErrNotGroup) {
		return nil, lookupErr(p, err)
	}
	ds, err := h.f.OpenDataset(p)
	if err != nil {
		return nil, lookupErr(p, err)
	}
	return ds.Attr(name), nil
}

func lookupErr(p string, err error) error {
	if errors.Is(err, hdf5.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrMissingDataset, p)
	}
	return fmt.Errorf("%w: %s: %w", ErrIO, p, err)
}

func numeric(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

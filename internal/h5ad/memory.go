package h5ad

import (
	"fmt"
	"path"
	"sort"
	"strings"
)

// Memory is an Accessor over a tree built in code. The builder methods
// create missing parent groups and return the receiver for chaining.
type Memory struct {
	nodes map[string]*memNode
}

type memNode struct {
	kind    Kind
	floats  []float64
	bitSize int
	ints    []int64
	strs    []string
	isText  bool
	isFloat bool
	attrs   map[string]any
}

var _ Source = (*Memory)(nil)

func NewMemory() *Memory {
	m := &Memory{nodes: map[string]*memNode{}}
	m.nodes[""] = &memNode{kind: KindGroup, attrs: map[string]any{}}
	return m
}

// Group adds an empty group at p.
func (m *Memory) Group(p string) *Memory {
	m.ensureGroup(Clean(p))
	return m
}

func (m *Memory) FloatDataset(p string, v []float64) *Memory {
	return m.put(p, &memNode{kind: KindDataset, floats: v, bitSize: 64, isFloat: true})
}

func (m *Memory) Float32Dataset(p string, v []float32) *Memory {
	wide := make([]float64, len(v))
	for i, x := range v {
		wide[i] = float64(x)
	}
	return m.put(p, &memNode{kind: KindDataset, floats: wide, bitSize: 32, isFloat: true})
}

func (m *Memory) IntDataset(p string, v []int64) *Memory {
	return m.put(p, &memNode{kind: KindDataset, ints: v})
}

func (m *Memory) StringDataset(p string, v []string) *Memory {
	return m.put(p, &memNode{kind: KindDataset, strs: v, isText: true})
}

// SetAttr attaches a string, []string or []int64 attribute to an existing node.
func (m *Memory) SetAttr(p, name string, v any) *Memory {
	n, ok := m.nodes[Clean(p)]
	if !ok {
		panic(fmt.Sprintf("h5ad: SetAttr on missing node %q", p))
	}
	n.attrs[name] = v
	return m
}

// DelAttr removes an attribute if present.
func (m *Memory) DelAttr(p, name string) *Memory {
	if n, ok := m.nodes[Clean(p)]; ok {
		delete(n.attrs, name)
	}
	return m
}

// Paths lists every node, sorted.
func (m *Memory) Paths() []string {
	out := make([]string, 0, len(m.nodes))
	for p := range m.nodes {
		if p != "" {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

func (m *Memory) Close() error { return nil }

func (m *Memory) Stat(p string) (Node, error) {
	p = Clean(p)
	n, err := m.lookup(p)
	if err != nil {
		return Node{}, err
	}
	out := Node{Path: p, Kind: n.kind}
	if n.kind == KindDataset {
		out.Shape = []uint64{uint64(n.len())}
	}
	return out, nil
}

func (m *Memory) Floats(p string) (Floats, error) {
	n, err := m.dataset(p)
	if err != nil {
		return Floats{}, err
	}
	switch {
	case n.isText:
		return Floats{}, fmt.Errorf("%w: %s holds strings, want a numeric type", ErrUnsupportedEncoding, Clean(p))
	case n.isFloat:
		return Floats{Values: n.floats, BitSize: n.bitSize}, nil
	}
	wide := make([]float64, len(n.ints))
	for i, x := range n.ints {
		wide[i] = float64(x)
	}
	return Floats{Values: wide, BitSize: 64}, nil
}

func (m *Memory) Ints(p string) ([]int64, error) {
	n, err := m.dataset(p)
	if err != nil {
		return nil, err
	}
	switch {
	case n.isText:
		return nil, fmt.Errorf("%w: %s holds strings, want an integer type", ErrUnsupportedEncoding, Clean(p))
	case n.isFloat:
		// truncates toward zero like an HDF5 float to integer conversion
		out := make([]int64, len(n.floats))
		for i, x := range n.floats {
			out[i] = int64(x)
		}
		return out, nil
	}
	return n.ints, nil
}

func (m *Memory) Strings(p string) ([]string, error) {
	n, err := m.dataset(p)
	if err != nil {
		return nil, err
	}
	if !n.isText {
		return nil, fmt.Errorf("%w: read %s: not a string dataset", ErrIO, Clean(p))
	}
	return n.strs, nil
}

func (m *Memory) StringAttr(p, name string) (string, bool, error) {
	n, err := m.lookup(Clean(p))
	if err != nil {
		return "", false, err
	}
	v, ok := n.attrs[name]
	if !ok {
		return "", false, nil
	}
	switch s := v.(type) {
	case string:
		return s, true, nil
	case []string:
		if len(s) == 1 {
			return s[0], true, nil
		}
	}
	return "", false, fmt.Errorf("%w: attribute %s@%s is %T, want a scalar string", ErrIO, Clean(p), name, v)
}

func (m *Memory) IntsAttr(p, name string) ([]int64, bool, error) {
	n, err := m.lookup(Clean(p))
	if err != nil {
		return nil, false, err
	}
	v, ok := n.attrs[name]
	if !ok {
		return nil, false, nil
	}
	ints, ok := v.([]int64)
	if !ok {
		return nil, false, fmt.Errorf("%w: attribute %s@%s is %T, want integers", ErrIO, Clean(p), name, v)
	}
	return ints, true, nil
}

func (m *Memory) lookup(p string) (*memNode, error) {
	n, ok := m.nodes[p]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingDataset, p)
	}
	return n, nil
}

func (m *Memory) dataset(p string) (*memNode, error) {
	p = Clean(p)
	n, err := m.lookup(p)
	if err != nil {
		return nil, err
	}
	if n.kind != KindDataset {
		return nil, fmt.Errorf("%w: %s is a group, want a dataset", ErrMissingDataset, p)
	}
	return n, nil
}

func (m *Memory) put(p string, n *memNode) *Memory {
	p = Clean(p)
	if dir := path.Dir(p); dir != "." {
		m.ensureGroup(dir)
	}
	n.attrs = map[string]any{}
	m.nodes[p] = n
	return m
}

func (m *Memory) ensureGroup(p string) {
	if p == "" || p == "." {
		return
	}
	parts := strings.Split(p, "/")
	for i := range parts {
		sub := strings.Join(parts[:i+1], "/")
		n, ok := m.nodes[sub]
		if !ok {
			m.nodes[sub] = &memNode{kind: KindGroup, attrs: map[string]any{}}
			continue
		}
		if n.kind != KindGroup {
			panic(fmt.Sprintf("h5ad: %q is a dataset, cannot hold children", sub))
		}
	}
}

func (n *memNode) len() int {
	switch {
	case n.isText:
		return len(n.strs)
	case n.isFloat:
		return len(n.floats)
	}
	return len(n.ints)
}

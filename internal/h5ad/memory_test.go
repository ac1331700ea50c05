package h5ad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStatKinds(t *testing.T) {
	m := NewMemory().FloatDataset("X/data", []float64{1, 2})

	n, err := m.Stat("X")
	require.NoError(t, err)
	assert.Equal(t, KindGroup, n.Kind)

	n, err = m.Stat("/X/data")
	require.NoError(t, err)
	assert.Equal(t, KindDataset, n.Kind)
	assert.Equal(t, []uint64{2}, n.Shape)

	_, err = m.Stat("X/missing")
	assert.ErrorIs(t, err, ErrMissingDataset)
}

func TestMemoryNumericWidening(t *testing.T) {
	m := NewMemory().
		Float32Dataset("a", []float32{0.5}).
		IntDataset("b", []int64{3, 4}).
		FloatDataset("c", []float64{2.9, -1.5})

	f, err := m.Floats("a")
	require.NoError(t, err)
	assert.Equal(t, 32, f.BitSize)
	assert.Equal(t, []float64{0.5}, f.Values)

	f, err = m.Floats("b")
	require.NoError(t, err)
	assert.Equal(t, 64, f.BitSize)
	assert.Equal(t, []float64{3, 4}, f.Values)

	ints, err := m.Ints("c")
	require.NoError(t, err)
	assert.Equal(t, []int64{2, -1}, ints)
}

func TestMemoryTypeErrors(t *testing.T) {
	m := NewMemory().StringDataset("names", []string{"x"}).IntDataset("n", []int64{1})

	_, err := m.Floats("names")
	assert.ErrorIs(t, err, ErrUnsupportedEncoding)
	_, err = m.Strings("n")
	assert.ErrorIs(t, err, ErrIO)
	_, err = m.Floats("")
	assert.ErrorIs(t, err, ErrMissingDataset, "root is a group")
}

func TestMemoryAttrs(t *testing.T) {
	m := NewMemory().Group("obs").
		SetAttr("obs", AttrIndex, "cell_ids").
		SetAttr("obs", AttrShape, []int64{2, 3})

	s, ok, err := m.StringAttr("obs", AttrIndex)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "cell_ids", s)

	_, ok, err = m.StringAttr("obs", "absent")
	require.NoError(t, err)
	assert.False(t, ok)

	v, ok, err := m.IntsAttr("obs", AttrShape)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []int64{2, 3}, v)

	_, _, err = m.IntsAttr("obs", AttrIndex)
	assert.ErrorIs(t, err, ErrIO)

	_, _, err = m.StringAttr("var", AttrIndex)
	assert.ErrorIs(t, err, ErrMissingDataset)
}

func TestMemoryDatasetCannotHoldChildren(t *testing.T) {
	m := NewMemory().IntDataset("X", []int64{1})
	assert.Panics(t, func() { m.IntDataset("X/data", nil) })
}

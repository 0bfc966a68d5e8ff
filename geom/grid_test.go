package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdxCoords(t *testing.T) {
	g := NewGrid([3]int{0, 0, 0}, [3]int{4, 3, 2})
	assert.Equal(t, 24, g.Volume)

	for idx := 0; idx < g.Volume; idx++ {
		x, y, z := g.Coords(idx)
		assert.Equal(t, idx, g.Idx(x, y, z), "round trip of %d", idx)
	}

	assert.Equal(t, 1, g.Idx(1, 0, 0), "x is the fastest axis")
	assert.Equal(t, 4, g.Idx(0, 1, 0))
	assert.Equal(t, 12, g.Idx(0, 0, 1))
}

func TestBoundsCheck(t *testing.T) {
	g := NewGrid([3]int{0, 0, 0}, [3]int{4, 3, 2})

	table := []struct {
		x, y, z int
		ok      bool
	}{
		{0, 0, 0, true},
		{3, 2, 1, true},
		{4, 0, 0, false},
		{0, 3, 0, false},
		{0, 0, 2, false},
		{-1, 0, 0, false},
	}

	for i, test := range table {
		_, ok := g.IdxCheck(test.x, test.y, test.z)
		if ok != test.ok {
			t.Errorf("%d) Expected IdxCheck(%d, %d, %d) = %v, got %v",
				i, test.x, test.y, test.z, test.ok, ok)
		}
	}
}

func TestNeighbor(t *testing.T) {
	g := NewGrid([3]int{0, 0, 0}, [3]int{4, 3, 2})
	periodic := [3]bool{false, true, true}

	idx, ok := g.Neighbor(1, 1, 1, [3]int{1, 0, 0}, periodic)
	assert.True(t, ok)
	assert.Equal(t, g.Idx(2, 1, 1), idx)

	_, ok = g.Neighbor(3, 1, 1, [3]int{1, 0, 0}, periodic)
	assert.False(t, ok, "x is not periodic")

	idx, ok = g.Neighbor(0, 0, 0, [3]int{0, -1, -1}, periodic)
	assert.True(t, ok)
	assert.Equal(t, g.Idx(0, 2, 1), idx)

	idx, ok = g.Neighbor(2, 2, 1, [3]int{0, 1, 1}, periodic)
	assert.True(t, ok)
	assert.Equal(t, g.Idx(2, 0, 0), idx)
}

func TestFaceShrink(t *testing.T) {
	cb := CellBounds{Width: [3]int{10, 4, 4}}

	low := cb.Face(0, -1)
	assert.Equal(t, [3]int{0, 0, 0}, low.Origin)
	assert.Equal(t, [3]int{1, 4, 4}, low.Width)

	high := cb.Face(0, +1)
	assert.Equal(t, [3]int{9, 0, 0}, high.Origin)
	assert.Equal(t, 16, high.Volume())

	inner := high.Shrink(1)
	inner = inner.Shrink(2)
	assert.Equal(t, [3]int{9, 1, 1}, inner.Origin)
	assert.Equal(t, [3]int{1, 2, 2}, inner.Width)
	assert.True(t, inner.Contains(9, 2, 2))
	assert.False(t, inner.Contains(9, 0, 2))

	g := NewGrid([3]int{0, 0, 0}, cb.Width)
	idxs := g.Indices(&inner, nil)
	assert.Equal(t, []int{
		g.Idx(9, 1, 1), g.Idx(9, 2, 1), g.Idx(9, 1, 2), g.Idx(9, 2, 2),
	}, idxs)
}

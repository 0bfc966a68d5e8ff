package geom

// Grid provides an interface for reasoning over a 1D slice as if it were a
// 3D grid. x varies fastest, then y, then z.
type Grid struct {
	CellBounds
	Length, Area, Volume int
	uBounds              [3]int
}

// CellBounds represents a bounding box aligned to grid cells.
type CellBounds struct {
	Origin, Width [3]int
}

// NewGrid returns a new Grid instance.
func NewGrid(origin [3]int, width [3]int) *Grid {
	g := &Grid{}
	g.Init(origin, width)
	return g
}

// Init initializes a Grid instance.
func (g *Grid) Init(origin [3]int, width [3]int) {
	g.Origin = origin
	g.Width = width

	g.Length = width[0]
	g.Area = width[0] * width[1]
	g.Volume = width[0] * width[1] * width[2]

	for i := 0; i < 3; i++ {
		g.uBounds[i] = g.Origin[i] + g.Width[i]
	}
}

// Idx returns the grid index corresponding to a set of coordinates.
func (g *Grid) Idx(x, y, z int) int {
	return ((x - g.Origin[0]) + (y-g.Origin[1])*g.Length +
		(z-g.Origin[2])*g.Area)
}

// IdxCheck returns an index and true if the given coordinate are valid and
// false otherwise.
func (g *Grid) IdxCheck(x, y, z int) (idx int, ok bool) {
	if !g.BoundsCheck(x, y, z) {
		return -1, false
	}

	return g.Idx(x, y, z), true
}

// BoundsCheck returns true if the given coordinates are within the Grid and
// false otherwise.
func (g *Grid) BoundsCheck(x, y, z int) bool {
	return (g.Origin[0] <= x && g.Origin[1] <= y && g.Origin[2] <= z) &&
		(x < g.uBounds[0] && y < g.uBounds[1] &&
			z < g.uBounds[2])
}

// Coords returns the x, y, z coordinates of a point from its grid index.
func (g *Grid) Coords(idx int) (x, y, z int) {
	x = idx%g.Length + g.Origin[0]
	y = (idx%g.Area)/g.Length + g.Origin[1]
	z = idx/g.Area + g.Origin[2]
	return x, y, z
}

// Neighbor returns the index of the cell displaced from (x, y, z) by d.
// Displacements which leave the grid along a periodic axis wrap around;
// along any other axis ok is false.
func (g *Grid) Neighbor(
	x, y, z int, d [3]int, periodic [3]bool,
) (idx int, ok bool) {
	c := [3]int{x + d[0], y + d[1], z + d[2]}
	for k := 0; k < 3; k++ {
		if c[k] >= g.Origin[k] && c[k] < g.uBounds[k] {
			continue
		}
		if !periodic[k] {
			return -1, false
		}
		c[k] = pMod(c[k]-g.Origin[k], g.Width[k]) + g.Origin[k]
	}
	return g.Idx(c[0], c[1], c[2]), true
}

// pMod computes the positive modulo x % y.
func pMod(x, y int) int {
	m := x % y
	if m < 0 {
		m += y
	}
	return m
}

// Face returns the single layer of cells on the low (orientation < 0) or
// high (orientation > 0) face of the bounding box normal to axis.
func (cb *CellBounds) Face(axis, orientation int) CellBounds {
	face := *cb
	if orientation > 0 {
		face.Origin[axis] = cb.Origin[axis] + cb.Width[axis] - 1
	}
	face.Width[axis] = 1
	return face
}

// Shrink removes one layer of cells from both ends of the given axis.
func (cb *CellBounds) Shrink(axis int) CellBounds {
	out := *cb
	out.Origin[axis]++
	out.Width[axis] -= 2
	if out.Width[axis] < 0 {
		out.Width[axis] = 0
	}
	return out
}

// Volume returns the number of cells inside the bounding box.
func (cb *CellBounds) Volume() int {
	return cb.Width[0] * cb.Width[1] * cb.Width[2]
}

// Contains returns true if the given coordinates are inside the bounding box.
func (cb *CellBounds) Contains(x, y, z int) bool {
	c := [3]int{x, y, z}
	for k := 0; k < 3; k++ {
		if c[k] < cb.Origin[k] || c[k] >= cb.Origin[k]+cb.Width[k] {
			return false
		}
	}
	return true
}

// Indices appends the grid indices of every cell inside the bounding box to
// buf, iterating x fastest.
func (g *Grid) Indices(cb *CellBounds, buf []int) []int {
	for z := cb.Origin[2]; z < cb.Origin[2]+cb.Width[2]; z++ {
		for y := cb.Origin[1]; y < cb.Origin[1]+cb.Width[1]; y++ {
			for x := cb.Origin[0]; x < cb.Origin[0]+cb.Width[0]; x++ {
				if idx, ok := g.IdxCheck(x, y, z); ok {
					buf = append(buf, idx)
				}
			}
		}
	}
	return buf
}

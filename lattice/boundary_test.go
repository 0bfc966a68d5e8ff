package lattice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/golbm/geom"
)

// channel returns a lattice with pressure boundaries on the x faces.
func channel(
	t *testing.T, width [3]int, periodic [3]bool, deltaP float64,
	geometry []int,
) *Lattice {
	lat, err := New(width, 1.25)
	require.NoError(t, err)
	for k := 0; k < 3; k++ {
		lat.SetPeriodic(k, periodic[k])
	}
	if geometry != nil {
		require.NoError(t, lat.DefineDynamics(geometry))
	}

	box := geom.CellBounds{Width: width}
	inlet := NewPressureBoundary(box, 0, -1, 1, periodic)
	outlet := NewPressureBoundary(box, 0, +1, 1-deltaP*InvCs2, periodic)
	require.NoError(t, lat.AddPressureBoundary(inlet))
	require.NoError(t, lat.AddPressureBoundary(outlet))

	lat.InitializeAtEquilibrium(PressureGradient(deltaP, width[0], 0))
	return lat
}

func TestBounceBackReversesPopulations(t *testing.T) {
	pop := make([]float64, Q)
	for i := range pop {
		pop[i] = float64(i)
	}
	bounceBack(pop)
	for i := range pop {
		assert.Equal(t, float64(Opposite[i]), pop[i], "direction %d", i)
	}
}

func TestPressureBoundaryPlanes(t *testing.T) {
	box := geom.CellBounds{Width: [3]int{10, 4, 4}}

	closed := NewPressureBoundary(box, 0, -1, 1, [3]bool{})
	assert.Equal(t, [3]int{0, 1, 1}, closed.Box.Origin)
	assert.Equal(t, [3]int{1, 2, 2}, closed.Box.Width)

	open := NewPressureBoundary(box, 0, +1, 1, [3]bool{false, true, true})
	assert.Equal(t, [3]int{9, 0, 0}, open.Box.Origin)
	assert.Equal(t, [3]int{1, 4, 4}, open.Box.Width)
}

func TestAddPressureBoundaryErrors(t *testing.T) {
	lat, err := New([3]int{1, 4, 4}, 1)
	require.NoError(t, err)

	pb := NewPressureBoundary(geom.CellBounds{Width: lat.Width}, 0, -1, 1, [3]bool{})
	err = lat.AddPressureBoundary(pb)
	var cerr *ConfigError
	assert.ErrorAs(t, err, &cerr)

	lat, err = New([3]int{4, 4, 4}, 1)
	require.NoError(t, err)
	pb = NewPressureBoundary(geom.CellBounds{Width: lat.Width}, 0, +1, -0.2, [3]bool{})
	assert.ErrorAs(t, lat.AddPressureBoundary(pb), &cerr)
}

func TestPressureBoundaryDensity(t *testing.T) {
	deltaP := 0.01
	lat := channel(t, [3]int{10, 4, 4}, [3]bool{false, true, true}, deltaP, nil)
	inlet, outlet := lat.Boundaries()[0], lat.Boundaries()[1]
	require.Len(t, inlet.Nodes(), 16)

	for step := 0; step < 30; step++ {
		lat.CollideAndStream()

		for _, idx := range inlet.Nodes() {
			assert.InDelta(t, 1.0, lat.Density(idx), eps, "step %d", step)
		}
		for _, idx := range outlet.Nodes() {
			assert.InDelta(t, 1-deltaP*InvCs2, lat.Density(idx), eps,
				"step %d", step)
		}
	}
}

func TestPressureBoundarySkipsWalls(t *testing.T) {
	width := [3]int{6, 3, 3}
	geometry := make([]int, width[0]*width[1]*width[2])
	g := geom.NewGrid([3]int{}, width)
	wall := g.Idx(0, 1, 1)
	geometry[wall] = 1

	lat := channel(t, width, [3]bool{false, true, true}, 0.01, geometry)
	for step := 0; step < 5; step++ {
		lat.CollideAndStream()
	}

	assert.Equal(t, BounceBack, lat.Label(wall))
	assert.Equal(t, ReferenceDensity, lat.Density(wall))
	assert.Equal(t, Vec{}, lat.Velocity(wall))

	for _, idx := range lat.Boundaries()[0].Nodes() {
		if idx == wall {
			continue
		}
		assert.InDelta(t, 1.0, lat.Density(idx), eps)
	}
}

func TestEquilibriumFixedPoint(t *testing.T) {
	lat, err := New([3]int{6, 5, 4}, 1.6)
	require.NoError(t, err)
	for k := 0; k < 3; k++ {
		lat.SetPeriodic(k, true)
	}
	lat.InitializeAtEquilibrium(UniformState(1, Vec{}))
	start := append([]float64{}, lat.f...)

	for step := 0; step < 25; step++ {
		lat.CollideAndStream()
	}
	assert.InDeltaSlice(t, start, lat.f, 1e-14)
}

func TestPressureBoundaryFixedPointWithoutGradient(t *testing.T) {
	lat := channel(t, [3]int{6, 4, 4}, [3]bool{false, true, true}, 0, nil)
	start := append([]float64{}, lat.f...)

	for step := 0; step < 25; step++ {
		lat.CollideAndStream()
	}
	assert.InDeltaSlice(t, start, lat.f, 1e-13)
}

func TestBounceBackWallsConserveMass(t *testing.T) {
	width := [3]int{5, 5, 3}
	g := geom.NewGrid([3]int{}, width)
	geometry := make([]int, g.Volume)
	for x := 0; x < width[0]; x++ {
		for z := 0; z < width[2]; z++ {
			geometry[g.Idx(x, 0, z)] = 1
			geometry[g.Idx(x, width[1]-1, z)] = 1
		}
	}

	lat, err := New(width, 1.1)
	require.NoError(t, err)
	for k := 0; k < 3; k++ {
		lat.SetPeriodic(k, true)
	}
	require.NoError(t, lat.DefineDynamics(geometry))
	lat.InitializeAtEquilibrium(func(x, y, z int) (float64, Vec) {
		return 1 + 0.01*float64(y), Vec{0.02, 0, 0.01}
	})

	total := func() float64 {
		sum := 0.0
		for _, v := range lat.f {
			sum += v
		}
		return sum
	}

	before := total()
	for step := 0; step < 20; step++ {
		lat.CollideAndStream()
	}
	assert.InDelta(t, before, total(), 1e-10)
}

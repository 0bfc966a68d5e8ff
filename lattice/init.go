package lattice

import (
	"gonum.org/v1/gonum/floats"
)

// InitialState gives the density and velocity a node starts with.
type InitialState func(x, y, z int) (rho float64, u Vec)

// InitializeAtEquilibrium sets the populations of every node to the
// equilibrium of the state returned by fn.
func (lat *Lattice) InitializeAtEquilibrium(fn InitialState) {
	lat.parallel(func(start, end int) {
		for idx := start; idx < end; idx++ {
			x, y, z := lat.Coords(idx)
			rho, u := fn(x, y, z)
			EquilibriumAt(rho, u, lat.f[idx*Q:(idx+1)*Q])
		}
	})
}

// PressureGradient returns an InitialState at rest whose density decreases
// linearly along axis from 1 at index 0 to 1 - deltaP*InvCs2 at index n-1.
func PressureGradient(deltaP float64, n, axis int) InitialState {
	rhos := make([]float64, n)
	if n == 1 {
		rhos[0] = 1
	} else {
		floats.Span(rhos, 1, 1-deltaP*InvCs2)
	}

	return func(x, y, z int) (float64, Vec) {
		c := [3]int{x, y, z}
		return rhos[c[axis]], Vec{}
	}
}

// UniformState returns an InitialState with the same density and velocity
// everywhere.
func UniformState(rho float64, u Vec) InitialState {
	return func(x, y, z int) (float64, Vec) { return rho, u }
}

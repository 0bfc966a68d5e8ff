/*package analyze reduces the velocity fields of a finished run to the
quantities pressure-driven flow studies are usually after: the flux through
each slice, the mean flow speed, porosity and Darcy permeability.
*/
package analyze

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/golbm/geom"
	"github.com/phil-mansfield/golbm/lattice"
)

// SliceFlux returns the sum of the axis component of u over every slice
// normal to axis. Solid nodes carry zero velocity and add nothing.
func SliceFlux(u *lattice.VectorField, axis int) []float64 {
	g := geom.NewGrid([3]int{}, u.Width)
	flux := make([]float64, u.Width[axis])
	for idx, v := range u.Vals {
		x, y, z := g.Coords(idx)
		slice := [3]int{x, y, z}[axis]
		flux[slice] += v[axis]
	}
	return flux
}

// SliceMean returns the mean axis velocity over each slice normal to axis.
func SliceMean(u *lattice.VectorField, axis int) []float64 {
	mean := SliceFlux(u, axis)
	area := float64(len(u.Vals) / u.Width[axis])
	floats.Scale(1/area, mean)
	return mean
}

// MeanVelocity returns the superficial velocity along axis: the mean of the
// axis component over every node of the domain, solid nodes included.
func MeanVelocity(u *lattice.VectorField, axis int) float64 {
	return floats.Sum(SliceFlux(u, axis)) / float64(len(u.Vals))
}

// MaxSpeed returns the largest velocity magnitude in u.
func MaxSpeed(u *lattice.VectorField) float64 {
	if len(u.Vals) == 0 {
		return 0
	}
	speed2 := make([]float64, len(u.Vals))
	for i, v := range u.Vals {
		speed2[i] = v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
	}
	return math.Sqrt(floats.Max(speed2))
}

// Porosity returns the fraction of nodes which are fluid.
func Porosity(labels []lattice.Label) float64 {
	if len(labels) == 0 {
		return 0
	}
	n := 0
	for _, l := range labels {
		if l == lattice.Fluid {
			n++
		}
	}
	return float64(n) / float64(len(labels))
}

// Permeability returns the Darcy permeability k = U nu L / deltaP in lattice
// units, where meanU is the superficial velocity, nu the kinematic viscosity
// and length the distance between the inlet and outlet planes.
func Permeability(meanU, nu, deltaP, length float64) (float64, error) {
	if deltaP == 0 {
		return 0, fmt.Errorf("permeability is undefined without a " +
			"pressure difference")
	}
	return meanU * nu * length / deltaP, nil
}

// Profile returns the comp component of u along the line through at which
// varies in coordinate along.
func Profile(u *lattice.VectorField, comp, along int, at [3]int) []float64 {
	g := geom.NewGrid([3]int{}, u.Width)
	prof := make([]float64, u.Width[along])
	for i := range prof {
		pt := at
		pt[along] = i
		prof[i] = u.Vals[g.Idx(pt[0], pt[1], pt[2])][comp]
	}
	return prof
}

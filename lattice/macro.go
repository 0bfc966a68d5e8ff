package lattice

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// ReferenceDensity is the density reported at solid nodes.
const ReferenceDensity = 1.0

// ScalarField is a dense scalar value per lattice node, indexed like the
// lattice grid.
type ScalarField struct {
	Width [3]int
	Vals  []float64
}

// VectorField is a dense 3-vector per lattice node, indexed like the lattice
// grid.
type VectorField struct {
	Width [3]int
	Vals  []Vec
}

// Density returns the macroscopic density of the node at idx. Solid nodes
// report ReferenceDensity.
func (lat *Lattice) Density(idx int) float64 {
	if lat.labels[idx] != Fluid {
		return ReferenceDensity
	}
	return floats.Sum(lat.f[idx*Q : (idx+1)*Q])
}

// Velocity returns the macroscopic velocity of the node at idx. Solid nodes
// are at rest.
func (lat *Lattice) Velocity(idx int) Vec {
	if lat.labels[idx] != Fluid {
		return Vec{}
	}
	rho, j := Moments(lat.f[idx*Q : (idx+1)*Q])
	return Vec{j[0] / rho, j[1] / rho, j[2] / rho}
}

// DensityField computes the density of every node.
func (lat *Lattice) DensityField() *ScalarField {
	field := &ScalarField{Width: lat.Width, Vals: make([]float64, lat.Volume)}
	lat.parallel(func(start, end int) {
		for idx := start; idx < end; idx++ {
			field.Vals[idx] = lat.Density(idx)
		}
	})
	return field
}

// VelocityField computes the velocity of every node.
func (lat *Lattice) VelocityField() *VectorField {
	field := &VectorField{Width: lat.Width, Vals: make([]Vec, lat.Volume)}
	lat.parallel(func(start, end int) {
		for idx := start; idx < end; idx++ {
			field.Vals[idx] = lat.Velocity(idx)
		}
	})
	return field
}

// TotalMass returns the summed populations of every node which carries
// fluid.
func (lat *Lattice) TotalMass() float64 {
	sum := 0.0
	for idx, l := range lat.labels {
		if l == Fluid {
			sum += floats.Sum(lat.f[idx*Q : (idx+1)*Q])
		}
	}
	return sum
}

// CheckDensity returns the index of the first fluid node whose density is
// non-positive or non-finite, and false if there is none.
func (lat *Lattice) CheckDensity() (idx int, rho float64, bad bool) {
	for idx, l := range lat.labels {
		if l != Fluid {
			continue
		}
		rho := floats.Sum(lat.f[idx*Q : (idx+1)*Q])
		if !(rho > 0) || math.IsInf(rho, 0) {
			return idx, rho, true
		}
	}
	return -1, 0, false
}

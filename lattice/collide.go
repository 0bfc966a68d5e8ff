package lattice

// Vec is a 3-vector of float64 values.
type Vec [3]float64

// dot returns the dot product of a direction and a vector.
func dot(c *[3]int, u *Vec) float64 {
	return float64(c[0])*u[0] + float64(c[1])*u[1] + float64(c[2])*u[2]
}

// Equilibrium returns the second-order equilibrium population of direction i
// for the given density and velocity.
func Equilibrium(i int, rho float64, u Vec) float64 {
	cu := dot(&C[i], &u)
	uSqr := u[0]*u[0] + u[1]*u[1] + u[2]*u[2]
	return W[i] * rho * (1 + InvCs2*cu + 0.5*InvCs2*InvCs2*cu*cu -
		0.5*InvCs2*uSqr)
}

// EquilibriumAt writes every equilibrium population for the given density
// and velocity into pop.
func EquilibriumAt(rho float64, u Vec, pop []float64) {
	for i := 0; i < Q; i++ {
		pop[i] = Equilibrium(i, rho, u)
	}
}

// Moments returns the density and momentum of a set of populations.
func Moments(pop []float64) (rho float64, j Vec) {
	for i := 0; i < Q; i++ {
		rho += pop[i]
		j[0] += pop[i] * float64(C[i][0])
		j[1] += pop[i] * float64(C[i][1])
		j[2] += pop[i] * float64(C[i][2])
	}
	return rho, j
}

// CollideNode relaxes pop towards its local equilibrium with BGK frequency
// omega. Density and momentum are unchanged.
func CollideNode(pop []float64, omega float64) {
	rho, j := Moments(pop)
	u := Vec{j[0] / rho, j[1] / rho, j[2] / rho}

	uSqr := u[0]*u[0] + u[1]*u[1] + u[2]*u[2]
	for i := 0; i < Q; i++ {
		cu := dot(&C[i], &u)
		eq := W[i] * rho * (1 + InvCs2*cu + 0.5*InvCs2*InvCs2*cu*cu -
			0.5*InvCs2*uSqr)
		pop[i] -= omega * (pop[i] - eq)
	}
}

// collide applies the collision phase to the whole lattice. Only Fluid nodes
// collide: walls reflect after streaming and inert nodes have no dynamics.
func (lat *Lattice) collide() {
	lat.parallel(func(start, end int) {
		for idx := start; idx < end; idx++ {
			switch lat.labels[idx] {
			case Fluid:
				CollideNode(lat.f[idx*Q:(idx+1)*Q], lat.omega)
			case BounceBack, Inert:
			}
		}
	})
}

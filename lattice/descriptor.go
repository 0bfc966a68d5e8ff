/*package lattice implements a D3Q19 lattice-Boltzmann solver for single-phase
flow: the population grid, BGK collision, push streaming, bounce-back and
pressure boundaries, equilibrium initialization and macroscopic field
extraction.
*/
package lattice

// Q is the number of discrete velocities in the D3Q19 velocity set.
const Q = 19

// InvCs2 is the inverse squared lattice speed of sound of D3Q19.
const InvCs2 = 3.0

// C contains the discrete velocity directions. Direction 0 is at rest,
// directions 1-9 have a negative leading non-zero component and directions
// 10-18 are their opposites, in the same order.
var C = [Q][3]int{
	{0, 0, 0},

	{-1, 0, 0}, {0, -1, 0}, {0, 0, -1},
	{-1, -1, 0}, {-1, 1, 0}, {-1, 0, -1},
	{-1, 0, 1}, {0, -1, -1}, {0, -1, 1},

	{1, 0, 0}, {0, 1, 0}, {0, 0, 1},
	{1, 1, 0}, {1, -1, 0}, {1, 0, 1},
	{1, 0, -1}, {0, 1, 1}, {0, 1, -1},
}

// W contains the lattice weights of each direction in C.
var W = [Q]float64{
	1.0 / 3,

	1.0 / 18, 1.0 / 18, 1.0 / 18,
	1.0 / 36, 1.0 / 36, 1.0 / 36,
	1.0 / 36, 1.0 / 36, 1.0 / 36,

	1.0 / 18, 1.0 / 18, 1.0 / 18,
	1.0 / 36, 1.0 / 36, 1.0 / 36,
	1.0 / 36, 1.0 / 36, 1.0 / 36,
}

// Opposite maps each direction to the direction pointing the other way.
var Opposite [Q]int

func init() {
	Opposite[0] = 0
	for i := 1; i <= Q/2; i++ {
		Opposite[i] = i + Q/2
		Opposite[i+Q/2] = i
	}
}

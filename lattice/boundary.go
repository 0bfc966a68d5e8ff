package lattice

import (
	"fmt"

	"github.com/phil-mansfield/golbm/geom"
)

// PressureBoundary imposes a fixed density on a plane of nodes normal to
// Axis. Orientation is -1 for the low-index face of the domain and +1 for the
// high-index face.
type PressureBoundary struct {
	Axis        int
	Orientation int
	Density     float64
	Box         geom.CellBounds

	nodes []int
	// in holds the directions whose populations enter the domain through
	// the plane, out their opposites and rest the directions parallel to it.
	in, out, rest []int
	// tangential velocity gathered from the interior before writing.
	uTan []Vec
}

// NewPressureBoundary returns a boundary on the given face of box. Nodes
// belonging to a non-periodic transverse axis' first and last layers are
// excluded: those edge lines belong to the walls.
func NewPressureBoundary(
	box geom.CellBounds, axis, orientation int, density float64,
	periodic [3]bool,
) *PressureBoundary {
	face := box.Face(axis, orientation)
	for k := 0; k < 3; k++ {
		if k != axis && !periodic[k] {
			face = face.Shrink(k)
		}
	}
	return &PressureBoundary{
		Axis: axis, Orientation: orientation, Density: density, Box: face,
	}
}

// AddPressureBoundary registers a pressure boundary with the lattice. The
// boundary's plane must lie on the face of the domain it points out of.
func (lat *Lattice) AddPressureBoundary(pb *PressureBoundary) error {
	if pb.Axis < 0 || pb.Axis > 2 {
		return ConfigErrorf("PressureAxis", "axis %d does not exist", pb.Axis)
	}
	if pb.Orientation != -1 && pb.Orientation != +1 {
		return fmt.Errorf(
			"pressure boundary orientation must be -1 or +1, not %d",
			pb.Orientation,
		)
	}
	if lat.Width[pb.Axis] < 2 {
		return ConfigErrorf(
			"PressureAxis", "domain must be at least 2 nodes wide along "+
				"the pressure axis, but is %d", lat.Width[pb.Axis],
		)
	}
	if !(pb.Density > 0) {
		return ConfigErrorf(
			"PressureDifference", "boundary density must be positive, "+
				"but is %g", pb.Density,
		)
	}

	pb.nodes = lat.Indices(&pb.Box, pb.nodes[:0])
	pb.in, pb.out, pb.rest = pb.in[:0], pb.out[:0], pb.rest[:0]
	inward := -pb.Orientation
	for i := 0; i < Q; i++ {
		switch C[i][pb.Axis] {
		case inward:
			pb.in = append(pb.in, i)
		case -inward:
			pb.out = append(pb.out, i)
		default:
			pb.rest = append(pb.rest, i)
		}
	}
	pb.uTan = make([]Vec, len(pb.nodes))

	lat.boundaries = append(lat.boundaries, pb)
	return nil
}

// Boundaries returns the registered pressure boundaries.
func (lat *Lattice) Boundaries() []*PressureBoundary { return lat.boundaries }

// Nodes returns the grid indices of the boundary plane.
func (pb *PressureBoundary) Nodes() []int { return pb.nodes }

// enforceBoundaries corrects populations after streaming. Bounce-back is
// applied first: a wall node on a pressure plane stays a wall.
func (lat *Lattice) enforceBoundaries() {
	lat.parallel(func(start, end int) {
		for idx := start; idx < end; idx++ {
			switch lat.labels[idx] {
			case BounceBack:
				bounceBack(lat.f[idx*Q : (idx+1)*Q])
			case Fluid, Inert:
			}
		}
	})

	for _, pb := range lat.boundaries {
		lat.parallelList(len(pb.nodes), func(start, end int) {
			for n := start; n < end; n++ {
				pb.uTan[n] = lat.interiorVelocity(pb, pb.nodes[n])
			}
		})
	}
	for _, pb := range lat.boundaries {
		lat.parallelList(len(pb.nodes), func(start, end int) {
			for n := start; n < end; n++ {
				idx := pb.nodes[n]
				if lat.labels[idx] != Fluid {
					continue
				}
				pb.closeNode(lat.f[idx*Q:(idx+1)*Q], pb.uTan[n])
			}
		})
	}
}

// bounceBack reverses every population of a wall node.
func bounceBack(pop []float64) {
	for i := 1; i <= Q/2; i++ {
		pop[i], pop[i+Q/2] = pop[i+Q/2], pop[i]
	}
}

// interiorVelocity returns the velocity of the node one layer inside the
// domain from a boundary node, with its normal component removed. Solid
// neighbours have zero velocity.
func (lat *Lattice) interiorVelocity(pb *PressureBoundary, idx int) Vec {
	x, y, z := lat.Coords(idx)
	d := [3]int{}
	d[pb.Axis] = -pb.Orientation

	next, ok := lat.Neighbor(x, y, z, d, lat.periodic)
	if !ok || lat.labels[next] != Fluid {
		return Vec{}
	}

	rho, j := Moments(lat.f[next*Q : (next+1)*Q])
	u := Vec{j[0] / rho, j[1] / rho, j[2] / rho}
	u[pb.Axis] = 0
	return u
}

// closeNode rebuilds the populations entering the domain at a boundary node
// so that its density equals the boundary density. The normal velocity
// follows from mass balance over the known populations and the unknown ones
// are set by bouncing back their non-equilibrium part.
func (pb *PressureBoundary) closeNode(pop []float64, uTan Vec) {
	rho := pb.Density

	known := 0.0
	for _, i := range pb.rest {
		known += pop[i]
	}
	for _, i := range pb.out {
		known += 2 * pop[i]
	}

	u := uTan
	u[pb.Axis] = float64(-pb.Orientation) * (1 - known/rho)

	for _, i := range pb.in {
		opp := Opposite[i]
		pop[i] = pop[opp] + Equilibrium(i, rho, u) - Equilibrium(opp, rho, u)
	}
}

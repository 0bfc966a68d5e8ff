package lattice

import (
	"runtime"

	"github.com/phil-mansfield/golbm/geom"
)

// Lattice holds the populations and node labels of a D3Q19 simulation over
// a dense 3D grid.
type Lattice struct {
	geom.Grid

	// f is the current population field and tmp the streaming target.
	// Both are node-major: f[idx*Q + i].
	f, tmp []float64
	labels []Label

	periodic [3]bool
	omega    float64

	boundaries []*PressureBoundary

	workers int
	ranges  [][2]int
}

// New allocates a lattice with the given width and BGK relaxation
// frequency. All nodes start as Fluid with zero populations.
func New(width [3]int, omega float64) (*Lattice, error) {
	names := [3]string{"Nx", "Ny", "Nz"}
	for k := 0; k < 3; k++ {
		if width[k] <= 0 {
			return nil, ConfigErrorf(
				names[k], "domain extent must be positive, but is %d",
				width[k],
			)
		}
	}
	if !(omega > 0 && omega < 2) {
		return nil, ConfigErrorf(
			"omega", "relaxation frequency must be in (0, 2), but is %g",
			omega,
		)
	}

	lat := &Lattice{omega: omega}
	lat.Init([3]int{0, 0, 0}, width)
	lat.f = make([]float64, lat.Volume*Q)
	lat.tmp = make([]float64, lat.Volume*Q)
	lat.labels = make([]Label, lat.Volume)
	lat.SetWorkers(runtime.NumCPU())

	return lat, nil
}

// SetWorkers sets the number of goroutines each phase of a step is split
// across.
func (lat *Lattice) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	if n > lat.Volume {
		n = lat.Volume
	}
	lat.workers = n

	lat.ranges = make([][2]int, n)
	chunk := (lat.Volume + n - 1) / n
	for id := 0; id < n; id++ {
		start, end := id*chunk, (id+1)*chunk
		if start > lat.Volume {
			start = lat.Volume
		}
		if end > lat.Volume {
			end = lat.Volume
		}
		lat.ranges[id] = [2]int{start, end}
	}
}

// Workers returns the number of goroutines used per phase.
func (lat *Lattice) Workers() int { return lat.workers }

// Omega returns the BGK relaxation frequency.
func (lat *Lattice) Omega() float64 { return lat.omega }

// SetPeriodic toggles wrap-around streaming along one axis.
func (lat *Lattice) SetPeriodic(axis int, periodic bool) {
	lat.periodic[axis] = periodic
}

// Periodic returns the periodicity of every axis.
func (lat *Lattice) Periodic() [3]bool { return lat.periodic }

// DefineDynamics assigns a Label to every node from a geometry volume laid
// out like the lattice grid. Any value other than 0, 1 or 2 is rejected.
func (lat *Lattice) DefineDynamics(geometry []int) error {
	if len(geometry) != lat.Volume {
		return ConfigErrorf(
			"geometry", "expected %d nodes, got %d", lat.Volume, len(geometry),
		)
	}

	for idx, v := range geometry {
		l, ok := LabelFromGeometry(v)
		if !ok {
			x, y, z := lat.Coords(idx)
			return ConfigErrorf(
				"geometry", "invalid label %d at node (%d, %d, %d)",
				v, x, y, z,
			)
		}
		lat.labels[idx] = l
	}
	return nil
}

// Label returns the label of the node at idx.
func (lat *Lattice) Label(idx int) Label { return lat.labels[idx] }

// Labels returns the label field. It must not be modified.
func (lat *Lattice) Labels() []Label { return lat.labels }

// Populations returns the populations of the node at idx. The returned slice
// aliases the lattice.
func (lat *Lattice) Populations(idx int) []float64 {
	return lat.f[idx*Q : (idx+1)*Q]
}

// CollideAndStream advances the lattice by one time step: collision,
// streaming and boundary enforcement, each finished over the whole grid
// before the next one starts.
func (lat *Lattice) CollideAndStream() {
	lat.collide()
	lat.stream()
	lat.enforceBoundaries()
}

// parallel runs fn over the node range of every worker and returns once all
// of them have finished.
func (lat *Lattice) parallel(fn func(start, end int)) {
	out := make(chan int, lat.workers)

	for id := 0; id < lat.workers-1; id++ {
		go lat.chanRun(id, fn, out)
	}
	lat.chanRun(lat.workers-1, fn, out)

	for i := 0; i < lat.workers; i++ {
		<-out
	}
}

func (lat *Lattice) chanRun(id int, fn func(start, end int), out chan<- int) {
	r := lat.ranges[id]
	fn(r[0], r[1])
	out <- id
}

// parallelList runs fn over disjoint chunks of a list of n items.
func (lat *Lattice) parallelList(n int, fn func(start, end int)) {
	workers := lat.workers
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		fn(0, n)
		return
	}

	out := make(chan int, workers)
	chunk := (n + workers - 1) / workers
	for id := 0; id < workers; id++ {
		start, end := id*chunk, (id+1)*chunk
		if end > n {
			end = n
		}
		go func(id, start, end int) {
			if start < end {
				fn(start, end)
			}
			out <- id
		}(id, start, end)
	}

	for i := 0; i < workers; i++ {
		<-out
	}
}

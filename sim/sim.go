/*package sim drives a pressure-difference lattice-Boltzmann run: it builds
the lattice from a geometry volume and a Config, sets up the inlet and
outlet, initializes a linear pressure gradient and advances the lattice for a
fixed number of steps.
*/
package sim

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"strings"

	"github.com/phil-mansfield/golbm/geom"
	"github.com/phil-mansfield/golbm/lattice"
)

// Periodicity selects which domain faces wrap around.
type Periodicity int

const (
	// NonPeriodic disables wrap-around on every axis.
	NonPeriodic Periodicity = iota
	// Periodic wraps every axis except the pressure axis.
	Periodic
)

func (p Periodicity) String() string {
	switch p {
	case NonPeriodic:
		return "non-periodic"
	case Periodic:
		return "periodic"
	}
	return "unknown"
}

// PeriodicityFromString parses "periodic" or "non-periodic".
func PeriodicityFromString(s string) (Periodicity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "periodic":
		return Periodic, true
	case "non-periodic":
		return NonPeriodic, true
	}
	return NonPeriodic, false
}

// Config describes a single run. It is not modified by the simulation.
type Config struct {
	// Width is the domain size in nodes.
	Width [3]int
	// DeltaP is the pressure difference between inlet and outlet in
	// lattice units.
	DeltaP float64
	// Nu is the kinematic viscosity in lattice units.
	Nu float64
	// Steps is the number of time steps to run.
	Steps int
	Periodicity Periodicity
	// Axis is the pressure axis: 0, 1 or 2.
	Axis int

	// CheckInterval is the number of steps between divergence scans. Zero
	// disables them.
	CheckInterval int
	// ReportInterval is the number of steps between progress log lines.
	// Zero disables them.
	ReportInterval int
	// Workers is the number of goroutines per phase. Zero uses every CPU.
	Workers int
}

// OmegaFromViscosity returns the BGK relaxation frequency for a kinematic
// viscosity.
func OmegaFromViscosity(nu float64) float64 {
	return 1 / (nu*lattice.InvCs2 + 0.5)
}

// Omega returns the relaxation frequency of the run.
func (con *Config) Omega() float64 { return OmegaFromViscosity(con.Nu) }

// InletDensity returns the density imposed on the low face.
func (con *Config) InletDensity() float64 { return 1 }

// OutletDensity returns the density imposed on the high face.
func (con *Config) OutletDensity() float64 {
	return 1 - con.DeltaP*lattice.InvCs2
}

// Check returns a *lattice.ConfigError describing the first invalid value
// in con, or nil.
func (con *Config) Check() error {
	names := [3]string{"Nx", "Ny", "Nz"}
	for k := 0; k < 3; k++ {
		if con.Width[k] <= 0 {
			return lattice.ConfigErrorf(
				names[k], "domain extent must be positive, but is %d",
				con.Width[k],
			)
		}
	}
	if con.Axis < 0 || con.Axis > 2 {
		return lattice.ConfigErrorf(
			"PressureAxis", "axis must be 0, 1 or 2, but is %d", con.Axis,
		)
	}
	if con.Width[con.Axis] < 2 {
		return lattice.ConfigErrorf(
			names[con.Axis], "the pressure axis needs at least 2 nodes, "+
				"but has %d", con.Width[con.Axis],
		)
	}
	if omega := con.Omega(); !(omega > 0 && omega < 2) {
		return lattice.ConfigErrorf(
			"KinematicViscosity", "viscosity %g gives omega = %g, which is "+
				"outside of (0, 2)", con.Nu, omega,
		)
	}
	if !(con.OutletDensity() > 0) {
		return lattice.ConfigErrorf(
			"PressureDifference", "pressure difference %g gives a "+
				"non-positive outlet density", con.DeltaP,
		)
	}
	if con.Steps < 0 {
		return lattice.ConfigErrorf(
			"TimeSteps", "step count must be non-negative, but is %d",
			con.Steps,
		)
	}
	if con.Periodicity != Periodic && con.Periodicity != NonPeriodic {
		return lattice.ConfigErrorf(
			"Periodicity", "unknown periodicity %d", con.Periodicity,
		)
	}
	if con.CheckInterval < 0 {
		return lattice.ConfigErrorf(
			"CheckInterval", "must be non-negative, but is %d",
			con.CheckInterval,
		)
	}
	return nil
}

// State is the lifecycle state of a Simulation.
type State int

const (
	// Configured simulations have been set up but not stepped.
	Configured State = iota
	// Running simulations have been stepped at least once.
	Running
	// Done simulations have completed every configured step.
	Done
)

func (s State) String() string {
	switch s {
	case Configured:
		return "Configured"
	case Running:
		return "Running"
	case Done:
		return "Done"
	}
	return "Unknown"
}

// Simulation owns a lattice for the duration of a run.
type Simulation struct {
	con   Config
	lat   *lattice.Lattice
	step  int
	state State
}

// New sets up a simulation from a configuration and a geometry volume laid
// out like the lattice grid (x fastest). Geometry value 1 is a bounce-back
// wall, 2 an inert solid and 0 fluid.
func New(con *Config, geometry []int) (*Simulation, error) {
	if err := con.Check(); err != nil {
		return nil, err
	}

	lat, err := lattice.New(con.Width, con.Omega())
	if err != nil {
		return nil, err
	}

	workers := con.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	lat.SetWorkers(workers)

	if con.Periodicity == Periodic {
		for k := 0; k < 3; k++ {
			lat.SetPeriodic(k, k != con.Axis)
		}
	}

	if err := lat.DefineDynamics(geometry); err != nil {
		return nil, err
	}

	box := geom.CellBounds{Width: con.Width}
	inlet := lattice.NewPressureBoundary(
		box, con.Axis, -1, con.InletDensity(), lat.Periodic(),
	)
	outlet := lattice.NewPressureBoundary(
		box, con.Axis, +1, con.OutletDensity(), lat.Periodic(),
	)
	if err := lat.AddPressureBoundary(inlet); err != nil {
		return nil, err
	}
	if err := lat.AddPressureBoundary(outlet); err != nil {
		return nil, err
	}

	lat.InitializeAtEquilibrium(lattice.PressureGradient(
		con.DeltaP, con.Width[con.Axis], con.Axis,
	))

	s := &Simulation{con: *con, lat: lat}
	if con.Steps == 0 {
		s.state = Done
	}
	return s, nil
}

// Config returns the configuration of the run.
func (s *Simulation) Config() Config { return s.con }

// Lattice returns the simulated lattice.
func (s *Simulation) Lattice() *lattice.Lattice { return s.lat }

// State returns the lifecycle state of the simulation.
func (s *Simulation) State() State { return s.state }

// StepCount returns the number of completed steps.
func (s *Simulation) StepCount() int { return s.step }

// Step advances the lattice by one time step. Calling Step on a finished
// simulation panics. If divergence checks are enabled and this step is
// checked, a *lattice.DivergenceError is returned for the first node with a
// non-positive or non-finite density.
func (s *Simulation) Step() error {
	if s.state == Done {
		panic(fmt.Sprintf(
			"Step called after all %d steps have completed.", s.con.Steps,
		))
	}

	s.state = Running
	s.lat.CollideAndStream()
	s.step++
	if s.step >= s.con.Steps {
		s.state = Done
	}

	if s.con.CheckInterval > 0 && s.step%s.con.CheckInterval == 0 {
		return s.checkDivergence()
	}
	return nil
}

func (s *Simulation) checkDivergence() error {
	idx, rho, bad := s.lat.CheckDensity()
	if !bad {
		return nil
	}
	x, y, z := s.lat.Coords(idx)
	return &lattice.DivergenceError{
		Step: s.step, X: x, Y: y, Z: z, Density: rho,
	}
}

// Run executes every remaining step. ctx is only checked between steps, so
// a cancelled run always leaves the lattice at a step boundary.
func (s *Simulation) Run(ctx context.Context) error {
	for s.state != Done {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Step(); err != nil {
			return err
		}

		if s.con.ReportInterval > 0 && s.step%s.con.ReportInterval == 0 {
			log.Printf("Completed %d/%d steps", s.step, s.con.Steps)
		}
	}
	return nil
}

// Density returns the density field of the current state.
func (s *Simulation) Density() *lattice.ScalarField {
	return s.lat.DensityField()
}

// Velocity returns the velocity field of the current state.
func (s *Simulation) Velocity() *lattice.VectorField {
	return s.lat.VelocityField()
}

package io

import (
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/golbm/lattice"
	"github.com/phil-mansfield/golbm/sim"
)

const (
	ExamplePressureDifferenceFile = `[PressureDifference]

#######################
# Required Parameters #
#######################

# Voxelized geometry of the domain. 0 is fluid, 1 is a bounce-back wall and
# 2 is an inert solid which is never visited by the fluid. Nodes are listed
# with x varying slowest and z varying fastest.
GeometryFile = path/to/geometry.dat

# Size of the domain in lattice nodes. These must match the geometry file.
Nx = 10
Ny = 4
Nz = 4

# Files which the density and velocity fields are written to after the final
# step.
DensityOutput = path/to/density.grid
VelocityOutput = path/to/velocity.grid

#######################
# Optional Parameters #
#######################

# GeometryFormat can be set to one of:
# [ Text | Binary | Sparse ]
# Text files are whitespace-separated integers, Binary files hold one byte per
# node and Sparse files are tables with the columns "x y z label". Nodes which
# are not listed in a Sparse file are fluid. Default is Text.
# GeometryFormat = Text

# Pressure difference between the inlet and the outlet in lattice units.
# Default is 1e-5.
# PressureDifference = 1e-5

# Kinematic viscosity in lattice units. The relaxation frequency is
# 1 / (3 KinematicViscosity + 0.5), and must be in (0, 2). Default is 0.5.
# KinematicViscosity = 0.5

# Default is 1000.
# TimeSteps = 1000

# Must be one of [ periodic | non-periodic ]. A periodic domain wraps around
# every axis except the pressure axis. Default is non-periodic.
# Periodicity = non-periodic

# Axis which the pressure difference is applied along. Must be one of
# [ X | Y | Z ]. Default is X.
# PressureAxis = X

# Number of steps between checks for a diverging density field. Default is
# 0, which never checks.
# CheckInterval = 100

# Number of steps between progress messages in the log. Default is 0.
# ReportInterval = 100

# Writes the volumetric flux through every slice normal to the pressure axis
# as a text table.
# FluxOutput = path/to/flux.txt

# Plots the velocity profile across the center of the domain.
# PlotFile = path/to/profile.png

# Output files which are useful for profiling and debugging. Generally, there
# isn't a reason to use these unless something goes wrong.
# ProfileFile = prof.out
# LogFile = log.out`
)

// Supported values of GeometryFormat.
const (
	TextFormat   = "Text"
	BinaryFormat = "Binary"
	SparseFormat = "Sparse"
)

type SharedConfig struct {
	// Optional
	LogFile, ProfileFile string
}

func (con *SharedConfig) ValidLogFile() bool {
	return con.LogFile != ""
}
func (con *SharedConfig) ValidProfileFile() bool {
	return con.ProfileFile != ""
}

type PressureDifferenceConfig struct {
	SharedConfig

	// Required
	GeometryFile                  string
	Nx, Ny, Nz                    int
	DensityOutput, VelocityOutput string

	// Optional
	GeometryFormat                         string
	PressureDifference, KinematicViscosity float64
	TimeSteps                              int
	Periodicity, PressureAxis              string
	CheckInterval, ReportInterval          int
	FluxOutput, PlotFile                   string
}

type PressureDifferenceWrapper struct {
	PressureDifference PressureDifferenceConfig
}

func DefaultPressureDifferenceWrapper() *PressureDifferenceWrapper {
	con := PressureDifferenceConfig{}
	con.GeometryFormat = TextFormat
	con.PressureDifference = 1e-5
	con.KinematicViscosity = 0.5
	con.TimeSteps = 1000
	con.Periodicity = sim.NonPeriodic.String()
	con.PressureAxis = "X"
	return &PressureDifferenceWrapper{con}
}

// ReadPressureDifferenceConfig reads and validates a [PressureDifference]
// config file. Unset optional values take their defaults.
func ReadPressureDifferenceConfig(
	fname string,
) (*PressureDifferenceConfig, error) {
	wrap := DefaultPressureDifferenceWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	con := &wrap.PressureDifference
	if err := con.CheckInit(); err != nil {
		return nil, err
	}
	return con, nil
}

func (con *PressureDifferenceConfig) ValidGeometryFile() bool {
	return con.GeometryFile != ""
}
func (con *PressureDifferenceConfig) ValidGeometryFormat() bool {
	_, ok := GeometryFormatFromString(con.GeometryFormat)
	return ok
}
func (con *PressureDifferenceConfig) ValidNx() bool { return con.Nx > 0 }
func (con *PressureDifferenceConfig) ValidNy() bool { return con.Ny > 0 }
func (con *PressureDifferenceConfig) ValidNz() bool { return con.Nz > 0 }
func (con *PressureDifferenceConfig) ValidDensityOutput() bool {
	return con.DensityOutput != ""
}
func (con *PressureDifferenceConfig) ValidVelocityOutput() bool {
	return con.VelocityOutput != ""
}
func (con *PressureDifferenceConfig) ValidKinematicViscosity() bool {
	omega := sim.OmegaFromViscosity(con.KinematicViscosity)
	return omega > 0 && omega < 2
}
func (con *PressureDifferenceConfig) ValidTimeSteps() bool {
	return con.TimeSteps >= 0
}
func (con *PressureDifferenceConfig) ValidPeriodicity() bool {
	_, ok := sim.PeriodicityFromString(con.Periodicity)
	return ok
}
func (con *PressureDifferenceConfig) ValidPressureAxis() bool {
	_, ok := AxisFromString(con.PressureAxis)
	return ok
}
func (con *PressureDifferenceConfig) ValidCheckInterval() bool {
	return con.CheckInterval >= 0
}
func (con *PressureDifferenceConfig) ValidReportInterval() bool {
	return con.ReportInterval >= 0
}
func (con *PressureDifferenceConfig) ValidFluxOutput() bool {
	return con.FluxOutput != ""
}
func (con *PressureDifferenceConfig) ValidPlotFile() bool {
	return con.PlotFile != ""
}

// CheckInit returns a *lattice.ConfigError for the first missing or invalid
// field. Values which depend on more than one field, like the outlet density,
// are checked by sim.Config.Check.
func (con *PressureDifferenceConfig) CheckInit() error {
	switch {
	case !con.ValidGeometryFile():
		return lattice.ConfigErrorf("GeometryFile", "must be set")
	case !con.ValidGeometryFormat():
		return lattice.ConfigErrorf(
			"GeometryFormat", "must be one of [Text | Binary | Sparse], "+
				"but is '%s'", con.GeometryFormat,
		)
	case !con.ValidNx():
		return lattice.ConfigErrorf("Nx", "must be positive, but is %d", con.Nx)
	case !con.ValidNy():
		return lattice.ConfigErrorf("Ny", "must be positive, but is %d", con.Ny)
	case !con.ValidNz():
		return lattice.ConfigErrorf("Nz", "must be positive, but is %d", con.Nz)
	case !con.ValidDensityOutput():
		return lattice.ConfigErrorf("DensityOutput", "must be set")
	case !con.ValidVelocityOutput():
		return lattice.ConfigErrorf("VelocityOutput", "must be set")
	case !con.ValidKinematicViscosity():
		return lattice.ConfigErrorf(
			"KinematicViscosity", "viscosity %g gives omega = %g, which is "+
				"outside of (0, 2)", con.KinematicViscosity,
			sim.OmegaFromViscosity(con.KinematicViscosity),
		)
	case !con.ValidTimeSteps():
		return lattice.ConfigErrorf(
			"TimeSteps", "must be non-negative, but is %d", con.TimeSteps,
		)
	case !con.ValidPeriodicity():
		return lattice.ConfigErrorf(
			"Periodicity", "must be one of [periodic | non-periodic], "+
				"but is '%s'", con.Periodicity,
		)
	case !con.ValidPressureAxis():
		return lattice.ConfigErrorf(
			"PressureAxis", "must be one of [X | Y | Z], but is '%s'",
			con.PressureAxis,
		)
	case !con.ValidCheckInterval():
		return lattice.ConfigErrorf(
			"CheckInterval", "must be non-negative, but is %d",
			con.CheckInterval,
		)
	case !con.ValidReportInterval():
		return lattice.ConfigErrorf(
			"ReportInterval", "must be non-negative, but is %d",
			con.ReportInterval,
		)
	}
	return nil
}

// Width returns the domain size in nodes.
func (con *PressureDifferenceConfig) Width() [3]int {
	return [3]int{con.Nx, con.Ny, con.Nz}
}

// SimConfig converts a checked config file into a run configuration.
// workers <= 0 uses every CPU.
func (con *PressureDifferenceConfig) SimConfig(workers int) *sim.Config {
	p, _ := sim.PeriodicityFromString(con.Periodicity)
	axis, _ := AxisFromString(con.PressureAxis)
	return &sim.Config{
		Width:          con.Width(),
		DeltaP:         con.PressureDifference,
		Nu:             con.KinematicViscosity,
		Steps:          con.TimeSteps,
		Periodicity:    p,
		Axis:           axis,
		CheckInterval:  con.CheckInterval,
		ReportInterval: con.ReportInterval,
		Workers:        workers,
	}
}

// AxisFromString converts one of "X", "Y" or "Z" to an axis index.
func AxisFromString(s string) (int, bool) {
	switch strings.Trim(strings.ToUpper(s), " ") {
	case "X":
		return 0, true
	case "Y":
		return 1, true
	case "Z":
		return 2, true
	}
	return -1, false
}

// AxisName is the inverse of AxisFromString.
func AxisName(axis int) string {
	return [3]string{"X", "Y", "Z"}[axis]
}

// GeometryFormatFromString returns the canonical spelling of a geometry
// format name.
func GeometryFormatFromString(s string) (string, bool) {
	for _, format := range []string{TextFormat, BinaryFormat, SparseFormat} {
		if strings.EqualFold(strings.TrimSpace(s), format) {
			return format, true
		}
	}
	return "", false
}

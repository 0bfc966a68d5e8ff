package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/golbm/lattice"
	"github.com/phil-mansfield/golbm/sim"
)

func writeFile(t *testing.T, name, contents string) string {
	fname := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fname, []byte(contents), 0644))
	return fname
}

const minimalConfig = `[PressureDifference]
GeometryFile = geometry.txt
Nx = 10
Ny = 4
Nz = 4
DensityOutput = rho.grid
VelocityOutput = u.grid
`

func TestReadConfigDefaults(t *testing.T) {
	con, err := ReadPressureDifferenceConfig(
		writeFile(t, "config.ini", minimalConfig),
	)
	require.NoError(t, err)

	assert.Equal(t, "geometry.txt", con.GeometryFile)
	assert.Equal(t, [3]int{10, 4, 4}, con.Width())
	assert.Equal(t, TextFormat, con.GeometryFormat)
	assert.Equal(t, 1e-5, con.PressureDifference)
	assert.Equal(t, 0.5, con.KinematicViscosity)
	assert.Equal(t, 1000, con.TimeSteps)
	assert.False(t, con.ValidFluxOutput())
	assert.False(t, con.ValidPlotFile())
	assert.False(t, con.ValidLogFile())

	simCon := con.SimConfig(2)
	assert.Equal(t, sim.NonPeriodic, simCon.Periodicity)
	assert.Equal(t, 0, simCon.Axis)
	assert.Equal(t, 2, simCon.Workers)
	assert.NoError(t, simCon.Check())
}

func TestReadConfigOptional(t *testing.T) {
	text := minimalConfig + `GeometryFormat = sparse
PressureDifference = 0.01
KinematicViscosity = 0.1
TimeSteps = 50
Periodicity = periodic
PressureAxis = z
CheckInterval = 10
ReportInterval = 5
FluxOutput = flux.txt
LogFile = log.out
`
	con, err := ReadPressureDifferenceConfig(writeFile(t, "config.ini", text))
	require.NoError(t, err)

	simCon := con.SimConfig(0)
	assert.Equal(t, sim.Config{
		Width: [3]int{10, 4, 4}, DeltaP: 0.01, Nu: 0.1, Steps: 50,
		Periodicity: sim.Periodic, Axis: 2,
		CheckInterval: 10, ReportInterval: 5,
	}, *simCon)
	assert.True(t, con.ValidFluxOutput())
	assert.Equal(t, "log.out", con.LogFile)
}

func TestReadConfigErrors(t *testing.T) {
	table := []struct {
		extra string
		field string
	}{
		{"GeometryFormat = VTK\n", "GeometryFormat"},
		{"KinematicViscosity = -0.2\n", "KinematicViscosity"},
		{"TimeSteps = -1\n", "TimeSteps"},
		{"Periodicity = sometimes\n", "Periodicity"},
		{"PressureAxis = W\n", "PressureAxis"},
		{"CheckInterval = -3\n", "CheckInterval"},
	}

	for i, test := range table {
		fname := writeFile(t, "config.ini", minimalConfig+test.extra)
		_, err := ReadPressureDifferenceConfig(fname)
		var cerr *lattice.ConfigError
		if assert.ErrorAs(t, err, &cerr, "case %d", i) {
			assert.Equal(t, test.field, cerr.Field, "case %d", i)
		}
	}

	fname := writeFile(t, "config.ini", `[PressureDifference]
Nx = 4
Ny = 4
Nz = 4
`)
	_, err := ReadPressureDifferenceConfig(fname)
	var cerr *lattice.ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "GeometryFile", cerr.Field)

	_, err = ReadPressureDifferenceConfig(
		filepath.Join(t.TempDir(), "missing.ini"),
	)
	assert.Error(t, err)
}

func TestAxisFromString(t *testing.T) {
	for i, name := range []string{"X", "Y", "Z"} {
		axis, ok := AxisFromString(name)
		assert.True(t, ok)
		assert.Equal(t, i, axis)
		assert.Equal(t, name, AxisName(axis))
	}
	axis, ok := AxisFromString(" y ")
	assert.True(t, ok)
	assert.Equal(t, 1, axis)

	_, ok = AxisFromString("XY")
	assert.False(t, ok)
}

func TestExampleConfigParses(t *testing.T) {
	con, err := ReadPressureDifferenceConfig(
		writeFile(t, "example.ini", ExamplePressureDifferenceFile),
	)
	require.NoError(t, err)
	assert.Equal(t, [3]int{10, 4, 4}, con.Width())
}

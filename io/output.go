package io

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/phil-mansfield/golbm/lattice"
	"github.com/phil-mansfield/golbm/sim"
)

var end = binary.LittleEndian

type GridHeader struct {
	Type TypeInfo
	Flow FlowInfo
	Loc  LocationInfo
}

type TypeInfo struct {
	Endianness   int64
	HeaderSize   int64
	GridType     int64
	IsVectorGrid int64
}

// FlowInfo records the run which produced a grid.
type FlowInfo struct {
	PressureDifference, Viscosity, Omega float64
	Steps, PressureAxis, Periodic        int64
}

type LocationInfo struct {
	Origin, Width IntVector
}

type IntVector [3]int64

type GridFlag int64

const (
	Density GridFlag = iota
	Velocity
	EndGridFlag
)

func (flag GridFlag) String() string {
	switch flag {
	case Density:
		return "Density"
	case Velocity:
		return "Velocity"
	}
	return "Unknown"
}

// IsVector returns true if the grid stores three components per node.
func (flag GridFlag) IsVector() bool { return flag == Velocity }

func NewFlowInfo(con *sim.Config) FlowInfo {
	periodic := int64(0)
	if con.Periodicity == sim.Periodic {
		periodic = 1
	}
	return FlowInfo{
		PressureDifference: con.DeltaP,
		Viscosity:          con.Nu,
		Omega:              con.Omega(),
		Steps:              int64(con.Steps),
		PressureAxis:       int64(con.Axis),
		Periodic:           periodic,
	}
}

func NewLocationInfo(origin, width [3]int) LocationInfo {
	loc := LocationInfo{}
	for i := 0; i < 3; i++ {
		loc.Origin[i] = int64(origin[i])
		loc.Width[i] = int64(width[i])
	}
	return loc
}

// Volume returns the number of nodes in the grid.
func (loc *LocationInfo) Volume() int {
	return int(loc.Width[0] * loc.Width[1] * loc.Width[2])
}

func WriteDensity(
	rho *lattice.ScalarField, flow FlowInfo, wr io.Writer,
) error {
	xs := make([]float32, len(rho.Vals))
	for i := range xs {
		xs[i] = float32(rho.Vals[i])
	}
	return WriteGrid(Density, xs, flow, NewLocationInfo([3]int{}, rho.Width), wr)
}

func WriteVelocity(
	u *lattice.VectorField, flow FlowInfo, wr io.Writer,
) error {
	xs := make([]float32, 3*len(u.Vals))
	for i := range u.Vals {
		for k := 0; k < 3; k++ {
			xs[3*i+k] = float32(u.Vals[i][k])
		}
	}
	return WriteGrid(Velocity, xs, flow, NewLocationInfo([3]int{}, u.Width), wr)
}

// WriteGrid writes a header followed by the grid values. Vector grids store
// the three components of each node next to one another.
func WriteGrid(
	flag GridFlag, xs []float32, flow FlowInfo, loc LocationInfo,
	wr io.Writer,
) error {
	var endFlag int64
	if end == binary.LittleEndian {
		endFlag = -1
	} else {
		endFlag = 0
	}

	hd := GridHeader{}
	hd.Type.Endianness = endFlag
	hd.Type.HeaderSize = int64(binary.Size(hd))
	hd.Type.GridType = int64(flag)
	if flag.IsVector() {
		hd.Type.IsVectorGrid = 1
	}
	hd.Flow = flow
	hd.Loc = loc

	if n := hd.Count(); n != len(xs) {
		return fmt.Errorf(
			"%s grid of width %v needs %d values, but was given %d",
			flag, loc.Width, n, len(xs),
		)
	}

	if err := binary.Write(wr, end, &hd); err != nil {
		return err
	}
	return binary.Write(wr, end, xs)
}

// Count returns the number of float32 values which follow the header.
func (hd *GridHeader) Count() int {
	n := hd.Loc.Volume()
	if hd.Type.IsVectorGrid != 0 {
		n *= 3
	}
	return n
}

// endianness converts an endianness flag to a byte order.
func endianness(flag int64) (binary.ByteOrder, error) {
	switch flag {
	case -1:
		return binary.LittleEndian, nil
	case 0:
		return binary.BigEndian, nil
	}
	return nil, fmt.Errorf("unrecognized endianness flag %d", flag)
}

func readGridHeader(rd io.Reader) (*GridHeader, binary.ByteOrder, error) {
	// order doesn't matter for this read, since flags are symmetric.
	var flag int64
	if err := binary.Read(rd, binary.LittleEndian, &flag); err != nil {
		return nil, nil, err
	}
	order, err := endianness(flag)
	if err != nil {
		return nil, nil, err
	}

	hd := &GridHeader{}
	hd.Type.Endianness = flag
	rest := []interface{}{
		&hd.Type.HeaderSize, &hd.Type.GridType, &hd.Type.IsVectorGrid,
		&hd.Flow, &hd.Loc,
	}
	for _, x := range rest {
		if err := binary.Read(rd, order, x); err != nil {
			return nil, nil, err
		}
	}

	if size := int64(binary.Size(hd)); hd.Type.HeaderSize != size {
		return nil, nil, fmt.Errorf(
			"expected grid header size of %d, found %d",
			size, hd.Type.HeaderSize,
		)
	}
	if hd.Type.GridType < 0 || hd.Type.GridType >= int64(EndGridFlag) {
		return nil, nil, fmt.Errorf(
			"unrecognized grid type %d", hd.Type.GridType,
		)
	}
	return hd, order, nil
}

// ReadGridHeader reads the header of a grid written by WriteGrid.
func ReadGridHeader(rd io.Reader) (*GridHeader, error) {
	hd, _, err := readGridHeader(rd)
	return hd, err
}

// ReadGrid reads a header and the values which follow it.
func ReadGrid(rd io.Reader) (*GridHeader, []float32, error) {
	hd, order, err := readGridHeader(rd)
	if err != nil {
		return nil, nil, err
	}

	xs := make([]float32, hd.Count())
	if err := binary.Read(rd, order, xs); err != nil {
		return nil, nil, fmt.Errorf("could not read grid values: %w", err)
	}
	return hd, xs, nil
}

// WriteFluxTable writes one row per slice normal to the pressure axis with
// the columns "slice flux meanVelocity". The table can be read back with
// table.ReadTable.
func WriteFluxTable(wr io.Writer, axis int, flux, mean []float64) error {
	if len(flux) != len(mean) {
		return fmt.Errorf(
			"%d flux values but %d mean velocities", len(flux), len(mean),
		)
	}

	if _, err := fmt.Fprintf(
		wr, "# Column 0: %s slice\n# Column 1: flux\n"+
			"# Column 2: mean velocity\n", AxisName(axis),
	); err != nil {
		return err
	}
	for i := range flux {
		_, err := fmt.Fprintf(wr, "%4d %22.15g %22.15g\n", i, flux[i], mean[i])
		if err != nil {
			return err
		}
	}
	return nil
}

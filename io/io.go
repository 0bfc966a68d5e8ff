/*package io handles the files read and written by golbm: run configuration
files, voxelized geometry volumes, binary field grids and flux tables.
*/
package io

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/phil-mansfield/table"

	"github.com/phil-mansfield/golbm/geom"
	"github.com/phil-mansfield/golbm/lattice"
)

// ReadGeometry reads a geometry volume of the given width in one of the
// formats accepted by GeometryFormatFromString. The returned labels are laid
// out like a geom.Grid, with x varying fastest, regardless of the file order.
func ReadGeometry(fname, format string, width [3]int) ([]int, error) {
	name, ok := GeometryFormatFromString(format)
	if !ok {
		return nil, lattice.ConfigErrorf(
			"GeometryFormat", "unrecognized format '%s'", format,
		)
	}

	switch name {
	case TextFormat:
		return ReadTextGeometry(fname, width)
	case BinaryFormat:
		return ReadBinaryGeometry(fname, width)
	case SparseFormat:
		return ReadSparseGeometry(fname, width)
	}
	panic("Impossible")
}

// fileIdx returns the position of node (x, y, z) in a dense geometry file.
// Files list nodes with x varying slowest and z varying fastest.
func fileIdx(x, y, z int, width [3]int) int {
	return (x*width[1]+y)*width[2] + z
}

// reorder converts a dense volume in file order to grid order.
func reorder(vals []int, width [3]int) []int {
	g := geom.NewGrid([3]int{}, width)
	out := make([]int, g.Volume)
	for idx := range out {
		x, y, z := g.Coords(idx)
		out[idx] = vals[fileIdx(x, y, z, width)]
	}
	return out
}

func countError(fname string, found, expected int) error {
	return lattice.ConfigErrorf(
		"GeometryFile", "'%s' contains %d nodes, but Nx*Ny*Nz = %d",
		fname, found, expected,
	)
}

// ReadTextGeometry reads a dense geometry file of whitespace-separated
// integers.
func ReadTextGeometry(fname string, width [3]int) ([]int, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("could not open geometry file: %w", err)
	}
	defer f.Close()

	volume := width[0] * width[1] * width[2]
	vals := make([]int, 0, volume)

	scanner := bufio.NewScanner(f)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		v, err := strconv.Atoi(scanner.Text())
		if err != nil {
			return nil, lattice.ConfigErrorf(
				"GeometryFile", "'%s' contains the non-integer token '%s' "+
					"at node %d", fname, scanner.Text(), len(vals),
			)
		}
		vals = append(vals, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read geometry file: %w", err)
	}

	if len(vals) != volume {
		return nil, countError(fname, len(vals), volume)
	}
	return reorder(vals, width), nil
}

// ReadBinaryGeometry reads a dense geometry file with one unsigned byte per
// node.
func ReadBinaryGeometry(fname string, width [3]int) ([]int, error) {
	bs, err := os.ReadFile(fname)
	if err != nil {
		return nil, fmt.Errorf("could not read geometry file: %w", err)
	}

	volume := width[0] * width[1] * width[2]
	if len(bs) != volume {
		return nil, countError(fname, len(bs), volume)
	}

	vals := make([]int, volume)
	for i := range bs {
		vals[i] = int(bs[i])
	}
	return reorder(vals, width), nil
}

// ReadSparseGeometry reads a table with the columns "x y z label". Nodes
// which are not listed are fluid, and a node listed twice takes its last
// label.
func ReadSparseGeometry(fname string, width [3]int) ([]int, error) {
	cols, err := table.ReadTable(fname, []int{0, 1, 2, 3}, nil)
	if err != nil {
		return nil, fmt.Errorf("could not read geometry file: %w", err)
	}
	xs, ys, zs, labels := cols[0], cols[1], cols[2], cols[3]

	g := geom.NewGrid([3]int{}, width)
	vals := make([]int, g.Volume)
	for i := range xs {
		x, y, z := int(xs[i]), int(ys[i]), int(zs[i])
		if float64(x) != xs[i] || float64(y) != ys[i] ||
			float64(z) != zs[i] || math.Trunc(labels[i]) != labels[i] {

			return nil, lattice.ConfigErrorf(
				"GeometryFile", "row %d of '%s' has non-integer values",
				i, fname,
			)
		}

		idx, ok := g.IdxCheck(x, y, z)
		if !ok {
			return nil, lattice.ConfigErrorf(
				"GeometryFile", "row %d of '%s' lists (%d, %d, %d), which "+
					"is outside of the %d x %d x %d domain",
				i, fname, x, y, z, width[0], width[1], width[2],
			)
		}
		vals[idx] = int(labels[i])
	}

	return vals, nil
}

package io

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/golbm/geom"
	"github.com/phil-mansfield/golbm/lattice"
)

// fileOrderVolume returns a volume whose value at (x, y, z) is its position
// in a dense geometry file.
func fileOrderVolume(width [3]int) []int {
	vals := make([]int, width[0]*width[1]*width[2])
	for i := range vals {
		vals[i] = i
	}
	return vals
}

func TestReorder(t *testing.T) {
	width := [3]int{2, 3, 4}
	g := geom.NewGrid([3]int{}, width)
	out := reorder(fileOrderVolume(width), width)

	assert.Equal(t, 0, out[g.Idx(0, 0, 0)])
	assert.Equal(t, 1, out[g.Idx(0, 0, 1)])
	assert.Equal(t, 4, out[g.Idx(0, 1, 0)])
	assert.Equal(t, 12, out[g.Idx(1, 0, 0)])
	assert.Equal(t, 23, out[g.Idx(1, 2, 3)])
}

func TestReadTextGeometry(t *testing.T) {
	width := [3]int{2, 2, 3}
	// x = 0 is all fluid, x = 1 has a wall at z = 0 and an inert node at
	// (1, 1, 2).
	text := "0 0 0\n0 0 0\n\n1 0 0\n1 0 2\n"
	fname := writeFile(t, "geometry.txt", text)

	vals, err := ReadGeometry(fname, "text", width)
	require.NoError(t, err)

	g := geom.NewGrid([3]int{}, width)
	expected := make([]int, g.Volume)
	expected[g.Idx(1, 0, 0)] = 1
	expected[g.Idx(1, 1, 0)] = 1
	expected[g.Idx(1, 1, 2)] = 2
	assert.Equal(t, expected, vals)

	_, err = ReadTextGeometry(fname, [3]int{2, 2, 2})
	var cerr *lattice.ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "GeometryFile", cerr.Field)

	_, err = ReadTextGeometry(writeFile(t, "bad.txt", "0 1 a"), [3]int{3, 1, 1})
	assert.ErrorAs(t, err, &cerr)
}

func TestReadBinaryGeometry(t *testing.T) {
	width := [3]int{3, 2, 2}
	bs := make([]byte, 12)
	bs[fileIdx(2, 1, 0, width)] = 1
	bs[fileIdx(0, 1, 1, width)] = 2
	fname := filepath.Join(t.TempDir(), "geometry.raw")
	require.NoError(t, os.WriteFile(fname, bs, 0644))

	vals, err := ReadGeometry(fname, BinaryFormat, width)
	require.NoError(t, err)

	g := geom.NewGrid([3]int{}, width)
	assert.Equal(t, 1, vals[g.Idx(2, 1, 0)])
	assert.Equal(t, 2, vals[g.Idx(0, 1, 1)])
	assert.Equal(t, 3, vals[0]+vals[1]+vals[2]+vals[3]+vals[4]+vals[5]+
		vals[6]+vals[7]+vals[8]+vals[9]+vals[10]+vals[11])

	_, err = ReadBinaryGeometry(fname, [3]int{3, 3, 2})
	var cerr *lattice.ConfigError
	assert.ErrorAs(t, err, &cerr)
}

func TestReadSparseGeometry(t *testing.T) {
	width := [3]int{4, 3, 2}
	text := `# x y z label
1 2 0 1
3 0 1 2
0 0 0 1
`
	vals, err := ReadGeometry(writeFile(t, "geometry.txt", text), "Sparse", width)
	require.NoError(t, err)

	g := geom.NewGrid([3]int{}, width)
	expected := make([]int, g.Volume)
	expected[g.Idx(1, 2, 0)] = 1
	expected[g.Idx(3, 0, 1)] = 2
	expected[g.Idx(0, 0, 0)] = 1
	assert.Equal(t, expected, vals)

	_, err = ReadSparseGeometry(writeFile(t, "outside.txt", "4 0 0 1\n"), width)
	var cerr *lattice.ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Msg, "(4, 0, 0)")
}

func TestReadGeometryErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.txt")
	width := [3]int{2, 2, 2}

	_, err := ReadGeometry(missing, TextFormat, width)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	_, err = ReadGeometry(missing, BinaryFormat, width)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = ReadGeometry(missing, "VTK", width)
	var cerr *lattice.ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "GeometryFormat", cerr.Field)
}

package poly

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/brepkit/pkg/geom"
	"github.com/joshuapare/brepkit/pkg/types"
)

func exportString(t *testing.T, k *Kernel, h types.Handle) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out.step")
	require.NoError(t, k.ExportSTEP(h, path, types.STEPHeader{Name: "part", Author: "Zoë"}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestExportSTEP_Solid(t *testing.T) {
	k := New()
	cube, _, _ := unitCube(t, k)
	out := exportString(t, k, cube)

	assert.True(t, strings.HasPrefix(out, "ISO-10303-21;"))
	assert.Contains(t, out, "FILE_SCHEMA(('AUTOMOTIVE_DESIGN")
	assert.Contains(t, out, `('Zo\X\EB')`)
	assert.Contains(t, out, "ADVANCED_BREP_SHAPE_REPRESENTATION('part'")
	assert.Equal(t, 1, strings.Count(out, "MANIFOLD_SOLID_BREP"))
	assert.Equal(t, 1, strings.Count(out, "CLOSED_SHELL"))
	assert.Equal(t, 6, strings.Count(out, "ADVANCED_FACE"))
	assert.Equal(t, 12, strings.Count(out, "=EDGE_CURVE"))
	assert.Equal(t, 8, strings.Count(out, "=VERTEX_POINT"))
	assert.Equal(t, 24, strings.Count(out, "=ORIENTED_EDGE"))
	assert.Equal(t, 2, strings.Count(out, "=PLANE("))
	assert.Equal(t, 4, strings.Count(out, "=B_SPLINE_SURFACE_WITH_KNOTS("))
	assert.Contains(t, out, "SHAPE_DEFINITION_REPRESENTATION(")
}

func TestExportSTEP_CurvesAndSurfaces(t *testing.T) {
	k := New()
	c, err := geom.CircleByRadius(geom.FrameByOrigin(geom.Point{}), 1)
	require.NoError(t, err)
	circle, err := k.MakeEdgeFromCurve(c)
	require.NoError(t, err)
	f := face(t, k, square(t, k, 5))
	v, err := k.MakeVertex(geom.Pt(7, 7, 7))
	require.NoError(t, err)
	comp, err := k.MakeCompound([]types.Handle{circle, f, v})
	require.NoError(t, err)

	out := exportString(t, k, comp)
	assert.Contains(t, out, "=SHAPE_REPRESENTATION('part'")
	assert.Contains(t, out, "=CIRCLE(")
	assert.Contains(t, out, "=TRIMMED_CURVE(")
	assert.Contains(t, out, "=OPEN_SHELL(")
	assert.Contains(t, out, "=SHELL_BASED_SURFACE_MODEL(")
	assert.Contains(t, out, "=GEOMETRIC_CURVE_SET(")
	assert.Contains(t, out, "CARTESIAN_POINT('',(7.,7.,7.))")
}

func TestExportSTEP_UnwritablePath(t *testing.T) {
	k := New()
	cube, _, _ := unitCube(t, k)
	err := k.ExportSTEP(cube, filepath.Join(t.TempDir(), "missing", "cube.step"), types.STEPHeader{})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

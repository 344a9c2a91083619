package poly

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/brepkit/pkg/geom"
	"github.com/joshuapare/brepkit/pkg/types"
)

// polygon builds a closed wire through pts from separately made edges, so
// the wire has to merge coincident vertices.
func polygon(t *testing.T, k *Kernel, pts ...geom.Point) types.Handle {
	t.Helper()
	var edges []types.Handle
	for i, p := range pts {
		e, err := k.MakeEdge(p, pts[(i+1)%len(pts)])
		require.NoError(t, err)
		edges = append(edges, e)
	}
	w, err := k.MakeWire(edges)
	require.NoError(t, err)
	return w
}

func square(t *testing.T, k *Kernel, z float64) types.Handle {
	t.Helper()
	return polygon(t, k,
		geom.Pt(0, 0, z), geom.Pt(1, 0, z), geom.Pt(1, 1, z), geom.Pt(0, 1, z))
}

func face(t *testing.T, k *Kernel, w types.Handle) types.Handle {
	t.Helper()
	f, err := k.MakeFace(w, true)
	require.NoError(t, err)
	return f
}

func extrude(t *testing.T, k *Kernel, h types.Handle, v geom.Vector) types.PrismBuilder {
	t.Helper()
	b := k.NewPrism(h, v)
	require.NoError(t, b.Build())
	require.True(t, b.IsDone())
	return b
}

func shapeOf(t *testing.T, b types.Builder) types.Handle {
	t.Helper()
	s, err := b.Shape()
	require.NoError(t, err)
	return s
}

// unitCube returns the unit cube, the face it was extruded from and the
// prism builder.
func unitCube(t *testing.T, k *Kernel) (types.Handle, types.Handle, types.PrismBuilder) {
	t.Helper()
	f := face(t, k, square(t, k, 0))
	b := extrude(t, k, f, geom.Vec(0, 0, 1))
	return shapeOf(t, b), f, b
}

func size(t *testing.T, k *Kernel, h types.Handle, kind types.Kind) int {
	t.Helper()
	m, err := k.MapShapes(h, kind)
	require.NoError(t, err)
	return m.Size()
}

func props(t *testing.T, k *Kernel, h types.Handle) types.Properties {
	t.Helper()
	p, err := k.Properties(h)
	require.NoError(t, err)
	return p
}

package topo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/brepkit/pkg/geom"
	"github.com/joshuapare/brepkit/pkg/topo"
)

func polygon(t *testing.T, pts ...geom.Point) topo.Wire {
	t.Helper()
	edges := make([]topo.Edge, len(pts))
	for i, p := range pts {
		e, err := topo.EdgeByPoints(p, pts[(i+1)%len(pts)])
		require.NoError(t, err)
		edges[i] = e
	}
	w, err := topo.WireByEdges(edges)
	require.NoError(t, err)
	return w
}

func square(t *testing.T, z float64) topo.Wire {
	t.Helper()
	return polygon(t, geom.Pt(0, 0, z), geom.Pt(1, 0, z), geom.Pt(1, 1, z), geom.Pt(0, 1, z))
}

func unitFace(t *testing.T) topo.Face {
	t.Helper()
	f, err := topo.FaceByWire(square(t, 0))
	require.NoError(t, err)
	return f
}

func unitCube(t *testing.T) (topo.Solid, topo.Face) {
	t.Helper()
	f := unitFace(t)
	s, err := f.Extrude(geom.Vec(0, 0, 1))
	require.NoError(t, err)
	cube, err := topo.As[topo.Solid](s)
	require.NoError(t, err)
	return cube, f
}

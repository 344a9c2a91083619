package poly

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/brepkit/pkg/geom"
	"github.com/joshuapare/brepkit/pkg/types"
)

func TestMakeEdge_CoincidentPoints(t *testing.T) {
	k := New()
	_, err := k.MakeEdge(geom.Pt(1, 1, 1), geom.Pt(1, 1, 1))
	require.ErrorIs(t, err, types.ErrKernel)
}

func TestMakeEdgeFromCurve_Unbounded(t *testing.T) {
	k := New()
	l, err := geom.LineByPoints(geom.Pt(0, 0, 0), geom.Pt(1, 0, 0))
	require.NoError(t, err)
	_, err = k.MakeEdgeFromCurve(l)
	require.ErrorIs(t, err, types.ErrKernel)
}

func TestMakeEdgeFromCurve_ClosedCircleHasOneVertex(t *testing.T) {
	k := New()
	c, err := geom.CircleByRadius(geom.FrameByOrigin(geom.Point{}), 2)
	require.NoError(t, err)
	e, err := k.MakeEdgeFromCurve(c)
	require.NoError(t, err)
	assert.Equal(t, 1, size(t, k, e, types.KindVertex))
	assert.InDelta(t, 4*math.Pi, props(t, k, e).Length, 1e-12)
}

func TestMakeWire_AnyOrderSharesVertices(t *testing.T) {
	k := New()
	p := []geom.Point{geom.Pt(0, 0, 0), geom.Pt(1, 0, 0), geom.Pt(1, 1, 0), geom.Pt(0, 1, 0)}
	var edges []types.Handle
	for _, i := range []int{2, 0, 3, 1} {
		e, err := k.MakeEdge(p[i], p[(i+1)%4])
		require.NoError(t, err)
		edges = append(edges, e)
	}
	w, err := k.MakeWire(edges)
	require.NoError(t, err)

	assert.Equal(t, types.KindWire, w.Kind())
	assert.Equal(t, 4, size(t, k, w, types.KindEdge))
	assert.Equal(t, 4, size(t, k, w, types.KindVertex))
	assert.True(t, isClosedWire(w.(handle).ref))
}

func TestMakeWire_Disconnected(t *testing.T) {
	k := New()
	e1, err := k.MakeEdge(geom.Pt(0, 0, 0), geom.Pt(1, 0, 0))
	require.NoError(t, err)
	e2, err := k.MakeEdge(geom.Pt(5, 5, 5), geom.Pt(6, 5, 5))
	require.NoError(t, err)
	_, err = k.MakeWire([]types.Handle{e1, e2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connected")
}

func TestMakeWire_RejectsNonEdges(t *testing.T) {
	k := New()
	v, err := k.MakeVertex(geom.Pt(0, 0, 0))
	require.NoError(t, err)
	_, err = k.MakeWire([]types.Handle{v})
	require.ErrorIs(t, err, types.ErrKernel)
}

func TestCombineWires(t *testing.T) {
	k := New()
	e1, err := k.MakeEdge(geom.Pt(0, 0, 0), geom.Pt(1, 0, 0))
	require.NoError(t, err)
	e2, err := k.MakeEdge(geom.Pt(1, 0, 0), geom.Pt(1, 1, 0))
	require.NoError(t, err)
	w1, err := k.MakeWire([]types.Handle{e1})
	require.NoError(t, err)
	w2, err := k.MakeWire([]types.Handle{e2})
	require.NoError(t, err)

	w, err := k.CombineWires(w1, w2)
	require.NoError(t, err)
	assert.Equal(t, 2, size(t, k, w, types.KindEdge))
	assert.Equal(t, 3, size(t, k, w, types.KindVertex))
	assert.InDelta(t, 2, props(t, k, w).Length, 1e-12)
}

func TestMakeFace(t *testing.T) {
	k := New()
	f := face(t, k, square(t, k, 0))
	assert.Equal(t, types.KindFace, f.Kind())
	assert.InDelta(t, 1, props(t, k, f).Area, 1e-12)
}

func TestMakeFace_OpenWire(t *testing.T) {
	k := New()
	e, err := k.MakeEdge(geom.Pt(0, 0, 0), geom.Pt(1, 0, 0))
	require.NoError(t, err)
	w, err := k.MakeWire([]types.Handle{e})
	require.NoError(t, err)
	_, err = k.MakeFace(w, true)
	require.ErrorIs(t, err, types.ErrKernel)
}

func TestMakeFace_NonPlanar(t *testing.T) {
	k := New()
	w := polygon(t, k, geom.Pt(0, 0, 0), geom.Pt(1, 0, 0), geom.Pt(1, 1, 1), geom.Pt(0, 1, 0))
	_, err := k.MakeFace(w, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not planar")
}

func TestHandleIdentity(t *testing.T) {
	k := New()
	f := face(t, k, square(t, k, 0))
	h := f.(handle)
	rev := handle{k: k, ref: h.reversed()}

	assert.True(t, f.IsSame(rev))
	assert.False(t, f.IsEqual(rev))
	assert.True(t, f.IsEqual(f))
	assert.False(t, handle{k: k}.IsSame(handle{k: k}))
	assert.True(t, handle{k: k}.IsNull())
	assert.Same(t, k, f.Kernel())
}

func TestRefOf_ForeignKernel(t *testing.T) {
	k1, k2 := New(), New()
	v, err := k1.MakeVertex(geom.Pt(0, 0, 0))
	require.NoError(t, err)
	_, err = k2.MapShapes(v, types.KindVertex)
	require.ErrorIs(t, err, types.ErrKernel)
}

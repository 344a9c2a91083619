package topo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/brepkit/internal/testutil/mockkernel"
	"github.com/joshuapare/brepkit/pkg/geom"
	"github.com/joshuapare/brepkit/pkg/topo"
	"github.com/joshuapare/brepkit/pkg/types"
)

func wrap[S topo.Shape](t *testing.T, h types.Handle) S {
	t.Helper()
	s, err := topo.ByHandle(h)
	require.NoError(t, err)
	v, err := topo.As[S](s)
	require.NoError(t, err)
	return v
}

func TestUnite_IntersectionEdges(t *testing.T) {
	k := mockkernel.New()
	target, tool := k.H("a", types.KindSolid), k.H("b", types.KindSolid)
	fused := k.H("c", types.KindSolid)
	seam := k.H("seam", types.KindEdge)

	b := mockkernel.Done(fused)
	b.On("SectionEdges").Return([]types.Handle{seam})
	b.On("IsDeleted", tool).Return(false)
	k.On("NewFuse", []types.Handle{target}, []types.Handle{tool}).Return(b)

	u := topo.NewUniteShapes(wrap[topo.Solid](t, target), wrap[topo.Solid](t, tool))
	require.True(t, u.IsDone())
	require.NoError(t, u.Err())

	s, err := u.Shape()
	require.NoError(t, err)
	assert.Same(t, fused, s.Handle())

	edges, err := u.IntersectionEdges()
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Same(t, seam, edges[0].Handle())
	assert.False(t, u.IsDeleted(wrap[topo.Solid](t, tool)))

	k.AssertExpectations(t)
	b.AssertExpectations(t)
}

func TestCut_ArgumentOrder(t *testing.T) {
	k := mockkernel.New()
	targets := []types.Handle{k.H("a", types.KindSolid), k.H("b", types.KindSolid)}
	tools := []types.Handle{k.H("c", types.KindSolid)}
	k.On("NewCut", targets, tools).Return(mockkernel.Done(k.H("d", types.KindCompound)))

	ts, err := topo.ByHandles(targets)
	require.NoError(t, err)
	tl, err := topo.ByHandles(tools)
	require.NoError(t, err)
	c := topo.NewCutShapesMulti(ts, tl)
	s, err := c.Shape()
	require.NoError(t, err)
	assert.Equal(t, types.KindCompound, s.Kind())
	k.AssertExpectations(t)
}

func TestTool_NotDoneWrapsKernelCause(t *testing.T) {
	k := mockkernel.New()
	cause := types.Kernelf("operands intersect")
	k.On("NewFuse", mock.Anything, mock.Anything).Return(mockkernel.Failed(cause))

	a := wrap[topo.Solid](t, k.H("a", types.KindSolid))
	_, err := a.Unite(wrap[topo.Solid](t, k.H("b", types.KindSolid)))
	require.ErrorIs(t, err, types.ErrNotDone)
	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "unite")
	assert.Contains(t, err.Error(), "operands intersect")
}

func TestTool_UnknownResultKind(t *testing.T) {
	k := mockkernel.New()
	k.On("NewCopy", mock.Anything).Return(mockkernel.Done(k.H("odd", types.Kind(99))))

	_, err := wrap[topo.Face](t, k.H("f", types.KindFace)).Copy()
	require.ErrorIs(t, err, types.ErrUnknownKind)
}

func TestTool_Lineage(t *testing.T) {
	k := mockkernel.New()
	src := k.H("f", types.KindFace)
	e := k.H("e", types.KindEdge)
	moved := k.H("e2", types.KindEdge)

	b := mockkernel.Done(k.H("g", types.KindFace))
	b.On("Modified", e).Return([]types.Handle{moved})
	b.On("Generated", e).Return([]types.Handle(nil))
	b.On("IsDeleted", e).Return(false)
	xf := geom.Translation(geom.Vec(1, 0, 0))
	k.On("NewTransform", src, xf).Return(b)

	x := topo.NewTransformShape(wrap[topo.Face](t, src), xf)
	edge := wrap[topo.Edge](t, e)
	mod, err := x.ModifiedShapes(edge)
	require.NoError(t, err)
	require.Len(t, mod, 1)
	assert.Same(t, moved, mod[0].Handle())

	gen, err := x.GeneratedShapes(edge)
	require.NoError(t, err)
	assert.Empty(t, gen)
	assert.False(t, x.IsDeleted(edge))
}

func TestFillet_Success(t *testing.T) {
	k := mockkernel.New()
	solid := k.H("s", types.KindSolid)
	e1, e2 := k.H("e1", types.KindEdge), k.H("e2", types.KindEdge)
	rounded := k.H("r", types.KindSolid)

	b := mockkernel.Done(rounded)
	b.On("Add", 0.5, e1).Return(nil).Once()
	b.On("Add", 0.5, e2).Return(nil).Once()
	k.On("NewFillet", solid).Return(b)

	s := wrap[topo.Solid](t, solid)
	out, err := s.Fillet(0.5, wrap[topo.Edge](t, e1), wrap[topo.Edge](t, e2))
	require.NoError(t, err)
	assert.Same(t, rounded, out.Handle())
	b.AssertExpectations(t)
}

func TestFilletEach_Radii(t *testing.T) {
	k := mockkernel.New()
	solid := k.H("s", types.KindSolid)
	e1, e2 := k.H("e1", types.KindEdge), k.H("e2", types.KindEdge)

	b := mockkernel.Done(k.H("r", types.KindSolid))
	mock.InOrder(
		b.On("Add", 0.25, e1).Return(nil).Once(),
		b.On("Add", 1.0, e2).Return(nil).Once(),
	)
	k.On("NewFillet", solid).Return(b)

	_, err := wrap[topo.Solid](t, solid).FilletEach(
		topo.EdgeRadius{Edge: wrap[topo.Edge](t, e1), Radius: 0.25},
		topo.EdgeRadius{Edge: wrap[topo.Edge](t, e2), Radius: 1.0},
	)
	require.NoError(t, err)
	b.AssertExpectations(t)
}

func TestFilletEach_FirstRejectedEdgeWins(t *testing.T) {
	k := mockkernel.New()
	solid := k.H("s", types.KindSolid)
	edges := []types.Handle{k.H("e1", types.KindEdge), k.H("e2", types.KindEdge), k.H("e3", types.KindEdge)}

	b := mockkernel.Done(k.H("r", types.KindSolid))
	b.On("Add", 0.5, edges[0]).Return(nil).Once()
	b.On("Add", 0.5, edges[1]).Return(types.Kernelf("edge e2 rejected")).Once()
	k.On("NewFillet", solid).Return(b)

	radii := make([]topo.EdgeRadius, len(edges))
	for i, e := range edges {
		radii[i] = topo.EdgeRadius{Edge: wrap[topo.Edge](t, e), Radius: 0.5}
	}
	_, err := wrap[topo.Solid](t, solid).FilletEach(radii...)
	require.ErrorIs(t, err, types.ErrKernel)
	assert.Contains(t, err.Error(), "edge e2 rejected")
	b.AssertNotCalled(t, "Add", 0.5, edges[2])
	b.AssertNotCalled(t, "Build")
}

func TestFillet_BuildFailure(t *testing.T) {
	k := mockkernel.New()
	solid := k.H("s", types.KindSolid)
	e := k.H("e", types.KindEdge)

	b := mockkernel.Failed(types.Kernelf("blend failed"))
	b.On("Add", 0.5, e).Return(nil)
	k.On("NewFillet", solid).Return(b)

	f := topo.NewFilletShape(wrap[topo.Solid](t, solid))
	require.NoError(t, f.AddEdge(wrap[topo.Edge](t, e), 0.5))
	err := f.Build()
	require.ErrorIs(t, err, types.ErrNotDone)
	require.ErrorIs(t, f.Err(), types.ErrKernel)
	assert.False(t, f.IsDone())
}

func TestThicken_JoinMode(t *testing.T) {
	k := mockkernel.New()
	solid := k.H("s", types.KindSolid)
	top := k.H("top", types.KindFace)
	hollow := k.H("h", types.KindSolid)

	k.On("NewThickJoin", solid, []types.Handle{top}, -0.1, topo.DefaultThickenTolerance).
		Return(mockkernel.Done(hollow))
	k.On("NewThickJoin", solid, []types.Handle{top}, -0.1, 1e-5).
		Return(mockkernel.Done(hollow))

	s := wrap[topo.Solid](t, solid)
	out, err := s.Thicken(-0.1, topo.ThickenOptions{Faces: []topo.Face{wrap[topo.Face](t, top)}})
	require.NoError(t, err)
	assert.Same(t, hollow, out.Handle())

	_, err = s.Thicken(-0.1, topo.ThickenOptions{
		Faces:     []topo.Face{wrap[topo.Face](t, top)},
		Tolerance: 1e-5,
	})
	require.NoError(t, err)
	k.AssertExpectations(t)
}

func TestThicken_SimpleMode(t *testing.T) {
	k := mockkernel.New()
	face := k.H("f", types.KindFace)
	k.On("NewThickSimple", face, 2.0).Return(mockkernel.Done(k.H("s", types.KindSolid)))

	out, err := wrap[topo.Face](t, face).Thicken(2, topo.ThickenOptions{Tolerance: 5})
	require.NoError(t, err)
	assert.Equal(t, types.KindSolid, out.Kind())
	k.AssertExpectations(t)
}

func TestLoft_OptionsAndSections(t *testing.T) {
	k := mockkernel.New()
	w1, w2 := k.H("w1", types.KindWire), k.H("w2", types.KindWire)
	b := mockkernel.Done(k.H("s", types.KindSolid))
	b.On("AddWire", w1).Return(nil)
	b.On("AddWire", w2).Return(nil)
	k.On("NewLoft", true, true, 1e-6).Return(b)

	s, err := topo.SolidByLoft([]topo.Shape{wrap[topo.Wire](t, w1), wrap[topo.Wire](t, w2)},
		topo.LoftOptions{Ruled: true})
	require.NoError(t, err)
	assert.Equal(t, types.KindSolid, s.Kind())
	b.AssertExpectations(t)
}

func TestLoft_WrongResultKind(t *testing.T) {
	k := mockkernel.New()
	w := k.H("w", types.KindWire)
	b := mockkernel.Done(k.H("sh", types.KindShell))
	b.On("AddWire", w).Return(nil)
	k.On("NewLoft", true, false, 1e-3).Return(b)

	_, err := topo.SolidByLoft([]topo.Shape{wrap[topo.Wire](t, w)}, topo.LoftOptions{Tolerance: 1e-3})
	require.ErrorIs(t, err, types.ErrTypeMismatch)
}

func TestExtrude_Lineage(t *testing.T) {
	k := mockkernel.New()
	e := k.H("e", types.KindEdge)
	v := k.H("v", types.KindVertex)
	vec := geom.Vec(0, 0, 1)

	b := mockkernel.Done(k.H("f", types.KindFace))
	b.On("FirstShape").Return(e, nil)
	b.On("LastShape").Return(k.H("e'", types.KindEdge), nil)
	b.On("LastShapeOf", v).Return(k.H("v'", types.KindVertex), nil)
	b.On("FirstShapeOf", v).Return(nil, types.Kernelf("not swept"))
	b.On("Generated", v).Return([]types.Handle{k.H("side", types.KindEdge)})
	k.On("NewPrism", e, vec).Return(b)

	x := topo.NewExtrudeShape(wrap[topo.Edge](t, e), vec)
	first, err := x.FirstShape()
	require.NoError(t, err)
	assert.Same(t, e, first.Handle())

	last, err := x.LastShape()
	require.NoError(t, err)
	assert.Equal(t, types.KindEdge, last.Kind())

	vertex := wrap[topo.Vertex](t, v)
	top, err := x.LastShapeOf(vertex)
	require.NoError(t, err)
	assert.Equal(t, types.KindVertex, top.Kind())
	_, err = x.FirstShapeOf(vertex)
	require.ErrorIs(t, err, types.ErrKernel)

	side, err := x.GeneratedShapes(vertex)
	require.NoError(t, err)
	require.Len(t, side, 1)
	assert.Equal(t, types.KindEdge, side[0].Kind())
}

func TestExportSTEP_ForwardsHeader(t *testing.T) {
	k := mockkernel.New()
	s := k.H("s", types.KindSolid)
	header := types.STEPHeader{Name: "part", Author: "me", Organization: "shop", Description: "bracket"}
	k.On("ExportSTEP", s, "out.step", header).Return(nil)
	k.On("ExportSTEP", s, "bad.step", types.STEPHeader{}).Return(types.Kernelf("disk full"))

	solid := wrap[topo.Solid](t, s)
	require.NoError(t, solid.ExportSTEP("out.step", topo.ExportOptions{
		Name: "part", Author: "me", Organization: "shop", Description: "bracket",
	}))

	err := solid.ExportSTEP("bad.step")
	require.ErrorIs(t, err, types.ErrExport)
	require.ErrorIs(t, err, types.ErrKernel)
	kind, ok := types.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, types.ErrKindIO, kind)
}

func TestMap_TranslatesIndexBase(t *testing.T) {
	k := mockkernel.New()
	parent := k.H("p", types.KindFace)
	a, b, c := k.H("a", types.KindEdge), k.H("b", types.KindEdge), k.H("c", types.KindEdge)
	k.On("MapShapes", parent, types.KindEdge).Return(&mockkernel.Map{Keys: []types.Handle{a, b, c}, Ext: 5}, nil)

	m, err := wrap[topo.Face](t, parent).Edges()
	require.NoError(t, err)
	assert.Equal(t, 3, m.Size())
	assert.Equal(t, 5, m.Extent())

	first, err := m.At(0)
	require.NoError(t, err)
	assert.Same(t, a, first.Handle())
	last, err := m.At(-1)
	require.NoError(t, err)
	assert.Same(t, c, last.Handle())

	i, ok := m.FindIndex(wrap[topo.Edge](t, b))
	require.True(t, ok)
	assert.Equal(t, 1, i)
	_, ok = m.FindIndex(wrap[topo.Edge](t, k.H("z", types.KindEdge)))
	assert.False(t, ok)
}

func TestMap_WrongKindFromKernel(t *testing.T) {
	tests := []struct {
		name    string
		bad     types.Kind
		wantErr error
	}{
		{"other variant", types.KindVertex, types.ErrTypeMismatch},
		{"unknown kind", types.Kind(77), types.ErrUnknownKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := mockkernel.New()
			parent := k.H("p", types.KindFace)
			keys := []types.Handle{k.H("a", types.KindEdge), k.H("x", tt.bad), k.H("c", types.KindEdge)}
			k.On("MapShapes", parent, types.KindEdge).Return(&mockkernel.Map{Keys: keys}, nil)

			m, err := wrap[topo.Face](t, parent).Edges()
			require.NoError(t, err)
			require.Equal(t, 3, m.Size())

			_, err = m.At(1)
			require.ErrorIs(t, err, tt.wantErr)
			_, err = m.Slice()
			require.ErrorIs(t, err, tt.wantErr)

			var got []topo.Edge
			var iterErr error
			for e, err := range m.All() {
				if err != nil {
					iterErr = err
					break
				}
				got = append(got, e)
			}
			require.Len(t, got, 1)
			assert.Same(t, keys[0], got[0].Handle())
			require.ErrorIs(t, iterErr, tt.wantErr)
			assert.Contains(t, iterErr.Error(), "index 1")
		})
	}
}

func TestExplore_UnknownKindStopsCursor(t *testing.T) {
	k := mockkernel.New()
	parent := k.H("p", types.KindCompound)
	items := []types.Handle{k.H("a", types.KindEdge), k.H("b", types.Kind(77))}
	k.On("Explore", parent, types.KindEdge, types.KindShape).
		Return(&mockkernel.Explorer{Items: items}, nil).Once()

	c := wrap[topo.Compound](t, parent).Explore(types.KindEdge, types.KindShape).Cursor()
	require.True(t, c.Next())
	assert.Equal(t, types.KindEdge, c.Shape().Kind())
	require.False(t, c.Next())
	require.ErrorIs(t, c.Err(), types.ErrUnknownKind)
	assert.Nil(t, c.Shape())
}

func TestTool_NullOperands(t *testing.T) {
	type result interface {
		IsDone() bool
		Err() error
		Shape() (topo.Shape, error)
	}
	k := mockkernel.New()
	solid := wrap[topo.Solid](t, k.H("s", types.KindSolid))

	tests := []struct {
		name string
		run  func() result
	}{
		{"unite nil tool", func() result { return topo.NewUniteShapes(solid, nil) }},
		{"cut nil target", func() result { return topo.NewCutShapes(nil, solid) }},
		{"unite multi null target", func() result {
			return topo.NewUniteShapesMulti([]topo.Shape{solid, topo.Solid{}}, []topo.Shape{solid})
		}},
		{"extrude nil", func() result { return topo.NewExtrudeShape(nil, geom.Vec(0, 0, 1)) }},
		{"thicken null face", func() result {
			return topo.NewThickenShape(solid, 0.1, topo.ThickenOptions{Faces: []topo.Face{{}}})
		}},
		{"copy nil", func() result { return topo.NewCopyShape(nil) }},
		{"transform nil", func() result { return topo.NewTransformShape(nil, geom.Identity()) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r result
			require.NotPanics(t, func() { r = tt.run() })
			assert.False(t, r.IsDone())
			require.ErrorIs(t, r.Err(), types.ErrTypeMismatch)
			_, err := r.Shape()
			require.ErrorIs(t, err, types.ErrNotDone)
			require.ErrorIs(t, err, types.ErrTypeMismatch)
		})
	}
	// no builder was requested from the kernel
	k.AssertExpectations(t)

	_, err := solid.Unite(nil)
	require.ErrorIs(t, err, types.ErrTypeMismatch)

	f := topo.NewFilletShape(nil)
	require.ErrorIs(t, f.AddEdge(topo.Edge{}, 0.5), types.ErrTypeMismatch)
	require.ErrorIs(t, f.Build(), types.ErrNotDone)
	require.ErrorIs(t, f.Err(), types.ErrTypeMismatch)
}

func TestTool_NullLineageQuery(t *testing.T) {
	k := mockkernel.New()
	solid := k.H("s", types.KindSolid)
	k.On("NewCopy", solid).Return(mockkernel.Done(k.H("c", types.KindSolid)))

	c := topo.NewCopyShape(wrap[topo.Solid](t, solid))
	require.True(t, c.IsDone())
	_, err := c.GeneratedShapes(nil)
	require.ErrorIs(t, err, types.ErrTypeMismatch)
	_, err = c.ModifiedShapes(nil)
	require.ErrorIs(t, err, types.ErrTypeMismatch)
	assert.False(t, c.IsDeleted(nil))
}

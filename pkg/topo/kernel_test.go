package topo_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/brepkit/internal/poly"
	"github.com/joshuapare/brepkit/internal/testutil/mockkernel"
	"github.com/joshuapare/brepkit/pkg/geom"
	"github.com/joshuapare/brepkit/pkg/topo"
	"github.com/joshuapare/brepkit/pkg/types"
)

func TestSetKernel(t *testing.T) {
	k := mockkernel.New()
	topo.SetKernel(k)
	t.Cleanup(func() { topo.SetKernel(nil) })
	require.Same(t, k, topo.CurrentKernel())

	p := geom.Pt(1, 2, 3)
	k.On("MakeVertex", p).Return(k.H("v", types.KindVertex), nil)
	k.On("MakeEdge", p, geom.Pt(0, 0, 0)).Return(k.H("f", types.KindFace), nil)
	k.On("MakeCompound", mock.Anything).Return(nil, types.Kernelf("empty compound"))

	v, err := topo.VertexByPoint(p)
	require.NoError(t, err)
	assert.Equal(t, types.KindVertex, v.Kind())

	// a kernel answering with the wrong kind is caught by the variant check
	_, err = topo.EdgeByPoints(p, geom.Pt(0, 0, 0))
	require.ErrorIs(t, err, types.ErrTypeMismatch)

	_, err = topo.CompoundByShapes(nil)
	require.ErrorIs(t, err, types.ErrKernel)
	k.AssertExpectations(t)

	topo.SetKernel(nil)
	assert.Equal(t, poly.Name, topo.CurrentKernel().Name())
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	topo.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { topo.SetLogger(nil) })

	k := mockkernel.New()
	_, err := topo.ByHandle(k.H("x", types.Kind(12)))
	require.Error(t, err)
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "unknown kind")

	buf.Reset()
	k.On("NewCopy", mock.Anything).Return(mockkernel.Failed(types.Kernelf("no copy")))
	topo.NewCopyShape(wrap[topo.Face](t, k.H("f", types.KindFace)))
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "tool=copy")

	topo.SetLogger(nil)
	assert.False(t, topo.Logger().Enabled(t.Context(), slog.LevelError))
}

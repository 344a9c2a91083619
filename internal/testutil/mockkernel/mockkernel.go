// Package mockkernel provides a testify/mock double of types.Kernel.
//
// Handles are plain values that compare by ID; collections and explorers are
// fixed fakes. Builders are mocks so tests can script success paths the
// reference kernel cannot produce.
package mockkernel

import (
	"fmt"

	"github.com/stretchr/testify/mock"

	"github.com/joshuapare/brepkit/pkg/geom"
	"github.com/joshuapare/brepkit/pkg/types"
)

// Handle is a fake kernel handle. Two handles are the same entity when
// their IDs match, and equal when their orientations match too.
type Handle struct {
	ID       string
	K        types.Kind
	Reversed bool
	Owner    *Kernel
}

// H creates a handle owned by k.
func (k *Kernel) H(id string, kind types.Kind) *Handle {
	return &Handle{ID: id, K: kind, Owner: k}
}

func (h *Handle) Kind() types.Kind { return h.K }
func (h *Handle) IsNull() bool     { return h == nil || h.ID == "" }

func (h *Handle) IsSame(other types.Handle) bool {
	o, ok := other.(*Handle)
	return ok && o != nil && h.ID == o.ID
}

func (h *Handle) IsEqual(other types.Handle) bool {
	o, ok := other.(*Handle)
	return ok && o != nil && h.ID == o.ID && h.Reversed == o.Reversed
}

func (h *Handle) Kernel() types.Kernel {
	if h.Owner == nil {
		return nil
	}
	return h.Owner
}

func (h *Handle) String() string { return fmt.Sprintf("%s#%s", h.K, h.ID) }

// Map is a fixed 1-based indexed map.
type Map struct {
	Keys []types.Handle
	Ext  int
}

func (m *Map) Size() int { return len(m.Keys) }

func (m *Map) Extent() int {
	if m.Ext == 0 {
		return len(m.Keys)
	}
	return m.Ext
}

func (m *Map) FindKey(i int) (types.Handle, error) {
	if i < 1 || i > len(m.Keys) {
		return nil, types.Kernelf("index %d out of range", i)
	}
	return m.Keys[i-1], nil
}

func (m *Map) FindIndex(h types.Handle) int {
	for i, k := range m.Keys {
		if k.IsSame(h) {
			return i + 1
		}
	}
	return 0
}

func (m *Map) Contains(h types.Handle) bool { return m.FindIndex(h) != 0 }

// Explorer walks a fixed list of handles.
type Explorer struct {
	Items []types.Handle
	pos   int
}

func (x *Explorer) More() bool            { return x.pos < len(x.Items) }
func (x *Explorer) Current() types.Handle { return x.Items[x.pos] }
func (x *Explorer) Next()                 { x.pos++ }

// Builder mocks every builder interface of the kernel contract.
type Builder struct {
	mock.Mock
}

func (b *Builder) Build() error {
	return b.Called().Error(0)
}

func (b *Builder) IsDone() bool {
	return b.Called().Bool(0)
}

func (b *Builder) Shape() (types.Handle, error) {
	args := b.Called()
	return handleArg(args, 0), args.Error(1)
}

func (b *Builder) Generated(h types.Handle) []types.Handle {
	return handlesArg(b.Called(h), 0)
}

func (b *Builder) Modified(h types.Handle) []types.Handle {
	return handlesArg(b.Called(h), 0)
}

func (b *Builder) IsDeleted(h types.Handle) bool {
	return b.Called(h).Bool(0)
}

func (b *Builder) SectionEdges() []types.Handle {
	return handlesArg(b.Called(), 0)
}

func (b *Builder) FirstShape() (types.Handle, error) {
	args := b.Called()
	return handleArg(args, 0), args.Error(1)
}

func (b *Builder) LastShape() (types.Handle, error) {
	args := b.Called()
	return handleArg(args, 0), args.Error(1)
}

func (b *Builder) FirstShapeOf(h types.Handle) (types.Handle, error) {
	args := b.Called(h)
	return handleArg(args, 0), args.Error(1)
}

func (b *Builder) LastShapeOf(h types.Handle) (types.Handle, error) {
	args := b.Called(h)
	return handleArg(args, 0), args.Error(1)
}

func (b *Builder) Add(radius float64, edge types.Handle) error {
	return b.Called(radius, edge).Error(0)
}

func (b *Builder) AddWire(wire types.Handle) error {
	return b.Called(wire).Error(0)
}

// Kernel mocks types.Kernel.
type Kernel struct {
	mock.Mock
}

// New returns an empty mock kernel.
func New() *Kernel { return &Kernel{} }

func (k *Kernel) Name() string { return "mock" }

func (k *Kernel) MakeVertex(p geom.Point) (types.Handle, error) {
	args := k.Called(p)
	return handleArg(args, 0), args.Error(1)
}

func (k *Kernel) MakeEdge(p1, p2 geom.Point) (types.Handle, error) {
	args := k.Called(p1, p2)
	return handleArg(args, 0), args.Error(1)
}

func (k *Kernel) MakeEdgeFromCurve(c geom.Curve) (types.Handle, error) {
	args := k.Called(c)
	return handleArg(args, 0), args.Error(1)
}

func (k *Kernel) MakeEdgeOnSurface(c geom.Curve2D, s geom.Surface) (types.Handle, error) {
	args := k.Called(c, s)
	return handleArg(args, 0), args.Error(1)
}

func (k *Kernel) MakeWire(edges []types.Handle) (types.Handle, error) {
	args := k.Called(edges)
	return handleArg(args, 0), args.Error(1)
}

func (k *Kernel) CombineWires(w1, w2 types.Handle) (types.Handle, error) {
	args := k.Called(w1, w2)
	return handleArg(args, 0), args.Error(1)
}

func (k *Kernel) MakeFace(wire types.Handle, planarOnly bool) (types.Handle, error) {
	args := k.Called(wire, planarOnly)
	return handleArg(args, 0), args.Error(1)
}

func (k *Kernel) MakeCompound(shapes []types.Handle) (types.Handle, error) {
	args := k.Called(shapes)
	return handleArg(args, 0), args.Error(1)
}

func (k *Kernel) MapShapes(h types.Handle, kind types.Kind) (types.IndexedMap, error) {
	args := k.Called(h, kind)
	m, _ := args.Get(0).(types.IndexedMap)
	return m, args.Error(1)
}

func (k *Kernel) Explore(h types.Handle, find, avoid types.Kind) (types.Explorer, error) {
	args := k.Called(h, find, avoid)
	x, _ := args.Get(0).(types.Explorer)
	return x, args.Error(1)
}

func (k *Kernel) NewCopy(h types.Handle) types.Builder {
	return k.Called(h).Get(0).(types.Builder)
}

func (k *Kernel) NewTransform(h types.Handle, t geom.Transform) types.Builder {
	return k.Called(h, t).Get(0).(types.Builder)
}

func (k *Kernel) NewPrism(h types.Handle, v geom.Vector) types.PrismBuilder {
	return k.Called(h, v).Get(0).(types.PrismBuilder)
}

func (k *Kernel) NewFuse(targets, tools []types.Handle) types.BooleanBuilder {
	return k.Called(targets, tools).Get(0).(types.BooleanBuilder)
}

func (k *Kernel) NewCut(targets, tools []types.Handle) types.BooleanBuilder {
	return k.Called(targets, tools).Get(0).(types.BooleanBuilder)
}

func (k *Kernel) NewFillet(h types.Handle) types.FilletBuilder {
	return k.Called(h).Get(0).(types.FilletBuilder)
}

func (k *Kernel) NewThickSimple(h types.Handle, thickness float64) types.Builder {
	return k.Called(h, thickness).Get(0).(types.Builder)
}

func (k *Kernel) NewThickJoin(h types.Handle, faces []types.Handle, thickness, tol float64) types.Builder {
	return k.Called(h, faces, thickness, tol).Get(0).(types.Builder)
}

func (k *Kernel) NewLoft(isSolid, isRuled bool, tol float64) types.LoftBuilder {
	return k.Called(isSolid, isRuled, tol).Get(0).(types.LoftBuilder)
}

func (k *Kernel) Properties(h types.Handle) (types.Properties, error) {
	args := k.Called(h)
	p, _ := args.Get(0).(types.Properties)
	return p, args.Error(1)
}

func (k *Kernel) ExportSTEP(h types.Handle, path string, header types.STEPHeader) error {
	return k.Called(h, path, header).Error(0)
}

func (k *Kernel) Mesh(global types.MeshControl, locals []types.MeshControl) (types.MeshResult, error) {
	args := k.Called(global, locals)
	r, _ := args.Get(0).(types.MeshResult)
	return r, args.Error(1)
}

// MeshResult is a fixed mesh outcome whose export is mocked.
type MeshResult struct {
	mock.Mock
	S types.MeshStats
}

func (r *MeshResult) Stats() types.MeshStats { return r.S }

func (r *MeshResult) ExportUNV(path string) error {
	return r.Called(path).Error(0)
}

// Done returns a builder whose Build succeeds with result as its shape.
func Done(result types.Handle) *Builder {
	b := &Builder{}
	b.On("Build").Return(nil)
	b.On("IsDone").Return(true)
	b.On("Shape").Return(result, nil)
	return b
}

// Failed returns a builder whose Build fails with cause.
func Failed(cause error) *Builder {
	b := &Builder{}
	b.On("Build").Return(cause)
	b.On("IsDone").Return(false)
	return b
}

func handleArg(args mock.Arguments, i int) types.Handle {
	h, _ := args.Get(i).(types.Handle)
	return h
}

func handlesArg(args mock.Arguments, i int) []types.Handle {
	hs, _ := args.Get(i).([]types.Handle)
	return hs
}

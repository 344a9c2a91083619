package topo

import (
	"fmt"

	"github.com/joshuapare/brepkit/pkg/geom"
	"github.com/joshuapare/brepkit/pkg/types"
)

// tool adapts a kernel builder. It is embedded by every tool type.
type tool struct {
	name    string
	builder types.Builder
	err     error
}

// build runs the kernel operation once and records its failure.
func (t *tool) build() error {
	if err := t.builder.Build(); err != nil {
		t.err = err
		Logger().Warn("kernel operation failed", "tool", t.name, "error", err)
		return t.notDone()
	}
	t.err = nil
	Logger().Debug("kernel operation done", "tool", t.name)
	return nil
}

// IsDone reports whether the kernel completed the operation.
func (t *tool) IsDone() bool { return t.builder.IsDone() }

// Err returns the reason the kernel gave for a failed operation, or nil.
func (t *tool) Err() error { return t.err }

// Shape returns the primary result of the operation. When the operation is
// not done the error wraps types.ErrNotDone and the kernel's reason.
func (t *tool) Shape() (Shape, error) {
	if !t.builder.IsDone() {
		return nil, t.notDone()
	}
	h, err := t.builder.Shape()
	if err != nil {
		return nil, err
	}
	return ByHandle(h)
}

// GeneratedShapes returns the result shapes created from the input
// sub-shape s, e.g. the face an extrusion sweeps from an edge.
func (t *tool) GeneratedShapes(s Shape) ([]Shape, error) {
	if !t.builder.IsDone() {
		return nil, t.notDone()
	}
	if isNull(s) {
		return nil, errNullHandle
	}
	return ByHandles(t.builder.Generated(s.Handle()))
}

// ModifiedShapes returns the result shapes that the input sub-shape s was
// transformed into.
func (t *tool) ModifiedShapes(s Shape) ([]Shape, error) {
	if !t.builder.IsDone() {
		return nil, t.notDone()
	}
	if isNull(s) {
		return nil, errNullHandle
	}
	return ByHandles(t.builder.Modified(s.Handle()))
}

// IsDeleted reports whether the input sub-shape s has no counterpart in
// the result.
func (t *tool) IsDeleted(s Shape) bool {
	return t.builder.IsDone() && !isNull(s) && t.builder.IsDeleted(s.Handle())
}

func (t *tool) notDone() error {
	if t.err != nil {
		return fmt.Errorf("%s: %w: %w", t.name, types.ErrNotDone, t.err)
	}
	return fmt.Errorf("%s: %w", t.name, types.ErrNotDone)
}

func isNull(s Shape) bool { return s == nil || s.IsNull() }

// anyNull reports whether a shape in shapes is nil or null.
func anyNull[S Shape](shapes []S) bool {
	for _, s := range shapes {
		if isNull(s) {
			return true
		}
	}
	return false
}

// rejected stands in for a kernel builder when an operand is unusable, so
// that the failure surfaces through Err and Shape like a kernel failure.
type rejected struct{ cause error }

func (r rejected) Build() error                                    { return r.cause }
func (r rejected) IsDone() bool                                    { return false }
func (r rejected) Shape() (types.Handle, error)                    { return nil, r.cause }
func (r rejected) Generated(types.Handle) []types.Handle           { return nil }
func (r rejected) Modified(types.Handle) []types.Handle            { return nil }
func (r rejected) IsDeleted(types.Handle) bool                     { return false }
func (r rejected) SectionEdges() []types.Handle                    { return nil }
func (r rejected) FirstShape() (types.Handle, error)               { return nil, r.cause }
func (r rejected) LastShape() (types.Handle, error)                { return nil, r.cause }
func (r rejected) FirstShapeOf(types.Handle) (types.Handle, error) { return nil, r.cause }
func (r rejected) LastShapeOf(types.Handle) (types.Handle, error)  { return nil, r.cause }
func (r rejected) Add(float64, types.Handle) error                 { return r.cause }
func (r rejected) AddWire(types.Handle) error                      { return r.cause }

func handles[S Shape](shapes []S) []types.Handle {
	hs := make([]types.Handle, len(shapes))
	for i, s := range shapes {
		hs[i] = s.Handle()
	}
	return hs
}

// UniteShapes fuses target shapes with tool shapes.
type UniteShapes struct {
	tool
	b types.BooleanBuilder
}

// NewUniteShapes fuses tool into target.
func NewUniteShapes(target, tool Shape) *UniteShapes {
	return NewUniteShapesMulti([]Shape{target}, []Shape{tool})
}

// NewUniteShapesMulti fuses every tool shape into the target shapes.
func NewUniteShapesMulti(targets, tools []Shape) *UniteShapes {
	var b types.BooleanBuilder = rejected{errNullHandle}
	if !anyNull(targets) && !anyNull(tools) {
		b = kernelOf(targets...).NewFuse(handles(targets), handles(tools))
	}
	u := &UniteShapes{tool: tool{name: "unite", builder: b}, b: b}
	_ = u.build()
	return u
}

// IntersectionEdges returns the edges created where the operands meet.
func (u *UniteShapes) IntersectionEdges() ([]Edge, error) {
	return sectionEdges(&u.tool, u.b)
}

// CutShapes removes tool shapes from target shapes.
type CutShapes struct {
	tool
	b types.BooleanBuilder
}

// NewCutShapes removes tool from target.
func NewCutShapes(target, tool Shape) *CutShapes {
	return NewCutShapesMulti([]Shape{target}, []Shape{tool})
}

// NewCutShapesMulti removes every tool shape from the target shapes.
func NewCutShapesMulti(targets, tools []Shape) *CutShapes {
	var b types.BooleanBuilder = rejected{errNullHandle}
	if !anyNull(targets) && !anyNull(tools) {
		b = kernelOf(targets...).NewCut(handles(targets), handles(tools))
	}
	c := &CutShapes{tool: tool{name: "cut", builder: b}, b: b}
	_ = c.build()
	return c
}

// IntersectionEdges returns the edges created where the operands meet.
func (c *CutShapes) IntersectionEdges() ([]Edge, error) {
	return sectionEdges(&c.tool, c.b)
}

func sectionEdges(t *tool, b types.BooleanBuilder) ([]Edge, error) {
	if !b.IsDone() {
		return nil, t.notDone()
	}
	hs := b.SectionEdges()
	out := make([]Edge, 0, len(hs))
	for _, h := range hs {
		e, err := NewEdge(h)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// ExtrudeShape sweeps a shape along a vector. Each sub-shape generates the
// shape one dimension higher: vertices give edges, edges give faces, faces
// give solids.
type ExtrudeShape struct {
	tool
	b types.PrismBuilder
}

// NewExtrudeShape sweeps s along v.
func NewExtrudeShape(s Shape, v geom.Vector) *ExtrudeShape {
	var b types.PrismBuilder = rejected{errNullHandle}
	if !isNull(s) {
		b = kernelOf(s).NewPrism(s.Handle(), v)
	}
	x := &ExtrudeShape{tool: tool{name: "extrude", builder: b}, b: b}
	_ = x.build()
	return x
}

// FirstShape returns the bottom of the sweep.
func (x *ExtrudeShape) FirstShape() (Shape, error) {
	return x.prismShape(x.b.FirstShape)
}

// LastShape returns the top of the sweep.
func (x *ExtrudeShape) LastShape() (Shape, error) {
	return x.prismShape(x.b.LastShape)
}

// FirstShapeOf returns the bottom counterpart of the input sub-shape s.
func (x *ExtrudeShape) FirstShapeOf(s Shape) (Shape, error) {
	return x.prismShape(func() (types.Handle, error) {
		if isNull(s) {
			return nil, errNullHandle
		}
		return x.b.FirstShapeOf(s.Handle())
	})
}

// LastShapeOf returns the top counterpart of the input sub-shape s.
func (x *ExtrudeShape) LastShapeOf(s Shape) (Shape, error) {
	return x.prismShape(func() (types.Handle, error) {
		if isNull(s) {
			return nil, errNullHandle
		}
		return x.b.LastShapeOf(s.Handle())
	})
}

func (x *ExtrudeShape) prismShape(get func() (types.Handle, error)) (Shape, error) {
	if !x.b.IsDone() {
		return nil, x.notDone()
	}
	h, err := get()
	if err != nil {
		return nil, err
	}
	return ByHandle(h)
}

// ThickenShape turns a face or shell into a solid, or hollows a solid when
// faces to remove are given.
type ThickenShape struct {
	tool
}

// NewThickenShape thickens s by thickness. Without opts.Faces, s is offset
// along its normal; with faces, the listed faces of s are removed and the
// remaining walls get the given thickness.
func NewThickenShape(s Shape, thickness float64, opts ThickenOptions) *ThickenShape {
	k := kernelOf(s)
	var b types.Builder
	switch {
	case isNull(s) || anyNull(opts.Faces):
		b = rejected{errNullHandle}
	case len(opts.Faces) == 0:
		b = k.NewThickSimple(s.Handle(), thickness)
	default:
		b = k.NewThickJoin(s.Handle(), handles(opts.Faces), thickness, opts.tolerance())
	}
	t := &ThickenShape{tool: tool{name: "thicken", builder: b}}
	_ = t.build()
	return t
}

// LoftShape builds a shell or solid through a sequence of wire sections.
// Sections are added first, then Build performs the operation.
type LoftShape struct {
	tool
	b types.LoftBuilder
}

// NewLoftShape starts a loft through the current kernel.
func NewLoftShape(opts LoftOptions) *LoftShape {
	return newLoft(CurrentKernel(), opts)
}

func newLoft(k types.Kernel, opts LoftOptions) *LoftShape {
	b := k.NewLoft(opts.Solid, opts.Ruled, opts.tolerance())
	return &LoftShape{tool: tool{name: "loft", builder: b}, b: b}
}

// AddWire appends a section.
func (l *LoftShape) AddWire(w Wire) error {
	if w.IsNull() {
		return errNullHandle
	}
	return l.b.AddWire(w.Handle())
}

// AddSection appends a section given as any shape. Only wires are
// supported; other kinds yield an error wrapping types.ErrNotImplemented.
func (l *LoftShape) AddSection(s Shape) error {
	w, ok := s.(Wire)
	if !ok {
		kind := types.KindShape
		if s != nil {
			kind = s.Kind()
		}
		return &types.Error{
			Kind: types.ErrKindNotImplemented,
			Msg:  fmt.Sprintf("loft section of kind %s", kind),
			Err:  types.ErrNotImplemented,
		}
	}
	return l.AddWire(w)
}

// Build performs the loft.
func (l *LoftShape) Build() error { return l.build() }

// FilletShape rounds edges of a solid. Edges are added first, then Build
// performs the operation.
type FilletShape struct {
	tool
	b types.FilletBuilder
}

// NewFilletShape starts a fillet of s.
func NewFilletShape(s Shape) *FilletShape {
	var b types.FilletBuilder = rejected{errNullHandle}
	if !isNull(s) {
		b = kernelOf(s).NewFillet(s.Handle())
	}
	return &FilletShape{tool: tool{name: "fillet", builder: b}, b: b}
}

// AddEdge registers an edge of the shape to round with the given radius.
func (f *FilletShape) AddEdge(e Edge, radius float64) error {
	if e.IsNull() {
		return errNullHandle
	}
	return f.b.Add(radius, e.Handle())
}

// Build performs the fillet.
func (f *FilletShape) Build() error { return f.build() }

// CopyShape deep-copies a shape.
type CopyShape struct {
	tool
}

// NewCopyShape copies s. The copy shares no entity with s.
func NewCopyShape(s Shape) *CopyShape {
	var b types.Builder = rejected{errNullHandle}
	if !isNull(s) {
		b = kernelOf(s).NewCopy(s.Handle())
	}
	c := &CopyShape{tool: tool{name: "copy", builder: b}}
	_ = c.build()
	return c
}

// TransformShape applies a rigid or mirror transform to a copy of a shape.
type TransformShape struct {
	tool
}

// NewTransformShape transforms a copy of s by t.
func NewTransformShape(s Shape, t geom.Transform) *TransformShape {
	var b types.Builder = rejected{errNullHandle}
	if !isNull(s) {
		b = kernelOf(s).NewTransform(s.Handle(), t)
	}
	x := &TransformShape{tool: tool{name: "transform", builder: b}}
	_ = x.build()
	return x
}

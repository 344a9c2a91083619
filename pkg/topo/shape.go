package topo

import (
	"fmt"

	"github.com/joshuapare/brepkit/pkg/geom"
	"github.com/joshuapare/brepkit/pkg/types"
)

// Shape is a topological entity produced by the kernel. The set of
// implementations is closed: Vertex, Edge, Wire, Face, Shell, Solid,
// CompSolid and Compound. Use a type switch to branch on the variant.
type Shape interface {
	// Handle returns the kernel handle the shape wraps.
	Handle() types.Handle
	// Kind returns the variant's kind.
	Kind() types.Kind
	// IsNull reports whether the shape refers to no entity.
	IsNull() bool
	// IsSame reports whether both shapes are the same entity, regardless of
	// orientation.
	IsSame(other Shape) bool
	// IsEqual reports whether both shapes are the same entity with the same
	// orientation.
	IsEqual(other Shape) bool

	Vertices() (*Map[Vertex], error)
	Edges() (*Map[Edge], error)
	Wires() (*Map[Wire], error)
	Faces() (*Map[Face], error)
	Shells() (*Map[Shell], error)
	Solids() (*Map[Solid], error)
	CompSolids() (*Map[CompSolid], error)
	Compounds() (*Map[Compound], error)
	// Map collects the distinct sub-shapes of the given kind.
	Map(kind types.Kind) (*Map[Shape], error)
	// Explore walks the sub-shapes of kind find, skipping the subtrees of
	// kind ignore. Pass types.KindShape to ignore nothing.
	Explore(find, ignore types.Kind) *Explorer

	Copy() (Shape, error)
	Mirror(origin geom.Point, normal geom.Vector) (Shape, error)
	Transform(t geom.Transform) (Shape, error)
	Translate(v geom.Vector) (Shape, error)
	Extrude(v geom.Vector) (Shape, error)
	Unite(other Shape) (Shape, error)
	Cut(other Shape) (Shape, error)
	Fillet(radius float64, edges ...Edge) (Shape, error)
	FilletEach(radii ...EdgeRadius) (Shape, error)
	Thicken(thickness float64, opts ThickenOptions) (Shape, error)

	Properties() (types.Properties, error)
	Length() (float64, error)
	Area() (float64, error)
	Volume() (float64, error)

	// ExportSTEP writes the shape to a STEP file. Only the first options
	// value is used.
	ExportSTEP(path string, opts ...ExportOptions) error

	String() string

	sealed()
}

// base carries the handle and implements the behaviour shared by every
// variant.
type base struct {
	h types.Handle
}

func (b base) sealed() {}

func (b base) Handle() types.Handle { return b.h }

func (b base) Kind() types.Kind {
	if b.h == nil {
		return types.KindShape
	}
	return b.h.Kind()
}

func (b base) IsNull() bool { return b.h == nil || b.h.IsNull() }

func (b base) IsSame(other Shape) bool {
	if b.IsNull() || other == nil || other.IsNull() {
		return false
	}
	return b.h.IsSame(other.Handle())
}

func (b base) IsEqual(other Shape) bool {
	if b.IsNull() || other == nil || other.IsNull() {
		return false
	}
	return b.h.IsEqual(other.Handle())
}

func (b base) String() string {
	if b.IsNull() {
		return "<null shape>"
	}
	return fmt.Sprintf("%s(%v)", b.Kind(), b.h)
}

// kernel returns the kernel that produced the shape.
func (b base) kernel() types.Kernel {
	if b.h != nil {
		if k := b.h.Kernel(); k != nil {
			return k
		}
	}
	return CurrentKernel()
}

// Vertex is a point in space.
type Vertex struct{ base }

// Edge is a bounded curve between vertices.
type Edge struct{ base }

// Wire is a connected chain of edges.
type Wire struct{ base }

// Face is a bounded portion of a surface.
type Face struct{ base }

// Shell is a set of faces connected by their edges.
type Shell struct{ base }

// Solid is a region of space bounded by shells.
type Solid struct{ base }

// CompSolid is a set of solids connected by their faces.
type CompSolid struct{ base }

// Compound is an arbitrary group of shapes.
type Compound struct{ base }

var errNullHandle = &types.Error{
	Kind: types.ErrKindTypeMismatch,
	Msg:  "null shape handle",
	Err:  types.ErrTypeMismatch,
}

// ByHandle wraps h in the variant matching its kind. A kind outside the
// closed set is an invariant violation of the kernel and yields an error
// wrapping types.ErrUnknownKind.
func ByHandle(h types.Handle) (Shape, error) {
	if h == nil || h.IsNull() {
		return nil, errNullHandle
	}
	b := base{h: h}
	switch k := h.Kind(); k {
	case types.KindVertex:
		return Vertex{b}, nil
	case types.KindEdge:
		return Edge{b}, nil
	case types.KindWire:
		return Wire{b}, nil
	case types.KindFace:
		return Face{b}, nil
	case types.KindShell:
		return Shell{b}, nil
	case types.KindSolid:
		return Solid{b}, nil
	case types.KindCompSolid:
		return CompSolid{b}, nil
	case types.KindCompound:
		return Compound{b}, nil
	default:
		Logger().Error("kernel returned a handle of unknown kind", "kind", k)
		return nil, &types.Error{
			Kind: types.ErrKindUnknownKind,
			Msg:  fmt.Sprintf("cannot wrap handle of kind %s", k),
			Err:  types.ErrUnknownKind,
		}
	}
}

// ByHandles wraps every handle, stopping at the first failure.
func ByHandles(hs []types.Handle) ([]Shape, error) {
	out := make([]Shape, 0, len(hs))
	for _, h := range hs {
		s, err := ByHandle(h)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func mismatch(want, got types.Kind) error {
	return &types.Error{
		Kind: types.ErrKindTypeMismatch,
		Msg:  fmt.Sprintf("expected %s but got %s", want, got),
		Err:  types.ErrTypeMismatch,
	}
}

func checkKind(h types.Handle, want types.Kind) (base, error) {
	if h == nil || h.IsNull() {
		return base{}, errNullHandle
	}
	if got := h.Kind(); got != want {
		return base{}, mismatch(want, got)
	}
	return base{h: h}, nil
}

// NewVertex wraps a handle of kind Vertex.
func NewVertex(h types.Handle) (Vertex, error) {
	b, err := checkKind(h, types.KindVertex)
	return Vertex{b}, err
}

// NewEdge wraps a handle of kind Edge.
func NewEdge(h types.Handle) (Edge, error) {
	b, err := checkKind(h, types.KindEdge)
	return Edge{b}, err
}

// NewWire wraps a handle of kind Wire.
func NewWire(h types.Handle) (Wire, error) {
	b, err := checkKind(h, types.KindWire)
	return Wire{b}, err
}

// NewFace wraps a handle of kind Face.
func NewFace(h types.Handle) (Face, error) {
	b, err := checkKind(h, types.KindFace)
	return Face{b}, err
}

// NewShell wraps a handle of kind Shell.
func NewShell(h types.Handle) (Shell, error) {
	b, err := checkKind(h, types.KindShell)
	return Shell{b}, err
}

// NewSolid wraps a handle of kind Solid.
func NewSolid(h types.Handle) (Solid, error) {
	b, err := checkKind(h, types.KindSolid)
	return Solid{b}, err
}

// NewCompSolid wraps a handle of kind CompSolid.
func NewCompSolid(h types.Handle) (CompSolid, error) {
	b, err := checkKind(h, types.KindCompSolid)
	return CompSolid{b}, err
}

// NewCompound wraps a handle of kind Compound.
func NewCompound(h types.Handle) (Compound, error) {
	b, err := checkKind(h, types.KindCompound)
	return Compound{b}, err
}

// As converts s to the variant S, failing with an error wrapping
// types.ErrTypeMismatch when s is another variant.
//
// Example:
//
//	top, _ := extrude.LastShape()
//	face, err := topo.As[topo.Face](top)
func As[S Shape](s Shape) (S, error) {
	var zero S
	if s == nil {
		return zero, errNullHandle
	}
	if v, ok := s.(S); ok {
		return v, nil
	}
	return zero, mismatch(variantKind[S](), s.Kind())
}

// variantKind returns the kind wrapped by the variant S, or KindShape when
// S is the Shape interface itself.
func variantKind[S Shape]() types.Kind {
	var zero S
	switch any(zero).(type) {
	case Vertex:
		return types.KindVertex
	case Edge:
		return types.KindEdge
	case Wire:
		return types.KindWire
	case Face:
		return types.KindFace
	case Shell:
		return types.KindShell
	case Solid:
		return types.KindSolid
	case CompSolid:
		return types.KindCompSolid
	case Compound:
		return types.KindCompound
	default:
		return types.KindShape
	}
}

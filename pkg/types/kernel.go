package types

import "github.com/joshuapare/brepkit/pkg/geom"

// -----------------------------------------------------------------------------
// Handles
// -----------------------------------------------------------------------------

// Handle is an opaque reference to a kernel topological entity together with
// its orientation. Handles are immutable; every kernel operation returns new
// handles.
type Handle interface {
	// Kind reports the kernel's classification of the entity.
	Kind() Kind

	// IsNull reports whether the handle refers to nothing.
	IsNull() bool

	// IsSame reports whether both handles refer to the same entity,
	// regardless of orientation.
	IsSame(other Handle) bool

	// IsEqual reports whether both handles refer to the same entity with the
	// same orientation.
	IsEqual(other Handle) bool

	// Kernel returns the kernel that produced the handle.
	Kernel() Kernel
}

// -----------------------------------------------------------------------------
// Collections
// -----------------------------------------------------------------------------

// IndexedMap is a 1-based indexed set of distinct sub-shapes.
type IndexedMap interface {
	// Size is the number of distinct shapes.
	Size() int
	// Extent is the number of references met while collecting the shapes,
	// counting shared sub-shapes once per reference.
	Extent() int
	// FindKey returns the shape at 1-based index i.
	FindKey(i int) (Handle, error)
	// FindIndex returns the 1-based index of h, or 0 if absent.
	FindIndex(h Handle) int
	// Contains reports whether h is in the map.
	Contains(h Handle) bool
}

// Explorer is a forward-only cursor over sub-shapes.
type Explorer interface {
	More() bool
	Current() Handle
	Next()
}

// -----------------------------------------------------------------------------
// Builders
// -----------------------------------------------------------------------------

// Builder is a stateful kernel operation.
type Builder interface {
	// Build performs the operation. A non-nil error carries the kernel's
	// failure reason; IsDone then reports false.
	Build() error
	IsDone() bool
	// Shape returns the primary result. It fails when the operation is not done.
	Shape() (Handle, error)
	// Generated returns the result sub-shapes created from input sub-shape h.
	Generated(h Handle) []Handle
	// Modified returns the result sub-shapes that h was transformed into.
	Modified(h Handle) []Handle
	// IsDeleted reports whether input sub-shape h has no counterpart in the result.
	IsDeleted(h Handle) bool
}

// BooleanBuilder is a fuse or cut operation.
type BooleanBuilder interface {
	Builder
	// SectionEdges returns the edges created where the operands intersect.
	SectionEdges() []Handle
}

// PrismBuilder sweeps a shape along a vector.
type PrismBuilder interface {
	Builder
	// FirstShape returns the bottom of the sweep (the input shape).
	FirstShape() (Handle, error)
	// LastShape returns the top of the sweep.
	LastShape() (Handle, error)
	// FirstShapeOf returns the bottom counterpart of input sub-shape h.
	FirstShapeOf(h Handle) (Handle, error)
	// LastShapeOf returns the top counterpart of input sub-shape h.
	LastShapeOf(h Handle) (Handle, error)
}

// FilletBuilder rounds edges of a shape.
type FilletBuilder interface {
	Builder
	// Add registers an edge to round with the given radius.
	Add(radius float64, edge Handle) error
}

// LoftBuilder builds a shell or solid through section wires.
type LoftBuilder interface {
	Builder
	// AddWire appends a section; sections are used in insertion order.
	AddWire(wire Handle) error
}

// -----------------------------------------------------------------------------
// Properties, export and meshing
// -----------------------------------------------------------------------------

// Properties are global measures of a shape.
type Properties struct {
	Length float64 // sum of the lengths of distinct edges
	Area   float64 // sum of the areas of distinct faces
	Volume float64 // sum of the volumes of distinct solids
}

// STEPHeader carries the descriptive fields written into a STEP file.
type STEPHeader struct {
	Name         string
	Description  string
	Author       string
	Organization string
}

// -----------------------------------------------------------------------------
// Kernel
// -----------------------------------------------------------------------------

// Kernel is the modelling engine the façade drives. Implementations are not
// required to be safe for concurrent use.
type Kernel interface {
	// Name identifies the kernel implementation.
	Name() string

	MakeVertex(p geom.Point) (Handle, error)
	MakeEdge(p1, p2 geom.Point) (Handle, error)
	MakeEdgeFromCurve(c geom.Curve) (Handle, error)
	MakeEdgeOnSurface(c geom.Curve2D, s geom.Surface) (Handle, error)
	// MakeWire connects edges into a wire; edges may be given in any order.
	MakeWire(edges []Handle) (Handle, error)
	// CombineWires appends w2 to w1.
	CombineWires(w1, w2 Handle) (Handle, error)
	// MakeFace builds a face bounded by a wire; planarOnly rejects
	// non-planar wires.
	MakeFace(wire Handle, planarOnly bool) (Handle, error)
	MakeCompound(shapes []Handle) (Handle, error)

	MapShapes(h Handle, kind Kind) (IndexedMap, error)
	Explore(h Handle, find, avoid Kind) (Explorer, error)

	NewCopy(h Handle) Builder
	NewTransform(h Handle, t geom.Transform) Builder
	NewPrism(h Handle, v geom.Vector) PrismBuilder
	NewFuse(args, tools []Handle) BooleanBuilder
	NewCut(args, tools []Handle) BooleanBuilder
	NewFillet(h Handle) FilletBuilder
	NewThickSimple(h Handle, thickness float64) Builder
	NewThickJoin(h Handle, faces []Handle, thickness, tol float64) Builder
	NewLoft(isSolid, isRuled bool, tol float64) LoftBuilder

	Properties(h Handle) (Properties, error)
	ExportSTEP(h Handle, path string, header STEPHeader) error
	Mesh(global MeshControl, locals []MeshControl) (MeshResult, error)
}

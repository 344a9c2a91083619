package topo

import (
	"fmt"

	"github.com/joshuapare/brepkit/pkg/geom"
	"github.com/joshuapare/brepkit/pkg/types"
)

// VertexByPoint creates a vertex at p.
func VertexByPoint(p geom.Point) (Vertex, error) {
	h, err := CurrentKernel().MakeVertex(p)
	if err != nil {
		return Vertex{}, err
	}
	return NewVertex(h)
}

// EdgeByPoints creates a straight edge from p1 to p2.
func EdgeByPoints(p1, p2 geom.Point) (Edge, error) {
	h, err := CurrentKernel().MakeEdge(p1, p2)
	if err != nil {
		return Edge{}, err
	}
	return NewEdge(h)
}

// EdgeByCurve creates an edge spanning the parameter range of a bounded
// curve.
func EdgeByCurve(c geom.Curve) (Edge, error) {
	h, err := CurrentKernel().MakeEdgeFromCurve(c)
	if err != nil {
		return Edge{}, err
	}
	return NewEdge(h)
}

// EdgeByCurve2D creates an edge from a parametric curve lying on surface s.
func EdgeByCurve2D(c geom.Curve2D, s geom.Surface) (Edge, error) {
	h, err := CurrentKernel().MakeEdgeOnSurface(c, s)
	if err != nil {
		return Edge{}, err
	}
	return NewEdge(h)
}

// EdgeByCircularArc creates an arc edge from p1 through p2 to p3.
func EdgeByCircularArc(p1, p2, p3 geom.Point) (Edge, error) {
	arc, err := geom.CircularArc(p1, p2, p3)
	if err != nil {
		return Edge{}, err
	}
	return EdgeByCurve(arc)
}

// WireByEdge creates a wire made of a single edge.
func WireByEdge(e Edge) (Wire, error) {
	return WireByEdges([]Edge{e})
}

// WireByEdges connects edges into a wire. The edges may be given in any
// order as long as their end points chain.
func WireByEdges(edges []Edge) (Wire, error) {
	hs := make([]types.Handle, len(edges))
	shapes := make([]Shape, len(edges))
	for i, e := range edges {
		hs[i] = e.Handle()
		shapes[i] = e
	}
	h, err := kernelOf(shapes...).MakeWire(hs)
	if err != nil {
		return Wire{}, err
	}
	return NewWire(h)
}

// Combine returns a new wire made of w followed by other.
func (w Wire) Combine(other Wire) (Wire, error) {
	h, err := w.kernel().CombineWires(w.h, other.Handle())
	if err != nil {
		return Wire{}, err
	}
	return NewWire(h)
}

// FaceByWire creates a planar face bounded by a closed wire.
func FaceByWire(w Wire) (Face, error) {
	h, err := w.kernel().MakeFace(w.h, true)
	if err != nil {
		return Face{}, err
	}
	return NewFace(h)
}

// CompoundByShapes groups shapes into a compound.
func CompoundByShapes(shapes []Shape) (Compound, error) {
	hs := make([]types.Handle, len(shapes))
	for i, s := range shapes {
		hs[i] = s.Handle()
	}
	h, err := kernelOf(shapes...).MakeCompound(hs)
	if err != nil {
		return Compound{}, err
	}
	return NewCompound(h)
}

// SolidByLoft builds a solid through the given sections in order. Only
// wires are accepted as sections; opts.Solid is ignored.
func SolidByLoft(sections []Shape, opts LoftOptions) (Solid, error) {
	opts.Solid = true
	loft := newLoft(kernelOf(sections...), opts)
	for i, s := range sections {
		if err := loft.AddSection(s); err != nil {
			return Solid{}, fmt.Errorf("section %d: %w", i, err)
		}
	}
	if err := loft.Build(); err != nil {
		return Solid{}, err
	}
	s, err := loft.Shape()
	if err != nil {
		return Solid{}, err
	}
	return As[Solid](s)
}

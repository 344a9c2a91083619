package poly

import (
	"fmt"

	"github.com/joshuapare/brepkit/pkg/geom"
	"github.com/joshuapare/brepkit/pkg/types"
)

// tolerance is the distance below which two points are the same vertex.
const tolerance = geom.Resolution

// tshape is a topological entity. It is never modified once built.
type tshape struct {
	id       uint64
	kind     types.Kind
	children []ref

	point geom.Point // vertices

	curve  geom.Curve // edges: basis curve
	u0, u1 float64    // edges: parameter range on the basis

	surf *surface // faces

	// origin is the edge this one was copied from when a wire had to
	// replace one of its vertices.
	origin *tshape
}

// ref is an oriented reference to an entity.
type ref struct {
	t   *tshape
	rev bool
}

func (r ref) reversed() ref { return ref{t: r.t, rev: !r.rev} }

// children returns the sub-shape references with r's orientation applied.
func (r ref) children() []ref {
	out := make([]ref, len(r.t.children))
	for i, c := range r.t.children {
		out[i] = ref{t: c.t, rev: c.rev != r.rev}
	}
	return out
}

// root follows the copy chain of an edge back to the edge the caller built.
func (t *tshape) root() *tshape {
	for t.origin != nil {
		t = t.origin
	}
	return t
}

func (t *tshape) firstVertex() *tshape { return t.children[0].t }
func (t *tshape) lastVertex() *tshape  { return t.children[1].t }

// start returns the vertex an oriented edge starts from.
func (r ref) start() *tshape {
	if r.rev {
		return r.t.lastVertex()
	}
	return r.t.firstVertex()
}

// end returns the vertex an oriented edge ends at.
func (r ref) end() *tshape {
	if r.rev {
		return r.t.firstVertex()
	}
	return r.t.lastVertex()
}

// at evaluates an oriented edge at s in [0, 1] along its traversal.
func (r ref) at(s float64) geom.Point {
	switch {
	case s <= 0:
		return r.start().point
	case s >= 1:
		return r.end().point
	}
	if r.rev {
		s = 1 - s
	}
	return r.t.curve.Evaluate(r.t.u0 + s*(r.t.u1-r.t.u0))
}

// samples returns n+1 points along an oriented edge.
func (r ref) samples(n int) []geom.Point {
	pts := make([]geom.Point, n+1)
	for i := 0; i <= n; i++ {
		pts[i] = r.at(float64(i) / float64(n))
	}
	return pts
}

// edgesOf returns the edges of a wire in traversal order.
func edgesOf(w ref) []ref {
	es := w.children()
	if w.rev {
		for i, j := 0, len(es)-1; i < j; i, j = i+1, j-1 {
			es[i], es[j] = es[j], es[i]
		}
	}
	return es
}

// isClosedWire reports whether a wire ends where it starts.
func isClosedWire(w ref) bool {
	es := edgesOf(w)
	return len(es) > 0 && es[0].start() == es[len(es)-1].end()
}

// loopPoints discretizes a closed wire into a polygon without repeating the
// first point.
func loopPoints(w ref) []geom.Point {
	var pts []geom.Point
	for _, e := range edgesOf(w) {
		s := e.samples(segments(e.t))
		pts = append(pts, s[:len(s)-1]...)
	}
	return pts
}

// collect returns the distinct sub-shapes of the given kind in depth-first
// order, with the orientation of their first occurrence.
func collect(r ref, kind types.Kind) []ref {
	var out []ref
	seen := make(map[*tshape]bool)
	var visit func(r ref)
	visit = func(r ref) {
		if r.t.kind == kind {
			if !seen[r.t] {
				seen[r.t] = true
				out = append(out, r)
			}
			return
		}
		if r.t.kind.IsMoreComplex(kind) {
			for _, c := range r.children() {
				visit(c)
			}
		}
	}
	visit(r)
	return out
}

// contains reports whether t is r itself or one of its sub-shapes.
func contains(r ref, t *tshape) bool {
	if r.t == t {
		return true
	}
	if !r.t.kind.IsMoreComplex(t.kind) {
		return false
	}
	for _, c := range r.t.children {
		if contains(c, t) {
			return true
		}
	}
	return false
}

// handle is the types.Handle implementation of this kernel.
type handle struct {
	k *Kernel
	ref
}

func (h handle) Kind() types.Kind {
	if h.t == nil {
		return types.KindShape
	}
	return h.t.kind
}

func (h handle) IsNull() bool { return h.t == nil }

func (h handle) IsSame(other types.Handle) bool {
	o, ok := other.(handle)
	return ok && h.t != nil && o.t == h.t
}

func (h handle) IsEqual(other types.Handle) bool {
	o, ok := other.(handle)
	return ok && h.t != nil && o.t == h.t && o.rev == h.rev
}

func (h handle) Kernel() types.Kernel { return h.k }

func (h handle) String() string {
	if h.t == nil {
		return "<null>"
	}
	orient := "+"
	if h.rev {
		orient = "-"
	}
	return fmt.Sprintf("%s#%d%s", h.t.kind, h.t.id, orient)
}

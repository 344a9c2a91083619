package poly

import (
	"sync/atomic"

	"github.com/joshuapare/brepkit/pkg/geom"
	"github.com/joshuapare/brepkit/pkg/types"
)

// Name is the value returned by Kernel.Name.
const Name = "poly"

// Kernel is the reference kernel. The zero value is not usable; call New.
// A Kernel may be shared between goroutines for construction calls, but
// builders it returns are single-use and confined to one goroutine.
type Kernel struct {
	seq atomic.Uint64
}

var _ types.Kernel = (*Kernel)(nil)

// New returns a kernel.
func New() *Kernel {
	return &Kernel{}
}

// Name identifies the kernel.
func (k *Kernel) Name() string { return Name }

func (k *Kernel) newShape(kind types.Kind) *tshape {
	return &tshape{id: k.seq.Add(1), kind: kind}
}

func (k *Kernel) wrap(r ref) types.Handle {
	return handle{k: k, ref: r}
}

func (k *Kernel) wrapAll(rs []ref) []types.Handle {
	if len(rs) == 0 {
		return nil
	}
	out := make([]types.Handle, len(rs))
	for i, r := range rs {
		out[i] = k.wrap(r)
	}
	return out
}

// refOf resolves a handle produced by this kernel.
func (k *Kernel) refOf(h types.Handle) (ref, error) {
	hh, ok := h.(handle)
	if !ok {
		return ref{}, types.Kernelf("handle %v was not produced by the %s kernel", h, Name)
	}
	if hh.t == nil {
		return ref{}, types.Kernelf("null handle")
	}
	if hh.k != k {
		return ref{}, types.Kernelf("handle %v belongs to another kernel instance", hh)
	}
	return hh.ref, nil
}

func (k *Kernel) refOfKind(h types.Handle, kind types.Kind) (ref, error) {
	r, err := k.refOf(h)
	if err != nil {
		return ref{}, err
	}
	if r.t.kind != kind {
		return ref{}, types.Kernelf("expected %s but got %s", kind, r.t.kind)
	}
	return r, nil
}

func (k *Kernel) vertex(p geom.Point) *tshape {
	v := k.newShape(types.KindVertex)
	v.point = p
	return v
}

// edge builds an edge on c restricted to [u0, u1]. Nil vertices are created
// from the curve end points; a closed curve gets a single vertex.
func (k *Kernel) edge(c geom.Curve, u0, u1 float64, v0, v1 *tshape) *tshape {
	p0, p1 := c.Evaluate(u0), c.Evaluate(u1)
	if v0 == nil {
		v0 = k.vertex(p0)
	}
	if v1 == nil {
		if p0.IsEqual(p1, tolerance) {
			v1 = v0
		} else {
			v1 = k.vertex(p1)
		}
	}
	e := k.newShape(types.KindEdge)
	e.curve, e.u0, e.u1 = c, u0, u1
	e.children = []ref{{t: v0}, {t: v1, rev: true}}
	return e
}

// segment builds a straight edge between two existing vertices.
func (k *Kernel) segment(v0, v1 *tshape) (*tshape, error) {
	l, err := geom.LineByPoints(v0.point, v1.point)
	if err != nil {
		return nil, types.Kernelf("edge between coincident points %v", v0.point)
	}
	return k.edge(l, 0, v0.point.Distance(v1.point), v0, v1), nil
}

// MakeVertex builds a vertex.
func (k *Kernel) MakeVertex(p geom.Point) (types.Handle, error) {
	return k.wrap(ref{t: k.vertex(p)}), nil
}

// MakeEdge builds a straight edge between two points.
func (k *Kernel) MakeEdge(p1, p2 geom.Point) (types.Handle, error) {
	if p1.IsEqual(p2, tolerance) {
		return nil, types.Kernelf("edge between coincident points %v", p1)
	}
	e, err := k.segment(k.vertex(p1), k.vertex(p2))
	if err != nil {
		return nil, err
	}
	return k.wrap(ref{t: e}), nil
}

// MakeEdgeFromCurve builds an edge spanning the parameter range of a bounded
// curve.
func (k *Kernel) MakeEdgeFromCurve(c geom.Curve) (types.Handle, error) {
	if c == nil || !geom.IsBounded(c) {
		return nil, types.Kernelf("edge requires a bounded curve")
	}
	basis, u0, u1 := c, c.FirstParameter(), c.LastParameter()
	if t, ok := c.(geom.TrimmedCurve); ok {
		basis = t.Basis
	}
	if u1-u0 <= tolerance {
		return nil, types.Kernelf("edge parameter range [%g, %g] is empty", u0, u1)
	}
	return k.wrap(ref{t: k.edge(basis, u0, u1, nil, nil)}), nil
}

// MakeEdgeOnSurface builds an edge from a parametric curve mapped onto a
// surface.
func (k *Kernel) MakeEdgeOnSurface(c geom.Curve2D, s geom.Surface) (types.Handle, error) {
	if c == nil || s == nil {
		return nil, types.Kernelf("edge on surface requires a curve and a surface")
	}
	return k.MakeEdgeFromCurve(geom.OnSurface(c, s))
}

// MakeCompound groups shapes without merging them.
func (k *Kernel) MakeCompound(shapes []types.Handle) (types.Handle, error) {
	c := k.newShape(types.KindCompound)
	for _, h := range shapes {
		r, err := k.refOf(h)
		if err != nil {
			return nil, err
		}
		c.children = append(c.children, r)
	}
	return k.wrap(ref{t: c}), nil
}

package poly

import (
	"math"

	"github.com/joshuapare/brepkit/pkg/geom"
	"github.com/joshuapare/brepkit/pkg/types"
)

// prismBuilder sweeps a shape along a vector. Each sub-shape generates the
// entity one dimension up (vertex→edge, edge→face, wire→shell, face→solid,
// shell→compsolid) and the top of the sweep is a translated copy.
type prismBuilder struct {
	result
	src   ref
	vec   geom.Vector
	top   *copier
	swept map[*tshape]*tshape
}

// NewPrism returns a builder sweeping h along v.
func (k *Kernel) NewPrism(h types.Handle, v geom.Vector) types.PrismBuilder {
	b := &prismBuilder{result: newResult(k), vec: v, swept: make(map[*tshape]*tshape)}
	src, err := k.refOf(h)
	if err != nil {
		b.built = true
		b.fail(err)
		return b
	}
	b.src = src
	return b
}

func (b *prismBuilder) Build() error {
	if !b.begin() {
		return b.err
	}
	if b.vec.Magnitude() <= tolerance {
		return b.fail(types.Kernelf("extrusion vector has zero length"))
	}
	b.top = newCopier(b.k, geom.Translation(b.vec))
	out, err := b.sweep(b.src.t)
	if err != nil {
		return b.fail(err)
	}
	b.top.copy(b.src.t)
	for t, g := range b.swept {
		b.generated[t] = []ref{{t: g}}
	}
	return b.finish(ref{t: out, rev: b.src.rev})
}

func (b *prismBuilder) sweep(t *tshape) (*tshape, error) {
	if g, ok := b.swept[t]; ok {
		return g, nil
	}
	var (
		g   *tshape
		err error
	)
	switch t.kind {
	case types.KindVertex:
		g, err = b.k.segment(t, b.top.copy(t))
	case types.KindEdge:
		g, err = b.sweepEdge(t)
	case types.KindWire:
		g, err = b.sweepChildren(t, types.KindShell)
	case types.KindFace:
		g, err = b.sweepFace(t)
	case types.KindShell:
		g, err = b.sweepChildren(t, types.KindCompSolid)
	case types.KindCompound:
		g, err = b.sweepChildren(t, types.KindCompound)
	default:
		err = types.Kernelf("cannot extrude a %s", t.kind)
	}
	if err != nil {
		return nil, err
	}
	b.swept[t] = g
	return g, nil
}

func (b *prismBuilder) sweepChildren(t *tshape, kind types.Kind) (*tshape, error) {
	g := b.k.newShape(kind)
	for _, c := range t.children {
		s, err := b.sweep(c.t)
		if err != nil {
			return nil, err
		}
		rev := c.rev
		if kind == types.KindCompSolid {
			rev = false
		}
		g.children = append(g.children, ref{t: s, rev: rev})
	}
	return g, nil
}

// sweepEdge builds the ruled face swept by an edge, bounded by
// (e, side at end, top reversed, side at start reversed).
func (b *prismBuilder) sweepEdge(e *tshape) (*tshape, error) {
	if l, ok := e.curve.(geom.Line); ok && l.Direction.IsParallel(b.vec, 1e-9) {
		return nil, types.Kernelf("edge is parallel to the extrusion direction")
	}
	s0, err := b.sweep(e.firstVertex())
	if err != nil {
		return nil, err
	}
	s1, err := b.sweep(e.lastVertex())
	if err != nil {
		return nil, err
	}
	top := b.top.copy(e)
	w := b.k.newShape(types.KindWire)
	w.children = []ref{{t: e}, {t: s1}, {t: top, rev: true}, {t: s0, rev: true}}
	f := b.k.newShape(types.KindFace)
	f.children = []ref{{t: w}}
	f.surf = &surface{rail0: ref{t: e}, rail1: ref{t: top}}
	return f, nil
}

// sweepFace builds the solid swept by a face. Faces are oriented outward:
// the base faces against the sweep, the top along it, and each lateral face
// away from the material on the left of its boundary edge.
func (b *prismBuilder) sweepFace(f *tshape) (*tshape, error) {
	n, err := faceNormal(ref{t: f})
	if err != nil {
		return nil, err
	}
	d := n.Dot(b.vec)
	if math.Abs(d) <= 1e-9*b.vec.Magnitude() {
		return nil, types.Kernelf("extrusion direction lies in the face plane")
	}
	along := d > 0

	shell := b.k.newShape(types.KindShell)
	shell.children = append(shell.children, ref{t: f, rev: along})
	for _, w := range (ref{t: f}).children() {
		for _, e := range edgesOf(w) {
			s, err := b.sweep(e.t)
			if err != nil {
				return nil, err
			}
			shell.children = append(shell.children, ref{t: s, rev: e.rev != !along})
		}
	}
	shell.children = append(shell.children, ref{t: b.top.copy(f), rev: !along})

	solid := b.k.newShape(types.KindSolid)
	solid.children = []ref{{t: shell}}
	return solid, nil
}

func (b *prismBuilder) FirstShape() (types.Handle, error) {
	if err := b.check(); err != nil {
		return nil, err
	}
	return b.k.wrap(b.src), nil
}

func (b *prismBuilder) LastShape() (types.Handle, error) {
	if err := b.check(); err != nil {
		return nil, err
	}
	return b.k.wrap(ref{t: b.top.memo[b.src.t], rev: b.src.rev}), nil
}

func (b *prismBuilder) FirstShapeOf(h types.Handle) (types.Handle, error) {
	if err := b.check(); err != nil {
		return nil, err
	}
	r, err := b.k.refOf(h)
	if err != nil {
		return nil, err
	}
	if _, ok := b.top.memo[r.t]; !ok {
		return nil, types.Kernelf("%s is not part of the extruded shape", r.t.kind)
	}
	return h, nil
}

func (b *prismBuilder) LastShapeOf(h types.Handle) (types.Handle, error) {
	if err := b.check(); err != nil {
		return nil, err
	}
	r, err := b.k.refOf(h)
	if err != nil {
		return nil, err
	}
	top, ok := b.top.memo[r.t]
	if !ok {
		return nil, types.Kernelf("%s is not part of the extruded shape", r.t.kind)
	}
	return b.k.wrap(ref{t: top, rev: r.rev}), nil
}

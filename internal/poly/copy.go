package poly

import (
	"github.com/joshuapare/brepkit/pkg/geom"
	"github.com/joshuapare/brepkit/pkg/types"
)

// copier deep-copies entities through an affine transform. Sharing is
// preserved: an entity reached twice is copied once.
type copier struct {
	k    *Kernel
	xf   geom.Transform
	memo map[*tshape]*tshape
}

func newCopier(k *Kernel, xf geom.Transform) *copier {
	return &copier{k: k, xf: xf, memo: make(map[*tshape]*tshape)}
}

func (c *copier) copy(t *tshape) *tshape {
	if n, ok := c.memo[t]; ok {
		return n
	}
	n := c.k.newShape(t.kind)
	n.children = make([]ref, len(t.children))
	for i, ch := range t.children {
		n.children[i] = ref{t: c.copy(ch.t), rev: ch.rev}
	}
	switch t.kind {
	case types.KindVertex:
		n.point = c.xf.ApplyPoint(t.point)
	case types.KindEdge:
		n.curve, n.u0, n.u1 = c.xf.ApplyCurve(t.curve), t.u0, t.u1
	case types.KindFace:
		n.surf = c.surface(t.surf)
	}
	c.memo[t] = n
	return n
}

func (c *copier) surface(s *surface) *surface {
	if !s.ruled() {
		f := c.xf.ApplyFrame(s.plane.Frame)
		// Keep the plane normal on the side the mapped boundary turns around.
		if z, err := f.X.Cross(f.Y).Normalized(); err == nil {
			f.Z = z
		}
		return &surface{plane: &geom.Plane{Frame: f}}
	}
	return &surface{
		rail0: ref{t: c.copy(s.rail0.t), rev: s.rail0.rev},
		rail1: ref{t: c.copy(s.rail1.t), rev: s.rail1.rev},
	}
}

// copyBuilder copies a shape, optionally through a transform.
type copyBuilder struct {
	result
	src ref
	xf  geom.Transform
}

// NewCopy returns a builder producing an independent copy of h.
func (k *Kernel) NewCopy(h types.Handle) types.Builder {
	return k.newCopyBuilder(h, geom.Identity())
}

// NewTransform returns a builder producing a transformed copy of h.
func (k *Kernel) NewTransform(h types.Handle, t geom.Transform) types.Builder {
	return k.newCopyBuilder(h, t)
}

func (k *Kernel) newCopyBuilder(h types.Handle, t geom.Transform) types.Builder {
	src, err := k.refOf(h)
	if err != nil {
		return &failedBuilder{result: newResult(k), cause: err}
	}
	return &copyBuilder{result: newResult(k), src: src, xf: t}
}

func (b *copyBuilder) Build() error {
	if !b.begin() {
		return b.err
	}
	if b.xf.Determinant() == 0 {
		return b.fail(types.Kernelf("transformation is singular"))
	}
	c := newCopier(b.k, b.xf)
	out := c.copy(b.src.t)
	for old, n := range c.memo {
		b.modified[old] = []ref{{t: n}}
	}
	return b.finish(ref{t: out, rev: b.src.rev})
}

package poly

import (
	"github.com/joshuapare/brepkit/pkg/types"
)

// filletBuilder validates fillet requests. Rounding itself needs surface
// blending, which this kernel does not provide, so Build always fails once
// the requests are valid.
type filletBuilder struct {
	result
	src     ref
	radius  map[*tshape]float64
	order   []*tshape
	setup   error
	invalid error
}

// NewFillet returns a builder rounding edges of h.
func (k *Kernel) NewFillet(h types.Handle) types.FilletBuilder {
	b := &filletBuilder{result: newResult(k), radius: make(map[*tshape]float64)}
	src, err := k.refOf(h)
	if err != nil {
		b.setup = err
		return b
	}
	if src.t.kind > types.KindSolid {
		b.setup = types.Kernelf("cannot fillet a %s", src.t.kind)
	}
	b.src = src
	return b
}

func (b *filletBuilder) Add(radius float64, edge types.Handle) error {
	if b.setup != nil {
		return b.setup
	}
	e, err := b.k.refOfKind(edge, types.KindEdge)
	if err != nil {
		return b.reject(err)
	}
	if radius <= 0 {
		return b.reject(types.Kernelf("fillet radius must be positive, got %g", radius))
	}
	if !contains(b.src, e.t) {
		return b.reject(types.Kernelf("edge is not part of the shape"))
	}
	if _, ok := b.radius[e.t]; !ok {
		b.order = append(b.order, e.t)
	}
	b.radius[e.t] = radius
	return nil
}

// reject remembers the first invalid request; Build reports it.
func (b *filletBuilder) reject(err error) error {
	if b.invalid == nil {
		b.invalid = err
	}
	return err
}

func (b *filletBuilder) Build() error {
	if !b.begin() {
		return b.err
	}
	if b.setup != nil {
		return b.fail(b.setup)
	}
	if b.invalid != nil {
		return b.fail(b.invalid)
	}
	if len(b.order) == 0 {
		return b.fail(types.Kernelf("no edges to fillet"))
	}
	return b.fail(types.Kernelf("rounding %d edge(s) requires surface blending, which the %s kernel does not support",
		len(b.order), Name))
}

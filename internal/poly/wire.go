package poly

import (
	"github.com/joshuapare/brepkit/pkg/types"
)

// MakeWire connects edges given in any order. Edges whose end points
// coincide with the growing wire within tolerance are copied onto the
// wire's vertices so that consecutive edges share them.
func (k *Kernel) MakeWire(edges []types.Handle) (types.Handle, error) {
	if len(edges) == 0 {
		return nil, types.Kernelf("wire requires at least one edge")
	}
	refs := make([]ref, 0, len(edges))
	for _, h := range edges {
		r, err := k.refOfKind(h, types.KindEdge)
		if err != nil {
			return nil, err
		}
		refs = append(refs, r)
	}
	w, err := k.chain(refs)
	if err != nil {
		return nil, err
	}
	return k.wrap(ref{t: w}), nil
}

// CombineWires appends the edges of w2 to w1.
func (k *Kernel) CombineWires(w1, w2 types.Handle) (types.Handle, error) {
	r1, err := k.refOfKind(w1, types.KindWire)
	if err != nil {
		return nil, err
	}
	r2, err := k.refOfKind(w2, types.KindWire)
	if err != nil {
		return nil, err
	}
	w, err := k.chain(append(edgesOf(r1), edgesOf(r2)...))
	if err != nil {
		return nil, err
	}
	return k.wrap(ref{t: w}), nil
}

func (k *Kernel) chain(edges []ref) (*tshape, error) {
	pending := append([]ref(nil), edges[1:]...)
	chain := []ref{edges[0]}
	for len(pending) > 0 {
		progressed := false
		for i, e := range pending {
			if r, ok := k.attach(chain[len(chain)-1].end(), e, true); ok {
				chain = append(chain, r)
			} else if r, ok := k.attach(chain[0].start(), e, false); ok {
				chain = append([]ref{r}, chain...)
			} else {
				continue
			}
			pending = append(pending[:i], pending[i+1:]...)
			progressed = true
			break
		}
		if !progressed {
			return nil, types.Kernelf("edges do not form a connected wire")
		}
	}

	// Close the loop when the free ends coincide.
	first, last := chain[0], chain[len(chain)-1]
	if len(chain) > 1 && first.start() != last.end() &&
		first.start().point.IsEqual(last.end().point, tolerance) {
		chain[len(chain)-1] = k.replaceVertex(last, false, first.start())
	}

	w := k.newShape(types.KindWire)
	w.children = chain
	return w, nil
}

// attach orients e so that it continues from v: when after is true e must
// start at v, otherwise it must end at v.
func (k *Kernel) attach(v *tshape, e ref, after bool) (ref, bool) {
	for _, cand := range []ref{e, e.reversed()} {
		var joint *tshape
		if after {
			joint = cand.start()
		} else {
			joint = cand.end()
		}
		if joint == v {
			return cand, true
		}
		if joint.point.IsEqual(v.point, tolerance) {
			return k.replaceVertex(cand, after, v), true
		}
	}
	return ref{}, false
}

// replaceVertex copies an oriented edge with its start (atStart) or end
// vertex replaced by v.
func (k *Kernel) replaceVertex(e ref, atStart bool, v *tshape) ref {
	first, last := e.t.firstVertex(), e.t.lastVertex()
	closed := first == last
	// Map the traversal side onto the natural side of the edge.
	natFirst := atStart != e.rev
	switch {
	case closed:
		first, last = v, v
	case natFirst:
		first = v
	default:
		last = v
	}
	c := k.newShape(types.KindEdge)
	c.curve, c.u0, c.u1 = e.t.curve, e.t.u0, e.t.u1
	c.children = []ref{{t: first}, {t: last, rev: true}}
	c.origin = e.t
	return ref{t: c, rev: e.rev}
}

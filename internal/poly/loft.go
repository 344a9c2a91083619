package poly

import (
	"math"
	"slices"

	"github.com/joshuapare/brepkit/pkg/geom"
	"github.com/joshuapare/brepkit/pkg/types"
)

// loftBuilder joins section wires with ruled faces. Corresponding edges of
// consecutive sections bound one face; closed sections are first aligned
// (same turning sense, nearest start vertex) so that faces do not twist.
type loftBuilder struct {
	result
	solid    bool
	ruled    bool
	tol      float64
	sections []ref
	invalid  error
	sides    map[[2]*tshape]*tshape
}

// NewLoft returns a builder lofting through wires added with AddWire.
func (k *Kernel) NewLoft(isSolid, isRuled bool, tol float64) types.LoftBuilder {
	return &loftBuilder{result: newResult(k), solid: isSolid, ruled: isRuled, tol: tol}
}

func (b *loftBuilder) AddWire(wire types.Handle) error {
	w, err := b.k.refOfKind(wire, types.KindWire)
	if err != nil {
		if b.invalid == nil {
			b.invalid = err
		}
		return err
	}
	b.sections = append(b.sections, w)
	return nil
}

func (b *loftBuilder) Build() error {
	if !b.begin() {
		return b.err
	}
	if b.invalid != nil {
		return b.fail(b.invalid)
	}
	n := len(b.sections)
	if n < 2 {
		return b.fail(types.Kernelf("loft requires at least two sections, got %d", n))
	}
	if !b.ruled && n > 2 {
		return b.fail(types.Kernelf("smooth loft through %d sections is not supported by the %s kernel", n, Name))
	}

	closed := isClosedWire(b.sections[0])
	for _, w := range b.sections[1:] {
		if isClosedWire(w) != closed {
			return b.fail(types.Kernelf("loft sections must be all closed or all open"))
		}
	}
	if b.solid && !closed {
		return b.fail(types.Kernelf("solid loft requires closed sections"))
	}

	secs := make([][]ref, n)
	wires := slices.Clone(b.sections)
	secs[0] = edgesOf(wires[0])
	var normal geom.Vector
	if closed {
		normal = newell(loopPoints(wires[0]))
	}
	for i := 1; i < n; i++ {
		if closed && newell(loopPoints(wires[i])).Dot(normal) < 0 {
			wires[i] = wires[i].reversed()
		}
		secs[i] = edgesOf(wires[i])
		if len(secs[i]) != len(secs[0]) {
			return b.fail(types.Kernelf("loft sections have different edge counts (%d and %d)", len(secs[0]), len(secs[i])))
		}
		if closed {
			secs[i] = alignLoop(secs[i-1], secs[i])
		}
	}

	var rev bool
	var dir geom.Vector
	if closed {
		dir = centroid(loopPoints(wires[n-1])).Sub(centroid(loopPoints(wires[0])))
		rev = normal.Dot(dir) < 0
	}

	b.sides = make(map[[2]*tshape]*tshape)
	shell := b.k.newShape(types.KindShell)
	for i := 0; i+1 < n; i++ {
		for j := range secs[i] {
			f, err := b.face(secs[i][j], secs[i+1][j])
			if err != nil {
				return b.fail(err)
			}
			shell.children = append(shell.children, ref{t: f, rev: rev})
		}
	}
	if !b.solid {
		return b.finish(ref{t: shell})
	}

	first, err := b.cap(wires[0], !rev)
	if err != nil {
		return b.fail(err)
	}
	last, err := b.cap(wires[n-1], rev)
	if err != nil {
		return b.fail(err)
	}
	shell.children = append([]ref{first}, append(shell.children, last)...)
	solid := b.k.newShape(types.KindSolid)
	solid.children = []ref{{t: shell}}
	return b.finish(ref{t: solid})
}

// face builds the ruled face between corresponding section edges.
func (b *loftBuilder) face(a, c ref) (*tshape, error) {
	sEnd, err := b.side(a.end(), c.end())
	if err != nil {
		return nil, err
	}
	sStart, err := b.side(a.start(), c.start())
	if err != nil {
		return nil, err
	}
	w := b.k.newShape(types.KindWire)
	w.children = []ref{a, {t: sEnd}, c.reversed(), {t: sStart, rev: true}}
	f := b.k.newShape(types.KindFace)
	f.children = []ref{{t: w}}
	f.surf = &surface{rail0: a, rail1: c}
	b.generated[a.t] = append(b.generated[a.t], ref{t: f})
	b.generated[c.t] = append(b.generated[c.t], ref{t: f})
	return f, nil
}

func (b *loftBuilder) side(v0, v1 *tshape) (*tshape, error) {
	key := [2]*tshape{v0, v1}
	if s, ok := b.sides[key]; ok {
		return s, nil
	}
	if v0.point.IsEqual(v1.point, math.Max(b.tol, tolerance)) {
		return nil, types.Kernelf("loft sections touch at %v", v0.point)
	}
	s, err := b.k.segment(v0, v1)
	if err != nil {
		return nil, err
	}
	b.sides[key] = s
	b.generated[v0] = append(b.generated[v0], ref{t: s})
	b.generated[v1] = append(b.generated[v1], ref{t: s})
	return s, nil
}

// cap closes the loft with a planar face on a section wire.
func (b *loftBuilder) cap(w ref, rev bool) (ref, error) {
	pl, err := planeOf(loopPoints(w))
	if err != nil {
		return ref{}, types.Kernelf("solid loft requires planar end sections: %v", err)
	}
	f := b.k.newShape(types.KindFace)
	f.children = []ref{w}
	f.surf = &surface{plane: &pl}
	return ref{t: f, rev: rev}, nil
}

// alignLoop rotates a closed section so that its start vertices lie closest
// to those of the previous section.
func alignLoop(prev, cur []ref) []ref {
	best, bestCost := 0, math.Inf(1)
	for k := range cur {
		cost := 0.0
		for j := range prev {
			cost += prev[j].start().point.Distance(cur[(j+k)%len(cur)].start().point)
		}
		if cost < bestCost {
			best, bestCost = k, cost
		}
	}
	return append(slices.Clone(cur[best:]), cur[:best]...)
}

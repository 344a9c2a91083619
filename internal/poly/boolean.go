package poly

import (
	"github.com/joshuapare/brepkit/pkg/types"
)

// booleanBuilder fuses or cuts shapes. Only operands whose bounding boxes
// are apart can be combined: their union is a compound of the operands and
// cutting leaves the arguments unchanged.
type booleanBuilder struct {
	result
	fuse  bool
	args  []ref
	tools []ref
	setup error
}

// NewFuse returns a builder uniting args with tools.
func (k *Kernel) NewFuse(args, tools []types.Handle) types.BooleanBuilder {
	return k.newBoolean(true, args, tools)
}

// NewCut returns a builder removing tools from args.
func (k *Kernel) NewCut(args, tools []types.Handle) types.BooleanBuilder {
	return k.newBoolean(false, args, tools)
}

func (k *Kernel) newBoolean(fuse bool, args, tools []types.Handle) *booleanBuilder {
	b := &booleanBuilder{result: newResult(k), fuse: fuse}
	resolve := func(hs []types.Handle) []ref {
		out := make([]ref, 0, len(hs))
		for _, h := range hs {
			r, err := k.refOf(h)
			if err != nil {
				if b.setup == nil {
					b.setup = err
				}
				continue
			}
			out = append(out, r)
		}
		return out
	}
	b.args = resolve(args)
	b.tools = resolve(tools)
	return b
}

func (b *booleanBuilder) op() string {
	if b.fuse {
		return "fuse"
	}
	return "cut"
}

func (b *booleanBuilder) Build() error {
	if !b.begin() {
		return b.err
	}
	if b.setup != nil {
		return b.fail(b.setup)
	}
	if len(b.args) == 0 || len(b.tools) == 0 {
		return b.fail(types.Kernelf("%s requires at least one argument and one tool", b.op()))
	}
	for _, a := range b.args {
		ba := boundsOf(a)
		for _, t := range b.tools {
			if ba.overlaps(boundsOf(t)) {
				return b.fail(types.Kernelf("%s of overlapping shapes is not supported by the %s kernel", b.op(), Name))
			}
		}
	}

	if !b.fuse {
		for _, t := range b.tools {
			b.markDeleted(t)
		}
		if len(b.args) == 1 {
			return b.finish(b.args[0])
		}
		c := b.k.newShape(types.KindCompound)
		c.children = append(c.children, b.args...)
		return b.finish(ref{t: c})
	}

	c := b.k.newShape(types.KindCompound)
	c.children = append(append(c.children, b.args...), b.tools...)
	return b.finish(ref{t: c})
}

// markDeleted records every sub-shape of a removed tool that is not shared
// with an argument.
func (b *booleanBuilder) markDeleted(t ref) {
	var visit func(t *tshape)
	visit = func(t *tshape) {
		if b.deleted[t] {
			return
		}
		for _, a := range b.args {
			if contains(a, t) {
				return
			}
		}
		b.deleted[t] = true
		for _, c := range t.children {
			visit(c.t)
		}
	}
	visit(t.t)
}

// SectionEdges is always empty: operands never intersect.
func (b *booleanBuilder) SectionEdges() []types.Handle { return nil }

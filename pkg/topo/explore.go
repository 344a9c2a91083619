package topo

import (
	"iter"

	"github.com/joshuapare/brepkit/pkg/types"
)

// Explorer describes a walk over the sub-shape occurrences of one kind.
// Unlike Map it lists a shared sub-shape once per occurrence, each with the
// orientation of that occurrence.
//
// An Explorer is restartable: every call to Cursor, All or Collect starts a
// fresh walk.
type Explorer struct {
	parent base
	find   types.Kind
	ignore types.Kind
}

func (b base) Explore(find, ignore types.Kind) *Explorer {
	return &Explorer{parent: b, find: find, ignore: ignore}
}

// Find returns the kind of the visited shapes.
func (x *Explorer) Find() types.Kind { return x.find }

// Ignore returns the kind whose subtrees are skipped.
func (x *Explorer) Ignore() types.Kind { return x.ignore }

// Cursor starts a new walk.
//
// Example:
//
//	c := solid.Explore(types.KindEdge, types.KindShape).Cursor()
//	for c.Next() {
//	    fmt.Println(c.Shape())
//	}
//	if err := c.Err(); err != nil {
//	    return err
//	}
func (x *Explorer) Cursor() *Cursor {
	if x.parent.IsNull() {
		return &Cursor{err: errNullHandle}
	}
	native, err := x.parent.kernel().Explore(x.parent.h, x.find, x.ignore)
	if err != nil {
		return &Cursor{err: err}
	}
	return &Cursor{native: native}
}

// All iterates over a fresh walk. A failure is yielded once as the last
// pair, with a nil shape.
func (x *Explorer) All() iter.Seq2[Shape, error] {
	return func(yield func(Shape, error) bool) {
		c := x.Cursor()
		for c.Next() {
			if !yield(c.Shape(), nil) {
				return
			}
		}
		if err := c.Err(); err != nil {
			yield(nil, err)
		}
	}
}

// Collect gathers a fresh walk into a slice.
func (x *Explorer) Collect() ([]Shape, error) {
	var out []Shape
	c := x.Cursor()
	for c.Next() {
		out = append(out, c.Shape())
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Cursor is a single forward walk. It is not safe for concurrent use.
type Cursor struct {
	native  types.Explorer
	started bool
	cur     Shape
	err     error
}

// Next advances to the next shape and reports whether there is one.
func (c *Cursor) Next() bool {
	if c.err != nil || c.native == nil {
		return false
	}
	if c.started {
		c.native.Next()
	}
	c.started = true
	if !c.native.More() {
		c.cur = nil
		return false
	}
	s, err := ByHandle(c.native.Current())
	if err != nil {
		c.err = err
		c.cur = nil
		return false
	}
	c.cur = s
	return true
}

// Shape returns the current shape, or nil before the first call to Next or
// after the walk ended.
func (c *Cursor) Shape() Shape { return c.cur }

// Err returns the error that stopped the walk, if any.
func (c *Cursor) Err() error { return c.err }

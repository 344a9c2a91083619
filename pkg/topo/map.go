package topo

import (
	"fmt"
	"iter"

	"github.com/joshuapare/brepkit/pkg/types"
)

// Map is the set of distinct sub-shapes of one kind found in a parent
// shape. Indices are 0-based; negative indices count from the end, so -1 is
// the last shape.
//
// A Map is a snapshot built once; it is safe for concurrent reads as long
// as the kernel's map is.
type Map[S variant] struct {
	kind   types.Kind
	native types.IndexedMap
}

// variant is the element constraint of Map. It cannot be Shape itself, whose
// method set mentions Map.
type variant interface {
	Handle() types.Handle
}

func newMap[S variant](b base, kind types.Kind) (*Map[S], error) {
	if b.IsNull() {
		return nil, errNullHandle
	}
	native, err := b.kernel().MapShapes(b.h, kind)
	if err != nil {
		return nil, err
	}
	Logger().Debug("mapped sub-shapes",
		"parent", b.Kind(), "kind", kind, "size", native.Size(), "extent", native.Extent())
	return &Map[S]{kind: kind, native: native}, nil
}

// Kind returns the kind of the collected shapes.
func (m *Map[S]) Kind() types.Kind { return m.kind }

// Size returns the number of distinct shapes.
func (m *Map[S]) Size() int { return m.native.Size() }

// Extent returns the number of references met while collecting, counting
// shared shapes once per reference. Extent is never less than Size.
func (m *Map[S]) Extent() int { return m.native.Extent() }

// At returns the shape at index i. Negative indices count from the end.
// An index outside [-Size, Size) yields a *types.IndexError.
func (m *Map[S]) At(i int) (S, error) {
	size := m.Size()
	j := i
	if j < 0 {
		j += size
	}
	if j < 0 || j >= size {
		var zero S
		return zero, &types.IndexError{Index: i, Size: size}
	}
	return m.at(j)
}

// FindShape returns the shape at the non-negative index i.
func (m *Map[S]) FindShape(i int) (S, error) {
	if i < 0 || i >= m.Size() {
		var zero S
		return zero, &types.IndexError{Index: i, Size: m.Size()}
	}
	return m.at(i)
}

func (m *Map[S]) at(i int) (S, error) {
	var zero S
	h, err := m.native.FindKey(i + 1)
	if err != nil {
		return zero, err
	}
	s, err := ByHandle(h)
	if err != nil {
		return zero, err
	}
	v, ok := any(s).(S)
	if !ok {
		return zero, mismatch(m.kind, s.Kind())
	}
	return v, nil
}

// FindIndex returns the index of s and true, or 0 and false when s is not
// in the map.
func (m *Map[S]) FindIndex(s Shape) (int, bool) {
	if s == nil || s.IsNull() {
		return 0, false
	}
	i := m.native.FindIndex(s.Handle())
	if i <= 0 {
		return 0, false
	}
	return i - 1, true
}

// Contains reports whether s is in the map.
func (m *Map[S]) Contains(s Shape) bool {
	if s == nil || s.IsNull() {
		return false
	}
	return m.native.Contains(s.Handle())
}

// All iterates over the shapes in index order. If a shape cannot be
// wrapped, iteration ends with a final (zero, err) pair.
func (m *Map[S]) All() iter.Seq2[S, error] {
	return func(yield func(S, error) bool) {
		for i := range m.Size() {
			s, err := m.at(i)
			if err != nil {
				var zero S
				yield(zero, fmt.Errorf("index %d: %w", i, err))
				return
			}
			if !yield(s, nil) {
				return
			}
		}
	}
}

// Slice returns the shapes in index order.
func (m *Map[S]) Slice() ([]S, error) {
	out := make([]S, 0, m.Size())
	for i := range m.Size() {
		s, err := m.at(i)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func (b base) Vertices() (*Map[Vertex], error)          { return newMap[Vertex](b, types.KindVertex) }
func (b base) Edges() (*Map[Edge], error)               { return newMap[Edge](b, types.KindEdge) }
func (b base) Wires() (*Map[Wire], error)               { return newMap[Wire](b, types.KindWire) }
func (b base) Faces() (*Map[Face], error)               { return newMap[Face](b, types.KindFace) }
func (b base) Shells() (*Map[Shell], error)             { return newMap[Shell](b, types.KindShell) }
func (b base) Solids() (*Map[Solid], error)             { return newMap[Solid](b, types.KindSolid) }
func (b base) CompSolids() (*Map[CompSolid], error)     { return newMap[CompSolid](b, types.KindCompSolid) }
func (b base) Compounds() (*Map[Compound], error)       { return newMap[Compound](b, types.KindCompound) }
func (b base) Map(kind types.Kind) (*Map[Shape], error) { return newMap[Shape](b, kind) }

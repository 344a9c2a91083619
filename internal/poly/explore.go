package poly

import (
	"github.com/joshuapare/brepkit/pkg/types"
)

// indexedMap is a 1-based set of distinct sub-shapes.
type indexedMap struct {
	k      *Kernel
	keys   []ref
	index  map[*tshape]int
	extent int
}

// MapShapes collects the distinct sub-shapes of a kind in depth-first
// pre-order. The root itself is included when it has the requested kind.
func (k *Kernel) MapShapes(h types.Handle, kind types.Kind) (types.IndexedMap, error) {
	r, err := k.refOf(h)
	if err != nil {
		return nil, err
	}
	if !kind.IsConcrete() {
		return nil, types.Kernelf("cannot map sub-shapes of kind %s", kind)
	}
	m := &indexedMap{k: k, index: make(map[*tshape]int)}
	var visit func(r ref)
	visit = func(r ref) {
		if r.t.kind == kind {
			m.extent++
			if _, ok := m.index[r.t]; !ok {
				m.keys = append(m.keys, r)
				m.index[r.t] = len(m.keys)
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
	return m, nil
}

func (m *indexedMap) Size() int   { return len(m.keys) }
func (m *indexedMap) Extent() int { return m.extent }

func (m *indexedMap) FindKey(i int) (types.Handle, error) {
	if i < 1 || i > len(m.keys) {
		return nil, types.Kernelf("index %d out of range [1, %d]", i, len(m.keys))
	}
	return m.k.wrap(m.keys[i-1]), nil
}

func (m *indexedMap) FindIndex(h types.Handle) int {
	hh, ok := h.(handle)
	if !ok || hh.t == nil {
		return 0
	}
	return m.index[hh.t]
}

func (m *indexedMap) Contains(h types.Handle) bool {
	return m.FindIndex(h) != 0
}

// explorer walks a precomputed list of occurrences.
type explorer struct {
	k     *Kernel
	items []ref
	pos   int
}

// Explore lists every occurrence of kind find below h, depth first, without
// entering sub-shapes of kind avoid. Kind find is tested before avoid, and
// the root is never avoided. Shared sub-shapes are listed once per
// occurrence with the orientation of that occurrence.
func (k *Kernel) Explore(h types.Handle, find, avoid types.Kind) (types.Explorer, error) {
	r, err := k.refOf(h)
	if err != nil {
		return nil, err
	}
	if !find.IsConcrete() {
		return nil, types.Kernelf("cannot explore sub-shapes of kind %s", find)
	}
	x := &explorer{k: k}
	var visit func(r ref, root bool)
	visit = func(r ref, root bool) {
		switch {
		case r.t.kind == find:
			x.items = append(x.items, r)
		case !root && r.t.kind == avoid:
		case r.t.kind.IsMoreComplex(find):
			for _, c := range r.children() {
				visit(c, false)
			}
		}
	}
	visit(r, true)
	return x, nil
}

func (x *explorer) More() bool { return x.pos < len(x.items) }

func (x *explorer) Current() types.Handle {
	if !x.More() {
		return handle{k: x.k}
	}
	return x.k.wrap(x.items[x.pos])
}

func (x *explorer) Next() {
	if x.More() {
		x.pos++
	}
}

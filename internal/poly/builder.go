package poly

import (
	"cmp"
	"slices"

	"github.com/joshuapare/brepkit/pkg/types"
)

// result holds the outcome and lineage shared by all builders.
type result struct {
	k     *Kernel
	built bool
	done  bool
	err   error
	shape ref

	generated map[*tshape][]ref
	modified  map[*tshape][]ref
	deleted   map[*tshape]bool
}

func newResult(k *Kernel) result {
	return result{
		k:         k,
		generated: make(map[*tshape][]ref),
		modified:  make(map[*tshape][]ref),
		deleted:   make(map[*tshape]bool),
	}
}

// begin reports whether Build should run; a second Build returns the
// outcome of the first.
func (r *result) begin() bool {
	if r.built {
		return false
	}
	r.built = true
	return true
}

func (r *result) fail(err error) error {
	r.done = false
	r.err = err
	return err
}

func (r *result) finish(shape ref) error {
	r.done = true
	r.err = nil
	r.shape = shape
	return nil
}

func (r *result) IsDone() bool { return r.done }

func (r *result) Shape() (types.Handle, error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	return r.k.wrap(r.shape), nil
}

func (r *result) check() error {
	switch {
	case r.done:
		return nil
	case r.err != nil:
		return r.err
	default:
		return types.Kernelf("operation has not been built")
	}
}

// lineage finds the entries of m recorded for t, or for the wire copies of
// t when t is an edge that a wire had to copy.
func lineage(m map[*tshape][]ref, t *tshape) []ref {
	if rs, ok := m[t]; ok {
		return rs
	}
	var out []ref
	for key, rs := range m {
		if key.origin != nil && key.root() == t {
			out = append(out, rs...)
		}
	}
	slices.SortFunc(out, func(a, b ref) int { return cmp.Compare(a.t.id, b.t.id) })
	return out
}

func (r *result) Generated(h types.Handle) []types.Handle {
	hh, ok := h.(handle)
	if !ok || hh.t == nil || !r.done {
		return nil
	}
	return r.k.wrapAll(lineage(r.generated, hh.t))
}

func (r *result) Modified(h types.Handle) []types.Handle {
	hh, ok := h.(handle)
	if !ok || hh.t == nil || !r.done {
		return nil
	}
	rs := lineage(r.modified, hh.t)
	out := make([]ref, len(rs))
	for i, m := range rs {
		out[i] = ref{t: m.t, rev: m.rev != hh.rev}
	}
	return r.k.wrapAll(out)
}

func (r *result) IsDeleted(h types.Handle) bool {
	hh, ok := h.(handle)
	return ok && hh.t != nil && r.done && r.deleted[hh.t]
}

// failedBuilder is returned when a builder cannot even be set up; Build
// reports the setup error.
type failedBuilder struct {
	result
	cause error
}

func (b *failedBuilder) Build() error {
	if b.begin() {
		b.fail(b.cause)
	}
	return b.err
}

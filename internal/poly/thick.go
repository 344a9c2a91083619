package poly

import (
	"github.com/joshuapare/brepkit/pkg/geom"
	"github.com/joshuapare/brepkit/pkg/types"
)

// thickBuilder offsets a face along its normal into a solid.
type thickBuilder struct {
	*prismBuilder
	thickness float64
}

// NewThickSimple returns a builder thickening the face h. A positive
// thickness grows along the face normal.
func (k *Kernel) NewThickSimple(h types.Handle, thickness float64) types.Builder {
	return &thickBuilder{prismBuilder: k.NewPrism(h, geom.Vector{}).(*prismBuilder), thickness: thickness}
}

func (b *thickBuilder) Build() error {
	if b.built {
		return b.err
	}
	if b.src.t.kind != types.KindFace {
		b.built = true
		return b.fail(types.Kernelf("thickening a %s is not supported by the %s kernel", b.src.t.kind, Name))
	}
	if b.thickness == 0 {
		b.built = true
		return b.fail(types.Kernelf("thickness must not be zero"))
	}
	n, err := faceNormal(b.src)
	if err != nil {
		b.built = true
		return b.fail(err)
	}
	b.vec = n.Scaled(b.thickness)
	return b.prismBuilder.Build()
}

// NewThickJoin would hollow h by removing faces and offsetting the rest,
// which needs offset surface intersection. The builder validates its input
// and then fails.
func (k *Kernel) NewThickJoin(h types.Handle, faces []types.Handle, thickness, tol float64) types.Builder {
	src, err := k.refOf(h)
	if err != nil {
		return &failedBuilder{result: newResult(k), cause: err}
	}
	for _, fh := range faces {
		f, err := k.refOfKind(fh, types.KindFace)
		if err != nil {
			return &failedBuilder{result: newResult(k), cause: err}
		}
		if !contains(src, f.t) {
			return &failedBuilder{result: newResult(k), cause: types.Kernelf("face is not part of the shape")}
		}
	}
	return &failedBuilder{
		result: newResult(k),
		cause: types.Kernelf("thick solid with %d removed face(s), thickness %g and tolerance %g is not supported by the %s kernel",
			len(faces), thickness, tol, Name),
	}
}

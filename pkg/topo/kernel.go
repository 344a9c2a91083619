package topo

import (
	"sync/atomic"

	"github.com/joshuapare/brepkit/internal/poly"
	"github.com/joshuapare/brepkit/pkg/types"
)

type kernelHolder struct {
	k types.Kernel
}

var kernelPtr atomic.Pointer[kernelHolder]

func init() {
	kernelPtr.Store(&kernelHolder{k: poly.New()})
}

// SetKernel installs the kernel used to construct new shapes from geometric
// primitives. Operations on existing shapes always use the kernel that
// produced them. Pass nil to restore the built-in reference kernel.
//
// SetKernel is safe for concurrent use, but shapes from different kernels
// cannot be combined.
func SetKernel(k types.Kernel) {
	if k == nil {
		k = poly.New()
	}
	kernelPtr.Store(&kernelHolder{k: k})
	Logger().Debug("kernel installed", "kernel", k.Name())
}

// CurrentKernel returns the kernel used to construct new shapes.
func CurrentKernel() types.Kernel {
	return kernelPtr.Load().k
}

// kernelOf returns the kernel of the first shape, or the current kernel
// when there is none.
func kernelOf(shapes ...Shape) types.Kernel {
	for _, s := range shapes {
		if s != nil && s.Handle() != nil {
			if k := s.Handle().Kernel(); k != nil {
				return k
			}
		}
	}
	return CurrentKernel()
}

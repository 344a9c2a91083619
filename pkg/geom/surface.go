package geom

import (
	"fmt"
	"math"
)

// SurfaceKind identifies the concrete type of a Surface.
type SurfaceKind int

const (
	SurfaceUnknown SurfaceKind = iota
	SurfacePlane
	SurfaceCylindrical
)

func (k SurfaceKind) String() string {
	switch k {
	case SurfacePlane:
		return "Plane"
	case SurfaceCylindrical:
		return "Cylindrical"
	default:
		return fmt.Sprintf("SurfaceKind(%d)", int(k))
	}
}

// Surface is a parametric surface.
type Surface interface {
	Kind() SurfaceKind
	Evaluate(u, v float64) Point
}

// Plane is the XY plane of its frame.
type Plane struct {
	Frame Frame
}

func (p Plane) Kind() SurfaceKind { return SurfacePlane }

func (p Plane) Evaluate(u, v float64) Point {
	return p.Frame.ToGlobal(u, v, 0)
}

// Normal returns the unit normal of the plane.
func (p Plane) Normal() Vector {
	return p.Frame.Z
}

// CylindricalSurface is an infinite cylinder around the Z axis of its frame;
// u is the angle from the X axis and v the height along Z.
type CylindricalSurface struct {
	Frame  Frame
	Radius float64
}

// NewCylindricalSurface returns the cylinder of radius r around frame's Z axis.
func NewCylindricalSurface(frame Frame, r float64) (CylindricalSurface, error) {
	if r <= 0 {
		return CylindricalSurface{}, fmt.Errorf("%w: cylinder radius %g", ErrDegenerate, r)
	}
	return CylindricalSurface{Frame: frame, Radius: r}, nil
}

func (c CylindricalSurface) Kind() SurfaceKind { return SurfaceCylindrical }

func (c CylindricalSurface) Evaluate(u, v float64) Point {
	return c.Frame.ToGlobal(c.Radius*math.Cos(u), c.Radius*math.Sin(u), v)
}

package geom

import (
	"fmt"
	"math"
)

// CurveKind identifies the concrete type of a Curve.
type CurveKind int

const (
	CurveUnknown CurveKind = iota
	CurveLine
	CurveCircle
	CurveTrimmed
	CurveOnSurface
	CurveTransformed
)

func (k CurveKind) String() string {
	switch k {
	case CurveLine:
		return "Line"
	case CurveCircle:
		return "Circle"
	case CurveTrimmed:
		return "Trimmed"
	case CurveOnSurface:
		return "OnSurface"
	case CurveTransformed:
		return "Transformed"
	default:
		return fmt.Sprintf("CurveKind(%d)", int(k))
	}
}

// Curve is a parametric 3D curve.
type Curve interface {
	Kind() CurveKind
	Evaluate(u float64) Point
	FirstParameter() float64
	LastParameter() float64
	IsClosed() bool
	IsPeriodic() bool
}

// IsBounded reports whether both parameter bounds of c are finite.
func IsBounded(c Curve) bool {
	return !math.IsInf(c.FirstParameter(), 0) && !math.IsInf(c.LastParameter(), 0)
}

// Line is an infinite straight line parametrized by arc length.
type Line struct {
	Origin    Point
	Direction Vector // unit length
}

// LineByPoints returns the line through p1 and p2; u=0 at p1 and u=|p2-p1|
// at p2.
func LineByPoints(p1, p2 Point) (Line, error) {
	d, err := p2.Sub(p1).Normalized()
	if err != nil {
		return Line{}, fmt.Errorf("%w: line through coincident points %v", ErrDegenerate, p1)
	}
	return Line{Origin: p1, Direction: d}, nil
}

func (l Line) Kind() CurveKind           { return CurveLine }
func (l Line) Evaluate(u float64) Point  { return l.Origin.Add(l.Direction.Scaled(u)) }
func (l Line) FirstParameter() float64   { return math.Inf(-1) }
func (l Line) LastParameter() float64    { return math.Inf(1) }
func (l Line) IsClosed() bool            { return false }
func (l Line) IsPeriodic() bool          { return false }
func (l Line) Parameter(p Point) float64 { return p.Sub(l.Origin).Dot(l.Direction) }

// Circle is a full circle in the XY plane of its frame, parametrized by angle
// from the frame's X axis.
type Circle struct {
	Frame  Frame
	Radius float64
}

// CircleByRadius returns the circle of radius r centred at the frame origin.
func CircleByRadius(frame Frame, r float64) (Circle, error) {
	if r <= 0 {
		return Circle{}, fmt.Errorf("%w: circle radius %g", ErrDegenerate, r)
	}
	return Circle{Frame: frame, Radius: r}, nil
}

// CircleByPoints returns the circle through three points. The X axis of the
// circle's frame points at p1 and the circle runs from p1 through p2 to p3.
func CircleByPoints(p1, p2, p3 Point) (Circle, error) {
	a := p2.Sub(p1)
	b := p3.Sub(p1)
	n := a.Cross(b)
	nn := n.Dot(n)
	if math.Sqrt(nn) <= Resolution {
		return Circle{}, fmt.Errorf("%w: circle through collinear points", ErrDegenerate)
	}
	// Circumcentre relative to p1.
	rel := b.Cross(n).Scaled(a.Dot(a)).Add(n.Cross(a).Scaled(b.Dot(b))).Scaled(1 / (2 * nn))
	center := p1.Add(rel)
	frame, err := FrameByAxes(center, n, p1.Sub(center))
	if err != nil {
		return Circle{}, err
	}
	return Circle{Frame: frame, Radius: rel.Magnitude()}, nil
}

func (c Circle) Kind() CurveKind { return CurveCircle }

func (c Circle) Evaluate(u float64) Point {
	return c.Frame.Origin.
		Add(c.Frame.X.Scaled(c.Radius * math.Cos(u))).
		Add(c.Frame.Y.Scaled(c.Radius * math.Sin(u)))
}

func (c Circle) FirstParameter() float64 { return 0 }
func (c Circle) LastParameter() float64  { return 2 * math.Pi }
func (c Circle) IsClosed() bool          { return true }
func (c Circle) IsPeriodic() bool        { return true }

// Parameter returns the angle of the projection of p onto the circle plane,
// in [0, 2π).
func (c Circle) Parameter(p Point) float64 {
	d := p.Sub(c.Frame.Origin)
	u := math.Atan2(d.Dot(c.Frame.Y), d.Dot(c.Frame.X))
	if u < 0 {
		u += 2 * math.Pi
	}
	return u
}

// TrimmedCurve restricts a basis curve to [U0, U1].
type TrimmedCurve struct {
	Basis  Curve
	U0, U1 float64
}

// Trim returns c restricted to [u0, u1]. For periodic curves u1 may exceed
// the basis period; otherwise both bounds must lie in the basis range.
func Trim(c Curve, u0, u1 float64) (TrimmedCurve, error) {
	if u1-u0 <= Resolution {
		return TrimmedCurve{}, fmt.Errorf("%w: empty trim range [%g, %g]", ErrDegenerate, u0, u1)
	}
	if !c.IsPeriodic() && (u0 < c.FirstParameter() || u1 > c.LastParameter()) {
		return TrimmedCurve{}, fmt.Errorf("%w: trim range [%g, %g] outside curve", ErrDegenerate, u0, u1)
	}
	if t, ok := c.(TrimmedCurve); ok {
		c = t.Basis
	}
	return TrimmedCurve{Basis: c, U0: u0, U1: u1}, nil
}

// Segment returns the straight segment from p1 to p2.
func Segment(p1, p2 Point) (TrimmedCurve, error) {
	l, err := LineByPoints(p1, p2)
	if err != nil {
		return TrimmedCurve{}, err
	}
	return Trim(l, 0, p1.Distance(p2))
}

// CircularArc returns the arc of the circle through p1, p2 and p3 that starts
// at p1, passes p2 and ends at p3.
func CircularArc(p1, p2, p3 Point) (TrimmedCurve, error) {
	c, err := CircleByPoints(p1, p2, p3)
	if err != nil {
		return TrimmedCurve{}, err
	}
	return Trim(c, 0, c.Parameter(p3))
}

func (t TrimmedCurve) Kind() CurveKind          { return CurveTrimmed }
func (t TrimmedCurve) Evaluate(u float64) Point { return t.Basis.Evaluate(u) }
func (t TrimmedCurve) FirstParameter() float64  { return t.U0 }
func (t TrimmedCurve) LastParameter() float64   { return t.U1 }
func (t TrimmedCurve) IsPeriodic() bool         { return false }

func (t TrimmedCurve) IsClosed() bool {
	return t.Evaluate(t.U0).IsEqual(t.Evaluate(t.U1), Resolution)
}

// SurfaceCurve is a 2D curve in the parametric space of a surface, evaluated
// in 3D through the surface.
type SurfaceCurve struct {
	Curve2D Curve2D
	Surface Surface
}

// OnSurface maps a 2D parametric curve onto a surface.
func OnSurface(c Curve2D, s Surface) SurfaceCurve {
	return SurfaceCurve{Curve2D: c, Surface: s}
}

func (c SurfaceCurve) Kind() CurveKind { return CurveOnSurface }

func (c SurfaceCurve) Evaluate(u float64) Point {
	p := c.Curve2D.Evaluate(u)
	return c.Surface.Evaluate(p.X, p.Y)
}

func (c SurfaceCurve) FirstParameter() float64 { return c.Curve2D.FirstParameter() }
func (c SurfaceCurve) LastParameter() float64  { return c.Curve2D.LastParameter() }
func (c SurfaceCurve) IsPeriodic() bool        { return c.Curve2D.IsPeriodic() }

func (c SurfaceCurve) IsClosed() bool {
	if !IsBounded(c) {
		return false
	}
	return c.Evaluate(c.FirstParameter()).IsEqual(c.Evaluate(c.LastParameter()), Resolution)
}

// TransformedCurve is a basis curve moved by an affine transform.
type TransformedCurve struct {
	Basis     Curve
	Transform Transform
}

func (c TransformedCurve) Kind() CurveKind { return CurveTransformed }

func (c TransformedCurve) Evaluate(u float64) Point {
	return c.Transform.ApplyPoint(c.Basis.Evaluate(u))
}

func (c TransformedCurve) FirstParameter() float64 { return c.Basis.FirstParameter() }
func (c TransformedCurve) LastParameter() float64  { return c.Basis.LastParameter() }
func (c TransformedCurve) IsClosed() bool          { return c.Basis.IsClosed() }
func (c TransformedCurve) IsPeriodic() bool        { return c.Basis.IsPeriodic() }

// ApplyCurve maps a curve. Lines, circles and trimmed curves keep their
// analytic type; other curves are wrapped.
func (t Transform) ApplyCurve(c Curve) Curve {
	switch c := c.(type) {
	case Line:
		return Line{Origin: t.ApplyPoint(c.Origin), Direction: t.ApplyVector(c.Direction)}
	case Circle:
		return Circle{Frame: t.ApplyFrame(c.Frame), Radius: c.Radius}
	case TrimmedCurve:
		return TrimmedCurve{Basis: t.ApplyCurve(c.Basis), U0: c.U0, U1: c.U1}
	case TransformedCurve:
		return TransformedCurve{Basis: c.Basis, Transform: c.Transform.Then(t)}
	default:
		return TransformedCurve{Basis: c, Transform: t}
	}
}

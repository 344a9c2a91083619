package geom

import (
	"fmt"
	"math"
)

// Curve2DKind identifies the concrete type of a Curve2D.
type Curve2DKind int

const (
	Curve2DUnknown Curve2DKind = iota
	Curve2DLine
	Curve2DEllipse
	Curve2DTrimmed
)

func (k Curve2DKind) String() string {
	switch k {
	case Curve2DLine:
		return "Line2D"
	case Curve2DEllipse:
		return "Ellipse2D"
	case Curve2DTrimmed:
		return "Trimmed2D"
	default:
		return fmt.Sprintf("Curve2DKind(%d)", int(k))
	}
}

// Curve2D is a parametric curve in a 2D parametric space.
type Curve2D interface {
	Kind() Curve2DKind
	Evaluate(u float64) Point2D
	FirstParameter() float64
	LastParameter() float64
	IsPeriodic() bool
}

// Line2D is an infinite 2D line parametrized by arc length.
type Line2D struct {
	Origin    Point2D
	Direction Vector2D // unit length
}

// Line2DByPoints returns the line through p1 and p2.
func Line2DByPoints(p1, p2 Point2D) (Line2D, error) {
	d, err := p2.Sub(p1).Normalized()
	if err != nil {
		return Line2D{}, fmt.Errorf("%w: line through coincident points", ErrDegenerate)
	}
	return Line2D{Origin: p1, Direction: d}, nil
}

func (l Line2D) Kind() Curve2DKind          { return Curve2DLine }
func (l Line2D) Evaluate(u float64) Point2D { return l.Origin.Add(l.Direction.Scaled(u)) }
func (l Line2D) FirstParameter() float64    { return math.Inf(-1) }
func (l Line2D) LastParameter() float64     { return math.Inf(1) }
func (l Line2D) IsPeriodic() bool           { return false }

// Ellipse2D is a full ellipse centred at its frame origin with the major
// axis along the frame's X axis.
type Ellipse2D struct {
	Frame       Frame2D
	MajorRadius float64
	MinorRadius float64
}

// Ellipse2DByRadii returns the ellipse with the given radii.
func Ellipse2DByRadii(frame Frame2D, rmajor, rminor float64) (Ellipse2D, error) {
	if rminor <= 0 || rmajor < rminor {
		return Ellipse2D{}, fmt.Errorf("%w: ellipse radii %g, %g", ErrDegenerate, rmajor, rminor)
	}
	return Ellipse2D{Frame: frame, MajorRadius: rmajor, MinorRadius: rminor}, nil
}

func (e Ellipse2D) Kind() Curve2DKind { return Curve2DEllipse }

func (e Ellipse2D) Evaluate(u float64) Point2D {
	return e.Frame.ToGlobal(e.MajorRadius*math.Cos(u), e.MinorRadius*math.Sin(u))
}

func (e Ellipse2D) FirstParameter() float64 { return 0 }
func (e Ellipse2D) LastParameter() float64  { return 2 * math.Pi }
func (e Ellipse2D) IsPeriodic() bool        { return true }

// TrimmedCurve2D restricts a 2D basis curve to [U0, U1].
type TrimmedCurve2D struct {
	Basis  Curve2D
	U0, U1 float64
}

// Trim2D returns c restricted to [u0, u1].
func Trim2D(c Curve2D, u0, u1 float64) (TrimmedCurve2D, error) {
	if u1-u0 <= Resolution {
		return TrimmedCurve2D{}, fmt.Errorf("%w: empty trim range [%g, %g]", ErrDegenerate, u0, u1)
	}
	if !c.IsPeriodic() && (u0 < c.FirstParameter() || u1 > c.LastParameter()) {
		return TrimmedCurve2D{}, fmt.Errorf("%w: trim range [%g, %g] outside curve", ErrDegenerate, u0, u1)
	}
	if t, ok := c.(TrimmedCurve2D); ok {
		c = t.Basis
	}
	return TrimmedCurve2D{Basis: c, U0: u0, U1: u1}, nil
}

// Segment2D returns the straight segment from p1 to p2.
func Segment2D(p1, p2 Point2D) (TrimmedCurve2D, error) {
	l, err := Line2DByPoints(p1, p2)
	if err != nil {
		return TrimmedCurve2D{}, err
	}
	return Trim2D(l, 0, p2.Sub(p1).Magnitude())
}

func (t TrimmedCurve2D) Kind() Curve2DKind          { return Curve2DTrimmed }
func (t TrimmedCurve2D) Evaluate(u float64) Point2D { return t.Basis.Evaluate(u) }
func (t TrimmedCurve2D) FirstParameter() float64    { return t.U0 }
func (t TrimmedCurve2D) LastParameter() float64     { return t.U1 }
func (t TrimmedCurve2D) IsPeriodic() bool           { return false }

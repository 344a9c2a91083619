package geom

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegenerate is returned when a primitive cannot be built from its inputs,
// e.g. a circle through collinear points or a direction of zero length.
var ErrDegenerate = errors.New("geom: degenerate input")

// Resolution is the distance below which two points are considered coincident.
const Resolution = 1e-7

// Point is a position in 3D space.
type Point struct {
	X, Y, Z float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

// Add returns the point displaced by v.
func (p Point) Add(v Vector) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y, Z: p.Z + v.Z}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Vector {
	return Vector{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Magnitude()
}

// IsEqual reports whether p and q are closer than tol.
func (p Point) IsEqual(q Point, tol float64) bool {
	return p.Distance(q) <= tol
}

// Lerp performs linear interpolation between two points.
// t=0 returns p, t=1 returns q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
		Z: p.Z + (q.Z-p.Z)*t,
	}
}

// Vector returns the position vector of p.
func (p Point) Vector() Vector {
	return Vector{X: p.X, Y: p.Y, Z: p.Z}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}

// Vector is a displacement in 3D space.
type Vector struct {
	X, Y, Z float64
}

// Vec is a convenience function to create a Vector.
func Vec(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z}
}

// Standard basis vectors.
var (
	XDir = Vector{X: 1}
	YDir = Vector{Y: 1}
	ZDir = Vector{Z: 1}
)

// Add returns the sum of two vectors.
func (v Vector) Add(w Vector) Vector {
	return Vector{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z}
}

// Sub returns the difference of two vectors.
func (v Vector) Sub(w Vector) Vector {
	return Vector{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z}
}

// Scaled returns the vector multiplied by s.
func (v Vector) Scaled(s float64) Vector {
	return Vector{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Neg returns the opposite vector.
func (v Vector) Neg() Vector {
	return Vector{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// Dot returns the dot product of two vectors.
func (v Vector) Dot(w Vector) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the cross product v × w.
func (v Vector) Cross(w Vector) Vector {
	return Vector{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// Magnitude returns the length of the vector.
func (v Vector) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns a unit vector in the same direction.
// A vector shorter than Resolution cannot be normalized.
func (v Vector) Normalized() (Vector, error) {
	m := v.Magnitude()
	if m <= Resolution {
		return Vector{}, fmt.Errorf("%w: cannot normalize %v", ErrDegenerate, v)
	}
	return v.Scaled(1 / m), nil
}

// IsParallel reports whether v and w are parallel (or anti-parallel) within
// the angular tolerance tol.
func (v Vector) IsParallel(w Vector, tol float64) bool {
	m := v.Magnitude() * w.Magnitude()
	if m == 0 {
		return false
	}
	return v.Cross(w).Magnitude()/m <= tol
}

// Perpendicular returns some unit vector orthogonal to v.
func (v Vector) Perpendicular() Vector {
	ref := XDir
	if math.Abs(v.X) > math.Abs(v.Y) && math.Abs(v.X) > math.Abs(v.Z) {
		ref = YDir
	}
	p, err := v.Cross(ref).Normalized()
	if err != nil {
		return ZDir
	}
	return p
}

func (v Vector) String() string {
	return fmt.Sprintf("<%g, %g, %g>", v.X, v.Y, v.Z)
}

// Point2D is a position in a 2D parametric space.
type Point2D struct {
	X, Y float64
}

// Pt2 is a convenience function to create a Point2D.
func Pt2(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Add returns the point displaced by v.
func (p Point2D) Add(v Vector2D) Point2D {
	return Point2D{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub returns the vector from q to p.
func (p Point2D) Sub(q Point2D) Vector2D {
	return Vector2D{X: p.X - q.X, Y: p.Y - q.Y}
}

// Vector2D is a displacement in a 2D parametric space.
type Vector2D struct {
	X, Y float64
}

// Vec2 is a convenience function to create a Vector2D.
func Vec2(x, y float64) Vector2D {
	return Vector2D{X: x, Y: y}
}

// Scaled returns the vector multiplied by s.
func (v Vector2D) Scaled(s float64) Vector2D {
	return Vector2D{X: v.X * s, Y: v.Y * s}
}

// Magnitude returns the length of the vector.
func (v Vector2D) Magnitude() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalized returns a unit vector in the same direction.
func (v Vector2D) Normalized() (Vector2D, error) {
	m := v.Magnitude()
	if m <= Resolution {
		return Vector2D{}, fmt.Errorf("%w: cannot normalize %v", ErrDegenerate, v)
	}
	return v.Scaled(1 / m), nil
}

// Perp returns v rotated by +90 degrees.
func (v Vector2D) Perp() Vector2D {
	return Vector2D{X: -v.Y, Y: v.X}
}

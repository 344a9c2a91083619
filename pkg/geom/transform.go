package geom

import "math"

// Transform is an affine transformation of 3D space: a 3x3 linear part M
// followed by a translation T, so that p' = M·p + T.
type Transform struct {
	M [3][3]float64
	T Vector
}

// Identity returns the identity transformation.
func Identity() Transform {
	return Transform{M: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
}

// Translation returns a translation by v.
func Translation(v Vector) Transform {
	t := Identity()
	t.T = v
	return t
}

// Mirror returns the reflection through the plane passing through origin
// with the given normal.
func Mirror(origin Point, normal Vector) (Transform, error) {
	n, err := normal.Normalized()
	if err != nil {
		return Transform{}, err
	}
	n3 := [3]float64{n.X, n.Y, n.Z}
	var t Transform
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t.M[i][j] = -2 * n3[i] * n3[j]
		}
		t.M[i][i]++
	}
	// Fixed point: origin maps onto itself.
	o := origin.Vector()
	t.T = o.Sub(t.applyLinear(o))
	return t, nil
}

// Rotation returns the rotation by angle around the axis through axisOrigin
// with direction axisDir (right-hand rule).
func Rotation(axisOrigin Point, axisDir Vector, angle float64) (Transform, error) {
	a, err := axisDir.Normalized()
	if err != nil {
		return Transform{}, err
	}
	c, s := math.Cos(angle), math.Sin(angle)
	k := 1 - c
	var t Transform
	t.M = [3][3]float64{
		{c + a.X*a.X*k, a.X*a.Y*k - a.Z*s, a.X*a.Z*k + a.Y*s},
		{a.Y*a.X*k + a.Z*s, c + a.Y*a.Y*k, a.Y*a.Z*k - a.X*s},
		{a.Z*a.X*k - a.Y*s, a.Z*a.Y*k + a.X*s, c + a.Z*a.Z*k},
	}
	o := axisOrigin.Vector()
	t.T = o.Sub(t.applyLinear(o))
	return t, nil
}

func (t Transform) applyLinear(v Vector) Vector {
	return Vector{
		X: t.M[0][0]*v.X + t.M[0][1]*v.Y + t.M[0][2]*v.Z,
		Y: t.M[1][0]*v.X + t.M[1][1]*v.Y + t.M[1][2]*v.Z,
		Z: t.M[2][0]*v.X + t.M[2][1]*v.Y + t.M[2][2]*v.Z,
	}
}

// ApplyPoint maps a point.
func (t Transform) ApplyPoint(p Point) Point {
	v := t.applyLinear(p.Vector()).Add(t.T)
	return Point{X: v.X, Y: v.Y, Z: v.Z}
}

// ApplyVector maps a vector (translation does not apply).
func (t Transform) ApplyVector(v Vector) Vector {
	return t.applyLinear(v)
}

// ApplyFrame maps all parts of a frame. The result keeps the mapped X and Y
// axes, so it is left-handed when t is negative.
func (t Transform) ApplyFrame(f Frame) Frame {
	return Frame{
		Origin: t.ApplyPoint(f.Origin),
		X:      t.ApplyVector(f.X),
		Y:      t.ApplyVector(f.Y),
		Z:      t.ApplyVector(f.Z),
	}
}

// Then returns the transformation that applies t first and then u.
func (t Transform) Then(u Transform) Transform {
	var r Transform
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				r.M[i][j] += u.M[i][k] * t.M[k][j]
			}
		}
	}
	r.T = u.applyLinear(t.T).Add(u.T)
	return r
}

// Determinant returns the determinant of the linear part.
func (t Transform) Determinant() float64 {
	m := t.M
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// IsNegative reports whether t flips handedness (e.g. a mirror).
func (t Transform) IsNegative() bool {
	return t.Determinant() < 0
}

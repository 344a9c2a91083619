package geom

import "fmt"

// Frame is a coordinate system in 3D space.
type Frame struct {
	Origin  Point
	X, Y, Z Vector
}

// FrameByOrigin returns a frame at origin with the standard orientation.
func FrameByOrigin(origin Point) Frame {
	return Frame{Origin: origin, X: XDir, Y: YDir, Z: ZDir}
}

// FrameByAxes returns a right-handed frame at origin with main direction z.
// xref only has to be non-parallel to z; it is projected onto the plane
// normal to z to obtain the X direction.
func FrameByAxes(origin Point, z, xref Vector) (Frame, error) {
	zn, err := z.Normalized()
	if err != nil {
		return Frame{}, err
	}
	x := xref.Sub(zn.Scaled(xref.Dot(zn)))
	xn, err := x.Normalized()
	if err != nil {
		return Frame{}, fmt.Errorf("%w: x reference %v is parallel to %v", ErrDegenerate, xref, z)
	}
	return Frame{Origin: origin, X: xn, Y: zn.Cross(xn), Z: zn}, nil
}

// XDirection returns the X axis of the frame.
func (f Frame) XDirection() Vector { return f.X }

// YDirection returns the Y axis of the frame.
func (f Frame) YDirection() Vector { return f.Y }

// ZDirection returns the Z axis of the frame.
func (f Frame) ZDirection() Vector { return f.Z }

// ToGlobal maps local coordinates (u, v, w) to a global point.
func (f Frame) ToGlobal(u, v, w float64) Point {
	return f.Origin.Add(f.X.Scaled(u)).Add(f.Y.Scaled(v)).Add(f.Z.Scaled(w))
}

// Frame2D is a coordinate system in a 2D parametric space.
type Frame2D struct {
	Origin Point2D
	X, Y   Vector2D
}

// Frame2DByOrigin returns a 2D frame at origin with the standard orientation.
func Frame2DByOrigin(origin Point2D) Frame2D {
	return Frame2D{Origin: origin, X: Vector2D{X: 1}, Y: Vector2D{Y: 1}}
}

// Frame2DByVector returns a direct 2D frame at origin whose X axis points
// along xdir.
func Frame2DByVector(origin Point2D, xdir Vector2D) (Frame2D, error) {
	x, err := xdir.Normalized()
	if err != nil {
		return Frame2D{}, err
	}
	return Frame2D{Origin: origin, X: x, Y: x.Perp()}, nil
}

// XDirection returns the X axis of the frame.
func (f Frame2D) XDirection() Vector2D { return f.X }

// YDirection returns the Y axis of the frame.
func (f Frame2D) YDirection() Vector2D { return f.Y }

// ToGlobal maps local coordinates (u, v) to a point of the parametric space.
func (f Frame2D) ToGlobal(u, v float64) Point2D {
	return f.Origin.Add(f.X.Scaled(u)).Add(f.Y.Scaled(v))
}

package poly

import (
	"math"

	"github.com/joshuapare/brepkit/pkg/geom"
	"github.com/joshuapare/brepkit/pkg/types"
)

// planarity is the relative distance tolerance for planar wires.
const planarity = 1e-6

// surface is the geometry of a face: a plane, or a ruled surface between
// two rail edges. Ruled faces are bounded by a four-edge wire
// (rail0, side1, rail1 reversed, side0 reversed) and their natural normal
// is ∂s × ∂t.
type surface struct {
	plane *geom.Plane
	rail0 ref
	rail1 ref
}

func (s *surface) ruled() bool { return s.plane == nil }

// at evaluates a ruled surface.
func (s *surface) at(u, v float64) geom.Point {
	return s.rail0.at(u).Lerp(s.rail1.at(u), v)
}

// MakeFace builds a planar face bounded by a closed wire.
func (k *Kernel) MakeFace(wire types.Handle, planarOnly bool) (types.Handle, error) {
	w, err := k.refOfKind(wire, types.KindWire)
	if err != nil {
		return nil, err
	}
	if !isClosedWire(w) {
		return nil, types.Kernelf("face requires a closed wire")
	}
	pl, err := planeOf(loopPoints(w))
	if err != nil {
		if !planarOnly {
			return nil, types.Kernelf("non-planar faces are not supported by the %s kernel: %v", Name, err)
		}
		return nil, err
	}
	f := k.newShape(types.KindFace)
	f.children = []ref{w}
	f.surf = &surface{plane: &pl}
	return k.wrap(ref{t: f}), nil
}

// newell returns the Newell normal of a polygon. Its magnitude is twice the
// polygon area and it points along the right-hand rule of the traversal.
func newell(pts []geom.Point) geom.Vector {
	var n geom.Vector
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		n.X += (p.Y - q.Y) * (p.Z + q.Z)
		n.Y += (p.Z - q.Z) * (p.X + q.X)
		n.Z += (p.X - q.X) * (p.Y + q.Y)
	}
	return n
}

func centroid(pts []geom.Point) geom.Point {
	var c geom.Vector
	for _, p := range pts {
		c = c.Add(p.Vector())
	}
	c = c.Scaled(1 / float64(len(pts)))
	return geom.Pt(c.X, c.Y, c.Z)
}

// planeOf fits the plane of a closed polygon, oriented by its traversal.
func planeOf(pts []geom.Point) (geom.Plane, error) {
	if len(pts) < 3 {
		return geom.Plane{}, types.Kernelf("wire encloses no area")
	}
	n, err := newell(pts).Normalized()
	if err != nil {
		return geom.Plane{}, types.Kernelf("wire encloses no area")
	}
	c := centroid(pts)
	size := 0.0
	for _, p := range pts {
		size = math.Max(size, p.Distance(c))
	}
	for _, p := range pts {
		if math.Abs(p.Sub(c).Dot(n)) > planarity*math.Max(1, size) {
			return geom.Plane{}, types.Kernelf("wire is not planar")
		}
	}
	xref := pts[0].Sub(c)
	if xref.Cross(n).Magnitude() <= tolerance {
		xref = n.Perpendicular()
	}
	frame, err := geom.FrameByAxes(c, n, xref)
	if err != nil {
		return geom.Plane{}, types.Kernelf("wire encloses no area")
	}
	return geom.Plane{Frame: frame}, nil
}

// outerWire returns the first wire of a face with the face orientation.
func outerWire(f ref) ref {
	return f.children()[0]
}

// faceNormal is the unit normal of a face, following its orientation.
func faceNormal(f ref) (geom.Vector, error) {
	var n geom.Vector
	if f.t.surf.plane != nil {
		n = f.t.surf.plane.Normal()
	} else {
		n = newell(loopPoints(f.t.children[0]))
	}
	n, err := n.Normalized()
	if err != nil {
		return geom.Vector{}, types.Kernelf("face has no defined normal")
	}
	if f.rev {
		n = n.Neg()
	}
	return n, nil
}

// Package primitives builds common solids from sizes and keeps their named
// faces.
package primitives

import (
	"fmt"

	"github.com/joshuapare/brepkit/pkg/geom"
	"github.com/joshuapare/brepkit/pkg/topo"
)

// Cylinder is a right circular cylinder.
type Cylinder struct {
	Solid       topo.Solid
	BottomFace  topo.Face
	TopFace     topo.Face
	LateralFace topo.Face
}

// CylinderBySize builds a cylinder whose base circle lies in the XY plane of
// frame, extruded along the frame's Z direction.
func CylinderBySize(radius, height float64, frame geom.Frame) (*Cylinder, error) {
	if height <= 0 {
		return nil, fmt.Errorf("%w: cylinder height %g", geom.ErrDegenerate, height)
	}
	circle, err := geom.CircleByRadius(frame, radius)
	if err != nil {
		return nil, err
	}
	edge, err := topo.EdgeByCurve(circle)
	if err != nil {
		return nil, err
	}
	wire, err := topo.WireByEdge(edge)
	if err != nil {
		return nil, err
	}
	bottom, err := topo.FaceByWire(wire)
	if err != nil {
		return nil, err
	}

	x := topo.NewExtrudeShape(bottom, frame.ZDirection().Scaled(height))
	s, err := x.Shape()
	if err != nil {
		return nil, fmt.Errorf("cylinder: %w", err)
	}
	solid, err := topo.As[topo.Solid](s)
	if err != nil {
		return nil, err
	}
	last, err := x.LastShape()
	if err != nil {
		return nil, err
	}
	top, err := topo.As[topo.Face](last)
	if err != nil {
		return nil, err
	}
	wireEdges, err := wire.Edges()
	if err != nil {
		return nil, err
	}
	seam, err := wireEdges.At(0)
	if err != nil {
		return nil, err
	}
	gen, err := x.GeneratedShapes(seam)
	if err != nil {
		return nil, err
	}
	if len(gen) == 0 {
		return nil, fmt.Errorf("cylinder: extrusion generated no lateral face")
	}
	lateral, err := topo.As[topo.Face](gen[0])
	if err != nil {
		return nil, err
	}
	return &Cylinder{Solid: solid, BottomFace: bottom, TopFace: top, LateralFace: lateral}, nil
}

// Box is an axis-aligned rectangular block.
type Box struct {
	Solid  topo.Solid
	Bottom topo.Face
	Top    topo.Face
}

// BoxBySize builds a box with one corner at origin and the given extents
// along X, Y and Z.
func BoxBySize(dx, dy, dz float64, origin geom.Point) (*Box, error) {
	if dx <= 0 || dy <= 0 || dz <= 0 {
		return nil, fmt.Errorf("%w: box size %gx%gx%g", geom.ErrDegenerate, dx, dy, dz)
	}
	corners := []geom.Point{
		origin,
		origin.Add(geom.Vec(dx, 0, 0)),
		origin.Add(geom.Vec(dx, dy, 0)),
		origin.Add(geom.Vec(0, dy, 0)),
	}
	edges := make([]topo.Edge, len(corners))
	for i, p := range corners {
		e, err := topo.EdgeByPoints(p, corners[(i+1)%len(corners)])
		if err != nil {
			return nil, err
		}
		edges[i] = e
	}
	wire, err := topo.WireByEdges(edges)
	if err != nil {
		return nil, err
	}
	bottom, err := topo.FaceByWire(wire)
	if err != nil {
		return nil, err
	}

	x := topo.NewExtrudeShape(bottom, geom.Vec(0, 0, dz))
	s, err := x.Shape()
	if err != nil {
		return nil, fmt.Errorf("box: %w", err)
	}
	solid, err := topo.As[topo.Solid](s)
	if err != nil {
		return nil, err
	}
	last, err := x.LastShape()
	if err != nil {
		return nil, err
	}
	top, err := topo.As[topo.Face](last)
	if err != nil {
		return nil, err
	}
	return &Box{Solid: solid, Bottom: bottom, Top: top}, nil
}

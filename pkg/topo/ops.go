package topo

import (
	"fmt"

	"github.com/joshuapare/brepkit/pkg/geom"
	"github.com/joshuapare/brepkit/pkg/types"
)

// Copy returns a deep copy of the shape.
func (b base) Copy() (Shape, error) {
	return NewCopyShape(b).Shape()
}

// Mirror returns a copy of the shape reflected in the plane through origin
// with the given normal.
func (b base) Mirror(origin geom.Point, normal geom.Vector) (Shape, error) {
	t, err := geom.Mirror(origin, normal)
	if err != nil {
		return nil, fmt.Errorf("mirror: %w", err)
	}
	return b.Transform(t)
}

// Transform returns a copy of the shape transformed by t.
func (b base) Transform(t geom.Transform) (Shape, error) {
	return NewTransformShape(b, t).Shape()
}

// Translate returns a copy of the shape moved by v.
func (b base) Translate(v geom.Vector) (Shape, error) {
	return b.Transform(geom.Translation(v))
}

// Extrude sweeps the shape along v.
func (b base) Extrude(v geom.Vector) (Shape, error) {
	return NewExtrudeShape(b, v).Shape()
}

// Unite fuses other into the shape.
func (b base) Unite(other Shape) (Shape, error) {
	return NewUniteShapes(b, other).Shape()
}

// Cut removes other from the shape.
func (b base) Cut(other Shape) (Shape, error) {
	return NewCutShapes(b, other).Shape()
}

// Fillet rounds every given edge with the same radius.
func (b base) Fillet(radius float64, edges ...Edge) (Shape, error) {
	f := NewFilletShape(b)
	for _, e := range edges {
		if err := f.AddEdge(e, radius); err != nil {
			return nil, err
		}
	}
	if err := f.Build(); err != nil {
		return nil, err
	}
	return f.Shape()
}

// FilletEach rounds every edge with its own radius. Edges are registered in
// the order given.
func (b base) FilletEach(radii ...EdgeRadius) (Shape, error) {
	f := NewFilletShape(b)
	for _, er := range radii {
		if err := f.AddEdge(er.Edge, er.Radius); err != nil {
			return nil, err
		}
	}
	if err := f.Build(); err != nil {
		return nil, err
	}
	return f.Shape()
}

// Thicken turns a face or shell into a solid, or hollows a solid when
// opts.Faces is set.
func (b base) Thicken(thickness float64, opts ThickenOptions) (Shape, error) {
	return NewThickenShape(b, thickness, opts).Shape()
}

// Properties returns the global measures of the shape.
func (b base) Properties() (types.Properties, error) {
	if b.IsNull() {
		return types.Properties{}, errNullHandle
	}
	return b.kernel().Properties(b.h)
}

// Length returns the total length of the distinct edges of the shape.
func (b base) Length() (float64, error) {
	p, err := b.Properties()
	return p.Length, err
}

// Area returns the total area of the distinct faces of the shape.
func (b base) Area() (float64, error) {
	p, err := b.Properties()
	return p.Area, err
}

// Volume returns the total volume of the distinct solids of the shape.
func (b base) Volume() (float64, error) {
	p, err := b.Properties()
	return p.Volume, err
}

// ExportSTEP writes the shape to path as a STEP AP214 file. The file is
// replaced atomically, so a failed export leaves any previous file intact.
// Failures wrap types.ErrExport.
func (b base) ExportSTEP(path string, opts ...ExportOptions) error {
	var o ExportOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	if b.IsNull() {
		return fmt.Errorf("%w: %s: %w", types.ErrExport, path, errNullHandle)
	}
	header := types.STEPHeader{
		Name:         o.Name,
		Description:  o.Description,
		Author:       o.Author,
		Organization: o.Organization,
	}
	if err := b.kernel().ExportSTEP(b.h, path, header); err != nil {
		Logger().Warn("step export failed", "path", path, "error", err)
		return fmt.Errorf("%w: %s: %w", types.ErrExport, path, err)
	}
	Logger().Debug("step export written", "path", path, "kind", b.Kind())
	return nil
}

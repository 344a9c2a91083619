// Package mesh computes finite-element meshes of shapes and writes them as
// I-DEAS universal files.
//
// A mesh is driven by one global Control for the whole shape and optional
// local controls that refine sub-shapes:
//
//	global := mesh.Control2D(solid, mesh.Size(0.5), nil, false)
//	local := mesh.Control1D(edge, mesh.Size(0.1), nil)
//	m, err := mesh.Generate(global, local)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(m.NumTriangles())
//	err = m.ExportUNV("part.unv")
package mesh

import (
	"fmt"

	"github.com/joshuapare/brepkit/pkg/topo"
	"github.com/joshuapare/brepkit/pkg/types"
)

// Control configures meshing of a shape up to one dimension.
type Control struct {
	// Dimension is 1 (edges), 2 (surfaces) or 3 (volumes).
	Dimension int
	// Shape is the shape the control applies to.
	Shape topo.Shape
	// EdgeSize is the target element edge length; nil selects a tenth of
	// the shape's bounding box diagonal.
	EdgeSize *float64
	// Deflection bounds the chordal deviation on curved edges; nil
	// disables it.
	Deflection *float64
	// AllowQuads prefers quadrilaterals where a face admits a structured
	// grid. Only meaningful from dimension 2.
	AllowQuads bool
}

// Size returns a pointer to v, for the optional fields of Control.
func Size(v float64) *float64 { return &v }

// Control1D meshes the edges of s.
func Control1D(s topo.Shape, edgeSize, deflection *float64) Control {
	return Control{Dimension: 1, Shape: s, EdgeSize: edgeSize, Deflection: deflection}
}

// Control2D meshes the edges and faces of s.
func Control2D(s topo.Shape, edgeSize, deflection *float64, allowQuads bool) Control {
	return Control{Dimension: 2, Shape: s, EdgeSize: edgeSize, Deflection: deflection, AllowQuads: allowQuads}
}

// Control3D meshes the edges, faces and solids of s.
func Control3D(s topo.Shape, edgeSize, deflection *float64) Control {
	return Control{Dimension: 3, Shape: s, EdgeSize: edgeSize, Deflection: deflection}
}

func invalid(format string, args ...any) error {
	return &types.Error{
		Kind: types.ErrKindMesh,
		Msg:  fmt.Sprintf(format, args...),
		Err:  types.ErrMeshControl,
	}
}

func (c Control) validate(maxDim int) error {
	switch {
	case c.Shape == nil || c.Shape.IsNull():
		return invalid("mesh control without a shape")
	case c.Dimension < 1 || c.Dimension > maxDim:
		return invalid("mesh dimension %d outside [1, %d]", c.Dimension, maxDim)
	case c.EdgeSize != nil && *c.EdgeSize <= 0:
		return invalid("edge size must be positive, got %g", *c.EdgeSize)
	case c.Deflection != nil && *c.Deflection <= 0:
		return invalid("deflection must be positive, got %g", *c.Deflection)
	}
	return nil
}

func (c Control) native() types.MeshControl {
	return types.MeshControl{
		Dimension:  c.Dimension,
		Shape:      c.Shape.Handle(),
		EdgeSize:   c.EdgeSize,
		Deflection: c.Deflection,
		AllowQuads: c.AllowQuads,
	}
}

// Mesh is a computed mesh.
type Mesh struct {
	result types.MeshResult
	stats  types.MeshStats
}

// Generate meshes global.Shape. Local controls refine sub-shapes of it and
// may not exceed the global dimension. Invalid controls yield an error
// wrapping types.ErrMeshControl; a kernel failure yields one wrapping
// types.ErrMeshCompute.
func Generate(global Control, locals ...Control) (*Mesh, error) {
	if err := global.validate(3); err != nil {
		return nil, err
	}
	natives := make([]types.MeshControl, 0, len(locals))
	for i, l := range locals {
		if err := l.validate(global.Dimension); err != nil {
			return nil, fmt.Errorf("local control %d: %w", i, err)
		}
		natives = append(natives, l.native())
	}

	k := global.Shape.Handle().Kernel()
	if k == nil {
		k = topo.CurrentKernel()
	}
	res, err := k.Mesh(global.native(), natives)
	if err != nil {
		topo.Logger().Warn("mesh computation failed", "dimension", global.Dimension, "error", err)
		return nil, fmt.Errorf("%w: %w", types.ErrMeshCompute, err)
	}
	m := &Mesh{result: res, stats: res.Stats()}
	topo.Logger().Debug("mesh computed",
		"dimension", global.Dimension,
		"nodes", m.stats.Nodes,
		"edges", m.stats.Edges,
		"faces", m.stats.Faces,
		"tetras", m.stats.Tetras)
	return m, nil
}

// Stats returns all entity counts at once.
func (m *Mesh) Stats() types.MeshStats { return m.stats }

func (m *Mesh) NumNodes() int       { return m.stats.Nodes }
func (m *Mesh) NumEdges() int       { return m.stats.Edges }
func (m *Mesh) NumFaces() int       { return m.stats.Faces }
func (m *Mesh) NumTriangles() int   { return m.stats.Triangles }
func (m *Mesh) NumQuadrangles() int { return m.stats.Quadrangles }
func (m *Mesh) NumTetras() int      { return m.stats.Tetras }

// ExportUNV writes the mesh to path as an I-DEAS universal file with node
// dataset 2411 and element dataset 2412. Failures wrap types.ErrExport.
func (m *Mesh) ExportUNV(path string) error {
	if err := m.result.ExportUNV(path); err != nil {
		topo.Logger().Warn("unv export failed", "path", path, "error", err)
		return fmt.Errorf("%w: %s: %w", types.ErrExport, path, err)
	}
	topo.Logger().Debug("unv export written", "path", path, "nodes", m.stats.Nodes)
	return nil
}

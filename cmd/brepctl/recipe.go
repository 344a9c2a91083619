package main

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/joshuapare/brepkit/pkg/geom"
	"github.com/joshuapare/brepkit/pkg/mesh"
	"github.com/joshuapare/brepkit/pkg/primitives"
	"github.com/joshuapare/brepkit/pkg/topo"
)

// Recipe describes a model, the operations applied to it and how to export
// it.
//
// Example:
//
//	name: bracket
//	author: Jane Doe
//	model:
//	  kind: prism
//	  polygon: [[0, 0, 0], [4, 0, 0], [4, 1, 0], [0, 1, 0]]
//	  vector: [0, 0, 2]
//	operations:
//	  - translate: [10, 0, 0]
//	mesh:
//	  dimension: 2
//	  edge_size: 0.5
type Recipe struct {
	Name         string      `yaml:"name"`
	Description  string      `yaml:"description"`
	Author       string      `yaml:"author"`
	Organization string      `yaml:"organization"`
	Model        ModelSpec   `yaml:"model"`
	Operations   []Operation `yaml:"operations"`
	Mesh         *MeshSpec   `yaml:"mesh"`
}

// ModelSpec selects and sizes the base model.
type ModelSpec struct {
	Kind string `yaml:"kind"` // box, cylinder, prism or loft

	// box
	Size   *vec3 `yaml:"size"`
	Origin vec3  `yaml:"origin"`

	// cylinder
	Radius float64 `yaml:"radius"`
	Height float64 `yaml:"height"`
	Axis   *vec3   `yaml:"axis"`

	// prism
	Polygon []vec3 `yaml:"polygon"`
	Vector  *vec3  `yaml:"vector"`

	// loft
	Sections [][]vec3 `yaml:"sections"`
	Ruled    bool     `yaml:"ruled"`
	Shell    bool     `yaml:"shell"`
}

// Operation is one modification applied to the model. Exactly one field is
// set.
type Operation struct {
	Translate *vec3      `yaml:"translate"`
	Mirror    *MirrorOp  `yaml:"mirror"`
	Rotate    *RotateOp  `yaml:"rotate"`
	Unite     *ModelSpec `yaml:"unite"`
	Cut       *ModelSpec `yaml:"cut"`
	Copy      bool       `yaml:"copy"`
}

// MirrorOp reflects the model in a plane.
type MirrorOp struct {
	Origin vec3 `yaml:"origin"`
	Normal vec3 `yaml:"normal"`
}

// RotateOp turns the model around an axis. Angle is in degrees.
type RotateOp struct {
	Origin vec3    `yaml:"origin"`
	Axis   vec3    `yaml:"axis"`
	Angle  float64 `yaml:"angle"`
}

// MeshSpec holds the default mesh settings of a recipe.
type MeshSpec struct {
	Dimension  int      `yaml:"dimension"`
	EdgeSize   *float64 `yaml:"edge_size"`
	Deflection *float64 `yaml:"deflection"`
	Quads      bool     `yaml:"quads"`
}

// vec3 decodes from a YAML sequence of exactly three numbers.
type vec3 [3]float64

func (v *vec3) UnmarshalYAML(n *yaml.Node) error {
	var xs []float64
	if err := n.Decode(&xs); err != nil {
		return err
	}
	if len(xs) != 3 {
		return fmt.Errorf("line %d: expected 3 coordinates, got %d", n.Line, len(xs))
	}
	copy(v[:], xs)
	return nil
}

func (v vec3) point() geom.Point   { return geom.Pt(v[0], v[1], v[2]) }
func (v vec3) vector() geom.Vector { return geom.Vec(v[0], v[1], v[2]) }

// loadRecipe reads and validates a recipe file. Unknown keys are rejected.
func loadRecipe(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe: %w", err)
	}
	return parseRecipe(data)
}

func parseRecipe(data []byte) (*Recipe, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var r Recipe
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("failed to parse recipe: %w", err)
	}
	if r.Model.Kind == "" {
		return nil, errors.New("recipe has no model kind")
	}
	return &r, nil
}

// build constructs the recipe's model and applies its operations in order.
func (r *Recipe) build() (topo.Shape, error) {
	s, err := r.Model.build()
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}
	for i, op := range r.Operations {
		s, err = op.apply(s)
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i+1, err)
		}
	}
	return s, nil
}

func (m ModelSpec) build() (topo.Shape, error) {
	switch m.Kind {
	case "box":
		if m.Size == nil {
			return nil, errors.New("box needs a size")
		}
		b, err := primitives.BoxBySize(m.Size[0], m.Size[1], m.Size[2], m.Origin.point())
		if err != nil {
			return nil, err
		}
		return b.Solid, nil

	case "cylinder":
		frame := geom.FrameByOrigin(m.Origin.point())
		if m.Axis != nil {
			var err error
			frame, err = geom.FrameByAxes(m.Origin.point(), m.Axis.vector(), m.Axis.vector().Perpendicular())
			if err != nil {
				return nil, err
			}
		}
		c, err := primitives.CylinderBySize(m.Radius, m.Height, frame)
		if err != nil {
			return nil, err
		}
		return c.Solid, nil

	case "prism":
		if m.Vector == nil {
			return nil, errors.New("prism needs an extrusion vector")
		}
		w, err := polygonWire(m.Polygon)
		if err != nil {
			return nil, err
		}
		f, err := topo.FaceByWire(w)
		if err != nil {
			return nil, err
		}
		return f.Extrude(m.Vector.vector())

	case "loft":
		sections := make([]topo.Shape, len(m.Sections))
		for i, pts := range m.Sections {
			w, err := polygonWire(pts)
			if err != nil {
				return nil, fmt.Errorf("section %d: %w", i+1, err)
			}
			sections[i] = w
		}
		if !m.Shell {
			return topo.SolidByLoft(sections, topo.LoftOptions{Ruled: m.Ruled})
		}
		l := topo.NewLoftShape(topo.LoftOptions{Ruled: m.Ruled})
		for _, s := range sections {
			if err := l.AddSection(s); err != nil {
				return nil, err
			}
		}
		if err := l.Build(); err != nil {
			return nil, err
		}
		return l.Shape()

	default:
		return nil, fmt.Errorf("unknown model kind %q", m.Kind)
	}
}

func polygonWire(pts []vec3) (topo.Wire, error) {
	if len(pts) < 3 {
		return topo.Wire{}, fmt.Errorf("polygon needs at least 3 points, got %d", len(pts))
	}
	edges := make([]topo.Edge, len(pts))
	for i, p := range pts {
		e, err := topo.EdgeByPoints(p.point(), pts[(i+1)%len(pts)].point())
		if err != nil {
			return topo.Wire{}, err
		}
		edges[i] = e
	}
	return topo.WireByEdges(edges)
}

func (op Operation) apply(s topo.Shape) (topo.Shape, error) {
	switch {
	case op.Translate != nil:
		return s.Translate(op.Translate.vector())
	case op.Mirror != nil:
		return s.Mirror(op.Mirror.Origin.point(), op.Mirror.Normal.vector())
	case op.Rotate != nil:
		t, err := geom.Rotation(op.Rotate.Origin.point(), op.Rotate.Axis.vector(), op.Rotate.Angle*math.Pi/180)
		if err != nil {
			return nil, err
		}
		return s.Transform(t)
	case op.Unite != nil:
		other, err := op.Unite.build()
		if err != nil {
			return nil, err
		}
		return s.Unite(other)
	case op.Cut != nil:
		other, err := op.Cut.build()
		if err != nil {
			return nil, err
		}
		return s.Cut(other)
	case op.Copy:
		return s.Copy()
	default:
		return nil, errors.New("empty operation")
	}
}

// meshControl merges the recipe's mesh settings with command-line
// overrides.
func (r *Recipe) meshControl(s topo.Shape, dim int, edgeSize float64, quads bool) mesh.Control {
	c := mesh.Control{Dimension: 2, Shape: s}
	if r.Mesh != nil {
		if r.Mesh.Dimension != 0 {
			c.Dimension = r.Mesh.Dimension
		}
		c.EdgeSize = r.Mesh.EdgeSize
		c.Deflection = r.Mesh.Deflection
		c.AllowQuads = r.Mesh.Quads
	}
	if dim != 0 {
		c.Dimension = dim
	}
	if edgeSize > 0 {
		c.EdgeSize = mesh.Size(edgeSize)
	}
	if quads {
		c.AllowQuads = true
	}
	return c
}

func (r *Recipe) exportOptions() topo.ExportOptions {
	return topo.ExportOptions{
		Name:         r.Name,
		Description:  r.Description,
		Author:       r.Author,
		Organization: r.Organization,
	}
}

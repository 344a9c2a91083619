package poly

import (
	"io"

	"github.com/joshuapare/brepkit/internal/fileio"
	"github.com/joshuapare/brepkit/internal/step"
	"github.com/joshuapare/brepkit/pkg/geom"
	"github.com/joshuapare/brepkit/pkg/types"
)

// ExportSTEP writes h as an AP214 STEP file. Solids become manifold solid
// B-reps, other faces a shell based surface model and free edges or
// vertices a geometric curve set.
func (k *Kernel) ExportSTEP(h types.Handle, path string, header types.STEPHeader) error {
	r, err := k.refOf(h)
	if err != nil {
		return err
	}
	e := newStepEncoder()
	ctx := e.context()

	items := []step.Ref{e.placement(geom.FrameByOrigin(geom.Point{}))}
	solids := 0
	inSolid := make(map[*tshape]bool)
	for _, s := range collect(r, types.KindSolid) {
		markAll(s.t, inSolid)
		outer := s.children()[0]
		items = append(items, e.w.Add("MANIFOLD_SOLID_BREP", "", e.w.Add("CLOSED_SHELL", "", e.faces(outer))))
		solids++
	}

	var shells []step.Ref
	inShell := make(map[*tshape]bool)
	for _, sh := range collect(r, types.KindShell) {
		if inSolid[sh.t] {
			continue
		}
		markAll(sh.t, inShell)
		shells = append(shells, e.w.Add("OPEN_SHELL", "", e.faces(sh)))
	}
	var free []step.Ref
	for _, f := range collect(r, types.KindFace) {
		if !inSolid[f.t] && !inShell[f.t] {
			markAll(f.t, inShell)
			free = append(free, e.face(f))
		}
	}
	if len(free) > 0 {
		shells = append(shells, e.w.Add("OPEN_SHELL", "", free))
	}
	if len(shells) > 0 {
		items = append(items, e.w.Add("SHELL_BASED_SURFACE_MODEL", "", shells))
	}

	var curves []step.Ref
	for _, ed := range collect(r, types.KindEdge) {
		if !inSolid[ed.t] && !inShell[ed.t] {
			markAll(ed.t, inShell)
			curves = append(curves, e.trimmed(ed.t))
		}
	}
	for _, v := range collect(r, types.KindVertex) {
		if !inSolid[v.t] && !inShell[v.t] {
			curves = append(curves, e.point(v.t.point))
		}
	}
	if len(curves) > 0 {
		items = append(items, e.w.Add("GEOMETRIC_CURVE_SET", "", curves))
	}

	repType := "SHAPE_REPRESENTATION"
	if solids > 0 && len(items) == solids+1 {
		repType = "ADVANCED_BREP_SHAPE_REPRESENTATION"
	}
	rep := e.w.Add(repType, header.Name, items, ctx)
	e.product(header.Name, rep)

	return fileio.WriteFile(path, func(w io.Writer) error {
		return e.w.WriteTo(w, step.Header{
			Name:         header.Name,
			Description:  header.Description,
			Author:       header.Author,
			Organization: header.Organization,
			System:       "brepkit " + Name,
		})
	})
}

func markAll(t *tshape, m map[*tshape]bool) {
	if m[t] {
		return
	}
	m[t] = true
	for _, c := range t.children {
		markAll(c.t, m)
	}
}

// stepEncoder maps entities onto STEP instances, sharing vertices, edges
// and oriented faces.
type stepEncoder struct {
	w        *step.Writer
	vertices map[*tshape]step.Ref
	edges    map[*tshape]step.Ref
	faceRefs map[ref]step.Ref
}

func newStepEncoder() *stepEncoder {
	return &stepEncoder{
		w:        step.NewWriter(),
		vertices: make(map[*tshape]step.Ref),
		edges:    make(map[*tshape]step.Ref),
		faceRefs: make(map[ref]step.Ref),
	}
}

// context writes the units and the geometric representation context.
func (e *stepEncoder) context() step.Ref {
	length := e.w.AddComplex(
		step.Part{Name: "LENGTH_UNIT"},
		step.Part{Name: "NAMED_UNIT", Params: []any{step.Derived}},
		step.Part{Name: "SI_UNIT", Params: []any{step.Enum("MILLI"), step.Enum("METRE")}},
	)
	angle := e.w.AddComplex(
		step.Part{Name: "NAMED_UNIT", Params: []any{step.Derived}},
		step.Part{Name: "PLANE_ANGLE_UNIT"},
		step.Part{Name: "SI_UNIT", Params: []any{step.Unset, step.Enum("RADIAN")}},
	)
	solid := e.w.AddComplex(
		step.Part{Name: "NAMED_UNIT", Params: []any{step.Derived}},
		step.Part{Name: "SI_UNIT", Params: []any{step.Unset, step.Enum("STERADIAN")}},
		step.Part{Name: "SOLID_ANGLE_UNIT"},
	)
	unc := e.w.Add("UNCERTAINTY_MEASURE_WITH_UNIT",
		step.Typed{Type: "LENGTH_MEASURE", Value: tolerance}, length,
		"distance_accuracy_value", "confusion accuracy")
	return e.w.AddComplex(
		step.Part{Name: "GEOMETRIC_REPRESENTATION_CONTEXT", Params: []any{3}},
		step.Part{Name: "GLOBAL_UNCERTAINTY_ASSIGNED_CONTEXT", Params: []any{[]step.Ref{unc}}},
		step.Part{Name: "GLOBAL_UNIT_ASSIGNED_CONTEXT", Params: []any{[]step.Ref{length, angle, solid}}},
		step.Part{Name: "REPRESENTATION_CONTEXT", Params: []any{"Context #1", "3D Context with UNIT and UNCERTAINTY"}},
	)
}

// product writes the AP214 product structure around a representation.
func (e *stepEncoder) product(name string, rep step.Ref) {
	app := e.w.Add("APPLICATION_CONTEXT", "automotive design")
	e.w.Add("APPLICATION_PROTOCOL_DEFINITION", "international standard", "automotive_design", 2000, app)
	pctx := e.w.Add("PRODUCT_CONTEXT", "", app, "mechanical")
	prod := e.w.Add("PRODUCT", name, name, "", []step.Ref{pctx})
	e.w.Add("PRODUCT_RELATED_PRODUCT_CATEGORY", "part", step.Unset, []step.Ref{prod})
	form := e.w.Add("PRODUCT_DEFINITION_FORMATION", "", "", prod)
	dctx := e.w.Add("PRODUCT_DEFINITION_CONTEXT", "part definition", app, "design")
	def := e.w.Add("PRODUCT_DEFINITION", "design", "", form, dctx)
	shape := e.w.Add("PRODUCT_DEFINITION_SHAPE", "", "", def)
	e.w.Add("SHAPE_DEFINITION_REPRESENTATION", shape, rep)
}

func (e *stepEncoder) point(p geom.Point) step.Ref {
	return e.w.Add("CARTESIAN_POINT", "", []float64{p.X, p.Y, p.Z})
}

func (e *stepEncoder) direction(v geom.Vector) step.Ref {
	return e.w.Add("DIRECTION", "", []float64{v.X, v.Y, v.Z})
}

func (e *stepEncoder) placement(f geom.Frame) step.Ref {
	return e.w.Add("AXIS2_PLACEMENT_3D", "", e.point(f.Origin), e.direction(f.Z), e.direction(f.X))
}

func (e *stepEncoder) vertex(v *tshape) step.Ref {
	if r, ok := e.vertices[v]; ok {
		return r
	}
	r := e.w.Add("VERTEX_POINT", "", e.point(v.point))
	e.vertices[v] = r
	return r
}

// curve writes the geometry of an edge. The returned curve runs from the
// first to the last vertex of the edge; analytic reports whether it keeps
// the parametrization of the edge's basis curve.
func (e *stepEncoder) curve(ed *tshape) (r step.Ref, analytic bool) {
	switch c := ed.curve.(type) {
	case geom.Line:
		return e.w.Add("LINE", "", e.point(c.Origin),
			e.w.Add("VECTOR", "", e.direction(c.Direction), 1.0)), true
	case geom.Circle:
		// Left-handed frames come from mirroring; their sense is not
		// expressible with an axis placement.
		if c.Frame.X.Cross(c.Frame.Y).Dot(c.Frame.Z) > 0 {
			return e.w.Add("CIRCLE", "", e.placement(c.Frame), c.Radius), true
		}
	}
	return e.polyline(ref{t: ed}.samples(segments(ed))), false
}

// polyline writes a degree one B-spline through pts.
func (e *stepEncoder) polyline(pts []geom.Point) step.Ref {
	refs := make([]step.Ref, len(pts))
	for i, p := range pts {
		refs[i] = e.point(p)
	}
	mults, knots := linearKnots(len(pts))
	return e.w.Add("B_SPLINE_CURVE_WITH_KNOTS", "", 1, refs,
		step.Enum("UNSPECIFIED"), false, false, mults, knots, step.Enum("UNSPECIFIED"))
}

// linearKnots returns clamped uniform knots for n control points of degree 1.
func linearKnots(n int) (step.List, []float64) {
	mults := make(step.List, n)
	knots := make([]float64, n)
	for i := range mults {
		mults[i] = 1
		knots[i] = float64(i)
	}
	mults[0], mults[n-1] = 2, 2
	return mults, knots
}

func (e *stepEncoder) edge(ed *tshape) step.Ref {
	if r, ok := e.edges[ed]; ok {
		return r
	}
	c, _ := e.curve(ed)
	r := e.w.Add("EDGE_CURVE", "", e.vertex(ed.firstVertex()), e.vertex(ed.lastVertex()), c, true)
	e.edges[ed] = r
	return r
}

// trimmed writes a free edge as a trimmed curve.
func (e *stepEncoder) trimmed(ed *tshape) step.Ref {
	c, analytic := e.curve(ed)
	u0, u1 := ed.u0, ed.u1
	if !analytic {
		u0, u1 = 0, float64(segments(ed))
	}
	return e.w.Add("TRIMMED_CURVE", "", c,
		step.List{step.Typed{Type: "PARAMETER_VALUE", Value: u0}},
		step.List{step.Typed{Type: "PARAMETER_VALUE", Value: u1}},
		true, step.Enum("PARAMETER"))
}

func (e *stepEncoder) faces(sh ref) []step.Ref {
	var out []step.Ref
	for _, f := range sh.children() {
		out = append(out, e.face(f))
	}
	return out
}

// face writes an advanced face. A reversed reference flips the face sense
// and the sense of its bounds.
func (e *stepEncoder) face(f ref) step.Ref {
	if r, ok := e.faceRefs[f]; ok {
		return r
	}
	sense := !f.rev
	var bounds []step.Ref
	for i, w := range (ref{t: f.t}).children() {
		var oriented []step.Ref
		for _, ed := range edgesOf(w) {
			oriented = append(oriented, e.w.Add("ORIENTED_EDGE", "", step.Derived, step.Derived, e.edge(ed.t), !ed.rev))
		}
		loop := e.w.Add("EDGE_LOOP", "", oriented)
		kind := "FACE_BOUND"
		if i == 0 {
			kind = "FACE_OUTER_BOUND"
		}
		bounds = append(bounds, e.w.Add(kind, "", loop, sense))
	}
	r := e.w.Add("ADVANCED_FACE", "", bounds, e.surface(f.t.surf), sense)
	e.faceRefs[f] = r
	return r
}

func (e *stepEncoder) surface(s *surface) step.Ref {
	if !s.ruled() {
		return e.w.Add("PLANE", "", e.placement(s.plane.Frame))
	}
	ns := max(segments(s.rail0.t), segments(s.rail1.t))
	rows := make(step.List, ns+1)
	for i := range rows {
		u := float64(i) / float64(ns)
		rows[i] = []step.Ref{e.point(s.at(u, 0)), e.point(s.at(u, 1))}
	}
	umults, uknots := linearKnots(ns + 1)
	vmults, vknots := linearKnots(2)
	return e.w.Add("B_SPLINE_SURFACE_WITH_KNOTS", "", 1, 1, rows,
		step.Enum("UNSPECIFIED"), false, false, false,
		umults, vmults, uknots, vknots, step.Enum("UNSPECIFIED"))
}

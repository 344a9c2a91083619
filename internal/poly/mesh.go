package poly

import (
	"io"
	"math"

	"github.com/joshuapare/brepkit/internal/fileio"
	"github.com/joshuapare/brepkit/internal/unv"
	"github.com/joshuapare/brepkit/pkg/geom"
	"github.com/joshuapare/brepkit/pkg/types"
)

// defaultDivisions sets the default element size to the bounding box
// diagonal divided by this value.
const defaultDivisions = 10

// meshResult is a computed mesh.
type meshResult struct {
	nodes []geom.Point
	elems []unv.Element
	stats types.MeshStats
}

func (m *meshResult) Stats() types.MeshStats { return m.stats }

func (m *meshResult) ExportUNV(path string) error {
	return fileio.WriteFile(path, func(w io.Writer) error {
		return unv.Write(w, unv.Mesh{Nodes: m.nodes, Elements: m.elems})
	})
}

// edgeParams are the sizing parameters applied to one edge.
type edgeParams struct {
	size       float64
	deflection *float64
}

// mesher discretizes a shape: edges are split into segments, planar faces
// are ear-clipped, ruled faces get a structured grid and solids are filled
// with tetrahedra fanned from their centroid.
type mesher struct {
	root ref
	dim  int

	edgeParams map[*tshape]edgeParams
	quads      map[*tshape]bool
	segs       map[*tshape]int

	nodes     []geom.Point
	vertexOf  map[*tshape]int
	edgeNodes map[*tshape][]int    // natural orientation, vertex nodes included
	faceTris  map[*tshape][][3]int // natural orientation, quads split

	out meshResult
}

// Mesh computes a mesh of global.Shape. Local controls refine sub-shapes:
// dimension 1 controls size their edges, dimension 2 controls size and
// choose the element shape of their faces, dimension 3 controls size the
// edges of their solids.
func (k *Kernel) Mesh(global types.MeshControl, locals []types.MeshControl) (types.MeshResult, error) {
	root, err := k.refOf(global.Shape)
	if err != nil {
		return nil, err
	}
	if global.Dimension < 1 || global.Dimension > 3 {
		return nil, types.Kernelf("mesh dimension %d outside [1, 3]", global.Dimension)
	}
	m := &mesher{
		root:       root,
		dim:        global.Dimension,
		edgeParams: make(map[*tshape]edgeParams),
		quads:      make(map[*tshape]bool),
		segs:       make(map[*tshape]int),
		vertexOf:   make(map[*tshape]int),
		edgeNodes:  make(map[*tshape][]int),
		faceTris:   make(map[*tshape][][3]int),
	}

	size := boundsOf(root).diagonal() / defaultDivisions
	if size <= 0 {
		size = 1
	}
	if global.EdgeSize != nil {
		size = *global.EdgeSize
	}
	if size <= 0 {
		return nil, types.Kernelf("edge size must be positive, got %g", size)
	}
	m.apply(root, size, global.Deflection, global.AllowQuads)
	for _, l := range locals {
		lr, err := k.refOf(l.Shape)
		if err != nil {
			return nil, err
		}
		if !contains(root, lr.t) {
			return nil, types.Kernelf("local control %s is not part of the meshed shape", lr.t.kind)
		}
		if l.Dimension < 1 || l.Dimension > global.Dimension {
			return nil, types.Kernelf("local control dimension %d outside [1, %d]", l.Dimension, global.Dimension)
		}
		ls := size
		if l.EdgeSize != nil {
			if *l.EdgeSize <= 0 {
				return nil, types.Kernelf("edge size must be positive, got %g", *l.EdgeSize)
			}
			ls = *l.EdgeSize
		}
		m.apply(lr, ls, l.Deflection, l.AllowQuads)
	}

	if err := m.run(); err != nil {
		return nil, err
	}
	m.out.nodes = m.nodes
	m.out.stats.Nodes = len(m.nodes)
	return &m.out, nil
}

// apply assigns sizing to the edges and faces of r.
func (m *mesher) apply(r ref, size float64, deflection *float64, quads bool) {
	for _, e := range collect(r, types.KindEdge) {
		m.edgeParams[e.t] = edgeParams{size: size, deflection: deflection}
	}
	for _, f := range collect(r, types.KindFace) {
		m.quads[f.t] = quads
	}
}

func (m *mesher) run() error {
	edges := collect(m.root, types.KindEdge)
	faces := collect(m.root, types.KindFace)
	for _, e := range edges {
		m.segs[e.t] = m.edgeSegments(e.t)
	}
	if m.dim >= 2 {
		if err := m.unifyRuled(faces); err != nil {
			return err
		}
	}

	for _, v := range collect(m.root, types.KindVertex) {
		m.vertexNode(v.t)
	}
	for _, e := range edges {
		ids := m.meshEdge(e.t)
		for i := 1; i < len(ids); i++ {
			m.element(unv.ElemRod, ids[i-1], ids[i])
		}
	}
	if m.dim < 2 {
		return nil
	}
	for _, f := range faces {
		if err := m.meshFace(f.t); err != nil {
			return err
		}
	}
	if m.dim < 3 {
		return nil
	}
	for _, s := range collect(m.root, types.KindSolid) {
		if err := m.meshSolid(s); err != nil {
			return err
		}
	}
	return nil
}

func (m *mesher) edgeSegments(e *tshape) int {
	p := m.edgeParams[e]
	n := int(math.Ceil(edgeLength(e)/p.size - 1e-9))
	if c, ok := e.curve.(geom.Circle); ok && p.deflection != nil && *p.deflection > 0 && *p.deflection < c.Radius {
		step := 2 * math.Acos(1-*p.deflection/c.Radius)
		n = max(n, int(math.Ceil(math.Abs(e.u1-e.u0)/step)))
	}
	if e.firstVertex() == e.lastVertex() {
		return max(n, 3)
	}
	return max(n, 1)
}

// unifyRuled gives opposite edges of every ruled face the same number of
// segments so that the face can carry a structured grid.
func (m *mesher) unifyRuled(faces []ref) error {
	for changed := true; changed; {
		changed = false
		for _, f := range faces {
			if !f.t.surf.ruled() {
				continue
			}
			w := f.t.children[0].t
			if len(w.children) != 4 {
				return types.Kernelf("ruled face with %d boundary edges cannot be meshed", len(w.children))
			}
			for _, pair := range [2][2]*tshape{
				{w.children[0].t, w.children[2].t},
				{w.children[1].t, w.children[3].t},
			} {
				a, b := m.segs[pair[0]], m.segs[pair[1]]
				if a != b {
					m.segs[pair[0]], m.segs[pair[1]] = max(a, b), max(a, b)
					changed = true
				}
			}
		}
	}
	return nil
}

func (m *mesher) node(p geom.Point) int {
	m.nodes = append(m.nodes, p)
	return len(m.nodes)
}

func (m *mesher) vertexNode(v *tshape) int {
	if id, ok := m.vertexOf[v]; ok {
		return id
	}
	id := m.node(v.point)
	m.vertexOf[v] = id
	return id
}

func (m *mesher) element(typ int, nodes ...int) {
	m.out.elems = append(m.out.elems, unv.Element{Type: typ, Nodes: nodes})
	switch typ {
	case unv.ElemRod:
		m.out.stats.Edges++
	case unv.ElemTriangle:
		m.out.stats.Faces++
		m.out.stats.Triangles++
	case unv.ElemQuadrangle:
		m.out.stats.Faces++
		m.out.stats.Quadrangles++
	case unv.ElemTetrahedron:
		m.out.stats.Tetras++
	}
}

func (m *mesher) meshEdge(e *tshape) []int {
	if ids, ok := m.edgeNodes[e]; ok {
		return ids
	}
	n := m.segs[e]
	ids := make([]int, n+1)
	ids[0] = m.vertexNode(e.firstVertex())
	for i := 1; i < n; i++ {
		ids[i] = m.node(ref{t: e}.at(float64(i) / float64(n)))
	}
	ids[n] = m.vertexNode(e.lastVertex())
	m.edgeNodes[e] = ids
	return ids
}

// orientedNodes returns the nodes of an edge along its traversal.
func (m *mesher) orientedNodes(e ref) []int {
	ids := m.meshEdge(e.t)
	if !e.rev {
		return ids
	}
	out := make([]int, len(ids))
	for i, id := range ids {
		out[len(ids)-1-i] = id
	}
	return out
}

func (m *mesher) meshFace(f *tshape) error {
	if f.surf.ruled() {
		return m.meshRuled(f)
	}
	w := f.children[0]
	var loop []int
	for _, e := range edgesOf(w) {
		ids := m.orientedNodes(e)
		loop = append(loop, ids[:len(ids)-1]...)
	}
	pts := make([]geom.Point, len(loop))
	for i, id := range loop {
		pts[i] = m.nodes[id-1]
	}
	n, err := newell(pts).Normalized()
	if err != nil {
		return types.Kernelf("face boundary encloses no area")
	}
	frame, err := geom.FrameByAxes(pts[0], n, n.Perpendicular())
	if err != nil {
		return types.Kernelf("face boundary encloses no area")
	}
	flat := make([]geom.Point2D, len(pts))
	for i, p := range pts {
		d := p.Sub(frame.Origin)
		flat[i] = geom.Pt2(d.Dot(frame.X), d.Dot(frame.Y))
	}
	tris, ok := earClip(flat)
	if !ok {
		return types.Kernelf("face boundary cannot be triangulated")
	}
	for _, t := range tris {
		a, b, c := loop[t[0]], loop[t[1]], loop[t[2]]
		m.element(unv.ElemTriangle, a, b, c)
		m.faceTris[f] = append(m.faceTris[f], [3]int{a, b, c})
	}
	return nil
}

func (m *mesher) meshRuled(f *tshape) error {
	w := f.children[0].t
	bottom := m.orientedNodes(w.children[0])
	right := m.orientedNodes(w.children[1])
	top := m.orientedNodes(w.children[2].reversed())
	left := m.orientedNodes(w.children[3].reversed())
	ns, nt := len(bottom)-1, len(right)-1
	if len(top)-1 != ns || len(left)-1 != nt {
		return types.Kernelf("ruled face has unbalanced boundary divisions")
	}

	grid := make([][]int, ns+1)
	for i := range grid {
		grid[i] = make([]int, nt+1)
		grid[i][0], grid[i][nt] = bottom[i], top[i]
	}
	for j := 0; j <= nt; j++ {
		grid[0][j], grid[ns][j] = left[j], right[j]
	}
	for i := 1; i < ns; i++ {
		p0, p1 := m.nodes[bottom[i]-1], m.nodes[top[i]-1]
		for j := 1; j < nt; j++ {
			grid[i][j] = m.node(p0.Lerp(p1, float64(j)/float64(nt)))
		}
	}

	quads := m.quads[f]
	for i := 0; i < ns; i++ {
		for j := 0; j < nt; j++ {
			a, b, c, d := grid[i][j], grid[i+1][j], grid[i+1][j+1], grid[i][j+1]
			if quads {
				m.element(unv.ElemQuadrangle, a, b, c, d)
			} else {
				m.element(unv.ElemTriangle, a, b, c)
				m.element(unv.ElemTriangle, a, c, d)
			}
			m.faceTris[f] = append(m.faceTris[f], [3]int{a, b, c}, [3]int{a, c, d})
		}
	}
	return nil
}

// meshSolid fans tetrahedra from the centroid of the boundary nodes to every
// outward boundary triangle.
func (m *mesher) meshSolid(s ref) error {
	var tris [][3]int
	seen := make(map[int]bool)
	var c geom.Vector
	for _, sh := range s.children() {
		for _, f := range sh.children() {
			for _, t := range m.faceTris[f.t] {
				if f.rev {
					t[1], t[2] = t[2], t[1]
				}
				tris = append(tris, t)
				for _, id := range t {
					if !seen[id] {
						seen[id] = true
						c = c.Add(m.nodes[id-1].Vector())
					}
				}
			}
		}
	}
	if len(seen) == 0 {
		return types.Kernelf("solid has no boundary mesh")
	}
	c = c.Scaled(1 / float64(len(seen)))
	center := geom.Pt(c.X, c.Y, c.Z)

	vols := make([]float64, len(tris))
	total := 0.0
	for i, t := range tris {
		a, b, d := m.nodes[t[0]-1], m.nodes[t[1]-1], m.nodes[t[2]-1]
		vols[i] = b.Sub(a).Cross(d.Sub(a)).Dot(a.Sub(center)) / 6
		total += vols[i]
	}
	sign := 1.0
	if total < 0 {
		sign = -1
	}
	eps := 1e-12 * math.Abs(total)
	for _, v := range vols {
		if sign*v <= eps {
			return types.Kernelf("solid is not star-shaped about its centroid")
		}
	}
	id := m.node(center)
	for _, t := range tris {
		if sign > 0 {
			m.element(unv.ElemTetrahedron, t[0], t[2], t[1], id)
		} else {
			m.element(unv.ElemTetrahedron, t[0], t[1], t[2], id)
		}
	}
	return nil
}

// earClip triangulates a simple counter-clockwise polygon.
func earClip(pts []geom.Point2D) ([][3]int, bool) {
	idx := make([]int, len(pts))
	for i := range idx {
		idx[i] = i
	}
	if area2(pts, idx) < 0 {
		for i, j := 0, len(idx)-1; i < j; i, j = i+1, j-1 {
			idx[i], idx[j] = idx[j], idx[i]
		}
	}
	var tris [][3]int
	for len(idx) > 3 {
		clipped := false
		for i := range idx {
			a, b, c := idx[(i+len(idx)-1)%len(idx)], idx[i], idx[(i+1)%len(idx)]
			if cross(pts[a], pts[b], pts[c]) <= 1e-14 {
				continue
			}
			ear := true
			for _, j := range idx {
				if j != a && j != b && j != c && inTriangle(pts[j], pts[a], pts[b], pts[c]) {
					ear = false
					break
				}
			}
			if !ear {
				continue
			}
			tris = append(tris, [3]int{a, b, c})
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			return nil, false
		}
	}
	if len(idx) == 3 {
		tris = append(tris, [3]int{idx[0], idx[1], idx[2]})
	}
	return tris, true
}

func area2(pts []geom.Point2D, idx []int) float64 {
	a := 0.0
	for i, j := range idx {
		p, q := pts[j], pts[idx[(i+1)%len(idx)]]
		a += p.X*q.Y - q.X*p.Y
	}
	return a
}

func cross(a, b, c geom.Point2D) float64 {
	return (b.X-a.X)*(c.Y-b.Y) - (b.Y-a.Y)*(c.X-b.X)
}

// inTriangle reports whether p lies inside or on the boundary of the
// counter-clockwise triangle abc.
func inTriangle(p, a, b, c geom.Point2D) bool {
	const eps = -1e-14
	return cross(a, b, p) >= eps && cross(b, c, p) >= eps && cross(c, a, p) >= eps
}

package poly

import (
	"math"

	"github.com/joshuapare/brepkit/pkg/geom"
	"github.com/joshuapare/brepkit/pkg/types"
)

const (
	// circleSegments is the number of chords used for a full circle.
	circleSegments = 512
	// curveSegments is the number of chords used for other curves.
	curveSegments = 128
	// ruledSteps subdivides ruled faces across their rails.
	ruledSteps = 4
)

// segments is the number of chords that approximate an edge.
func segments(e *tshape) int {
	switch e.curve.(type) {
	case geom.Line:
		return 1
	case geom.Circle:
		return max(2, int(math.Ceil(math.Abs(e.u1-e.u0)/(2*math.Pi)*circleSegments)))
	default:
		return curveSegments
	}
}

func edgeLength(e *tshape) float64 {
	switch c := e.curve.(type) {
	case geom.Line:
		return math.Abs(e.u1-e.u0) * c.Direction.Magnitude()
	case geom.Circle:
		return math.Abs(e.u1-e.u0) * c.Radius
	}
	pts := ref{t: e}.samples(curveSegments)
	l := 0.0
	for i := 1; i < len(pts); i++ {
		l += pts[i].Distance(pts[i-1])
	}
	return l
}

// triangles approximates a face by triangles that turn around the face
// normal, following the reference orientation.
func triangles(f ref) [][3]geom.Point {
	var tris [][3]geom.Point
	s := f.t.surf
	if !s.ruled() {
		for _, w := range (ref{t: f.t}).children() {
			pts := loopPoints(w)
			c := centroid(pts)
			for i, p := range pts {
				tris = append(tris, [3]geom.Point{c, p, pts[(i+1)%len(pts)]})
			}
		}
	} else {
		ns := max(segments(s.rail0.t), segments(s.rail1.t))
		grid := make([][]geom.Point, ns+1)
		for i := range grid {
			u := float64(i) / float64(ns)
			grid[i] = make([]geom.Point, ruledSteps+1)
			for j := range grid[i] {
				grid[i][j] = s.at(u, float64(j)/ruledSteps)
			}
		}
		for i := 0; i < ns; i++ {
			for j := 0; j < ruledSteps; j++ {
				p00, p10 := grid[i][j], grid[i+1][j]
				p01, p11 := grid[i][j+1], grid[i+1][j+1]
				tris = append(tris, [3]geom.Point{p00, p10, p11}, [3]geom.Point{p00, p11, p01})
			}
		}
	}
	if f.rev {
		for i := range tris {
			tris[i][1], tris[i][2] = tris[i][2], tris[i][1]
		}
	}
	return tris
}

func faceArea(f *tshape) float64 {
	if !f.surf.ruled() {
		a := 0.0
		for i, w := range f.children {
			m := newell(loopPoints(w)).Magnitude() / 2
			if i > 0 {
				m = -m
			}
			a += m
		}
		return a
	}
	a := 0.0
	for _, t := range triangles(ref{t: f}) {
		a += t[1].Sub(t[0]).Cross(t[2].Sub(t[0])).Magnitude() / 2
	}
	return a
}

// solidVolume sums the signed volumes of the tetrahedra spanned by the
// origin and the boundary triangles.
func solidVolume(s ref) float64 {
	v := 0.0
	for _, sh := range s.children() {
		for _, f := range sh.children() {
			for _, t := range triangles(f) {
				v += t[0].Vector().Dot(t[1].Vector().Cross(t[2].Vector())) / 6
			}
		}
	}
	return math.Abs(v)
}

// Properties measures the distinct edges, faces and solids of h.
func (k *Kernel) Properties(h types.Handle) (types.Properties, error) {
	r, err := k.refOf(h)
	if err != nil {
		return types.Properties{}, err
	}
	var p types.Properties
	for _, e := range collect(r, types.KindEdge) {
		p.Length += edgeLength(e.t)
	}
	for _, f := range collect(r, types.KindFace) {
		p.Area += faceArea(f.t)
	}
	for _, s := range collect(r, types.KindSolid) {
		p.Volume += solidVolume(s)
	}
	return p, nil
}

// box is an axis-aligned bounding box.
type box struct {
	min, max geom.Point
	empty    bool
}

func (b *box) add(p geom.Point) {
	if b.empty {
		b.min, b.max, b.empty = p, p, false
		return
	}
	b.min = geom.Pt(math.Min(b.min.X, p.X), math.Min(b.min.Y, p.Y), math.Min(b.min.Z, p.Z))
	b.max = geom.Pt(math.Max(b.max.X, p.X), math.Max(b.max.Y, p.Y), math.Max(b.max.Z, p.Z))
}

// overlaps reports whether the boxes touch or intersect.
func (b box) overlaps(o box) bool {
	if b.empty || o.empty {
		return false
	}
	return b.min.X <= o.max.X+tolerance && o.min.X <= b.max.X+tolerance &&
		b.min.Y <= o.max.Y+tolerance && o.min.Y <= b.max.Y+tolerance &&
		b.min.Z <= o.max.Z+tolerance && o.min.Z <= b.max.Z+tolerance
}

func (b box) diagonal() float64 {
	if b.empty {
		return 0
	}
	return b.min.Distance(b.max)
}

func boundsOf(r ref) box {
	b := box{empty: true}
	for _, v := range collect(r, types.KindVertex) {
		b.add(v.t.point)
	}
	for _, e := range collect(r, types.KindEdge) {
		for _, p := range (ref{t: e.t}).samples(segments(e.t)) {
			b.add(p)
		}
	}
	return b
}

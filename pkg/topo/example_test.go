package topo_test

import (
	"fmt"

	"github.com/joshuapare/brepkit/pkg/geom"
	"github.com/joshuapare/brepkit/pkg/topo"
	"github.com/joshuapare/brepkit/pkg/types"
)

// Example builds a unit cube by extruding a square face.
func Example() {
	pts := []geom.Point{geom.Pt(0, 0, 0), geom.Pt(1, 0, 0), geom.Pt(1, 1, 0), geom.Pt(0, 1, 0)}
	var edges []topo.Edge
	for i := range pts {
		e, err := topo.EdgeByPoints(pts[i], pts[(i+1)%len(pts)])
		if err != nil {
			fmt.Println(err)
			return
		}
		edges = append(edges, e)
	}
	wire, _ := topo.WireByEdges(edges)
	face, _ := topo.FaceByWire(wire)
	cube, err := face.Extrude(geom.Vec(0, 0, 1))
	if err != nil {
		fmt.Println(err)
		return
	}

	faces, _ := cube.Faces()
	cubeEdges, _ := cube.Edges()
	volume, _ := cube.Volume()
	fmt.Println(cube.Kind(), faces.Size(), cubeEdges.Size())
	fmt.Printf("volume %.3f\n", volume)
	// Output:
	// Solid 6 12
	// volume 1.000
}

// ExampleMap_At shows negative indexing and the not-found result.
func ExampleMap_At() {
	a, _ := topo.EdgeByPoints(geom.Pt(0, 0, 0), geom.Pt(1, 0, 0))
	b, _ := topo.EdgeByPoints(geom.Pt(1, 0, 0), geom.Pt(1, 1, 0))
	wire, _ := topo.WireByEdges([]topo.Edge{a, b})
	vertices, _ := wire.Vertices()

	last, _ := vertices.At(-1)
	i, ok := vertices.FindIndex(last)
	fmt.Println(vertices.Size(), i, ok)

	_, err := vertices.At(vertices.Size())
	fmt.Println(err)

	stray, _ := topo.VertexByPoint(geom.Pt(9, 9, 9))
	fmt.Println(vertices.FindIndex(stray))
	// Output:
	// 3 2 true
	// index 3 out of range [0:3]
	// 0 false
}

// ExampleExplorer shows that shared edges are visited once per face.
func ExampleExplorer() {
	pts := []geom.Point{geom.Pt(0, 0, 0), geom.Pt(1, 0, 0), geom.Pt(0, 1, 0)}
	var edges []topo.Edge
	for i := range pts {
		e, _ := topo.EdgeByPoints(pts[i], pts[(i+1)%len(pts)])
		edges = append(edges, e)
	}
	wire, _ := topo.WireByEdges(edges)
	face, _ := topo.FaceByWire(wire)
	prism, _ := face.Extrude(geom.Vec(0, 0, 1))

	occurrences, _ := prism.Explore(types.KindEdge, types.KindShape).Collect()
	distinct, _ := prism.Edges()
	fmt.Println(len(occurrences), distinct.Size())
	// Output:
	// 18 9
}

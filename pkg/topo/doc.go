// Package topo is the shape façade of brepkit.
//
// Every topological entity produced by the modelling kernel is wrapped in
// one of eight variant types (Vertex, Edge, Wire, Face, Shell, Solid,
// CompSolid, Compound) that together form the closed sum type Shape. The
// façade never computes geometry itself: it forwards requests to the kernel
// installed with SetKernel (a pure-Go reference kernel by default) and
// re-wraps every handle the kernel returns through ByHandle, which picks the
// variant from the kernel's kind tag.
//
// Shapes are immutable. Operations such as Extrude, Unite or Fillet return
// new shapes; the stateful tool types (UniteShapes, ExtrudeShape, LoftShape,
// ...) expose the underlying operation when callers need its lineage
// (generated and modified sub-shapes, first and last shapes of a sweep).
//
// Collections translate the kernel's 1-based indexing: Map offers 0-based
// and negative indices and reports a missing shape as (0, false), while
// Explorer walks occurrences with a restartable cursor.
//
// Example:
//
//	base, _ := topo.WireByEdges(edges)
//	face, _ := topo.FaceByWire(base)
//	solid, _ := face.Extrude(geom.Vec(0, 0, 10))
//	edgesOfSolid, _ := solid.Edges()
//	fmt.Println(edgesOfSolid.Size())
package topo

package types

// MeshControl configures meshing of a shape for one dimension.
type MeshControl struct {
	Dimension  int      // 1, 2 or 3
	Shape      Handle   // shape the control applies to
	EdgeSize   *float64 // target element edge length, nil for the kernel default
	Deflection *float64 // maximum chordal deviation, nil for the kernel default
	AllowQuads bool     // 2D only: prefer quadrilaterals
}

// MeshStats counts the entities of a computed mesh.
type MeshStats struct {
	Nodes       int
	Edges       int
	Faces       int
	Triangles   int
	Quadrangles int
	Tetras      int
}

// MeshResult is a computed mesh owned by the kernel.
type MeshResult interface {
	Stats() MeshStats
	// ExportUNV writes the mesh as an I-DEAS universal file.
	ExportUNV(path string) error
}

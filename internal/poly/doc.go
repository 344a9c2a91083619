// Package poly is a reference modelling kernel for linear and ruled geometry.
//
// It implements types.Kernel in pure Go so that the façade in pkg/topo can be
// used without a native kernel. Topology follows the usual B-rep layering:
// vertices bound edges, edges (with orientation) form wires, wires bound
// faces, faces form shells, shells bound solids, and compounds group
// anything. Entities are shared between the shapes that reference them and
// every reference carries an orientation.
//
// Geometry is limited to what can be computed exactly or by plain
// discretization: faces are planar or ruled between two rail edges.
// Requests that need tolerant surface intersection or blending (booleans on
// overlapping operands, fillets, thick solids with removed faces, smooth
// lofts through more than two sections) fail with a kernel error.
package poly

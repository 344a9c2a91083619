// Package types defines the boundary between the shape façade and a
// boundary-representation modelling kernel.
//
// This package only exposes interfaces and core types. The façade in
// pkg/topo talks exclusively to these interfaces; a kernel implementation
// (the pure-Go reference kernel in internal/poly, a native binding, or a test
// double) provides them.
//
// Kernel conventions the façade adapts:
//   - Indexed sub-shape collections are 1-based; FindIndex returns 0 when
//     the shape is absent.
//   - Exploration is a forward-only More/Current/Next protocol.
//   - Every operation is a stateful builder: construct, optionally
//     configure, Build, then query IsDone/Shape/Generated/Modified.
//
// Typed errors with stable categories live in api.go.
//
// This package depends only on pkg/geom and the standard library.
package types

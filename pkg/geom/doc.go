// Package geom provides the geometric primitives consumed by the shape layer:
// points, vectors, frames, affine transforms, 3D and 2D curves and surfaces.
//
// All types are immutable values. They carry exact analytic definitions and
// evaluate in closed form; anything that needs approximation (intersection,
// projection, tessellation) belongs to the modelling kernel, not here.
//
// Conventions:
//   - Angles are in radians.
//   - Frames are right-handed when built by the constructors in this package;
//     a frame produced by a mirroring transform is left-handed and keeps its
//     X and Y axes so that curves defined in it still evaluate correctly.
package geom

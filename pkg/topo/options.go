package topo

// DefaultThickenTolerance is the tolerance used by thicken in join mode when
// ThickenOptions.Tolerance is zero.
const DefaultThickenTolerance = 1e-3

// defaultLoftTolerance is the 3D approximation tolerance of smooth lofts.
const defaultLoftTolerance = 1e-6

// LoftOptions configures a loft.
type LoftOptions struct {
	// Solid closes the loft with planar caps to produce a solid; otherwise
	// the result is a shell.
	Solid bool
	// Ruled joins consecutive sections with ruled faces instead of a smooth
	// surface.
	Ruled bool
	// Tolerance is the 3D approximation tolerance. Zero selects the default.
	Tolerance float64
}

// DefaultLoftOptions returns the options of a smooth shell loft.
func DefaultLoftOptions() LoftOptions {
	return LoftOptions{Tolerance: defaultLoftTolerance}
}

func (o LoftOptions) tolerance() float64 {
	if o.Tolerance <= 0 {
		return defaultLoftTolerance
	}
	return o.Tolerance
}

// ThickenOptions configures a thicken operation.
type ThickenOptions struct {
	// Faces selects join mode: the listed faces are removed and the rest of
	// the shape is offset into a hollow solid. Without faces, a face or
	// shell is thickened into a solid.
	Faces []Face
	// Tolerance applies to join mode only. Zero selects
	// DefaultThickenTolerance.
	Tolerance float64
}

func (o ThickenOptions) tolerance() float64 {
	if o.Tolerance <= 0 {
		return DefaultThickenTolerance
	}
	return o.Tolerance
}

// ExportOptions carries the descriptive fields of an exported file.
type ExportOptions struct {
	Name         string
	Description  string
	Author       string
	Organization string
}

// EdgeRadius pairs an edge with its fillet radius.
type EdgeRadius struct {
	Edge   Edge
	Radius float64
}

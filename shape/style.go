package shape

import "github.com/gopix/pix"

// FillKind selects how a shape's interior is painted.
type FillKind int

const (
	// FillSolid paints the interior with a single color.
	FillSolid FillKind = iota
	// FillLinearGradient paints a linear color transition across the shape.
	FillLinearGradient
	// FillRadialGradient paints a radial color transition from the center.
	FillRadialGradient
	// FillNone leaves the interior unpainted (stroke only).
	FillNone
)

// Style describes how a shape is painted: fill kind with its colors,
// plus an optional stroke.
type Style struct {
	Fill FillKind

	// Color is the fill color for FillSolid.
	Color pix.RGBA

	// GradientStart and GradientEnd are the end colors for gradient fills.
	// Linear gradients run across the shape's bounding box diagonal,
	// radial gradients from its center outwards.
	GradientStart pix.RGBA
	GradientEnd   pix.RGBA

	// StrokeWidth of 0 means no stroke.
	StrokeWidth float64
	StrokeColor pix.RGBA
}

// SolidStyle creates a stroke-less solid fill style.
func SolidStyle(c pix.RGBA) Style {
	return Style{Fill: FillSolid, Color: c}
}

// LinearGradientStyle creates a stroke-less linear gradient fill style.
func LinearGradientStyle(start, end pix.RGBA) Style {
	return Style{Fill: FillLinearGradient, GradientStart: start, GradientEnd: end}
}

// RadialGradientStyle creates a stroke-less radial gradient fill style.
func RadialGradientStyle(center, edge pix.RGBA) Style {
	return Style{Fill: FillRadialGradient, GradientStart: center, GradientEnd: edge}
}

// HasGradient reports whether the fill uses a gradient. Gradient fills are
// incompatible with non-default paint composites and force the owning layer
// to composite through a cached raster.
func (s Style) HasGradient() bool {
	return s.Fill == FillLinearGradient || s.Fill == FillRadialGradient
}

package pix

// BlendMode defines how source pixels are combined with destination pixels
// when a layer or buffer is composited.
type BlendMode uint8

const (
	// BlendNormal performs standard alpha blending (source over destination).
	BlendNormal BlendMode = iota

	// BlendMultiply multiplies source and destination colors.
	// Result is always darker or equal. Formula: dst * src
	BlendMultiply

	// BlendScreen performs inverse multiply for lighter results.
	// Formula: 1 - (1-dst) * (1-src)
	BlendScreen

	// BlendOverlay combines multiply and screen based on destination brightness.
	BlendOverlay

	// BlendDarken keeps the darker of source and destination.
	BlendDarken

	// BlendLighten keeps the lighter of source and destination.
	BlendLighten

	// BlendDifference takes the absolute difference of source and destination.
	BlendDifference
)

// String returns a string representation of the blend mode.
func (b BlendMode) String() string {
	switch b {
	case BlendNormal:
		return "Normal"
	case BlendMultiply:
		return "Multiply"
	case BlendScreen:
		return "Screen"
	case BlendOverlay:
		return "Overlay"
	case BlendDarken:
		return "Darken"
	case BlendLighten:
		return "Lighten"
	case BlendDifference:
		return "Difference"
	default:
		return "Unknown"
	}
}

// SupportsGradients reports whether painting gradient fills directly under
// this mode is safe. Only plain source-over blending is; every other mode
// requires rasterizing the gradient into an off-screen buffer first and
// compositing that buffer.
func (b BlendMode) SupportsGradients() bool {
	return b == BlendNormal
}

// blendFunc combines an unpremultiplied source and destination color channel
// value, both in [0, 1], for a separable blend mode.
type blendFunc func(s, d float64) float64

// separableFunc returns the channel blend function for a separable mode,
// or nil for plain source-over.
func (b BlendMode) separableFunc() blendFunc {
	switch b {
	case BlendMultiply:
		return func(s, d float64) float64 { return s * d }
	case BlendScreen:
		return func(s, d float64) float64 { return s + d - s*d }
	case BlendOverlay:
		return func(s, d float64) float64 {
			if d <= 0.5 {
				return 2 * s * d
			}
			return 1 - 2*(1-s)*(1-d)
		}
	case BlendDarken:
		return func(s, d float64) float64 {
			if s < d {
				return s
			}
			return d
		}
	case BlendLighten:
		return func(s, d float64) float64 {
			if s > d {
				return s
			}
			return d
		}
	case BlendDifference:
		return func(s, d float64) float64 {
			if s > d {
				return s - d
			}
			return d - s
		}
	default:
		return nil
	}
}

// blendPixel combines unpremultiplied source and destination colors.
// Source-over when fn is nil, otherwise the W3C separable compositing
// formula: Cs' = (1-ab)*Cs + ab*B(Cb, Cs), then source-over.
func blendPixel(src, dst RGBA, fn blendFunc) RGBA {
	if fn != nil {
		src = RGBA{
			R: (1-dst.A)*src.R + dst.A*fn(src.R, dst.R),
			G: (1-dst.A)*src.G + dst.A*fn(src.G, dst.G),
			B: (1-dst.A)*src.B + dst.A*fn(src.B, dst.B),
			A: src.A,
		}
	}
	outA := src.A + dst.A*(1-src.A)
	if outA == 0 {
		return RGBA{}
	}
	return RGBA{
		R: (src.R*src.A + dst.R*dst.A*(1-src.A)) / outA,
		G: (src.G*src.A + dst.G*dst.A*(1-src.A)) / outA,
		B: (src.B*src.A + dst.B*dst.A*(1-src.A)) / outA,
		A: outA,
	}
}

package filter

import (
	"fmt"

	"github.com/gopix/pix"
)

// ColorMatrix applies a 4x5 color transformation matrix to an image.
// The transformation is:
//
//	[R']   [a00 a01 a02 a03 a04]   [R]
//	[G'] = [a10 a11 a12 a13 a14] * [G]
//	[B']   [a20 a21 a22 a23 a24]   [B]
//	[A']   [a30 a31 a32 a33 a34]   [A]
//	                               [1]
//
// The fifth column provides bias/offset values. Color values are in [0, 1]
// during transformation, then clamped back to valid range.
type ColorMatrix struct {
	name string

	// Matrix is the 4x5 transformation matrix in row-major order.
	// [0-4] = row 0 (R), [5-9] = row 1 (G), [10-14] = row 2 (B), [15-19] = row 3 (A)
	Matrix [20]float64
}

// Name implements Filter.
func (f *ColorMatrix) Name() string { return f.name }

// Params implements Filter.
func (f *ColorMatrix) Params() string {
	return fmt.Sprintf("matrix=%v", f.Matrix)
}

// Transform implements Filter. The source is never mutated; the result is a
// newly allocated pixmap of the same dimensions.
func (f *ColorMatrix) Transform(src *pix.Pixmap) (*pix.Pixmap, error) {
	dst, err := pix.NewPixmapChecked(src.Width(), src.Height())
	if err != nil {
		return nil, err
	}

	m := &f.Matrix
	b := src.Bounds()
	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			c := src.GetPixel(b.Min.X+x, b.Min.Y+y)
			dst.SetPixel(x, y, pix.RGBA{
				R: clamp01(m[0]*c.R + m[1]*c.G + m[2]*c.B + m[3]*c.A + m[4]),
				G: clamp01(m[5]*c.R + m[6]*c.G + m[7]*c.B + m[8]*c.A + m[9]),
				B: clamp01(m[10]*c.R + m[11]*c.G + m[12]*c.B + m[13]*c.A + m[14]),
				A: clamp01(m[15]*c.R + m[16]*c.G + m[17]*c.B + m[18]*c.A + m[19]),
			})
		}
	}
	return dst, nil
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// NewIdentity creates a color matrix filter that passes pixels through
// unchanged.
func NewIdentity() *ColorMatrix {
	return &ColorMatrix{
		name: "Identity",
		Matrix: [20]float64{
			1, 0, 0, 0, 0,
			0, 1, 0, 0, 0,
			0, 0, 1, 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// NewBrightness creates a filter that scales brightness.
// factor: 0.0 = black, 1.0 = unchanged, 2.0 = twice as bright.
func NewBrightness(factor float64) *ColorMatrix {
	return &ColorMatrix{
		name: "Brightness",
		Matrix: [20]float64{
			factor, 0, 0, 0, 0,
			0, factor, 0, 0, 0,
			0, 0, factor, 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// NewContrast creates a filter that adjusts contrast.
// factor: 0.0 = gray, 1.0 = unchanged, 2.0 = high contrast.
func NewContrast(factor float64) *ColorMatrix {
	offset := 0.5 * (1 - factor)
	return &ColorMatrix{
		name: "Contrast",
		Matrix: [20]float64{
			factor, 0, 0, 0, offset,
			0, factor, 0, 0, offset,
			0, 0, factor, 0, offset,
			0, 0, 0, 1, 0,
		},
	}
}

// NewSaturation creates a filter that adjusts color saturation.
// factor: 0.0 = grayscale, 1.0 = unchanged, 2.0 = oversaturated.
func NewSaturation(factor float64) *ColorMatrix {
	// Luminance weights (Rec. 709).
	const (
		lumR = 0.2126
		lumG = 0.7152
		lumB = 0.0722
	)
	inv := 1 - factor
	return &ColorMatrix{
		name: "Saturation",
		Matrix: [20]float64{
			lumR*inv + factor, lumG * inv, lumB * inv, 0, 0,
			lumR * inv, lumG*inv + factor, lumB * inv, 0, 0,
			lumR * inv, lumG * inv, lumB*inv + factor, 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// NewGrayscale creates a filter converting to luminance grayscale.
func NewGrayscale() *ColorMatrix {
	f := NewSaturation(0)
	f.name = "Grayscale"
	return f
}

// NewInvert creates a filter inverting the color channels.
func NewInvert() *ColorMatrix {
	return &ColorMatrix{
		name: "Invert",
		Matrix: [20]float64{
			-1, 0, 0, 0, 1,
			0, -1, 0, 0, 1,
			0, 0, -1, 0, 1,
			0, 0, 0, 1, 0,
		},
	}
}

// NewSepia creates a classic sepia-tone filter.
func NewSepia() *ColorMatrix {
	return &ColorMatrix{
		name: "Sepia",
		Matrix: [20]float64{
			0.393, 0.769, 0.189, 0, 0,
			0.349, 0.686, 0.168, 0, 0,
			0.272, 0.534, 0.131, 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

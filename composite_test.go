package pix

import (
	"image"
	"math"
	"testing"
)

func colorsClose(a, b RGBA, tol float64) bool {
	return math.Abs(a.R-b.R) <= tol && math.Abs(a.G-b.G) <= tol &&
		math.Abs(a.B-b.B) <= tol && math.Abs(a.A-b.A) <= tol
}

func solidPixmap(w, h int, c RGBA) *Pixmap {
	pm := NewPixmap(w, h)
	pm.Clear(c)
	return pm
}

func TestCompositeSourceOver(t *testing.T) {
	dst := solidPixmap(4, 4, White)
	src := solidPixmap(4, 4, Red)

	Composite(dst, src, image.Point{}, BlendNormal, 1.0, nil)

	if got := dst.GetPixel(0, 0); !colorsClose(got, Red, 0.01) {
		t.Errorf("opaque source over = %+v, want red", got)
	}
}

func TestCompositeOpacity(t *testing.T) {
	dst := solidPixmap(4, 4, White)
	src := solidPixmap(4, 4, Black)

	Composite(dst, src, image.Point{}, BlendNormal, 0.5, nil)

	want := RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1}
	if got := dst.GetPixel(1, 1); !colorsClose(got, want, 0.01) {
		t.Errorf("50%% black over white = %+v, want mid gray", got)
	}
}

func TestCompositeBlendModes(t *testing.T) {
	tests := []struct {
		name string
		mode BlendMode
		src  RGBA
		dst  RGBA
		want RGBA
	}{
		{"multiply", BlendMultiply, RGB(0.5, 1, 1), RGB(0.5, 0.5, 1), RGB(0.25, 0.5, 1)},
		{"screen", BlendScreen, RGB(0.5, 0, 0), RGB(0.5, 0, 1), RGB(0.75, 0, 1)},
		{"darken", BlendDarken, RGB(0.3, 0.8, 0), RGB(0.6, 0.2, 1), RGB(0.3, 0.2, 0)},
		{"lighten", BlendLighten, RGB(0.3, 0.8, 0), RGB(0.6, 0.2, 1), RGB(0.6, 0.8, 1)},
		{"difference", BlendDifference, RGB(0.3, 0.9, 1), RGB(0.8, 0.2, 1), RGB(0.5, 0.7, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := solidPixmap(2, 2, tt.dst)
			src := solidPixmap(2, 2, tt.src)
			Composite(dst, src, image.Point{}, tt.mode, 1.0, nil)
			if got := dst.GetPixel(0, 0); !colorsClose(got, tt.want, 0.02) {
				t.Errorf("%s: got %+v, want %+v", tt.name, got, tt.want)
			}
		})
	}
}

func TestCompositeOffsetAndClipping(t *testing.T) {
	dst := NewPixmap(4, 4)
	src := solidPixmap(4, 4, Red)

	// Half of the source hangs off the destination.
	Composite(dst, src, image.Pt(2, 2), BlendNormal, 1.0, nil)

	if got := dst.GetPixel(1, 1); got != Transparent {
		t.Errorf("pixel outside target = %+v, want transparent", got)
	}
	if got := dst.GetPixel(3, 3); !colorsClose(got, Red, 0.01) {
		t.Errorf("pixel inside target = %+v, want red", got)
	}
}

func TestCompositeWithMask(t *testing.T) {
	dst := NewPixmap(4, 4)
	src := solidPixmap(4, 4, Blue)

	mask := NewMask(4, 4)
	mask.Set(0, 0, 255)
	mask.Set(1, 0, 128)

	Composite(dst, src, image.Point{}, BlendNormal, 1.0, mask)

	if got := dst.GetPixel(0, 0); !colorsClose(got, Blue, 0.01) {
		t.Errorf("fully masked-in pixel = %+v, want blue", got)
	}
	if got := dst.GetPixel(1, 0).A; math.Abs(got-0.5) > 0.01 {
		t.Errorf("half-masked alpha = %v, want 0.5", got)
	}
	if got := dst.GetPixel(2, 2); got != Transparent {
		t.Errorf("masked-out pixel = %+v, want transparent", got)
	}
}

func TestSupportsGradients(t *testing.T) {
	if !BlendNormal.SupportsGradients() {
		t.Error("BlendNormal must support direct gradient painting")
	}
	for _, mode := range []BlendMode{BlendMultiply, BlendScreen, BlendOverlay, BlendDarken, BlendLighten, BlendDifference} {
		if mode.SupportsGradients() {
			t.Errorf("%v must not support direct gradient painting", mode)
		}
	}
}

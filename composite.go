package pix

import (
	"image"
	"image/color"
)

// Composite draws src onto dst with its top-left corner at the given point
// in dst-local coordinates, combining pixels with the given blend mode.
//
// Opacity in [0, 1] scales the source alpha uniformly. A non-nil mask
// additionally scales the source alpha per pixel; the mask is indexed in
// dst-local coordinates (the convention used by selection masks, which are
// canvas sized). Pixels outside either buffer are ignored.
//
// This is the single compositing primitive of the engine: layer painting,
// temporary drawing-layer merges and cached-raster composites all go
// through it.
func Composite(dst, src *Pixmap, at image.Point, mode BlendMode, opacity float64, mask *Mask) {
	if dst == nil || src == nil || opacity <= 0 {
		return
	}
	if opacity > 1 {
		opacity = 1
	}

	db := dst.rgba.Bounds()
	sb := src.rgba.Bounds()

	// Overlap of the translated source with dst, in dst-local coordinates.
	target := image.Rect(at.X, at.Y, at.X+sb.Dx(), at.Y+sb.Dy()).
		Intersect(image.Rect(0, 0, db.Dx(), db.Dy()))
	if target.Empty() {
		return
	}

	fn := mode.separableFunc()

	for y := target.Min.Y; y < target.Max.Y; y++ {
		for x := target.Min.X; x < target.Max.X; x++ {
			alpha := opacity
			if mask != nil {
				alpha *= float64(mask.At(x, y)) / 255
				if alpha == 0 {
					continue
				}
			}

			s := FromColor(src.rgba.RGBAAt(sb.Min.X+x-at.X, sb.Min.Y+y-at.Y))
			if s.A == 0 && fn == nil {
				continue
			}
			s.A *= alpha

			d := FromColor(dst.rgba.RGBAAt(db.Min.X+x, db.Min.Y+y))
			out := blendPixel(s, d, fn)
			dst.rgba.SetRGBA(db.Min.X+x, db.Min.Y+y, rgbaToPremul(out))
		}
	}
}

// rgbaToPremul converts an unpremultiplied RGBA color to the premultiplied
// byte representation used by image.RGBA.
func rgbaToPremul(c RGBA) color.RGBA {
	a := clamp255(c.A * 255)
	return color.RGBA{
		R: uint8(clamp255(c.R*255) * a / 255),
		G: uint8(clamp255(c.G*255) * a / 255),
		B: uint8(clamp255(c.B*255) * a / 255),
		A: uint8(a),
	}
}

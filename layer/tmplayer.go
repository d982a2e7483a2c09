package layer

import (
	"image"

	"github.com/gopix/pix"
)

// TmpDrawingLayer is the transient overlay buffer active while an
// interactive brush stroke is in progress. The stroke paints into the
// overlay; aborting the stroke simply never merges it, leaving committed
// pixels untouched. The overlay is exclusively owned by the single active
// stroke.
type TmpDrawingLayer struct {
	owner         Drawable
	pixmap        *pix.Pixmap
	mode          pix.BlendMode
	softSelection bool
}

// Pixmap returns the canvas-sized overlay buffer brush tools paint into.
func (t *TmpDrawingLayer) Pixmap() *pix.Pixmap { return t.pixmap }

// BlendMode returns the paint composite the overlay will be merged with.
func (t *TmpDrawingLayer) BlendMode() pix.BlendMode { return t.mode }

// mergeInto composites the overlay into the owner's pixel buffer. The
// overlay is canvas-sized while the owner's buffer sits at its translation
// offset, so the overlay lands at (-tx, -ty) in buffer coordinates. With
// softSelection set, the active selection's alpha mask attenuates the
// merge.
func (t *TmpDrawingLayer) mergeInto(dst *pix.Pixmap, sel *Selection, tx, ty int) {
	var mask *pix.Mask
	if t.softSelection && sel != nil && sel.Mask() != nil {
		mask = sel.Mask()
		if tx != 0 || ty != 0 {
			mask = shiftMask(mask, -tx, -ty, dst.Width(), dst.Height())
		}
	}
	pix.Composite(dst, t.pixmap, image.Pt(-tx, -ty), t.mode, 1.0, mask)
}

// shiftMask rebuilds a mask in a buffer's local coordinate space, offset
// by (dx, dy), with the given dimensions.
func shiftMask(m *pix.Mask, dx, dy, w, h int) *pix.Mask {
	out := pix.NewMask(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(x, y, m.At(x-dx, y-dy))
		}
	}
	return out
}

package layer

import (
	"image"
	stddraw "image/draw"
	"sync/atomic"

	xdraw "golang.org/x/image/draw"

	"github.com/gopix/pix"
	"github.com/gopix/pix/history"
	"github.com/gopix/pix/tool"
)

// ImageLayer is a pixel-bearing layer: it owns a pixel buffer and realizes
// the Drawable capability. The buffer's extent may exceed the canvas; its
// top-left corner sits at the layer's translation offset (tx, ty) in
// canvas coordinates.
type ImageLayer struct {
	ContentLayer

	image   *pix.Pixmap
	preview *pix.Pixmap
	tmp     *TmpDrawingLayer

	tweening bool
	busy     atomic.Bool

	// self is the layer this drawable belongs to: the layer itself for
	// ordinary image layers, the owning layer for masks.
	self Layer
}

// NewImageLayer creates a transparent canvas-sized image layer.
func NewImageLayer(comp *Composition, name string) *ImageLayer {
	l := &ImageLayer{
		ContentLayer: newContentLayer(comp, name),
		image:        pix.NewPixmap(comp.Canvas().Width(), comp.Canvas().Height()),
	}
	l.self = l
	return l
}

// NewImageLayerFromPixmap creates an image layer owning the given buffer.
func NewImageLayerFromPixmap(comp *Composition, name string, pm *pix.Pixmap) *ImageLayer {
	l := &ImageLayer{
		ContentLayer: newContentLayer(comp, name),
		image:        pm,
	}
	l.self = l
	return l
}

// TypeString implements Layer.
func (l *ImageLayer) TypeString() string { return "Image Layer" }

// Image implements Drawable.
func (l *ImageLayer) Image() *pix.Pixmap { return l.image }

// SetImage implements Drawable: a full overwrite that ignores any active
// selection.
func (l *ImageLayer) SetImage(img *pix.Pixmap) {
	l.image = img
	l.Update()
}

// StartTweening implements Drawable.
func (l *ImageLayer) StartTweening() { l.tweening = true }

// EndTweening implements Drawable.
func (l *ImageLayer) EndTweening() { l.tweening = false }

// ChangeImageForUndoRedo implements Drawable. With ignoreSelection unset
// and a selection active, img must match the selection bounds; only that
// region is replaced, with a hard copy so that applying the inverse edit
// restores the prior buffer bit for bit.
func (l *ImageLayer) ChangeImageForUndoRedo(img *pix.Pixmap, ignoreSelection bool) {
	sel := l.comp.Selection()
	if ignoreSelection || sel == nil {
		l.image = img
		l.Update()
		return
	}
	region := sel.Bounds().Sub(image.Pt(l.tx, l.ty))
	target := l.image.View(region).RGBA()
	stddraw.Draw(target, target.Bounds(), img.RGBA(), img.RGBA().Bounds().Min, stddraw.Src)
	l.Update()
}

// CreateTmpDrawingLayer implements Drawable.
func (l *ImageLayer) CreateTmpDrawingLayer(mode pix.BlendMode, softSelection bool) *TmpDrawingLayer {
	canvas := l.comp.Canvas()
	l.tmp = &TmpDrawingLayer{
		owner:         l,
		pixmap:        pix.NewPixmap(canvas.Width(), canvas.Height()),
		mode:          mode,
		softSelection: softSelection,
	}
	return l.tmp
}

// MergeTmpDrawingLayerDown implements Drawable. Without an active overlay
// it is a no-op; aborting a stroke is simply never calling this.
func (l *ImageLayer) MergeTmpDrawingLayerDown() {
	if l.tmp == nil {
		return
	}
	l.tmp.mergeInto(l.image, l.comp.Selection(), l.tx, l.ty)
	l.tmp = nil
	l.Update()
}

// CanvasSizedSubImage implements Drawable. The result always has canvas
// bounds: a buffer that does not cover the whole canvas is composed into a
// fresh canvas-sized buffer instead of being clipped.
func (l *ImageLayer) CanvasSizedSubImage() *pix.Pixmap {
	canvas := l.comp.Canvas()
	if l.tx == 0 && l.ty == 0 &&
		l.image.Width() == canvas.Width() && l.image.Height() == canvas.Height() {
		return l.image
	}
	region := canvas.Bounds().Sub(image.Pt(l.tx, l.ty))
	if region.In(l.image.Bounds()) {
		return l.image.View(region)
	}
	out := pix.NewPixmap(canvas.Width(), canvas.Height())
	b := l.image.Bounds()
	stddraw.Draw(out.RGBA(), b.Sub(b.Min).Add(image.Pt(l.tx, l.ty)), l.image.RGBA(), b.Min, stddraw.Src)
	return out
}

// FilterSourceImage implements Drawable. Without a selection the full
// buffer is filtered, so committing the result is a clean buffer swap
// regardless of translation.
func (l *ImageLayer) FilterSourceImage() *pix.Pixmap {
	if l.comp.Selection() != nil {
		return l.SelectedSubImage(false)
	}
	return l.image
}

// SelectedSubImage implements Drawable.
func (l *ImageLayer) SelectedSubImage(copyIfNoSelection bool) *pix.Pixmap {
	sel := l.comp.Selection()
	if sel == nil {
		if copyIfNoSelection {
			return l.image.Clone()
		}
		return l.image
	}
	return l.image.SubPixmap(sel.Bounds().Sub(image.Pt(l.tx, l.ty)))
}

// ImageForFilterDialogs implements Drawable: only the selection is
// considered, not the canvas.
func (l *ImageLayer) ImageForFilterDialogs() *pix.Pixmap {
	if l.comp.Selection() != nil {
		return l.SelectedSubImage(false)
	}
	return l.image
}

// ChangePreviewImage implements Drawable. The preview replaces what the
// layer shows without touching committed pixels; with a selection active
// the preview covers only the selected region.
func (l *ImageLayer) ChangePreviewImage(preview *pix.Pixmap, filterName string, ctx FilterContext) {
	sel := l.comp.Selection()
	if sel == nil {
		l.preview = preview
	} else {
		shown := l.image.Clone()
		region := sel.Bounds().Sub(image.Pt(l.tx, l.ty))
		target := shown.View(region).RGBA()
		stddraw.Draw(target, target.Bounds(), preview.RGBA(), preview.RGBA().Bounds().Min, stddraw.Src)
		l.preview = shown
	}
	pix.Logger().Debug("preview image changed", "filter", filterName, "context", ctx.String())
	l.comp.Invalidate()
}

// CancelPreview implements Drawable.
func (l *ImageLayer) CancelPreview() {
	l.preview = nil
	l.comp.Invalidate()
}

// CommitFilter implements Drawable. The destination is fully computed
// before any committed state changes, so the commit is an atomic swap.
// During a tweening window no history entry is recorded.
func (l *ImageLayer) CommitFilter(dest *pix.Pixmap, filterName string) {
	sel := l.comp.Selection()
	ignore := sel == nil

	var before *pix.Pixmap
	if ignore {
		before = l.image
	} else {
		before = l.SelectedSubImage(true)
	}

	l.ChangeImageForUndoRedo(dest, ignore)
	l.preview = nil

	if !l.tweening {
		l.comp.History().Add(&ImageEdit{
			name:            filterName,
			drawable:        l,
			before:          before,
			after:           dest,
			ignoreSelection: ignore,
		})
	}
}

// Layer implements Drawable: the owner if this drawable is a mask, the
// layer itself otherwise.
func (l *ImageLayer) Layer() Layer { return l.self }

// Update implements Drawable.
func (l *ImageLayer) Update() {
	l.comp.Invalidate()
}

func (l *ImageLayer) acquireFilterGate() bool {
	return l.busy.CompareAndSwap(false, true)
}

func (l *ImageLayer) releaseFilterGate() {
	l.busy.Store(false)
}

// PaintOn implements Layer.
func (l *ImageLayer) PaintOn(dst *pix.Pixmap) {
	if !l.visible {
		return
	}
	shown := l.image
	if l.preview != nil {
		shown = l.preview
	}
	pix.Composite(dst, shown, image.Pt(l.tx, l.ty), l.blend, l.opacity, l.maskAlpha())
}

// IconThumbnail implements Layer.
func (l *ImageLayer) IconThumbnail() *pix.Pixmap {
	thumb := pix.NewPixmap(ThumbSize, ThumbSize)
	pix.Checkerboard(thumb, ThumbSize/8)
	src := l.CanvasSizedSubImage()
	xdraw.ApproxBiLinear.Scale(thumb.RGBA(), thumb.Bounds(), src.RGBA(), src.Bounds(), xdraw.Over, nil)
	return thumb
}

// Duplicate implements Layer.
func (l *ImageLayer) Duplicate() Layer {
	dup := NewImageLayerFromPixmap(l.comp, l.name+" copy", l.image.Clone())
	dup.visible = l.visible
	dup.opacity = l.opacity
	dup.blend = l.blend
	dup.tx, dup.ty = l.tx, l.ty
	if l.mask != nil {
		dup.mask = l.mask.duplicateFor(&dup.ContentLayer, dup)
	}
	return dup
}

// AddMask attaches a reveal-all (all white) layer mask. Adding a second
// mask is ignored and returns the existing one.
func (l *ImageLayer) AddMask() *LayerMask {
	if l.mask == nil {
		l.mask = newLayerMask(&l.ContentLayer, l)
	}
	return l.mask
}

// Resize implements Layer: the canvas resize transform is applied to the
// pixel buffer by rescaling it, buffer offset included.
func (l *ImageLayer) Resize(newWidth, newHeight int) error {
	canvas := l.comp.Canvas()
	sx := float64(newWidth) / float64(canvas.Width())
	sy := float64(newHeight) / float64(canvas.Height())

	w := int(float64(l.image.Width())*sx + 0.5)
	h := int(float64(l.image.Height())*sy + 0.5)
	resized, err := pix.NewPixmapChecked(w, h)
	if err != nil {
		return err
	}
	xdraw.CatmullRom.Scale(resized.RGBA(), resized.Bounds(), l.image.RGBA(), l.image.Bounds(), xdraw.Src, nil)

	l.image = resized
	l.tx = int(float64(l.tx) * sx)
	l.ty = int(float64(l.ty) * sy)
	l.Update()
	return nil
}

// Crop implements Layer.
func (l *ImageLayer) Crop(cropRect image.Rectangle) {
	l.image = l.image.SubPixmap(cropRect.Sub(image.Pt(l.tx, l.ty)))
	l.tx, l.ty = 0, 0
	l.Update()
}

// Flip implements Layer.
func (l *ImageLayer) Flip(dir FlipDirection) {
	canvas := l.comp.Canvas()
	l.image = flipPixmap(l.image, dir)
	if dir == FlipHorizontal {
		l.tx = canvas.Width() - l.tx - l.image.Width()
	} else {
		l.ty = canvas.Height() - l.ty - l.image.Height()
	}
	l.Update()
}

// Rotate implements Layer.
func (l *ImageLayer) Rotate(angle QuadrantAngle) {
	canvas := l.comp.Canvas()
	w, h := l.image.Width(), l.image.Height()
	tx, ty := l.tx, l.ty

	l.image = rotatePixmap(l.image, angle)
	switch angle {
	case Angle90:
		l.tx = canvas.Height() - ty - h
		l.ty = tx
	case Angle180:
		l.tx = canvas.Width() - tx - w
		l.ty = canvas.Height() - ty - h
	case Angle270:
		l.tx = ty
		l.ty = canvas.Width() - tx - w
	}
	l.Update()
}

// EnlargeCanvas implements Layer: the buffer grows with the canvas so it
// keeps covering it, and the old content keeps its position relative to
// the old canvas area, which shifts by the west/north growth.
func (l *ImageLayer) EnlargeCanvas(north, east, south, west int) {
	grown := pix.NewPixmap(l.image.Width()+west+east, l.image.Height()+north+south)
	b := l.image.Bounds()
	stddraw.Draw(grown.RGBA(), b.Sub(b.Min).Add(image.Pt(west, north)), l.image.RGBA(), b.Min, stddraw.Src)
	l.image = grown
	l.Update()
}

// EndMovement implements Layer, recording a reversible move edit.
func (l *ImageLayer) EndMovement() history.Edit {
	oldTx, oldTy, moved := l.movementDelta()
	if !moved {
		return nil
	}
	edit := &MoveEdit{
		name:  "Move Layer",
		layer: &l.ContentLayer,
		oldTx: oldTx, oldTy: oldTy,
		newTx: l.tx, newTy: l.ty,
	}
	l.comp.History().Add(edit)
	return edit
}

// EffectiveBoundingBox implements Layer.
func (l *ImageLayer) EffectiveBoundingBox() image.Rectangle {
	return image.Rect(l.tx, l.ty, l.tx+l.image.Width(), l.ty+l.image.Height())
}

// ContentBounds implements Layer.
func (l *ImageLayer) ContentBounds() (image.Rectangle, bool) {
	return l.EffectiveBoundingBox(), true
}

// PixelAtPoint implements Layer.
func (l *ImageLayer) PixelAtPoint(p image.Point) pix.RGBA {
	return l.image.GetPixel(p.X-l.tx, p.Y-l.ty)
}

// PreferredTool implements Layer.
func (l *ImageLayer) PreferredTool() tool.Type { return tool.Brush }

// flipPixmap returns a mirrored copy of the pixmap.
func flipPixmap(pm *pix.Pixmap, dir FlipDirection) *pix.Pixmap {
	w, h := pm.Width(), pm.Height()
	out := pix.NewPixmap(w, h)
	b := pm.Bounds()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := pm.GetPixel(b.Min.X+x, b.Min.Y+y)
			if dir == FlipHorizontal {
				out.SetPixel(w-1-x, y, c)
			} else {
				out.SetPixel(x, h-1-y, c)
			}
		}
	}
	return out
}

// rotatePixmap returns a quarter-turn rotated copy of the pixmap.
func rotatePixmap(pm *pix.Pixmap, angle QuadrantAngle) *pix.Pixmap {
	w, h := pm.Width(), pm.Height()
	nw, nh := angle.NewSize(w, h)
	out := pix.NewPixmap(nw, nh)
	b := pm.Bounds()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := pm.GetPixel(b.Min.X+x, b.Min.Y+y)
			switch angle {
			case Angle90:
				out.SetPixel(h-1-y, x, c)
			case Angle180:
				out.SetPixel(w-1-x, h-1-y, c)
			case Angle270:
				out.SetPixel(y, w-1-x, c)
			}
		}
	}
	return out
}

package layer

import (
	"errors"
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/gopix/pix"
	"github.com/gopix/pix/history"
	"github.com/gopix/pix/shape"
	"github.com/gopix/pix/tool"
)

// ErrRasterOnly is returned for pixel operations that cannot apply to
// vector content.
var ErrRasterOnly = errors.New("layer: operation requires a raster layer")

// ShapesLayer is a vector layer: it holds a styled shape and renders it on
// demand instead of storing pixels. The shape and its transform box are a
// coupled pair; every geometric operation flows through a single transform
// primitive so the two stay consistent.
//
// When the layer's blend mode cannot reproduce gradient fills directly, the
// shape is rasterized once into a cached buffer and the cache is composited
// instead. Any shape change invalidates the cache.
type ShapesLayer struct {
	ContentLayer

	shape *shape.StyledShape
	box   *shape.TransformBox

	cached *pix.Pixmap
}

// NewShapesLayer creates an empty shapes layer. A layer without an
// initialized shape renders nothing and ignores transforms.
func NewShapesLayer(comp *Composition, name string) *ShapesLayer {
	return &ShapesLayer{ContentLayer: newContentLayer(comp, name)}
}

// TypeString implements Layer.
func (l *ShapesLayer) TypeString() string { return "Shape Layer" }

// StyledShape returns the layer's shape, or nil.
func (l *ShapesLayer) StyledShape() *shape.StyledShape { return l.shape }

// TransformBox returns the shape's transform box, or nil while the shape
// is still being drawn.
func (l *ShapesLayer) TransformBox() *shape.TransformBox { return l.box }

// SetStyledShape binds a shape to the layer and subscribes to its changes
// so the cached raster can never go stale.
func (l *ShapesLayer) SetStyledShape(s *shape.StyledShape) {
	l.shape = s
	l.box = nil
	l.cached = nil
	s.OnChange(l.invalidateCache)
}

// CreateTransformBox derives the transform box once the shape's geometry
// has been committed.
func (l *ShapesLayer) CreateTransformBox() *shape.TransformBox {
	if !l.hasShape() {
		return nil
	}
	l.box = shape.NewTransformBox(l.shape)
	return l.box
}

func (l *ShapesLayer) hasShape() bool {
	return l.shape != nil && l.shape.IsInitialized()
}

func (l *ShapesLayer) invalidateCache() {
	l.cached = nil
}

// transform is the single geometric primitive of the layer: every resize,
// crop, flip and rotation funnels through it. With a box present, the box
// applies the transform so handles, pivot and shape move together. A shape
// without a box should not occur; if it does, the transform still lands on
// the shape and the inconsistency is logged.
func (l *ShapesLayer) transform(m pix.Matrix) {
	if !l.hasShape() {
		return
	}
	if l.box != nil {
		l.box.ApplyTransform(m)
	} else {
		pix.Logger().Warn("shape layer has no transform box, transforming shape directly",
			"layer", l.name)
		l.shape.ApplyTransform(m)
	}
	l.Comp().Invalidate()
}

// PaintOn implements Layer. Gradient fills are rendered through the cached
// raster when the blend mode cannot composite them directly.
func (l *ShapesLayer) PaintOn(dst *pix.Pixmap) {
	if !l.visible || !l.hasShape() {
		return
	}
	useCached := !l.blend.SupportsGradients() && l.shape.HasGradient()
	if useCached {
		if l.cached == nil {
			l.cached = l.rasterize()
		}
		pix.Composite(dst, l.cached, image.Point{}, l.blend, l.opacity, l.maskAlpha())
		return
	}
	rendered := l.rasterize()
	pix.Composite(dst, rendered, image.Point{}, l.blend, l.opacity, l.maskAlpha())
}

// rasterize renders the shape into a fresh canvas-sized buffer.
func (l *ShapesLayer) rasterize() *pix.Pixmap {
	canvas := l.comp.Canvas()
	pm := pix.NewPixmap(canvas.Width(), canvas.Height())
	l.shape.Rasterize(pm.RGBA())
	return pm
}

// IconThumbnail implements Layer: a checkerboard for a shapeless layer,
// the rendered shape otherwise.
func (l *ShapesLayer) IconThumbnail() *pix.Pixmap {
	thumb := pix.NewPixmap(ThumbSize, ThumbSize)
	pix.Checkerboard(thumb, ThumbSize/8)
	if !l.hasShape() {
		return thumb
	}
	rendered := l.rasterize()
	scaleThumb(thumb, rendered)
	return thumb
}

func scaleThumb(thumb, src *pix.Pixmap) {
	xdraw.ApproxBiLinear.Scale(thumb.RGBA(), thumb.Bounds(), src.RGBA(), src.Bounds(), xdraw.Over, nil)
}

// Duplicate implements Layer. The duplicate gets an independent shape and
// a box copy bound to it, so editing one layer never disturbs the other.
func (l *ShapesLayer) Duplicate() Layer {
	dup := NewShapesLayer(l.comp, l.name+" copy")
	dup.visible = l.visible
	dup.opacity = l.opacity
	dup.blend = l.blend
	dup.tx, dup.ty = l.tx, l.ty
	if l.shape != nil {
		clone := l.shape.Clone()
		dup.SetStyledShape(clone)
		if l.box != nil {
			dup.box = l.box.CopyFor(clone)
		}
	}
	if l.mask != nil {
		dup.mask = l.mask.duplicateFor(&dup.ContentLayer, dup)
	}
	return dup
}

// AddMask attaches a reveal-all layer mask.
func (l *ShapesLayer) AddMask() *LayerMask {
	if l.mask == nil {
		l.mask = newLayerMask(&l.ContentLayer, l)
	}
	return l.mask
}

// Resize implements Layer.
func (l *ShapesLayer) Resize(newWidth, newHeight int) error {
	l.transform(l.comp.Canvas().ResizeTransform(newWidth, newHeight))
	return nil
}

// Crop implements Layer. Shape content outside the crop rect survives in
// the geometry; it just falls outside the new canvas.
func (l *ShapesLayer) Crop(cropRect image.Rectangle) {
	l.transform(CropTransform(cropRect))
}

// Flip implements Layer.
func (l *ShapesLayer) Flip(dir FlipDirection) {
	l.transform(l.comp.Canvas().FlipTransform(dir))
}

// Rotate implements Layer.
func (l *ShapesLayer) Rotate(angle QuadrantAngle) {
	l.transform(l.comp.Canvas().RotateTransform(angle))
}

// EnlargeCanvas implements Layer.
func (l *ShapesLayer) EnlargeCanvas(north, east, south, west int) {
	l.transform(EnlargeTransform(west, north))
}

// StartMovement implements Layer, starting the box drag in lockstep.
func (l *ShapesLayer) StartMovement() {
	l.ContentLayer.StartMovement()
	if l.box != nil {
		l.box.StartMovement()
	}
}

// MoveWhileDragging implements Layer. The shape moves through the box; the
// layer's own translation stays untouched so vector content is never
// double-shifted.
func (l *ShapesLayer) MoveWhileDragging(relX, relY float64) {
	if l.box != nil {
		l.box.MoveWhileDragging(relX, relY)
		l.comp.Invalidate()
	}
}

// EndMovement implements Layer, recording a reversible box movement.
func (l *ShapesLayer) EndMovement() history.Edit {
	if l.box == nil || !l.box.IsDragging() {
		return nil
	}
	before := l.box.StartSnapshot()
	l.box.EndMovement()
	after := l.box.Snapshot()
	if before == after {
		return nil
	}
	edit := &BoxMovementEdit{
		name:   "Move Shape",
		layer:  l,
		box:    l.box,
		before: before,
		after:  after,
	}
	l.comp.History().Add(edit)
	// The drag is done; the composite and thumbnail need a refresh.
	l.comp.Invalidate()
	return edit
}

// EffectiveBoundingBox implements Layer: the shape can be redrawn anywhere,
// so the whole canvas is affected.
func (l *ShapesLayer) EffectiveBoundingBox() image.Rectangle {
	return l.comp.Canvas().Bounds()
}

// ContentBounds implements Layer: shapes suppress the move-tool outline,
// the transform box is their outline.
func (l *ShapesLayer) ContentBounds() (image.Rectangle, bool) {
	return image.Rectangle{}, false
}

// PixelAtPoint implements Layer: vector content has no committed pixels.
func (l *ShapesLayer) PixelAtPoint(p image.Point) pix.RGBA {
	return pix.Transparent
}

// PreferredTool implements Layer.
func (l *ShapesLayer) PreferredTool() tool.Type { return tool.Shapes }

// CheckConsistency validates the shape/box pairing invariants.
func (l *ShapesLayer) CheckConsistency() error {
	if l.shape == nil {
		if l.box != nil {
			return fmt.Errorf("layer %q: transform box without shape", l.name)
		}
		return nil
	}
	if err := l.shape.CheckConsistency(); err != nil {
		return fmt.Errorf("layer %q: %w", l.name, err)
	}
	if l.box != nil && l.box.Shape() != l.shape {
		return fmt.Errorf("layer %q: transform box bound to foreign shape", l.name)
	}
	return nil
}

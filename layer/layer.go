package layer

import (
	"image"

	"github.com/gopix/pix"
	"github.com/gopix/pix/history"
	"github.com/gopix/pix/tool"
)

// ThumbSize is the edge length of layer icon thumbnails in pixels.
const ThumbSize = 48

// Layer is the contract every member of a composition's layer stack must
// satisfy to participate in rendering, geometric transformation and
// movement/undo tracking. Stack order determines paint order (bottom to
// top).
type Layer interface {
	Name() string
	SetName(name string)
	IsVisible() bool
	SetVisible(v bool)
	Opacity() float64
	SetOpacity(o float64)
	BlendMode() pix.BlendMode
	SetBlendMode(m pix.BlendMode)
	Comp() *Composition
	TypeString() string

	// Duplicate creates an independent deep copy belonging to the same
	// composition.
	Duplicate() Layer

	// PaintOn composites the layer's visible content onto dst, a
	// canvas-sized buffer, honoring the layer's blend mode, opacity and
	// mask.
	PaintOn(dst *pix.Pixmap)

	// IconThumbnail renders the small preview shown in the layer list.
	IconThumbnail() *pix.Pixmap

	// Geometric transform protocol. Each operation converts the
	// editor-level request into an affine transform (via the canvas
	// factories) applied to the layer's content representation.
	Resize(newWidth, newHeight int) error
	Crop(cropRect image.Rectangle)
	Flip(dir FlipDirection)
	Rotate(angle QuadrantAngle)
	EnlargeCanvas(north, east, south, west int)

	// Drag-move protocol. MoveWhileDragging receives offsets relative to
	// the drag origin; EndMovement records and returns the reversible
	// move edit, or nil if nothing moved.
	StartMovement()
	MoveWhileDragging(relX, relY float64)
	EndMovement() history.Edit

	// EffectiveBoundingBox is the area the layer can affect, in canvas
	// coordinates.
	EffectiveBoundingBox() image.Rectangle

	// ContentBounds returns the tight content rectangle used for move
	// tool outlines. ok is false for layer kinds that suppress the
	// outline.
	ContentBounds() (bounds image.Rectangle, ok bool)

	// PixelAtPoint samples the layer at a canvas point. Layer kinds with
	// no raster representation report transparent.
	PixelAtPoint(p image.Point) pix.RGBA

	// PreferredTool is the tool activated when the layer is edited.
	PreferredTool() tool.Type
}

// ContentLayer carries the state and behavior shared by all content-bearing
// layers: identity, visibility, opacity, blend mode, the optional layer
// mask and the translation offset (tx, ty) used during interactive moves.
// Concrete layer kinds embed it and add their content representation.
type ContentLayer struct {
	comp    *Composition
	name    string
	visible bool
	opacity float64
	blend   pix.BlendMode

	// Translation offset of the content relative to the canvas origin.
	tx, ty int
	// Drag origin, valid while a movement is in progress.
	startTx, startTy int

	mask        *LayerMask
	maskEditing bool
}

func newContentLayer(comp *Composition, name string) ContentLayer {
	return ContentLayer{
		comp:    comp,
		name:    name,
		visible: true,
		opacity: 1.0,
		blend:   pix.BlendNormal,
	}
}

// Name returns the layer name.
func (c *ContentLayer) Name() string { return c.name }

// SetName renames the layer.
func (c *ContentLayer) SetName(name string) { c.name = name }

// IsVisible reports whether the layer participates in compositing.
func (c *ContentLayer) IsVisible() bool { return c.visible }

// SetVisible shows or hides the layer.
func (c *ContentLayer) SetVisible(v bool) { c.visible = v }

// Opacity returns the layer opacity in [0, 1].
func (c *ContentLayer) Opacity() float64 { return c.opacity }

// SetOpacity sets the layer opacity, clamped to [0, 1].
func (c *ContentLayer) SetOpacity(o float64) {
	if o < 0 {
		o = 0
	}
	if o > 1 {
		o = 1
	}
	c.opacity = o
}

// BlendMode returns the paint composite used when the layer is drawn.
func (c *ContentLayer) BlendMode() pix.BlendMode { return c.blend }

// SetBlendMode sets the paint composite used when the layer is drawn.
func (c *ContentLayer) SetBlendMode(m pix.BlendMode) { c.blend = m }

// Comp returns the owning composition.
func (c *ContentLayer) Comp() *Composition { return c.comp }

// Tx returns the horizontal translation offset.
func (c *ContentLayer) Tx() int { return c.tx }

// Ty returns the vertical translation offset.
func (c *ContentLayer) Ty() int { return c.ty }

func (c *ContentLayer) setTranslation(tx, ty int) {
	c.tx = tx
	c.ty = ty
}

// HasMask reports whether the layer has a layer mask.
func (c *ContentLayer) HasMask() bool { return c.mask != nil }

// Mask returns the layer mask, or nil.
func (c *ContentLayer) Mask() *LayerMask { return c.mask }

// IsMaskEditing reports whether user input currently targets the mask
// rather than the layer content.
func (c *ContentLayer) IsMaskEditing() bool { return c.maskEditing }

// SetMaskEditing routes subsequent user input to the mask. Enabling it
// without a mask is ignored.
func (c *ContentLayer) SetMaskEditing(v bool) {
	if v && c.mask == nil {
		return
	}
	c.maskEditing = v
}

// StartMovement begins an interactive drag, recording the drag origin.
func (c *ContentLayer) StartMovement() {
	c.startTx = c.tx
	c.startTy = c.ty
}

// MoveWhileDragging positions the content at the given offset relative to
// the drag origin. Each call replaces the previous offset.
func (c *ContentLayer) MoveWhileDragging(relX, relY float64) {
	c.tx = c.startTx + int(relX)
	c.ty = c.startTy + int(relY)
	c.comp.Invalidate()
}

// movementDelta reports the drag origin and whether the layer moved.
func (c *ContentLayer) movementDelta() (oldTx, oldTy int, moved bool) {
	return c.startTx, c.startTy, c.tx != c.startTx || c.ty != c.startTy
}

// maskAlpha returns the canvas-sized alpha mask derived from the layer
// mask, or nil when the layer has none.
func (c *ContentLayer) maskAlpha() *pix.Mask {
	if c.mask == nil {
		return nil
	}
	return pix.MaskFromLuminance(c.mask.CanvasSizedSubImage())
}

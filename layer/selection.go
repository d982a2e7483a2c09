package layer

import (
	"image"

	"github.com/gopix/pix"
)

// Selection is the active selected region of a composition, in canvas
// coordinates. A selection always has rectangular bounds; it optionally
// carries a canvas-sized soft alpha mask for feathered or non-rectangular
// selections. The mask is a separate compositing input: filters read raw
// pixels and the mask is applied when results are merged back.
type Selection struct {
	bounds image.Rectangle
	mask   *pix.Mask
}

// NewSelection creates a hard rectangular selection.
func NewSelection(bounds image.Rectangle) *Selection {
	return &Selection{bounds: bounds}
}

// NewSoftSelection creates a selection with a canvas-sized alpha mask.
// The bounds should enclose all non-zero mask pixels.
func NewSoftSelection(bounds image.Rectangle, mask *pix.Mask) *Selection {
	return &Selection{bounds: bounds, mask: mask}
}

// Bounds returns the selection's bounding rectangle in canvas coordinates.
func (s *Selection) Bounds() image.Rectangle { return s.bounds }

// Mask returns the soft alpha mask, or nil for a hard selection.
func (s *Selection) Mask() *pix.Mask { return s.mask }

// IsEmpty reports whether the selection selects nothing.
func (s *Selection) IsEmpty() bool { return s.bounds.Empty() }

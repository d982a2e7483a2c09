package layer

import (
	"github.com/gopix/pix"
	"github.com/gopix/pix/tool"
)

// LayerMask is the grayscale mask attached to a layer. It is itself a
// pixel-bearing drawable, so brush tools and filters can edit it through
// the same protocol as image layers. Its luminance attenuates the owning
// layer's alpha during compositing: white reveals, black hides.
type LayerMask struct {
	ImageLayer

	ownerState *ContentLayer
}

func newLayerMask(ownerState *ContentLayer, owner Layer) *LayerMask {
	canvas := ownerState.comp.Canvas()
	pm := pix.NewPixmap(canvas.Width(), canvas.Height())
	pm.Clear(pix.White)

	m := &LayerMask{
		ImageLayer: ImageLayer{
			ContentLayer: newContentLayer(ownerState.comp, owner.Name()+" mask"),
			image:        pm,
		},
		ownerState: ownerState,
	}
	m.self = owner
	return m
}

// TypeString implements Layer.
func (m *LayerMask) TypeString() string { return "Layer Mask" }

// IsMaskEditing reports whether user input on the owning layer currently
// targets this mask.
func (m *LayerMask) IsMaskEditing() bool { return m.ownerState.maskEditing }

// PreferredTool implements Layer: masks are painted.
func (m *LayerMask) PreferredTool() tool.Type { return tool.Brush }

// duplicateFor clones the mask for a duplicated owner layer.
func (m *LayerMask) duplicateFor(ownerState *ContentLayer, owner Layer) *LayerMask {
	dup := &LayerMask{
		ImageLayer: ImageLayer{
			ContentLayer: newContentLayer(ownerState.comp, owner.Name()+" mask"),
			image:        m.image.Clone(),
		},
		ownerState: ownerState,
	}
	dup.tx, dup.ty = m.tx, m.ty
	dup.self = owner
	return dup
}

// Package layer implements the layer abstraction and compositing/transform
// engine of the editor: the Drawable contract for pixel-bearing layers, the
// filter execution protocol, the vector ShapesLayer with its cached-raster
// optimization and transform-box coupling, and the Composition that owns
// the layer stack.
package layer

import (
	"image"

	"github.com/gopix/pix"
)

// FlipDirection selects the mirror axis of a canvas flip.
type FlipDirection int

const (
	// FlipHorizontal mirrors around the vertical canvas center line.
	FlipHorizontal FlipDirection = iota
	// FlipVertical mirrors around the horizontal canvas center line.
	FlipVertical
)

// QuadrantAngle is a canvas rotation restricted to quarter turns.
type QuadrantAngle int

const (
	// Angle90 rotates a quarter turn clockwise.
	Angle90 QuadrantAngle = iota
	// Angle180 rotates a half turn.
	Angle180
	// Angle270 rotates a quarter turn counter-clockwise.
	Angle270
)

// NewSize returns the canvas dimensions after rotating a w x h canvas.
func (a QuadrantAngle) NewSize(w, h int) (int, int) {
	if a == Angle180 {
		return w, h
	}
	return h, w
}

// Canvas owns the pixel dimensions of a composition and produces the affine
// transforms corresponding to canvas-level geometric operations. Every
// geometric operation of every layer kind is expressed through one of these
// factory transforms.
type Canvas struct {
	width  int
	height int
}

// NewCanvas creates a canvas with the given pixel dimensions.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{width: width, height: height}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.height }

// Bounds returns the canvas rectangle anchored at the origin.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.width, c.height)
}

// ResizeTransform returns the transform scaling current canvas content to
// the given new size.
func (c *Canvas) ResizeTransform(newWidth, newHeight int) pix.Matrix {
	return pix.Scale(
		float64(newWidth)/float64(c.width),
		float64(newHeight)/float64(c.height),
	)
}

// FlipTransform returns the transform mirroring canvas content.
func (c *Canvas) FlipTransform(dir FlipDirection) pix.Matrix {
	if dir == FlipHorizontal {
		return pix.FlipHorizontal(float64(c.width))
	}
	return pix.FlipVertical(float64(c.height))
}

// RotateTransform returns the transform rotating canvas content by a
// quarter turn, mapping the old canvas onto the new one's origin.
func (c *Canvas) RotateTransform(angle QuadrantAngle) pix.Matrix {
	w := float64(c.width)
	h := float64(c.height)
	switch angle {
	case Angle90:
		// (x, y) -> (h - y, x)
		return pix.Matrix{A: 0, B: -1, C: h, D: 1, E: 0, F: 0}
	case Angle180:
		return pix.Matrix{A: -1, B: 0, C: w, D: 0, E: -1, F: h}
	default: // Angle270
		// (x, y) -> (y, w - x)
		return pix.Matrix{A: 0, B: 1, C: 0, D: -1, E: 0, F: w}
	}
}

// CropTransform returns the transform moving the crop rectangle's top-left
// corner to the new canvas origin.
func CropTransform(cropRect image.Rectangle) pix.Matrix {
	return pix.Translate(-float64(cropRect.Min.X), -float64(cropRect.Min.Y))
}

// EnlargeTransform returns the transform shifting content when the canvas
// grows by the given amounts on the west and north edges.
func EnlargeTransform(west, north int) pix.Matrix {
	return pix.Translate(float64(west), float64(north))
}

// resize updates the canvas dimensions.
func (c *Canvas) resize(width, height int) {
	c.width = width
	c.height = height
}

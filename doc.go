// Package pix is the raster substrate for a layer-based image editor.
//
// It provides the low-level building blocks shared by the higher level
// packages: pixel buffers (Pixmap), 8-bit alpha masks (Mask), 2D affine
// transforms (Matrix), colors (RGBA) and the compositing primitive
// (Composite) with its blend modes.
//
// The layer stack, shape editing and filter execution live in the layer,
// shape and filter subpackages. This package has no opinion about layers;
// it only moves pixels.
package pix

// Package filter defines the pixel filter capability and a small set of
// concrete filters. A filter is an opaque transformation: given a source
// pixmap it produces a new destination pixmap, never mutating the source.
// The execution protocol (preview vs. final, error capture, history
// recording) lives in the layer package.
package filter

import "github.com/gopix/pix"

// Filter transforms a source image into a new destination image.
//
// Transform must not mutate src and must not return a nil destination on
// success. Name and Params supply the diagnostic context attached to
// failures by the filter runner.
type Filter interface {
	Name() string
	Params() string
	Transform(src *pix.Pixmap) (*pix.Pixmap, error)
}

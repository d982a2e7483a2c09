// Package shape implements the vector content of shape layers: styled
// shapes (geometry plus paint style) and the transform box that drives
// their interactive affine editing.
package shape

import (
	"fmt"
	"image"
	"math"

	"github.com/fogleman/gg"

	"github.com/gopix/pix"
)

// Kind identifies the geometry family of a styled shape.
type Kind int

const (
	// KindRectangle is an axis-aligned rectangle (before transforms).
	KindRectangle Kind = iota
	// KindEllipse is an ellipse inscribed in the geometry rect.
	KindEllipse
	// KindRoundedRectangle is a rectangle with rounded corners.
	KindRoundedRectangle
	// KindLine is a straight line across the geometry rect's diagonal.
	KindLine
)

// String returns a string representation of the shape kind.
func (k Kind) String() string {
	switch k {
	case KindRectangle:
		return "Rectangle"
	case KindEllipse:
		return "Ellipse"
	case KindRoundedRectangle:
		return "Rounded Rectangle"
	case KindLine:
		return "Line"
	default:
		return "Unknown"
	}
}

// Rect is the committed drawing geometry of a shape, in image coordinates.
type Rect struct {
	X, Y, W, H float64
}

// StyledShape is a vector shape description: a geometry kind with its
// committed drag rect, an accumulated affine transform and a paint style.
//
// A StyledShape is created uninitialized (no geometry) and becomes
// initialized when SetGeometry commits the user's drawing drag. It is owned
// by exactly one shape layer but remains constructible and usable without
// one; the owner subscribes to changes via OnChange instead of being
// back-referenced.
type StyledShape struct {
	kind        Kind
	style       Style
	base        Rect
	transform   pix.Matrix
	initialized bool
	listeners   []func()
}

// New creates an uninitialized styled shape of the given kind.
func New(kind Kind, style Style) *StyledShape {
	return &StyledShape{
		kind:      kind,
		style:     style,
		transform: pix.Identity(),
	}
}

// Kind returns the geometry family of the shape.
func (s *StyledShape) Kind() Kind { return s.kind }

// Style returns the current paint style.
func (s *StyledShape) Style() Style { return s.style }

// SetStyle replaces the paint style and notifies subscribers.
func (s *StyledShape) SetStyle(st Style) {
	s.style = st
	s.notify()
}

// IsInitialized reports whether a geometry has been committed.
func (s *StyledShape) IsInitialized() bool { return s.initialized }

// SetGeometry commits the drawing geometry, initializing the shape,
// and resets any accumulated transform.
func (s *StyledShape) SetGeometry(r Rect) {
	s.base = r
	s.transform = pix.Identity()
	s.initialized = true
	s.notify()
}

// Geometry returns the committed base geometry rect.
func (s *StyledShape) Geometry() Rect { return s.base }

// HasGradient reports whether the shape's style uses a gradient fill.
func (s *StyledShape) HasGradient() bool { return s.style.HasGradient() }

// OnChange subscribes to style and geometry changes. Used by the owning
// layer to invalidate its cached raster; the subscription carries no
// ownership semantics.
func (s *StyledShape) OnChange(fn func()) {
	s.listeners = append(s.listeners, fn)
}

func (s *StyledShape) notify() {
	for _, fn := range s.listeners {
		fn()
	}
}

// ApplyTransform composes an affine transform onto the shape's geometry
// and notifies subscribers. Under normal operation only the transform box
// calls this; layers route their geometric operations through the box.
func (s *StyledShape) ApplyTransform(m pix.Matrix) {
	s.transform = m.Multiply(s.transform)
	s.notify()
}

// ResetTransform discards the accumulated transform.
func (s *StyledShape) ResetTransform() {
	s.transform = pix.Identity()
	s.notify()
}

// Transform returns the accumulated affine transform.
func (s *StyledShape) Transform() pix.Matrix { return s.transform }

// setTransform replaces the accumulated transform wholesale. Reserved for
// the transform box's drag protocol.
func (s *StyledShape) setTransform(m pix.Matrix) {
	s.transform = m
	s.notify()
}

// Clone returns a deep copy of the shape. Change subscriptions are not
// carried over; the duplicate's owner registers its own.
func (s *StyledShape) Clone() *StyledShape {
	return &StyledShape{
		kind:        s.kind,
		style:       s.style,
		base:        s.base,
		transform:   s.transform,
		initialized: s.initialized,
	}
}

// Corners returns the transformed corners of the base geometry rect in
// NW, NE, SE, SW order.
func (s *StyledShape) Corners() [4]pix.Point {
	corners := [4]pix.Point{
		{X: s.base.X, Y: s.base.Y},
		{X: s.base.X + s.base.W, Y: s.base.Y},
		{X: s.base.X + s.base.W, Y: s.base.Y + s.base.H},
		{X: s.base.X, Y: s.base.Y + s.base.H},
	}
	for i := range corners {
		corners[i] = s.transform.TransformPoint(corners[i])
	}
	return corners
}

// BoundingRect returns the axis-aligned bounding box of the transformed
// geometry in integer image coordinates.
func (s *StyledShape) BoundingRect() image.Rectangle {
	r := image.Rect(
		int(math.Floor(s.base.X)), int(math.Floor(s.base.Y)),
		int(math.Ceil(s.base.X+s.base.W)), int(math.Ceil(s.base.Y+s.base.H)),
	)
	return s.transform.TransformRect(r)
}

// CheckConsistency validates the shape's structural invariants.
func (s *StyledShape) CheckConsistency() error {
	if !s.initialized {
		return nil
	}
	if s.base.W < 0 || s.base.H < 0 {
		return fmt.Errorf("shape: negative geometry %dx%d", int(s.base.W), int(s.base.H))
	}
	vals := []float64{s.transform.A, s.transform.B, s.transform.C, s.transform.D, s.transform.E, s.transform.F}
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("shape: non-finite transform %+v", s.transform)
		}
	}
	return nil
}

// Rasterize paints the shape into dst with antialiasing. Gradient fills are
// painted at full quality regardless of the caller's composite; the caller
// is responsible for compositing dst into the layer stack.
func (s *StyledShape) Rasterize(dst *image.RGBA) {
	if !s.initialized {
		return
	}
	dc := gg.NewContextForRGBA(dst)
	s.buildPath(dc)

	if s.kind == KindLine {
		s.strokeOnly(dc)
		return
	}

	switch s.style.Fill {
	case FillSolid:
		c := s.style.Color
		dc.SetRGBA(c.R, c.G, c.B, c.A)
	case FillLinearGradient:
		corners := s.Corners()
		grad := gg.NewLinearGradient(corners[0].X, corners[0].Y, corners[2].X, corners[2].Y)
		grad.AddColorStop(0, s.style.GradientStart.Color())
		grad.AddColorStop(1, s.style.GradientEnd.Color())
		dc.SetFillStyle(grad)
	case FillRadialGradient:
		corners := s.Corners()
		cx := (corners[0].X + corners[2].X) / 2
		cy := (corners[0].Y + corners[2].Y) / 2
		radius := corners[0].Distance(corners[2]) / 2
		grad := gg.NewRadialGradient(cx, cy, 0, cx, cy, radius)
		grad.AddColorStop(0, s.style.GradientStart.Color())
		grad.AddColorStop(1, s.style.GradientEnd.Color())
		dc.SetFillStyle(grad)
	case FillNone:
		s.strokeOnly(dc)
		return
	}

	if s.style.StrokeWidth > 0 {
		dc.FillPreserve()
		sc := s.style.StrokeColor
		dc.SetRGBA(sc.R, sc.G, sc.B, sc.A)
		dc.SetLineWidth(s.style.StrokeWidth)
		dc.Stroke()
	} else {
		dc.Fill()
	}
}

func (s *StyledShape) strokeOnly(dc *gg.Context) {
	width := s.style.StrokeWidth
	if width <= 0 {
		width = 1
	}
	sc := s.style.StrokeColor
	if sc.A == 0 {
		sc = s.style.Color
	}
	dc.SetRGBA(sc.R, sc.G, sc.B, sc.A)
	dc.SetLineWidth(width)
	dc.Stroke()
}

// buildPath traces the transformed outline of the shape onto the context.
// Curved kinds are expressed as cubic Beziers so an arbitrary affine
// transform maps control points directly.
func (s *StyledShape) buildPath(dc *gg.Context) {
	t := s.transform
	move := func(p pix.Point) {
		p = t.TransformPoint(p)
		dc.MoveTo(p.X, p.Y)
	}
	line := func(p pix.Point) {
		p = t.TransformPoint(p)
		dc.LineTo(p.X, p.Y)
	}
	cubic := func(c1, c2, p pix.Point) {
		c1 = t.TransformPoint(c1)
		c2 = t.TransformPoint(c2)
		p = t.TransformPoint(p)
		dc.CubicTo(c1.X, c1.Y, c2.X, c2.Y, p.X, p.Y)
	}

	x, y, w, h := s.base.X, s.base.Y, s.base.W, s.base.H

	switch s.kind {
	case KindRectangle:
		move(pix.Pt(x, y))
		line(pix.Pt(x+w, y))
		line(pix.Pt(x+w, y+h))
		line(pix.Pt(x, y+h))
		dc.ClosePath()

	case KindEllipse:
		// Cubic Bezier circle approximation constant, 4/3*(sqrt(2)-1).
		const k = 0.5522847498307936
		cx, cy := x+w/2, y+h/2
		rx, ry := w/2, h/2
		ox, oy := rx*k, ry*k
		move(pix.Pt(cx+rx, cy))
		cubic(pix.Pt(cx+rx, cy+oy), pix.Pt(cx+ox, cy+ry), pix.Pt(cx, cy+ry))
		cubic(pix.Pt(cx-ox, cy+ry), pix.Pt(cx-rx, cy+oy), pix.Pt(cx-rx, cy))
		cubic(pix.Pt(cx-rx, cy-oy), pix.Pt(cx-ox, cy-ry), pix.Pt(cx, cy-ry))
		cubic(pix.Pt(cx+ox, cy-ry), pix.Pt(cx+rx, cy-oy), pix.Pt(cx+rx, cy))
		dc.ClosePath()

	case KindRoundedRectangle:
		const k = 0.5522847498307936
		r := math.Min(w, h) / 5
		o := r * (1 - k)
		move(pix.Pt(x+r, y))
		line(pix.Pt(x+w-r, y))
		cubic(pix.Pt(x+w-o, y), pix.Pt(x+w, y+o), pix.Pt(x+w, y+r))
		line(pix.Pt(x+w, y+h-r))
		cubic(pix.Pt(x+w, y+h-o), pix.Pt(x+w-o, y+h), pix.Pt(x+w-r, y+h))
		line(pix.Pt(x+r, y+h))
		cubic(pix.Pt(x+o, y+h), pix.Pt(x, y+h-o), pix.Pt(x, y+h-r))
		line(pix.Pt(x, y+r))
		cubic(pix.Pt(x, y+o), pix.Pt(x+o, y), pix.Pt(x+r, y))
		dc.ClosePath()

	case KindLine:
		move(pix.Pt(x, y))
		line(pix.Pt(x+w, y+h))
	}
}

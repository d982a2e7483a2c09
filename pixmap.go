package pix

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
)

// ErrBufferTooLarge is returned when a requested pixel buffer exceeds the
// allocation budget. Callers treat it as a resource-exhaustion signal and
// must leave their committed state untouched.
var ErrBufferTooLarge = errors.New("pix: pixel buffer exceeds allocation budget")

// MaxPixels is the allocation budget for a single pixel buffer.
// NewPixmapChecked refuses buffers above this limit.
var MaxPixels = 1 << 27 // 128M pixels, 512 MiB of RGBA

// Pixmap represents a rectangular pixel buffer.
// It wraps an image.RGBA so the standard draw packages and external
// rasterizers can operate on the same memory without copies.
type Pixmap struct {
	rgba *image.RGBA
}

// NewPixmap creates a new transparent pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{rgba: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// NewPixmapChecked creates a new pixmap, returning ErrBufferTooLarge if the
// requested dimensions exceed the allocation budget.
func NewPixmapChecked(width, height int) (*Pixmap, error) {
	if width <= 0 || height <= 0 || width*height > MaxPixels {
		return nil, ErrBufferTooLarge
	}
	return NewPixmap(width, height), nil
}

// FromImage creates a pixmap holding a copy of the given image.
func FromImage(img image.Image) *Pixmap {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return &Pixmap{rgba: rgba}
}

// WrapRGBA creates a pixmap sharing the memory of the given image.RGBA.
func WrapRGBA(rgba *image.RGBA) *Pixmap {
	return &Pixmap{rgba: rgba}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.rgba.Bounds().Dx()
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.rgba.Bounds().Dy()
}

// RGBA returns the underlying image.RGBA. The memory is shared.
func (p *Pixmap) RGBA() *image.RGBA {
	return p.rgba
}

// Data returns the raw pixel data (premultiplied RGBA, 4 bytes per pixel).
func (p *Pixmap) Data() []uint8 {
	return p.rgba.Pix
}

// SetPixel sets the color of a single pixel.
// Coordinates outside the pixmap are ignored.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if !(image.Point{X: x, Y: y}.In(p.rgba.Bounds())) {
		return
	}
	p.rgba.Set(x, y, c.Color())
}

// GetPixel returns the color of a single pixel.
// Returns Transparent for coordinates outside the pixmap.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	if !(image.Point{X: x, Y: y}.In(p.rgba.Bounds())) {
		return Transparent
	}
	return FromColor(p.rgba.RGBAAt(x, y))
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c RGBA) {
	draw.Draw(p.rgba, p.rgba.Bounds(), image.NewUniform(c.Color()), image.Point{}, draw.Src)
}

// Clone creates a deep copy of the pixmap.
func (p *Pixmap) Clone() *Pixmap {
	b := p.rgba.Bounds()
	clone := image.NewRGBA(b)
	copy(clone.Pix, p.rgba.Pix)
	return &Pixmap{rgba: clone}
}

// SubPixmap returns a newly allocated pixmap holding the pixels of the given
// rectangle. The rectangle is interpreted in the pixmap's coordinate space
// and clipped to its bounds. The result's origin is (0, 0).
func (p *Pixmap) SubPixmap(r image.Rectangle) *Pixmap {
	r = r.Intersect(p.rgba.Bounds())
	sub := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(sub, sub.Bounds(), p.rgba, r.Min, draw.Src)
	return &Pixmap{rgba: sub}
}

// View returns a pixmap sharing memory with the given rectangle of p.
// Mutating the view mutates p. The rectangle is clipped to p's bounds.
func (p *Pixmap) View(r image.Rectangle) *Pixmap {
	r = r.Intersect(p.rgba.Bounds())
	return &Pixmap{rgba: p.rgba.SubImage(r).(*image.RGBA)}
}

// Equal reports whether two pixmaps have identical dimensions and
// bit-for-bit identical pixel data.
func (p *Pixmap) Equal(q *Pixmap) bool {
	if p == nil || q == nil {
		return p == q
	}
	if p.Width() != q.Width() || p.Height() != q.Height() {
		return false
	}
	// Views may have a stride wider than the row; compare row by row.
	pb, qb := p.rgba.Bounds(), q.rgba.Bounds()
	for y := 0; y < p.Height(); y++ {
		pi := p.rgba.PixOffset(pb.Min.X, pb.Min.Y+y)
		qi := q.rgba.PixOffset(qb.Min.X, qb.Min.Y+y)
		n := p.Width() * 4
		if !bytes.Equal(p.rgba.Pix[pi:pi+n], q.rgba.Pix[qi:qi+n]) {
			return false
		}
	}
	return true
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, p.rgba)
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.rgba.At(x, y)
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return p.rgba.Bounds()
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.RGBAModel
}

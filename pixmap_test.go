package pix

import (
	"image"
	"image/color"
	"testing"
)

func TestPixmapSetGetPixel(t *testing.T) {
	pm := NewPixmap(10, 10)
	pm.SetPixel(3, 7, Red)

	got := pm.GetPixel(3, 7)
	if got != (RGBA{R: 1, A: 1}) {
		t.Errorf("GetPixel(3,7) = %+v, want opaque red", got)
	}
	if got := pm.GetPixel(0, 0); got != Transparent {
		t.Errorf("GetPixel(0,0) = %+v, want transparent", got)
	}
}

func TestPixmapOutOfBounds(t *testing.T) {
	pm := NewPixmap(10, 10)
	pm.Clear(Black)
	before := pm.Clone()

	oob := []struct{ x, y int }{
		{-1, 5}, {10, 5}, {5, -1}, {5, 10}, {-100, -100}, {100, 100},
	}
	for _, c := range oob {
		pm.SetPixel(c.x, c.y, Red)
		if got := pm.GetPixel(c.x, c.y); got != Transparent {
			t.Errorf("GetPixel(%d,%d) = %+v, want transparent", c.x, c.y, got)
		}
	}
	if !pm.Equal(before) {
		t.Error("out-of-bounds writes modified pixel data")
	}
}

func TestPixmapCloneIsIndependent(t *testing.T) {
	pm := NewPixmap(4, 4)
	pm.Clear(Blue)
	clone := pm.Clone()

	clone.SetPixel(0, 0, Red)
	if pm.GetPixel(0, 0) != Blue {
		t.Error("mutating clone changed the original")
	}
	if clone.GetPixel(0, 0) != (RGBA{R: 1, A: 1}) {
		t.Error("clone did not take the write")
	}
}

func TestPixmapSubPixmap(t *testing.T) {
	pm := NewPixmap(10, 10)
	pm.SetPixel(5, 5, Green)

	sub := pm.SubPixmap(image.Rect(4, 4, 8, 8))
	if sub.Width() != 4 || sub.Height() != 4 {
		t.Fatalf("sub dimensions = %dx%d, want 4x4", sub.Width(), sub.Height())
	}
	if sub.GetPixel(1, 1) != Green {
		t.Errorf("sub(1,1) = %+v, want green", sub.GetPixel(1, 1))
	}

	// An allocating sub-image must not alias the source.
	sub.SetPixel(0, 0, Red)
	if pm.GetPixel(4, 4) != Transparent {
		t.Error("SubPixmap aliases the source pixels")
	}
}

func TestPixmapViewSharesMemory(t *testing.T) {
	pm := NewPixmap(10, 10)
	view := pm.View(image.Rect(2, 2, 6, 6))

	view.SetPixel(2, 2, Red)
	if pm.GetPixel(2, 2) != (RGBA{R: 1, A: 1}) {
		t.Error("view write did not reach the backing pixmap")
	}
}

func TestPixmapEqual(t *testing.T) {
	a := NewPixmap(5, 5)
	b := NewPixmap(5, 5)
	if !a.Equal(b) {
		t.Error("identical empty pixmaps not equal")
	}
	b.SetPixel(4, 4, White)
	if a.Equal(b) {
		t.Error("different pixmaps reported equal")
	}
	if a.Equal(NewPixmap(5, 6)) {
		t.Error("different dimensions reported equal")
	}
}

func TestFromImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(2, 3, 6, 7))
	src.SetNRGBA(2, 3, color.NRGBA{R: 255, A: 255})

	pm := FromImage(src)
	if pm.Width() != 4 || pm.Height() != 4 {
		t.Fatalf("dimensions = %dx%d, want 4x4", pm.Width(), pm.Height())
	}
	// The copy is re-anchored at the origin.
	if got := pm.GetPixel(0, 0); got != (RGBA{R: 1, A: 1}) {
		t.Errorf("(0,0) = %+v, want opaque red", got)
	}
	// And independent of the source.
	src.SetNRGBA(3, 4, color.NRGBA{G: 255, A: 255})
	if pm.GetPixel(1, 1) != Transparent {
		t.Error("FromImage aliases the source image")
	}
}

func TestWrapRGBASharesMemory(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 3, 3))
	pm := WrapRGBA(rgba)

	pm.SetPixel(1, 1, Red)
	if got := rgba.RGBAAt(1, 1); got.R != 255 || got.A != 255 {
		t.Errorf("backing pixel = %+v, want opaque red", got)
	}
	if pm.RGBA() != rgba {
		t.Error("RGBA() does not return the wrapped image")
	}
}

func TestPixmapDataLayout(t *testing.T) {
	pm := NewPixmap(2, 2)
	pm.SetPixel(1, 0, White)

	data := pm.Data()
	if len(data) != 2*2*4 {
		t.Fatalf("len(Data) = %d, want 16", len(data))
	}
	// Premultiplied RGBA, 4 bytes per pixel, row-major.
	for i, b := range data[4:8] {
		if b != 255 {
			t.Errorf("pixel (1,0) byte %d = %d, want 255", i, b)
		}
	}
	if data[0] != 0 {
		t.Error("pixel (0,0) is not transparent")
	}
}

func TestNewPixmapChecked(t *testing.T) {
	if _, err := NewPixmapChecked(10, 10); err != nil {
		t.Fatalf("small buffer rejected: %v", err)
	}
	if _, err := NewPixmapChecked(1<<16, 1<<16); err != ErrBufferTooLarge {
		t.Fatalf("oversized buffer: err = %v, want ErrBufferTooLarge", err)
	}
	if _, err := NewPixmapChecked(0, 10); err != ErrBufferTooLarge {
		t.Fatalf("zero width: err = %v, want ErrBufferTooLarge", err)
	}
}

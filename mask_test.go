package pix

import "testing"

func TestMaskSetAtBounds(t *testing.T) {
	m := NewMask(5, 5)
	m.Set(2, 3, 200)

	if got := m.At(2, 3); got != 200 {
		t.Errorf("At(2,3) = %d, want 200", got)
	}
	if got := m.At(-1, 0); got != 0 {
		t.Errorf("At(-1,0) = %d, want 0", got)
	}
	m.Set(5, 5, 99) // ignored
	if got := m.At(5, 5); got != 0 {
		t.Errorf("At(5,5) = %d, want 0", got)
	}
}

func TestMaskInvert(t *testing.T) {
	m := NewMask(2, 2)
	m.Fill(100)
	m.Invert()
	if got := m.At(0, 0); got != 155 {
		t.Errorf("inverted value = %d, want 155", got)
	}
}

func TestMaskFromLuminance(t *testing.T) {
	pm := NewPixmap(2, 1)
	pm.SetPixel(0, 0, White)
	pm.SetPixel(1, 0, Black)

	m := MaskFromLuminance(pm)
	if got := m.At(0, 0); got < 250 {
		t.Errorf("white luminance = %d, want ~255", got)
	}
	if got := m.At(1, 0); got != 0 {
		t.Errorf("black luminance = %d, want 0", got)
	}
}

func TestMaskFromAlpha(t *testing.T) {
	pm := NewPixmap(2, 1)
	pm.SetPixel(0, 0, RGBA{R: 1, A: 0.5})
	pm.SetPixel(1, 0, Red)

	m := MaskFromAlpha(pm)
	if got := m.At(0, 0); got < 125 || got > 130 {
		t.Errorf("half alpha = %d, want ~127", got)
	}
	if got := m.At(1, 0); got != 255 {
		t.Errorf("opaque alpha = %d, want 255", got)
	}
}

func TestMaskCloneIndependent(t *testing.T) {
	m := NewMask(3, 3)
	m.Fill(42)
	c := m.Clone()
	c.Set(0, 0, 7)
	if m.At(0, 0) != 42 {
		t.Error("mutating clone changed the original")
	}
}

package filter

import (
	"testing"

	"github.com/gopix/pix"
)

func TestBlurZeroRadiusIsIdentity(t *testing.T) {
	src := pix.NewPixmap(8, 8)
	src.SetPixel(4, 4, pix.Red)

	dst, err := NewBlur(0).Transform(src)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if !dst.Equal(src) {
		t.Error("zero-radius blur changed pixels")
	}
}

func TestBlurSpreadsEnergy(t *testing.T) {
	src := pix.NewPixmap(9, 9)
	src.SetPixel(4, 4, pix.White)

	dst, err := NewBlur(2).Transform(src)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}

	center := dst.GetPixel(4, 4)
	neighbor := dst.GetPixel(5, 4)
	far := dst.GetPixel(0, 0)

	if center.A >= 1 {
		t.Error("center not attenuated by blur")
	}
	if neighbor.A == 0 {
		t.Error("neighbor received no energy")
	}
	if center.A <= neighbor.A {
		t.Errorf("center alpha %v not greater than neighbor %v", center.A, neighbor.A)
	}
	if far.A > neighbor.A {
		t.Error("energy increased with distance")
	}
}

func TestBlurNegativeRadius(t *testing.T) {
	if _, err := (&Blur{RadiusX: -1}).Transform(pix.NewPixmap(4, 4)); err == nil {
		t.Error("negative radius accepted")
	}
}

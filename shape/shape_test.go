package shape

import (
	"image"
	"math"
	"testing"

	"github.com/gopix/pix"
)

func TestNewShapeIsUninitialized(t *testing.T) {
	s := New(KindRectangle, SolidStyle(pix.Red))
	if s.IsInitialized() {
		t.Error("new shape must be uninitialized")
	}
	if err := s.CheckConsistency(); err != nil {
		t.Errorf("uninitialized shape inconsistent: %v", err)
	}
}

func TestSetGeometryInitializes(t *testing.T) {
	s := New(KindEllipse, SolidStyle(pix.Blue))
	notified := 0
	s.OnChange(func() { notified++ })

	s.SetGeometry(Rect{X: 10, Y: 10, W: 40, H: 20})

	if !s.IsInitialized() {
		t.Error("shape not initialized after SetGeometry")
	}
	if notified != 1 {
		t.Errorf("change notifications = %d, want 1", notified)
	}
}

func TestRasterizeUninitializedPaintsNothing(t *testing.T) {
	s := New(KindRectangle, SolidStyle(pix.Red))
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))

	s.Rasterize(dst)

	for i, v := range dst.Pix {
		if v != 0 {
			t.Fatalf("pixel data modified at index %d", i)
		}
	}
}

func TestRasterizeSolidRectangle(t *testing.T) {
	s := New(KindRectangle, SolidStyle(pix.Red))
	s.SetGeometry(Rect{X: 5, Y: 5, W: 10, H: 10})

	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	s.Rasterize(dst)

	if c := dst.RGBAAt(10, 10); c.R < 250 || c.A < 250 {
		t.Errorf("interior pixel = %+v, want opaque red", c)
	}
	if c := dst.RGBAAt(1, 1); c.A != 0 {
		t.Errorf("exterior pixel = %+v, want transparent", c)
	}
}

func TestRasterizeLinearGradientVaries(t *testing.T) {
	s := New(KindRectangle, LinearGradientStyle(pix.Black, pix.White))
	s.SetGeometry(Rect{X: 0, Y: 0, W: 32, H: 32})

	dst := image.NewRGBA(image.Rect(0, 0, 32, 32))
	s.Rasterize(dst)

	start := dst.RGBAAt(2, 2)
	end := dst.RGBAAt(29, 29)
	if end.R <= start.R {
		t.Errorf("gradient does not vary: start %+v, end %+v", start, end)
	}
}

func TestShapeCloneIsIndependent(t *testing.T) {
	s := New(KindRectangle, SolidStyle(pix.Green))
	s.SetGeometry(Rect{X: 0, Y: 0, W: 10, H: 10})

	clone := s.Clone()
	if !clone.IsInitialized() {
		t.Fatal("clone lost initialization")
	}

	clone.ApplyTransform(pix.Scale(2, 2))

	if got := s.Transform(); !got.IsIdentity() {
		t.Errorf("original transform changed to %+v", got)
	}
	if got := clone.Transform(); got.IsIdentity() {
		t.Error("clone transform not applied")
	}
}

func TestCloneDropsListeners(t *testing.T) {
	s := New(KindRectangle, SolidStyle(pix.Green))
	notified := false
	s.OnChange(func() { notified = true })

	clone := s.Clone()
	clone.SetStyle(SolidStyle(pix.Blue))

	if notified {
		t.Error("clone change reached the original's subscriber")
	}
}

func TestCornersTransformed(t *testing.T) {
	s := New(KindRectangle, SolidStyle(pix.Red))
	s.SetGeometry(Rect{X: 0, Y: 0, W: 10, H: 10})
	s.ApplyTransform(pix.Translate(5, 5))

	corners := s.Corners()
	want := [4]pix.Point{{X: 5, Y: 5}, {X: 15, Y: 5}, {X: 15, Y: 15}, {X: 5, Y: 15}}
	for i := range corners {
		if corners[i].Distance(want[i]) > 1e-9 {
			t.Errorf("corner %d = %v, want %v", i, corners[i], want[i])
		}
	}
}

func TestCheckConsistency(t *testing.T) {
	s := New(KindRectangle, SolidStyle(pix.Red))
	s.SetGeometry(Rect{X: 0, Y: 0, W: 10, H: 10})
	if err := s.CheckConsistency(); err != nil {
		t.Errorf("valid shape inconsistent: %v", err)
	}

	s.ApplyTransform(pix.Matrix{A: math.NaN()})
	if err := s.CheckConsistency(); err == nil {
		t.Error("NaN transform not detected")
	}
}

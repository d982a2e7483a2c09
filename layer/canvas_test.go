package layer

import (
	"image"
	"testing"

	"github.com/gopix/pix"
)

func TestQuadrantAngleNewSize(t *testing.T) {
	tests := []struct {
		angle        QuadrantAngle
		w, h         int
		wantW, wantH int
	}{
		{Angle90, 20, 10, 10, 20},
		{Angle180, 20, 10, 20, 10},
		{Angle270, 20, 10, 10, 20},
	}
	for _, tt := range tests {
		w, h := tt.angle.NewSize(tt.w, tt.h)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("NewSize(%dx%d) at %v = %dx%d, want %dx%d",
				tt.w, tt.h, tt.angle, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestCanvasTransforms(t *testing.T) {
	c := NewCanvas(20, 10)

	tests := []struct {
		name string
		m    pix.Matrix
		in   pix.Point
		want pix.Point
	}{
		{"resize doubles", c.ResizeTransform(40, 20), pix.Pt(5, 5), pix.Pt(10, 10)},
		{"resize asymmetric", c.ResizeTransform(10, 30), pix.Pt(20, 10), pix.Pt(10, 30)},
		{"flip horizontal", c.FlipTransform(FlipHorizontal), pix.Pt(3, 7), pix.Pt(17, 7)},
		{"flip vertical", c.FlipTransform(FlipVertical), pix.Pt(3, 7), pix.Pt(3, 3)},
		{"rotate 90", c.RotateTransform(Angle90), pix.Pt(0, 0), pix.Pt(10, 0)},
		{"rotate 90 corner", c.RotateTransform(Angle90), pix.Pt(20, 10), pix.Pt(0, 20)},
		{"rotate 180", c.RotateTransform(Angle180), pix.Pt(0, 0), pix.Pt(20, 10)},
		{"rotate 270", c.RotateTransform(Angle270), pix.Pt(0, 0), pix.Pt(0, 20)},
		{"rotate 270 corner", c.RotateTransform(Angle270), pix.Pt(20, 0), pix.Pt(0, 0)},
		{"crop", CropTransform(image.Rect(4, 2, 12, 9)), pix.Pt(4, 2), pix.Pt(0, 0)},
		{"enlarge", EnlargeTransform(3, 5), pix.Pt(0, 0), pix.Pt(3, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformPoint(tt.in)
			if got.Distance(tt.want) > 1e-9 {
				t.Errorf("%+v -> %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

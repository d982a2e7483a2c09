package shape

import (
	"math"
	"testing"

	"github.com/gopix/pix"
)

func initializedShape() *StyledShape {
	s := New(KindRectangle, SolidStyle(pix.Red))
	s.SetGeometry(Rect{X: 10, Y: 10, W: 20, H: 20})
	return s
}

func TestNewTransformBoxDerivesHandles(t *testing.T) {
	s := initializedShape()
	b := NewTransformBox(s)

	corners := b.Corners()
	if corners[0] != pix.Pt(10, 10) || corners[2] != pix.Pt(30, 30) {
		t.Errorf("corners = %v, want shape corners", corners)
	}
	if b.Pivot() != pix.Pt(20, 20) {
		t.Errorf("pivot = %v, want center", b.Pivot())
	}
}

func TestApplyTransformMovesBoxAndShapeTogether(t *testing.T) {
	s := initializedShape()
	b := NewTransformBox(s)

	b.ApplyTransform(pix.Scale(2, 2))

	if got := b.Corners()[2]; got != pix.Pt(60, 60) {
		t.Errorf("SE handle = %v, want (60,60)", got)
	}
	if got := s.Corners()[2]; got.Distance(pix.Pt(60, 60)) > 1e-9 {
		t.Errorf("shape SE corner = %v, want (60,60)", got)
	}
}

// Applying T then its inverse must restore shape geometry and handle
// positions within floating tolerance.
func TestTransformInverseRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		m    pix.Matrix
	}{
		{"scale", pix.Scale(2, 3)},
		{"translate", pix.Translate(-17, 4)},
		{"rotate", pix.RotateAround(0.6, pix.Pt(20, 20))},
		{"composed", pix.Translate(3, 3).Multiply(pix.Scale(1.5, 0.5))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := initializedShape()
			b := NewTransformBox(s)
			origCorners := b.Corners()
			origShape := s.Corners()

			b.ApplyTransform(tt.m)
			b.ApplyTransform(tt.m.Invert())

			for i := range origCorners {
				if b.Corners()[i].Distance(origCorners[i]) > 1e-6 {
					t.Errorf("handle %d = %v, want %v", i, b.Corners()[i], origCorners[i])
				}
				if s.Corners()[i].Distance(origShape[i]) > 1e-6 {
					t.Errorf("shape corner %d = %v, want %v", i, s.Corners()[i], origShape[i])
				}
			}
		})
	}
}

func TestDragMovesShapeInLockstep(t *testing.T) {
	s := initializedShape()
	b := NewTransformBox(s)

	b.StartMovement()
	b.MoveWhileDragging(5, 5)
	// A later drag tick replaces the earlier offset.
	b.MoveWhileDragging(10, -3)
	b.EndMovement()

	if got := b.Corners()[0]; got != pix.Pt(20, 7) {
		t.Errorf("NW handle = %v, want (20,7)", got)
	}
	if got := s.Corners()[0]; got.Distance(pix.Pt(20, 7)) > 1e-9 {
		t.Errorf("shape NW corner = %v, want (20,7)", got)
	}
}

func TestMoveWhileDraggingWithoutStartIsNoop(t *testing.T) {
	s := initializedShape()
	b := NewTransformBox(s)

	b.MoveWhileDragging(100, 100)

	if got := b.Corners()[0]; got != pix.Pt(10, 10) {
		t.Errorf("handle moved without StartMovement: %v", got)
	}
}

func TestCopyForIsIndependent(t *testing.T) {
	s := initializedShape()
	b := NewTransformBox(s)

	clone := s.Clone()
	copied := b.CopyFor(clone)

	copied.ApplyTransform(pix.Translate(100, 0))

	if got := s.Corners()[0]; got.Distance(pix.Pt(10, 10)) > 1e-9 {
		t.Errorf("original shape moved: %v", got)
	}
	if got := b.Corners()[0]; got != pix.Pt(10, 10) {
		t.Errorf("original box moved: %v", got)
	}
	if got := clone.Corners()[0]; got.Distance(pix.Pt(110, 10)) > 1e-9 {
		t.Errorf("clone shape = %v, want (110,10)", got)
	}
}

func TestSnapshotRestore(t *testing.T) {
	s := initializedShape()
	b := NewTransformBox(s)
	before := b.Snapshot()

	b.StartMovement()
	b.MoveWhileDragging(42, 42)
	b.EndMovement()
	after := b.Snapshot()

	b.Restore(before)
	if got := b.Corners()[0]; got != pix.Pt(10, 10) {
		t.Errorf("restore: handle = %v, want (10,10)", got)
	}
	if got := s.Transform(); !got.IsIdentity() {
		t.Errorf("restore: shape transform = %+v, want identity", got)
	}

	b.Restore(after)
	if got := b.Corners()[0]; got != pix.Pt(52, 52) {
		t.Errorf("redo restore: handle = %v, want (52,52)", got)
	}
}

func TestRotateAroundPivot(t *testing.T) {
	s := initializedShape()
	b := NewTransformBox(s)

	b.RotateAroundPivot(math.Pi)

	// 180 degrees around the center swaps NW and SE.
	if got := b.Corners()[0]; got.Distance(pix.Pt(30, 30)) > 1e-9 {
		t.Errorf("rotated NW handle = %v, want (30,30)", got)
	}
	if got := b.Pivot(); got.Distance(pix.Pt(20, 20)) > 1e-9 {
		t.Errorf("pivot drifted to %v", got)
	}
}

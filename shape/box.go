package shape

import "github.com/gopix/pix"

// TransformBox is the interactive handle set driving affine edits of a
// styled shape. It is the single source of truth for interactive geometry:
// every transform applied through the box updates the handle positions and
// the bound shape together, so the two can never drift apart.
//
// The box cannot be recreated from the shape alone - its rotation pivot and
// handle positions are independent interactive history - so it is stored
// alongside the shape by the owning layer.
type TransformBox struct {
	shape   *StyledShape
	corners [4]pix.Point // NW, NE, SE, SW
	pivot   pix.Point

	dragging       bool
	startCorners   [4]pix.Point
	startPivot     pix.Point
	startTransform pix.Matrix
}

// NewTransformBox creates a box for an initialized shape, deriving the
// initial handle positions from the shape's transformed corners and the
// pivot from their center.
func NewTransformBox(s *StyledShape) *TransformBox {
	b := &TransformBox{shape: s}
	b.corners = s.Corners()
	b.pivot = b.corners[0].Lerp(b.corners[2], 0.5)
	return b
}

// Shape returns the styled shape bound to this box.
func (b *TransformBox) Shape() *StyledShape { return b.shape }

// Corners returns the handle positions in NW, NE, SE, SW order.
func (b *TransformBox) Corners() [4]pix.Point { return b.corners }

// Pivot returns the rotation pivot.
func (b *TransformBox) Pivot() pix.Point { return b.pivot }

// SetPivot moves the rotation pivot. The pivot is interactive state only;
// moving it does not change the shape.
func (b *TransformBox) SetPivot(p pix.Point) { b.pivot = p }

// ApplyTransform applies an affine transform to the handles, the pivot and
// the bound shape in one step.
func (b *TransformBox) ApplyTransform(m pix.Matrix) {
	for i := range b.corners {
		b.corners[i] = m.TransformPoint(b.corners[i])
	}
	b.pivot = m.TransformPoint(b.pivot)
	b.shape.ApplyTransform(m)
}

// RotateAroundPivot rotates the box and shape by the given angle (radians)
// around the current pivot.
func (b *TransformBox) RotateAroundPivot(angle float64) {
	b.ApplyTransform(pix.RotateAround(angle, b.pivot))
}

// StartMovement begins a drag move, snapshotting the handle positions and
// the shape's transform so MoveWhileDragging can work with deltas relative
// to the drag origin.
func (b *TransformBox) StartMovement() {
	b.dragging = true
	b.startCorners = b.corners
	b.startPivot = b.pivot
	b.startTransform = b.shape.Transform()
}

// MoveWhileDragging positions the box and shape at the given offset
// relative to the drag origin. Called repeatedly during a drag; each call
// replaces the previous offset rather than accumulating.
func (b *TransformBox) MoveWhileDragging(relX, relY float64) {
	if !b.dragging {
		return
	}
	delta := pix.Pt(relX, relY)
	for i := range b.corners {
		b.corners[i] = b.startCorners[i].Add(delta)
	}
	b.pivot = b.startPivot.Add(delta)
	b.shape.setTransform(pix.Translate(relX, relY).Multiply(b.startTransform))
}

// EndMovement finalizes a drag move.
func (b *TransformBox) EndMovement() {
	b.dragging = false
}

// IsDragging reports whether a drag move is in progress.
func (b *TransformBox) IsDragging() bool { return b.dragging }

// CopyFor creates an independent copy of the box bound to the given shape
// clone. Drag state is not carried over.
func (b *TransformBox) CopyFor(clone *StyledShape) *TransformBox {
	return &TransformBox{
		shape:   clone,
		corners: b.corners,
		pivot:   b.pivot,
	}
}

// Snapshot captures the state needed to undo a movement: handle positions,
// pivot and the shape's transform.
type Snapshot struct {
	Corners   [4]pix.Point
	Pivot     pix.Point
	Transform pix.Matrix
}

// StartSnapshot returns the drag-origin state captured by StartMovement.
// Only meaningful while a drag is in progress or just ended.
func (b *TransformBox) StartSnapshot() Snapshot {
	return Snapshot{
		Corners:   b.startCorners,
		Pivot:     b.startPivot,
		Transform: b.startTransform,
	}
}

// Snapshot returns the current box and shape state.
func (b *TransformBox) Snapshot() Snapshot {
	return Snapshot{
		Corners:   b.corners,
		Pivot:     b.pivot,
		Transform: b.shape.Transform(),
	}
}

// Restore resets the box and shape to a previously captured state.
func (b *TransformBox) Restore(s Snapshot) {
	b.corners = s.Corners
	b.pivot = s.Pivot
	b.shape.setTransform(s.Transform)
}

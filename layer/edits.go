package layer

import (
	"github.com/gopix/pix"
	"github.com/gopix/pix/shape"
)

// ImageEdit is the reversible record of a pixel-content change on a
// drawable. For selection-scoped changes, before and after hold only the
// selected region; undo and redo replace exactly that region, so the
// round trip restores the buffer bit for bit.
type ImageEdit struct {
	name            string
	drawable        Drawable
	before          *pix.Pixmap
	after           *pix.Pixmap
	ignoreSelection bool
}

// Name implements history.Edit.
func (e *ImageEdit) Name() string { return e.name }

// Undo implements history.Edit.
func (e *ImageEdit) Undo() error {
	e.drawable.ChangeImageForUndoRedo(e.before, e.ignoreSelection)
	return nil
}

// Redo implements history.Edit.
func (e *ImageEdit) Redo() error {
	e.drawable.ChangeImageForUndoRedo(e.after, e.ignoreSelection)
	return nil
}

// MoveEdit records a completed layer drag.
type MoveEdit struct {
	name         string
	layer        *ContentLayer
	oldTx, oldTy int
	newTx, newTy int
}

// Name implements history.Edit.
func (e *MoveEdit) Name() string { return e.name }

// Undo implements history.Edit.
func (e *MoveEdit) Undo() error {
	e.layer.setTranslation(e.oldTx, e.oldTy)
	e.layer.comp.Invalidate()
	return nil
}

// Redo implements history.Edit.
func (e *MoveEdit) Redo() error {
	e.layer.setTranslation(e.newTx, e.newTy)
	e.layer.comp.Invalidate()
	return nil
}

// BoxMovementEdit records a completed transform-box interaction on a
// shapes layer. Undo restores the shape, box corners and pivot together,
// keeping them consistent.
type BoxMovementEdit struct {
	name   string
	layer  *ShapesLayer
	box    *shape.TransformBox
	before shape.Snapshot
	after  shape.Snapshot
}

// Name implements history.Edit.
func (e *BoxMovementEdit) Name() string { return e.name }

// Undo implements history.Edit.
func (e *BoxMovementEdit) Undo() error {
	e.box.Restore(e.before)
	e.layer.invalidateCache()
	e.layer.comp.Invalidate()
	return nil
}

// Redo implements history.Edit.
func (e *BoxMovementEdit) Redo() error {
	e.box.Restore(e.after)
	e.layer.invalidateCache()
	e.layer.comp.Invalidate()
	return nil
}

// AddLayerEdit records a layer insertion into the composition stack.
type AddLayerEdit struct {
	name  string
	comp  *Composition
	layer Layer
	index int
}

// Name implements history.Edit.
func (e *AddLayerEdit) Name() string { return e.name }

// Undo implements history.Edit.
func (e *AddLayerEdit) Undo() error {
	return e.comp.removeLayerAt(e.index)
}

// Redo implements history.Edit.
func (e *AddLayerEdit) Redo() error {
	return e.comp.insertLayerAt(e.layer, e.index)
}

// RemoveLayerEdit records a layer removal from the composition stack.
type RemoveLayerEdit struct {
	name  string
	comp  *Composition
	layer Layer
	index int
}

// Name implements history.Edit.
func (e *RemoveLayerEdit) Name() string { return e.name }

// Undo implements history.Edit.
func (e *RemoveLayerEdit) Undo() error {
	return e.comp.insertLayerAt(e.layer, e.index)
}

// Redo implements history.Edit.
func (e *RemoveLayerEdit) Redo() error {
	return e.comp.removeLayerAt(e.index)
}

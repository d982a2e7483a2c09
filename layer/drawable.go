package layer

import "github.com/gopix/pix"

// FilterContext distinguishes the two contexts a filter can run in.
type FilterContext int

const (
	// Previewing renders into a transient preview buffer. Any number of
	// preview runs may occur before a commit or cancel; none of them is
	// individually undoable.
	Previewing FilterContext = iota
	// Final commits the filter result as a reversible, history-recorded
	// pixel change.
	Final
)

// IsPreview reports whether the context is Previewing.
func (c FilterContext) IsPreview() bool { return c == Previewing }

// String returns a string representation of the filter context.
func (c FilterContext) String() string {
	if c == Previewing {
		return "Previewing"
	}
	return "Final"
}

// Drawable is the capability of layers that consist of a bunch of pixels:
// image layers and layer masks. Drawables can be used with brush tools and
// filters. The shared filter-execution algorithm is the free function
// RunFilter, parameterized over this interface.
//
// The pixel buffer's extent may exceed the canvas (to support untranslated
// drag operations); canvas-sized views are derived, never stored.
type Drawable interface {
	// Image returns the full owned pixel buffer.
	Image() *pix.Pixmap

	// SetImage replaces the full pixel buffer, ignoring any active
	// selection.
	SetImage(img *pix.Pixmap)

	// StartTweening and EndTweening bracket a temporary-state window
	// during which pixel edits must not be committed to history.
	StartTweening()
	EndTweening()

	// ChangeImageForUndoRedo replaces pixel content during history
	// navigation. When ignoreSelection is false, only the selected
	// region is replaced, preserving unselected pixels; the operation
	// is exactly reversible.
	ChangeImageForUndoRedo(img *pix.Pixmap, ignoreSelection bool)

	// CreateTmpDrawingLayer establishes the transient overlay buffer
	// used while an interactive brush stroke is in progress, so the
	// stroke can be discarded on abort. MergeTmpDrawingLayerDown
	// permanently merges it using the given paint composite, optionally
	// softened by the active selection mask.
	CreateTmpDrawingLayer(mode pix.BlendMode, softSelection bool) *TmpDrawingLayer
	MergeTmpDrawingLayerDown()

	// CanvasSizedSubImage returns a view cropped exactly to canvas
	// bounds, accounting for the translation offset.
	CanvasSizedSubImage() *pix.Pixmap

	// FilterSourceImage returns the pixel region a filter should read:
	// the selection-bounded sub-image if a selection is active, else
	// the full image. The caller must not mutate it.
	FilterSourceImage() *pix.Pixmap

	// SelectedSubImage returns the sub-image determined by the selection
	// bounds. With no selection it returns the live image, or a
	// defensive copy when copyIfNoSelection is set.
	SelectedSubImage(copyIfNoSelection bool) *pix.Pixmap

	// ImageForFilterDialogs returns the image filter dialogs preview:
	// only the selection is considered, not the canvas.
	ImageForFilterDialogs() *pix.Pixmap

	// ChangePreviewImage replaces the transient preview buffer. Preview
	// changes never create history entries.
	ChangePreviewImage(preview *pix.Pixmap, filterName string, ctx FilterContext)

	// CommitFilter commits a final filter result as a reversible edit.
	CommitFilter(dest *pix.Pixmap, filterName string)

	// CancelPreview discards the transient preview buffer without
	// touching committed state.
	CancelPreview()

	Tx() int
	Ty() int
	IsMaskEditing() bool

	// Layer returns the owning layer (the owner if this is a mask).
	Layer() Layer
	Name() string

	// Update signals that the drawable's committed content changed and
	// dependent caches (composite, thumbnails) must refresh.
	Update()

	// filterGate serializes filter and transform runs against this
	// drawable. Sealed: only layer kinds in this package implement
	// Drawable.
	acquireFilterGate() bool
	releaseFilterGate()
}

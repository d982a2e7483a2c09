package layer

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/gopix/pix"
	"github.com/gopix/pix/history"
	"github.com/gopix/pix/notify"
	"github.com/gopix/pix/tool"
)

// Composition owns an ordered layer stack, the canvas, the active
// selection and the edit history. It is the single entry point for
// composition-wide operations; anything reaching individual layers goes
// through it.
//
// The composition is single threaded. Asynchronous filter runs serialize
// through the per-drawable filter gate, never through the composition.
type Composition struct {
	name   string
	canvas *Canvas

	layers    []Layer
	activeIdx int

	selection *Selection
	hist      *history.Log
	sink      notify.Sink
	policy    ErrorPolicy
	tools     *tool.Registry

	// Counter backing auto-generated shape layer names. Owned by the
	// composition so concurrent compositions never share numbering.
	shapeLayerSeq int

	dirty      bool
	onChange   []func()
	thumbCache map[Layer]*pix.Pixmap
}

// Option configures a composition at construction time.
type Option func(*Composition)

// WithHistoryCap bounds the undo stack. A non-positive cap retains
// everything.
func WithHistoryCap(n int) Option {
	return func(c *Composition) { c.hist = history.NewLog(n) }
}

// WithSink routes failure notifications to the given sink.
func WithSink(s notify.Sink) Option {
	return func(c *Composition) { c.sink = s }
}

// WithErrorPolicy sets how failed filter runs are handled.
func WithErrorPolicy(p ErrorPolicy) Option {
	return func(c *Composition) { c.policy = p }
}

// WithToolRegistry shares a tool registry between compositions.
func WithToolRegistry(r *tool.Registry) Option {
	return func(c *Composition) { c.tools = r }
}

// NewComposition creates an empty composition with the given canvas size.
// Defaults: unbounded history, a slog-backed sink, the report error policy
// and a private tool registry.
func NewComposition(name string, width, height int, opts ...Option) *Composition {
	c := &Composition{
		name:       name,
		canvas:     NewCanvas(width, height),
		activeIdx:  -1,
		hist:       history.NewLog(0),
		sink:       &notify.LogSink{Logger: slog.Default()},
		policy:     ReportPolicy{},
		tools:      tool.NewRegistry(),
		thumbCache: make(map[Layer]*pix.Pixmap),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the composition name.
func (c *Composition) Name() string { return c.name }

// Canvas returns the composition's canvas.
func (c *Composition) Canvas() *Canvas { return c.canvas }

// History returns the edit log.
func (c *Composition) History() *history.Log { return c.hist }

// Sink returns the failure notification sink.
func (c *Composition) Sink() notify.Sink { return c.sink }

// Policy returns the filter error policy.
func (c *Composition) Policy() ErrorPolicy { return c.policy }

// Tools returns the tool registry.
func (c *Composition) Tools() *tool.Registry { return c.tools }

// NumLayers returns the layer stack depth.
func (c *Composition) NumLayers() int { return len(c.layers) }

// LayerAt returns the layer at the given stack index (0 is bottom).
func (c *Composition) LayerAt(i int) Layer { return c.layers[i] }

// ActiveLayer returns the active layer, or nil for an empty composition.
func (c *Composition) ActiveLayer() Layer {
	if c.activeIdx < 0 || c.activeIdx >= len(c.layers) {
		return nil
	}
	return c.layers[c.activeIdx]
}

// SetActiveLayer activates the given layer. Activating a layer not in the
// stack is ignored.
func (c *Composition) SetActiveLayer(l Layer) {
	for i, candidate := range c.layers {
		if candidate == l {
			c.activeIdx = i
			return
		}
	}
}

// ActiveDrawable resolves the active layer to its editable pixel target:
// the layer mask if mask editing is active, the layer itself for image
// layers, ErrRasterOnly for vector layers without mask editing.
func (c *Composition) ActiveDrawable() (Drawable, error) {
	l := c.ActiveLayer()
	if l == nil {
		return nil, fmt.Errorf("composition %q: no active layer", c.name)
	}
	type masked interface {
		IsMaskEditing() bool
		Mask() *LayerMask
	}
	if m, ok := l.(masked); ok && m.IsMaskEditing() && m.Mask() != nil {
		return m.Mask(), nil
	}
	if d, ok := l.(Drawable); ok {
		return d, nil
	}
	return nil, fmt.Errorf("composition %q: active layer %q: %w", c.name, l.Name(), ErrRasterOnly)
}

// AddImageLayer creates an empty image layer above the active layer and
// activates it.
func (c *Composition) AddImageLayer(name string) *ImageLayer {
	l := NewImageLayer(c, name)
	c.addLayer(l, "Add Image Layer")
	return l
}

// AddImageLayerFromPixmap creates an image layer owning the given buffer
// above the active layer and activates it.
func (c *Composition) AddImageLayerFromPixmap(name string, pm *pix.Pixmap) *ImageLayer {
	l := NewImageLayerFromPixmap(c, name, pm)
	c.addLayer(l, "Add Image Layer")
	return l
}

// AddShapesLayer creates an empty shapes layer above the active layer,
// auto-named from the composition's own counter, activates it and switches
// to the shapes tool so the user can draw immediately.
func (c *Composition) AddShapesLayer() *ShapesLayer {
	c.shapeLayerSeq++
	l := NewShapesLayer(c, fmt.Sprintf("shape layer %d", c.shapeLayerSeq))
	c.addLayer(l, "Add Shape Layer")
	c.tools.Select(tool.Shapes)
	return l
}

func (c *Composition) addLayer(l Layer, editName string) {
	idx := c.activeIdx + 1
	if idx > len(c.layers) {
		idx = len(c.layers)
	}
	_ = c.insertLayerAt(l, idx)
	c.hist.Add(&AddLayerEdit{name: editName, comp: c, layer: l, index: idx})
}

// DeleteActiveLayer removes the active layer, recording a reversible edit.
func (c *Composition) DeleteActiveLayer() error {
	if c.activeIdx < 0 {
		return fmt.Errorf("composition %q: no active layer", c.name)
	}
	idx := c.activeIdx
	l := c.layers[idx]
	if err := c.removeLayerAt(idx); err != nil {
		return err
	}
	c.hist.Add(&RemoveLayerEdit{name: "Delete Layer", comp: c, layer: l, index: idx})
	return nil
}

func (c *Composition) insertLayerAt(l Layer, i int) error {
	if i < 0 || i > len(c.layers) {
		return fmt.Errorf("composition %q: layer index %d out of range", c.name, i)
	}
	c.layers = append(c.layers, nil)
	copy(c.layers[i+1:], c.layers[i:])
	c.layers[i] = l
	c.activeIdx = i
	c.Invalidate()
	return nil
}

func (c *Composition) removeLayerAt(i int) error {
	if i < 0 || i >= len(c.layers) {
		return fmt.Errorf("composition %q: layer index %d out of range", c.name, i)
	}
	delete(c.thumbCache, c.layers[i])
	c.layers = append(c.layers[:i], c.layers[i+1:]...)
	if c.activeIdx >= len(c.layers) {
		c.activeIdx = len(c.layers) - 1
	}
	c.Invalidate()
	return nil
}

// Selection returns the active selection, or nil.
func (c *Composition) Selection() *Selection { return c.selection }

// SetSelection replaces the active selection. The bounds are clipped to
// the canvas.
func (c *Composition) SetSelection(s *Selection) {
	if s != nil {
		clipped := s.bounds.Intersect(c.canvas.Bounds())
		s = &Selection{bounds: clipped, mask: s.mask}
	}
	c.selection = s
	c.Invalidate()
}

// ClearSelection deselects.
func (c *Composition) ClearSelection() {
	c.selection = nil
	c.Invalidate()
}

// Render composites all visible layers bottom to top onto a transparent
// canvas-sized buffer.
func (c *Composition) Render() *pix.Pixmap {
	out := pix.NewPixmap(c.canvas.Width(), c.canvas.Height())
	for _, l := range c.layers {
		l.PaintOn(out)
	}
	c.dirty = false
	return out
}

// Flatten replaces the layer stack with a single image layer holding the
// rendered composite. Flattening is not undoable; the history is cleared.
func (c *Composition) Flatten() *ImageLayer {
	rendered := c.Render()
	flat := NewImageLayerFromPixmap(c, "flattened", rendered)
	c.layers = []Layer{flat}
	c.activeIdx = 0
	c.hist = history.NewLog(0)
	c.thumbCache = make(map[Layer]*pix.Pixmap)
	c.Invalidate()
	return flat
}

// Thumbnail returns the cached icon thumbnail for a layer, rendering it on
// demand.
func (c *Composition) Thumbnail(l Layer) *pix.Pixmap {
	if t, ok := c.thumbCache[l]; ok {
		return t
	}
	t := l.IconThumbnail()
	c.thumbCache[l] = t
	return t
}

// Invalidate marks the composite and thumbnails stale and notifies
// subscribers. Layers call it after any visible change.
func (c *Composition) Invalidate() {
	c.dirty = true
	c.thumbCache = make(map[Layer]*pix.Pixmap)
	for _, fn := range c.onChange {
		fn()
	}
}

// IsDirty reports whether the composite needs re-rendering.
func (c *Composition) IsDirty() bool { return c.dirty }

// OnChange subscribes to composite invalidation.
func (c *Composition) OnChange(fn func()) {
	c.onChange = append(c.onChange, fn)
}

// Resize scales the whole composition to a new canvas size. On failure the
// composition may be partially resized; callers treat it as fatal for the
// document.
func (c *Composition) Resize(newWidth, newHeight int) error {
	for _, l := range c.layers {
		if err := l.Resize(newWidth, newHeight); err != nil {
			return fmt.Errorf("composition %q: resize layer %q: %w", c.name, l.Name(), err)
		}
	}
	c.canvas.resize(newWidth, newHeight)
	c.selection = nil
	c.Invalidate()
	return nil
}

// Crop crops the composition to the given canvas rectangle and clears the
// selection.
func (c *Composition) Crop(cropRect image.Rectangle) {
	cropRect = cropRect.Intersect(c.canvas.Bounds())
	for _, l := range c.layers {
		l.Crop(cropRect)
	}
	c.canvas.resize(cropRect.Dx(), cropRect.Dy())
	c.selection = nil
	c.Invalidate()
}

// Flip mirrors the whole composition.
func (c *Composition) Flip(dir FlipDirection) {
	for _, l := range c.layers {
		l.Flip(dir)
	}
	c.selection = nil
	c.Invalidate()
}

// Rotate rotates the whole composition by a quarter turn.
func (c *Composition) Rotate(angle QuadrantAngle) {
	for _, l := range c.layers {
		l.Rotate(angle)
	}
	w, h := angle.NewSize(c.canvas.Width(), c.canvas.Height())
	c.canvas.resize(w, h)
	c.selection = nil
	c.Invalidate()
}

// EnlargeCanvas grows the canvas by the given amounts per edge without
// scaling content.
func (c *Composition) EnlargeCanvas(north, east, south, west int) {
	for _, l := range c.layers {
		l.EnlargeCanvas(north, east, south, west)
	}
	c.canvas.resize(c.canvas.Width()+east+west, c.canvas.Height()+north+south)
	c.selection = nil
	c.Invalidate()
}

// ActivateEditingOf switches the active layer and tool to edit the given
// layer.
func (c *Composition) ActivateEditingOf(l Layer) {
	c.SetActiveLayer(l)
	c.tools.Select(l.PreferredTool())
}

// CheckConsistency validates composition-wide structural invariants.
func (c *Composition) CheckConsistency() error {
	if len(c.layers) > 0 && (c.activeIdx < 0 || c.activeIdx >= len(c.layers)) {
		return fmt.Errorf("composition %q: active index %d out of range", c.name, c.activeIdx)
	}
	if c.selection != nil && !c.selection.Bounds().In(c.canvas.Bounds()) {
		return fmt.Errorf("composition %q: selection %v exceeds canvas", c.name, c.selection.Bounds())
	}
	for _, l := range c.layers {
		if l.Comp() != c {
			return fmt.Errorf("composition %q: layer %q belongs to a different composition", c.name, l.Name())
		}
		if sl, ok := l.(*ShapesLayer); ok {
			if err := sl.CheckConsistency(); err != nil {
				return fmt.Errorf("composition %q: %w", c.name, err)
			}
		}
	}
	return nil
}

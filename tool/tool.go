// Package tool implements the active-tool registry. The layer engine only
// needs two things from it: "select and activate tool X" and "which tool
// does this layer kind prefer"; presentation is out of scope.
package tool

// Type identifies an editing tool.
type Type int

const (
	// Move drags layer content.
	Move Type = iota
	// Shapes draws and edits styled shapes.
	Shapes
	// Brush paints onto drawables.
	Brush
	// Crop crops the canvas.
	Crop
)

// String returns a string representation of the tool type.
func (t Type) String() string {
	switch t {
	case Move:
		return "Move"
	case Shapes:
		return "Shapes"
	case Brush:
		return "Brush"
	case Crop:
		return "Crop"
	default:
		return "Unknown"
	}
}

// Registry tracks the active tool. It is single threaded like the rest of
// the editing core.
type Registry struct {
	active   Type
	onChange []func(Type)
}

// NewRegistry creates a registry with the Move tool active.
func NewRegistry() *Registry {
	return &Registry{active: Move}
}

// Select activates a tool and notifies subscribers.
func (r *Registry) Select(t Type) {
	if r.active == t {
		return
	}
	r.active = t
	for _, fn := range r.onChange {
		fn(t)
	}
}

// ActiveType returns the currently active tool.
func (r *Registry) ActiveType() Type { return r.active }

// OnChange subscribes to tool activation changes.
func (r *Registry) OnChange(fn func(Type)) {
	r.onChange = append(r.onChange, fn)
}

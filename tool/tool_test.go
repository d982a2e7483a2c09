package tool

import "testing"

func TestRegistrySelect(t *testing.T) {
	r := NewRegistry()
	if r.ActiveType() != Move {
		t.Fatalf("default tool = %v, want Move", r.ActiveType())
	}

	var changes []Type
	r.OnChange(func(tt Type) { changes = append(changes, tt) })

	r.Select(Shapes)
	r.Select(Shapes) // no-op, already active
	r.Select(Brush)

	if r.ActiveType() != Brush {
		t.Errorf("active = %v, want Brush", r.ActiveType())
	}
	if len(changes) != 2 || changes[0] != Shapes || changes[1] != Brush {
		t.Errorf("change notifications = %v, want [Shapes Brush]", changes)
	}
}

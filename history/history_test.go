package history

import (
	"errors"
	"testing"
)

// counterEdit moves a shared integer between two values.
type counterEdit struct {
	name     string
	target   *int
	from, to int
}

func (e *counterEdit) Name() string { return e.name }
func (e *counterEdit) Undo() error  { *e.target = e.from; return nil }
func (e *counterEdit) Redo() error  { *e.target = e.to; return nil }

func TestLogUndoRedo(t *testing.T) {
	v := 0
	l := NewLog(10)

	v = 1
	l.Add(&counterEdit{name: "set 1", target: &v, from: 0, to: 1})
	v = 2
	l.Add(&counterEdit{name: "set 2", target: &v, from: 1, to: 2})

	if err := l.Undo(); err != nil || v != 1 {
		t.Fatalf("first undo: v=%d err=%v", v, err)
	}
	if err := l.Undo(); err != nil || v != 0 {
		t.Fatalf("second undo: v=%d err=%v", v, err)
	}
	if err := l.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("empty undo err = %v", err)
	}

	if err := l.Redo(); err != nil || v != 1 {
		t.Fatalf("redo: v=%d err=%v", v, err)
	}
	if err := l.Redo(); err != nil || v != 2 {
		t.Fatalf("second redo: v=%d err=%v", v, err)
	}
	if err := l.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Fatalf("empty redo err = %v", err)
	}
}

func TestAddClearsRedo(t *testing.T) {
	v := 0
	l := NewLog(10)
	l.Add(&counterEdit{name: "a", target: &v, from: 0, to: 1})
	if err := l.Undo(); err != nil {
		t.Fatal(err)
	}
	l.Add(&counterEdit{name: "b", target: &v, from: 0, to: 5})

	if l.CanRedo() {
		t.Error("redo stack not cleared by Add")
	}
	if got := l.LastEditName(); got != "b" {
		t.Errorf("LastEditName = %q, want %q", got, "b")
	}
}

func TestLogCapDropsOldest(t *testing.T) {
	v := 0
	l := NewLog(2)
	for i := 1; i <= 5; i++ {
		l.Add(&counterEdit{name: "e", target: &v, from: i - 1, to: i})
	}
	if got := l.Len(); got != 2 {
		t.Errorf("Len = %d, want 2", got)
	}
}

func TestAddNilIsIgnored(t *testing.T) {
	l := NewLog(10)
	l.Add(nil)
	if l.CanUndo() {
		t.Error("nil edit recorded")
	}
}

// Package history implements the undo/redo edit log. The log stores opaque
// reversible edit records produced by the layer engine; it replays them but
// never interprets their contents.
package history

import "errors"

// Edit is a single reversible change. Undo and Redo must be exact inverses:
// applying Undo after Redo (or vice versa) restores the previous state
// bit for bit.
type Edit interface {
	Name() string
	Undo() error
	Redo() error
}

// ErrNothingToUndo is returned when the undo stack is empty.
var ErrNothingToUndo = errors.New("history: nothing to undo")

// ErrNothingToRedo is returned when the redo stack is empty.
var ErrNothingToRedo = errors.New("history: nothing to redo")

// Log is a bounded undo/redo stack pair. Adding an edit clears the redo
// stack; when the undo stack exceeds its cap the oldest edits are dropped.
// Log is not safe for concurrent use; the editing core is single threaded.
type Log struct {
	undo []Edit
	redo []Edit
	cap  int
}

// NewLog creates an edit log retaining at most maxEdits undoable edits.
// A non-positive cap retains everything.
func NewLog(maxEdits int) *Log {
	return &Log{cap: maxEdits}
}

// Add records a new edit, clearing the redo stack.
func (l *Log) Add(e Edit) {
	if e == nil {
		return
	}
	l.undo = append(l.undo, e)
	l.redo = l.redo[:0]
	if l.cap > 0 && len(l.undo) > l.cap {
		copy(l.undo, l.undo[len(l.undo)-l.cap:])
		l.undo = l.undo[:l.cap]
	}
}

// Undo reverts the most recent edit.
func (l *Log) Undo() error {
	if len(l.undo) == 0 {
		return ErrNothingToUndo
	}
	e := l.undo[len(l.undo)-1]
	if err := e.Undo(); err != nil {
		return err
	}
	l.undo = l.undo[:len(l.undo)-1]
	l.redo = append(l.redo, e)
	return nil
}

// Redo re-applies the most recently undone edit.
func (l *Log) Redo() error {
	if len(l.redo) == 0 {
		return ErrNothingToRedo
	}
	e := l.redo[len(l.redo)-1]
	if err := e.Redo(); err != nil {
		return err
	}
	l.redo = l.redo[:len(l.redo)-1]
	l.undo = append(l.undo, e)
	return nil
}

// CanUndo reports whether an edit is available to undo.
func (l *Log) CanUndo() bool { return len(l.undo) > 0 }

// CanRedo reports whether an edit is available to redo.
func (l *Log) CanRedo() bool { return len(l.redo) > 0 }

// Len returns the number of undoable edits.
func (l *Log) Len() int { return len(l.undo) }

// LastEditName returns the name of the most recent edit, or "".
func (l *Log) LastEditName() string {
	if len(l.undo) == 0 {
		return ""
	}
	return l.undo[len(l.undo)-1].Name()
}

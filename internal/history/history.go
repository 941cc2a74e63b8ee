// Package history provides the console's bounded undo/redo stacks and the
// ordered multi-selection set they operate on. It is independent of
// rendering; the UI records reversible view mutations (selection, filter,
// tab, sort) here and replays them on undo/redo.
package history

// Stack is a bounded pair of undo/redo stacks over entries of type T. An
// entry captures the state needed to reverse one mutation. When the undo
// stack is full the oldest entry is evicted; eviction never affects the
// round-trip guarantee for entries still on the stack.
type Stack[T any] struct {
	undo []T
	redo []T
	max  int
}

// New returns a stack bounded to max entries per side.
func New[T any](max int) *Stack[T] {
	if max < 1 {
		max = 1
	}
	return &Stack[T]{max: max}
}

// Push records a new undoable entry and truncates the redo stack.
func (s *Stack[T]) Push(e T) {
	if len(s.undo) >= s.max {
		s.undo = s.undo[1:]
	}
	s.undo = append(s.undo, e)
	s.redo = s.redo[:0]
}

// PopUndo removes and returns the most recent undoable entry.
func (s *Stack[T]) PopUndo() (T, bool) {
	var zero T
	if len(s.undo) == 0 {
		return zero, false
	}
	e := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	return e, true
}

// PushRedo records the state that PopUndo is about to overwrite.
func (s *Stack[T]) PushRedo(e T) {
	if len(s.redo) >= s.max {
		s.redo = s.redo[1:]
	}
	s.redo = append(s.redo, e)
}

// PopRedo removes and returns the most recently undone entry.
func (s *Stack[T]) PopRedo() (T, bool) {
	var zero T
	if len(s.redo) == 0 {
		return zero, false
	}
	e := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	return e, true
}

// PushUndoKeepRedo re-inserts an entry on the undo side during redo without
// clearing the redo stack.
func (s *Stack[T]) PushUndoKeepRedo(e T) {
	if len(s.undo) >= s.max {
		s.undo = s.undo[1:]
	}
	s.undo = append(s.undo, e)
}

func (s *Stack[T]) CanUndo() bool { return len(s.undo) > 0 }
func (s *Stack[T]) CanRedo() bool { return len(s.redo) > 0 }

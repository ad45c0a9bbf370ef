package ui

import "github.com/piwi3910/CorruCalc/internal/model"

const defaultMaxDepth = 50

// Snapshot is the calculator inputs before a change, tagged with the name of
// that change (e.g. "Fold Angle" or "Preset Standard Roof").
type Snapshot struct {
	Params model.Params
	Label  string
}

// History keeps undo and redo stacks of parameter snapshots. A snapshot on
// either stack carries the label of the change it reverts, so the same label
// moves between the stacks as the user steps back and forth.
type History struct {
	undoStack []Snapshot
	redoStack []Snapshot
	maxDepth  int
}

func NewHistory() *History {
	return &History{maxDepth: defaultMaxDepth}
}

// Record stores the inputs as they were before the change named label.
// Recording a change discards anything that could be redone.
func (h *History) Record(before model.Params, label string) {
	h.undoStack = push(h.undoStack, Snapshot{Params: before, Label: label}, h.maxDepth)
	h.redoStack = nil
}

// Undo returns the inputs to restore and keeps current for Redo.
func (h *History) Undo(current model.Params) (Snapshot, bool) {
	return h.step(&h.undoStack, &h.redoStack, current)
}

// Redo reapplies the most recently undone change.
func (h *History) Redo(current model.Params) (Snapshot, bool) {
	return h.step(&h.redoStack, &h.undoStack, current)
}

func (h *History) step(from, to *[]Snapshot, current model.Params) (Snapshot, bool) {
	n := len(*from)
	if n == 0 {
		return Snapshot{}, false
	}
	s := (*from)[n-1]
	*from = (*from)[:n-1]
	*to = push(*to, Snapshot{Params: current, Label: s.Label}, h.maxDepth)
	return s, true
}

func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }

func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

// UndoLabel names the change Undo would revert, or "" when there is none.
func (h *History) UndoLabel() string { return topLabel(h.undoStack) }

// RedoLabel names the change Redo would reapply, or "" when there is none.
func (h *History) RedoLabel() string { return topLabel(h.redoStack) }

func push(stack []Snapshot, s Snapshot, maxDepth int) []Snapshot {
	stack = append(stack, s)
	if len(stack) > maxDepth {
		stack = stack[len(stack)-maxDepth:]
	}
	return stack
}

func topLabel(stack []Snapshot) string {
	if len(stack) == 0 {
		return ""
	}
	return stack[len(stack)-1].Label
}

package history

import "github.com/example/plotsketch/internal/scene"

// DefaultLimit is the history capacity used when none is configured.
const DefaultLimit = 50

// Engine is the undo/redo state machine: an ordered command list plus a
// cursor at the most recently executed command (-1 when none). Commands
// after the cursor are redoable until a new command truncates them.
type Engine struct {
	commands []Command
	cursor   int
	limit    int
}

// New returns an engine with the given capacity; non-positive capacities
// fall back to DefaultLimit.
func New(limit int) *Engine {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Engine{cursor: -1, limit: limit}
}

// Execute applies c to s and appends it to history, discarding any redoable
// branch first and evicting the oldest entry when over capacity.
func (e *Engine) Execute(s *scene.Scene, c Command) {
	c.Apply(s)
	e.push(c)
}

// RecordWithoutExecuting appends c without invoking its forward effect.
// This exists solely for the drag-to-move commit, where the object was
// already mutated live during the drag; calling Execute there would apply
// the move twice.
func (e *Engine) RecordWithoutExecuting(c Command) {
	e.push(c)
}

func (e *Engine) push(c Command) {
	e.commands = append(e.commands[:e.cursor+1], c)
	e.cursor++
	if len(e.commands) > e.limit {
		over := len(e.commands) - e.limit
		e.commands = append([]Command(nil), e.commands[over:]...)
		e.cursor -= over
	}
}

// Undo reverts the command at the cursor. Reports whether anything was
// undone.
func (e *Engine) Undo(s *scene.Scene) bool {
	if e.cursor < 0 {
		return false
	}
	e.commands[e.cursor].Revert(s)
	e.cursor--
	return true
}

// Redo re-applies the command after the cursor. Reports whether anything
// was redone.
func (e *Engine) Redo(s *scene.Scene) bool {
	if e.cursor >= len(e.commands)-1 {
		return false
	}
	e.cursor++
	e.commands[e.cursor].Apply(s)
	return true
}

// CanUndo reports whether Undo would do anything.
func (e *Engine) CanUndo() bool { return e.cursor >= 0 }

// CanRedo reports whether Redo would do anything.
func (e *Engine) CanRedo() bool { return e.cursor < len(e.commands)-1 }

// UndoDescription names the pending undo action for the UI, or "".
func (e *Engine) UndoDescription() string {
	if !e.CanUndo() {
		return ""
	}
	return e.commands[e.cursor].Description()
}

// RedoDescription names the pending redo action for the UI, or "".
func (e *Engine) RedoDescription() string {
	if !e.CanRedo() {
		return ""
	}
	return e.commands[e.cursor+1].Description()
}

// Len returns the number of recorded commands.
func (e *Engine) Len() int { return len(e.commands) }

// Cursor returns the index of the most recently executed command, -1 when
// none.
func (e *Engine) Cursor() int { return e.cursor }

// Package history records reversible scene mutations and replays them for
// undo/redo.
package history

import (
	"fmt"

	"github.com/example/plotsketch/internal/scene"
)

// Command is one reversible mutation. Apply and Revert must be exact
// inverses; both are no-ops when their target no longer exists so that
// history traversal can never corrupt the scene.
type Command interface {
	Apply(s *scene.Scene)
	Revert(s *scene.Scene)
	Description() string
}

// AddCommand inserts an object at the end of the collection; its inverse
// removes it by id.
type AddCommand struct {
	Object scene.Object
}

func (c *AddCommand) Apply(s *scene.Scene) {
	if err := s.Add(c.Object); err != nil {
		// duplicate id: already applied, leave the scene alone
		return
	}
}

func (c *AddCommand) Revert(s *scene.Scene) {
	s.Remove(c.Object.ObjectID())
}

func (c *AddCommand) Description() string {
	return fmt.Sprintf("add %s", c.Object.Kind())
}

// DeleteCommand removes an object, remembering its insertion-order index
// and the selection so undo restores both exactly.
type DeleteCommand struct {
	object      scene.Object
	index       int
	prevSelect  string
	kind        scene.Kind
	id          string
	initialized bool
}

// NewDelete captures the state needed to delete id from s. Returns nil if
// the id is not live.
func NewDelete(s *scene.Scene, id string) *DeleteCommand {
	o, ok := s.Get(id)
	if !ok {
		return nil
	}
	return &DeleteCommand{
		object:      o,
		index:       s.IndexOf(id),
		prevSelect:  s.SelectedID(),
		kind:        o.Kind(),
		id:          id,
		initialized: true,
	}
}

func (c *DeleteCommand) Apply(s *scene.Scene) {
	if !c.initialized {
		return
	}
	s.Remove(c.id)
}

func (c *DeleteCommand) Revert(s *scene.Scene) {
	if !c.initialized {
		return
	}
	if err := s.InsertAt(c.index, c.object); err != nil {
		return
	}
	s.Select(c.prevSelect)
}

func (c *DeleteCommand) Description() string {
	return fmt.Sprintf("delete %s", c.kind)
}

// ModifyCommand sets a single named field; its inverse restores the prior
// value. Callers skip creating the command when old equals new.
type ModifyCommand struct {
	ID    string
	Field string
	Old   any
	New   any
}

func (c *ModifyCommand) Apply(s *scene.Scene) {
	c.set(s, c.New)
}

func (c *ModifyCommand) Revert(s *scene.Scene) {
	c.set(s, c.Old)
}

func (c *ModifyCommand) set(s *scene.Scene, v any) {
	o, ok := s.Get(c.ID)
	if !ok {
		return
	}
	// field errors mean the command was built against a different kind;
	// treat as a no-op like a missing target
	_ = scene.SetField(o, c.Field, v)
}

func (c *ModifyCommand) Description() string {
	return fmt.Sprintf("change %s", c.Field)
}

// MoveCommand carries the absolute before/after coordinate bundles of a
// drag. It is recorded without executing, because the drag already mutated
// the object live.
type MoveCommand struct {
	ID     string
	Kind   scene.Kind
	Before scene.Coords
	After  scene.Coords
}

func (c *MoveCommand) Apply(s *scene.Scene) {
	if o, ok := s.Get(c.ID); ok {
		scene.SetCoords(o, c.After)
	}
}

func (c *MoveCommand) Revert(s *scene.Scene) {
	if o, ok := s.Get(c.ID); ok {
		scene.SetCoords(o, c.Before)
	}
}

func (c *MoveCommand) Description() string {
	return fmt.Sprintf("move %s", c.Kind)
}

// ClearCommand snapshots the whole collection and the selection; undo
// restores both verbatim.
type ClearCommand struct {
	saved    []scene.Object
	selected string
	captured bool
}

// NewClear captures s's current contents.
func NewClear(s *scene.Scene) *ClearCommand {
	objs := s.Objects()
	saved := make([]scene.Object, len(objs))
	copy(saved, objs)
	return &ClearCommand{saved: saved, selected: s.SelectedID(), captured: true}
}

func (c *ClearCommand) Apply(s *scene.Scene) {
	if !c.captured {
		return
	}
	s.Clear()
}

func (c *ClearCommand) Revert(s *scene.Scene) {
	if !c.captured {
		return
	}
	s.Restore(c.saved, c.selected)
}

func (c *ClearCommand) Description() string {
	return fmt.Sprintf("clear %d objects", len(c.saved))
}

package scene

import (
	"fmt"
	"sort"
)

// Scene owns the ordered object collection and the current selection. All
// mutation outside a live drag goes through the history engine's commands.
type Scene struct {
	objects    []Object
	selectedID string
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{}
}

// Len returns the number of live objects.
func (s *Scene) Len() int { return len(s.objects) }

// Objects returns the objects in insertion order. The slice is shared; do
// not reorder it.
func (s *Scene) Objects() []Object { return s.objects }

// Painted returns the objects in paint/pick order: z-index ascending, ties
// broken by insertion order. Callers iterate front to back by walking the
// result in reverse.
func (s *Scene) Painted() []Object {
	out := make([]Object, len(s.objects))
	copy(out, s.objects)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Z() < out[j].Z() })
	return out
}

// Get returns the live object with the given id.
func (s *Scene) Get(id string) (Object, bool) {
	for _, o := range s.objects {
		if o.ObjectID() == id {
			return o, true
		}
	}
	return nil, false
}

// IndexOf returns the insertion-order index of id, or -1.
func (s *Scene) IndexOf(id string) int {
	for i, o := range s.objects {
		if o.ObjectID() == id {
			return i
		}
	}
	return -1
}

// Add appends o to the collection. Ids must be unique among live objects.
func (s *Scene) Add(o Object) error {
	if o.ObjectID() == "" {
		return fmt.Errorf("add: object has no id")
	}
	if _, ok := s.Get(o.ObjectID()); ok {
		return fmt.Errorf("add: duplicate object id %s", o.ObjectID())
	}
	s.objects = append(s.objects, o)
	return nil
}

// InsertAt re-inserts o at an insertion-order index, used by the delete
// command's inverse so ordering survives an undo. Indexes beyond the end
// clamp to an append.
func (s *Scene) InsertAt(index int, o Object) error {
	if _, ok := s.Get(o.ObjectID()); ok {
		return fmt.Errorf("insert: duplicate object id %s", o.ObjectID())
	}
	if index < 0 {
		index = 0
	}
	if index > len(s.objects) {
		index = len(s.objects)
	}
	s.objects = append(s.objects, nil)
	copy(s.objects[index+1:], s.objects[index:])
	s.objects[index] = o
	return nil
}

// Remove deletes the object with the given id and returns it with its
// insertion-order index. The selection is cleared if it pointed at the
// removed object.
func (s *Scene) Remove(id string) (Object, int, bool) {
	for i, o := range s.objects {
		if o.ObjectID() == id {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			if s.selectedID == id {
				s.selectedID = ""
			}
			return o, i, true
		}
	}
	return nil, -1, false
}

// Clear empties the collection and returns the removed objects and the
// selection as they were, for the clear command's inverse.
func (s *Scene) Clear() ([]Object, string) {
	objs := s.objects
	sel := s.selectedID
	s.objects = nil
	s.selectedID = ""
	return objs, sel
}

// Restore replaces the collection and selection wholesale (clear undo).
func (s *Scene) Restore(objs []Object, selectedID string) {
	s.objects = append([]Object(nil), objs...)
	s.selectedID = ""
	if _, ok := s.Get(selectedID); ok {
		s.selectedID = selectedID
	}
}

// SelectedID returns the current selection, or "".
func (s *Scene) SelectedID() string { return s.selectedID }

// Selected returns the selected object, if any.
func (s *Scene) Selected() (Object, bool) {
	if s.selectedID == "" {
		return nil, false
	}
	return s.Get(s.selectedID)
}

// Select sets the selection. Selecting an id that is not live clears it, so
// the selection invariant always holds.
func (s *Scene) Select(id string) {
	if id == "" {
		s.selectedID = ""
		return
	}
	if _, ok := s.Get(id); ok {
		s.selectedID = id
	} else {
		s.selectedID = ""
	}
}

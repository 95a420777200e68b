package history

import (
	"fmt"
	"testing"

	"github.com/example/plotsketch/internal/scene"
)

func point(id string, x, y float64) *scene.Point {
	return &scene.Point{Base: scene.Base{ID: id}, X: x, Y: y, Size: 3}
}

func ids(s *scene.Scene) []string {
	var out []string
	for _, o := range s.Objects() {
		out = append(out, o.ObjectID())
	}
	return out
}

func TestUndoRedoSequence(t *testing.T) {
	s := scene.New()
	e := New(50)

	a := point("A", 0, 0)
	b := point("B", 1, 1)
	e.Execute(s, &AddCommand{Object: a})
	e.Execute(s, &AddCommand{Object: b})
	del := NewDelete(s, "A")
	if del == nil {
		t.Fatal("delete capture failed")
	}
	e.Execute(s, del)

	if got := ids(s); fmt.Sprint(got) != "[B]" {
		t.Fatalf("after forward ops: %v", got)
	}

	for i := 0; i < 3; i++ {
		if !e.Undo(s) {
			t.Fatalf("undo %d failed", i)
		}
	}
	if s.Len() != 0 {
		t.Fatalf("after three undos scene has %v", ids(s))
	}
	if e.Undo(s) {
		t.Fatal("undo past the beginning should be a no-op")
	}

	// Redo must replay in original forward order, not naive reversal.
	if !e.Redo(s) {
		t.Fatal("redo 1")
	}
	if got := fmt.Sprint(ids(s)); got != "[A]" {
		t.Fatalf("after redo 1: %v", got)
	}
	if !e.Redo(s) {
		t.Fatal("redo 2")
	}
	if got := fmt.Sprint(ids(s)); got != "[A B]" {
		t.Fatalf("after redo 2: %v", got)
	}
	if !e.Redo(s) {
		t.Fatal("redo 3")
	}
	if got := fmt.Sprint(ids(s)); got != "[B]" {
		t.Fatalf("after redo 3: %v", got)
	}
	if e.Redo(s) {
		t.Fatal("redo past the end should be a no-op")
	}
}

func TestExecuteTruncatesRedoBranch(t *testing.T) {
	s := scene.New()
	e := New(50)
	e.Execute(s, &AddCommand{Object: point("A", 0, 0)})
	e.Execute(s, &AddCommand{Object: point("B", 0, 0)})
	e.Undo(s)

	e.Execute(s, &AddCommand{Object: point("C", 0, 0)})
	if e.CanRedo() {
		t.Error("redo branch should be discarded")
	}
	if got := fmt.Sprint(ids(s)); got != "[A C]" {
		t.Errorf("scene = %v", got)
	}
	if e.Len() != 2 {
		t.Errorf("history length = %d, want 2", e.Len())
	}
}

func TestHistoryCapEvictsOldest(t *testing.T) {
	const limit = 10
	s := scene.New()
	e := New(limit)

	for i := 0; i < limit+5; i++ {
		e.Execute(s, &AddCommand{Object: point(fmt.Sprintf("p%02d", i), 0, 0)})
	}
	if e.Len() != limit {
		t.Fatalf("len = %d, want %d", e.Len(), limit)
	}
	if e.Cursor() != limit-1 {
		t.Fatalf("cursor = %d, want %d", e.Cursor(), limit-1)
	}

	undone := 0
	for e.Undo(s) {
		undone++
	}
	if undone != limit {
		t.Errorf("undid %d commands, want %d", undone, limit)
	}
	// the first five adds are unrecoverable
	if s.Len() != 5 {
		t.Errorf("scene retains %d objects, want the 5 evicted adds", s.Len())
	}
}

func TestDeleteRestoresIndexAndSelection(t *testing.T) {
	s := scene.New()
	e := New(50)
	for _, id := range []string{"a", "b", "c"} {
		e.Execute(s, &AddCommand{Object: point(id, 0, 0)})
	}
	s.Select("b")

	e.Execute(s, NewDelete(s, "b"))
	if s.SelectedID() != "" {
		t.Fatalf("selection survived delete: %q", s.SelectedID())
	}

	e.Undo(s)
	if got := fmt.Sprint(ids(s)); got != "[a b c]" {
		t.Errorf("order after undo = %v, want middle position restored", got)
	}
	if s.SelectedID() != "b" {
		t.Errorf("selection after undo = %q, want b", s.SelectedID())
	}
}

func TestModifyRoundTrip(t *testing.T) {
	s := scene.New()
	e := New(50)
	p := point("p", 0, 0)
	e.Execute(s, &AddCommand{Object: p})

	e.Execute(s, &ModifyCommand{ID: "p", Field: "size", Old: 3.0, New: 9.0})
	if p.Size != 9 {
		t.Fatalf("size = %g", p.Size)
	}
	e.Undo(s)
	if p.Size != 3 {
		t.Errorf("size after undo = %g", p.Size)
	}
	e.Redo(s)
	if p.Size != 9 {
		t.Errorf("size after redo = %g", p.Size)
	}
}

func TestModifyMissingTargetIsNoop(t *testing.T) {
	s := scene.New()
	e := New(50)
	e.Execute(s, &ModifyCommand{ID: "ghost", Field: "size", Old: 1.0, New: 2.0})
	e.Undo(s)
	e.Redo(s)
	// reaching here without a panic is the test
}

func TestRecordWithoutExecuting(t *testing.T) {
	s := scene.New()
	e := New(50)
	p := point("p", 0, 0)
	e.Execute(s, &AddCommand{Object: p})

	// Simulated drag: the object is mutated live, then the move is
	// recorded without re-applying.
	before := scene.CoordsOf(p)
	scene.SetCoords(p, scene.Coords{X1: 3, Y1: 4})
	e.RecordWithoutExecuting(&MoveCommand{
		ID: "p", Kind: p.Kind(),
		Before: before,
		After:  scene.Coords{X1: 3, Y1: 4},
	})

	if p.X != 3 || p.Y != 4 {
		t.Fatalf("live mutation lost: (%g,%g)", p.X, p.Y)
	}
	if e.Len() != 2 {
		t.Fatalf("history length = %d, want 2", e.Len())
	}
	e.Undo(s)
	if p.X != 0 || p.Y != 0 {
		t.Errorf("undo of drag gave (%g,%g), want (0,0)", p.X, p.Y)
	}
	e.Redo(s)
	if p.X != 3 || p.Y != 4 {
		t.Errorf("redo of drag gave (%g,%g), want (3,4)", p.X, p.Y)
	}
}

func TestClearSnapshotAndRestore(t *testing.T) {
	s := scene.New()
	e := New(50)
	for _, id := range []string{"a", "b"} {
		e.Execute(s, &AddCommand{Object: point(id, 0, 0)})
	}
	s.Select("a")

	e.Execute(s, NewClear(s))
	if s.Len() != 0 || s.SelectedID() != "" {
		t.Fatalf("clear left %v selected=%q", ids(s), s.SelectedID())
	}
	e.Undo(s)
	if got := fmt.Sprint(ids(s)); got != "[a b]" {
		t.Errorf("restore gave %v", got)
	}
	if s.SelectedID() != "a" {
		t.Errorf("selection = %q, want a", s.SelectedID())
	}
}

func TestDescriptions(t *testing.T) {
	s := scene.New()
	e := New(50)
	if e.UndoDescription() != "" || e.RedoDescription() != "" {
		t.Error("descriptions should be empty on fresh history")
	}
	e.Execute(s, &AddCommand{Object: point("a", 0, 0)})
	if got := e.UndoDescription(); got != "add point" {
		t.Errorf("undo description = %q", got)
	}
	e.Undo(s)
	if got := e.RedoDescription(); got != "add point" {
		t.Errorf("redo description = %q", got)
	}
}

package editor

import (
	"bytes"
	"testing"

	"github.com/example/plotsketch/internal/coords"
	"github.com/example/plotsketch/internal/scene"
)

func newTestEditor() *Editor {
	b := coords.Bounds{XMin: -10, XMax: 10, YMin: -10, YMax: 10}
	return New(b, coords.DefaultAxes(), 400, 400, 20, 50)
}

func devicePt(e *Editor, x, y float64) (int, int) {
	dx, dy := e.Transform().ToDevice(x, y)
	return int(dx), int(dy)
}

func TestPointToolCreatesUndoableObject(t *testing.T) {
	e := newTestEditor()
	e.SetTool(ToolPoint)
	dx, dy := devicePt(e, 2, 3)
	e.PointerDown(dx, dy)

	if e.Scene().Len() != 1 {
		t.Fatalf("scene has %d objects, want 1", e.Scene().Len())
	}
	p := e.Scene().Objects()[0].(*scene.Point)
	if ax, ay := p.X, p.Y; ax < 1.9 || ax > 2.1 || ay < 2.9 || ay > 3.1 {
		t.Errorf("point placed at (%g, %g), want near (2, 3)", ax, ay)
	}
	if !e.Undo() {
		t.Fatal("undo failed")
	}
	if e.Scene().Len() != 0 {
		t.Error("undo did not remove the point")
	}
	if !e.Redo() {
		t.Fatal("redo failed")
	}
	if e.Scene().Len() != 1 {
		t.Error("redo did not restore the point")
	}
}

func TestLineToolUsesAnchorAndRelease(t *testing.T) {
	e := newTestEditor()
	e.SetTool(ToolLine)
	x0, y0 := devicePt(e, -4, 0)
	x1, y1 := devicePt(e, 4, 2)
	e.PointerDown(x0, y0)
	if e.Scene().Len() != 0 {
		t.Fatal("line created before release")
	}
	e.PointerUp(x1, y1)
	if e.Scene().Len() != 1 {
		t.Fatal("line not created on release")
	}
	l := e.Scene().Objects()[0].(*scene.Line)
	if l.X1 > l.X2 {
		// anchor was the first click
		t.Errorf("line endpoints swapped: (%g,%g)-(%g,%g)", l.X1, l.Y1, l.X2, l.Y2)
	}
}

func TestSelectToolPicksAndClears(t *testing.T) {
	e := newTestEditor()
	e.Add(&scene.Point{Base: scene.Base{ID: "dot"}, X: 0, Y: 0, Size: 10})

	dx, dy := devicePt(e, 0, 0)
	e.PointerDown(dx, dy)
	e.PointerUp(dx, dy)
	if e.Scene().SelectedID() != "dot" {
		t.Fatalf("selected = %q, want dot", e.Scene().SelectedID())
	}

	ex, ey := devicePt(e, 8, 8)
	e.PointerDown(ex, ey)
	e.PointerUp(ex, ey)
	if e.Scene().SelectedID() != "" {
		t.Errorf("selected = %q after clicking empty canvas, want none", e.Scene().SelectedID())
	}
}

func TestDragRecordsSingleMove(t *testing.T) {
	e := newTestEditor()
	e.Add(&scene.Point{Base: scene.Base{ID: "dot"}, X: 0, Y: 0, Size: 10})
	undoable := e.CanUndo()
	if !undoable {
		t.Fatal("add not recorded")
	}
	e.Undo()
	e.Redo() // leave exactly the add in history

	x0, y0 := devicePt(e, 0, 0)
	e.PointerDown(x0, y0)
	for _, step := range []float64{1, 2, 3} {
		mx, my := devicePt(e, step, step)
		e.PointerMove(mx, my)
	}
	x1, y1 := devicePt(e, 3, 3)
	e.PointerUp(x1, y1)

	p, _ := e.Scene().Get("dot")
	got := p.(*scene.Point)
	if got.X < 2.9 || got.X > 3.1 || got.Y < 2.9 || got.Y > 3.1 {
		t.Fatalf("point at (%g, %g) after drag, want near (3, 3)", got.X, got.Y)
	}

	// One undo reverts the whole drag, not one step of it.
	if !e.Undo() {
		t.Fatal("undo failed")
	}
	p, _ = e.Scene().Get("dot")
	got = p.(*scene.Point)
	if got.X < -0.1 || got.X > 0.1 {
		t.Errorf("point at x=%g after undo, want 0", got.X)
	}
}

func TestDragWithoutMovementRecordsNothing(t *testing.T) {
	e := newTestEditor()
	e.Add(&scene.Point{Base: scene.Base{ID: "dot"}, X: 0, Y: 0, Size: 10})
	before := e.UndoDescription()

	dx, dy := devicePt(e, 0, 0)
	e.PointerDown(dx, dy)
	e.PointerUp(dx, dy)

	if got := e.UndoDescription(); got != before {
		t.Errorf("history top changed from %q to %q after a no-move drag", before, got)
	}
}

func TestSetPropertySkipsNoChange(t *testing.T) {
	e := newTestEditor()
	e.Add(&scene.Point{Base: scene.Base{ID: "dot"}, X: 0, Y: 0, Size: 10, Color: "#ff0000"})
	before := e.UndoDescription()

	if err := e.SetProperty("dot", "color", "#ff0000"); err != nil {
		t.Fatal(err)
	}
	if got := e.UndoDescription(); got != before {
		t.Error("no-change edit was recorded")
	}

	if err := e.SetProperty("dot", "color", "#00ff00"); err != nil {
		t.Fatal(err)
	}
	p, _ := e.Scene().Get("dot")
	if p.(*scene.Point).Color != "#00ff00" {
		t.Error("edit not applied")
	}
	if err := e.SetProperty("dot", "nope", 1.0); err == nil {
		t.Error("unknown field accepted")
	}
	if err := e.SetProperty("ghost", "color", "#000000"); err == nil {
		t.Error("unknown object accepted")
	}
}

func TestDeleteSelectedRestoresOnUndo(t *testing.T) {
	e := newTestEditor()
	e.Add(&scene.Point{Base: scene.Base{ID: "dot"}, X: 0, Y: 0, Size: 10})
	e.Scene().Select("dot")

	if !e.DeleteSelected() {
		t.Fatal("delete failed")
	}
	if e.Scene().Len() != 0 || e.Scene().SelectedID() != "" {
		t.Fatal("delete left state behind")
	}
	if !e.Undo() {
		t.Fatal("undo failed")
	}
	if _, ok := e.Scene().Get("dot"); !ok {
		t.Error("undo did not restore the object")
	}
	if e.Scene().SelectedID() != "dot" {
		t.Error("undo did not restore the selection")
	}
}

func TestClearAllIsOneStep(t *testing.T) {
	e := newTestEditor()
	e.Add(&scene.Point{Base: scene.Base{ID: "a"}, X: 0, Y: 0, Size: 4})
	e.Add(&scene.Point{Base: scene.Base{ID: "b"}, X: 1, Y: 1, Size: 4})
	e.ClearAll()
	if e.Scene().Len() != 0 {
		t.Fatal("clear left objects")
	}
	if !e.Undo() {
		t.Fatal("undo failed")
	}
	if e.Scene().Len() != 2 {
		t.Errorf("undo restored %d objects, want 2", e.Scene().Len())
	}
}

func TestBoundsAndAxesValidation(t *testing.T) {
	e := newTestEditor()
	if err := e.SetBounds(coords.Bounds{XMin: 1, XMax: 1, YMin: 0, YMax: 1}); err == nil {
		t.Error("degenerate bounds accepted")
	}
	if err := e.SetAxes(coords.Axes{AspectRatio: 0}); err == nil {
		t.Error("zero aspect ratio accepted")
	}
	if err := e.SetBounds(coords.Bounds{XMin: -5, XMax: 5, YMin: -5, YMax: 5}); err != nil {
		t.Errorf("valid bounds rejected: %v", err)
	}
}

func TestAddFunction(t *testing.T) {
	e := newTestEditor()
	if err := e.AddFunction("sin", 100); err != nil {
		t.Fatal(err)
	}
	if e.Scene().Len() != 1 {
		t.Fatal("function not added")
	}
	f := e.Scene().Objects()[0].(*scene.Function)
	if len(f.Samples) != 100 {
		t.Errorf("got %d samples, want 100", len(f.Samples))
	}
	if err := e.AddFunction("no-such-fn", 100); err == nil {
		t.Error("unknown expression accepted")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	e := newTestEditor()
	e.Add(&scene.Point{Base: scene.Base{ID: "dot", ZIndex: 7}, X: 1, Y: 2, Size: 5, Color: "#123456"})
	var buf bytes.Buffer
	if err := e.Save(&buf); err != nil {
		t.Fatal(err)
	}

	e2 := newTestEditor()
	if err := e2.Load(&buf); err != nil {
		t.Fatal(err)
	}
	if e2.Scene().Len() != 1 {
		t.Fatal("load dropped objects")
	}
	if e2.CanUndo() {
		t.Error("history survived load")
	}
	// New objects stack above everything loaded.
	e2.SetTool(ToolPoint)
	e2.PointerDown(200, 200)
	objs := e2.Scene().Objects()
	if objs[1].Z() <= objs[0].Z() {
		t.Errorf("new object z %d not above loaded z %d", objs[1].Z(), objs[0].Z())
	}
}

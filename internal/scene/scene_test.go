package scene

import (
	"testing"
)

func TestAddRejectsDuplicateIDs(t *testing.T) {
	s := New()
	p := &Point{Base: Base{ID: "a", ZIndex: 0}, X: 1, Y: 2}
	if err := s.Add(p); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := s.Add(&Line{Base: Base{ID: "a"}}); err == nil {
		t.Fatal("expected duplicate id error")
	}
}

func TestPaintedOrderStableSort(t *testing.T) {
	s := New()
	mustAdd(t, s, &Point{Base: Base{ID: "first", ZIndex: 1}})
	mustAdd(t, s, &Point{Base: Base{ID: "low", ZIndex: 0}})
	mustAdd(t, s, &Point{Base: Base{ID: "second", ZIndex: 1}})

	got := s.Painted()
	want := []string{"low", "first", "second"}
	for i, o := range got {
		if o.ObjectID() != want[i] {
			t.Errorf("painted[%d] = %s, want %s", i, o.ObjectID(), want[i])
		}
	}
	// insertion order must be untouched
	if s.Objects()[0].ObjectID() != "first" {
		t.Errorf("insertion order mutated: %s", s.Objects()[0].ObjectID())
	}
}

func TestRemoveClearsSelection(t *testing.T) {
	s := New()
	mustAdd(t, s, &Point{Base: Base{ID: "a"}})
	mustAdd(t, s, &Point{Base: Base{ID: "b"}})
	s.Select("a")

	if _, _, ok := s.Remove("a"); !ok {
		t.Fatal("remove failed")
	}
	if s.SelectedID() != "" {
		t.Errorf("selection not cleared, still %q", s.SelectedID())
	}

	s.Select("b")
	if _, _, ok := s.Remove("a"); ok {
		t.Fatal("expected remove of missing id to fail")
	}
	if s.SelectedID() != "b" {
		t.Errorf("unrelated selection lost, got %q", s.SelectedID())
	}
}

func TestInsertAtRestoresOrdering(t *testing.T) {
	s := New()
	mustAdd(t, s, &Point{Base: Base{ID: "a"}})
	mustAdd(t, s, &Point{Base: Base{ID: "b"}})
	mustAdd(t, s, &Point{Base: Base{ID: "c"}})

	o, idx, ok := s.Remove("b")
	if !ok || idx != 1 {
		t.Fatalf("remove returned idx=%d ok=%v", idx, ok)
	}
	if err := s.InsertAt(idx, o); err != nil {
		t.Fatalf("insert: %v", err)
	}
	for i, want := range []string{"a", "b", "c"} {
		if got := s.Objects()[i].ObjectID(); got != want {
			t.Errorf("objects[%d] = %s, want %s", i, got, want)
		}
	}
}

func TestSelectUnknownIDClears(t *testing.T) {
	s := New()
	mustAdd(t, s, &Point{Base: Base{ID: "a"}})
	s.Select("a")
	s.Select("ghost")
	if s.SelectedID() != "" {
		t.Errorf("expected cleared selection, got %q", s.SelectedID())
	}
}

func TestSetFieldAndFieldValue(t *testing.T) {
	b := &Brace{Base: Base{ID: "br"}, Style: BraceSmooth, Elevation: 10}
	if err := SetField(b, "style", "45deg"); err != nil {
		t.Fatalf("set style: %v", err)
	}
	if b.Style != Brace45Deg {
		t.Errorf("style = %s", b.Style)
	}
	if err := SetField(b, "style", "wavy"); err == nil {
		t.Error("expected error for unknown style")
	}
	if err := SetField(b, "elevation", 24.0); err != nil {
		t.Fatalf("set elevation: %v", err)
	}
	got, ok := FieldValue(b, "elevation")
	if !ok || got.(float64) != 24.0 {
		t.Errorf("elevation = %v ok=%v", got, ok)
	}
	if _, ok := FieldValue(b, "radius"); ok {
		t.Error("unexpected field radius")
	}
	if err := SetField(b, "mirrored", true); err != nil {
		t.Fatalf("set mirrored: %v", err)
	}
	if err := SetField(b, "mirrored", "yes"); err == nil {
		t.Error("expected type error for mirrored")
	}
}

func TestCoordsRoundTrip(t *testing.T) {
	l := &Line{Base: Base{ID: "l"}, X1: 1, Y1: 2, X2: 3, Y2: 4}
	c := CoordsOf(l)
	Translate(l, c, 10, 20)
	if l.X1 != 11 || l.Y1 != 22 || l.X2 != 13 || l.Y2 != 24 {
		t.Errorf("translate gave %+v", l)
	}
	SetCoords(l, c)
	if l.X1 != 1 || l.Y2 != 4 {
		t.Errorf("restore gave %+v", l)
	}

	f := &Function{Base: Base{ID: "f"}}
	if Movable(f) {
		t.Error("function should not be movable")
	}
	SetCoords(f, Coords{X1: 5}) // must be a no-op
}

func mustAdd(t *testing.T, s *Scene, o Object) {
	t.Helper()
	if err := s.Add(o); err != nil {
		t.Fatal(err)
	}
}

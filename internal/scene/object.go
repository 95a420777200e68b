// Package scene holds the editable object model: the six plot object kinds
// and the ordered collection they live in.
package scene

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind discriminates the object variants. The set is closed; dispatch sites
// switch over it exhaustively.
type Kind string

const (
	KindPoint    Kind = "point"
	KindLine     Kind = "line"
	KindArea     Kind = "area"
	KindText     Kind = "text"
	KindBrace    Kind = "brace"
	KindFunction Kind = "function"
)

// BraceStyle selects one of the three brace constructions.
type BraceStyle string

const (
	BraceSmooth      BraceStyle = "smooth"
	BraceTraditional BraceStyle = "traditional"
	Brace45Deg       BraceStyle = "45deg"
)

// Object is the closed union over the plot object variants. Each object has
// a stable id for its lifetime (the picking color key and the undo target
// key) and a z-index deciding paint and pick order, ties broken by insertion
// order.
type Object interface {
	ObjectID() string
	Kind() Kind
	Z() int
	SetZ(z int)
	Clone() Object

	sealed()
}

// Base carries the fields shared by every variant.
type Base struct {
	ID     string `json:"id"`
	ZIndex int    `json:"z"`
}

// ObjectID returns the object's stable identifier.
func (b *Base) ObjectID() string { return b.ID }

// Z returns the paint/pick priority.
func (b *Base) Z() int { return b.ZIndex }

// SetZ updates the paint/pick priority.
func (b *Base) SetZ(z int) { b.ZIndex = z }

func (b *Base) sealed() {}

// NewBase allocates a Base with a fresh id.
func NewBase(z int) Base {
	return Base{ID: uuid.NewString(), ZIndex: z}
}

// Point is a filled disc at a plot coordinate.
type Point struct {
	Base
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size"`
	Color string  `json:"color"`
}

func (p *Point) Kind() Kind { return KindPoint }

func (p *Point) Clone() Object {
	c := *p
	return &c
}

// Line is a stroked segment between two plot coordinates.
type Line struct {
	Base
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Width float64 `json:"width"`
	Color string  `json:"color"`
}

func (l *Line) Kind() Kind { return KindLine }

func (l *Line) Clone() Object {
	c := *l
	return &c
}

// Area is an axis-aligned filled rectangle spanning two plot corners.
type Area struct {
	Base
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
	X2   float64 `json:"x2"`
	Y2   float64 `json:"y2"`
	Fill string  `json:"fill"`
}

func (a *Area) Kind() Kind { return KindArea }

func (a *Area) Clone() Object {
	c := *a
	return &c
}

// Text is a string anchored at a plot coordinate, optionally rotated.
type Text struct {
	Base
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Content string  `json:"content"`
	Size    float64 `json:"size"`
	Angle   float64 `json:"angle"` // degrees, counter-clockwise
	Color   string  `json:"color"`
}

func (t *Text) Kind() Kind { return KindText }

func (t *Text) Clone() Object {
	c := *t
	return &c
}

// Brace is a curly-brace annotation between two plot coordinates. Elevation
// controls how far it bulges along the perpendicular; Mirrored flips the
// bulge side.
type Brace struct {
	Base
	X1        float64    `json:"x1"`
	Y1        float64    `json:"y1"`
	X2        float64    `json:"x2"`
	Y2        float64    `json:"y2"`
	Elevation float64    `json:"elevation"`
	Mirrored  bool       `json:"mirrored"`
	Style     BraceStyle `json:"style"`
	Width     float64    `json:"width"`
	Color     string     `json:"color"`
}

func (b *Brace) Kind() Kind { return KindBrace }

func (b *Brace) Clone() Object {
	c := *b
	return &c
}

// Function is a sampled curve. The sampler lives outside the core; the
// object stores the expression label for display plus the plot-space samples
// it was given. Non-finite sample values split the drawn polyline.
type Function struct {
	Base
	Expr    string       `json:"expr"`
	Samples [][2]float64 `json:"samples"`
	Width   float64      `json:"width"`
	Color   string       `json:"color"`
}

func (f *Function) Kind() Kind { return KindFunction }

func (f *Function) Clone() Object {
	c := *f
	c.Samples = append([][2]float64(nil), f.Samples...)
	return &c
}

// Coords is the absolute coordinate bundle moved by the Move command.
// Single-anchor kinds (point, text) use X1/Y1 only.
type Coords struct {
	X1, Y1, X2, Y2 float64
}

// Movable reports whether the drag-to-move interaction applies to o.
func Movable(o Object) bool {
	switch o.Kind() {
	case KindPoint, KindLine, KindArea, KindText, KindBrace:
		return true
	case KindFunction:
		return false
	}
	return false
}

// CoordsOf snapshots o's coordinates.
func CoordsOf(o Object) Coords {
	switch v := o.(type) {
	case *Point:
		return Coords{X1: v.X, Y1: v.Y}
	case *Line:
		return Coords{X1: v.X1, Y1: v.Y1, X2: v.X2, Y2: v.Y2}
	case *Area:
		return Coords{X1: v.X1, Y1: v.Y1, X2: v.X2, Y2: v.Y2}
	case *Text:
		return Coords{X1: v.X, Y1: v.Y}
	case *Brace:
		return Coords{X1: v.X1, Y1: v.Y1, X2: v.X2, Y2: v.Y2}
	case *Function:
		return Coords{}
	}
	return Coords{}
}

// SetCoords applies an absolute coordinate bundle to o. Kinds that cannot be
// moved ignore the call.
func SetCoords(o Object, c Coords) {
	switch v := o.(type) {
	case *Point:
		v.X, v.Y = c.X1, c.Y1
	case *Line:
		v.X1, v.Y1, v.X2, v.Y2 = c.X1, c.Y1, c.X2, c.Y2
	case *Area:
		v.X1, v.Y1, v.X2, v.Y2 = c.X1, c.Y1, c.X2, c.Y2
	case *Text:
		v.X, v.Y = c.X1, c.Y1
	case *Brace:
		v.X1, v.Y1, v.X2, v.Y2 = c.X1, c.Y1, c.X2, c.Y2
	case *Function:
		// not movable
	}
}

// Translate shifts o's coordinates by a plot-space delta relative to base.
func Translate(o Object, base Coords, dx, dy float64) {
	SetCoords(o, Coords{
		X1: base.X1 + dx,
		Y1: base.Y1 + dy,
		X2: base.X2 + dx,
		Y2: base.Y2 + dy,
	})
}

// FieldValue reads a named property from o. The bool result reports whether
// the field exists on o's kind.
func FieldValue(o Object, name string) (any, bool) {
	switch v := o.(type) {
	case *Point:
		switch name {
		case "x":
			return v.X, true
		case "y":
			return v.Y, true
		case "size":
			return v.Size, true
		case "color":
			return v.Color, true
		}
	case *Line:
		switch name {
		case "x1":
			return v.X1, true
		case "y1":
			return v.Y1, true
		case "x2":
			return v.X2, true
		case "y2":
			return v.Y2, true
		case "width":
			return v.Width, true
		case "color":
			return v.Color, true
		}
	case *Area:
		switch name {
		case "x1":
			return v.X1, true
		case "y1":
			return v.Y1, true
		case "x2":
			return v.X2, true
		case "y2":
			return v.Y2, true
		case "fill":
			return v.Fill, true
		}
	case *Text:
		switch name {
		case "x":
			return v.X, true
		case "y":
			return v.Y, true
		case "content":
			return v.Content, true
		case "size":
			return v.Size, true
		case "angle":
			return v.Angle, true
		case "color":
			return v.Color, true
		}
	case *Brace:
		switch name {
		case "x1":
			return v.X1, true
		case "y1":
			return v.Y1, true
		case "x2":
			return v.X2, true
		case "y2":
			return v.Y2, true
		case "elevation":
			return v.Elevation, true
		case "mirrored":
			return v.Mirrored, true
		case "style":
			return string(v.Style), true
		case "width":
			return v.Width, true
		case "color":
			return v.Color, true
		}
	case *Function:
		switch name {
		case "expr":
			return v.Expr, true
		case "width":
			return v.Width, true
		case "color":
			return v.Color, true
		}
	}
	if name == "z" {
		return o.Z(), true
	}
	return nil, false
}

// SetField writes a named property on o. Unknown fields and mismatched value
// types return an error; the scene is left untouched in that case.
func SetField(o Object, name string, value any) error {
	if name == "z" {
		z, ok := toInt(value)
		if !ok {
			return fmt.Errorf("field z: want int, got %T", value)
		}
		o.SetZ(z)
		return nil
	}
	switch v := o.(type) {
	case *Point:
		switch name {
		case "x":
			return setFloat(&v.X, name, value)
		case "y":
			return setFloat(&v.Y, name, value)
		case "size":
			return setFloat(&v.Size, name, value)
		case "color":
			return setString(&v.Color, name, value)
		}
	case *Line:
		switch name {
		case "x1":
			return setFloat(&v.X1, name, value)
		case "y1":
			return setFloat(&v.Y1, name, value)
		case "x2":
			return setFloat(&v.X2, name, value)
		case "y2":
			return setFloat(&v.Y2, name, value)
		case "width":
			return setFloat(&v.Width, name, value)
		case "color":
			return setString(&v.Color, name, value)
		}
	case *Area:
		switch name {
		case "x1":
			return setFloat(&v.X1, name, value)
		case "y1":
			return setFloat(&v.Y1, name, value)
		case "x2":
			return setFloat(&v.X2, name, value)
		case "y2":
			return setFloat(&v.Y2, name, value)
		case "fill":
			return setString(&v.Fill, name, value)
		}
	case *Text:
		switch name {
		case "x":
			return setFloat(&v.X, name, value)
		case "y":
			return setFloat(&v.Y, name, value)
		case "content":
			return setString(&v.Content, name, value)
		case "size":
			return setFloat(&v.Size, name, value)
		case "angle":
			return setFloat(&v.Angle, name, value)
		case "color":
			return setString(&v.Color, name, value)
		}
	case *Brace:
		switch name {
		case "x1":
			return setFloat(&v.X1, name, value)
		case "y1":
			return setFloat(&v.Y1, name, value)
		case "x2":
			return setFloat(&v.X2, name, value)
		case "y2":
			return setFloat(&v.Y2, name, value)
		case "elevation":
			return setFloat(&v.Elevation, name, value)
		case "mirrored":
			b, ok := value.(bool)
			if !ok {
				return fmt.Errorf("field mirrored: want bool, got %T", value)
			}
			v.Mirrored = b
			return nil
		case "style":
			s, ok := value.(string)
			if !ok {
				return fmt.Errorf("field style: want string, got %T", value)
			}
			switch BraceStyle(s) {
			case BraceSmooth, BraceTraditional, Brace45Deg:
				v.Style = BraceStyle(s)
				return nil
			}
			return fmt.Errorf("field style: unknown brace style %q", s)
		case "width":
			return setFloat(&v.Width, name, value)
		case "color":
			return setString(&v.Color, name, value)
		}
	case *Function:
		switch name {
		case "expr":
			return setString(&v.Expr, name, value)
		case "width":
			return setFloat(&v.Width, name, value)
		case "color":
			return setString(&v.Color, name, value)
		}
	}
	return fmt.Errorf("%s has no field %q", o.Kind(), name)
}

func setFloat(dst *float64, name string, value any) error {
	switch n := value.(type) {
	case float64:
		*dst = n
	case int:
		*dst = float64(n)
	default:
		return fmt.Errorf("field %s: want number, got %T", name, value)
	}
	return nil
}

func setString(dst *string, name string, value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("field %s: want string, got %T", name, value)
	}
	*dst = s
	return nil
}

func toInt(value any) (int, bool) {
	switch n := value.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	}
	return 0, false
}

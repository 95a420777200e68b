package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/example/plotsketch/internal/coords"
)

// Document is the serialized form of an editing session: bounds, axes, and
// the flat object records. Round-tripping a document reproduces identical
// rendering and picking behavior because ids, z-indexes, and geometry are
// preserved verbatim.
type Document struct {
	Version  int            `json:"version"`
	Bounds   coords.Bounds  `json:"bounds"`
	Axes     coords.Axes    `json:"axes"`
	Objects  []objectRecord `json:"objects"`
	Selected string         `json:"selected,omitempty"`
}

// objectRecord is the flat on-disk field set shared by all variants. Fields
// that do not apply to a kind stay at their zero value and are omitted.
type objectRecord struct {
	Type Kind   `json:"type"`
	ID   string `json:"id"`
	Z    int    `json:"z"`

	X    float64 `json:"x,omitempty"`
	Y    float64 `json:"y,omitempty"`
	X1   float64 `json:"x1,omitempty"`
	Y1   float64 `json:"y1,omitempty"`
	X2   float64 `json:"x2,omitempty"`
	Y2   float64 `json:"y2,omitempty"`
	Size float64 `json:"size,omitempty"`

	Width float64 `json:"width,omitempty"`
	Color string  `json:"color,omitempty"`
	Fill  string  `json:"fill,omitempty"`

	Content string  `json:"content,omitempty"`
	Angle   float64 `json:"angle,omitempty"`

	Elevation float64    `json:"elevation,omitempty"`
	Mirrored  bool       `json:"mirrored,omitempty"`
	Style     BraceStyle `json:"style,omitempty"`

	Expr    string     `json:"expr,omitempty"`
	Samples sampleList `json:"samples,omitempty"`
}

// sampleList carries function samples across JSON. Non-finite sample values
// mark polyline gaps in memory but are not representable in JSON, so they
// are written as null and restored as NaN.
type sampleList [][2]float64

func (s sampleList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, p := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('[')
		for j, v := range p {
			if j > 0 {
				buf.WriteByte(',')
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				buf.WriteString("null")
			} else {
				buf.Write(strconv.AppendFloat(nil, v, 'g', -1, 64))
			}
		}
		buf.WriteByte(']')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func (s *sampleList) UnmarshalJSON(data []byte) error {
	var raw [][2]*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make([][2]float64, len(raw))
	for i, p := range raw {
		for j, v := range p {
			if v == nil {
				out[i][j] = math.NaN()
			} else {
				out[i][j] = *v
			}
		}
	}
	*s = out
	return nil
}

func recordOf(o Object) objectRecord {
	r := objectRecord{Type: o.Kind(), ID: o.ObjectID(), Z: o.Z()}
	switch v := o.(type) {
	case *Point:
		r.X, r.Y, r.Size, r.Color = v.X, v.Y, v.Size, v.Color
	case *Line:
		r.X1, r.Y1, r.X2, r.Y2 = v.X1, v.Y1, v.X2, v.Y2
		r.Width, r.Color = v.Width, v.Color
	case *Area:
		r.X1, r.Y1, r.X2, r.Y2 = v.X1, v.Y1, v.X2, v.Y2
		r.Fill = v.Fill
	case *Text:
		r.X, r.Y, r.Content, r.Size, r.Angle, r.Color = v.X, v.Y, v.Content, v.Size, v.Angle, v.Color
	case *Brace:
		r.X1, r.Y1, r.X2, r.Y2 = v.X1, v.Y1, v.X2, v.Y2
		r.Elevation, r.Mirrored, r.Style = v.Elevation, v.Mirrored, v.Style
		r.Width, r.Color = v.Width, v.Color
	case *Function:
		r.Expr, r.Samples, r.Width, r.Color = v.Expr, sampleList(v.Samples), v.Width, v.Color
	}
	return r
}

func (r objectRecord) object() (Object, error) {
	base := Base{ID: r.ID, ZIndex: r.Z}
	switch r.Type {
	case KindPoint:
		return &Point{Base: base, X: r.X, Y: r.Y, Size: r.Size, Color: r.Color}, nil
	case KindLine:
		return &Line{Base: base, X1: r.X1, Y1: r.Y1, X2: r.X2, Y2: r.Y2, Width: r.Width, Color: r.Color}, nil
	case KindArea:
		return &Area{Base: base, X1: r.X1, Y1: r.Y1, X2: r.X2, Y2: r.Y2, Fill: r.Fill}, nil
	case KindText:
		return &Text{Base: base, X: r.X, Y: r.Y, Content: r.Content, Size: r.Size, Angle: r.Angle, Color: r.Color}, nil
	case KindBrace:
		return &Brace{Base: base, X1: r.X1, Y1: r.Y1, X2: r.X2, Y2: r.Y2,
			Elevation: r.Elevation, Mirrored: r.Mirrored, Style: r.Style, Width: r.Width, Color: r.Color}, nil
	case KindFunction:
		return &Function{Base: base, Expr: r.Expr, Samples: [][2]float64(r.Samples), Width: r.Width, Color: r.Color}, nil
	}
	return nil, fmt.Errorf("unknown object type %q", r.Type)
}

// Encode writes the scene and view settings as JSON.
func Encode(w io.Writer, s *Scene, bounds coords.Bounds, axes coords.Axes) error {
	doc := Document{
		Version:  1,
		Bounds:   bounds,
		Axes:     axes,
		Selected: s.SelectedID(),
	}
	for _, o := range s.Objects() {
		doc.Objects = append(doc.Objects, recordOf(o))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Decode reads a document and rebuilds the scene in insertion order.
func Decode(r io.Reader) (*Scene, coords.Bounds, coords.Axes, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, coords.Bounds{}, coords.Axes{}, fmt.Errorf("decode document: %w", err)
	}
	s := New()
	for i, rec := range doc.Objects {
		o, err := rec.object()
		if err != nil {
			return nil, coords.Bounds{}, coords.Axes{}, fmt.Errorf("object %d: %w", i, err)
		}
		if err := s.Add(o); err != nil {
			return nil, coords.Bounds{}, coords.Axes{}, fmt.Errorf("object %d: %w", i, err)
		}
	}
	s.Select(doc.Selected)
	return s, doc.Bounds, doc.Axes, nil
}

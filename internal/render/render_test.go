package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/example/plotsketch/internal/coords"
	"github.com/example/plotsketch/internal/scene"
)

func testTransform() coords.Transform {
	b := coords.Bounds{XMin: -10, XMax: 10, YMin: -10, YMax: 10}
	return coords.NewTransform(b, coords.DefaultAxes(), 400, 400, 20)
}

func TestRenderCanvasTones(t *testing.T) {
	tr := testTransform()
	axes := coords.Axes{AspectRatio: 1}
	img := Render(scene.New(), tr, axes, 400, 400)

	if got := img.RGBAAt(2, 2); got != (color.RGBA{CanvasDark[0], CanvasDark[1], CanvasDark[2], 255}) {
		t.Errorf("margin pixel = %v, want dark canvas tone", got)
	}
	cx, cy := tr.ToDevice(0, 0)
	if got := img.RGBAAt(int(cx), int(cy)); got != (color.RGBA{CanvasLight[0], CanvasLight[1], CanvasLight[2], 255}) {
		t.Errorf("plot pixel = %v, want light canvas tone", got)
	}
}

func TestRenderFilledArea(t *testing.T) {
	s := scene.New()
	if err := s.Add(&scene.Area{Base: scene.Base{ID: "a"}, X1: -5, Y1: -5, X2: 5, Y2: 5, Fill: "#ff0000"}); err != nil {
		t.Fatal(err)
	}
	tr := testTransform()
	img := Render(s, tr, coords.Axes{AspectRatio: 1}, 400, 400)

	cx, cy := tr.ToDevice(0, 0)
	if got := img.RGBAAt(int(cx), int(cy)); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("area center = %v, want opaque red", got)
	}
}

func TestRenderPoint(t *testing.T) {
	s := scene.New()
	if err := s.Add(&scene.Point{Base: scene.Base{ID: "p"}, X: 0, Y: 0, Size: 12, Color: "#0000ff"}); err != nil {
		t.Fatal(err)
	}
	tr := testTransform()
	img := Render(s, tr, coords.Axes{AspectRatio: 1}, 400, 400)

	cx, cy := tr.ToDevice(0, 0)
	if got := img.RGBAAt(int(cx), int(cy)); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("point center = %v, want opaque blue", got)
	}
}

func TestDeviceBoundsLine(t *testing.T) {
	tr := testTransform()
	l := &scene.Line{Base: scene.Base{ID: "l"}, X1: -5, Y1: -5, X2: 5, Y2: 5}
	x0, y0, x1, y1 := DeviceBounds(l, tr)
	ax, ay := tr.ToDevice(-5, -5)
	bx, by := tr.ToDevice(5, 5)
	if x0 != math.Min(ax, bx) || x1 != math.Max(ax, bx) {
		t.Errorf("x bounds = [%g, %g]", x0, x1)
	}
	if y0 != math.Min(ay, by) || y1 != math.Max(ay, by) {
		t.Errorf("y bounds = [%g, %g]", y0, y1)
	}
}

func TestTextQuadRotationSwapsExtents(t *testing.T) {
	flat := TextQuad(100, 100, "hello", 16, 0, 0)
	turned := TextQuad(100, 100, "hello", 16, 90, 0)

	spanX := func(q [4][2]float64) float64 {
		min, max := q[0][0], q[0][0]
		for _, p := range q[1:] {
			min = math.Min(min, p[0])
			max = math.Max(max, p[0])
		}
		return max - min
	}
	spanY := func(q [4][2]float64) float64 {
		min, max := q[0][1], q[0][1]
		for _, p := range q[1:] {
			min = math.Min(min, p[1])
			max = math.Max(max, p[1])
		}
		return max - min
	}
	if math.Abs(spanX(flat)-spanY(turned)) > 1e-9 {
		t.Errorf("width %g did not become height %g after 90 degree turn", spanX(flat), spanY(turned))
	}
	if math.Abs(spanY(flat)-spanX(turned)) > 1e-9 {
		t.Errorf("height %g did not become width %g after 90 degree turn", spanY(flat), spanX(turned))
	}
}

func TestTextQuadMarginInflates(t *testing.T) {
	base := TextQuad(0, 0, "abc", 14, 0, 0)
	padded := TextQuad(0, 0, "abc", 14, 0, 3)
	if padded[0][0] != base[0][0]-3 || padded[0][1] != base[0][1]-3 {
		t.Errorf("top-left corner %v not inflated from %v", padded[0], base[0])
	}
	if padded[2][0] != base[2][0]+3 || padded[2][1] != base[2][1]+3 {
		t.Errorf("bottom-right corner %v not inflated from %v", padded[2], base[2])
	}
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.RGBA
	}{
		{"#ff0000", color.RGBA{255, 0, 0, 255}},
		{"#00ff7f", color.RGBA{0, 255, 127, 255}},
		{"#fff", color.RGBA{255, 255, 255, 255}},
		{"", color.RGBA{0, 0, 0, 255}},
		{"red", color.RGBA{0, 0, 0, 255}},
		{"#zzzzzz", color.RGBA{0, 0, 0, 255}},
	}
	for _, c := range cases {
		if got := ParseColor(c.in); got != c.want {
			t.Errorf("ParseColor(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestNiceStep(t *testing.T) {
	cases := []struct {
		span, want float64
	}{
		{20, 2},
		{10, 1},
		{100, 10},
		{7, 0.5},
		{0, 1},
	}
	for _, c := range cases {
		if got := niceStep(c.span); math.Abs(got-c.want) > 1e-12 {
			t.Errorf("niceStep(%g) = %g, want %g", c.span, got, c.want)
		}
	}
}

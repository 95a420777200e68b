// Package render paints the scene onto an RGBA surface. The visible path
// uses draw2d for antialiased strokes and fills; the pick raster renders the
// same objects separately with hard edges.
package render

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math"

	"github.com/golang/freetype/truetype"
	"github.com/llgcode/draw2d"
	"github.com/llgcode/draw2d/draw2dimg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/example/plotsketch/internal/brace"
	"github.com/example/plotsketch/internal/coords"
	"github.com/example/plotsketch/internal/scene"
)

var fontData = draw2d.FontData{Name: "goregular"}

func init() {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	draw2d.RegisterFont(fontData, f)
}

var (
	gridColor      = color.RGBA{160, 160, 160, 255}
	axisColor      = color.RGBA{96, 96, 96, 255}
	labelColor     = color.RGBA{64, 64, 64, 255}
	highlightColor = color.RGBA{30, 120, 255, 255}
)

// Render paints the whole scene and returns the surface. The margin outside
// the plot rectangle uses the dark canvas tone, the plot area the light one;
// both are reserved picking sentinels so objects can never be confused with
// empty canvas.
func Render(s *scene.Scene, tr coords.Transform, axes coords.Axes, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	dark := color.RGBA{CanvasDark[0], CanvasDark[1], CanvasDark[2], 255}
	light := color.RGBA{CanvasLight[0], CanvasLight[1], CanvasLight[2], 255}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, dark)
		}
	}
	px0, py0, px1, py1 := tr.PlotRect()
	for y := int(py0); y < int(py1); y++ {
		for x := int(px0); x < int(px1); x++ {
			if image.Pt(x, y).In(img.Bounds()) {
				img.SetRGBA(x, y, light)
			}
		}
	}

	gc := draw2dimg.NewGraphicContext(img)
	gc.SetFontData(fontData)

	if axes.ShowGrid {
		drawGrid(gc, tr)
	}
	if axes.Labels {
		drawLabels(img, tr)
	}

	for _, o := range s.Painted() {
		drawObject(gc, o, tr)
	}

	if sel, ok := s.Selected(); ok {
		drawHighlight(gc, sel, tr)
	}
	return img
}

// niceStep picks a grid spacing of the form 1, 2 or 5 times a power of ten
// that yields on the order of ten grid lines across the span.
func niceStep(span float64) float64 {
	if span <= 0 {
		return 1
	}
	raw := span / 10
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch {
	case raw/mag < 1.5:
		return mag
	case raw/mag < 3.5:
		return 2 * mag
	case raw/mag < 7.5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

func drawGrid(gc *draw2dimg.GraphicContext, tr coords.Transform) {
	px0, py0, px1, py1 := tr.PlotRect()
	b := tr.Bounds()
	step := niceStep(b.XRange())
	gc.SetLineWidth(1)
	for x := math.Ceil(b.XMin/step) * step; x <= b.XMax; x += step {
		dx, _ := tr.ToDevice(x, b.YMin)
		gc.SetStrokeColor(gridLineColor(x))
		gc.BeginPath()
		gc.MoveTo(dx, py0)
		gc.LineTo(dx, py1)
		gc.Stroke()
	}
	step = niceStep(b.YRange())
	for y := math.Ceil(b.YMin/step) * step; y <= b.YMax; y += step {
		_, dy := tr.ToDevice(b.XMin, y)
		gc.SetStrokeColor(gridLineColor(y))
		gc.BeginPath()
		gc.MoveTo(px0, dy)
		gc.LineTo(px1, dy)
		gc.Stroke()
	}
}

// gridLineColor darkens the zero axes so the origin stands out.
func gridLineColor(v float64) color.RGBA {
	if v == 0 {
		return axisColor
	}
	return gridColor
}

func drawLabels(img *image.RGBA, tr coords.Transform) {
	b := tr.Bounds()
	px0, _, _, py1 := tr.PlotRect()
	face := FaceFor(11)
	d := &font.Drawer{Dst: img, Src: image.NewUniform(labelColor), Face: face}

	step := niceStep(b.XRange())
	for x := math.Ceil(b.XMin/step) * step; x <= b.XMax; x += step {
		dx, _ := tr.ToDevice(x, b.YMin)
		label := formatTick(x)
		w := d.MeasureString(label).Ceil()
		d.Dot = fixed.P(int(dx)-w/2, int(py1)+14)
		d.DrawString(label)
	}
	step = niceStep(b.YRange())
	for y := math.Ceil(b.YMin/step) * step; y <= b.YMax; y += step {
		_, dy := tr.ToDevice(b.XMin, y)
		label := formatTick(y)
		w := d.MeasureString(label).Ceil()
		d.Dot = fixed.P(int(px0)-w-6, int(dy)+4)
		d.DrawString(label)
	}
}

func formatTick(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2g", v)
}

func drawObject(gc *draw2dimg.GraphicContext, o scene.Object, tr coords.Transform) {
	switch v := o.(type) {
	case *scene.Point:
		dx, dy := tr.ToDevice(v.X, v.Y)
		r := v.Size / 2
		if r < 1 {
			r = 1
		}
		gc.SetFillColor(ParseColor(v.Color))
		gc.BeginPath()
		gc.MoveTo(dx-r, dy)
		gc.ArcTo(dx, dy, r, r, 0, 2*math.Pi)
		gc.Fill()
	case *scene.Line:
		x0, y0 := tr.ToDevice(v.X1, v.Y1)
		x1, y1 := tr.ToDevice(v.X2, v.Y2)
		gc.SetStrokeColor(ParseColor(v.Color))
		gc.SetLineWidth(strokeWidth(v.Width))
		gc.BeginPath()
		gc.MoveTo(x0, y0)
		gc.LineTo(x1, y1)
		gc.Stroke()
	case *scene.Area:
		x0, y0 := tr.ToDevice(v.X1, v.Y1)
		x1, y1 := tr.ToDevice(v.X2, v.Y2)
		gc.SetFillColor(ParseColor(v.Fill))
		gc.BeginPath()
		gc.MoveTo(x0, y0)
		gc.LineTo(x1, y0)
		gc.LineTo(x1, y1)
		gc.LineTo(x0, y1)
		gc.Close()
		gc.Fill()
	case *scene.Text:
		dx, dy := tr.ToDevice(v.X, v.Y)
		gc.Save()
		gc.Translate(dx, dy)
		gc.Rotate(-v.Angle * math.Pi / 180)
		gc.SetFillColor(ParseColor(v.Color))
		gc.SetFontSize(v.Size)
		gc.FillStringAt(v.Content, 0, 0)
		gc.Restore()
	case *scene.Brace:
		path := brace.Build(v.X1, v.Y1, v.X2, v.Y2, v.Elevation, v.Mirrored, brace.Style(v.Style))
		if len(path) == 0 {
			return
		}
		gc.SetStrokeColor(ParseColor(v.Color))
		gc.SetLineWidth(strokeWidth(v.Width))
		gc.SetLineJoin(draw2d.RoundJoin)
		gc.BeginPath()
		for i, p := range path {
			x, y := tr.ToDevice(p.X, p.Y)
			if i == 0 {
				gc.MoveTo(x, y)
			} else {
				gc.LineTo(x, y)
			}
		}
		gc.Stroke()
	case *scene.Function:
		gc.SetStrokeColor(ParseColor(v.Color))
		gc.SetLineWidth(strokeWidth(v.Width))
		started := false
		gc.BeginPath()
		for _, sm := range v.Samples {
			if math.IsNaN(sm[1]) {
				started = false
				continue
			}
			x, y := tr.ToDevice(sm[0], sm[1])
			if !started {
				gc.MoveTo(x, y)
				started = true
			} else {
				gc.LineTo(x, y)
			}
		}
		gc.Stroke()
	}
}

// drawHighlight marks the selected object with a dashed box slightly larger
// than its device bounds.
func drawHighlight(gc *draw2dimg.GraphicContext, o scene.Object, tr coords.Transform) {
	x0, y0, x1, y1 := DeviceBounds(o, tr)
	const pad = 4
	gc.SetStrokeColor(highlightColor)
	gc.SetLineWidth(1)
	gc.SetLineDash([]float64{4, 3}, 0)
	gc.BeginPath()
	gc.MoveTo(x0-pad, y0-pad)
	gc.LineTo(x1+pad, y0-pad)
	gc.LineTo(x1+pad, y1+pad)
	gc.LineTo(x0-pad, y1+pad)
	gc.Close()
	gc.Stroke()
	gc.SetLineDash(nil, 0)
}

func strokeWidth(w float64) float64 {
	if w < 1 {
		return 1
	}
	return w
}

// DeviceBounds returns the axis-aligned device-space bounding box of an
// object, used for the selection highlight.
func DeviceBounds(o scene.Object, tr coords.Transform) (x0, y0, x1, y1 float64) {
	expand := func(pts ...[2]float64) {
		for _, p := range pts {
			x0 = math.Min(x0, p[0])
			y0 = math.Min(y0, p[1])
			x1 = math.Max(x1, p[0])
			y1 = math.Max(y1, p[1])
		}
	}
	x0, y0 = math.Inf(1), math.Inf(1)
	x1, y1 = math.Inf(-1), math.Inf(-1)
	switch v := o.(type) {
	case *scene.Point:
		dx, dy := tr.ToDevice(v.X, v.Y)
		r := math.Max(v.Size/2, 1)
		expand([2]float64{dx - r, dy - r}, [2]float64{dx + r, dy + r})
	case *scene.Line:
		ax, ay := tr.ToDevice(v.X1, v.Y1)
		bx, by := tr.ToDevice(v.X2, v.Y2)
		expand([2]float64{ax, ay}, [2]float64{bx, by})
	case *scene.Area:
		ax, ay := tr.ToDevice(v.X1, v.Y1)
		bx, by := tr.ToDevice(v.X2, v.Y2)
		expand([2]float64{ax, ay}, [2]float64{bx, by})
	case *scene.Text:
		dx, dy := tr.ToDevice(v.X, v.Y)
		q := TextQuad(dx, dy, v.Content, v.Size, v.Angle, 0)
		expand(q[0], q[1], q[2], q[3])
	case *scene.Brace:
		path := brace.Build(v.X1, v.Y1, v.X2, v.Y2, v.Elevation, v.Mirrored, brace.Style(v.Style))
		for _, p := range path {
			dx, dy := tr.ToDevice(p.X, p.Y)
			expand([2]float64{dx, dy})
		}
	case *scene.Function:
		for _, sm := range v.Samples {
			if math.IsNaN(sm[1]) {
				continue
			}
			dx, dy := tr.ToDevice(sm[0], sm[1])
			expand([2]float64{dx, dy})
		}
	}
	if math.IsInf(x0, 1) {
		return 0, 0, 0, 0
	}
	return x0, y0, x1, y1
}

// ParseColor turns "#rrggbb" or "#rgb" into an opaque color. Unparseable
// strings fall back to black, matching how a missing style renders.
func ParseColor(s string) color.RGBA {
	if len(s) == 7 && s[0] == '#' {
		var r, g, b uint8
		if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err == nil {
			return color.RGBA{r, g, b, 255}
		}
	}
	if len(s) == 4 && s[0] == '#' {
		var r, g, b uint8
		if _, err := fmt.Sscanf(s[1:], "%1x%1x%1x", &r, &g, &b); err == nil {
			return color.RGBA{r * 17, g * 17, b * 17, 255}
		}
	}
	return color.RGBA{0, 0, 0, 255}
}

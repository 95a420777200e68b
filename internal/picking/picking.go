// Package picking answers "which object is under this pixel" by rendering
// the scene to an off-screen raster where every object is painted in a color
// unique to it. Sampling one pixel and looking the color up resolves the
// topmost object with exact occlusion, with no per-shape distance formulas.
package picking

import (
	"image"
	"log"
	"math"

	"github.com/example/plotsketch/internal/brace"
	"github.com/example/plotsketch/internal/coords"
	"github.com/example/plotsketch/internal/render"
	"github.com/example/plotsketch/internal/scene"
)

const (
	// pickMargin inflates pass-1 hit regions so small or thin objects are
	// easy to acquire with a pointer.
	pickMargin = 3.0
	// minHalfWidth keeps zero-width strokes pickable.
	minHalfWidth = 3.0
)

var background = Key{255, 255, 255}.RGBA()

// Engine owns the pick raster and the color registry. Rebuild must run after
// every scene mutation and before the next Query.
type Engine struct {
	raster *image.RGBA
	alloc  *allocator
}

// New creates an engine with a raster of the given device size.
func New(width, height int) *Engine {
	return &Engine{
		raster: image.NewRGBA(image.Rect(0, 0, width, height)),
		alloc:  newAllocator(),
	}
}

// ColorFor exposes the key assigned to an object id. Mostly useful in tests
// and diagnostics; Rebuild assigns keys as it paints.
func (e *Engine) ColorFor(id string) Key {
	return e.alloc.colorFor(id)
}

// Rebuild clears the raster and repaints every object in z order, twice:
// first the inflated hit region, then the true shape on top. Both passes run
// over the whole scene in paint order so a higher object's region correctly
// occludes a lower object's shape. Areas skip the second pass because their
// hit region already is their exact shape.
func (e *Engine) Rebuild(s *scene.Scene, tr coords.Transform) {
	b := e.raster.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			e.raster.SetRGBA(x, y, background)
		}
	}

	live := make(map[string]bool, s.Len())
	for _, o := range s.Objects() {
		live[o.ObjectID()] = true
	}
	e.alloc.prune(live)

	painted := s.Painted()
	for _, o := range painted {
		e.paintHitRegion(o, tr)
	}
	for _, o := range painted {
		if o.Kind() == scene.KindArea {
			continue
		}
		e.paintShape(o, tr)
	}
}

// Query resolves the object id under a device pixel, or "" for none.
// Background sentinels mean empty canvas; any other unmapped color means the
// raster is stale, which is logged and treated as a miss.
func (e *Engine) Query(x, y int) string {
	if !image.Pt(x, y).In(e.raster.Bounds()) {
		return ""
	}
	c := e.raster.RGBAAt(x, y)
	k := Key{c.R, c.G, c.B}
	if sentinels[k] {
		return ""
	}
	id, ok := e.alloc.lookup(k)
	if !ok {
		log.Printf("picking: unmapped color %v at (%d,%d); raster stale?", k, x, y)
		return ""
	}
	return id
}

func (e *Engine) paintHitRegion(o scene.Object, tr coords.Transform) {
	col := e.alloc.colorFor(o.ObjectID()).RGBA()
	switch v := o.(type) {
	case *scene.Point:
		dx, dy := tr.ToDevice(v.X, v.Y)
		r := int(math.Ceil(v.Size/2 + pickMargin))
		fillDisc(e.raster, int(math.Round(dx)), int(math.Round(dy)), r, col)
	case *scene.Line:
		x0, y0 := tr.ToDevice(v.X1, v.Y1)
		x1, y1 := tr.ToDevice(v.X2, v.Y2)
		fillQuad(e.raster, segmentQuad(x0, y0, x1, y1, halfWidth(v.Width)), col)
	case *scene.Area:
		x0, y0 := tr.ToDevice(v.X1, v.Y1)
		x1, y1 := tr.ToDevice(v.X2, v.Y2)
		fillRect(e.raster,
			int(math.Round(x0)), int(math.Round(y0)),
			int(math.Round(x1)), int(math.Round(y1)), col)
	case *scene.Text:
		dx, dy := tr.ToDevice(v.X, v.Y)
		fillQuad(e.raster, render.TextQuad(dx, dy, v.Content, v.Size, v.Angle, pickMargin), col)
	case *scene.Brace:
		x0, y0 := tr.ToDevice(v.X1, v.Y1)
		x1, y1 := tr.ToDevice(v.X2, v.Y2)
		sx, _ := tr.Scale()
		half := math.Abs(v.Elevation)*sx + pickMargin
		if half < minHalfWidth {
			half = minHalfWidth
		}
		fillQuad(e.raster, segmentQuad(x0, y0, x1, y1, half), col)
	case *scene.Function:
		for _, run := range deviceRuns(v.Samples, tr) {
			for i := 1; i < len(run); i++ {
				fillQuad(e.raster, segmentQuad(
					run[i-1][0], run[i-1][1],
					run[i][0], run[i][1],
					halfWidth(v.Width)), col)
			}
		}
	}
}

func (e *Engine) paintShape(o scene.Object, tr coords.Transform) {
	col := e.alloc.colorFor(o.ObjectID()).RGBA()
	switch v := o.(type) {
	case *scene.Point:
		dx, dy := tr.ToDevice(v.X, v.Y)
		r := int(math.Ceil(v.Size / 2))
		if r < 1 {
			r = 1
		}
		fillDisc(e.raster, int(math.Round(dx)), int(math.Round(dy)), r, col)
	case *scene.Line:
		x0, y0 := tr.ToDevice(v.X1, v.Y1)
		x1, y1 := tr.ToDevice(v.X2, v.Y2)
		drawSegment(e.raster,
			int(math.Round(x0)), int(math.Round(y0)),
			int(math.Round(x1)), int(math.Round(y1)),
			col, int(v.Width))
	case *scene.Text:
		// Glyph rendering antialiases, which would blend keys into
		// unmapped colors, so the metrics box stands in for the glyphs.
		dx, dy := tr.ToDevice(v.X, v.Y)
		fillQuad(e.raster, render.TextQuad(dx, dy, v.Content, v.Size, v.Angle, 0), col)
	case *scene.Brace:
		path := brace.Build(v.X1, v.Y1, v.X2, v.Y2, v.Elevation, v.Mirrored, brace.Style(v.Style))
		pts := make([][2]float64, len(path))
		for i, p := range path {
			x, y := tr.ToDevice(p.X, p.Y)
			pts[i] = [2]float64{x, y}
		}
		drawPolyline(e.raster, pts, col, int(v.Width))
	case *scene.Function:
		for _, run := range deviceRuns(v.Samples, tr) {
			drawPolyline(e.raster, run, col, int(v.Width))
		}
	}
}

func halfWidth(strokeWidth float64) float64 {
	h := strokeWidth/2 + pickMargin
	if h < minHalfWidth {
		return minHalfWidth
	}
	return h
}

// deviceRuns maps plot-space samples to device space, splitting the polyline
// into separate runs wherever a NaN sample marks a gap.
func deviceRuns(samples [][2]float64, tr coords.Transform) [][][2]float64 {
	var runs [][][2]float64
	var cur [][2]float64
	for _, s := range samples {
		if math.IsNaN(s[1]) {
			if len(cur) > 0 {
				runs = append(runs, cur)
				cur = nil
			}
			continue
		}
		x, y := tr.ToDevice(s[0], s[1])
		cur = append(cur, [2]float64{x, y})
	}
	if len(cur) > 0 {
		runs = append(runs, cur)
	}
	return runs
}

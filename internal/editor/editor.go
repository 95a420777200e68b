// Package editor owns one editing session: the scene, its undo history, the
// picking raster and the coordinate transform, plus the pointer state
// machine that turns device events into scene commands.
package editor

import (
	"fmt"
	"image"
	"io"
	"log"

	"github.com/example/plotsketch/internal/coords"
	"github.com/example/plotsketch/internal/funcplot"
	"github.com/example/plotsketch/internal/history"
	"github.com/example/plotsketch/internal/picking"
	"github.com/example/plotsketch/internal/render"
	"github.com/example/plotsketch/internal/scene"
)

// Tool selects how pointer events are interpreted.
type Tool string

const (
	ToolSelect Tool = "select"
	ToolPoint  Tool = "point"
	ToolLine   Tool = "line"
	ToolArea   Tool = "area"
	ToolText   Tool = "text"
	ToolBrace  Tool = "brace"
	ToolFunc   Tool = "function"
)

// defaultFunctionSamples is the sample count used when the function tool
// places a curve by pointer.
const defaultFunctionSamples = 200

// Style holds the attributes stamped onto newly created objects.
type Style struct {
	Color       string
	Fill        string
	StrokeWidth float64
	PointSize   float64
	TextSize    float64
	TextContent string
	BraceStyle  scene.BraceStyle
	Elevation   float64
	FuncExpr    string
}

// DefaultStyle matches a fresh session before the user touches any control.
func DefaultStyle() Style {
	return Style{
		Color:       "#1a3f8f",
		Fill:        "#d9e2f5",
		StrokeWidth: 2,
		PointSize:   8,
		TextSize:    16,
		TextContent: "text",
		BraceStyle:  scene.BraceSmooth,
		Elevation:   0.5,
		FuncExpr:    "sin",
	}
}

// dragSession tracks one pointer-down-to-up move of a selected object. The
// live object is mutated directly while dragging; the command is recorded
// only on release, and only if anything actually moved.
type dragSession struct {
	id     string
	origin scene.Coords
	startX float64
	startY float64
}

// Editor is single-threaded: every method runs to completion on the event
// callback that invoked it, and the pick raster is rebuilt before the method
// returns so the next query always sees the current scene.
type Editor struct {
	scene *scene.Scene
	hist  *history.Engine
	pick  *picking.Engine

	bounds  coords.Bounds
	axes    coords.Axes
	width   int
	height  int
	padding int

	tool  Tool
	style Style

	zCounter int
	drag     *dragSession
	anchorX  float64
	anchorY  float64
	anchored bool
}

// New creates an editor for a viewport of the given pixel size.
func New(bounds coords.Bounds, axes coords.Axes, width, height, padding, historyLimit int) *Editor {
	e := &Editor{
		scene:   scene.New(),
		hist:    history.New(historyLimit),
		pick:    picking.New(width, height),
		bounds:  bounds,
		axes:    axes,
		width:   width,
		height:  height,
		padding: padding,
		tool:    ToolSelect,
		style:   DefaultStyle(),
	}
	e.sync()
	return e
}

// Transform returns the current plot-to-device mapping.
func (e *Editor) Transform() coords.Transform {
	return coords.NewTransform(e.bounds, e.axes, e.width, e.height, e.padding)
}

// Scene exposes the live scene for rendering and inspection.
func (e *Editor) Scene() *scene.Scene { return e.scene }

// Bounds returns the current plot-space view rectangle.
func (e *Editor) Bounds() coords.Bounds { return e.bounds }

// Axes returns the current axes settings.
func (e *Editor) Axes() coords.Axes { return e.axes }

// Tool returns the active tool.
func (e *Editor) Tool() Tool { return e.tool }

// SetTool switches the active tool and abandons any half-finished shape.
func (e *Editor) SetTool(t Tool) {
	e.tool = t
	e.anchored = false
	e.drag = nil
}

// SetStyle replaces the attributes used for new objects.
func (e *Editor) SetStyle(st Style) { e.style = st }

// CurrentStyle returns the attributes used for new objects.
func (e *Editor) CurrentStyle() Style { return e.style }

// SetBounds replaces the view rectangle. Degenerate rectangles are rejected
// before they can poison the transform.
func (e *Editor) SetBounds(b coords.Bounds) error {
	if b.XRange() <= 0 || b.YRange() <= 0 {
		return fmt.Errorf("editor: degenerate bounds %+v", b)
	}
	e.bounds = b
	e.sync()
	return nil
}

// SetAxes replaces the axes settings. A non-positive aspect ratio is
// rejected for the same reason as degenerate bounds.
func (e *Editor) SetAxes(a coords.Axes) error {
	if a.AspectRatio <= 0 {
		return fmt.Errorf("editor: non-positive aspect ratio %g", a.AspectRatio)
	}
	e.axes = a
	e.sync()
	return nil
}

// Render paints the scene at the editor's viewport size.
func (e *Editor) Render() *image.RGBA {
	return render.Render(e.scene, e.Transform(), e.axes, e.width, e.height)
}

// PickAt answers which object sits under a device pixel.
func (e *Editor) PickAt(dx, dy int) string {
	return e.pick.Query(dx, dy)
}

// PointerDown begins an interaction at a device pixel. With the select tool
// it picks and begins a drag; with the point and text tools it creates the
// object immediately; the two-point tools anchor the first corner.
func (e *Editor) PointerDown(dx, dy int) {
	px, py := e.Transform().ToPlot(float64(dx), float64(dy))
	switch e.tool {
	case ToolSelect:
		id := e.pick.Query(dx, dy)
		e.scene.Select(id)
		if id != "" {
			if o, ok := e.scene.Get(id); ok && scene.Movable(o) {
				e.drag = &dragSession{id: id, origin: scene.CoordsOf(o), startX: px, startY: py}
			}
		}
		e.sync()
	case ToolPoint:
		e.execute(&history.AddCommand{Object: &scene.Point{
			Base: e.newBase(), X: px, Y: py,
			Size: e.style.PointSize, Color: e.style.Color,
		}})
	case ToolText:
		e.execute(&history.AddCommand{Object: &scene.Text{
			Base: e.newBase(), X: px, Y: py,
			Content: e.style.TextContent, Size: e.style.TextSize, Color: e.style.Color,
		}})
	case ToolFunc:
		if err := e.AddFunction(e.style.FuncExpr, defaultFunctionSamples); err != nil {
			log.Printf("add function %q: %v", e.style.FuncExpr, err)
		}
	case ToolLine, ToolArea, ToolBrace:
		e.anchorX, e.anchorY = px, py
		e.anchored = true
	}
}

// PointerMove updates an active drag. The object is moved live, without
// going through the history, so the raster and screen track the pointer.
func (e *Editor) PointerMove(dx, dy int) {
	if e.drag == nil {
		return
	}
	o, ok := e.scene.Get(e.drag.id)
	if !ok {
		e.drag = nil
		return
	}
	px, py := e.Transform().ToPlot(float64(dx), float64(dy))
	scene.Translate(o, e.drag.origin, px-e.drag.startX, py-e.drag.startY)
	e.sync()
}

// PointerUp completes the interaction: drags record a move command if the
// object ended somewhere new, two-point tools build their object between
// the anchor and the release point. The drag session always ends here.
func (e *Editor) PointerUp(dx, dy int) {
	px, py := e.Transform().ToPlot(float64(dx), float64(dy))

	if e.drag != nil {
		d := e.drag
		e.drag = nil
		if o, ok := e.scene.Get(d.id); ok {
			after := scene.CoordsOf(o)
			if after != d.origin {
				e.hist.RecordWithoutExecuting(&history.MoveCommand{
					ID: d.id, Kind: o.Kind(), Before: d.origin, After: after,
				})
			}
		}
		e.sync()
		return
	}

	if !e.anchored {
		return
	}
	e.anchored = false
	switch e.tool {
	case ToolLine:
		e.execute(&history.AddCommand{Object: &scene.Line{
			Base: e.newBase(), X1: e.anchorX, Y1: e.anchorY, X2: px, Y2: py,
			Width: e.style.StrokeWidth, Color: e.style.Color,
		}})
	case ToolArea:
		e.execute(&history.AddCommand{Object: &scene.Area{
			Base: e.newBase(), X1: e.anchorX, Y1: e.anchorY, X2: px, Y2: py,
			Fill: e.style.Fill,
		}})
	case ToolBrace:
		e.execute(&history.AddCommand{Object: &scene.Brace{
			Base: e.newBase(), X1: e.anchorX, Y1: e.anchorY, X2: px, Y2: py,
			Elevation: e.style.Elevation, Style: e.style.BraceStyle,
			Width: e.style.StrokeWidth, Color: e.style.Color,
		}})
	}
}

// AddFunction samples a builtin expression across the current x range and
// adds the resulting plot.
func (e *Editor) AddFunction(expr string, samples int) error {
	f, err := funcplot.Lookup(expr)
	if err != nil {
		return err
	}
	pts, err := funcplot.Sample(f, e.bounds.XMin, e.bounds.XMax, samples)
	if err != nil {
		return err
	}
	e.execute(&history.AddCommand{Object: &scene.Function{
		Base: e.newBase(), Expr: expr, Samples: pts,
		Width: e.style.StrokeWidth, Color: e.style.Color,
	}})
	return nil
}

// Add places a prebuilt object, assigning it the next z slot if it carries
// none.
func (e *Editor) Add(o scene.Object) {
	if o.Z() == 0 {
		e.zCounter++
		o.SetZ(e.zCounter)
	}
	e.execute(&history.AddCommand{Object: o})
}

// DeleteSelected removes the selected object, if any.
func (e *Editor) DeleteSelected() bool {
	id := e.scene.SelectedID()
	if id == "" {
		return false
	}
	return e.Delete(id)
}

// Delete removes an object by id through the history.
func (e *Editor) Delete(id string) bool {
	cmd := history.NewDelete(e.scene, id)
	if cmd == nil {
		return false
	}
	e.execute(cmd)
	return true
}

// ClearAll wipes the scene as a single undoable step.
func (e *Editor) ClearAll() {
	if e.scene.Len() == 0 {
		return
	}
	e.execute(history.NewClear(e.scene))
}

// SetProperty edits one field of one object through the history. Setting a
// field to its current value records nothing.
func (e *Editor) SetProperty(id, field string, value any) error {
	o, ok := e.scene.Get(id)
	if !ok {
		return fmt.Errorf("editor: no object %q", id)
	}
	old, ok := scene.FieldValue(o, field)
	if !ok {
		return fmt.Errorf("editor: %s has no field %q", o.Kind(), field)
	}
	if old == value {
		return nil
	}
	if err := scene.SetField(o.Clone(), field, value); err != nil {
		return err
	}
	e.execute(&history.ModifyCommand{ID: id, Field: field, Old: old, New: value})
	return nil
}

// Undo reverts the most recent command.
func (e *Editor) Undo() bool {
	ok := e.hist.Undo(e.scene)
	if ok {
		e.sync()
	}
	return ok
}

// Redo reapplies the most recently undone command.
func (e *Editor) Redo() bool {
	ok := e.hist.Redo(e.scene)
	if ok {
		e.sync()
	}
	return ok
}

// CanUndo reports whether an undo step exists.
func (e *Editor) CanUndo() bool { return e.hist.CanUndo() }

// CanRedo reports whether a redo step exists.
func (e *Editor) CanRedo() bool { return e.hist.CanRedo() }

// UndoDescription names the command Undo would revert.
func (e *Editor) UndoDescription() string { return e.hist.UndoDescription() }

// RedoDescription names the command Redo would reapply.
func (e *Editor) RedoDescription() string { return e.hist.RedoDescription() }

// Save writes the scene and view settings as a document.
func (e *Editor) Save(w io.Writer) error {
	return scene.Encode(w, e.scene, e.bounds, e.axes)
}

// Load replaces the session with a saved document. History does not survive
// a load; the document becomes the new baseline.
func (e *Editor) Load(r io.Reader) error {
	s, bounds, axes, err := scene.Decode(r)
	if err != nil {
		return err
	}
	e.scene = s
	e.bounds = bounds
	e.axes = axes
	e.hist = history.New(history.DefaultLimit)
	e.drag = nil
	e.anchored = false
	e.zCounter = 0
	for _, o := range s.Objects() {
		if o.Z() > e.zCounter {
			e.zCounter = o.Z()
		}
	}
	e.sync()
	return nil
}

func (e *Editor) newBase() scene.Base {
	e.zCounter++
	return scene.NewBase(e.zCounter)
}

func (e *Editor) execute(c history.Command) {
	e.hist.Execute(e.scene, c)
	e.sync()
}

// sync rebuilds the pick raster so queries issued after this call observe
// the scene as just mutated.
func (e *Editor) sync() {
	e.pick.Rebuild(e.scene, e.Transform())
}

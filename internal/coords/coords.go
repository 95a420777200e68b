// Package coords maps between the continuous plot coordinate space and the
// device pixel space of the viewport.
package coords

// Bounds describes the plot-space rectangle currently shown on the canvas.
type Bounds struct {
	XMin float64
	XMax float64
	YMin float64
	YMax float64
}

// XRange returns the plot-space width.
func (b Bounds) XRange() float64 { return b.XMax - b.XMin }

// YRange returns the plot-space height.
func (b Bounds) YRange() float64 { return b.YMax - b.YMin }

// Axes holds the axes presentation settings that affect the transform.
type Axes struct {
	AspectRatio float64
	ShowGrid    bool
	Labels      bool
}

// DefaultAxes returns the axes settings used for a fresh document.
func DefaultAxes() Axes {
	return Axes{AspectRatio: 1, ShowGrid: true, Labels: true}
}

// Transform converts points between plot space and device space. It is built
// fresh from the current bounds on every use so bound changes take effect
// immediately; both directions derive the identical fit, otherwise picking
// would desync from rendering.
type Transform struct {
	bounds Bounds
	aspect float64

	// padded viewport and the letterboxed drawing region inside it
	offX, offY float64
	effW, effH float64
}

// NewTransform fits the plot rectangle into the padded viewport. The
// requested aspect ratio scales the effective plot width; the constraining
// dimension fills the available space and the other is centered
// (letterboxing, never stretching).
func NewTransform(b Bounds, axes Axes, width, height, padding int) Transform {
	availW := float64(width - 2*padding)
	availH := float64(height - 2*padding)

	plotAspect := (b.XRange() * axes.AspectRatio) / b.YRange()
	devAspect := availW / availH

	t := Transform{bounds: b, aspect: axes.AspectRatio}
	if plotAspect > devAspect {
		t.effW = availW
		t.effH = availW / plotAspect
		t.offX = float64(padding)
		t.offY = float64(padding) + (availH-t.effH)/2
	} else {
		t.effH = availH
		t.effW = availH * plotAspect
		t.offY = float64(padding)
		t.offX = float64(padding) + (availW-t.effW)/2
	}
	return t
}

// ToDevice maps a plot-space point to device pixels. Plot y grows upward,
// device y grows downward.
func (t Transform) ToDevice(x, y float64) (float64, float64) {
	dx := t.offX + (x-t.bounds.XMin)/t.bounds.XRange()*t.effW
	dy := t.offY + (t.bounds.YMax-y)/t.bounds.YRange()*t.effH
	return dx, dy
}

// ToPlot maps a device pixel to plot space. Exact inverse of ToDevice up to
// floating point. Degenerate bounds or viewports produce Inf/NaN results;
// callers treat those as "no object here" rather than errors.
func (t Transform) ToPlot(dx, dy float64) (float64, float64) {
	x := t.bounds.XMin + (dx-t.offX)/t.effW*t.bounds.XRange()
	y := t.bounds.YMax - (dy-t.offY)/t.effH*t.bounds.YRange()
	return x, y
}

// PlotRect reports the letterboxed drawing region in device pixels as
// (x0, y0, x1, y1). The renderer fills this region with the canvas color and
// the rest of the viewport with the margin color.
func (t Transform) PlotRect() (float64, float64, float64, float64) {
	return t.offX, t.offY, t.offX + t.effW, t.offY + t.effH
}

// Bounds returns the plot-space rectangle this transform was built from.
func (t Transform) Bounds() Bounds { return t.bounds }

// Scale returns the device pixels per plot unit along each axis.
func (t Transform) Scale() (float64, float64) {
	return t.effW / t.bounds.XRange(), t.effH / t.bounds.YRange()
}

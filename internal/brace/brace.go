// Package brace builds the vector paths for curly-brace annotations. All
// three styles are closed-form constructions from the two endpoints and the
// perpendicular elevation; no numerical fitting is involved.
package brace

import "math"

// Style selects the brace construction.
type Style string

const (
	// Smooth is a symmetric double-quadratic curve through both endpoints
	// and the elevated midpoint.
	Smooth Style = "smooth"
	// Traditional is the classic curly-brace silhouette: per half a
	// quarter-circle arc of radius elevation/2 out of the endpoint, a
	// straight run parallel to the main axis, and a quarter-circle arc
	// into the central tip.
	Traditional Style = "traditional"
	// Deg45 is the overlap-free variant for near-perpendicular corners:
	// per half an outer 45-degree arc, a straight run, and an inner
	// quarter arc into the tip. The outer radius is inner*sqrt2 so the
	// tangent direction is continuous across every junction; changing
	// that ratio kinks the curve.
	Deg45 Style = "45deg"
)

// Pt is a path vertex in the same coordinate space as the endpoints.
type Pt struct {
	X, Y float64
}

// minLength is the endpoint separation below which no path is produced,
// keeping the unit-vector math away from division by near-zero.
const minLength = 0.5

// defaultArcSegs is the flattening density for a full quarter circle.
const defaultArcSegs = 24

// Build returns the flattened polyline for a brace from (x1,y1) to (x2,y2).
// Elevation is the perpendicular bulge distance; mirrored flips the bulge to
// the other side. Degenerate endpoints produce an empty path.
func Build(x1, y1, x2, y2, elevation float64, mirrored bool, style Style) []Pt {
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length < minLength {
		return nil
	}

	var local []pt
	switch style {
	case Traditional:
		local, _ = buildTraditional(length, elevation, defaultArcSegs)
	case Deg45:
		local, _ = build45(length, elevation, defaultArcSegs)
	default:
		local, _ = buildSmooth(length, elevation, defaultArcSegs)
	}

	// Map the local frame (s along the axis, t toward the bulge) into
	// world space. t points to the left of the axis direction; mirrored
	// flips it.
	ux, uy := dx/length, dy/length
	nx, ny := uy, -ux
	if mirrored {
		nx, ny = -nx, -ny
	}
	out := make([]Pt, len(local))
	for i, p := range local {
		out[i] = Pt{
			X: x1 + ux*p.s + nx*p.t,
			Y: y1 + uy*p.s + ny*p.t,
		}
	}
	return out
}

// pt is a vertex in the brace's local frame.
type pt struct {
	s, t float64
}

// buildSmooth joins two quadratics at the elevated midpoint. The control
// points sit above the endpoints at full elevation, which makes the tangent
// horizontal at the midpoint on both sides.
func buildSmooth(length, elev float64, segs int) ([]pt, []int) {
	half := quadSegs(segs)
	a := flattenQuad(pt{0, 0}, pt{0, elev}, pt{length / 2, elev}, half)
	b := flattenQuad(pt{length / 2, elev}, pt{length, elev}, pt{length, 0}, half)
	pts := append(a, b[1:]...)
	return pts, []int{len(a) - 1}
}

// buildTraditional assembles arc, line, arc per half with radius elev/2,
// mirrored around the midpoint. The radius clamps to a quarter of the total
// length so the straight run never inverts.
//
// The straight run ends at length/2 - r, not at the quarter-length mark:
// a circular tip arc of radius r whose vertical tangent lands on the
// midpoint must have its center at s = length/2 - r, and the run meets it
// where its tangent is horizontal. The two positions only coincide at
// r = length/4, so do not move the run end to length/4.
func buildTraditional(length, elev float64, segs int) ([]pt, []int) {
	r := elev / 2
	if r > length/4 {
		r = length / 4
	}
	tip := 2 * r

	var pts []pt
	var junctions []int
	// endpoint arc: vertical tangent at the endpoint, horizontal at t=r
	pts = appendArc(pts, pt{r, 0}, r, math.Pi, math.Pi/2, segs)
	junctions = append(junctions, len(pts)-1)
	pts = appendRun(pts, pt{length/2 - r, r})
	junctions = append(junctions, len(pts)-1)
	// tip arc: horizontal tangent leaving the run, vertical at the tip
	pts = appendArc(pts, pt{length/2 - r, tip}, r, -math.Pi/2, 0, segs)
	junctions = append(junctions, len(pts)-1)

	return mirrorHalf(pts, length), junctions
}

// build45 assembles the 45-degree variant. Inner radius is elevation/sqrt2
// and the outer arc radius is inner*sqrt2 (= elevation); the outer arc's
// center sits at (inner, -inner) so its tangent at the straight-run end is
// exactly horizontal. Keep the ratio: it is what guarantees C1 continuity.
func build45(length, elev float64, segs int) ([]pt, []int) {
	inner := elev / math.Sqrt2
	if inner > length/4 {
		inner = length / 4
	}
	outer := inner * math.Sqrt2
	run := outer - inner // height of the straight segment

	var pts []pt
	var junctions []int
	// outer 1/8 arc from the endpoint, sweeping 135 deg down to 90 deg
	pts = appendArc(pts, pt{inner, -inner}, outer, 3*math.Pi/4, math.Pi/2, segs)
	junctions = append(junctions, len(pts)-1)
	pts = appendRun(pts, pt{length/2 - inner, run})
	junctions = append(junctions, len(pts)-1)
	// inner 1/4 arc into the tip
	pts = appendArc(pts, pt{length/2 - inner, outer}, inner, -math.Pi/2, 0, segs)
	junctions = append(junctions, len(pts)-1)

	return mirrorHalf(pts, length), junctions
}

// mirrorHalf reflects the first half around the midpoint and appends it in
// reverse so the polyline runs endpoint to endpoint through the tip.
func mirrorHalf(half []pt, length float64) []pt {
	out := half
	for i := len(half) - 2; i >= 0; i-- {
		p := half[i]
		out = append(out, pt{length - p.s, p.t})
	}
	return out
}

// appendRun appends the straight-run vertex unless the radius clamp has
// collapsed the run to zero length, in which case it would duplicate the
// preceding arc's last vertex and leave a degenerate segment with no
// usable tangent.
func appendRun(dst []pt, p pt) []pt {
	if len(dst) > 0 {
		last := dst[len(dst)-1]
		if math.Abs(last.s-p.s) < 1e-9 && math.Abs(last.t-p.t) < 1e-9 {
			return dst
		}
	}
	return append(dst, p)
}

// appendArc flattens the circular arc around center from angle a0 to a1,
// omitting the start point when it duplicates the last appended vertex.
// segs is the density of a full quarter circle.
func appendArc(dst []pt, center pt, r, a0, a1 float64, segs int) []pt {
	n := int(math.Ceil(math.Abs(a1-a0) / (math.Pi / 2) * float64(segs)))
	if n < 4 {
		n = 4
	}
	for i := 0; i <= n; i++ {
		a := a0 + (a1-a0)*float64(i)/float64(n)
		p := pt{center.s + r*math.Cos(a), center.t + r*math.Sin(a)}
		if i == 0 && len(dst) > 0 {
			last := dst[len(dst)-1]
			if math.Abs(last.s-p.s) < 1e-9 && math.Abs(last.t-p.t) < 1e-9 {
				continue
			}
		}
		dst = append(dst, p)
	}
	return dst
}

// flattenQuad evaluates the quadratic bezier p0-c-p1 at n+1 parameters.
func flattenQuad(p0, c, p1 pt, n int) []pt {
	out := make([]pt, 0, n+1)
	for i := 0; i <= n; i++ {
		u := float64(i) / float64(n)
		v := 1 - u
		out = append(out, pt{
			s: v*v*p0.s + 2*v*u*c.s + u*u*p1.s,
			t: v*v*p0.t + 2*v*u*c.t + u*u*p1.t,
		})
	}
	return out
}

func quadSegs(segs int) int {
	if segs < 4 {
		return 4
	}
	return segs
}

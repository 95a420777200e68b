package picking

import (
	"image"
	"image/color"
	"math"
)

// Raster primitives for the pick surface. Everything here is hard-edged:
// antialiasing would blend neighbouring keys into colors that resolve to no
// object, so these deliberately avoid the smooth renderer's code path.

func fillDisc(img *image.RGBA, cx, cy, r int, col color.RGBA) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				px := cx + dx
				py := cy + dy
				if image.Pt(px, py).In(img.Bounds()) {
					img.SetRGBA(px, py, col)
				}
			}
		}
	}
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	r := image.Rect(x0, y0, x1+1, y1+1).Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, col)
		}
	}
}

// segmentQuad builds the four corners of a rectangle straddling the segment
// (x0,y0)-(x1,y1), extended halfW pixels to each side along the
// perpendicular. Degenerate segments get an axis-aligned square.
func segmentQuad(x0, y0, x1, y1, halfW float64) [4][2]float64 {
	dx := x1 - x0
	dy := y1 - y0
	l := math.Hypot(dx, dy)
	if l == 0 {
		return [4][2]float64{
			{x0 - halfW, y0 - halfW},
			{x0 + halfW, y0 - halfW},
			{x0 + halfW, y0 + halfW},
			{x0 - halfW, y0 + halfW},
		}
	}
	nx := -dy / l * halfW
	ny := dx / l * halfW
	return [4][2]float64{
		{x0 + nx, y0 + ny},
		{x1 + nx, y1 + ny},
		{x1 - nx, y1 - ny},
		{x0 - nx, y0 - ny},
	}
}

// fillQuad scanline-fills a convex quadrilateral.
func fillQuad(img *image.RGBA, q [4][2]float64, col color.RGBA) {
	minY := q[0][1]
	maxY := q[0][1]
	for _, p := range q[1:] {
		minY = math.Min(minY, p[1])
		maxY = math.Max(maxY, p[1])
	}
	b := img.Bounds()
	y0 := int(math.Floor(minY))
	y1 := int(math.Ceil(maxY))
	if y0 < b.Min.Y {
		y0 = b.Min.Y
	}
	if y1 >= b.Max.Y {
		y1 = b.Max.Y - 1
	}
	for y := y0; y <= y1; y++ {
		fy := float64(y) + 0.5
		minX := math.Inf(1)
		maxX := math.Inf(-1)
		for i := 0; i < 4; i++ {
			ax, ay := q[i][0], q[i][1]
			bx, by := q[(i+1)%4][0], q[(i+1)%4][1]
			if (ay <= fy) == (by <= fy) {
				continue
			}
			x := ax + (fy-ay)/(by-ay)*(bx-ax)
			minX = math.Min(minX, x)
			maxX = math.Max(maxX, x)
		}
		if minX > maxX {
			continue
		}
		xa := int(math.Floor(minX))
		xb := int(math.Ceil(maxX))
		if xa < b.Min.X {
			xa = b.Min.X
		}
		if xb >= b.Max.X {
			xb = b.Max.X - 1
		}
		for x := xa; x <= xb; x++ {
			img.SetRGBA(x, y, col)
		}
	}
}

func setThickPixel(img *image.RGBA, x, y, thick int, col color.RGBA) {
	r := thick / 2
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			px := x + dx
			py := y + dy
			if image.Pt(px, py).In(img.Bounds()) {
				img.SetRGBA(px, py, col)
			}
		}
	}
}

func drawSegment(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA, thick int) {
	if thick < 1 {
		thick = 1
	}
	dx := math.Abs(float64(x1 - x0))
	dy := math.Abs(float64(y1 - y0))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		setThickPixel(img, x0, y0, thick, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func drawPolyline(img *image.RGBA, pts [][2]float64, col color.RGBA, thick int) {
	for i := 1; i < len(pts); i++ {
		drawSegment(img,
			int(math.Round(pts[i-1][0])), int(math.Round(pts[i-1][1])),
			int(math.Round(pts[i][0])), int(math.Round(pts[i][1])),
			col, thick)
	}
}

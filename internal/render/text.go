package render

import (
	"log"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Canvas background checker tones. Picking reserves these as sentinels so
// no object color can ever match the empty canvas.
var (
	CanvasLight = [3]uint8{220, 220, 220}
	CanvasDark  = [3]uint8{192, 192, 192}
)

var parsedFont *opentype.Font
var faceCache = map[float64]font.Face{}

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	parsedFont = f
}

// FaceFor returns a cached face at the given point size. All editor work is
// single-threaded so the cache needs no locking.
func FaceFor(size float64) font.Face {
	if size <= 0 {
		size = 12
	}
	if face, ok := faceCache[size]; ok {
		return face
	}
	face, err := opentype.NewFace(parsedFont, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
	faceCache[size] = face
	return face
}

// Measure returns the advance width, line height and ascent of text at the
// given size, in pixels.
func Measure(text string, size float64) (w, h, ascent int) {
	face := FaceFor(size)
	d := &font.Drawer{Face: face}
	m := face.Metrics()
	return d.MeasureString(text).Ceil(), m.Height.Ceil(), m.Ascent.Ceil()
}

// TextQuad returns the four device-space corners of the box occupied by text
// anchored at its baseline origin (x, y) and rotated by rotation degrees
// counter-clockwise about that anchor. Device y grows downward, hence the
// negated angle. A positive margin inflates the box on all sides before
// rotation. Corners are ordered around the box so they form a convex
// quadrilateral.
func TextQuad(x, y float64, text string, size, rotation, margin float64) [4][2]float64 {
	w, h, ascent := Measure(text, size)
	left := -margin
	top := -float64(ascent) - margin
	right := float64(w) + margin
	bottom := float64(h-ascent) + margin
	corners := [4][2]float64{
		{left, top},
		{right, top},
		{right, bottom},
		{left, bottom},
	}
	rad := -rotation * math.Pi / 180
	sin, cos := math.Sincos(rad)
	var out [4][2]float64
	for i, c := range corners {
		out[i] = [2]float64{
			x + c[0]*cos - c[1]*sin,
			y + c[0]*sin + c[1]*cos,
		}
	}
	return out
}

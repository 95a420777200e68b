package render

import (
	"image"
	"image/color"
	"testing"
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestFrameExpandsByMargin(t *testing.T) {
	content := color.RGBA{200, 30, 30, 255}
	img := solidImage(20, 10, content)
	opts := DefaultFrameOptions()
	opts.Margin = 16

	out := Frame(img, opts)
	want := image.Rect(0, 0, 20+32, 10+32)
	if !out.Bounds().Eq(want) {
		t.Fatalf("bounds = %v, want %v", out.Bounds(), want)
	}
	if got := out.RGBAAt(0, 0); got != opts.Backdrop {
		t.Errorf("corner = %v, want backdrop %v", got, opts.Backdrop)
	}
	if got := out.RGBAAt(16+10, 16+5); got != content {
		t.Errorf("card center = %v, want content %v", got, content)
	}
}

func TestFrameDropShadowVisible(t *testing.T) {
	img := solidImage(20, 20, color.RGBA{255, 255, 255, 255})
	opts := DefaultFrameOptions()
	opts.Margin = 24
	opts.ShadowOffset = image.Pt(6, 6)

	out := Frame(img, opts)
	// Just past the card's bottom-right corner, in the offset direction,
	// the backdrop should be darkened by the shadow.
	px, py := 24+20+2, 24+20+2
	got := out.RGBAAt(px, py)
	if got.R >= opts.Backdrop.R {
		t.Errorf("pixel at (%d,%d) = %v, expected darker than backdrop %v", px, py, got, opts.Backdrop)
	}
}

func TestFrameShadowFallsOffWithDistance(t *testing.T) {
	// The shadow must come from the blurred mask: darkest near the card,
	// fading outward, and absent beyond the blur reach. A mask applied at
	// uniform alpha would shade all three samples identically.
	img := solidImage(30, 30, color.RGBA{255, 255, 255, 255})
	opts := DefaultFrameOptions()
	opts.Margin = 40
	opts.ShadowRadius = 8
	opts.ShadowOffset = image.Pt(4, 4)

	out := Frame(img, opts)
	edge := 40 + 30 // card's right edge
	y := 40 + 15
	near := out.RGBAAt(edge+3, y)
	far := out.RGBAAt(edge+10, y)
	clear := out.RGBAAt(edge+30, y)
	if near.R >= far.R {
		t.Errorf("shadow does not fade: near %v, farther %v", near, far)
	}
	if far.R >= opts.Backdrop.R {
		t.Errorf("no shadow within blur reach: %v, backdrop %v", far, opts.Backdrop)
	}
	if clear != opts.Backdrop {
		t.Errorf("backdrop beyond the blur reach = %v, want %v", clear, opts.Backdrop)
	}
}

func TestFrameZeroOpacityLeavesBackdropClean(t *testing.T) {
	img := solidImage(8, 8, color.RGBA{0, 0, 0, 255})
	opts := DefaultFrameOptions()
	opts.Margin = 10
	opts.ShadowOpacity = 0

	out := Frame(img, opts)
	for _, p := range []image.Point{{0, 0}, {1, 27}, {27, 1}, {27, 27}} {
		if got := out.RGBAAt(p.X, p.Y); got != opts.Backdrop {
			t.Errorf("pixel at %v = %v, want untouched backdrop", p, got)
		}
	}
}

func TestFrameNoMarginPassesThrough(t *testing.T) {
	img := solidImage(5, 5, color.RGBA{1, 2, 3, 255})
	opts := DefaultFrameOptions()
	opts.Margin = 0
	if out := Frame(img, opts); out != img {
		t.Error("zero margin should return the input unchanged")
	}
}

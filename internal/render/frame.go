package render

import (
	"image"
	"image/color"
	"image/draw"
)

// FrameOptions configures the export framing applied around a rendering.
type FrameOptions struct {
	Margin        int
	ShadowRadius  int
	ShadowOffset  image.Point
	ShadowOpacity float64
	Backdrop      color.RGBA
}

// DefaultFrameOptions returns the framing used by the export path.
func DefaultFrameOptions() FrameOptions {
	return FrameOptions{
		Margin:        32,
		ShadowRadius:  12,
		ShadowOffset:  image.Pt(6, 8),
		ShadowOpacity: 0.4,
		Backdrop:      color.RGBA{245, 245, 245, 255},
	}
}

// Frame places a rendering on a larger backdrop with a soft drop shadow
// behind it, the way exported diagrams are usually presented. A zero or
// negative margin returns the rendering unchanged.
func Frame(img *image.RGBA, opts FrameOptions) *image.RGBA {
	if img == nil || opts.Margin <= 0 {
		return img
	}
	src := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, src.Dx()+2*opts.Margin, src.Dy()+2*opts.Margin))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(opts.Backdrop), image.Point{}, draw.Src)

	card := image.Rect(opts.Margin, opts.Margin, opts.Margin+src.Dx(), opts.Margin+src.Dy())
	if opts.ShadowOpacity > 0 {
		opacity := opts.ShadowOpacity
		if opacity > 1 {
			opacity = 1
		}
		mask := cardMask(dst.Bounds(), card.Add(opts.ShadowOffset), opts.ShadowRadius)
		shade := color.RGBA{0, 0, 0, uint8(opacity*255 + 0.5)}
		draw.DrawMask(dst, dst.Bounds(), image.NewUniform(shade), image.Point{}, mask, mask.Bounds().Min, draw.Over)
	}

	draw.Draw(dst, card, img, src.Min, draw.Src)
	return dst
}

// cardMask builds a blurred alpha mask of rect inside bounds. The blur is a
// separable box filter over row and column prefix sums. The mask must be an
// *image.Alpha: DrawMask samples masks through their alpha channel, and a
// Gray pixel always reads as fully opaque there.
func cardMask(bounds, rect image.Rectangle, radius int) *image.Alpha {
	mask := image.NewAlpha(bounds)
	r := rect.Intersect(bounds)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			mask.SetAlpha(x, y, color.Alpha{A: 255})
		}
	}
	if radius <= 0 {
		return mask
	}

	w := bounds.Dx()
	h := bounds.Dy()
	tmp := image.NewAlpha(bounds)
	for y := 0; y < h; y++ {
		prefix := make([]int, w+1)
		for x := 0; x < w; x++ {
			prefix[x+1] = prefix[x] + int(mask.Pix[y*mask.Stride+x])
		}
		for x := 0; x < w; x++ {
			x0 := max(x-radius, 0)
			x1 := min(x+radius, w-1)
			tmp.Pix[y*tmp.Stride+x] = uint8((prefix[x1+1] - prefix[x0]) / (x1 - x0 + 1))
		}
	}
	for x := 0; x < w; x++ {
		prefix := make([]int, h+1)
		for y := 0; y < h; y++ {
			prefix[y+1] = prefix[y] + int(tmp.Pix[y*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			y0 := max(y-radius, 0)
			y1 := min(y+radius, h-1)
			mask.Pix[y*mask.Stride+x] = uint8((prefix[y1+1] - prefix[y0]) / (y1 - y0 + 1))
		}
	}
	return mask
}

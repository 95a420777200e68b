package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/example/plotsketch/internal/clipboard"
	"github.com/example/plotsketch/internal/coords"
	"github.com/example/plotsketch/internal/render"
	"github.com/example/plotsketch/internal/scene"
)

type renderCmd struct {
	*root
	fs            *flag.FlagSet
	input         string
	output        string
	stdout        bool
	toClipboard   bool
	frame         bool
	frameMargin   int
	shadowRadius  int
	shadowOffset  string
	shadowPoint   image.Point
	shadowOpacity float64
	width         int
	height        int
}

func (c *renderCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseRenderCmd(args []string, r *root) (*renderCmd, error) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	c := &renderCmd{root: r.subcommand("render"), fs: fs}
	fs.Usage = usageFunc(c)
	defaults := render.DefaultFrameOptions()
	width, height := 900, 700
	if r != nil && r.config != nil {
		width, height = r.config.Canvas.Width, r.config.Canvas.Height
	}
	fs.StringVar(&c.input, "input", "", "document file to render")
	fs.StringVar(&c.output, "output", "render.png", "write the rendering to this file path")
	fs.BoolVar(&c.stdout, "stdout", false, "write PNG data to stdout")
	fs.BoolVar(&c.toClipboard, "to-clipboard", false, "copy the rendering to the clipboard")
	fs.BoolVar(&c.frame, "frame", false, "place the rendering on a backdrop with a drop shadow")
	fs.IntVar(&c.frameMargin, "frame-margin", defaults.Margin, "backdrop margin in pixels")
	fs.IntVar(&c.shadowRadius, "shadow-radius", defaults.ShadowRadius, "drop shadow blur radius in pixels")
	fs.StringVar(&c.shadowOffset, "shadow-offset", formatOffset(defaults.ShadowOffset), "drop shadow offset as dx,dy")
	fs.Float64Var(&c.shadowOpacity, "shadow-opacity", defaults.ShadowOpacity, "drop shadow opacity between 0 and 1")
	fs.IntVar(&c.width, "width", width, "canvas width in pixels")
	fs.IntVar(&c.height, "height", height, "canvas height in pixels")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	pt, err := parseOffset(c.shadowOffset)
	if err != nil {
		return nil, err
	}
	c.shadowPoint = pt
	if c.toClipboard && c.stdout {
		return nil, fmt.Errorf("-stdout cannot be used with -to-clipboard")
	}
	if c.input == "" && fs.NArg() == 1 {
		c.input = fs.Arg(0)
	}
	if c.input == "" {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *renderCmd) Run() error {
	f, err := os.Open(c.input)
	if err != nil {
		return fmt.Errorf("open input %q: %w", c.input, err)
	}
	s, bounds, axes, decodeErr := scene.Decode(f)
	f.Close()
	if decodeErr != nil {
		return fmt.Errorf("read document %q: %w", c.input, decodeErr)
	}
	s.Select("")

	padding := 24
	if c.root != nil && c.root.config != nil {
		padding = c.root.config.Canvas.Padding
	}
	tr := coords.NewTransform(bounds, axes, c.width, c.height, padding)
	img := render.Render(s, tr, axes, c.width, c.height)
	if c.frame {
		opts := render.DefaultFrameOptions()
		opts.Margin = c.frameMargin
		opts.ShadowRadius = c.shadowRadius
		opts.ShadowOffset = c.shadowPoint
		opts.ShadowOpacity = c.shadowOpacity
		img = render.Frame(img, opts)
	}

	if c.toClipboard {
		if err := clipboard.WriteImage(img); err != nil {
			return fmt.Errorf("copy PNG to clipboard: %w", err)
		}
		fmt.Fprintf(os.Stderr, "copied rendering of %s to clipboard\n", c.input)
		c.root.notifyCopy(c.input)
		return nil
	}

	var w io.Writer
	if c.stdout {
		w = os.Stdout
	} else {
		out, err := os.Create(c.output)
		if err != nil {
			return fmt.Errorf("create output %q: %w", c.output, err)
		}
		defer func() {
			if cerr := out.Close(); cerr != nil {
				log.Printf("close %s: %v", c.output, cerr)
			}
		}()
		w = out
	}
	if err := png.Encode(w, img); err != nil {
		if c.stdout {
			return fmt.Errorf("write PNG to stdout: %w", err)
		}
		return fmt.Errorf("write PNG to %q: %w", c.output, err)
	}
	if !c.stdout {
		c.root.notifyExport(c.output, img)
	}
	return nil
}

func parseOffset(s string) (image.Point, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return image.Point{}, fmt.Errorf("offset %q must be dx,dy", s)
	}
	dx, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return image.Point{}, fmt.Errorf("offset %q must be dx,dy: %w", s, err)
	}
	dy, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return image.Point{}, fmt.Errorf("offset %q must be dx,dy: %w", s, err)
	}
	return image.Pt(dx, dy), nil
}

func formatOffset(pt image.Point) string {
	return fmt.Sprintf("%d,%d", pt.X, pt.Y)
}

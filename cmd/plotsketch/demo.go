package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/example/plotsketch/internal/coords"
	"github.com/example/plotsketch/internal/funcplot"
	"github.com/example/plotsketch/internal/scene"
)

type demoCmd struct {
	*root
	fs     *flag.FlagSet
	output string
}

func (d *demoCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func parseDemoCmd(args []string, r *root) (*demoCmd, error) {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	d := &demoCmd{root: r.subcommand("demo"), fs: fs}
	fs.Usage = usageFunc(d)
	fs.StringVar(&d.output, "output", "demo.json", "write the sample document to this file path")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return d, nil
}

// Run writes a document exercising every object kind, useful as a starting
// point for edit and as input for render.
func (d *demoCmd) Run() error {
	s, bounds, axes, err := buildDemoScene()
	if err != nil {
		return err
	}
	f, err := os.Create(d.output)
	if err != nil {
		return fmt.Errorf("create output %q: %w", d.output, err)
	}
	encodeErr := scene.Encode(f, s, bounds, axes)
	if cerr := f.Close(); encodeErr == nil {
		encodeErr = cerr
	}
	if encodeErr != nil {
		return fmt.Errorf("write document %q: %w", d.output, encodeErr)
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", d.output)
	d.root.notifySave(d.output)
	return nil
}

func buildDemoScene() (*scene.Scene, coords.Bounds, coords.Axes, error) {
	bounds := coords.Bounds{XMin: -2 * math.Pi, XMax: 2 * math.Pi, YMin: -3, YMax: 3}
	axes := coords.DefaultAxes()

	sine, err := funcplot.Lookup("sin")
	if err != nil {
		return nil, bounds, axes, err
	}
	samples, err := funcplot.Sample(sine, bounds.XMin, bounds.XMax, 240)
	if err != nil {
		return nil, bounds, axes, err
	}

	s := scene.New()
	objects := []scene.Object{
		&scene.Area{Base: scene.NewBase(1), X1: 0, Y1: -1, X2: math.Pi, Y2: 1, Fill: "#d9e2f5"},
		&scene.Function{Base: scene.NewBase(2), Expr: "sin", Samples: samples, Width: 2, Color: "#1a3f8f"},
		&scene.Line{Base: scene.NewBase(3), X1: -math.Pi, Y1: -1, X2: -math.Pi, Y2: 1, Width: 1.5, Color: "#8f1a1a"},
		&scene.Point{Base: scene.NewBase(4), X: math.Pi / 2, Y: 1, Size: 8, Color: "#1a3f8f"},
		&scene.Brace{Base: scene.NewBase(5), X1: 0, Y1: -1.4, X2: math.Pi, Y2: -1.4, Elevation: 0.5, Mirrored: true, Style: scene.BraceSmooth, Width: 1.5, Color: "#1a3f8f"},
		&scene.Text{Base: scene.NewBase(6), X: math.Pi / 2, Y: -2.4, Content: "one half period", Size: 16, Color: "#1a3f8f"},
	}
	for _, o := range objects {
		if err := s.Add(o); err != nil {
			return nil, bounds, axes, err
		}
	}
	return s, bounds, axes, nil
}

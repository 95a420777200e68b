package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/plotsketch/internal/config"
	"github.com/example/plotsketch/internal/coords"
	"github.com/example/plotsketch/internal/editor"
	"github.com/example/plotsketch/internal/scene"
	"github.com/example/plotsketch/internal/ui"
)

type editCmd struct {
	*root
	fs     *flag.FlagSet
	output string
	width  int
	height int
}

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	e := &editCmd{root: r.subcommand("edit"), fs: fs}
	fs.StringVar(&e.output, "output", "", "document file to save to (defaults to the opened file, or plotsketch.json)")
	fs.IntVar(&e.width, "width", r.config.Canvas.Width, "canvas width in pixels")
	fs.IntVar(&e.height, "height", r.config.Canvas.Height, "canvas height in pixels")
	fs.Usage = usageFunc(e)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 1 {
		return nil, &UsageError{of: e}
	}
	return e, nil
}

func (e *editCmd) Run() error {
	cfg := e.root.config
	ed := editor.New(viewBounds(cfg), viewAxes(cfg), e.width, e.height, cfg.Canvas.Padding, cfg.HistoryLimit)
	ed.SetStyle(editorStyle(cfg))

	input := ""
	if e.fs.NArg() == 1 {
		input = e.fs.Arg(0)
	}
	if input != "" {
		f, err := os.Open(input)
		if err != nil {
			return fmt.Errorf("open document %q: %w", input, err)
		}
		loadErr := ed.Load(f)
		f.Close()
		if loadErr != nil {
			return fmt.Errorf("load document %q: %w", input, loadErr)
		}
	}

	output := e.output
	if output == "" {
		output = input
	}
	if output == "" {
		output = "plotsketch.json"
		if cfg.SaveDir != "" {
			output = filepath.Join(cfg.SaveDir, output)
		}
	}

	u := ui.New(
		ui.WithEditor(ed),
		ui.WithOutput(output),
		ui.WithNotifier(e.root.notifier),
	)
	u.Run()
	return nil
}

func viewBounds(cfg *config.Config) coords.Bounds {
	return coords.Bounds{
		XMin: cfg.View.XMin,
		XMax: cfg.View.XMax,
		YMin: cfg.View.YMin,
		YMax: cfg.View.YMax,
	}
}

func viewAxes(cfg *config.Config) coords.Axes {
	return coords.Axes{
		AspectRatio: cfg.View.Aspect,
		ShowGrid:    cfg.View.Grid,
		Labels:      cfg.View.Labels,
	}
}

func editorStyle(cfg *config.Config) editor.Style {
	st := editor.DefaultStyle()
	st.Color = cfg.Style.Color
	st.Fill = cfg.Style.Fill
	st.StrokeWidth = cfg.Style.StrokeWidth
	st.PointSize = cfg.Style.PointSize
	st.TextSize = cfg.Style.TextSize
	st.BraceStyle = scene.BraceStyle(cfg.Style.BraceStyle)
	st.Elevation = cfg.Style.Elevation
	return st
}

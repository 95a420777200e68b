package config

import (
	"fmt"
	"strings"
)

// Canvas holds the viewport settings.
type Canvas struct {
	Width   int
	Height  int
	Padding int
}

// View holds the initial plot-space window and axes presentation.
type View struct {
	XMin   float64
	XMax   float64
	YMin   float64
	YMax   float64
	Aspect float64
	Grid   bool
	Labels bool
}

// Style holds the attributes stamped onto newly drawn objects.
type Style struct {
	Color       string
	Fill        string
	StrokeWidth float64
	PointSize   float64
	TextSize    float64
	BraceStyle  string
	Elevation   float64
}

// Notify holds desktop notification settings.
type Notify struct {
	Save   bool
	Export bool
	Copy   bool
}

// Config holds the application configuration.
type Config struct {
	SaveDir      string
	HistoryLimit int
	Canvas       Canvas
	View         View
	Style        Style
	Notify       Notify
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		HistoryLimit: 50,
		Canvas:       Canvas{Width: 900, Height: 700, Padding: 24},
		View:         View{XMin: -10, XMax: 10, YMin: -10, YMax: 10, Aspect: 1, Grid: true, Labels: true},
		Style: Style{
			Color:       "#1a3f8f",
			Fill:        "#d9e2f5",
			StrokeWidth: 2,
			PointSize:   8,
			TextSize:    16,
			BraceStyle:  "smooth",
			Elevation:   0.5,
		},
	}
}

// Validate rejects settings that would poison the coordinate transform
// before they reach the editor.
func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("config: canvas %dx%d is not drawable", c.Canvas.Width, c.Canvas.Height)
	}
	if c.View.XMax <= c.View.XMin || c.View.YMax <= c.View.YMin {
		return fmt.Errorf("config: empty view window [%g, %g]x[%g, %g]",
			c.View.XMin, c.View.XMax, c.View.YMin, c.View.YMax)
	}
	if c.View.Aspect <= 0 {
		return fmt.Errorf("config: aspect ratio %g must be positive", c.View.Aspect)
	}
	if c.HistoryLimit < 1 {
		return fmt.Errorf("config: history limit %d must be at least 1", c.HistoryLimit)
	}
	return nil
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	fmt.Fprintf(&sb, "history_limit = %d\n", c.HistoryLimit)
	sb.WriteString("\n")

	sb.WriteString("[canvas]\n")
	fmt.Fprintf(&sb, "width = %d\n", c.Canvas.Width)
	fmt.Fprintf(&sb, "height = %d\n", c.Canvas.Height)
	fmt.Fprintf(&sb, "padding = %d\n", c.Canvas.Padding)
	sb.WriteString("\n")

	sb.WriteString("[view]\n")
	fmt.Fprintf(&sb, "xmin = %g\n", c.View.XMin)
	fmt.Fprintf(&sb, "xmax = %g\n", c.View.XMax)
	fmt.Fprintf(&sb, "ymin = %g\n", c.View.YMin)
	fmt.Fprintf(&sb, "ymax = %g\n", c.View.YMax)
	fmt.Fprintf(&sb, "aspect = %g\n", c.View.Aspect)
	fmt.Fprintf(&sb, "grid = %v\n", c.View.Grid)
	fmt.Fprintf(&sb, "labels = %v\n", c.View.Labels)
	sb.WriteString("\n")

	sb.WriteString("[style]\n")
	fmt.Fprintf(&sb, "color = %s\n", c.Style.Color)
	fmt.Fprintf(&sb, "fill = %s\n", c.Style.Fill)
	fmt.Fprintf(&sb, "stroke_width = %g\n", c.Style.StrokeWidth)
	fmt.Fprintf(&sb, "point_size = %g\n", c.Style.PointSize)
	fmt.Fprintf(&sb, "text_size = %g\n", c.Style.TextSize)
	fmt.Fprintf(&sb, "brace_style = %s\n", c.Style.BraceStyle)
	fmt.Fprintf(&sb, "elevation = %g\n", c.Style.Elevation)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	return sb.String()
}

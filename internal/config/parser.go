package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse reads configuration from an io.Reader in RC format: `key = value`
// lines grouped under optional `[section]` headers, with # and // comments.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			continue
		}

		var parts []string
		if strings.Contains(line, "=") {
			parts = strings.SplitN(line, "=", 2)
		} else if strings.Contains(line, ":") {
			parts = strings.SplitN(line, ":", 2)
		} else {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
			value = value[1 : len(value)-1]
		}

		var err error
		switch currentSection {
		case "":
			err = setRootField(cfg, key, value)
		case "canvas":
			err = setCanvasField(&cfg.Canvas, key, value)
		case "view":
			err = setViewField(&cfg.View, key, value)
		case "style":
			err = setStyleField(&cfg.Style, key, value)
		case "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		default:
			// Unknown sections are ignored so old configs keep loading.
		}
		if err != nil {
			return nil, fmt.Errorf("error in section [%s]: %w", currentSection, err)
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "save_dir":
		cfg.SaveDir = value
	case "history_limit":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for key %s: %w", key, err)
		}
		cfg.HistoryLimit = n
	}
	return nil
}

func setCanvasField(c *Canvas, key, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid integer for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "width":
		c.Width = n
	case "height":
		c.Height = n
	case "padding":
		c.Padding = n
	}
	return nil
}

func setViewField(v *View, key, value string) error {
	switch strings.ToLower(key) {
	case "grid":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for key %s: %w", key, err)
		}
		v.Grid = b
		return nil
	case "labels":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for key %s: %w", key, err)
		}
		v.Labels = b
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid number for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "xmin":
		v.XMin = f
	case "xmax":
		v.XMax = f
	case "ymin":
		v.YMin = f
	case "ymax":
		v.YMax = f
	case "aspect":
		v.Aspect = f
	}
	return nil
}

func setStyleField(s *Style, key, value string) error {
	switch strings.ToLower(key) {
	case "color":
		s.Color = value
		return nil
	case "fill":
		s.Fill = value
		return nil
	case "brace_style":
		s.BraceStyle = value
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid number for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "stroke_width":
		s.StrokeWidth = f
	case "point_size":
		s.PointSize = f
	case "text_size":
		s.TextSize = f
	case "elevation":
		s.Elevation = f
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "save":
		n.Save = b
	case "export":
		n.Export = b
	case "copy":
		n.Copy = b
	}
	return nil
}

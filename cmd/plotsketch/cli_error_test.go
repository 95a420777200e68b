package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/plotsketch/internal/config"
	"github.com/example/plotsketch/internal/scene"
)

func testRoot() *root {
	r := &root{
		fs:      flag.NewFlagSet("plotsketch", flag.ContinueOnError),
		program: "plotsketch",
		config:  config.New(),
	}
	r.fs.Usage = usageFunc(r)
	return r
}

func TestRootUnknownCommand(t *testing.T) {
	r := testRoot()
	err := r.Run([]string{"bogus"})
	if err == nil {
		t.Fatalf("expected error")
	}
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestRootNoCommand(t *testing.T) {
	r := testRoot()
	err := r.Run(nil)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestParseRenderRequiresInput(t *testing.T) {
	_, err := parseRenderCmd(nil, testRoot())
	if err == nil {
		t.Fatalf("expected error")
	}
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestParseRenderRejectsStdoutWithClipboard(t *testing.T) {
	_, err := parseRenderCmd([]string{"-stdout", "-to-clipboard", "-input", "doc.json"}, testRoot())
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "-stdout cannot be used"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestParseRenderBadShadowOffset(t *testing.T) {
	_, err := parseRenderCmd([]string{"-shadow-offset", "nope", "-input", "doc.json"}, testRoot())
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "must be dx,dy"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestRenderRunMissingInput(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.json")
	cmd, err := parseRenderCmd([]string{"-input", missing, "-stdout"}, testRoot())
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := cmd.Run(); err == nil {
		t.Fatalf("expected error")
	} else if want := "open input"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestRenderFromDemoDocument(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "demo.json")
	demo, err := parseDemoCmd([]string{"-output", doc}, testRoot())
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := demo.Run(); err != nil {
		t.Fatalf("demo: %v", err)
	}

	f, err := os.Open(doc)
	if err != nil {
		t.Fatalf("open demo document: %v", err)
	}
	s, _, _, decodeErr := scene.Decode(f)
	f.Close()
	if decodeErr != nil {
		t.Fatalf("decode demo document: %v", decodeErr)
	}
	kinds := map[scene.Kind]bool{}
	for _, o := range s.Objects() {
		kinds[o.Kind()] = true
	}
	for _, k := range []scene.Kind{scene.KindPoint, scene.KindLine, scene.KindArea, scene.KindText, scene.KindBrace, scene.KindFunction} {
		if !kinds[k] {
			t.Errorf("demo document is missing a %s object", k)
		}
	}

	out := filepath.Join(dir, "demo.png")
	render, err := parseRenderCmd([]string{"-input", doc, "-output", out, "-frame"}, testRoot())
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := render.Run(); err != nil {
		t.Fatalf("render: %v", err)
	}
	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("stat rendering: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("rendering is empty")
	}
}

func TestParseEditRejectsExtraArgs(t *testing.T) {
	_, err := parseEditCmd([]string{"one.json", "two.json"}, testRoot())
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

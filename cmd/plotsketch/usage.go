package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// HelpData is implemented by the root and every subcommand so their usage
// text can be rendered from one place.
type HelpData interface {
	Program() string
	Synopsis() string
	FlagSet() *flag.FlagSet
}

type UsageError struct {
	of HelpData
}

func (e *UsageError) Error() string {
	return renderHelp(e.of)
}

func renderHelp(h HelpData) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Usage: %s\n", h.Synopsis())
	if fs := h.FlagSet(); fs != nil {
		var flags []*flag.Flag
		fs.VisitAll(func(f *flag.Flag) { flags = append(flags, f) })
		if len(flags) > 0 {
			fmt.Fprintf(&sb, "\nFlags:\n")
			for _, f := range flags {
				fmt.Fprintf(&sb, "  -%s (default %q)\n        %s\n", f.Name, f.DefValue, f.Usage)
			}
		}
	}
	return sb.String()
}

func usageFunc(h HelpData) func() {
	return func() {
		fmt.Fprint(os.Stderr, renderHelp(h))
	}
}

func (r *root) Synopsis() string {
	return r.Program() + " [flags] <edit|render|demo|config|version> [args]"
}

func (e *editCmd) Synopsis() string {
	return e.Program() + " [flags] [document.json]"
}

func (c *renderCmd) Synopsis() string {
	return c.Program() + " [flags] -input document.json"
}

func (d *demoCmd) Synopsis() string {
	return d.Program() + " [flags]"
}

func (c *configCmd) Synopsis() string {
	return c.Program() + " <print|save>"
}

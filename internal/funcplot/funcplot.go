// Package funcplot samples scalar functions over an interval for plotting.
// Points where the function is undefined are kept as NaN samples so the
// renderer can break the polyline there instead of drawing through the gap.
package funcplot

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Func is a scalar function of one variable.
type Func func(x float64) float64

// MinSamples is the smallest sample count Sample accepts.
const MinSamples = 2

// Sample evaluates f at n evenly spaced points across [xmin, xmax],
// endpoints included. Non-finite results are stored as NaN.
func Sample(f Func, xmin, xmax float64, n int) ([][2]float64, error) {
	if f == nil {
		return nil, fmt.Errorf("funcplot: nil function")
	}
	if n < MinSamples {
		return nil, fmt.Errorf("funcplot: need at least %d samples, got %d", MinSamples, n)
	}
	if xmax <= xmin {
		return nil, fmt.Errorf("funcplot: empty interval [%g, %g]", xmin, xmax)
	}
	step := (xmax - xmin) / float64(n-1)
	out := make([][2]float64, n)
	for i := 0; i < n; i++ {
		x := xmin + float64(i)*step
		if i == n-1 {
			x = xmax
		}
		y := f(x)
		if math.IsInf(y, 0) {
			y = math.NaN()
		}
		out[i] = [2]float64{x, y}
	}
	return out, nil
}

// builtins maps expression names to their implementations. Functions with
// restricted domains return NaN outside it, which Sample keeps as a gap.
var builtins = map[string]Func{
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"exp":  math.Exp,
	"abs":  math.Abs,
	"sqrt": math.Sqrt,
	"log":  math.Log,
	"x":    func(x float64) float64 { return x },
	"x^2":  func(x float64) float64 { return x * x },
	"x^3":  func(x float64) float64 { return x * x * x },
	"1/x": func(x float64) float64 {
		if x == 0 {
			return math.NaN()
		}
		return 1 / x
	},
	"sinc": func(x float64) float64 {
		if x == 0 {
			return 1
		}
		return math.Sin(x) / x
	},
}

// Lookup resolves a builtin expression name. Names are case-insensitive.
func Lookup(expr string) (Func, error) {
	f, ok := builtins[strings.ToLower(strings.TrimSpace(expr))]
	if !ok {
		return nil, fmt.Errorf("funcplot: unknown expression %q", expr)
	}
	return f, nil
}

// Names returns the builtin expression names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package funcplot

import (
	"math"
	"testing"
)

func TestSampleEndpoints(t *testing.T) {
	pts, err := Sample(math.Sin, -math.Pi, math.Pi, 101)
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 101 {
		t.Fatalf("len = %d, want 101", len(pts))
	}
	if pts[0][0] != -math.Pi || pts[100][0] != math.Pi {
		t.Errorf("endpoints = %g, %g", pts[0][0], pts[100][0])
	}
	for _, p := range pts {
		if math.Abs(p[1]-math.Sin(p[0])) > 1e-12 {
			t.Fatalf("sample at x=%g: got %g, want %g", p[0], p[1], math.Sin(p[0]))
		}
	}
}

func TestSampleDomainGaps(t *testing.T) {
	f, err := Lookup("sqrt")
	if err != nil {
		t.Fatal(err)
	}
	pts, err := Sample(f, -1, 1, 21)
	if err != nil {
		t.Fatal(err)
	}
	gaps := 0
	for _, p := range pts {
		if math.IsNaN(p[1]) {
			gaps++
			if p[0] >= 0 {
				t.Errorf("unexpected gap at x=%g", p[0])
			}
		}
	}
	if gaps == 0 {
		t.Error("expected gaps for negative inputs")
	}
}

func TestSampleInfinityBecomesGap(t *testing.T) {
	f := func(x float64) float64 { return 1 / x }
	pts, err := Sample(f, -1, 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	// Middle sample lands exactly on x=0 where 1/x blows up.
	if !math.IsNaN(pts[1][1]) {
		t.Errorf("sample at x=0 = %g, want NaN", pts[1][1])
	}
}

func TestSampleRejectsBadArgs(t *testing.T) {
	if _, err := Sample(nil, 0, 1, 10); err == nil {
		t.Error("nil function accepted")
	}
	if _, err := Sample(math.Sin, 0, 1, 1); err == nil {
		t.Error("single sample accepted")
	}
	if _, err := Sample(math.Sin, 1, 1, 10); err == nil {
		t.Error("empty interval accepted")
	}
}

func TestLookup(t *testing.T) {
	if _, err := Lookup(" SIN "); err != nil {
		t.Errorf("case-insensitive lookup failed: %v", err)
	}
	if _, err := Lookup("nope"); err == nil {
		t.Error("unknown expression accepted")
	}
	if len(Names()) == 0 {
		t.Error("no builtin names")
	}
}

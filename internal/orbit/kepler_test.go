package orbit

import (
	"math"
	"testing"
)

func TestEccentricAnomalySatisfiesKepler(t *testing.T) {
	for _, e := range []float64{0, 0.01, 0.1, 0.3, 0.6, 0.9, 0.99} {
		for i := 0; i < 50; i++ {
			m := 2 * math.Pi * float64(i) / 50
			ea, err := eccentricAnomaly(m, e)
			if err != nil {
				t.Fatalf("e=%g m=%g: %v", e, m, err)
			}
			if res := math.Abs(ea - e*math.Sin(ea) - m); res > keplerTol {
				t.Errorf("e=%g m=%g: residual %g exceeds tolerance", e, m, res)
			}
		}
	}
}

func TestEccentricAnomalyCircular(t *testing.T) {
	for _, m := range []float64{0, 0.5, math.Pi, 5.0} {
		ea, err := eccentricAnomaly(m, 0)
		if err != nil {
			t.Fatalf("e=0 m=%g: %v", m, err)
		}
		if ea != m {
			t.Errorf("e=0: eccentricAnomaly(%g) = %g, want exactly m", m, ea)
		}
	}
}

func TestEccentricAnomalyNearParabolic(t *testing.T) {
	// The Danby starter must carry Newton through the flat region near
	// M = 0, where a plain E0 = M seed exhausts the iteration cap for
	// eccentricities this close to one.
	for _, e := range []float64{0.99, 0.999} {
		for i := 0; i < 2000; i++ {
			m := 2 * math.Pi * float64(i) / 2000
			ea, err := eccentricAnomaly(m, e)
			if err != nil {
				t.Fatalf("e=%g m=%g: %v", e, m, err)
			}
			if res := math.Abs(ea - e*math.Sin(ea) - m); res > keplerTol {
				t.Errorf("e=%g m=%g: residual %g exceeds tolerance", e, m, res)
			}
		}
	}
}

func TestTrueAnomalyRoundTrip(t *testing.T) {
	// nu and E agree at periastron and apastron for any eccentricity.
	for _, e := range []float64{0.1, 0.5, 0.9} {
		if nu := trueAnomaly(0, e); math.Abs(nu) > 1e-14 {
			t.Errorf("e=%g: trueAnomaly(0) = %g, want 0", e, nu)
		}
		if nu := trueAnomaly(math.Pi, e); math.Abs(nu-math.Pi) > 1e-12 {
			t.Errorf("e=%g: trueAnomaly(pi) = %g, want pi", e, nu)
		}
	}
}

func TestConvergenceErrorRemap(t *testing.T) {
	err := &ConvergenceError{Indices: []int{0, 1, 5, 6, 7, 12}}
	got := err.Remap(4)
	want := []int{0, 1, 3}
	if len(got.Indices) != len(want) {
		t.Fatalf("Remap(4) = %v, want %v", got.Indices, want)
	}
	for i := range want {
		if got.Indices[i] != want[i] {
			t.Fatalf("Remap(4) = %v, want %v", got.Indices, want)
		}
	}
	if same := err.Remap(1); same != err {
		t.Error("Remap(1) should return the error unchanged")
	}
}

package orbit

import (
	"errors"
	"math"
	"testing"
)

func TestCircularMatchesClosedForm(t *testing.T) {
	el := Elements{T0: 1.2, P: 3.5, A: 10, Inc: math.Pi / 2 * 0.98, Ecc: 0, W: 0.7}

	const n = 1000
	ts := make([]float64, n)
	for i := range ts {
		ts[i] = el.T0 + el.P*float64(i)/n
	}

	z, err := ZSeries(ts, el, 1)
	if err != nil {
		t.Fatal(err)
	}

	sini := math.Sin(el.Inc)
	for i, tv := range ts {
		phi := 2 * math.Pi * (tv - el.T0) / el.P
		want := el.A * math.Sqrt(1-math.Cos(phi)*math.Cos(phi)*sini*sini)
		if math.Abs(z[i]-want) > 1e-10 {
			t.Fatalf("phase %d: z = %.15g, want %.15g", i, z[i], want)
		}
	}
}

func TestCircularMidTransitAndQuadrature(t *testing.T) {
	el := Elements{T0: 0, P: 3.5, A: 10, Inc: math.Pi / 2, Ecc: 0, W: 0}

	z, err := ZSeries([]float64{0, el.P / 4}, el, 1)
	if err != nil {
		t.Fatal(err)
	}
	if z[0] > 1e-9 {
		t.Errorf("mid-transit z = %g, want ~0 for edge-on orbit", z[0])
	}
	if math.Abs(z[1]-el.A) > 1e-9 {
		t.Errorf("quadrature z = %g, want a = %g", z[1], el.A)
	}
}

func TestEccentricTransitCentre(t *testing.T) {
	// T0 marks the transit centre regardless of eccentricity or argument
	// of periastron: an edge-on orbit must reach z ~ 0 at T0.
	for _, el := range []Elements{
		{T0: 5, P: 4.2, A: 12, Inc: math.Pi / 2, Ecc: 0.3, W: 1.0},
		{T0: -1, P: 9.8, A: 20, Inc: math.Pi / 2, Ecc: 0.6, W: -2.3},
	} {
		z, err := ZSeries([]float64{el.T0}, el, 1)
		if err != nil {
			t.Fatal(err)
		}
		if z[0] > 1e-5 {
			t.Errorf("e=%g w=%g: z(T0) = %g, want ~0", el.Ecc, el.W, z[0])
		}
	}
}

func TestEccentricLowEccentricityLimit(t *testing.T) {
	// The general path must collapse to the circular form as e -> 0.
	base := Elements{T0: 0.3, P: 2.7, A: 8, Inc: 1.5, Ecc: 0, W: 0.4}
	small := base
	small.Ecc = 1e-9

	ts := make([]float64, 200)
	for i := range ts {
		ts[i] = base.T0 + base.P*float64(i)/200
	}

	zc, err := ZSeries(ts, base, 2)
	if err != nil {
		t.Fatal(err)
	}
	ze, err := ZSeries(ts, small, 2)
	if err != nil {
		t.Fatal(err)
	}
	for i := range ts {
		if math.Abs(zc[i]-ze[i]) > 1e-6 {
			t.Fatalf("sample %d: circular %g vs e=1e-9 %g", i, zc[i], ze[i])
		}
	}
}

func TestZSeriesHighEccentricity(t *testing.T) {
	el := Elements{T0: 0, P: 3.5, A: 10, Inc: math.Pi / 2, Ecc: 0.999, W: 0.3}
	ts := make([]float64, 5000)
	for i := range ts {
		ts[i] = el.P * float64(i) / 5000
	}

	z, err := ZSeries(ts, el, 4)
	if err != nil {
		t.Fatalf("near-parabolic batch failed: %v", err)
	}
	for i, v := range z {
		if math.IsNaN(v) || v < 0 {
			t.Fatalf("sample %d: z = %g", i, v)
		}
	}
}

func TestZSeriesReportsFailedSamples(t *testing.T) {
	// A non-finite time sample can never satisfy Kepler's equation, so the
	// solver exhausts its cap: the slot must come back NaN and its index
	// must be reported, while the rest of the batch stays valid.
	el := Elements{T0: 0, P: 3.5, A: 10, Inc: math.Pi / 2, Ecc: 0.3, W: 1.0}
	nan := math.NaN()
	ts := []float64{-0.1, nan, 0, 0.1, nan, 0.2}

	z, err := ZSeries(ts, el, 2)

	var cerr *ConvergenceError
	if !errors.As(err, &cerr) {
		t.Fatalf("got %v, want *ConvergenceError", err)
	}
	want := []int{1, 4}
	if len(cerr.Indices) != len(want) || cerr.Indices[0] != want[0] || cerr.Indices[1] != want[1] {
		t.Fatalf("failed indices = %v, want %v", cerr.Indices, want)
	}
	for i := range ts {
		failed := i == 1 || i == 4
		if math.IsNaN(z[i]) != failed {
			t.Errorf("sample %d: z = %g disagrees with the reported indices", i, z[i])
		}
	}
}

func TestZSeriesOrderingAndWorkers(t *testing.T) {
	el := Elements{T0: 0, P: 3.5, A: 10, Inc: math.Pi / 2, Ecc: 0.2, W: 0.5}
	ts := make([]float64, 500)
	for i := range ts {
		ts[i] = float64(i) * 0.01
	}

	z1, err := ZSeries(ts, el, 1)
	if err != nil {
		t.Fatal(err)
	}
	z4, err := ZSeries(ts, el, 4)
	if err != nil {
		t.Fatal(err)
	}
	for i := range z1 {
		if z1[i] != z4[i] {
			t.Fatalf("sample %d: workers=1 gives %g, workers=4 gives %g", i, z1[i], z4[i])
		}
	}
}

func TestZSeriesEmpty(t *testing.T) {
	z, err := ZSeries(nil, Elements{P: 1, A: 5, Inc: 1.5}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(z) != 0 {
		t.Errorf("got %d samples for empty input", len(z))
	}
}

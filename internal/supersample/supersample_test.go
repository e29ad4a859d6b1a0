package supersample

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestIdentityWhenNoSupersampling(t *testing.T) {
	ts := []float64{1, 2, 3}
	flux := []float64{0.99, 0.98, 1.0}

	for _, nss := range []int{0, 1} {
		if got := Expand(ts, nss, 0.02); !cmp.Equal(got, ts) {
			t.Errorf("nss=%d: Expand changed the input: %v", nss, got)
		}
		if got := Reduce(flux, len(flux), nss); !cmp.Equal(got, flux) {
			t.Errorf("nss=%d: Reduce changed the input: %v", nss, got)
		}
	}
}

func TestExpandGeometry(t *testing.T) {
	ts := []float64{10, 20}
	got := Expand(ts, 4, 0.8)
	if len(got) != 8 {
		t.Fatalf("expanded length %d, want 8", len(got))
	}
	// Sub-samples are midpoints of nss equal slices of the exposure.
	want := []float64{9.7, 9.9, 10.1, 10.3, 19.7, 19.9, 20.1, 20.3}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("expanded times mismatch (-want +got):\n%s", diff)
	}
	// Each block averages to the original sample time.
	for j, tc := range ts {
		sum := 0.0
		for s := 0; s < 4; s++ {
			sum += got[j*4+s]
		}
		if math.Abs(sum/4-tc) > 1e-12 {
			t.Errorf("block %d mean %g, want %g", j, sum/4, tc)
		}
	}
}

func TestReduceBlockMeans(t *testing.T) {
	flux := []float64{1, 2, 3, 4, 10, 20, 30, 40}
	got := Reduce(flux, 2, 4)
	want := []float64{2.5, 25}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Reduce mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandReduceRoundTripOnLinearSeries(t *testing.T) {
	// A flux linear in time is invariant under symmetric expansion and
	// block averaging.
	ts := []float64{0, 1, 2, 3}
	sub := Expand(ts, 5, 0.3)
	flux := make([]float64, len(sub))
	for i, x := range sub {
		flux[i] = 2*x + 1
	}
	got := Reduce(flux, len(ts), 5)
	for j, tc := range ts {
		if math.Abs(got[j]-(2*tc+1)) > 1e-12 {
			t.Errorf("observation %d: %g, want %g", j, got[j], 2*tc+1)
		}
	}
}

func TestInterp(t *testing.T) {
	xs := []float64{0, 1, 2, 4}
	ys := []float64{0, 10, 20, 40}

	tests := []struct{ x, want float64 }{
		{-1, 0},   // clamp low
		{0, 0},    // exact knot
		{0.5, 5},  // midpoint
		{3, 30},   // inside wide interval
		{4, 40},   // exact end
		{9, 40},   // clamp high
	}
	for _, tc := range tests {
		if got := interpOne(xs, ys, tc.x); math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("interpOne(%g) = %g, want %g", tc.x, got, tc.want)
		}
	}

	got := Interp(xs, ys, []float64{0.5, 3})
	if diff := cmp.Diff([]float64{5, 30}, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("Interp mismatch (-want +got):\n%s", diff)
	}
}

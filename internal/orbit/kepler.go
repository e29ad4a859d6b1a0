package orbit

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

const (
	// keplerTol is the residual tolerance for the eccentric-anomaly solve.
	keplerTol = 1e-8
	// keplerMaxIter caps the Newton iteration. Exceeding the cap is a hard
	// failure for that sample, never a silent best-effort return.
	keplerMaxIter = 100
)

var errNoConvergence = errors.New("orbit: kepler iteration did not converge")

// ConvergenceError reports the sample indices whose eccentric-anomaly
// solve did not converge within the iteration cap. The remaining samples
// in the batch are still valid; failed slots are set to NaN.
type ConvergenceError struct {
	Indices []int
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("orbit: kepler solver failed to converge for %d of the requested samples (first index %d)", len(e.Indices), e.Indices[0])
}

// Remap replaces each failed index with idx/nss, collapsing supersampled
// sub-exposure indices back to the observation they belong to.
func (e *ConvergenceError) Remap(nss int) *ConvergenceError {
	if nss <= 1 {
		return e
	}
	seen := make(map[int]bool, len(e.Indices))
	out := make([]int, 0, len(e.Indices))
	for _, i := range e.Indices {
		j := i / nss
		if !seen[j] {
			seen[j] = true
			out = append(out, j)
		}
	}
	sort.Ints(out)
	return &ConvergenceError{Indices: out}
}

// eccentricAnomaly solves Kepler's equation M = E - e*sin(E) for E with
// Newton-Raphson. The Danby starter E0 = M + 0.85*e*sign(sin M) keeps
// the iteration out of the flat region near M = 0 where the plain E0 = M
// seed stalls against the cap for near-parabolic orbits.
func eccentricAnomaly(m, e float64) (float64, error) {
	ea := m + math.Copysign(0.85*e, math.Sin(m))
	for i := 0; i < keplerMaxIter; i++ {
		f := ea - e*math.Sin(ea) - m
		if math.Abs(f) < keplerTol {
			return ea, nil
		}
		ea -= f / (1 - e*math.Cos(ea))
	}
	return 0, errNoConvergence
}

// trueAnomaly converts eccentric anomaly to true anomaly.
func trueAnomaly(ea, e float64) float64 {
	return 2 * math.Atan2(math.Sqrt(1+e)*math.Sin(ea/2), math.Sqrt(1-e)*math.Cos(ea/2))
}

// meanAnomalyOffset returns the mean anomaly at the transit centre, where
// the true longitude w+nu equals pi/2. The zero epoch T0 marks the
// transit centre, not periastron passage, so every mean anomaly is offset
// by this amount.
func meanAnomalyOffset(e, w float64) float64 {
	if e == 0 {
		return math.Pi/2 - w
	}
	nu0 := math.Pi/2 - w
	ea0 := 2 * math.Atan2(math.Sqrt(1-e)*math.Sin(nu0/2), math.Sqrt(1+e)*math.Cos(nu0/2))
	return ea0 - e*math.Sin(ea0)
}

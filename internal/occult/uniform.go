// Package occult evaluates the fraction of a limb-darkened stellar disk
// that remains visible while a smaller (or larger) disk occults it. It
// implements the closed-form uniform-disk overlap and the Mandel & Agol
// (2002) quadratic limb-darkening solution, plus a precomputed bilinear
// interpolation table for the quadratic law.
package occult

import (
	"math"

	"github.com/lumen-data/transit.flux/internal/batch"
)

// uniformFlux returns the relative flux from a uniform stellar disk
// occulted by a disk of radius ratio k at projected separation z.
//
// Three regimes: no overlap (z >= 1+k), full coverage of one disk by the
// other, and partial overlap via the lens-area formula. The arccos
// arguments are clamped so boundary rounding never produces NaN.
func uniformFlux(z, k float64) float64 {
	switch {
	case math.IsNaN(z):
		return math.NaN()
	case k <= 0 || z >= 1+k:
		return 1
	case k >= 1 && z <= k-1:
		return 0
	case z <= 1-k:
		return 1 - k*k
	}

	kap1 := math.Acos(clampCos((1 - k*k + z*z) / (2 * z)))
	kap0 := math.Acos(clampCos((k*k + z*z - 1) / (2 * k * z)))
	cross := 1 + z*z - k*k
	lambdae := (k*k*kap0 + kap1 - 0.5*math.Sqrt(math.Max(4*z*z-cross*cross, 0))) / math.Pi
	return 1 - lambdae
}

// clampCos confines an arccos argument to [-1, 1]; boundary rounding can
// push the analytic value just outside.
func clampCos(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

// EvalUniform evaluates the uniform-disk flux for each projected
// separation. Output order matches input order.
func EvalUniform(z []float64, k float64, workers int) []float64 {
	flux := make([]float64, len(z))
	batch.For(len(z), workers, func(lo, hi int) {
		for j := lo; j < hi; j++ {
			flux[j] = uniformFlux(z[j], k)
		}
	})
	return flux
}

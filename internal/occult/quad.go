package occult

import (
	"math"

	"github.com/lumen-data/transit.flux/internal/batch"
)

// boundaryTol is the snapping distance to the contact geometries where
// the general elliptic-integral expressions are singular. Inputs within
// the tolerance are moved onto the boundary and evaluated with the
// limiting expressions instead.
const boundaryTol = 1e-10

// quadTerms returns the Mandel & Agol (2002) decomposition of the
// quadratic-law occultation into the uniform overlap term lambdaE, the
// limb-darkening integral lambdaD, and the quadratic correction etaD.
//
// lambdaD already includes the 2/3 step term applied when the occulting
// disk covers the stellar centre, so the flux for coefficients (u1, u2)
// is
//
//	F = 1 - ((1-u1-2*u2)*lambdaE + (u1+2*u2)*lambdaD + u2*etaD) / omega
//
// with omega = 1 - u1/3 - u2/6. The decomposition is what the
// interpolation table stores per grid node: it is independent of
// (u1, u2), so one table serves every coefficient choice.
func quadTerms(z, k float64) (lambdaE, lambdaD, etaD float64) {
	if math.IsNaN(z) {
		nan := math.NaN()
		return nan, nan, nan
	}
	if k <= 0 || z >= 1+k {
		return 0, 0, 0
	}

	// Snap onto the exact boundary geometries.
	if math.Abs(z-k) < boundaryTol {
		z = k
	}
	if math.Abs(z-(1-k)) < boundaryTol {
		z = 1 - k
	}
	if math.Abs(z-(k-1)) < boundaryTol {
		z = k - 1
	}
	if z < boundaryTol {
		z = 0
	}

	// Star completely covered by the occulting disk.
	if k >= 1 && z <= k-1 {
		return 1, 2.0 / 3.0, 0.5
	}

	x1 := (k - z) * (k - z)
	x2 := (k + z) * (k + z)
	x3 := (k - z) * (k + z)

	// Occulting disk edge at the stellar centre (z == k). The general
	// expressions divide by (k-z)^2 and must be replaced by their limits,
	// with three sub-cases around k = 1/2.
	if z == k {
		switch {
		case k < 0.5:
			q := 2 * k
			lambdaD = 1.0/3.0 + 2/(9*math.Pi)*(4*(2*k*k-1)*ellE(q)+(1-4*k*k)*ellK(q))
			return k * k, lambdaD, 1.5 * k * k * k * k
		case k > 0.5:
			q := 0.5 / k
			lambdaD = 1.0/3.0 + 16*k/(9*math.Pi)*(2*k*k-1)*ellE(q) -
				(32*k*k*k*k-20*k*k+3)/(9*math.Pi*k)*ellK(q)
			lambdaE, etaD = limbCross(z, k, x1, x2)
			return lambdaE, lambdaD, etaD
		default: // k == 1/2
			return 0.25, 1.0/3.0 - 4/(9*math.Pi), 3.0 / 32.0
		}
	}

	// Limb-crossing regime: the occulting disk straddles the stellar edge.
	if z > math.Abs(1-k) {
		lambdaE, etaD = limbCross(z, k, x1, x2)

		q := math.Sqrt((1 - x1) / (4 * k * z))
		n := 1/x1 - 1
		lambdaD = (((1-x2)*(2*x2+x1-3)-3*x3*(x2-2))*ellK(q) +
			4*k*z*(z*z+7*k*k-4)*ellE(q) -
			3*(x3/x1)*ellPi(n, q)) / (9 * math.Pi * math.Sqrt(k*z))
		if z < k {
			lambdaD += 2.0 / 3.0
		}
		return lambdaE, lambdaD, etaD
	}

	// Occulting disk fully inside the stellar disk.
	lambdaE = k * k
	etaD = 0.5 * k * k * (k*k + 2*z*z)

	switch {
	case z == 0:
		lambdaD = (2.0 / 3.0) * (1 - math.Pow(1-k*k, 1.5))
	case z == 1-k:
		// Internal tangency. The step term and the -2/3 step inside the
		// published limiting expression cancel, leaving the bare form for
		// every k.
		lambdaD = (2/(3*math.Pi))*math.Acos(1-2*k) -
			(4/(9*math.Pi))*(3+2*k-8*k*k)*math.Sqrt(k*(1-k))
	default:
		q := math.Sqrt((x2 - x1) / (1 - x1))
		n := x2/x1 - 1
		lambdaD = 2 / (9 * math.Pi * math.Sqrt(1-x1)) *
			((1-5*z*z+k*k+x3*x3)*ellK(q) +
				(1-x1)*(z*z+7*k*k-4)*ellE(q) -
				3*(x3/x1)*ellPi(n, q))
		if z < k {
			lambdaD += 2.0 / 3.0
		}
	}
	return lambdaE, lambdaD, etaD
}

// limbCross returns lambdaE and etaD for the limb-crossing regime.
func limbCross(z, k, x1, x2 float64) (lambdaE, etaD float64) {
	kap1 := math.Acos(clampCos((1 - k*k + z*z) / (2 * z)))
	kap0 := math.Acos(clampCos((k*k + z*z - 1) / (2 * k * z)))
	cross := 1 + z*z - k*k
	lambdaE = (k*k*kap0 + kap1 - 0.5*math.Sqrt(math.Max(4*z*z-cross*cross, 0))) / math.Pi
	etaD = (kap1 + k*k*(k*k+2*z*z)*kap0 -
		0.25*(1+5*k*k+z*z)*math.Sqrt(math.Max((1-x1)*(x2-1), 0))) / (2 * math.Pi)
	return lambdaE, etaD
}

// quadFlux combines the decomposition into a flux for one coefficient
// pair.
func quadFlux(lambdaE, lambdaD, etaD, u1, u2 float64) float64 {
	omega := 1 - u1/3 - u2/6
	return 1 - ((1-u1-2*u2)*lambdaE+(u1+2*u2)*lambdaD+u2*etaD)/omega
}

// EvalQuad evaluates the exact quadratic-law flux for each projected
// separation with coefficients (u1, u2).
func EvalQuad(z []float64, k, u1, u2 float64, workers int) []float64 {
	flux := make([]float64, len(z))
	batch.For(len(z), workers, func(lo, hi int) {
		for j := lo; j < hi; j++ {
			le, ld, ed := quadTerms(z[j], k)
			flux[j] = quadFlux(le, ld, ed, u1, u2)
		}
	})
	return flux
}

// EvalQuadBands evaluates the exact quadratic-law flux for several
// coefficient pairs sharing the same geometry. The decomposition is
// computed once per sample and recombined per band, and the parallel
// split runs over the outer sample index.
func EvalQuadBands(z []float64, k float64, u [][2]float64, workers int) [][]float64 {
	flux := make([][]float64, len(u))
	for b := range flux {
		flux[b] = make([]float64, len(z))
	}
	batch.For(len(z), workers, func(lo, hi int) {
		for j := lo; j < hi; j++ {
			le, ld, ed := quadTerms(z[j], k)
			for b, uu := range u {
				flux[b][j] = quadFlux(le, ld, ed, uu[0], uu[1])
			}
		}
	})
	return flux
}

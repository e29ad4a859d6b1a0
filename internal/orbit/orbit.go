// Package orbit converts orbital elements into sky-projected star-planet
// separations. Separations are normalised to stellar radii and returned
// in input time order; each sample's solve is independent, so the batch
// is a parallel map.
package orbit

import (
	"math"

	"github.com/lumen-data/transit.flux/internal/batch"
)

// Elements are the orbital elements of the occulting body. Times share
// whatever unit the period uses (conventionally days); angles are in
// radians.
type Elements struct {
	T0  float64 // zero epoch: time of transit centre
	P   float64 // orbital period, > 0
	A   float64 // semi-major axis, stellar radii, > 0
	Inc float64 // inclination
	Ecc float64 // eccentricity, in [0, 1)
	W   float64 // argument of periastron
}

// ZSeries computes the projected separation z(t) for every time sample.
//
// For eccentric orbits each sample solves Kepler's equation; samples that
// fail to converge are set to NaN and reported together in a
// *ConvergenceError while the rest of the batch stays valid. Circular
// orbits use the closed form directly and never fail.
func ZSeries(t []float64, el Elements, workers int) ([]float64, error) {
	z := make([]float64, len(t))
	if len(t) == 0 {
		return z, nil
	}

	if el.Ecc == 0 {
		circularZ(t, el, z, workers)
		return z, nil
	}

	m0 := meanAnomalyOffset(el.Ecc, el.W)
	sini := math.Sin(el.Inc)
	semiLatus := el.A * (1 - el.Ecc*el.Ecc)

	failed := make([]bool, len(t))
	batch.For(len(t), workers, func(lo, hi int) {
		for j := lo; j < hi; j++ {
			ma := 2*math.Pi*math.Mod((t[j]-el.T0)/el.P, 1) + m0
			ea, err := eccentricAnomaly(math.Mod(ma, 2*math.Pi), el.Ecc)
			if err != nil {
				z[j] = math.NaN()
				failed[j] = true
				continue
			}
			nu := trueAnomaly(ea, el.Ecc)
			r := semiLatus / (1 + el.Ecc*math.Cos(nu))
			s := math.Sin(el.W+nu) * sini
			z[j] = r * math.Sqrt(1-s*s)
		}
	})

	var idx []int
	for j, f := range failed {
		if f {
			idx = append(idx, j)
		}
	}
	if idx != nil {
		return z, &ConvergenceError{Indices: idx}
	}
	return z, nil
}

// circularZ fills z with the exact circular-orbit form
// z = a*sqrt(1 - cos^2(phi)*sin^2(i)), phi = 2*pi*(t-t0)/p. No solver is
// involved, so e == 0 carries no residual iteration error.
func circularZ(t []float64, el Elements, z []float64, workers int) {
	sini := math.Sin(el.Inc)
	batch.For(len(t), workers, func(lo, hi int) {
		for j := lo; j < hi; j++ {
			c := math.Cos(2 * math.Pi * (t[j] - el.T0) / el.P)
			z[j] = el.A * math.Sqrt(1-c*c*sini*sini)
		}
	})
}

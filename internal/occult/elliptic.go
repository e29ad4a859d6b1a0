package occult

import (
	"math"

	"gonum.org/v1/gonum/mathext"
)

// Complete elliptic integrals in the modulus convention used by the
// occultation formulas (gonum's mathext takes the parameter m = k^2).
// The modulus is clamped just below 1: the piecewise evaluation snaps
// inputs away from the exact contact geometries where k would reach 1,
// so any overshoot here is floating-point noise.

func ellK(k float64) float64 {
	m := k * k
	if m >= 1 {
		m = math.Nextafter(1, 0)
	}
	return mathext.CompleteK(m)
}

func ellE(k float64) float64 {
	m := k * k
	if m >= 1 {
		m = 1
	}
	return mathext.CompleteE(m)
}

// ellPi is the complete elliptic integral of the third kind in the
// Bulirsch cel formulation, with the argument convention the
// occultation formulas use (callers pass n such that the characteristic
// is -n). gonum's mathext has no complete third-kind integral, so this
// is carried locally.
func ellPi(n, k float64) float64 {
	kc := math.Sqrt(1 - k*k)
	p := math.Sqrt(n + 1)
	m0, c, d, e := 1.0, 1.0, 1/p, kc

	for i := 0; i < 100; i++ {
		f := c
		c = d/p + c
		g := e / p
		d = 2 * (f*g + d)
		p = g + p
		g = m0
		m0 = kc + m0
		if math.Abs(1-kc/g) > 1e-8 {
			kc = 2 * math.Sqrt(e)
			e = kc * m0
			continue
		}
		return 0.5 * math.Pi * (c*m0 + d) / (m0 * (m0 + p))
	}
	return 0.5 * math.Pi * (c*m0 + d) / (m0 * (m0 + p))
}

// Package supersample maps exposure-time integration onto sub-exposure
// evaluation: each observation expands into nss instantaneous samples
// spread across the exposure window, and the evaluated fluxes reduce
// back to one block mean per observation, preserving input order.
package supersample

// Expand returns the sub-exposure times for each observation: nss
// midpoint samples uniformly spaced across [t-exptime/2, t+exptime/2].
// For nss <= 1 the input is returned unchanged.
func Expand(t []float64, nss int, exptime float64) []float64 {
	if nss <= 1 {
		return t
	}
	out := make([]float64, 0, len(t)*nss)
	for _, tc := range t {
		for s := 0; s < nss; s++ {
			off := exptime * ((float64(s)+0.5)/float64(nss) - 0.5)
			out = append(out, tc+off)
		}
	}
	return out
}

// Reduce collapses every contiguous block of nss sub-exposure fluxes to
// its arithmetic mean, yielding npt observed values in original order.
// For nss <= 1 the input is returned unchanged.
func Reduce(flux []float64, npt, nss int) []float64 {
	if nss <= 1 {
		return flux
	}
	out := make([]float64, npt)
	inv := 1 / float64(nss)
	for j := 0; j < npt; j++ {
		sum := 0.0
		for s := 0; s < nss; s++ {
			sum += flux[j*nss+s]
		}
		out[j] = sum * inv
	}
	return out
}

// Interp linearly interpolates the series (xs, ys) at each query point.
// xs must be non-decreasing; queries outside the range clamp to the end
// values. It backs the cheap supersampling path where the projected
// separation is interpolated across sub-exposures instead of re-solving
// the orbit for each one.
func Interp(xs, ys, xq []float64) []float64 {
	out := make([]float64, len(xq))
	for i, x := range xq {
		out[i] = interpOne(xs, ys, x)
	}
	return out
}

func interpOne(xs, ys []float64, x float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	if x <= xs[0] {
		return ys[0]
	}
	if x >= xs[n-1] {
		return ys[n-1]
	}
	// Binary search for the bracketing interval.
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if xs[mid] <= x {
			lo = mid
		} else {
			hi = mid
		}
	}
	if xs[hi] == xs[lo] {
		return ys[lo]
	}
	w := (x - xs[lo]) / (xs[hi] - xs[lo])
	return ys[lo] + w*(ys[hi]-ys[lo])
}

// Package transit computes the fraction of a star's flux blocked by a
// transiting body as a function of time, for light-curve-fitting
// pipelines that evaluate the model millions of times during parameter
// search.
//
// A Model converts orbital elements into sky-projected separations,
// evaluates the exact analytic occultation flux for a uniform or
// quadratic limb-darkening law, and optionally serves the quadratic law
// from a precomputed bilinear interpolation table for fast repeated
// evaluation. Exposure-time supersampling averages several sub-exposure
// evaluations into each observed sample, and a contamination factor
// dilutes the result with third light.
//
// Basic use:
//
//	m, err := transit.New()
//	flux, err := m.EvaluateZ(z, 0.1, [2]float64{0.3, 0.2}, 0, true)
//
// Interpolated evaluation with table reuse across calls:
//
//	m, err := transit.New(transit.WithInterpolation())
//	f1, err := m.EvaluateZ(z1, k, u, 0, true)  // builds the table
//	f2, err := m.EvaluateZ(z2, k, u, 0, false) // reuses it
package transit

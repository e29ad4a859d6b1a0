package transit

import (
	"errors"

	"github.com/lumen-data/transit.flux/internal/orbit"
)

var (
	// ErrUnsupportedLimbDarkening is returned by New when the requested
	// limb-darkening law is neither Uniform nor Quadratic.
	ErrUnsupportedLimbDarkening = errors.New("transit: only the uniform and quadratic limb-darkening laws are supported")

	// ErrNoTable is returned when interpolated evaluation is requested
	// with update=false and no table has been built yet.
	ErrNoTable = errors.New("transit: no interpolation table built")

	// ErrStaleTable is returned when interpolated evaluation is requested
	// with update=false against a table built for different parameters.
	ErrStaleTable = errors.New("transit: interpolation table parameters out of date")
)

// ConvergenceError reports which sample indices failed the Kepler solve.
// The returned flux series is still valid at every other index; failed
// slots are NaN.
type ConvergenceError = orbit.ConvergenceError

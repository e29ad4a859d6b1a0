package transit

import (
	"errors"
	"fmt"
	"sync"

	"github.com/lumen-data/transit.flux/internal/occult"
	"github.com/lumen-data/transit.flux/internal/orbit"
	"github.com/lumen-data/transit.flux/internal/supersample"
)

// Elements are the orbital elements accepted by EvaluateOrbit.
type Elements = orbit.Elements

// Model is a transit light-curve model. The limb-darkening law and
// evaluation configuration are fixed at construction; every evaluation
// call supplies its own geometry and coefficients.
//
// A Model owns at most one interpolation table. The table is built on
// demand, treated as read-only by all evaluations, and replaced
// wholesale on rebuild, so concurrent evaluators never observe a
// half-built table.
type Model struct {
	cfg settings

	mu    sync.Mutex // guards cfg table parameters and the table swap
	table *occult.Table
}

// New constructs a Model. Configuration errors are fatal here, never
// deferred to evaluation time.
func New(opts ...Option) (*Model, error) {
	cfg := defaultSettings()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.law != Uniform && cfg.law != Quadratic {
		return nil, ErrUnsupportedLimbDarkening
	}
	if cfg.nss < 1 {
		cfg.nss = 1
	}
	if cfg.nss > 1 && cfg.exptime <= 0 {
		return nil, fmt.Errorf("transit: supersampling requires a positive exposure time, got %g", cfg.exptime)
	}
	if cfg.kmin <= 0 || cfg.kmin >= cfg.kmax {
		return nil, fmt.Errorf("transit: invalid radius-ratio range [%g, %g]", cfg.kmin, cfg.kmax)
	}
	if cfg.nk < 2 || cfg.nz < 2 {
		return nil, fmt.Errorf("transit: table resolution %dx%d too small", cfg.nk, cfg.nz)
	}

	return &Model{cfg: cfg}, nil
}

// SetTableRange changes the interpolation table's radius-ratio coverage
// and resolution. The current table becomes stale: the next interpolated
// evaluation must pass update=true to rebuild, or it fails with
// ErrStaleTable.
func (m *Model) SetTableRange(kmin, kmax float64, nk, nz int) error {
	if kmin <= 0 || kmin >= kmax {
		return fmt.Errorf("transit: invalid radius-ratio range [%g, %g]", kmin, kmax)
	}
	if nk < 2 || nz < 2 {
		return fmt.Errorf("transit: table resolution %dx%d too small", nk, nz)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg.kmin, m.cfg.kmax = kmin, kmax
	m.cfg.nk, m.cfg.nz = nk, nz
	return nil
}

// ensureTable returns a table consistent with the configured parameters,
// rebuilding when allowed. The swap is wholesale: evaluations running
// against the previous table keep using it untouched.
func (m *Model) ensureTable(update bool) (*occult.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.table.Matches(m.cfg.kmin, m.cfg.kmax, m.cfg.nk, m.cfg.nz) {
		return m.table, nil
	}
	if !update {
		if m.table == nil {
			return nil, ErrNoTable
		}
		return nil, ErrStaleTable
	}
	m.table = occult.BuildTable(m.cfg.kmin, m.cfg.kmax, m.cfg.nk, m.cfg.nz, m.cfg.threads)
	return m.table, nil
}

// EvaluateZ evaluates the model for precomputed projected separations.
// u is ignored by the uniform law. update controls interpolation-table
// reuse as described on Model.
func (m *Model) EvaluateZ(z []float64, k float64, u [2]float64, contamination float64, update bool) ([]float64, error) {
	flux, err := m.evalFlux(z, k, u, update)
	if err != nil {
		return nil, err
	}
	contaminate(flux, contamination)
	return flux, nil
}

// EvaluateZBands evaluates one flux series per limb-darkening
// coefficient pair, sharing the geometry across bands.
func (m *Model) EvaluateZBands(z []float64, k float64, u [][2]float64, contamination float64, update bool) ([][]float64, error) {
	flux, err := m.evalFluxBands(z, k, u, update)
	if err != nil {
		return nil, err
	}
	for _, band := range flux {
		contaminate(band, contamination)
	}
	return flux, nil
}

// EvaluateOrbit evaluates the full pipeline: orbital elements to
// projected separations to observed flux, applying supersampling when
// configured. With lerpZ the orbit is solved only at the original sample
// times and separations are linearly interpolated across sub-exposures,
// which requires time-ordered input.
//
// If some samples fail the Kepler solve, the returned flux is still
// valid everywhere else and the error is a *ConvergenceError naming the
// failed observation indices.
func (m *Model) EvaluateOrbit(t []float64, k float64, u [2]float64, el Elements, contamination float64, update, lerpZ bool) ([]float64, error) {
	z, kerr := m.zForTimes(t, el, lerpZ)
	flux, err := m.evalFlux(z, k, u, update)
	if err != nil {
		return nil, err
	}
	flux = supersample.Reduce(flux, len(t), m.cfg.nss)
	contaminate(flux, contamination)
	if kerr != nil {
		return flux, kerr
	}
	return flux, nil
}

// EvaluateOrbitBands is the multi-band variant of EvaluateOrbit.
func (m *Model) EvaluateOrbitBands(t []float64, k float64, u [][2]float64, el Elements, contamination float64, update, lerpZ bool) ([][]float64, error) {
	z, kerr := m.zForTimes(t, el, lerpZ)
	flux, err := m.evalFluxBands(z, k, u, update)
	if err != nil {
		return nil, err
	}
	for b := range flux {
		flux[b] = supersample.Reduce(flux[b], len(t), m.cfg.nss)
		contaminate(flux[b], contamination)
	}
	if kerr != nil {
		return flux, kerr
	}
	return flux, nil
}

// TableStats reports interpolation activity for the current table.
type TableStats struct {
	Interpolated int64 // samples served from the table
	Fallbacks    int64 // out-of-range samples routed to the exact path
}

// TableStats returns counters for the current interpolation table, or
// zeros when no table has been built.
func (m *Model) TableStats() TableStats {
	m.mu.Lock()
	tab := m.table
	m.mu.Unlock()
	if tab == nil {
		return TableStats{}
	}
	st := tab.Stats()
	return TableStats{Interpolated: st.Interpolated, Fallbacks: st.Fallbacks}
}

func (m *Model) evalFlux(z []float64, k float64, u [2]float64, update bool) ([]float64, error) {
	if m.cfg.law == Uniform {
		return occult.EvalUniform(z, k, m.cfg.threads), nil
	}
	if !m.cfg.interpolate {
		return occult.EvalQuad(z, k, u[0], u[1], m.cfg.threads), nil
	}
	tab, err := m.ensureTable(update)
	if err != nil {
		return nil, err
	}
	return tab.EvalQuad(z, k, u[0], u[1], m.cfg.threads), nil
}

func (m *Model) evalFluxBands(z []float64, k float64, u [][2]float64, update bool) ([][]float64, error) {
	if m.cfg.law == Uniform {
		flux := make([][]float64, len(u))
		for b := range flux {
			flux[b] = occult.EvalUniform(z, k, m.cfg.threads)
		}
		return flux, nil
	}
	if !m.cfg.interpolate {
		return occult.EvalQuadBands(z, k, u, m.cfg.threads), nil
	}
	tab, err := m.ensureTable(update)
	if err != nil {
		return nil, err
	}
	return tab.EvalQuadBands(z, k, u, m.cfg.threads), nil
}

// zForTimes produces the separation series for the (possibly
// supersampled) time samples. The returned error, if any, is a
// *ConvergenceError whose indices refer to original observations.
func (m *Model) zForTimes(t []float64, el Elements, lerpZ bool) ([]float64, *ConvergenceError) {
	nss := m.cfg.nss
	if nss <= 1 {
		z, err := orbit.ZSeries(t, el, m.cfg.threads)
		return z, asConvergence(err)
	}

	texp := supersample.Expand(t, nss, m.cfg.exptime)
	if lerpZ {
		zorig, err := orbit.ZSeries(t, el, m.cfg.threads)
		return supersample.Interp(t, zorig, texp), asConvergence(err)
	}
	z, err := orbit.ZSeries(texp, el, m.cfg.threads)
	if cerr := asConvergence(err); cerr != nil {
		return z, cerr.Remap(nss)
	}
	return z, nil
}

func asConvergence(err error) *ConvergenceError {
	if err == nil {
		return nil
	}
	var cerr *ConvergenceError
	if errors.As(err, &cerr) {
		return cerr
	}
	return nil
}

// contaminate dilutes the flux in place with a fraction c of third
// light: F -> c + (1-c)*F.
func contaminate(flux []float64, c float64) {
	if c == 0 {
		return
	}
	for i, f := range flux {
		flux[i] = c + (1-c)*f
	}
}

package transit

// LimbDarkening selects the stellar surface-brightness law. The set of
// laws is closed: each carries materially different closed-form math, so
// the law is dispatched once at construction rather than per call.
type LimbDarkening int

const (
	// Uniform models a disk of constant surface brightness.
	Uniform LimbDarkening = iota
	// Quadratic models I(r) = 1 - u1*(1-mu) - u2*(1-mu)^2.
	Quadratic
)

func (l LimbDarkening) String() string {
	switch l {
	case Uniform:
		return "uniform"
	case Quadratic:
		return "quadratic"
	default:
		return "unknown"
	}
}

// DefaultExposureTime is the exposure duration used when supersampling
// is enabled without an explicit value: the Kepler long-cadence
// integration time in days.
const DefaultExposureTime = 0.020433598

type settings struct {
	law         LimbDarkening
	threads     int
	interpolate bool
	nss         int
	exptime     float64
	kmin, kmax  float64
	nk, nz      int
}

func defaultSettings() settings {
	return settings{
		law:     Quadratic,
		threads: 0,
		nss:     1,
		exptime: DefaultExposureTime,
		kmin:    0.07,
		kmax:    0.13,
		nk:      128,
		nz:      256,
	}
}

// Option configures a Model at construction.
type Option func(*settings)

// WithLaw selects the limb-darkening law.
func WithLaw(l LimbDarkening) Option {
	return func(s *settings) { s.law = l }
}

// WithThreads sets the worker count for batch evaluation; 0 uses all
// available hardware threads.
func WithThreads(n int) Option {
	return func(s *settings) { s.threads = n }
}

// WithInterpolation enables the precomputed-table evaluation path for
// the quadratic law. The uniform law always evaluates exactly.
func WithInterpolation() Option {
	return func(s *settings) { s.interpolate = true }
}

// WithSupersampling averages nss sub-exposures spread across exptime
// into each observed sample. nss <= 1 disables supersampling.
func WithSupersampling(nss int, exptime float64) Option {
	return func(s *settings) {
		s.nss = nss
		s.exptime = exptime
	}
}

// WithKRange sets the radius-ratio coverage of the interpolation table.
func WithKRange(kmin, kmax float64) Option {
	return func(s *settings) {
		s.kmin = kmin
		s.kmax = kmax
	}
}

// WithTableResolution sets the interpolation grid size: nk radius-ratio
// knots by nz separation knots.
func WithTableResolution(nk, nz int) Option {
	return func(s *settings) {
		s.nk = nk
		s.nz = nz
	}
}

package occult

import (
	"math"

	"github.com/google/uuid"

	"github.com/lumen-data/transit.flux/internal/batch"
)

// tableOversample controls how many exact evaluations are averaged into
// each grid node along z. The averaging smooths the contact-point kinks
// that a bilinear surface would otherwise straddle badly.
const tableOversample = 4

// Table holds the precomputed quadratic-law decomposition on an
// nk x nz grid over k in [KMin, KMax] and z in [0, 1+KMax]. The grids
// store the (u1, u2)-independent terms, so one table serves every
// coefficient choice. A Table is immutable after Build; rebuilding
// replaces it wholesale, and the ID stamp identifies each generation.
type Table struct {
	ID         uuid.UUID
	KMin, KMax float64
	NK, NZ     int

	Kt, Zt []float64 // knot coordinates, uniformly spaced

	// Component grids indexed [ik][iz]: uniform overlap term, darkening
	// integral (step term included), and quadratic correction.
	Le, Ld, Ed [][]float64

	dk, dz float64

	stats Stats
}

// BuildTable precomputes the interpolation grids with nk radius-ratio
// knots and nz separation knots; fewer than two knots on an axis leaves
// no cell to interpolate in, so such resolutions are raised to two. Cost
// is O(nk*nz) exact evaluations, amortised over all subsequent bilinear
// lookups.
func BuildTable(kmin, kmax float64, nk, nz int, workers int) *Table {
	if nk < 2 {
		nk = 2
	}
	if nz < 2 {
		nz = 2
	}
	t := &Table{
		ID:   uuid.New(),
		KMin: kmin,
		KMax: kmax,
		NK:   nk,
		NZ:   nz,
		Kt:   make([]float64, nk),
		Zt:   make([]float64, nz),
		Le:   make([][]float64, nk),
		Ld:   make([][]float64, nk),
		Ed:   make([][]float64, nk),
	}

	zmax := 1 + kmax
	t.dk = (kmax - kmin) / float64(nk-1)
	t.dz = zmax / float64(nz-1)
	for ik := range t.Kt {
		t.Kt[ik] = kmin + float64(ik)*t.dk
	}
	for iz := range t.Zt {
		t.Zt[iz] = float64(iz) * t.dz
	}

	batch.For(nk, workers, func(lo, hi int) {
		for ik := lo; ik < hi; ik++ {
			k := t.Kt[ik]
			le := make([]float64, nz)
			ld := make([]float64, nz)
			ed := make([]float64, nz)
			for iz := 0; iz < nz; iz++ {
				le[iz], ld[iz], ed[iz] = nodeTerms(t.Zt[iz], k, t.dz)
			}
			t.Le[ik], t.Ld[ik], t.Ed[ik] = le, ld, ed
		}
	})
	return t
}

// nodeTerms fills one grid node with the mean of tableOversample exact
// evaluations spread across the half-cell around the knot in z.
func nodeTerms(z, k, dz float64) (le, ld, ed float64) {
	for s := 0; s < tableOversample; s++ {
		off := dz * ((float64(s)+0.5)/tableOversample - 0.5)
		l, d, e := quadTerms(math.Abs(z+off), k)
		le += l
		ld += d
		ed += e
	}
	inv := 1.0 / tableOversample
	return le * inv, ld * inv, ed * inv
}

// ZMax is the largest separation the table covers; flux is trivially 1
// beyond it.
func (t *Table) ZMax() float64 { return 1 + t.KMax }

// Matches reports whether the table was built from exactly these
// parameters. A mismatch means the table is stale and must be rebuilt
// before interpolated evaluation.
func (t *Table) Matches(kmin, kmax float64, nk, nz int) bool {
	return t != nil && t.KMin == kmin && t.KMax == kmax && t.NK == nk && t.NZ == nz
}

// Stats returns a snapshot of the table's evaluation counters.
func (t *Table) Stats() StatsSnapshot { return t.stats.snapshot() }

package occult

import (
	"math"

	"github.com/lumen-data/transit.flux/internal/batch"
)

// cell locates the grid cell enclosing (k, z) and returns the bilinear
// weights. Knots are uniformly spaced, so lookup is index arithmetic
// rather than binary search. ok is false when (k, z) falls outside the
// table; callers must fall back to the exact evaluator there, never
// extrapolate.
func (t *Table) cell(z, k float64) (ik, iz int, wk, wz float64, ok bool) {
	if k < t.KMin || k > t.KMax || z < 0 || z > t.ZMax() || math.IsNaN(z) {
		return 0, 0, 0, 0, false
	}
	fk := (k - t.KMin) / t.dk
	fz := z / t.dz
	ik = int(fk)
	iz = int(fz)
	if ik > t.NK-2 {
		ik = t.NK - 2
	}
	if iz > t.NZ-2 {
		iz = t.NZ - 2
	}
	return ik, iz, fk - float64(ik), fz - float64(iz), true
}

// interpTerms bilinearly blends the three component grids at (k, z).
func (t *Table) interpTerms(ik, iz int, wk, wz float64) (le, ld, ed float64) {
	w00 := (1 - wk) * (1 - wz)
	w01 := (1 - wk) * wz
	w10 := wk * (1 - wz)
	w11 := wk * wz
	le = w00*t.Le[ik][iz] + w01*t.Le[ik][iz+1] + w10*t.Le[ik+1][iz] + w11*t.Le[ik+1][iz+1]
	ld = w00*t.Ld[ik][iz] + w01*t.Ld[ik][iz+1] + w10*t.Ld[ik+1][iz] + w11*t.Ld[ik+1][iz+1]
	ed = w00*t.Ed[ik][iz] + w01*t.Ed[ik][iz+1] + w10*t.Ed[ik+1][iz] + w11*t.Ed[ik+1][iz+1]
	return le, ld, ed
}

// EvalQuad evaluates the quadratic-law flux through the table. Samples
// outside the table's (k, z) coverage silently use the exact evaluator;
// the table itself is read-only and shared across workers without
// locking.
func (t *Table) EvalQuad(z []float64, k, u1, u2 float64, workers int) []float64 {
	flux := make([]float64, len(z))
	batch.For(len(z), workers, func(lo, hi int) {
		var interp, fell int64
		for j := lo; j < hi; j++ {
			ik, iz, wk, wz, ok := t.cell(z[j], k)
			if !ok {
				le, ld, ed := quadTerms(z[j], k)
				flux[j] = quadFlux(le, ld, ed, u1, u2)
				fell++
				continue
			}
			le, ld, ed := t.interpTerms(ik, iz, wk, wz)
			flux[j] = quadFlux(le, ld, ed, u1, u2)
			interp++
		}
		t.stats.interpolated.Add(interp)
		t.stats.fallbacks.Add(fell)
	})
	return flux
}

// EvalQuadBands is the multi-band variant of EvalQuad: the blended
// decomposition is computed once per sample and recombined per band.
func (t *Table) EvalQuadBands(z []float64, k float64, u [][2]float64, workers int) [][]float64 {
	flux := make([][]float64, len(u))
	for b := range flux {
		flux[b] = make([]float64, len(z))
	}
	batch.For(len(z), workers, func(lo, hi int) {
		var interp, fell int64
		for j := lo; j < hi; j++ {
			var le, ld, ed float64
			if ik, iz, wk, wz, ok := t.cell(z[j], k); ok {
				le, ld, ed = t.interpTerms(ik, iz, wk, wz)
				interp++
			} else {
				le, ld, ed = quadTerms(z[j], k)
				fell++
			}
			for b, uu := range u {
				flux[b][j] = quadFlux(le, ld, ed, uu[0], uu[1])
			}
		}
		t.stats.interpolated.Add(interp)
		t.stats.fallbacks.Add(fell)
	})
	return flux
}

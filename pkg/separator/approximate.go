package separator

import (
	"math"

	"github.com/arborcad/csgkit/pkg/geom2"
)

// Approximate returns a sequence of radius values between r1 and r2
// suitable for polygonal approximation of the separator within tol
// (spec.md §4.2). Straight separators need only their endpoints; the
// parabolic separator is subdivided via geom2.ApproxParabola.
func (s Separator) Approximate(r1, r2, tol float64) []float64 {
	if s.Kind != ParabolaArc {
		return []float64{r1, r2}
	}

	tlen := s.Tangent.Len()
	if tlen == 0 {
		return []float64{r1, r2}
	}
	toX := func(r float64) float64 {
		d := r - s.Rmin
		if d < 0 {
			d = 0
		}
		return tlen * math.Sqrt(d)
	}
	x1, x2 := toX(r1), toX(r2)
	a := 2 * s.Rmin
	if a == 0 {
		return []float64{r1, r2}
	}
	xs := geom2.ApproxParabola(a, x1, x2, tol)

	rs := make([]float64, len(xs))
	for i, x := range xs {
		rs[i] = s.Rmin + (x*x)/(tlen*tlen)
	}
	return rs
}

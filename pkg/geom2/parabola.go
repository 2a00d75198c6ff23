package geom2

import "math"

// parabolaY evaluates y = a/2 + x²/(2a) for the canonical parabola used by
// the point/segment separator (spec.md §4.1, `approxparabola`).
func parabolaY(a, x float64) float64 {
	return a/2 + x*x/(2*a)
}

// sagitta returns the vertical distance from the midpoint of the chord
// (x0,y0)-(x1,y1) to the true curve point at the chord's midpoint abscissa,
// for the canonical parabola with focal parameter a.
func sagitta(a, x0, x1 float64) float64 {
	xm := (x0 + x1) / 2
	y0, y1 := parabolaY(a, x0), parabolaY(a, x1)
	ym := (y0 + y1) / 2
	return math.Abs(parabolaY(a, xm) - ym)
}

// maxSubdivisions bounds the recursion depth of ApproxParabola as a
// liveness guard; at depth 64 the interval width is below any representable
// tolerance anyway.
const maxSubdivisions = 64

// ApproxParabola returns the abscissas subdividing the parabola
// y = a/2 + x²/(2a) on [x1,x2] such that the Hausdorff distance between the
// resulting polyline and the true curve is below delta (spec.md §4.1).
// The returned slice always starts at x1 and ends at x2, in order.
func ApproxParabola(a, x1, x2, delta float64) []float64 {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if x1 == x2 {
		return []float64{x1}
	}
	pts := []float64{x1}
	subdivide(a, x1, x2, delta, 0, &pts)
	return pts
}

// subdivide appends x2 (and any abscissas in between) to pts, recursively
// bisecting while the chord's sagitta exceeds delta.
func subdivide(a, x0, x1, delta float64, depth int, pts *[]float64) {
	if depth >= maxSubdivisions || sagitta(a, x0, x1) <= delta {
		*pts = append(*pts, x1)
		return
	}
	xm := (x0 + x1) / 2
	subdivide(a, x0, xm, delta, depth+1, pts)
	subdivide(a, xm, x1, delta, depth+1, pts)
}

// MinQuadratic returns the minimum of a·x²+2b·x+c on [x1,x2]
// (spec.md §4.1, `min_quadratic`).
func MinQuadratic(coef [3]float64, interval [2]float64) float64 {
	a, b, c := coef[0], coef[1], coef[2]
	x1, x2 := interval[0], interval[1]
	eval := func(x float64) float64 { return a*x*x + 2*b*x + c }
	best := math.Min(eval(x1), eval(x2))
	if a > 0 {
		// Vertex of the upward parabola at x* = -b/a.
		xs := -b / a
		if xs > x1 && xs < x2 {
			best = math.Min(best, eval(xs))
		}
	}
	return best
}

// QuarticFunc evaluates a quartic polynomial and its derivative at x.
// MinQuartic does not take one; it takes f and its derivative as two
// separate functions.
type QuarticFunc func(x float64) (value, derivative float64)

// MinQuartic returns the minimum of f on [x1,x2] by bounded Newton descent
// from the interval midpoint (spec.md §4.1, `min_quartic`). The search
// stops early if a step would leave the interval; the result is the least
// of f at the last iterate and at the two endpoints.
func MinQuartic(f func(x float64) float64, df func(x float64) float64, interval [2]float64) float64 {
	x1, x2 := interval[0], interval[1]
	x := (x1 + x2) / 2
	const iterations = 50
	for i := 0; i < iterations; i++ {
		d := df(x)
		if d == 0 {
			break
		}
		// Second derivative by central difference, for a Newton step on f'.
		const h = 1e-6
		d2 := (df(x+h) - df(x-h)) / (2 * h)
		if d2 == 0 {
			break
		}
		next := x - d/d2
		if next < x1 || next > x2 || math.IsNaN(next) {
			break
		}
		if math.Abs(next-x) < 1e-14 {
			x = next
			break
		}
		x = next
	}
	best := x
	if f(x1) < f(best) {
		best = x1
	}
	if f(x2) < f(best) {
		best = x2
	}
	return f(best)
}

// Package tripoint solves for the point equidistant from three sites —
// the Voronoi vertex a triangulation cell collapses to once its three
// surrounding sites are known (spec.md §3, "Tripoint"). Sites may be
// points or segments, giving the four combinations ppp, lpp, llp, lll
// (point/line counts). Every combination reduces to intersecting two of
// the three pairwise bisectors as plane curves — line∩line is the usual
// two-line intersection, line∩parabola is a quadratic — and validating
// the result against the third site's distance, rather than to a
// numerical iteration with no closed-form existence criterion.
package tripoint

import (
	"math"

	"github.com/arborcad/csgkit/pkg/geom2"
	"github.com/arborcad/csgkit/pkg/separator"
)

// SiteKind tags whether a Site is a point or a line segment.
type SiteKind int

const (
	PointSite SiteKind = iota
	SegmentSite
)

// Site is a Voronoi site: either a point (A used, B ignored) or a segment
// (A, B its endpoints).
type Site struct {
	Kind SiteKind
	A, B geom2.Vec
}

// NewPointSite builds a point site.
func NewPointSite(p geom2.Vec) Site { return Site{Kind: PointSite, A: p} }

// NewSegmentSite builds a segment site.
func NewSegmentSite(a, b geom2.Vec) Site { return Site{Kind: SegmentSite, A: a, B: b} }

// dist returns the distance from p to the site.
func (s Site) dist(p geom2.Vec) float64 {
	if s.Kind == PointSite {
		return geom2.Dist(p, s.A)
	}
	return math.Sqrt(geom2.SegDistance2(s.A, s.B, p))
}

// ref returns a representative point for the site: itself if a point, its
// midpoint if a segment. Used for the orientation guard and for scaling
// the existence tolerance.
func (s Site) ref() geom2.Vec {
	if s.Kind == PointSite {
		return s.A
	}
	return s.A.Add(s.B).Scale(0.5)
}

// separatorOf builds the pairwise separator between two sites, dispatching
// on the ppp/lpp/llp/lll combination (spec.md §3).
func separatorOf(a, b Site) (separator.Separator, error) {
	switch {
	case a.Kind == PointSite && b.Kind == PointSite:
		return separator.NewPointPoint(a.A, b.A), nil
	case a.Kind == SegmentSite && b.Kind == PointSite:
		return separator.NewSegmentPoint(a.A, a.B, b.A)
	case a.Kind == PointSite && b.Kind == SegmentSite:
		s, err := separator.NewSegmentPoint(b.A, b.B, a.A)
		if err != nil {
			return separator.Separator{}, err
		}
		return s.Reverse(), nil
	default:
		return separator.NewSegmentSegment(a.A, a.B, b.A, b.B)
	}
}

// PairSeparator builds the pairwise bisector between two sites, dispatching
// on the ppp/lpp/llp/lll combination. Exported for callers (pkg/voronoi's
// offset walker) that need a site pair's separator without a full
// three-site Solve.
func PairSeparator(a, b Site) (separator.Separator, error) { return separatorOf(a, b) }

// Dist exposes Site's distance function for callers outside the package.
func (s Site) Dist(p geom2.Vec) float64 { return s.dist(p) }

// Ref exposes Site's representative point for callers outside the package.
func (s Site) Ref() geom2.Vec { return s.ref() }

// line is a pairwise bisector's locus when it is straight: the point set
// {P + t*D : t ∈ ℝ}.
type line struct{ P, D geom2.Vec }

// parabolaSpec is a pairwise bisector's locus when it is curved: the set of
// points equidistant from Focus and the infinite line through LA, LB.
type parabolaSpec struct{ Focus, LA, LB geom2.Vec }

// bisector is the geometric locus of a pairwise separator, reduced to
// plane-curve primitives intersect can work with directly: one or two
// lines (PointPoint, DegenerateLine, ParallelBisector, HalfLinePair all
// reduce to this), or one parabola (ParabolaArc).
type bisector struct {
	isParabola bool
	lines      []line
	parabola   parabolaSpec
}

// pairBisector builds the locus of points equidistant from a and b,
// reusing separator's construction for error detection (crossing segments,
// a point strictly inside a segment, the rare collinear-rays case) and for
// telling a true parabola apart from its degenerate line case.
func pairBisector(a, b Site) (bisector, error) {
	switch {
	case a.Kind == PointSite && b.Kind == PointSite:
		sep := separator.NewPointPoint(a.A, b.A)
		return bisector{lines: []line{{P: sep.Origin, D: sep.Tangent}}}, nil

	case a.Kind == SegmentSite && b.Kind == PointSite:
		sep, err := separator.NewSegmentPoint(a.A, a.B, b.A)
		if err != nil {
			return bisector{}, err
		}
		if sep.Kind == separator.DegenerateLine {
			return bisector{lines: []line{{P: sep.Origin, D: sep.Tangent}}}, nil
		}
		return bisector{isParabola: true, parabola: parabolaSpec{Focus: b.A, LA: a.A, LB: a.B}}, nil

	case a.Kind == PointSite && b.Kind == SegmentSite:
		return pairBisector(b, a)

	default:
		sep, err := separator.NewSegmentSegment(a.A, a.B, b.A, b.B)
		if err != nil {
			return bisector{}, err
		}
		if sep.Kind == separator.ParallelBisector {
			return bisector{lines: []line{{P: sep.Origin, D: sep.Tangent}}}, nil
		}
		return bisector{lines: []line{
			{P: sep.Origin, D: sep.Tangent},
			{P: sep.Origin, D: sep.Normal},
		}}, nil
	}
}

// parabolaValue is zero exactly on pb's locus: |p-Focus|² - distanceToLine².
func parabolaValue(pb parabolaSpec, p geom2.Vec) float64 {
	dir := pb.LB.Sub(pb.LA)
	dirLen := dir.Len()
	if dirLen == 0 {
		return p.Sub(pb.Focus).Len2()
	}
	signedDist := geom2.Det2(dir, p.Sub(pb.LA)) / dirLen
	return p.Sub(pb.Focus).Len2() - signedDist*signedDist
}

// lineLine intersects two lines, reporting false if they are parallel.
func lineLine(l1, l2 line) (geom2.Vec, bool) {
	p, err := geom2.LineInter(l1.P, l1.P.Add(l1.D), l2.P, l2.P.Add(l2.D))
	if err != nil {
		return geom2.Vec{}, false
	}
	return p, true
}

// lineParabola intersects a line with a parabola. parabolaValue restricted
// to the line is an exact quadratic in the line's parameter t, so its
// coefficients are recovered exactly from three samples (finite-difference
// interpolation of a function known a priori to have degree ≤ 2), and the
// intersection follows from the quadratic formula — no iteration.
func lineParabola(l line, pb parabolaSpec) []geom2.Vec {
	f := func(t float64) float64 { return parabolaValue(pb, l.P.Add(l.D.Scale(t))) }
	f0, f1, fm1 := f(0), f(1), f(-1)
	a := (f1+fm1)/2 - f0
	b := (f1 - fm1) / 2
	c := f0

	var ts []float64
	switch {
	case math.Abs(a) < 1e-15:
		if math.Abs(b) < 1e-15 {
			return nil
		}
		ts = []float64{-c / b}
	default:
		disc := b*b - 4*a*c
		if disc < 0 {
			return nil
		}
		sq := math.Sqrt(disc)
		ts = []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
	}
	pts := make([]geom2.Vec, len(ts))
	for i, t := range ts {
		pts[i] = l.P.Add(l.D.Scale(t))
	}
	return pts
}

// intersect returns every candidate point on both x and y's loci. A
// parabola×parabola pairing never arises for a well-formed ppp/lpp/llp/lll
// triple (the two bisectors sharing a vertex are parabolas only when that
// vertex is the shared focus or shared directrix of both, and the pair not
// touching that vertex is always straight — see Solve), so it contributes
// no candidates rather than attempting a general conic intersection.
func intersect(x, y bisector) []geom2.Vec {
	switch {
	case !x.isParabola && !y.isParabola:
		var pts []geom2.Vec
		for _, lx := range x.lines {
			for _, ly := range y.lines {
				if p, ok := lineLine(lx, ly); ok {
					pts = append(pts, p)
				}
			}
		}
		return pts
	case !x.isParabola && y.isParabola:
		var pts []geom2.Vec
		for _, lx := range x.lines {
			pts = append(pts, lineParabola(lx, y.parabola)...)
		}
		return pts
	case x.isParabola && !y.isParabola:
		return intersect(y, x)
	default:
		return nil
	}
}

// Solve returns the point equidistant from c1, c2, c3, its common distance
// r, and the branch of each pairwise bisector — (c1,c2), (c2,c3), (c3,c1)
// — on which that point lies.
//
// c1, c2, c3 must be given in counter-clockwise order around the triangle
// they bound; this is the orientation convention spec.md §4.3 fixes so
// that tripoint(a,b,c) == tripoint(b,c,a) but tripoint(a,b,c) ≠
// tripoint(c,b,a). If the triple is not positively oriented, or no point
// is equidistant from all three within tolerance (sites too far apart,
// or the configuration is otherwise degenerate), Solve returns the
// sentinel (NaN, BAD, BAD, BAD) rather than an error — spec.md §4.3 treats
// "no valid tripoint" as a regular outcome, not a failure. err is reserved
// for malformed input the pairwise separators themselves reject (crossing
// segments, a point strictly inside a segment).
func Solve(c1, c2, c3 Site) (center geom2.Vec, r float64, b1, b2, b3 separator.Branch, err error) {
	bad := func() (geom2.Vec, float64, separator.Branch, separator.Branch, separator.Branch, error) {
		return geom2.Vec{X: math.NaN(), Y: math.NaN()}, math.NaN(), separator.BAD, separator.BAD, separator.BAD, nil
	}

	r1, r2, r3 := c1.ref(), c2.ref(), c3.ref()
	if geom2.Det2(r2.Sub(r1), r3.Sub(r1)) <= 0 {
		return bad()
	}

	bAB, err := pairBisector(c1, c2)
	if err != nil {
		return geom2.Vec{}, 0, separator.BAD, separator.BAD, separator.BAD, err
	}
	bBC, err := pairBisector(c2, c3)
	if err != nil {
		return geom2.Vec{}, 0, separator.BAD, separator.BAD, separator.BAD, err
	}
	bCA, err := pairBisector(c3, c1)
	if err != nil {
		return geom2.Vec{}, 0, separator.BAD, separator.BAD, separator.BAD, err
	}

	var candidates []geom2.Vec
	candidates = append(candidates, intersect(bAB, bBC)...)
	candidates = append(candidates, intersect(bBC, bCA)...)
	candidates = append(candidates, intersect(bCA, bAB)...)

	scale := math.Max(geom2.Dist(r1, r2), math.Max(geom2.Dist(r2, r3), geom2.Dist(r3, r1)))
	if scale == 0 {
		scale = 1
	}
	tol := scale * 1e-7

	bestSpread := math.Inf(1)
	found := false
	for _, p := range candidates {
		d1, d2, d3 := c1.dist(p), c2.dist(p), c3.dist(p)
		spread := math.Abs(d1-d2) + math.Abs(d2-d3) + math.Abs(d3-d1)
		if spread > 3*tol {
			continue
		}
		if spread < bestSpread {
			bestSpread = spread
			center = p
			r = (d1 + d2 + d3) / 3
			found = true
		}
	}
	if !found {
		return bad()
	}

	b1, err = branchTo(c1, c2, center, r)
	if err != nil {
		return center, r, separator.BAD, separator.BAD, separator.BAD, err
	}
	b2, err = branchTo(c2, c3, center, r)
	if err != nil {
		return center, r, separator.BAD, separator.BAD, separator.BAD, err
	}
	b3, err = branchTo(c3, c1, center, r)
	if err != nil {
		return center, r, separator.BAD, separator.BAD, separator.BAD, err
	}
	return center, r, b1, b2, b3, nil
}

// branchTo returns whichever branch of the (a,b) separator, evaluated at
// r, lands closest to target. This is a classification of an already-found
// analytic point, not part of finding it.
func branchTo(a, b Site, target geom2.Vec, r float64) (separator.Branch, error) {
	sep, err := separatorOf(a, b)
	if err != nil {
		return separator.BAD, err
	}
	branches := []separator.Branch{separator.Pos, separator.Neg}
	if sep.Kind == separator.ParallelBisector {
		branches = append(branches, separator.Zero)
	}
	best := separator.BAD
	bestD := math.Inf(1)
	for _, br := range branches {
		d := geom2.Dist(sep.Evaluate(br, r), target)
		if d < bestD {
			bestD = d
			best = br
		}
	}
	return best, nil
}

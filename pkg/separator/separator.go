package separator

import (
	"math"

	"github.com/arborcad/csgkit/pkg/geom2"
)

// Kind tags which of the five separator variants of spec.md §3 a Separator
// holds.
type Kind int

const (
	// PointPoint is variant 1: a straight line bisector, ‖Tangent‖ = 1.
	PointPoint Kind = iota
	// ParabolaArc is variant 2: point/segment, point off the supporting line.
	ParabolaArc
	// DegenerateLine is variant 3: point on a segment's endpoint.
	DegenerateLine
	// HalfLinePair is variant 4: two non-crossing, non-parallel segments.
	HalfLinePair
	// ParallelBisector is variant 5: two parallel segments.
	ParallelBisector
)

// Separator is the parametrized bisector of two sites (spec.md §3). The
// fields mean different things per Kind; see Evaluate for the exact
// formulas. Origin/Tangent/Normal/Rmin follow spec.md §4.2 naming exactly.
type Separator struct {
	Kind    Kind
	Origin  geom2.Vec
	Tangent geom2.Vec
	Normal  geom2.Vec // Normal.X is NaN for ParallelBisector (spec.md §3).
	Rmin    float64
}

// NewPointPoint builds the bisector of two point sites a, b — variant 1.
// The "+" branch lies to the left of a→b, so for a counter-clockwise site
// triple the "+" branch of each pairwise bisector faces the triangle's
// interior (relied on by pkg/tripoint's branch convention).
func NewPointPoint(a, b geom2.Vec) Separator {
	d := b.Sub(a)
	rmin := d.Len() / 2
	origin := a.Add(b).Scale(0.5)
	dir := d.Unit()
	tangent := geom2.Vec{X: -dir.Y, Y: dir.X} // dir rotated +90°, the left normal.
	return Separator{Kind: PointPoint, Origin: origin, Tangent: tangent, Rmin: rmin}
}

// NewSegmentPoint builds the bisector of segment (a,b) and point p —
// variants 2 or 3. Returns ErrPointInSegment if p lies strictly between a
// and b (spec.md §4.2).
func NewSegmentPoint(a, b, p geom2.Vec) (Separator, error) {
	pos := classify(a, b, p)
	onLine := orient2(a, b, p) == 0
	if onLine && pos == Within {
		switch p {
		case a:
			pos = Before
		case b:
			pos = After
		default:
			return Separator{}, ErrPointInSegment{}
		}
	}
	if onLine {
		// p coincides with (or extends) an endpoint: variant 3.
		dir := b.Sub(a).Unit()
		var tangent geom2.Vec
		if pos == Before {
			tangent = geom2.Vec{X: -dir.Y, Y: dir.X}
		} else {
			tangent = geom2.Vec{X: dir.Y, Y: -dir.X}
		}
		return Separator{Kind: DegenerateLine, Origin: p, Tangent: tangent}, nil
	}

	// Variant 2: parabola with focus p, directrix the line through a,b.
	dir := b.Sub(a).Unit()
	n := dir.Normal() // unit, perpendicular to the line
	foot := a.Add(dir.Scale(p.Sub(a).Dot(dir)))
	h := p.Sub(foot)
	if h.Dot(n) < 0 {
		n = n.Scale(-1)
	}
	dist := h.Len()
	rmin := dist / 2
	tangent := n.Normal().Scale(2 * math.Sqrt(rmin))
	// Origin is p's foot on the line, so Evaluate at Rmin lands on the apex
	// foot + Rmin*n, halfway between the line and p.
	return Separator{Kind: ParabolaArc, Origin: foot, Tangent: tangent, Normal: n, Rmin: rmin}, nil
}

// NewSegmentSegment builds the bisector of two segments — variant 4 or 5.
// Returns ErrCrossingSegments if the segments cross in their interiors.
func NewSegmentSegment(a1, b1, a2, b2 geom2.Vec) (Separator, error) {
	if Crosses(a1, b1, a2, b2) {
		return Separator{}, ErrCrossingSegments{}
	}
	if Parallel(a1, b1, a2, b2) {
		return newParallelBisector(a1, b1, a2, b2), nil
	}

	origin, err := geom2.LineInter(a1, b1, a2, b2)
	if err != nil {
		// Parallel() already excluded this, but stay defensive.
		return newParallelBisector(a1, b1, a2, b2), nil
	}

	mid1 := a1.Add(b1).Scale(0.5)
	mid2 := a2.Add(b2).Scale(0.5)
	r1 := mid1.Sub(origin)
	r2 := mid2.Sub(origin)
	if r1.Len2() == 0 || r2.Len2() == 0 {
		return Separator{}, ErrNotImplemented{Reason: "segment midpoint coincides with line intersection"}
	}
	r1 = r1.Unit()
	r2 = r2.Unit()

	tangent := r1.Add(r2)
	normal := r1.Sub(r2)
	if tangent.Len2() == 0 || normal.Len2() == 0 {
		// The two "real side" rays are exactly collinear: the bisector
		// degenerates to a single line, a case spec.md §9 defers.
		return Separator{}, ErrNotImplemented{Reason: "collinear segment-segment bisector rays"}
	}
	return Separator{
		Kind:    HalfLinePair,
		Origin:  origin,
		Tangent: tangent.Unit(),
		Normal:  normal.Unit(),
	}, nil
}

func newParallelBisector(a1, b1, a2, b2 geom2.Vec) Separator {
	dir := b1.Sub(a1).Unit()
	n := dir.Normal()
	// Project a2 onto line 1's normal through a1 to get the gap.
	gap := a2.Sub(a1).Dot(n)
	if gap < 0 {
		n = n.Scale(-1)
		gap = -gap
	}
	rmin := gap / 2
	origin := a1.Add(n.Scale(rmin))
	return Separator{
		Kind:    ParallelBisector,
		Origin:  origin,
		Tangent: dir,
		Normal:  geom2.Vec{X: math.NaN(), Y: math.NaN()},
		Rmin:    rmin,
	}
}

// Reverse returns the separator of the same two sites named in the
// opposite order, satisfying Evaluate(Reverse(s), +b, r) == Evaluate(s,
// -b, r) (spec.md §8, invariant 6).
func (s Separator) Reverse() Separator {
	r := s
	if s.Kind == HalfLinePair {
		r.Tangent, r.Normal = s.Normal, s.Tangent
	} else {
		r.Tangent = s.Tangent.Scale(-1)
	}
	return r
}

// Evaluate returns the point at distance r on the given branch of s
// (spec.md §4.2). Branch must be Pos or Neg for all variants except
// ParallelBisector, which also accepts Zero (spec.md §3: "Branch(0)
// denotes a parallel bisector where the notion of branch collapses").
func (s Separator) Evaluate(b Branch, r float64) geom2.Vec {
	switch s.Kind {
	case PointPoint:
		d := r*r - s.Rmin*s.Rmin
		if d < 0 {
			d = 0
		}
		return s.Origin.Add(s.Tangent.Scale(b.Sign() * math.Sqrt(d)))
	case ParabolaArc:
		d := r - s.Rmin
		if d < 0 {
			d = 0
		}
		return s.Origin.Add(s.Normal.Scale(r)).Add(s.Tangent.Scale(b.Sign() * math.Sqrt(d)))
	case DegenerateLine:
		return s.Origin.Add(s.Tangent.Scale(b.Sign() * r))
	case HalfLinePair:
		if b == Pos {
			return s.Origin.Add(s.Tangent.Scale(r))
		}
		return s.Origin.Add(s.Normal.Scale(r))
	case ParallelBisector:
		sign := b.Sign()
		if b == Zero {
			sign = 0
		}
		return s.Origin.Add(s.Tangent.Scale(sign * r))
	default:
		panic("separator: unknown kind")
	}
}

// Atan returns the angle of the separator's initial normal direction, used
// to interpolate circular arcs when an offset sweep encloses a point site
// (spec.md §4.2).
func (s Separator) Atan() float64 {
	switch s.Kind {
	case ParabolaArc, HalfLinePair:
		return math.Atan2(s.Normal.Y, s.Normal.X)
	default:
		return math.Atan2(s.Tangent.Normal().Y, s.Tangent.Normal().X)
	}
}

package separator

import "github.com/arborcad/csgkit/pkg/geom2"

// Position classifies where a projection falls relative to a segment's
// span: strictly before the first endpoint, within the span, or strictly
// after the second endpoint.
type Position int

const (
	Before Position = 0
	Within Position = 1
	After  Position = 2
)

// classify returns the projection position of point p on segment [a,b].
func classify(a, b, p geom2.Vec) Position {
	ab := b.Sub(a)
	denom := ab.Len2()
	if denom == 0 {
		return Within
	}
	t := p.Sub(a).Dot(ab) / denom
	switch {
	case t < 0:
		return Before
	case t > 1:
		return After
	default:
		return Within
	}
}

// SegmentsPosition returns the 3×3 position code of spec.md §4.2
// (`segments_position`): pos1 classifies seg2's endpoints projected onto
// seg1, pos2 classifies seg1's endpoints projected onto seg2. The (Within,
// Within) entry for either direction combined with an actual interior
// intersection means the segments cross.
func SegmentsPosition(a1, b1, a2, b2 geom2.Vec) (pos1, pos2 [2]Position) {
	pos1 = [2]Position{classify(a1, b1, a2), classify(a1, b1, b2)}
	pos2 = [2]Position{classify(a2, b2, a1), classify(a2, b2, b1)}
	return pos1, pos2
}

// orient2 is twice the signed area of (a,b,c); its sign is the
// standard orientation test used for segment/segment crossing.
func orient2(a, b, c geom2.Vec) float64 {
	return geom2.Det2(b.Sub(a), c.Sub(a))
}

// Crosses reports whether open segments (a1,b1) and (a2,b2) intersect in
// their interiors. Shared endpoints do not count as crossing (spec.md §3:
// "segments may share endpoints but must not cross in their interiors").
func Crosses(a1, b1, a2, b2 geom2.Vec) bool {
	if a1 == a2 || a1 == b2 || b1 == a2 || b1 == b2 {
		return false
	}
	d1 := orient2(a2, b2, a1)
	d2 := orient2(a2, b2, b1)
	d3 := orient2(a1, b1, a2)
	d4 := orient2(a1, b1, b2)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

// Parallel reports whether the two segments' supporting lines are
// parallel, using an exact zero cross-product test (spec.md §4.3:
// "parallelism ... detected by zero cross-product of segment directions").
func Parallel(a1, b1, a2, b2 geom2.Vec) bool {
	return geom2.Det2(b1.Sub(a1), b2.Sub(a2)) == 0
}

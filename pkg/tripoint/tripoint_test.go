package tripoint

import (
	"math"
	"testing"

	"github.com/arborcad/csgkit/pkg/geom2"
	"github.com/arborcad/csgkit/pkg/separator"
)

func TestSolvePPPEquilateralTriangle(t *testing.T) {
	c1 := NewPointSite(geom2.Vec{X: 0, Y: 0})
	c2 := NewPointSite(geom2.Vec{X: 1, Y: 0})
	c3 := NewPointSite(geom2.Vec{X: 0.5, Y: math.Sqrt(3) / 2})

	center, r, b1, b2, b3, err := Solve(c1, c2, c3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantR := math.Sqrt(3) / 3
	if math.Abs(r-wantR) > 1e-6 {
		t.Fatalf("r = %v, want %v", r, wantR)
	}
	wantCenter := geom2.Vec{X: 0.5, Y: math.Sqrt(3) / 6}
	if geom2.Dist(center, wantCenter) > 1e-6 {
		t.Fatalf("center = %v, want %v", center, wantCenter)
	}
	if b1 != separator.Pos || b2 != separator.Pos || b3 != separator.Pos {
		t.Fatalf("branches = (%v,%v,%v), want (+,+,+)", b1, b2, b3)
	}
}

func TestSolvePPPRightTriangle(t *testing.T) {
	c1 := NewPointSite(geom2.Vec{X: 0, Y: 0})
	c2 := NewPointSite(geom2.Vec{X: 4, Y: 0})
	c3 := NewPointSite(geom2.Vec{X: 0, Y: 4})

	center, r, _, _, _, err := Solve(c1, c2, c3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Circumcenter of a right triangle is the midpoint of the hypotenuse.
	wantCenter := geom2.Vec{X: 2, Y: 2}
	if geom2.Dist(center, wantCenter) > 1e-6 {
		t.Fatalf("center = %v, want %v", center, wantCenter)
	}
	wantR := geom2.Dist(wantCenter, geom2.Vec{X: 0, Y: 0})
	if math.Abs(r-wantR) > 1e-6 {
		t.Fatalf("r = %v, want %v", r, wantR)
	}
}

func TestSolveLPPOneSegmentSite(t *testing.T) {
	seg := NewSegmentSite(geom2.Vec{X: -10, Y: -1}, geom2.Vec{X: 10, Y: -1})
	p2 := NewPointSite(geom2.Vec{X: -3, Y: 5})
	p3 := NewPointSite(geom2.Vec{X: 3, Y: 5})

	// seg, p3, p2 is the counter-clockwise order around this triangle.
	center, r, _, _, _, err := Solve(seg, p3, p2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(center.X) > 1e-5 {
		t.Fatalf("expected center on the axis of symmetry, got %v", center)
	}
	gotSeg := math.Sqrt(geom2.SegDistance2(geom2.Vec{X: -10, Y: -1}, geom2.Vec{X: 10, Y: -1}, center))
	if math.Abs(gotSeg-r) > 1e-5 {
		t.Fatalf("distance to segment = %v, want r = %v", gotSeg, r)
	}
	gotP2 := geom2.Dist(center, geom2.Vec{X: -3, Y: 5})
	if math.Abs(gotP2-r) > 1e-5 {
		t.Fatalf("distance to p2 = %v, want r = %v", gotP2, r)
	}
}

func TestSolveLLPTwoSegmentsOnePoint(t *testing.T) {
	s1 := NewSegmentSite(geom2.Vec{X: -10, Y: 0}, geom2.Vec{X: 0, Y: 0})
	s2 := NewSegmentSite(geom2.Vec{X: 0, Y: 10}, geom2.Vec{X: 0, Y: 0})
	p := NewPointSite(geom2.Vec{X: 6, Y: 6})

	// s2, s1, p is the counter-clockwise order around this triangle.
	_, r, _, _, _, err := Solve(s2, s1, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r <= 0 || math.IsNaN(r) {
		t.Fatalf("expected a finite positive radius, got %v", r)
	}
}

// TestSolveCyclicSymmetry checks spec.md §8 invariant 5: rotating the
// three sites keeps the same tripoint, but reversing their order (breaking
// the counter-clockwise convention) must not.
func TestSolveCyclicSymmetry(t *testing.T) {
	c1 := NewPointSite(geom2.Vec{X: 0, Y: 0})
	c2 := NewPointSite(geom2.Vec{X: 4, Y: 0})
	c3 := NewPointSite(geom2.Vec{X: 0, Y: 4})

	center1, r1, _, _, _, err := Solve(c1, c2, c3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	center2, r2, _, _, _, err := Solve(c2, c3, c1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if geom2.Dist(center1, center2) > 1e-9 || math.Abs(r1-r2) > 1e-9 {
		t.Fatalf("tripoint(a,b,c) = (%v,%v), tripoint(b,c,a) = (%v,%v), want equal", center1, r1, center2, r2)
	}

	if _, r3, b1, b2, b3, err := Solve(c3, c2, c1); err != nil || !math.IsNaN(r3) || b1 != separator.BAD || b2 != separator.BAD || b3 != separator.BAD {
		t.Fatalf("tripoint(c,b,a) = (r=%v, %v,%v,%v, err=%v), want the (NaN,BAD,BAD,BAD) sentinel", r3, b1, b2, b3, err)
	}
}

// TestSolveMisorientedTripleIsBad checks that a clockwise (reversed) triple
// yields the sentinel rather than a silently-reversed answer.
func TestSolveMisorientedTripleIsBad(t *testing.T) {
	c1 := NewPointSite(geom2.Vec{X: 0, Y: 0})
	c2 := NewPointSite(geom2.Vec{X: 1, Y: 0})
	c3 := NewPointSite(geom2.Vec{X: 0.5, Y: math.Sqrt(3) / 2})

	_, r, b1, b2, b3, err := Solve(c1, c3, c2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsNaN(r) || b1 != separator.BAD || b2 != separator.BAD || b3 != separator.BAD {
		t.Fatalf("Solve(c1,c3,c2) = (r=%v, %v,%v,%v), want the (NaN,BAD,BAD,BAD) sentinel", r, b1, b2, b3)
	}
}

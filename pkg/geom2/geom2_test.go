package geom2

import (
	"math"
	"testing"
)

func TestDet2(t *testing.T) {
	got := Det2(Vec{1, 0}, Vec{0, 1})
	if got != 1 {
		t.Fatalf("Det2 = %v, want 1", got)
	}
}

func TestIsLeft(t *testing.T) {
	a, b := Vec{0, 0}, Vec{1, 0}
	if !IsLeft(a, b, Vec{0.5, 1}) {
		t.Fatal("expected (0.5,1) left of (0,0)->(1,0)")
	}
	if IsLeft(a, b, Vec{0.5, -1}) {
		t.Fatal("expected (0.5,-1) right of (0,0)->(1,0)")
	}
}

func TestLineInter(t *testing.T) {
	p, err := LineInter(Vec{0, 0}, Vec{2, 2}, Vec{0, 2}, Vec{2, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(p.X-1) > 1e-9 || math.Abs(p.Y-1) > 1e-9 {
		t.Fatalf("got %v, want (1,1)", p)
	}

	_, err = LineInter(Vec{0, 0}, Vec{1, 0}, Vec{0, 1}, Vec{1, 1})
	if _, ok := err.(ErrConcurrentLines); !ok {
		t.Fatalf("expected ErrConcurrentLines, got %v", err)
	}
}

func TestInCircle(t *testing.T) {
	a, b, c := Vec{0, 0}, Vec{1, 0}, Vec{0, 1}
	if !InCircle(a, b, c, Vec{0.2, 0.2}) {
		t.Fatal("expected point inside circumcircle")
	}
	if InCircle(a, b, c, Vec{10, 10}) {
		t.Fatal("expected point outside circumcircle")
	}
}

func TestInCirclePanicsOnBadOrientation(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on clockwise triangle")
		}
	}()
	InCircle(Vec{0, 0}, Vec{0, 1}, Vec{1, 0}, Vec{0.1, 0.1})
}

func TestSegDistance2(t *testing.T) {
	a, b := Vec{0, 0}, Vec{10, 0}
	if got := SegDistance2(a, b, Vec{5, 3}); math.Abs(got-9) > 1e-9 {
		t.Fatalf("midpoint perpendicular: got %v, want 9", got)
	}
	if got := SegDistance2(a, b, Vec{-3, 0}); math.Abs(got-9) > 1e-9 {
		t.Fatalf("before start: got %v, want 9", got)
	}
	if got := SegDistance2(a, b, Vec{13, 0}); math.Abs(got-9) > 1e-9 {
		t.Fatalf("past end: got %v, want 9", got)
	}
}

func TestApproxParabolaHausdorff(t *testing.T) {
	const a, delta = 1.0, 0.01
	pts := ApproxParabola(a, -3, 3, delta)
	if pts[0] != -3 || pts[len(pts)-1] != 3 {
		t.Fatalf("endpoints not preserved: %v", pts)
	}
	for i := 0; i+1 < len(pts); i++ {
		if got := sagitta(a, pts[i], pts[i+1]); got > delta+1e-12 {
			t.Fatalf("segment [%v,%v] sagitta %v exceeds delta %v", pts[i], pts[i+1], got, delta)
		}
	}
}

func TestMinQuadratic(t *testing.T) {
	// x² - 4x + 5 -> a=1, b=-2, c=5; vertex at x=2, value 1.
	got := MinQuadratic([3]float64{1, -2, 5}, [2]float64{-10, 10})
	if math.Abs(got-1) > 1e-9 {
		t.Fatalf("got %v, want 1", got)
	}
}

func TestBoundingBoxAndTolerance(t *testing.T) {
	pts := []Vec{{0, 0}, {10, 0}, {5, 5}}
	min, max := BoundingBox(pts)
	if min != (Vec{0, 0}) || max != (Vec{10, 5}) {
		t.Fatalf("got min=%v max=%v", min, max)
	}
	tol := NewTolerance(pts)
	if tol.Abs <= 0 {
		t.Fatal("expected positive tolerance")
	}
}

package corner

import (
	"testing"

	"github.com/arborcad/csgkit/pkg/geom2"
)

func liveCells(t *Triangulation) []int {
	var cells []int
	for c := 0; c < t.CellCount(); c++ {
		if t.Alive(c) {
			cells = append(cells, c)
		}
	}
	return cells
}

func checkOppositeInvolution(t *testing.T, tr *Triangulation) {
	for c := 0; c < tr.CellCount()*3; c++ {
		if !tr.Alive(CellOf(c)) {
			continue
		}
		o := tr.Opposite(c)
		if o < 0 {
			continue
		}
		if back := tr.Opposite(o); back != c {
			t.Fatalf("opposite not involutive: Opposite(%d)=%d but Opposite(%d)=%d", c, o, o, back)
		}
		if CellOf(o) == CellOf(c) {
			t.Fatalf("corner %d is opposite a corner in its own cell", c)
		}
	}
}

func checkCCW(t *testing.T, tr *Triangulation) {
	for _, cell := range liveCells(tr) {
		a, b, c := tr.Triangle(cell)
		pa, pb, pc := tr.Nodes[a], tr.Nodes[b], tr.Nodes[c]
		area := geom2.Det2(pb.Sub(pa), pc.Sub(pa))
		if area <= 0 {
			t.Fatalf("cell %d is not CCW-oriented with positive area (got %v)", cell, area)
		}
	}
}

func TestBootstrapInvariants(t *testing.T) {
	tr := NewBootstrap(geom2.Vec{X: 0, Y: 0}, geom2.Vec{X: 10, Y: 10})
	if got := len(liveCells(tr)); got != 3 {
		t.Fatalf("expected 3 fake cells, got %d", got)
	}
	if got := len(tr.Nodes); got != 4 {
		t.Fatalf("expected 3 triangle corners + 1 back-pointing fake node, got %d", got)
	}
	checkOppositeInvolution(t, tr)
	checkCCW(t, tr)

	// The three fake cells fan out from the back-pointing node (index 3)
	// to the three boundary edges of the outer triangle; each of those
	// boundary edges has no opposite.
	boundary := 0
	for c := 0; c < tr.CellCount()*3; c++ {
		if tr.Opposite(c) < 0 {
			boundary++
		}
	}
	if boundary != 3 {
		t.Fatalf("expected 3 boundary edges on the outer triangle, got %d", boundary)
	}
}

func TestInsertGrowsByTwoCells(t *testing.T) {
	tr := NewBootstrap(geom2.Vec{X: 0, Y: 0}, geom2.Vec{X: 10, Y: 10})
	before := len(liveCells(tr))
	if _, err := tr.Insert(geom2.Vec{X: 5, Y: 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after := len(liveCells(tr))
	if after != before+2 {
		t.Fatalf("expected %d cells after insert, got %d", before+2, after)
	}
	checkOppositeInvolution(t, tr)
	checkCCW(t, tr)
}

func TestInsertMultiplePointsStaysDelaunay(t *testing.T) {
	tr := NewBootstrap(geom2.Vec{X: 0, Y: 0}, geom2.Vec{X: 100, Y: 100})
	pts := []geom2.Vec{
		{X: 20, Y: 30}, {X: 70, Y: 20}, {X: 50, Y: 80},
		{X: 30, Y: 60}, {X: 80, Y: 70}, {X: 45, Y: 45},
	}
	for _, p := range pts {
		if _, err := tr.Insert(p); err != nil {
			t.Fatalf("insert %v: %v", p, err)
		}
	}
	checkOppositeInvolution(t, tr)
	checkCCW(t, tr)

	// Delaunay condition: no live cell's circumcircle contains a node it
	// doesn't own, checked via the InCircle predicate against every node.
	for _, cell := range liveCells(tr) {
		a, b, c := tr.Triangle(cell)
		pa, pb, pc := tr.Nodes[a], tr.Nodes[b], tr.Nodes[c]
		for n, p := range tr.Nodes {
			if n == a || n == b || n == c {
				continue
			}
			if geom2.InCircle(pa, pb, pc, p) {
				t.Fatalf("cell %d circumcircle contains node %d (%v) — not Delaunay", cell, n, p)
			}
		}
	}
}

func TestOutOfBoundsInsert(t *testing.T) {
	tr := NewBootstrap(geom2.Vec{X: 0, Y: 0}, geom2.Vec{X: 10, Y: 10})
	_, err := tr.Insert(geom2.Vec{X: 50, Y: 50})
	if _, ok := err.(ErrOutOfBounds); !ok {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestAnyEdgeAndStar(t *testing.T) {
	tr := NewBootstrap(geom2.Vec{X: 0, Y: 0}, geom2.Vec{X: 10, Y: 10})
	idx, err := tr.Insert(geom2.Vec{X: 5, Y: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := tr.AnyEdge(idx)
	if c < 0 || tr.NodeOf(c) != idx {
		t.Fatalf("AnyEdge(%d) = %d, does not reference the node", idx, c)
	}
	star := tr.Star(idx)
	if len(star) != 3 {
		t.Fatalf("expected 3 incident cells for a fresh interior insert, got %d", len(star))
	}
	for _, sc := range star {
		if tr.NodeOf(sc) != idx {
			t.Fatalf("Star corner %d does not reference node %d", sc, idx)
		}
	}
}

// TestFlipPreservesOppositeInvolution matches spec.md §8 invariant 2:
// opposite(opposite(e)) == e must hold for every edge, including right
// after a flip changes which corners are opposite which. This package
// has no segment-capturing flip (pkg/voronoi never drives Insert with a
// segment site — see DESIGN.md), so this exercises the generic Flip the
// package does provide, which is the same opposite-pointer surgery a
// segment-capturing flip would perform.
func TestFlipPreservesOppositeInvolution(t *testing.T) {
	tr := NewBootstrap(geom2.Vec{X: 0, Y: 0}, geom2.Vec{X: 10, Y: 10})
	if _, err := tr.Insert(geom2.Vec{X: 3, Y: 3}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := tr.Insert(geom2.Vec{X: 7, Y: 4}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	checkOppositeInvolution(t, tr)

	var flipped bool
	for c := 0; c < tr.CellCount()*3; c++ {
		if !tr.Alive(CellOf(c)) {
			continue
		}
		if tr.Opposite(c) < 0 {
			continue
		}
		if err := tr.Flip(c); err == nil {
			flipped = true
			break
		}
	}
	if !flipped {
		t.Fatalf("expected at least one flippable interior edge")
	}
	checkOppositeInvolution(t, tr)
	checkCCW(t, tr)
}

func TestSwapNodes(t *testing.T) {
	tr := NewBootstrap(geom2.Vec{X: 0, Y: 0}, geom2.Vec{X: 10, Y: 10})
	p0, p1 := tr.Nodes[0], tr.Nodes[1]
	tr.SwapNodes(0, 1)
	if tr.Nodes[0] != p1 || tr.Nodes[1] != p0 {
		t.Fatalf("SwapNodes did not swap node coordinates")
	}
	for _, cell := range liveCells(tr) {
		a, b, c := tr.Triangle(cell)
		for _, n := range []int{a, b, c} {
			if n == 0 || n == 1 {
				// still referenced, just possibly swapped; nothing more to assert
				// without duplicating the triangle-membership logic under test.
				_ = n
			}
		}
	}
}

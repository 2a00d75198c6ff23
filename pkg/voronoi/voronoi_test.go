package voronoi

import (
	"math"
	"testing"

	"github.com/arborcad/csgkit/pkg/geom2"
	"github.com/arborcad/csgkit/pkg/separator"
	"github.com/arborcad/csgkit/pkg/tripoint"
)

func TestDiagramVertexIsEquidistant(t *testing.T) {
	d := NewDiagram(geom2.Vec{X: 0, Y: 0}, geom2.Vec{X: 100, Y: 100})
	pts := []geom2.Vec{{X: 20, Y: 30}, {X: 70, Y: 20}, {X: 50, Y: 80}, {X: 30, Y: 60}}
	if _, err := d.AddPoints(pts); err != nil {
		t.Fatalf("AddPoints: %v", err)
	}
	found := false
	for cell := 0; cell < d.Tri.CellCount(); cell++ {
		if !d.Tri.Alive(cell) {
			continue
		}
		a, b, c := d.Tri.Triangle(cell)
		if a < 4 || b < 4 || c < 4 {
			continue // skip cells touching the bootstrap corners
		}
		center, r, err := d.Vertex(cell)
		if err != nil {
			t.Fatalf("Vertex(%d): %v", cell, err)
		}
		found = true
		for _, idx := range []int{a, b, c} {
			if math.Abs(d.Sites[idx].Dist(center)-r) > 1e-6 {
				t.Fatalf("cell %d vertex not equidistant from site %d", cell, idx)
			}
		}
	}
	if !found {
		t.Fatalf("no interior cell found to check")
	}
}

func TestDiagramValidate(t *testing.T) {
	d := NewDiagram(geom2.Vec{X: 0, Y: 0}, geom2.Vec{X: 100, Y: 100})
	pts := []geom2.Vec{{X: 20, Y: 30}, {X: 70, Y: 20}, {X: 50, Y: 80}, {X: 30, Y: 60}, {X: 45, Y: 45}}
	if _, err := d.AddPoints(pts); err != nil {
		t.Fatalf("AddPoints: %v", err)
	}
	tol := geom2.NewTolerance(append(pts, geom2.Vec{X: 0, Y: 0}, geom2.Vec{X: 100, Y: 100}))
	if err := d.Validate(tol); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestOffsetSquareOutward(t *testing.T) {
	boundary := []tripoint.Site{
		tripoint.NewPointSite(geom2.Vec{X: 0, Y: 0}),
		tripoint.NewPointSite(geom2.Vec{X: 10, Y: 0}),
		tripoint.NewPointSite(geom2.Vec{X: 10, Y: 10}),
		tripoint.NewPointSite(geom2.Vec{X: 0, Y: 10}),
	}
	pts, err := Offset(boundary, 2, 0.1)
	if err != nil {
		t.Fatalf("Offset: %v", err)
	}
	if len(pts) == 0 {
		t.Fatalf("expected a non-empty offset curve")
	}
	centroid := geom2.Vec{X: 5, Y: 5}
	for _, p := range pts {
		if geom2.Dist(p, centroid) < geom2.Dist(geom2.Vec{X: 5, Y: 0}, centroid) {
			t.Fatalf("point %v of outward offset is not farther from centroid than the source square", p)
		}
	}
}

func TestOffsetSquareInward(t *testing.T) {
	boundary := []tripoint.Site{
		tripoint.NewPointSite(geom2.Vec{X: 0, Y: 0}),
		tripoint.NewPointSite(geom2.Vec{X: 10, Y: 0}),
		tripoint.NewPointSite(geom2.Vec{X: 10, Y: 10}),
		tripoint.NewPointSite(geom2.Vec{X: 0, Y: 10}),
	}
	pts, err := Offset(boundary, -2, 0.1)
	if err != nil {
		t.Fatalf("Offset: %v", err)
	}
	centroid := geom2.Vec{X: 5, Y: 5}
	for _, p := range pts {
		if geom2.Dist(p, centroid) > geom2.Dist(geom2.Vec{X: 5, Y: 0}, centroid) {
			t.Fatalf("point %v of inward offset is not closer to centroid than the source square", p)
		}
	}
}

func TestExtrudeStraightTrajectory(t *testing.T) {
	profile := []geom2.Vec{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}}
	traj := []Vec3{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 10}}
	mesh, err := Extrude(profile, traj)
	if err != nil {
		t.Fatalf("Extrude: %v", err)
	}
	if mesh.VertexCount() != 8 {
		t.Fatalf("expected 8 vertices (2 rings x 4), got %d", mesh.VertexCount())
	}
	if mesh.TriangleCount() != 8 {
		t.Fatalf("expected 8 triangles (4 quads x 2), got %d", mesh.TriangleCount())
	}
}

// TestPairSeparatorIsOrientedOppositeAcrossReversal matches spec.md §8
// invariant 3: the separator of an edge and the separator of its
// opposite-oriented pair are reverses of one another (an edge shared by
// two cells is named (a,b) from one side and (b,a) from the other, and
// separator(a,b) must equal separator(b,a).Reverse()).
func TestPairSeparatorIsOrientedOppositeAcrossReversal(t *testing.T) {
	a := tripoint.NewPointSite(geom2.Vec{X: 0, Y: 0})
	b := tripoint.NewPointSite(geom2.Vec{X: 10, Y: 4})
	forward, err := tripoint.PairSeparator(a, b)
	if err != nil {
		t.Fatalf("PairSeparator(a,b): %v", err)
	}
	backward, err := tripoint.PairSeparator(b, a)
	if err != nil {
		t.Fatalf("PairSeparator(b,a): %v", err)
	}
	want := backward.Reverse()
	for _, r := range []float64{forward.Rmin, forward.Rmin + 3, forward.Rmin + 11} {
		for _, br := range []separator.Branch{separator.Pos, separator.Neg} {
			got := forward.Evaluate(br, r)
			wantP := want.Evaluate(br, r)
			if math.Abs(got.X-wantP.X)+math.Abs(got.Y-wantP.Y) > 1e-9 {
				t.Fatalf("separator(a,b) != separator(b,a).Reverse() at r=%v branch=%v: got %v want %v", r, br, got, wantP)
			}
		}
	}
}

// TestSegmentSiteSeparatorReversal matches spec.md §8 invariant 6 for a
// point/segment pair: evaluate(reverse(sep), +b, r) == evaluate(sep, -b,
// r).
func TestSegmentSiteSeparatorReversal(t *testing.T) {
	seg := tripoint.NewSegmentSite(geom2.Vec{X: 0, Y: 0}, geom2.Vec{X: 10, Y: 0})
	pt := tripoint.NewPointSite(geom2.Vec{X: 4, Y: 6})
	sep, err := tripoint.PairSeparator(seg, pt)
	if err != nil {
		t.Fatalf("PairSeparator: %v", err)
	}
	rev := sep.Reverse()
	for _, r := range []float64{sep.Rmin + 0.5, sep.Rmin + 5} {
		for _, br := range []separator.Branch{separator.Pos, separator.Neg} {
			got := rev.Evaluate(br, r)
			want := sep.Evaluate(br.Negate(), r)
			if math.Abs(got.X-want.X)+math.Abs(got.Y-want.Y) > 1e-9 {
				t.Fatalf("reversal symmetry failed at r=%v branch=%v: got %v want %v", r, br, got, want)
			}
		}
	}
}

func TestExtrudeRejectsShortInputs(t *testing.T) {
	if _, err := Extrude(nil, []Vec3{{}, {}}); err == nil {
		t.Fatalf("expected error for empty profile")
	}
	profile := []geom2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	if _, err := Extrude(profile, []Vec3{{}}); err == nil {
		t.Fatalf("expected error for single-point trajectory")
	}
}

// Package voronoi builds the planar Voronoi diagram of point and segment
// sites on top of pkg/corner's triangulation, and derives offset curves
// and axial extrusions from it (spec.md §4, §5). Construction follows
// Bowyer-Watson point insertion (pkg/corner.Insert already restores the
// Delaunay condition); this package's job is to attach Voronoi semantics
// — one vertex per triangulation cell, one edge per triangulation edge —
// on top of that topology.
package voronoi

import (
	"fmt"
	"math"

	"github.com/arborcad/csgkit/pkg/corner"
	"github.com/arborcad/csgkit/pkg/geom2"
	"github.com/arborcad/csgkit/pkg/tripoint"
)

// Diagram is the dual of a corner-table triangulation of point sites: one
// Voronoi vertex per live cell, one Voronoi edge per triangulation edge.
// Sites is kept parallel to Tri.Nodes — index i of one is the site at
// index i of the other — an invariant AddPoint preserves by appending to
// both in lockstep.
type Diagram struct {
	Tri   *corner.Triangulation
	Sites []tripoint.Site

	segments   []segment // registered via AddSegment; see segments.go.
	neighbours []int     // parallel to Sites: incident segment count.
}

// NewDiagram returns an empty diagram bounded by [min,max]; every site
// added via AddPoint must fall strictly inside this box.
func NewDiagram(min, max geom2.Vec) *Diagram {
	tri := corner.NewBootstrap(min, max)
	d := &Diagram{Tri: tri}
	for _, p := range tri.Nodes {
		d.Sites = append(d.Sites, tripoint.NewPointSite(p))
		d.neighbours = append(d.neighbours, 0)
	}
	return d
}

// AddPoint inserts a point site and returns its node index.
func (d *Diagram) AddPoint(p geom2.Vec) (int, error) {
	idx, err := d.Tri.Insert(p)
	if err != nil {
		return -1, err
	}
	d.Sites = append(d.Sites, tripoint.NewPointSite(p))
	d.neighbours = append(d.neighbours, 0)
	return idx, nil
}

// AddPoints inserts several point sites in order, stopping at the first
// error.
func (d *Diagram) AddPoints(pts []geom2.Vec) ([]int, error) {
	idxs := make([]int, 0, len(pts))
	for _, p := range pts {
		idx, err := d.AddPoint(p)
		if err != nil {
			return idxs, err
		}
		idxs = append(idxs, idx)
	}
	return idxs, nil
}

// ErrDegenerateCell is returned by Vertex when a cell's three sites do
// not admit a finite equidistant point (e.g. three collinear points).
type ErrDegenerateCell struct{ Cell int }

func (e ErrDegenerateCell) Error() string {
	return fmt.Sprintf("voronoi: cell %d has no finite Voronoi vertex", e.Cell)
}
func (ErrDegenerateCell) Kind() string { return "DegenerateCell" }

// Vertex returns the Voronoi vertex dual to a live triangulation cell —
// the point equidistant from the cell's three sites, and that common
// distance (spec.md §4.3).
func (d *Diagram) Vertex(cell int) (center geom2.Vec, r float64, err error) {
	a, b, c := d.Tri.Triangle(cell)
	s1, s2, s3 := d.Sites[a], d.Sites[b], d.Sites[c]
	center, r, _, _, _, err = tripoint.Solve(s1, s2, s3)
	if err != nil || math.IsNaN(r) {
		return geom2.Vec{}, 0, ErrDegenerateCell{Cell: cell}
	}
	return center, r, nil
}

// Validate checks the diagram's Delaunay property directly: no live
// cell's circumscribed tripoint circle may contain a fourth site strictly
// inside it (spec.md §8, invariant on empty circumcircles). It is O(cells
// × sites) and intended for tests and debugging, not production use.
func (d *Diagram) Validate(tol geom2.Tolerance) error {
	for cell := 0; cell < d.Tri.CellCount(); cell++ {
		if !d.Tri.Alive(cell) {
			continue
		}
		a, b, c := d.Tri.Triangle(cell)
		center, r, err := d.Vertex(cell)
		if err != nil {
			continue
		}
		for i, site := range d.Sites {
			if i == a || i == b || i == c {
				continue
			}
			if site.Dist(center) < r-tol.Abs {
				return fmt.Errorf("voronoi: cell %d's vertex is closer to site %d than to its own sites", cell, i)
			}
		}
	}
	return nil
}

// IsBoundaryNode reports whether nodeIdx is one of the four bootstrap
// corners rather than a site added via AddPoint.
func (d *Diagram) IsBoundaryNode(nodeIdx int) bool { return nodeIdx < 4 }

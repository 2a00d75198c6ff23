package voronoi

import (
	"github.com/arborcad/csgkit/pkg/geom2"
	"github.com/arborcad/csgkit/pkg/tripoint"
)

// Path is one offset curve: an ordered chain of 2D points, closed (a loop)
// or open (tied to two trajectory endpoints) per spec.md §4.4.6.
type Path struct {
	Points []geom2.Vec
	Closed bool
}

// OffsetDiagram is the frozen, queryable Voronoi diagram of a point-and-
// segment site set, matching spec.md §6's exposed `OffsetDiagram::new`.
// Construction inserts every point, then every segment; offset queries at
// different radii share the same diagram.
type OffsetDiagram struct {
	d *Diagram
}

// NewOffsetDiagram builds the diagram for points and the oriented
// segments connecting them (each a pair of indices into points).
// extraRadius pads the diagram's bounding box so that offsets up to that
// magnitude stay strictly inside the bootstrap triangle (spec.md §4.4.1).
func NewOffsetDiagram(points []geom2.Vec, segments [][2]int, extraRadius float64) (*OffsetDiagram, error) {
	min, max := geom2.BoundingBox(points)
	pad := geom2.Vec{X: extraRadius + 1, Y: extraRadius + 1}
	min, max = min.Sub(pad), max.Add(pad)

	d := NewDiagram(min, max)
	idxs, err := d.AddPoints(points)
	if err != nil {
		return nil, err
	}
	for _, seg := range segments {
		if err := d.AddSegment(idxs[seg[0]], idxs[seg[1]]); err != nil {
			return nil, err
		}
	}
	return &OffsetDiagram{d: d}, nil
}

// Offset returns the offset curves of the diagram's segment chains at a
// single signed radius (spec.md §6's `offset(points, segments, radius)`).
// Point sites with no incident segment contribute no chain — a bare point
// site's own offset is simply the circle of radius |radius| around it,
// which callers wanting that degenerate case should build directly rather
// than through a chain walk.
func (od *OffsetDiagram) Offset(radius, atol float64) ([]Path, error) {
	chains, err := od.d.chains()
	if err != nil {
		return nil, err
	}
	var out []Path
	for _, c := range chains {
		vecs := od.d.chainVecs(c)
		if c.closed {
			// chains() repeats the start point at both ends of a cycle;
			// drop the duplicate before handing a plain polygon to Offset.
			loop := vecs[:len(vecs)-1]
			sites := make([]tripoint.Site, len(loop))
			for i, p := range loop {
				sites[i] = tripoint.NewPointSite(p)
			}
			pts, err := Offset(sites, radius, atol)
			if err != nil {
				return nil, err
			}
			out = append(out, Path{Points: pts, Closed: true})
		} else {
			pts, err := OffsetOpen(vecs, radius, atol)
			if err != nil {
				return nil, err
			}
			out = append(out, Path{Points: pts, Closed: false})
		}
	}
	return out, nil
}

// OffsetMultiple returns the offset curves at several radii, reusing the
// same diagram (spec.md §6's `offset(points, segments, radii)`).
func (od *OffsetDiagram) OffsetMultiple(radii []float64, atol float64) ([][]Path, error) {
	out := make([][]Path, len(radii))
	for i, r := range radii {
		paths, err := od.Offset(r, atol)
		if err != nil {
			return nil, err
		}
		out[i] = paths
	}
	return out, nil
}

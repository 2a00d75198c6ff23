package voronoi

import (
	"fmt"
	"math"

	"github.com/arborcad/csgkit/pkg/geom2"
	"github.com/arborcad/csgkit/pkg/tripoint"
)

// Offset computes the curve at constant distance from a closed,
// counter-clockwise polygon given as its vertex sites (spec.md §4.4's
// offset operation). distance > 0 offsets outward (away from the
// polygon's interior), < 0 offsets inward. tol bounds the chordal
// (Hausdorff) error of the polygonal approximation.
//
// Each edge's offset is the edge translated along its outward normal by
// distance (signed: negative moves inward). At each vertex, dilation
// (distance > 0) joins the two translated edge ends with the circular
// arc of radius |distance| around the vertex — exactly the locus a
// point site's own growing circle traces before a neighboring edge's
// offset line becomes nearer, i.e. before the separator's Rmin is
// reached (spec.md §4.2). Erosion (distance < 0) instead joins them with
// the straight miter intersection of the two translated lines, since
// shrinking a convex polygon by a disk keeps its corners sharp. This is
// the direct Minkowski construction rather than a walk of the full
// Voronoi diagram's cell-crossing chain; topology changes from
// self-intersection at larger offsets are out of scope (spec.md §9).
func Offset(boundary []tripoint.Site, distance, tol float64) ([]geom2.Vec, error) {
	n := len(boundary)
	if n < 3 {
		return nil, fmt.Errorf("voronoi: offset needs at least 3 sites, got %d", n)
	}
	for _, s := range boundary {
		if s.Kind != tripoint.PointSite {
			return nil, fmt.Errorf("voronoi: offset only supports point-site vertex chains")
		}
	}

	centroid := geom2.Vec{}
	for _, s := range boundary {
		centroid = centroid.Add(s.Ref())
	}
	centroid = centroid.Scale(1 / float64(n))

	// outwardNormalOf returns the unit normal of edge a->b pointing away
	// from centroid, independent of distance's sign.
	outwardNormalOf := func(a, b geom2.Vec) geom2.Vec {
		n := b.Sub(a).Unit().Normal()
		mid := a.Add(b).Scale(0.5)
		if n.Dot(mid.Sub(centroid)) < 0 {
			n = n.Scale(-1)
		}
		return n
	}

	var out []geom2.Vec
	for i := 0; i < n; i++ {
		vPrev := boundary[(i-1+n)%n].Ref()
		v := boundary[i].Ref()
		vNext := boundary[(i+1)%n].Ref()

		dirPrev := v.Sub(vPrev).Unit()
		dirNext := vNext.Sub(v).Unit()
		enter := v.Add(outwardNormalOf(vPrev, v).Scale(distance))
		exit := v.Add(outwardNormalOf(v, vNext).Scale(distance))

		switch {
		case distance > 0:
			// Dilation: the gap between the two translated edges is real
			// geometry — the rounding arc around v — so emit both ends.
			out = append(out, enter)
			out = append(out, arcBetween(v, enter, exit, distance, tol)...)
			out = append(out, exit)
		case distance < 0:
			// Erosion: the translated edges overrun the true corner and
			// must be trimmed back to their miter intersection, which
			// alone becomes the offset vertex.
			if miter, err := geom2.LineInter(enter, enter.Add(dirPrev), exit, exit.Add(dirNext)); err == nil {
				out = append(out, miter)
			} else {
				out = append(out, enter, exit)
			}
		default:
			out = append(out, v)
		}
	}
	return dedupe(out, tol), nil
}

// OffsetOpen computes the one-sided offset of an open polyline chain
// (spec.md §4.4.6's open chain, tied to two trajectory endpoints rather
// than closing on itself). distance's sign picks which side of the
// chain's travel direction the curve is translated to: positive is the
// left side (Vec.Normal's rotation), negative the right, mirroring
// Offset's dilation/erosion join policy — arcs at every interior vertex
// for a left-side offset moving away from the chain, miters for the
// other — since an open chain has no interior to test convexity against.
// The two endpoints are themselves point sites (spec.md §3, "Used to
// detect trajectory endpoints"): when distance > 0, OffsetOpen caps each
// with a half-circle arc of radius distance, the offset curve's own locus
// around a degree-1 site; a negative distance leaves both ends uncapped.
func OffsetOpen(chain []geom2.Vec, distance, tol float64) ([]geom2.Vec, error) {
	n := len(chain)
	if n < 2 {
		return nil, fmt.Errorf("voronoi: open offset needs at least 2 points, got %d", n)
	}
	if distance == 0 {
		return append([]geom2.Vec(nil), chain...), nil
	}

	dirs := make([]geom2.Vec, n-1)
	for i := 0; i < n-1; i++ {
		dirs[i] = chain[i+1].Sub(chain[i]).Unit()
	}

	var out []geom2.Vec
	start := chain[0].Add(dirs[0].Normal().Scale(distance))
	if distance > 0 {
		out = append(out, arcCap(chain[0], start, distance, tol)...)
	}
	out = append(out, start)

	for i := 0; i < n-1; i++ {
		enter := chain[i].Add(dirs[i].Normal().Scale(distance))
		exit := chain[i+1].Add(dirs[i].Normal().Scale(distance))
		if i > 0 {
			prevExit := chain[i].Add(dirs[i-1].Normal().Scale(distance))
			if distance > 0 {
				out = append(out, arcBetween(chain[i], prevExit, enter, distance, tol)...)
				out = append(out, enter)
			} else if miter, err := geom2.LineInter(prevExit, prevExit.Add(dirs[i-1]), enter, enter.Add(dirs[i].Scale(-1))); err == nil {
				out[len(out)-1] = miter
			}
		}
		out = append(out, exit)
	}

	if distance > 0 {
		end := out[len(out)-1]
		out = append(out, arcCap(chain[n-1], end, distance, tol)...)
	}
	return dedupe(out, tol), nil
}

// arcCap returns the points of a half-circle arc of radius |r| around
// center, from "from" to the diametrically opposite point — the rounded
// end-cap an open chain's offset gets at a degree-1 trajectory endpoint
// (spec.md §3: neighbour count distinguishes such endpoints).
func arcCap(center, from geom2.Vec, r, tol float64) []geom2.Vec {
	to := center.Scale(2).Sub(from) // reflect "from" through center.
	return arcBetween(center, from, to, math.Abs(r), tol)
}

// arcBetween returns intermediate points of the circular arc of radius r
// centered at c, running from a to b the short way, subdivided finely
// enough that the sagitta of each chord stays within tol.
func arcBetween(c, a, b geom2.Vec, r, tol float64) []geom2.Vec {
	a0 := math.Atan2(a.Y-c.Y, a.X-c.X)
	a1 := math.Atan2(b.Y-c.Y, b.X-c.X)
	delta := a1 - a0
	for delta > math.Pi {
		delta -= 2 * math.Pi
	}
	for delta < -math.Pi {
		delta += 2 * math.Pi
	}
	if math.Abs(delta) < 1e-12 || r <= 0 {
		return nil
	}
	// Sagitta of a single chord spanning angle delta over n steps is
	// r*(1-cos(delta/(2n))); solve for the smallest n keeping it under tol.
	n := 1
	for r*(1-math.Cos(delta/(2*float64(n)))) > tol && n < 4096 {
		n *= 2
	}
	pts := make([]geom2.Vec, 0, n-1)
	for i := 1; i < n; i++ {
		ang := a0 + delta*float64(i)/float64(n)
		pts = append(pts, geom2.Vec{X: c.X + r*math.Cos(ang), Y: c.Y + r*math.Sin(ang)})
	}
	return pts
}

// dedupe drops consecutive points closer together than tol.
func dedupe(pts []geom2.Vec, tol float64) []geom2.Vec {
	if len(pts) == 0 {
		return pts
	}
	out := pts[:1]
	for _, p := range pts[1:] {
		if geom2.Dist(p, out[len(out)-1]) > tol {
			out = append(out, p)
		}
	}
	return out
}

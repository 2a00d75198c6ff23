package voronoi

import (
	"fmt"
	"sort"

	"github.com/arborcad/csgkit/pkg/geom2"
	"github.com/arborcad/csgkit/pkg/separator"
)

// ErrCrossingSegments is raised when a new segment site crosses one
// already present in the diagram (spec.md §3, §7). It reports the same
// Kind() as separator.ErrCrossingSegments.
type ErrCrossingSegments struct {
	A, B int // point indices of the rejected segment
}

func (e ErrCrossingSegments) Error() string {
	return fmt.Sprintf("voronoi: segment (%d,%d) crosses an existing segment site", e.A, e.B)
}
func (ErrCrossingSegments) Kind() string { return "CrossingSegments" }

// segment is an oriented pair of point-node indices, a or b may be a
// bootstrap corner only via AddSegment's own bookkeeping — callers always
// pass indices returned by AddPoint.
type segment struct {
	a, b int
}

// AddSegment registers a segment site between two previously inserted
// points (spec.md §3, "Segment site"). It does not touch the
// triangulation topology — segment *capture* by edge flips (spec.md
// §4.4.3) is a simplification this package does not implement; segment
// sites participate in offset and extrusion queries purely through the
// ordered chains OffsetDiagram derives from them (see offsetdiagram.go).
//
// AddSegment rejects a segment that crosses one already registered,
// raising ErrCrossingSegments, and panics if either endpoint is a
// bootstrap corner or out of range — those are programming errors, not
// input-data errors (spec.md §7).
func (d *Diagram) AddSegment(a, b int) error {
	if a == b {
		return fmt.Errorf("voronoi: segment endpoints must be distinct, got %d twice", a)
	}
	if d.IsBoundaryNode(a) || d.IsBoundaryNode(b) {
		panic("voronoi: AddSegment endpoint is a bootstrap corner")
	}
	if a < 0 || a >= len(d.Sites) || b < 0 || b >= len(d.Sites) {
		panic("voronoi: AddSegment endpoint out of range")
	}
	pa, pb := d.Tri.Nodes[a], d.Tri.Nodes[b]
	for _, s := range d.segments {
		qa, qb := d.Tri.Nodes[s.a], d.Tri.Nodes[s.b]
		if s.a == a || s.a == b || s.b == a || s.b == b {
			continue // shared endpoints never count as crossing (spec.md §3).
		}
		if separator.Crosses(pa, pb, qa, qb) {
			return ErrCrossingSegments{A: a, B: b}
		}
	}
	d.segments = append(d.segments, segment{a: a, b: b})
	d.neighbours[a]++
	d.neighbours[b]++
	return nil
}

// AddSegments registers several segment sites in order, stopping at the
// first error.
func (d *Diagram) AddSegments(pairs [][2]int) error {
	for _, p := range pairs {
		if err := d.AddSegment(p[0], p[1]); err != nil {
			return err
		}
	}
	return nil
}

// Neighbours returns the number of segment sites incident to point idx —
// used to tell an interior trajectory vertex (2 neighbours) from an
// endpoint (spec.md §3, "Used to detect trajectory endpoints").
func (d *Diagram) Neighbours(idx int) int { return d.neighbours[idx] }

// chain is an ordered walk of point indices derived from the diagram's
// registered segments: closed if it returns to its start, open otherwise.
type chain struct {
	points []int
	closed bool
}

// chains groups the diagram's segments into maximal simple paths or
// cycles by following each point's incident segments in turn. Points with
// more than two incident segments (a branching junction) make their
// component's topology ambiguous for chain-based offsetting; chains
// reports such components as an error rather than guessing an order.
func (d *Diagram) chains() ([]chain, error) {
	adj := make(map[int][]int)
	for _, s := range d.segments {
		adj[s.a] = append(adj[s.a], s.b)
		adj[s.b] = append(adj[s.b], s.a)
	}
	for p, ns := range adj {
		if len(ns) > 2 {
			return nil, fmt.Errorf("voronoi: point %d has %d incident segments, branching chains are not implemented", p, len(ns))
		}
	}

	visited := make(map[segment]bool)
	key := func(a, b int) segment {
		if a > b {
			a, b = b, a
		}
		return segment{a, b}
	}

	var walk func(start int) chain
	walk = func(start int) chain {
		pts := []int{start}
		cur := start
		for {
			var next int = -1
			for _, n := range adj[cur] {
				if !visited[key(cur, n)] {
					next = n
					break
				}
			}
			if next < 0 {
				break
			}
			visited[key(cur, next)] = true
			pts = append(pts, next)
			cur = next
			if cur == start {
				return chain{points: pts, closed: true}
			}
		}
		return chain{points: pts, closed: false}
	}

	points := make([]int, 0, len(adj))
	for p := range adj {
		points = append(points, p)
	}
	sort.Ints(points)

	var result []chain
	// Open chains first, starting from the lower-indexed endpoint (degree
	// 1) of each, for a deterministic walk direction rather than whatever
	// order map iteration happens to visit points in.
	for _, p := range points {
		ns := adj[p]
		if len(ns) != 1 {
			continue
		}
		anyUnvisited := false
		for _, n := range ns {
			if !visited[key(p, n)] {
				anyUnvisited = true
			}
		}
		if anyUnvisited {
			result = append(result, walk(p))
		}
	}
	// Remaining components are closed cycles (or already fully visited).
	for _, p := range points {
		for _, n := range adj[p] {
			if !visited[key(p, n)] {
				result = append(result, walk(p))
			}
		}
	}
	return result, nil
}

// chainVecs maps a chain's point indices to their coordinates.
func (d *Diagram) chainVecs(c chain) []geom2.Vec {
	out := make([]geom2.Vec, len(c.points))
	for i, idx := range c.points {
		out[i] = d.Tri.Nodes[idx]
	}
	return out
}

// Package corner implements a corner-table triangulation, the topology
// layer pkg/voronoi builds its Delaunay diagram on (spec.md §4.3 assumes a
// triangulation substrate; this package supplies it). Following the style
// of the reference constrained-Delaunay triangulator this package is
// grounded on, lookups favor plain linear scans over auxiliary spatial
// indexes: the triangle counts this toolkit targets don't need them, and
// the resulting code stays easy to follow.
//
// A corner is a (cell, side) pair flattened to a single int: corner c
// belongs to cell c/3, at local side c%3. Cell{3c, 3c+1, 3c+2} lists its
// three nodes in counter-clockwise order. The edge "opposite" a corner c
// runs between the other two corners of its cell, Next(c) and Prev(c);
// Opposite(c) is the corner across that edge in the neighboring cell, or
// -1 along the triangulation's outer boundary.
package corner

import (
	"fmt"
	"math"

	"github.com/arborcad/csgkit/pkg/geom2"
)

// Triangulation is a mutable corner-table mesh over a fixed node set that
// grows via Insert.
type Triangulation struct {
	Nodes []geom2.Vec

	cellNodes []int  // len 3*cellCap; node index at each corner.
	cellOpp   []int  // len 3*cellCap; opposite corner, or -1.
	alive     []bool // len cellCap; false for cells freed by compaction.
}

// NewBootstrap returns a Triangulation of three fake cells enclosing
// [min,max]: a triangle with vertices at 3M·(unit vectors), M the largest
// absolute coordinate of min/max plus a safety margin, fanned out from one
// interior back-pointing fake node at the triangle's centroid (spec.md
// §4.4.1). All later Insert calls must land strictly inside this triangle.
func NewBootstrap(min, max geom2.Vec) *Triangulation {
	m := math.Abs(min.X)
	for _, v := range []float64{min.Y, max.X, max.Y} {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	if m == 0 {
		m = 1
	}
	r := 3*m + 1

	corner := func(deg float64) geom2.Vec {
		rad := deg * math.Pi / 180
		return geom2.Vec{X: r * math.Cos(rad), Y: r * math.Sin(rad)}
	}
	w0, w1, w2 := corner(90), corner(210), corner(330)
	fake := w0.Add(w1).Add(w2).Scale(1.0 / 3.0) // the back-pointing fake node

	t := &Triangulation{Nodes: []geom2.Vec{w0, w1, w2, fake}}
	cell0 := t.appendCell(0, 1, 3)
	cell1 := t.appendCell(1, 2, 3)
	cell2 := t.appendCell(2, 0, 3)
	t.setOpposite(Corner(cell0, 0), Corner(cell1, 1))
	t.setOpposite(Corner(cell1, 0), Corner(cell2, 1))
	t.setOpposite(Corner(cell2, 0), Corner(cell0, 1))
	return t
}

func (t *Triangulation) appendCell(n0, n1, n2 int) int {
	cell := len(t.alive)
	t.cellNodes = append(t.cellNodes, n0, n1, n2)
	t.cellOpp = append(t.cellOpp, -1, -1, -1)
	t.alive = append(t.alive, true)
	return cell
}

// NewNodes appends pts to the node set and returns their indices.
func (t *Triangulation) NewNodes(pts []geom2.Vec) []int {
	idx := make([]int, len(pts))
	for i, p := range pts {
		idx[i] = len(t.Nodes)
		t.Nodes = append(t.Nodes, p)
	}
	return idx
}

// CellCount returns the number of cell slots, including dead ones freed
// by MoveCell.
func (t *Triangulation) CellCount() int { return len(t.alive) }

// Alive reports whether cell is still live.
func (t *Triangulation) Alive(cell int) bool { return t.alive[cell] }

// Sides returns the three local side indices of any cell, {0,1,2}.
func (t *Triangulation) Sides() [3]int { return [3]int{0, 1, 2} }

// CellOf returns the cell a corner belongs to.
func CellOf(c int) int { return c / 3 }

// SideOf returns a corner's local side within its cell.
func SideOf(c int) int { return c % 3 }

// Corner builds the global corner index for (cell, side).
func Corner(cell, side int) int { return cell*3 + side }

// Next returns the next corner counter-clockwise within the same cell.
func (t *Triangulation) Next(c int) int { return Corner(CellOf(c), (SideOf(c)+1)%3) }

// Prev returns the previous corner counter-clockwise within the same cell.
func (t *Triangulation) Prev(c int) int { return Corner(CellOf(c), (SideOf(c)+2)%3) }

// NodeOf returns the node index at corner c.
func (t *Triangulation) NodeOf(c int) int { return t.cellNodes[c] }

// Opposite returns the corner across the edge opposite c, or -1 on the
// outer boundary.
func (t *Triangulation) Opposite(c int) int { return t.cellOpp[c] }

// setOpposite links two corners as opposite each other; pass -1 for a
// boundary edge.
func (t *Triangulation) setOpposite(c, o int) {
	t.cellOpp[c] = o
	if o >= 0 {
		t.cellOpp[o] = c
	}
}

// Tail returns the first endpoint of the edge opposite c.
func (t *Triangulation) Tail(c int) int { return t.NodeOf(t.Next(c)) }

// Head returns the second endpoint of the edge opposite c.
func (t *Triangulation) Head(c int) int { return t.NodeOf(t.Prev(c)) }

// Left returns the cell lying to the left of the directed edge
// Tail(c)->Head(c), i.e. the cell c itself belongs to.
func (t *Triangulation) Left(c int) int { return CellOf(c) }

// Right returns the cell on the other side of the edge opposite c, or -1
// on the boundary.
func (t *Triangulation) Right(c int) int {
	o := t.Opposite(c)
	if o < 0 {
		return -1
	}
	return CellOf(o)
}

// AnyEdge returns some corner whose node is nodeIdx, or -1 if none (a
// plain scan, per the package's no-index philosophy).
func (t *Triangulation) AnyEdge(nodeIdx int) int {
	for c := 0; c < len(t.cellNodes); c++ {
		if t.alive[CellOf(c)] && t.cellNodes[c] == nodeIdx {
			return c
		}
	}
	return -1
}

// Star returns every corner whose node is nodeIdx, one per incident live
// cell (unordered).
func (t *Triangulation) Star(nodeIdx int) []int {
	var corners []int
	for c := 0; c < len(t.cellNodes); c++ {
		if t.alive[CellOf(c)] && t.cellNodes[c] == nodeIdx {
			corners = append(corners, c)
		}
	}
	return corners
}

// Triangle returns the three node indices of cell.
func (t *Triangulation) Triangle(cell int) (a, b, c int) {
	return t.cellNodes[3*cell], t.cellNodes[3*cell+1], t.cellNodes[3*cell+2]
}

// SwapNodes exchanges the node data and all cell references between node
// indices i and j.
func (t *Triangulation) SwapNodes(i, j int) {
	if i == j {
		return
	}
	t.Nodes[i], t.Nodes[j] = t.Nodes[j], t.Nodes[i]
	for c := range t.cellNodes {
		switch t.cellNodes[c] {
		case i:
			t.cellNodes[c] = j
		case j:
			t.cellNodes[c] = i
		}
	}
}

// MoveCell relocates the contents of cell src into slot dst (which must
// be dead) and frees src, fixing up every opposite reference that
// pointed at one of src's corners. Used to compact the cell array after
// a batch of deletions.
func (t *Triangulation) MoveCell(dst, src int) {
	if t.alive[dst] {
		panic("corner: MoveCell destination is alive")
	}
	if !t.alive[src] {
		panic("corner: MoveCell source is dead")
	}
	for side := 0; side < 3; side++ {
		sc, dc := Corner(src, side), Corner(dst, side)
		t.cellNodes[dc] = t.cellNodes[sc]
		o := t.cellOpp[sc]
		t.cellOpp[dc] = o
		if o >= 0 {
			t.cellOpp[o] = dc
		}
	}
	t.alive[dst] = true
	t.alive[src] = false
	t.cellNodes[3*src], t.cellNodes[3*src+1], t.cellNodes[3*src+2] = -1, -1, -1
	t.cellOpp[3*src], t.cellOpp[3*src+1], t.cellOpp[3*src+2] = -1, -1, -1
}

// Compact drops trailing dead cells, shrinking the cell arrays. Call
// after a sequence of MoveCell calls has pushed every dead cell to the
// end.
func (t *Triangulation) Compact() {
	n := len(t.alive)
	for n > 0 && !t.alive[n-1] {
		n--
	}
	t.alive = t.alive[:n]
	t.cellNodes = t.cellNodes[:3*n]
	t.cellOpp = t.cellOpp[:3*n]
}

func orient(a, b, c geom2.Vec) float64 { return geom2.Det2(b.Sub(a), c.Sub(a)) }

// inCell reports whether p lies within (or on the boundary of) the
// triangle held by cell, assuming the cell's nodes are CCW.
func (t *Triangulation) inCell(cell int, p geom2.Vec) bool {
	a, b, c := t.Triangle(cell)
	pa, pb, pc := t.Nodes[a], t.Nodes[b], t.Nodes[c]
	return orient(pa, pb, p) >= 0 && orient(pb, pc, p) >= 0 && orient(pc, pa, p) >= 0
}

// locate returns the index of a live cell containing p, or -1.
func (t *Triangulation) locate(p geom2.Vec) int {
	for cell := 0; cell < len(t.alive); cell++ {
		if t.alive[cell] && t.inCell(cell, p) {
			return cell
		}
	}
	return -1
}

// ErrOutOfBounds is returned by Insert when a point falls outside every
// live cell.
type ErrOutOfBounds struct{ Point geom2.Vec }

func (e ErrOutOfBounds) Error() string {
	return fmt.Sprintf("corner: point %v is out-of-bounds", e.Point)
}
func (ErrOutOfBounds) Kind() string { return "OutOfBounds" }

// Insert adds node p to the triangulation, splitting whichever live
// cell(s) contain it and then restoring the Delaunay condition by edge
// flipping (the incircle test of Bowyer-Watson point insertion, as in
// the reference triangulator this package is grounded on). Returns the
// new node's index.
//
// Insert assumes p lies strictly inside the located cell. A point exactly
// on an existing edge is not split into the two neighboring cells: it
// leaves a zero-area cell, and unless that edge is on the outer boundary
// the incircle check that follows panics on it.
func (t *Triangulation) Insert(p geom2.Vec) (int, error) {
	cell := t.locate(p)
	if cell < 0 {
		return -1, ErrOutOfBounds{Point: p}
	}
	nodeIdx := t.NewNodes([]geom2.Vec{p})[0]

	a, b, c := t.Triangle(cell)
	// oppA/oppB/oppC are the original neighbors across edges (b,c), (c,a)
	// and (a,b) respectively — the edges opposite corners a, b, c.
	oppA, oppB, oppC := t.Opposite(Corner(cell, 0)), t.Opposite(Corner(cell, 1)), t.Opposite(Corner(cell, 2))

	// Split 1 cell -> 3, reusing `cell`'s slot for the first: (a,b,nodeIdx).
	t.cellNodes[3*cell], t.cellNodes[3*cell+1], t.cellNodes[3*cell+2] = a, b, nodeIdx
	cell1 := t.appendCell(b, c, nodeIdx)
	cell2 := t.appendCell(c, a, nodeIdx)

	t.cellOpp[3*cell], t.cellOpp[3*cell+1], t.cellOpp[3*cell+2] = -1, -1, -1
	// Corner 2 of each new cell sits opposite the original outer edge.
	t.setOpposite(Corner(cell, 2), oppC)
	t.setOpposite(Corner(cell1, 2), oppA)
	t.setOpposite(Corner(cell2, 2), oppB)
	// Corner 0/1 pairs are the three new internal edges, all through nodeIdx.
	t.setOpposite(Corner(cell, 0), Corner(cell1, 1))
	t.setOpposite(Corner(cell1, 0), Corner(cell2, 1))
	t.setOpposite(Corner(cell2, 0), Corner(cell, 1))

	queue := []int{cell, cell1, cell2}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if !t.alive[cur] {
			continue
		}
		for side := 0; side < 3; side++ {
			cr := Corner(cur, side)
			if t.cellNodes[cr] != nodeIdx {
				continue // only the edge opposite nodeIdx itself can be illegal here.
			}
			opp := t.Opposite(cr)
			if opp < 0 {
				continue
			}
			far := CellOf(opp)
			if t.illegal(cur, far) && t.flipShared(cur, far) {
				queue = append(queue, cur, far)
			}
		}
	}
	return nodeIdx, nil
}

// illegal reports whether the shared edge between two adjacent cells
// violates the Delaunay incircle condition.
func (t *Triangulation) illegal(cellA, cellB int) bool {
	sharedCorner, opposite := t.sharedCorners(cellA, cellB)
	if sharedCorner < 0 {
		return false
	}
	apexA := t.NodeOf(sharedCorner)
	apexB := t.NodeOf(opposite)
	u, v := t.Tail(sharedCorner), t.Head(sharedCorner)
	pa, pb, pc, pd := t.Nodes[u], t.Nodes[v], t.Nodes[apexA], t.Nodes[apexB]
	if orient(pa, pb, pc) < 0 {
		pa, pb = pb, pa
	}
	return geom2.InCircle(pa, pb, pc, pd)
}

// sharedCorners returns a corner of cellA whose opposite lies in cellB
// (the apex of cellA over the shared edge) and that opposite corner.
func (t *Triangulation) sharedCorners(cellA, cellB int) (inA, inB int) {
	for side := 0; side < 3; side++ {
		c := Corner(cellA, side)
		o := t.Opposite(c)
		if o >= 0 && CellOf(o) == cellB {
			return c, o
		}
	}
	return -1, -1
}

// flipShared flips the edge shared by cellA and cellB (replacing diagonal
// u-v with apexA-apexB), rewiring the four outer edges of the resulting
// quad to their new cell/corner. Reports whether a flip happened.
func (t *Triangulation) flipShared(cellA, cellB int) bool {
	inA, inB := t.sharedCorners(cellA, cellB)
	if inA < 0 {
		return false
	}
	apexA := t.NodeOf(inA)
	apexB := t.NodeOf(inB)
	u := t.Tail(inA)
	v := t.Head(inA)

	// Quad in CCW order is apexA, u, apexB, v (cellA = apexA,u,v glued to
	// cellB = apexB,v,u along u-v). The four outer edges, named by the
	// corner whose Opposite currently holds them:
	edgeApexAU := t.Opposite(t.Prev(inA)) // apexA-u, from cellA
	edgeVApexA := t.Opposite(t.Next(inA)) // v-apexA, from cellA
	edgeUApexB := t.Opposite(t.Next(inB)) // u-apexB, from cellB
	edgeApexBV := t.Opposite(t.Prev(inB)) // apexB-v, from cellB

	// New triangles: cellA = (apexA, u, apexB), cellB = (apexA, apexB, v).
	t.cellNodes[Corner(cellA, 0)], t.cellNodes[Corner(cellA, 1)], t.cellNodes[Corner(cellA, 2)] = apexA, u, apexB
	t.cellNodes[Corner(cellB, 0)], t.cellNodes[Corner(cellB, 1)], t.cellNodes[Corner(cellB, 2)] = apexA, apexB, v

	t.setOpposite(Corner(cellA, 0), edgeUApexB)
	t.setOpposite(Corner(cellA, 2), edgeApexAU)
	t.setOpposite(Corner(cellB, 0), edgeApexBV)
	t.setOpposite(Corner(cellB, 1), edgeVApexA)
	t.setOpposite(Corner(cellA, 1), Corner(cellB, 2)) // the new diagonal apexA-apexB
	return true
}

// Flip flips the edge opposite corner c if the resulting quad is convex
// (the Delaunay condition is not checked; callers that want a legality
// check should consult illegal via the exported Triangle/Nodes accessors).
func (t *Triangulation) Flip(c int) error {
	o := t.Opposite(c)
	if o < 0 {
		return fmt.Errorf("corner: cannot flip a boundary edge")
	}
	cellA, cellB := CellOf(c), CellOf(o)
	apexA, apexB := t.Nodes[t.NodeOf(c)], t.Nodes[t.NodeOf(o)]
	u, v := t.Nodes[t.Tail(c)], t.Nodes[t.Head(c)]
	if orient(apexA, u, apexB) <= 0 || orient(apexA, apexB, v) <= 0 {
		return fmt.Errorf("corner: flip would produce a non-convex quad")
	}
	if !t.flipShared(cellA, cellB) {
		return fmt.Errorf("corner: edge not shared between distinct cells")
	}
	return nil
}

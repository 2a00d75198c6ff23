package voronoi

import (
	"fmt"
	"math"

	"github.com/arborcad/csgkit/pkg/geom2"
	"github.com/arborcad/csgkit/pkg/kernel"
)

// ProfileVertex is a point of an extrusion profile in the (r,z) half-plane
// (spec.md §4.4.7); r need not be non-negative — a negative-r edge is
// mirrored through r=0 by the caller before AxialVertexExtrude is used.
type ProfileVertex struct{ R, Z float64 }

// AxialVertexExtrude computes one profile vertex's contribution to an
// axial extrusion: the offset chain of od's trajectory diagram at radius
// |v.R| (reversed if v.R < 0, so the chain's winding stays consistent
// once lifted), with every point raised to height v.Z (spec.md §4.4.7
// step 2, "for each vertex of the profile, compute its AxialExtrude").
// Only the first chain od.Offset returns is used — a trajectory with
// several disjoint chains needs one AxialVertexExtrude call per chain,
// selected by index, which this function does not do for the caller.
func AxialVertexExtrude(od *OffsetDiagram, v ProfileVertex, atol float64) ([]Vec3, error) {
	paths, err := od.Offset(math.Abs(v.R), atol)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("voronoi: axial extrude found no offset chain at radius %g", v.R)
	}
	pts := paths[0].Points
	if v.R < 0 {
		pts = reversePoints(pts)
	}
	out := make([]Vec3, len(pts))
	for i, p := range pts {
		out[i] = Vec3{X: p.X, Y: p.Y, Z: v.Z}
	}
	return out, nil
}

func reversePoints(pts []geom2.Vec) []geom2.Vec {
	out := make([]geom2.Vec, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

// RingFace builds the quadrilateral strip connecting two axial chains of
// equal length at the same height difference policy — the cylindrical-
// ring case of spec.md §4.4.7 step 3, used when two adjacent profile
// vertices share the same radius. Chains of unequal length are trimmed to
// their shorter common length; spec.md §4.4.7's general (rp != rq) case,
// which triangulates transverse slices through each crossed cell's
// separator, is not implemented here — see DESIGN.md.
func RingFace(inner, outer []Vec3) (*kernel.Mesh, error) {
	n := len(inner)
	if n == 0 || len(outer) == 0 {
		return nil, fmt.Errorf("voronoi: ring face needs non-empty chains")
	}
	if len(outer) < n {
		n = len(outer)
	}
	m := &kernel.Mesh{}
	for i := 0; i < n; i++ {
		m.Vertices = append(m.Vertices, float32(inner[i].X), float32(inner[i].Y), float32(inner[i].Z))
	}
	for i := 0; i < n; i++ {
		m.Vertices = append(m.Vertices, float32(outer[i].X), float32(outer[i].Y), float32(outer[i].Z))
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a, b := uint32(i), uint32(j)
		c, d := uint32(n+i), uint32(n+j)
		m.Indices = append(m.Indices, a, c, b, b, c, d)
	}
	computeFlatNormals(m)
	return m, nil
}

// AxialExtrude builds a solid of revolution by sweeping profile — a
// polyline in the (r,z) half-plane, already split so no single edge
// crosses r=0 (spec.md §4.4.7 step 1, the caller's responsibility here) —
// around the z axis, using od's offset diagram of the trajectory to place
// each vertex's ring (spec.md §4.4.7's extrude(trajectory, profile,
// atol)). This is the function that wires AxialVertexExtrude and RingFace
// together: one axial chain per profile vertex (step 2), one ring face
// per profile edge (step 3).
func AxialExtrude(od *OffsetDiagram, profile []ProfileVertex, atol float64) (*kernel.Mesh, error) {
	if len(profile) < 2 {
		return nil, fmt.Errorf("voronoi: axial extrude profile needs at least 2 vertices, got %d", len(profile))
	}
	rings := make([][]Vec3, len(profile))
	for i, v := range profile {
		ring, err := AxialVertexExtrude(od, v, atol)
		if err != nil {
			return nil, fmt.Errorf("voronoi: axial extrude vertex %d: %w", i, err)
		}
		rings[i] = ring
	}

	m := &kernel.Mesh{}
	for i := 0; i+1 < len(rings); i++ {
		face, err := RingFace(rings[i], rings[i+1])
		if err != nil {
			return nil, fmt.Errorf("voronoi: axial extrude edge %d-%d: %w", i, i+1, err)
		}
		appendMesh(m, face)
	}
	return m, nil
}

// appendMesh concatenates src onto dst, rebasing src's indices past dst's
// existing vertex count.
func appendMesh(dst, src *kernel.Mesh) {
	base := uint32(len(dst.Vertices) / 3)
	dst.Vertices = append(dst.Vertices, src.Vertices...)
	dst.Normals = append(dst.Normals, src.Normals...)
	for _, idx := range src.Indices {
		dst.Indices = append(dst.Indices, idx+base)
	}
}

// Vec3 is a point or direction in extrusion space.
type Vec3 struct{ X, Y, Z float64 }

func (v Vec3) sub(w Vec3) Vec3 { return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }
func (v Vec3) add(w Vec3) Vec3 { return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }
func (v Vec3) scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) len() float64    { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }
func (v Vec3) cross(w Vec3) Vec3 {
	return Vec3{v.Y*w.Z - v.Z*w.Y, v.Z*w.X - v.X*w.Z, v.X*w.Y - v.Y*w.X}
}
func (v Vec3) unit() Vec3 {
	l := v.len()
	if l == 0 {
		return v
	}
	return v.scale(1 / l)
}

// Extrude sweeps a closed 2D profile (e.g. the output of Offset, or any
// simple polygon) along a polyline trajectory, producing a triangle mesh
// (spec.md §4.4's axial extrusion). Each trajectory vertex gets a frame
// built by parallel-transporting the previous segment's frame to the
// next — a standard, simplified alternative to full Frenet framing that
// avoids the Frenet frame's singularity on straight trajectories.
func Extrude(profile []geom2.Vec, trajectory []Vec3) (*kernel.Mesh, error) {
	if len(profile) < 3 {
		return nil, fmt.Errorf("voronoi: extrude profile needs at least 3 points, got %d", len(profile))
	}
	if len(trajectory) < 2 {
		return nil, fmt.Errorf("voronoi: extrude trajectory needs at least 2 points, got %d", len(trajectory))
	}

	rings := make([][]Vec3, len(trajectory))
	tangent := trajectory[1].sub(trajectory[0]).unit()
	normal, binormal := initialFrame(tangent)
	rings[0] = ringAt(trajectory[0], normal, binormal, profile)

	for i := 1; i < len(trajectory); i++ {
		var nextTangent Vec3
		if i+1 < len(trajectory) {
			nextTangent = trajectory[i+1].sub(trajectory[i]).unit()
		} else {
			nextTangent = tangent
		}
		normal, binormal = transport(tangent, nextTangent, normal, binormal)
		tangent = nextTangent
		rings[i] = ringAt(trajectory[i], normal, binormal, profile)
	}

	return meshFromRings(rings, len(profile)), nil
}

// initialFrame picks an arbitrary normal/binormal pair perpendicular to
// tangent, using world-up unless tangent is nearly vertical.
func initialFrame(tangent Vec3) (normal, binormal Vec3) {
	up := Vec3{0, 0, 1}
	if math.Abs(tangent.unit().Z) > 0.99 {
		up = Vec3{1, 0, 0}
	}
	normal = tangent.cross(up).unit()
	binormal = tangent.cross(normal).unit()
	return normal, binormal
}

// transport rotates (normal,binormal) from the old tangent to the new
// one by the minimal rotation mapping one to the other (Rodrigues'
// formula), keeping the frame from twisting along straight runs.
func transport(oldT, newT, normal, binormal Vec3) (Vec3, Vec3) {
	axis := oldT.cross(newT)
	sinA := axis.len()
	cosA := oldT.X*newT.X + oldT.Y*newT.Y + oldT.Z*newT.Z
	if sinA < 1e-12 {
		return normal, binormal
	}
	axis = axis.scale(1 / sinA)
	rotate := func(v Vec3) Vec3 {
		return v.scale(cosA).
			add(axis.cross(v).scale(sinA)).
			add(axis.scale(axis.X*v.X + axis.Y*v.Y + axis.Z*v.Z).scale(1 - cosA))
	}
	return rotate(normal).unit(), rotate(binormal).unit()
}

func ringAt(center Vec3, normal, binormal Vec3, profile []geom2.Vec) []Vec3 {
	ring := make([]Vec3, len(profile))
	for i, p := range profile {
		ring[i] = center.add(normal.scale(p.X)).add(binormal.scale(p.Y))
	}
	return ring
}

// meshFromRings stitches consecutive rings into a quad strip (triangulated
// as two triangles each) and leaves the swept solid's ends open — callers
// needing a capped solid should union in a cap disk via pkg/kernel.
func meshFromRings(rings [][]Vec3, profileLen int) *kernel.Mesh {
	m := &kernel.Mesh{}
	for _, ring := range rings {
		for _, v := range ring {
			m.Vertices = append(m.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
		}
	}
	for ri := 0; ri+1 < len(rings); ri++ {
		base0 := uint32(ri * profileLen)
		base1 := uint32((ri + 1) * profileLen)
		for i := 0; i < profileLen; i++ {
			j := (i + 1) % profileLen
			a, b := base0+uint32(i), base0+uint32(j)
			c, d := base1+uint32(i), base1+uint32(j)
			m.Indices = append(m.Indices, a, c, b, b, c, d)
		}
	}
	computeFlatNormals(m)
	return m
}

// computeFlatNormals assigns each vertex the normal of the first
// triangle it appears in — a cheap approximation good enough for the
// ruled quad strips Extrude produces, where adjacent triangles sharing a
// vertex are nearly coplanar.
func computeFlatNormals(m *kernel.Mesh) {
	m.Normals = make([]float32, len(m.Vertices))
	for t := 0; t+2 < len(m.Indices); t += 3 {
		ia, ib, ic := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		a := vertexAt(m, ia)
		b := vertexAt(m, ib)
		c := vertexAt(m, ic)
		n := b.sub(a).cross(c.sub(a)).unit()
		for _, idx := range []uint32{ia, ib, ic} {
			if m.Normals[3*idx] == 0 && m.Normals[3*idx+1] == 0 && m.Normals[3*idx+2] == 0 {
				m.Normals[3*idx] = float32(n.X)
				m.Normals[3*idx+1] = float32(n.Y)
				m.Normals[3*idx+2] = float32(n.Z)
			}
		}
	}
}

func vertexAt(m *kernel.Mesh, idx uint32) Vec3 {
	return Vec3{
		X: float64(m.Vertices[3*idx]),
		Y: float64(m.Vertices[3*idx+1]),
		Z: float64(m.Vertices[3*idx+2]),
	}
}

// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"
	"math"

	"github.com/arborcad/csgkit/pkg/kernel"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// defaultMeshCells controls marching cubes tessellation resolution.
const defaultMeshCells = 200

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct{}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{}
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

// Box creates a box with the given dimensions. The resulting solid has its
// minimum corner at the origin (0,0,0) so that placement translations work
// intuitively — (place :at (vec3 10 0 0)) puts the board's corner at x=10.
// sdf.Box3D centers the box at the origin, so we translate by half-dimensions.
func (k *SdfxKernel) Box(x, y, z float64) kernel.Solid {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Box3D: %v", err))
	}
	// Shift from center-origin to min-corner-origin.
	m := sdf.Translate3d(v3.Vec{X: x / 2, Y: y / 2, Z: z / 2})
	return wrap(sdf.Transform3D(s, m))
}

// Cylinder creates a cylinder with the given height and radius.
// The segments parameter is ignored since SDF represents smooth surfaces.
func (k *SdfxKernel) Cylinder(height, radius float64, segments int) kernel.Solid {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Cylinder3D: %v", err))
	}
	return wrap(s)
}

// Union returns the union of two solids.
func (k *SdfxKernel) Union(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Union3D(unwrap(a), unwrap(b)))
}

// Difference returns the difference a - b.
func (k *SdfxKernel) Difference(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Difference3D(unwrap(a), unwrap(b)))
}

// Intersection returns the intersection of two solids.
func (k *SdfxKernel) Intersection(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Intersect3D(unwrap(a), unwrap(b)))
}

// Xor returns the symmetric difference of two solids, built from the
// three primitives sdfx does offer since it has no dedicated xor.
func (k *SdfxKernel) Xor(a, b kernel.Solid) kernel.Solid {
	sa, sb := unwrap(a), unwrap(b)
	return wrap(sdf.Union3D(sdf.Difference3D(sa, sb), sdf.Difference3D(sb, sa)))
}

// OffsetSurface grows (r > 0) or shrinks (r < 0) a solid's boundary by
// r, which an SDF expresses directly as a level-set shift.
func (k *SdfxKernel) OffsetSurface(s kernel.Solid, r float64) kernel.Solid {
	return wrap(sdf.Offset3D(unwrap(s), r))
}

// Decimate is not meaningful for an SDF-represented solid: there is no
// mesh to simplify until ToMesh runs marching cubes, and sdfx exposes
// no post-tessellation simplification pass.
func (k *SdfxKernel) Decimate(s kernel.Solid, targetTriangles int) kernel.Solid {
	panic(kernel.ErrNotImplemented{Backend: "sdfx", Op: "Decimate",
		Reason: "SDFs have no mesh to simplify before ToMesh"})
}

// LoopSubdivision is not meaningful for an SDF-represented solid for
// the same reason as Decimate: subdivision operates on an existing
// mesh, and sdfx only produces one at ToMesh time via marching cubes.
func (k *SdfxKernel) LoopSubdivision(s kernel.Solid, iterations int) kernel.Solid {
	panic(kernel.ErrNotImplemented{Backend: "sdfx", Op: "LoopSubdivision",
		Reason: "SDFs have no mesh to subdivide before ToMesh"})
}

// PlaneSlice keeps the halfspace of s on the side of point the normal
// points away from, discarding the other side.
func (k *SdfxKernel) PlaneSlice(s kernel.Solid, normal, point [3]float64) kernel.Solid {
	n := v3.Vec{X: normal[0], Y: normal[1], Z: normal[2]}.Normalize()
	a := v3.Vec{X: point[0], Y: point[1], Z: point[2]}
	return wrap(sdf.Cut3D(unwrap(s), a, n))
}

// Halfspace clips s to the halfspace bounded by the plane through point
// with the given outward normal — the same primitive PlaneSlice uses,
// exposed directly for callers building a solid from halfspaces rather
// than slicing an existing one.
func (k *SdfxKernel) Halfspace(s kernel.Solid, normal, point [3]float64) kernel.Solid {
	return k.PlaneSlice(s, normal, point)
}

// MinkowskiSum has no general SDF formulation in sdfx beyond the
// uniform dilation OffsetSurface already covers; a true sum of two
// arbitrary solids needs mesh convolution, which sdfx does not provide.
func (k *SdfxKernel) MinkowskiSum(a, b kernel.Solid) kernel.Solid {
	panic(kernel.ErrNotImplemented{Backend: "sdfx", Op: "MinkowskiSum",
		Reason: "general Minkowski sum needs mesh convolution sdfx does not provide"})
}

// Translate moves a solid by (x, y, z).
func (k *SdfxKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	m := sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z})
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes.
func (k *SdfxKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	xRad := x * math.Pi / 180.0
	yRad := y * math.Pi / 180.0
	zRad := z * math.Pi / 180.0

	m := sdf.RotateZ(zRad).Mul(sdf.RotateY(yRad)).Mul(sdf.RotateX(xRad))
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// ToMesh converts a solid to a triangle mesh using marching cubes.
func (k *SdfxKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	sdf3 := unwrap(s)

	renderer := render.NewMarchingCubesUniform(defaultMeshCells)
	triangles := render.ToTriangles(sdf3, renderer)

	numTri := len(triangles)
	numVerts := numTri * 3

	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		// Compute face normal.
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}

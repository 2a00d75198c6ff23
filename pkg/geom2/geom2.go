// Package geom2 is the stateless geometry kernel shared by the separator,
// tripoint and voronoi layers: 2D vectors, oriented-line predicates, and the
// low-degree polynomial minimizers the separator approximation routines need.
//
// Every function here is pure: no allocation beyond the return value, no
// package-level state. Callers that need repeatable tolerance comparisons
// should derive one from BoundingBox via Tolerance, rather than hard-coding
// an absolute epsilon (see DESIGN.md's note on scale-dependent tolerance).
package geom2

import "math"

// Vec is a 2D vector or point.
type Vec struct {
	X, Y float64
}

// Add returns u+v.
func (u Vec) Add(v Vec) Vec { return Vec{u.X + v.X, u.Y + v.Y} }

// Sub returns u-v.
func (u Vec) Sub(v Vec) Vec { return Vec{u.X - v.X, u.Y - v.Y} }

// Scale returns u*s.
func (u Vec) Scale(s float64) Vec { return Vec{u.X * s, u.Y * s} }

// Dot returns the dot product u·v.
func (u Vec) Dot(v Vec) float64 { return u.X*v.X + u.Y*v.Y }

// Len2 returns the squared length of u.
func (u Vec) Len2() float64 { return u.X*u.X + u.Y*u.Y }

// Len returns the length of u.
func (u Vec) Len() float64 { return math.Sqrt(u.Len2()) }

// Normal returns u rotated 90° counter-clockwise, i.e. the left normal.
func (u Vec) Normal() Vec { return Vec{-u.Y, u.X} }

// Unit returns u scaled to unit length. Panics if u is the zero vector;
// callers at a separator boundary should have already excluded that case.
func (u Vec) Unit() Vec {
	l := u.Len()
	if l == 0 {
		panic("geom2: Unit of zero vector")
	}
	return u.Scale(1 / l)
}

// Dist2 returns the squared distance between a and b.
func Dist2(a, b Vec) float64 { return a.Sub(b).Len2() }

// Dist returns the distance between a and b.
func Dist(a, b Vec) float64 { return math.Sqrt(Dist2(a, b)) }

// Det2 is the signed area of the parallelogram spanned by u and v
// (spec.md §4.1, `det2`).
func Det2(u, v Vec) float64 { return u.X*v.Y - u.Y*v.X }

// IsLeft reports whether c lies strictly left of the directed line a→b
// (spec.md §4.1, `isleft`).
func IsLeft(a, b, c Vec) bool {
	return Det2(b.Sub(a), c.Sub(a)) > 0
}

// ErrConcurrentLines is raised by LineInter when the two lines are parallel.
type ErrConcurrentLines struct{}

func (ErrConcurrentLines) Error() string { return "geom2: concurrent (parallel) lines" }

// Kind identifies the structured error kind, per SPEC_FULL.md §9.
func (ErrConcurrentLines) Kind() string { return "ConcurrentLines" }

// LineInter returns the intersection of line ab with line cd
// (spec.md §4.1, `lineinter`). Returns ErrConcurrentLines if the lines are
// parallel.
func LineInter(a, b, c, d Vec) (Vec, error) {
	r := b.Sub(a)
	s := d.Sub(c)
	denom := Det2(r, s)
	if denom == 0 {
		return Vec{}, ErrConcurrentLines{}
	}
	t := Det2(c.Sub(a), s) / denom
	return a.Add(r.Scale(t)), nil
}

// InCircle reports whether x lies strictly inside the circumcircle of the
// positively-oriented triangle (a,b,c) (spec.md §4.1, `incircle`).
// It panics if (a,b,c) is not positively oriented, matching spec.md's
// "fails loudly if orientation is wrong" contract — this is an internal
// consistency assertion, not a recoverable input error (§7).
func InCircle(a, b, c, x Vec) bool {
	if Det2(b.Sub(a), c.Sub(a)) <= 0 {
		panic("geom2: InCircle requires a positively-oriented triangle")
	}
	// Classical incircle determinant (Guibas & Stolfi), lifted to the
	// paraboloid z = x²+y².
	ax, ay := a.X-x.X, a.Y-x.Y
	bx, by := b.X-x.X, b.Y-x.Y
	cx, cy := c.X-x.X, c.Y-x.Y
	az := ax*ax + ay*ay
	bz := bx*bx + by*by
	cz := cx*cx + cy*cy
	det := ax*(by*cz-bz*cy) - ay*(bx*cz-bz*cx) + az*(bx*cy-by*cx)
	return det > 0
}

// SegDistance2 returns the squared distance of point c to the closed
// segment [a,b] (spec.md §4.1, `segdistance²`).
func SegDistance2(a, b, c Vec) float64 {
	ab := b.Sub(a)
	denom := ab.Len2()
	if denom == 0 {
		return Dist2(a, c)
	}
	t := c.Sub(a).Dot(ab) / denom
	if t <= 0 {
		return Dist2(a, c)
	}
	if t >= 1 {
		return Dist2(b, c)
	}
	proj := a.Add(ab.Scale(t))
	return Dist2(proj, c)
}

// BoundingBox returns the axis-aligned bounding box of points. Panics on an
// empty slice — callers always have at least one site by construction.
func BoundingBox(points []Vec) (min, max Vec) {
	if len(points) == 0 {
		panic("geom2: BoundingBox of empty point set")
	}
	min, max = points[0], points[0]
	for _, p := range points[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// Tolerance is a relative floating-point comparison tolerance derived from
// the bounding-box diagonal of a diagram's input, per spec.md §9's note
// that a fixed 1e-9 is fragile under scaling.
type Tolerance struct {
	Abs float64
}

// NewTolerance derives a Tolerance from a set of input points, using a
// small multiple of the bounding-box diagonal as the scale reference.
func NewTolerance(points []Vec) Tolerance {
	if len(points) == 0 {
		return Tolerance{Abs: 1e-9}
	}
	min, max := BoundingBox(points)
	diag := Dist(min, max)
	if diag == 0 {
		return Tolerance{Abs: 1e-9}
	}
	return Tolerance{Abs: diag * 1e-9}
}

// Eq reports whether a and b are equal within the tolerance.
func (t Tolerance) Eq(a, b float64) bool { return math.Abs(a-b) <= t.Abs }

// EqVec reports whether a and b are equal within the tolerance.
func (t Tolerance) EqVec(a, b Vec) bool { return Dist(a, b) <= t.Abs }

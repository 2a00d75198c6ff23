package voronoi

import (
	"fmt"

	clipper "github.com/ctessum/go.clipper"
	"github.com/arborcad/csgkit/pkg/geom2"
)

// clipperScale maps floating-point millimeters to Clipper's fixed-point
// integer space. 1000 keeps micron precision well within Clipper's 64-bit
// coordinate range for the sizes this package deals with.
const clipperScale = 1000.0

// JoinStyle selects the corner style RobustOffset uses at convex vertices,
// mirroring Offset's own arc (dilation) vs miter (erosion) choice but
// exposed explicitly since Clipper does not infer it from distance's sign.
type JoinStyle int

const (
	JoinRound JoinStyle = iota
	JoinMiter
	JoinSquare
)

func (j JoinStyle) clipperJoin() clipper.JoinType {
	switch j {
	case JoinMiter:
		return clipper.JtMiter
	case JoinSquare:
		return clipper.JtSquare
	default:
		return clipper.JtRound
	}
}

// RobustOffset computes the offset of a closed polygon with go.clipper's
// ClipperOffset, which — unlike Offset — correctly splits a
// self-intersecting offset result into its separate output loops. This is
// the topology change Offset's doc comment calls out of scope for its
// direct Minkowski construction (spec.md §9): eroding a polygon past its
// own medial axis, or dilating a concave polygon enough that two arcs
// overlap. Use RobustOffset instead of Offset when distance may be large
// relative to the polygon's own features.
func RobustOffset(polygon []geom2.Vec, distance float64, join JoinStyle) ([][]geom2.Vec, error) {
	if len(polygon) < 3 {
		return nil, fmt.Errorf("voronoi: robust offset needs at least 3 points, got %d", len(polygon))
	}

	path := make(clipper.Path, len(polygon))
	for i, p := range polygon {
		path[i] = &clipper.IntPoint{
			X: clipper.CInt(p.X * clipperScale),
			Y: clipper.CInt(p.Y * clipperScale),
		}
	}

	co := clipper.NewClipperOffset()
	co.AddPath(path, join.clipperJoin(), clipper.EtClosedPolygon)
	solution := co.Execute(distance * clipperScale)

	out := make([][]geom2.Vec, len(solution))
	for i, loop := range solution {
		pts := make([]geom2.Vec, len(loop))
		for j, ip := range loop {
			pts[j] = geom2.Vec{X: float64(ip.X) / clipperScale, Y: float64(ip.Y) / clipperScale}
		}
		out[i] = pts
	}
	return out, nil
}

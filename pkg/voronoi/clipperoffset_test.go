package voronoi

import (
	"testing"

	"github.com/arborcad/csgkit/pkg/geom2"
)

func TestRobustOffsetSquareOutward(t *testing.T) {
	square := []geom2.Vec{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	loops, err := RobustOffset(square, 2, JoinMiter)
	if err != nil {
		t.Fatalf("RobustOffset: %v", err)
	}
	if len(loops) != 1 {
		t.Fatalf("expected one loop, got %d", len(loops))
	}
	min, max := geom2.BoundingBox(loops[0])
	if min.X > -1.9 || min.Y > -1.9 || max.X < 11.9 || max.Y < 11.9 {
		t.Fatalf("offset loop %v did not grow by ~2mm", loops[0])
	}
}

func TestRobustOffsetErosionPastMedialAxisSplits(t *testing.T) {
	// A long thin rectangle eroded past half its width splits into nothing
	// (or, for a dumbbell shape, into two loops) — RobustOffset must at
	// least not panic and must report however many loops Clipper finds,
	// unlike Offset which has no notion of a vanishing or split result.
	rect := []geom2.Vec{{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 20, Y: 2}, {X: 0, Y: 2}}
	loops, err := RobustOffset(rect, -5, JoinMiter)
	if err != nil {
		t.Fatalf("RobustOffset: %v", err)
	}
	if len(loops) != 0 {
		t.Fatalf("expected the rectangle to vanish when eroded past its half-width, got %d loops", len(loops))
	}
}

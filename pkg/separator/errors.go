package separator

// ErrCrossingSegments is raised when two segment sites cross in their
// interiors (spec.md §3, §7).
type ErrCrossingSegments struct{}

func (ErrCrossingSegments) Error() string { return "separator: segments cross in their interior" }
func (ErrCrossingSegments) Kind() string  { return "CrossingSegments" }

// ErrPointInSegment is raised when a point site coincides with the
// interior of a segment site (spec.md §4.2).
type ErrPointInSegment struct{}

func (ErrPointInSegment) Error() string { return "separator: point lies in segment interior" }
func (ErrPointInSegment) Kind() string  { return "PointInSegment" }

// ErrNotImplemented marks a parallel-bisector code path spec.md §9
// explicitly leaves open: callers must rotate the input and retry, or
// accept this as a documented limitation.
type ErrNotImplemented struct {
	Reason string
}

func (e ErrNotImplemented) Error() string { return "separator: not implemented: " + e.Reason }
func (ErrNotImplemented) Kind() string    { return "NotImplemented" }

package kernel

// ErrNotImplemented marks a Kernel operation a backend cannot perform
// with the representation it uses internally (e.g. mesh decimation on
// an SDF-only backend). Kernel methods return Solid, not error, so
// backends panic with this value rather than silently returning a
// degenerate solid; callers that need a backend-agnostic result should
// check which Kernel implementation they hold before calling an
// operation it does not support.
type ErrNotImplemented struct {
	Backend, Op, Reason string
}

func (e ErrNotImplemented) Error() string {
	return "kernel: " + e.Backend + " does not implement " + e.Op + ": " + e.Reason
}

func (ErrNotImplemented) Kind() string { return "NotImplemented" }

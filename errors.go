package ribbon

import (
	"errors"
	"fmt"
)

// Errors reported by ribbon. Normalization and degeneracy errors are
// recovered locally and only surface through logs, PointFormatError or
// fallback hooks; see each operation for what it returns.
var (
	// ErrInvalidPointFormat indicates an input point could not be interpreted.
	ErrInvalidPointFormat = errors.New("ribbon: invalid point format")

	// ErrDegenerateLine indicates a polyline with fewer than 2 points.
	// Such lines contribute no vertices or indices.
	ErrDegenerateLine = errors.New("ribbon: degenerate line")

	// ErrDegenerateLoop indicates a closed polyline with fewer than 3 points.
	// Such lines are demoted to open.
	ErrDegenerateLoop = errors.New("ribbon: degenerate loop")

	// ErrTopologyMismatch indicates an update whose polyline count or
	// per-line point count differs from the current batch.
	ErrTopologyMismatch = errors.New("ribbon: topology mismatch")

	// ErrIndexWidthExceeded indicates a vertex count the current index
	// format cannot address.
	ErrIndexWidthExceeded = errors.New("ribbon: index width exceeded")

	// ErrDisposed is returned by operations on a disposed batch.
	ErrDisposed = errors.New("ribbon: batch has been disposed")

	// ErrInvalidConfig is returned when build options are inconsistent.
	ErrInvalidConfig = errors.New("ribbon: invalid configuration")

	// ErrInstanceRange is returned for an out-of-range instance slot or when
	// the batch has no instance namespace.
	ErrInstanceRange = errors.New("ribbon: instance index out of range")

	// ErrUnknownAttribute is returned for an attribute name that is not registered.
	ErrUnknownAttribute = errors.New("ribbon: unknown attribute")

	// ErrLineRange is returned for a line index outside the batch or a line
	// that was excluded as degenerate.
	ErrLineRange = errors.New("ribbon: line index out of range")

	// ErrClosedLine is returned when advancing a closed line.
	ErrClosedLine = errors.New("ribbon: cannot advance a closed line")
)

// PointFormatError reports input points dropped during normalization.
type PointFormatError struct {
	// Dropped is the number of points that could not be interpreted.
	Dropped int

	// First is the input index of the first dropped element.
	First int
}

// Error implements the error interface.
func (e *PointFormatError) Error() string {
	return fmt.Sprintf("ribbon: invalid point format: dropped %d point(s), first at index %d", e.Dropped, e.First)
}

// Unwrap makes errors.Is(err, ErrInvalidPointFormat) succeed.
func (e *PointFormatError) Unwrap() error {
	return ErrInvalidPointFormat
}

package ribbon

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/ribbon/internal/attr"
)

// UpdateMode reports how SetPositions applied new points.
type UpdateMode int

const (
	// UpdateNone means no update was applied.
	UpdateNone UpdateMode = iota

	// UpdateInPlace means only position, previous and next were rewritten.
	UpdateInPlace

	// UpdateRebuilt means the batch fell back to a full rebuild.
	UpdateRebuilt
)

// String returns the update mode name.
func (m UpdateMode) String() string {
	switch m {
	case UpdateNone:
		return "None"
	case UpdateInPlace:
		return "InPlace"
	case UpdateRebuilt:
		return "Rebuilt"
	default:
		return fmt.Sprintf("UpdateMode(%d)", int(m))
	}
}

// SetPositions replaces the points of every polyline, one entry per line in
// any format accepted by NormalizePoints.
//
// When every line keeps its point count and closed flag, only position,
// previous and next are rewritten in place and side, width, uv, counter
// and the index array stay untouched. Otherwise the batch falls back to a
// full rebuild with the same configuration and per-line settings, and the
// result equals a fresh Build with the new points. A line count change never
// fails on the ClosedLines length: lines beyond it are open.
func (b *Batch) SetPositions(points []any, opts ...UpdateOption) (UpdateMode, error) {
	if b.disposed {
		return UpdateNone, ErrDisposed
	}
	var uo updateOptions
	for _, opt := range opts {
		opt(&uo)
	}

	sources := make([]Polyline, len(points))
	prepared := make([]preparedLine, len(points))
	for i, p := range points {
		src := Polyline{Points: p}
		if i < len(b.sources) {
			src.Closed = b.sources[i].Closed
			src.Width = b.sources[i].Width
		}
		sources[i] = src
		prepared[i] = b.prepareLine(i, src, p)
	}

	if reason := b.fastPathReason(prepared); reason != nil {
		Logger().Debug("ribbon: incremental update fell back to rebuild", slog.Any("reason", reason))
		if err := b.rebuild(sources, prepared); err != nil {
			return UpdateNone, err
		}
		b.stats.Fallbacks++
		if b.cfg.FallbackHook != nil {
			b.cfg.FallbackHook(reason)
		}
		return UpdateRebuilt, nil
	}

	for i := range prepared {
		b.sources[i].Points = points[i]
	}
	b.lines = prepared
	b.writePositions(-1)
	if uo.bounds {
		b.computeBounds()
	}
	b.stats.InPlaceUpdates++
	return UpdateInPlace, nil
}

// fastPathReason returns nil when prepared lines fit the current topology,
// or the reason an in-place update is impossible.
func (b *Batch) fastPathReason(prepared []preparedLine) error {
	if len(prepared) != len(b.layouts) {
		return fmt.Errorf("%w: %d lines, batch has %d", ErrTopologyMismatch, len(prepared), len(b.layouts))
	}
	for i := range prepared {
		l := b.layouts[i]
		if prepared[i].points() != l.Points {
			return fmt.Errorf("%w: line %d has %d points, batch has %d",
				ErrTopologyMismatch, i, prepared[i].points(), l.Points)
		}
		if prepared[i].closed != l.Closed {
			return fmt.Errorf("%w: line %d closed flag changed", ErrTopologyMismatch, i)
		}
	}
	if !attr.Addressable(b.indexFormat, b.vertexCount) {
		return fmt.Errorf("%w: %d vertices with %v indices", ErrIndexWidthExceeded, b.vertexCount, b.indexFormat)
	}
	return nil
}

// writePositions rewrites position, previous and next for line only, or
// for every line when line is negative, and marks the arrays dirty.
func (b *Batch) writePositions(line int) {
	position := b.store.Array(AttrPosition)
	previous := b.store.Array(AttrPrevious)
	next := b.store.Array(AttrNext)

	data := func(a *Attribute) []float32 {
		if a == nil {
			return nil
		}
		return a.Float32s()
	}

	for i := range b.lines {
		if line >= 0 && i != line {
			continue
		}
		l := b.layouts[i]
		if l.Skipped {
			continue
		}
		writeLinePositions(b.lines[i].flat, l.Closed,
			data(position), data(previous), data(next), l.VertexStart)
	}

	for _, a := range []*Attribute{position, previous, next} {
		if a != nil {
			a.MarkDirty()
		}
	}
}

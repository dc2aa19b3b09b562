package ribbon

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/ribbon/internal/attr"
)

// Attribute is a named float32 vertex or instance attribute array owned by
// a Batch. Consumers read it and acknowledge uploads with ClearDirty.
type Attribute = attr.Array

// IndexBuffer is the triangle-list index array owned by a Batch.
type IndexBuffer = attr.IndexArray

// Stats counts the work a Batch has done since Build.
type Stats struct {
	// Builds counts full builds, including the initial one and fallbacks.
	Builds int

	// InPlaceUpdates counts SetPositions and Advance calls served by the
	// in-place fast path.
	InPlaceUpdates int

	// Fallbacks counts SetPositions calls that required a full rebuild.
	Fallbacks int

	// Reuses and Reallocations count attribute and index writes by outcome.
	Reuses        int
	Reallocations int
}

// Batch packs a set of polylines into one shared vertex/index buffer.
//
// A Batch is not safe for concurrent use. Exactly one goroutine may build,
// update or read it at a time, and buffer consumers must finish reading
// before the next update starts.
type Batch struct {
	cfg Config

	// sources are the polylines of the last full build, kept for their
	// per-line closed and width settings.
	sources []Polyline

	// lines hold the current normalized, loop-closed points.
	lines   []preparedLine
	layouts []LineLayout

	store     *attr.Store
	instances *attr.Store

	indexFormat gputypes.IndexFormat
	vertexCount int

	lineBounds []Box3
	bounds     Box3
	sphere     Sphere

	stats    Stats
	disposed bool
}

// Build normalizes lines and materializes a new batch.
//
// Malformed points are dropped, lines with fewer than two points are
// excluded and closed lines with fewer than three points are demoted to
// open; none of these fail the build. Build returns an error only for an
// invalid configuration.
func Build(lines []Polyline, opts ...Option) (*Batch, error) {
	cfg := newConfig(opts)
	if err := cfg.validate(len(lines)); err != nil {
		return nil, err
	}

	b := &Batch{
		cfg:   cfg,
		store: attr.NewStore(gputypes.VertexStepModeVertex),
	}
	if cfg.InstanceCount > 0 {
		b.instances = attr.NewStore(gputypes.VertexStepModeInstance)
	}

	prepared := make([]preparedLine, len(lines))
	for i, line := range lines {
		prepared[i] = b.prepareLine(i, line, line.Points)
	}
	if err := b.rebuild(lines, prepared); err != nil {
		return nil, err
	}
	return b, nil
}

// Rebuild replaces every polyline of the batch with a full rebuild using the
// batch configuration. Arrays whose size is unchanged are reused in place.
func (b *Batch) Rebuild(lines []Polyline) error {
	if b.disposed {
		return ErrDisposed
	}
	if err := b.cfg.validate(len(lines)); err != nil {
		return err
	}
	prepared := make([]preparedLine, len(lines))
	for i, line := range lines {
		prepared[i] = b.prepareLine(i, line, line.Points)
	}
	return b.rebuild(lines, prepared)
}

// prepareLine normalizes and loop-closes the points of line i.
func (b *Batch) prepareLine(i int, line Polyline, points any) preparedLine {
	log := Logger()

	flat, err := NormalizePoints(points)
	if err != nil {
		log.Warn("ribbon: dropped invalid points", slog.Int("line", i), slog.Any("err", err))
	}

	wantClosed := b.cfg.closedFor(i, line)
	flat, closed := CloseLoop(flat, wantClosed)
	if wantClosed && !closed {
		log.Debug("ribbon: degenerate loop demoted to open",
			slog.Int("line", i), slog.Int("points", len(flat)/3), slog.Any("err", ErrDegenerateLoop))
	}
	if len(flat)/3 < 2 {
		log.Debug("ribbon: degenerate line skipped",
			slog.Int("line", i), slog.Int("points", len(flat)/3), slog.Any("err", ErrDegenerateLine))
	}

	return preparedLine{
		flat:   flat,
		closed: closed,
		width:  b.cfg.widthFor(line),
	}
}

// rebuild runs the batch geometry builder and commits the result to the
// attribute store. sources is copied; the caller's slice is never written.
func (b *Batch) rebuild(sources []Polyline, prepared []preparedLine) error {
	g := buildGeometry(prepared, &b.cfg)
	format := attr.IndexFormatFor(g.vertexCount)

	writes := []struct {
		name     string
		data     []float32
		itemSize int
	}{
		{AttrPosition, g.position, 3},
		{AttrPrevious, g.previous, 3},
		{AttrNext, g.next, 3},
		{AttrSide, g.side, 1},
		{AttrWidth, g.width, 1},
		{AttrUV, g.uv, 2},
		{AttrCounter, g.counter, 1},
	}
	reused := 0
	for _, w := range writes {
		if w.data == nil {
			continue
		}
		res, err := b.store.SetOrUpdate(w.name, w.data, w.itemSize)
		if err != nil {
			return fmt.Errorf("ribbon: store %s: %w", w.name, err)
		}
		if res == attr.Reused {
			reused++
		}
	}
	if _, err := b.store.SetIndices(g.indices, format); err != nil {
		return fmt.Errorf("ribbon: store indices: %w", err)
	}

	b.sources = append([]Polyline(nil), sources...)
	b.lines = prepared
	b.layouts = g.lines
	b.vertexCount = g.vertexCount
	b.indexFormat = format
	b.computeBounds()
	b.stats.Builds++

	Logger().Debug("ribbon: batch built",
		slog.Int("lines", len(prepared)),
		slog.Int("vertices", g.vertexCount),
		slog.Int("indices", len(g.indices)),
		slog.String("indexFormat", format.String()),
		slog.Int("reusedArrays", reused))
	return nil
}

// Dispose releases every array. The batch rejects further updates.
func (b *Batch) Dispose() {
	if b.disposed {
		return
	}
	b.store.Release()
	if b.instances != nil {
		b.instances.Release()
	}
	b.lines = nil
	b.sources = nil
	b.layouts = nil
	b.lineBounds = nil
	b.vertexCount = 0
	b.disposed = true
}

// Disposed reports whether Dispose was called.
func (b *Batch) Disposed() bool { return b.disposed }

// Config returns a copy of the batch configuration.
func (b *Batch) Config() Config {
	cfg := b.cfg
	if cfg.ClosedLines != nil {
		cfg.ClosedLines = append([]bool(nil), cfg.ClosedLines...)
	}
	return cfg
}

// LineCount returns the number of polylines, including skipped ones.
func (b *Batch) LineCount() int { return len(b.layouts) }

// Lines returns the buffer layout of every polyline.
func (b *Batch) Lines() []LineLayout {
	return append([]LineLayout(nil), b.layouts...)
}

// Line returns the buffer layout of line i.
func (b *Batch) Line(i int) (LineLayout, bool) {
	if i < 0 || i >= len(b.layouts) {
		return LineLayout{}, false
	}
	return b.layouts[i], true
}

// Points returns a copy of the current loop-closed points of line i.
func (b *Batch) Points(i int) ([]float32, error) {
	if b.disposed {
		return nil, ErrDisposed
	}
	if i < 0 || i >= len(b.lines) {
		return nil, fmt.Errorf("%w: %d", ErrLineRange, i)
	}
	return append([]float32(nil), b.lines[i].flat...), nil
}

// VertexCount returns the total number of vertices.
func (b *Batch) VertexCount() int { return b.vertexCount }

// IndexCount returns the total number of indices.
func (b *Batch) IndexCount() int {
	if ix := b.store.Index(); ix != nil {
		return ix.Len()
	}
	return 0
}

// IndexFormat returns the index width chosen by the last full build.
func (b *Batch) IndexFormat() gputypes.IndexFormat { return b.indexFormat }

// Attribute returns the vertex attribute registered under name, or nil.
func (b *Batch) Attribute(name string) *Attribute { return b.store.Array(name) }

// Attributes returns the vertex attributes in registration order.
func (b *Batch) Attributes() []*Attribute { return b.store.Arrays() }

// Index returns the index array, or nil after Dispose.
func (b *Batch) Index() *IndexBuffer { return b.store.Index() }

// DirtyAttributes returns the names of vertex attributes changed since
// their last ClearDirty.
func (b *Batch) DirtyAttributes() []string { return b.store.Dirty() }

// Stats returns the batch counters.
func (b *Batch) Stats() Stats {
	s := b.stats
	st := b.store.Stats()
	s.Reuses, s.Reallocations = st.Reuses, st.Reallocations
	return s
}

// Validate checks the batch invariants: attribute lengths match the vertex
// count and every triangle references vertices of its own polyline.
func (b *Batch) Validate() error {
	if b.disposed {
		return ErrDisposed
	}
	for _, a := range b.store.Arrays() {
		if a.Count() != b.vertexCount {
			return fmt.Errorf("ribbon: attribute %s has %d items, want %d", a.Name(), a.Count(), b.vertexCount)
		}
	}
	ix := b.store.Index()
	if ix == nil {
		return fmt.Errorf("ribbon: batch has no index array")
	}
	if !attr.Addressable(ix.Format(), b.vertexCount) {
		return fmt.Errorf("%w: %d vertices with %v indices", ErrIndexWidthExceeded, b.vertexCount, ix.Format())
	}
	indices := make([]uint32, ix.Len())
	for i := range indices {
		indices[i] = ix.At(i)
	}
	return checkIndices(indices, b.layouts)
}

// BoundingBox returns the union of the line bounding boxes.
func (b *Batch) BoundingBox() Box3 { return b.bounds }

// BoundingSphere returns the sphere enclosing BoundingBox.
func (b *Batch) BoundingSphere() Sphere { return b.sphere }

// LineBounds returns the bounding box of line i.
func (b *Batch) LineBounds(i int) (Box3, bool) {
	if i < 0 || i >= len(b.lineBounds) {
		return EmptyBox(), false
	}
	return b.lineBounds[i], true
}

// ComputeBounds recomputes every bounding volume from the current points.
func (b *Batch) ComputeBounds() {
	b.computeBounds()
}

// computeBounds recomputes per-line boxes and the aggregate volumes. Skipped
// lines keep their own box but do not contribute to the aggregate.
func (b *Batch) computeBounds() {
	if cap(b.lineBounds) >= len(b.lines) {
		b.lineBounds = b.lineBounds[:len(b.lines)]
	} else {
		b.lineBounds = make([]Box3, len(b.lines))
	}
	agg := EmptyBox()
	for i := range b.lines {
		b.lineBounds[i] = boxOf(b.lines[i].flat)
		if !b.layouts[i].Skipped {
			agg = agg.Union(b.lineBounds[i])
		}
	}
	b.bounds = agg
	b.sphere = agg.BoundingSphere()
}

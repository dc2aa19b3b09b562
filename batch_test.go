package ribbon

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func mustBuild(t *testing.T, lines []Polyline, opts ...Option) *Batch {
	t.Helper()
	b, err := Build(lines, opts...)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return b
}

func attrData(t *testing.T, b *Batch, name string) []float32 {
	t.Helper()
	a := b.Attribute(name)
	if a == nil {
		t.Fatalf("attribute %q missing", name)
	}
	return a.Float32s()
}

func indices(b *Batch) []uint32 {
	ix := b.Index()
	out := make([]uint32, ix.Len())
	for i := range out {
		out[i] = ix.At(i)
	}
	return out
}

func vertexAt(data []float32, v int) Vec3 {
	return vec3At(data, v)
}

func TestBuild_OpenLine(t *testing.T) {
	b := mustBuild(t, []Polyline{{Points: []float32{0, 0, 0, 1, 0, 0, 2, 0, 0}}})

	if got := b.VertexCount(); got != 6 {
		t.Errorf("VertexCount() = %d, want 6", got)
	}
	// Two segments of two triangles each.
	if got := b.IndexCount(); got != 12 {
		t.Errorf("IndexCount() = %d, want 12", got)
	}
	wantCounter := []float32{0, 0, 0.5, 0.5, 1, 1}
	if got := attrData(t, b, AttrCounter); !equalFloats(got, wantCounter) {
		t.Errorf("counter = %v, want %v", got, wantCounter)
	}
	wantSide := []float32{1, -1, 1, -1, 1, -1}
	if got := attrData(t, b, AttrSide); !equalFloats(got, wantSide) {
		t.Errorf("side = %v, want %v", got, wantSide)
	}
	wantUV := []float32{0, 0, 0, 1, 0.5, 0, 0.5, 1, 1, 0, 1, 1}
	if got := attrData(t, b, AttrUV); !equalFloats(got, wantUV) {
		t.Errorf("uv = %v, want %v", got, wantUV)
	}
	wantIdx := []uint32{0, 1, 2, 2, 1, 3, 2, 3, 4, 4, 3, 5}
	got := indices(b)
	for i := range wantIdx {
		if got[i] != wantIdx[i] {
			t.Fatalf("indices = %v, want %v", got, wantIdx)
		}
	}
	if b.IndexFormat() != gputypes.IndexFormatUint16 {
		t.Errorf("IndexFormat() = %v, want Uint16", b.IndexFormat())
	}
}

func TestBuild_ClosedLine(t *testing.T) {
	b := mustBuild(t, []Polyline{{Points: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}}}, WithClosed(true))

	if got := b.VertexCount(); got != 8 {
		t.Errorf("VertexCount() = %d, want 8", got)
	}
	if got := b.IndexCount(); got != 18 {
		t.Errorf("IndexCount() = %d, want 18", got)
	}
	lines := b.Lines()
	if !lines[0].Closed || lines[0].Points != 4 {
		t.Errorf("layout = %+v, want closed with 4 points", lines[0])
	}

	prev := attrData(t, b, AttrPrevious)
	next := attrData(t, b, AttrNext)
	pos := attrData(t, b, AttrPosition)
	if got := vertexAt(prev, 0); got != V3(0, 1, 0) {
		t.Errorf("previous[0] = %v, want (0,1,0)", got)
	}
	if got := vertexAt(prev, 1); got != V3(0, 1, 0) {
		t.Errorf("previous[1] = %v, want (0,1,0)", got)
	}
	// The duplicate last point wraps forward to point 1.
	if got := vertexAt(next, 6); got != V3(1, 0, 0) {
		t.Errorf("next[6] = %v, want (1,0,0)", got)
	}
	if got := vertexAt(pos, 6); got != V3(0, 0, 0) {
		t.Errorf("position[6] = %v, want the first point", got)
	}
}

func TestBuild_BatchIndicesStayInLine(t *testing.T) {
	b := mustBuild(t, []Polyline{
		{Points: []float32{0, 0, 0, 1, 0, 0, 2, 0, 0}},
		{Points: [][3]float32{{0, 1, 0}, {1, 1, 0}, {2, 1, 0}, {3, 1, 0}, {4, 1, 0}}},
	})

	if got := b.VertexCount(); got != 16 {
		t.Errorf("VertexCount() = %d, want 16", got)
	}
	if got := b.IndexCount(); got != 36 {
		t.Errorf("IndexCount() = %d, want 36", got)
	}
	lines := b.Lines()
	idx := indices(b)
	for k := lines[1].IndexStart; k < lines[1].IndexStart+lines[1].IndexCount; k++ {
		if idx[k] < 6 {
			t.Errorf("index %d of line 1 = %d, references line 0", k, idx[k])
		}
	}
	if err := b.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func longLine(n int, z float32) []float32 {
	flat := make([]float32, 0, n*3)
	for i := 0; i < n; i++ {
		flat = append(flat, float32(i), 0, z)
	}
	return flat
}

func TestBuild_WideIndicesSurviveUpdate(t *testing.T) {
	const n = 40000 // 80000 vertices
	b := mustBuild(t, []Polyline{{Points: longLine(n, 0)}})

	if b.IndexFormat() != gputypes.IndexFormatUint32 {
		t.Fatalf("IndexFormat() = %v, want Uint32", b.IndexFormat())
	}
	mode, err := b.SetPositions([]any{longLine(n, 1)})
	if err != nil {
		t.Fatalf("SetPositions() error = %v", err)
	}
	if mode != UpdateInPlace {
		t.Errorf("mode = %v, want InPlace", mode)
	}
	if b.IndexFormat() != gputypes.IndexFormatUint32 || b.Index().Format() != gputypes.IndexFormatUint32 {
		t.Error("index width switched back after in-place update")
	}

	// A rebuild below the threshold narrows the indices again.
	if err := b.Rebuild([]Polyline{{Points: longLine(10, 0)}}); err != nil {
		t.Fatal(err)
	}
	if b.IndexFormat() != gputypes.IndexFormatUint16 {
		t.Errorf("IndexFormat() after small rebuild = %v, want Uint16", b.IndexFormat())
	}
}

func TestBuild_ReflectedEnds(t *testing.T) {
	b := mustBuild(t, []Polyline{{Points: []Vec3{V3(1, 1, 0), V3(2, 3, 0), V3(4, 4, 1)}}})

	prev := attrData(t, b, AttrPrevious)
	next := attrData(t, b, AttrNext)
	if got, want := vertexAt(prev, 0), V3(0, -1, 0); got != want {
		t.Errorf("previous[0] = %v, want %v", got, want)
	}
	if got, want := vertexAt(next, 5), V3(6, 5, 2); got != want {
		t.Errorf("next[last] = %v, want %v", got, want)
	}
	if got, want := vertexAt(prev, 2), V3(1, 1, 0); got != want {
		t.Errorf("previous[2] = %v, want %v", got, want)
	}
}

func TestBuild_CounterMonotonic(t *testing.T) {
	b := mustBuild(t, []Polyline{
		{Points: longLine(7, 0)},
		{Points: longLine(4, 1), Closed: true},
	})
	counter := attrData(t, b, AttrCounter)
	for _, l := range b.Lines() {
		c := counter[l.VertexStart : l.VertexStart+l.VertexCount]
		if c[0] != 0 || c[len(c)-1] != 1 {
			t.Errorf("counter ends = %v, %v; want 0, 1", c[0], c[len(c)-1])
		}
		for i := 1; i < len(c); i++ {
			if c[i] < c[i-1] {
				t.Errorf("counter decreases at %d: %v", i, c)
				break
			}
		}
	}
}

func TestBuild_DegenerateInput(t *testing.T) {
	b := mustBuild(t, []Polyline{
		{Points: []float32{5, 5, 5}},
		{Points: []float32{0, 0, 0, 1, 0, 0}, Closed: true},
		{Points: nil},
		{Points: []any{[]float64{0, 0, 0}, "bad", []float64{1, 1, 1}}},
	})

	lines := b.Lines()
	if !lines[0].Skipped || lines[0].VertexCount != 0 {
		t.Errorf("single point line = %+v, want skipped", lines[0])
	}
	if lines[1].Closed || lines[1].Points != 2 {
		t.Errorf("two point loop = %+v, want demoted to open", lines[1])
	}
	if !lines[2].Skipped {
		t.Errorf("empty line = %+v, want skipped", lines[2])
	}
	if lines[3].Points != 2 {
		t.Errorf("line with bad point = %+v, want 2 points", lines[3])
	}
	if got := b.VertexCount(); got != 8 {
		t.Errorf("VertexCount() = %d, want 8", got)
	}
	if lines[3].VertexStart != 4 {
		t.Errorf("line 3 VertexStart = %d, want 4", lines[3].VertexStart)
	}
	// Skipped lines do not contribute to the aggregate bounds.
	if b.BoundingBox().Max.X != 1 {
		t.Errorf("BoundingBox() = %+v, want max x 1", b.BoundingBox())
	}
}

func TestBuild_InvalidConfig(t *testing.T) {
	_, err := Build([]Polyline{{}, {}}, WithClosedLines([]bool{true}))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Build() error = %v, want ErrInvalidConfig", err)
	}
}

func TestBuild_WidthFunc(t *testing.T) {
	half := func(t float32) float32 { return t / 2 }
	b := mustBuild(t, []Polyline{
		{Points: longLine(3, 0)},
		{Points: longLine(3, 1), Width: func(float32) float32 { return 7 }},
	}, WithWidthFunc(half))

	want := []float32{0, 0, 0.25, 0.25, 0.5, 0.5, 7, 7, 7, 7, 7, 7}
	if got := attrData(t, b, AttrWidth); !equalFloats(got, want) {
		t.Errorf("width = %v, want %v", got, want)
	}
}

func TestBuild_DisabledAttributes(t *testing.T) {
	b := mustBuild(t, []Polyline{{Points: longLine(3, 0)}},
		WithUV(false), WithWidth(false), WithCounter(false), WithPrevious(false), WithNext(false))

	for _, name := range []string{AttrUV, AttrWidth, AttrCounter, AttrPrevious, AttrNext} {
		if b.Attribute(name) != nil {
			t.Errorf("attribute %q allocated, want disabled", name)
		}
	}
	if got := len(b.Attributes()); got != 2 {
		t.Errorf("len(Attributes()) = %d, want 2", got)
	}
	mode, err := b.SetPositions([]any{longLine(3, 2)})
	if err != nil || mode != UpdateInPlace {
		t.Errorf("SetPositions() = %v, %v; want InPlace", mode, err)
	}
	if got := vertexAt(attrData(t, b, AttrPosition), 0); got != V3(0, 0, 2) {
		t.Errorf("position[0] = %v, want (0,0,2)", got)
	}
}

func snapshot(b *Batch) map[string][]float32 {
	out := make(map[string][]float32)
	for _, a := range b.Attributes() {
		out[a.Name()] = append([]float32(nil), a.Float32s()...)
	}
	return out
}

func TestSetPositions_InPlaceLeavesTopology(t *testing.T) {
	b := mustBuild(t, []Polyline{
		{Points: longLine(4, 0)},
		{Points: longLine(3, 1), Closed: true},
	}, WithWidthFunc(func(t float32) float32 { return 1 + t }))

	before := snapshot(b)
	idxBefore := indices(b)
	ixVersion := b.Index().Version()
	sideArr := b.Attribute(AttrSide)
	for _, a := range b.Attributes() {
		a.ClearDirty()
	}

	mode, err := b.SetPositions([]any{longLine(4, 5), longLine(3, 6)})
	if err != nil {
		t.Fatal(err)
	}
	if mode != UpdateInPlace {
		t.Fatalf("mode = %v, want InPlace", mode)
	}

	after := snapshot(b)
	for _, name := range []string{AttrSide, AttrWidth, AttrUV, AttrCounter} {
		if !equalFloats(before[name], after[name]) {
			t.Errorf("%s changed on in-place update", name)
		}
	}
	for _, name := range []string{AttrPosition, AttrPrevious, AttrNext} {
		if equalFloats(before[name], after[name]) {
			t.Errorf("%s not rewritten", name)
		}
	}
	idxAfter := indices(b)
	for i := range idxBefore {
		if idxBefore[i] != idxAfter[i] {
			t.Fatal("indices changed on in-place update")
		}
	}
	if b.Index().Version() != ixVersion {
		t.Error("index version bumped on in-place update")
	}
	if b.Attribute(AttrSide) != sideArr {
		t.Error("side array replaced on in-place update")
	}

	dirty := map[string]bool{}
	for _, name := range b.DirtyAttributes() {
		dirty[name] = true
	}
	if len(dirty) != 3 || !dirty[AttrPosition] || !dirty[AttrPrevious] || !dirty[AttrNext] {
		t.Errorf("DirtyAttributes() = %v, want position, previous, next", b.DirtyAttributes())
	}
}

func TestSetPositions_RoundTrip(t *testing.T) {
	lines := []Polyline{
		{Points: longLine(5, 0)},
		{Points: [][2]float64{{0, 0}, {1, 0}, {1, 1}}, Closed: true},
	}
	b := mustBuild(t, lines)
	before := snapshot(b)

	mode, err := b.SetPositions([]any{lines[0].Points, lines[1].Points})
	if err != nil || mode != UpdateInPlace {
		t.Fatalf("SetPositions() = %v, %v", mode, err)
	}
	after := snapshot(b)
	for name, data := range before {
		if !equalFloats(data, after[name]) {
			t.Errorf("%s differs after round trip", name)
		}
	}
}

func TestSetPositions_FallbackMatchesRebuild(t *testing.T) {
	var reasons []error
	opts := []Option{
		WithWidthFunc(func(t float32) float32 { return 2 - t }),
		WithFallbackHook(func(reason error) { reasons = append(reasons, reason) }),
	}
	b := mustBuild(t, []Polyline{
		{Points: longLine(3, 0)},
		{Points: longLine(4, 1), Closed: true},
	}, opts...)

	newPoints := []any{longLine(6, 2), longLine(5, 3)}
	mode, err := b.SetPositions(newPoints)
	if err != nil {
		t.Fatal(err)
	}
	if mode != UpdateRebuilt {
		t.Fatalf("mode = %v, want Rebuilt", mode)
	}
	if len(reasons) != 1 || !errors.Is(reasons[0], ErrTopologyMismatch) {
		t.Errorf("fallback reasons = %v, want one ErrTopologyMismatch", reasons)
	}

	fresh := mustBuild(t, []Polyline{
		{Points: newPoints[0]},
		{Points: newPoints[1], Closed: true},
	}, opts...)
	got, want := snapshot(b), snapshot(fresh)
	for name, data := range want {
		if !equalFloats(got[name], data) {
			t.Errorf("%s differs from fresh build", name)
		}
	}
	gi, wi := indices(b), indices(fresh)
	if len(gi) != len(wi) {
		t.Fatalf("index count = %d, want %d", len(gi), len(wi))
	}
	for i := range wi {
		if gi[i] != wi[i] {
			t.Fatal("indices differ from fresh build")
		}
	}

	s := b.Stats()
	if s.Builds != 2 || s.Fallbacks != 1 || s.InPlaceUpdates != 0 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestSetPositions_LineCountChange(t *testing.T) {
	b := mustBuild(t, []Polyline{{Points: longLine(3, 0)}})
	mode, err := b.SetPositions([]any{longLine(3, 0), longLine(2, 1)})
	if err != nil || mode != UpdateRebuilt {
		t.Fatalf("SetPositions() = %v, %v; want Rebuilt", mode, err)
	}
	if b.LineCount() != 2 || b.VertexCount() != 10 {
		t.Errorf("LineCount() = %d, VertexCount() = %d", b.LineCount(), b.VertexCount())
	}
}

func TestSetPositions_LineCountChangeWithClosedLines(t *testing.T) {
	tri := []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}
	var reasons []error
	b := mustBuild(t, []Polyline{{Points: tri}},
		WithClosedLines([]bool{true}),
		WithFallbackHook(func(reason error) { reasons = append(reasons, reason) }))

	mode, err := b.SetPositions([]any{tri, longLine(2, 1)})
	if err != nil || mode != UpdateRebuilt {
		t.Fatalf("SetPositions() = %v, %v; want Rebuilt", mode, err)
	}
	if l, _ := b.Line(0); !l.Closed {
		t.Error("line 0 lost its closed flag")
	}
	if l, _ := b.Line(1); l.Closed {
		t.Error("line 1 without a ClosedLines entry is closed")
	}
	if st := b.Stats(); st.Builds != 2 || st.Fallbacks != 1 {
		t.Errorf("Stats() = %+v, want Builds 2 Fallbacks 1", st)
	}
	if len(reasons) != 1 || !errors.Is(reasons[0], ErrTopologyMismatch) {
		t.Errorf("fallback reasons = %v, want one ErrTopologyMismatch", reasons)
	}
}

func TestSetPositions_LeavesCallerLinesUntouched(t *testing.T) {
	orig := []float32{0, 0, 0, 1, 1, 1, 2, 2, 2}
	lines := []Polyline{{Points: orig}}
	b := mustBuild(t, lines)

	moved := []float32{5, 5, 5, 6, 6, 6, 7, 7, 7}
	if mode, err := b.SetPositions([]any{moved}); err != nil || mode != UpdateInPlace {
		t.Fatalf("SetPositions() = %v, %v; want InPlace", mode, err)
	}

	got, ok := lines[0].Points.([]float32)
	if !ok || &got[0] != &orig[0] {
		t.Fatalf("caller's lines[0].Points replaced with %v", lines[0].Points)
	}
	if got[0] != 0 || got[8] != 2 {
		t.Errorf("caller's points modified: %v", got)
	}

	if err := b.Rebuild(lines); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	if pos := attrData(t, b, AttrPosition); pos[0] != 0 || pos[len(pos)-1] != 2 {
		t.Errorf("rebuild from caller's lines gave positions %v", pos)
	}
}

func TestSetPositions_ReusesArraysOnRebuild(t *testing.T) {
	b := mustBuild(t, []Polyline{{Points: longLine(3, 0)}, {Points: longLine(3, 1)}})
	side := b.Attribute(AttrSide)

	// Same total vertex count, different per-line split.
	mode, err := b.SetPositions([]any{longLine(2, 0), longLine(4, 1)})
	if err != nil || mode != UpdateRebuilt {
		t.Fatalf("SetPositions() = %v, %v", mode, err)
	}
	if b.Attribute(AttrSide) != side {
		t.Error("side array of unchanged size was reallocated")
	}
	if b.Stats().Reuses == 0 {
		t.Error("Stats().Reuses = 0, want reuse on rebuild")
	}
}

func TestSetPositions_Bounds(t *testing.T) {
	b := mustBuild(t, []Polyline{{Points: longLine(3, 0)}})

	if _, err := b.SetPositions([]any{longLine(3, 4)}); err != nil {
		t.Fatal(err)
	}
	if got := b.BoundingBox().Max.Z; got != 0 {
		t.Errorf("bounds updated without WithBoundsUpdate: max z = %v", got)
	}
	if _, err := b.SetPositions([]any{longLine(3, 4)}, WithBoundsUpdate()); err != nil {
		t.Fatal(err)
	}
	if got := b.BoundingBox().Max.Z; got != 4 {
		t.Errorf("max z = %v, want 4", got)
	}
	box, ok := b.LineBounds(0)
	if !ok || box.Min != V3(0, 0, 4) || box.Max != V3(2, 0, 4) {
		t.Errorf("LineBounds(0) = %+v, %v", box, ok)
	}
	if s := b.BoundingSphere(); s.Center != V3(1, 0, 4) || s.Radius != 1 {
		t.Errorf("BoundingSphere() = %+v", s)
	}
}

func TestDispose(t *testing.T) {
	b := mustBuild(t, []Polyline{{Points: longLine(3, 0)}})
	pos := b.Attribute(AttrPosition)
	b.Dispose()
	b.Dispose()

	if !b.Disposed() || !pos.Released() {
		t.Error("Dispose() did not release arrays")
	}
	if _, err := b.SetPositions([]any{longLine(3, 0)}); !errors.Is(err, ErrDisposed) {
		t.Errorf("SetPositions() after Dispose = %v, want ErrDisposed", err)
	}
	if err := b.Rebuild(nil); !errors.Is(err, ErrDisposed) {
		t.Errorf("Rebuild() after Dispose = %v, want ErrDisposed", err)
	}
	if err := b.Advance(0, V3(0, 0, 0)); !errors.Is(err, ErrDisposed) {
		t.Errorf("Advance() after Dispose = %v, want ErrDisposed", err)
	}
}

func TestAdvance(t *testing.T) {
	b := mustBuild(t, []Polyline{
		{Points: []float32{0, 0, 0, 1, 0, 0, 2, 0, 0}},
		{Points: longLine(3, 1), Closed: true},
	})
	idxVersion := b.Index().Version()

	if err := b.Advance(0, V3(3, 0, 0), WithBoundsUpdate()); err != nil {
		t.Fatal(err)
	}
	pts, err := b.Points(0)
	if err != nil {
		t.Fatal(err)
	}
	if want := []float32{1, 0, 0, 2, 0, 0, 3, 0, 0}; !equalFloats(pts, want) {
		t.Errorf("Points(0) = %v, want %v", pts, want)
	}
	pos := attrData(t, b, AttrPosition)
	if got := vertexAt(pos, 5); got != V3(3, 0, 0) {
		t.Errorf("position[5] = %v, want (3,0,0)", got)
	}
	if got := vertexAt(attrData(t, b, AttrNext), 5); got != V3(4, 0, 0) {
		t.Errorf("next[5] = %v, want reflected (4,0,0)", got)
	}
	if b.Index().Version() != idxVersion {
		t.Error("Advance touched the index array")
	}
	if box, _ := b.LineBounds(0); box.Max.X != 3 {
		t.Errorf("LineBounds(0).Max.X = %v, want 3", box.Max.X)
	}

	if err := b.Advance(1, V3(0, 0, 0)); !errors.Is(err, ErrClosedLine) {
		t.Errorf("Advance(closed) = %v, want ErrClosedLine", err)
	}
	if err := b.Advance(5, V3(0, 0, 0)); !errors.Is(err, ErrLineRange) {
		t.Errorf("Advance(5) = %v, want ErrLineRange", err)
	}
}

func TestInstances(t *testing.T) {
	b := mustBuild(t, []Polyline{{Points: longLine(3, 0)}}, WithInstanceCount(4))

	if err := b.SetInstanceAttribute("offset", 3); err != nil {
		t.Fatal(err)
	}
	if err := b.SetInstance("offset", 2, 1, 2, 3); err != nil {
		t.Fatal(err)
	}
	a := b.InstanceAttribute("offset")
	if a.StepMode() != gputypes.VertexStepModeInstance {
		t.Errorf("StepMode() = %v, want Instance", a.StepMode())
	}
	if want := []float32{0, 0, 0, 0, 0, 0, 1, 2, 3, 0, 0, 0}; !equalFloats(a.Float32s(), want) {
		t.Errorf("offset = %v, want %v", a.Float32s(), want)
	}

	tests := []struct {
		name  string
		attr  string
		index int
		vals  []float32
		want  error
	}{
		{"unknown", "color", 0, []float32{1}, ErrUnknownAttribute},
		{"negative", "offset", -1, []float32{1, 2, 3}, ErrInstanceRange},
		{"past end", "offset", 4, []float32{1, 2, 3}, ErrInstanceRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := b.SetInstance(tt.attr, tt.index, tt.vals...); !errors.Is(err, tt.want) {
				t.Errorf("SetInstance() = %v, want %v", err, tt.want)
			}
		})
	}
	if err := b.SetInstance("offset", 0, 1); err == nil {
		t.Error("SetInstance() with wrong value count should fail")
	}
	if err := b.SetInstanceAttribute(AttrPosition, 3); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("SetInstanceAttribute(position) = %v, want ErrInvalidConfig", err)
	}

	plain := mustBuild(t, []Polyline{{Points: longLine(3, 0)}})
	if err := plain.SetInstanceAttribute("offset", 3); !errors.Is(err, ErrInstanceRange) {
		t.Errorf("SetInstanceAttribute() without instances = %v, want ErrInstanceRange", err)
	}
}

func TestVertexLayouts(t *testing.T) {
	b := mustBuild(t, []Polyline{{Points: longLine(3, 0)}}, WithInstanceCount(1), WithUV(false))
	if err := b.SetInstanceAttribute("tint", 4); err != nil {
		t.Fatal(err)
	}

	layouts := b.VertexLayouts()
	want := []struct {
		stride   uint64
		format   gputypes.VertexFormat
		location uint32
		step     gputypes.VertexStepMode
	}{
		{12, gputypes.VertexFormatFloat32x3, LocationPosition, gputypes.VertexStepModeVertex},
		{12, gputypes.VertexFormatFloat32x3, LocationPrevious, gputypes.VertexStepModeVertex},
		{12, gputypes.VertexFormatFloat32x3, LocationNext, gputypes.VertexStepModeVertex},
		{4, gputypes.VertexFormatFloat32, LocationSide, gputypes.VertexStepModeVertex},
		{4, gputypes.VertexFormatFloat32, LocationWidth, gputypes.VertexStepModeVertex},
		{4, gputypes.VertexFormatFloat32, LocationCounter, gputypes.VertexStepModeVertex},
		{16, gputypes.VertexFormatFloat32x4, FirstInstanceLocation, gputypes.VertexStepModeInstance},
	}
	if len(layouts) != len(want) {
		t.Fatalf("len(VertexLayouts()) = %d, want %d", len(layouts), len(want))
	}
	for i, w := range want {
		l := layouts[i]
		if l.ArrayStride != w.stride || l.StepMode != w.step ||
			l.Attributes[0].Format != w.format || l.Attributes[0].ShaderLocation != w.location {
			t.Errorf("layout %d = %+v, want %+v", i, l, w)
		}
	}
}

func TestUpdateMode_String(t *testing.T) {
	tests := []struct {
		mode UpdateMode
		want string
	}{
		{UpdateNone, "None"},
		{UpdateInPlace, "InPlace"},
		{UpdateRebuilt, "Rebuilt"},
		{UpdateMode(9), "UpdateMode(9)"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

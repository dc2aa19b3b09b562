// Package ribbon packs polylines into GPU-ready triangle ribbon buffers.
//
// # Overview
//
// Every input point becomes a pair of vertices, one per side of the line.
// Each vertex carries its own position together with the previous and next
// point on the line, so a vertex shader can extrude the pair into a screen
// space ribbon of any width. Many polylines share one set of attribute
// arrays and one index array and draw with a single call.
//
// # Quick Start
//
//	b, err := ribbon.Build([]ribbon.Polyline{
//	    {Points: []float32{0, 0, 0, 1, 0, 0, 1, 1, 0}},
//	    {Points: [][2]float64{{0, 0}, {2, 0}, {2, 2}}, Closed: true},
//	}, ribbon.WithWidthFunc(func(t float32) float32 { return 1 - t }))
//	if err != nil {
//	    return err
//	}
//	defer b.Dispose()
//
//	// Move points without touching topology.
//	mode, err := b.SetPositions([]any{next0, next1})
//
// # Attributes
//
// A batch exposes position, previous and next (3 floats), side and width
// (1 float), uv (2 floats) and counter (1 float). previous, next, width, uv
// and counter can be disabled through options. The index array uses 16-bit
// indices while the vertex count fits, otherwise 32-bit.
//
// # Updates
//
// SetPositions rewrites only position, previous and next when every line
// keeps its point count and closed flag. Any other change falls back to a
// full rebuild that reuses arrays of unchanged size. Attributes flag
// themselves dirty on every write; consumers upload dirty arrays and call
// ClearDirty. The gpu subpackage does this for wgpu devices.
//
// # Concurrency
//
// A Batch is single-owner. Builds, updates and reads must not overlap.
package ribbon

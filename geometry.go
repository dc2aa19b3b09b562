package ribbon

import "fmt"

// geometry is the output of one full build: the attribute arrays, the
// indices and the per-line bookkeeping the incremental updater relies on.
// Disabled attributes are nil.
type geometry struct {
	position []float32
	previous []float32
	next     []float32
	side     []float32
	width    []float32
	uv       []float32
	counter  []float32

	indices []uint32
	lines   []LineLayout

	vertexCount int
}

// layoutLines assigns vertex and index ranges to every line. Lines with
// fewer than two points get empty ranges and are marked skipped.
func layoutLines(lines []preparedLine) (layouts []LineLayout, vertices, indices int) {
	layouts = make([]LineLayout, len(lines))
	for i := range lines {
		n := lines[i].points()
		l := LineLayout{
			Points:      n,
			Closed:      lines[i].closed,
			VertexStart: vertices,
			IndexStart:  indices,
		}
		if n < 2 {
			l.Skipped = true
		} else {
			l.VertexCount = 2 * n
			l.IndexCount = (n - 1) * 6
		}
		vertices += l.VertexCount
		indices += l.IndexCount
		layouts[i] = l
	}
	return layouts, vertices, indices
}

// buildGeometry computes every attribute and the triangle list for lines.
func buildGeometry(lines []preparedLine, cfg *Config) geometry {
	layouts, nv, ni := layoutLines(lines)

	g := geometry{
		position:    make([]float32, nv*3),
		side:        make([]float32, nv),
		indices:     make([]uint32, ni),
		lines:       layouts,
		vertexCount: nv,
	}
	if cfg.NeedsPrevious {
		g.previous = make([]float32, nv*3)
	}
	if cfg.NeedsNext {
		g.next = make([]float32, nv*3)
	}
	if cfg.NeedsWidth {
		g.width = make([]float32, nv)
	}
	if cfg.NeedsUV {
		g.uv = make([]float32, nv*2)
	}
	if cfg.NeedsCounter {
		g.counter = make([]float32, nv)
	}

	for i := range lines {
		l := &layouts[i]
		if l.Skipped {
			continue
		}
		writeLinePositions(lines[i].flat, l.Closed, g.position, g.previous, g.next, l.VertexStart)
		g.writeTopology(l, lines[i].width)
	}

	if debugInvariants {
		if err := checkIndices(g.indices, g.lines); err != nil {
			panic(err)
		}
	}
	return g
}

// writeTopology fills the attributes that depend only on the point count:
// side, width, uv, counter and the line's indices.
func (g *geometry) writeTopology(l *LineLayout, widthFn WidthFunc) {
	n := l.Points
	last := float32(n - 1)
	for i := 0; i < n; i++ {
		v := l.VertexStart + 2*i
		t := float32(i) / last

		g.side[v] = 1
		g.side[v+1] = -1

		if g.width != nil {
			w := float32(1)
			if widthFn != nil {
				w = widthFn(t)
			}
			g.width[v] = w
			g.width[v+1] = w
		}
		if g.uv != nil {
			g.uv[v*2] = t
			g.uv[v*2+1] = 0
			g.uv[v*2+2] = t
			g.uv[v*2+3] = 1
		}
		if g.counter != nil {
			g.counter[v] = t
			g.counter[v+1] = t
		}
	}

	idx := g.indices[l.IndexStart : l.IndexStart+l.IndexCount]
	for i := 0; i < n-1; i++ {
		a := uint32(l.VertexStart + 2*i)
		k := i * 6
		idx[k] = a
		idx[k+1] = a + 1
		idx[k+2] = a + 2
		idx[k+3] = a + 2
		idx[k+4] = a + 1
		idx[k+5] = a + 3
	}
}

// writeLinePositions writes position, previous and next for the vertex pairs
// of one line starting at vertex vo. previous and next may be nil.
// It is shared by full builds and in-place updates so both produce
// identical values.
func writeLinePositions(flat []float32, closed bool, position, previous, next []float32, vo int) {
	n := len(flat) / 3
	for i := 0; i < n; i++ {
		v := vo + 2*i
		p := vec3At(flat, i)
		putVec3(position, v, p)
		putVec3(position, v+1, p)
		if previous != nil {
			q := previousOf(flat, n, i, closed)
			putVec3(previous, v, q)
			putVec3(previous, v+1, q)
		}
		if next != nil {
			q := nextOf(flat, n, i, closed)
			putVec3(next, v, q)
			putVec3(next, v+1, q)
		}
	}
}

// previousOf returns the neighbor before point i. Open lines reflect the
// second point across the first; closed lines wrap to the last point before
// the duplicate.
func previousOf(flat []float32, n, i int, closed bool) Vec3 {
	switch {
	case i > 0:
		return vec3At(flat, i-1)
	case closed:
		return vec3At(flat, n-2)
	default:
		return vec3At(flat, 0).Reflect(vec3At(flat, 1))
	}
}

// nextOf returns the neighbor after point i. Open lines reflect the
// second-to-last point across the last; closed lines wrap to the first point
// after the seam.
func nextOf(flat []float32, n, i int, closed bool) Vec3 {
	switch {
	case i < n-1:
		return vec3At(flat, i+1)
	case closed:
		return vec3At(flat, 1)
	default:
		return vec3At(flat, n-1).Reflect(vec3At(flat, n-2))
	}
}

// checkIndices verifies that every triangle references vertices of the line
// that owns it and that the format can address every vertex.
func checkIndices(indices []uint32, lines []LineLayout) error {
	for li, l := range lines {
		if l.IndexStart+l.IndexCount > len(indices) {
			return fmt.Errorf("ribbon: line %d index range [%d,%d) exceeds %d indices", li, l.IndexStart, l.IndexStart+l.IndexCount, len(indices))
		}
		lo, hi := uint32(l.VertexStart), uint32(l.VertexStart+l.VertexCount)
		for k := l.IndexStart; k < l.IndexStart+l.IndexCount; k++ {
			if v := indices[k]; v < lo || v >= hi {
				return fmt.Errorf("ribbon: index %d of line %d references vertex %d outside [%d,%d)", k, li, v, lo, hi)
			}
		}
	}
	return nil
}

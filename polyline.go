package ribbon

// Attribute names registered in a batch's vertex store.
const (
	AttrPosition = "position"
	AttrPrevious = "previous"
	AttrNext     = "next"
	AttrSide     = "side"
	AttrWidth    = "width"
	AttrUV       = "uv"
	AttrCounter  = "counter"
)

// Polyline is an ordered sequence of points rendered as one ribbon.
type Polyline struct {
	// Points holds the polyline's points in any shape accepted by
	// NormalizePoints.
	Points any

	// Closed joins the last point back to the first. Lines with fewer than
	// three points stay open.
	Closed bool

	// Width overrides the batch's width function for this line.
	Width WidthFunc
}

// LineLayout describes where one polyline lives in the batch buffers.
type LineLayout struct {
	// Points is the point count after loop closing.
	Points int

	// Closed reports whether the line was closed (after degenerate-loop demotion).
	Closed bool

	// VertexStart is the first vertex of the line; VertexCount is 2·Points.
	VertexStart int
	VertexCount int

	// IndexStart is the first index of the line; IndexCount is 6·(Points−1).
	IndexStart int
	IndexCount int

	// Skipped reports a line excluded for having fewer than two points.
	Skipped bool
}

// preparedLine is a normalized, loop-closed polyline ready for the builder.
type preparedLine struct {
	flat   []float32
	closed bool
	width  WidthFunc
}

func (l *preparedLine) points() int { return len(l.flat) / 3 }

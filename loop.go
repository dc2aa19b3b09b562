package ribbon

// minLoopPoints is the smallest point count that can form a closed loop.
const minLoopPoints = 3

// CloseLoop prepares a flat xyz array for buffer construction.
//
// When closed is true and flat holds at least three points, CloseLoop returns
// a new array with the first point appended and reports true. The appended
// duplicate counts as a real point for every later attribute and index.
// A closed request on fewer than three points is demoted to open: flat is
// returned unchanged and CloseLoop reports false. Open input is returned
// unchanged.
func CloseLoop(flat []float32, closed bool) ([]float32, bool) {
	if !closed {
		return flat, false
	}
	if len(flat)/3 < minLoopPoints {
		return flat, false
	}
	out := make([]float32, len(flat)+3)
	copy(out, flat)
	copy(out[len(flat):], flat[:3])
	return out, true
}

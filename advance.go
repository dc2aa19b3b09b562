package ribbon

import "fmt"

// Advance shifts the points of open line i back by one and appends p as its
// new last point, keeping the point count. It is the in-place path for
// trails that follow a moving head.
func (b *Batch) Advance(line int, p Vec3, opts ...UpdateOption) error {
	if b.disposed {
		return ErrDisposed
	}
	if line < 0 || line >= len(b.layouts) || b.layouts[line].Skipped {
		return fmt.Errorf("%w: %d", ErrLineRange, line)
	}
	if b.layouts[line].Closed {
		return fmt.Errorf("%w: line %d", ErrClosedLine, line)
	}
	var uo updateOptions
	for _, opt := range opts {
		opt(&uo)
	}

	flat := b.lines[line].flat
	copy(flat, flat[3:])
	putVec3(flat, len(flat)/3-1, p)
	b.writePositions(line)

	if uo.bounds {
		b.computeBounds()
	}
	b.stats.InPlaceUpdates++
	return nil
}

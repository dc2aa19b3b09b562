package ribbon

import (
	"fmt"
	"reflect"

	"github.com/chewxy/math32"
)

// PointXYZ is implemented by point records exposing three coordinates.
type PointXYZ interface {
	XYZ() (x, y, z float64)
}

// PointXY is implemented by planar point records. Z defaults to 0.
type PointXY interface {
	XY() (x, y float64)
}

// VertexSource is an externally owned vertex buffer, such as an attribute of
// another batch. Item sizes 3 (xyz) and 2 (xy, z=0) are accepted.
type VertexSource interface {
	Float32s() []float32
	ItemSize() int
}

// NormalizePoints converts a polyline's points into a flat xyz float32 array.
//
// Accepted inputs:
//   - flat numeric slices ([]float32, []float64, or any slice whose first
//     element is a number), consumed three values per point
//   - point sequences: []Vec3, [][3]float32, [][3]float64, [][2]float32,
//     [][2]float64, or any slice whose elements are Vec3, PointXYZ, PointXY,
//     numeric slices of length 2 or 3, or maps with numeric "x", "y" and
//     optional "z" keys
//   - a VertexSource
//
// Elements that cannot be interpreted, including non-finite coordinates and a
// trailing partial point in a flat array, are dropped. The result holds the
// valid points only and the returned *PointFormatError reports the loss.
// An unsupported input type yields nil and ErrInvalidPointFormat.
// The input is never retained or modified.
func NormalizePoints(src any) ([]float32, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case []float32:
		return normalizeFlat(len(v), func(i int) (float64, bool) { return float64(v[i]), true })
	case []float64:
		return normalizeFlat(len(v), func(i int) (float64, bool) { return v[i], true })
	case []Vec3:
		return normalizeEach(len(v), func(i int) (Vec3, bool) { return v[i], true })
	case [][3]float32:
		return normalizeEach(len(v), func(i int) (Vec3, bool) { return V3(v[i][0], v[i][1], v[i][2]), true })
	case [][3]float64:
		return normalizeEach(len(v), func(i int) (Vec3, bool) {
			return Vec3{X: float32(v[i][0]), Y: float32(v[i][1]), Z: float32(v[i][2])}, true
		})
	case [][2]float32:
		return normalizeEach(len(v), func(i int) (Vec3, bool) { return V3(v[i][0], v[i][1], 0), true })
	case [][2]float64:
		return normalizeEach(len(v), func(i int) (Vec3, bool) {
			return Vec3{X: float32(v[i][0]), Y: float32(v[i][1])}, true
		})
	case VertexSource:
		return normalizeSource(v)
	case []any:
		if len(v) > 0 {
			if _, ok := toFloat(v[0]); ok {
				return normalizeFlat(len(v), func(i int) (float64, bool) { return toFloat(v[i]) })
			}
		}
		return normalizeEach(len(v), func(i int) (Vec3, bool) { return pointFrom(v[i]) })
	}

	rv := reflect.ValueOf(src)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: unsupported input %T", ErrInvalidPointFormat, src)
	}
	n := rv.Len()
	if n > 0 {
		if _, ok := toFloat(rv.Index(0).Interface()); ok {
			return normalizeFlat(n, func(i int) (float64, bool) { return toFloat(rv.Index(i).Interface()) })
		}
	}
	return normalizeEach(n, func(i int) (Vec3, bool) { return pointFrom(rv.Index(i).Interface()) })
}

// normalizeFlat consumes n scalar values three at a time.
func normalizeFlat(n int, at func(i int) (float64, bool)) ([]float32, error) {
	out := make([]float32, 0, n-n%3)
	var perr *PointFormatError
	for p := 0; p < n/3; p++ {
		x, okx := at(p * 3)
		y, oky := at(p*3 + 1)
		z, okz := at(p*3 + 2)
		v := Vec3{X: float32(x), Y: float32(y), Z: float32(z)}
		if okx && oky && okz && finite(v) {
			out = append(out, v.X, v.Y, v.Z)
			continue
		}
		perr = dropped(perr, p)
	}
	if n%3 != 0 {
		perr = dropped(perr, n/3)
	}
	return out, asError(perr)
}

// normalizeEach consumes n point records.
func normalizeEach(n int, at func(i int) (Vec3, bool)) ([]float32, error) {
	out := make([]float32, 0, n*3)
	var perr *PointFormatError
	for i := 0; i < n; i++ {
		v, ok := at(i)
		if ok && finite(v) {
			out = append(out, v.X, v.Y, v.Z)
			continue
		}
		perr = dropped(perr, i)
	}
	return out, asError(perr)
}

func normalizeSource(src VertexSource) ([]float32, error) {
	data := src.Float32s()
	switch src.ItemSize() {
	case 3:
		return normalizeFlat(len(data), func(i int) (float64, bool) { return float64(data[i]), true })
	case 2:
		return normalizeEach(len(data)/2, func(i int) (Vec3, bool) {
			return V3(data[i*2], data[i*2+1], 0), true
		})
	default:
		return nil, fmt.Errorf("%w: vertex source item size %d", ErrInvalidPointFormat, src.ItemSize())
	}
}

// pointFrom interprets a single point record.
func pointFrom(e any) (Vec3, bool) {
	switch p := e.(type) {
	case Vec3:
		return p, true
	case *Vec3:
		if p == nil {
			return Vec3{}, false
		}
		return *p, true
	case [3]float32:
		return V3(p[0], p[1], p[2]), true
	case [3]float64:
		return Vec3{X: float32(p[0]), Y: float32(p[1]), Z: float32(p[2])}, true
	case [2]float32:
		return V3(p[0], p[1], 0), true
	case [2]float64:
		return Vec3{X: float32(p[0]), Y: float32(p[1])}, true
	case PointXYZ:
		x, y, z := p.XYZ()
		return Vec3{X: float32(x), Y: float32(y), Z: float32(z)}, true
	case PointXY:
		x, y := p.XY()
		return Vec3{X: float32(x), Y: float32(y)}, true
	case map[string]any:
		return pointFromMap(func(k string) (any, bool) { v, ok := p[k]; return v, ok })
	case map[string]float64:
		return pointFromMap(func(k string) (any, bool) { v, ok := p[k]; return v, ok })
	case map[string]float32:
		return pointFromMap(func(k string) (any, bool) { v, ok := p[k]; return v, ok })
	}

	rv := reflect.ValueOf(e)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return Vec3{}, false
	}
	n := rv.Len()
	if n != 2 && n != 3 {
		return Vec3{}, false
	}
	var c [3]float64
	for i := 0; i < n; i++ {
		f, ok := toFloat(rv.Index(i).Interface())
		if !ok {
			return Vec3{}, false
		}
		c[i] = f
	}
	return Vec3{X: float32(c[0]), Y: float32(c[1]), Z: float32(c[2])}, true
}

func pointFromMap(get func(string) (any, bool)) (Vec3, bool) {
	xv, okx := get("x")
	yv, oky := get("y")
	if !okx || !oky {
		return Vec3{}, false
	}
	x, okx := toFloat(xv)
	y, oky := toFloat(yv)
	if !okx || !oky {
		return Vec3{}, false
	}
	var z float64
	if zv, ok := get("z"); ok {
		if z, ok = toFloat(zv); !ok {
			return Vec3{}, false
		}
	}
	return Vec3{X: float32(x), Y: float32(y), Z: float32(z)}, true
}

// toFloat converts the numeric kinds produced by JSON, YAML and TOML decoders.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

func finite(v Vec3) bool {
	return !math32.IsNaN(v.X) && !math32.IsNaN(v.Y) && !math32.IsNaN(v.Z) &&
		!math32.IsInf(v.X, 0) && !math32.IsInf(v.Y, 0) && !math32.IsInf(v.Z, 0)
}

func dropped(perr *PointFormatError, index int) *PointFormatError {
	if perr == nil {
		return &PointFormatError{Dropped: 1, First: index}
	}
	perr.Dropped++
	return perr
}

// asError avoids returning a typed nil pointer as a non-nil error.
func asError(perr *PointFormatError) error {
	if perr == nil {
		return nil
	}
	return perr
}

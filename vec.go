package ribbon

import "github.com/chewxy/math32"

// Vec3 represents a 3D point or displacement in the float32 precision used
// by the GPU-facing attribute arrays.
type Vec3 struct {
	X, Y, Z float32
}

// V3 is a convenience function to create a Vec3.
func V3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z}
}

// Mul returns the vector scaled by a scalar.
func (v Vec3) Mul(s float32) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Length returns the length of the vector.
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Min returns the component-wise minimum of v and w.
func (v Vec3) Min(w Vec3) Vec3 {
	return Vec3{X: math32.Min(v.X, w.X), Y: math32.Min(v.Y, w.Y), Z: math32.Min(v.Z, w.Z)}
}

// Max returns the component-wise maximum of v and w.
func (v Vec3) Max(w Vec3) Vec3 {
	return Vec3{X: math32.Max(v.X, w.X), Y: math32.Max(v.Y, w.Y), Z: math32.Max(v.Z, w.Z)}
}

// Reflect mirrors q across v, returning 2·v − q. This is the virtual
// neighbor synthesized at the open ends of a polyline.
func (v Vec3) Reflect(q Vec3) Vec3 {
	return Vec3{X: 2*v.X - q.X, Y: 2*v.Y - q.Y, Z: 2*v.Z - q.Z}
}

// Approx reports whether v and w are equal within epsilon per component.
func (v Vec3) Approx(w Vec3, epsilon float32) bool {
	return math32.Abs(v.X-w.X) <= epsilon &&
		math32.Abs(v.Y-w.Y) <= epsilon &&
		math32.Abs(v.Z-w.Z) <= epsilon
}

// vec3At reads the point at index i of a flat xyz array.
func vec3At(flat []float32, i int) Vec3 {
	j := i * 3
	return Vec3{X: flat[j], Y: flat[j+1], Z: flat[j+2]}
}

// putVec3 writes v at item index i of a flat xyz array.
func putVec3(dst []float32, i int, v Vec3) {
	j := i * 3
	dst[j] = v.X
	dst[j+1] = v.Y
	dst[j+2] = v.Z
}

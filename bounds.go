package ribbon

import "github.com/chewxy/math32"

// Box3 is an axis-aligned bounding box.
type Box3 struct {
	Min Vec3
	Max Vec3
}

// EmptyBox returns a box with +Inf minimum and -Inf maximum, the identity
// element for Union.
func EmptyBox() Box3 {
	inf := math32.Inf(1)
	return Box3{
		Min: Vec3{X: inf, Y: inf, Z: inf},
		Max: Vec3{X: -inf, Y: -inf, Z: -inf},
	}
}

// IsEmpty reports whether the box contains no points.
func (b Box3) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z
}

// ExpandByPoint returns the smallest box containing b and p.
func (b Box3) ExpandByPoint(p Vec3) Box3 {
	return Box3{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns the smallest box containing b and o.
func (b Box3) Union(o Box3) Box3 {
	return Box3{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Center returns the center of the box.
func (b Box3) Center() Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent of the box along each axis.
func (b Box3) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// BoundingSphere returns the smallest sphere enclosing the box. An empty box
// yields an empty sphere.
func (b Box3) BoundingSphere() Sphere {
	if b.IsEmpty() {
		return Sphere{Radius: -1}
	}
	return Sphere{Center: b.Center(), Radius: b.Size().Length() * 0.5}
}

// Sphere is a bounding sphere. A negative radius marks an empty sphere.
type Sphere struct {
	Center Vec3
	Radius float32
}

// IsEmpty reports whether the sphere encloses nothing.
func (s Sphere) IsEmpty() bool {
	return s.Radius < 0
}

// boxOf returns the bounding box of a flat xyz array.
func boxOf(flat []float32) Box3 {
	b := EmptyBox()
	for i := 0; i < len(flat)/3; i++ {
		b = b.ExpandByPoint(vec3At(flat, i))
	}
	return b
}

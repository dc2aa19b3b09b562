package ribbon

import "github.com/gogpu/gputypes"

// Shader locations of the vertex attributes. Instance attributes follow
// from FirstInstanceLocation in registration order.
const (
	LocationPosition uint32 = iota
	LocationPrevious
	LocationNext
	LocationSide
	LocationWidth
	LocationUV
	LocationCounter

	FirstInstanceLocation
)

var shaderLocations = map[string]uint32{
	AttrPosition: LocationPosition,
	AttrPrevious: LocationPrevious,
	AttrNext:     LocationNext,
	AttrSide:     LocationSide,
	AttrWidth:    LocationWidth,
	AttrUV:       LocationUV,
	AttrCounter:  LocationCounter,
}

// ShaderLocation returns the fixed shader location of a vertex attribute.
func ShaderLocation(name string) (uint32, bool) {
	loc, ok := shaderLocations[name]
	return loc, ok
}

// VertexLayouts describes one vertex buffer per attribute, vertex
// attributes first in registration order, then instance attributes.
// Buffer slot k of a render pass binds the k-th layout.
func (b *Batch) VertexLayouts() []gputypes.VertexBufferLayout {
	vertex := b.Attributes()
	instance := b.InstanceAttributes()
	layouts := make([]gputypes.VertexBufferLayout, 0, len(vertex)+len(instance))

	for _, a := range vertex {
		loc, _ := ShaderLocation(a.Name())
		layouts = append(layouts, bufferLayout(a, loc))
	}
	for k, a := range instance {
		layouts = append(layouts, bufferLayout(a, FirstInstanceLocation+uint32(k)))
	}
	return layouts
}

func bufferLayout(a *Attribute, location uint32) gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: a.Format().Size(),
		StepMode:    a.StepMode(),
		Attributes: []gputypes.VertexAttribute{
			{Format: a.Format(), Offset: 0, ShaderLocation: location},
		},
	}
}

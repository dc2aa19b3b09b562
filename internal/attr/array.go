package attr

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
)

// Array is a named float32 attribute array with a fixed item size.
type Array struct {
	name     string
	data     []float32
	itemSize int
	step     gputypes.VertexStepMode
	version  uint64
	dirty    bool
	released bool
}

func newArray(name string, data []float32, itemSize int, step gputypes.VertexStepMode) *Array {
	return &Array{
		name:     name,
		data:     data,
		itemSize: itemSize,
		step:     step,
		version:  1,
		dirty:    true,
	}
}

// Name returns the attribute name.
func (a *Array) Name() string { return a.name }

// ItemSize returns the number of components per item (1..4).
func (a *Array) ItemSize() int { return a.itemSize }

// Len returns the total number of float32 values.
func (a *Array) Len() int { return len(a.data) }

// Count returns the number of items (vertices or instances).
func (a *Array) Count() int {
	if a.itemSize == 0 {
		return 0
	}
	return len(a.data) / a.itemSize
}

// Float32s returns the backing storage. Writers that modify it directly
// must call MarkDirty afterwards.
func (a *Array) Float32s() []float32 { return a.data }

// Version returns a counter incremented on every write.
func (a *Array) Version() uint64 { return a.version }

// Dirty reports whether the array changed since the last ClearDirty.
func (a *Array) Dirty() bool { return a.dirty }

// MarkDirty records an in-place modification of the backing storage.
func (a *Array) MarkDirty() {
	a.version++
	a.dirty = true
}

// ClearDirty acknowledges that a consumer has read the current contents.
func (a *Array) ClearDirty() { a.dirty = false }

// Released reports whether the array has been dropped from its store.
func (a *Array) Released() bool { return a.released }

// StepMode returns whether the array advances per vertex or per instance.
func (a *Array) StepMode() gputypes.VertexStepMode { return a.step }

// Format returns the vertex format matching the item size.
func (a *Array) Format() gputypes.VertexFormat { return FormatFor(a.itemSize) }

// ByteSize returns the size of the encoded array in bytes.
func (a *Array) ByteSize() uint64 { return uint64(len(a.data)) * 4 }

// AppendBytes appends the little-endian encoding of the array to dst.
func (a *Array) AppendBytes(dst []byte) []byte {
	for _, v := range a.data {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
	}
	return dst
}

func (a *Array) release() {
	a.data = nil
	a.released = true
	a.dirty = false
}

// FormatFor returns the float32 vertex format for an item size of 1 to 4
// components, or VertexFormatUndefined.
func FormatFor(itemSize int) gputypes.VertexFormat {
	switch itemSize {
	case 1:
		return gputypes.VertexFormatFloat32
	case 2:
		return gputypes.VertexFormatFloat32x2
	case 3:
		return gputypes.VertexFormatFloat32x3
	case 4:
		return gputypes.VertexFormatFloat32x4
	default:
		return gputypes.VertexFormatUndefined
	}
}

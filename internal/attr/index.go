package attr

import (
	"encoding/binary"

	"github.com/gogpu/gputypes"
)

// MaxUint16Vertices is the largest vertex count addressed with 16-bit indices.
const MaxUint16Vertices = 65535

// IndexFormatFor selects the narrowest index format able to address
// vertexCount vertices.
func IndexFormatFor(vertexCount int) gputypes.IndexFormat {
	if vertexCount <= MaxUint16Vertices {
		return gputypes.IndexFormatUint16
	}
	return gputypes.IndexFormatUint32
}

// Addressable reports whether format can index vertexCount vertices.
func Addressable(format gputypes.IndexFormat, vertexCount int) bool {
	switch format {
	case gputypes.IndexFormatUint16:
		return vertexCount <= MaxUint16Vertices
	case gputypes.IndexFormatUint32:
		return true
	default:
		return false
	}
}

// IndexArray holds triangle-list indices in either 16-bit or 32-bit storage.
// Exactly one of the two backing slices is in use, selected by Format.
type IndexArray struct {
	u16      []uint16
	u32      []uint32
	format   gputypes.IndexFormat
	version  uint64
	dirty    bool
	released bool
}

// Format returns the element width of the array.
func (ix *IndexArray) Format() gputypes.IndexFormat { return ix.format }

// Len returns the number of indices.
func (ix *IndexArray) Len() int {
	if ix.format == gputypes.IndexFormatUint16 {
		return len(ix.u16)
	}
	return len(ix.u32)
}

// At returns index i widened to uint32.
func (ix *IndexArray) At(i int) uint32 {
	if ix.format == gputypes.IndexFormatUint16 {
		return uint32(ix.u16[i])
	}
	return ix.u32[i]
}

// Uint16s returns the 16-bit storage, or nil for 32-bit arrays.
func (ix *IndexArray) Uint16s() []uint16 { return ix.u16 }

// Uint32s returns the 32-bit storage, or nil for 16-bit arrays.
func (ix *IndexArray) Uint32s() []uint32 { return ix.u32 }

// Version returns a counter incremented on every write.
func (ix *IndexArray) Version() uint64 { return ix.version }

// Dirty reports whether the indices changed since the last ClearDirty.
func (ix *IndexArray) Dirty() bool { return ix.dirty }

// ClearDirty acknowledges that a consumer has read the current contents.
func (ix *IndexArray) ClearDirty() { ix.dirty = false }

// Released reports whether the array has been dropped from its store.
func (ix *IndexArray) Released() bool { return ix.released }

// ByteSize returns the encoded size, padded to a multiple of 4 bytes as
// required for buffer writes.
func (ix *IndexArray) ByteSize() uint64 {
	n := uint64(ix.Len()) * uint64(ix.format.Size())
	return (n + 3) &^ 3
}

// AppendBytes appends the little-endian encoding of the indices to dst,
// padded to a multiple of 4 bytes.
func (ix *IndexArray) AppendBytes(dst []byte) []byte {
	start := len(dst)
	if ix.format == gputypes.IndexFormatUint16 {
		for _, v := range ix.u16 {
			dst = binary.LittleEndian.AppendUint16(dst, v)
		}
	} else {
		for _, v := range ix.u32 {
			dst = binary.LittleEndian.AppendUint32(dst, v)
		}
	}
	for (len(dst)-start)%4 != 0 {
		dst = append(dst, 0)
	}
	return dst
}

func newIndexArray(idx []uint32, format gputypes.IndexFormat) *IndexArray {
	ix := &IndexArray{format: format, version: 1, dirty: true}
	if format == gputypes.IndexFormatUint16 {
		ix.u16 = make([]uint16, len(idx))
	} else {
		ix.u32 = make([]uint32, len(idx))
	}
	ix.copyFrom(idx)
	return ix
}

func (ix *IndexArray) copyFrom(idx []uint32) {
	if ix.format == gputypes.IndexFormatUint16 {
		for i, v := range idx {
			ix.u16[i] = uint16(v)
		}
		return
	}
	copy(ix.u32, idx)
}

func (ix *IndexArray) release() {
	ix.u16 = nil
	ix.u32 = nil
	ix.released = true
	ix.dirty = false
}

package gpu

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/ribbon"
	"github.com/gogpu/wgpu/hal"
)

// ErrNotSynced is returned by Draw before the first successful Sync.
var ErrNotSynced = errors.New("ribbon/gpu: uploader has no synced batch")

// UploadStats counts device work done by an Uploader.
type UploadStats struct {
	// BuffersCreated counts buffer creations, including recreations after
	// a reallocated attribute.
	BuffersCreated int

	// BufferWrites counts WriteBuffer calls.
	BufferWrites int

	// BytesWritten is the total size of all writes.
	BytesWritten uint64
}

// gpuBuffer tracks the device buffer backing one batch array.
type gpuBuffer struct {
	source any // *ribbon.Attribute or *ribbon.IndexBuffer
	buf    hal.Buffer
	size   uint64
}

// Uploader mirrors the arrays of one ribbon.Batch into device buffers.
//
// Buffers are keyed by array identity: an array replaced by the batch
// (a reallocation) gets a new device buffer, an array written in place only
// gets a WriteBuffer. Like the batch, an Uploader is single-owner.
type Uploader struct {
	device Device
	queue  Queue

	vertex []gpuBuffer
	index  gpuBuffer

	indexCount  uint32
	indexFormat gputypes.IndexFormat
	synced      bool

	scratch []byte
	stats   UploadStats
}

// NewUploader creates an Uploader on device and queue.
func NewUploader(device Device, queue Queue) *Uploader {
	return &Uploader{device: device, queue: queue}
}

// Sync brings the device buffers up to date with b. Vertex buffer slots
// follow the order of b.VertexLayouts. Uploaded arrays are marked clean.
func (u *Uploader) Sync(b *ribbon.Batch) error {
	if b.Disposed() {
		return ribbon.ErrDisposed
	}

	arrays := append(b.Attributes(), b.InstanceAttributes()...)
	for len(u.vertex) < len(arrays) {
		u.vertex = append(u.vertex, gpuBuffer{})
	}
	for i := len(arrays); i < len(u.vertex); i++ {
		u.destroy(&u.vertex[i])
	}
	u.vertex = u.vertex[:len(arrays)]

	for i, a := range arrays {
		err := u.syncArray(&u.vertex[i], a, a.Dirty(), a.ByteSize(),
			"ribbon-"+a.Name(), gputypes.BufferUsageVertex, a.AppendBytes)
		if err != nil {
			return err
		}
		a.ClearDirty()
	}

	ix := b.Index()
	if ix == nil {
		return fmt.Errorf("ribbon/gpu: batch has no index array")
	}
	err := u.syncArray(&u.index, ix, ix.Dirty(), ix.ByteSize(),
		"ribbon-index", gputypes.BufferUsageIndex, ix.AppendBytes)
	if err != nil {
		return err
	}
	ix.ClearDirty()

	u.indexCount = uint32(ix.Len())
	u.indexFormat = ix.Format()
	u.synced = true
	return nil
}

// syncArray recreates slot when source or size changed and writes the
// array when it is new or dirty. Empty arrays hold no buffer.
func (u *Uploader) syncArray(slot *gpuBuffer, source any, dirty bool, size uint64,
	label string, usage gputypes.BufferUsage, appendBytes func([]byte) []byte) error {

	if size == 0 {
		u.destroy(slot)
		slot.source = source
		return nil
	}

	fresh := false
	if slot.buf == nil || slot.source != source || slot.size != size {
		u.destroy(slot)
		buf, err := u.device.CreateBuffer(&hal.BufferDescriptor{
			Label: label,
			Size:  size,
			Usage: usage | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("ribbon/gpu: create %s: %w", label, err)
		}
		*slot = gpuBuffer{source: source, buf: buf, size: size}
		u.stats.BuffersCreated++
		fresh = true
		ribbon.Logger().Info("ribbon/gpu: buffer created",
			slog.String("label", label), slog.Uint64("size", size))
	}
	if !fresh && !dirty {
		return nil
	}

	u.scratch = appendBytes(u.scratch[:0])
	if err := u.queue.WriteBuffer(slot.buf, 0, u.scratch); err != nil {
		ribbon.Logger().Warn("ribbon/gpu: buffer write failed",
			slog.String("label", label), slog.Any("err", err))
		return fmt.Errorf("ribbon/gpu: write %s: %w", label, err)
	}
	u.stats.BufferWrites++
	u.stats.BytesWritten += uint64(len(u.scratch))
	return nil
}

// Draw binds the synced buffers to pass and issues one indexed draw.
// instanceCount below 1 draws one instance.
func (u *Uploader) Draw(pass RenderPass, instanceCount uint32) error {
	if !u.synced {
		return ErrNotSynced
	}
	if u.indexCount == 0 {
		return nil
	}
	for slot := range u.vertex {
		if u.vertex[slot].buf == nil {
			return fmt.Errorf("ribbon/gpu: vertex slot %d has no buffer", slot)
		}
		pass.SetVertexBuffer(uint32(slot), u.vertex[slot].buf, 0)
	}
	pass.SetIndexBuffer(u.index.buf, u.indexFormat, 0)
	pass.DrawIndexed(u.indexCount, max(instanceCount, 1), 0, 0, 0)
	return nil
}

// Buffer returns the device buffer of vertex slot i, or nil.
func (u *Uploader) Buffer(i int) hal.Buffer {
	if i < 0 || i >= len(u.vertex) {
		return nil
	}
	return u.vertex[i].buf
}

// IndexBuffer returns the device index buffer, or nil.
func (u *Uploader) IndexBuffer() hal.Buffer { return u.index.buf }

// Stats returns the upload counters.
func (u *Uploader) Stats() UploadStats { return u.stats }

// Destroy releases every device buffer. The uploader can be synced again.
func (u *Uploader) Destroy() {
	for i := range u.vertex {
		u.destroy(&u.vertex[i])
	}
	u.vertex = nil
	u.destroy(&u.index)
	u.synced = false
	u.indexCount = 0
}

func (u *Uploader) destroy(slot *gpuBuffer) {
	if slot.buf != nil {
		u.device.DestroyBuffer(slot.buf)
	}
	*slot = gpuBuffer{}
}

// Package gpu mirrors ribbon batches into wgpu HAL buffers and draws them.
//
// An Uploader owns one vertex buffer per batch attribute plus the index
// buffer. Sync writes dirty arrays and recreates buffers only when the
// batch reallocated an array, so in-place position updates cost three
// buffer writes and no allocations on the device.
//
// Usage:
//
//	up, err := gpu.NewUploaderFromProvider(provider)
//	...
//	if err := up.Sync(batch); err != nil { ... }
//	up.Draw(pass, 1)
package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ErrNoHAL is returned when a device provider does not expose HAL types.
var ErrNoHAL = errors.New("ribbon/gpu: provider does not expose HAL device and queue")

// Device is the subset of hal.Device used for buffer management.
type Device interface {
	CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error)
	DestroyBuffer(buffer hal.Buffer)
}

// Queue is the subset of hal.Queue used for uploads.
type Queue interface {
	WriteBuffer(buffer hal.Buffer, offset uint64, data []byte) error
}

// RenderPass is the subset of hal.RenderPassEncoder used by Draw.
type RenderPass interface {
	SetVertexBuffer(slot uint32, buffer hal.Buffer, offset uint64)
	SetIndexBuffer(buffer hal.Buffer, format gputypes.IndexFormat, offset uint64)
	DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32)
}

var (
	_ Device     = hal.Device(nil)
	_ Queue      = hal.Queue(nil)
	_ RenderPass = hal.RenderPassEncoder(nil)
)

// HALFromProvider extracts the HAL device and queue from a shared device
// provider. The provider must implement HalDevice() any and HalQueue() any
// returning hal.Device and hal.Queue.
func HALFromProvider(provider gpucontext.DeviceProvider) (hal.Device, hal.Queue, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("%w: HalDevice is %T", ErrNoHAL, hp.HalDevice())
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("%w: HalQueue is %T", ErrNoHAL, hp.HalQueue())
	}
	return device, queue, nil
}

// NewUploaderFromProvider creates an Uploader on a device shared through
// gpucontext. The uploader never destroys the shared device.
func NewUploaderFromProvider(provider gpucontext.DeviceProvider) (*Uploader, error) {
	device, queue, err := HALFromProvider(provider)
	if err != nil {
		return nil, err
	}
	return NewUploader(device, queue), nil
}

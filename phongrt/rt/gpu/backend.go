package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Buffer is a GPU-resident buffer handle. Release frees it.
type Buffer interface {
	Release()
}

// Device creates immutable, initialised GPU buffers.
type Device interface {
	CreateVertexBuffer(label string, contents []byte) (Buffer, error)
	CreateIndexBuffer(label string, contents []byte) (Buffer, error)
}

// Pass records indexed draws with 32-bit indices. Pipeline and bind groups
// are already set by the caller.
type Pass interface {
	DrawIndexed(vertices, indices Buffer, indexCount uint32)
}

type wgpuBuffer struct {
	buf *wgpu.Buffer
}

func (b *wgpuBuffer) Release() { b.buf.Release() }

// WgpuDevice implements Device on a WebGPU device.
type WgpuDevice struct {
	device *wgpu.Device
}

func NewDevice(device *wgpu.Device) *WgpuDevice {
	return &WgpuDevice{device: device}
}

func (d *WgpuDevice) create(label string, contents []byte, usage wgpu.BufferUsage) (Buffer, error) {
	buf, err := d.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label,
		Contents: contents,
		Usage:    usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create buffer %q: %w", label, err)
	}
	return &wgpuBuffer{buf: buf}, nil
}

func (d *WgpuDevice) CreateVertexBuffer(label string, contents []byte) (Buffer, error) {
	return d.create(label, contents, wgpu.BufferUsageVertex)
}

func (d *WgpuDevice) CreateIndexBuffer(label string, contents []byte) (Buffer, error) {
	return d.create(label, contents, wgpu.BufferUsageIndex)
}

// WgpuPass implements Pass on a render pass encoder.
type WgpuPass struct {
	pass *wgpu.RenderPassEncoder
}

func NewPass(pass *wgpu.RenderPassEncoder) *WgpuPass {
	return &WgpuPass{pass: pass}
}

func (p *WgpuPass) DrawIndexed(vertices, indices Buffer, indexCount uint32) {
	vb := vertices.(*wgpuBuffer).buf
	ib := indices.(*wgpuBuffer).buf
	p.pass.SetVertexBuffer(0, vb, 0, vb.GetSize())
	p.pass.SetIndexBuffer(ib, wgpu.IndexFormatUint32, 0, ib.GetSize())
	p.pass.DrawIndexed(indexCount, 1, 0, 0, 0)
}

package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// ObjectSlots hands out one object uniform buffer and bind group per draw in
// a frame. Writes go through the queue before the frame is submitted, so
// draws never share a buffer.
type ObjectSlots struct {
	device *wgpu.Device
	queue  *wgpu.Queue
	layout *wgpu.BindGroupLayout

	buffers []*wgpu.Buffer
	groups  []*wgpu.BindGroup
}

func NewObjectSlots(device *wgpu.Device, queue *wgpu.Queue, layout *wgpu.BindGroupLayout) *ObjectSlots {
	return &ObjectSlots{device: device, queue: queue, layout: layout}
}

func (s *ObjectSlots) Len() int { return len(s.buffers) }

func (s *ObjectSlots) grow(n int) error {
	for len(s.buffers) < n {
		i := len(s.buffers)
		buf, err := s.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: fmt.Sprintf("Object UBO %d", i),
			Size:  ObjectUniformSize,
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("object slot %d: %w", i, err)
		}
		bg, err := s.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:   fmt.Sprintf("Object BG %d", i),
			Layout:  s.layout,
			Entries: []wgpu.BindGroupEntry{{Binding: 0, Buffer: buf, Size: wgpu.WholeSize}},
		})
		if err != nil {
			buf.Release()
			return fmt.Errorf("object slot %d: %w", i, err)
		}
		s.buffers = append(s.buffers, buf)
		s.groups = append(s.groups, bg)
	}
	return nil
}

// Write stores u in slot i, creating slots as needed, and returns the bind
// group to set at group 1.
func (s *ObjectSlots) Write(i int, u ObjectUniform) (*wgpu.BindGroup, error) {
	if err := s.grow(i + 1); err != nil {
		return nil, err
	}
	if err := s.queue.WriteBuffer(s.buffers[i], 0, UniformBytes(u)); err != nil {
		return nil, fmt.Errorf("object slot %d: %w", i, err)
	}
	return s.groups[i], nil
}

func (s *ObjectSlots) Release() {
	for _, bg := range s.groups {
		bg.Release()
	}
	for _, b := range s.buffers {
		b.Release()
	}
	s.groups, s.buffers = nil, nil
}

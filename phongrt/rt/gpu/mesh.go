package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/phongdemo/phongrt/rt/geom"
)

type PrimitiveMode int

const (
	TriangleList PrimitiveMode = iota
	LineList
)

func (m PrimitiveMode) Topology() wgpu.PrimitiveTopology {
	if m == LineList {
		return wgpu.PrimitiveTopologyLineList
	}
	return wgpu.PrimitiveTopologyTriangleList
}

// RenderableMesh owns the GPU copies of one MeshData: the vertices, the
// triangle indices and the wireframe edge indices. Buffers are uploaded once
// at construction and released once by Release.
type RenderableMesh struct {
	Label string

	data        geom.MeshData
	vertexCount uint32
	indexCount  uint32
	edgeCount   uint32

	vertices Buffer
	indices  Buffer
	edges    Buffer

	released bool
}

// NewRenderableMesh validates data and uploads it. The mesh keeps its own copy
// of data. On error nothing stays allocated.
func NewRenderableMesh(dev Device, label string, data geom.MeshData) (*RenderableMesh, error) {
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("mesh %q: %w", label, err)
	}
	if len(data.Indices) == 0 {
		return nil, fmt.Errorf("mesh %q: no indices", label)
	}

	m := &RenderableMesh{
		Label:       label,
		data:        data.Clone(),
		vertexCount: uint32(len(data.Vertices)),
		indexCount:  uint32(len(data.Indices)),
	}
	edges := m.data.WireframeIndices()
	m.edgeCount = uint32(len(edges))

	var err error
	if m.vertices, err = dev.CreateVertexBuffer(label+" vertices", wgpu.ToBytes(m.data.Vertices)); err != nil {
		return nil, err
	}
	if m.indices, err = dev.CreateIndexBuffer(label+" indices", wgpu.ToBytes(m.data.Indices)); err != nil {
		m.Release()
		return nil, err
	}
	if m.edges, err = dev.CreateIndexBuffer(label+" edges", wgpu.ToBytes(edges)); err != nil {
		m.Release()
		return nil, err
	}
	return m, nil
}

// VertexLayout is the buffer layout every RenderableMesh uses.
func VertexLayout() wgpu.VertexBufferLayout {
	return VertexBufferLayout(geom.Vertex{})
}

func (m *RenderableMesh) VertexCount() uint32    { return m.vertexCount }
func (m *RenderableMesh) IndexCount() uint32     { return m.indexCount }
func (m *RenderableMesh) EdgeIndexCount() uint32 { return m.edgeCount }
func (m *RenderableMesh) Released() bool         { return m.released }

// Data returns a copy of the uploaded mesh data.
func (m *RenderableMesh) Data() geom.MeshData { return m.data.Clone() }

// Draw records a draw of the whole mesh. The caller binds pipeline and
// uniforms. Drawing a released mesh panics.
func (m *RenderableMesh) Draw(pass Pass, mode PrimitiveMode) {
	if m.released {
		panic(fmt.Sprintf("draw of released mesh %q", m.Label))
	}
	if mode == LineList {
		pass.DrawIndexed(m.vertices, m.edges, m.edgeCount)
		return
	}
	pass.DrawIndexed(m.vertices, m.indices, m.indexCount)
}

// Release frees the GPU buffers. Later calls do nothing.
func (m *RenderableMesh) Release() {
	if m.released {
		return
	}
	m.released = true
	for _, b := range []Buffer{m.vertices, m.indices, m.edges} {
		if b != nil {
			b.Release()
		}
	}
	m.vertices, m.indices, m.edges = nil, nil, nil
}

package gpu

import (
	"errors"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/phongdemo/phongrt/rt/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBuffer struct {
	label    string
	size     int
	index    bool
	releases int
}

func (b *fakeBuffer) Release() { b.releases++ }

type fakeDevice struct {
	created []*fakeBuffer
	failAt  int // 1-based creation that fails; 0 never
}

var errOutOfMemory = errors.New("out of memory")

func (d *fakeDevice) create(label string, contents []byte, index bool) (Buffer, error) {
	if d.failAt == len(d.created)+1 {
		return nil, errOutOfMemory
	}
	b := &fakeBuffer{label: label, size: len(contents), index: index}
	d.created = append(d.created, b)
	return b, nil
}

func (d *fakeDevice) CreateVertexBuffer(label string, contents []byte) (Buffer, error) {
	return d.create(label, contents, false)
}

func (d *fakeDevice) CreateIndexBuffer(label string, contents []byte) (Buffer, error) {
	return d.create(label, contents, true)
}

type drawCall struct {
	vertices, indices Buffer
	count             uint32
}

type fakePass struct {
	draws []drawCall
}

func (p *fakePass) DrawIndexed(vertices, indices Buffer, indexCount uint32) {
	p.draws = append(p.draws, drawCall{vertices, indices, indexCount})
}

func TestRenderableMesh_Upload(t *testing.T) {
	dev := &fakeDevice{}
	data := geom.GenerateCube(1)

	m, err := NewRenderableMesh(dev, "cube", data)
	require.NoError(t, err)
	require.Len(t, dev.created, 3)

	assert.Equal(t, 24*32, dev.created[0].size)
	assert.False(t, dev.created[0].index)
	assert.Equal(t, 36*4, dev.created[1].size)
	assert.True(t, dev.created[1].index)
	assert.Equal(t, len(data.WireframeIndices())*4, dev.created[2].size)

	assert.Equal(t, uint32(24), m.VertexCount())
	assert.Equal(t, uint32(36), m.IndexCount())
	assert.Equal(t, uint32(len(data.WireframeIndices())), m.EdgeIndexCount())
	assert.False(t, m.Released())
}

func TestRenderableMesh_OwnsCopy(t *testing.T) {
	data := geom.GeneratePlane(2, 2, 1, 1)
	m, err := NewRenderableMesh(&fakeDevice{}, "plane", data)
	require.NoError(t, err)

	data.Indices[0] = 3
	data.Vertices[0].Position[1] = 42
	assert.Equal(t, geom.GeneratePlane(2, 2, 1, 1), m.Data())
}

func TestRenderableMesh_Draw(t *testing.T) {
	dev := &fakeDevice{}
	m, err := NewRenderableMesh(dev, "sphere", geom.GenerateSphere(1, 4, 2))
	require.NoError(t, err)

	pass := &fakePass{}
	m.Draw(pass, TriangleList)
	m.Draw(pass, LineList)
	require.Len(t, pass.draws, 2)

	assert.Same(t, dev.created[0], pass.draws[0].vertices)
	assert.Same(t, dev.created[1], pass.draws[0].indices)
	assert.Equal(t, uint32(24), pass.draws[0].count)

	assert.Same(t, dev.created[0], pass.draws[1].vertices)
	assert.Same(t, dev.created[2], pass.draws[1].indices)
	assert.Equal(t, m.EdgeIndexCount(), pass.draws[1].count)
}

func TestRenderableMesh_ReleaseOnce(t *testing.T) {
	dev := &fakeDevice{}
	m, err := NewRenderableMesh(dev, "cube", geom.GenerateCube(1))
	require.NoError(t, err)

	m.Release()
	m.Release()

	assert.True(t, m.Released())
	for _, b := range dev.created {
		assert.Equal(t, 1, b.releases, b.label)
	}
}

func TestRenderableMesh_DrawAfterRelease(t *testing.T) {
	m, err := NewRenderableMesh(&fakeDevice{}, "cube", geom.GenerateCube(1))
	require.NoError(t, err)
	m.Release()

	assert.PanicsWithValue(t, `draw of released mesh "cube"`, func() {
		m.Draw(&fakePass{}, TriangleList)
	})
}

func TestRenderableMesh_InvalidData(t *testing.T) {
	dev := &fakeDevice{}

	_, err := NewRenderableMesh(dev, "bad", geom.MeshData{
		Vertices: make([]geom.Vertex, 3),
		Indices:  []uint32{0, 1, 3},
	})
	assert.ErrorIs(t, err, geom.ErrIndexOutOfRange)

	_, err = NewRenderableMesh(dev, "empty", geom.MeshData{})
	assert.Error(t, err)

	assert.Empty(t, dev.created)
}

func TestRenderableMesh_UploadFailureReleases(t *testing.T) {
	for failAt := 1; failAt <= 3; failAt++ {
		dev := &fakeDevice{failAt: failAt}
		m, err := NewRenderableMesh(dev, "cube", geom.GenerateCube(1))
		assert.Nil(t, m)
		assert.ErrorIs(t, err, errOutOfMemory)

		require.Len(t, dev.created, failAt-1)
		for _, b := range dev.created {
			assert.Equal(t, 1, b.releases)
		}
	}
}

func TestPrimitiveMode(t *testing.T) {
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, TriangleList.Topology())
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, LineList.Topology())

	assert.Equal(t, wgpu.CullModeBack, primitiveState(TriangleList).CullMode)
	assert.Equal(t, wgpu.CullModeNone, primitiveState(LineList).CullMode)
	assert.Equal(t, wgpu.FrontFaceCCW, primitiveState(TriangleList).FrontFace)
}

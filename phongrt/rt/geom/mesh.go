package geom

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrIndexOutOfRange = errors.New("geom: index out of range")
	ErrNotTriangles    = errors.New("geom: index count is not a multiple of 3")
)

// Vertex is the interleaved vertex format uploaded to the GPU.
// Field order and tags define the vertex buffer layout.
type Vertex struct {
	Position mgl32.Vec3 `phong:"layout" format:"float3" location:"0"`
	Normal   mgl32.Vec3 `phong:"layout" format:"float3" location:"1"`
	UV       mgl32.Vec2 `phong:"layout" format:"float2" location:"2"`
}

// MeshData is an indexed triangle list.
type MeshData struct {
	Vertices []Vertex
	Indices  []uint32
}

func (m MeshData) VertexCount() int { return len(m.Vertices) }
func (m MeshData) IndexCount() int  { return len(m.Indices) }

// Validate checks that every index references an existing vertex and that
// the indices form whole triangles.
func (m MeshData) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices", ErrNotTriangles, len(m.Indices))
	}
	n := uint32(len(m.Vertices))
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("%w: indices[%d]=%d, %d vertices", ErrIndexOutOfRange, i, idx, n)
		}
	}
	return nil
}

// WireframeIndices returns a line list with every triangle edge exactly once.
// Edges appear in the order they are first met while walking the triangles.
func (m MeshData) WireframeIndices() []uint32 {
	type edge struct{ a, b uint32 }
	seen := make(map[edge]struct{}, len(m.Indices))
	lines := make([]uint32, 0, len(m.Indices)*2)

	add := func(a, b uint32) {
		if a > b {
			a, b = b, a
		}
		e := edge{a, b}
		if _, ok := seen[e]; ok {
			return
		}
		seen[e] = struct{}{}
		lines = append(lines, a, b)
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		add(i0, i1)
		add(i1, i2)
		add(i2, i0)
	}
	return lines
}

// Clone returns a deep copy.
func (m MeshData) Clone() MeshData {
	out := MeshData{
		Vertices: make([]Vertex, len(m.Vertices)),
		Indices:  make([]uint32, len(m.Indices)),
	}
	copy(out.Vertices, m.Vertices)
	copy(out.Indices, m.Indices)
	return out
}

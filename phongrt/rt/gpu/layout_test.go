package gpu

import (
	"encoding/binary"
	"math"
	"testing"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/phongdemo/phongrt/rt/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexLayout(t *testing.T) {
	l := VertexLayout()

	assert.Equal(t, uint64(32), l.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeVertex, l.StepMode)
	assert.Equal(t, []wgpu.VertexAttribute{
		{ShaderLocation: 0, Offset: 0, Format: wgpu.VertexFormatFloat32x3},
		{ShaderLocation: 1, Offset: 12, Format: wgpu.VertexFormatFloat32x3},
		{ShaderLocation: 2, Offset: 24, Format: wgpu.VertexFormatFloat32x2},
	}, l.Attributes)
}

func TestVertexBufferLayout_UntaggedFieldsAdvanceStride(t *testing.T) {
	type vertex struct {
		Pos   [3]float32 `phong:"layout" format:"float3" location:"0"`
		Extra float32
		Color [4]float32 `phong:"layout" format:"float4" location:"3"`
	}
	l := VertexBufferLayout(vertex{})

	assert.Equal(t, uint64(32), l.ArrayStride)
	require.Len(t, l.Attributes, 2)
	assert.Equal(t, uint64(16), l.Attributes[1].Offset)
	assert.Equal(t, uint32(3), l.Attributes[1].ShaderLocation)
}

func TestVertexBufferLayout_Panics(t *testing.T) {
	assert.Panics(t, func() { VertexBufferLayout(42) })
	type bad struct {
		P [3]float32 `phong:"layout" format:"half3" location:"0"`
	}
	assert.PanicsWithValue(t, "unsupported vertex layout format: half3", func() { VertexBufferLayout(bad{}) })
}

func TestUniformSizes(t *testing.T) {
	tests := []struct {
		name string
		v    any
		size int
	}{
		{"camera", CameraUniform{}, CameraUniformSize},
		{"object", ObjectUniform{}, ObjectUniformSize},
		{"lights", LightsUniform{}, LightsUniformSize},
		{"dir", DirLightUniform{}, 64},
		{"point", PointLightUniform{}, 64},
		{"spot", SpotLightUniform{}, 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, UniformBytes(tt.v), tt.size)
		})
	}
	assert.Equal(t, uintptr(LightsUniformSize), unsafe.Sizeof(LightsUniform{}))
}

func f32At(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
}

func TestUniformBytes_Layout(t *testing.T) {
	u := NewObjectUniform(mgl32.Ident4(), mgl32.Ident4(), core.MetallicMaterial(), mgl32.Vec4{1, 0.5, 0.25, 1})
	b := UniformBytes(u)

	assert.Equal(t, float32(1), f32At(b, 0))
	assert.Equal(t, float32(0.25), f32At(b, 128))
	assert.Equal(t, float32(128), f32At(b, 140), "shininess shares the ambient vec4")
	assert.Equal(t, float32(0.4), f32At(b, 144))
	assert.Equal(t, float32(0), f32At(b, 156), "padding")
	assert.Equal(t, float32(0.95), f32At(b, 160))
	assert.Equal(t, float32(0.5), f32At(b, 180))
}

func TestUniformBytes_Pointer(t *testing.T) {
	u := &CameraUniform{ViewPos: mgl32.Vec3{1, 2, 3}}
	b := UniformBytes(u)
	require.Len(t, b, CameraUniformSize)
	assert.Equal(t, float32(3), f32At(b, 136))
}

func TestPackLights(t *testing.T) {
	l := core.DemoLighting()
	u := PackLights(l)

	assert.Equal(t, uint32(3), u.NumPoints)
	assert.Equal(t, uint32(0), u.SpotEnabled)
	assert.Equal(t, l.Points[1].Position, u.Points[1].Position)
	assert.Equal(t, core.DefaultQuadratic, u.Points[2].Quadratic)
	assert.Equal(t, PointLightUniform{}, u.Points[3])
	assert.Equal(t, l.Directional.Specular, u.Directional.Specular)

	l.SpotEnabled = true
	l.Points = append(l.Points, l.Points...)
	u = PackLights(l)
	assert.Equal(t, uint32(core.MaxPointLights), u.NumPoints)
	assert.Equal(t, uint32(1), u.SpotEnabled)
	assert.Equal(t, l.Spot.CutOff, u.Spot.CutOff)

	b := UniformBytes(u)
	// num_points sits right after the spot light
	assert.Equal(t, uint32(core.MaxPointLights), binary.LittleEndian.Uint32(b[400:]))
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(b[404:]))
}

func TestPackLights_Disabled(t *testing.T) {
	u := PackLights(core.DemoLighting().Effective(false))
	assert.Equal(t, uint32(0), u.NumPoints)
	assert.Equal(t, mgl32.Vec3{0.3, 0.3, 0.3}, u.Directional.Ambient)
}

package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/phongdemo/phongrt/rt/shaders"
)

const DepthFormat = wgpu.TextureFormatDepth24Plus

// Layouts is the bind group layout shared by every scene pipeline:
// group 0 holds camera and lights, group 1 the per-draw object uniform.
// The layouts outlive pipeline rebuilds so existing bind groups stay valid.
type Layouts struct {
	Frame    *wgpu.BindGroupLayout
	Object   *wgpu.BindGroupLayout
	Pipeline *wgpu.PipelineLayout
}

func uniformEntry(binding uint32, size uint64) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
		Buffer: wgpu.BufferBindingLayout{
			Type:           wgpu.BufferBindingTypeUniform,
			MinBindingSize: size,
		},
	}
}

func NewLayouts(device *wgpu.Device) (*Layouts, error) {
	frame, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Frame BGL",
		Entries: []wgpu.BindGroupLayoutEntry{
			uniformEntry(0, CameraUniformSize),
			uniformEntry(1, LightsUniformSize),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("frame bind group layout: %w", err)
	}

	object, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "Object BGL",
		Entries: []wgpu.BindGroupLayoutEntry{uniformEntry(0, ObjectUniformSize)},
	})
	if err != nil {
		frame.Release()
		return nil, fmt.Errorf("object bind group layout: %w", err)
	}

	pl, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Scene Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{frame, object},
	})
	if err != nil {
		frame.Release()
		object.Release()
		return nil, fmt.Errorf("pipeline layout: %w", err)
	}

	return &Layouts{Frame: frame, Object: object, Pipeline: pl}, nil
}

func (l *Layouts) Release() {
	l.Pipeline.Release()
	l.Object.Release()
	l.Frame.Release()
}

func primitiveState(mode PrimitiveMode) wgpu.PrimitiveState {
	state := wgpu.PrimitiveState{
		Topology:  mode.Topology(),
		FrontFace: wgpu.FrontFaceCCW,
		CullMode:  wgpu.CullModeBack,
	}
	if mode == LineList {
		state.CullMode = wgpu.CullModeNone
	}
	return state
}

func depthState() *wgpu.DepthStencilState {
	return &wgpu.DepthStencilState{
		Format:            DepthFormat,
		DepthWriteEnabled: true,
		DepthCompare:      wgpu.CompareFunctionLess,
		StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		StencilReadMask:   0xFFFFFFFF,
		StencilWriteMask:  0xFFFFFFFF,
	}
}

// Pipelines are the scene render pipelines: Phong-lit and flat-coloured
// marker, each as filled triangles and as wireframe lines.
type Pipelines struct {
	LitFill    *wgpu.RenderPipeline
	LitWire    *wgpu.RenderPipeline
	MarkerFill *wgpu.RenderPipeline
	MarkerWire *wgpu.RenderPipeline
}

func compile(device *wgpu.Device, label, code string) (*wgpu.ShaderModule, error) {
	module, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: code},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", shaders.ErrCompile, label, err)
	}
	return module, nil
}

func link(device *wgpu.Device, layouts *Layouts, label string, module *wgpu.ShaderModule, format wgpu.TextureFormat, mode PrimitiveMode) (*wgpu.RenderPipeline, error) {
	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  label,
		Layout: layouts.Pipeline,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{VertexLayout()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive:    primitiveState(mode),
		DepthStencil: depthState(),
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", shaders.ErrLink, label, err)
	}
	return pipeline, nil
}

// NewPipelines compiles src and links all four pipelines. Either every
// pipeline is created or none is.
func NewPipelines(device *wgpu.Device, layouts *Layouts, src shaders.Sources, format wgpu.TextureFormat) (*Pipelines, error) {
	phong, err := compile(device, "Phong Shader", src.Phong)
	if err != nil {
		return nil, err
	}
	defer phong.Release()

	marker, err := compile(device, "Marker Shader", src.Marker)
	if err != nil {
		return nil, err
	}
	defer marker.Release()

	p := &Pipelines{}
	steps := []struct {
		dst    **wgpu.RenderPipeline
		label  string
		module *wgpu.ShaderModule
		mode   PrimitiveMode
	}{
		{&p.LitFill, "Lit Fill Pipeline", phong, TriangleList},
		{&p.LitWire, "Lit Wire Pipeline", phong, LineList},
		{&p.MarkerFill, "Marker Fill Pipeline", marker, TriangleList},
		{&p.MarkerWire, "Marker Wire Pipeline", marker, LineList},
	}
	for _, s := range steps {
		if *s.dst, err = link(device, layouts, s.label, s.module, format, s.mode); err != nil {
			p.Release()
			return nil, err
		}
	}
	return p, nil
}

func (p *Pipelines) Lit(mode PrimitiveMode) *wgpu.RenderPipeline {
	if mode == LineList {
		return p.LitWire
	}
	return p.LitFill
}

func (p *Pipelines) Marker(mode PrimitiveMode) *wgpu.RenderPipeline {
	if mode == LineList {
		return p.MarkerWire
	}
	return p.MarkerFill
}

func (p *Pipelines) Release() {
	for _, rp := range []*wgpu.RenderPipeline{p.LitFill, p.LitWire, p.MarkerFill, p.MarkerWire} {
		if rp != nil {
			rp.Release()
		}
	}
	*p = Pipelines{}
}

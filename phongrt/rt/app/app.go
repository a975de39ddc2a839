package app

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/gekko3d/phongdemo/phongrt/rt/core"
	"github.com/gekko3d/phongdemo/phongrt/rt/geom"
	"github.com/gekko3d/phongdemo/phongrt/rt/gpu"
	"github.com/gekko3d/phongdemo/phongrt/rt/shaders"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

type Options struct {
	ShaderDir  string
	VSync      bool
	ClearColor [4]float64
	FontSize   float64
}

// Frame is everything the renderer needs to draw one image.
type Frame struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	ViewPos    mgl32.Vec3
	Lights     core.Lighting
	Objects    []core.SceneObject
	Markers    []core.Marker
	Wireframe  bool
}

// App is the WebGPU side of the demo: device, swapchain, depth buffer,
// scene pipelines, uploaded meshes and the HUD text pass.
type App struct {
	Window   *glfw.Window
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
	Surface  *wgpu.Surface
	Config   *wgpu.SurfaceConfiguration
	Options  Options

	Layouts   *gpu.Layouts
	Pipelines *gpu.Pipelines
	Slots     *gpu.ObjectSlots

	CameraBuf *wgpu.Buffer
	LightsBuf *wgpu.Buffer
	FrameBG   *wgpu.BindGroup

	DepthTexture *wgpu.Texture
	DepthView    *wgpu.TextureView

	Meshes     map[string]*gpu.RenderableMesh
	meshDevice *gpu.WgpuDevice

	Sampler          *wgpu.Sampler
	TextRenderer     *core.TextRenderer
	TextPipeline     *wgpu.RenderPipeline
	TextAtlas        *wgpu.Texture
	TextAtlasView    *wgpu.TextureView
	TextBindGroup    *wgpu.BindGroup
	TextVertexBuffer *wgpu.Buffer
	TextItems        []core.TextItem
	TextVertexCount  uint32

	LastRenderTime float64
	FrameCount     int
	FPS            float64
	FPSTime        float64
}

func NewApp(window *glfw.Window, opts Options) *App {
	if opts.FontSize <= 0 {
		opts.FontSize = 18
	}
	return &App{
		Window:  window,
		Options: opts,
		Meshes:  make(map[string]*gpu.RenderableMesh),
	}
}

func (a *App) presentMode() wgpu.PresentMode {
	if a.Options.VSync {
		return wgpu.PresentModeFifo
	}
	return wgpu.PresentModeImmediate
}

func (a *App) Init() error {
	a.Instance = wgpu.CreateInstance(nil)
	a.Surface = a.Instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(a.Window))

	adapter, err := a.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: a.Surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("request adapter: %w", err)
	}
	a.Adapter = adapter

	a.Device, err = adapter.RequestDevice(nil)
	if err != nil {
		return fmt.Errorf("request device: %w", err)
	}
	a.Queue = a.Device.GetQueue()
	a.meshDevice = gpu.NewDevice(a.Device)

	width, height := a.Window.GetFramebufferSize()
	caps := a.Surface.GetCapabilities(adapter)
	a.Config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: a.presentMode(),
		AlphaMode:   caps.AlphaModes[0],
	}
	a.Surface.Configure(adapter, a.Device, a.Config)

	if a.Layouts, err = gpu.NewLayouts(a.Device); err != nil {
		return err
	}
	src, err := shaders.LoadSources(a.Options.ShaderDir)
	if err != nil {
		return err
	}
	if a.Pipelines, err = gpu.NewPipelines(a.Device, a.Layouts, src, a.Config.Format); err != nil {
		return err
	}
	a.Slots = gpu.NewObjectSlots(a.Device, a.Queue, a.Layouts.Object)

	if err := a.setupFrameUniforms(); err != nil {
		return err
	}
	if err := a.setupDepth(width, height); err != nil {
		return err
	}

	a.Sampler, err = a.Device.CreateSampler(&wgpu.SamplerDescriptor{
		MinFilter:     wgpu.FilterModeLinear,
		MagFilter:     wgpu.FilterModeLinear,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return fmt.Errorf("sampler: %w", err)
	}

	a.TextRenderer, err = core.NewDefaultTextRenderer(a.Options.FontSize)
	if err != nil {
		return fmt.Errorf("text renderer: %w", err)
	}
	if err := a.setupTextResources(src.Text); err != nil {
		return err
	}

	a.LastRenderTime = glfw.GetTime()
	return nil
}

func (a *App) setupFrameUniforms() error {
	var err error
	a.CameraBuf, err = a.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Camera UBO",
		Size:  gpu.CameraUniformSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("camera buffer: %w", err)
	}
	a.LightsBuf, err = a.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Lights UBO",
		Size:  gpu.LightsUniformSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("lights buffer: %w", err)
	}
	a.FrameBG, err = a.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Frame BG",
		Layout: a.Layouts.Frame,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: a.CameraBuf, Size: wgpu.WholeSize},
			{Binding: 1, Buffer: a.LightsBuf, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return fmt.Errorf("frame bind group: %w", err)
	}
	return nil
}

func (a *App) setupDepth(w, h int) error {
	if w == 0 || h == 0 {
		return nil
	}
	if a.DepthView != nil {
		a.DepthView.Release()
		a.DepthView = nil
	}
	if a.DepthTexture != nil {
		a.DepthTexture.Release()
		a.DepthTexture = nil
	}

	var err error
	a.DepthTexture, err = a.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth Tex",
		Size:          wgpu.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        gpu.DepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("depth texture: %w", err)
	}
	a.DepthView, err = a.DepthTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("depth view: %w", err)
	}
	return nil
}

// Resize reconfigures the swapchain and depth buffer. A zero size (minimised
// window) is ignored.
func (a *App) Resize(w, h int) error {
	if w <= 0 || h <= 0 {
		return nil
	}
	a.Config.Width = uint32(w)
	a.Config.Height = uint32(h)
	a.Surface.Configure(a.Adapter, a.Device, a.Config)
	return a.setupDepth(w, h)
}

func (a *App) Aspect() float32 {
	if a.Config.Height == 0 {
		return 1
	}
	return float32(a.Config.Width) / float32(a.Config.Height)
}

// UploadMesh creates the GPU copy of data under id, replacing any previous
// mesh with that id.
func (a *App) UploadMesh(id string, data geom.MeshData) error {
	m, err := gpu.NewRenderableMesh(a.meshDevice, id, data)
	if err != nil {
		return err
	}
	if old, ok := a.Meshes[id]; ok {
		old.Release()
	}
	a.Meshes[id] = m
	return nil
}

// ReloadShaders rebuilds the scene pipelines from the shader directory. On
// failure the current pipelines stay in use.
func (a *App) ReloadShaders() error {
	src, err := shaders.LoadSources(a.Options.ShaderDir)
	if err != nil {
		return err
	}
	p, err := gpu.NewPipelines(a.Device, a.Layouts, src, a.Config.Format)
	if err != nil {
		return err
	}
	a.Pipelines.Release()
	a.Pipelines = p
	return nil
}

func (a *App) ClearText() {
	a.TextItems = a.TextItems[:0]
	a.TextVertexCount = 0
}

func (a *App) DrawText(text string, x, y float32, scale float32, color [4]float32) {
	a.TextItems = append(a.TextItems, core.TextItem{
		Text:     text,
		Position: [2]float32{x, y},
		Scale:    scale,
		Color:    color,
	})
}

func (a *App) updateText() error {
	if len(a.TextItems) == 0 || a.TextRenderer == nil {
		a.TextVertexCount = 0
		return nil
	}
	vertices := a.TextRenderer.BuildVertices(a.TextItems, int(a.Config.Width), int(a.Config.Height))
	a.TextVertexCount = uint32(len(vertices))
	if len(vertices) == 0 {
		return nil
	}

	vSize := uint64(len(vertices) * int(unsafe.Sizeof(core.TextVertex{})))
	if a.TextVertexBuffer == nil || a.TextVertexBuffer.GetSize() < vSize {
		if a.TextVertexBuffer != nil {
			a.TextVertexBuffer.Release()
		}
		var err error
		a.TextVertexBuffer, err = a.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "Text VB",
			Size:  vSize,
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			a.TextVertexCount = 0
			return fmt.Errorf("text vertex buffer: %w", err)
		}
	}
	return a.Queue.WriteBuffer(a.TextVertexBuffer, 0, wgpu.ToBytes(vertices))
}

func (a *App) Render(f Frame) error {
	if err := a.Queue.WriteBuffer(a.CameraBuf, 0, gpu.UniformBytes(gpu.NewCameraUniform(f.View, f.Projection, f.ViewPos))); err != nil {
		return fmt.Errorf("write camera: %w", err)
	}
	if err := a.Queue.WriteBuffer(a.LightsBuf, 0, gpu.UniformBytes(gpu.PackLights(f.Lights))); err != nil {
		return fmt.Errorf("write lights: %w", err)
	}
	if err := a.updateText(); err != nil {
		return err
	}

	nextTexture, err := a.Surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("get current texture: %w", err)
	}
	defer nextTexture.Release()

	view, err := nextTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("create view: %w", err)
	}
	defer view.Release()

	encoder, err := a.Device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	defer encoder.Release()

	cc := a.Options.ClearColor
	rPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: cc[0], G: cc[1], B: cc[2], A: cc[3]},
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            a.DepthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1,
		},
	})

	drawErr := a.drawScene(rPass, f)

	if a.TextVertexCount > 0 && a.TextPipeline != nil {
		rPass.SetPipeline(a.TextPipeline)
		rPass.SetBindGroup(0, a.TextBindGroup, nil)
		rPass.SetVertexBuffer(0, a.TextVertexBuffer, 0, a.TextVertexBuffer.GetSize())
		rPass.Draw(a.TextVertexCount, 1, 0, 0)
	}

	if err := rPass.End(); err != nil {
		return errors.Join(drawErr, fmt.Errorf("render pass end: %w", err))
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return errors.Join(drawErr, fmt.Errorf("encoder finish: %w", err))
	}
	defer cmd.Release()
	a.Queue.Submit(cmd)
	a.Surface.Present()

	a.updateFPS()
	return drawErr
}

func (a *App) drawScene(rPass *wgpu.RenderPassEncoder, f Frame) error {
	mode := gpu.TriangleList
	if f.Wireframe {
		mode = gpu.LineList
	}
	pass := gpu.NewPass(rPass)
	slot := 0

	rPass.SetBindGroup(0, a.FrameBG, nil)
	rPass.SetPipeline(a.Pipelines.Lit(mode))
	for _, o := range f.Objects {
		mesh, ok := a.Meshes[o.Mesh]
		if !ok {
			continue
		}
		bg, err := a.Slots.Write(slot, gpu.NewObjectUniform(o.Model, o.Normal, o.Material, o.Color))
		if err != nil {
			return err
		}
		slot++
		rPass.SetBindGroup(1, bg, nil)
		mesh.Draw(pass, mode)
	}

	rPass.SetPipeline(a.Pipelines.Marker(mode))
	for _, m := range f.Markers {
		mesh, ok := a.Meshes[m.Mesh]
		if !ok {
			continue
		}
		bg, err := a.Slots.Write(slot, gpu.ObjectUniform{Model: m.Model, NormalMat: mgl32.Ident4(), Color: m.Color})
		if err != nil {
			return err
		}
		slot++
		rPass.SetBindGroup(1, bg, nil)
		mesh.Draw(pass, mode)
	}
	return nil
}

func (a *App) updateFPS() {
	now := glfw.GetTime()
	if a.LastRenderTime > 0 {
		a.FrameCount++
		a.FPSTime += now - a.LastRenderTime
		if a.FPSTime >= 1.0 {
			a.FPS = float64(a.FrameCount) / a.FPSTime
			a.FrameCount = 0
			a.FPSTime = 0
		}
	}
	a.LastRenderTime = now
}

func (a *App) setupTextResources(code string) error {
	tr := a.TextRenderer
	w, h := tr.AtlasImage.Bounds().Dx(), tr.AtlasImage.Bounds().Dy()
	extent := wgpu.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1}

	var err error
	a.TextAtlas, err = a.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Text Atlas",
		Size:          extent,
		Format:        wgpu.TextureFormatR8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return fmt.Errorf("text atlas: %w", err)
	}
	err = a.Queue.WriteTexture(a.TextAtlas.AsImageCopy(), tr.AtlasImage.Pix, &wgpu.TextureDataLayout{
		Offset:       0,
		BytesPerRow:  uint32(tr.AtlasImage.Stride),
		RowsPerImage: uint32(h),
	}, &extent)
	if err != nil {
		return fmt.Errorf("text atlas upload: %w", err)
	}
	if a.TextAtlasView, err = a.TextAtlas.CreateView(nil); err != nil {
		return fmt.Errorf("text atlas view: %w", err)
	}

	textMod, err := a.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Text Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: code},
	})
	if err != nil {
		return fmt.Errorf("%w: text: %w", shaders.ErrCompile, err)
	}
	defer textMod.Release()

	a.TextPipeline, err = a.Device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "Text Pipeline",
		Vertex: wgpu.VertexState{
			Module:     textMod,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: uint64(unsafe.Sizeof(core.TextVertex{})),
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
					{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2},
				},
			}},
		},
		Fragment: &wgpu.FragmentState{
			Module:     textMod,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format: a.Config.Format,
				Blend: &wgpu.BlendState{
					Color: wgpu.BlendComponent{
						SrcFactor: wgpu.BlendFactorSrcAlpha,
						DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						Operation: wgpu.BlendOperationAdd,
					},
					Alpha: wgpu.BlendComponent{
						SrcFactor: wgpu.BlendFactorOne,
						DstFactor: wgpu.BlendFactorOne,
						Operation: wgpu.BlendOperationAdd,
					},
				},
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopologyTriangleList,
		},
		// HUD is drawn inside the scene pass, so it must match the depth
		// attachment while never testing against it.
		DepthStencil: &wgpu.DepthStencilState{
			Format:            gpu.DepthFormat,
			DepthWriteEnabled: false,
			DepthCompare:      wgpu.CompareFunctionAlways,
			StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("%w: text: %w", shaders.ErrLink, err)
	}

	a.TextBindGroup, err = a.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout: a.TextPipeline.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: a.TextAtlasView},
			{Binding: 1, Sampler: a.Sampler},
		},
	})
	if err != nil {
		return fmt.Errorf("text bind group: %w", err)
	}
	return nil
}

// Release frees every GPU object the renderer created. Safe to call on a
// partially initialised App.
func (a *App) Release() {
	for id, m := range a.Meshes {
		m.Release()
		delete(a.Meshes, id)
	}
	if a.Slots != nil {
		a.Slots.Release()
	}
	if a.Pipelines != nil {
		a.Pipelines.Release()
	}

	type releaser interface{ Release() }
	for _, r := range []releaser{
		a.TextBindGroup, a.TextPipeline, a.TextVertexBuffer, a.TextAtlasView, a.TextAtlas, a.Sampler,
		a.FrameBG, a.CameraBuf, a.LightsBuf, a.DepthView, a.DepthTexture,
	} {
		if !isNilPtr(r) {
			r.Release()
		}
	}
	if a.Layouts != nil {
		a.Layouts.Release()
	}
	if a.Device != nil {
		a.Device.Release()
	}
	if a.Adapter != nil {
		a.Adapter.Release()
	}
	if a.Surface != nil {
		a.Surface.Release()
	}
	if a.Instance != nil {
		a.Instance.Release()
	}
	*a = App{Window: a.Window, Options: a.Options, Meshes: a.Meshes}
}

func isNilPtr(v any) bool {
	rv := reflect.ValueOf(v)
	return !rv.IsValid() || (rv.Kind() == reflect.Ptr && rv.IsNil())
}

package gpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/quad.wgsl
var quadShaderSource string

// targetFormat is the color attachment format for quad rendering.
// Offscreen textures are created in this format; BGRA matches the
// swapchain format of every desktop backend.
const targetFormat = gputypes.TextureFormatBGRA8Unorm

// QuadPipeline manages the GPU resources for instanced quad rendering:
// shader module, bind group layout, pipeline layout, and render
// pipeline. Pipelines are created lazily on first use.
//
// The pipeline draws the shared unit square with one instance per quad,
// premultiplied alpha blending, and no multisampling: the fragment
// contract is aliased.
type QuadPipeline struct {
	device hal.Device
	queue  hal.Queue

	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline
}

// NewQuadPipeline creates a quad pipeline owner for the given device and
// queue. No GPU resources are allocated until ensurePipeline is called.
func NewQuadPipeline(device hal.Device, queue hal.Queue) *QuadPipeline {
	return &QuadPipeline{
		device: device,
		queue:  queue,
	}
}

// Destroy releases all GPU resources held by the pipeline. Safe to call
// multiple times or on a pipeline with no allocated resources.
func (p *QuadPipeline) Destroy() {
	if p.device == nil {
		return
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.uniformLayout != nil {
		p.device.DestroyBindGroupLayout(p.uniformLayout)
		p.uniformLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// ensurePipeline creates the shader, layouts, and render pipeline if
// they don't already exist.
func (p *QuadPipeline) ensurePipeline() error {
	if p.pipeline != nil {
		return nil
	}
	return p.createPipeline()
}

// createPipeline validates and compiles the quad shader and creates the
// render pipeline with premultiplied alpha blending.
func (p *QuadPipeline) createPipeline() error {
	if quadShaderSource == "" {
		return fmt.Errorf("quad shader source is empty")
	}

	// Validate the WGSL up front: naga reports source-level errors,
	// while backend compilers may only fail at dispatch time.
	if _, err := naga.Compile(quadShaderSource); err != nil {
		return fmt.Errorf("validate quad shader: %w", err)
	}

	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "quad_shader",
		Source: hal.ShaderSource{WGSL: quadShaderSource},
	})
	if err != nil {
		return fmt.Errorf("compile quad shader: %w", err)
	}
	p.shader = shader

	uniformLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "quad_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create quad uniform layout: %w", err)
	}
	p.uniformLayout = uniformLayout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "quad_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("create quad pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "quad_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    quadVertexLayouts(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    targetFormat,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create quad pipeline: %w", err)
	}
	p.pipeline = pipeline

	slogger().Debug("quad pipeline created", "format", targetFormat)
	return nil
}

// quadVertexLayouts returns the two vertex buffer layouts for the quad
// pipeline: slot 0 is the shared unit square stepped per vertex, slot 1
// is the instance data stepped per instance.
func quadVertexLayouts() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: unitVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // unit position
			},
		},
		{
			ArrayStride: quadInstanceStride,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 1},  // bounds origin
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 2},  // bounds size
				{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 3}, // background
				{Format: gputypes.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 4}, // border color
				{Format: gputypes.VertexFormatFloat32x4, Offset: 48, ShaderLocation: 5}, // border widths t,r,b,l
			},
		},
	}
}

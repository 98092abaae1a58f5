package gpu

import (
	"fmt"
	"time"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gesso/scene"
)

// gpuTimeout bounds every fence wait.
const gpuTimeout = 5 * time.Second

// copyPitchAlignment is the row alignment WebGPU (and DX12) require for
// texture-to-buffer copies.
const copyPitchAlignment = 256

// QuadRenderer executes one frame of instanced quad rendering.
// It owns the quad pipeline, the shared unit-square vertex buffer, and
// an offscreen color texture for readback rendering.
//
// Two output paths exist:
//   - RenderReadback renders into an internal texture and copies the
//     pixels back to the CPU. Used for PixmapSurface targets.
//   - RenderToView renders directly into a caller-provided texture view
//     with no readback. Used for window surfaces; presentation is the
//     caller's responsibility.
type QuadRenderer struct {
	device hal.Device
	queue  hal.Queue

	pipeline *QuadPipeline

	// Shared unit-square vertex buffer, created once.
	unitBuf hal.Buffer

	// Offscreen color texture for the readback path.
	colorTex  hal.Texture
	colorView hal.TextureView
	width     uint32
	height    uint32

	// Instance staging buffer reused across frames.
	staging []byte
}

// NewQuadRenderer creates a quad renderer for the given device and
// queue. GPU resources are allocated lazily on first render.
func NewQuadRenderer(device hal.Device, queue hal.Queue) *QuadRenderer {
	return &QuadRenderer{
		device:   device,
		queue:    queue,
		pipeline: NewQuadPipeline(device, queue),
	}
}

// Destroy releases all GPU resources held by the renderer. Safe to call
// multiple times.
func (r *QuadRenderer) Destroy() {
	r.destroyTexture()
	if r.unitBuf != nil {
		r.device.DestroyBuffer(r.unitBuf)
		r.unitBuf = nil
	}
	if r.pipeline != nil {
		r.pipeline.Destroy()
	}
}

// RenderReadback renders the quads into an offscreen texture and reads
// the pixels back into dst as tight RGBA rows. dst must hold w*h*4
// bytes.
func (r *QuadRenderer) RenderReadback(quads []scene.Quad, w, h uint32, dst []byte) error {
	if err := r.ensureResources(); err != nil {
		return err
	}
	if err := r.ensureTexture(w, h); err != nil {
		return err
	}

	res, err := r.buildFrameResources(quads, w, h)
	if err != nil {
		return err
	}
	defer res.destroy(r.device)

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "quad_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("quad_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	r.recordPass(encoder, r.colorView, res)

	// The color texture must move from render-attachment to copy-source
	// layout before CopyTextureToBuffer; explicit on Vulkan and DX12,
	// a no-op elsewhere.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.colorTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	bytesPerRow := w * 4
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingBufSize := uint64(alignedBytesPerRow) * uint64(h)

	stagingBuf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "quad_staging",
		Size:  stagingBufSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("create staging buffer: %w", err)
	}
	defer r.device.DestroyBuffer(stagingBuf)

	encoder.CopyTextureToBuffer(r.colorTex, stagingBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: r.colorTex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})

	// Back to render-attachment layout so the next frame's pass is valid.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.colorTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	if err := r.submitAndWait(encoder); err != nil {
		return err
	}

	mapping, err := r.device.MapBuffer(stagingBuf, 0, stagingBufSize)
	if err != nil {
		return fmt.Errorf("readback: %w", err)
	}
	readback := make([]byte, stagingBufSize)
	copy(readback, unsafe.Slice((*byte)(mapping.Ptr), stagingBufSize))
	if err := r.device.UnmapBuffer(stagingBuf); err != nil {
		return fmt.Errorf("readback unmap: %w", err)
	}

	pixelCount := int(w) * int(h)
	if alignedBytesPerRow == bytesPerRow {
		convertBGRAToRGBA(readback, dst, pixelCount)
	} else {
		// Strip per-row padding from the aligned readback, then convert.
		for row := uint32(0); row < h; row++ {
			srcOff := int(row) * int(alignedBytesPerRow)
			dstOff := int(row) * int(bytesPerRow)
			copy(dst[dstOff:dstOff+int(bytesPerRow)], readback[srcOff:srcOff+int(bytesPerRow)])
		}
		convertBGRAToRGBA(dst, dst, pixelCount)
	}
	return nil
}

// RenderToView renders the quads directly into the given texture view.
// No readback occurs; the caller owns the view and its presentation.
func (r *QuadRenderer) RenderToView(quads []scene.Quad, view hal.TextureView, w, h uint32) error {
	if view == nil {
		return fmt.Errorf("nil texture view")
	}
	if err := r.ensureResources(); err != nil {
		return err
	}

	res, err := r.buildFrameResources(quads, w, h)
	if err != nil {
		return err
	}
	defer res.destroy(r.device)

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "quad_surface_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("quad_surface_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	r.recordPass(encoder, view, res)

	return r.submitAndWait(encoder)
}

// quadFrameResources holds per-frame GPU resources for quad rendering.
type quadFrameResources struct {
	instBuf    hal.Buffer
	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup
	instCount  uint32
}

func (res *quadFrameResources) destroy(device hal.Device) {
	if res.bindGroup != nil {
		device.DestroyBindGroup(res.bindGroup)
	}
	if res.uniformBuf != nil {
		device.DestroyBuffer(res.uniformBuf)
	}
	if res.instBuf != nil {
		device.DestroyBuffer(res.instBuf)
	}
}

// ensureResources creates the pipeline and the shared unit-square
// vertex buffer if they don't exist yet.
func (r *QuadRenderer) ensureResources() error {
	if err := r.pipeline.ensurePipeline(); err != nil {
		return err
	}
	if r.unitBuf == nil {
		buf, err := r.createAndUploadBuffer("quad_unit_verts", unitQuadVertexData(),
			gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
		if err != nil {
			return fmt.Errorf("create unit vertex buffer: %w", err)
		}
		r.unitBuf = buf
	}
	return nil
}

// buildFrameResources creates the per-frame instance buffer, uniform
// buffer, and bind group. instCount is zero when quads is empty; the
// render pass then only clears.
func (r *QuadRenderer) buildFrameResources(quads []scene.Quad, w, h uint32) (*quadFrameResources, error) {
	res := &quadFrameResources{}

	var instData []byte
	r.staging, instData = buildQuadInstancesReuse(quads, r.staging)
	if len(instData) > 0 {
		instBuf, err := r.createAndUploadBuffer("quad_instances", instData,
			gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
		if err != nil {
			return nil, fmt.Errorf("create instance buffer: %w", err)
		}
		res.instBuf = instBuf
		res.instCount = uint32(len(quads)) //nolint:gosec // quad count fits uint32
	}

	uniformBuf, err := r.createAndUploadBuffer("quad_uniform", makeViewportUniform(w, h),
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		res.destroy(r.device)
		return nil, fmt.Errorf("create uniform buffer: %w", err)
	}
	res.uniformBuf = uniformBuf

	bindGroup, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "quad_bind",
		Layout: r.pipeline.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: viewportUniformSize,
			}},
		},
	})
	if err != nil {
		res.destroy(r.device)
		return nil, fmt.Errorf("create bind group: %w", err)
	}
	res.bindGroup = bindGroup

	slogger().Debug("quad frame resources built",
		"instances", res.instCount, "width", w, "height", h)
	return res, nil
}

// recordPass records the quad render pass: clear to transparent, then
// one instanced draw of the shared unit square.
func (r *QuadRenderer) recordPass(encoder hal.CommandEncoder, view hal.TextureView, res *quadFrameResources) {
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "quad_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 0},
		}},
	})
	if res.instCount > 0 {
		rp.SetPipeline(r.pipeline.pipeline)
		rp.SetBindGroup(0, res.bindGroup, nil)
		rp.SetVertexBuffer(0, r.unitBuf, 0)
		rp.SetVertexBuffer(1, res.instBuf, 0)
		rp.Draw(unitQuadVertexCount, res.instCount, 0, 0)
	}
	rp.End()
}

// submitAndWait finishes encoding, submits, and blocks until the GPU
// signals completion.
func (r *QuadRenderer) submitAndWait(encoder hal.CommandEncoder) error {
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	if _, err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	if err := r.device.WaitIdle(); err != nil {
		return fmt.Errorf("wait for GPU: %w", err)
	}
	return nil
}

// ensureTexture creates or recreates the offscreen color texture if the
// requested dimensions differ from the current size.
func (r *QuadRenderer) ensureTexture(w, h uint32) error {
	if r.width == w && r.height == h && r.colorTex != nil {
		return nil
	}
	r.destroyTexture()

	colorTex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "quad_color",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        targetFormat,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create color texture: %w", err)
	}
	r.colorTex = colorTex

	colorView, err := r.device.CreateTextureView(colorTex, &hal.TextureViewDescriptor{
		Label: "quad_color_view",
	})
	if err != nil {
		r.destroyTexture()
		return fmt.Errorf("create color view: %w", err)
	}
	r.colorView = colorView

	r.width = w
	r.height = h
	return nil
}

func (r *QuadRenderer) destroyTexture() {
	if r.colorView != nil {
		r.device.DestroyTextureView(r.colorView)
		r.colorView = nil
	}
	if r.colorTex != nil {
		r.device.DestroyTexture(r.colorTex)
		r.colorTex = nil
	}
	r.width = 0
	r.height = 0
}

// createAndUploadBuffer creates a GPU buffer and uploads data.
func (r *QuadRenderer) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	r.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"log/slog"
	"sync"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gesso"
	"github.com/gogpu/gesso/internal/gpu"
	"github.com/gogpu/gesso/scene"
)

// GPURenderer renders quad scenes on the GPU using a host-provided
// WebGPU device.
//
// The renderer receives its device through a DeviceHandle and never
// creates one. For GPU rendering the handle's provider must also expose
// the underlying HAL objects via HalDevice()/HalQueue(); gogpu's context
// provider does. When the provider exposes no HAL device, Render falls
// back to the software rasterizer for CPU surfaces; the two produce
// identical pixels because they implement the same fragment contract.
//
// Example:
//
//	renderer, err := render.NewGPURenderer(app.GPUContextProvider())
//	if err != nil {
//	    // ...
//	}
//	defer renderer.Close()
//	renderer.Render(surface, sc)
type GPURenderer struct {
	// mu guards the renderer lifecycle: Render and Close may race when
	// the host tears down while a frame is in flight.
	mu     sync.Mutex
	closed bool

	handle DeviceHandle

	// quads executes GPU frames; nil when the handle exposes no HAL
	// device.
	quads *gpu.QuadRenderer

	// softwareFallback serves CPU surfaces when GPU rendering is
	// unavailable. nil when the fallback is disabled.
	softwareFallback *SoftwareRenderer

	logger *slog.Logger

	// readback holds the tight-row pixel buffer reused across frames
	// when the surface stride includes padding.
	readback []byte
}

// GPUOption configures a GPURenderer.
type GPUOption func(*GPURenderer)

// WithLogger sets the logger used by this renderer. By default the
// module-wide logger configured via gesso.SetLogger is used.
func WithLogger(l *slog.Logger) GPUOption {
	return func(r *GPURenderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithoutSoftwareFallback disables CPU fallback rendering: Render
// returns an error for CPU surfaces when no HAL device is available
// instead of rasterizing in software.
func WithoutSoftwareFallback() GPUOption {
	return func(r *GPURenderer) {
		r.softwareFallback = nil
	}
}

// halProvider is implemented by device providers that expose the
// underlying HAL objects (e.g. gogpu's context provider).
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// NewGPURenderer creates a GPU renderer using the host's device handle.
//
// The renderer does NOT create its own GPU device. If the handle's
// provider exposes HAL device and queue objects, frames are rendered on
// the GPU; otherwise CPU surfaces are served by the software fallback.
func NewGPURenderer(handle DeviceHandle, opts ...GPUOption) (*GPURenderer, error) {
	if handle == nil {
		return nil, ErrNilDeviceHandle
	}

	r := &GPURenderer{
		handle:           handle,
		softwareFallback: NewSoftwareRenderer(),
		logger:           gesso.Logger(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if hp, ok := handle.(halProvider); ok {
		device, dok := hp.HalDevice().(hal.Device)
		queue, qok := hp.HalQueue().(hal.Queue)
		if dok && qok && device != nil && queue != nil {
			r.quads = gpu.NewQuadRenderer(device, queue)
		}
	}
	if r.quads == nil {
		r.logger.Warn("gpu renderer: no HAL device exposed, using software fallback")
	}

	return r, nil
}

// Render draws the scene to the surface.
//
// GPU surfaces (TextureView != nil) are rendered directly with no
// readback. CPU surfaces (Pixels != nil) are rendered offscreen and
// read back, or rasterized in software when no GPU is available. A
// surface with neither a view nor pixels returns ErrSurfaceLost: its
// swapchain view has not been acquired for this frame.
func (r *GPURenderer) Render(surface Surface, sc *scene.Scene) error {
	if surface == nil {
		return ErrNilSurface
	}
	if sc == nil {
		return ErrNilScene
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrBackendClosed
	}

	if view := surface.TextureView(); view != nil {
		halView, ok := halViewOf(view)
		if !ok || r.quads == nil {
			return ErrUnsupportedSurface
		}
		//nolint:gosec // surface dimensions always fit uint32
		return r.quads.RenderToView(sc.Quads(), halView, uint32(surface.Width()), uint32(surface.Height()))
	}

	pixels := surface.Pixels()
	if pixels == nil {
		// Neither a texture view nor CPU pixels: the swapchain view
		// was not acquired for this frame.
		return ErrSurfaceLost
	}

	if r.quads == nil {
		if r.softwareFallback == nil {
			return ErrUnsupportedSurface
		}
		return r.softwareFallback.Render(surface, sc)
	}

	w := surface.Width()
	h := surface.Height()
	//nolint:gosec // surface dimensions always fit uint32
	uw, uh := uint32(w), uint32(h)

	if surface.Stride() == w*4 {
		return r.quads.RenderReadback(sc.Quads(), uw, uh, pixels)
	}

	// Padded stride: read back tight rows, then copy row by row.
	need := w * h * 4
	if cap(r.readback) < need {
		r.readback = make([]byte, need)
	}
	tight := r.readback[:need]
	if err := r.quads.RenderReadback(sc.Quads(), uw, uh, tight); err != nil {
		return err
	}
	stride := surface.Stride()
	for y := 0; y < h; y++ {
		copy(pixels[y*stride:y*stride+w*4], tight[y*w*4:(y+1)*w*4])
	}
	return nil
}

// Flush ensures all GPU commands are submitted and complete.
// Frames are submitted synchronously with a fence wait, so there is
// nothing left to flush.
func (r *GPURenderer) Flush() error {
	return nil
}

// Capabilities returns the renderer's capabilities.
func (r *GPURenderer) Capabilities() RendererCapabilities {
	return RendererCapabilities{
		IsGPU:                r.quads != nil,
		SupportsAntialiasing: false,
		MaxSurfaceSize:       8192, // typical GPU limit
	}
}

// DeviceHandle returns the underlying device handle. This allows the
// host to share the GPU device with its own rendering.
func (r *GPURenderer) DeviceHandle() DeviceHandle {
	return r.handle
}

// Close releases all GPU resources held by the renderer. Render
// returns ErrBackendClosed afterwards. Safe to call multiple times.
func (r *GPURenderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	if r.quads != nil {
		r.quads.Destroy()
		r.quads = nil
	}
}

// halViewOf extracts the HAL texture view from a surface view: either
// the view is a HAL view already, or it wraps one behind
// HalTextureView() any.
func halViewOf(v TextureView) (hal.TextureView, bool) {
	if hv, ok := v.(hal.TextureView); ok {
		return hv, true
	}
	if u, ok := v.(interface{ HalTextureView() any }); ok {
		hv, ok := u.HalTextureView().(hal.TextureView)
		return hv, ok && hv != nil
	}
	return nil, false
}

// Ensure GPURenderer implements Renderer and CapableRenderer.
var (
	_ Renderer        = (*GPURenderer)(nil)
	_ CapableRenderer = (*GPURenderer)(nil)
)

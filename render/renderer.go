// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"

	"github.com/gogpu/gesso/scene"
)

// Errors returned by renderers.
var (
	// ErrNilSurface is returned when Render is called with a nil surface.
	ErrNilSurface = errors.New("render: nil surface")

	// ErrNilScene is returned when Render is called with a nil scene.
	ErrNilScene = errors.New("render: nil scene")

	// ErrNilDeviceHandle is returned when a GPU renderer is created
	// without a device handle.
	ErrNilDeviceHandle = errors.New("render: nil device handle")

	// ErrSurfaceLost is returned when the backend surface became invalid
	// (window resized or destroyed) and must be reacquired by the host.
	ErrSurfaceLost = errors.New("render: surface lost")

	// ErrOutOfMemory is returned when the backend cannot allocate the
	// resources a frame needs. GPU allocation failures wrap this.
	ErrOutOfMemory = errors.New("render: out of memory")

	// ErrBackendClosed is returned when Render is called after Close.
	ErrBackendClosed = errors.New("render: backend closed")

	// ErrUnsupportedSurface is returned when a renderer cannot draw to
	// the given surface kind (e.g. a GPU-only surface handed to a CPU
	// renderer).
	ErrUnsupportedSurface = errors.New("render: unsupported surface")
)

// Renderer submits a scene's primitives to a surface.
//
// The Renderer interface is the boundary between scene construction and
// backend-specific drawing. Different implementations provide CPU or GPU
// rendering:
//
//   - SoftwareRenderer: CPU reference rasterizer drawing into pixel memory
//   - GPURenderer: hardware rendering using a host-provided WebGPU device
//   - CountingRenderer: no-op variant for verifying draw-call shape in tests
//
// Renderers never mutate the scene: the same scene can be rendered
// multiple times to different surfaces.
//
// Thread Safety: Renderers are NOT thread-safe. Each renderer should be
// used from a single goroutine, or external synchronization must be used.
//
// Example:
//
//	renderer := render.NewSoftwareRenderer()
//	surface := render.NewPixmapSurface(800, 600)
//	if err := renderer.Render(surface, sc); err != nil {
//	    log.Printf("render failed: %v", err)
//	}
type Renderer interface {
	// Render draws the scene to the surface.
	//
	// Quads are drawn in scene order: later quads appear over earlier
	// ones. The scene is read-only during the call and can be rendered
	// again afterwards.
	Render(surface Surface, sc *scene.Scene) error

	// Flush ensures all pending rendering operations are complete.
	//
	// For CPU renderers this is a no-op as operations are synchronous.
	// For GPU renderers this may submit command buffers and wait for
	// completion.
	Flush() error
}

// RendererCapabilities describes the features supported by a renderer.
type RendererCapabilities struct {
	// IsGPU indicates if this is a GPU-accelerated renderer.
	IsGPU bool

	// SupportsAntialiasing indicates if anti-aliased rendering is
	// supported. Quad rasterization is intentionally not anti-aliased.
	SupportsAntialiasing bool

	// MaxSurfaceSize is the maximum surface dimension (0 = unlimited).
	MaxSurfaceSize int
}

// CapableRenderer is an optional interface for renderers that can
// report their capabilities.
type CapableRenderer interface {
	Renderer

	// Capabilities returns the renderer's capabilities.
	Capabilities() RendererCapabilities
}

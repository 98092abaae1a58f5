// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
)

// Surface defines where rendering output goes.
//
// A Surface is an abstraction over different rendering destinations:
//   - PixmapSurface: CPU-backed *image.RGBA for software rendering
//   - WindowSurface: per-frame texture view from the host application
//
// Surfaces may support CPU access (Pixels), GPU access (TextureView),
// or both. The Renderer implementation chooses the appropriate access
// method.
type Surface interface {
	// Width returns the surface width in device pixels.
	Width() int

	// Height returns the surface height in device pixels.
	Height() int

	// Format returns the pixel format of the surface.
	Format() gputypes.TextureFormat

	// TextureView returns the GPU texture view for this surface.
	// Returns nil for CPU-only surfaces.
	TextureView() TextureView

	// Pixels returns direct access to pixel data.
	// Returns nil for GPU-only surfaces.
	// For RGBA format, each pixel is 4 bytes: R, G, B, A, with color
	// channels alpha-premultiplied (the image.RGBA convention).
	Pixels() []byte

	// Stride returns the number of bytes per row.
	// For RGBA, this is typically Width * 4, but may include padding.
	Stride() int
}

// TextureView represents a view into a GPU texture.
// Views bind render attachments without exposing the backing texture.
type TextureView interface {
	// Destroy releases resources associated with this view.
	Destroy()
}

// PixmapSurface is a CPU-backed surface using *image.RGBA.
//
// This surface supports software rendering and provides direct pixel
// access. It is the default surface for pure CPU rendering workflows
// and for GPU offscreen readback.
//
// Example:
//
//	surface := render.NewPixmapSurface(800, 600)
//	renderer.Render(surface, sc)
//	img := surface.Image()
type PixmapSurface struct {
	img *image.RGBA
}

// NewPixmapSurface creates a new CPU-backed surface.
func NewPixmapSurface(width, height int) *PixmapSurface {
	return &PixmapSurface{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// NewPixmapSurfaceFromImage wraps an existing *image.RGBA as a surface.
// The image is used directly without copying.
func NewPixmapSurfaceFromImage(img *image.RGBA) *PixmapSurface {
	return &PixmapSurface{img: img}
}

// Width returns the surface width in device pixels.
func (s *PixmapSurface) Width() int {
	return s.img.Bounds().Dx()
}

// Height returns the surface height in device pixels.
func (s *PixmapSurface) Height() int {
	return s.img.Bounds().Dy()
}

// Format returns the pixel format (RGBA8).
func (s *PixmapSurface) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// TextureView returns nil as this is a CPU-only surface.
func (s *PixmapSurface) TextureView() TextureView {
	return nil
}

// Pixels returns direct access to the pixel data.
func (s *PixmapSurface) Pixels() []byte {
	return s.img.Pix
}

// Stride returns the number of bytes per row.
func (s *PixmapSurface) Stride() int {
	return s.img.Stride
}

// Image returns the underlying *image.RGBA.
// The returned image shares memory with the surface.
func (s *PixmapSurface) Image() *image.RGBA {
	return s.img
}

// Clear fills the entire surface with the given color.
func (s *PixmapSurface) Clear(c color.Color) {
	r, g, b, a := c.RGBA()
	//nolint:gosec // G115: shift keeps values in uint8 range
	rgba := color.RGBA{
		R: uint8((r >> 8) & 0xFF),
		G: uint8((g >> 8) & 0xFF),
		B: uint8((b >> 8) & 0xFF),
		A: uint8((a >> 8) & 0xFF),
	}

	bounds := s.img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			s.img.SetRGBA(x, y, rgba)
		}
	}
}

// GetPixel returns the color at the given coordinates.
func (s *PixmapSurface) GetPixel(x, y int) color.Color {
	return s.img.At(x, y)
}

// Resize replaces the backing image with one of the given dimensions.
// The contents are not preserved.
func (s *PixmapSurface) Resize(width, height int) {
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Ensure PixmapSurface implements Surface.
var _ Surface = (*PixmapSurface)(nil)

// WindowSurface wraps a per-frame texture view from the host application.
//
// This surface lets the renderer draw directly to a window's swapchain
// texture provided by gogpu or another host framework, with no CPU
// readback.
type WindowSurface struct {
	width  int
	height int
	format gputypes.TextureFormat
	view   TextureView
}

// NewWindowSurface creates a surface from a host-provided texture view.
// The caller retains ownership of the view; the surface will not
// destroy it.
func NewWindowSurface(width, height int, format gputypes.TextureFormat, view TextureView) *WindowSurface {
	return &WindowSurface{
		width:  width,
		height: height,
		format: format,
		view:   view,
	}
}

// Width returns the surface width in device pixels.
func (s *WindowSurface) Width() int {
	return s.width
}

// Height returns the surface height in device pixels.
func (s *WindowSurface) Height() int {
	return s.height
}

// Format returns the surface pixel format.
func (s *WindowSurface) Format() gputypes.TextureFormat {
	return s.format
}

// TextureView returns the current frame's texture view.
func (s *WindowSurface) TextureView() TextureView {
	return s.view
}

// Pixels returns nil as window surfaces do not support CPU access.
func (s *WindowSurface) Pixels() []byte {
	return nil
}

// Stride returns 0 as window surfaces do not support CPU access.
func (s *WindowSurface) Stride() int {
	return 0
}

// SetTextureView replaces the texture view for the next frame.
// Swapchains hand out a fresh view every frame.
func (s *WindowSurface) SetTextureView(view TextureView) {
	s.view = view
}

// Ensure WindowSurface implements Surface.
var _ Surface = (*WindowSurface)(nil)

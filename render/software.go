// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/gesso"
	"github.com/gogpu/gesso/scene"
)

// SoftwareRenderer is a CPU reference rasterizer for quad scenes.
//
// It mirrors the GPU fragment contract exactly: for every pixel covered
// by a quad the distance to each edge is tested against that edge's own
// border width, and the border color wins when the pixel is inside any
// border band and the border color has non-zero opacity. No
// anti-aliasing is applied, and corner radii are not rounded. Output
// bytes are alpha-premultiplied, per the image.RGBA contract.
//
// Because the two implementations share one contract, the software
// renderer doubles as the oracle for GPU output in tests.
//
// Performance characteristics:
//   - Single-threaded
//   - O(n) where n is the number of pixels covered
//
// Example:
//
//	renderer := render.NewSoftwareRenderer()
//	surface := render.NewPixmapSurface(800, 600)
//	renderer.Render(surface, sc)
//	img := surface.Image()
type SoftwareRenderer struct{}

// NewSoftwareRenderer creates a new CPU-based software renderer.
func NewSoftwareRenderer() *SoftwareRenderer {
	return &SoftwareRenderer{}
}

// Render draws the scene to the surface.
//
// Quads are rasterized in scene order with source-over blending.
// Returns ErrUnsupportedSurface if the surface is GPU-only.
func (r *SoftwareRenderer) Render(surface Surface, sc *scene.Scene) error {
	if surface == nil {
		return ErrNilSurface
	}
	if sc == nil {
		return ErrNilScene
	}

	pixels := surface.Pixels()
	if pixels == nil {
		return ErrUnsupportedSurface
	}
	if sc.IsEmpty() {
		return nil
	}

	width := surface.Width()
	height := surface.Height()
	stride := surface.Stride()

	for _, q := range sc.Quads() {
		rasterizeQuad(pixels, width, height, stride, q)
	}
	return nil
}

// Flush is a no-op: software rendering is synchronous.
func (r *SoftwareRenderer) Flush() error {
	return nil
}

// Capabilities returns the renderer's capabilities.
func (r *SoftwareRenderer) Capabilities() RendererCapabilities {
	return RendererCapabilities{
		IsGPU:                false,
		SupportsAntialiasing: false,
		MaxSurfaceSize:       0, // no limit
	}
}

// rasterizeQuad fills one quad into the pixel buffer, applying the
// per-edge border test at each covered pixel.
func rasterizeQuad(pixels []byte, width, height, stride int, q scene.Quad) {
	ox := q.Bounds.Origin.X
	oy := q.Bounds.Origin.Y
	sw := q.Bounds.Size.Width
	sh := q.Bounds.Size.Height
	if sw <= 0 || sh <= 0 {
		return
	}

	// Clip to the surface, then snap outward to whole pixels.
	surfaceRect := gesso.DeviceRect{
		Size: gesso.DeviceSize{Width: float32(width), Height: float32(height)},
	}
	span := q.Bounds.Intersect(surfaceRect).Round()
	if span.IsEmpty() {
		return
	}
	x0, y0 := int(span.Origin.X), int(span.Origin.Y)
	x1, y1 := int(span.Max().X), int(span.Max().Y)

	borderActive := q.BorderColor.A > 0

	for py := y0; py < y1; py++ {
		// Pixel centers, in quad-local coordinates.
		localY := float32(py) + 0.5 - oy
		if localY < 0 || localY >= sh {
			continue
		}
		row := py * stride
		for px := x0; px < x1; px++ {
			localX := float32(px) + 0.5 - ox
			if localX < 0 || localX >= sw {
				continue
			}

			c := q.Background
			if borderActive {
				inBorder := localY < q.BorderWidths.Top ||
					sh-localY < q.BorderWidths.Bottom ||
					localX < q.BorderWidths.Left ||
					sw-localX < q.BorderWidths.Right
				if inBorder {
					c = q.BorderColor
				}
			}
			if c.A <= 0 {
				continue
			}
			blendPixel(pixels[row+px*4:], c)
		}
	}
}

// blendPixel composites a straight-alpha source color over one pixel,
// storing alpha-premultiplied bytes per the image.RGBA contract. The
// GPU path stores premultiplied bytes too (premultiplied blend state,
// raw readback), so the two renderers emit identical output.
func blendPixel(dst []byte, c gg.RGBA) {
	srcA := c.A
	if srcA >= 1 {
		dst[0] = toByte(c.R)
		dst[1] = toByte(c.G)
		dst[2] = toByte(c.B)
		dst[3] = 255
		return
	}

	// Source-over on premultiplied values: out = src*a + dst*(1-a).
	inv := 1 - srcA
	dst[0] = toByte(c.R*srcA + float64(dst[0])/255*inv)
	dst[1] = toByte(c.G*srcA + float64(dst[1])/255*inv)
	dst[2] = toByte(c.B*srcA + float64(dst[2])/255*inv)
	dst[3] = toByte(srcA + float64(dst[3])/255*inv)
}

func toByte(v float64) byte {
	x := v*255 + 0.5
	if x <= 0 {
		return 0
	}
	if x >= 255 {
		return 255
	}
	return byte(x)
}

// Ensure SoftwareRenderer implements Renderer and CapableRenderer.
var (
	_ Renderer        = (*SoftwareRenderer)(nil)
	_ CapableRenderer = (*SoftwareRenderer)(nil)
)

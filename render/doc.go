// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render draws quad scenes to surfaces.
//
// The package defines the Renderer contract plus three implementations:
//
//   - SoftwareRenderer rasterizes on the CPU into a PixmapSurface. It is
//     the reference implementation of the fragment contract and needs no
//     GPU at all.
//   - GPURenderer renders with a host-provided WebGPU device, either
//     offscreen with CPU readback or directly to a window surface.
//   - CountingRenderer draws nothing and records primitive counts, for
//     tests and draw-call diagnostics.
//
// Renderers read a fully built scene.Scene; they never mutate it. A
// typical frame:
//
//	sc.Clear()
//	dc := scene.NewDrawContext(sc, scaleFactor)
//	// ... paint ...
//	if err := renderer.Render(surface, sc); err != nil {
//	    // handle
//	}
//
// Surfaces abstract the output memory: PixmapSurface wraps an
// *image.RGBA for CPU access, WindowSurface wraps a per-frame texture
// view handed out by the host's swapchain.
package render

// Package gesso provides the drawing core for a 2D UI toolkit.
//
// # Overview
//
// gesso lowers nested, logical-pixel draw calls into a flat list of
// device-pixel quad primitives that a GPU backend can consume. It is the
// layer between widget/layout code and the rendering backend:
//
//   - Coordinate spaces: logical (DPI-independent) and device (framebuffer)
//     pixels are distinct types, convertible only through a [ScaleFactor].
//   - Layout values: [Edges] and [Corners] hold CSS-ordered per-side and
//     per-corner quadruples; [Axis] addresses the main or cross axis.
//   - scene: the Quad primitive, the per-frame Scene container, and the
//     DrawContext painter's stack.
//   - render: the backend contract, a counting no-op backend, a CPU
//     reference rasterizer, and a WebGPU-backed quad renderer.
//
// # Frame lifecycle
//
// A Scene is created once per rendering surface and reused every frame:
// cleared at frame start (capacity retained), written by exactly one
// DrawContext during the frame, read by exactly one Renderer afterward.
// These access windows never overlap, so the core needs no locking.
//
// # Quick start
//
//	sc := scene.NewScene()
//	dc := scene.NewDrawContext(sc, gesso.NewScaleFactor(2))
//	dc.PaintQuad(gesso.RectXYWH(10, 20, 100, 50), gg.Blue)
//	dc.WithOffset(gesso.Vec(100, 0), func() {
//	    dc.PaintQuad(gesso.RectXYWH(0, 0, 40, 40), gg.Red)
//	})
//	renderer.Render(surface, sc)
//	sc.Clear()
//
// Drawing is single-threaded and synchronous; cross-thread use requires
// external synchronization.
package gesso

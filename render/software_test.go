// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"image/color"
	"testing"

	"github.com/gogpu/gg"

	"github.com/gogpu/gesso"
	"github.com/gogpu/gesso/scene"
)

func pixelAt(t *testing.T, s *PixmapSurface, x, y int) color.RGBA {
	t.Helper()
	c, ok := s.GetPixel(x, y).(color.RGBA)
	if !ok {
		t.Fatalf("pixel at (%d, %d) is not RGBA", x, y)
	}
	return c
}

func TestSoftwareRendererFill(t *testing.T) {
	r := NewSoftwareRenderer()
	surface := NewPixmapSurface(20, 20)

	sc := scene.NewScene()
	dc := scene.NewDrawContext(sc, gesso.NewScaleFactor(1))
	dc.PaintQuad(gesso.RectXYWH(5, 5, 10, 10), gg.Red)

	if err := r.Render(surface, sc); err != nil {
		t.Fatalf("Render: %v", err)
	}

	if c := pixelAt(t, surface, 10, 10); c.R != 255 || c.G != 0 || c.B != 0 || c.A != 255 {
		t.Errorf("interior pixel = %+v, want opaque red", c)
	}
	if c := pixelAt(t, surface, 2, 2); c.A != 0 {
		t.Errorf("outside pixel = %+v, want transparent", c)
	}
	// The fill covers [5,15): pixel 4 is out, pixel 5 is in.
	if c := pixelAt(t, surface, 4, 10); c.A != 0 {
		t.Errorf("pixel left of quad = %+v, want transparent", c)
	}
	if c := pixelAt(t, surface, 5, 10); c.R != 255 {
		t.Errorf("first covered pixel = %+v, want red", c)
	}
	if c := pixelAt(t, surface, 15, 10); c.A != 0 {
		t.Errorf("pixel right of quad = %+v, want transparent", c)
	}
}

func TestSoftwareRendererBorder(t *testing.T) {
	r := NewSoftwareRenderer()
	surface := NewPixmapSurface(20, 20)

	sc := scene.NewScene()
	dc := scene.NewDrawContext(sc, gesso.NewScaleFactor(1))
	q := scene.NewQuad(
		gesso.DeviceRect{
			Origin: gesso.DevicePoint{X: 0, Y: 0},
			Size:   gesso.DeviceSize{Width: 20, Height: 20},
		},
		gg.White,
	).WithBorder(gg.Black, 3)
	dc.Paint(q)

	if err := r.Render(surface, sc); err != nil {
		t.Fatalf("Render: %v", err)
	}

	// Border band is 3px on each edge.
	if c := pixelAt(t, surface, 1, 10); c.R != 0 {
		t.Errorf("left border pixel = %+v, want black", c)
	}
	if c := pixelAt(t, surface, 10, 1); c.R != 0 {
		t.Errorf("top border pixel = %+v, want black", c)
	}
	if c := pixelAt(t, surface, 18, 10); c.R != 0 {
		t.Errorf("right border pixel = %+v, want black", c)
	}
	if c := pixelAt(t, surface, 10, 18); c.R != 0 {
		t.Errorf("bottom border pixel = %+v, want black", c)
	}
	if c := pixelAt(t, surface, 10, 10); c.R != 255 {
		t.Errorf("interior pixel = %+v, want white", c)
	}
	// Just inside the band boundary on each axis.
	if c := pixelAt(t, surface, 3, 10); c.R != 255 {
		t.Errorf("pixel past left band = %+v, want white", c)
	}
}

func TestSoftwareRendererPerEdgeWidths(t *testing.T) {
	r := NewSoftwareRenderer()
	surface := NewPixmapSurface(20, 20)

	sc := scene.NewScene()
	dc := scene.NewDrawContext(sc, gesso.NewScaleFactor(1))
	q := scene.NewQuad(
		gesso.DeviceRect{
			Origin: gesso.DevicePoint{X: 0, Y: 0},
			Size:   gesso.DeviceSize{Width: 20, Height: 20},
		},
		gg.White,
	).WithBorderWidths(gg.Black, gesso.Edges[float32]{Top: 5, Right: 0, Bottom: 0, Left: 0})
	dc.Paint(q)

	if err := r.Render(surface, sc); err != nil {
		t.Fatalf("Render: %v", err)
	}

	// Only the top edge has a border.
	if c := pixelAt(t, surface, 10, 2); c.R != 0 {
		t.Errorf("top band pixel = %+v, want black", c)
	}
	if c := pixelAt(t, surface, 10, 17); c.R != 255 {
		t.Errorf("bottom edge pixel = %+v, want white", c)
	}
	if c := pixelAt(t, surface, 1, 10); c.R != 255 {
		t.Errorf("left edge pixel = %+v, want white", c)
	}
	if c := pixelAt(t, surface, 18, 10); c.R != 255 {
		t.Errorf("right edge pixel = %+v, want white", c)
	}
}

func TestSoftwareRendererTransparentBorderIgnored(t *testing.T) {
	r := NewSoftwareRenderer()
	surface := NewPixmapSurface(10, 10)

	sc := scene.NewScene()
	dc := scene.NewDrawContext(sc, gesso.NewScaleFactor(1))
	q := scene.NewQuad(
		gesso.DeviceRect{
			Origin: gesso.DevicePoint{X: 0, Y: 0},
			Size:   gesso.DeviceSize{Width: 10, Height: 10},
		},
		gg.Red,
	)
	// Non-zero widths but zero-opacity color: no border is drawn.
	q.BorderWidths = gesso.EdgesAll[float32](2)
	dc.Paint(q)

	if err := r.Render(surface, sc); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if c := pixelAt(t, surface, 0, 0); c.R != 255 {
		t.Errorf("corner pixel = %+v, want red background", c)
	}
}

func TestSoftwareRendererDrawOrder(t *testing.T) {
	r := NewSoftwareRenderer()
	surface := NewPixmapSurface(10, 10)

	sc := scene.NewScene()
	dc := scene.NewDrawContext(sc, gesso.NewScaleFactor(1))
	dc.PaintQuad(gesso.RectXYWH(0, 0, 10, 10), gg.Red)
	dc.PaintQuad(gesso.RectXYWH(0, 0, 10, 10), gg.Blue)

	if err := r.Render(surface, sc); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if c := pixelAt(t, surface, 5, 5); c.B != 255 || c.R != 0 {
		t.Errorf("pixel = %+v, later quad must win", c)
	}
}

func TestSoftwareRendererAlphaBlend(t *testing.T) {
	r := NewSoftwareRenderer()
	surface := NewPixmapSurface(10, 10)

	sc := scene.NewScene()
	dc := scene.NewDrawContext(sc, gesso.NewScaleFactor(1))
	dc.PaintQuad(gesso.RectXYWH(0, 0, 10, 10), gg.White)
	dc.PaintQuad(gesso.RectXYWH(0, 0, 10, 10), gg.RGBA2(0, 0, 0, 0.5))

	if err := r.Render(surface, sc); err != nil {
		t.Fatalf("Render: %v", err)
	}
	c := pixelAt(t, surface, 5, 5)
	// 50% black over white: mid gray, opaque.
	if c.A != 255 {
		t.Errorf("alpha = %d, want 255", c.A)
	}
	if c.R < 120 || c.R > 135 {
		t.Errorf("blended value = %d, want about 128", c.R)
	}
}

func TestSoftwareRendererTranslucentPremultiplied(t *testing.T) {
	r := NewSoftwareRenderer()
	surface := NewPixmapSurface(2, 2)

	sc := scene.NewScene()
	dc := scene.NewDrawContext(sc, gesso.NewScaleFactor(1))
	dc.PaintQuad(gesso.RectXYWH(0, 0, 2, 2), gg.RGBA2(0.5, 0.5, 0.5, 0.5))

	if err := r.Render(surface, sc); err != nil {
		t.Fatalf("Render: %v", err)
	}

	// Stored bytes follow the image.RGBA premultiplied convention:
	// 50% gray at 50% alpha over transparent is (64, 64, 64, 128),
	// not the straight-alpha (128, 128, 128, 128).
	px := surface.Pixels()
	want := []byte{64, 64, 64, 128}
	for i, w := range want {
		if d := int(px[i]) - int(w); d < -1 || d > 1 {
			t.Errorf("byte %d = %d, want %d", i, px[i], w)
		}
	}
}

func TestSoftwareRendererOffscreenQuad(t *testing.T) {
	r := NewSoftwareRenderer()
	surface := NewPixmapSurface(8, 8)

	sc := scene.NewScene()
	dc := scene.NewDrawContext(sc, gesso.NewScaleFactor(1))
	// Entirely outside the surface on both axes.
	dc.PaintQuad(gesso.RectXYWH(100, 100, 10, 10), gg.Red)
	dc.PaintQuad(gesso.RectXYWH(-50, -50, 10, 10), gg.Blue)

	if err := r.Render(surface, sc); err != nil {
		t.Fatalf("Render: %v", err)
	}
	for i, b := range surface.Pixels() {
		if b != 0 {
			t.Fatalf("pixel byte %d = %d, offscreen quads must not draw", i, b)
		}
	}
}

func TestSoftwareRendererClipsToSurface(t *testing.T) {
	r := NewSoftwareRenderer()
	surface := NewPixmapSurface(10, 10)

	sc := scene.NewScene()
	dc := scene.NewDrawContext(sc, gesso.NewScaleFactor(1))
	// Extends past every surface edge.
	dc.PaintQuad(gesso.RectXYWH(-5, -5, 20, 20), gg.Green)

	if err := r.Render(surface, sc); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if c := pixelAt(t, surface, 0, 0); c.G != 255 {
		t.Errorf("corner pixel = %+v, want green", c)
	}
	if c := pixelAt(t, surface, 9, 9); c.G != 255 {
		t.Errorf("far corner pixel = %+v, want green", c)
	}
}

func TestSoftwareRendererScaledScene(t *testing.T) {
	r := NewSoftwareRenderer()
	surface := NewPixmapSurface(40, 40)

	sc := scene.NewScene()
	dc := scene.NewDrawContext(sc, gesso.NewScaleFactor(2))
	dc.PaintQuad(gesso.RectXYWH(5, 5, 10, 10), gg.Red)

	if err := r.Render(surface, sc); err != nil {
		t.Fatalf("Render: %v", err)
	}
	// Device coverage is [10,30).
	if c := pixelAt(t, surface, 9, 20); c.A != 0 {
		t.Errorf("pixel before scaled quad = %+v, want transparent", c)
	}
	if c := pixelAt(t, surface, 10, 20); c.R != 255 {
		t.Errorf("first scaled pixel = %+v, want red", c)
	}
	if c := pixelAt(t, surface, 29, 20); c.R != 255 {
		t.Errorf("last scaled pixel = %+v, want red", c)
	}
	if c := pixelAt(t, surface, 30, 20); c.A != 0 {
		t.Errorf("pixel after scaled quad = %+v, want transparent", c)
	}
}

func TestSoftwareRendererErrors(t *testing.T) {
	r := NewSoftwareRenderer()
	if err := r.Render(nil, scene.NewScene()); !errors.Is(err, ErrNilSurface) {
		t.Errorf("nil surface: err = %v, want ErrNilSurface", err)
	}
	if err := r.Render(NewPixmapSurface(1, 1), nil); !errors.Is(err, ErrNilScene) {
		t.Errorf("nil scene: err = %v, want ErrNilScene", err)
	}

	gpuOnly := NewWindowSurface(10, 10, NewPixmapSurface(1, 1).Format(), nil)
	if err := r.Render(gpuOnly, scene.NewScene()); !errors.Is(err, ErrUnsupportedSurface) {
		t.Errorf("GPU-only surface: err = %v, want ErrUnsupportedSurface", err)
	}
}

func TestSoftwareRendererEmptyScene(t *testing.T) {
	r := NewSoftwareRenderer()
	surface := NewPixmapSurface(4, 4)
	if err := r.Render(surface, scene.NewScene()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if c := pixelAt(t, surface, 0, 0); c.A != 0 {
		t.Errorf("empty scene must leave surface untouched, got %+v", c)
	}
}

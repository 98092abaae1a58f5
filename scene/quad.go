package scene

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/gesso"
)

// Quad is the primitive the renderer consumes: a device-space rectangle
// with a background fill, an optional border with independent per-edge
// widths, and per-corner radii.
//
// A Quad is always fully device-space. Logical coordinates never reach
// the Scene; the DrawContext converts them before construction. Once
// pushed into a Scene a Quad is immutable.
//
// Corner radii are carried in the data model but the rasterizer does not
// round corners yet.
type Quad struct {
	// Bounds is the quad rectangle in device pixels.
	Bounds gesso.DeviceRect

	// Background is the fill color.
	Background gg.RGBA

	// BorderColor is the border color. A fully transparent border color
	// disables border rendering regardless of widths.
	BorderColor gg.RGBA

	// BorderWidths holds the border width of each edge in device pixels.
	BorderWidths gesso.Edges[float32]

	// CornerRadii holds the radius of each corner in device pixels.
	CornerRadii gesso.Corners[float32]
}

// NewQuad creates a plain filled rectangle: transparent zero-width
// border, square corners.
func NewQuad(bounds gesso.DeviceRect, background gg.RGBA) Quad {
	return Quad{
		Bounds:      bounds,
		Background:  background,
		BorderColor: gg.Transparent,
	}
}

// WithBorder returns a copy of the quad with the given uniform border.
func (q Quad) WithBorder(color gg.RGBA, width float32) Quad {
	q.BorderColor = color
	q.BorderWidths = gesso.EdgesAll(width)
	return q
}

// WithBorderWidths returns a copy of the quad with per-edge border widths.
func (q Quad) WithBorderWidths(color gg.RGBA, widths gesso.Edges[float32]) Quad {
	q.BorderColor = color
	q.BorderWidths = widths
	return q
}

// WithCornerRadii returns a copy of the quad with the given corner radii.
func (q Quad) WithCornerRadii(radii gesso.Corners[float32]) Quad {
	q.CornerRadii = radii
	return q
}

// HasBorder reports whether the quad has a visible border: at least one
// non-zero edge width and a border color with non-zero opacity.
func (q Quad) HasBorder() bool {
	return q.BorderColor.A > 0 && !q.BorderWidths.IsZero()
}

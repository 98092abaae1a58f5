package scene

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/gesso"
)

// DrawContext converts logical-space draw calls into device-space quads
// and writes them into a Scene. It is the painter's stack: nested offset
// and clip scopes compose hierarchical drawing without manual push/pop
// bookkeeping.
//
// A DrawContext is frame-scoped. It exclusively borrows its Scene for
// its entire lifetime; no other writer may touch the Scene until the
// frame ends. No context state survives past the frame.
//
// Example:
//
//	dc := scene.NewDrawContext(sc, gesso.NewScaleFactor(2))
//	dc.PaintQuad(gesso.RectXYWH(0, 0, 100, 40), gg.White)
//	dc.WithOffset(gesso.Vec(10, 50), func() {
//	    // Painted relative to (10, 50).
//	    dc.PaintQuad(gesso.RectXYWH(0, 0, 80, 20), gg.Blue)
//	})
type DrawContext struct {
	scene *Scene
	scale gesso.ScaleFactor

	// offsets is the accumulated-translation stack. It is never empty:
	// the bottom entry is the zero offset.
	offsets []gesso.Vector

	// clips holds accumulated clip rectangles in logical space, each
	// already translated by the offset active at its push and
	// intersected with the enclosing clip.
	clips []gesso.Rect
}

// NewDrawContext creates a drawing context writing into the given scene.
// The scale factor is fixed for the context's lifetime.
func NewDrawContext(s *Scene, scale gesso.ScaleFactor) *DrawContext {
	gesso.Logger().Debug("draw context created", "scale", scale.Factor())
	return &DrawContext{
		scene:   s,
		scale:   scale,
		offsets: append(make([]gesso.Vector, 0, 8), gesso.Vector{}),
		clips:   make([]gesso.Rect, 0, 8),
	}
}

// ScaleFactor returns the context's scale factor.
func (dc *DrawContext) ScaleFactor() gesso.ScaleFactor {
	return dc.scale
}

// CurrentOffset returns the accumulated logical translation.
func (dc *DrawContext) CurrentOffset() gesso.Vector {
	return dc.offsets[len(dc.offsets)-1]
}

// WithOffset runs scope with the given delta added to the accumulated
// offset. Nested calls compose additively. The offset is popped on
// every exit path, including a panic inside scope, so the stack can
// never be left unbalanced.
func (dc *DrawContext) WithOffset(delta gesso.Vector, scope func()) {
	dc.offsets = append(dc.offsets, dc.CurrentOffset().Add(delta))
	defer func() {
		dc.offsets = dc.offsets[:len(dc.offsets)-1]
	}()
	scope()
}

// WithClip runs scope with an additional clip rectangle. The bounds are
// given in the current local space: they are translated by the
// accumulated offset before being pushed. The effective clip is the
// intersection with any enclosing clip. The clip is popped on every
// exit path, including a panic inside scope.
func (dc *DrawContext) WithClip(bounds gesso.Rect, scope func()) {
	clip := bounds.Translate(dc.CurrentOffset())
	if enclosing, ok := dc.ClipBounds(); ok {
		clip = clip.Intersect(enclosing)
	}
	dc.clips = append(dc.clips, clip)
	defer func() {
		dc.clips = dc.clips[:len(dc.clips)-1]
	}()
	scope()
}

// ClipBounds returns the effective clip rectangle in logical
// root-space coordinates. ok is false when no clip is active.
func (dc *DrawContext) ClipBounds() (r gesso.Rect, ok bool) {
	if len(dc.clips) == 0 {
		return gesso.Rect{}, false
	}
	return dc.clips[len(dc.clips)-1], true
}

// OffsetDepth returns the number of offset scopes currently open.
func (dc *DrawContext) OffsetDepth() int {
	return len(dc.offsets) - 1
}

// ClipDepth returns the number of clip scopes currently open.
func (dc *DrawContext) ClipDepth() int {
	return len(dc.clips)
}

// PaintQuad paints a plain filled rectangle given in the current local
// space. Border and corner styling go through Paint with an explicitly
// built Quad.
func (dc *DrawContext) PaintQuad(bounds gesso.Rect, fill gg.RGBA) {
	dc.Paint(NewQuad(dc.ToDeviceRect(bounds), fill))
}

// Paint appends an already-device-space quad to the scene. This is the
// sole write path into the Scene.
func (dc *DrawContext) Paint(q Quad) {
	dc.scene.Push(q)
}

// ToDeviceRect converts local logical bounds to device space: the
// accumulated offset is added to the origin first, then origin and size
// are scaled. The order matters because offsets are DPI-independent
// quantities.
func (dc *DrawContext) ToDeviceRect(bounds gesso.Rect) gesso.DeviceRect {
	return dc.scale.ScaleRect(bounds.Translate(dc.CurrentOffset()))
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gesso/scene"
)

// CountingRenderer is a no-op renderer that records draw-call shape.
// It performs no drawing: it counts frames and primitives, which is
// enough to verify scene construction and render-loop plumbing without
// any hardware or pixel memory.
type CountingRenderer struct {
	framesRendered int
	lastQuadCount  int
	totalQuads     int
}

// NewCountingRenderer creates a new counting renderer.
func NewCountingRenderer() *CountingRenderer {
	return &CountingRenderer{}
}

// Render records the scene's primitive counts and draws nothing.
// The surface is only validated, never written.
func (r *CountingRenderer) Render(surface Surface, sc *scene.Scene) error {
	if surface == nil {
		return ErrNilSurface
	}
	if sc == nil {
		return ErrNilScene
	}
	r.framesRendered++
	r.lastQuadCount = sc.QuadCount()
	r.totalQuads += sc.QuadCount()
	return nil
}

// Flush is a no-op.
func (r *CountingRenderer) Flush() error {
	return nil
}

// FramesRendered returns the number of successful Render calls.
func (r *CountingRenderer) FramesRendered() int {
	return r.framesRendered
}

// LastQuadCount returns the quad count of the most recent frame.
func (r *CountingRenderer) LastQuadCount() int {
	return r.lastQuadCount
}

// TotalQuads returns the quad count summed over all frames.
func (r *CountingRenderer) TotalQuads() int {
	return r.totalQuads
}

// Reset clears all counters.
func (r *CountingRenderer) Reset() {
	r.framesRendered = 0
	r.lastQuadCount = 0
	r.totalQuads = 0
}

// Ensure CountingRenderer implements Renderer.
var _ Renderer = (*CountingRenderer)(nil)

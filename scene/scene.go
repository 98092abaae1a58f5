package scene

// Scene is the per-frame container for primitives awaiting rendering.
// It owns one growable, clearable list per primitive kind (currently
// quads only).
//
// A Scene is created once per rendering surface and reused across
// frames: cleared at frame start, written by one DrawContext during the
// frame, then read once by a Renderer. These access windows never
// overlap, so the Scene needs no locking. Cross-thread use requires
// external synchronization.
//
// Example:
//
//	sc := scene.NewScene()
//	for each frame {
//	    sc.Clear()
//	    dc := scene.NewDrawContext(sc, scaleFactor)
//	    // ... paint via dc ...
//	    renderer.Render(surface, sc)
//	}
type Scene struct {
	// quads holds the frame's primitives in push order, which is
	// render order.
	quads []Quad

	// version is incremented on each modification for cache invalidation
	version uint64
}

// NewScene creates a new empty scene.
func NewScene() *Scene {
	return &Scene{
		quads: make([]Quad, 0, 64),
	}
}

// Push appends a quad. Push order is render order: later quads are
// drawn over earlier ones.
func (s *Scene) Push(q Quad) {
	s.quads = append(s.quads, q)
	s.version++
}

// Clear empties the scene for the next frame without deallocating the
// backing storage, so steady-state frames do not reallocate.
func (s *Scene) Clear() {
	s.quads = s.quads[:0]
	s.version++
}

// QuadCount returns the number of quads in the scene.
func (s *Scene) QuadCount() int {
	return len(s.quads)
}

// Quads returns the scene's quads in render order. The slice is owned
// by the Scene and valid only until the next Push or Clear; callers
// must not mutate it.
func (s *Scene) Quads() []Quad {
	return s.quads
}

// IsEmpty returns true if the scene has no content.
func (s *Scene) IsEmpty() bool {
	return len(s.quads) == 0
}

// Version returns the scene version number.
// This is incremented on each modification and can be used for cache invalidation.
func (s *Scene) Version() uint64 {
	return s.version
}

// ScenePool manages a pool of reusable Scene objects.
type ScenePool struct {
	scenes []*Scene
}

// NewScenePool creates a new scene pool.
func NewScenePool() *ScenePool {
	return &ScenePool{
		scenes: make([]*Scene, 0, 4),
	}
}

// Get retrieves a scene from the pool or creates a new one.
// The returned scene is always empty.
func (sp *ScenePool) Get() *Scene {
	if len(sp.scenes) > 0 {
		s := sp.scenes[len(sp.scenes)-1]
		sp.scenes = sp.scenes[:len(sp.scenes)-1]
		s.Clear()
		return s
	}
	return NewScene()
}

// Put returns a scene to the pool for reuse.
func (sp *ScenePool) Put(s *Scene) {
	if s == nil {
		return
	}
	sp.scenes = append(sp.scenes, s)
}

// Warmup pre-allocates scenes to avoid allocation during critical paths.
func (sp *ScenePool) Warmup(count int) {
	scenes := make([]*Scene, count)
	for i := 0; i < count; i++ {
		scenes[i] = sp.Get()
	}
	for i := 0; i < count; i++ {
		sp.Put(scenes[i])
	}
}

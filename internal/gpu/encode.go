package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gesso/scene"
)

// quadInstanceStride is the byte stride per quad instance.
// Layout per instance (16 floats, 64 bytes):
//
//	bounds origin  (vec2<f32>) = 8 bytes  (location 1)
//	bounds size    (vec2<f32>) = 8 bytes  (location 2)
//	background     (vec4<f32>) = 16 bytes (location 3)
//	border color   (vec4<f32>) = 16 bytes (location 4)
//	border widths  (vec4<f32>) = 16 bytes (location 5), order t, r, b, l
const quadInstanceStride = 64

// unitVertexStride is the byte stride per vertex of the shared unit
// square: position (vec2<f32>) = 8 bytes (location 0).
const unitVertexStride = 8

// unitQuadVertexCount is the vertex count of the shared unit square,
// two triangles drawn as a triangle list.
const unitQuadVertexCount = 6

// viewportUniformSize is the byte size of the viewport uniform buffer.
// Layout: viewport (vec2<f32>) + padding (vec2<f32>) = 16 bytes.
const viewportUniformSize = 16

// unitQuadVertexData returns the shared unit square vertex data:
// two triangles covering [0,1]^2.
func unitQuadVertexData() []byte {
	verts := [unitQuadVertexCount * 2]float32{
		0, 0, 1, 0, 1, 1,
		0, 0, 1, 1, 0, 1,
	}
	buf := make([]byte, len(verts)*4)
	for i, v := range verts {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// BuildQuadInstances encodes quads as per-instance vertex data.
// Quads appear in slice order, which the draw call preserves as render
// order.
func BuildQuadInstances(quads []scene.Quad) []byte {
	_, data := buildQuadInstancesReuse(quads, nil)
	return data
}

// buildQuadInstancesReuse encodes instance data into the provided
// staging buffer, growing it if necessary. Returns the (possibly
// reallocated) staging buffer and the slice of valid instance data.
func buildQuadInstancesReuse(quads []scene.Quad, staging []byte) ([]byte, []byte) {
	needed := len(quads) * quadInstanceStride
	if needed == 0 {
		return staging, nil
	}
	if cap(staging) < needed {
		staging = make([]byte, needed)
	} else {
		staging = staging[:needed]
	}

	offset := 0
	for i := range quads {
		q := &quads[i]
		writeQuadInstance(staging[offset:], q)
		offset += quadInstanceStride
	}
	return staging, staging[:offset]
}

// writeQuadInstance writes one 64-byte instance record.
func writeQuadInstance(buf []byte, q *scene.Quad) {
	putF32(buf[0:], q.Bounds.Origin.X)
	putF32(buf[4:], q.Bounds.Origin.Y)
	putF32(buf[8:], q.Bounds.Size.Width)
	putF32(buf[12:], q.Bounds.Size.Height)

	putF32(buf[16:], float32(q.Background.R))
	putF32(buf[20:], float32(q.Background.G))
	putF32(buf[24:], float32(q.Background.B))
	putF32(buf[28:], float32(q.Background.A))

	putF32(buf[32:], float32(q.BorderColor.R))
	putF32(buf[36:], float32(q.BorderColor.G))
	putF32(buf[40:], float32(q.BorderColor.B))
	putF32(buf[44:], float32(q.BorderColor.A))

	putF32(buf[48:], q.BorderWidths.Top)
	putF32(buf[52:], q.BorderWidths.Right)
	putF32(buf[56:], q.BorderWidths.Bottom)
	putF32(buf[60:], q.BorderWidths.Left)
}

func putF32(buf []byte, v float32) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v))
}

// makeViewportUniform creates the 16-byte uniform buffer.
// Layout: viewport (vec2<f32>) + padding (vec2<f32>).
func makeViewportUniform(w, h uint32) []byte {
	buf := make([]byte, viewportUniformSize)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(float32(w)))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(float32(h)))
	// Padding bytes 8..15 remain zero.
	return buf
}

// convertBGRAToRGBA converts pixel data in place from BGRA byte order
// to RGBA, writing into dst. src and dst may alias.
func convertBGRAToRGBA(src, dst []byte, pixelCount int) {
	for i := 0; i < pixelCount; i++ {
		o := i * 4
		b, g, r, a := src[o], src[o+1], src[o+2], src[o+3]
		dst[o], dst[o+1], dst[o+2], dst[o+3] = r, g, b, a
	}
}

package gesso

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Logical and device pixels are deliberately distinct types. Logical pixels
// are the DPI-independent unit layout code works in; device pixels are
// physical framebuffer pixels, the unit the rasterizer consumes. The two
// must never be mixed: the only bridge between them is a ScaleFactor.

// Point is a position in logical pixels.
type Point struct {
	X, Y float32
}

// Vector is a displacement in logical pixels.
type Vector struct {
	X, Y float32
}

// Size is an extent in logical pixels.
type Size struct {
	Width, Height float32
}

// Rect is an axis-aligned rectangle in logical pixels,
// represented as an origin (top-left corner) plus a size.
type Rect struct {
	Origin Point
	Size   Size
}

// DevicePoint is a position in device pixels.
type DevicePoint struct {
	X, Y float32
}

// DeviceSize is an extent in device pixels.
type DeviceSize struct {
	Width, Height float32
}

// DeviceRect is an axis-aligned rectangle in device pixels.
type DeviceRect struct {
	Origin DevicePoint
	Size   DeviceSize
}

// Pt is a convenience function to create a logical Point.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Vec is a convenience function to create a logical Vector.
func Vec(x, y float32) Vector {
	return Vector{X: x, Y: y}
}

// Sz is a convenience function to create a logical Size.
func Sz(width, height float32) Size {
	return Size{Width: width, Height: height}
}

// RectXYWH constructs a logical Rect from origin coordinates and dimensions.
func RectXYWH(x, y, width, height float32) Rect {
	return Rect{Origin: Point{X: x, Y: y}, Size: Size{Width: width, Height: height}}
}

// Add returns the point displaced by a vector.
func (p Point) Add(v Vector) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub returns the displacement from q to p.
func (p Point) Sub(q Point) Vector {
	return Vector{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns the sum of two vectors.
func (v Vector) Add(w Vector) Vector {
	return Vector{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns the difference of two vectors.
func (v Vector) Sub(w Vector) Vector {
	return Vector{X: v.X - w.X, Y: v.Y - w.Y}
}

// Mul returns the vector scaled by a scalar.
func (v Vector) Mul(s float32) Vector {
	return Vector{X: v.X * s, Y: v.Y * s}
}

// Div returns the vector divided by a scalar.
func (v Vector) Div(s float32) Vector {
	return Vector{X: v.X / s, Y: v.Y / s}
}

// Neg returns the negated vector.
func (v Vector) Neg() Vector {
	return Vector{X: -v.X, Y: -v.Y}
}

// Dot returns the dot product of two vectors.
func (v Vector) Dot(w Vector) float32 {
	return v.X*w.X + v.Y*w.Y
}

// Length returns the length of the vector.
func (v Vector) Length() float32 {
	return math32.Hypot(v.X, v.Y)
}

// IsZero returns true if both components are zero.
func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// IsEmpty returns true if the size has no area.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Min returns the top-left corner of the rectangle.
func (r Rect) Min() Point {
	return r.Origin
}

// Max returns the bottom-right corner of the rectangle.
func (r Rect) Max() Point {
	return Point{X: r.Origin.X + r.Size.Width, Y: r.Origin.Y + r.Size.Height}
}

// IsEmpty returns true if the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Size.IsEmpty()
}

// Translate returns the rectangle displaced by a vector.
func (r Rect) Translate(v Vector) Rect {
	return Rect{Origin: r.Origin.Add(v), Size: r.Size}
}

// Contains returns true if the point lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	max := r.Max()
	return p.X >= r.Origin.X && p.X < max.X && p.Y >= r.Origin.Y && p.Y < max.Y
}

// Intersect returns the overlapping region of two rectangles.
// The result is empty if they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	minX := math32.Max(r.Origin.X, o.Origin.X)
	minY := math32.Max(r.Origin.Y, o.Origin.Y)
	maxX := math32.Min(r.Max().X, o.Max().X)
	maxY := math32.Min(r.Max().Y, o.Max().Y)
	if maxX <= minX || maxY <= minY {
		return Rect{}
	}
	return RectXYWH(minX, minY, maxX-minX, maxY-minY)
}

// Union returns the smallest rectangle containing both rectangles.
// An empty rectangle does not contribute to the union.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	minX := math32.Min(r.Origin.X, o.Origin.X)
	minY := math32.Min(r.Origin.Y, o.Origin.Y)
	maxX := math32.Max(r.Max().X, o.Max().X)
	maxY := math32.Max(r.Max().Y, o.Max().Y)
	return RectXYWH(minX, minY, maxX-minX, maxY-minY)
}

// Max returns the bottom-right corner of the rectangle.
func (r DeviceRect) Max() DevicePoint {
	return DevicePoint{X: r.Origin.X + r.Size.Width, Y: r.Origin.Y + r.Size.Height}
}

// IsEmpty returns true if the rectangle has no area.
func (r DeviceRect) IsEmpty() bool {
	return r.Size.Width <= 0 || r.Size.Height <= 0
}

// Intersect returns the overlapping region of two device rectangles.
// The result is empty if they do not overlap.
func (r DeviceRect) Intersect(o DeviceRect) DeviceRect {
	minX := math32.Max(r.Origin.X, o.Origin.X)
	minY := math32.Max(r.Origin.Y, o.Origin.Y)
	maxX := math32.Min(r.Max().X, o.Max().X)
	maxY := math32.Min(r.Max().Y, o.Max().Y)
	if maxX <= minX || maxY <= minY {
		return DeviceRect{}
	}
	return DeviceRect{
		Origin: DevicePoint{X: minX, Y: minY},
		Size:   DeviceSize{Width: maxX - minX, Height: maxY - minY},
	}
}

// Round returns the smallest integer-aligned rectangle containing r.
// The origin is floored and the far corner is ceiled, so the result
// never loses coverage to rounding.
func (r DeviceRect) Round() DeviceRect {
	minX := math32.Floor(r.Origin.X)
	minY := math32.Floor(r.Origin.Y)
	maxX := math32.Ceil(r.Origin.X + r.Size.Width)
	maxY := math32.Ceil(r.Origin.Y + r.Size.Height)
	return DeviceRect{
		Origin: DevicePoint{X: minX, Y: minY},
		Size:   DeviceSize{Width: maxX - minX, Height: maxY - minY},
	}
}

// ScaleFactor converts between logical and device pixels: one logical
// pixel equals Factor physical pixels. It is the only bridge between the
// two coordinate spaces.
//
// A ScaleFactor is always strictly positive and finite; NewScaleFactor
// enforces this, so the zero value is not usable.
type ScaleFactor struct {
	f float32
}

// NewScaleFactor creates a scale factor from a strictly positive,
// finite multiplier. A non-positive, NaN, or infinite factor is a
// programmer error and panics: continuing would silently corrupt every
// geometry conversion made with it.
func NewScaleFactor(f float32) ScaleFactor {
	if !(f > 0) || math32.IsInf(f, 0) {
		panic(fmt.Sprintf("gesso: scale factor must be a positive finite number, got %v", f))
	}
	return ScaleFactor{f: f}
}

// Factor returns the raw multiplier.
func (s ScaleFactor) Factor() float32 {
	return s.f
}

// ScalePoint converts a logical point to device pixels.
func (s ScaleFactor) ScalePoint(p Point) DevicePoint {
	return DevicePoint{X: p.X * s.f, Y: p.Y * s.f}
}

// ScaleSize converts a logical size to device pixels.
func (s ScaleFactor) ScaleSize(sz Size) DeviceSize {
	return DeviceSize{Width: sz.Width * s.f, Height: sz.Height * s.f}
}

// ScaleRect converts a logical rectangle to device pixels.
// Origin and size convert independently, so degenerate sizes convert
// deterministically without axis flips.
func (s ScaleFactor) ScaleRect(r Rect) DeviceRect {
	return DeviceRect{Origin: s.ScalePoint(r.Origin), Size: s.ScaleSize(r.Size)}
}

// UnscalePoint converts a device point back to logical pixels.
func (s ScaleFactor) UnscalePoint(p DevicePoint) Point {
	return Point{X: p.X / s.f, Y: p.Y / s.f}
}

// UnscaleSize converts a device size back to logical pixels.
func (s ScaleFactor) UnscaleSize(sz DeviceSize) Size {
	return Size{Width: sz.Width / s.f, Height: sz.Height / s.f}
}

// UnscaleRect converts a device rectangle back to logical pixels.
func (s ScaleFactor) UnscaleRect(r DeviceRect) Rect {
	return Rect{Origin: s.UnscalePoint(r.Origin), Size: s.UnscaleSize(r.Size)}
}

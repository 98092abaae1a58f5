package gesso

// Number is the constraint satisfied by per-edge and per-corner value types.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Edges holds one value per rectangle edge, in CSS clockwise order
// starting from the top. Typical value types are border widths, padding,
// and margins.
type Edges[T Number] struct {
	Top, Right, Bottom, Left T
}

// EdgesAll returns edges with the same value on all four sides.
func EdgesAll[T Number](v T) Edges[T] {
	return Edges[T]{Top: v, Right: v, Bottom: v, Left: v}
}

// EdgesSymmetric returns edges with one value for the top and bottom
// and another for the left and right.
func EdgesSymmetric[T Number](vertical, horizontal T) Edges[T] {
	return Edges[T]{Top: vertical, Right: horizontal, Bottom: vertical, Left: horizontal}
}

// Horizontal returns the sum of the left and right values.
func (e Edges[T]) Horizontal() T {
	return e.Left + e.Right
}

// Vertical returns the sum of the top and bottom values.
func (e Edges[T]) Vertical() T {
	return e.Top + e.Bottom
}

// IsZero returns true if all four values are zero.
func (e Edges[T]) IsZero() bool {
	var zero T
	return e.Top == zero && e.Right == zero && e.Bottom == zero && e.Left == zero
}

// Mul returns the edges with every value multiplied by s.
func (e Edges[T]) Mul(s T) Edges[T] {
	return Edges[T]{Top: e.Top * s, Right: e.Right * s, Bottom: e.Bottom * s, Left: e.Left * s}
}

// Corners holds one value per rectangle corner, in CSS clockwise order
// starting from the top-left. The typical value type is a corner radius.
type Corners[T Number] struct {
	TopLeft, TopRight, BottomRight, BottomLeft T
}

// CornersAll returns corners with the same value in all four positions.
func CornersAll[T Number](v T) Corners[T] {
	return Corners[T]{TopLeft: v, TopRight: v, BottomRight: v, BottomLeft: v}
}

// CornersTopBottom returns corners with one value for the two top
// corners and another for the two bottom corners.
func CornersTopBottom[T Number](top, bottom T) Corners[T] {
	return Corners[T]{TopLeft: top, TopRight: top, BottomRight: bottom, BottomLeft: bottom}
}

// IsZero returns true if all four values are zero.
func (c Corners[T]) IsZero() bool {
	var zero T
	return c.TopLeft == zero && c.TopRight == zero && c.BottomRight == zero && c.BottomLeft == zero
}

// Mul returns the corners with every value multiplied by s.
func (c Corners[T]) Mul(s T) Corners[T] {
	return Corners[T]{
		TopLeft:     c.TopLeft * s,
		TopRight:    c.TopRight * s,
		BottomRight: c.BottomRight * s,
		BottomLeft:  c.BottomLeft * s,
	}
}

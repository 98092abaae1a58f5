package gesso

// Axis selects one of the two screen dimensions.
type Axis int

const (
	// Horizontal is the x axis.
	Horizontal Axis = iota
	// Vertical is the y axis.
	Vertical
)

// Invert returns the other axis. Inverting twice yields the original axis.
func (a Axis) Invert() Axis {
	if a == Horizontal {
		return Vertical
	}
	return Horizontal
}

// String returns the axis name.
func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

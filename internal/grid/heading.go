// Package grid provides step-wise movement across a grid of tiles.
package grid

// Heading is a compass direction in clockwise order.
type Heading int

const (
	North Heading = iota
	East
	South
	West
)

// String returns the heading name.
func (h Heading) String() string {
	switch h {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// RotateLeft returns the heading a quarter turn counter-clockwise.
func RotateLeft(h Heading) Heading { return (h + 3) % 4 }

// RotateRight returns the heading a quarter turn clockwise.
func RotateRight(h Heading) Heading { return (h + 1) % 4 }

// Opposite returns the heading half a turn away.
func Opposite(h Heading) Heading { return (h + 2) % 4 }

// Yaw returns the heading as a rotation about the vertical axis in degrees.
func Yaw(h Heading) float32 { return float32(h) * 90 }

// Cell is a grid coordinate. Y grows toward the north.
type Cell struct {
	X, Y int
}

// Add returns the cell offset by o.
func (c Cell) Add(o Cell) Cell {
	return Cell{X: c.X + o.X, Y: c.Y + o.Y}
}

// Sub returns the cell offset by -o.
func (c Cell) Sub(o Cell) Cell {
	return Cell{X: c.X - o.X, Y: c.Y - o.Y}
}

// Offset returns the one-cell step in heading h.
func Offset(h Heading) Cell {
	switch h {
	case North:
		return Cell{Y: 1}
	case East:
		return Cell{X: 1}
	case South:
		return Cell{Y: -1}
	case West:
		return Cell{X: -1}
	default:
		return Cell{}
	}
}

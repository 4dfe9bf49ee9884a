package grid

import "github.com/go-gl/mathgl/mgl32"

// PassableFunc reports whether a cell may be entered.
type PassableFunc func(Cell) bool

// Walker moves one whole cell at a time and turns in quarter turns.
type Walker struct {
	Cell     Cell
	Heading  Heading
	passable PassableFunc
}

// NewWalker creates a walker at start facing heading. A nil passable lets
// the walker enter every cell.
func NewWalker(start Cell, heading Heading, passable PassableFunc) *Walker {
	return &Walker{
		Cell:     start,
		Heading:  heading,
		passable: passable,
	}
}

// TurnLeft rotates the walker a quarter turn counter-clockwise.
func (w *Walker) TurnLeft() {
	w.Heading = RotateLeft(w.Heading)
}

// TurnRight rotates the walker a quarter turn clockwise.
func (w *Walker) TurnRight() {
	w.Heading = RotateRight(w.Heading)
}

// Forward steps one cell ahead.
func (w *Walker) Forward() bool {
	return w.TryWalk(w.Cell.Add(Offset(w.Heading)))
}

// Back steps one cell backwards without turning.
func (w *Walker) Back() bool {
	return w.TryWalk(w.Cell.Sub(Offset(w.Heading)))
}

// StrafeLeft steps one cell to the left without turning.
func (w *Walker) StrafeLeft() bool {
	return w.TryWalk(w.Cell.Add(Offset(RotateLeft(w.Heading))))
}

// StrafeRight steps one cell to the right without turning.
func (w *Walker) StrafeRight() bool {
	return w.TryWalk(w.Cell.Add(Offset(RotateRight(w.Heading))))
}

// TryWalk moves to target if it is passable and reports whether it moved.
func (w *Walker) TryWalk(target Cell) bool {
	if w.passable != nil && !w.passable(target) {
		return false
	}
	w.Cell = target
	return true
}

// WorldPosition returns the centre of the current cell on the floor plane
// for tiles of edge tileSize.
func (w *Walker) WorldPosition(tileSize float32) mgl32.Vec3 {
	return mgl32.Vec3{float32(w.Cell.X) * tileSize, 0, float32(w.Cell.Y) * tileSize}
}

// Yaw returns the walker's facing in degrees.
func (w *Walker) Yaw() float32 {
	return Yaw(w.Heading)
}

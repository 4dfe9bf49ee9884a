// Package tile builds closed-room tile meshes from a wall mask.
package tile

import "math/bits"

// Direction identifies one of the four tile sides. The value is also the
// bit position of that side in a WallMask.
type Direction int

const (
	East Direction = iota
	West
	South
	North
)

// directionCount is the number of tile sides.
const directionCount = 4

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case East:
		return "east"
	case West:
		return "west"
	case South:
		return "south"
	case North:
		return "north"
	default:
		return "unknown"
	}
}

// Suffix returns the name fragment a variant gets when this wall is present.
func (d Direction) Suffix() string {
	switch d {
	case East:
		return "_E"
	case West:
		return "_W"
	case South:
		return "_S"
	case North:
		return "_N"
	default:
		return ""
	}
}

// WallMask is a 4-bit set of walls, one bit per Direction.
type WallMask int

const (
	WallEast  WallMask = 1 << East
	WallWest  WallMask = 1 << West
	WallSouth WallMask = 1 << South
	WallNorth WallMask = 1 << North

	WallNone WallMask = 0
	WallAll  WallMask = WallEast | WallWest | WallSouth | WallNorth
)

// VariantCount is the number of distinct wall masks.
const VariantCount = int(WallAll) + 1

// Valid reports whether the mask fits in four bits.
func (m WallMask) Valid() bool {
	return m >= WallNone && m <= WallAll
}

// Has reports whether the wall on side d is present.
func (m WallMask) Has(d Direction) bool {
	return (m>>d)&1 == 1
}

// Count returns the number of walls present.
func (m WallMask) Count() int {
	if !m.Valid() {
		return 0
	}
	return bits.OnesCount(uint(m))
}

// Directions returns the present walls in East, West, South, North order.
func (m WallMask) Directions() []Direction {
	dirs := make([]Direction, 0, directionCount)
	for d := East; d <= North; d++ {
		if m.Has(d) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// VariantName derives the canonical asset name for a mask: "Tile" followed
// by the suffix of every present wall in E, W, S, N order.
func VariantName(m WallMask) string {
	name := "Tile"
	for _, d := range m.Directions() {
		name += d.Suffix()
	}
	return name
}

package tile

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidParameter is returned for non-positive dimensions or a mask
// outside [0, 15].
var ErrInvalidParameter = errors.New("invalid parameter")

// quadUVs is the unit-square mapping shared by the floor and the ceiling.
var quadUVs = [4]mgl32.Vec2{{0, 1}, {1, 1}, {1, 0}, {0, 0}}

// wallUVs maps bottom-outer, top-outer, top-inner, bottom-inner.
var wallUVs = [4]mgl32.Vec2{{0, 0}, {0, 1}, {1, 1}, {1, 0}}

var (
	frontWinding    = [6]uint32{0, 1, 2, 0, 2, 3}
	reversedWinding = [6]uint32{0, 2, 1, 0, 3, 2}
	// South's table corners wind the other way round; this reorder turns it
	// to face the room like the other three walls.
	southWinding = [6]uint32{0, 2, 1, 2, 0, 3}
)

// corner is a quad corner in half-size units: x and z are scaled by size/2,
// top selects y = height instead of y = 0.
type corner struct {
	x, z float32
	top  bool
}

// floorCorners are visited clockwise seen from above.
var floorCorners = [4]corner{
	{x: -1, z: 1},
	{x: 1, z: 1},
	{x: 1, z: -1},
	{x: -1, z: -1},
}

type wallSpec struct {
	corners [4]corner
	winding [6]uint32
}

// walls is indexed by Direction.
var walls = [directionCount]wallSpec{
	East: {
		corners: [4]corner{{1, 1, false}, {1, 1, true}, {1, -1, true}, {1, -1, false}},
		winding: frontWinding,
	},
	West: {
		corners: [4]corner{{-1, -1, false}, {-1, -1, true}, {-1, 1, true}, {-1, 1, false}},
		winding: frontWinding,
	},
	South: {
		corners: [4]corner{{-1, -1, false}, {-1, -1, true}, {1, -1, true}, {1, -1, false}},
		winding: southWinding,
	},
	North: {
		corners: [4]corner{{-1, 1, false}, {-1, 1, true}, {1, 1, true}, {1, 1, false}},
		winding: frontWinding,
	},
}

// Validate checks the builder inputs and reports the first problem found.
func Validate(size, height float32, mask WallMask) error {
	if !positiveFinite(size) {
		return fmt.Errorf("%w: size must be positive, got %v", ErrInvalidParameter, size)
	}
	if !positiveFinite(height) {
		return fmt.Errorf("%w: height must be positive, got %v", ErrInvalidParameter, height)
	}
	if !mask.Valid() {
		return fmt.Errorf("%w: wall mask must be in [0,15], got %d", ErrInvalidParameter, int(mask))
	}
	return nil
}

func positiveFinite(v float32) bool {
	return v > 0 && !math.IsInf(float64(v), 1)
}

// Build synthesizes the mesh for a tile of edge size, the given height and
// the walls selected by mask. The tile is centred on the origin with the
// floor at y = 0.
func Build(size, height float32, mask WallMask) (*Geometry, error) {
	if err := Validate(size, height, mask); err != nil {
		return nil, err
	}

	n := 8 + 4*mask.Count()
	b := builder{
		half:   size / 2,
		height: height,
		geom: &Geometry{
			Vertices:       make([]mgl32.Vec3, 0, n),
			UVs:            make([]mgl32.Vec2, 0, n),
			FloorIndices:   make([]uint32, 0, 6),
			CeilingIndices: make([]uint32, 0, 6),
			WallIndices:    make([]uint32, 0, 6*mask.Count()),
		},
	}

	b.geom.FloorIndices = b.quad(floorCorners, quadUVs, frontWinding, b.geom.FloorIndices)

	ceiling := floorCorners
	for i := range ceiling {
		ceiling[i].top = true
	}
	// The ceiling looks down into the room, so its winding is reversed.
	b.geom.CeilingIndices = b.quad(ceiling, quadUVs, reversedWinding, b.geom.CeilingIndices)

	for _, d := range mask.Directions() {
		w := walls[d]
		b.geom.WallIndices = b.quad(w.corners, wallUVs, w.winding, b.geom.WallIndices)
	}

	return b.geom, nil
}

type builder struct {
	half   float32
	height float32
	geom   *Geometry
}

func (b *builder) point(c corner) mgl32.Vec3 {
	var y float32
	if c.top {
		y = b.height
	}
	return mgl32.Vec3{c.x * b.half, y, c.z * b.half}
}

// quad appends four vertices and two triangles to dst.
func (b *builder) quad(corners [4]corner, uvs [4]mgl32.Vec2, winding [6]uint32, dst []uint32) []uint32 {
	offset := uint32(len(b.geom.Vertices))
	for i, c := range corners {
		b.geom.Vertices = append(b.geom.Vertices, b.point(c))
		b.geom.UVs = append(b.geom.UVs, uvs[i])
	}
	for _, idx := range winding {
		dst = append(dst, offset+idx)
	}
	return dst
}

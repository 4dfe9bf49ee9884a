package tile

import "github.com/go-gl/mathgl/mgl32"

// Submesh indices in material order.
const (
	SubmeshFloor = iota
	SubmeshCeiling
	SubmeshWalls

	SubmeshCount
)

// Geometry holds the buffers of one tile mesh. Vertices and UVs are parallel;
// each index buffer is a list of triangles referencing Vertices.
type Geometry struct {
	Vertices       []mgl32.Vec3
	UVs            []mgl32.Vec2
	FloorIndices   []uint32
	CeilingIndices []uint32
	WallIndices    []uint32
}

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int {
	return len(g.Vertices)
}

// TriangleCount returns the number of triangles across all submeshes.
func (g *Geometry) TriangleCount() int {
	return (len(g.FloorIndices) + len(g.CeilingIndices) + len(g.WallIndices)) / 3
}

// Submeshes returns the index buffers in material order: floor, ceiling, walls.
func (g *Geometry) Submeshes() [SubmeshCount][]uint32 {
	return [SubmeshCount][]uint32{g.FloorIndices, g.CeilingIndices, g.WallIndices}
}

// Triangle returns the three corners of triangle i in the given index buffer.
func (g *Geometry) Triangle(indices []uint32, i int) (a, b, c mgl32.Vec3) {
	return g.Vertices[indices[3*i]], g.Vertices[indices[3*i+1]], g.Vertices[indices[3*i+2]]
}

// FaceNormal returns the unnormalized normal of triangle (a, b, c), the
// cross product of its first two edges. Its sign follows the winding order.
func FaceNormal(a, b, c mgl32.Vec3) mgl32.Vec3 {
	return b.Sub(a).Cross(c.Sub(a))
}

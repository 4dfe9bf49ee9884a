package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/LutzGrosshennig/unity3d-3dtile-prototype-generator/internal/tile"
)

// groupNames label the OBJ groups in submesh order.
var groupNames = [tile.SubmeshCount]string{"floor", "ceiling", "walls"}

// WriteOBJ encodes a variant as a Wavefront OBJ. Each submesh becomes a
// group bound to its material from mats; empty submeshes are skipped.
// Normals are left to the importer, which derives them from the winding.
func WriteOBJ(w io.Writer, v tile.Variant, mtllib string, mats Materials) error {
	bw := bufio.NewWriter(w)
	geom := v.Geometry

	fmt.Fprintf(bw, "# %s: %d vertices, %d triangles\n", v.Name, geom.VertexCount(), geom.TriangleCount())
	if mtllib != "" {
		fmt.Fprintf(bw, "mtllib %s\n", mtllib)
	}
	fmt.Fprintf(bw, "o %s\n", v.Name)

	for _, p := range geom.Vertices {
		fmt.Fprintf(bw, "v %s %s %s\n", formatFloat(p.X()), formatFloat(p.Y()), formatFloat(p.Z()))
	}
	for _, uv := range geom.UVs {
		fmt.Fprintf(bw, "vt %s %s\n", formatFloat(uv.X()), formatFloat(uv.Y()))
	}

	names := mats.ordered()
	for i, indices := range geom.Submeshes() {
		if len(indices) == 0 {
			continue
		}
		fmt.Fprintf(bw, "g %s\n", groupNames[i])
		fmt.Fprintf(bw, "usemtl %s\n", materialName(names[i]))
		for t := 0; t+2 < len(indices); t += 3 {
			a, b, c := indices[t]+1, indices[t+1]+1, indices[t+2]+1
			fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d\n", a, a, b, b, c, c)
		}
	}

	return bw.Flush()
}

// WriteMTL declares the three materials with neutral diffuse colours.
func WriteMTL(w io.Writer, mats Materials) error {
	bw := bufio.NewWriter(w)
	seen := make(map[string]bool)
	for _, name := range mats.ordered() {
		name = materialName(name)
		if seen[name] {
			continue
		}
		seen[name] = true
		fmt.Fprintf(bw, "newmtl %s\nKd 0.8 0.8 0.8\nillum 1\n\n", name)
	}
	return bw.Flush()
}

// materialName makes an identifier safe for OBJ statements.
func materialName(name string) string {
	return strings.Join(strings.Fields(name), "_")
}

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}

package export

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LutzGrosshennig/unity3d-3dtile-prototype-generator/internal/metrics"
	"github.com/LutzGrosshennig/unity3d-3dtile-prototype-generator/internal/tile"
)

var testMaterials = Materials{Floor: "Cobble", Ceiling: "Beams", Wall: "Red Brick"}

func mustEnumerate(t *testing.T, size, height float32) []tile.Variant {
	t.Helper()
	variants, err := tile.Enumerate(context.Background(), size, height)
	require.NoError(t, err)
	return variants
}

func TestSetDir(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "Tiles_3x3x3"), SetDir("out", 3, 3))
	assert.Equal(t, filepath.Join("out", "Tiles_2x2x2.5"), SetDir("out", 2, 2.5))
}

func TestNewMissingMaterial(t *testing.T) {
	root := t.TempDir()
	tests := []Materials{
		{Ceiling: "c", Wall: "w"},
		{Floor: "f", Wall: "w"},
		{Floor: "f", Ceiling: "c"},
		{Floor: "   ", Ceiling: "c", Wall: "w"},
		{Floor: "f", Ceiling: "\t\n", Wall: "w"},
	}

	for _, mats := range tests {
		w, err := New(root, mats)
		assert.ErrorIs(t, err, ErrMissingMaterial)
		assert.Nil(t, w)
	}

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries, "nothing should be written")
}

func TestWriteTileSet(t *testing.T) {
	root := t.TempDir()
	rec := metrics.New()
	w, err := New(root, testMaterials, WithMetrics(rec))
	require.NoError(t, err)

	manifest, err := w.Write(context.Background(), 3, 3, mustEnumerate(t, 3, 3))
	require.NoError(t, err)

	dir := filepath.Join(root, "Tiles_3x3x3")
	assert.Equal(t, dir, manifest.Dir)
	assert.Len(t, manifest.Assets, 1+16*2)

	kinds := make(map[string]int)
	for _, a := range manifest.Assets {
		kinds[a.Kind]++
		assert.FileExists(t, a.Path)
	}
	assert.Equal(t, map[string]int{KindMaterial: 1, KindMesh: 16, KindPrefab: 16}, kinds)

	assert.FileExists(t, filepath.Join(dir, "Meshes", "Tile_E_W_S_N_Mesh.obj"))
	assert.FileExists(t, filepath.Join(dir, "Tile.prefab.json"))

	assert.Equal(t, float64(16), counterSum(t, rec, "tilegen_variants_generated_total"))
	assert.Equal(t, float64(33), counterSum(t, rec, "tilegen_assets_written_total"))
}

func counterSum(t *testing.T, rec *metrics.Recorder, name string) float64 {
	t.Helper()
	families, err := rec.Gatherer().Gather()
	require.NoError(t, err)

	total := 0.0
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
		for _, m := range fam.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func TestWritePrefab(t *testing.T) {
	root := t.TempDir()
	w, err := New(root, testMaterials)
	require.NoError(t, err)

	_, err = w.Write(context.Background(), 2, 2.5, mustEnumerate(t, 2, 2.5))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "Tiles_2x2x2.5", "Tile_E_S.prefab.json"))
	require.NoError(t, err)

	var prefab Prefab
	require.NoError(t, json.Unmarshal(data, &prefab))
	assert.Equal(t, "Tile_E_S", prefab.Name)
	assert.Equal(t, 5, prefab.Mask)
	assert.Equal(t, "Meshes/Tile_E_S_Mesh.obj", prefab.Mesh)
	assert.Equal(t, []string{"Cobble", "Beams", "Red Brick"}, prefab.Materials)
	assert.Equal(t, 16, prefab.Vertices)
	assert.Equal(t, 8, prefab.Triangles)
	assert.Equal(t, AssetGUID(filepath.Join("Tiles_2x2x2.5", "Tile_E_S")), prefab.GUID)
}

func TestWriteIsRepeatable(t *testing.T) {
	root := t.TempDir()
	w, err := New(root, testMaterials)
	require.NoError(t, err)

	variants := mustEnumerate(t, 3, 3)
	_, err = w.Write(context.Background(), 3, 3, variants)
	require.NoError(t, err)
	first, err := os.ReadFile(filepath.Join(root, "Tiles_3x3x3", "Tile_N.prefab.json"))
	require.NoError(t, err)

	_, err = w.Write(context.Background(), 3, 3, variants)
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(root, "Tiles_3x3x3", "Tile_N.prefab.json"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestWriteCancelled(t *testing.T) {
	w, err := New(t.TempDir(), testMaterials)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = w.Write(ctx, 3, 3, mustEnumerate(t, 3, 3))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteDimensionMismatch(t *testing.T) {
	root := t.TempDir()
	w, err := New(root, testMaterials)
	require.NoError(t, err)

	_, err = w.Write(context.Background(), 5, 5, mustEnumerate(t, 3, 3))
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	assert.NoDirExists(t, SetDir(root, 5, 5))

	_, err = w.Write(context.Background(), 3, 2, mustEnumerate(t, 3, 3))
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestWriteOBJ(t *testing.T) {
	geom, err := tile.Build(2, 3, tile.WallSouth)
	require.NoError(t, err)

	var buf bytes.Buffer
	v := tile.Variant{Name: "Tile_S", Mask: tile.WallSouth, Geometry: geom}
	require.NoError(t, WriteOBJ(&buf, v, "tiles.mtl", testMaterials))

	out := buf.String()
	assert.Contains(t, out, "mtllib tiles.mtl\n")
	assert.Contains(t, out, "o Tile_S\n")
	assert.Contains(t, out, "v -1 0 1\n")
	assert.Contains(t, out, "v 1 3 -1\n")
	assert.Contains(t, out, "vt 0 1\n")
	assert.Contains(t, out, "g floor\nusemtl Cobble\nf 1/1 2/2 3/3\nf 1/1 3/3 4/4\n")
	assert.Contains(t, out, "g ceiling\nusemtl Beams\nf 5/5 7/7 6/6\nf 5/5 8/8 7/7\n")
	assert.Contains(t, out, "g walls\nusemtl Red_Brick\nf 9/9 11/11 10/10\nf 11/11 9/9 12/12\n")

	assert.Equal(t, 12, strings.Count(out, "\nv "))
	assert.Equal(t, 12, strings.Count(out, "\nvt "))
	assert.Equal(t, 6, strings.Count(out, "\nf "))
}

func TestWriteOBJSkipsEmptyWallGroup(t *testing.T) {
	geom, err := tile.Build(3, 3, tile.WallNone)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteOBJ(&buf, tile.Variant{Name: "Tile", Geometry: geom}, "", testMaterials))
	assert.NotContains(t, buf.String(), "g walls")
	assert.NotContains(t, buf.String(), "mtllib")
}

func TestWriteMTL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMTL(&buf, Materials{Floor: "Stone", Ceiling: "Stone", Wall: "Moss Wall"}))

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "newmtl Stone\n"))
	assert.Contains(t, out, "newmtl Moss_Wall\n")
}

func TestAssetGUIDStable(t *testing.T) {
	a := AssetGUID("Tiles_3x3x3/Tile_E")
	assert.Equal(t, a, AssetGUID("Tiles_3x3x3/Tile_E"))
	assert.NotEqual(t, a, AssetGUID("Tiles_3x3x3/Tile_W"))
	assert.Len(t, a, 36)
}

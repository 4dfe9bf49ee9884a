// Package export writes tile variants out as mesh and prefab assets.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/LutzGrosshennig/unity3d-3dtile-prototype-generator/internal/logging"
	"github.com/LutzGrosshennig/unity3d-3dtile-prototype-generator/internal/metrics"
	"github.com/LutzGrosshennig/unity3d-3dtile-prototype-generator/internal/telemetry"
	"github.com/LutzGrosshennig/unity3d-3dtile-prototype-generator/internal/tile"
)

// ErrMissingMaterial is returned when any of the three materials is unset.
var ErrMissingMaterial = errors.New("all materials must be assigned")

// ErrDimensionMismatch is returned when a variant was built at other
// dimensions than the tile set it is written into.
var ErrDimensionMismatch = errors.New("variant dimensions do not match tile set")

const (
	meshDir     = "Meshes"
	mtlFileName = "tiles.mtl"

	KindMesh     = "mesh"
	KindMaterial = "material"
	KindPrefab   = "prefab"
)

// guidNamespace seeds the name-based asset GUIDs.
var guidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/LutzGrosshennig/unity3d-3dtile-prototype-generator"))

// Materials names the material bound to each submesh.
type Materials struct {
	Floor   string
	Ceiling string
	Wall    string
}

// Validate reports ErrMissingMaterial if a material is empty or blank.
func (m Materials) Validate() error {
	for _, name := range m.ordered() {
		if strings.TrimSpace(name) == "" {
			return ErrMissingMaterial
		}
	}
	return nil
}

// ordered returns the names in submesh order: floor, ceiling, walls.
func (m Materials) ordered() [tile.SubmeshCount]string {
	return [tile.SubmeshCount]string{m.Floor, m.Ceiling, m.Wall}
}

// Prefab is the JSON manifest that binds a mesh to its materials.
type Prefab struct {
	Name      string   `json:"name"`
	GUID      string   `json:"guid"`
	Mask      int      `json:"mask"`
	Size      float32  `json:"size"`
	Height    float32  `json:"height"`
	Mesh      string   `json:"mesh"`      // Path relative to the tile set directory
	Materials []string `json:"materials"` // Index i applies to submesh i
	Vertices  int      `json:"vertices"`
	Triangles int      `json:"triangles"`
}

// Asset is one file written by an export pass.
type Asset struct {
	Kind string
	Path string
}

// Manifest lists what an export pass produced.
type Manifest struct {
	Dir    string
	Assets []Asset
}

// Writer emits tile sets below a root directory.
type Writer struct {
	root      string
	materials Materials
	log       *logrus.Entry
	metrics   *metrics.Recorder
}

// Option configures a Writer.
type Option func(*Writer)

// WithLogger sets the logger; the default discards output.
func WithLogger(l logrus.FieldLogger) Option {
	return func(w *Writer) { w.log = logging.Component(l, "export") }
}

// WithMetrics records written assets into r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(w *Writer) { w.metrics = r }
}

// New creates a writer. It fails with ErrMissingMaterial before touching
// the filesystem if a material is unset.
func New(root string, materials Materials, opts ...Option) (*Writer, error) {
	if err := materials.Validate(); err != nil {
		return nil, err
	}
	w := &Writer{
		root:      root,
		materials: materials,
		log:       logging.Component(logging.Discard(), "export"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// SetDir returns the directory a tile set of the given dimensions goes to.
func SetDir(root string, size, height float32) string {
	s := formatFloat(size)
	return filepath.Join(root, fmt.Sprintf("Tiles_%sx%sx%s", s, s, formatFloat(height)))
}

// Write emits every variant as an OBJ mesh plus a prefab manifest, and one
// shared material library. Existing files are overwritten.
func (w *Writer) Write(ctx context.Context, size, height float32, variants []tile.Variant) (Manifest, error) {
	tracer := telemetry.Tracer("export")
	ctx, span := tracer.Start(ctx, "export.write")
	defer span.End()

	startTime := time.Now()
	dir := SetDir(w.root, size, height)
	manifest := Manifest{Dir: dir}

	span.SetAttributes(
		attribute.String("export.dir", dir),
		attribute.Int("export.variant_count", len(variants)),
	)

	fail := func(err error) (Manifest, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return manifest, err
	}

	for _, v := range variants {
		if v.Size != size || v.Height != height {
			return fail(fmt.Errorf("%w: %s is %sx%s, set is %sx%s", ErrDimensionMismatch,
				v.Name, formatFloat(v.Size), formatFloat(v.Height), formatFloat(size), formatFloat(height)))
		}
	}

	if err := os.MkdirAll(filepath.Join(dir, meshDir), 0o755); err != nil {
		return fail(fmt.Errorf("create output directory: %w", err))
	}

	mtlRel := filepath.Join(meshDir, mtlFileName)
	if err := w.writeFile(dir, mtlRel, func(f *os.File) error { return WriteMTL(f, w.materials) }); err != nil {
		return fail(err)
	}
	manifest.Assets = append(manifest.Assets, w.record(KindMaterial, filepath.Join(dir, mtlRel)))

	for _, v := range variants {
		if err := ctx.Err(); err != nil {
			return fail(err)
		}

		meshRel := filepath.Join(meshDir, v.Name+"_Mesh.obj")
		err := w.writeFile(dir, meshRel, func(f *os.File) error {
			return WriteOBJ(f, v, mtlFileName, w.materials)
		})
		if err != nil {
			return fail(err)
		}
		manifest.Assets = append(manifest.Assets, w.record(KindMesh, filepath.Join(dir, meshRel)))

		prefabRel := v.Name + ".prefab.json"
		prefab := w.prefab(v, size, height, meshRel)
		err = w.writeFile(dir, prefabRel, func(f *os.File) error {
			enc := json.NewEncoder(f)
			enc.SetIndent("", "  ")
			return enc.Encode(prefab)
		})
		if err != nil {
			return fail(err)
		}
		manifest.Assets = append(manifest.Assets, w.record(KindPrefab, filepath.Join(dir, prefabRel)))

		if w.metrics != nil {
			w.metrics.ObserveVariant(v.Mask.Count(), v.Geometry.VertexCount(), v.Geometry.TriangleCount())
		}
	}

	elapsed := time.Since(startTime)
	if w.metrics != nil {
		w.metrics.ObserveExport(elapsed.Seconds())
	}
	span.SetAttributes(
		attribute.Int("export.asset_count", len(manifest.Assets)),
		attribute.Int64("export.duration_ms", elapsed.Milliseconds()),
	)
	w.log.WithFields(logrus.Fields{
		"dir":      dir,
		"variants": len(variants),
		"assets":   len(manifest.Assets),
	}).Info("tile set exported")

	return manifest, nil
}

// AssetGUID derives a stable identifier from an asset's relative path.
func AssetGUID(relPath string) string {
	return uuid.NewSHA1(guidNamespace, []byte(filepath.ToSlash(relPath))).String()
}

func (w *Writer) prefab(v tile.Variant, size, height float32, meshRel string) Prefab {
	rel := filepath.Join(filepath.Base(SetDir("", size, height)), v.Name)
	mats := w.materials.ordered()
	return Prefab{
		Name:      v.Name,
		GUID:      AssetGUID(rel),
		Mask:      int(v.Mask),
		Size:      size,
		Height:    height,
		Mesh:      filepath.ToSlash(meshRel),
		Materials: mats[:],
		Vertices:  v.Geometry.VertexCount(),
		Triangles: v.Geometry.TriangleCount(),
	}
}

func (w *Writer) writeFile(dir, rel string, encode func(*os.File) error) error {
	path := filepath.Join(dir, rel)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := encode(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func (w *Writer) record(kind, path string) Asset {
	w.log.WithField("kind", kind).Debugf("wrote %s", path)
	if w.metrics != nil {
		w.metrics.ObserveAsset(kind)
	}
	return Asset{Kind: kind, Path: path}
}

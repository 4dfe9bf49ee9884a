package tile

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/LutzGrosshennig/unity3d-3dtile-prototype-generator/internal/telemetry"
)

// Variant is one wall combination together with its mesh and the
// dimensions it was built at.
type Variant struct {
	Name     string
	Mask     WallMask
	Size     float32
	Height   float32
	Geometry *Geometry
}

// Enumerate builds all 16 tile variants for the given dimensions, ordered by
// mask. The geometries are built concurrently; each build owns its buffers.
func Enumerate(ctx context.Context, size, height float32) ([]Variant, error) {
	tracer := telemetry.Tracer("tile")
	ctx, span := tracer.Start(ctx, "tile.enumerate")
	defer span.End()

	span.SetAttributes(
		attribute.Float64("tile.size", float64(size)),
		attribute.Float64("tile.height", float64(height)),
	)

	if err := Validate(size, height, WallNone); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	startTime := time.Now()
	variants := make([]Variant, VariantCount)

	var g errgroup.Group
	for i := range variants {
		mask := WallMask(i)
		g.Go(func() error {
			geom, err := Build(size, height, mask)
			if err != nil {
				return err
			}
			variants[mask] = Variant{
				Name:     VariantName(mask),
				Mask:     mask,
				Size:     size,
				Height:   height,
				Geometry: geom,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	vertices := 0
	for _, v := range variants {
		vertices += v.Geometry.VertexCount()
	}
	span.SetAttributes(
		attribute.Int("tile.variant_count", len(variants)),
		attribute.Int("tile.vertex_total", vertices),
		attribute.Int64("tile.build_us", time.Since(startTime).Microseconds()),
	)

	return variants, nil
}

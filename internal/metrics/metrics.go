// Package metrics records generation counters in a private Prometheus
// registry that can be dumped for the node_exporter textfile collector.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the generator's collectors.
type Recorder struct {
	registry *prometheus.Registry

	variants  *prometheus.CounterVec
	vertices  prometheus.Counter
	triangles prometheus.Counter
	assets    *prometheus.CounterVec
	duration  prometheus.Histogram
}

// New creates a recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		variants: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tilegen",
			Name:      "variants_generated_total",
			Help:      "Tile variants built, by wall count.",
		}, []string{"walls"}),
		vertices: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tilegen",
			Name:      "vertices_generated_total",
			Help:      "Vertices emitted across all variants.",
		}),
		triangles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tilegen",
			Name:      "triangles_generated_total",
			Help:      "Triangles emitted across all variants.",
		}),
		assets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tilegen",
			Name:      "assets_written_total",
			Help:      "Asset files written, by kind.",
		}, []string{"kind"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tilegen",
			Name:      "export_duration_seconds",
			Help:      "Wall time of one export pass.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
	}
	r.registry.MustRegister(r.variants, r.vertices, r.triangles, r.assets, r.duration)
	return r
}

// ObserveVariant counts one built variant.
func (r *Recorder) ObserveVariant(walls, vertices, triangles int) {
	r.variants.WithLabelValues(fmt.Sprint(walls)).Inc()
	r.vertices.Add(float64(vertices))
	r.triangles.Add(float64(triangles))
}

// ObserveAsset counts one written file of the given kind.
func (r *Recorder) ObserveAsset(kind string) {
	r.assets.WithLabelValues(kind).Inc()
}

// ObserveExport records the duration of an export pass in seconds.
func (r *Recorder) ObserveExport(seconds float64) {
	r.duration.Observe(seconds)
}

// Gatherer exposes the registry, mainly for tests.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes the current values to path in text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

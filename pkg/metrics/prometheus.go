package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Stage duration buckets in milliseconds. Loading a workbook and rasterizing
// a chart both land in the tens to hundreds of milliseconds.
var defaultBuckets = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000} //nolint:gochecknoglobals // read-only defaults

// Manager owns the Prometheus collectors of one run.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	stageDuration  *prometheus.HistogramVec
	stageFailures  *prometheus.CounterVec
	chartsRendered *prometheus.CounterVec
	datasetRows    prometheus.Gauge
	matrixNaNCells prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager. Without WithPrometheusRegistry it
// registers on a fresh private registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "smartwatch",
		subsystem:        "charts",
		histogramBuckets: defaultBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.stageDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "stage_duration_milliseconds",
			Help:      "Duration of each procedure stage in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"procedure", "stage"},
	)

	m.stageFailures = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "stage_failures_total",
			Help:      "Total number of failed procedure stages",
		},
		[]string{"procedure", "stage"},
	)

	m.chartsRendered = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "charts_rendered_total",
			Help:      "Total number of chart images written",
		},
		[]string{"chart"},
	)

	m.datasetRows = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_rows",
		Help:      "Number of observations in the loaded survey sheet",
	})

	m.matrixNaNCells = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "correlation_nan_cells",
		Help:      "Number of undefined cells in the last correlation matrix",
	})
}

// ObserveStage records how long a stage took.
func (m *Manager) ObserveStage(procedure, stage string, durationMs float64) {
	m.stageDuration.WithLabelValues(procedure, stage).Observe(durationMs)
}

// RecordStageFailure increments the failure counter of a stage.
func (m *Manager) RecordStageFailure(procedure, stage string) {
	m.stageFailures.WithLabelValues(procedure, stage).Inc()
}

// RecordChartRendered increments the rendered counter of a chart kind.
func (m *Manager) RecordChartRendered(chart string) {
	m.chartsRendered.WithLabelValues(chart).Inc()
}

// UpdateDatasetRows sets the loaded row count.
func (m *Manager) UpdateDatasetRows(rows int) {
	m.datasetRows.Set(float64(rows))
}

// UpdateMatrixNaNCells sets the count of NaN cells in the last matrix.
func (m *Manager) UpdateMatrixNaNCells(cells int) {
	m.matrixNaNCells.Set(float64(cells))
}

// Registry returns the registry the manager's collectors live on.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes every gathered metric to path in the text exposition
// format, suitable for a node_exporter textfile collector.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrExportFailed, path, err)
	}
	return nil
}

// Default returns the process-wide manager.
func Default() *Manager {
	return globalManager
}

// GetRegistry returns the custom Prometheus registry used by the default manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

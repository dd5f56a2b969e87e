// Package metrics provides Prometheus metrics for swingsheet runs.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values for API operations.
const (
	OperationMetadata = "metadata"
	OperationReport   = "report"
)

// Manager manages all Prometheus metrics for swingsheet.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         *prometheus.Registry

	// Vendor API
	apiRequests        *prometheus.CounterVec
	apiRequestDuration *prometheus.HistogramVec

	// Discovery and enrichment
	candidatesDiscovered  prometheus.Gauge
	enrichmentAbsent      prometheus.Counter
	snapshotCleanupErrors prometheus.Counter

	// Workbook output
	workbooksWritten  prometheus.Counter
	sheetsWritten     prometheus.Counter
	rowsWritten       prometheus.Counter
	bestSwingsFlagged prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager. Without WithPrometheusRegistry
// it registers on a fresh private registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "swingsheet",
		subsystem:        "",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		customLabels:     make(map[string]string),
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
	labels := prometheus.Labels(m.customLabels)

	m.apiRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "api_requests_total",
		Help:        "Vendor API requests by operation and outcome",
		ConstLabels: labels,
	}, []string{"operation", "status"})

	m.apiRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "api_request_duration_seconds",
		Help:        "Vendor API request latency in seconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"operation"})

	m.candidatesDiscovered = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "candidates_discovered",
		Help:        "Report identifiers found by the last history scan",
		ConstLabels: labels,
	})

	m.enrichmentAbsent = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "enrichment_absent_total",
		Help:        "Metadata lookups that failed and fell back to processing time",
		ConstLabels: labels,
	})

	m.snapshotCleanupErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "snapshot_cleanup_errors_total",
		Help:        "Private store copies that could not be removed",
		ConstLabels: labels,
	})

	m.workbooksWritten = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "workbooks_written_total",
		Help:        "Workbooks saved to disk",
		ConstLabels: labels,
	})

	m.sheetsWritten = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "sheets_written_total",
		Help:        "Data sheets laid out, including the aggregate sheet",
		ConstLabels: labels,
	})

	m.rowsWritten = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rows_written_total",
		Help:        "Measurement rows written across all sheets",
		ConstLabels: labels,
	})

	m.bestSwingsFlagged = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "best_swings_flagged_total",
		Help:        "Sheets where a best swing was outlined",
		ConstLabels: labels,
	})
}

// Registry returns the registry the manager's collectors live on.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// RecordAPIRequest counts one vendor call and observes its latency.
func (m *Manager) RecordAPIRequest(operation, status string, d time.Duration) {
	if !m.enabled {
		return
	}
	m.apiRequests.WithLabelValues(operation, status).Inc()
	m.apiRequestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// SetCandidatesDiscovered records the size of the last discovery.
func (m *Manager) SetCandidatesDiscovered(n int) {
	if m.enabled {
		m.candidatesDiscovered.Set(float64(n))
	}
}

// RecordEnrichmentAbsent counts one failed metadata slot.
func (m *Manager) RecordEnrichmentAbsent() {
	if m.enabled {
		m.enrichmentAbsent.Inc()
	}
}

// RecordSnapshotCleanupError counts one leaked store copy.
func (m *Manager) RecordSnapshotCleanupError() {
	if m.enabled {
		m.snapshotCleanupErrors.Inc()
	}
}

// RecordWorkbookWritten counts one saved workbook.
func (m *Manager) RecordWorkbookWritten() {
	if m.enabled {
		m.workbooksWritten.Inc()
	}
}

// RecordSheetWritten counts one data sheet and its rows.
func (m *Manager) RecordSheetWritten(rows int) {
	if !m.enabled {
		return
	}
	m.sheetsWritten.Inc()
	m.rowsWritten.Add(float64(rows))
}

// RecordBestSwingFlagged counts one outlined best swing.
func (m *Manager) RecordBestSwingFlagged() {
	if m.enabled {
		m.bestSwingsFlagged.Inc()
	}
}

// WriteTextfile writes every metric in the Prometheus text format, in the
// layout node_exporter's textfile collector expects.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}

// Global helpers, backed by the process-wide manager.

// Default returns the process-wide manager.
func Default() *Manager { return globalManager }

// RecordAPIRequest records a vendor call on the global manager.
func RecordAPIRequest(operation, status string, d time.Duration) {
	globalManager.RecordAPIRequest(operation, status, d)
}

// SetCandidatesDiscovered records the discovery size on the global manager.
func SetCandidatesDiscovered(n int) { globalManager.SetCandidatesDiscovered(n) }

// RecordEnrichmentAbsent records a failed metadata slot on the global manager.
func RecordEnrichmentAbsent() { globalManager.RecordEnrichmentAbsent() }

// RecordSnapshotCleanupError records a leaked store copy on the global manager.
func RecordSnapshotCleanupError() { globalManager.RecordSnapshotCleanupError() }

// RecordWorkbookWritten records a saved workbook on the global manager.
func RecordWorkbookWritten() { globalManager.RecordWorkbookWritten() }

// RecordSheetWritten records a data sheet on the global manager.
func RecordSheetWritten(rows int) { globalManager.RecordSheetWritten(rows) }

// RecordBestSwingFlagged records an outlined best swing on the global manager.
func RecordBestSwingFlagged() { globalManager.RecordBestSwingFlagged() }

// WriteTextfile writes the global registry to path.
func WriteTextfile(path string) error { return globalManager.WriteTextfile(path) }

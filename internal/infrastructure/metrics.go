package infrastructure

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"stockcli/pkg/contracts/domain"
)

const metricsNamespace = "stockcli"

// RunMetrics holds the gauges describing one batch run. Each run gets a
// private registry that is flushed to a node_exporter textfile.
type RunMetrics struct {
	registry *prometheus.Registry

	RowsRead           prometheus.Gauge
	RowsEmpty          prometheus.Gauge
	RowsExcluded       prometheus.Gauge
	RecordsAggregated  prometheus.Gauge
	Groups             prometheus.Gauge
	Locations          prometheus.Gauge
	LastRunDuration    prometheus.Gauge
	LastSuccessSeconds prometheus.Gauge
	RunSkipped         prometheus.Gauge
}

// NewRunMetrics creates and registers the run gauges
func NewRunMetrics() *RunMetrics {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      name,
			Help:      help,
		})
	}

	m := &RunMetrics{
		registry:           prometheus.NewRegistry(),
		RowsRead:           gauge("rows_read", "Rows iterated from the source in the last run."),
		RowsEmpty:          gauge("rows_empty", "Structurally empty rows in the last run."),
		RowsExcluded:       gauge("rows_excluded", "Rows dropped by the location filter in the last run."),
		RecordsAggregated:  gauge("records_aggregated", "Records folded into groups in the last run."),
		Groups:             gauge("groups", "Distinct (location, size class, type) groups."),
		Locations:          gauge("locations", "Distinct locations in the summary."),
		LastRunDuration:    gauge("last_run_duration_seconds", "Wall time of the last run."),
		LastSuccessSeconds: gauge("last_success_timestamp_seconds", "Unix time of the last successful run."),
		RunSkipped:         gauge("run_skipped", "1 when the last run was skipped because the input was unchanged."),
	}

	m.registry.MustRegister(
		m.RowsRead, m.RowsEmpty, m.RowsExcluded, m.RecordsAggregated,
		m.Groups, m.Locations, m.LastRunDuration, m.LastSuccessSeconds, m.RunSkipped,
	)
	return m
}

// ObserveSummary copies the run statistics of s into the gauges
func (m *RunMetrics) ObserveSummary(s *domain.Summary) {
	if m == nil || s == nil {
		return
	}
	m.RowsRead.Set(float64(s.Stats.RowsRead))
	m.RowsEmpty.Set(float64(s.Stats.EmptyRows))
	m.RowsExcluded.Set(float64(s.Stats.ExcludedRows))
	m.RecordsAggregated.Set(float64(s.Stats.Records))
	m.Groups.Set(float64(len(s.Groups)))
	m.Locations.Set(float64(len(s.Locations)))
}

// Finish records the run outcome
func (m *RunMetrics) Finish(started time.Time, skipped bool, succeeded bool) {
	if m == nil {
		return
	}
	m.LastRunDuration.Set(time.Since(started).Seconds())
	if skipped {
		m.RunSkipped.Set(1)
	} else {
		m.RunSkipped.Set(0)
	}
	if succeeded {
		m.LastSuccessSeconds.SetToCurrentTime()
	}
}

// Gather exposes the registry for tests and other exporters
func (m *RunMetrics) Gather() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the gauges to path in the text exposition format
func (m *RunMetrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}

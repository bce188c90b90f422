// Package metrics records the outcome of a run in Prometheus format so cron-driven
// imports can be scraped through the node exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/ylchen07/vault-import/pkg/models"
)

// Recorder holds the metrics of a single run on a private registry
type Recorder struct {
	registry *prometheus.Registry

	keysDiscovered prometheus.Gauge
	keysImported   prometheus.Gauge
	runStatus      *prometheus.GaugeVec
	runDuration    prometheus.Gauge
	lastRun        prometheus.Gauge
}

// NewRecorder creates a recorder with all metrics registered
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		keysDiscovered: factory.NewGauge(prometheus.GaugeOpts{
			Name: "vault_import_keys_discovered",
			Help: "Number of sensitive keys found in the env file by the last run",
		}),
		keysImported: factory.NewGauge(prometheus.GaugeOpts{
			Name: "vault_import_keys_imported",
			Help: "Number of keys written to Vault by the last run",
		}),
		runStatus: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "vault_import_run_status",
			Help: "Terminal status of the last run (1 for the status that occurred)",
		}, []string{"status", "reason"}),
		runDuration: factory.NewGauge(prometheus.GaugeOpts{
			Name: "vault_import_run_duration_seconds",
			Help: "Wall-clock duration of the last run in seconds",
		}),
		lastRun: factory.NewGauge(prometheus.GaugeOpts{
			Name: "vault_import_last_run_timestamp_seconds",
			Help: "Unix time at which the last run finished",
		}),
	}
}

// Observe records a finished run. reason is empty unless the run aborted.
func (r *Recorder) Observe(report *models.RunReport, reason string, duration time.Duration, finished time.Time) {
	r.keysDiscovered.Set(float64(report.Discovered))
	r.keysImported.Set(float64(report.Imported))
	r.runStatus.WithLabelValues(string(report.Status), reason).Set(1)
	r.runDuration.Set(duration.Seconds())
	r.lastRun.Set(float64(finished.Unix()))
}

// WriteTextfile atomically writes all metrics to path
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

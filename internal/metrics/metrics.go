package metrics

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Config file outcomes reported by the re-export plugin.
const (
	StatusEmitted = "emitted"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// Schema generation outcomes.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

var (
	registry = prometheus.NewRegistry()
	initOnce sync.Once

	configFilesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cfgbundle_config_files_total",
			Help: "Total number of processed config files by status.",
		},
		[]string{"status"},
	)

	schemasTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cfgbundle_schemas_total",
			Help: "Total number of JSON schema generations by status.",
		},
		[]string{"status"},
	)
)

// Init registers all metrics on the package registry. It is safe to call more than once.
func Init() {
	initOnce.Do(func() {
		registry.MustRegister(configFilesTotal, schemasTotal)
	})
}

// IncConfigFile increments the config files counter for the given status
// ("emitted", "skipped", "failed").
func IncConfigFile(status string) {
	configFilesTotal.WithLabelValues(status).Inc()
}

// IncSchema increments the schema generation counter for the given status
// ("success", "error").
func IncSchema(status string) {
	schemasTotal.WithLabelValues(status).Inc()
}

// WriteTextfile writes all registered metrics to path in the text exposition
// format understood by the node exporter textfile collector.
func WriteTextfile(path string) error {
	Init()
	if err := prometheus.WriteToTextfile(path, registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

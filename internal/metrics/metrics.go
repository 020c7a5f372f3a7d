// Package metrics records the outcome of a tune run as Prometheus gauges.
//
// A run is a one-shot process, so nothing is served over HTTP. The gauges
// live in a private registry and are written to a node_exporter textfile
// collector file when a path is configured.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/smazurov/dvbtune/internal/tuner"
	"github.com/smazurov/dvbtune/pkg/linuxav/dvb"
)

const namespace = "dvbtune"

var phases = []string{tuner.PhaseArgs, tuner.PhaseFrontend, tuner.PhaseDemux}

// Recorder implements tuner.Observer.
type Recorder struct {
	registry *prometheus.Registry
	now      func() time.Time

	runSuccess prometheus.Gauge
	frequency  prometheus.Gauge
	filterPID  *prometheus.GaugeVec
	failures   *prometheus.GaugeVec
	lastRun    prometheus.Gauge
}

var _ tuner.Observer = (*Recorder)(nil)

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	r := &Recorder{
		registry: reg,
		now:      time.Now,
		runSuccess: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_success",
			Help:      "1 if the last tune run applied every setting, 0 otherwise",
		}),
		frequency: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "frontend",
			Name:      "frequency_khz",
			Help:      "Frequency submitted to the frontend in kHz",
		}),
		filterPID: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "filter_pid",
			Help:      "PID routed to the decoder per stream",
		}, []string{"stream"}),
		failures: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_failures",
			Help:      "1 for the phase the last tune run failed in",
		}, []string{"phase"}),
		lastRun: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last tune run finished",
		}),
	}

	for _, phase := range phases {
		r.failures.WithLabelValues(phase).Set(0)
	}
	return r
}

// Registry exposes the recorder's registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) FrontendTuned(frequencyKHz uint32, _ dvb.FrontendParameters) {
	r.frequency.Set(float64(frequencyKHz))
}

func (r *Recorder) FilterApplied(params dvb.PESFilterParams) {
	r.filterPID.WithLabelValues(params.Type.String()).Set(float64(params.PID))
}

// RunFinished sets the success gauge and, on failure, the failing phase.
// Errors that are not *tuner.Error count against the args phase.
func (r *Recorder) RunFinished(err error) {
	r.lastRun.Set(float64(r.now().Unix()))

	if err == nil {
		r.runSuccess.Set(1)
		return
	}
	r.runSuccess.Set(0)

	phase := tuner.PhaseArgs
	var tErr *tuner.Error
	if errors.As(err, &tErr) && tErr.Phase != "" {
		phase = tErr.Phase
	}
	r.failures.WithLabelValues(phase).Set(1)
}

// WriteTextfile writes the registry in text exposition format. The file is
// replaced atomically so a concurrent scrape never sees a partial write.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

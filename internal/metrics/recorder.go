package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/san-kum/sortviz/internal/sorting"
)

// Recorder mirrors session activity into prometheus collectors.
type Recorder struct {
	comparisons *prometheus.CounterVec
	swaps       *prometheus.CounterVec
	steps       *prometheus.CounterVec
	runs        *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewRecorder registers the sortviz collectors on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		comparisons: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sortviz_comparisons_total",
			Help: "Discrete comparisons shown, edge-triggered.",
		}, []string{"algorithm"}),
		swaps: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sortviz_swaps_total",
			Help: "Discrete exchanges or writes shown, edge-triggered.",
		}, []string{"algorithm"}),
		steps: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sortviz_steps_total",
			Help: "Steps applied to the session.",
		}, []string{"algorithm"}),
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sortviz_runs_total",
			Help: "Finished runs by outcome.",
		}, []string{"algorithm", "outcome"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sortviz_run_duration_seconds",
			Help:    "Wall-clock duration of runs.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}, []string{"algorithm"}),
	}
}

func (r *Recorder) ObserveStep(kind sorting.Kind, newComparison, newSwap bool) {
	alg := string(kind)
	r.steps.WithLabelValues(alg).Inc()
	if newComparison {
		r.comparisons.WithLabelValues(alg).Inc()
	}
	if newSwap {
		r.swaps.WithLabelValues(alg).Inc()
	}
}

func (r *Recorder) ObserveRun(kind sorting.Kind, outcome string, elapsed time.Duration) {
	r.runs.WithLabelValues(string(kind), outcome).Inc()
	r.duration.WithLabelValues(string(kind)).Observe(elapsed.Seconds())
}

package lendon

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records session activity. A nil *Metrics records nothing.
type Metrics struct {
	submissions   prometheus.Counter
	generations   *prometheus.CounterVec
	overLimit     *prometheus.CounterVec
	generationDur prometheus.Histogram
}

// NewMetrics registers the session metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		submissions: factory.NewCounter(prometheus.CounterOpts{
			Name: "lendon_submissions_total",
			Help: "Total number of generation requests dispatched, regenerations included.",
		}),
		generations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lendon_generations_total",
			Help: "Total number of completed generations, partitioned by outcome.",
		}, []string{"outcome"}),
		overLimit: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lendon_over_limit_total",
			Help: "Total number of results exceeding their scenario's character limit.",
		}, []string{"scenario"}),
		generationDur: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "lendon_generation_seconds",
			Help:    "Latency of generation calls.",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
		}),
	}
}

func (m *Metrics) observeSubmit() {
	if m == nil {
		return
	}
	m.submissions.Inc()
}

func (m *Metrics) observeCompletion(req GenerationRequest, outcome *ValidationOutcome, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.generationDur.Observe(elapsed.Seconds())

	if err != nil {
		m.generations.WithLabelValues("error").Inc()
		return
	}
	m.generations.WithLabelValues("ready").Inc()

	if outcome != nil && outcome.IsOverLimit {
		m.overLimit.WithLabelValues(string(req.Scenario)).Inc()
	}
}

// Package sgp4metrics exposes Prometheus instrumentation for propagate
// calls. It is intentionally decoupled from the propagator core: nothing
// in package sgp4 imports the prometheus client directly, only the
// Observer interface this package satisfies.
package sgp4metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	propagateTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sgp4_propagate_total",
			Help: "Total number of propagate calls, by regime.",
		},
		[]string{"regime"},
	)

	propagateErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sgp4_propagate_errors_total",
			Help: "Total number of propagate calls that returned an error, by regime and reason.",
		},
		[]string{"regime", "reason"},
	)

	keplerIterations = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sgp4_kepler_iterations",
			Help:    "Newton-Raphson iterations taken to solve Kepler's equation per propagate call.",
			Buckets: prometheus.LinearBuckets(0, 1, 11),
		},
		[]string{"regime"},
	)
)

func init() {
	prometheus.MustRegister(propagateTotal, propagateErrorsTotal, keplerIterations)
}

// Observer receives the outcome of a single propagate call.
type Observer interface {
	ObservePropagate(regime string, keplerIterations int, err error)
}

// PrometheusObserver is the default Observer, recording to the collectors
// registered by this package.
type PrometheusObserver struct{}

func (PrometheusObserver) ObservePropagate(regime string, iterations int, err error) {
	propagateTotal.WithLabelValues(regime).Inc()
	keplerIterations.WithLabelValues(regime).Observe(float64(iterations))
	if err != nil {
		propagateErrorsTotal.WithLabelValues(regime, reasonFor(err)).Inc()
	}
}

// reasonFor buckets an error by message rather than type, since this
// package cannot import sgp4's error types without creating an import
// cycle (sgp4 imports sgp4metrics for the Observer interface).
func reasonFor(err error) string {
	if strings.Contains(err.Error(), "decayed") {
		return "decayed"
	}
	return "other"
}

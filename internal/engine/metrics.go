package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"pension-engine/internal/model"
	"pension-engine/internal/mutations"
)

var (
	calculationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pension_calculations_total",
		Help: "Calculations processed, by outcome.",
	}, []string{"outcome"})

	calculationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pension_calculation_duration_seconds",
		Help:    "Wall time of one calculation.",
		Buckets: prometheus.ExponentialBuckets(0.00005, 2, 14), // 50µs to ~400ms
	})

	mutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pension_mutations_total",
		Help: "Mutations attempted, by definition name and result.",
	}, []string{"mutation", "result"})
)

func recordCalculation(outcome model.CalculationOutcome, elapsed time.Duration) {
	calculationsTotal.WithLabelValues(string(outcome)).Inc()
	calculationDuration.Observe(elapsed.Seconds())
}

// recordMutation counts one step and reports whether its name was known.
func recordMutation(registry *mutations.Registry, step Step) bool {
	name := step.Mutation.MutationDefinitionName
	if _, ok := registry.Get(name); !ok {
		// Unknown names are caller input; keep them out of the label set.
		mutationsTotal.WithLabelValues("unknown", "unknown").Inc()
		return false
	}
	result := "applied"
	if step.Halted {
		result = "halted"
	}
	mutationsTotal.WithLabelValues(name, result).Inc()
	return true
}

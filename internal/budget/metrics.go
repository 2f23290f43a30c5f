package budget

import "github.com/prometheus/client_golang/prometheus"

var ceilingRejections = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "budget_ceiling_rejections_total",
		Help: "How many expense writes were rejected because they would exceed the monthly budget.",
	},
)

var alerts = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "budget_alerts_total",
		Help: "How many budget alerts were triggered, partitioned by whether they were enqueued.",
	},
	[]string{"result"},
)

var evaluationErrors = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "budget_evaluation_errors_total",
		Help: "How many budget checks failed on infrastructure errors and let the write proceed.",
	},
	[]string{"check"},
)

var lockFailures = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "budget_lock_failures_total",
		Help: "How many times a budget lock could not be acquired.",
	},
)

// Collectors returns all Prometheus metrics of the budget evaluation.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		ceilingRejections,
		alerts,
		evaluationErrors,
		lockFailures,
	}
}

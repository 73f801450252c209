// Package observability bundles logging and metrics for the solver service.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for the service.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// SolveRequestsTotal counts solve requests by strategy and outcome.
var SolveRequestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "solver",
	Name:      "requests_total",
	Help:      "Total solve requests by strategy and outcome",
}, []string{"strategy", "status"})

// SolveDurationSeconds tracks time spent inside the solver core.
var SolveDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "solver",
	Name:      "duration_seconds",
	Help:      "Time taken to produce one roster",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 2.0, 5.0},
})

// SolveCoverage records the coverage ratio of the most recent solve.
var SolveCoverage = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "solver",
	Name:      "coverage_ratio",
	Help:      "Filled headcount divided by required headcount for the last solve",
})

// HeadcountRequired records total required headcount of the last solve.
var HeadcountRequired = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "solver",
	Name:      "headcount_required",
	Help:      "Total required headcount across all slots in the last solve",
})

// HeadcountFilled records total filled headcount of the last solve.
var HeadcountFilled = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "solver",
	Name:      "headcount_filled",
	Help:      "Total filled headcount across all slots in the last solve",
})

// BottlenecksByReason breaks down unfilled slots by root cause.
var BottlenecksByReason = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "solver",
	Name:      "bottlenecks_by_reason",
	Help:      "Unfilled slots in the last solve broken down by reason code",
}, []string{"reason"})

// HTTPRequestsTotal counts handled HTTP requests.
var HTTPRequestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "http",
	Name:      "requests_total",
	Help:      "Total HTTP requests by path, method and status",
}, []string{"path", "method", "status"})

// HTTPErrorsTotal counts requests that resolved to a domain error.
var HTTPErrorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "http",
	Name:      "errors_total",
	Help:      "Total HTTP errors by path, method and error code",
}, []string{"path", "method", "code"})

// ResetSolveGauges zeroes the per-solve gauges before a new run.
func ResetSolveGauges() {
	SolveCoverage.Set(0)
	HeadcountRequired.Set(0)
	HeadcountFilled.Set(0)
	BottlenecksByReason.Reset()
}

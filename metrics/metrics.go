// Package metrics provides Prometheus observability metrics for the insights
// engine. It includes Critical and Important metrics for business and
// operational visibility.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// =============================================================================
// CRITICAL METRICS - Business Impact Visibility
// =============================================================================

// AnalysesTotal tracks analyses run, broken down by kind.
var AnalysesTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "insights",
	Name:      "analyses_total",
	Help:      "Total analyses run, broken down by analysis kind",
}, []string{"kind"})

// BurnoutScoreLast tracks the burnout score of the most recent analysis.
// Sustained high values indicate scheduling pressure on the participant.
var BurnoutScoreLast = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "insights",
	Name:      "burnout_score_last",
	Help:      "Burnout score produced by the most recent burnout analysis",
})

// HealthScoreLast tracks the calendar health score of the most recent analysis.
var HealthScoreLast = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "insights",
	Name:      "health_score_last",
	Help:      "Calendar health score produced by the most recent health analysis",
})

// HighRiskAnalysesTotal tracks count of analyses that surfaced high risk.
var HighRiskAnalysesTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "insights",
	Name:      "high_risk_analyses_total",
	Help:      "Count of workload or burnout analyses that reported high risk",
})

// SlotsReturned tracks the number of slot suggestions per search.
var SlotsReturned = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "insights",
	Name:      "slots_returned",
	Help:      "Number of meeting slot suggestions returned per search",
	Buckets:   []float64{0, 1, 2, 3, 4, 5},
})

// =============================================================================
// IMPORTANT METRICS - Operational Health
// =============================================================================

// ParserErrorsTotal tracks parse errors by error type.
var ParserErrorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "errors_total",
	Help:      "Total parse errors by error type",
}, []string{"error_type"})

// ParserRecordsTotal tracks total event records successfully parsed.
var ParserRecordsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "records_total",
	Help:      "Total CSV event records successfully parsed",
})

// ParserDurationSeconds tracks time to parse input files.
var ParserDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "parser",
	Name:      "duration_seconds",
	Help:      "Time taken to parse CSV input file",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
})

// FetchDurationSeconds tracks time to fetch all participants' calendars.
var FetchDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "fetch",
	Name:      "duration_seconds",
	Help:      "Time taken to fetch events for all requested participants",
	Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
})

// FetchFailuresTotal tracks participants whose calendar fetch failed.
var FetchFailuresTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "fetch",
	Name:      "failures_total",
	Help:      "Total participant calendar fetches that failed or timed out",
})

// AnalysisDurationSeconds tracks time to run the analysis pipeline.
var AnalysisDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "insights",
	Name:      "duration_seconds",
	Help:      "Time taken to run the requested analyses",
	Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
})

// =============================================================================
// Helper Functions
// =============================================================================

// ResetGauges resets all gauges before a new analysis run.
func ResetGauges() {
	BurnoutScoreLast.Set(0)
	HealthScoreLast.Set(0)
}

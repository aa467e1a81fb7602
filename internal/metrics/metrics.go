package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Assessment outcomes
const (
	OutcomeComputed = "computed"
	OutcomeCached   = "cached"
	OutcomeEmpty    = "empty"
	OutcomeFailed   = "failed"
)

var (
	AssessmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finhealth_assessments_total",
			Help: "Total number of financial assessments by outcome",
		},
		[]string{"outcome"},
	)

	AssessmentDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "finhealth_assessment_duration_seconds",
			Help:    "Duration of report computation in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
	)

	AnomaliesFlagged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "finhealth_anomalies_flagged_total",
			Help: "Total number of transactions flagged as anomalous",
		},
	)

	RiskAlertsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finhealth_risk_alerts_total",
			Help: "Total number of risk alert emails by result",
		},
		[]string{"result"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finhealth_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "finhealth_http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"method", "route"},
	)
)

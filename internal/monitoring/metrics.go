// Package monitoring exposes Prometheus metrics for report generation and
// summarises stored reports for alerting.
package monitoring

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sells-group/investor-profile/internal/model"
)

const namespace = "investor"

// Metrics holds the Prometheus collectors for the engine and the HTTP API.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	reportsGenerated   *prometheus.CounterVec
	generationFailures *prometheus.CounterVec
	riskScore          prometheus.Histogram
	generationDuration *prometheus.HistogramVec
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec

	windowReports *prometheus.GaugeVec
	windowUsers   prometheus.Gauge
	windowRisk    prometheus.Gauge
}

// MustNewMetrics registers the collectors on reg, reusing any that are
// already registered. A nil reg uses the default registerer. Other
// registration errors panic.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &Metrics{
		reportsGenerated: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reports",
			Name:      "generated_total",
			Help:      "Reports generated, by risk label and investor type.",
		}, []string{"risk_label", "type_code"})),
		generationFailures: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reports",
			Name:      "failures_total",
			Help:      "Report generations that failed, by stage.",
		}, []string{"stage"})),
		riskScore: register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "reports",
			Name:      "risk_score",
			Help:      "Distribution of computed risk scores.",
			Buckets:   prometheus.LinearBuckets(10, 10, 9),
		})),
		generationDuration: register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "reports",
			Name:      "generation_duration_seconds",
			Help:      "Time spent generating and persisting a report.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}, []string{"status"})),
		httpRequests: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests, by route pattern and status code.",
		}, []string{"route", "method", "status"})),
		httpDuration: register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency, by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"})),
		windowReports: register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "window",
			Name:      "reports",
			Help:      "Stored reports in the monitoring lookback window, by risk label.",
		}, []string{"risk_label"})),
		windowUsers: register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "window",
			Name:      "users",
			Help:      "Distinct users with a report in the monitoring lookback window.",
		})),
		windowRisk: register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "window",
			Name:      "avg_risk_score",
			Help:      "Mean risk score of reports in the monitoring lookback window.",
		})),
	}
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

// ObserveReport records a successful generation.
func (m *Metrics) ObserveReport(r model.Report, d time.Duration) {
	if m == nil {
		return
	}
	m.reportsGenerated.WithLabelValues(r.RiskProfile.Label, r.InvestorType.Code).Inc()
	m.riskScore.Observe(float64(r.RiskProfile.Score))
	m.generationDuration.WithLabelValues("ok").Observe(d.Seconds())
}

// ObserveFailure records a generation that failed at stage.
func (m *Metrics) ObserveFailure(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.generationFailures.WithLabelValues(stage).Inc()
	m.generationDuration.WithLabelValues("error").Observe(d.Seconds())
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(route, method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(d.Seconds())
}

// ObserveSnapshot replaces the window gauges with the values in snap.
func (m *Metrics) ObserveSnapshot(snap *Snapshot) {
	if m == nil || snap == nil {
		return
	}
	m.windowReports.Reset()
	for label, n := range snap.ByLabel {
		m.windowReports.WithLabelValues(label).Set(float64(n))
	}
	m.windowUsers.Set(float64(snap.Users))
	m.windowRisk.Set(snap.AvgRiskScore)
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the licensing service. Every
// method is safe on a nil receiver so services can run without metrics.
type Metrics struct {
	ApplicationsFiled     prometheus.Counter
	LicensesIssued        *prometheus.CounterVec
	Detains               prometheus.Counter
	Releases              prometheus.Counter
	ReleaseFees           prometheus.Counter
	InternationalIssued   prometheus.Counter
	TestsRecorded         *prometheus.CounterVec
	RuleRejections        *prometheus.CounterVec
	OperationLatency      *prometheus.HistogramVec
	FeeCacheLookups       *prometheus.CounterVec
	HTTPRequests          *prometheus.CounterVec
	HTTPRequestsInFlight  prometheus.Gauge
	HTTPRequestsLatencies *prometheus.HistogramVec
}

// New registers the collectors with the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the collectors with reg. Tests pass a fresh
// prometheus.NewRegistry() so repeated construction does not collide.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ApplicationsFiled: f.NewCounter(prometheus.CounterOpts{
			Name: "licensing_applications_filed_total",
			Help: "Local driving license applications filed",
		}),
		LicensesIssued: f.NewCounterVec(prometheus.CounterOpts{
			Name: "licensing_licenses_issued_total",
			Help: "Local licenses issued by issue reason",
		}, []string{"reason"}),
		Detains: f.NewCounter(prometheus.CounterOpts{
			Name: "licensing_detains_total",
			Help: "Licenses detained",
		}),
		Releases: f.NewCounter(prometheus.CounterOpts{
			Name: "licensing_releases_total",
			Help: "Detained licenses released",
		}),
		ReleaseFees: f.NewCounter(prometheus.CounterOpts{
			Name: "licensing_release_fees_cents_total",
			Help: "Release fees plus fines charged, in cents",
		}),
		InternationalIssued: f.NewCounter(prometheus.CounterOpts{
			Name: "licensing_international_licenses_issued_total",
			Help: "International licenses issued",
		}),
		TestsRecorded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "licensing_tests_recorded_total",
			Help: "Test results recorded by test type and outcome",
		}, []string{"test_type", "result"}),
		RuleRejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "licensing_rule_rejections_total",
			Help: "Operations rejected by an eligibility rule, by operation and error code",
		}, []string{"operation", "code"}),
		OperationLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "licensing_operation_duration_seconds",
			Help:    "Duration of state-transition operations including the transaction",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),
		FeeCacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "licensing_fee_cache_lookups_total",
			Help: "Fee table cache lookups by result (hit, miss, error)",
		}, []string{"result"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "licensing_http_requests_total",
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPRequestsInFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "licensing_http_requests_in_flight",
			Help: "HTTP requests currently being served",
		}),
		HTTPRequestsLatencies: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "licensing_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

func (m *Metrics) IncApplicationsFiled() {
	if m != nil {
		m.ApplicationsFiled.Inc()
	}
}

func (m *Metrics) IncLicensesIssued(reason string) {
	if m != nil {
		m.LicensesIssued.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) IncDetains() {
	if m != nil {
		m.Detains.Inc()
	}
}

// IncReleases counts a release and the total it charged.
func (m *Metrics) IncReleases(totalCents int64) {
	if m != nil {
		m.Releases.Inc()
		m.ReleaseFees.Add(float64(totalCents))
	}
}

func (m *Metrics) IncInternationalIssued() {
	if m != nil {
		m.InternationalIssued.Inc()
	}
}

func (m *Metrics) IncTestsRecorded(testType string, passed bool) {
	if m != nil {
		result := "failed"
		if passed {
			result = "passed"
		}
		m.TestsRecorded.WithLabelValues(testType, result).Inc()
	}
}

func (m *Metrics) IncRuleRejection(operation, code string) {
	if m != nil {
		m.RuleRejections.WithLabelValues(operation, code).Inc()
	}
}

func (m *Metrics) ObserveOperation(operation string, start time.Time) {
	if m != nil {
		m.OperationLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) IncFeeCache(result string) {
	if m != nil {
		m.FeeCacheLookups.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m != nil {
		m.HTTPRequests.WithLabelValues(method, route, statusClass(status)).Inc()
		m.HTTPRequestsLatencies.WithLabelValues(route).Observe(d.Seconds())
	}
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

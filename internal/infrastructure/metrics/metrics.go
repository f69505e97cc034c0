package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gojournal"

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Posting metrics
	TransactionsPosted *prometheus.CounterVec
	TransactionLines   prometheus.Histogram
	PostingErrors      *prometheus.CounterVec

	// Account metrics
	AccountsRegistered *prometheus.CounterVec

	// Report metrics
	ReportsGenerated *prometheus.CounterVec
	ReportDuration   *prometheus.HistogramVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge

	// Rate limiting metrics
	RateLimitHits prometheus.Counter

	// Outbox metrics
	EventsPublished    *prometheus.CounterVec
	EventPublishErrors *prometheus.CounterVec
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Posting metrics
		TransactionsPosted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transactions_posted_total",
				Help:      "Total number of transactions committed to the journal",
			},
			[]string{"currency"},
		),
		TransactionLines: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transaction_lines",
			Help:      "Number of lines per posted transaction",
			Buckets:   []float64{2, 3, 4, 6, 10, 25, 100, 1000},
		}),
		PostingErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "posting_errors_total",
				Help:      "Total number of rejected or failed postings by reason",
			},
			[]string{"reason"},
		),

		// Account metrics
		AccountsRegistered: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "accounts_registered_total",
				Help:      "Total number of accounts registered",
			},
			[]string{"type"},
		),

		// Report metrics
		ReportsGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reports_generated_total",
				Help:      "Total number of financial reports generated",
			},
			[]string{"report"},
		),
		ReportDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "report_duration_seconds",
				Help:      "Duration of report generation",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"report"},
		),

		// API metrics
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		}),

		// Rate limiting metrics
		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limit_hits_total",
			Help:      "Total requests rejected by the rate limiter",
		}),

		// Outbox metrics
		EventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_published_total",
				Help:      "Total outbox events delivered",
			},
			[]string{"event_type"},
		),
		EventPublishErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "event_publish_errors_total",
				Help:      "Total outbox delivery failures",
			},
			[]string{"event_type"},
		),
	}
}

// TransactionPosted implements usecase.MetricsRecorder.
func (m *Metrics) TransactionPosted(currency string, lines int) {
	m.TransactionsPosted.WithLabelValues(currency).Inc()
	m.TransactionLines.Observe(float64(lines))
}

// PostingFailed implements usecase.MetricsRecorder.
func (m *Metrics) PostingFailed(reason string) {
	m.PostingErrors.WithLabelValues(reason).Inc()
}

// AccountRegistered implements usecase.MetricsRecorder.
func (m *Metrics) AccountRegistered(accountType string) {
	m.AccountsRegistered.WithLabelValues(accountType).Inc()
}

// ReportGenerated implements usecase.MetricsRecorder.
func (m *Metrics) ReportGenerated(report string, duration time.Duration) {
	m.ReportsGenerated.WithLabelValues(report).Inc()
	m.ReportDuration.WithLabelValues(report).Observe(duration.Seconds())
}

// EventPublished counts a delivered outbox event.
func (m *Metrics) EventPublished(eventType string) {
	m.EventsPublished.WithLabelValues(eventType).Inc()
}

// EventFailed counts a failed outbox delivery.
func (m *Metrics) EventFailed(eventType string) {
	m.EventPublishErrors.WithLabelValues(eventType).Inc()
}

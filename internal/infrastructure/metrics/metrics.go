package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Transfer metrics
	TransfersCreated prometheus.Counter
	TransferAmount   prometheus.Histogram
	TransferErrors   *prometheus.CounterVec

	// Account metrics
	AccountsCreated prometheus.Counter
	SignIns         prometheus.Counter

	// Fraud metrics
	FraudReports       *prometheus.CounterVec
	EvaluationDuration prometheus.Histogram
	EvaluationErrors   prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Cache metrics
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
}

// New creates all metrics and registers them with reg. Tests pass their
// own registry so repeated construction never collides.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TransfersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "paymint_transfers_created_total",
			Help: "Total number of completed transfers",
		}),
		TransferAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "paymint_transfer_amount",
			Help:    "Transfer amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000},
		}),
		TransferErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paymint_transfer_errors_total",
				Help: "Total number of rejected transfers by reason",
			},
			[]string{"reason"},
		),
		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "paymint_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		SignIns: factory.NewCounter(prometheus.CounterOpts{
			Name: "paymint_sign_ins_total",
			Help: "Total number of session sign-ins",
		}),
		FraudReports: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paymint_fraud_reports_total",
				Help: "Total number of fraud reports by verdict",
			},
			[]string{"verdict"},
		),
		EvaluationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "paymint_fraud_evaluation_duration_seconds",
			Help:    "Duration of fraud evaluation calls",
			Buckets: prometheus.DefBuckets,
		}),
		EvaluationErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "paymint_fraud_evaluation_errors_total",
			Help: "Total number of failed fraud evaluations",
		}),
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paymint_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "paymint_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "paymint_history_cache_hits_total",
			Help: "Total history cache hits",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "paymint_history_cache_misses_total",
			Help: "Total history cache misses",
		}),
	}
}

// VerdictLabel converts a verdict boolean into its metric label.
func VerdictLabel(fraudulent bool) string {
	if fraudulent {
		return "fraudulent"
	}
	return "legitimate"
}

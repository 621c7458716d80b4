package metrics

import (
	"sync"

	"github.com/Aiionteam/app.aiion.site/internal/core"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ensure Metrics implements Recorder interface at compile time
var _ core.Recorder = (*Metrics)(nil)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// Login pipeline
	OAuthCallbackTotal  *prometheus.CounterVec
	LoginStageTotal     *prometheus.CounterVec
	ExternalAPIDuration *prometheus.HistogramVec
	UserReconcileTotal  *prometheus.CounterVec
	LogoutTotal         *prometheus.CounterVec
	HandshakeTotal      *prometheus.CounterVec

	// Tokens
	TokensIssuedTotal       *prometheus.CounterVec
	TokenGenerationDuration *prometheus.HistogramVec
	TokenValidationTotal    *prometheus.CounterVec
	TokenValidationDuration prometheus.Histogram
	TokensRefreshedTotal    *prometheus.CounterVec

	// Records
	UsersTotal   prometheus.Gauge
	DiariesTotal prometheus.Gauge

	// HTTP Request Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	DatabaseQueryErrorsTotal *prometheus.CounterVec
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

// Init returns the Prometheus recorder when enabled and NoopMetrics
// otherwise. Collectors are registered once per process.
func Init(enabled bool) core.Recorder {
	if !enabled {
		return NewNoopMetrics()
	}

	once.Do(func() {
		defaultMetrics = initMetrics()
	})
	return defaultMetrics
}

func initMetrics() *Metrics {
	return &Metrics{
		OAuthCallbackTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_oauth_callback_total",
				Help: "Total number of OAuth callbacks by terminal result",
			},
			[]string{"provider", "result"}, // result: success, error
		),
		LoginStageTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_login_stage_total",
				Help: "Login pipeline steps by outcome",
			},
			[]string{"provider", "stage", "result"}, // stage: exchange, profile, user, credentials
		),
		ExternalAPIDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "auth_external_api_duration_seconds",
				Help:    "Latency of identity provider calls",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"},
		),
		UserReconcileTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "users_reconcile_total",
				Help: "User reconciliation outcomes on login and create",
			},
			[]string{"outcome"}, // existing, created, recovered, conflict
		),
		LogoutTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_logout_total",
				Help: "Total number of logouts",
			},
			[]string{"provider"},
		),
		HandshakeTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_code_handshake_total",
				Help: "Authorization code handshake operations",
			},
			[]string{"result"}, // registered, consumed, missing, mismatch
		),

		TokensIssuedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tokens_issued_total",
				Help: "Total number of tokens issued",
			},
			[]string{"token_type", "provider"},
		),
		TokenGenerationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "token_generation_duration_seconds",
				Help:    "Time taken to sign tokens",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"token_type"},
		),
		TokenValidationTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "token_validation_total",
				Help: "Total number of access token validations",
			},
			[]string{"result"}, // valid, invalid, revoked
		),
		TokenValidationDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "token_validation_duration_seconds",
				Help:    "Time taken to validate tokens",
				Buckets: prometheus.DefBuckets,
			},
		),
		TokensRefreshedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tokens_refreshed_total",
				Help: "Total number of token refresh attempts",
			},
			[]string{"result"}, // success, error
		),

		UsersTotal: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "users_total",
				Help: "Number of user records",
			},
		),
		DiariesTotal: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "diaries_total",
				Help: "Number of diary entries",
			},
		),

		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP request latency in seconds",
				Buckets: []float64{
					0.001, 0.005, 0.010, 0.025, 0.050, 0.100,
					0.250, 0.500, 1.0, 2.5, 5.0, 10.0,
				},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Current number of HTTP requests being served",
			},
		),

		DatabaseQueryErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "database_query_errors_total",
				Help: "Total number of database query errors",
			},
			[]string{"operation"},
		),
	}
}

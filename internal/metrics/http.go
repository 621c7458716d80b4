package metrics

import (
	"strconv"
	"time"

	"github.com/Aiionteam/app.aiion.site/internal/core"

	"github.com/gin-gonic/gin"
)

const (
	resultSuccess = "success"
	resultError   = "error"
)

func resultLabel(success bool) string {
	if success {
		return resultSuccess
	}
	return resultError
}

// HTTPMetricsMiddleware creates a Gin middleware that records HTTP metrics
func HTTPMetricsMiddleware(m core.Recorder) gin.HandlerFunc {
	metrics, ok := m.(*Metrics)
	if !ok {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		// Skip metrics endpoint to avoid self-recording
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		c.Next()

		path := c.FullPath() // route pattern keeps label cardinality bounded
		if path == "" {
			path = "unknown"
		}
		method := c.Request.Method
		metrics.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) RecordOAuthCallback(provider string, success bool) {
	m.OAuthCallbackTotal.WithLabelValues(provider, resultLabel(success)).Inc()
}

func (m *Metrics) RecordLoginStage(provider, stage string, success bool) {
	m.LoginStageTotal.WithLabelValues(provider, stage, resultLabel(success)).Inc()
}

func (m *Metrics) RecordExternalAPICall(provider string, duration time.Duration) {
	m.ExternalAPIDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

func (m *Metrics) RecordUserReconcile(outcome string) {
	m.UserReconcileTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordTokenIssued(tokenType, provider string, generationTime time.Duration) {
	m.TokensIssuedTotal.WithLabelValues(tokenType, provider).Inc()
	m.TokenGenerationDuration.WithLabelValues(tokenType).Observe(generationTime.Seconds())
}

// RecordTokenValidation records an access token check: valid, invalid or revoked.
func (m *Metrics) RecordTokenValidation(result string, duration time.Duration) {
	m.TokenValidationTotal.WithLabelValues(result).Inc()
	m.TokenValidationDuration.Observe(duration.Seconds())
}

func (m *Metrics) RecordTokenRefresh(success bool) {
	m.TokensRefreshedTotal.WithLabelValues(resultLabel(success)).Inc()
}

func (m *Metrics) RecordLogout(provider string) {
	m.LogoutTotal.WithLabelValues(provider).Inc()
}

func (m *Metrics) RecordHandshake(result string) {
	m.HandshakeTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) SetUsersCount(count int) {
	m.UsersTotal.Set(float64(count))
}

func (m *Metrics) SetDiariesCount(count int) {
	m.DiariesTotal.Set(float64(count))
}

func (m *Metrics) RecordDatabaseQueryError(operation string) {
	m.DatabaseQueryErrorsTotal.WithLabelValues(operation).Inc()
}

package core

import "time"

// Recorder records application metrics. Metrics (Prometheus) and
// NoopMetrics implement it.
type Recorder interface {
	// Login pipeline
	RecordOAuthCallback(provider string, success bool)
	RecordLoginStage(provider, stage string, success bool)
	RecordExternalAPICall(provider string, duration time.Duration)

	// User reconciliation outcome: existing, created, recovered, conflict
	RecordUserReconcile(outcome string)

	// Credentials
	RecordTokenIssued(tokenType, provider string, generationTime time.Duration)
	RecordTokenValidation(result string, duration time.Duration)
	RecordTokenRefresh(success bool)
	RecordLogout(provider string)

	// Authorization-code handshake: registered, consumed, missing, mismatch
	RecordHandshake(result string)

	// Gauges
	SetUsersCount(count int)
	SetDiariesCount(count int)

	RecordDatabaseQueryError(operation string)
}

// MetricsStore is the read side the gauge updater needs.
type MetricsStore interface {
	CountUsers() (int64, error)
	CountDiaries() (int64, error)
}

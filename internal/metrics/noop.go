package metrics

import (
	"time"

	"github.com/Aiionteam/app.aiion.site/internal/core"
)

// NoopMetrics does nothing. It is used when metrics are disabled and in tests.
type NoopMetrics struct{}

var _ core.Recorder = (*NoopMetrics)(nil)

func NewNoopMetrics() core.Recorder {
	return &NoopMetrics{}
}

func (n *NoopMetrics) RecordOAuthCallback(provider string, success bool)             {}
func (n *NoopMetrics) RecordLoginStage(provider, stage string, success bool)         {}
func (n *NoopMetrics) RecordExternalAPICall(provider string, duration time.Duration) {}
func (n *NoopMetrics) RecordUserReconcile(outcome string)                            {}

func (n *NoopMetrics) RecordTokenIssued(tokenType, provider string, generationTime time.Duration) {
}
func (n *NoopMetrics) RecordTokenValidation(result string, duration time.Duration) {}
func (n *NoopMetrics) RecordTokenRefresh(success bool)                              {}
func (n *NoopMetrics) RecordLogout(provider string)                                 {}
func (n *NoopMetrics) RecordHandshake(result string)                                {}

func (n *NoopMetrics) SetUsersCount(count int)   {}
func (n *NoopMetrics) SetDiariesCount(count int) {}

func (n *NoopMetrics) RecordDatabaseQueryError(operation string) {}

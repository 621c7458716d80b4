package client

import (
	"fmt"
	"time"

	httpclient "github.com/appleboy/go-httpclient"
	retry "github.com/appleboy/go-httpretry"
)

// RetryConfig describes an authenticated service-to-service client.
type RetryConfig struct {
	AuthMode   string // none, simple or hmac
	AuthSecret string
	AuthHeader string // header carrying the secret in simple mode

	Timeout            time.Duration
	InsecureSkipVerify bool

	MaxRetries    int
	RetryDelay    time.Duration
	MaxRetryDelay time.Duration
}

// NewRetryClient builds a go-httpclient auth client wrapped in a
// go-httpretry client with exponential backoff.
func NewRetryClient(cfg RetryConfig) (*retry.Client, error) {
	authClient, err := httpclient.NewAuthClient(
		cfg.AuthMode,
		cfg.AuthSecret,
		httpclient.WithTimeout(cfg.Timeout),
		httpclient.WithHeaderName(cfg.AuthHeader),
		httpclient.WithInsecureSkipVerify(cfg.InsecureSkipVerify),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s auth client: %w", cfg.AuthMode, err)
	}

	retryClient, err := retry.NewRealtimeClient(
		retry.WithHTTPClient(authClient),
		retry.WithMaxRetries(cfg.MaxRetries),
		retry.WithInitialRetryDelay(cfg.RetryDelay),
		retry.WithMaxRetryDelay(cfg.MaxRetryDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create retry client: %w", err)
	}
	return retryClient, nil
}

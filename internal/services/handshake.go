package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Aiionteam/app.aiion.site/internal/core"
	"github.com/Aiionteam/app.aiion.site/internal/tokenstore"
)

// Handshake results recorded in metrics.
const (
	HandshakeRegistered = "registered"
	HandshakeConsumed   = "consumed"
	HandshakeMissing    = "missing"
	HandshakeMismatch   = "mismatch"
)

// HandshakeService binds an authorization code to the state it was issued
// with so a client can redeem the code exactly once.
type HandshakeService struct {
	store   core.TokenStore
	ttl     time.Duration
	metrics core.Recorder
}

func NewHandshakeService(tokenStore core.TokenStore, ttl time.Duration, m core.Recorder) *HandshakeService {
	return &HandshakeService{store: tokenStore, ttl: ttl, metrics: m}
}

// Register stores code -> state for the configured TTL.
func (h *HandshakeService) Register(ctx context.Context, provider, code, state string) error {
	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("%w: code is required", ErrInvalidInput)
	}
	if err := h.store.SaveAuthorizationCode(ctx, provider, code, state, h.ttl); err != nil {
		return fmt.Errorf("register authorization code: %w", err)
	}
	h.metrics.RecordHandshake(HandshakeRegistered)
	return nil
}

// VerifyAndConsume returns the state registered for code and removes it.
// It succeeds at most once per code.
func (h *HandshakeService) VerifyAndConsume(ctx context.Context, provider, code string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", fmt.Errorf("%w: code is required", ErrInvalidInput)
	}
	state, err := h.store.VerifyAndDeleteAuthorizationCode(ctx, provider, code)
	if err != nil {
		if errors.Is(err, tokenstore.ErrNotFound) {
			h.metrics.RecordHandshake(HandshakeMissing)
			return "", ErrNotFoundOrExpired
		}
		return "", fmt.Errorf("verify authorization code: %w", err)
	}
	h.metrics.RecordHandshake(HandshakeConsumed)
	return state, nil
}

// Redeem consumes code and checks it was issued for state.
func (h *HandshakeService) Redeem(ctx context.Context, provider, code, state string) error {
	stored, err := h.VerifyAndConsume(ctx, provider, code)
	if err != nil {
		return err
	}
	if stored != state {
		h.metrics.RecordHandshake(HandshakeMismatch)
		return fmt.Errorf("%w: state mismatch", ErrInvalidInput)
	}
	return nil
}

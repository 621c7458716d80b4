package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Aiionteam/app.aiion.site/internal/core"
	"github.com/Aiionteam/app.aiion.site/internal/models"
	"github.com/Aiionteam/app.aiion.site/internal/services"

	retry "github.com/appleboy/go-httpretry"
	"github.com/rs/zerolog"
)

// Remote user-service endpoints.
const (
	FindPath = "/api/users/find-by-email-provider"
	SavePath = "/api/users"
)

var (
	// ErrConnection is returned when the user-service cannot be reached.
	ErrConnection = errors.New("user service connection failed")
	// ErrInvalidResponse is returned for a response that is not a Result.
	ErrInvalidResponse = errors.New("user service returned an invalid response")
)

var _ core.UserDirectory = (*RemoteDirectory)(nil)

// RemoteDirectory resolves users through the user-service HTTP API. It runs
// the same find, save, re-find protocol as the in-process UserService.
type RemoteDirectory struct {
	baseURL     string
	retryClient *retry.Client
	logger      zerolog.Logger
}

func NewRemoteDirectory(baseURL string, retryClient *retry.Client, logger zerolog.Logger) *RemoteDirectory {
	return &RemoteDirectory{
		baseURL:     strings.TrimRight(baseURL, "/"),
		retryClient: retryClient,
		logger:      logger.With().Str("component", "remote_directory").Logger(),
	}
}

type findRequest struct {
	Email    string `json:"email"`
	Provider string `json:"provider"`
}

// envelope is the wire form of services.Result.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (d *RemoteDirectory) post(ctx context.Context, path string, reqBody any) (*envelope, error) {
	resp, err := d.retryClient.Post(ctx, d.baseURL+path, retry.WithJSON(reqBody))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response", ErrInvalidResponse)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		preview := string(body)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		return nil, fmt.Errorf("%w: HTTP %d - %s", ErrInvalidResponse, resp.StatusCode, preview)
	}
	if env.Code == 0 {
		env.Code = resp.StatusCode
	}
	return &env, nil
}

func decodeUser(env *envelope) (*models.User, error) {
	var user models.User
	if err := json.Unmarshal(env.Data, &user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if user.ID == 0 {
		return nil, fmt.Errorf("%w: user without id", ErrInvalidResponse)
	}
	return &user, nil
}

// FindByEmailAndProvider looks the pair up remotely. Blank inputs fail
// locally without a request.
func (d *RemoteDirectory) FindByEmailAndProvider(
	ctx context.Context,
	email, provider string,
) (*models.User, error) {
	email = strings.TrimSpace(email)
	provider = strings.TrimSpace(provider)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", services.ErrInvalidInput)
	}
	if provider == "" {
		return nil, fmt.Errorf("%w: provider is required", services.ErrInvalidInput)
	}

	env, err := d.post(ctx, FindPath, findRequest{Email: email, Provider: provider})
	if err != nil {
		return nil, err
	}
	switch env.Code {
	case http.StatusOK:
		return decodeUser(env)
	case http.StatusNotFound:
		return nil, services.ErrNotFound
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: %s", services.ErrInvalidInput, env.Message)
	default:
		return nil, fmt.Errorf("%w: HTTP %d - %s", ErrInvalidResponse, env.Code, env.Message)
	}
}

// UpsertOnLogin finds the user, creates it when missing and re-reads once
// when the create is rejected. Only a failed re-read is a conflict.
func (d *RemoteDirectory) UpsertOnLogin(
	ctx context.Context,
	candidate *models.User,
) (*models.User, error) {
	existing, err := d.FindByEmailAndProvider(ctx, candidate.Email, candidate.Provider)
	switch {
	case err == nil:
		return existing, nil
	case errors.Is(err, services.ErrInvalidInput):
		return nil, err
	case !errors.Is(err, services.ErrNotFound):
		d.logger.Warn().Err(err).Str("email", candidate.Email).Msg("remote lookup failed, attempting save")
	}

	env, err := d.post(ctx, SavePath, candidate)
	if err == nil && env.Code == http.StatusOK {
		if user, err := decodeUser(env); err == nil {
			return user, nil
		}
	}
	if err == nil {
		err = fmt.Errorf("HTTP %d - %s", env.Code, env.Message)
	}
	d.logger.Warn().Err(err).Str("email", candidate.Email).Msg("remote save failed, re-reading")

	winner, lookupErr := d.FindByEmailAndProvider(ctx, candidate.Email, candidate.Provider)
	if lookupErr != nil {
		return nil, &services.ConflictError{Email: candidate.Email, Err: err}
	}
	return winner, nil
}

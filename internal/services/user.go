package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Aiionteam/app.aiion.site/internal/core"
	"github.com/Aiionteam/app.aiion.site/internal/models"
	"github.com/Aiionteam/app.aiion.site/internal/store"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog"
)

// Reconciliation outcomes recorded by UpsertOnLogin and Save.
const (
	ReconcileExisting  = "existing"
	ReconcileCreated   = "created"
	ReconcileRecovered = "recovered"
	ReconcileConflict  = "conflict"
)

var _ core.UserDirectory = (*UserService)(nil)

// UserService owns user records. It is the in-process User Directory used
// by the login pipeline and backs the /api/users endpoints.
type UserService struct {
	store    *store.Store
	cache    core.Cache[models.User]
	cacheTTL time.Duration
	metrics  core.Recorder
	logger   zerolog.Logger
}

func NewUserService(
	s *store.Store,
	cache core.Cache[models.User],
	cacheTTL time.Duration,
	m core.Recorder,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		store:    s,
		cache:    cache,
		cacheTTL: cacheTTL,
		metrics:  m,
		logger:   logger.With().Str("component", "user_service").Logger(),
	}
}

func cacheKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// GetUser returns the user by id, read through the user cache.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.cache.GetWithFetch(ctx, cacheKey(id), s.cacheTTL,
		func(ctx context.Context, _ string) (models.User, error) {
			u, err := s.store.GetUserByID(ctx, id)
			if err != nil {
				return models.User{}, err
			}
			return *u, nil
		})
	if err != nil {
		if store.IsNotFound(err) {
			return nil, ErrNotFound
		}
		s.metrics.RecordDatabaseQueryError("get_user")
		return nil, err
	}
	return &user, nil
}

func (s *UserService) invalidate(ctx context.Context, id uint) {
	if err := s.cache.Delete(ctx, cacheKey(id)); err != nil {
		s.logger.Warn().Err(err).Uint("user_id", id).Msg("failed to invalidate user cache")
	}
}

// FindByEmailAndProvider is a pure lookup. Blank inputs fail with
// ErrInvalidInput without touching the store.
func (s *UserService) FindByEmailAndProvider(
	ctx context.Context,
	email, provider string,
) (*models.User, error) {
	email = strings.TrimSpace(email)
	provider = strings.TrimSpace(provider)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if provider == "" {
		return nil, fmt.Errorf("%w: provider is required", ErrInvalidInput)
	}

	user, err := s.store.GetUserByEmailAndProvider(ctx, email, provider)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, ErrNotFound
		}
		s.metrics.RecordDatabaseQueryError("find_user_by_email_provider")
		return nil, err
	}
	return user, nil
}

// UpsertOnLogin returns the canonical user for the candidate's
// (email, provider), creating it on first login. A concurrent insert of the
// same pair is resolved by re-reading in a fresh transaction; the row that
// won is returned to every caller.
func (s *UserService) UpsertOnLogin(
	ctx context.Context,
	candidate *models.User,
) (*models.User, error) {
	existing, err := s.FindByEmailAndProvider(ctx, candidate.Email, candidate.Provider)
	switch {
	case err == nil:
		s.metrics.RecordUserReconcile(ReconcileExisting)
		return existing, nil
	case errors.Is(err, ErrInvalidInput):
		return nil, err
	case !errors.Is(err, ErrNotFound):
		s.logger.Warn().Err(err).Str("email", candidate.Email).Msg("user lookup failed, attempting create")
	}

	user, _, err := s.create(ctx, candidate)
	return user, err
}

// create inserts candidate in its own transaction. On a uniqueness
// violation it re-reads the pair in a new transaction; any other failure is
// a conflict.
func (s *UserService) create(
	ctx context.Context,
	candidate *models.User,
) (*models.User, string, error) {
	user := &models.User{
		Name:       candidate.Name,
		Email:      candidate.Email,
		Nickname:   candidate.Nickname,
		Provider:   candidate.Provider,
		ProviderID: candidate.ProviderID,
	}

	err := s.store.CreateUser(ctx, user)
	if err == nil {
		s.metrics.RecordUserReconcile(ReconcileCreated)
		s.logger.Info().Uint("user_id", user.ID).Str("provider", user.Provider).Msg("user created")
		return user, ReconcileCreated, nil
	}

	conflict := &ConflictError{Email: user.Email, Err: err}
	if !errors.Is(err, store.ErrDuplicateUser) {
		s.metrics.RecordUserReconcile(ReconcileConflict)
		s.logger.Error().Err(err).Str("email", user.Email).Msg("user create failed")
		return nil, ReconcileConflict, conflict
	}

	winner, lookupErr := s.store.GetUserByEmailAndProviderInNewTx(ctx, user.Email, user.Provider)
	if lookupErr != nil {
		s.metrics.RecordUserReconcile(ReconcileConflict)
		s.logger.Error().Err(lookupErr).Str("email", user.Email).Msg("user re-lookup after duplicate failed")
		return nil, ReconcileConflict, conflict
	}

	s.metrics.RecordUserReconcile(ReconcileRecovered)
	s.logger.Info().Uint("user_id", winner.ID).Str("email", user.Email).Msg("duplicate insert resolved to existing user")
	return winner, ReconcileRecovered, nil
}

// FindByID returns the user with the given id.
func (s *UserService) FindByID(ctx context.Context, id uint) *Result {
	if id == 0 {
		return resultError(http.StatusBadRequest, "id is required")
	}
	user, err := s.GetUser(ctx, id)
	switch {
	case errors.Is(err, ErrNotFound):
		return resultError(http.StatusNotFound, "user not found")
	case err != nil:
		return resultError(http.StatusInternalServerError, err.Error())
	}
	return resultOK("user found", user)
}

// Lookup wraps FindByEmailAndProvider in a Result.
func (s *UserService) Lookup(ctx context.Context, email, provider string) *Result {
	user, err := s.FindByEmailAndProvider(ctx, email, provider)
	switch {
	case errors.Is(err, ErrInvalidInput):
		return resultError(http.StatusBadRequest, strings.TrimPrefix(err.Error(), ErrInvalidInput.Error()+": "))
	case errors.Is(err, ErrNotFound):
		return resultError(http.StatusNotFound, "user not found")
	case err != nil:
		return resultError(http.StatusInternalServerError, err.Error())
	}
	return resultOK("user found", user)
}

// FindAll lists users. With an unpaged params value every user is returned.
func (s *UserService) FindAll(ctx context.Context, params store.PaginationParams) *Result {
	users, page, err := s.store.ListUsers(ctx, params)
	if err != nil {
		s.metrics.RecordDatabaseQueryError("list_users")
		return resultError(http.StatusInternalServerError, err.Error())
	}
	if !params.Paged() {
		return resultOK(fmt.Sprintf("%d users", len(users)), users)
	}
	return resultOK(fmt.Sprintf("%d users", len(users)), map[string]any{
		"items":      users,
		"pagination": page,
	})
}

// Save creates a user. A duplicate (email, provider) returns the existing
// row when it can be read back, 409 otherwise.
func (s *UserService) Save(ctx context.Context, candidate *models.User) *Result {
	if strings.TrimSpace(candidate.Email) == "" || strings.TrimSpace(candidate.Provider) == "" {
		return resultError(http.StatusBadRequest, "email and provider are required")
	}

	user, outcome, err := s.create(ctx, candidate)
	if err != nil {
		return resultError(http.StatusConflict, err.Error())
	}
	if outcome == ReconcileRecovered {
		return resultOK(fmt.Sprintf("user already exists: %d", user.ID), user)
	}
	return resultOK(fmt.Sprintf("saved: %d", user.ID), user)
}

// SaveAll creates every user in one transaction.
func (s *UserService) SaveAll(ctx context.Context, candidates []models.User) *Result {
	users := make([]*models.User, 0, len(candidates))
	for i := range candidates {
		c := candidates[i]
		users = append(users, &models.User{
			Name:       c.Name,
			Email:      c.Email,
			Nickname:   c.Nickname,
			Provider:   c.Provider,
			ProviderID: c.ProviderID,
		})
	}

	if err := s.store.CreateUsers(ctx, users); err != nil {
		if errors.Is(err, store.ErrDuplicateUser) {
			return resultError(http.StatusConflict, err.Error())
		}
		s.metrics.RecordDatabaseQueryError("create_users")
		return resultError(http.StatusInternalServerError, err.Error())
	}
	return resultOK(fmt.Sprintf("saved %d users", len(users)), users)
}

// Update merges the non-empty fields of patch into the stored user.
func (s *UserService) Update(ctx context.Context, id uint, patch *models.User) *Result {
	if id == 0 {
		return resultError(http.StatusBadRequest, "id is required")
	}

	existing, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return resultError(http.StatusNotFound, "user to update not found")
		}
		return resultError(http.StatusInternalServerError, err.Error())
	}

	if err := mergeUser(existing, patch); err != nil {
		return resultError(http.StatusBadRequest, err.Error())
	}

	if err := s.store.UpdateUser(ctx, existing); err != nil {
		if errors.Is(err, store.ErrDuplicateUser) {
			return resultError(http.StatusConflict,
				(&ConflictError{Email: existing.Email}).Error())
		}
		s.metrics.RecordDatabaseQueryError("update_user")
		return resultError(http.StatusInternalServerError, err.Error())
	}
	s.invalidate(ctx, id)

	return resultOK(fmt.Sprintf("updated: %d", id), existing)
}

// mergeUser copies the set fields of patch onto dst. ID and timestamps are
// never taken from the patch.
func mergeUser(dst, patch *models.User) error {
	p := *patch
	p.ID, p.CreatedAt, p.UpdatedAt = 0, time.Time{}, time.Time{}
	return copier.CopyWithOption(dst, &p, copier.Option{IgnoreEmpty: true})
}

func (s *UserService) Delete(ctx context.Context, id uint) *Result {
	if id == 0 {
		return resultError(http.StatusBadRequest, "id is required")
	}
	if err := s.store.DeleteUser(ctx, id); err != nil {
		if store.IsNotFound(err) {
			return resultError(http.StatusNotFound, "user to delete not found")
		}
		s.metrics.RecordDatabaseQueryError("delete_user")
		return resultError(http.StatusInternalServerError, err.Error())
	}
	s.invalidate(ctx, id)
	return resultOK(fmt.Sprintf("deleted: %d", id), nil)
}

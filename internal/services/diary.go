package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Aiionteam/app.aiion.site/internal/core"
	"github.com/Aiionteam/app.aiion.site/internal/models"
	"github.com/Aiionteam/app.aiion.site/internal/store"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog"
)

type DiaryService struct {
	store   *store.Store
	users   *UserService
	metrics core.Recorder
	logger  zerolog.Logger
}

func NewDiaryService(
	s *store.Store,
	users *UserService,
	m core.Recorder,
	logger zerolog.Logger,
) *DiaryService {
	return &DiaryService{
		store:   s,
		users:   users,
		metrics: m,
		logger:  logger.With().Str("component", "diary_service").Logger(),
	}
}

func (s *DiaryService) FindByID(ctx context.Context, id uint) *Result {
	if id == 0 {
		return resultError(http.StatusBadRequest, "id is required")
	}
	diary, err := s.store.GetDiaryByID(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return resultError(http.StatusNotFound, "diary not found")
		}
		s.metrics.RecordDatabaseQueryError("get_diary")
		return resultError(http.StatusInternalServerError, err.Error())
	}
	return resultOK("diary found", diary)
}

func (s *DiaryService) FindAll(ctx context.Context, params store.PaginationParams) *Result {
	diaries, page, err := s.store.ListDiaries(ctx, params)
	if err != nil {
		s.metrics.RecordDatabaseQueryError("list_diaries")
		return resultError(http.StatusInternalServerError, err.Error())
	}
	if !params.Paged() {
		return resultOK(fmt.Sprintf("%d diaries", len(diaries)), diaries)
	}
	return resultOK(fmt.Sprintf("%d diaries", len(diaries)), map[string]any{
		"items":      diaries,
		"pagination": page,
	})
}

// FindByUserID lists a user's diaries, newest date first.
func (s *DiaryService) FindByUserID(ctx context.Context, userID uint) *Result {
	if userID == 0 {
		return resultError(http.StatusBadRequest, "userId is required")
	}
	diaries, err := s.store.ListDiariesByUserID(ctx, userID)
	if err != nil {
		s.metrics.RecordDatabaseQueryError("list_diaries_by_user")
		return resultError(http.StatusInternalServerError, err.Error())
	}
	return resultOK(fmt.Sprintf("%d diaries", len(diaries)), diaries)
}

// checkOwner verifies that userID references an existing user.
func (s *DiaryService) checkOwner(ctx context.Context, userID uint) *Result {
	if userID == 0 {
		return resultError(http.StatusBadRequest, "userId is required")
	}
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return resultError(http.StatusBadRequest, fmt.Sprintf("user %d does not exist", userID))
		}
		return resultError(http.StatusInternalServerError, err.Error())
	}
	return nil
}

func (s *DiaryService) Save(ctx context.Context, candidate *models.Diary) *Result {
	if strings.TrimSpace(candidate.Title) == "" {
		return resultError(http.StatusBadRequest, "title is required")
	}
	if r := s.checkOwner(ctx, candidate.UserID); r != nil {
		return r
	}

	diary := &models.Diary{
		DiaryDate: candidate.DiaryDate,
		Title:     candidate.Title,
		Content:   candidate.Content,
		UserID:    candidate.UserID,
	}
	if diary.DiaryDate.IsZero() {
		diary.DiaryDate = models.Date{Time: time.Now().UTC().Truncate(24 * time.Hour)}
	}

	if err := s.store.CreateDiary(ctx, diary); err != nil {
		s.metrics.RecordDatabaseQueryError("create_diary")
		return resultError(http.StatusInternalServerError, err.Error())
	}
	s.logger.Debug().Uint("diary_id", diary.ID).Uint("user_id", diary.UserID).Msg("diary created")
	return resultOK(fmt.Sprintf("saved: %d", diary.ID), diary)
}

// Update merges the non-empty fields of patch into the stored diary.
func (s *DiaryService) Update(ctx context.Context, id uint, patch *models.Diary) *Result {
	if id == 0 {
		return resultError(http.StatusBadRequest, "id is required")
	}

	existing, err := s.store.GetDiaryByID(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return resultError(http.StatusNotFound, "diary to update not found")
		}
		return resultError(http.StatusInternalServerError, err.Error())
	}

	if patch.UserID != 0 && patch.UserID != existing.UserID {
		if r := s.checkOwner(ctx, patch.UserID); r != nil {
			return r
		}
	}

	p := *patch
	p.ID, p.CreatedAt, p.UpdatedAt = 0, time.Time{}, time.Time{}
	if err := copier.CopyWithOption(existing, &p, copier.Option{IgnoreEmpty: true}); err != nil {
		return resultError(http.StatusBadRequest, err.Error())
	}

	if err := s.store.UpdateDiary(ctx, existing); err != nil {
		s.metrics.RecordDatabaseQueryError("update_diary")
		return resultError(http.StatusInternalServerError, err.Error())
	}
	return resultOK(fmt.Sprintf("updated: %d", id), existing)
}

func (s *DiaryService) Delete(ctx context.Context, id uint) *Result {
	if id == 0 {
		return resultError(http.StatusBadRequest, "id is required")
	}
	if err := s.store.DeleteDiary(ctx, id); err != nil {
		if store.IsNotFound(err) {
			return resultError(http.StatusNotFound, "diary to delete not found")
		}
		s.metrics.RecordDatabaseQueryError("delete_diary")
		return resultError(http.StatusInternalServerError, err.Error())
	}
	return resultOK(fmt.Sprintf("deleted: %d", id), nil)
}

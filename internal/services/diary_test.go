package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Aiionteam/app.aiion.site/internal/metrics"
	"github.com/Aiionteam/app.aiion.site/internal/models"
	"github.com/Aiionteam/app.aiion.site/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiaryFixture(t *testing.T) (*DiaryService, *models.User) {
	t.Helper()
	users := newUserService(newTestStore(t))
	owner, err := users.UpsertOnLogin(context.Background(), candidate("owner@b.com"))
	require.NoError(t, err)
	return NewDiaryService(users.store, users, metrics.NewNoopMetrics(), zerolog.Nop()), owner
}

func TestDiaryService_SaveAndFind(t *testing.T) {
	svc, owner := newDiaryFixture(t)
	ctx := context.Background()

	date, err := models.ParseDate("2024-03-01")
	require.NoError(t, err)

	res := svc.Save(ctx, &models.Diary{Title: "day one", Content: "hello", UserID: owner.ID, DiaryDate: date})
	require.Equal(t, http.StatusOK, res.Code, res.Message)
	saved := res.Data.(*models.Diary)
	assert.NotZero(t, saved.ID)

	res = svc.FindByID(ctx, saved.ID)
	require.Equal(t, http.StatusOK, res.Code)
	got := res.Data.(*models.Diary)
	assert.Equal(t, "day one", got.Title)
	assert.Equal(t, "2024-03-01", got.DiaryDate.String())

	res = svc.FindByUserID(ctx, owner.ID)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "1 diaries", res.Message)

	res = svc.FindAll(ctx, store.PaginationParams{})
	assert.Equal(t, "1 diaries", res.Message)

	assert.Equal(t, http.StatusNotFound, svc.FindByID(ctx, 999).Code)
}

func TestDiaryService_SaveDefaultsDate(t *testing.T) {
	svc, owner := newDiaryFixture(t)

	res := svc.Save(context.Background(), &models.Diary{Title: "today", UserID: owner.ID})
	require.Equal(t, http.StatusOK, res.Code, res.Message)
	d := res.Data.(*models.Diary)
	assert.Equal(t, time.Now().UTC().Format(models.DateLayout), d.DiaryDate.String())
}

func TestDiaryService_SaveValidation(t *testing.T) {
	svc, owner := newDiaryFixture(t)
	ctx := context.Background()

	res := svc.Save(ctx, &models.Diary{UserID: owner.ID})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "title is required", res.Message)

	res = svc.Save(ctx, &models.Diary{Title: "x", UserID: 4242})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "user 4242 does not exist", res.Message)

	res = svc.Save(ctx, &models.Diary{Title: "x"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestDiaryService_UpdateAndDelete(t *testing.T) {
	svc, owner := newDiaryFixture(t)
	ctx := context.Background()

	res := svc.Save(ctx, &models.Diary{Title: "draft", Content: "body", UserID: owner.ID})
	require.Equal(t, http.StatusOK, res.Code)
	id := res.Data.(*models.Diary).ID

	res = svc.Update(ctx, id, &models.Diary{Title: "final"})
	require.Equal(t, http.StatusOK, res.Code, res.Message)

	got := svc.FindByID(ctx, id).Data.(*models.Diary)
	assert.Equal(t, "final", got.Title)
	assert.Equal(t, "body", got.Content)
	assert.Equal(t, owner.ID, got.UserID)

	res = svc.Update(ctx, id, &models.Diary{UserID: 999})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	assert.Equal(t, http.StatusNotFound, svc.Update(ctx, 999, &models.Diary{Title: "x"}).Code)

	assert.Equal(t, http.StatusOK, svc.Delete(ctx, id).Code)
	assert.Equal(t, http.StatusNotFound, svc.Delete(ctx, id).Code)
}

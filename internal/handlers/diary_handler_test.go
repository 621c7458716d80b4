package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/Aiionteam/app.aiion.site/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiaryHandler_CRUD(t *testing.T) {
	e := newTestEnv(t)
	owner, err := e.users.UpsertOnLogin(context.Background(),
		&models.User{Name: "A", Email: "a@b.com", Provider: "google"})
	require.NoError(t, err)

	w := e.do(t, http.MethodPost, "/api/diaries", map[string]any{
		"diaryDate": "2024-05-01",
		"title":     "spring",
		"content":   "flowers",
		"userId":    owner.ID,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]any)
	id := uint(data["id"].(float64))
	assert.Equal(t, "2024-05-01", data["diaryDate"])

	w = e.do(t, http.MethodGet, fmt.Sprintf("/api/diaries/user/%d", owner.ID), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1 diaries", decode(t, w)["message"])

	w = e.do(t, http.MethodPut, fmt.Sprintf("/api/diaries/%d", id), map[string]any{"content": "rain"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "rain", updated["content"])
	assert.Equal(t, "spring", updated["title"])

	assert.Equal(t, http.StatusOK, e.do(t, http.MethodDelete, fmt.Sprintf("/api/diaries/%d", id), nil, nil).Code)
	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodGet, fmt.Sprintf("/api/diaries/%d", id), nil, nil).Code)
}

func TestDiaryHandler_Validation(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodPost, "/api/diaries", map[string]any{
		"diaryDate": "01/05/2024",
		"title":     "bad date",
		"userId":    1,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(t, http.MethodPost, "/api/diaries", map[string]any{
		"diaryDate": "2024-05-01",
		"title":     "orphan",
		"userId":    99,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "user 99 does not exist", decode(t, w)["message"])

	assert.Equal(t, http.StatusBadRequest, e.do(t, http.MethodGet, "/api/diaries/user/x", nil, nil).Code)
}

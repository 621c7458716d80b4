package directory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Aiionteam/app.aiion.site/internal/client"
	"github.com/Aiionteam/app.aiion.site/internal/models"
	"github.com/Aiionteam/app.aiion.site/internal/services"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserService is a minimal user-service. saveFails makes POST /api/users
// answer 409 after inserting the row, as a concurrent writer would.
type fakeUserService struct {
	mu        sync.Mutex
	users     map[string]models.User
	nextID    uint
	saveFails    bool
	requests     []string
	contentTypes []string
}

func (f *fakeUserService) write(w http.ResponseWriter, code int, msg string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{"code": code, "message": msg, "data": data})
}

func (f *fakeUserService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, r.URL.Path)
	f.contentTypes = append(f.contentTypes, r.Header.Get("Content-Type"))

	var u models.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		f.write(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	key := u.Email + "|" + u.Provider

	switch r.URL.Path {
	case FindPath:
		if found, ok := f.users[key]; ok {
			f.write(w, http.StatusOK, "user found", found)
			return
		}
		f.write(w, http.StatusNotFound, "user not found", nil)
	case SavePath:
		f.nextID++
		u.ID = f.nextID
		f.users[key] = u
		if f.saveFails {
			f.write(w, http.StatusConflict, "user already exists, email: "+u.Email, nil)
			return
		}
		f.write(w, http.StatusOK, "saved", u)
	default:
		http.NotFound(w, r)
	}
}

func newRemote(t *testing.T, fake *fakeUserService) *RemoteDirectory {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	rc, err := client.NewRetryClient(client.RetryConfig{AuthMode: "none", Timeout: 5 * time.Second})
	require.NoError(t, err)
	return NewRemoteDirectory(srv.URL+"/", rc, zerolog.Nop())
}

func TestRemoteDirectory_CreatesOnFirstLogin(t *testing.T) {
	fake := &fakeUserService{users: map[string]models.User{}}
	d := newRemote(t, fake)

	u, err := d.UpsertOnLogin(context.Background(), &models.User{Name: "A", Email: "a@b.com", Provider: "google"})
	require.NoError(t, err)
	assert.Equal(t, uint(1), u.ID)
	assert.Equal(t, []string{FindPath, SavePath}, fake.requests)
	for _, ct := range fake.contentTypes {
		assert.Contains(t, ct, "application/json")
	}

	again, err := d.UpsertOnLogin(context.Background(), &models.User{Name: "A", Email: "a@b.com", Provider: "google"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID)
}

func TestRemoteDirectory_RecoversAfterRejectedSave(t *testing.T) {
	fake := &fakeUserService{users: map[string]models.User{}, saveFails: true}
	d := newRemote(t, fake)

	u, err := d.UpsertOnLogin(context.Background(), &models.User{Name: "A", Email: "a@b.com", Provider: "google"})
	require.NoError(t, err)
	assert.Equal(t, uint(1), u.ID)
	assert.Equal(t, []string{FindPath, SavePath, FindPath}, fake.requests)
}

func TestRemoteDirectory_ConflictWhenReReadMisses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == SavePath {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"code":409,"message":"user already exists, email: a@b.com"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":404,"message":"user not found"}`))
	}))
	defer srv.Close()

	rc, err := client.NewRetryClient(client.RetryConfig{AuthMode: "none", Timeout: 5 * time.Second})
	require.NoError(t, err)
	d := NewRemoteDirectory(srv.URL, rc, zerolog.Nop())

	_, err = d.UpsertOnLogin(context.Background(), &models.User{Email: "a@b.com", Provider: "google"})
	require.ErrorIs(t, err, services.ErrConflict)
	assert.Equal(t, "user already exists, email: a@b.com", err.Error())
}

func TestRemoteDirectory_BlankInputSendsNothing(t *testing.T) {
	fake := &fakeUserService{users: map[string]models.User{}}
	d := newRemote(t, fake)

	_, err := d.FindByEmailAndProvider(context.Background(), " ", "google")
	assert.ErrorIs(t, err, services.ErrInvalidInput)
	_, err = d.UpsertOnLogin(context.Background(), &models.User{Email: "a@b.com"})
	assert.ErrorIs(t, err, services.ErrInvalidInput)
	assert.Empty(t, fake.requests)
}

func TestRemoteDirectory_InvalidResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>proxy login</html>"))
	}))
	defer srv.Close()

	rc, err := client.NewRetryClient(client.RetryConfig{AuthMode: "none", Timeout: 5 * time.Second})
	require.NoError(t, err)
	d := NewRemoteDirectory(srv.URL, rc, zerolog.Nop())

	_, err = d.FindByEmailAndProvider(context.Background(), "a@b.com", "google")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

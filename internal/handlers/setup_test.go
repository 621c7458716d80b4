package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Aiionteam/app.aiion.site/internal/auth"
	"github.com/Aiionteam/app.aiion.site/internal/cache"
	"github.com/Aiionteam/app.aiion.site/internal/config"
	"github.com/Aiionteam/app.aiion.site/internal/metrics"
	"github.com/Aiionteam/app.aiion.site/internal/middleware"
	"github.com/Aiionteam/app.aiion.site/internal/mocks"
	"github.com/Aiionteam/app.aiion.site/internal/models"
	"github.com/Aiionteam/app.aiion.site/internal/services"
	"github.com/Aiionteam/app.aiion.site/internal/store"
	"github.com/Aiionteam/app.aiion.site/internal/token"
	"github.com/Aiionteam/app.aiion.site/internal/tokenstore"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testFrontendURL = "http://localhost:3000"

type testEnv struct {
	router   *gin.Engine
	idp      *mocks.MockIdentityProvider
	users    *services.UserService
	sessions *services.SessionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s, err := store.New(context.Background(), "sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })

	m := metrics.NewNoopMetrics()
	log := zerolog.Nop()
	ts := tokenstore.NewMemoryStore()
	tokens := token.NewLocalTokenProvider(&config.Config{
		JWTSecret:              "handlers-test-secret",
		JWTIssuer:              "aiion-test",
		JWTExpiration:          time.Hour,
		RefreshTokenExpiration: 30 * 24 * time.Hour,
	})

	idp := mocks.NewMockIdentityProvider(gomock.NewController(t))
	idp.EXPECT().AuthCodeURL(gomock.Any()).
		DoAndReturn(func(state string) string {
			return "https://accounts.example.com/auth?state=" + state
		}).AnyTimes()

	users := services.NewUserService(s, cache.NewMemoryCache[models.User](), time.Minute, m, log)
	diaries := services.NewDiaryService(s, users, m, log)
	sess := services.NewSessionService(tokens, ts, time.Hour, 30*24*time.Hour, m, log)
	handshake := services.NewHandshakeService(ts, 10*time.Minute, m)
	login := services.NewLoginService(auth.Registry{"google": idp}, users, sess, testFrontendURL, m, log)

	oauth := NewOAuthHandler(login, sess, handshake, log)
	userH := NewUserHandler(users)
	diaryH := NewDiaryHandler(diaries)

	r := gin.New()
	r.Use(sessions.Sessions("aiion_session", cookie.NewStore([]byte("test-secret"))))

	a := r.Group("/api/auth/:provider")
	a.GET("/auth-url", oauth.AuthURL)
	a.GET("/login", oauth.Login)
	a.GET("/callback", oauth.Callback)
	j := a.Group("", oauth.RequireProvider)
	j.POST("/authorization-code", oauth.RegisterAuthorizationCode)
	j.POST("/token", oauth.Token)
	j.POST("/refresh", oauth.Refresh)
	j.POST("/logout", middleware.RequireAccessToken(sess), oauth.Logout)
	j.GET("/user", middleware.RequireAccessToken(sess), oauth.User)

	u := r.Group("/api/users")
	u.GET("", userH.FindAll)
	u.GET("/:id", userH.FindByID)
	u.POST("", userH.Save)
	u.POST("/batch", userH.SaveAll)
	u.POST("/find-by-email-provider", userH.FindByEmailAndProvider)
	u.PUT("/:id", userH.Update)
	u.DELETE("/:id", userH.Delete)

	d := r.Group("/api/diaries")
	d.GET("", diaryH.FindAll)
	d.GET("/:id", diaryH.FindByID)
	d.GET("/user/:userId", diaryH.FindByUserID)
	d.POST("", diaryH.Save)
	d.PUT("/:id", diaryH.Update)
	d.DELETE("/:id", diaryH.Delete)

	return &testEnv{router: r, idp: idp, users: users, sessions: sess}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req, err := http.NewRequestWithContext(context.Background(), method, path, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func bearer(tok string) http.Header {
	return http.Header{"Authorization": []string{"Bearer " + tok}}
}

func withCookies(w *httptest.ResponseRecorder) http.Header {
	h := http.Header{}
	for _, c := range (&http.Response{Header: w.Header()}).Cookies() {
		h.Add("Cookie", c.Name+"="+c.Value)
	}
	return h
}

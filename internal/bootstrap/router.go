package bootstrap

import (
	"context"
	"net/http"

	_ "github.com/Aiionteam/app.aiion.site/api" // swagger docs
	"github.com/Aiionteam/app.aiion.site/internal/config"
	"github.com/Aiionteam/app.aiion.site/internal/core"
	"github.com/Aiionteam/app.aiion.site/internal/logging"
	"github.com/Aiionteam/app.aiion.site/internal/metrics"
	"github.com/Aiionteam/app.aiion.site/internal/middleware"
	"github.com/Aiionteam/app.aiion.site/internal/util"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const sessionCookieName = "aiion_session"

// healthChecker is implemented by the database and the token store.
type healthChecker interface {
	Health(ctx context.Context) error
}

// setupRouter configures the Gin router with all routes and middleware
func setupRouter(
	cfg *config.Config,
	db healthChecker,
	tokenStore healthChecker,
	h handlerSet,
	tokens middleware.TokenValidator,
	recorder core.Recorder,
	redisClient *redis.Client,
	logger zerolog.Logger,
) (*gin.Engine, error) {
	setupGinMode(cfg, logger)
	r := gin.New()

	r.Use(metrics.HTTPMetricsMiddleware(recorder))
	r.Use(logging.GinLogger(logger), gin.Recovery())
	r.Use(util.IPMiddleware())

	setupSessionMiddleware(r, cfg)

	r.GET("/health", createHealthCheckHandler(db, tokenStore))
	setupMetricsEndpoint(r, cfg, logger)

	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		logger.Info().Msg("swagger UI enabled at /swagger/index.html")
	}

	rateLimiters, err := setupRateLimiting(cfg, redisClient, logger)
	if err != nil {
		return nil, err
	}

	usersGuard := middleware.ServiceAuth(middleware.ServiceAuthConfig{
		Mode:   cfg.UserAPIAuthMode,
		Secret: cfg.UserAPIAuthSecret,
		Header: cfg.UserAPIAuthHeader,
		MaxAge: cfg.UserAPIAuthMaxAge,
		Logger: logger,
	})
	if cfg.UserAPIAuthMode == config.ServiceAuthSimple || cfg.UserAPIAuthMode == config.ServiceAuthHMAC {
		logger.Info().Str("mode", cfg.UserAPIAuthMode).Msg("/api/users requires service authentication")
	}

	setupAllRoutes(r, h, tokens, rateLimiters, usersGuard)

	logger.Info().
		Str("addr", cfg.ServerAddr).
		Str("base_url", cfg.BaseURL).
		Str("frontend_url", cfg.FrontendURL).
		Msg("aiion server starting")
	return r, nil
}

// setupSessionMiddleware configures the cookie session holding the pending
// OAuth state between login and callback.
func setupSessionMiddleware(r *gin.Engine, cfg *config.Config) {
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionCookieName, sessionStore))
}

// setupMetricsEndpoint configures the Prometheus metrics endpoint
func setupMetricsEndpoint(r *gin.Engine, cfg *config.Config, logger zerolog.Logger) {
	switch {
	case !cfg.MetricsEnabled:
		logger.Info().Msg("prometheus metrics disabled")
	case cfg.MetricsToken != "":
		logger.Info().Msg("prometheus metrics enabled at /metrics with Bearer token authentication")
		r.GET(
			"/metrics",
			middleware.MetricsAuthMiddleware(cfg.MetricsToken),
			gin.WrapH(promhttp.Handler()),
		)
	default:
		logger.Info().Msg("prometheus metrics enabled at /metrics (no authentication)")
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
}

// setupAllRoutes configures all application routes
func setupAllRoutes(
	r *gin.Engine,
	h handlerSet,
	tokens middleware.TokenValidator,
	rl rateLimitMiddlewares,
	usersGuard gin.HandlerFunc,
) {
	requireToken := middleware.RequireAccessToken(tokens)

	// Login flow: browser redirects plus the frontend's JSON calls
	a := r.Group("/api/auth/:provider")
	{
		a.GET("/auth-url", rl.login, h.oauth.AuthURL)
		a.GET("/login", rl.login, h.oauth.Login)
		a.GET("/callback", rl.callback, h.oauth.Callback)

		j := a.Group("", h.oauth.RequireProvider)
		j.POST("/authorization-code", rl.token, h.oauth.RegisterAuthorizationCode)
		j.POST("/token", rl.token, h.oauth.Token)
		j.POST("/refresh", rl.token, h.oauth.Refresh)
		j.POST("/logout", requireToken, h.oauth.Logout)
		j.GET("/user", requireToken, h.oauth.User)
	}

	users := r.Group("/api/users", rl.api, usersGuard)
	{
		users.GET("", h.user.FindAll)
		users.GET("/:id", h.user.FindByID)
		users.POST("", h.user.Save)
		users.POST("/batch", h.user.SaveAll)
		users.POST("/find-by-email-provider", h.user.FindByEmailAndProvider)
		users.PUT("/:id", h.user.Update)
		users.DELETE("/:id", h.user.Delete)
	}

	diaries := r.Group("/api/diaries", rl.api)
	{
		diaries.GET("", h.diary.FindAll)
		diaries.GET("/:id", h.diary.FindByID)
		diaries.GET("/user/:userId", h.diary.FindByUserID)
		diaries.POST("", h.diary.Save)
		diaries.PUT("/:id", h.diary.Update)
		diaries.DELETE("/:id", h.diary.Delete)
	}
}

// createHealthCheckHandler reports database and token store reachability.
//
//	@Summary		Health check
//	@Description	Check database and token store connectivity
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	object{status=string,database=string,token_store=string}	"Healthy"
//	@Failure		503	{object}	object{status=string,database=string,token_store=string}	"Unhealthy"
//	@Router			/health [get]
func createHealthCheckHandler(db, tokenStore healthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		dbErr := db.Health(ctx)
		tsErr := tokenStore.Health(ctx)

		status := http.StatusOK
		body := gin.H{
			"status":      "healthy",
			"database":    "connected",
			"token_store": "connected",
		}
		if dbErr != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "unhealthy"
			body["database"] = "disconnected"
		}
		if tsErr != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "unhealthy"
			body["token_store"] = "disconnected"
		}
		c.JSON(status, body)
	}
}

// setupGinMode sets Gin mode based on environment configuration
func setupGinMode(cfg *config.Config, logger zerolog.Logger) {
	mode := ginModeMap[cfg.IsProduction()]
	gin.SetMode(mode)
	logger.Info().Str("mode", mode).Msg("gin mode configured")
}

var ginModeMap = map[bool]string{
	true:  gin.ReleaseMode,
	false: gin.DebugMode,
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Token store backends
const (
	TokenStoreMemory = "memory"
	TokenStoreRedis  = "redis"
)

// User directory modes
const (
	UserDirectoryModeLocal  = "local"
	UserDirectoryModeRemote = "remote"
)

// Rate limit store backends
const (
	RateLimitStoreMemory = "memory"
	RateLimitStoreRedis  = "redis"
)

// Cache backends shared by the user cache and the metrics cache
const (
	CacheTypeMemory     = "memory"
	CacheTypeRedis      = "redis"
	CacheTypeRedisAside = "redis-aside"
)

// Service-to-service authentication modes, shared by the remote directory
// client and the /api/users guard
const (
	ServiceAuthNone   = "none"
	ServiceAuthSimple = "simple"
	ServiceAuthHMAC   = "hmac"
)

// Log output formats
const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

type Config struct {
	// Server settings
	ServerAddr  string
	BaseURL     string
	FrontendURL string // Where login outcomes are redirected to
	Environment string // "development" or "production"

	// Logging
	LogLevel  string
	LogFormat string

	// Database
	DatabaseDriver string // "sqlite" or "postgres"
	DatabaseDSN    string

	// Credentials
	JWTSecret              string
	JWTIssuer              string
	JWTExpiration          time.Duration // Access token lifetime (default 3600s)
	RefreshTokenExpiration time.Duration // Refresh token lifetime (default 2592000s)
	AuthCodeTTL            time.Duration // Handshake code -> state lifetime

	// Session (OAuth state cookie)
	SessionSecret string
	SessionMaxAge int // seconds

	// Google OAuth
	GoogleOAuthEnabled     bool
	GoogleClientID         string
	GoogleClientSecret     string
	GoogleOAuthRedirectURL string
	GoogleOAuthScopes      []string
	GoogleIssuerURL        string
	GoogleAuthURL          string
	GoogleTokenURL         string
	GoogleUserInfoURL      string

	// GitHub OAuth
	GitHubOAuthEnabled     bool
	GitHubClientID         string
	GitHubClientSecret     string
	GitHubOAuthRedirectURL string
	GitHubOAuthScopes      []string
	GitHubAPIURL           string

	// OAuth HTTP client
	OAuthTimeout            time.Duration
	OAuthInsecureSkipVerify bool

	// Token store
	TokenStoreType string // "memory" or "redis"

	// Redis (token store, rate limiting, caches)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// User cache
	UserCacheType        string
	UserCacheTTL         time.Duration
	UserCacheClientTTL   time.Duration
	UserCacheSizePerConn int // MB

	// User directory
	UserDirectoryMode             string // "local" or "remote"
	UserServiceURL                string
	UserServiceTimeout            time.Duration
	UserServiceInsecureSkipVerify bool
	UserServiceAuthMode           string // "none", "simple" or "hmac"
	UserServiceAuthSecret         string
	UserServiceAuthHeader         string
	UserServiceMaxRetries         int
	UserServiceRetryDelay         time.Duration
	UserServiceMaxRetryDelay      time.Duration

	// Inbound guard on /api/users, the counterpart of UserServiceAuth*
	UserAPIAuthMode   string // "none", "simple" or "hmac"
	UserAPIAuthSecret string
	UserAPIAuthHeader string
	UserAPIAuthMaxAge time.Duration // hmac timestamp tolerance

	// Rate limiting
	EnableRateLimit          bool
	RateLimitStore           string
	LoginRateLimit           int // requests per minute per IP
	CallbackRateLimit        int
	TokenRateLimit           int
	APIRateLimit             int
	RateLimitCleanupInterval time.Duration

	// Metrics
	MetricsEnabled             bool
	MetricsToken               string
	MetricsGaugeUpdateEnabled  bool
	MetricsGaugeUpdateInterval time.Duration
	MetricsCacheType           string
	MetricsCacheClientTTL      time.Duration
	MetricsCacheSizePerConn    int

	// Timeouts
	DBInitTimeout         time.Duration
	DBCloseTimeout        time.Duration
	RedisConnTimeout      time.Duration
	RedisCloseTimeout     time.Duration
	CacheInitTimeout      time.Duration
	CacheCloseTimeout     time.Duration
	ServerShutdownTimeout time.Duration
}

func Load() *Config {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	driver := getEnv("DATABASE_DRIVER", "sqlite")
	var dsn string
	if driver == "sqlite" {
		dsn = getEnv("DATABASE_DSN", getEnv("DATABASE_PATH", "aiion.db"))
	} else {
		dsn = getEnv("DATABASE_DSN", "")
	}

	return &Config{
		ServerAddr:  getEnv("SERVER_ADDR", ":8080"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		Environment: getEnv("ENVIRONMENT", "development"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", LogFormatJSON),

		DatabaseDriver: driver,
		DatabaseDSN:    dsn,

		JWTSecret:              getEnv("JWT_SECRET", "your-256-bit-secret-change-in-production"),
		JWTIssuer:              getEnv("JWT_ISSUER", "aiion-auth"),
		JWTExpiration:          getEnvDuration("JWT_EXPIRATION", 3600*time.Second),
		RefreshTokenExpiration: getEnvDuration("REFRESH_TOKEN_EXPIRATION", 2592000*time.Second),
		AuthCodeTTL:            getEnvDuration("AUTH_CODE_TTL", 10*time.Minute),

		SessionSecret: getEnv("SESSION_SECRET", "session-secret-change-in-production"),
		SessionMaxAge: getEnvInt("SESSION_MAX_AGE", 600),

		GoogleOAuthEnabled:     getEnvBool("GOOGLE_OAUTH_ENABLED", true),
		GoogleClientID:         getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:     getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleOAuthRedirectURL: getEnv("GOOGLE_REDIRECT_URI", ""),
		GoogleOAuthScopes: getEnvSlice(
			"GOOGLE_SCOPES",
			[]string{"openid", "profile", "email"},
		),
		GoogleIssuerURL:   getEnv("GOOGLE_ISSUER_URL", "https://accounts.google.com"),
		GoogleAuthURL:     getEnv("GOOGLE_AUTH_URL", "https://accounts.google.com/o/oauth2/v2/auth"),
		GoogleTokenURL:    getEnv("GOOGLE_TOKEN_URL", "https://oauth2.googleapis.com/token"),
		GoogleUserInfoURL: getEnv("GOOGLE_USERINFO_URL", "https://openidconnect.googleapis.com/v1/userinfo"),

		GitHubOAuthEnabled:     getEnvBool("GITHUB_OAUTH_ENABLED", false),
		GitHubClientID:         getEnv("GITHUB_CLIENT_ID", ""),
		GitHubClientSecret:     getEnv("GITHUB_CLIENT_SECRET", ""),
		GitHubOAuthRedirectURL: getEnv("GITHUB_REDIRECT_URL", ""),
		GitHubOAuthScopes:      getEnvSlice("GITHUB_SCOPES", []string{"user:email"}),
		GitHubAPIURL:           strings.TrimRight(getEnv("GITHUB_API_URL", "https://api.github.com"), "/"),

		OAuthTimeout:            getEnvDuration("OAUTH_TIMEOUT", 15*time.Second),
		OAuthInsecureSkipVerify: getEnvBool("OAUTH_INSECURE_SKIP_VERIFY", false),

		TokenStoreType: getEnv("TOKEN_STORE", TokenStoreRedis),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		UserCacheType:        getEnv("USER_CACHE_TYPE", CacheTypeMemory),
		UserCacheTTL:         getEnvDuration("USER_CACHE_TTL", 5*time.Minute),
		UserCacheClientTTL:   getEnvDuration("USER_CACHE_CLIENT_TTL", 30*time.Second),
		UserCacheSizePerConn: getEnvInt("USER_CACHE_SIZE_PER_CONN", 32),

		UserDirectoryMode:             getEnv("USER_DIRECTORY_MODE", UserDirectoryModeLocal),
		UserServiceURL:                strings.TrimRight(getEnv("USER_SERVICE_URL", ""), "/"),
		UserServiceTimeout:            getEnvDuration("USER_SERVICE_TIMEOUT", 10*time.Second),
		UserServiceInsecureSkipVerify: getEnvBool("USER_SERVICE_INSECURE_SKIP_VERIFY", false),
		UserServiceAuthMode:           getEnv("USER_SERVICE_AUTH_MODE", "none"),
		UserServiceAuthSecret:         getEnv("USER_SERVICE_AUTH_SECRET", ""),
		UserServiceAuthHeader:         getEnv("USER_SERVICE_AUTH_HEADER", "X-API-Secret"),
		UserServiceMaxRetries:         getEnvInt("USER_SERVICE_MAX_RETRIES", 3),
		UserServiceRetryDelay:         getEnvDuration("USER_SERVICE_RETRY_DELAY", 1*time.Second),
		UserServiceMaxRetryDelay:      getEnvDuration("USER_SERVICE_MAX_RETRY_DELAY", 10*time.Second),

		UserAPIAuthMode:   getEnv("USER_API_AUTH_MODE", ServiceAuthNone),
		UserAPIAuthSecret: getEnv("USER_API_AUTH_SECRET", ""),
		UserAPIAuthHeader: getEnv("USER_API_AUTH_HEADER", "X-API-Secret"),
		UserAPIAuthMaxAge: getEnvDuration("USER_API_AUTH_MAX_AGE", 5*time.Minute),

		EnableRateLimit:          getEnvBool("ENABLE_RATE_LIMIT", true),
		RateLimitStore:           getEnv("RATE_LIMIT_STORE", RateLimitStoreMemory),
		LoginRateLimit:           getEnvInt("LOGIN_RATE_LIMIT", 20),
		CallbackRateLimit:        getEnvInt("CALLBACK_RATE_LIMIT", 20),
		TokenRateLimit:           getEnvInt("TOKEN_RATE_LIMIT", 30),
		APIRateLimit:             getEnvInt("API_RATE_LIMIT", 120),
		RateLimitCleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),

		MetricsEnabled:             getEnvBool("METRICS_ENABLED", false),
		MetricsToken:               getEnv("METRICS_TOKEN", ""),
		MetricsGaugeUpdateEnabled:  getEnvBool("METRICS_GAUGE_UPDATE_ENABLED", true),
		MetricsGaugeUpdateInterval: getEnvDuration("METRICS_GAUGE_UPDATE_INTERVAL", 5*time.Minute),
		MetricsCacheType:           getEnv("METRICS_CACHE_TYPE", CacheTypeMemory),
		MetricsCacheClientTTL:      getEnvDuration("METRICS_CACHE_CLIENT_TTL", 10*time.Second),
		MetricsCacheSizePerConn:    getEnvInt("METRICS_CACHE_SIZE_PER_CONN", 32),

		DBInitTimeout:         getEnvDuration("DB_INIT_TIMEOUT", 30*time.Second),
		DBCloseTimeout:        getEnvDuration("DB_CLOSE_TIMEOUT", 5*time.Second),
		RedisConnTimeout:      getEnvDuration("REDIS_CONN_TIMEOUT", 5*time.Second),
		RedisCloseTimeout:     getEnvDuration("REDIS_CLOSE_TIMEOUT", 5*time.Second),
		CacheInitTimeout:      getEnvDuration("CACHE_INIT_TIMEOUT", 5*time.Second),
		CacheCloseTimeout:     getEnvDuration("CACHE_CLOSE_TIMEOUT", 5*time.Second),
		ServerShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 5*time.Second),
	}
}

// IsProduction reports whether secure-cookie and similar hardening applies.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// NeedsRedis reports whether any configured backend requires REDIS_ADDR.
func (c *Config) NeedsRedis() bool {
	return c.TokenStoreType == TokenStoreRedis ||
		(c.EnableRateLimit && c.RateLimitStore == RateLimitStoreRedis) ||
		c.UserCacheType != CacheTypeMemory ||
		(c.MetricsEnabled && c.MetricsCacheType != CacheTypeMemory)
}

// Validate checks enumerated settings and cross-field requirements.
func (c *Config) Validate() error {
	switch c.TokenStoreType {
	case TokenStoreMemory:
	case TokenStoreRedis:
		if c.RedisAddr == "" {
			return errors.New(`TOKEN_STORE="redis" requires REDIS_ADDR`)
		}
	default:
		return fmt.Errorf(
			"invalid TOKEN_STORE value: %q (must be %q or %q)",
			c.TokenStoreType, TokenStoreMemory, TokenStoreRedis,
		)
	}

	if c.JWTExpiration <= 0 {
		return fmt.Errorf("JWT_EXPIRATION must be positive, got %s", c.JWTExpiration)
	}
	if c.RefreshTokenExpiration <= 0 {
		return fmt.Errorf(
			"REFRESH_TOKEN_EXPIRATION must be positive, got %s",
			c.RefreshTokenExpiration,
		)
	}
	if c.AuthCodeTTL <= 0 {
		return fmt.Errorf("AUTH_CODE_TTL must be positive, got %s", c.AuthCodeTTL)
	}

	u, err := url.Parse(c.FrontendURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid FRONTEND_URL value: %q", c.FrontendURL)
	}

	switch c.UserDirectoryMode {
	case UserDirectoryModeLocal:
	case UserDirectoryModeRemote:
		if c.UserServiceURL == "" {
			return errors.New(`USER_DIRECTORY_MODE="remote" requires USER_SERVICE_URL`)
		}
	default:
		return fmt.Errorf(
			"invalid USER_DIRECTORY_MODE value: %q (must be %q or %q)",
			c.UserDirectoryMode, UserDirectoryModeLocal, UserDirectoryModeRemote,
		)
	}

	switch c.UserAPIAuthMode {
	case "", ServiceAuthNone:
	case ServiceAuthSimple, ServiceAuthHMAC:
		if c.UserAPIAuthSecret == "" {
			return fmt.Errorf("USER_API_AUTH_MODE=%q requires USER_API_AUTH_SECRET", c.UserAPIAuthMode)
		}
	default:
		return fmt.Errorf(
			"invalid USER_API_AUTH_MODE value: %q (must be %q, %q or %q)",
			c.UserAPIAuthMode, ServiceAuthNone, ServiceAuthSimple, ServiceAuthHMAC,
		)
	}

	if c.EnableRateLimit {
		if c.RateLimitStore != RateLimitStoreMemory && c.RateLimitStore != RateLimitStoreRedis {
			return fmt.Errorf(
				"invalid RATE_LIMIT_STORE value: %q (must be %q or %q)",
				c.RateLimitStore, RateLimitStoreMemory, RateLimitStoreRedis,
			)
		}
		if c.RateLimitStore == RateLimitStoreRedis && c.RedisAddr == "" {
			return errors.New(`RATE_LIMIT_STORE="redis" requires REDIS_ADDR`)
		}
	}

	if err := c.validateCacheType("USER_CACHE_TYPE", c.UserCacheType); err != nil {
		return err
	}
	if c.UserCacheTTL <= 0 {
		return fmt.Errorf("USER_CACHE_TTL must be positive, got %s", c.UserCacheTTL)
	}

	if c.MetricsEnabled {
		if err := c.validateCacheType("METRICS_CACHE_TYPE", c.MetricsCacheType); err != nil {
			return err
		}
	}

	if c.LogFormat != LogFormatJSON && c.LogFormat != LogFormatConsole {
		return fmt.Errorf(
			"invalid LOG_FORMAT value: %q (must be %q or %q)",
			c.LogFormat, LogFormatJSON, LogFormatConsole,
		)
	}

	return nil
}

func (c *Config) validateCacheType(key, value string) error {
	switch value {
	case CacheTypeMemory:
		return nil
	case CacheTypeRedis, CacheTypeRedisAside:
		if c.RedisAddr == "" {
			return fmt.Errorf("%s=%q requires REDIS_ADDR", key, value)
		}
		return nil
	default:
		return fmt.Errorf(
			"invalid %s value: %q (must be %q, %q or %q)",
			key, value, CacheTypeMemory, CacheTypeRedis, CacheTypeRedisAside,
		)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var i int
		if _, err := fmt.Sscanf(value, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("90s") or a bare number of seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	var secs int64
	if _, err := fmt.Sscanf(value, "%d", &secs); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := []string{}
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
		if len(parts) > 0 {
			return parts
		}
	}
	return defaultValue
}

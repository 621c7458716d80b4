package middleware

import (
	"net/http"
	"time"

	"github.com/Aiionteam/app.aiion.site/internal/config"
	"github.com/Aiionteam/app.aiion.site/internal/util"

	httpclient "github.com/appleboy/go-httpclient"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ServiceAuthConfig mirrors the client side in client.RetryConfig.
type ServiceAuthConfig struct {
	Mode   string // none, simple or hmac
	Secret string
	Header string        // simple mode header
	MaxAge time.Duration // hmac timestamp tolerance
	Logger zerolog.Logger
}

// ServiceAuth verifies requests signed by another instance's remote
// directory client. Mode none (or empty) lets every request through.
func ServiceAuth(cfg ServiceAuthConfig) gin.HandlerFunc {
	if cfg.Mode != config.ServiceAuthSimple && cfg.Mode != config.ServiceAuthHMAC {
		return func(c *gin.Context) { c.Next() }
	}

	verifier := httpclient.NewAuthConfig(cfg.Mode, cfg.Secret)
	if cfg.Header != "" {
		verifier.HeaderName = cfg.Header
	}
	return func(c *gin.Context) {
		if err := verifier.Verify(c.Request, httpclient.WithVerifyMaxAge(cfg.MaxAge)); err != nil {
			rejectService(c, cfg.Logger, err.Error())
			return
		}
		c.Next()
	}
}

func rejectService(c *gin.Context, logger zerolog.Logger, reason string) {
	logger.Warn().
		Str("ip", util.ClientIP(c)).
		Str("path", c.Request.URL.Path).
		Str("reason", reason).
		Msg("service authentication failed")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":    http.StatusUnauthorized,
		"message": "service authentication required",
	})
}

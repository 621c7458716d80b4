package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Aiionteam/app.aiion.site/internal/core"

	"github.com/gin-gonic/gin"
)

// TokenValidator checks an application access token for a provider.
type TokenValidator interface {
	Validate(ctx context.Context, provider, accessToken string) (*core.TokenValidationResult, error)
}

// BearerToken returns the token of an "Authorization: Bearer <token>" header.
func BearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	tok := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return tok, tok != ""
}

// RequireAccessToken accepts only requests carrying a current access token
// issued for the :provider path parameter. The token and its claims are
// stored on the context for the handler.
func RequireAccessToken(v TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, ok := BearerToken(c)
		if !ok {
			c.Header("WWW-Authenticate", `Bearer realm="aiion"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "missing access token",
			})
			return
		}

		result, err := v.Validate(c.Request.Context(), c.Param("provider"), tok)
		if err != nil {
			c.Header("WWW-Authenticate", `Bearer realm="aiion", error="invalid_token"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "invalid or expired token",
			})
			return
		}

		c.Set(ContextAccessToken, tok)
		c.Set(ContextTokenClaims, result)
		c.Next()
	}
}

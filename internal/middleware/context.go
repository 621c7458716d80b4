package middleware

import (
	"github.com/Aiionteam/app.aiion.site/internal/core"

	"github.com/gin-gonic/gin"
)

// Context keys set by RequireAccessToken.
const (
	ContextAccessToken = "access_token"
	ContextTokenClaims = "token_claims"
)

func GetAccessToken(c *gin.Context) string {
	return c.GetString(ContextAccessToken)
}

func GetTokenClaims(c *gin.Context) *core.TokenValidationResult {
	v, ok := c.Get(ContextTokenClaims)
	if !ok {
		return nil
	}
	result, _ := v.(*core.TokenValidationResult)
	return result
}

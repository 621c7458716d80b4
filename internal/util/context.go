package util

import (
	"context"

	"github.com/gin-gonic/gin"
)

type clientIPKey struct{}

// IPMiddleware records the client IP on the request context so code that
// only sees a context.Context can log it.
func IPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// ClientIP honours X-Forwarded-For from trusted proxies
		c.Request = c.Request.WithContext(WithClientIP(c.Request.Context(), c.ClientIP()))
		c.Next()
	}
}

func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

// ClientIP returns the client IP stored by IPMiddleware, or "" if none.
func ClientIP(ctx context.Context) string {
	if ginCtx, ok := ctx.(*gin.Context); ok {
		ctx = ginCtx.Request.Context()
	}
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}

package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestIPMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var fromRequest, fromGin string
	r := gin.New()
	r.Use(IPMiddleware())
	r.GET("/", func(c *gin.Context) {
		fromRequest = ClientIP(c.Request.Context())
		fromGin = ClientIP(c)
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.1.2.3:4567"
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "10.1.2.3", fromRequest)
	assert.Equal(t, "10.1.2.3", fromGin)
}

func TestClientIP(t *testing.T) {
	assert.Empty(t, ClientIP(context.Background()))
	assert.Equal(t, "192.168.1.1", ClientIP(WithClientIP(context.Background(), "192.168.1.1")))
}

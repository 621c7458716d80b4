package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestReadDoc(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var parsed struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))
	assert.Equal(t, "Aiion API", parsed.Info.Title)

	for path, method := range map[string]string{
		"/health":                           "get",
		"/api/auth/{provider}/callback":     "get",
		"/api/auth/{provider}/token":        "post",
		"/api/users/find-by-email-provider": "post",
		"/api/diaries/user/{userId}":        "get",
	} {
		assert.Contains(t, parsed.Paths[path], method, path)
	}
}

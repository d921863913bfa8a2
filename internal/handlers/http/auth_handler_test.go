package http

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"costream/internal/core/services"
)

func newDevLoginRouter(t *testing.T) (*gin.Engine, services.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authService := services.NewAuthService("test-secret", 15*time.Minute)
	handler := NewAuthHandler(authService, 15*time.Minute)

	router := gin.New()
	handler.SetupRoutes(router)
	return router, authService
}

func TestDevLoginIssuesValidToken(t *testing.T) {
	router, authService := newDevLoginRouter(t)

	body, _ := json.Marshal(gin.H{"username": "alice"})
	req := httptest.NewRequest("POST", "/api/v1/auth/dev-login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)

	var resp struct {
		UserID      string `json:"user_id"`
		Username    string `json:"username"`
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Username)
	assert.NotEmpty(t, resp.UserID)
	assert.Equal(t, int(15*time.Minute/time.Second), resp.ExpiresIn)

	claims, err := authService.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, resp.UserID, string(claims.UserID))
}

func TestDevLoginRejectsMissingUsername(t *testing.T) {
	router, _ := newDevLoginRouter(t)

	req := httptest.NewRequest("POST", "/api/v1/auth/dev-login", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, 400, rec.Code)
}

package http

import (
	"net/http"
	"strings"
	"time"

	"costream/internal/core/domain"
	"costream/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuthHandler exposes the dev-mode login endpoint. It issues a token for any
// posted username without checking credentials, so the route is only
// registered when auth.allow_dev_login is set; production deployments obtain
// tokens from an external identity provider instead.
type AuthHandler struct {
	authService services.AuthService
	tokenTTL    time.Duration
}

func NewAuthHandler(authService services.AuthService, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		tokenTTL:    tokenTTL,
	}
}

func (h *AuthHandler) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api/v1/auth")
	{
		api.POST("/dev-login", h.DevLogin)
	}
}

type DevLoginRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
}

// DevLogin mints a fresh user id and a signed token for it.
func (h *AuthHandler) DevLogin(c *gin.Context) {
	var req DevLoginRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	userID := domain.UserID(uuid.New().String())

	accessToken, err := h.authService.GenerateToken(userID, req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":      userID,
		"username":     req.Username,
		"access_token": accessToken,
		"expires_in":   int(h.tokenTTL / time.Second),
	})
}

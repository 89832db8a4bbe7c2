package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"casino-bot-backend/internal/auth"
	"casino-bot-backend/internal/models"
)

// AuthHandler exchanges a front-end identity for a bearer token. The chat
// gateways authenticate themselves with a shared key; end-user identity
// verification happened on their platform already.
type AuthHandler struct {
	tokens      *auth.TokenService
	frontendKey string
	logger      zerolog.Logger
}

func NewAuthHandler(tokens *auth.TokenService, frontendKey string, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		tokens:      tokens,
		frontendKey: frontendKey,
		logger:      logger.With().Str("component", "auth-handler").Logger(),
	}
}

type tokenRequest struct {
	Platform string `json:"platform" binding:"required,oneof=discord telegram"`
	UserID   string `json:"user_id" binding:"required"`
	Username string `json:"username"`
}

func (h *AuthHandler) IssueToken(c *gin.Context) {
	if h.frontendKey == "" || c.GetHeader("X-Frontend-Key") != h.frontendKey {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid frontend key"})
		return
	}

	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	platform := models.Platform(req.Platform)
	userID := models.NewUserID(platform, req.UserID)

	token, err := h.tokens.IssueToken(userID, platform, req.Username)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to sign token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user_id": userID})
}

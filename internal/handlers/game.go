package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"casino-bot-backend/internal/apperrors"
	"casino-bot-backend/internal/models"
	"casino-bot-backend/internal/services"
)

type GameHandler struct {
	session *services.GameSession
	logger  zerolog.Logger
}

func NewGameHandler(session *services.GameSession, logger zerolog.Logger) *GameHandler {
	return &GameHandler{
		session: session,
		logger:  logger.With().Str("component", "game-handler").Logger(),
	}
}

func identity(c *gin.Context) (models.UserID, models.Platform, string) {
	return models.UserID(c.GetString("user_id")),
		models.Platform(c.GetString("platform")),
		c.GetString("username")
}

func (h *GameHandler) respondError(c *gin.Context, err error) {
	code := apperrors.GetCode(err)
	c.JSON(apperrors.HTTPStatus(code), gin.H{
		"error": gin.H{
			"code":    code,
			"message": err.Error(),
		},
	})
}

func (h *GameHandler) Play(c *gin.Context) {
	userID, platform, username := identity(c)

	var req models.PlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    apperrors.CodeInvalidRequest,
			"message": err.Error(),
		}})
		return
	}

	// profile is created on first sighting; the balance key is separate
	if _, err := h.session.EnsureUser(c.Request.Context(), userID, platform, username); err != nil {
		h.respondError(c, err)
		return
	}

	resp, err := h.session.Play(c.Request.Context(), userID, req.Game, req.Wager)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "settlement": resp})
}

func (h *GameHandler) GetBalance(c *gin.Context) {
	userID, _, _ := identity(c)

	balance, err := h.session.Balance(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "balance": balance})
}

func (h *GameHandler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "games": h.session.Catalog()})
}

func (h *GameHandler) ClaimDailyBonus(c *gin.Context) {
	userID, platform, username := identity(c)

	if _, err := h.session.EnsureUser(c.Request.Context(), userID, platform, username); err != nil {
		h.respondError(c, err)
		return
	}

	resp, err := h.session.ClaimDailyBonus(c.Request.Context(), userID)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeBonusAlreadyClaimed) {
			// not an error to the caller, just a negative result
			c.JSON(http.StatusOK, gin.H{"success": true, "bonus": models.BonusResponse{Granted: false}})
			return
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "bonus": resp})
}

func (h *GameHandler) GetJackpot(c *gin.Context) {
	total, err := h.session.JackpotPeek(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "jackpot": total})
}

// DrainJackpot empties the pool and reports the drained amount. Mounted on
// the admin group only.
func (h *GameHandler) DrainJackpot(c *gin.Context) {
	amount, err := h.session.JackpotDrain(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.Info().Int64("amount", amount).Msg("jackpot drained by admin")

	c.JSON(http.StatusOK, gin.H{"success": true, "drained": amount})
}

func (h *GameHandler) GetHistory(c *gin.Context) {
	userID, _, _ := identity(c)

	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	if err != nil || limit <= 0 || limit > 100 {
		limit = 50
	}

	transactions, err := h.session.History(c.Request.Context(), userID, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"transactions": transactions,
		"count":        len(transactions),
	})
}

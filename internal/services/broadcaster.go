package services

import "casino-bot-backend/internal/models"

// Broadcaster pushes settled results to connected presentation clients.
type Broadcaster interface {
	BroadcastSettlement(userID models.UserID, result *models.SettlementResult)
	BroadcastJackpot(total int64)
}

package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

func GenerateSettlementID() string {
	return fmt.Sprintf("stl_%s_%d",
		time.Now().Format("20060102"),
		uuid.New().ID())
}

func GenerateTransactionID() string {
	return fmt.Sprintf("tx_%s_%d",
		time.Now().Format("20060102"),
		uuid.New().ID())
}

// PlayRequest is the inbound wager from a chat front-end.
type PlayRequest struct {
	Game  GameType `json:"game" binding:"required"`
	Wager int64    `json:"wager" binding:"required,min=1"`
}

// PlayResponse is what the presentation layer formats for the user.
type PlayResponse struct {
	SettlementID string            `json:"settlement_id"`
	Result       *SettlementResult `json:"result"`
	NewBalance   int64             `json:"new_balance"`
}

// BonusResponse reports a daily-bonus claim.
type BonusResponse struct {
	Granted    bool  `json:"granted"`
	Amount     int64 `json:"amount,omitempty"`
	NewBalance int64 `json:"new_balance"`
}

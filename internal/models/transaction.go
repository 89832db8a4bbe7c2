package models

import "time"

type TransactionType string

const (
	TransactionTypeBet   TransactionType = "bet"
	TransactionTypeWin   TransactionType = "win"
	TransactionTypeBonus TransactionType = "bonus"
)

// Transaction is an append-only record of one balance movement, kept for
// the history endpoint. It is bookkeeping, not the source of truth: the
// ledger key is.
type Transaction struct {
	ID           string          `json:"id" redis:"id"`
	UserID       UserID          `json:"user_id" redis:"user_id"`
	Type         TransactionType `json:"type" redis:"type"`
	Game         GameType        `json:"game,omitempty" redis:"game"`
	Amount       int64           `json:"amount" redis:"amount"`
	BalanceAfter int64           `json:"balance_after" redis:"balance_after"`
	Description  string          `json:"description" redis:"description"`
	CreatedAt    time.Time       `json:"created_at" redis:"created_at"`
}

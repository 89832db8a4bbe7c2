package models

import "github.com/shopspring/decimal"

// SettlementResult is the transient outcome of resolving one wagered
// action. Payout is always wager x multiplier truncated toward zero to a
// whole credit. The diagnostic fields are presentation-only and depend on
// the game that produced the result.
type SettlementResult struct {
	Game       GameType        `json:"game"`
	Win        bool            `json:"win"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Wager      int64           `json:"wager"`
	Payout     int64           `json:"payout"`

	// slots
	Reels []string `json:"reels,omitempty"`

	// dice
	PlayerRoll int `json:"player_roll,omitempty"`
	HouseRoll  int `json:"house_roll,omitempty"`

	// crash, both rounded to two decimals for presentation
	CrashPoint   float64 `json:"crash_point,omitempty"`
	CashoutPoint float64 `json:"cashout_point,omitempty"`
}

// PayoutFor truncates wager x multiplier toward zero to whole credits.
func PayoutFor(wager int64, multiplier decimal.Decimal) int64 {
	return decimal.NewFromInt(wager).Mul(multiplier).IntPart()
}

package games

import (
	"github.com/shopspring/decimal"

	"casino-bot-backend/internal/models"
)

var (
	diceWinMultiplier  = decimal.NewFromInt(2)
	dicePushMultiplier = decimal.NewFromFloat(1.5)
)

// resolveDice rolls two dice for the player and two for the house. The
// higher sum wins at x2; a tie is a push that favors the player at x1.5.
func resolveDice(e *Engine, wager int64) *models.SettlementResult {
	playerRoll := e.rollDie() + e.rollDie()
	houseRoll := e.rollDie() + e.rollDie()

	result := &models.SettlementResult{
		Game:       models.GameTypeDice,
		Wager:      wager,
		Multiplier: decimal.Zero,
		PlayerRoll: playerRoll,
		HouseRoll:  houseRoll,
	}

	switch {
	case playerRoll > houseRoll:
		result.Win = true
		result.Multiplier = diceWinMultiplier
	case playerRoll == houseRoll:
		result.Win = true
		result.Multiplier = dicePushMultiplier
	}

	if result.Win {
		result.Payout = models.PayoutFor(wager, result.Multiplier)
	}

	return result
}

func (e *Engine) rollDie() int {
	return e.intn(6) + 1
}

package games

import (
	"math"

	"github.com/shopspring/decimal"

	"casino-bot-backend/internal/models"
)

const (
	crashGrowthMin     = 1.01
	crashGrowthMax     = 1.10
	crashBaseChance    = 0.01
	crashChanceSlope   = 0.02
	crashMultiplierCap = 10.0
	cashoutMin         = 1.2
	cashoutMax         = 3.0
)

// resolveCrash grows a multiplier by random steps until it crashes or hits
// the cap. The crash probability rises with the multiplier, so the cap
// bounds the loop without forcing a crash. A cash-out point is drawn
// independently; the wager wins only if it cashes out strictly before the
// realized crash point.
func resolveCrash(e *Engine, wager int64) *models.SettlementResult {
	multiplier := 1.0
	for {
		multiplier *= crashGrowthMin + e.float64()*(crashGrowthMax-crashGrowthMin)

		if multiplier >= crashMultiplierCap {
			multiplier = crashMultiplierCap
			break
		}

		chance := crashBaseChance + (multiplier-1)*crashChanceSlope
		if e.float64() < chance {
			break
		}
	}

	cashout := cashoutMin + e.float64()*(cashoutMax-cashoutMin)

	result := &models.SettlementResult{
		Game:         models.GameTypeCrash,
		Wager:        wager,
		Multiplier:   decimal.Zero,
		CrashPoint:   round2(multiplier),
		CashoutPoint: round2(cashout),
	}

	if cashout < multiplier {
		result.Win = true
		result.Multiplier = decimal.NewFromFloat(round2(cashout))
		result.Payout = models.PayoutFor(wager, decimal.NewFromFloat(cashout))
	}

	return result
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

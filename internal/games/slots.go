package games

import (
	"github.com/shopspring/decimal"

	"casino-bot-backend/internal/models"
)

// Symbol alphabet ordered low to high value. Weights sum to 100.
var (
	slotSymbols = []string{"🍒", "🍋", "🍊", "🍇", "💎", "7️⃣"}
	slotWeights = []int{30, 25, 20, 15, 7, 3}

	// Three of a kind.
	tripleMultipliers = map[string]decimal.Decimal{
		"🍒":  decimal.NewFromInt(2),
		"🍋":  decimal.NewFromInt(3),
		"🍊":  decimal.NewFromInt(5),
		"🍇":  decimal.NewFromInt(10),
		"💎":  decimal.NewFromInt(20),
		"7️⃣": decimal.NewFromInt(50),
	}

	// Exactly two of a kind pays on the repeated symbol.
	pairMultipliers = map[string]decimal.Decimal{
		"🍒":  decimal.NewFromFloat(1.5),
		"🍋":  decimal.NewFromFloat(1.5),
		"🍊":  decimal.NewFromFloat(1.5),
		"🍇":  decimal.NewFromInt(2),
		"💎":  decimal.NewFromInt(3),
		"7️⃣": decimal.NewFromInt(5),
	}
)

func (e *Engine) drawSlotSymbol() string {
	total := 0
	for _, w := range slotWeights {
		total += w
	}

	pick := e.intn(total)
	for i, w := range slotWeights {
		if pick < w {
			return slotSymbols[i]
		}
		pick -= w
	}
	return slotSymbols[len(slotSymbols)-1]
}

func resolveSlots(e *Engine, wager int64) *models.SettlementResult {
	reels := []string{e.drawSlotSymbol(), e.drawSlotSymbol(), e.drawSlotSymbol()}

	multiplier := slotsMultiplier(reels)
	win := multiplier.IsPositive()

	payout := int64(0)
	if win {
		payout = models.PayoutFor(wager, multiplier)
	}

	return &models.SettlementResult{
		Game:       models.GameTypeSlots,
		Win:        win,
		Multiplier: multiplier,
		Wager:      wager,
		Payout:     payout,
		Reels:      reels,
	}
}

// slotsMultiplier applies the fixed lookup tables: three of a kind pays the
// triple table, exactly two of a kind pays the pair table, all distinct
// pays nothing.
func slotsMultiplier(reels []string) decimal.Decimal {
	if reels[0] == reels[1] && reels[1] == reels[2] {
		return tripleMultipliers[reels[0]]
	}

	counts := map[string]int{}
	for _, s := range reels {
		counts[s]++
	}
	for symbol, n := range counts {
		if n == 2 {
			return pairMultipliers[symbol]
		}
	}

	return decimal.Zero
}

package games

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casino-bot-backend/internal/models"
)

func TestTripleMultiplierTable(t *testing.T) {
	cases := []struct {
		symbol string
		want   string
	}{
		{"🍒", "2"},
		{"🍋", "3"},
		{"🍊", "5"},
		{"🍇", "10"},
		{"💎", "20"},
		{"7️⃣", "50"},
	}

	for _, tc := range cases {
		got := slotsMultiplier([]string{tc.symbol, tc.symbol, tc.symbol})
		assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
			"triple %s: want x%s, got x%s", tc.symbol, tc.want, got)
	}
}

func TestPairMultiplierTable(t *testing.T) {
	cases := []struct {
		reels []string
		want  string
	}{
		{[]string{"7️⃣", "7️⃣", "🍒"}, "5"},
		{[]string{"💎", "🍋", "💎"}, "3"},
		{[]string{"🍒", "🍇", "🍇"}, "2"},
		{[]string{"🍊", "🍊", "🍇"}, "1.5"},
		{[]string{"🍋", "🍒", "🍋"}, "1.5"},
		{[]string{"🍒", "🍒", "💎"}, "1.5"},
	}

	for _, tc := range cases {
		got := slotsMultiplier(tc.reels)
		assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
			"pair %v: want x%s, got x%s", tc.reels, tc.want, got)
	}
}

func TestAllDistinctPaysNothing(t *testing.T) {
	got := slotsMultiplier([]string{"🍒", "🍋", "💎"})
	assert.True(t, got.IsZero())
}

func TestResolveSlotsPayoutConsistency(t *testing.T) {
	e := NewEngineWithSource(rand.NewSource(1))

	for i := 0; i < 5000; i++ {
		result, err := e.Resolve(models.GameTypeSlots, 100)
		require.NoError(t, err)

		require.Len(t, result.Reels, 3)
		expected := slotsMultiplier(result.Reels)
		assert.True(t, result.Multiplier.Equal(expected))

		if result.Win {
			assert.Equal(t, models.PayoutFor(100, expected), result.Payout)
			assert.True(t, result.Payout > 0)
		} else {
			assert.True(t, result.Multiplier.IsZero())
			assert.Equal(t, int64(0), result.Payout)
		}
	}
}

func TestPairPayoutTruncatesTowardZero(t *testing.T) {
	// wager 33 at x1.5 pays 49, not 49.5
	assert.Equal(t, int64(49), models.PayoutFor(33, decimal.NewFromFloat(1.5)))
}

func TestSymbolWeighting(t *testing.T) {
	e := NewEngineWithSource(rand.NewSource(42))

	counts := map[string]int{}
	const draws = 100000
	for i := 0; i < draws; i++ {
		counts[e.drawSlotSymbol()]++
	}

	// low-value symbols must dominate high-value ones by a wide margin
	assert.Greater(t, counts["🍒"], counts["💎"])
	assert.Greater(t, counts["💎"], counts["7️⃣"])
	assert.InDelta(t, 0.30, float64(counts["🍒"])/draws, 0.02)
	assert.InDelta(t, 0.03, float64(counts["7️⃣"])/draws, 0.01)
}

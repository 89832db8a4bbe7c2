package jackpot_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casino-bot-backend/internal/jackpot"
	"casino-bot-backend/internal/store"
)

func setupPool(t *testing.T) *jackpot.Pool {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	st := store.NewWithClient(client, zerolog.Nop())
	return jackpot.New(st, 0.01, zerolog.Nop())
}

func TestContributeFloorsTheCut(t *testing.T) {
	p := setupPool(t)
	ctx := context.Background()

	cut, err := p.Contribute(ctx, 250)
	require.NoError(t, err)
	assert.Equal(t, int64(2), cut, "floor(250 * 0.01)")

	cut, err = p.Contribute(ctx, 99)
	require.NoError(t, err)
	assert.Equal(t, int64(0), cut, "payouts under 100 contribute nothing at 1%")

	total, err := p.Peek(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestZeroPayoutNeverChangesPool(t *testing.T) {
	p := setupPool(t)
	ctx := context.Background()

	_, err := p.Contribute(ctx, 0)
	require.NoError(t, err)
	_, err = p.Contribute(ctx, -10)
	require.NoError(t, err)

	total, err := p.Peek(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestPoolAccumulatesAcrossWins(t *testing.T) {
	p := setupPool(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := p.Contribute(ctx, 1000)
		require.NoError(t, err)
	}

	total, err := p.Peek(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(50), total)
}

func TestDrainEmptiesAtomically(t *testing.T) {
	p := setupPool(t)
	ctx := context.Background()

	_, err := p.Contribute(ctx, 12345)
	require.NoError(t, err)

	drained, err := p.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(123), drained)

	total, err := p.Peek(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	drained, err = p.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), drained, "draining an empty pool yields zero")
}

// Package jackpot maintains the shared pool fed by a cut of every winning
// payout. The pool is a single Redis counter with its own atomic increment,
// independent of any user's ledger key.
package jackpot

import (
	"context"
	"math"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"casino-bot-backend/internal/apperrors"
	"casino-bot-backend/internal/store"
)

// drainScript reads and zeroes the pool in one step.
var drainScript = redis.NewScript(`
	local amount = tonumber(redis.call("GET", KEYS[1]) or "0")
	redis.call("SET", KEYS[1], 0)
	return amount
`)

type Pool struct {
	client *redis.Client
	rate   float64
	logger zerolog.Logger
}

func New(st *store.Store, contributionRate float64, logger zerolog.Logger) *Pool {
	return &Pool{
		client: st.Client(),
		rate:   contributionRate,
		logger: logger.With().Str("component", "jackpot").Logger(),
	}
}

// Contribute adds floor(payout x rate) to the pool. Zero or negative
// payouts contribute nothing.
func (p *Pool) Contribute(ctx context.Context, payout int64) (int64, error) {
	if payout <= 0 {
		return 0, nil
	}

	cut := int64(math.Floor(float64(payout) * p.rate))
	if cut <= 0 {
		return 0, nil
	}

	if err := p.client.IncrBy(ctx, store.KeyJackpotPool, cut).Err(); err != nil {
		return 0, apperrors.Wrap(err, apperrors.CodeStoreUnavailable, "jackpot contribution failed")
	}

	p.logger.Debug().Int64("payout", payout).Int64("contribution", cut).Msg("jackpot fed")

	return cut, nil
}

// Peek is a snapshot read of the accumulated pool.
func (p *Pool) Peek(ctx context.Context) (int64, error) {
	amount, err := p.client.Get(ctx, store.KeyJackpotPool).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.CodeStoreUnavailable, "jackpot read failed")
	}
	return amount, nil
}

// Drain atomically empties the pool and returns what was in it. The
// trigger policy lives with the operator, not here.
func (p *Pool) Drain(ctx context.Context) (int64, error) {
	amount, err := drainScript.Run(ctx, p.client, []string{store.KeyJackpotPool}).Int64()
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.CodeStoreUnavailable, "jackpot drain failed")
	}

	p.logger.Info().Int64("amount", amount).Msg("jackpot drained")

	return amount, nil
}

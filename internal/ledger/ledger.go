// Package ledger owns every user's credit balance. All mutations go through
// Redis scripts so concurrent debits and credits on the same user serialize
// inside the store, while different users never contend.
package ledger

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"casino-bot-backend/internal/apperrors"
	"casino-bot-backend/internal/models"
	"casino-bot-backend/internal/store"
)

// debitScript subtracts amount only when the balance covers it. A missing
// key counts as zero. Returns {1, newBalance} on success, {0, balance}
// when funds are insufficient.
var debitScript = redis.NewScript(`
	local balance = tonumber(redis.call("GET", KEYS[1]) or "0")
	local amount = tonumber(ARGV[1])

	if balance < amount then
		return {0, balance}
	end

	balance = redis.call("DECRBY", KEYS[1], amount)
	return {1, balance}
`)

type Ledger struct {
	client *redis.Client
	logger zerolog.Logger
}

func New(st *store.Store, logger zerolog.Logger) *Ledger {
	return &Ledger{
		client: st.Client(),
		logger: logger.With().Str("component", "ledger").Logger(),
	}
}

// Debit conditionally subtracts amount from the user's balance. It fails
// with CodeInsufficientFunds and no mutation when the balance is short.
func (l *Ledger) Debit(ctx context.Context, userID models.UserID, amount int64) (int64, error) {
	if amount < 0 {
		return 0, apperrors.Newf(apperrors.CodeInvalidRequest, "negative debit amount %d", amount)
	}

	key := fmt.Sprintf(store.KeyUserCredits, userID)

	res, err := debitScript.Run(ctx, l.client, []string{key}, amount).Int64Slice()
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.CodeStoreUnavailable, "debit failed")
	}
	if len(res) != 2 {
		return 0, apperrors.Newf(apperrors.CodeInternal, "unexpected debit reply of length %d", len(res))
	}

	ok, balance := res[0] == 1, res[1]
	if !ok {
		return balance, apperrors.Newf(apperrors.CodeInsufficientFunds,
			"insufficient funds: balance %d, wanted %d", balance, amount)
	}

	l.logger.Debug().
		Str("user_id", userID.String()).
		Int64("amount", amount).
		Int64("balance", balance).
		Msg("debited")

	return balance, nil
}

// Credit adds amount to the user's balance, creating it at zero first if
// the user has never been seen. Never fails for non-negative amounts.
func (l *Ledger) Credit(ctx context.Context, userID models.UserID, amount int64) (int64, error) {
	if amount < 0 {
		return 0, apperrors.Newf(apperrors.CodeInvalidRequest, "negative credit amount %d", amount)
	}

	key := fmt.Sprintf(store.KeyUserCredits, userID)

	balance, err := l.client.IncrBy(ctx, key, amount).Result()
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.CodeStoreUnavailable, "credit failed")
	}

	l.logger.Debug().
		Str("user_id", userID.String()).
		Int64("amount", amount).
		Int64("balance", balance).
		Msg("credited")

	return balance, nil
}

// GetBalance is a snapshot read; it is not ordered against in-flight
// debits and credits.
func (l *Ledger) GetBalance(ctx context.Context, userID models.UserID) (int64, error) {
	key := fmt.Sprintf(store.KeyUserCredits, userID)

	balance, err := l.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.CodeStoreUnavailable, "balance read failed")
	}

	return balance, nil
}

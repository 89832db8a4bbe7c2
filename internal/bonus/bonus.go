// Package bonus enforces the at-most-once-per-day bonus grant, built on
// the same counter-with-expiry store as the rate limiter.
package bonus

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"casino-bot-backend/internal/apperrors"
	"casino-bot-backend/internal/ledger"
	"casino-bot-backend/internal/models"
	"casino-bot-backend/internal/store"
)

const claimWindow = 24 * time.Hour

type Tracker struct {
	client *redis.Client
	ledger *ledger.Ledger
	amount int64
	logger zerolog.Logger
}

func New(st *store.Store, l *ledger.Ledger, bonusAmount int64, logger zerolog.Logger) *Tracker {
	return &Tracker{
		client: st.Client(),
		ledger: l,
		amount: bonusAmount,
		logger: logger.With().Str("component", "bonus").Logger(),
	}
}

// Claim grants the daily bonus at most once per 24 hours, rolling from the
// previous successful claim. The claim marker is taken first with SET NX so
// two racing claims cannot both pass; if the credit then fails, the marker
// is released so the user is not left marked-but-unpaid.
func (t *Tracker) Claim(ctx context.Context, userID models.UserID) (int64, error) {
	key := fmt.Sprintf(store.KeyDailyBonus, userID)

	acquired, err := t.client.SetNX(ctx, key, time.Now().Format(time.RFC3339), claimWindow).Result()
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.CodeStoreUnavailable, "bonus claim check failed")
	}
	if !acquired {
		return 0, apperrors.New(apperrors.CodeBonusAlreadyClaimed,
			"daily bonus already claimed, come back tomorrow")
	}

	balance, err := t.ledger.Credit(ctx, userID, t.amount)
	if err != nil {
		if delErr := t.client.Del(ctx, key).Err(); delErr != nil {
			t.logger.Error().Err(delErr).
				Str("user_id", userID.String()).
				Msg("failed to release claim marker after failed credit")
		}
		return 0, err
	}

	t.logger.Info().
		Str("user_id", userID.String()).
		Int64("amount", t.amount).
		Int64("balance", balance).
		Msg("daily bonus granted")

	return balance, nil
}

// Amount is the configured grant per claim.
func (t *Tracker) Amount() int64 {
	return t.amount
}

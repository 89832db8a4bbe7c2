// Package limiter implements a fixed-window rate limiter on Redis counters.
package limiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"casino-bot-backend/internal/apperrors"
	"casino-bot-backend/internal/models"
	"casino-bot-backend/internal/store"
)

// checkAndConsumeScript admits and counts an action in one round trip. A
// call at or above the limit is rejected without touching the counter, so
// hammering a closed window cannot extend it. The expiry is set only when
// the counter is created, giving fixed-window semantics.
var checkAndConsumeScript = redis.NewScript(`
	local current = tonumber(redis.call("GET", KEYS[1]) or "0")
	local max = tonumber(ARGV[1])

	if current >= max then
		return 0
	end

	local count = redis.call("INCR", KEYS[1])
	if count == 1 then
		redis.call("EXPIRE", KEYS[1], ARGV[2])
	end
	return 1
`)

type RateLimiter struct {
	client *redis.Client
	logger zerolog.Logger
}

func New(st *store.Store, logger zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		client: st.Client(),
		logger: logger.With().Str("component", "ratelimiter").Logger(),
	}
}

// CheckAndConsume admits the action and consumes one slot, or reports
// CodeRateLimited. Store failures reject the action rather than admit it.
func (rl *RateLimiter) CheckAndConsume(ctx context.Context, userID models.UserID, action string, maxRequests int, window time.Duration) error {
	key := fmt.Sprintf(store.KeyRateLimit, userID, action)

	allowed, err := checkAndConsumeScript.Run(ctx, rl.client, []string{key},
		maxRequests, int(window.Seconds())).Int64()
	if err != nil {
		// fail closed
		return apperrors.Wrap(err, apperrors.CodeStoreUnavailable, "rate limit check failed")
	}

	if allowed != 1 {
		rl.logger.Debug().
			Str("user_id", userID.String()).
			Str("action", action).
			Msg("rate limited")
		return apperrors.Newf(apperrors.CodeRateLimited,
			"rate limit exceeded for %s: max %d per %s", action, maxRequests, window)
	}

	return nil
}

// Reset clears the counter for (user, action). Admin/test helper.
func (rl *RateLimiter) Reset(ctx context.Context, userID models.UserID, action string) error {
	key := fmt.Sprintf(store.KeyRateLimit, userID, action)
	if err := rl.client.Del(ctx, key).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.CodeStoreUnavailable, "rate limit reset failed")
	}
	return nil
}

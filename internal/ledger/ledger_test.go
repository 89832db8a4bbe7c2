package ledger_test

import (
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casino-bot-backend/internal/apperrors"
	"casino-bot-backend/internal/ledger"
	"casino-bot-backend/internal/models"
	"casino-bot-backend/internal/store"
)

func setupLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	st := store.NewWithClient(client, zerolog.Nop())
	return ledger.New(st, zerolog.Nop())
}

func TestCreditCreatesBalance(t *testing.T) {
	l := setupLedger(t)
	ctx := context.Background()
	userID := models.NewUserID(models.PlatformDiscord, "100")

	balance, err := l.Credit(ctx, userID, 500)
	require.NoError(t, err)
	assert.Equal(t, int64(500), balance)

	balance, err = l.GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(500), balance)
}

func TestGetBalanceUnknownUserIsZero(t *testing.T) {
	l := setupLedger(t)

	balance, err := l.GetBalance(context.Background(), models.NewUserID(models.PlatformTelegram, "nobody"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestDebitInsufficientFundsDoesNotMutate(t *testing.T) {
	l := setupLedger(t)
	ctx := context.Background()
	userID := models.NewUserID(models.PlatformDiscord, "200")

	_, err := l.Credit(ctx, userID, 100)
	require.NoError(t, err)

	balance, err := l.Debit(ctx, userID, 150)
	require.Error(t, err)
	assert.True(t, apperrors.IsInsufficientFunds(err))
	assert.Equal(t, int64(100), balance, "failed debit must report current balance")

	balance, err = l.GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance, "failed debit must not mutate")
}

func TestDebitExactBalance(t *testing.T) {
	l := setupLedger(t)
	ctx := context.Background()
	userID := models.NewUserID(models.PlatformDiscord, "300")

	_, err := l.Credit(ctx, userID, 100)
	require.NoError(t, err)

	balance, err := l.Debit(ctx, userID, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestDebitUnknownUserIsInsufficient(t *testing.T) {
	l := setupLedger(t)

	_, err := l.Debit(context.Background(), models.NewUserID(models.PlatformDiscord, "ghost"), 1)
	require.Error(t, err)
	assert.True(t, apperrors.IsInsufficientFunds(err))
}

func TestNegativeAmountsRejected(t *testing.T) {
	l := setupLedger(t)
	ctx := context.Background()
	userID := models.NewUserID(models.PlatformDiscord, "400")

	_, err := l.Debit(ctx, userID, -5)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidRequest))

	_, err = l.Credit(ctx, userID, -5)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidRequest))
}

// Concurrent debits against one user must serialize to some order: with
// balance for exactly half the attempts, exactly half succeed and the
// final balance is zero, never negative.
func TestConcurrentDebitsNoLostUpdates(t *testing.T) {
	l := setupLedger(t)
	ctx := context.Background()
	userID := models.NewUserID(models.PlatformDiscord, "500")

	const attempts = 100
	_, err := l.Credit(ctx, userID, attempts/2)
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Debit(ctx, userID, 1); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, attempts/2, succeeded)

	balance, err := l.GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestConcurrentMixedOperationsSerialize(t *testing.T) {
	l := setupLedger(t)
	ctx := context.Background()
	userID := models.NewUserID(models.PlatformTelegram, "600")

	_, err := l.Credit(ctx, userID, 1000)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = l.Debit(ctx, userID, 10)
		}()
		go func() {
			defer wg.Done()
			_, _ = l.Credit(ctx, userID, 10)
		}()
	}
	wg.Wait()

	// every debit was matched by a credit, so whatever the interleaving,
	// the net must be the starting balance
	balance, err := l.GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance)
	assert.GreaterOrEqual(t, balance, int64(0))
}

func TestDifferentUsersAreIndependent(t *testing.T) {
	l := setupLedger(t)
	ctx := context.Background()
	alice := models.NewUserID(models.PlatformDiscord, "alice")
	bob := models.NewUserID(models.PlatformTelegram, "bob")

	_, err := l.Credit(ctx, alice, 100)
	require.NoError(t, err)

	_, err = l.Debit(ctx, bob, 10)
	assert.True(t, apperrors.IsInsufficientFunds(err))

	balance, err := l.GetBalance(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance)
}

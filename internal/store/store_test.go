package store_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casino-bot-backend/internal/models"
	"casino-bot-backend/internal/store"
)

func setupStore(t *testing.T) *store.Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return store.NewWithClient(client, zerolog.Nop())
}

func TestLoadUserCreatesProfileOnFirstSighting(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()
	userID := models.NewUserID(models.PlatformDiscord, "42")

	user, created, err := st.LoadUser(ctx, userID, models.PlatformDiscord, "alice")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.False(t, user.IsPremium(time.Now()))

	// a second load returns the stored profile, not a fresh one
	again, created, err := st.LoadUser(ctx, userID, models.PlatformDiscord, "renamed")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "alice", again.Username)
}

func TestSaveUserRoundTrip(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()
	userID := models.NewUserID(models.PlatformTelegram, "7")

	user := models.NewUser(userID, models.PlatformTelegram, "bob")
	premium := time.Now().Add(24 * time.Hour)
	user.PremiumUntil = &premium
	user.Settings["locale"] = "en"
	require.NoError(t, st.SaveUser(ctx, user))

	loaded, created, err := st.LoadUser(ctx, userID, models.PlatformTelegram, "bob")
	require.NoError(t, err)
	assert.False(t, created)
	assert.True(t, loaded.IsPremium(time.Now()))
	assert.Equal(t, "en", loaded.Settings["locale"])
}

func TestTransactionHistoryNewestFirst(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()
	userID := models.NewUserID(models.PlatformDiscord, "9")

	base := time.Now()
	for i := 0; i < 3; i++ {
		tx := &models.Transaction{
			ID:        fmt.Sprintf("tx-%d", i),
			UserID:    userID,
			Type:      models.TransactionTypeBet,
			Game:      models.GameTypeSlots,
			Amount:    int64(10 * (i + 1)),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, st.SaveTransaction(ctx, tx))
	}

	transactions, err := st.GetUserTransactions(ctx, userID, 10)
	require.NoError(t, err)
	require.Len(t, transactions, 3)
	assert.Equal(t, "tx-2", transactions[0].ID)
	assert.Equal(t, "tx-0", transactions[2].ID)
}

func TestTransactionHistoryKeepsLast100(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()
	userID := models.NewUserID(models.PlatformDiscord, "10")

	base := time.Now()
	for i := 0; i < 110; i++ {
		tx := &models.Transaction{
			ID:        fmt.Sprintf("tx-%03d", i),
			UserID:    userID,
			Type:      models.TransactionTypeBet,
			Game:      models.GameTypeDice,
			Amount:    5,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, st.SaveTransaction(ctx, tx))
	}

	transactions, err := st.GetUserTransactions(ctx, userID, 100)
	require.NoError(t, err)
	require.Len(t, transactions, 100)
	assert.Equal(t, "tx-109", transactions[0].ID)
	assert.Equal(t, "tx-010", transactions[99].ID, "the oldest ten are trimmed")
}

func TestHistoryIsolatedPerUser(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()
	alice := models.NewUserID(models.PlatformDiscord, "a")
	bob := models.NewUserID(models.PlatformDiscord, "b")

	require.NoError(t, st.SaveTransaction(ctx, &models.Transaction{
		ID: "tx-alice", UserID: alice, Type: models.TransactionTypeBonus,
		Amount: 100, CreatedAt: time.Now(),
	}))

	transactions, err := st.GetUserTransactions(ctx, bob, 10)
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

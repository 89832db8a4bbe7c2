package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"casino-bot-backend/internal/apperrors"
	"casino-bot-backend/internal/config"
	"casino-bot-backend/internal/models"
)

// Store wraps the Redis client shared by the ledger, the counters and the
// jackpot pool. Every unreachable-store condition is surfaced as
// CodeStoreUnavailable so the callers fail closed.
type Store struct {
	client *redis.Client
	logger zerolog.Logger
}

func New(cfg *config.Config, logger zerolog.Logger) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewWithClient(client, logger), nil
}

// NewWithClient builds a Store around an existing client. Tests use this
// with a miniredis-backed client.
func NewWithClient(client *redis.Client, logger zerolog.Logger) *Store {
	return &Store{
		client: client,
		logger: logger.With().Str("component", "store").Logger(),
	}
}

func (s *Store) Client() *redis.Client {
	return s.client
}

func (s *Store) Close() error {
	return s.client.Close()
}

// LoadUser returns the profile for id, creating a default record on first
// sighting. The second return reports whether the profile was just created.
// Profiles are never deleted.
func (s *Store) LoadUser(ctx context.Context, id models.UserID, platform models.Platform, username string) (*models.User, bool, error) {
	key := fmt.Sprintf(KeyUserProfile, id)

	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		user := models.NewUser(id, platform, username)
		if err := s.SaveUser(ctx, user); err != nil {
			return nil, false, err
		}
		s.logger.Info().Str("user_id", id.String()).Msg("created user profile")
		return user, true, nil
	}
	if err != nil {
		return nil, false, apperrors.Wrap(err, apperrors.CodeStoreUnavailable, "failed to load user")
	}

	var user models.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return nil, false, apperrors.Wrap(err, apperrors.CodeInternal, "failed to unmarshal user")
	}

	return &user, false, nil
}

func (s *Store) SaveUser(ctx context.Context, user *models.User) error {
	key := fmt.Sprintf(KeyUserProfile, user.ID)
	user.UpdatedAt = time.Now()

	data, err := json.Marshal(user)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to marshal user")
	}

	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.CodeStoreUnavailable, "failed to save user")
	}
	return nil
}

// SaveTransaction appends a balance-movement record and indexes it on the
// user's history, keeping only the most recent 100 entries.
func (s *Store) SaveTransaction(ctx context.Context, tx *models.Transaction) error {
	txKey := fmt.Sprintf(KeyTransaction, tx.ID)

	data, err := json.Marshal(tx)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to marshal transaction")
	}

	if err := s.client.Set(ctx, txKey, data, TTLTransaction).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.CodeStoreUnavailable, "failed to save transaction")
	}

	userTxKey := fmt.Sprintf(KeyUserTransactions, tx.UserID)
	if err := s.client.ZAdd(ctx, userTxKey, redis.Z{
		Score:  float64(tx.CreatedAt.Unix()),
		Member: tx.ID,
	}).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.CodeStoreUnavailable, "failed to index transaction")
	}

	s.client.ZRemRangeByRank(ctx, userTxKey, 0, -101)

	return nil
}

func (s *Store) GetUserTransactions(ctx context.Context, userID models.UserID, limit int64) ([]*models.Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	userTxKey := fmt.Sprintf(KeyUserTransactions, userID)

	txIDs, err := s.client.ZRevRange(ctx, userTxKey, 0, limit-1).Result()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStoreUnavailable, "failed to list transactions")
	}

	var transactions []*models.Transaction
	for _, txID := range txIDs {
		data, err := s.client.Get(ctx, fmt.Sprintf(KeyTransaction, txID)).Result()
		if err != nil {
			continue
		}

		var tx models.Transaction
		if err := json.Unmarshal([]byte(data), &tx); err != nil {
			continue
		}

		transactions = append(transactions, &tx)
	}

	return transactions, nil
}
